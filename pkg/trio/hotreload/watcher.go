// Package hotreload watches the files screens are declared and defined in
// and turns changes into rebuild requests for the registry.
//
// The watcher never touches the registry: it runs on its own goroutine and
// only delivers Requests on a channel. The UI goroutine that owns the
// registry drains that channel and calls Apply.
package hotreload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/trio/pkg/trio/constants"
	"github.com/BrandonKowalski/trio/pkg/trio/internal"
	"github.com/BrandonKowalski/trio/pkg/trio/registry"
	"github.com/BrandonKowalski/trio/pkg/trio/schema"
)

// ErrSchemaChanged is returned by Apply for a request caused by the
// declaration file. The caller must rebuild the schema and the registry.
var ErrSchemaChanged = errors.New("screen declarations changed")

// Request asks for one screen to be rebuilt, or for a schema reload.
type Request struct {
	Screen          string
	WithDescendants bool
	SchemaChanged   bool
	Paths           []string // Files that triggered the request
}

// Options configures a Watcher.
type Options struct {
	// Debounce is how long to wait for more changes before emitting.
	// Default: constants.DefaultReloadDebounce
	Debounce time.Duration

	// WithDescendants rebuilds every descendant of a changed screen as well.
	WithDescendants bool

	// BufferSize is the capacity of the request channel. Default: 64
	BufferSize int

	Logger *slog.Logger
}

// Watcher maps file changes to screens.
type Watcher struct {
	index    pathIndex
	watcher  *fsnotify.Watcher
	opts     Options
	requests chan Request

	events     atomic.Int64
	dispatched atomic.Int64

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a watcher for every resolved resource in s, joined to root,
// plus the declaration file when declFile is not empty.
func New(s *schema.Schema, root, declFile string, opts *Options) (*Watcher, error) {
	o := Options{}
	if opts != nil {
		o = *opts
	}
	if o.Debounce <= 0 {
		o.Debounce = constants.DefaultReloadDebounce
	}
	if o.BufferSize <= 0 {
		o.BufferSize = 64
	}
	if o.Logger == nil {
		o.Logger = internal.GetInternalLogger()
	}

	index, err := newPathIndex(s, root, declFile)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("hotreload: %w", err)
	}

	return &Watcher{
		index:    index,
		watcher:  fw,
		opts:     o,
		requests: make(chan Request, o.BufferSize),
		done:     make(chan struct{}),
	}, nil
}

// Requests returns the channel requests are delivered on. It is closed
// when the watcher stops.
func (w *Watcher) Requests() <-chan Request {
	return w.requests
}

// Start watches the directories of every indexed file. Directories are
// watched rather than files so editors that replace files on save are seen.
func (w *Watcher) Start(ctx context.Context) error {
	dirs := w.index.dirs()
	for _, dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("hotreload: watch %s: %w", dir, err)
		}
	}
	w.opts.Logger.Info("Hot reload watching", "directories", len(dirs), "files", len(w.index.screens))

	w.wg.Add(1)
	go w.loop(ctx)
	return nil
}

// Stop ends watching and closes the request channel.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

// Stats returns how many file events were seen and requests emitted.
func (w *Watcher) Stats() (events, requests int64) {
	return w.events.Load(), w.dispatched.Load()
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()
	defer close(w.requests)

	var (
		pending []string
		timer   *time.Timer
		fire    <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			path, err := filepath.Abs(ev.Name)
			if err != nil || !w.index.tracks(path) {
				continue
			}
			w.events.Inc()
			pending = append(pending, path)
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.opts.Logger.Warn("Hot reload watcher error", "error", err)
		case <-fire:
			fire = nil
			for _, req := range w.index.batch(pending, w.opts.WithDescendants) {
				select {
				case w.requests <- req:
					w.dispatched.Inc()
					w.opts.Logger.Debug("Hot reload requested", "screen", req.Screen, "schema", req.SchemaChanged, "paths", req.Paths)
				case <-ctx.Done():
					return
				case <-w.done:
					return
				}
			}
			pending = pending[:0]
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// pathIndex maps absolute file paths to the screens defined by them.
type pathIndex struct {
	schema   *schema.Schema
	screens  map[string][]string
	declFile string
}

func newPathIndex(s *schema.Schema, root, declFile string) (pathIndex, error) {
	idx := pathIndex{schema: s, screens: make(map[string][]string)}

	for _, e := range s.Entries() {
		p, ok := e.Resource.Path()
		if !ok {
			continue
		}
		abs, err := filepath.Abs(filepath.Join(root, filepath.FromSlash(p)))
		if err != nil {
			return pathIndex{}, fmt.Errorf("hotreload: resolve %s: %w", p, err)
		}
		idx.screens[abs] = append(idx.screens[abs], e.Name)
	}

	if declFile != "" {
		abs, err := filepath.Abs(declFile)
		if err != nil {
			return pathIndex{}, fmt.Errorf("hotreload: resolve %s: %w", declFile, err)
		}
		idx.declFile = abs
	}
	return idx, nil
}

func (idx pathIndex) tracks(path string) bool {
	if path == idx.declFile {
		return true
	}
	_, ok := idx.screens[path]
	return ok
}

func (idx pathIndex) dirs() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		d := filepath.Dir(p)
		if _, ok := seen[d]; !ok {
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	for p := range idx.screens {
		add(p)
	}
	if idx.declFile != "" {
		add(idx.declFile)
	}
	slices.Sort(out)
	return out
}

// batch turns changed paths into requests. A declaration change supersedes
// everything else. Otherwise screens are emitted in schema order, and with
// descendants a screen whose ancestor is already rebuilt is dropped.
func (idx pathIndex) batch(paths []string, withDescendants bool) []Request {
	if len(paths) == 0 {
		return nil
	}

	byScreen := make(map[string][]string)
	for _, p := range paths {
		if p == idx.declFile {
			return []Request{{SchemaChanged: true, Paths: []string{p}}}
		}
		for _, name := range idx.screens[p] {
			if !slices.Contains(byScreen[name], p) {
				byScreen[name] = append(byScreen[name], p)
			}
		}
	}

	var out []Request
	for _, name := range idx.schema.Names() {
		changed, ok := byScreen[name]
		if !ok {
			continue
		}
		if withDescendants && idx.coveredByAncestor(name, byScreen) {
			continue
		}
		out = append(out, Request{Screen: name, WithDescendants: withDescendants, Paths: changed})
	}
	return out
}

func (idx pathIndex) coveredByAncestor(name string, changed map[string][]string) bool {
	for _, a := range idx.schema.Ancestors(name) {
		if _, ok := changed[a]; ok {
			return true
		}
	}
	return false
}

// Apply runs a request against reg and returns the reports. It must be
// called on the goroutine that owns reg.
func Apply(reg *registry.Registry, req Request) ([]registry.Report, error) {
	if req.SchemaChanged {
		return nil, ErrSchemaChanged
	}
	return registry.Drain(reg.Recreate(req.Screen, req.WithDescendants))
}
