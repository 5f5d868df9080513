package trio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/BrandonKowalski/trio/pkg/trio/declare"
	"github.com/BrandonKowalski/trio/pkg/trio/hotreload"
	"github.com/BrandonKowalski/trio/pkg/trio/internal"
	"github.com/BrandonKowalski/trio/pkg/trio/registry"
	"github.com/BrandonKowalski/trio/pkg/trio/schema"
)

// Session ties a declaration file to a registry and, when enabled, a hot
// reload watcher. Like the registry, it belongs to the UI goroutine.
type Session struct {
	opts    Options
	cache   *schema.Cache
	tree    registry.Tree
	reg     *registry.Registry
	watcher *hotreload.Watcher
	cancel  context.CancelFunc
}

// Open reads and validates the declaration file and creates an empty
// registry over tree. Nothing is built until the caller runs an operation.
func Open(options Options, catalog declare.Catalog, tree registry.Tree) (*Session, error) {
	opts := options.withDefaults()
	if opts.ScreensFile == "" {
		return nil, ErrNoScreensFile
	}

	cache := schema.NewCache(
		declare.Source(opts.ScreensFile, catalog),
		schema.WithResolver(schema.DirResolver(opts.ResourceRoot, opts.ResourceExt)),
	)
	s, err := cache.Get()
	if err != nil {
		return nil, err
	}

	internal.GetInternalLogger().Info("Screens loaded", "file", opts.ScreensFile, "screens", s.Len())

	return &Session{
		opts:  opts,
		cache: cache,
		tree:  tree,
		reg:   registry.New(s, tree),
	}, nil
}

// Registry returns the current registry. It is replaced when the
// declaration file changes, so do not hold on to it across reloads.
func (s *Session) Registry() *registry.Registry {
	return s.reg
}

// Schema returns the current schema.
func (s *Session) Schema() *schema.Schema {
	return s.reg.Schema()
}

// Watch starts the hot reload watcher when enabled. Requests arrive on
// Reloads and should be passed to HandleReload on the UI goroutine.
func (s *Session) Watch(ctx context.Context) error {
	if !s.opts.HotReload {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	w, err := hotreload.New(s.Schema(), s.opts.ResourceRoot, s.opts.ScreensFile, &hotreload.Options{
		Debounce:        s.opts.ReloadDebounce,
		WithDescendants: s.opts.ReloadDescendants,
	})
	if err != nil {
		cancel()
		return err
	}
	if err := w.Start(ctx); err != nil {
		cancel()
		w.Stop()
		return err
	}
	s.watcher, s.cancel = w, cancel
	return nil
}

// Reloads returns the hot reload request channel, or nil when not watching.
func (s *Session) Reloads() <-chan hotreload.Request {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Requests()
}

// HandleReload applies one request. A declaration change rebuilds the
// schema, discards the whole tree and builds a fresh registry with every
// screen created again. If the new declarations are invalid, the current
// tree is kept and the schema error is returned.
func (s *Session) HandleReload(ctx context.Context, req hotreload.Request) ([]registry.Report, error) {
	reports, err := hotreload.Apply(s.reg, req)
	if !errors.Is(err, hotreload.ErrSchemaChanged) {
		return reports, err
	}

	next, err := s.cache.Rebuild()
	if err != nil {
		return nil, err
	}

	if err := s.teardown(); err != nil {
		return nil, err
	}

	s.reg = registry.New(next, s.tree)
	reports, err = registry.Drain(s.reg.CreateAllRemaining())
	if err != nil {
		return reports, err
	}

	if s.watcher != nil {
		if err := s.stopWatching(); err != nil {
			s.logger().Warn("Stopping watcher failed", "error", err)
		}
		if err := s.Watch(ctx); err != nil {
			return reports, err
		}
	}
	return reports, nil
}

func (s *Session) logger() *slog.Logger {
	return internal.GetInternalLogger()
}

// teardown discards every created top-level screen of the current registry.
func (s *Session) teardown() error {
	for _, e := range s.Schema().Entries() {
		if e.Parent != "" || !s.reg.IsCreated(e.Name) {
			continue
		}
		if _, err := registry.Drain(s.reg.Discard(e.Name)); err != nil {
			return fmt.Errorf("trio: tear down %s: %w", e.Name, err)
		}
	}
	return nil
}

func (s *Session) stopWatching() error {
	if s.cancel != nil {
		s.cancel()
	}
	var err error
	if s.watcher != nil {
		err = s.watcher.Stop()
	}
	s.watcher, s.cancel = nil, nil
	return err
}

// Close stops watching. The registry and its views are left as they are.
func (s *Session) Close() error {
	return s.stopWatching()
}
