package registry

import (
	"fmt"
	"iter"
	"log/slog"

	"go.uber.org/atomic"

	"github.com/BrandonKowalski/trio/pkg/trio/constants"
	"github.com/BrandonKowalski/trio/pkg/trio/internal"
	"github.com/BrandonKowalski/trio/pkg/trio/schema"
)

// ScreenState is the lifecycle state of one screen.
type ScreenState int

const (
	StateAbsent  ScreenState = iota // No view; the trio may still hold a model or controller
	StateCreated                    // View built and attached
)

func (s ScreenState) String() string {
	if s == StateCreated {
		return "created"
	}
	return "absent"
}

// Stats counts constructions and operation steps since the registry was created.
type Stats struct {
	Models      int64
	Controllers int64
	Views       int64
	Rebuilds    int64
	Discards    int64
}

type counters struct {
	models, controllers, views, rebuilds, discards atomic.Int64
}

// Registry owns one Trio per schema entry and keeps their views attached to
// a Tree in the shape the schema declares.
type Registry struct {
	schema *schema.Schema
	tree   Tree
	trios  map[string]*Trio
	logger *slog.Logger
	hook   func(Event)
	stats  counters
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for operation and construction events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithEventHook registers a callback invoked on every actual construction.
func WithEventHook(fn func(Event)) Option {
	return func(r *Registry) {
		r.hook = fn
	}
}

// New creates a registry for s. Trios are created empty; nothing is built
// until an operation runs.
func New(s *schema.Schema, tree Tree, opts ...Option) *Registry {
	r := &Registry{
		schema: s,
		tree:   tree,
		trios:  make(map[string]*Trio, s.Len()),
		logger: internal.GetInternalLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, e := range s.Entries() {
		r.trios[e.Name] = NewTrio(e, r.logger, r.observe)
	}
	return r
}

func (r *Registry) observe(ev Event) {
	switch ev.Kind {
	case constants.KindModel:
		r.stats.models.Inc()
	case constants.KindController:
		r.stats.controllers.Inc()
	case constants.KindView:
		r.stats.views.Inc()
	}
	if r.hook != nil {
		r.hook(ev)
	}
}

// Schema returns the schema the registry was built from.
func (r *Registry) Schema() *schema.Schema {
	return r.schema
}

// Trio returns the trio for name.
func (r *Registry) Trio(name string) (*Trio, bool) {
	t, ok := r.trios[name]
	return t, ok
}

// State returns the lifecycle state of name.
func (r *Registry) State(name string) (ScreenState, error) {
	t, ok := r.trios[name]
	if !ok {
		return StateAbsent, stateError("state", name, ErrNotRegistered)
	}
	if t.Created() {
		return StateCreated, nil
	}
	return StateAbsent, nil
}

// IsCreated reports whether name is registered and has a view.
func (r *Registry) IsCreated(name string) bool {
	t, ok := r.trios[name]
	return ok && t.Created()
}

// Stats returns a snapshot of the construction counters.
func (r *Registry) Stats() Stats {
	return Stats{
		Models:      r.stats.models.Load(),
		Controllers: r.stats.controllers.Load(),
		Views:       r.stats.views.Load(),
		Rebuilds:    r.stats.rebuilds.Load(),
		Discards:    r.stats.discards.Load(),
	}
}

// CreateRoot builds app_screen and attaches its view at the root position.
func (r *Registry) CreateRoot() iter.Seq2[Report, error] {
	const op = "create_root"
	return r.sequence(op, func() ([]step, error) {
		if err := r.requireAbsent(op, constants.AppScreen); err != nil {
			return nil, err
		}
		return []step{{name: constants.AppScreen, action: actionCreate}}, nil
	})
}

// CreateSubtree builds name, first creating any absent ancestors. With
// withDescendants, every declared descendant is created too, depth-first in
// declared order; each must be absent beforehand.
func (r *Registry) CreateSubtree(name string, withDescendants bool) iter.Seq2[Report, error] {
	const op = "create_subtree"
	return r.sequence(op, func() ([]step, error) {
		if err := r.requireAbsent(op, name); err != nil {
			return nil, err
		}

		live := r.liveSet()
		steps := r.planChain(name, live)
		if !withDescendants {
			return steps, nil
		}

		for _, d := range r.schema.Descendants(name) {
			if err := r.requireAbsent(op, d); err != nil {
				return nil, err
			}
			steps = append(steps, step{name: d, action: actionCreate})
		}
		return steps, nil
	})
}

// CreateAllRemaining builds every screen that is not yet created, in schema
// order, creating parents before children.
func (r *Registry) CreateAllRemaining() iter.Seq2[Report, error] {
	const op = "create_all_remaining"
	return r.sequence(op, func() ([]step, error) {
		live := r.liveSet()
		var steps []step
		for _, name := range r.schema.Names() {
			if !live[name] {
				steps = append(steps, r.planChain(name, live)...)
			}
		}
		return steps, nil
	})
}

// Recreate rebuilds name's view and reattaches it where the old one was.
// Model and controller are kept. With withDescendants, every descendant is
// rebuilt first (depth-first) and then moved under the new view; without it,
// existing children are moved unchanged and missing children are created.
// A screen that does not exist yet is created instead.
func (r *Registry) Recreate(name string, withDescendants bool) iter.Seq2[Report, error] {
	const op = "recreate"
	return r.sequence(op, func() ([]step, error) {
		if _, ok := r.trios[name]; !ok {
			return nil, stateError(op, name, ErrNotRegistered)
		}
		return r.planRecreate(name, withDescendants, r.liveSet()), nil
	})
}

// Discard detaches name's view and clears the trios of name and its created
// descendants, deepest first, returning them to the absent state.
func (r *Registry) Discard(name string) iter.Seq2[Report, error] {
	const op = "discard"
	return r.sequence(op, func() ([]step, error) {
		t, ok := r.trios[name]
		if !ok {
			return nil, stateError(op, name, ErrNotRegistered)
		}
		if !t.Created() {
			return nil, stateError(op, name, ErrNotCreated)
		}
		return r.planDiscard(name, r.liveSet()), nil
	})
}

func (r *Registry) requireAbsent(op, name string) error {
	t, ok := r.trios[name]
	if !ok {
		return stateError(op, name, ErrNotRegistered)
	}
	if t.Created() {
		return stateError(op, name, ErrAlreadyCreated)
	}
	return nil
}

func (r *Registry) requireCreated(op, name string) (*Trio, error) {
	t, ok := r.trios[name]
	if !ok {
		return nil, stateError(op, name, ErrNotRegistered)
	}
	if !t.Created() {
		return nil, stateError(op, name, ErrNotCreated)
	}
	return t, nil
}

// parentView returns the view t attaches under: nil for a root, otherwise
// the declared parent's view, which must exist.
func (r *Registry) parentView(op string, t *Trio) (schema.View, error) {
	if t.parent == "" {
		return nil, nil
	}
	p, err := r.requireCreated(op, t.parent)
	if err != nil {
		return nil, err
	}
	return p.View(), nil
}

// run executes one planned step after checking its precondition.
func (r *Registry) run(op string, s step) (schema.View, error) {
	switch s.action {
	case actionCreate:
		return r.create(op, s.name)
	case actionRebuild:
		return r.rebuild(op, s.name)
	case actionDiscard:
		return r.discard(op, s.name)
	default:
		return nil, fmt.Errorf("registry: %s: unknown step %v", op, s.action)
	}
}

func (r *Registry) create(op, name string) (schema.View, error) {
	if err := r.requireAbsent(op, name); err != nil {
		return nil, err
	}
	t := r.trios[name]
	parent, err := r.parentView(op, t)
	if err != nil {
		return nil, err
	}

	view, err := t.EnsureView()
	if err != nil {
		return nil, fmt.Errorf("registry: %s: %w", op, err)
	}
	if err := r.tree.Attach(parent, view); err != nil {
		t.ClearView()
		return nil, fmt.Errorf("registry: %s: attach %q: %w", op, name, err)
	}

	r.logger.Debug("Created screen", "op", op, "screen", name)
	return view, nil
}

func (r *Registry) rebuild(op, name string) (schema.View, error) {
	t, err := r.requireCreated(op, name)
	if err != nil {
		return nil, err
	}
	parent, err := r.parentView(op, t)
	if err != nil {
		return nil, err
	}

	old := t.View()
	kids := r.tree.Children(old)
	for _, k := range kids {
		if err := r.tree.Detach(old, k); err != nil {
			return nil, fmt.Errorf("registry: %s: detach child of %q: %w", op, name, err)
		}
	}
	if err := r.tree.Detach(parent, old); err != nil {
		return nil, fmt.Errorf("registry: %s: detach %q: %w", op, name, err)
	}

	t.ClearView()
	view, err := t.EnsureView()
	if err != nil {
		if rerr := r.restore(t, parent, old, kids); rerr != nil {
			return nil, fmt.Errorf("registry: %s: %w (restoring %q: %v)", op, err, name, rerr)
		}
		return nil, fmt.Errorf("registry: %s: %w", op, err)
	}

	if err := r.tree.Attach(parent, view); err != nil {
		return nil, fmt.Errorf("registry: %s: attach %q: %w", op, name, err)
	}
	for _, k := range kids {
		if err := r.tree.Attach(view, k); err != nil {
			return nil, fmt.Errorf("registry: %s: reattach child of %q: %w", op, name, err)
		}
	}

	r.stats.rebuilds.Inc()
	r.logger.Debug("Rebuilt screen view", "op", op, "screen", name, "children", len(kids))
	return view, nil
}

// restore puts a view back after its replacement failed to build, with
// the children it had before.
func (r *Registry) restore(t *Trio, parent, old schema.View, kids []schema.View) error {
	t.view = old
	if err := r.tree.Attach(parent, old); err != nil {
		return err
	}
	for _, k := range kids {
		if err := r.tree.Attach(old, k); err != nil {
			return err
		}
	}
	r.logger.Warn("Kept previous screen view after failed rebuild", "screen", t.name)
	return nil
}

func (r *Registry) discard(op, name string) (schema.View, error) {
	t, err := r.requireCreated(op, name)
	if err != nil {
		return nil, err
	}
	parent, err := r.parentView(op, t)
	if err != nil {
		return nil, err
	}

	view := t.View()
	if err := r.tree.Detach(parent, view); err != nil {
		return nil, fmt.Errorf("registry: %s: detach %q: %w", op, name, err)
	}
	t.ClearView()
	t.ClearController()
	t.ClearModel()

	r.stats.discards.Inc()
	r.logger.Debug("Discarded screen", "op", op, "screen", name)
	return view, nil
}
