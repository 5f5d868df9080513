package registry

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/BrandonKowalski/trio/pkg/trio/constants"
	"github.com/BrandonKowalski/trio/pkg/trio/schema"
)

// Event describes one actual construction inside a Trio. Cache hits do not
// produce events.
type Event struct {
	Kind    constants.ObjectKind
	Screen  string
	Elapsed time.Duration
}

// Trio is the runtime unit for one screen: a lazily built model, controller
// and view. Clearing a slot never cascades to the others.
type Trio struct {
	name      string
	factories schema.Factories
	children  []string
	parent    string

	model      schema.Model
	controller schema.Controller
	view       schema.View

	logger  *slog.Logger
	observe func(Event)
}

// NewTrio creates an empty trio for a finalized schema entry.
func NewTrio(e schema.Entry, logger *slog.Logger, observe func(Event)) *Trio {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Trio{
		name:      e.Name,
		factories: e.Factories(),
		children:  slices.Clone(e.Children),
		parent:    e.Parent,
		logger:    logger,
		observe:   observe,
	}
}

func (t *Trio) Name() string { return t.name }

// Parent returns the declared parent name, or "" for the root.
func (t *Trio) Parent() string { return t.parent }

// Children returns the declared child names.
func (t *Trio) Children() []string { return slices.Clone(t.children) }

func (t *Trio) Model() schema.Model           { return t.model }
func (t *Trio) Controller() schema.Controller { return t.controller }
func (t *Trio) View() schema.View             { return t.view }

// EnsureModel returns the model, building it on first use.
func (t *Trio) EnsureModel() (schema.Model, error) {
	if t.model != nil {
		return t.model, nil
	}

	start := time.Now()
	m, err := t.factories.Model.NewModel()
	if err := t.checkBuilt(constants.KindModel, m, err); err != nil {
		return nil, err
	}
	t.model = m
	t.emit(constants.KindModel, time.Since(start))
	return m, nil
}

// EnsureController returns the controller, building the model and then the
// controller on first use.
func (t *Trio) EnsureController() (schema.Controller, error) {
	m, err := t.EnsureModel()
	if err != nil {
		return nil, err
	}
	if t.controller != nil {
		return t.controller, nil
	}

	start := time.Now()
	c, err := t.factories.Controller.NewController(m)
	if err := t.checkBuilt(constants.KindController, c, err); err != nil {
		return nil, err
	}
	t.controller = c
	t.emit(constants.KindController, time.Since(start))
	return c, nil
}

// EnsureView returns the view, building whatever is missing on first use.
func (t *Trio) EnsureView() (schema.View, error) {
	c, err := t.EnsureController()
	if err != nil {
		return nil, err
	}
	if t.view != nil {
		return t.view, nil
	}

	start := time.Now()
	v, err := t.factories.View.NewView(t.model, c, t.name)
	if err := t.checkBuilt(constants.KindView, v, err); err != nil {
		return nil, err
	}
	t.view = v
	t.emit(constants.KindView, time.Since(start))
	return v, nil
}

func (t *Trio) ClearModel()      { t.model = nil }
func (t *Trio) ClearController() { t.controller = nil }
func (t *Trio) ClearView()       { t.view = nil }

// Created reports whether the screen currently has a view.
func (t *Trio) Created() bool {
	return t.view != nil
}

func (t *Trio) checkBuilt(kind constants.ObjectKind, obj any, err error) error {
	if err != nil {
		return fmt.Errorf("screen %q: build %s: %w", t.name, kind, err)
	}
	if obj == nil {
		return fmt.Errorf("screen %q: build %s: %w", t.name, kind, ErrNilObject)
	}
	return nil
}

func (t *Trio) emit(kind constants.ObjectKind, elapsed time.Duration) {
	t.logger.Debug("Built screen object",
		"kind", kind.String(),
		"screen", t.name,
		"elapsed", elapsed,
	)
	if t.observe != nil {
		t.observe(Event{Kind: kind, Screen: t.name, Elapsed: elapsed})
	}
}
