package schema

// Model, Controller and View are the opaque objects a screen trio holds.
// The registry never looks inside them. Views must be comparable because
// the tree collaborator keys attachment state by view.
type (
	Model      any
	Controller any
	View       any
)

// ModelFactory builds a screen's model.
type ModelFactory interface {
	NewModel() (Model, error)
}

// ControllerFactory builds a screen's controller around its model.
type ControllerFactory interface {
	NewController(m Model) (Controller, error)
}

// ViewFactory builds a screen's view from its model and controller.
type ViewFactory interface {
	NewView(m Model, c Controller, name string) (View, error)
}

// ModelFunc adapts a plain function to ModelFactory.
type ModelFunc func() (Model, error)

func (f ModelFunc) NewModel() (Model, error) { return f() }

// ControllerFunc adapts a plain function to ControllerFactory.
type ControllerFunc func(m Model) (Controller, error)

func (f ControllerFunc) NewController(m Model) (Controller, error) { return f(m) }

// ViewFunc adapts a plain function to ViewFactory.
type ViewFunc func(m Model, c Controller, name string) (View, error)

func (f ViewFunc) NewView(m Model, c Controller, name string) (View, error) { return f(m, c, name) }

// Factories bundles the three constructors of one screen kind.
type Factories struct {
	Model      ModelFactory
	Controller ControllerFactory
	View       ViewFactory
}

// Complete reports whether all three factories are set.
func (f Factories) Complete() bool {
	return f.Model != nil && f.Controller != nil && f.View != nil
}
