package declare

import (
	"fmt"
	"maps"
	"slices"

	"github.com/BrandonKowalski/trio/pkg/trio/internal"
	"github.com/BrandonKowalski/trio/pkg/trio/schema"
)

// Catalog resolves a declared kind to the factories that build it.
type Catalog interface {
	Lookup(kind string) (schema.Factories, bool)
}

// Kinds is a Catalog populated by the application at startup.
type Kinds struct {
	kinds map[string]schema.Factories
}

// NewKinds creates an empty catalog.
func NewKinds() *Kinds {
	return &Kinds{kinds: make(map[string]schema.Factories)}
}

// Register adds the factories for kind. Registering a kind twice, or with a
// missing factory, is a programming error and panics.
func (k *Kinds) Register(kind string, f schema.Factories) *Kinds {
	if _, exists := k.kinds[kind]; exists {
		panic(fmt.Sprintf("screen kind '%s' already registered", kind))
	}
	if !f.Complete() {
		panic(fmt.Sprintf("screen kind '%s' registered without all three factories", kind))
	}
	internal.GetInternalLogger().Debug("Registering screen kind", "kind", kind)
	k.kinds[kind] = f
	return k
}

func (k *Kinds) Lookup(kind string) (schema.Factories, bool) {
	f, ok := k.kinds[kind]
	return f, ok
}

// Names returns the registered kinds, sorted.
func (k *Kinds) Names() []string {
	return slices.Sorted(maps.Keys(k.kinds))
}

// Placeholder is the object LintCatalog factories build.
type Placeholder struct {
	Kind   string
	Screen string
}

// LintCatalog accepts every kind and builds Placeholder objects. Tooling
// uses it to check a declaration file without the application's screens.
type LintCatalog struct{}

func (LintCatalog) Lookup(kind string) (schema.Factories, bool) {
	return schema.Factories{
		Model: schema.ModelFunc(func() (schema.Model, error) {
			return &Placeholder{Kind: kind}, nil
		}),
		Controller: schema.ControllerFunc(func(schema.Model) (schema.Controller, error) {
			return &Placeholder{Kind: kind}, nil
		}),
		View: schema.ViewFunc(func(_ schema.Model, _ schema.Controller, name string) (schema.View, error) {
			return &Placeholder{Kind: kind, Screen: name}, nil
		}),
	}, true
}
