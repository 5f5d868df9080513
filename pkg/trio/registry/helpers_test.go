package registry

import (
	"errors"
	"fmt"
	"iter"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/trio/pkg/trio/constants"
	"github.com/BrandonKowalski/trio/pkg/trio/schema"
)

// object is what the test factories build. Every construction yields a new
// pointer, so identity tells whether something was rebuilt.
type object struct {
	kind   string
	screen string
	serial int
}

func (o *object) String() string {
	return fmt.Sprintf("%s/%s#%d", o.screen, o.kind, o.serial)
}

type factorySet struct {
	serial   int
	failView map[string]bool
}

func (f *factorySet) next() int {
	f.serial++
	return f.serial
}

func (f *factorySet) entry(name string, children ...string) schema.Entry {
	return schema.Entry{
		Name: name,
		Model: schema.ModelFunc(func() (schema.Model, error) {
			return &object{kind: "model", screen: name, serial: f.next()}, nil
		}),
		Controller: schema.ControllerFunc(func(m schema.Model) (schema.Controller, error) {
			return &object{kind: "controller", screen: m.(*object).screen, serial: f.next()}, nil
		}),
		View: schema.ViewFunc(func(_ schema.Model, _ schema.Controller, screen string) (schema.View, error) {
			if f.failView[screen] {
				return nil, errors.New("broken view definition")
			}
			return &object{kind: "view", screen: screen, serial: f.next()}, nil
		}),
		Children: children,
	}
}

// testSchema declares:
//
//	app_screen
//	├── initial_screen
//	└── settings
//	    ├── audio
//	    │   └── levels
//	    └── video
func testSchema(t *testing.T, f *factorySet) *schema.Schema {
	t.Helper()
	s, err := schema.Build([]schema.Entry{
		f.entry(constants.AppScreen, constants.InitialScreen, "settings"),
		f.entry(constants.InitialScreen),
		f.entry("settings", "audio", "video"),
		f.entry("audio", "levels"),
		f.entry("levels"),
		f.entry("video"),
	})
	require.NoError(t, err)
	return s
}

func newTestRegistry(t *testing.T, opts ...Option) (*Registry, *MemoryTree, *factorySet) {
	t.Helper()
	f := &factorySet{failView: map[string]bool{}}
	tree := NewMemoryTree()
	return New(testSchema(t, f), tree, opts...), tree, f
}

func names(reports []Report) []string {
	out := make([]string, len(reports))
	for i, r := range reports {
		out[i] = r.Name
	}
	return out
}

func mustDrain(t *testing.T, seq iter.Seq2[Report, error]) []Report {
	t.Helper()
	reports, err := Drain(seq)
	require.NoError(t, err)
	return reports
}

type snapshot struct {
	model      schema.Model
	controller schema.Controller
	view       schema.View
}

func snap(t *testing.T, r *Registry, name string) snapshot {
	t.Helper()
	tr, ok := r.Trio(name)
	require.True(t, ok)
	return snapshot{model: tr.Model(), controller: tr.Controller(), view: tr.View()}
}
