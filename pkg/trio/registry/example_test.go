package registry_test

import (
	"fmt"

	"github.com/BrandonKowalski/trio/pkg/trio/registry"
	"github.com/BrandonKowalski/trio/pkg/trio/schema"
)

type label struct{ text string }

func screen(name string, children ...string) schema.Entry {
	return schema.Entry{
		Name:       name,
		Model:      schema.ModelFunc(func() (schema.Model, error) { return &label{}, nil }),
		Controller: schema.ControllerFunc(func(m schema.Model) (schema.Controller, error) { return &label{}, nil }),
		View: schema.ViewFunc(func(_ schema.Model, _ schema.Controller, name string) (schema.View, error) {
			return &label{text: name}, nil
		}),
		Children: children,
	}
}

// Example builds a small screen tree and hot-reloads one branch.
func Example() {
	s, err := schema.Build([]schema.Entry{
		screen("app_screen", "initial_screen", "settings"),
		screen("initial_screen"),
		screen("settings", "audio"),
		screen("audio"),
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	reg := registry.New(s, registry.NewMemoryTree())

	for rep, err := range reg.CreateAllRemaining() {
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("created %s (%d/%d)\n", rep.Name, rep.Current, rep.Total)
	}

	for rep, err := range reg.Recreate("settings", true) {
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("rebuilt %s (%d/%d)\n", rep.Name, rep.Current, rep.Total)
	}

	_, err = registry.Drain(reg.CreateRoot())
	fmt.Println(err)

	// Output:
	// created app_screen (1/4)
	// created initial_screen (2/4)
	// created settings (3/4)
	// created audio (4/4)
	// rebuilt audio (1/2)
	// rebuilt settings (2/2)
	// registry: create_root: screen "app_screen": screen already exists
}
