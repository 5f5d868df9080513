// Package schema turns a raw list of screen declarations into a validated,
// ordered description of the screen tree.
//
// A schema is built in one pass:
//
//  1. Default-fill optional fields (the resource locator is left as declared).
//  2. Reconcile parent/child links in both directions.
//  3. Resolve resource locators through a Resolver.
//  4. Order entries depth-first from app_screen.
//  5. Validate structural invariants.
//
// The result is an immutable *Schema. Rebuild re-runs the whole pipeline and
// returns a new value; Cache offers get-or-rebuild with an atomic swap so a
// partially validated schema is never observable.
//
// # Basic Usage
//
//	s, err := schema.Build([]schema.Entry{
//	    {Name: "app_screen", Model: appModel, Controller: appCtrl, View: appView,
//	        Children: []string{"initial_screen"}},
//	    {Name: "initial_screen", Model: homeModel, Controller: homeCtrl, View: homeView},
//	})
//	if err != nil {
//	    return err
//	}
//	for _, e := range s.Entries() {
//	    fmt.Println(s.Ordinal(e.Name))
//	}
package schema
