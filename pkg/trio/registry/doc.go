// Package registry builds and maintains the live tree of screen trios
// described by a schema.
//
// Each schema entry gets a Trio: a lazily built (model, controller, view)
// triple. The Registry owns every Trio and exposes tree-shaped operations
// that create screens, rebuild their views for hot reload, and discard them.
// Newly built views are handed to an external Tree that owns attachment.
//
// # Progress
//
// Every operation returns a single-use iter.Seq2[Report, error]. Nothing
// happens until the sequence is ranged over; each step yields one Report,
// and the caller may stop early, which leaves completed steps in place:
//
//	for rep, err := range reg.CreateSubtree("settings", true) {
//	    if err != nil {
//	        return err
//	    }
//	    splash.SetProgress(rep.Current, rep.Total)
//	}
//
// Preconditions for the whole operation are checked before the first step
// runs, and each step re-checks its own precondition right before acting.
//
// # Hot Reload
//
// Recreate rebuilds a screen's view while keeping its model and controller,
// so in-memory state survives a view-only reload. With descendants, children
// are rebuilt first and then moved under the parent's new view.
//
// # Thread-Safety
//
// A Registry is not safe for concurrent use. Run at most one operation at a
// time, on the goroutine that owns the UI.
package registry
