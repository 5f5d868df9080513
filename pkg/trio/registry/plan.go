package registry

import "slices"

type action int

const (
	actionCreate  action = iota // Build the trio and attach its view under the parent
	actionRebuild               // Replace the view, keeping model and controller
	actionDiscard               // Detach the view and clear all three slots
)

func (a action) String() string {
	switch a {
	case actionCreate:
		return "create"
	case actionRebuild:
		return "rebuild"
	case actionDiscard:
		return "discard"
	default:
		return "unknown"
	}
}

type step struct {
	name   string
	action action
}

// liveSet tracks which screens will have a view at each point of a plan.
type liveSet map[string]bool

func (r *Registry) liveSet() liveSet {
	live := make(liveSet, len(r.trios))
	for name, t := range r.trios {
		if t.Created() {
			live[name] = true
		}
	}
	return live
}

// planChain returns create steps for name and every absent ancestor,
// outermost ancestor first.
func (r *Registry) planChain(name string, live liveSet) []step {
	var steps []step
	if !live[name] {
		steps = append(steps, step{name: name, action: actionCreate})
		live[name] = true
	}
	for _, a := range r.schema.Ancestors(name) {
		if live[a] {
			break
		}
		steps = append(steps, step{name: a, action: actionCreate})
		live[a] = true
	}
	slices.Reverse(steps)
	return steps
}

// planRecreate mirrors the recreate algorithm without touching anything.
func (r *Registry) planRecreate(name string, withDescendants bool, live liveSet) []step {
	children := r.trios[name].children

	if !live[name] {
		steps := r.planChain(name, live)
		if withDescendants {
			for _, c := range children {
				steps = append(steps, r.planRecreate(c, true, live)...)
			}
		} else {
			steps = append(steps, r.planMissingChildren(children, live)...)
		}
		return steps
	}

	var steps []step
	if withDescendants {
		for _, c := range children {
			steps = append(steps, r.planRecreate(c, true, live)...)
		}
		steps = append(steps, step{name: name, action: actionRebuild})
		return steps
	}

	steps = append(steps, step{name: name, action: actionRebuild})
	steps = append(steps, r.planMissingChildren(children, live)...)
	return steps
}

func (r *Registry) planMissingChildren(children []string, live liveSet) []step {
	var steps []step
	for _, c := range children {
		if !live[c] {
			steps = append(steps, step{name: c, action: actionCreate})
			live[c] = true
		}
	}
	return steps
}

// planDiscard returns discard steps for name and its live descendants,
// deepest first.
func (r *Registry) planDiscard(name string, live liveSet) []step {
	var steps []step
	for _, c := range r.trios[name].children {
		if live[c] {
			steps = append(steps, r.planDiscard(c, live)...)
		}
	}
	steps = append(steps, step{name: name, action: actionDiscard})
	delete(live, name)
	return steps
}
