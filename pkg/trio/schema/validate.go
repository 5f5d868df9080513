package schema

import (
	"github.com/BrandonKowalski/trio/pkg/trio/constants"
)

// validateNames rejects empty and duplicate names.
func validateNames(entries []Entry) error {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			return newError("validate_names", "", ErrEmptyName, "")
		}
		if _, dup := seen[e.Name]; dup {
			return newError("validate_names", e.Name, ErrDuplicateName, "")
		}
		seen[e.Name] = struct{}{}
	}
	return nil
}

// validateFactories requires every entry to carry all three constructors.
func validateFactories(entries []Entry) error {
	for _, e := range entries {
		if !e.Factories().Complete() {
			return newError("validate_factories", e.Name, ErrMissingFactory, "")
		}
	}
	return nil
}

func validateChildrenExist(entries []Entry, idx map[string]int) error {
	for _, e := range entries {
		for _, c := range e.Children {
			if _, ok := idx[c]; !ok {
				return newError("validate_children", e.Name, ErrUnknownChild, "child %q", c)
			}
		}
	}
	return nil
}

func validateNoSelfChild(entries []Entry) error {
	for _, e := range entries {
		if e.HasChild(e.Name) {
			return newError("validate_self_child", e.Name, ErrSelfChild, "")
		}
	}
	return nil
}

func validateParentsExist(entries []Entry, idx map[string]int) error {
	for _, e := range entries {
		if e.Parent == "" {
			continue
		}
		if _, ok := idx[e.Parent]; !ok {
			return newError("validate_parent", e.Name, ErrUnknownParent, "parent %q", e.Parent)
		}
	}
	return nil
}

// validateBidirectional checks that parent and children links agree both ways.
// Reconciliation has already run, so any disagreement left is a declaration
// conflict (e.g., two screens listing the same child).
func validateBidirectional(entries []Entry, idx map[string]int) error {
	for _, e := range entries {
		if e.Parent != "" {
			if !entries[idx[e.Parent]].HasChild(e.Name) {
				return newError("validate_bidirectional", e.Name, ErrParentMismatch,
					"parent %q does not list it as a child", e.Parent)
			}
		}
		for _, c := range e.Children {
			if p := entries[idx[c]].Parent; p != e.Name {
				return newError("validate_bidirectional", e.Name, ErrParentMismatch,
					"child %q has parent %q", c, p)
			}
		}
	}
	return nil
}

// validateAcyclic walks every entry's parent chain with a visited set.
func validateAcyclic(entries []Entry, idx map[string]int) error {
	for _, e := range entries {
		visited := map[string]struct{}{e.Name: {}}
		cur := e
		for cur.Parent != "" {
			if _, seen := visited[cur.Parent]; seen {
				return newError("validate_acyclic", e.Name, ErrCycle, "revisits %q", cur.Parent)
			}
			visited[cur.Parent] = struct{}{}
			cur = entries[idx[cur.Parent]]
		}
	}
	return nil
}

// validateSingleton requires exactly one entry with the reserved name.
func validateSingleton(entries []Entry, name string) error {
	count := 0
	for _, e := range entries {
		if e.Name == name {
			count++
		}
	}
	if count != 1 {
		return newError("validate_singleton", name, ErrSingleton, "found %d", count)
	}
	return nil
}

// validateInitialPosition requires initial_screen to be the first child of
// app_screen, immediately after it in the order.
func validateInitialPosition(entries []Entry, idx map[string]int, order map[string]int) error {
	app, initial := constants.AppScreen, constants.InitialScreen

	if p := entries[idx[initial]].Parent; p != app {
		return newError("validate_initial_position", initial, ErrInitialPosition,
			"parent is %q, want %q", p, app)
	}
	if order[initial] != order[app]+1 {
		return newError("validate_initial_position", initial, ErrInitialPosition,
			"ordinal %d, want %d", order[initial], order[app]+1)
	}
	for _, c := range entries[idx[app]].Children {
		if c != initial && order[c] <= order[initial] {
			return newError("validate_initial_position", initial, ErrInitialPosition,
				"sibling %q comes first", c)
		}
	}
	return nil
}

// validate runs every structural check over reconciled, ordered entries.
func validate(entries []Entry, order map[string]int) error {
	idx := indexByName(entries)

	checks := []func() error{
		func() error { return validateChildrenExist(entries, idx) },
		func() error { return validateNoSelfChild(entries) },
		func() error { return validateParentsExist(entries, idx) },
		func() error { return validateBidirectional(entries, idx) },
		func() error { return validateAcyclic(entries, idx) },
		func() error { return validateSingleton(entries, constants.AppScreen) },
		func() error { return validateSingleton(entries, constants.InitialScreen) },
		func() error { return validateInitialPosition(entries, idx, order) },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}
