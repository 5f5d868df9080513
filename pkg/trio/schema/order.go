package schema

import (
	"slices"

	"github.com/BrandonKowalski/trio/pkg/trio/constants"
)

// orderIndex assigns every entry an ordinal. Traversal starts at app_screen
// (when declared) and visits children in declared order; entries it does not
// reach follow in declaration order, each with its own depth-first visit.
func orderIndex(entries []Entry) map[string]int {
	idx := indexByName(entries)
	order := make(map[string]int, len(entries))

	var visit func(name string)
	visit = func(name string) {
		if _, seen := order[name]; seen {
			return
		}
		i, ok := idx[name]
		if !ok {
			return
		}
		order[name] = len(order)
		for _, c := range entries[i].Children {
			visit(c)
		}
	}

	if _, ok := idx[constants.AppScreen]; ok {
		visit(constants.AppScreen)
	}
	for _, e := range entries {
		visit(e.Name)
	}
	return order
}

// sortByOrder returns entries sorted by their ordinal. Duplicated names keep
// declaration order after the first occurrence.
func sortByOrder(entries []Entry, order map[string]int) []Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b Entry) int {
		return order[a.Name] - order[b.Name]
	})
	return out
}
