package schema

// indexByName maps each name to its first position in entries.
func indexByName(entries []Entry) map[string]int {
	idx := make(map[string]int, len(entries))
	for i, e := range entries {
		if _, ok := idx[e.Name]; !ok {
			idx[e.Name] = i
		}
	}
	return idx
}

// fillDefaults gives every entry a non-nil children list. Parent already
// defaults to "" and the resource locator is left untouched: the resolver
// must still be able to tell "not specified" apart from "none".
func fillDefaults(entries []Entry) {
	for i := range entries {
		if entries[i].Children == nil {
			entries[i].Children = []string{}
		}
	}
}

// propagateParents sets each declared child's parent to the entry that lists
// it. Children lists are the source of truth for this direction.
func propagateParents(entries []Entry, idx map[string]int) {
	for _, e := range entries {
		for _, c := range e.Children {
			if ci, ok := idx[c]; ok {
				entries[ci].Parent = e.Name
			}
		}
	}
}

// propagateChildren appends each entry to its declared parent's children.
func propagateChildren(entries []Entry, idx map[string]int) {
	for _, e := range entries {
		if e.Parent == "" {
			continue
		}
		pi, ok := idx[e.Parent]
		if !ok {
			continue
		}
		if !entries[pi].HasChild(e.Name) {
			entries[pi].Children = append(entries[pi].Children, e.Name)
		}
	}
}

// resolveLocators replaces each entry's locator with the resolver's answer.
func resolveLocators(entries []Entry, r Resolver) error {
	for i := range entries {
		loc, err := r.Resolve(entries[i])
		if err != nil {
			return newError("resolve", entries[i].Name, err, "locator %s", entries[i].Resource)
		}
		entries[i].Resource = loc
	}
	return nil
}
