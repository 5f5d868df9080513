package schema

import "slices"

// LocatorState distinguishes an unspecified locator from an explicit "none".
type LocatorState int

const (
	LocatorAbsent LocatorState = iota // Not specified; the resolver may apply a convention
	LocatorNone                       // Explicitly no resource
	LocatorPath                       // A concrete resource path
)

// Locator points at the resource a screen's view is defined by.
// The zero value is LocatorAbsent.
type Locator struct {
	state LocatorState
	path  string
}

// NoLocator returns an explicit "no resource" locator.
func NoLocator() Locator {
	return Locator{state: LocatorNone}
}

// PathLocator returns a locator for the given resource path.
func PathLocator(path string) Locator {
	return Locator{state: LocatorPath, path: path}
}

func (l Locator) State() LocatorState { return l.state }

// Path returns the resource path and whether one is set.
func (l Locator) Path() (string, bool) {
	return l.path, l.state == LocatorPath
}

func (l Locator) IsAbsent() bool { return l.state == LocatorAbsent }

func (l Locator) String() string {
	switch l.state {
	case LocatorNone:
		return "none"
	case LocatorPath:
		return l.path
	default:
		return "<absent>"
	}
}

// Entry declares one screen.
type Entry struct {
	Name       string
	Model      ModelFactory
	Controller ControllerFactory
	View       ViewFactory
	Children   []string // Declared children, in display order
	Parent     string   // Empty means no parent
	Resource   Locator
}

// Factories returns the entry's three constructors as a bundle.
func (e Entry) Factories() Factories {
	return Factories{Model: e.Model, Controller: e.Controller, View: e.View}
}

// HasChild reports whether name is among the declared children.
func (e Entry) HasChild(name string) bool {
	return slices.Contains(e.Children, name)
}

func (e Entry) clone() Entry {
	e.Children = slices.Clone(e.Children)
	return e
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = e.clone()
	}
	return out
}
