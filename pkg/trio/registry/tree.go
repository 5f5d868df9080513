package registry

import (
	"fmt"
	"slices"

	"github.com/BrandonKowalski/trio/pkg/trio/schema"
)

// Tree is the external rendering tree views are attached to. A nil parent
// means the root position. Implementations own the views once attached;
// the registry only holds references.
type Tree interface {
	Attach(parent, child schema.View) error
	Detach(parent, child schema.View) error
	Children(parent schema.View) []schema.View
}

// MemoryTree is an in-memory Tree. It is useful for tests, tooling and
// headless runs. A detached view keeps its own children, so a subtree can
// be moved by detaching and reattaching its top view.
type MemoryTree struct {
	roots    []schema.View
	children map[schema.View][]schema.View
	parents  map[schema.View]schema.View
}

// NewMemoryTree creates an empty tree.
func NewMemoryTree() *MemoryTree {
	return &MemoryTree{
		children: make(map[schema.View][]schema.View),
		parents:  make(map[schema.View]schema.View),
	}
}

func (t *MemoryTree) Attach(parent, child schema.View) error {
	if child == nil {
		return fmt.Errorf("memory tree: attach nil view")
	}
	if _, attached := t.parents[child]; attached {
		return fmt.Errorf("memory tree: %w", ErrAlreadyAttached)
	}

	if parent == nil {
		t.roots = append(t.roots, child)
	} else {
		t.children[parent] = append(t.children[parent], child)
	}
	t.parents[child] = parent
	return nil
}

func (t *MemoryTree) Detach(parent, child schema.View) error {
	current, attached := t.parents[child]
	if !attached || current != parent {
		return fmt.Errorf("memory tree: %w", ErrNotAttached)
	}

	if parent == nil {
		t.roots = remove(t.roots, child)
	} else {
		t.children[parent] = remove(t.children[parent], child)
	}
	delete(t.parents, child)
	return nil
}

func (t *MemoryTree) Children(parent schema.View) []schema.View {
	if parent == nil {
		return slices.Clone(t.roots)
	}
	return slices.Clone(t.children[parent])
}

// Parent returns the view child is attached to, and whether it is attached.
func (t *MemoryTree) Parent(child schema.View) (schema.View, bool) {
	p, ok := t.parents[child]
	return p, ok
}

// Attached reports whether v is reachable from the root position.
func (t *MemoryTree) Attached(v schema.View) bool {
	for {
		p, ok := t.parents[v]
		if !ok {
			return false
		}
		if p == nil {
			return true
		}
		v = p
	}
}

func remove(views []schema.View, v schema.View) []schema.View {
	i := slices.Index(views, v)
	if i < 0 {
		return views
	}
	return slices.Delete(views, i, i+1)
}
