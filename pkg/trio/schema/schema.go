package schema

import (
	"maps"
	"slices"

	"go.uber.org/atomic"
)

// Schema is a validated, ordered set of screen declarations. It is
// immutable; accessors return copies.
type Schema struct {
	raw      []Entry
	resolver Resolver
	entries  []Entry
	index    map[string]int // name -> position in entries
	order    map[string]int // name -> ordinal
}

// Option configures Build.
type Option func(*buildOptions)

type buildOptions struct {
	resolver Resolver
}

// WithResolver sets the resource locator resolver. Without it, declared
// locators are kept as they are.
func WithResolver(r Resolver) Option {
	return func(o *buildOptions) {
		o.resolver = r
	}
}

// Build runs defaulting, reconciliation, locator resolution, ordering and
// validation over raw, returning the finalized schema or the first violation.
// raw is not modified.
func Build(raw []Entry, opts ...Option) (*Schema, error) {
	o := buildOptions{resolver: KeepResolver}
	for _, opt := range opts {
		opt(&o)
	}
	return build(cloneEntries(raw), o.resolver)
}

func build(raw []Entry, resolver Resolver) (*Schema, error) {
	entries := cloneEntries(raw)

	if err := validateNames(entries); err != nil {
		return nil, err
	}
	if err := validateFactories(entries); err != nil {
		return nil, err
	}

	idx := indexByName(entries)
	fillDefaults(entries)
	propagateParents(entries, idx)
	propagateChildren(entries, idx)

	if err := resolveLocators(entries, resolver); err != nil {
		return nil, err
	}

	order := orderIndex(entries)
	if err := validate(entries, order); err != nil {
		return nil, err
	}

	sorted := sortByOrder(entries, order)
	return &Schema{
		raw:      raw,
		resolver: resolver,
		entries:  sorted,
		index:    indexByName(sorted),
		order:    order,
	}, nil
}

// Rebuild re-runs the full pipeline over the original declarations and
// returns a new schema. The receiver is left untouched.
func (s *Schema) Rebuild() (*Schema, error) {
	return build(cloneEntries(s.raw), s.resolver)
}

// Entries returns the finalized entries in order.
func (s *Schema) Entries() []Entry {
	return cloneEntries(s.entries)
}

// Names returns screen names in order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}
	return names
}

// Lookup returns the finalized entry for name.
func (s *Schema) Lookup(name string) (Entry, bool) {
	i, ok := s.index[name]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i].clone(), true
}

// Ordinal returns the position assigned to name by the ordering pass.
func (s *Schema) Ordinal(name string) (int, bool) {
	o, ok := s.order[name]
	return o, ok
}

// OrderIndex returns a copy of the name -> ordinal map.
func (s *Schema) OrderIndex() map[string]int {
	return maps.Clone(s.order)
}

// Len returns the number of screens.
func (s *Schema) Len() int {
	return len(s.entries)
}

// Descendants returns every screen below name, depth-first in declared order.
func (s *Schema) Descendants(name string) []string {
	var out []string
	var walk func(n string)
	walk = func(n string) {
		e, ok := s.Lookup(n)
		if !ok {
			return
		}
		for _, c := range e.Children {
			out = append(out, c)
			walk(c)
		}
	}
	walk(name)
	return out
}

// Ancestors returns name's parent chain, nearest first.
func (s *Schema) Ancestors(name string) []string {
	var out []string
	e, ok := s.Lookup(name)
	for ok && e.Parent != "" {
		out = append(out, e.Parent)
		e, ok = s.Lookup(e.Parent)
	}
	return out
}

// Source produces raw declarations, typically by reading a file.
type Source func() ([]Entry, error)

// Cache holds the current schema for a Source. Get builds it on first use;
// Rebuild re-reads the source and swaps in the new schema only when it is
// valid, so readers never observe a partial result.
type Cache struct {
	source  Source
	opts    []Option
	current atomic.Pointer[Schema]
	builds  atomic.Int64
}

// NewCache returns a cache over source. Nothing is read until Get.
func NewCache(source Source, opts ...Option) *Cache {
	return &Cache{source: source, opts: slices.Clone(opts)}
}

// Get returns the cached schema, building it if needed.
func (c *Cache) Get() (*Schema, error) {
	if s := c.current.Load(); s != nil {
		return s, nil
	}
	return c.Rebuild()
}

// Rebuild reads the source again and replaces the cached schema. On failure
// the previous schema stays in place and the error is returned.
func (c *Cache) Rebuild() (*Schema, error) {
	raw, err := c.source()
	if err != nil {
		return nil, err
	}
	s, err := Build(raw, c.opts...)
	if err != nil {
		return nil, err
	}
	c.current.Store(s)
	c.builds.Inc()
	return s, nil
}

// Builds returns how many schemas the cache has successfully built.
func (c *Cache) Builds() int64 {
	return c.builds.Load()
}
