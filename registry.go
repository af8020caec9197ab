package oaszod

import (
	"slices"
	"sync"
)

// Entry is the generated code of one named schema.
type Entry struct {
	Name string
	Code string
	// Refs lists the schema names Code refers to.
	Refs []string
}

// Registry maps canonical schema names to generated code for one compile
// run. A name is written once; later writes are ignored. Entries are stored
// only when complete, so a reader never sees a partial one.
type Registry struct {
	mu      sync.Mutex
	entries map[string]Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: map[string]Entry{}}
}

// Lookup returns the entry stored under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[name]
	return e, ok
}

// Put stores e unless its name is taken and reports whether it was stored.
func (r *Registry) Put(e Entry) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[e.Name]; ok {
		return false
	}
	e.Refs = slices.Clone(e.Refs)
	r.entries[e.Name] = e
	return true
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Names returns the stored names sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.entries))
	for n := range r.entries {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Entries returns all entries sorted by name.
func (r *Registry) Entries() []Entry {
	names := r.Names()
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, 0, len(names))
	for _, n := range names {
		out = append(out, r.entries[n])
	}
	return out
}
