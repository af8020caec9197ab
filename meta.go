package oaszod

import (
	"slices"

	"github.com/reoring/oaszod/openapi"
)

// Meta is the context of one compile call. Descending into a child always
// produces a new Meta; the slices are never appended to in place.
type Meta struct {
	// IsRequired reports whether the value must be present in its parent.
	IsRequired bool
	// Name is the property name or canonical schema name of the value.
	Name string
	// Parents holds the ancestor nodes currently being expanded.
	Parents []*openapi.Schema
	// ReferencedBy holds the reference tokens expanded on the way here.
	ReferencedBy []string
	// Path names the value for error messages.
	Path []string
}

// RootMeta returns the metadata of a top-level named schema.
func RootMeta(name string) Meta {
	return Meta{IsRequired: true, Name: name, Path: []string{name}}
}

func extend[T any](s []T, v T) []T {
	return append(slices.Clip(s), v)
}

func (m Meta) under(parent *openapi.Schema) Meta {
	m.Parents = extend(m.Parents, parent)
	return m
}

func (m Meta) at(seg string) Meta {
	m.Path = extend(m.Path, seg)
	return m
}

func (m Meta) required(v bool) Meta {
	m.IsRequired = v
	return m
}

func (m Meta) named(name string) Meta {
	m.Name = name
	return m
}
