package openapi

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Schemas is a named, ordered collection of schemas.
type Schemas = orderedmap.OrderedMap[string, *Schema]

// Reference prefixes recognised by the index, in lookup order.
const (
	ComponentsPrefix  = "#/components/schemas/"
	DefinitionsPrefix = "#/definitions/"
	DefsPrefix        = "#/$defs/"
)

// Document is the subset of an OpenAPI / Swagger / JSON Schema document the
// compiler needs: the named schemas that references point at.
type Document struct {
	OpenAPI     string      `json:"openapi,omitempty" yaml:"openapi,omitempty"`
	Swagger     string      `json:"swagger,omitempty" yaml:"swagger,omitempty"`
	Components  *Components `json:"components,omitempty" yaml:"components,omitempty"`
	Definitions *Schemas    `json:"definitions,omitempty" yaml:"definitions,omitempty"`
	Defs        *Schemas    `json:"$defs,omitempty" yaml:"$defs,omitempty"`
}

// Components holds components.schemas.
type Components struct {
	Schemas *Schemas `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

// NamedSchema is one indexed schema.
type NamedSchema struct {
	Name   string // key under its section, unescaped
	Token  string // local reference token, e.g. #/components/schemas/User
	Schema *Schema
}

// Index maps local reference tokens to schemas, keeping document order.
type Index struct {
	entries []NamedSchema
	byToken map[string]int
}

// NewIndex builds an index over the given entries. Later duplicates of a
// token are ignored.
func NewIndex(entries ...NamedSchema) *Index {
	ix := &Index{byToken: make(map[string]int, len(entries))}
	for _, e := range entries {
		ix.add(e)
	}
	return ix
}

func (ix *Index) add(e NamedSchema) {
	if _, ok := ix.byToken[e.Token]; ok {
		return
	}
	ix.byToken[e.Token] = len(ix.entries)
	ix.entries = append(ix.entries, e)
}

// Lookup returns the schema a token points at.
func (ix *Index) Lookup(token string) (NamedSchema, bool) {
	if ix == nil {
		return NamedSchema{}, false
	}
	i, ok := ix.byToken[token]
	if !ok {
		return NamedSchema{}, false
	}
	return ix.entries[i], true
}

// Entries returns all indexed schemas in document order.
func (ix *Index) Entries() []NamedSchema {
	if ix == nil {
		return nil
	}
	return append([]NamedSchema(nil), ix.entries...)
}

// Len returns the number of indexed schemas.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.entries)
}

// Index collects components.schemas, definitions and $defs.
func (d *Document) Index() *Index {
	ix := NewIndex()
	if d == nil {
		return ix
	}
	if d.Components != nil {
		addSection(ix, ComponentsPrefix, d.Components.Schemas)
	}
	addSection(ix, DefinitionsPrefix, d.Definitions)
	addSection(ix, DefsPrefix, d.Defs)
	return ix
}

func addSection(ix *Index, prefix string, section *Schemas) {
	if section == nil {
		return
	}
	for p := section.Oldest(); p != nil; p = p.Next() {
		ix.add(NamedSchema{Name: p.Key, Token: prefix + EscapePointer(p.Key), Schema: p.Value})
	}
}

// IsLocalRef reports whether a reference token points into this document.
func IsLocalRef(token string) bool { return strings.HasPrefix(token, "#/") }

// EscapePointer escapes one JSON pointer segment (RFC 6901).
func EscapePointer(seg string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(seg)
}
