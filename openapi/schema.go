package openapi

import (
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Properties keeps object properties in document order.
type Properties = orderedmap.OrderedMap[string, *Schema]

// Messages maps a validation rule name to a backend supplied message, in
// document order.
type Messages = orderedmap.OrderedMap[string, string]

// NewProperties returns an empty ordered property map.
func NewProperties() *Properties { return orderedmap.New[string, *Schema]() }

// NewMessages returns an empty ordered message map.
func NewMessages() *Messages { return orderedmap.New[string, string]() }

// Schema is one node of an OpenAPI 3.x / Swagger 2 / JSON Schema document.
// Which keywords are populated decides how the node is compiled; see
// internal/ir.Classify for the precedence.
type Schema struct {
	Ref         string `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type        Types  `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string `json:"format,omitempty" yaml:"format,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Nullable    bool   `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Enum        []any  `json:"enum,omitempty" yaml:"enum,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`

	// Number
	Minimum          *Number    `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum          *Number    `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	ExclusiveMinimum *Exclusive `json:"exclusiveMinimum,omitempty" yaml:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *Exclusive `json:"exclusiveMaximum,omitempty" yaml:"exclusiveMaximum,omitempty"`
	MultipleOf       *Number    `json:"multipleOf,omitempty" yaml:"multipleOf,omitempty"`

	// String
	MinLength *int64 `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int64 `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty" yaml:"items,omitempty"`
	MinItems *int64  `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems *int64  `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`

	// Object
	Properties           *Properties           `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string              `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties *AdditionalProperties `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	// Composition
	OneOf         []*Schema      `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`
	AnyOf         []*Schema      `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
	AllOf         []*Schema      `json:"allOf,omitempty" yaml:"allOf,omitempty"`
	Discriminator *Discriminator `json:"discriminator,omitempty" yaml:"discriminator,omitempty"`

	// ValidationMessages carries x-validation-messages: custom messages keyed
	// by rule name ("min", "max", "regex", "email", "required", "unique", ...).
	ValidationMessages *Messages `json:"x-validation-messages,omitempty" yaml:"x-validation-messages,omitempty"`
}

// Discriminator holds the discriminator of a oneOf schema.
type Discriminator struct {
	PropertyName string            `json:"propertyName" yaml:"propertyName"`
	Mapping      map[string]string `json:"mapping,omitempty" yaml:"mapping,omitempty"`
}

// TypeName returns the lower-cased single type of the node, or "" when the
// node has no type or lists several.
func (s *Schema) TypeName() string {
	if s == nil || len(s.Type) != 1 {
		return ""
	}
	return strings.ToLower(s.Type[0])
}

// WithType returns a shallow copy of s whose type is the single name t.
func (s *Schema) WithType(t string) *Schema {
	c := *s
	c.Type = Types{t}
	return &c
}

// IsEmpty reports whether no keyword is set (the `{}` schema).
func (s *Schema) IsEmpty() bool {
	return s == nil || reflect.ValueOf(*s).IsZero()
}

// Property returns the named property schema.
func (s *Schema) Property(name string) (*Schema, bool) {
	if s == nil || s.Properties == nil {
		return nil, false
	}
	return s.Properties.Get(name)
}

// PropertyNames lists property names in document order.
func (s *Schema) PropertyNames() []string {
	if s == nil || s.Properties == nil {
		return nil
	}
	names := make([]string, 0, s.Properties.Len())
	for p := s.Properties.Oldest(); p != nil; p = p.Next() {
		names = append(names, p.Key)
	}
	return names
}

// IsRequired reports whether name is listed under required.
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Message returns the x-validation-messages entry for rule.
func (s *Schema) Message(rule string) (string, bool) {
	if s == nil || s.ValidationMessages == nil {
		return "", false
	}
	return s.ValidationMessages.Get(rule)
}

// HasComposition reports whether oneOf, anyOf or allOf is present.
func (s *Schema) HasComposition() bool {
	return len(s.OneOf) > 0 || len(s.AnyOf) > 0 || len(s.AllOf) > 0
}
