// Package ir classifies schema nodes into the variants the compiler knows how
// to generate. This package is internal and not part of the public API.
package ir

import "github.com/reoring/oaszod/openapi"

// Kind identifies the generation rule for a schema node.
type Kind int

const (
	KindMissing Kind = iota
	KindReference
	KindTypeList
	KindNull
	KindOneOf
	KindAnyOf
	KindAllOf
	KindPrimitiveEnum
	KindPrimitive
	KindArray
	KindRecord
	KindObject
	KindUnknown
	KindUnsupported
)

var kindNames = [...]string{
	KindMissing:       "missing",
	KindReference:     "reference",
	KindTypeList:      "type-list",
	KindNull:          "null",
	KindOneOf:         "oneOf",
	KindAnyOf:         "anyOf",
	KindAllOf:         "allOf",
	KindPrimitiveEnum: "primitive-enum",
	KindPrimitive:     "primitive",
	KindArray:         "array",
	KindRecord:        "record",
	KindObject:        "object",
	KindUnknown:       "unknown",
	KindUnsupported:   "unsupported",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// IsPrimitive reports whether t (lower-cased) is a scalar type name.
func IsPrimitive(t string) bool {
	switch t {
	case "string", "number", "integer", "boolean":
		return true
	}
	return false
}

// Classify returns the generation rule for s. Precedence is load-bearing: a
// node with both $ref and properties is a reference, a node with a type list
// is split before oneOf is looked at, and so on. A one-entry type list is
// indistinguishable from a plain type and classifies as that type.
func Classify(s *openapi.Schema) Kind {
	if s == nil {
		return KindMissing
	}
	if s.Ref != "" {
		return KindReference
	}
	if len(s.Type) > 1 {
		return KindTypeList
	}
	t := s.TypeName()
	if t == "null" {
		return KindNull
	}
	switch {
	case len(s.OneOf) > 0:
		return KindOneOf
	case len(s.AnyOf) > 0:
		return KindAnyOf
	case len(s.AllOf) > 0:
		return KindAllOf
	}
	if IsPrimitive(t) {
		if len(s.Enum) > 0 {
			return KindPrimitiveEnum
		}
		return KindPrimitive
	}
	if t == "array" {
		return KindArray
	}
	if t == "object" || s.Properties != nil || s.AdditionalProperties != nil {
		if _, ok := s.AdditionalProperties.ValueSchema(); ok {
			return KindRecord
		}
		return KindObject
	}
	if t == "" {
		return KindUnknown
	}
	return KindUnsupported
}
