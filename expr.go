package oaszod

import (
	"github.com/reoring/oaszod/internal/ir"
	"github.com/reoring/oaszod/openapi"
)

// Kind is the generation rule a schema node was compiled with.
type Kind = ir.Kind

const (
	KindReference     = ir.KindReference
	KindTypeList      = ir.KindTypeList
	KindNull          = ir.KindNull
	KindOneOf         = ir.KindOneOf
	KindAnyOf         = ir.KindAnyOf
	KindAllOf         = ir.KindAllOf
	KindPrimitiveEnum = ir.KindPrimitiveEnum
	KindPrimitive     = ir.KindPrimitive
	KindArray         = ir.KindArray
	KindRecord        = ir.KindRecord
	KindObject        = ir.KindObject
	KindUnknown       = ir.KindUnknown
)

// Expr is a generated validator expression.
type Expr struct {
	Code   string
	Schema *openapi.Schema // node the code was generated from
	Kind   Kind
	// Refs lists, in first-use order, the canonical names the code refers to
	// by forward reference.
	Refs []string
}

func (e Expr) String() string { return e.Code }

// mergeRefs returns the distinct refs of exprs in first-use order.
func mergeRefs(exprs ...Expr) []string {
	var out []string
	seen := map[string]bool{}
	for _, e := range exprs {
		for _, r := range e.Refs {
			if !seen[r] {
				seen[r] = true
				out = append(out, r)
			}
		}
	}
	return out
}
