package oaszod

import (
	"fmt"
	"strings"

	"github.com/reoring/oaszod/internal/ir"
	"github.com/reoring/oaszod/internal/jsfmt"
	"github.com/reoring/oaszod/openapi"
)

// enum compiles a primitive with an enum list. No constraint or presence
// chain is added.
func (c *Compiler) enum(s *openapi.Schema, meta Meta) (Expr, error) {
	out := func(code string) (Expr, error) {
		return Expr{Code: code, Schema: s, Kind: ir.KindPrimitiveEnum}, nil
	}

	if s.TypeName() == "string" {
		if len(s.Enum) == 1 {
			return out("z.literal(" + stringMember(s.Enum[0]) + ")")
		}
		members := make([]string, len(s.Enum))
		for i, v := range s.Enum {
			members[i] = stringMember(v)
		}
		return out("z.enum([" + strings.Join(members, ", ") + "])")
	}

	for _, v := range s.Enum {
		if _, ok := v.(string); ok {
			detail := fmt.Sprintf("%s enum with string member %q", s.TypeName(), v)
			if c.opts.StrictEnums {
				return Expr{}, c.fail(meta, detail, ErrUnsupportedSchemaShape)
			}
			c.warnf(meta, "%s compiles to z.never()", detail)
			return out("z.never()")
		}
	}

	literals := make([]string, len(s.Enum))
	for i, v := range s.Enum {
		lit, err := jsfmt.Literal(v)
		if err != nil {
			return Expr{}, c.fail(meta, "enum member", err)
		}
		literals[i] = "z.literal(" + lit + ")"
	}
	if len(literals) == 1 {
		return out(literals[0])
	}
	return out("z.union([" + strings.Join(literals, ", ") + "])")
}

// stringMember renders a member of a string enum. null stays null; any other
// value is written as a string.
func stringMember(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return jsfmt.Quote(x)
	}
	return jsfmt.Quote(fmt.Sprint(v))
}
