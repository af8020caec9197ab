package oaszod

import (
	"strings"

	"github.com/reoring/oaszod/internal/ir"
	"github.com/reoring/oaszod/internal/jsfmt"
	"github.com/reoring/oaszod/openapi"
)

// record compiles an object whose additionalProperties is a value schema.
func (c *Compiler) record(s *openapi.Schema, meta Meta) (Expr, error) {
	vs, _ := s.AdditionalProperties.ValueSchema()
	v, err := c.Compile(vs, meta.at("{}").required(true))
	if err != nil {
		return Expr{}, err
	}
	code := "z.record(" + v.Code + ")"
	if c.opts.AllReadonly {
		code += ".readonly()"
	}
	return Expr{Code: code, Schema: s, Kind: ir.KindRecord, Refs: v.Refs}, nil
}

// object compiles properties in document order. Without a required list
// every property is optional through .partial(), unless implicit required
// properties are enabled.
func (c *Compiler) object(s *openapi.Schema, meta Meta) (Expr, error) {
	hasRequired := len(s.Required) > 0
	partial := !c.opts.WithImplicitRequiredProps && !hasRequired

	var (
		fields []string
		props  []Expr
	)
	if s.Properties != nil {
		for p := s.Properties.Oldest(); p != nil; p = p.Next() {
			required := c.opts.WithImplicitRequiredProps
			switch {
			case partial:
				required = true
			case hasRequired:
				required = s.IsRequired(p.Key)
			}
			e, err := c.Compile(p.Value, meta.at(p.Key).named(p.Key).required(required))
			if err != nil {
				return Expr{}, err
			}
			fields = append(fields, jsfmt.PropertyKey(p.Key)+": "+e.Code)
			props = append(props, e)
		}
	}

	b := &strings.Builder{}
	if len(fields) == 0 {
		b.WriteString("z.object({})")
	} else {
		b.WriteString("z.object({ ")
		b.WriteString(strings.Join(fields, ", "))
		b.WriteString(" })")
	}
	if partial {
		b.WriteString(".partial()")
	}
	allowUnknown := c.opts.AdditionalPropertiesDefaultValue
	if s.AdditionalProperties != nil {
		allowUnknown = !s.AdditionalProperties.IsFalse()
	}
	switch {
	case c.opts.StrictObjects:
		b.WriteString(".strict()")
	case allowUnknown:
		b.WriteString(".passthrough()")
	}
	if c.opts.AllReadonly {
		b.WriteString(".readonly()")
	}
	return Expr{Code: b.String(), Schema: s, Kind: ir.KindObject, Refs: mergeRefs(props...)}, nil
}
