package oaszod

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/reoring/oaszod/internal/chain"
	"github.com/reoring/oaszod/internal/compose"
	"github.com/reoring/oaszod/internal/ir"
	"github.com/reoring/oaszod/internal/jsfmt"
	"github.com/reoring/oaszod/openapi"
)

// Compiler turns schema nodes into zod validator expressions. It owns the
// registry of one compile run and is safe for concurrent use.
type Compiler struct {
	res  RefResolver
	opts Options
	reg  *Registry
	diag *openapi.Collector
	log  *slog.Logger
}

// New returns a Compiler with an empty registry.
func New(res RefResolver, opts Options) *Compiler {
	return &Compiler{
		res:  res,
		opts: opts,
		reg:  NewRegistry(),
		diag: &openapi.Collector{},
		log:  opts.logger(),
	}
}

// Registry returns the registry filled by this compiler.
func (c *Compiler) Registry() *Registry { return c.reg }

// Warnings returns the non-fatal findings collected so far.
func (c *Compiler) Warnings() []string { return c.diag.Warnings() }

// CompileRef compiles the schema token points at as a top-level schema and
// returns its registry entry.
func (c *Compiler) CompileRef(token string) (Entry, error) {
	name, err := c.res.Normalize(token)
	if err != nil {
		return Entry{}, &CompileError{Path: []string{token}, Err: err}
	}
	meta := RootMeta(name)
	meta.Path = nil
	if _, err := c.Compile(&openapi.Schema{Ref: token}, meta); err != nil {
		return Entry{}, err
	}
	e, _ := c.reg.Lookup(name)
	return e, nil
}

// Compile generates the validator expression of s. References are compiled
// into the registry and appear in the result as forward references by
// canonical name.
func (c *Compiler) Compile(s *openapi.Schema, meta Meta) (Expr, error) {
	if s == nil {
		return Expr{}, c.fail(meta, "", ErrMissingSchema)
	}
	if c.opts.SchemaRefiner != nil {
		if r := c.opts.SchemaRefiner(s, meta); r != nil {
			s = r
		}
	}

	kind := ir.Classify(s)
	inner := meta.under(s)
	switch kind {
	case ir.KindReference:
		return c.reference(s, meta)
	case ir.KindTypeList:
		return c.typeList(s, inner)
	case ir.KindNull:
		return Expr{Code: "z.null()", Schema: s, Kind: kind}, nil
	case ir.KindOneOf:
		return c.oneOf(s, inner)
	case ir.KindAnyOf:
		return c.union(s, kind, s.AnyOf, "anyOf", inner)
	case ir.KindAllOf:
		return c.allOf(s, inner)
	case ir.KindPrimitiveEnum:
		return c.enum(s, meta)
	case ir.KindPrimitive:
		return c.primitive(s, meta)
	case ir.KindArray:
		return c.array(s, inner)
	case ir.KindRecord:
		return c.record(s, inner)
	case ir.KindObject:
		return c.object(s, inner)
	case ir.KindUnknown:
		return Expr{Code: "z.unknown()", Schema: s, Kind: kind}, nil
	}
	return Expr{}, c.fail(meta, fmt.Sprintf("type %q", s.Type[0]), ErrUnsupportedSchemaShape)
}

func (c *Compiler) fail(meta Meta, detail string, err error) error {
	return &CompileError{Path: append([]string(nil), meta.Path...), Detail: detail, Err: err}
}

func (c *Compiler) warnf(meta Meta, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if len(meta.Path) > 0 {
		msg = strings.Join(meta.Path, " > ") + ": " + msg
	}
	c.diag.Warnf("%s", msg)
	c.log.Warn(msg)
}

// reference emits a forward reference to the canonical name of s.Ref and
// makes sure the target is in the registry. The target is compiled at most
// once, and never while it is already being expanded further up the chain.
func (c *Compiler) reference(s *openapi.Schema, meta Meta) (Expr, error) {
	name, err := c.res.Normalize(s.Ref)
	if err != nil {
		return Expr{}, c.fail(meta, "", err)
	}
	fwd := Expr{Code: name, Schema: s, Kind: ir.KindReference, Refs: []string{name}}

	for _, tok := range meta.ReferencedBy {
		if anc, err := c.res.Normalize(tok); err == nil && anc == name {
			c.log.Debug("circular reference", "name", name, "chain", meta.ReferencedBy)
			return fwd, nil
		}
	}
	if _, ok := c.reg.Lookup(name); ok {
		c.log.Debug("registry hit", "name", name)
		return fwd, nil
	}

	_, target, err := c.res.Resolve(s.Ref)
	if err != nil {
		return Expr{}, c.fail(meta, "", err)
	}
	c.log.Debug("expanding reference", "ref", s.Ref, "name", name)
	root := meta.under(s).at(name).named(name).required(true)
	root.ReferencedBy = extend(meta.ReferencedBy, s.Ref)
	body, err := c.Compile(target, root)
	if err != nil {
		return Expr{}, err
	}
	c.reg.Put(Entry{Name: name, Code: body.Code, Refs: body.Refs})
	return fwd, nil
}

// typeList compiles a node listing several types as a union of single-typed
// clones.
func (c *Compiler) typeList(s *openapi.Schema, meta Meta) (Expr, error) {
	parts := make([]Expr, 0, len(s.Type))
	for _, t := range s.Type {
		e, err := c.Compile(s.WithType(strings.ToLower(t)), meta)
		if err != nil {
			return Expr{}, err
		}
		parts = append(parts, e)
	}
	return Expr{Code: "z.union([" + join(parts) + "])", Schema: s, Kind: ir.KindTypeList, Refs: mergeRefs(parts...)}, nil
}

func (c *Compiler) branches(list []*openapi.Schema, label string, meta Meta) ([]Expr, error) {
	out := make([]Expr, 0, len(list))
	for i, b := range list {
		e, err := c.Compile(b, meta.at(fmt.Sprintf("%s[%d]", label, i)))
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (c *Compiler) oneOf(s *openapi.Schema, meta Meta) (Expr, error) {
	if len(s.OneOf) == 1 || s.Discriminator == nil || s.Discriminator.PropertyName == "" ||
		compose.HasMultiMemberIntersection(s.OneOf) {
		return c.union(s, ir.KindOneOf, s.OneOf, "oneOf", meta)
	}
	parts, err := c.branches(s.OneOf, "oneOf", meta)
	if err != nil {
		return Expr{}, err
	}
	code := "z.discriminatedUnion(" + jsfmt.Quote(s.Discriminator.PropertyName) + ", [" + join(parts) + "])"
	return Expr{Code: code, Schema: s, Kind: ir.KindOneOf, Refs: mergeRefs(parts...)}, nil
}

// union compiles oneOf and anyOf branches into z.union. anyOf is treated as
// "exactly one of".
func (c *Compiler) union(s *openapi.Schema, kind Kind, list []*openapi.Schema, label string, meta Meta) (Expr, error) {
	parts, err := c.branches(list, label, meta)
	if err != nil {
		return Expr{}, err
	}
	if len(parts) == 1 {
		return Expr{Code: parts[0].Code, Schema: s, Kind: kind, Refs: parts[0].Refs}, nil
	}
	return Expr{Code: "z.union([" + join(parts) + "])", Schema: s, Kind: kind, Refs: mergeRefs(parts...)}, nil
}

// allOf chains the retained branches with .and(), appending the residual
// object that carries requirements stated by required-only branches.
func (c *Compiler) allOf(s *openapi.Schema, meta Meta) (Expr, error) {
	if len(s.AllOf) == 1 {
		return c.union(s, ir.KindAllOf, s.AllOf, "allOf", meta)
	}
	plan, err := compose.InferRequired(s, func(token string) (*openapi.Schema, error) {
		_, t, err := c.res.Resolve(token)
		return t, err
	})
	if err != nil {
		return Expr{}, c.fail(meta, "", err)
	}

	var parts []Expr
	for _, b := range plan.Retained {
		e, err := c.Compile(b.Schema, meta.at(fmt.Sprintf("allOf[%d]", b.Index)))
		if err != nil {
			return Expr{}, err
		}
		parts = append(parts, e)
	}
	if plan.Residual != nil {
		e, err := c.Compile(plan.Residual, meta.at("allOf(required)"))
		if err != nil {
			return Expr{}, err
		}
		parts = append(parts, e)
	}
	if len(parts) == 0 {
		return Expr{}, c.fail(meta, "allOf without branches", ErrUnsupportedSchemaShape)
	}

	b := &strings.Builder{}
	b.WriteString(parts[0].Code)
	for _, p := range parts[1:] {
		b.WriteString(".and(")
		b.WriteString(p.Code)
		b.WriteString(")")
	}
	return Expr{Code: b.String(), Schema: s, Kind: ir.KindAllOf, Refs: mergeRefs(parts...)}, nil
}

func (c *Compiler) chainOptions() chain.Options {
	return chain.Options{
		WithDescription:   c.opts.WithDescription,
		WithDefaultValues: c.opts.WithDefaultValues,
		AllReadonly:       c.opts.AllReadonly,
	}
}

func (c *Compiler) synthesize(s *openapi.Schema, meta Meta) (string, error) {
	r, err := chain.Synthesize(s, meta.IsRequired, c.chainOptions())
	if err != nil {
		return "", c.fail(meta, "", err)
	}
	for _, w := range r.Warnings {
		c.warnf(meta, "%s", w)
	}
	return r.Chain, nil
}

func (c *Compiler) primitive(s *openapi.Schema, meta Meta) (Expr, error) {
	tail, err := c.synthesize(s, meta)
	if err != nil {
		return Expr{}, err
	}
	return Expr{Code: chain.Base(s, meta.IsRequired) + tail, Schema: s, Kind: ir.KindPrimitive}, nil
}

func (c *Compiler) array(s *openapi.Schema, meta Meta) (Expr, error) {
	item := Expr{Code: "z.any()"}
	if s.Items != nil {
		var err error
		if item, err = c.Compile(s.Items, meta.at("[]").required(true)); err != nil {
			return Expr{}, err
		}
	}
	tail, err := c.synthesize(s, meta)
	if err != nil {
		return Expr{}, err
	}
	return Expr{Code: "z.array(" + item.Code + ")" + tail, Schema: s, Kind: ir.KindArray, Refs: item.Refs}, nil
}

func join(parts []Expr) string {
	codes := make([]string, len(parts))
	for i, p := range parts {
		codes[i] = p.Code
	}
	return strings.Join(codes, ", ")
}
