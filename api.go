package oaszod

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/reoring/oaszod/internal/gen"
	"github.com/reoring/oaszod/openapi"
)

// Compiled is one top-level schema of a compiled document.
type Compiled struct {
	Token string // reference token, e.g. #/components/schemas/User
	Entry
}

// Result is the output of CompileDocument.
type Result struct {
	// Schemas holds every named schema of the document in document order.
	Schemas  []Compiled
	Registry *Registry
	Warnings []string
}

// CompileDocument compiles every named schema of doc. With
// opts.Concurrency > 1 top-level schemas are compiled in parallel against a
// shared registry; the output does not depend on the degree of parallelism.
// The first failure aborts the run and no partial result is returned.
func CompileDocument(ctx context.Context, doc *openapi.Document, opts Options) (*Result, error) {
	ix := doc.Index()
	c := New(NewResolver(ix), opts)
	entries := ix.Entries()
	out := make([]Compiled, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, opts.Concurrency))
	for i, e := range entries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entry, err := c.CompileRef(e.Token)
			if err != nil {
				return err
			}
			out[i] = Compiled{Token: e.Token, Entry: entry}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.log.Debug("document compiled", "schemas", len(out), "registry", c.reg.Len())
	return &Result{Schemas: out, Registry: c.reg, Warnings: c.Warnings()}, nil
}

// RenderOptions configures Render.
type RenderOptions struct {
	// ExportName names the exported map of all schemas. Empty means
	// "schemas".
	ExportName string
	// Header is written verbatim before the import line, e.g. a
	// generated-code banner.
	Header string
}

// Render writes r as one TypeScript module: the zod import, one declaration
// per registry entry with dependencies first, z.lazy for schemas taking part
// in a reference cycle, and an export of the top-level schemas.
func Render(r *Result, opts RenderOptions) ([]byte, error) {
	f := gen.File{Header: opts.Header, ExportName: opts.ExportName}
	for _, e := range r.Registry.Entries() {
		f.Decls = append(f.Decls, gen.Decl{Name: e.Name, Code: e.Code, Refs: e.Refs})
	}
	for _, s := range r.Schemas {
		f.Roots = append(f.Roots, s.Name)
	}
	return gen.Render(f)
}
