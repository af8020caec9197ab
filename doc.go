// Package oaszod compiles OpenAPI schemas into zod validator expressions.
//
// The package provides:
//
// - A compiler from one schema node to one zod expression (Compiler.Compile)
// - Whole-document compilation with shared, first-writer-wins registration of referenced schemas (CompileDocument)
// - Rendering of a compiled document as a TypeScript module (Render)
// - Custom error messages through the x-validation-messages extension
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Document loading lives in openapi/, the CLI under cmd/oaszod.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	doc, _, err := openapi.LoadFile("openapi.yaml")
//	res, err := oaszod.CompileDocument(ctx, doc, oaszod.DefaultOptions())
//	ts, err := oaszod.Render(res, oaszod.RenderOptions{})
//
// A single schema can be compiled against a document index:
//
//	c := oaszod.New(oaszod.NewResolver(doc.Index()), opts)
//	expr, err := c.Compile(schema, oaszod.RootMeta("User"))
package oaszod
