package oaszod_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/oaszod"
)

const usersDoc = `
openapi: 3.0.3
components:
  schemas:
    User:
      type: object
      required: [id, name]
      properties:
        id: {type: integer}
        name: {type: string, minLength: 3, maxLength: 255}
        friend: {$ref: "#/components/schemas/User"}
        tags: {type: array, items: {type: string}}
    Base:
      type: object
      properties:
        name: {type: string}
        email: {type: string, format: email}
    Person:
      allOf:
        - $ref: "#/components/schemas/Base"
        - required: [name, email]
        - required: [email]
    Cat:
      type: object
      required: [kind]
      properties:
        kind: {type: string, enum: [cat]}
    Dog:
      type: object
      required: [kind]
      properties:
        kind: {type: string, enum: [dog]}
    Bird:
      type: object
      required: [kind]
      properties:
        kind: {type: string, enum: [bird]}
    Pet:
      oneOf:
        - $ref: "#/components/schemas/Cat"
        - $ref: "#/components/schemas/Dog"
        - $ref: "#/components/schemas/Bird"
      discriminator:
        propertyName: kind
    LoosePet:
      oneOf:
        - $ref: "#/components/schemas/Cat"
        - allOf:
            - $ref: "#/components/schemas/Dog"
            - type: object
              properties:
                x: {type: string}
      discriminator:
        propertyName: kind
    Either:
      anyOf:
        - {type: string}
        - {type: integer}
`

func compileDoc(t *testing.T, src string, opts oaszod.Options) *oaszod.Result {
	t.Helper()
	res, err := oaszod.CompileDocument(context.Background(), mustDoc(t, src), opts)
	require.NoError(t, err)
	return res
}

func codes(res *oaszod.Result) map[string]string {
	out := map[string]string{}
	for _, s := range res.Schemas {
		out[s.Name] = s.Code
	}
	return out
}

func TestCompileDocument_SelfReference(t *testing.T) {
	res := compileDoc(t, usersDoc, oaszod.DefaultOptions())
	e, ok := res.Registry.Lookup("User")
	require.True(t, ok)
	assert.Equal(t, `z.object({ id: z.number().int(), name: z.string().min(3).max(255), friend: User, tags: z.array(z.string()).optional() }).passthrough()`, e.Code)
	assert.Equal(t, []string{"User"}, e.Refs)
	assert.Equal(t, 1, strings.Count(strings.Join(res.Registry.Names(), ","), "User"))
}

func TestCompileDocument_AllOfRequiredOnce(t *testing.T) {
	got := codes(compileDoc(t, usersDoc, oaszod.DefaultOptions()))
	assert.Equal(t, `z.object({ name: z.string(), email: z.string().email() }).partial().passthrough()`, got["Base"])
	assert.Equal(t, `Base.and(z.object({ name: z.string(), email: z.string().email() }).passthrough())`, got["Person"])
	assert.Equal(t, 1, strings.Count(got["Person"], "email:"))
}

func TestCompileDocument_Unions(t *testing.T) {
	got := codes(compileDoc(t, usersDoc, oaszod.DefaultOptions()))
	assert.Equal(t, `z.discriminatedUnion("kind", [Cat, Dog, Bird])`, got["Pet"])
	assert.Equal(t, `z.object({ kind: z.literal("cat") }).passthrough()`, got["Cat"])
	assert.Equal(t, `z.union([Cat, Dog.and(z.object({ x: z.string() }).partial().passthrough())])`, got["LoosePet"])
	assert.Equal(t, `z.union([z.string(), z.number().int()])`, got["Either"])
}

func TestCompileDocument_Order(t *testing.T) {
	res := compileDoc(t, usersDoc, oaszod.DefaultOptions())
	var names []string
	for _, s := range res.Schemas {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"User", "Base", "Person", "Cat", "Dog", "Bird", "Pet", "LoosePet", "Either"}, names)
	assert.Equal(t, "#/components/schemas/Person", res.Schemas[2].Token)
	assert.Equal(t, []string{"Base"}, res.Schemas[2].Refs)
}

func cyclicDoc(n int) string {
	b := &strings.Builder{}
	b.WriteString("components:\n  schemas:\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(b, "    S%d:\n      type: object\n      required: [next]\n      properties:\n", i)
		fmt.Fprintf(b, "        next: {$ref: \"#/components/schemas/S%d\"}\n", (i+1)%n)
		fmt.Fprintf(b, "        back: {$ref: \"#/components/schemas/S%d\"}\n", (i+n-1)%n)
		fmt.Fprintf(b, "        self: {type: array, items: {$ref: \"#/components/schemas/S%d\"}}\n", i)
	}
	return b.String()
}

func TestCompileDocument_ConcurrencyDoesNotChangeOutput(t *testing.T) {
	src := cyclicDoc(24)
	seq := compileDoc(t, src, oaszod.DefaultOptions())

	opts := oaszod.DefaultOptions()
	opts.Concurrency = 4
	for i := 0; i < 5; i++ {
		par := compileDoc(t, src, opts)
		assert.Equal(t, seq.Schemas, par.Schemas)
		assert.Equal(t, seq.Registry.Entries(), par.Registry.Entries())
	}
	e, _ := seq.Registry.Lookup("S3")
	assert.Equal(t, `z.object({ next: S4, back: S2, self: z.array(S3).optional() }).passthrough()`, e.Code)
	assert.Equal(t, []string{"S4", "S2", "S3"}, e.Refs)
}

func TestCompileDocument_UnresolvedReference(t *testing.T) {
	src := `{"components": {"schemas": {
	  "User": {"type": "object", "properties": {"address": {"$ref": "#/components/schemas/Address"}}}
	}}}`
	_, err := oaszod.CompileDocument(context.Background(), mustDoc(t, src), oaszod.DefaultOptions())
	require.ErrorIs(t, err, oaszod.ErrUnresolvedReference)
	assert.EqualError(t, err, "unresolved reference: #/components/schemas/Address at User > address")
}

func TestCompileDocument_ErrorThroughReference(t *testing.T) {
	src := `{"components": {"schemas": {
	  "A": {"type": "object", "properties": {"b": {"$ref": "#/components/schemas/B"}}},
	  "B": {"type": "object", "properties": {"c": {"type": "tuple"}}}
	}}}`
	opts := oaszod.DefaultOptions()
	opts.Concurrency = 2
	_, err := oaszod.CompileDocument(context.Background(), mustDoc(t, src), opts)
	require.ErrorIs(t, err, oaszod.ErrUnsupportedSchemaShape)
	ce, ok := oaszod.AsCompileError(err)
	require.True(t, ok)
	assert.Equal(t, "c", ce.Path[len(ce.Path)-1])
}

func TestCompileDocument_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := oaszod.CompileDocument(ctx, mustDoc(t, usersDoc), oaszod.DefaultOptions())
	require.ErrorIs(t, err, context.Canceled)
}

func TestRender_Document(t *testing.T) {
	src := `
components:
  schemas:
    Tree:
      type: object
      required: [children]
      properties:
        children: {type: array, items: {$ref: "#/components/schemas/Tree"}}
        label: {$ref: "#/components/schemas/Label"}
    Label: {type: string, maxLength: 10}
`
	out, err := oaszod.Render(compileDoc(t, src, oaszod.DefaultOptions()), oaszod.RenderOptions{Header: "// Code generated by oaszod. DO NOT EDIT."})
	require.NoError(t, err)
	assert.Equal(t, `// Code generated by oaszod. DO NOT EDIT.

import { z } from "zod";

const Label = z.string().max(10);
const Tree: z.ZodTypeAny = z.lazy(() => z.object({ children: z.array(Tree), label: Label }).passthrough());

export const schemas = {
  Tree,
  Label,
};
`, string(out))
}
