package benchmarks_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/reoring/oaszod"
	"github.com/reoring/oaszod/openapi"
)

// ---- Helpers ----

// wideDoc declares 2n schemas: n objects that refer to their neighbour and
// carry constraint chains, and n allOf wrappers adding a required name.
func wideDoc(n int) []byte {
	b := &strings.Builder{}
	b.WriteString("openapi: 3.0.3\ncomponents:\n  schemas:\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(b, "    Item%d:\n", i)
		b.WriteString("      type: object\n      required: [id, name]\n      properties:\n")
		b.WriteString("        id: {type: integer, minimum: 1}\n")
		b.WriteString("        name: {type: string, minLength: 3, maxLength: 255, pattern: '^[a-z][a-z0-9-]*$'}\n")
		b.WriteString("        email: {type: string, format: email, x-validation-messages: {email: invalid, unique: taken}}\n")
		b.WriteString("        tags: {type: array, items: {type: string}, maxItems: 10}\n")
		fmt.Fprintf(b, "        next: {$ref: '#/components/schemas/Item%d'}\n", (i+1)%n)
		fmt.Fprintf(b, "    Item%dWithOwner:\n", i)
		fmt.Fprintf(b, "      allOf:\n        - $ref: '#/components/schemas/Item%d'\n        - required: [email]\n", i)
	}
	return []byte(b.String())
}

func loadDoc(tb testing.TB, data []byte) *openapi.Document {
	tb.Helper()
	doc, _, err := openapi.Load(data)
	if err != nil {
		tb.Fatalf("load failed: %v", err)
	}
	return doc
}

// ---- Benchmarks ----

func Benchmark_Load_Wide(b *testing.B) {
	data := wideDoc(200)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := openapi.Load(data); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_CompileDocument_Wide(b *testing.B) {
	doc := loadDoc(b, wideDoc(200))
	for _, workers := range []int{1, 4, 16} {
		b.Run(fmt.Sprintf("concurrency=%d", workers), func(b *testing.B) {
			opts := oaszod.DefaultOptions()
			opts.WithDescription = true
			opts.Concurrency = workers
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := oaszod.CompileDocument(context.Background(), doc, opts); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func Benchmark_Render_Wide(b *testing.B) {
	res, err := oaszod.CompileDocument(context.Background(), loadDoc(b, wideDoc(200)), oaszod.DefaultOptions())
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := oaszod.Render(res, oaszod.RenderOptions{}); err != nil {
			b.Fatal(err)
		}
	}
}

func TestWideDoc_Compiles(t *testing.T) {
	res, err := oaszod.CompileDocument(context.Background(), loadDoc(t, wideDoc(5)), oaszod.DefaultOptions())
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if got := len(res.Schemas); got != 10 {
		t.Fatalf("expected 10 schemas, got %d", got)
	}
	e, ok := res.Registry.Lookup("Item0WithOwner")
	if !ok {
		t.Fatal("Item0WithOwner not registered")
	}
	if !strings.HasPrefix(e.Code, "Item0.and(") {
		t.Fatalf("unexpected code: %s", e.Code)
	}
}
