// Package gen renders compiled schemas into a TypeScript module. This
// package is internal and not part of the public API.
package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Decl is one named schema declaration.
type Decl struct {
	Name string
	Code string
	Refs []string // names Code refers to
}

// File describes a module to render.
type File struct {
	Header     string
	ExportName string   // defaults to "schemas"
	Decls      []Decl   // every declaration, in a stable order
	Roots      []string // exported names, in export order
}

// Render emits the module. Declarations are ordered dependencies first,
// starting from Roots; declarations that take part in a reference cycle are
// wrapped in z.lazy.
func Render(f File) ([]byte, error) {
	g, err := newGraph(f.Decls)
	if err != nil {
		return nil, err
	}
	for _, r := range f.Roots {
		if _, ok := g.byName[r]; !ok {
			return nil, fmt.Errorf("gen: exported schema %q is not declared", r)
		}
	}
	order := g.order(f.Roots)
	lazy := g.cyclic()

	e := &Emitter{}
	if f.Header != "" {
		e.Raw(strings.TrimRight(f.Header, "\n") + "\n")
		e.Blank()
	}
	e.Line(`import { z } from "zod";`)
	e.Blank()
	for _, i := range order {
		d := f.Decls[i]
		if lazy[i] {
			e.Line("const %s: z.ZodTypeAny = z.lazy(() => %s);", d.Name, d.Code)
			continue
		}
		e.Line("const %s = %s;", d.Name, d.Code)
	}
	if len(f.Roots) > 0 {
		name := f.ExportName
		if name == "" {
			name = "schemas"
		}
		e.Blank()
		e.Block("export const %s =", name)
		for _, r := range f.Roots {
			e.Line("%s,", r)
		}
		e.EndBlockSuffix(";")
	}
	return []byte(e.String()), nil
}

type graph struct {
	byName map[string]int
	edges  [][]int
}

func newGraph(decls []Decl) (*graph, error) {
	g := &graph{byName: make(map[string]int, len(decls)), edges: make([][]int, len(decls))}
	for i, d := range decls {
		if d.Name == "" {
			return nil, errors.New("gen: declaration without a name")
		}
		if _, dup := g.byName[d.Name]; dup {
			return nil, fmt.Errorf("gen: schema %q declared twice", d.Name)
		}
		g.byName[d.Name] = i
	}
	for i, d := range decls {
		for _, r := range d.Refs {
			j, ok := g.byName[r]
			if !ok {
				return nil, fmt.Errorf("gen: %s refers to undeclared schema %q", d.Name, r)
			}
			g.edges[i] = append(g.edges[i], j)
		}
	}
	return g, nil
}

// order returns declarations in DFS post-order from roots, then from every
// declaration not reachable from them.
func (g *graph) order(roots []string) []int {
	visited := make([]bool, len(g.edges))
	out := make([]int, 0, len(g.edges))
	var visit func(int)
	visit = func(i int) {
		if visited[i] {
			return
		}
		visited[i] = true
		for _, j := range g.edges[i] {
			visit(j)
		}
		out = append(out, i)
	}
	for _, r := range roots {
		visit(g.byName[r])
	}
	for i := range g.edges {
		visit(i)
	}
	return out
}

// cyclic marks declarations in a strongly connected component of more than
// one node or with a self edge (Tarjan).
func (g *graph) cyclic() []bool {
	n := len(g.edges)
	var (
		index   = 0
		idx     = make([]int, n)
		low     = make([]int, n)
		onStack = make([]bool, n)
		stack   []int
		out     = make([]bool, n)
	)
	for i := range idx {
		idx[i] = -1
	}
	var connect func(int)
	connect = func(v int) {
		idx[v], low[v] = index, index
		index++
		stack = append(stack, v)
		onStack[v] = true
		for _, w := range g.edges[v] {
			switch {
			case idx[w] < 0:
				connect(w)
				low[v] = min(low[v], low[w])
			case onStack[w]:
				low[v] = min(low[v], idx[w])
			}
		}
		if low[v] != idx[v] {
			return
		}
		var comp []int
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			comp = append(comp, w)
			if w == v {
				break
			}
		}
		if len(comp) > 1 {
			for _, w := range comp {
				out[w] = true
			}
			return
		}
		for _, w := range g.edges[v] {
			if w == v {
				out[v] = true
			}
		}
	}
	for v := range g.edges {
		if idx[v] < 0 {
			connect(v)
		}
	}
	return out
}
