package oaszod

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/reoring/oaszod/internal/jsfmt"
	"github.com/reoring/oaszod/openapi"
)

// RefResolver maps reference tokens to schemas and canonical names.
type RefResolver interface {
	// Resolve returns the canonical name and target of token.
	Resolve(token string) (string, *openapi.Schema, error)
	// Normalize returns the canonical name of token without the target.
	Normalize(token string) (string, error)
}

// Resolver is the RefResolver over a document index. Canonical names are
// assigned once, in index order, so they are stable for a document and never
// shared by two targets.
type Resolver struct {
	ix    *openapi.Index
	names map[string]string
}

// NewResolver precomputes canonical names for every schema in ix.
func NewResolver(ix *openapi.Index) *Resolver {
	r := &Resolver{ix: ix, names: make(map[string]string, ix.Len())}
	taken := map[string]bool{}
	for _, e := range ix.Entries() {
		base := Identifier(e.Name)
		name := base
		for n := 2; taken[name]; n++ {
			name = base + "_" + strconv.Itoa(n)
		}
		taken[name] = true
		r.names[e.Token] = name
	}
	return r
}

func (r *Resolver) Resolve(token string) (string, *openapi.Schema, error) {
	name, err := r.Normalize(token)
	if err != nil {
		return "", nil, err
	}
	e, _ := r.ix.Lookup(token)
	return name, e.Schema, nil
}

func (r *Resolver) Normalize(token string) (string, error) {
	if !openapi.IsLocalRef(token) {
		return "", fmt.Errorf("%w: external reference %q", ErrUnresolvedReference, token)
	}
	name, ok := r.names[token]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnresolvedReference, token)
	}
	return name, nil
}

// Identifier turns a schema name into a JavaScript identifier: the name is
// NFC normalised, runes that cannot appear in an identifier become '_', a
// leading digit gets a '_' prefix and reserved words a '_' suffix.
func Identifier(name string) string {
	name = norm.NFC.String(name)
	b := &strings.Builder{}
	for _, r := range name {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	id := b.String()
	switch {
	case id == "":
		return "_"
	case unicode.IsDigit([]rune(id)[0]):
		return "_" + id
	case jsfmt.IsReserved(id):
		return id + "_"
	}
	return id
}
