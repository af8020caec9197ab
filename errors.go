package oaszod

import (
	"errors"
	"strings"
)

// Compile failures. They reach the caller wrapped in a *CompileError naming
// the schema path that triggered them; use errors.Is to test for them.
var (
	// ErrMissingSchema reports an absent node where a schema was expected.
	ErrMissingSchema = errors.New("missing schema")
	// ErrUnresolvedReference reports a $ref the document index cannot serve.
	ErrUnresolvedReference = errors.New("unresolved reference")
	// ErrUnsupportedSchemaShape reports a node no generation rule accepts.
	ErrUnsupportedSchemaShape = errors.New("unsupported schema shape")
)

// CompileError is the error returned by every failed compile. It is created
// once where the failure happens and passed up unchanged.
type CompileError struct {
	Path   []string // schema path from the root, e.g. [User address city]
	Detail string   // offending shape or token, optional
	Err    error
}

func (e *CompileError) Error() string {
	b := &strings.Builder{}
	b.WriteString(e.Err.Error())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, " > "))
	}
	return b.String()
}

func (e *CompileError) Unwrap() error { return e.Err }

// AsCompileError extracts a *CompileError using errors.As internally.
func AsCompileError(err error) (*CompileError, bool) {
	var ce *CompileError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
