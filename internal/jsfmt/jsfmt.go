// Package jsfmt formats Go values as JavaScript source literals.
package jsfmt

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"
)

// IsIdentifier reports whether name can be written as a bare property key.
func IsIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '$':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// PropertyKey returns name as an object literal key, quoted when needed.
func PropertyKey(name string) string {
	if IsIdentifier(name) {
		return name
	}
	return Quote(name)
}

// Escape escapes s for the body of a double-quoted string literal.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 || r == utf8.RuneError {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Quote returns s as a double-quoted string literal.
func Quote(s string) string { return `"` + Escape(s) + `"` }

// Template returns s as a template literal, keeping line breaks verbatim.
func Template(s string) string {
	r := strings.NewReplacer("\\", `\\`, "`", "\\`", "${", `\${`)
	return "`" + r.Replace(s) + "`"
}

// Literal returns v as a JavaScript literal. Numbers keep their source
// spelling when decoded as json.Number.
func Literal(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "null", nil
	case string:
		return Quote(x), nil
	case bool:
		return strconv.FormatBool(x), nil
	case json.Number:
		return x.String(), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float64:
		return Float(x), nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("jsfmt: literal %T: %w", v, err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Float formats f the way JavaScript prints numbers in source.
func Float(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

var reserved = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`break case catch class const continue debugger default delete do
		else enum export extends false finally for function if import in instanceof new null return
		super switch this throw true try typeof var void while with yield let static implements
		interface package private protected public await arguments eval undefined NaN Infinity`) {
		reserved[w] = struct{}{}
	}
}

// IsReserved reports whether name cannot be used as a binding identifier.
func IsReserved(name string) bool {
	_, ok := reserved[name]
	return ok
}
