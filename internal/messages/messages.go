// Package messages resolves backend supplied validation messages
// (x-validation-messages) and assembles description text.
package messages

import (
	"strings"

	"github.com/reoring/oaszod/internal/jsfmt"
	"github.com/reoring/oaszod/openapi"
)

// Source provides custom messages keyed by rule name.
// *openapi.Schema implements it.
type Source interface {
	Message(rule string) (string, bool)
}

// synonyms lists the fallback rule names consulted after the rule itself.
var synonyms = map[string][]string{
	"gte":   {"min"},
	"lte":   {"max"},
	"regex": {"pattern"},
}

// BackendRules are rules only a server can check. Their messages become
// description text instead of executable checks.
var BackendRules = []string{"exists", "unique", "same", "confirmed", "in"}

// NotePrefix introduces the backend note block.
const NotePrefix = "⚠️ Backend validations: "

// Lookup returns the message for rule, falling back to its synonyms.
func Lookup(src Source, rule string) (string, bool) {
	if src == nil {
		return "", false
	}
	if m, ok := src.Message(rule); ok {
		return m, true
	}
	for _, alt := range synonyms[rule] {
		if m, ok := src.Message(alt); ok {
			return m, true
		}
	}
	return "", false
}

// Format looks up the message for a string format: the format name first,
// then "format-<name>".
func Format(src Source, format string) (string, bool) {
	if m, ok := Lookup(src, format); ok {
		return m, true
	}
	return Lookup(src, "format-"+format)
}

// Arg renders a trailing message argument (`, "msg"`), or "" when msg is
// empty.
func Arg(msg string) string {
	if msg == "" {
		return ""
	}
	return ", " + jsfmt.Quote(msg)
}

// IsBackendRule reports whether rule is in BackendRules.
func IsBackendRule(rule string) bool {
	for _, r := range BackendRules {
		if r == rule {
			return true
		}
	}
	return false
}

// BackendNotes returns the messages of backend-only rules in document order.
func BackendNotes(s *openapi.Schema) []string {
	if s == nil || s.ValidationMessages == nil {
		return nil
	}
	var notes []string
	for p := s.ValidationMessages.Oldest(); p != nil; p = p.Next() {
		if IsBackendRule(p.Key) {
			notes = append(notes, p.Value)
		}
	}
	return notes
}

// Description assembles the description text of s: its own description
// followed by the backend note block after a blank line. It returns "" when
// there is nothing to say.
func Description(s *openapi.Schema) string {
	if s == nil {
		return ""
	}
	desc := s.Description
	if notes := BackendNotes(s); len(notes) > 0 {
		note := NotePrefix + strings.Join(notes, "; ")
		if desc == "" {
			desc = note
		} else {
			desc += "\n\n" + note
		}
	}
	return desc
}

// Describe renders a describe(...) modifier for text. Multi-line text is
// emitted as a template literal.
func Describe(text string) string {
	if strings.ContainsAny(text, "\r\n") {
		return "describe(" + jsfmt.Template(text) + ")"
	}
	return "describe(" + jsfmt.Quote(text) + ")"
}

// RequiredParams renders the params argument of a base constructor carrying
// the "required" message, or "" when the value is optional or has none.
func RequiredParams(src Source, isRequired bool) string {
	if !isRequired || src == nil {
		return ""
	}
	m, ok := src.Message("required")
	if !ok {
		return ""
	}
	return "{ required_error: " + jsfmt.Quote(m) + " }"
}
