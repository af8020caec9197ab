// Package chain synthesizes zod constructor and modifier chains for
// primitive and array schemas.
package chain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/oaszod/internal/jsfmt"
	"github.com/reoring/oaszod/internal/messages"
	"github.com/reoring/oaszod/openapi"
)

// Options selects the optional parts of a chain.
type Options struct {
	WithDescription   bool
	WithDefaultValues bool
	AllReadonly       bool
}

// Result is a synthesized modifier chain.
type Result struct {
	// Chain is the modifiers joined with ".", with a leading "." when
	// non-empty, ready to append to a constructor.
	Chain    string
	Warnings []string
}

// Base returns the zod constructor of a primitive schema. A required value
// carries the "required" message as required_error when one is set.
func Base(s *openapi.Schema, isRequired bool) string {
	t := s.TypeName()
	if t == "string" && s.Format == "binary" {
		return "z.instanceof(File)"
	}
	if t == "integer" {
		t = "number"
	}
	return "z." + t + "(" + messages.RequiredParams(s, isRequired) + ")"
}

// Synthesize returns the modifier chain of s in emission order: value
// constraints, readonly (arrays), presence, description, default.
func Synthesize(s *openapi.Schema, isRequired bool, opts Options) (Result, error) {
	mods, warnings := Constraints(s)
	if s.TypeName() == "array" && opts.AllReadonly {
		mods = append(mods, "readonly()")
	}
	if p := Presence(s, isRequired); p != "" {
		mods = append(mods, p)
	}
	if opts.WithDescription {
		if text := messages.Description(s); text != "" {
			mods = append(mods, messages.Describe(text))
		}
	}
	if opts.WithDefaultValues {
		d, err := Default(s)
		if err != nil {
			return Result{}, err
		}
		if d != "" {
			mods = append(mods, d)
		}
	}
	r := Result{Warnings: warnings}
	if len(mods) > 0 {
		r.Chain = "." + strings.Join(mods, ".")
	}
	return r, nil
}

// Constraints returns the value constraint modifiers of s, plus warnings
// about constraints that were emitted but look wrong.
func Constraints(s *openapi.Schema) (mods, warnings []string) {
	switch s.TypeName() {
	case "string":
		return stringConstraints(s)
	case "number", "integer":
		return numberConstraints(s), nil
	case "array":
		return arrayConstraints(s), nil
	}
	return nil, nil
}

// call renders name(arg) with the message for rule, if any, as the last
// argument.
func call(name, arg string, s *openapi.Schema, rule string) string {
	m, _ := messages.Lookup(s, rule)
	if arg == "" {
		return name + "(" + quoteOrEmpty(m) + ")"
	}
	return name + "(" + arg + messages.Arg(m) + ")"
}

func stringConstraints(s *openapi.Schema) (mods, warnings []string) {
	if len(s.Enum) == 0 {
		if s.MinLength != nil {
			mods = append(mods, call("min", strconv.FormatInt(*s.MinLength, 10), s, "min"))
		}
		if s.MaxLength != nil {
			mods = append(mods, call("max", strconv.FormatInt(*s.MaxLength, 10), s, "max"))
		}
	}
	if s.Pattern != "" {
		lit, err := Pattern(s.Pattern)
		if err != nil {
			warnings = append(warnings, err.Error())
		}
		mods = append(mods, call("regex", lit, s, "regex"))
	}
	if s.Format != "" {
		if f := format(s); f != "" {
			mods = append(mods, f)
		}
	}
	return mods, warnings
}

func format(s *openapi.Schema) string {
	m, _ := messages.Format(s, s.Format)
	switch s.Format {
	case "email":
		return "email(" + quoteOrEmpty(m) + ")"
	case "uri", "hostname":
		return "url(" + quoteOrEmpty(m) + ")"
	case "uuid":
		return "uuid(" + quoteOrEmpty(m) + ")"
	case "date-time":
		if m != "" {
			return "datetime({ offset: true, message: " + jsfmt.Quote(m) + " })"
		}
		return "datetime({ offset: true })"
	}
	return ""
}

func quoteOrEmpty(m string) string {
	if m == "" {
		return ""
	}
	return jsfmt.Quote(m)
}

func numberConstraints(s *openapi.Schema) []string {
	if len(s.Enum) > 0 {
		return nil
	}
	var mods []string
	if s.TypeName() == "integer" {
		mods = append(mods, call("int", "", s, "int"))
	}
	switch {
	case s.Minimum != nil && s.ExclusiveMinimum.Enabled():
		mods = append(mods, call("gt", s.Minimum.String(), s, "gt"))
	case s.Minimum != nil:
		mods = append(mods, call("gte", s.Minimum.String(), s, "gte"))
	default:
		if b, ok := s.ExclusiveMinimum.Bound(); ok {
			mods = append(mods, call("gt", b.String(), s, "gt"))
		}
	}
	switch {
	case s.Maximum != nil && s.ExclusiveMaximum.Enabled():
		mods = append(mods, call("lt", s.Maximum.String(), s, "lt"))
	case s.Maximum != nil:
		mods = append(mods, call("lte", s.Maximum.String(), s, "lte"))
	default:
		if b, ok := s.ExclusiveMaximum.Bound(); ok {
			mods = append(mods, call("lt", b.String(), s, "lt"))
		}
	}
	if s.MultipleOf != nil && !s.MultipleOf.IsZero() {
		mods = append(mods, call("multipleOf", s.MultipleOf.String(), s, "multipleOf"))
	}
	return mods
}

func arrayConstraints(s *openapi.Schema) []string {
	var mods []string
	if s.MinItems != nil && *s.MinItems != 0 {
		mods = append(mods, call("min", strconv.FormatInt(*s.MinItems, 10), s, "min"))
	}
	if s.MaxItems != nil && *s.MaxItems != 0 {
		mods = append(mods, call("max", strconv.FormatInt(*s.MaxItems, 10), s, "max"))
	}
	return mods
}

// Presence returns the presence modifier for a value that is or is not
// required in its parent.
func Presence(s *openapi.Schema, isRequired bool) string {
	switch {
	case s.Nullable && !isRequired:
		return "nullish()"
	case s.Nullable:
		return "nullable()"
	case !isRequired:
		return "optional()"
	}
	return ""
}

// Default returns the default(...) modifier, or "" when s has no default.
// Numeric schemas take the value as a numeric literal; anything else is
// written as its JSON literal.
func Default(s *openapi.Schema) (string, error) {
	if s.Default == nil {
		return "", nil
	}
	switch s.TypeName() {
	case "number", "integer":
		if str, ok := s.Default.(string); ok {
			str = strings.TrimSuffix(strings.TrimPrefix(str, `"`), `"`)
			if n, err := openapi.ParseNumber(str); err == nil {
				return "default(" + n.String() + ")", nil
			}
		}
	}
	lit, err := jsfmt.Literal(s.Default)
	if err != nil {
		return "", fmt.Errorf("default: %w", err)
	}
	return "default(" + lit + ")", nil
}
