package openapi

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// UnmarshalJSON decodes a schema keeping every JSON number (enum members,
// defaults) as a json.Number so literals survive unchanged into generated code.
func (s *Schema) UnmarshalJSON(data []byte) error {
	type plain Schema
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var p plain
	if err := dec.Decode(&p); err != nil {
		return err
	}
	*s = Schema(p)
	return nil
}

// Types is the `type` keyword, written either as one name or as a list.
type Types []string

func (t *Types) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = nil
		return nil
	case len(data) > 0 && data[0] == '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("type: %w", err)
		}
		*t = list
		return nil
	default:
		var one string
		if err := json.Unmarshal(data, &one); err != nil {
			return fmt.Errorf("type: %w", err)
		}
		*t = Types{one}
		return nil
	}
}

func (t *Types) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.SequenceNode:
		var list []string
		if err := n.Decode(&list); err != nil {
			return fmt.Errorf("type: %w", err)
		}
		*t = list
	case yaml.ScalarNode:
		*t = Types{n.Value}
	default:
		return fmt.Errorf("type: unexpected YAML node at line %d", n.Line)
	}
	return nil
}

// Number is a numeric keyword kept as its source literal.
type Number string

// ParseNumber validates s as a numeric literal.
func ParseNumber(s string) (Number, error) {
	s = strings.TrimSpace(s)
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return "", fmt.Errorf("invalid number %q", s)
	}
	return Number(s), nil
}

func (n Number) String() string { return string(n) }

// Float64 returns the numeric value, 0 when the literal does not parse.
func (n Number) Float64() float64 {
	f, _ := strconv.ParseFloat(string(n), 64)
	return f
}

// IsZero reports whether the value is 0.
func (n Number) IsZero() bool { return n.Float64() == 0 }

func (n *Number) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	if unq, err := strconv.Unquote(raw); err == nil {
		raw = unq
	}
	v, err := ParseNumber(raw)
	if err != nil {
		return err
	}
	*n = v
	return nil
}

func (n *Number) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("expected number at line %d", node.Line)
	}
	v, err := ParseNumber(node.Value)
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// Exclusive is exclusiveMinimum/exclusiveMaximum: a boolean modifier of
// minimum/maximum (OpenAPI 3.0) or a bound of its own (OpenAPI 3.1).
type Exclusive struct {
	IsFlag bool
	Flag   bool
	Value  Number
}

// Enabled reports the boolean form set to true.
func (e *Exclusive) Enabled() bool { return e != nil && e.IsFlag && e.Flag }

// Bound returns the numeric form.
func (e *Exclusive) Bound() (Number, bool) {
	if e == nil || e.IsFlag {
		return "", false
	}
	return e.Value, true
}

func (e *Exclusive) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if b, ok := jsonBool(data); ok {
		*e = Exclusive{IsFlag: true, Flag: b}
		return nil
	}
	var n Number
	if err := n.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("exclusive bound: %w", err)
	}
	*e = Exclusive{Value: n}
	return nil
}

func (e *Exclusive) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("exclusive bound: expected scalar at line %d", node.Line)
	}
	if node.ShortTag() == "!!bool" {
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		*e = Exclusive{IsFlag: true, Flag: b}
		return nil
	}
	n, err := ParseNumber(node.Value)
	if err != nil {
		return fmt.Errorf("exclusive bound: %w", err)
	}
	*e = Exclusive{Value: n}
	return nil
}

// jsonBool reports whether data is the JSON literal true or false. Numbers
// such as 0 and 1 are not booleans here.
func jsonBool(data []byte) (v, ok bool) {
	switch string(data) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// AdditionalProperties is either a boolean or a value schema.
type AdditionalProperties struct {
	Allowed *bool
	Schema  *Schema
}

// Bool returns an AdditionalProperties holding a boolean.
func Bool(b bool) *AdditionalProperties { return &AdditionalProperties{Allowed: &b} }

// IsFalse reports the literal false.
func (a *AdditionalProperties) IsFalse() bool {
	return a != nil && a.Schema == nil && a.Allowed != nil && !*a.Allowed
}

// ValueSchema returns the value schema when it has at least one keyword.
func (a *AdditionalProperties) ValueSchema() (*Schema, bool) {
	if a == nil || a.Schema == nil || a.Schema.IsEmpty() {
		return nil, false
	}
	return a.Schema, true
}

func (a *AdditionalProperties) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if b, ok := jsonBool(data); ok {
		*a = AdditionalProperties{Allowed: &b}
		return nil
	}
	if len(data) == 0 || data[0] != '{' {
		return errors.New("additionalProperties: expected boolean or schema")
	}
	var s Schema
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	*a = AdditionalProperties{Schema: &s}
	return nil
}

func (a *AdditionalProperties) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var b bool
		if err := node.Decode(&b); err != nil {
			return fmt.Errorf("additionalProperties: %w", err)
		}
		*a = AdditionalProperties{Allowed: &b}
	case yaml.MappingNode:
		var s Schema
		if err := node.Decode(&s); err != nil {
			return err
		}
		*a = AdditionalProperties{Schema: &s}
	default:
		return fmt.Errorf("additionalProperties: unexpected YAML node at line %d", node.Line)
	}
	return nil
}
