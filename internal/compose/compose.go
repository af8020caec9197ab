// Package compose implements the merge rules of oneOf/anyOf/allOf
// composition that do not depend on code generation.
package compose

import "github.com/reoring/oaszod/openapi"

// ResolveFunc returns the schema a local reference points at.
type ResolveFunc func(token string) (*openapi.Schema, error)

// HasMultiMemberIntersection reports whether an inline branch is itself an
// allOf of more than one member. Such branches compile to an .and() chain,
// which a discriminated union cannot hold.
func HasMultiMemberIntersection(branches []*openapi.Schema) bool {
	for _, b := range branches {
		if b != nil && b.Ref == "" && len(b.AllOf) > 1 {
			return true
		}
	}
	return false
}

// IsRequiredOnly reports whether b only marks fields as required, without
// saying anything about their shape.
func IsRequiredOnly(b *openapi.Schema) bool {
	return b != nil && len(b.Required) > 0 &&
		b.Ref == "" && len(b.Type) == 0 && b.Properties == nil && !b.HasComposition()
}

// Branch is an allOf member together with its position in the allOf list.
type Branch struct {
	Index  int
	Schema *openapi.Schema
}

// Plan is the split of an allOf into branches compiled as they are and the
// synthetic object carrying requirements no branch covers.
type Plan struct {
	Retained []Branch
	// Residual is nil when every required name is already covered.
	Residual *openapi.Schema
}

// InferRequired splits the allOf branches of s. Required-only branches are
// removed and their names unioned once, in first-seen order; names a
// retained branch already requires are dropped. The remaining names form
// the residual object, whose property schemas are taken from the first
// retained branch declaring them (references resolved) or left empty.
func InferRequired(s *openapi.Schema, resolve ResolveFunc) (Plan, error) {
	var (
		plan  Plan
		names []string
		seen  = map[string]bool{}
	)
	for i, b := range s.AllOf {
		if !IsRequiredOnly(b) {
			plan.Retained = append(plan.Retained, Branch{Index: i, Schema: b})
			continue
		}
		for _, n := range b.Required {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	if len(names) == 0 {
		return plan, nil
	}

	targets := make([]*openapi.Schema, 0, len(plan.Retained))
	for _, r := range plan.Retained {
		b := r.Schema
		t := b
		if b != nil && b.Ref != "" && resolve != nil {
			var err error
			if t, err = resolve(b.Ref); err != nil {
				return Plan{}, err
			}
		}
		targets = append(targets, t)
	}

	covered := map[string]bool{}
	for _, t := range targets {
		if t == nil {
			continue
		}
		for _, n := range t.Required {
			covered[n] = true
		}
	}
	var residual []string
	for _, n := range names {
		if !covered[n] {
			residual = append(residual, n)
		}
	}
	if len(residual) == 0 {
		return plan, nil
	}

	props := openapi.NewProperties()
	for _, n := range residual {
		props.Set(n, propertyOf(targets, n))
	}
	plan.Residual = &openapi.Schema{
		Type:       openapi.Types{"object"},
		Properties: props,
		Required:   residual,
	}
	return plan, nil
}

func propertyOf(targets []*openapi.Schema, name string) *openapi.Schema {
	for _, t := range targets {
		if p, ok := t.Property(name); ok && p != nil {
			return p
		}
	}
	return &openapi.Schema{}
}
