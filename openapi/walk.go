package openapi

import "strconv"

// Walk visits s and every schema nested in it depth-first, passing the JSON
// pointer of each node relative to s. References are not followed. Returning
// false from fn skips the children of that node.
func Walk(s *Schema, fn func(ptr string, s *Schema) bool) {
	walk("", s, fn)
}

func walk(ptr string, s *Schema, fn func(string, *Schema) bool) {
	if s == nil || !fn(ptr, s) {
		return
	}
	if s.Properties != nil {
		for p := s.Properties.Oldest(); p != nil; p = p.Next() {
			walk(ptr+"/properties/"+EscapePointer(p.Key), p.Value, fn)
		}
	}
	walk(ptr+"/items", s.Items, fn)
	if s.AdditionalProperties != nil {
		walk(ptr+"/additionalProperties", s.AdditionalProperties.Schema, fn)
	}
	walkList(ptr+"/oneOf", s.OneOf, fn)
	walkList(ptr+"/anyOf", s.AnyOf, fn)
	walkList(ptr+"/allOf", s.AllOf, fn)
}

func walkList(ptr string, list []*Schema, fn func(string, *Schema) bool) {
	for i, s := range list {
		walk(ptr+"/"+strconv.Itoa(i), s, fn)
	}
}

// checkRefs warns about references the index cannot serve: non-local tokens
// and local tokens pointing at nothing.
func checkRefs(ix *Index, d *Collector) {
	for _, e := range ix.Entries() {
		Walk(e.Schema, func(ptr string, s *Schema) bool {
			if s.Ref == "" {
				return true
			}
			switch {
			case !IsLocalRef(s.Ref):
				d.Warnf("%s%s: external $ref %q not supported", e.Token, ptr, s.Ref)
			default:
				if _, ok := ix.Lookup(s.Ref); !ok {
					d.Warnf("%s%s: $ref %q does not resolve", e.Token, ptr, s.Ref)
				}
			}
			return true
		})
	}
}
