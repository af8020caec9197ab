package openapi

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// JSONDuplicateKeyError reports an object member name that occurs twice.
type JSONDuplicateKeyError struct {
	Key string
	// Pointer locates the object holding Key, e.g. #/components/schemas.
	Pointer string
}

func (e *JSONDuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate JSON key %q in %s", e.Key, e.Pointer)
}

type jsonFrame struct {
	object       bool
	keys         map[string]struct{}
	expectingKey bool
	key          string
	index        int
}

func (f *jsonFrame) segment() string {
	if f.object {
		return EscapePointer(f.key)
	}
	return strconv.Itoa(f.index)
}

// checkJSONDuplicateKeys scans data token by token and fails on the first
// object that repeats a member name. Decoding into a struct would otherwise
// keep the last value silently.
func checkJSONDuplicateKeys(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var stack []*jsonFrame

	valueDone := func() {
		if len(stack) == 0 {
			return
		}
		top := stack[len(stack)-1]
		if top.object {
			top.expectingKey = true
		} else {
			top.index++
		}
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			// syntax errors are reported by the decoder proper
			return nil
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, &jsonFrame{object: true, keys: map[string]struct{}{}, expectingKey: true})
			case '[':
				stack = append(stack, &jsonFrame{})
			default:
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				valueDone()
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].expectingKey {
				top := stack[n-1]
				if _, dup := top.keys[v]; dup {
					return &JSONDuplicateKeyError{Key: v, Pointer: pointerOf(stack[:n-1])}
				}
				top.keys[v] = struct{}{}
				top.key = v
				top.expectingKey = false
				continue
			}
			valueDone()
		default:
			valueDone()
		}
	}
}

func pointerOf(frames []*jsonFrame) string {
	var b strings.Builder
	b.WriteByte('#')
	for _, f := range frames {
		b.WriteByte('/')
		b.WriteString(f.segment())
	}
	return b.String()
}
