// Package openapi loads OpenAPI 3.x, Swagger 2 and JSON Schema documents into
// the schema graph consumed by the compiler, and indexes the named schemas that
// local references point at.
package openapi

import (
	"bytes"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// Load decodes a JSON or YAML document. Input starting with '{' is decoded as
// JSON, anything else as YAML. Duplicate keys are rejected in both. Unresolvable references are reported through
// the returned Diag rather than failing the load; the compiler fails on them
// only when it reaches them.
func Load(data []byte) (*Document, Diag, error) {
	d := &Collector{}
	var doc Document
	if err := decode(data, &doc, d); err != nil {
		return nil, d, err
	}
	ix := doc.Index()
	if ix.Len() == 0 {
		d.Warnf("document declares no schemas under components.schemas, definitions or $defs")
	}
	if doc.Swagger != "" {
		d.Warnf("swagger %s document: only definitions are used", doc.Swagger)
	}
	checkRefs(ix, d)
	return &doc, d, nil
}

// LoadFile reads and decodes a document from disk.
func LoadFile(path string) (*Document, Diag, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Collector{}, fmt.Errorf("openapi: reading %s: %w", path, err)
	}
	return Load(data)
}

// LoadSchema decodes a single schema node from JSON or YAML.
func LoadSchema(data []byte) (*Schema, error) {
	var s Schema
	if err := decode(data, &s, &Collector{}); err != nil {
		return nil, err
	}
	return &s, nil
}

func decode(data []byte, out any, d *Collector) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("openapi: empty input")
	}
	if trimmed[0] == '{' {
		if err := checkJSONDuplicateKeys(trimmed); err != nil {
			return fmt.Errorf("openapi: %w", err)
		}
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		if err := dec.Decode(out); err != nil {
			return fmt.Errorf("openapi: invalid JSON: %w", err)
		}
		return nil
	}
	return decodeYAML(trimmed, out, d)
}
