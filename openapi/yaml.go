package openapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// decodeYAML decodes the first document of a YAML stream into out, rejecting
// duplicate keys. Further documents are reported as a warning and ignored.
func decodeYAML(data []byte, out any, d *Collector) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("openapi: empty YAML document")
		}
		return fmt.Errorf("openapi: invalid YAML: %w", err)
	}
	if err := checkDuplicateKeys(&root); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	if err := root.Decode(out); err != nil {
		return fmt.Errorf("openapi: invalid YAML: %w", err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); err == nil {
		d.Warnf("YAML stream holds more than one document; only the first is used")
	}
	return nil
}
