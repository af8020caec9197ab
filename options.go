package oaszod

import (
	"fmt"
	"log/slog"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/reoring/oaszod/openapi"
)

// Refiner may replace a node before it is classified. Returning nil keeps the
// original node.
type Refiner func(s *openapi.Schema, meta Meta) *openapi.Schema

// Options configures a compile run. Start from DefaultOptions; the zero value
// disables defaults and closes objects to unknown keys.
type Options struct {
	// WithDescription emits describe(...) with the description and backend
	// validation notes.
	WithDescription bool `json:"withDescription"`
	// WithDefaultValues emits default(...) modifiers.
	WithDefaultValues bool `json:"withDefaultValues"`
	// WithImplicitRequiredProps treats properties as required when an object
	// has no required list.
	WithImplicitRequiredProps bool `json:"withImplicitRequiredProps"`
	// AdditionalPropertiesDefaultValue decides whether unknown keys pass
	// through when additionalProperties is unset.
	AdditionalPropertiesDefaultValue bool `json:"additionalPropertiesDefaultValue"`
	// AllReadonly marks arrays, records and objects readonly().
	AllReadonly bool `json:"allReadonly"`
	// StrictObjects rejects unknown keys (.strict()) instead of passing them
	// through.
	StrictObjects bool `json:"strictObjects"`
	// StrictEnums fails on enums mixing strings into a non-string type
	// instead of emitting z.never().
	StrictEnums bool `json:"strictEnums"`
	// Concurrency bounds how many top-level schemas CompileDocument compiles
	// at once. Values below 1 mean 1.
	Concurrency int `json:"concurrency"`

	SchemaRefiner Refiner      `json:"-"`
	Logger        *slog.Logger `json:"-"`
}

// DefaultOptions returns the defaults: default values on, unknown keys
// passed through, sequential compilation.
func DefaultOptions() Options {
	return Options{
		WithDefaultValues:                true,
		AdditionalPropertiesDefaultValue: true,
		Concurrency:                      1,
	}
}

// ParseOptions reads YAML or JSON configuration on top of DefaultOptions.
// Unknown keys are rejected.
func ParseOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.UnmarshalStrict(data, &opts); err != nil {
		return Options{}, fmt.Errorf("oaszod: options: %w", err)
	}
	return opts, nil
}

// LoadOptions reads a configuration file with ParseOptions.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("oaszod: options: %w", err)
	}
	return ParseOptions(data)
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}
