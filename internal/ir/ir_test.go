package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/oaszod/internal/ir"
	"github.com/reoring/oaszod/openapi"
)

func TestClassify_Precedence(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want ir.Kind
	}{
		{"ref wins over properties", `{"$ref": "#/components/schemas/A", "properties": {"a": {}}}`, ir.KindReference},
		{"type list", `{"type": ["string", "null"], "oneOf": [{}]}`, ir.KindTypeList},
		{"single type list", `{"type": ["integer"]}`, ir.KindPrimitive},
		{"null", `{"type": "null"}`, ir.KindNull},
		{"oneOf before anyOf", `{"oneOf": [{}], "anyOf": [{}]}`, ir.KindOneOf},
		{"anyOf", `{"anyOf": [{}], "allOf": [{}]}`, ir.KindAnyOf},
		{"allOf over object", `{"type": "object", "allOf": [{}]}`, ir.KindAllOf},
		{"enum", `{"type": "string", "enum": ["a"]}`, ir.KindPrimitiveEnum},
		{"upper-case type", `{"type": "String"}`, ir.KindPrimitive},
		{"boolean", `{"type": "boolean"}`, ir.KindPrimitive},
		{"array", `{"type": "array"}`, ir.KindArray},
		{"object", `{"type": "object"}`, ir.KindObject},
		{"untyped properties", `{"properties": {}}`, ir.KindObject},
		{"closed map", `{"additionalProperties": false}`, ir.KindObject},
		{"open map", `{"additionalProperties": true}`, ir.KindObject},
		{"empty value schema", `{"additionalProperties": {}}`, ir.KindObject},
		{"record", `{"type": "object", "additionalProperties": {"type": "string"}}`, ir.KindRecord},
		{"unknown", `{"description": "anything"}`, ir.KindUnknown},
		{"enum without type", `{"enum": [1, 2]}`, ir.KindUnknown},
		{"unsupported", `{"type": "tuple"}`, ir.KindUnsupported},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := openapi.LoadSchema([]byte(tc.src))
			require.NoError(t, err)
			assert.Equal(t, tc.want, ir.Classify(s), "got %s", ir.Classify(s))
		})
	}
}

func TestClassify_Nil(t *testing.T) {
	assert.Equal(t, ir.KindMissing, ir.Classify(nil))
	assert.Equal(t, "missing", ir.KindMissing.String())
	assert.Equal(t, "invalid", ir.Kind(99).String())
}
