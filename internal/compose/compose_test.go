package compose_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/oaszod/internal/compose"
	"github.com/reoring/oaszod/openapi"
)

func load(t *testing.T, src string) *openapi.Schema {
	t.Helper()
	s, err := openapi.LoadSchema([]byte(src))
	require.NoError(t, err)
	return s
}

func resolverFor(t *testing.T, named map[string]string) compose.ResolveFunc {
	return func(token string) (*openapi.Schema, error) {
		src, ok := named[token]
		if !ok {
			return nil, errors.New("unresolved " + token)
		}
		return load(t, src), nil
	}
}

func TestInferRequired_UnionOnce(t *testing.T) {
	s := load(t, `{"allOf": [
	  {"$ref": "#/components/schemas/Base"},
	  {"required": ["name", "email"]},
	  {"type": "object", "properties": {"email": {"type": "string", "format": "email"}}},
	  {"required": ["email", "age"]}
	]}`)
	resolve := resolverFor(t, map[string]string{
		"#/components/schemas/Base": `{"type": "object", "properties": {"name": {"type": "string"}}}`,
	})

	plan, err := compose.InferRequired(s, resolve)
	require.NoError(t, err)
	require.Len(t, plan.Retained, 2)
	assert.Equal(t, "#/components/schemas/Base", plan.Retained[0].Schema.Ref)
	assert.Equal(t, 2, plan.Retained[1].Index)

	require.NotNil(t, plan.Residual)
	assert.Equal(t, []string{"name", "email", "age"}, plan.Residual.Required)
	assert.Equal(t, []string{"name", "email", "age"}, plan.Residual.PropertyNames())

	name, _ := plan.Residual.Property("name")
	assert.Equal(t, "string", name.TypeName())
	email, _ := plan.Residual.Property("email")
	assert.Equal(t, "email", email.Format)
	age, _ := plan.Residual.Property("age")
	assert.True(t, age.IsEmpty())
}

func TestInferRequired_CoveredNamesDropped(t *testing.T) {
	s := load(t, `{"allOf": [
	  {"$ref": "#/components/schemas/Base"},
	  {"required": ["id"]}
	]}`)
	resolve := resolverFor(t, map[string]string{
		"#/components/schemas/Base": `{"type": "object", "required": ["id"], "properties": {"id": {"type": "integer"}}}`,
	})
	plan, err := compose.InferRequired(s, resolve)
	require.NoError(t, err)
	assert.Len(t, plan.Retained, 1)
	assert.Nil(t, plan.Residual)
}

func TestInferRequired_NoRequiredOnly(t *testing.T) {
	s := load(t, `{"allOf": [{"type": "object", "required": ["a"]}, {"properties": {"b": {}}, "required": ["b"]}]}`)
	plan, err := compose.InferRequired(s, nil)
	require.NoError(t, err)
	assert.Len(t, plan.Retained, 2)
	assert.Nil(t, plan.Residual)
}

func TestInferRequired_UnresolvedRef(t *testing.T) {
	s := load(t, `{"allOf": [{"$ref": "#/components/schemas/Gone"}, {"required": ["x"]}]}`)
	_, err := compose.InferRequired(s, resolverFor(t, nil))
	require.ErrorContains(t, err, "unresolved #/components/schemas/Gone")
}

func TestHasMultiMemberIntersection(t *testing.T) {
	s := load(t, `{"oneOf": [{"$ref": "#/a"}, {"allOf": [{"$ref": "#/b"}]}]}`)
	assert.False(t, compose.HasMultiMemberIntersection(s.OneOf))

	s = load(t, `{"oneOf": [{"$ref": "#/a"}, {"allOf": [{"$ref": "#/b"}, {"type": "object"}]}]}`)
	assert.True(t, compose.HasMultiMemberIntersection(s.OneOf))
}

func TestIsRequiredOnly(t *testing.T) {
	assert.True(t, compose.IsRequiredOnly(load(t, `{"required": ["a"], "description": "marker"}`)))
	assert.False(t, compose.IsRequiredOnly(load(t, `{"required": ["a"], "type": "object"}`)))
	assert.False(t, compose.IsRequiredOnly(load(t, `{"required": ["a"], "oneOf": [{}]}`)))
	assert.False(t, compose.IsRequiredOnly(load(t, `{"type": "object"}`)))
}
