package openapi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_YAML_DuplicateKey_Root(t *testing.T) {
	_, _, err := Load([]byte("openapi: 3.0.0\nopenapi: 3.1.0\n"))
	require.Error(t, err)
	var de *DuplicateKeyError
	require.True(t, errors.As(err, &de), "expected DuplicateKeyError, got %T %v", err, err)
	require.Equal(t, "openapi", de.Key)
	require.Positive(t, de.FirstLine)
	require.Greater(t, de.Line, de.FirstLine)
}

func TestLoad_YAML_DuplicateKey_Nested(t *testing.T) {
	y := []byte(`
components:
  schemas:
    User:
      type: object
      properties:
        name: {type: string}
        name: {type: integer}
`)
	_, _, err := Load(y)
	var de *DuplicateKeyError
	require.ErrorAs(t, err, &de)
	require.Equal(t, "name", de.Key)
}

func TestLoad_YAML_MultiDoc_Warns(t *testing.T) {
	y := []byte("components:\n  schemas:\n    A: {type: string}\n---\nkind: B\n")
	doc, diag, err := Load(y)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Index().Len())
	require.True(t, diag.HasWarnings())
	require.Contains(t, diag.Warnings()[0], "more than one document")
}

func TestLoad_JSON_DuplicateKey(t *testing.T) {
	_, _, err := Load([]byte(`{"components": {"schemas": {"Tags": {"type": "array", "items": [{"type": "string"}, {"a": 1, "b": 2, "a": 3}]}}}}`))
	var de *JSONDuplicateKeyError
	require.ErrorAs(t, err, &de)
	require.Equal(t, "a", de.Key)
	require.Equal(t, "#/components/schemas/Tags/items/1", de.Pointer)
	require.EqualError(t, err, `openapi: duplicate JSON key "a" in #/components/schemas/Tags/items/1`)
}

func TestLoad_JSON_SameKeyInSiblings(t *testing.T) {
	doc, _, err := Load([]byte(`{"components": {"schemas": {"A": {"type": "string"}, "B": {"type": "string"}}}}`))
	require.NoError(t, err)
	require.Equal(t, 2, doc.Index().Len())

	_, _, err = Load([]byte(`{"components": `))
	require.ErrorContains(t, err, "invalid JSON")
}
