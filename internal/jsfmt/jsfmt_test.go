package jsfmt

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyKey(t *testing.T) {
	assert.Equal(t, "name", PropertyKey("name"))
	assert.Equal(t, "$ref_1", PropertyKey("$ref_1"))
	assert.Equal(t, `"first-name"`, PropertyKey("first-name"))
	assert.Equal(t, `"1st"`, PropertyKey("1st"))
	assert.Equal(t, `""`, PropertyKey(""))
	assert.Equal(t, `"a\"b"`, PropertyKey(`a"b`))
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `say \"hi\"\n\\ok`, Escape("say \"hi\"\n\\ok"))
	assert.Equal(t, `\u0001`, Escape("\x01"))
	assert.Equal(t, `a\u2028b`, Escape("a\u2028b"))
	assert.Equal(t, "⚠️ ok", Escape("⚠️ ok"))
}

func TestTemplate(t *testing.T) {
	assert.Equal(t, "`line1\nline2 \\` \\${x}`", Template("line1\nline2 ` ${x}"))
}

func TestLiteral(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, "null"},
		{"x", `"x"`},
		{true, "true"},
		{json.Number("2.50"), "2.50"},
		{3, "3"},
		{1.5, "1.5"},
		{[]any{"a", json.Number("1")}, `["a",1]`},
		{map[string]any{"b": "<tag>"}, `{"b":"<tag>"}`},
	}
	for _, tc := range cases {
		got, err := Literal(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestIsReserved(t *testing.T) {
	assert.True(t, IsReserved("class"))
	assert.True(t, IsReserved("undefined"))
	assert.False(t, IsReserved("User"))
}
