package document

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
)

func TestDecodeJSONKeepsKeyOrder(t *testing.T) {
	d, err := DecodeJSON([]byte(`{"title": "t", "name": "n", "context": {"z": 1, "a": 2}}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "name", "context"}, d.Keys())
	assert.Equal(t, []string{"z", "a"}, d.GetDict("context").Keys())
	v, ok := d.GetDict("context").Get("z")
	require.True(t, ok)
	assert.Equal(t, json.Number("1"), v)
}

func TestDecodeJSONErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":   `{"a": }`,
		"array":    `[1, 2]`,
		"trailing": `{"a": 1} {"b": 2}`,
		"empty":    ``,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrDecode), "got %v", err)
		})
	}
}

func TestDecodeJSONDistinguishesNullAndEmptyList(t *testing.T) {
	d, err := DecodeJSON([]byte(`{"a": null, "b": []}`))
	require.NoError(t, err)

	assert.True(t, d.IsNull("a"))
	assert.True(t, d.IsNull("missing"))
	assert.False(t, d.IsNull("b"))
	assert.NotNil(t, d.GetList("b"))
	assert.Len(t, d.GetList("b"), 0)
}

func TestDecodeYAML(t *testing.T) {
	src := []byte(`
name: oep_table
id: 42
publicationDate: 2020-01-01
flag: true
language:
  - en-GB
context:
  homepage: https://openenergy-platform.org
  grantNo: ~
`)
	d, err := DecodeYAML(src)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "id", "publicationDate", "flag", "language", "context"}, d.Keys())
	assert.Equal(t, "42", d.GetString("id"))
	assert.Equal(t, "2020-01-01", d.GetString("publicationDate"))
	v, _ := d.Get("flag")
	assert.Equal(t, true, v)
	assert.Equal(t, []any{"en-GB"}, d.GetList("language"))
	assert.True(t, d.GetDict("context").IsNull("grantNo"))
}

func TestDecodeYAMLRejectsScalarRoot(t *testing.T) {
	_, err := DecodeYAML([]byte("just a string"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrDecode)
}

func TestCloneIsDeep(t *testing.T) {
	orig := FromPairs("list", []any{FromPairs("k", "v")}, "sub", FromPairs("x", "y"))
	cp := orig.Clone()

	cp.GetDict("sub").Set("x", "changed")
	cp.GetList("list")[0].(*Dict).Set("k", "changed")

	assert.Equal(t, "y", orig.GetDict("sub").GetString("x"))
	assert.Equal(t, "v", orig.GetList("list")[0].(*Dict).GetString("k"))
}

func TestRenameKeepsPosition(t *testing.T) {
	d := FromPairs("a", 1, "id", "x", "c", 3)
	d.Rename("id", "path")
	assert.Equal(t, []string{"a", "path", "c"}, d.Keys())
	assert.Equal(t, "x", d.GetString("path"))

	d.Rename("missing", "other")
	assert.Equal(t, []string{"a", "path", "c"}, d.Keys())
}

func TestDeleteAndUpdate(t *testing.T) {
	d := FromPairs("a", 1, "b", 2)
	d.Delete("a")
	assert.Equal(t, []string{"b"}, d.Keys())

	d.Update(FromPairs("b", 3, "c", 4))
	assert.Equal(t, []string{"b", "c"}, d.Keys())
	assert.Equal(t, "3", d.GetString("b"))
}

func TestEqualIgnoresKeyOrder(t *testing.T) {
	a := FromPairs("x", 1, "y", []any{"a"})
	b := FromPairs("y", []any{"a"}, "x", json.Number("1.0"))
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, FromPairs("x", 1, "y", []any{"b"})))
	assert.False(t, Equal(FromPairs("x", nil), FromPairs("x", []any{})))
}

func TestLookup(t *testing.T) {
	d := FromPairs("metaMetadata", FromPairs("metadataVersion", "OEP-1.4.0"))
	v, ok := d.Lookup("metaMetadata.metadataVersion")
	require.True(t, ok)
	assert.Equal(t, "OEP-1.4.0", v)

	_, ok = d.Lookup("metaMetadata.metadataVersion.deeper")
	assert.False(t, ok)
}

func TestMarshalJSONIsCompactAndOrdered(t *testing.T) {
	d := FromPairs("b", "1", "a", []any{nil, FromPairs("z", true)})
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `{"b":"1","a":[null,{"z":true}]}`, string(b))
}
