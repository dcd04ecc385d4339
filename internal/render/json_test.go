package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenEnergyPlatform/omi/internal/document"
)

func TestJSONLayout(t *testing.T) {
	doc := document.FromPairs(
		"name", "oep_table",
		"language", []string{"en-GB", "de-DE"},
		"empty", []any{},
		"missing", nil,
		"resources", []any{
			document.FromPairs("name", "ü<b>", "fields", []any{}),
		},
		"nested", document.NewDict(),
	)

	out, err := Marshal(doc)
	require.NoError(t, err)

	want := `{
    "name": "oep_table",
    "language": ["en-GB", "de-DE"],
    "empty": [],
    "missing": null,
    "resources": [
        {
            "name": "ü<b>",
            "fields": []
        }
    ],
    "nested": {}
}`
	assert.Equal(t, want, out)
}

func TestJSONRoundTripsThroughDecoder(t *testing.T) {
	src := []byte(`{"b": 1.50, "a": [true, false, null], "c": {"z": "x", "y": [{"k": "v"}]}}`)
	doc, err := document.DecodeJSON(src)
	require.NoError(t, err)

	out, err := Marshal(doc)
	require.NoError(t, err)

	again, err := document.DecodeJSON([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, doc.Keys(), again.Keys())
	assert.True(t, document.Equal(doc, again))
	assert.Contains(t, out, `"b": 1.50`)
}

func TestJSONRejectsUnknownValues(t *testing.T) {
	_, err := Marshal(document.FromPairs("bad", struct{}{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}
