package merger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenEnergyPlatform/omi/internal/document"
)

func decode(t *testing.T, s string) *document.Dict {
	t.Helper()
	d, err := document.DecodeJSON([]byte(s))
	require.NoError(t, err)
	return d
}

func TestFill(t *testing.T) {
	tests := []struct {
		name     string
		template string
		doc      string
		want     string
	}{
		{
			name:     "template order and document values",
			template: `{"a": "", "b": "", "c": {"x": "", "y": ""}}`,
			doc:      `{"c": {"y": "2"}, "a": "1"}`,
			want:     `{"a": "1", "b": "", "c": {"x": "", "y": "2"}}`,
		},
		{
			name:     "unknown keys are appended",
			template: `{"a": ""}`,
			doc:      `{"z": 1, "a": "1", "y": 2}`,
			want:     `{"a": "1", "z": 1, "y": 2}`,
		},
		{
			name:     "list items filled from first template item",
			template: `{"items": [{"name": "", "unit": ""}]}`,
			doc:      `{"items": [{"name": "a"}, {"unit": "m", "name": "b"}]}`,
			want:     `{"items": [{"name": "a", "unit": ""}, {"name": "b", "unit": "m"}]}`,
		},
		{
			name:     "null and scalars win over template objects",
			template: `{"temporal": {"referenceDate": ""}, "keywords": [""]}`,
			doc:      `{"temporal": null, "keywords": ["x", "y"]}`,
			want:     `{"temporal": null, "keywords": ["x", "y"]}`,
		},
		{
			name:     "empty document yields the template",
			template: `{"a": "", "b": [{"c": ""}]}`,
			doc:      `{}`,
			want:     `{"a": "", "b": [{"c": ""}]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fill(decode(t, tt.template), decode(t, tt.doc))
			want := decode(t, tt.want)
			assert.True(t, document.Equal(want, got), "got %s", got)
			assert.Equal(t, want.Keys(), got.Keys())
		})
	}
}

func TestFillDoesNotAlias(t *testing.T) {
	template := decode(t, `{"a": {"b": ""}}`)
	doc := decode(t, `{"c": {"d": 1}}`)
	got := Fill(template, doc)

	got.GetDict("a").Set("b", "changed")
	got.GetDict("c").Set("d", "changed")
	assert.Equal(t, "", template.GetDict("a").GetString("b"))
	assert.Equal(t, "1", doc.GetDict("c").GetString("d"))
}

func TestFillReport(t *testing.T) {
	r := FillReport(
		decode(t, `{"a": "", "b": {"c": "", "d": ""}, "l": [{"e": ""}]}`),
		decode(t, `{"b": {"c": "1"}, "l": [{"f": 1}], "x": true}`),
	)
	assert.Equal(t, []string{"a", "b.d", "l[].e"}, r.Defaulted)
	assert.Equal(t, []string{"l[].f", "x"}, r.Extra)
}
