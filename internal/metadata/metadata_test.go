package metadata

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenEnergyPlatform/omi/internal/document"
	"github.com/OpenEnergyPlatform/omi/internal/specs"
)

func decode(t *testing.T, s string) *document.Dict {
	t.Helper()
	d, err := document.DecodeJSON([]byte(s))
	require.NoError(t, err)
	return d
}

func TestValues(t *testing.T) {
	d := decode(t, `{
		"context": {"homepage": "https://example.org"},
		"schema": {"fields": [{"name": "a", "unit": "MW"}, {"name": "b"}, "junk"]}
	}`)

	assert.Equal(t, []any{"https://example.org"}, Values(d, ContextHomepage))
	assert.Equal(t, []any{"a", "b"}, Values(d, "schema.fields[].name"))
	assert.Equal(t, []any{"MW"}, Values(d, "schema.fields[].unit"))
	assert.Nil(t, Values(d, "context.contact"))
	assert.Nil(t, Values(d, "schema.fields.name"))
}

func TestFilled(t *testing.T) {
	tests := []struct {
		name string
		json string
		want bool
	}{
		{"string", `{"v": "x"}`, true},
		{"blank", `{"v": "  "}`, false},
		{"null", `{"v": null}`, false},
		{"number", `{"v": 0}`, true},
		{"bool", `{"v": false}`, true},
		{"empty list", `{"v": []}`, false},
		{"placeholder list", `{"v": [""]}`, false},
		{"list", `{"v": ["", "x"]}`, true},
		{"empty object", `{"v": {"a": null, "b": ""}}`, false},
		{"object", `{"v": {"a": null, "b": "x"}}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := decode(t, tt.json).Get("v")
			assert.Equal(t, tt.want, Filled(v))
		})
	}
}

func TestPresentRequiresEveryEntry(t *testing.T) {
	d := decode(t, `{"schema": {"fields": [{"description": "x"}, {"description": null}]}}`)
	assert.False(t, Present(d, ResourceFieldDescriptions))

	d = decode(t, `{"schema": {"fields": [{"description": "x"}, {"description": "y"}]}}`)
	assert.True(t, Present(d, ResourceFieldDescriptions))

	d = decode(t, `{"schema": {"fields": []}}`)
	assert.False(t, Present(d, ResourceFieldDescriptions))
}

func TestRegistriesCoverFamilies(t *testing.T) {
	for _, f := range Families() {
		t.Run(f, func(t *testing.T) {
			specs := Registry(f)
			require.NotEmpty(t, specs)
			require.NotEmpty(t, ResourceRegistry(f))

			seen := map[Key]bool{}
			required := 0
			for _, s := range specs {
				assert.False(t, seen[s.Key], "duplicate key %s", s.Key)
				seen[s.Key] = true
				assert.Greater(t, s.Weight, 0.0)
				if s.Required {
					required++
				}
			}
			assert.Positive(t, required)
		})
	}
	assert.Nil(t, Registry("OEP-0.9"))
	assert.Nil(t, ResourceRegistry("OEP-0.9"))
}

func TestRegistryDoesNotAlias(t *testing.T) {
	a := Registry(FamilyOEP15)
	a[0].Weight = 99
	assert.NotEqual(t, 99.0, Registry(FamilyOEP16)[0].Weight)
	assert.NotEqual(t, 99.0, Registry(FamilyOEP14)[0].Weight)
}

func TestExamplesAreMostlyComplete(t *testing.T) {
	for _, family := range []string{FamilyOEP14, FamilyOEP16} {
		doc, err := specs.Example(family)
		require.NoError(t, err)
		for _, s := range Registry(family) {
			if s.Required {
				assert.True(t, s.Present("example", doc), "%s: %s", family, s.Key)
			}
		}
	}
}

func TestPresentLogs(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(&buf)
	defer SetLogger(nil)

	FieldSpec{Key: Title}.Present("doc-1", decode(t, `{"title": ""}`))
	assert.Contains(t, buf.String(), "doc=doc-1")
	assert.Contains(t, buf.String(), "present title ok=false")
}

func TestSettable(t *testing.T) {
	d := decode(t, `{"title": "", "language": ["en"], "context": {"homepage": null}, "licenses": [{"name": ""}], "spatial": "x", "n": 1}`)
	tests := []struct {
		key  Key
		want bool
	}{
		{Title, true},
		{Language, true},
		{ContextHomepage, true},
		{ContextContact, true},
		{"review.badge", true},
		{LicenseNames, false},
		{Licenses, false},
		{SpatialExtent, false},
		{"n", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Settable(d, tt.key), tt.key)
	}
	assert.False(t, Settable(nil, Title))
}

func TestSet(t *testing.T) {
	d := decode(t, `{"title": "", "language": []}`)
	require.NoError(t, Set(d, Title, "  A title "))
	require.NoError(t, Set(d, Language, "en-GB, de-DE ,,"))
	require.NoError(t, Set(d, ContextContact, "a@b.c"))

	assert.Equal(t, "A title", d.GetString("title"))
	assert.Equal(t, []any{"en-GB", "de-DE"}, d.GetList("language"))
	v, ok := d.Lookup("context.contact")
	assert.True(t, ok)
	assert.Equal(t, "a@b.c", v)

	assert.Error(t, Set(d, LicenseNames, "x"))
}
