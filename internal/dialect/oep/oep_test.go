package oep

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/document"
	"github.com/OpenEnergyPlatform/omi/internal/model"
	"github.com/OpenEnergyPlatform/omi/internal/specs"
)

func exampleBytes(t *testing.T, family string) []byte {
	t.Helper()
	s, err := specs.GetFamily(family)
	require.NoError(t, err)
	return s.ExampleBytes()
}

func lookup(t *testing.T, d *document.Dict, path string) string {
	t.Helper()
	v, ok := d.Lookup(path)
	require.True(t, ok, path)
	return document.AsString(v)
}

func TestV14RoundTripIsExact(t *testing.T) {
	raw := exampleBytes(t, "OEP-1.4")
	d := NewV14()

	md, err := d.ParseTyped(raw)
	require.NoError(t, err)

	out, err := d.CompileAndRender(md)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSuffix(string(raw), "\n"), out)
}

func TestV13RoundTripIsExact(t *testing.T) {
	raw := exampleBytes(t, "OEP-1.3")
	d := NewV13()

	md, err := d.ParseTyped(raw)
	require.NoError(t, err)
	assert.Equal(t, "1.3", md.MetadataVersion)
	require.Len(t, md.Licenses, 1)
	assert.Equal(t, "ODbL-1.0", md.Licenses[0].License.Identifier)
	assert.Equal(t, "© Reiner Lemoine Institut", md.Licenses[0].Attribution)

	out, err := d.CompileAndRender(md)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSuffix(string(raw), "\n"), out)
}

func TestV14TemplateRoundTrip(t *testing.T) {
	s, err := specs.GetFamily("OEP-1.4")
	require.NoError(t, err)
	tpl, err := s.Template()
	require.NoError(t, err)
	tpl.Set("id", "x")

	md, err := ParserV14{}.Parse(tpl)
	require.NoError(t, err)
	out, err := CompilerV14{}.Compile(md)
	require.NoError(t, err)
	assert.True(t, document.Equal(tpl, out), "got %s", out)
}

func TestV14ForeignKeysResolveForwardReferences(t *testing.T) {
	md, err := NewV14().ParseTyped(exampleBytes(t, "OEP-1.4"))
	require.NoError(t, err)

	first := md.Resources[0]
	require.Len(t, first.Schema.ForeignKeys, 2)

	external := first.Schema.ForeignKeys[0]
	assert.Equal(t, "schema.table", external.TargetResource())
	assert.Same(t, first.Field("year"), external.References[0].Source)

	forward := first.Schema.ForeignKeys[1]
	region := md.Resource("model_draft.oep_region")
	require.NotNil(t, region)
	assert.Same(t, region.Field("id"), forward.References[0].Target)
	assert.Equal(t, "model_draft.oep_region", forward.References[0].Target.Resource)
}

func TestV14LogsUndeclaredTargets(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(&buf)
	t.Cleanup(func() { SetLogger(nil) })

	_, err := NewV14().ParseTyped(exampleBytes(t, "OEP-1.4"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "schema.table.year is not declared")
}

func TestV14Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"missing id", `{"name": "x"}`, `missing required key "id"`},
		{"null id", `{"id": null}`, `missing required key "id"`},
		{"empty resources", `{"id": "x", "resources": []}`, "doesn't have any child entity"},
		{"bad date", `{"id": "x", "publicationDate": "yesterday"}`, "invalid ISO-8601 date"},
		{"bad alignment", `{"id": "x", "temporal": {"timeseries": {"alignment": "top"}}}`, "alignment"},
		{"bad primary key", `{"id": "x", "resources": [{"name": "r", "schema": {"fields": [{"name": "a"}], "primaryKey": ["b"]}}]}`, `unknown field "b"`},
		{"fk length mismatch", `{"id": "x", "resources": [{"name": "r", "schema": {"fields": [{"name": "a"}], "foreignKeys": [{"fields": ["a"], "reference": {"resource": "r", "fields": []}}]}}]}`, "1 local fields but 0 referenced"},
		{"language object", `{"id": "x", "language": [{"a": 1}]}`, "expected a scalar"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewV14().ParseTyped([]byte(tc.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrParse)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestV14DecodeErrorsAreNotParserErrors(t *testing.T) {
	_, err := NewV14().ParseTyped([]byte(`{"id": `))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrDecode)
}

func TestV14OmittedAndEmptyListsDiffer(t *testing.T) {
	md, err := NewV14().ParseTyped([]byte(`{"id": "x", "keywords": []}`))
	require.NoError(t, err)
	assert.Nil(t, md.Languages)
	assert.NotNil(t, md.Keywords)

	out, err := CompilerV14{}.Compile(md)
	require.NoError(t, err)
	assert.True(t, out.IsNull("language"))
	kw, ok := out.Get("keywords")
	require.True(t, ok)
	assert.Equal(t, []any{}, kw)
}

func TestV14DefaultMetadataLicense(t *testing.T) {
	out, err := CompilerV14{}.Compile(&model.Metadata{Identifier: "x"})
	require.NoError(t, err)

	assert.Equal(t, "OEP-1.4.0", lookup(t, out, "metaMetadata.metadataVersion"))
	assert.Equal(t, "CC0-1.0", lookup(t, out, "metaMetadata.metadataLicense.name"))
	assert.True(t, out.IsNull("_comment"))
	assert.True(t, out.IsNull("context"))
}

func TestV14AcceptsYAML(t *testing.T) {
	md, err := NewV14().ParseTyped([]byte("id: x\nkeywords:\n  - energy\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"energy"}, md.Keywords)
}

func TestV13CompilerRejectsNestedEntities(t *testing.T) {
	_, err := CompilerV13{}.VisitReview(&model.Review{})
	assert.ErrorIs(t, err, apperr.ErrNotImplemented)

	_, err = CompilerV14{}.VisitPerson(&model.Person{})
	assert.ErrorIs(t, err, apperr.ErrNotImplemented)
}

func TestTranslateV13ToV14(t *testing.T) {
	md, err := NewV13().ParseTyped(exampleBytes(t, "OEP-1.3"))
	require.NoError(t, err)

	out, err := CompilerV14{}.Compile(md)
	require.NoError(t, err)
	assert.Equal(t, "Example title for metadata example - Version 1.3", out.GetString("title"))
	assert.Equal(t, "1 h", lookup(t, out, "temporal.timeseries.resolution"))
	sources := out.GetList("sources")
	require.Len(t, sources, 2)
	assert.Equal(t, "https://www.openstreetmap.org/", sources[1].(*document.Dict).GetString("path"))
}
