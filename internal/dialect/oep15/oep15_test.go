package oep15

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/document"
	"github.com/OpenEnergyPlatform/omi/internal/model"
	"github.com/OpenEnergyPlatform/omi/internal/model/oem15"
	"github.com/OpenEnergyPlatform/omi/internal/specs"
)

func exampleBytes(t *testing.T, family string) []byte {
	t.Helper()
	s, err := specs.GetFamily(family)
	require.NoError(t, err)
	return s.ExampleBytes()
}

func TestRoundTripIsExact(t *testing.T) {
	cases := []struct {
		family  string
		dialect *Dialect
	}{
		{"OEP-1.5", NewV15()},
		{"OEP-1.6", NewV16()},
	}
	for _, tc := range cases {
		t.Run(tc.family, func(t *testing.T) {
			raw := exampleBytes(t, tc.family)
			md, err := tc.dialect.ParseTyped(raw)
			require.NoError(t, err)

			out, err := tc.dialect.CompileAndRender(md)
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSuffix(string(raw), "\n"), out)
		})
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	s, err := specs.GetFamily("OEP-1.6")
	require.NoError(t, err)
	tpl, err := s.Template()
	require.NoError(t, err)
	tpl.Set("id", "x")

	md, err := Parser{ID: IDv16}.Parse(tpl)
	require.NoError(t, err)
	out, err := Compiler{ID: IDv16, Version: VersionV16}.Compile(md)
	require.NoError(t, err)
	assert.True(t, document.Equal(tpl, out), "got %s", out)
}

func TestParseAnnotations(t *testing.T) {
	md, err := NewV16().ParseTyped(exampleBytes(t, "OEP-1.6"))
	require.NoError(t, err)

	require.Len(t, md.Subjects, 2)
	assert.Equal(t, "energy", md.Subjects[0].Name)
	require.Len(t, md.Temporal.Timeseries, 2)
	assert.Equal(t, model.OrientationRight, md.Temporal.Timeseries[1].Orientation)

	value := md.Resources[0].Field("value")
	require.NotNil(t, value)
	require.Len(t, value.IsAbout, 1)
	require.Len(t, value.ValueReference, 1)
	assert.Equal(t, "onshore", value.ValueReference[0].Value)

	id := md.Resources[0].Field("id")
	assert.NotNil(t, id.IsAbout)
	assert.Empty(t, id.IsAbout)

	assert.Equal(t, "Bundesministerium für Wirtschaft und Energie", md.Context.FundingAgency.Name)
	assert.NotEmpty(t, md.Context.Publisher.Logo)
	assert.True(t, strings.HasPrefix(md.LinkedID, "https://databus."))
}

func TestForwardForeignKey(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(&buf)
	t.Cleanup(func() { SetLogger(nil) })

	md, err := NewV15().ParseTyped(exampleBytes(t, "OEP-1.5"))
	require.NoError(t, err)

	fk := md.Resources[0].Schema.ForeignKeys[1]
	assert.Same(t, md.Resource("model_draft.oep_region").Field("id"), fk.References[0].Target)
	assert.Contains(t, buf.String(), "schema.table.year is not declared")
}

func TestSingleTimeseriesObjectIsAccepted(t *testing.T) {
	md, err := NewV15().ParseTyped([]byte(`{"id": "x", "temporal": {"timeseries": {"resolution": "1 h"}}}`))
	require.NoError(t, err)
	require.Len(t, md.Temporal.Timeseries, 1)
	assert.Equal(t, "1 h", md.Temporal.Timeseries[0].Resolution)
}

func TestErrors(t *testing.T) {
	_, err := NewV16().ParseTyped([]byte(`{"name": "x"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrParse)
	assert.Contains(t, err.Error(), IDv16)

	_, err = NewV15().ParseTyped([]byte(`{"id": "x", "resources": []}`))
	assert.ErrorIs(t, err, apperr.ErrParse)

	_, err = NewV15().ParseTyped([]byte(`{"id": "x", "temporal": {"timeseries": [{"start": "soon"}]}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temporal.timeseries[0].start")
}

func TestCompilerStampsVersion(t *testing.T) {
	out, err := Compiler{ID: IDv15, Version: VersionV15}.Compile(&oem15.Metadata{Identifier: "x"})
	require.NoError(t, err)
	v, ok := out.Lookup("metaMetadata.metadataVersion")
	require.True(t, ok)
	assert.Equal(t, VersionV15, v)
	assert.True(t, out.IsNull("subject"))

	_, err = Compiler{ID: IDv15}.VisitReference(&oem15.Reference{})
	assert.ErrorIs(t, err, apperr.ErrNotImplemented)
}

func TestCompilerEmitsOptionalSections(t *testing.T) {
	md := &oem15.Metadata{
		Identifier:      "x",
		Context:         &oem15.Context{Homepage: "https://example.org"},
		Spatial:         &oem15.Spatial{Location: "Berlin"},
		Licenses:        []*oem15.TermsOfUse{{License: &oem15.License{Identifier: "CC0-1.0"}, Attribution: "me"}},
		Resources:       []*oem15.Resource{{Name: "t", Dialect: &oem15.Dialect{Delimiter: ";"}}},
		Review:          &oem15.Review{Badge: "Gold"},
		Comment:         &oem15.MetaComment{Units: "SI"},
		MetadataLicense: &oem15.License{Identifier: "ODbL-1.0"},
	}
	out, err := Compiler{ID: IDv16, Version: VersionV16}.Compile(md)
	require.NoError(t, err)

	want := map[string]any{
		"context.homepage":                  "https://example.org",
		"spatial.location":                  "Berlin",
		"review.badge":                      "Gold",
		"_comment.units":                    "SI",
		"metaMetadata.metadataLicense.name": "ODbL-1.0",
	}
	for path, v := range want {
		got, ok := out.Lookup(path)
		require.True(t, ok, path)
		assert.Equal(t, v, got, path)
	}

	licenses, _ := out.Get("licenses")
	require.Len(t, licenses, 1)
	lic := licenses.([]any)[0].(*document.Dict)
	assert.Equal(t, "CC0-1.0", lic.GetString("name"))
	assert.Equal(t, "me", lic.GetString("attribution"))

	resources, _ := out.Get("resources")
	res := resources.([]any)[0].(*document.Dict)
	dialect, _ := res.Get("dialect")
	assert.Equal(t, ";", dialect.(*document.Dict).GetString("delimiter"))
}
