package cyclonedx

import (
	"strings"
	"testing"
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/dialect/oep"
	"github.com/OpenEnergyPlatform/omi/internal/model"
	"github.com/OpenEnergyPlatform/omi/internal/specs"
)

func exampleModel(t *testing.T) *model.Metadata {
	t.Helper()
	s, err := specs.GetFamily("OEP-1.4")
	require.NoError(t, err)
	md, err := oep.NewV14().ParseTyped(s.ExampleBytes())
	require.NoError(t, err)
	return md
}

func propValues(list *[]cdx.Property, name string) []string {
	return index(list)[name]
}

func TestCompileDatasetComponent(t *testing.T) {
	md := exampleModel(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	bom, err := Compiler{Now: func() time.Time { return fixed }}.Compile(md)
	require.NoError(t, err)

	require.NotNil(t, bom.Metadata)
	assert.Equal(t, "2026-01-02T03:04:05Z", bom.Metadata.Timestamp)
	assert.Equal(t, SerialNumber(md.Identifier), bom.SerialNumber)

	comp := bom.Metadata.Component
	require.NotNil(t, comp)
	assert.Equal(t, cdx.ComponentTypeData, comp.Type)
	assert.Equal(t, md.Name, comp.Name)
	assert.Equal(t, md.Identifier, comp.BOMRef)
	require.NotNil(t, comp.Tags)
	assert.Equal(t, md.Keywords, *comp.Tags)
	assert.Equal(t, md.Languages, propValues(comp.Properties, PropLanguage))

	require.NotNil(t, comp.Licenses)
	require.Len(t, *comp.Licenses, 1)
	assert.Equal(t, "ODbL-1.0", (*comp.Licenses)[0].License.ID)

	require.NotNil(t, comp.Authors)
	assert.Len(t, *comp.Authors, 2)
	assert.Equal(t, []string{
		"Ludee|2016-06-16|metadata|Create metadata",
		"christian-rli|2019-10-15|metadata|Fix key names",
	}, propValues(comp.Properties, PropContribution))

	require.NotNil(t, bom.Components)
	require.Len(t, *bom.Components, 2)
	table := (*bom.Components)[0]
	assert.Equal(t, "model_draft.oep_metadata_table_example_v14", table.Name)
	assert.Len(t, propValues(table.Properties, PropField), 5)
	assert.Equal(t, []string{
		"year -> schema.table.year",
		"region_id -> model_draft.oep_region.id",
	}, propValues(table.Properties, PropForeignKey))
}

func TestSerialNumberIsStable(t *testing.T) {
	a := SerialNumber("dataset-a")
	assert.Equal(t, a, SerialNumber("dataset-a"))
	assert.NotEqual(t, a, SerialNumber("dataset-b"))
	assert.True(t, strings.HasPrefix(a, "urn:uuid:"))
}

func TestCompileWithoutClockOmitsTimestamp(t *testing.T) {
	bom, err := Compiler{}.Compile(&model.Metadata{Identifier: "x"})
	require.NoError(t, err)
	assert.Empty(t, bom.Metadata.Timestamp)
	assert.Equal(t, "dataset", bom.Metadata.Component.Name)
	assert.Nil(t, bom.Components)
}

func TestCompileNil(t *testing.T) {
	_, err := Compiler{}.Compile(nil)
	assert.ErrorIs(t, err, apperr.ErrMetadata)
}

func TestUnsupportedKinds(t *testing.T) {
	b := &bomBuilder{}
	_, err := b.VisitSource(&model.Source{})
	assert.ErrorIs(t, err, apperr.ErrNotImplemented)
	_, err = b.VisitMetaComment(&model.MetaComment{})
	assert.ErrorIs(t, err, apperr.ErrNotImplemented)
}

func TestJSONRoundTrip(t *testing.T) {
	md := exampleModel(t)
	d := New()
	out, err := d.CompileAndRender(md)
	require.NoError(t, err)
	assert.Contains(t, out, `"specVersion": "1.6"`)

	back, err := d.ParseTyped([]byte(out))
	require.NoError(t, err)

	assert.Equal(t, md.Name, back.Name)
	assert.Equal(t, md.Title, back.Title)
	assert.Equal(t, md.Identifier, back.Identifier)
	assert.Equal(t, md.Keywords, back.Keywords)
	assert.Equal(t, md.Languages, back.Languages)
	assert.Equal(t, md.PublicationDate, back.PublicationDate)
	assert.Equal(t, md.Spatial, back.Spatial)
	assert.Equal(t, md.Temporal, back.Temporal)
	assert.Equal(t, md.MetadataVersion, back.MetadataVersion)

	require.Len(t, back.Licenses, 1)
	assert.Equal(t, md.Licenses[0].License.Identifier, back.Licenses[0].License.Identifier)
	assert.Equal(t, md.Licenses[0].License.Path, back.Licenses[0].License.Path)

	require.Len(t, back.Contributors, len(md.Contributors))
	for i, c := range md.Contributors {
		assert.Equal(t, c.Person.Name, back.Contributors[i].Person.Name)
		assert.Equal(t, c.Date, back.Contributors[i].Date)
		assert.Equal(t, c.Comment, back.Contributors[i].Comment)
	}

	require.Len(t, back.Resources, len(md.Resources))
	for i, r := range md.Resources {
		got := back.Resources[i]
		assert.Equal(t, r.Name, got.Name)
		assert.Equal(t, r.Format, got.Format)
		assert.Equal(t, r.Schema.PrimaryKey, got.Schema.PrimaryKey)
		require.Len(t, got.Schema.Fields, len(r.Schema.Fields))
		for j, f := range r.Schema.Fields {
			assert.True(t, f.Equal(got.Schema.Fields[j]), "%v != %v", f, got.Schema.Fields[j])
		}
	}

	fks := back.Resources[0].Schema.ForeignKeys
	require.Len(t, fks, 2)
	assert.Equal(t, "schema.table", fks[0].TargetResource())
	assert.Same(t, back.Resources[1].Field("id"), fks[1].References[0].Target)
}

func TestXMLRoundTrip(t *testing.T) {
	md := exampleModel(t)
	d := NewXML()
	out, err := d.CompileAndRender(md)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<?xml"))

	back, err := d.ParseTyped([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, md.Name, back.Name)
	assert.Len(t, back.Resources, 2)
}

func TestParseErrors(t *testing.T) {
	_, err := New().Parse([]byte("{not json"))
	assert.ErrorIs(t, err, apperr.ErrDecode)

	_, err = New().Parse([]byte(`{"bomFormat": "CycloneDX", "specVersion": "1.6"}`))
	assert.ErrorIs(t, err, apperr.ErrParse)

	bom := cdx.NewBOM()
	bom.Metadata = &cdx.Metadata{Component: &cdx.Component{Name: "x"}}
	bom.Components = &[]cdx.Component{{
		Name:       "t",
		Properties: &[]cdx.Property{{Name: PropForeignKey, Value: "garbage"}},
	}}
	_, err = Parser{}.Parse(bom)
	assert.ErrorIs(t, err, apperr.ErrParse)
}
