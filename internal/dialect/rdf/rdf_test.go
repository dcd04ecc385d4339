package rdf

import (
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/dialect/oep"
	"github.com/OpenEnergyPlatform/omi/internal/model"
	graph "github.com/OpenEnergyPlatform/omi/internal/rdf"
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

func TestCompileSharesLicenseNodes(t *testing.T) {
	g, err := Compiler{}.Compile(exampleModel(t))
	require.NoError(t, err)

	docs := g.Subjects(graph.Type, dctLicenseDoc)
	ids := map[string]int{}
	for _, d := range docs {
		ids[g.Value(d, dctIdentifier)]++
	}
	assert.Equal(t, map[string]int{"CC0-1.0": 1, "ODbL-1.0": 1}, ids)
}

func TestCompileDatasetNode(t *testing.T) {
	md := exampleModel(t)
	g, err := Compiler{}.Compile(md)
	require.NoError(t, err)

	ds := graph.IRI(md.Identifier)
	assert.True(t, g.Has(ds, graph.Type, dcatDataset))
	assert.Equal(t, md.Keywords, g.Values(ds, dcatKeyword))
	assert.Equal(t, "OEP-1.4.0", g.Value(ds, dctConformsTo))
	assert.Len(t, g.Objects(ds, dcatDistribute), 2)

	md.Identifier = "plain-id"
	g, err = Compiler{}.Compile(md)
	require.NoError(t, err)
	datasets := g.Subjects(graph.Type, dcatDataset)
	require.Len(t, datasets, 1)
	assert.True(t, strings.HasPrefix(datasets[0].Value, "urn:uuid:"))
}

func TestJSONToRDFAndBack(t *testing.T) {
	md := exampleModel(t)
	d := NewTurtle()

	ttl, err := d.CompileAndRender(md)
	require.NoError(t, err)
	assert.Contains(t, ttl, "@prefix dcat: <http://www.w3.org/ns/dcat#> .")
	assert.Contains(t, ttl, "a dcat:Dataset")

	back, err := d.ParseTyped([]byte(ttl))
	require.NoError(t, err)

	assert.Equal(t, md.Identifier, back.Identifier)
	assert.Equal(t, md.Title, back.Title)
	assert.Equal(t, md.Languages, back.Languages)
	assert.Equal(t, md.Keywords, back.Keywords)
	assert.Equal(t, *md.Context, *back.Context)
	assert.Equal(t, *md.Spatial, *back.Spatial)
	assert.Equal(t, *md.Temporal.Timeseries, *back.Temporal.Timeseries)
	assert.Equal(t, *md.Review, *back.Review)
	assert.Equal(t, *md.Comment, *back.Comment)
	assert.Equal(t, *md.MetadataLicense, *back.MetadataLicense)

	require.Len(t, back.Sources, len(md.Sources))
	for i := range md.Sources {
		assert.Equal(t, md.Sources[i].Title, back.Sources[i].Title)
		assert.Equal(t, *md.Sources[i].Licenses[0].License, *back.Sources[i].Licenses[0].License)
		assert.Equal(t, md.Sources[i].Licenses[0].Attribution, back.Sources[i].Licenses[0].Attribution)
	}
	require.Len(t, back.Contributors, 2)
	assert.Equal(t, *md.Contributors[1].Person, *back.Contributors[1].Person)

	require.Len(t, back.Resources, 2)
	for i, r := range md.Resources {
		got := back.Resources[i]
		assert.Equal(t, r.Name, got.Name)
		assert.Equal(t, r.Schema.PrimaryKey, got.Schema.PrimaryKey)
		require.Len(t, got.Schema.Fields, len(r.Schema.Fields))
		for j, f := range r.Schema.Fields {
			assert.True(t, f.Equal(got.Schema.Fields[j]), "%s != %s", f, got.Schema.Fields[j])
		}
		assert.Equal(t, *r.Dialect, *got.Dialect)
	}

	fks := back.Resources[0].Schema.ForeignKeys
	require.Len(t, fks, 2)
	assert.Equal(t, "schema.table", fks[0].TargetResource())
	assert.Same(t, back.Resources[0].Field("year"), fks[0].References[0].Source)
	assert.Same(t, back.Resource("model_draft.oep_region").Field("id"), fks[1].References[0].Target)
}

func TestTurtleIsStable(t *testing.T) {
	d := NewTurtle()
	first, err := d.CompileAndRender(exampleModel(t))
	require.NoError(t, err)

	md, err := d.ParseTyped([]byte(first))
	require.NoError(t, err)
	second, err := d.CompileAndRender(md)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNTriplesRoundTrip(t *testing.T) {
	d := NewNTriples()
	nt, err := d.CompileAndRender(exampleModel(t))
	require.NoError(t, err)

	back, err := d.ParseTyped([]byte(nt))
	require.NoError(t, err)
	assert.Equal(t, "oep_metadata_table_example_v14", back.Name)
	assert.Len(t, back.Resources, 2)
}

func TestParseErrors(t *testing.T) {
	_, err := NewTurtle().ParseTyped([]byte(`@prefix dct: <http://purl.org/dc/terms/> .
<http://example.org/a> dct:title "x" .`))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrParse)
	assert.Contains(t, err.Error(), "found 0")

	_, err = NewTurtle().ParseTyped([]byte(`@prefix dcat: <http://www.w3.org/ns/dcat#> .
<http://example.org/a> a dcat:Dataset .
<http://example.org/b> a dcat:Dataset .`))
	assert.ErrorIs(t, err, apperr.ErrParse)

	_, err = NewTurtle().ParseTyped([]byte("not turtle at all"))
	assert.ErrorIs(t, err, apperr.ErrDecode)

	// A blank dataset node has no IRI to stand in for dct:identifier.
	_, err = NewTurtle().ParseTyped([]byte(`@prefix dcat: <http://www.w3.org/ns/dcat#> .
@prefix dct: <http://purl.org/dc/terms/> .
_:d a dcat:Dataset ; dct:title "t" .`))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrParse)
	assert.Contains(t, err.Error(), "missing required identifier")
}

func TestParseUsesDatasetIRIAsIdentifier(t *testing.T) {
	md, err := NewTurtle().ParseTyped([]byte(`@prefix dcat: <http://www.w3.org/ns/dcat#> .
@prefix dct: <http://purl.org/dc/terms/> .
<http://example.org/ds> a dcat:Dataset ; dct:title "t" .`))
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/ds", md.Identifier)
}

func wideModel(fields int) *model.Metadata {
	res := &model.Resource{Name: "model_draft.wide", Schema: &model.Schema{}}
	for i := 0; i < fields; i++ {
		res.Schema.Fields = append(res.Schema.Fields, &model.Field{
			Name:     "f" + strconv.Itoa(i),
			Type:     "integer",
			Unit:     "MW",
			Resource: res.Name,
		})
	}
	return &model.Metadata{Identifier: "http://example.org/wide", Title: "wide", Resources: []*model.Resource{res}}
}

func roundTripGraph(t testing.TB, md *model.Metadata) *model.Metadata {
	g, err := Compiler{}.Compile(md)
	require.NoError(t, err)
	back, err := Parser{}.Parse(g)
	require.NoError(t, err)
	return back
}

// fastest returns the best of a few runs to keep scheduler noise out.
func fastest(t *testing.T, md *model.Metadata) time.Duration {
	best := time.Duration(math.MaxInt64)
	for i := 0; i < 3; i++ {
		start := time.Now()
		roundTripGraph(t, md)
		if d := time.Since(start); d < best {
			best = d
		}
	}
	return best
}

func TestGraphRoundTripScalesLinearly(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}
	small, large := wideModel(2000), wideModel(8000)

	back := roundTripGraph(t, large)
	require.Len(t, back.Resources[0].Schema.Fields, 8000)
	assert.Equal(t, "f7999", back.Resources[0].Schema.Fields[7999].Name)

	// Four times the fields: about 4x when linear, 16x when quadratic.
	ratio := float64(fastest(t, large)) / float64(fastest(t, small))
	assert.Less(t, ratio, 10.0, "8000 fields took %.1fx the time of 2000", ratio)
}

func BenchmarkGraphRoundTrip(b *testing.B) {
	for _, n := range []int{1000, 2000, 4000} {
		md := wideModel(n)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				roundTripGraph(b, md)
			}
		})
	}
}
