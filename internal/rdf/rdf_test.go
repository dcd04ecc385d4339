package rdf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGraph() *Graph {
	g := NewGraph()
	ds := IRI("http://example.org/ds")
	g.Add(ds, Type, NSDCAT.Term("Dataset"))
	g.Add(ds, NSDCT.Term("title"), Literal(`A "quoted" title`))
	g.Add(ds, NSDCAT.Term("keyword"), Literal("energy"))
	g.Add(ds, NSDCAT.Term("keyword"), Literal("wind"))

	spatial := g.NewBlank()
	g.Add(ds, NSDCT.Term("spatial"), spatial)
	g.Add(spatial, NSOEO.Term("has_spatial_extent"), Literal("europe"))

	shared := g.NewBlank()
	g.Add(ds, NSDCT.Term("license"), shared)
	g.Add(IRI("http://example.org/other"), NSDCT.Term("license"), shared)
	g.Add(shared, NSDCT.Term("identifier"), Literal("CC0-1.0"))
	return g
}

func TestAddDeduplicates(t *testing.T) {
	g := NewGraph()
	s, p := IRI("http://example.org/s"), NSDCT.Term("title")
	g.Add(s, p, Literal("x"))
	g.Add(s, p, Literal("x"))
	g.Add(s, p, Literal(""))
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Has(s, p, Literal("x")))
}

func TestNewBlankIsDeterministic(t *testing.T) {
	a, b := NewGraph(), NewGraph()
	assert.Equal(t, a.NewBlank(), b.NewBlank())
	assert.NotEqual(t, a.NewBlank(), a.NewBlank())
}

func TestNewBlankSkipsLabelsInUse(t *testing.T) {
	g := NewGraph()
	g.Add(Blank("n1"), Type, IRI("http://example.org/T"))
	g.Add(IRI("http://example.org/s"), IRI("http://example.org/p"), Blank("n2"))

	assert.Equal(t, Blank("n3"), g.NewBlank())
}

func TestIndexedQueriesReturnCopies(t *testing.T) {
	g := NewGraph()
	s, p := IRI("http://example.org/s"), IRI("http://example.org/p")
	g.Add(s, p, Literal("a"))
	g.Add(s, p, Literal("b"))
	g.Add(s, p, Literal("a"))

	objs := g.Objects(s, p)
	require.Len(t, objs, 2)
	objs[0] = Literal("changed")
	assert.Equal(t, []string{"a", "b"}, g.Values(s, p))
	assert.Equal(t, []Term{s}, g.Subjects(p, Literal("b")))
	assert.Nil(t, g.Objects(p, s))
	assert.Nil(t, g.Subjects(s, p))
}

func TestQueries(t *testing.T) {
	g := sampleGraph()
	ds := IRI("http://example.org/ds")

	assert.Equal(t, []string{"energy", "wind"}, g.Values(ds, NSDCAT.Term("keyword")))
	assert.Nil(t, g.Values(ds, NSDCAT.Term("theme")))
	assert.Equal(t, []Term{ds}, g.Subjects(Type, NSDCAT.Term("Dataset")))

	lic, ok := g.Object(ds, NSDCT.Term("license"))
	require.True(t, ok)
	assert.Equal(t, "CC0-1.0", g.Value(lic, NSDCT.Term("identifier")))
}

func TestTurtleLayout(t *testing.T) {
	out := sampleGraph().Turtle()

	assert.True(t, strings.HasPrefix(out, "@prefix dcat: <http://www.w3.org/ns/dcat#> .\n"))
	assert.Contains(t, out, "@prefix dct: <http://purl.org/dc/terms/> .")
	assert.NotContains(t, out, "@prefix skos:")
	assert.Contains(t, out, "<http://example.org/ds>\n    a dcat:Dataset ;")
	assert.Contains(t, out, `dct:title "A \"quoted\" title"`)
	assert.Contains(t, out, `dcat:keyword "energy", "wind"`)
	assert.Contains(t, out, "dct:spatial [\n        oeo:has_spatial_extent \"europe\"\n    ]")
	assert.Contains(t, out, "dct:license _:n2")
	assert.Contains(t, out, "_:n2\n    dct:identifier \"CC0-1.0\" .")
}

func TestTurtleRoundTrip(t *testing.T) {
	g := sampleGraph()
	back, err := DecodeTurtle([]byte(g.Turtle()))
	require.NoError(t, err)
	assert.Equal(t, g.Len(), back.Len())

	ds := IRI("http://example.org/ds")
	assert.Equal(t, `A "quoted" title`, back.Value(ds, NSDCT.Term("title")))
	spatial, ok := back.Object(ds, NSDCT.Term("spatial"))
	require.True(t, ok)
	assert.True(t, spatial.IsBlank())
	assert.Equal(t, "europe", back.Value(spatial, NSOEO.Term("has_spatial_extent")))

	lic, _ := back.Object(ds, NSDCT.Term("license"))
	other, _ := back.Object(IRI("http://example.org/other"), NSDCT.Term("license"))
	assert.Equal(t, lic, other)
}

func TestDecodeTurtleRejectsGarbage(t *testing.T) {
	_, err := DecodeTurtle([]byte("this is not turtle"))
	assert.Error(t, err)
}

func TestWriteNTriples(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleGraph().WriteNTriples(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, sampleGraph().Len())
	assert.Contains(t, buf.String(), "<http://example.org/ds> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/ns/dcat#Dataset> .")

	back, err := DecodeNTriples(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, sampleGraph().Len(), back.Len())
}
