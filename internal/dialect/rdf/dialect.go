package rdf

import (
	"bytes"

	"github.com/OpenEnergyPlatform/omi/internal/dialect"
	"github.com/OpenEnergyPlatform/omi/internal/model"
	graph "github.com/OpenEnergyPlatform/omi/internal/rdf"
)

const (
	IDTurtle   = "oep-rdf-v1.4"
	IDNTriples = "oep-nt-v1.4"
)

// Dialect is the typed dialect shape of the RDF dialects.
type Dialect = dialect.Generic[*graph.Graph, *model.Metadata, *graph.Graph]

// TurtleRenderer renders graphs as Turtle.
type TurtleRenderer struct{}

func (TurtleRenderer) Render(g *graph.Graph) (string, error) {
	var buf bytes.Buffer
	if err := g.WriteTurtle(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// NTriplesRenderer renders graphs as N-Triples.
type NTriplesRenderer struct{}

func (NTriplesRenderer) Render(g *graph.Graph) (string, error) {
	var buf bytes.Buffer
	if err := g.WriteNTriples(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// NewTurtle returns the OEP-1.4 RDF dialect serialized as Turtle.
func NewTurtle() *Dialect {
	return dialect.New[*graph.Graph, *model.Metadata, *graph.Graph](
		IDTurtle, "OEP metadata 1.4 (RDF, Turtle)", Parser{ID: IDTurtle}, Compiler{}, TurtleRenderer{})
}

// NewNTriples returns the OEP-1.4 RDF dialect serialized as N-Triples.
func NewNTriples() *Dialect {
	return dialect.New[*graph.Graph, *model.Metadata, *graph.Graph](
		IDNTriples, "OEP metadata 1.4 (RDF, N-Triples)", Parser{ID: IDNTriples, NTriples: true}, Compiler{}, NTriplesRenderer{})
}
