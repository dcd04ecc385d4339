package rdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	knakk "github.com/knakk/rdf"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
)

const (
	xsdString     = "http://www.w3.org/2001/XMLSchema#string"
	rdfLangString = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"
)

// DecodeTurtle parses a Turtle document into a new graph.
func DecodeTurtle(data []byte) (*Graph, error) {
	return decode(data, knakk.Turtle, "turtle")
}

// DecodeNTriples parses an N-Triples document into a new graph.
func DecodeNTriples(data []byte) (*Graph, error) {
	return decode(data, knakk.NTriples, "ntriples")
}

func decode(data []byte, f knakk.Format, name string) (*Graph, error) {
	g := NewGraph()
	dec := knakk.NewTripleDecoder(bytes.NewReader(data), f)
	for {
		t, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperr.Decode(name, err)
		}
		s, err := fromKnakk(t.Subj)
		if err != nil {
			return nil, apperr.Decode(name, err)
		}
		p, err := fromKnakk(t.Pred)
		if err != nil {
			return nil, apperr.Decode(name, err)
		}
		o, err := fromKnakk(t.Obj)
		if err != nil {
			return nil, apperr.Decode(name, err)
		}
		g.Add(s, p, o)
	}
	return g, nil
}

func fromKnakk(t knakk.Term) (Term, error) {
	switch v := t.(type) {
	case knakk.IRI:
		return IRI(v.String()), nil
	case knakk.Blank:
		return Blank(v.String()), nil
	case knakk.Literal:
		lit := Literal(v.String())
		lit.Lang = v.Lang()
		if dt := v.DataType.String(); dt != xsdString && dt != rdfLangString {
			lit.Datatype = dt
		}
		return lit, nil
	}
	return Term{}, fmt.Errorf("unsupported term %T", t)
}

func toKnakk(t Term) (knakk.Term, error) {
	switch t.Kind {
	case KindIRI:
		iri, err := knakk.NewIRI(t.Value)
		return iri, err
	case KindBlank:
		b, err := knakk.NewBlank(t.Value)
		return b, err
	case KindLiteral:
		if t.Lang != "" {
			l, err := knakk.NewLangLiteral(t.Value, t.Lang)
			return l, err
		}
		if t.Datatype != "" {
			dt, err := knakk.NewIRI(t.Datatype)
			if err != nil {
				return nil, err
			}
			return knakk.NewTypedLiteral(t.Value, dt), nil
		}
		l, err := knakk.NewLiteral(t.Value)
		return l, err
	}
	return nil, fmt.Errorf("invalid term %v", t)
}

// WriteNTriples writes the graph as N-Triples.
func (g *Graph) WriteNTriples(w io.Writer) error {
	enc := knakk.NewTripleEncoder(w, knakk.NTriples)
	for _, t := range g.triples {
		s, err := toKnakk(t.S)
		if err != nil {
			return err
		}
		p, err := toKnakk(t.P)
		if err != nil {
			return err
		}
		o, err := toKnakk(t.O)
		if err != nil {
			return err
		}
		subj, ok := s.(knakk.Subject)
		if !ok {
			return fmt.Errorf("%v cannot be a subject", t.S)
		}
		pred, ok := p.(knakk.Predicate)
		if !ok {
			return fmt.Errorf("%v cannot be a predicate", t.P)
		}
		obj, ok := o.(knakk.Object)
		if !ok {
			return fmt.Errorf("%v cannot be an object", t.O)
		}
		if err := enc.Encode(knakk.Triple{Subj: subj, Pred: pred, Obj: obj}); err != nil {
			return err
		}
	}
	return enc.Close()
}
