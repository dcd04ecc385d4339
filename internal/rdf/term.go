// Package rdf is a small in-memory triple store with a Turtle reader and
// writer. Parsing is delegated to github.com/knakk/rdf; the writer produces
// prefixed, nested Turtle with a stable layout.
package rdf

import "strings"

// TermKind tells IRIs, blank nodes and literals apart.
type TermKind uint8

const (
	KindIRI TermKind = iota + 1
	KindBlank
	KindLiteral
)

// Term is a comparable RDF term, usable as a map key.
type Term struct {
	Kind     TermKind
	Value    string
	Datatype string
	Lang     string
}

// IRI returns an IRI term.
func IRI(v string) Term { return Term{Kind: KindIRI, Value: v} }

// Blank returns a blank node term with the given label.
func Blank(label string) Term {
	return Term{Kind: KindBlank, Value: strings.TrimPrefix(label, "_:")}
}

// Literal returns a plain string literal.
func Literal(v string) Term { return Term{Kind: KindLiteral, Value: v} }

func (t Term) IsIRI() bool     { return t.Kind == KindIRI }
func (t Term) IsBlank() bool   { return t.Kind == KindBlank }
func (t Term) IsLiteral() bool { return t.Kind == KindLiteral }
func (t Term) IsZero() bool    { return t.Kind == 0 }

func (t Term) String() string {
	switch t.Kind {
	case KindIRI:
		return "<" + t.Value + ">"
	case KindBlank:
		return "_:" + t.Value
	case KindLiteral:
		s := quote(t.Value)
		if t.Lang != "" {
			return s + "@" + t.Lang
		}
		if t.Datatype != "" {
			return s + "^^<" + t.Datatype + ">"
		}
		return s
	}
	return "<invalid>"
}

// Triple is one statement.
type Triple struct {
	S, P, O Term
}

func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
