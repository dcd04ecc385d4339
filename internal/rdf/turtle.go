package rdf

import (
	"bytes"
	"io"
	"regexp"
	"strings"
)

const indentUnit = "    "

var localName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// turtleWriter lays a graph out subject by subject. Blank nodes that are
// the object of exactly one triple are nested in place.
type turtleWriter struct {
	g       *Graph
	used    map[string]bool
	refs    map[Term]int
	subject map[Term][]Triple
	written map[Term]bool
}

// Turtle renders the graph as Turtle.
func (g *Graph) Turtle() string {
	var buf bytes.Buffer
	_ = g.WriteTurtle(&buf)
	return buf.String()
}

// WriteTurtle writes the graph as Turtle. Only prefixes in use are
// declared.
func (g *Graph) WriteTurtle(w io.Writer) error {
	tw := &turtleWriter{
		g:       g,
		used:    make(map[string]bool),
		refs:    make(map[Term]int),
		subject: make(map[Term][]Triple),
		written: make(map[Term]bool),
	}
	var order []Term
	for _, t := range g.triples {
		if _, seen := tw.subject[t.S]; !seen {
			order = append(order, t.S)
		}
		tw.subject[t.S] = append(tw.subject[t.S], t)
		if t.O.IsBlank() {
			tw.refs[t.O]++
		}
	}

	var body strings.Builder
	emit := func(s Term) {
		if tw.written[s] {
			return
		}
		tw.written[s] = true
		body.WriteString(tw.term(s))
		body.WriteString(tw.predicates(s, 1))
		body.WriteString(" .\n\n")
	}
	for _, s := range order {
		if !s.IsBlank() {
			emit(s)
		}
	}
	for _, s := range order {
		if s.IsBlank() && !tw.inline(s) {
			emit(s)
		}
	}

	var out strings.Builder
	for _, p := range g.Prefixes() {
		if tw.used[p] {
			out.WriteString("@prefix " + p + ": <" + string(g.prefixes[p]) + "> .\n")
		}
	}
	if out.Len() > 0 {
		out.WriteString("\n")
	}
	out.WriteString(strings.TrimSuffix(body.String(), "\n"))
	_, err := io.WriteString(w, out.String())
	return err
}

func (tw *turtleWriter) inline(b Term) bool {
	return b.IsBlank() && tw.refs[b] == 1
}

// predicates writes the predicate-object list of s at the given depth.
func (tw *turtleWriter) predicates(s Term, depth int) string {
	var (
		b     strings.Builder
		preds []Term
		objs  = map[Term][]Term{}
	)
	for _, t := range tw.subject[s] {
		if _, seen := objs[t.P]; !seen {
			preds = append(preds, t.P)
		}
		objs[t.P] = append(objs[t.P], t.O)
	}
	indent := strings.Repeat(indentUnit, depth)
	for i, p := range preds {
		if i > 0 {
			b.WriteString(" ;")
		}
		b.WriteString("\n" + indent)
		if p == Type {
			b.WriteString("a")
		} else {
			b.WriteString(tw.term(p))
		}
		b.WriteString(" ")
		for j, o := range objs[p] {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(tw.object(o, depth))
		}
	}
	return b.String()
}

func (tw *turtleWriter) object(o Term, depth int) string {
	if !tw.inline(o) || tw.written[o] {
		return tw.term(o)
	}
	tw.written[o] = true
	if len(tw.subject[o]) == 0 {
		return "[]"
	}
	return "[" + tw.predicates(o, depth+1) + "\n" + strings.Repeat(indentUnit, depth) + "]"
}

func (tw *turtleWriter) term(t Term) string {
	switch t.Kind {
	case KindIRI:
		return tw.iri(t.Value)
	case KindLiteral:
		s := quote(t.Value)
		if t.Lang != "" {
			return s + "@" + t.Lang
		}
		if t.Datatype != "" {
			return s + "^^" + tw.iri(t.Datatype)
		}
		return s
	}
	return t.String()
}

func (tw *turtleWriter) iri(v string) string {
	best, bestLen := "", 0
	for p, ns := range tw.g.prefixes {
		n := string(ns)
		if len(n) > bestLen && strings.HasPrefix(v, n) && localName.MatchString(v[len(n):]) {
			best, bestLen = p, len(n)
		}
	}
	if bestLen == 0 {
		return "<" + v + ">"
	}
	tw.used[best] = true
	return best + ":" + v[bestLen:]
}
