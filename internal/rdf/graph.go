package rdf

import (
	"sort"
	"strconv"
)

// Graph is an ordered set of triples. Iteration follows insertion order.
// Lookups by (subject, predicate) and (predicate, object) are indexed.
type Graph struct {
	triples  []Triple
	index    map[Triple]struct{}
	objects  map[pair][]Term // (s, p) -> objects
	subjects map[pair][]Term // (p, o) -> subjects
	mentions map[Term]struct{}
	prefixes map[string]Namespace
	blanks   int
}

type pair struct{ a, b Term }

// NewGraph returns an empty graph with DefaultPrefixes bound.
func NewGraph() *Graph {
	g := &Graph{
		index:    make(map[Triple]struct{}),
		objects:  make(map[pair][]Term),
		subjects: make(map[pair][]Term),
		mentions: make(map[Term]struct{}),
		prefixes: make(map[string]Namespace),
	}
	for p, ns := range DefaultPrefixes {
		g.prefixes[p] = ns
	}
	return g
}

// Bind maps prefix to ns for serialization.
func (g *Graph) Bind(prefix string, ns Namespace) { g.prefixes[prefix] = ns }

// Prefixes lists the bound prefixes in sorted order.
func (g *Graph) Prefixes() []string {
	out := make([]string, 0, len(g.prefixes))
	for p := range g.prefixes {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Namespace returns the namespace bound to prefix.
func (g *Graph) Namespace(prefix string) (Namespace, bool) {
	ns, ok := g.prefixes[prefix]
	return ns, ok
}

// NewBlank allocates a fresh blank node. Labels are deterministic per graph.
func (g *Graph) NewBlank() Term {
	for {
		g.blanks++
		b := Blank("n" + strconv.Itoa(g.blanks))
		if _, used := g.mentions[b]; !used {
			return b
		}
	}
}

// Add inserts a triple unless it is already present. Zero terms and
// empty literals are ignored.
func (g *Graph) Add(s, p, o Term) {
	if s.IsZero() || p.IsZero() || o.IsZero() {
		return
	}
	if o.IsLiteral() && o.Value == "" {
		return
	}
	t := Triple{S: s, P: p, O: o}
	if _, ok := g.index[t]; ok {
		return
	}
	g.index[t] = struct{}{}
	g.triples = append(g.triples, t)
	g.objects[pair{s, p}] = append(g.objects[pair{s, p}], o)
	g.subjects[pair{p, o}] = append(g.subjects[pair{p, o}], s)
	g.mentions[s] = struct{}{}
	g.mentions[o] = struct{}{}
}

// Has reports whether the exact triple is present.
func (g *Graph) Has(s, p, o Term) bool {
	_, ok := g.index[Triple{S: s, P: p, O: o}]
	return ok
}

// Len returns the number of triples.
func (g *Graph) Len() int { return len(g.triples) }

// Triples returns a copy of all triples in insertion order.
func (g *Graph) Triples() []Triple {
	return append([]Triple(nil), g.triples...)
}

// Objects returns the objects of (s, p, ?) in insertion order.
func (g *Graph) Objects(s, p Term) []Term {
	return append([]Term(nil), g.objects[pair{s, p}]...)
}

// Object returns the first object of (s, p, ?).
func (g *Graph) Object(s, p Term) (Term, bool) {
	if objs := g.objects[pair{s, p}]; len(objs) > 0 {
		return objs[0], true
	}
	return Term{}, false
}

// Value returns the lexical value of the first object of (s, p, ?), or "".
func (g *Graph) Value(s, p Term) string {
	o, _ := g.Object(s, p)
	return o.Value
}

// Values returns the lexical values of all objects of (s, p, ?).
func (g *Graph) Values(s, p Term) []string {
	objs := g.Objects(s, p)
	if objs == nil {
		return nil
	}
	out := make([]string, len(objs))
	for i, o := range objs {
		out[i] = o.Value
	}
	return out
}

// Subjects returns the subjects of (?, p, o) in insertion order.
func (g *Graph) Subjects(p, o Term) []Term {
	return append([]Term(nil), g.subjects[pair{p, o}]...)
}
