package conversion

import (
	"fmt"
	"sort"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/document"
	"github.com/OpenEnergyPlatform/omi/internal/version"
)

// Func converts a document of one version into the next. It may modify
// its argument, which is always a private working copy.
type Func func(doc *document.Dict) (*document.Dict, error)

// Step is a registered edge of the version graph.
type Step struct {
	From    version.Version
	To      version.Version
	Convert Func
}

func (s Step) String() string { return s.From.String() + " -> " + s.To.String() }

// Registry holds the conversion steps between versions.
type Registry struct {
	nodes map[string]version.Version
	edges map[string][]Step
}

func NewRegistry() *Registry {
	return &Registry{
		nodes: make(map[string]version.Version),
		edges: make(map[string][]Step),
	}
}

// Register adds a step. Both tags need a patch component and every edge
// may be registered once.
func (r *Registry) Register(from, to string, fn Func) error {
	f, err := version.Parse(from)
	if err != nil {
		return err
	}
	t, err := version.Parse(to)
	if err != nil {
		return err
	}
	if !f.HasPatch() || !t.HasPatch() {
		return fmt.Errorf("conversion %s -> %s: versions need a patch component", from, to)
	}
	if fn == nil {
		return fmt.Errorf("conversion %s -> %s: nil function", from, to)
	}
	if _, dup := r.edge(f, t); dup {
		return fmt.Errorf("conversion %s -> %s already registered", from, to)
	}
	r.nodes[f.String()] = f
	r.nodes[t.String()] = t
	r.edges[f.String()] = append(r.edges[f.String()], Step{From: f, To: t, Convert: fn})
	return nil
}

func (r *Registry) edge(from, to version.Version) (Step, bool) {
	for _, s := range r.edges[from.String()] {
		if s.To.String() == to.String() {
			return s, true
		}
	}
	return Step{}, false
}

// Versions lists every version that takes part in a conversion, oldest
// first.
func (r *Registry) Versions() []version.Version {
	out := make([]version.Version, 0, len(r.nodes))
	for _, v := range r.nodes {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return out
}

// Steps lists the registered edges ordered by source, then target version.
func (r *Registry) Steps() []Step {
	var out []Step
	for _, v := range r.Versions() {
		out = append(out, r.neighbours(v)...)
	}
	return out
}

// Resolve maps a requested version onto a registered node. A tag with a
// patch must match exactly; a tag without one selects the newest node of
// its family.
func (r *Registry) Resolve(v version.Version) (version.Version, bool) {
	if v.HasPatch() {
		n, ok := r.nodes[v.String()]
		return n, ok
	}
	var (
		best  version.Version
		found bool
	)
	for _, n := range r.nodes {
		if n.SameFamily(v) && (!found || n.Compare(best) > 0) {
			best, found = n, true
		}
	}
	return best, found
}

// resolveSource is Resolve that falls back to the family of a patched tag,
// so documents declaring an unregistered patch level still convert.
func (r *Registry) resolveSource(v version.Version) (version.Version, bool) {
	if n, ok := r.Resolve(v); ok {
		return n, true
	}
	return r.Resolve(version.Version{Format: v.Format, Major: v.Major, Minor: v.Minor})
}

// neighbours returns the outgoing steps of v in version order of their
// targets, so that chain resolution does not depend on registration order.
func (r *Registry) neighbours(v version.Version) []Step {
	steps := append([]Step(nil), r.edges[v.String()]...)
	sort.Slice(steps, func(i, j int) bool { return steps[i].To.Compare(steps[j].To) < 0 })
	return steps
}

// Chain finds a path of steps from one registered version to another by a
// depth-first search. The first path found wins; it is not necessarily the
// shortest.
func (r *Registry) Chain(from, to version.Version) ([]Step, error) {
	if from.String() == to.String() {
		return nil, nil
	}
	visited := map[string]bool{}
	var path []Step
	var walk func(v version.Version) bool
	walk = func(v version.Version) bool {
		if v.String() == to.String() {
			return true
		}
		visited[v.String()] = true
		for _, s := range r.neighbours(v) {
			if visited[s.To.String()] {
				continue
			}
			path = append(path, s)
			if walk(s.To) {
				return true
			}
			path = path[:len(path)-1]
		}
		return false
	}
	if !walk(from) {
		return nil, &apperr.ConversionError{From: from.String(), To: to.String()}
	}
	return path, nil
}
