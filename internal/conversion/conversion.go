// Package conversion upgrades metadata documents between versions by
// applying a chain of registered pairwise steps to the decoded tree.
package conversion

import (
	"fmt"
	"sync"
	"time"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/document"
	"github.com/OpenEnergyPlatform/omi/internal/version"
)

// Converter applies conversion chains found in its registry.
type Converter struct {
	registry *Registry
}

// Options configures the built-in steps.
type Options struct {
	// Now dates the contributor entry recorded by structural steps.
	// Defaults to time.Now.
	Now func() time.Time
}

// New returns a converter over the built-in steps.
func New(opts Options) *Converter {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	r := NewRegistry()
	if err := RegisterDefaults(r, opts); err != nil {
		panic(err)
	}
	return &Converter{registry: r}
}

// NewWithRegistry returns a converter over a caller-built registry.
func NewWithRegistry(r *Registry) *Converter {
	return &Converter{registry: r}
}

// Registry exposes the steps the converter knows.
func (c *Converter) Registry() *Registry { return c.registry }

// Targets lists the versions a document can be converted to.
func (c *Converter) Targets() []string {
	vs := c.registry.Versions()
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

// Plan returns the steps Convert would apply. A document already at the
// target needs none.
func (c *Converter) Plan(doc *document.Dict, target string) ([]Step, error) {
	same, err := atTarget(doc, target)
	if err != nil || same {
		return nil, err
	}
	from, to, err := c.endpoints(doc, target)
	if err != nil {
		return nil, err
	}
	return c.registry.Chain(from, to)
}

// atTarget reports whether doc declares exactly the patched target tag.
// Such documents need no registered node for their own patch level.
func atTarget(doc *document.Dict, target string) (bool, error) {
	src, err := version.Of(doc)
	if err != nil {
		return false, err
	}
	tgt, err := version.Parse(target)
	if err != nil {
		return false, err
	}
	return tgt.HasPatch() && src.Canonical() == tgt.Canonical(), nil
}

func (c *Converter) endpoints(doc *document.Dict, target string) (version.Version, version.Version, error) {
	src, err := version.Of(doc)
	if err != nil {
		return version.Version{}, version.Version{}, err
	}
	tgt, err := version.Parse(target)
	if err != nil {
		return version.Version{}, version.Version{}, err
	}
	from, ok := c.registry.resolveSource(src)
	if !ok {
		return version.Version{}, version.Version{}, apperr.Metadataf("unsupported metadata version %s", src)
	}
	to, ok := c.registry.Resolve(tgt)
	if !ok {
		return version.Version{}, version.Version{}, &apperr.ConversionError{From: src.String(), To: target}
	}
	return from, to, nil
}

// Convert returns doc converted to target. The input is never modified;
// converting to the document's own version returns a copy.
func (c *Converter) Convert(doc *document.Dict, target string) (*document.Dict, error) {
	same, err := atTarget(doc, target)
	if err != nil {
		return nil, err
	}
	docID := doc.GetString("name")
	if same {
		logf(docID, "already at %s", target)
		return doc.Clone(), nil
	}
	from, to, err := c.endpoints(doc, target)
	if err != nil {
		return nil, err
	}
	if from.String() == to.String() {
		logf(docID, "already at %s", to)
		return doc.Clone(), nil
	}
	steps, err := c.registry.Chain(from, to)
	if err != nil {
		return nil, err
	}

	cur := doc.Clone()
	for _, s := range steps {
		actual, err := version.Of(cur)
		if err != nil {
			return nil, err
		}
		step := s
		if node, ok := c.registry.resolveSource(actual); ok {
			if node.String() == s.To.String() {
				logf(docID, "skip %s: document already declares %s", s, actual)
				continue
			}
			if node.String() != s.From.String() {
				if alt, found := c.registry.edge(node, s.To); found {
					step = alt
				}
			}
		}
		logf(docID, "convert %s", step)
		cur, err = step.Convert(cur)
		if err != nil {
			return nil, fmt.Errorf("convert %s: %w", step, err)
		}
	}
	return cur, nil
}

var (
	defaultOnce      sync.Once
	defaultConverter *Converter
)

// Default returns the converter used by Convert.
func Default() *Converter {
	defaultOnce.Do(func() { defaultConverter = New(Options{}) })
	return defaultConverter
}

// Convert converts doc to target with the default converter.
func Convert(doc *document.Dict, target string) (*document.Dict, error) {
	return Default().Convert(doc, target)
}
