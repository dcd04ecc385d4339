// Package specs bundles the blank templates and example documents of every
// supported metadata family.
package specs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/OpenEnergyPlatform/omi/internal/document"
	"github.com/OpenEnergyPlatform/omi/internal/version"
)

//go:embed data/*.json
var files embed.FS

// ErrNotFound is returned for families or artifacts that are not bundled.
var ErrNotFound = errors.New("specification artifact not found")

const (
	kindTemplate = "template"
	kindExample  = "example"
)

// Specification groups the artifacts of one family.
type Specification struct {
	Family   string
	template []byte
	example  []byte
}

// Template returns a fresh copy of the blank template.
func (s Specification) Template() (*document.Dict, error) {
	if s.template == nil {
		return nil, fmt.Errorf("%s %s: %w", s.Family, kindTemplate, ErrNotFound)
	}
	return document.DecodeJSON(s.template)
}

// Example returns a fresh copy of the example document.
func (s Specification) Example() (*document.Dict, error) {
	if s.example == nil {
		return nil, fmt.Errorf("%s %s: %w", s.Family, kindExample, ErrNotFound)
	}
	return document.DecodeJSON(s.example)
}

// ExampleBytes returns the example as stored, for byte-level round trips.
func (s Specification) ExampleBytes() []byte { return s.example }

// Get returns the specification of the family v belongs to.
func Get(v version.Version) (Specification, error) {
	return GetFamily(v.Family())
}

// GetFamily looks a specification up by family name such as "OEP-1.4".
func GetFamily(family string) (Specification, error) {
	base := strings.ToLower(family)
	spec := Specification{Family: family}
	if b, err := files.ReadFile("data/" + base + "." + kindTemplate + ".json"); err == nil {
		spec.template = b
	}
	if b, err := files.ReadFile("data/" + base + "." + kindExample + ".json"); err == nil {
		spec.example = b
	}
	if spec.template == nil && spec.example == nil {
		return Specification{}, fmt.Errorf("family %q: %w", family, ErrNotFound)
	}
	return spec, nil
}

// Template is a shortcut for Get(v) followed by Template.
func Template(v version.Version) (*document.Dict, error) {
	s, err := Get(v)
	if err != nil {
		return nil, err
	}
	return s.Template()
}

// Example is a shortcut for GetFamily(family) followed by Example.
func Example(family string) (*document.Dict, error) {
	s, err := GetFamily(family)
	if err != nil {
		return nil, err
	}
	return s.Example()
}

// Families lists the bundled families in version order.
func Families() []string {
	entries, _ := fs.ReadDir(files, "data")
	seen := map[string]version.Version{}
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".json")
		name = strings.TrimSuffix(strings.TrimSuffix(name, "."+kindTemplate), "."+kindExample)
		v, err := version.Parse(canonicalFamily(name))
		if err != nil {
			continue
		}
		seen[v.Family()] = v
	}
	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return seen[out[i]].Compare(seen[out[j]]) < 0 })
	return out
}

// canonicalFamily restores the case of a lower-cased file stem.
func canonicalFamily(stem string) string {
	format, rest, _ := strings.Cut(stem, "-")
	switch format {
	case strings.ToLower(version.FormatOEP):
		format = version.FormatOEP
	case strings.ToLower(version.FormatOEMetadata):
		format = version.FormatOEMetadata
	}
	return format + "-" + rest
}
