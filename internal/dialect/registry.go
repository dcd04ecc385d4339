package dialect

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownDialect is returned by Get for identifiers never registered.
var ErrUnknownDialect = errors.New("unknown dialect")

// Registry maps dialect identifiers to dialects.
type Registry struct {
	mu       sync.RWMutex
	dialects map[string]Dialect
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{dialects: make(map[string]Dialect)}
}

// Register adds d. Identifiers are unique.
func (r *Registry) Register(d Dialect) error {
	if d == nil || d.ID() == "" {
		return errors.New("dialect: cannot register a dialect without identifier")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.dialects[d.ID()]; dup {
		return fmt.Errorf("dialect %q already registered", d.ID())
	}
	r.dialects[d.ID()] = d
	return nil
}

// Get returns the dialect registered under id. Matching is exact.
func (r *Registry) Get(id string) (Dialect, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.dialects[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownDialect, id)
	}
	return d, nil
}

// Names lists the registered identifiers in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.dialects))
	for id := range r.dialects {
		names = append(names, id)
	}
	sort.Strings(names)
	return names
}

// Translate parses data with the from dialect and renders it with to.
// Both dialects must share a model type.
func (r *Registry) Translate(data []byte, from, to string) (string, error) {
	src, err := r.Get(from)
	if err != nil {
		return "", err
	}
	dst, err := r.Get(to)
	if err != nil {
		return "", err
	}
	m, err := src.Parse(data)
	if err != nil {
		return "", fmt.Errorf("parse as %s: %w", from, err)
	}
	out, err := dst.CompileAndRender(m)
	if err != nil {
		return "", fmt.Errorf("render as %s: %w", to, err)
	}
	return out, nil
}
