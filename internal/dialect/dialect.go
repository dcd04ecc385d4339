// Package dialect binds a parser, a compiler and a renderer for one
// serialization of one metadata generation, and keeps them in a registry.
package dialect

import (
	"fmt"
)

// Parser decodes raw bytes into an intermediate tree and parses that tree
// into a metadata model.
type Parser[In, M any] interface {
	Decode(data []byte) (In, error)
	Parse(in In) (M, error)
}

// Compiler converts a metadata model into an output structure.
type Compiler[M, Out any] interface {
	Compile(m M) (Out, error)
}

// Renderer converts a compiled structure into text.
type Renderer[Out any] interface {
	Render(out Out) (string, error)
}

// Dialect is the type-erased view the registry and the CLI work with.
// Models are *model.Metadata or *oem15.Metadata depending on the dialect.
type Dialect interface {
	ID() string
	Description() string
	Parse(data []byte) (any, error)
	Compile(m any) (any, error)
	Render(out any) (string, error)
	CompileAndRender(m any) (string, error)
	// CanParse is false for export-only dialects.
	CanParse() bool
}

// Generic wires typed components into a Dialect.
type Generic[In, M, Out any] struct {
	id          string
	description string

	parser   Parser[In, M]
	compiler Compiler[M, Out]
	renderer Renderer[Out]
}

// New builds a dialect. parser may be nil for export-only dialects.
func New[In, M, Out any](id, description string, p Parser[In, M], c Compiler[M, Out], r Renderer[Out]) *Generic[In, M, Out] {
	return &Generic[In, M, Out]{id: id, description: description, parser: p, compiler: c, renderer: r}
}

func (g *Generic[In, M, Out]) ID() string          { return g.id }
func (g *Generic[In, M, Out]) Description() string { return g.description }
func (g *Generic[In, M, Out]) CanParse() bool      { return g.parser != nil }

// Parse decodes and parses data.
func (g *Generic[In, M, Out]) Parse(data []byte) (any, error) {
	return g.ParseTyped(data)
}

// ParseTyped is Parse without type erasure.
func (g *Generic[In, M, Out]) ParseTyped(data []byte) (M, error) {
	var zero M
	if g.parser == nil {
		return zero, fmt.Errorf("dialect %s: parsing is not supported", g.id)
	}
	in, err := g.parser.Decode(data)
	if err != nil {
		return zero, err
	}
	return g.parser.Parse(in)
}

// Compile runs the compiler on a model of the dialect's model type.
func (g *Generic[In, M, Out]) Compile(m any) (any, error) {
	typed, ok := m.(M)
	if !ok {
		var want M
		return nil, fmt.Errorf("dialect %s: expected model %T, got %T", g.id, want, m)
	}
	return g.compiler.Compile(typed)
}

// Render renders a structure produced by Compile.
func (g *Generic[In, M, Out]) Render(out any) (string, error) {
	typed, ok := out.(Out)
	if !ok {
		var want Out
		return "", fmt.Errorf("dialect %s: expected compiled %T, got %T", g.id, want, out)
	}
	return g.renderer.Render(typed)
}

// CompileAndRender compiles m and renders the result.
func (g *Generic[In, M, Out]) CompileAndRender(m any) (string, error) {
	out, err := g.Compile(m)
	if err != nil {
		return "", err
	}
	return g.Render(out)
}
