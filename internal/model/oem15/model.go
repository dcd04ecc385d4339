// Package oem15 is the entity set of the OEP-1.5 and OEP-1.6 metadata
// generations. It mirrors the field shapes of package model and adds
// ontology annotations (subjects, isAbout, valueReference), a timeseries
// list, agencies and linked-data identifiers.
package oem15

import (
	"fmt"

	"github.com/OpenEnergyPlatform/omi/internal/model"
)

// Orientation is shared with the base model.
type Orientation = model.Orientation

type Metadata struct {
	Name            string
	Title           string
	Identifier      string
	Description     string
	Languages       []string
	Subjects        []*Subject
	Keywords        []string
	PublicationDate string
	Context         *Context
	Spatial         *Spatial
	Temporal        *Temporal
	Sources         []*Source
	Licenses        []*TermsOfUse
	Contributors    []*Contributor
	Resources       []*Resource
	Review          *Review
	Comment         *MetaComment

	// LinkedID and LinkedContext are the JSON-LD "@id" and "@context".
	LinkedID      string
	LinkedContext string

	MetadataVersion string
	MetadataLicense *License
}

// Resource returns the resource with the given name, or nil.
func (m *Metadata) Resource(name string) *Resource {
	if m == nil {
		return nil
	}
	for _, r := range m.Resources {
		if r != nil && r.Name == name {
			return r
		}
	}
	return nil
}

// Subject is an ontology class describing the dataset as a whole.
type Subject struct {
	Name string
	Path string
}

// Agency is an organisation with an optional logo.
type Agency struct {
	Name string
	Logo string
}

type Context struct {
	Homepage      string
	Documentation string
	SourceCode    string
	Contact       string
	GrantNumber   string
	FundingAgency *Agency
	Publisher     *Agency
}

type Spatial struct {
	Location   string
	Extent     string
	Resolution string
}

type Temporal struct {
	ReferenceDate string
	Timeseries    []*Timeseries
}

type Timeseries struct {
	Start       string
	End         string
	Resolution  string
	Orientation Orientation
	Aggregation string
}

type Source struct {
	Title       string
	Description string
	Path        string
	Licenses    []*TermsOfUse
}

type TermsOfUse struct {
	License     *License
	Instruction string
	Attribution string
}

type License struct {
	Name       string
	Identifier string
	Path       string
}

type Contributor struct {
	Name    string
	Email   string
	Date    string
	Object  string
	Comment string
}

type Resource struct {
	Name     string
	Path     string
	Profile  string
	Format   string
	Encoding string
	Schema   *Schema
	Dialect  *Dialect
}

// Field returns the schema field with the given name, or nil.
func (r *Resource) Field(name string) *Field {
	if r == nil || r.Schema == nil {
		return nil
	}
	for _, f := range r.Schema.Fields {
		if f != nil && f.Name == name {
			return f
		}
	}
	return nil
}

type Schema struct {
	Fields      []*Field
	PrimaryKey  []string
	ForeignKeys []*ForeignKey
}

// Field is a column annotated with ontology terms. Resource holds the
// owning resource's name and takes no part in equality or printing.
type Field struct {
	Name           string
	Description    string
	Type           string
	Unit           string
	IsAbout        []*IsAbout
	ValueReference []*ValueReference
	Resource       string
}

// Equal compares the descriptive attributes of two fields.
func (f *Field) Equal(o *Field) bool {
	if f == nil || o == nil {
		return f == o
	}
	if f.Name != o.Name || f.Description != o.Description || f.Type != o.Type || f.Unit != o.Unit {
		return false
	}
	if len(f.IsAbout) != len(o.IsAbout) || len(f.ValueReference) != len(o.ValueReference) {
		return false
	}
	for i := range f.IsAbout {
		if *f.IsAbout[i] != *o.IsAbout[i] {
			return false
		}
	}
	for i := range f.ValueReference {
		if *f.ValueReference[i] != *o.ValueReference[i] {
			return false
		}
	}
	return true
}

func (f *Field) String() string {
	if f == nil {
		return "<nil>"
	}
	return fmt.Sprintf("Field(name=%q, description=%q, type=%q, unit=%q, isAbout=%d, valueReference=%d)",
		f.Name, f.Description, f.Type, f.Unit, len(f.IsAbout), len(f.ValueReference))
}

// IsAbout links a field to the ontology class it describes.
type IsAbout struct {
	Name string
	Path string
}

// ValueReference links a concrete column value to an ontology class.
type ValueReference struct {
	Value string
	Name  string
	Path  string
}

type ForeignKey struct {
	References []*Reference
}

// TargetResource is the name of the referenced resource.
func (fk *ForeignKey) TargetResource() string {
	for _, r := range fk.References {
		if r != nil && r.Target != nil {
			return r.Target.Resource
		}
	}
	return ""
}

type Reference struct {
	Source *Field
	Target *Field
}

type Dialect struct {
	Delimiter        string
	DecimalSeparator string
}

type Review struct {
	Path  string
	Badge string
}

type MetaComment struct {
	Metadata  string
	Dates     string
	Units     string
	Languages string
	Licenses  string
	Review    string
	Null      string
}
