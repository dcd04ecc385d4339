// Package model is the in-memory representation of OEMetadata documents of
// the 1.3 and 1.4 generations.
//
// Absent scalars are empty strings. Absent lists are nil and known-empty
// lists are non-nil with length zero; compilers keep that distinction.
package model

import (
	"fmt"
	"strings"
)

// Orientation is the alignment of timestamps within a timeseries interval.
type Orientation string

const (
	OrientationNone   Orientation = ""
	OrientationLeft   Orientation = "left"
	OrientationMiddle Orientation = "middle"
	OrientationRight  Orientation = "right"
)

// ParseOrientation validates a timeseries alignment value.
func ParseOrientation(s string) (Orientation, error) {
	switch o := Orientation(strings.TrimSpace(s)); o {
	case OrientationNone, OrientationLeft, OrientationMiddle, OrientationRight:
		return o, nil
	}
	return OrientationNone, fmt.Errorf("invalid timestamp orientation %q (expected left|middle|right)", s)
}

// Metadata is the root of a document.
type Metadata struct {
	Name            string
	Title           string
	Identifier      string
	Description     string
	Languages       []string
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

type Context struct {
	Homepage          string
	Documentation     string
	SourceCode        string
	Contact           string
	GrantNumber       string
	FundingAgency     string
	FundingAgencyLogo string
	PublisherLogo     string
}

type Spatial struct {
	Location   string
	Extent     string
	Resolution string
}

// Temporal carries at most one timeseries.
type Temporal struct {
	ReferenceDate string
	Timeseries    *Timeseries
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

// TermsOfUse binds a license to the way it has to be honoured.
type TermsOfUse struct {
	License     *License
	Instruction string
	Attribution string
}

type License struct {
	Name            string
	Identifier      string
	Path            string
	Text            string
	Version         string
	OtherReferences []string
	Comment         string
}

type Person struct {
	Name  string
	Email string
}

type Contributor struct {
	Person  *Person
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

// Field is a column of a resource. Resource holds the owning resource's
// name and takes no part in equality or printing.
type Field struct {
	Name        string
	Description string
	Type        string
	Unit        string
	Resource    string
}

// Equal compares the descriptive attributes of two fields.
func (f *Field) Equal(o *Field) bool {
	if f == nil || o == nil {
		return f == o
	}
	return f.Name == o.Name && f.Description == o.Description && f.Type == o.Type && f.Unit == o.Unit
}

func (f *Field) String() string {
	if f == nil {
		return "<nil>"
	}
	return fmt.Sprintf("Field(name=%q, description=%q, type=%q, unit=%q)", f.Name, f.Description, f.Type, f.Unit)
}

// ForeignKey pairs local fields with fields of a referenced resource.
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

// Dialect describes the CSV layout of a resource.
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
