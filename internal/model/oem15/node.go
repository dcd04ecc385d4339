package oem15

import (
	"fmt"
	"reflect"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
)

type Kind int

const (
	KindMetadata Kind = iota
	KindSubject
	KindContext
	KindSpatial
	KindTemporal
	KindTimeseries
	KindSource
	KindTermsOfUse
	KindLicense
	KindContributor
	KindResource
	KindSchema
	KindField
	KindIsAbout
	KindValueReference
	KindForeignKey
	KindReference
	KindDialect
	KindReview
	KindMetaComment
)

var kindNames = [...]string{
	"Metadata", "Subject", "Context", "Spatial", "Temporal", "Timeseries",
	"Source", "TermsOfUse", "License", "Contributor", "Resource", "Schema",
	"Field", "IsAbout", "ValueReference", "ForeignKey", "Reference",
	"Dialect", "Review", "MetaComment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Node is implemented by every entity of this package and nothing else.
type Node interface {
	Kind() Kind
	node()
}

func (*Metadata) Kind() Kind       { return KindMetadata }
func (*Subject) Kind() Kind        { return KindSubject }
func (*Context) Kind() Kind        { return KindContext }
func (*Spatial) Kind() Kind        { return KindSpatial }
func (*Temporal) Kind() Kind       { return KindTemporal }
func (*Timeseries) Kind() Kind     { return KindTimeseries }
func (*Source) Kind() Kind         { return KindSource }
func (*TermsOfUse) Kind() Kind     { return KindTermsOfUse }
func (*License) Kind() Kind        { return KindLicense }
func (*Contributor) Kind() Kind    { return KindContributor }
func (*Resource) Kind() Kind       { return KindResource }
func (*Schema) Kind() Kind         { return KindSchema }
func (*Field) Kind() Kind          { return KindField }
func (*IsAbout) Kind() Kind        { return KindIsAbout }
func (*ValueReference) Kind() Kind { return KindValueReference }
func (*ForeignKey) Kind() Kind     { return KindForeignKey }
func (*Reference) Kind() Kind      { return KindReference }
func (*Dialect) Kind() Kind        { return KindDialect }
func (*Review) Kind() Kind         { return KindReview }
func (*MetaComment) Kind() Kind    { return KindMetaComment }

func (*Metadata) node()       {}
func (*Subject) node()        {}
func (*Context) node()        {}
func (*Spatial) node()        {}
func (*Temporal) node()       {}
func (*Timeseries) node()     {}
func (*Source) node()         {}
func (*TermsOfUse) node()     {}
func (*License) node()        {}
func (*Contributor) node()    {}
func (*Resource) node()       {}
func (*Schema) node()         {}
func (*Field) node()          {}
func (*IsAbout) node()        {}
func (*ValueReference) node() {}
func (*ForeignKey) node()     {}
func (*Reference) node()      {}
func (*Dialect) node()        {}
func (*Review) node()         {}
func (*MetaComment) node()    {}

// Visitor has one method per entity kind.
type Visitor[T any] interface {
	VisitMetadata(*Metadata) (T, error)
	VisitSubject(*Subject) (T, error)
	VisitContext(*Context) (T, error)
	VisitSpatial(*Spatial) (T, error)
	VisitTemporal(*Temporal) (T, error)
	VisitTimeseries(*Timeseries) (T, error)
	VisitSource(*Source) (T, error)
	VisitTermsOfUse(*TermsOfUse) (T, error)
	VisitLicense(*License) (T, error)
	VisitContributor(*Contributor) (T, error)
	VisitResource(*Resource) (T, error)
	VisitSchema(*Schema) (T, error)
	VisitField(*Field) (T, error)
	VisitIsAbout(*IsAbout) (T, error)
	VisitValueReference(*ValueReference) (T, error)
	VisitForeignKey(*ForeignKey) (T, error)
	VisitReference(*Reference) (T, error)
	VisitDialect(*Dialect) (T, error)
	VisitReview(*Review) (T, error)
	VisitMetaComment(*MetaComment) (T, error)
}

func Visit[T any](v Visitor[T], n Node) (T, error) {
	switch n := n.(type) {
	case *Metadata:
		return v.VisitMetadata(n)
	case *Subject:
		return v.VisitSubject(n)
	case *Context:
		return v.VisitContext(n)
	case *Spatial:
		return v.VisitSpatial(n)
	case *Temporal:
		return v.VisitTemporal(n)
	case *Timeseries:
		return v.VisitTimeseries(n)
	case *Source:
		return v.VisitSource(n)
	case *TermsOfUse:
		return v.VisitTermsOfUse(n)
	case *License:
		return v.VisitLicense(n)
	case *Contributor:
		return v.VisitContributor(n)
	case *Resource:
		return v.VisitResource(n)
	case *Schema:
		return v.VisitSchema(n)
	case *Field:
		return v.VisitField(n)
	case *IsAbout:
		return v.VisitIsAbout(n)
	case *ValueReference:
		return v.VisitValueReference(n)
	case *ForeignKey:
		return v.VisitForeignKey(n)
	case *Reference:
		return v.VisitReference(n)
	case *Dialect:
		return v.VisitDialect(n)
	case *Review:
		return v.VisitReview(n)
	case *MetaComment:
		return v.VisitMetaComment(n)
	}
	var zero T
	return zero, apperr.NotImplemented(fmt.Sprintf("%T", v), fmt.Sprintf("%T", n))
}

// VisitAll visits every non-nil node of a list in order.
func VisitAll[T any, N Node](v Visitor[T], nodes []N) ([]T, error) {
	if nodes == nil {
		return nil, nil
	}
	out := make([]T, 0, len(nodes))
	for _, n := range nodes {
		if rv := reflect.ValueOf(n); !rv.IsValid() || rv.IsNil() {
			continue
		}
		r, err := Visit[T](v, n)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
