package model

import (
	"fmt"
	"reflect"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
)

// Kind enumerates the entity kinds of the model.
type Kind int

const (
	KindMetadata Kind = iota
	KindContext
	KindSpatial
	KindTemporal
	KindTimeseries
	KindSource
	KindTermsOfUse
	KindLicense
	KindPerson
	KindContributor
	KindResource
	KindSchema
	KindField
	KindForeignKey
	KindReference
	KindDialect
	KindReview
	KindMetaComment
)

var kindNames = [...]string{
	"Metadata", "Context", "Spatial", "Temporal", "Timeseries", "Source",
	"TermsOfUse", "License", "Person", "Contributor", "Resource", "Schema",
	"Field", "ForeignKey", "Reference", "Dialect", "Review", "MetaComment",
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

func (*Metadata) Kind() Kind    { return KindMetadata }
func (*Context) Kind() Kind     { return KindContext }
func (*Spatial) Kind() Kind     { return KindSpatial }
func (*Temporal) Kind() Kind    { return KindTemporal }
func (*Timeseries) Kind() Kind  { return KindTimeseries }
func (*Source) Kind() Kind      { return KindSource }
func (*TermsOfUse) Kind() Kind  { return KindTermsOfUse }
func (*License) Kind() Kind     { return KindLicense }
func (*Person) Kind() Kind      { return KindPerson }
func (*Contributor) Kind() Kind { return KindContributor }
func (*Resource) Kind() Kind    { return KindResource }
func (*Schema) Kind() Kind      { return KindSchema }
func (*Field) Kind() Kind       { return KindField }
func (*ForeignKey) Kind() Kind  { return KindForeignKey }
func (*Reference) Kind() Kind   { return KindReference }
func (*Dialect) Kind() Kind     { return KindDialect }
func (*Review) Kind() Kind      { return KindReview }
func (*MetaComment) Kind() Kind { return KindMetaComment }

func (*Metadata) node()    {}
func (*Context) node()     {}
func (*Spatial) node()     {}
func (*Temporal) node()    {}
func (*Timeseries) node()  {}
func (*Source) node()      {}
func (*TermsOfUse) node()  {}
func (*License) node()     {}
func (*Person) node()      {}
func (*Contributor) node() {}
func (*Resource) node()    {}
func (*Schema) node()      {}
func (*Field) node()       {}
func (*ForeignKey) node()  {}
func (*Reference) node()   {}
func (*Dialect) node()     {}
func (*Review) node()      {}
func (*MetaComment) node() {}

// Visitor has one method per entity kind. A compiler that leaves a kind out
// does not satisfy the interface; a kind a dialect cannot express returns
// apperr.NotImplementedError from its method.
type Visitor[T any] interface {
	VisitMetadata(*Metadata) (T, error)
	VisitContext(*Context) (T, error)
	VisitSpatial(*Spatial) (T, error)
	VisitTemporal(*Temporal) (T, error)
	VisitTimeseries(*Timeseries) (T, error)
	VisitSource(*Source) (T, error)
	VisitTermsOfUse(*TermsOfUse) (T, error)
	VisitLicense(*License) (T, error)
	VisitPerson(*Person) (T, error)
	VisitContributor(*Contributor) (T, error)
	VisitResource(*Resource) (T, error)
	VisitSchema(*Schema) (T, error)
	VisitField(*Field) (T, error)
	VisitForeignKey(*ForeignKey) (T, error)
	VisitReference(*Reference) (T, error)
	VisitDialect(*Dialect) (T, error)
	VisitReview(*Review) (T, error)
	VisitMetaComment(*MetaComment) (T, error)
}

// Visit dispatches n to the matching method of v.
func Visit[T any](v Visitor[T], n Node) (T, error) {
	switch n := n.(type) {
	case *Metadata:
		return v.VisitMetadata(n)
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
	case *Person:
		return v.VisitPerson(n)
	case *Contributor:
		return v.VisitContributor(n)
	case *Resource:
		return v.VisitResource(n)
	case *Schema:
		return v.VisitSchema(n)
	case *Field:
		return v.VisitField(n)
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
		if IsNil(n) {
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

// IsNil reports whether n is nil or a typed nil pointer.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	rv := reflect.ValueOf(n)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// Unsupported is the error a compiler returns for a kind it cannot express.
func Unsupported(compiler string, k Kind) error {
	return apperr.NotImplemented(compiler, k.String())
}
