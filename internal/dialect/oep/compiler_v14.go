package oep

import (
	"github.com/OpenEnergyPlatform/omi/internal/dialect/jsontree"
	"github.com/OpenEnergyPlatform/omi/internal/document"
	"github.com/OpenEnergyPlatform/omi/internal/model"
)

// Version written to metaMetadata by CompilerV14.
const VersionV14 = "OEP-1.4.0"

// DefaultMetadataLicense licenses the metadata itself when a model does not
// carry one.
var DefaultMetadataLicense = model.License{
	Identifier: "CC0-1.0",
	Name:       "Creative Commons Zero v1.0 Universal",
	Path:       "https://creativecommons.org/publicdomain/zero/1.0/",
}

// CompilerV14 compiles a model into an OEP-1.4 JSON tree.
type CompilerV14 struct{}

var _ model.Visitor[any] = CompilerV14{}

func (c CompilerV14) Compile(md *model.Metadata) (*document.Dict, error) {
	out, err := c.VisitMetadata(md)
	if err != nil {
		return nil, err
	}
	return out.(*document.Dict), nil
}

// visit compiles an optional sub-entity, writing nil entities as null.
func visit(v model.Visitor[any], n model.Node) (any, error) {
	if model.IsNil(n) {
		return nil, nil
	}
	return model.Visit[any](v, n)
}

// visitAll compiles a list, writing a nil list as null.
func visitAll[N model.Node](v model.Visitor[any], nodes []N) (any, error) {
	out, err := model.VisitAll[any](v, nodes)
	if err != nil {
		return nil, err
	}
	return jsontree.Nodes(out), nil
}

func (c CompilerV14) VisitMetadata(md *model.Metadata) (any, error) {
	d := document.NewDict()
	d.Set("name", jsontree.Scalar(md.Name))
	d.Set("title", jsontree.Scalar(md.Title))
	d.Set("id", jsontree.Scalar(md.Identifier))
	d.Set("description", jsontree.Scalar(md.Description))
	d.Set("language", jsontree.List(md.Languages))
	d.Set("keywords", jsontree.List(md.Keywords))
	d.Set("publicationDate", jsontree.Scalar(md.PublicationDate))

	steps := []struct {
		key  string
		node func() (any, error)
	}{
		{"context", func() (any, error) { return visit(c, md.Context) }},
		{"spatial", func() (any, error) { return visit(c, md.Spatial) }},
		{"temporal", func() (any, error) { return visit(c, md.Temporal) }},
		{"sources", func() (any, error) { return visitAll(c, md.Sources) }},
		{"licenses", func() (any, error) { return visitAll(c, md.Licenses) }},
		{"contributors", func() (any, error) { return visitAll(c, md.Contributors) }},
		{"resources", func() (any, error) { return visitAll(c, md.Resources) }},
		{"review", func() (any, error) { return visit(c, md.Review) }},
	}
	for _, s := range steps {
		v, err := s.node()
		if err != nil {
			return nil, err
		}
		d.Set(s.key, v)
	}

	license := md.MetadataLicense
	if license == nil {
		license = &DefaultMetadataLicense
	}
	ml, err := c.VisitLicense(license)
	if err != nil {
		return nil, err
	}
	d.Set("metaMetadata", document.FromPairs(
		"metadataVersion", VersionV14,
		"metadataLicense", ml,
	))

	comment, err := visit(c, md.Comment)
	if err != nil {
		return nil, err
	}
	d.Set("_comment", comment)
	return d, nil
}

func (c CompilerV14) VisitContext(ctx *model.Context) (any, error) {
	return document.FromPairs(
		"homepage", jsontree.Scalar(ctx.Homepage),
		"documentation", jsontree.Scalar(ctx.Documentation),
		"sourceCode", jsontree.Scalar(ctx.SourceCode),
		"contact", jsontree.Scalar(ctx.Contact),
		"grantNo", jsontree.Scalar(ctx.GrantNumber),
		"fundingAgency", jsontree.Scalar(ctx.FundingAgency),
		"fundingAgencyLogo", jsontree.Scalar(ctx.FundingAgencyLogo),
		"publisherLogo", jsontree.Scalar(ctx.PublisherLogo),
	), nil
}

func (c CompilerV14) VisitSpatial(s *model.Spatial) (any, error) {
	return document.FromPairs(
		"location", jsontree.Scalar(s.Location),
		"extent", jsontree.Scalar(s.Extent),
		"resolution", jsontree.Scalar(s.Resolution),
	), nil
}

func (c CompilerV14) VisitTemporal(t *model.Temporal) (any, error) {
	ts, err := visit(c, t.Timeseries)
	if err != nil {
		return nil, err
	}
	return document.FromPairs(
		"referenceDate", jsontree.Scalar(t.ReferenceDate),
		"timeseries", ts,
	), nil
}

func (c CompilerV14) VisitTimeseries(ts *model.Timeseries) (any, error) {
	return document.FromPairs(
		"start", jsontree.Scalar(ts.Start),
		"end", jsontree.Scalar(ts.End),
		"resolution", jsontree.Scalar(ts.Resolution),
		"alignment", jsontree.Scalar(string(ts.Orientation)),
		"aggregationType", jsontree.Scalar(ts.Aggregation),
	), nil
}

func (c CompilerV14) VisitSource(s *model.Source) (any, error) {
	licenses, err := visitAll(c, s.Licenses)
	if err != nil {
		return nil, err
	}
	return document.FromPairs(
		"title", jsontree.Scalar(s.Title),
		"description", jsontree.Scalar(s.Description),
		"path", jsontree.Scalar(s.Path),
		"licenses", licenses,
	), nil
}

func (c CompilerV14) VisitTermsOfUse(t *model.TermsOfUse) (any, error) {
	l := t.License
	if l == nil {
		l = &model.License{}
	}
	d, err := c.VisitLicense(l)
	if err != nil {
		return nil, err
	}
	dict := d.(*document.Dict)
	dict.Set("instruction", jsontree.Scalar(t.Instruction))
	dict.Set("attribution", jsontree.Scalar(t.Attribution))
	return dict, nil
}

func (c CompilerV14) VisitLicense(l *model.License) (any, error) {
	return document.FromPairs(
		"name", jsontree.Scalar(l.Identifier),
		"title", jsontree.Scalar(l.Name),
		"path", jsontree.Scalar(l.Path),
	), nil
}

// VisitPerson is unsupported on its own; contributors inline their person.
func (c CompilerV14) VisitPerson(*model.Person) (any, error) {
	return nil, model.Unsupported(IDv14, model.KindPerson)
}

func (c CompilerV14) VisitContributor(ct *model.Contributor) (any, error) {
	p := ct.Person
	if p == nil {
		p = &model.Person{}
	}
	return document.FromPairs(
		"title", jsontree.Scalar(p.Name),
		"email", jsontree.Scalar(p.Email),
		"date", jsontree.Scalar(ct.Date),
		"object", jsontree.Scalar(ct.Object),
		"comment", jsontree.Scalar(ct.Comment),
	), nil
}

func (c CompilerV14) VisitResource(r *model.Resource) (any, error) {
	schema, err := visit(c, r.Schema)
	if err != nil {
		return nil, err
	}
	dialect, err := visit(c, r.Dialect)
	if err != nil {
		return nil, err
	}
	return document.FromPairs(
		"profile", jsontree.Scalar(r.Profile),
		"name", jsontree.Scalar(r.Name),
		"path", jsontree.Scalar(r.Path),
		"format", jsontree.Scalar(r.Format),
		"encoding", jsontree.Scalar(r.Encoding),
		"schema", schema,
		"dialect", dialect,
	), nil
}

func (c CompilerV14) VisitSchema(s *model.Schema) (any, error) {
	fields, err := visitAll(c, s.Fields)
	if err != nil {
		return nil, err
	}
	fks, err := visitAll(c, s.ForeignKeys)
	if err != nil {
		return nil, err
	}
	return document.FromPairs(
		"fields", fields,
		"primaryKey", jsontree.List(s.PrimaryKey),
		"foreignKeys", fks,
	), nil
}

func (c CompilerV14) VisitField(f *model.Field) (any, error) {
	return document.FromPairs(
		"name", jsontree.Scalar(f.Name),
		"description", jsontree.Scalar(f.Description),
		"type", jsontree.Scalar(f.Type),
		"unit", jsontree.Scalar(f.Unit),
	), nil
}

func (c CompilerV14) VisitForeignKey(fk *model.ForeignKey) (any, error) {
	local := make([]string, 0, len(fk.References))
	remote := make([]string, 0, len(fk.References))
	for _, r := range fk.References {
		if r == nil || r.Source == nil || r.Target == nil {
			continue
		}
		local = append(local, r.Source.Name)
		remote = append(remote, r.Target.Name)
	}
	return document.FromPairs(
		"fields", jsontree.List(local),
		"reference", document.FromPairs(
			"resource", jsontree.Scalar(fk.TargetResource()),
			"fields", jsontree.List(remote),
		),
	), nil
}

// VisitReference is unsupported on its own; foreign keys inline their pairs.
func (c CompilerV14) VisitReference(*model.Reference) (any, error) {
	return nil, model.Unsupported(IDv14, model.KindReference)
}

func (c CompilerV14) VisitDialect(d *model.Dialect) (any, error) {
	return document.FromPairs(
		"delimiter", jsontree.Scalar(d.Delimiter),
		"decimalSeparator", jsontree.Scalar(d.DecimalSeparator),
	), nil
}

func (c CompilerV14) VisitReview(r *model.Review) (any, error) {
	return document.FromPairs(
		"path", jsontree.Scalar(r.Path),
		"badge", jsontree.Scalar(r.Badge),
	), nil
}

func (c CompilerV14) VisitMetaComment(m *model.MetaComment) (any, error) {
	return document.FromPairs(
		"metadata", jsontree.Scalar(m.Metadata),
		"dates", jsontree.Scalar(m.Dates),
		"units", jsontree.Scalar(m.Units),
		"languages", jsontree.Scalar(m.Languages),
		"licenses", jsontree.Scalar(m.Licenses),
		"review", jsontree.Scalar(m.Review),
		"null", jsontree.Scalar(m.Null),
	), nil
}
