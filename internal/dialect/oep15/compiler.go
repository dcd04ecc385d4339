package oep15

import (
	"fmt"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/dialect/jsontree"
	"github.com/OpenEnergyPlatform/omi/internal/document"
	"github.com/OpenEnergyPlatform/omi/internal/model/oem15"
)

// DefaultMetadataLicense licenses the metadata itself when a model does not
// carry one.
var DefaultMetadataLicense = oem15.License{
	Identifier: "CC0-1.0",
	Name:       "Creative Commons Zero v1.0 Universal",
	Path:       "https://creativecommons.org/publicdomain/zero/1.0/",
}

// Compiler compiles an oem15 model into a JSON tree and stamps Version
// into metaMetadata.
type Compiler struct {
	ID      string
	Version string
}

var _ oem15.Visitor[any] = Compiler{}

func (c Compiler) Compile(md *oem15.Metadata) (*document.Dict, error) {
	if md == nil {
		return nil, fmt.Errorf("%s: nothing to compile", c.ID)
	}
	out, err := c.VisitMetadata(md)
	if err != nil {
		return nil, err
	}
	return out.(*document.Dict), nil
}

func all[N oem15.Node](c Compiler, nodes []N) (any, error) {
	out, err := oem15.VisitAll[any](c, nodes)
	if err != nil {
		return nil, err
	}
	return jsontree.Nodes(out), nil
}

func (c Compiler) VisitMetadata(md *oem15.Metadata) (any, error) {
	d := document.NewDict()
	d.Set("name", jsontree.Scalar(md.Name))
	d.Set("title", jsontree.Scalar(md.Title))
	d.Set("id", jsontree.Scalar(md.Identifier))
	d.Set("description", jsontree.Scalar(md.Description))
	d.Set("language", jsontree.List(md.Languages))

	subjects, err := all(c, md.Subjects)
	if err != nil {
		return nil, err
	}
	d.Set("subject", subjects)
	d.Set("keywords", jsontree.List(md.Keywords))
	d.Set("publicationDate", jsontree.Scalar(md.PublicationDate))

	var ctx, spatial, temporal, review, comment any
	if md.Context != nil {
		if ctx, err = c.VisitContext(md.Context); err != nil {
			return nil, err
		}
	}
	d.Set("context", ctx)
	if md.Spatial != nil {
		if spatial, err = c.VisitSpatial(md.Spatial); err != nil {
			return nil, err
		}
	}
	d.Set("spatial", spatial)
	if md.Temporal != nil {
		if temporal, err = c.VisitTemporal(md.Temporal); err != nil {
			return nil, err
		}
	}
	d.Set("temporal", temporal)

	lists := []struct {
		key   string
		build func() (any, error)
	}{
		{"sources", func() (any, error) { return all(c, md.Sources) }},
		{"licenses", func() (any, error) { return all(c, md.Licenses) }},
		{"contributors", func() (any, error) { return all(c, md.Contributors) }},
		{"resources", func() (any, error) { return all(c, md.Resources) }},
	}
	for _, l := range lists {
		v, err := l.build()
		if err != nil {
			return nil, err
		}
		d.Set(l.key, v)
	}

	d.Set("@id", jsontree.Scalar(md.LinkedID))
	d.Set("@context", jsontree.Scalar(md.LinkedContext))

	if md.Review != nil {
		if review, err = c.VisitReview(md.Review); err != nil {
			return nil, err
		}
	}
	d.Set("review", review)

	license := md.MetadataLicense
	if license == nil {
		license = &DefaultMetadataLicense
	}
	ml, err := c.VisitLicense(license)
	if err != nil {
		return nil, err
	}
	d.Set("metaMetadata", document.FromPairs(
		"metadataVersion", c.Version,
		"metadataLicense", ml,
	))

	if md.Comment != nil {
		if comment, err = c.VisitMetaComment(md.Comment); err != nil {
			return nil, err
		}
	}
	d.Set("_comment", comment)
	return d, nil
}

func (c Compiler) VisitSubject(s *oem15.Subject) (any, error) {
	return document.FromPairs("name", jsontree.Scalar(s.Name), "path", jsontree.Scalar(s.Path)), nil
}

func (c Compiler) VisitContext(ctx *oem15.Context) (any, error) {
	funding := ctx.FundingAgency
	if funding == nil {
		funding = &oem15.Agency{}
	}
	publisher := ctx.Publisher
	if publisher == nil {
		publisher = &oem15.Agency{}
	}
	return document.FromPairs(
		"homepage", jsontree.Scalar(ctx.Homepage),
		"documentation", jsontree.Scalar(ctx.Documentation),
		"sourceCode", jsontree.Scalar(ctx.SourceCode),
		"contact", jsontree.Scalar(ctx.Contact),
		"grantNo", jsontree.Scalar(ctx.GrantNumber),
		"fundingAgency", jsontree.Scalar(funding.Name),
		"fundingAgencyLogo", jsontree.Scalar(funding.Logo),
		"publisherLogo", jsontree.Scalar(publisher.Logo),
	), nil
}

func (c Compiler) VisitSpatial(s *oem15.Spatial) (any, error) {
	return document.FromPairs(
		"location", jsontree.Scalar(s.Location),
		"extent", jsontree.Scalar(s.Extent),
		"resolution", jsontree.Scalar(s.Resolution),
	), nil
}

func (c Compiler) VisitTemporal(t *oem15.Temporal) (any, error) {
	series, err := all(c, t.Timeseries)
	if err != nil {
		return nil, err
	}
	return document.FromPairs(
		"referenceDate", jsontree.Scalar(t.ReferenceDate),
		"timeseries", series,
	), nil
}

func (c Compiler) VisitTimeseries(ts *oem15.Timeseries) (any, error) {
	return document.FromPairs(
		"start", jsontree.Scalar(ts.Start),
		"end", jsontree.Scalar(ts.End),
		"resolution", jsontree.Scalar(ts.Resolution),
		"alignment", jsontree.Scalar(string(ts.Orientation)),
		"aggregationType", jsontree.Scalar(ts.Aggregation),
	), nil
}

func (c Compiler) VisitSource(s *oem15.Source) (any, error) {
	licenses, err := all(c, s.Licenses)
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

func (c Compiler) VisitTermsOfUse(t *oem15.TermsOfUse) (any, error) {
	l := t.License
	if l == nil {
		l = &oem15.License{}
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

func (c Compiler) VisitLicense(l *oem15.License) (any, error) {
	return document.FromPairs(
		"name", jsontree.Scalar(l.Identifier),
		"title", jsontree.Scalar(l.Name),
		"path", jsontree.Scalar(l.Path),
	), nil
}

func (c Compiler) VisitContributor(ct *oem15.Contributor) (any, error) {
	return document.FromPairs(
		"title", jsontree.Scalar(ct.Name),
		"email", jsontree.Scalar(ct.Email),
		"date", jsontree.Scalar(ct.Date),
		"object", jsontree.Scalar(ct.Object),
		"comment", jsontree.Scalar(ct.Comment),
	), nil
}

func (c Compiler) VisitResource(r *oem15.Resource) (any, error) {
	var (
		schema, dialect any
		err             error
	)
	if r.Schema != nil {
		if schema, err = c.VisitSchema(r.Schema); err != nil {
			return nil, err
		}
	}
	if r.Dialect != nil {
		if dialect, err = c.VisitDialect(r.Dialect); err != nil {
			return nil, err
		}
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

func (c Compiler) VisitSchema(s *oem15.Schema) (any, error) {
	fields, err := all(c, s.Fields)
	if err != nil {
		return nil, err
	}
	fks, err := all(c, s.ForeignKeys)
	if err != nil {
		return nil, err
	}
	return document.FromPairs(
		"fields", fields,
		"primaryKey", jsontree.List(s.PrimaryKey),
		"foreignKeys", fks,
	), nil
}

func (c Compiler) VisitField(f *oem15.Field) (any, error) {
	about, err := all(c, f.IsAbout)
	if err != nil {
		return nil, err
	}
	refs, err := all(c, f.ValueReference)
	if err != nil {
		return nil, err
	}
	return document.FromPairs(
		"name", jsontree.Scalar(f.Name),
		"description", jsontree.Scalar(f.Description),
		"type", jsontree.Scalar(f.Type),
		"unit", jsontree.Scalar(f.Unit),
		"isAbout", about,
		"valueReference", refs,
	), nil
}

func (c Compiler) VisitIsAbout(a *oem15.IsAbout) (any, error) {
	return document.FromPairs("name", jsontree.Scalar(a.Name), "path", jsontree.Scalar(a.Path)), nil
}

func (c Compiler) VisitValueReference(v *oem15.ValueReference) (any, error) {
	return document.FromPairs(
		"value", jsontree.Scalar(v.Value),
		"name", jsontree.Scalar(v.Name),
		"path", jsontree.Scalar(v.Path),
	), nil
}

func (c Compiler) VisitForeignKey(fk *oem15.ForeignKey) (any, error) {
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
func (c Compiler) VisitReference(*oem15.Reference) (any, error) {
	return nil, apperr.NotImplemented(c.ID, oem15.KindReference.String())
}

func (c Compiler) VisitDialect(d *oem15.Dialect) (any, error) {
	return document.FromPairs(
		"delimiter", jsontree.Scalar(d.Delimiter),
		"decimalSeparator", jsontree.Scalar(d.DecimalSeparator),
	), nil
}

func (c Compiler) VisitReview(r *oem15.Review) (any, error) {
	return document.FromPairs(
		"path", jsontree.Scalar(r.Path),
		"badge", jsontree.Scalar(r.Badge),
	), nil
}

func (c Compiler) VisitMetaComment(m *oem15.MetaComment) (any, error) {
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
