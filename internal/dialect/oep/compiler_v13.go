package oep

import (
	"github.com/OpenEnergyPlatform/omi/internal/dialect/jsontree"
	"github.com/OpenEnergyPlatform/omi/internal/document"
	"github.com/OpenEnergyPlatform/omi/internal/model"
)

// VersionV13 is the bare version string 1.3 documents carry.
const VersionV13 = "1.3"

// CompilerV13 compiles a model into an OEP-1.3 JSON tree. Entities the
// 1.3 layout has no place for are dropped.
type CompilerV13 struct{}

var _ model.Visitor[any] = CompilerV13{}

func (c CompilerV13) Compile(md *model.Metadata) (*document.Dict, error) {
	out, err := c.VisitMetadata(md)
	if err != nil {
		return nil, err
	}
	return out.(*document.Dict), nil
}

func (c CompilerV13) VisitMetadata(md *model.Metadata) (any, error) {
	d := document.NewDict()
	d.Set("title", jsontree.Scalar(md.Title))
	d.Set("description", jsontree.Scalar(md.Description))
	d.Set("language", jsontree.List(md.Languages))

	spatial, err := visit(c, md.Spatial)
	if err != nil {
		return nil, err
	}
	d.Set("spatial", spatial)
	temporal, err := visit(c, md.Temporal)
	if err != nil {
		return nil, err
	}
	d.Set("temporal", temporal)
	sources, err := visitAll(c, md.Sources)
	if err != nil {
		return nil, err
	}
	d.Set("sources", sources)

	var license any
	if len(md.Licenses) > 0 && md.Licenses[0] != nil {
		if license, err = c.VisitTermsOfUse(md.Licenses[0]); err != nil {
			return nil, err
		}
	}
	d.Set("license", license)

	contributors, err := visitAll(c, md.Contributors)
	if err != nil {
		return nil, err
	}
	d.Set("contributors", contributors)
	resources, err := visitAll(c, md.Resources)
	if err != nil {
		return nil, err
	}
	d.Set("resources", resources)
	d.Set("metadata_version", VersionV13)

	comment, err := visit(c, md.Comment)
	if err != nil {
		return nil, err
	}
	d.Set("_comment", comment)
	return d, nil
}

func (c CompilerV13) VisitContext(*model.Context) (any, error) {
	return nil, model.Unsupported(IDv13, model.KindContext)
}

func (c CompilerV13) VisitSpatial(s *model.Spatial) (any, error) {
	return CompilerV14{}.VisitSpatial(s)
}

func (c CompilerV13) VisitTemporal(t *model.Temporal) (any, error) {
	ts := t.Timeseries
	if ts == nil {
		ts = &model.Timeseries{}
	}
	return document.FromPairs(
		"reference_date", jsontree.Scalar(t.ReferenceDate),
		"start", jsontree.Scalar(ts.Start),
		"end", jsontree.Scalar(ts.End),
		"resolution", jsontree.Scalar(ts.Resolution),
	), nil
}

func (c CompilerV13) VisitTimeseries(*model.Timeseries) (any, error) {
	return nil, model.Unsupported(IDv13, model.KindTimeseries)
}

func (c CompilerV13) VisitSource(s *model.Source) (any, error) {
	var license, copyright string
	if len(s.Licenses) > 0 && s.Licenses[0] != nil {
		if l := s.Licenses[0].License; l != nil {
			license = l.Identifier
		}
		copyright = s.Licenses[0].Attribution
	}
	return document.FromPairs(
		"name", jsontree.Scalar(s.Title),
		"description", jsontree.Scalar(s.Description),
		"url", jsontree.Scalar(s.Path),
		"license", jsontree.Scalar(license),
		"copyright", jsontree.Scalar(copyright),
	), nil
}

func (c CompilerV13) VisitTermsOfUse(t *model.TermsOfUse) (any, error) {
	l := t.License
	if l == nil {
		l = &model.License{}
	}
	return document.FromPairs(
		"id", jsontree.Scalar(l.Identifier),
		"name", jsontree.Scalar(l.Name),
		"version", jsontree.Scalar(l.Version),
		"url", jsontree.Scalar(l.Path),
		"instruction", jsontree.Scalar(t.Instruction),
		"copyright", jsontree.Scalar(t.Attribution),
	), nil
}

func (c CompilerV13) VisitLicense(*model.License) (any, error) {
	return nil, model.Unsupported(IDv13, model.KindLicense)
}

func (c CompilerV13) VisitPerson(*model.Person) (any, error) {
	return nil, model.Unsupported(IDv13, model.KindPerson)
}

func (c CompilerV13) VisitContributor(ct *model.Contributor) (any, error) {
	p := ct.Person
	if p == nil {
		p = &model.Person{}
	}
	return document.FromPairs(
		"name", jsontree.Scalar(p.Name),
		"email", jsontree.Scalar(p.Email),
		"date", jsontree.Scalar(ct.Date),
		"comment", jsontree.Scalar(ct.Comment),
	), nil
}

func (c CompilerV13) VisitResource(r *model.Resource) (any, error) {
	var fields any
	if r.Schema != nil {
		var err error
		if fields, err = visitAll(c, r.Schema.Fields); err != nil {
			return nil, err
		}
	}
	return document.FromPairs(
		"name", jsontree.Scalar(r.Name),
		"format", jsontree.Scalar(r.Format),
		"fields", fields,
	), nil
}

func (c CompilerV13) VisitSchema(*model.Schema) (any, error) {
	return nil, model.Unsupported(IDv13, model.KindSchema)
}

func (c CompilerV13) VisitField(f *model.Field) (any, error) {
	return document.FromPairs(
		"name", jsontree.Scalar(f.Name),
		"description", jsontree.Scalar(f.Description),
		"unit", jsontree.Scalar(f.Unit),
	), nil
}

func (c CompilerV13) VisitForeignKey(*model.ForeignKey) (any, error) {
	return nil, model.Unsupported(IDv13, model.KindForeignKey)
}

func (c CompilerV13) VisitReference(*model.Reference) (any, error) {
	return nil, model.Unsupported(IDv13, model.KindReference)
}

func (c CompilerV13) VisitDialect(*model.Dialect) (any, error) {
	return nil, model.Unsupported(IDv13, model.KindDialect)
}

func (c CompilerV13) VisitReview(*model.Review) (any, error) {
	return nil, model.Unsupported(IDv13, model.KindReview)
}

func (c CompilerV13) VisitMetaComment(m *model.MetaComment) (any, error) {
	return document.FromPairs(
		"metadata", jsontree.Scalar(m.Metadata),
		"dates", jsontree.Scalar(m.Dates),
		"units", jsontree.Scalar(m.Units),
		"languages", jsontree.Scalar(m.Languages),
		"licenses", jsontree.Scalar(m.Licenses),
		"review", jsontree.Scalar(m.Review),
		"none", jsontree.Scalar(m.Null),
	), nil
}
