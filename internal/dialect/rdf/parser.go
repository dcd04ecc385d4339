package rdf

import (
	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/model"
	graph "github.com/OpenEnergyPlatform/omi/internal/rdf"
)

// Parser reads a graph back into a model. NTriples selects the N-Triples
// decoder instead of Turtle.
type Parser struct {
	ID       string
	NTriples bool
}

func (p Parser) Decode(data []byte) (*graph.Graph, error) {
	if p.NTriples {
		return graph.DecodeNTriples(data)
	}
	return graph.DecodeTurtle(data)
}

func (p Parser) Parse(g *graph.Graph) (*model.Metadata, error) {
	id := p.ID
	if id == "" {
		id = IDTurtle
	}
	r := &reader{dialect: id, g: g, fields: make(map[graph.Term]*model.Field)}
	return r.metadata()
}

// reader memoizes field nodes so foreign keys share the fields their
// schemas declare, including resources declared later.
type reader struct {
	dialect string
	g       *graph.Graph
	err     error
	fields  map[graph.Term]*model.Field
}

func (r *reader) fail(format string, args ...any) {
	if r.err == nil {
		r.err = apperr.Parserf(r.dialect, format, args...)
	}
}

func (r *reader) str(s, p graph.Term) string { return r.g.Value(s, p) }

func (r *reader) date(s, p graph.Term) string {
	v := r.g.Value(s, p)
	if !model.ValidDate(v) {
		r.fail("%s: invalid ISO-8601 date %q", p.Value, v)
	}
	return v
}

func (r *reader) node(s, p graph.Term) (graph.Term, bool) {
	o, ok := r.g.Object(s, p)
	if ok && o.IsLiteral() {
		r.fail("%s: expected a node, got literal %q", p.Value, o.Value)
		return graph.Term{}, false
	}
	return o, ok
}

func (r *reader) metadata() (*model.Metadata, error) {
	if r.g == nil {
		return nil, apperr.Parserf(r.dialect, "graph is empty")
	}
	datasets := r.g.Subjects(graph.Type, dcatDataset)
	if len(datasets) != 1 {
		return nil, apperr.Parserf(r.dialect, "expected exactly one dcat:Dataset, found %d", len(datasets))
	}
	ds := datasets[0]

	md := &model.Metadata{
		Name:            r.str(ds, schemaName),
		Title:           r.str(ds, dctTitle),
		Identifier:      r.str(ds, dctIdentifier),
		Description:     r.str(ds, dctDescription),
		Languages:       r.g.Values(ds, dctLanguage),
		Keywords:        r.g.Values(ds, dcatKeyword),
		PublicationDate: r.date(ds, dctIssued),
		MetadataVersion: r.str(ds, dctConformsTo),
	}
	if md.Identifier == "" && ds.IsIRI() {
		md.Identifier = ds.Value
	}
	if md.Identifier == "" {
		return nil, apperr.Parserf(r.dialect, "missing required identifier")
	}

	if n, ok := r.node(ds, oeoContext); ok {
		md.Context = &model.Context{
			Homepage:          r.str(n, foafHomepage),
			Documentation:     r.str(n, oeoDocumentation),
			SourceCode:        r.str(n, oeoSourceCode),
			Contact:           r.str(n, dcatContactPoint),
			GrantNumber:       r.str(n, oeoGrantNumber),
			FundingAgency:     r.str(n, oeoFunder),
			FundingAgencyLogo: r.str(n, oeoFunderLogo),
			PublisherLogo:     r.str(n, oeoPublisherLogo),
		}
	}
	if n, ok := r.node(ds, dctSpatial); ok {
		md.Spatial = &model.Spatial{
			Location:   r.str(n, dcatdeGeocoding),
			Extent:     r.str(n, oeoExtent),
			Resolution: r.str(n, dcatSpatialRes),
		}
	}
	if n, ok := r.node(ds, dctTemporal); ok {
		md.Temporal = &model.Temporal{ReferenceDate: r.date(n, oeoReferenceDate)}
		if ts, ok := r.node(n, oeoTimeseries); ok {
			o, err := model.ParseOrientation(r.str(ts, oeoAlignment))
			if err != nil {
				r.fail("%v", err)
			}
			md.Temporal.Timeseries = &model.Timeseries{
				Start:       r.date(ts, dcatStartDate),
				End:         r.date(ts, dcatEndDate),
				Resolution:  r.str(ts, dcatTemporalRes),
				Orientation: o,
				Aggregation: r.str(ts, oeoAggregation),
			}
		}
	}

	for _, n := range r.g.Objects(ds, dctSource) {
		md.Sources = append(md.Sources, &model.Source{
			Title:       r.str(n, dctTitle),
			Description: r.str(n, dctDescription),
			Path:        r.str(n, dcatAccessURL),
			Licenses:    r.termsOfUse(n),
		})
	}
	md.Licenses = r.termsOfUse(ds)

	for _, n := range r.g.Objects(ds, oeoContribution) {
		c := &model.Contributor{
			Date:    r.date(n, dctDate),
			Object:  r.str(n, oeoObject),
			Comment: r.str(n, rdfsComment),
		}
		if p, ok := r.node(n, oeoContributor); ok {
			c.Person = &model.Person{Name: r.str(p, foafName), Email: r.str(p, foafMbox)}
		}
		md.Contributors = append(md.Contributors, c)
	}

	md.Resources = r.resources(ds)

	if n, ok := r.node(ds, oeoReview); ok {
		md.Review = &model.Review{Path: r.str(n, foafPage), Badge: r.str(n, oeoBadge)}
	}
	if n, ok := r.node(ds, oeoMetaLicense); ok {
		md.MetadataLicense = r.license(n)
	}
	if n, ok := r.node(ds, oeoMetaComment); ok {
		md.Comment = &model.MetaComment{
			Metadata:  r.str(n, oeoCommentMeta),
			Dates:     r.str(n, oeoCommentDates),
			Units:     r.str(n, oeoCommentUnits),
			Languages: r.str(n, oeoCommentLangs),
			Licenses:  r.str(n, oeoCommentLics),
			Review:    r.str(n, oeoCommentReview),
			Null:      r.str(n, oeoCommentNull),
		}
	}

	if r.err != nil {
		return nil, r.err
	}
	return md, nil
}

func (r *reader) termsOfUse(s graph.Term) []*model.TermsOfUse {
	var out []*model.TermsOfUse
	for _, n := range r.g.Objects(s, dctLicense) {
		tou := &model.TermsOfUse{
			Instruction: r.str(n, oeoInstruction),
			Attribution: r.str(n, oeoAttribution),
		}
		if l, ok := r.node(n, dctLicense); ok {
			tou.License = r.license(l)
		}
		out = append(out, tou)
	}
	return out
}

func (r *reader) license(n graph.Term) *model.License {
	return &model.License{
		Identifier:      r.str(n, dctIdentifier),
		Name:            r.str(n, dctTitle),
		Path:            r.str(n, foafPage),
		Text:            r.str(n, spdxLicenseText),
		Version:         r.str(n, admsVersion),
		OtherReferences: r.g.Values(n, rdfsSeeAlso),
		Comment:         r.str(n, rdfsComment),
	}
}

func (r *reader) field(n graph.Term, resource string) *model.Field {
	if f, ok := r.fields[n]; ok {
		return f
	}
	f := &model.Field{
		Name:        r.str(n, dctTitle),
		Description: r.str(n, dctDescription),
		Type:        r.str(n, oeoDatatype),
		Unit:        r.str(n, oeoUnit),
		Resource:    resource,
	}
	r.fields[n] = f
	return f
}

// owner names the resource a field node belongs to, following either
// resource -> schema -> field or the stub resource -> field shortcut.
func (r *reader) owner(field graph.Term) string {
	for _, holder := range r.g.Subjects(oeoField, field) {
		if res := r.g.Subjects(oeoSchema, holder); len(res) > 0 {
			return r.str(res[0], dctTitle)
		}
		return r.str(holder, dctTitle)
	}
	return ""
}

func (r *reader) resources(ds graph.Term) []*model.Resource {
	nodes := r.g.Objects(ds, dcatDistribute)
	if nodes == nil {
		return nil
	}
	out := make([]*model.Resource, 0, len(nodes))
	schemas := make([]graph.Term, len(nodes))
	for i, n := range nodes {
		res := &model.Resource{
			Name:     r.str(n, dctTitle),
			Path:     r.str(n, dcatAccessURL),
			Profile:  r.str(n, dctConformsTo),
			Format:   r.str(n, dctFormat),
			Encoding: r.str(n, oeoEncoding),
		}
		if s, ok := r.node(n, oeoSchema); ok {
			schemas[i] = s
			res.Schema = &model.Schema{PrimaryKey: r.g.Values(s, oeoPrimaryKey)}
			for _, f := range r.g.Objects(s, oeoField) {
				res.Schema.Fields = append(res.Schema.Fields, r.field(f, res.Name))
			}
			for _, key := range res.Schema.PrimaryKey {
				if res.Field(key) == nil {
					r.fail("%s: primary key names unknown field %q", res.Name, key)
				}
			}
		}
		if d, ok := r.node(n, oeoDialect); ok {
			res.Dialect = &model.Dialect{
				Delimiter:        r.str(d, oeoDelimiter),
				DecimalSeparator: r.str(d, oeoDecimalSep),
			}
		}
		out = append(out, res)
	}

	for i, s := range schemas {
		if s.IsZero() {
			continue
		}
		for _, fkNode := range r.g.Objects(s, oeoForeignKey) {
			fk := &model.ForeignKey{}
			for _, ref := range r.g.Objects(fkNode, oeoReference) {
				src, okSrc := r.node(ref, oeoSource)
				dst, okDst := r.node(ref, oeoTarget)
				if !okSrc || !okDst {
					r.fail("%s: foreign key reference needs a source and a target", out[i].Name)
					continue
				}
				fk.References = append(fk.References, &model.Reference{
					Source: r.field(src, out[i].Name),
					Target: r.field(dst, r.owner(dst)),
				})
			}
			out[i].Schema.ForeignKeys = append(out[i].Schema.ForeignKeys, fk)
		}
	}
	return out
}
