package rdf

import (
	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/model"
	graph "github.com/OpenEnergyPlatform/omi/internal/rdf"
)

// DefaultVersion is written as dct:conformsTo when the model carries no
// metadata version.
const DefaultVersion = "OEP-1.4.0"

// Compiler builds an RDF graph from a model.
type Compiler struct{}

// Compile returns the graph accumulated while visiting md.
func (Compiler) Compile(md *model.Metadata) (*graph.Graph, error) {
	if md == nil {
		return nil, apperr.Metadataf("nothing to compile")
	}
	b := newBuilder(md)
	if _, err := b.VisitMetadata(md); err != nil {
		return nil, err
	}
	return b.g, nil
}

type fieldKey struct{ resource, name string }

// builder is the stateful visitor behind Compiler. Licenses are shared by
// identifier; resources and fields are shared by name so foreign keys
// point at the nodes their schemas declare.
type builder struct {
	md        *model.Metadata
	g         *graph.Graph
	licenses  map[string]graph.Term
	resources map[string]graph.Term
	fields    map[fieldKey]graph.Term
}

var _ model.Visitor[graph.Term] = (*builder)(nil)

func newBuilder(md *model.Metadata) *builder {
	return &builder{
		md:        md,
		g:         graph.NewGraph(),
		licenses:  make(map[string]graph.Term),
		resources: make(map[string]graph.Term),
		fields:    make(map[fieldKey]graph.Term),
	}
}

func (b *builder) lit(s, p graph.Term, v string) { b.g.Add(s, p, graph.Literal(v)) }

func (b *builder) lits(s, p graph.Term, vs []string) {
	for _, v := range vs {
		b.lit(s, p, v)
	}
}

// link visits n and attaches the resulting node to s.
func (b *builder) link(s, p graph.Term, n model.Node) error {
	if model.IsNil(n) {
		return nil
	}
	o, err := model.Visit[graph.Term](b, n)
	if err != nil {
		return err
	}
	b.g.Add(s, p, o)
	return nil
}

func linkAll[N model.Node](b *builder, s, p graph.Term, nodes []N) error {
	for _, n := range nodes {
		if err := b.link(s, p, n); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) VisitMetadata(md *model.Metadata) (graph.Term, error) {
	ds := datasetIRI(md.Identifier)
	b.g.Add(ds, graph.Type, dcatDataset)
	b.lit(ds, dctIdentifier, md.Identifier)
	b.lit(ds, schemaName, md.Name)
	b.lit(ds, dctTitle, md.Title)
	b.lit(ds, dctDescription, md.Description)
	b.lits(ds, dctLanguage, md.Languages)
	b.lits(ds, dcatKeyword, md.Keywords)
	b.lit(ds, dctIssued, md.PublicationDate)

	for _, step := range []func() error{
		func() error { return b.link(ds, oeoContext, md.Context) },
		func() error { return b.link(ds, dctSpatial, md.Spatial) },
		func() error { return b.link(ds, dctTemporal, md.Temporal) },
		func() error { return linkAll(b, ds, dctSource, md.Sources) },
		func() error { return linkAll(b, ds, dctLicense, md.Licenses) },
		func() error { return linkAll(b, ds, oeoContribution, md.Contributors) },
		func() error { return linkAll(b, ds, dcatDistribute, md.Resources) },
		func() error { return b.link(ds, oeoReview, md.Review) },
		func() error { return b.link(ds, oeoMetaLicense, md.MetadataLicense) },
		func() error { return b.link(ds, oeoMetaComment, md.Comment) },
	} {
		if err := step(); err != nil {
			return graph.Term{}, err
		}
	}

	version := md.MetadataVersion
	if version == "" {
		version = DefaultVersion
	}
	b.lit(ds, dctConformsTo, version)
	return ds, nil
}

func (b *builder) VisitContext(c *model.Context) (graph.Term, error) {
	n := b.g.NewBlank()
	b.lit(n, foafHomepage, c.Homepage)
	b.lit(n, oeoDocumentation, c.Documentation)
	b.lit(n, oeoSourceCode, c.SourceCode)
	b.lit(n, dcatContactPoint, c.Contact)
	b.lit(n, oeoGrantNumber, c.GrantNumber)
	b.lit(n, oeoFunder, c.FundingAgency)
	b.lit(n, oeoFunderLogo, c.FundingAgencyLogo)
	b.lit(n, oeoPublisherLogo, c.PublisherLogo)
	return n, nil
}

func (b *builder) VisitSpatial(s *model.Spatial) (graph.Term, error) {
	n := b.g.NewBlank()
	b.lit(n, dcatdeGeocoding, s.Location)
	b.lit(n, oeoExtent, s.Extent)
	b.lit(n, dcatSpatialRes, s.Resolution)
	return n, nil
}

func (b *builder) VisitTemporal(t *model.Temporal) (graph.Term, error) {
	n := b.g.NewBlank()
	b.lit(n, oeoReferenceDate, t.ReferenceDate)
	return n, b.link(n, oeoTimeseries, t.Timeseries)
}

func (b *builder) VisitTimeseries(ts *model.Timeseries) (graph.Term, error) {
	n := b.g.NewBlank()
	b.lit(n, dcatStartDate, ts.Start)
	b.lit(n, dcatEndDate, ts.End)
	b.lit(n, dcatTemporalRes, ts.Resolution)
	b.lit(n, oeoAlignment, string(ts.Orientation))
	b.lit(n, oeoAggregation, ts.Aggregation)
	return n, nil
}

func (b *builder) VisitSource(s *model.Source) (graph.Term, error) {
	n := b.g.NewBlank()
	b.lit(n, dctTitle, s.Title)
	b.lit(n, dctDescription, s.Description)
	b.lit(n, dcatAccessURL, s.Path)
	return n, linkAll(b, n, dctLicense, s.Licenses)
}

func (b *builder) VisitTermsOfUse(t *model.TermsOfUse) (graph.Term, error) {
	n := b.g.NewBlank()
	if err := b.link(n, dctLicense, t.License); err != nil {
		return graph.Term{}, err
	}
	b.lit(n, oeoInstruction, t.Instruction)
	b.lit(n, oeoAttribution, t.Attribution)
	return n, nil
}

// VisitLicense returns one node per license identifier.
func (b *builder) VisitLicense(l *model.License) (graph.Term, error) {
	key := l.Identifier
	if key == "" {
		key = "\x00" + l.Name + "\x00" + l.Path
	}
	if n, ok := b.licenses[key]; ok {
		return n, nil
	}
	n := b.g.NewBlank()
	b.licenses[key] = n
	b.g.Add(n, graph.Type, dctLicenseDoc)
	b.lit(n, dctIdentifier, l.Identifier)
	b.lit(n, dctTitle, l.Name)
	b.lit(n, foafPage, l.Path)
	b.lit(n, spdxLicenseText, l.Text)
	b.lit(n, admsVersion, l.Version)
	b.lits(n, rdfsSeeAlso, l.OtherReferences)
	b.lit(n, rdfsComment, l.Comment)
	return n, nil
}

func (b *builder) VisitPerson(p *model.Person) (graph.Term, error) {
	n := b.g.NewBlank()
	b.g.Add(n, graph.Type, foafPerson)
	b.lit(n, foafName, p.Name)
	b.lit(n, foafMbox, p.Email)
	return n, nil
}

func (b *builder) VisitContributor(c *model.Contributor) (graph.Term, error) {
	n := b.g.NewBlank()
	if err := b.link(n, oeoContributor, c.Person); err != nil {
		return graph.Term{}, err
	}
	b.lit(n, dctDate, c.Date)
	b.lit(n, oeoObject, c.Object)
	b.lit(n, rdfsComment, c.Comment)
	return n, nil
}

func (b *builder) resourceNode(name string) graph.Term {
	if n, ok := b.resources[name]; ok {
		return n
	}
	n := b.g.NewBlank()
	b.resources[name] = n
	return n
}

func (b *builder) fieldNode(f *model.Field) graph.Term {
	key := fieldKey{f.Resource, f.Name}
	if n, ok := b.fields[key]; ok {
		return n
	}
	n := b.g.NewBlank()
	b.fields[key] = n
	return n
}

func (b *builder) VisitResource(r *model.Resource) (graph.Term, error) {
	n := b.resourceNode(r.Name)
	b.g.Add(n, graph.Type, dcatDistribution)
	b.lit(n, dctTitle, r.Name)
	b.lit(n, dcatAccessURL, r.Path)
	b.lit(n, dctConformsTo, r.Profile)
	b.lit(n, dctFormat, r.Format)
	b.lit(n, oeoEncoding, r.Encoding)
	if err := b.link(n, oeoSchema, r.Schema); err != nil {
		return graph.Term{}, err
	}
	return n, b.link(n, oeoDialect, r.Dialect)
}

func (b *builder) VisitSchema(s *model.Schema) (graph.Term, error) {
	n := b.g.NewBlank()
	if err := linkAll(b, n, oeoField, s.Fields); err != nil {
		return graph.Term{}, err
	}
	b.lits(n, oeoPrimaryKey, s.PrimaryKey)
	return n, linkAll(b, n, oeoForeignKey, s.ForeignKeys)
}

func (b *builder) VisitField(f *model.Field) (graph.Term, error) {
	n := b.fieldNode(f)
	b.lit(n, dctTitle, f.Name)
	b.lit(n, dctDescription, f.Description)
	b.lit(n, oeoDatatype, f.Type)
	b.lit(n, oeoUnit, f.Unit)
	return n, nil
}

func (b *builder) VisitForeignKey(fk *model.ForeignKey) (graph.Term, error) {
	n := b.g.NewBlank()
	return n, linkAll(b, n, oeoReference, fk.References)
}

// VisitReference links two field nodes. A target outside the document
// hangs off a stub resource node that is not part of the dataset.
func (b *builder) VisitReference(r *model.Reference) (graph.Term, error) {
	n := b.g.NewBlank()
	if r.Source != nil {
		b.g.Add(n, oeoSource, b.fieldNode(r.Source))
	}
	if r.Target != nil {
		target := b.fieldNode(r.Target)
		if b.md.Resource(r.Target.Resource) == nil {
			stub := b.resourceNode(r.Target.Resource)
			b.lit(stub, dctTitle, r.Target.Resource)
			b.g.Add(stub, oeoField, target)
			b.lit(target, dctTitle, r.Target.Name)
		}
		b.g.Add(n, oeoTarget, target)
	}
	return n, nil
}

func (b *builder) VisitDialect(d *model.Dialect) (graph.Term, error) {
	n := b.g.NewBlank()
	b.lit(n, oeoDelimiter, d.Delimiter)
	b.lit(n, oeoDecimalSep, d.DecimalSeparator)
	return n, nil
}

func (b *builder) VisitReview(r *model.Review) (graph.Term, error) {
	n := b.g.NewBlank()
	b.lit(n, foafPage, r.Path)
	b.lit(n, oeoBadge, r.Badge)
	return n, nil
}

func (b *builder) VisitMetaComment(c *model.MetaComment) (graph.Term, error) {
	n := b.g.NewBlank()
	b.lit(n, oeoCommentMeta, c.Metadata)
	b.lit(n, oeoCommentDates, c.Dates)
	b.lit(n, oeoCommentUnits, c.Units)
	b.lit(n, oeoCommentLangs, c.Languages)
	b.lit(n, oeoCommentLics, c.Licenses)
	b.lit(n, oeoCommentReview, c.Review)
	b.lit(n, oeoCommentNull, c.Null)
	return n, nil
}
