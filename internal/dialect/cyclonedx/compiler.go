// Package cyclonedx exports the metadata model as a CycloneDX 1.6 BOM in
// which the dataset is a data component and each resource a child
// component. Details without a CycloneDX field travel as "oep:" properties.
package cyclonedx

import (
	"fmt"
	"strings"
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/google/uuid"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/buildinfo"
	"github.com/OpenEnergyPlatform/omi/internal/model"
)

const propPrefix = "oep:"

// Property names.
const (
	PropTitle            = propPrefix + "title"
	PropIdentifier       = propPrefix + "id"
	PropLanguage         = propPrefix + "language"
	PropPublicationDate  = propPrefix + "publicationDate"
	PropGrantNumber      = propPrefix + "context.grantNo"
	PropFundingAgency    = propPrefix + "context.fundingAgency"
	PropFundingLogo      = propPrefix + "context.fundingAgencyLogo"
	PropPublisherLogo    = propPrefix + "context.publisherLogo"
	PropLocation         = propPrefix + "spatial.location"
	PropExtent           = propPrefix + "spatial.extent"
	PropSpatialRes       = propPrefix + "spatial.resolution"
	PropReferenceDate    = propPrefix + "temporal.referenceDate"
	PropStart            = propPrefix + "temporal.timeseries.start"
	PropEnd              = propPrefix + "temporal.timeseries.end"
	PropTemporalRes      = propPrefix + "temporal.timeseries.resolution"
	PropAlignment        = propPrefix + "temporal.timeseries.alignment"
	PropAggregation      = propPrefix + "temporal.timeseries.aggregationType"
	PropReviewBadge      = propPrefix + "review.badge"
	PropMetadataVersion  = propPrefix + "metaMetadata.metadataVersion"
	PropContribution     = propPrefix + "contribution"
	PropProfile          = propPrefix + "profile"
	PropFormat           = propPrefix + "format"
	PropEncoding         = propPrefix + "encoding"
	PropField            = propPrefix + "field"
	PropPrimaryKey       = propPrefix + "primaryKey"
	PropForeignKey       = propPrefix + "foreignKey"
	PropDelimiter        = propPrefix + "dialect.delimiter"
	PropDecimalSeparator = propPrefix + "dialect.decimalSeparator"
)

// External reference types used for the dataset.
const (
	refWebsite       = cdx.ExternalReferenceType("website")
	refDocumentation = cdx.ExternalReferenceType("documentation")
	refVCS           = cdx.ExternalReferenceType("vcs")
	refSupport       = cdx.ExternalReferenceType("support")
	refDistribution  = cdx.ExternalReferenceType("distribution")
	refOther         = cdx.ExternalReferenceType("other")
	refLicense       = cdx.ExternalReferenceType("license")
)

// Compiler builds a CycloneDX BOM. Now stamps metadata.timestamp when set.
type Compiler struct {
	Now func() time.Time
}

func (c Compiler) Compile(md *model.Metadata) (*cdx.BOM, error) {
	if md == nil {
		return nil, apperr.Metadataf("nothing to compile")
	}
	out, err := (&bomBuilder{now: c.Now}).VisitMetadata(md)
	if err != nil {
		return nil, err
	}
	return out.(*cdx.BOM), nil
}

// bomBuilder returns a CycloneDX fragment per entity: components,
// license choices, contacts or property lists.
type bomBuilder struct {
	now func() time.Time
}

var _ model.Visitor[any] = (*bomBuilder)(nil)

func prop(props *[]cdx.Property, name, value string) {
	if value == "" {
		return
	}
	*props = append(*props, cdx.Property{Name: name, Value: value})
}

func ref(refs *[]cdx.ExternalReference, t cdx.ExternalReferenceType, url, comment string) {
	if url == "" {
		return
	}
	*refs = append(*refs, cdx.ExternalReference{Type: t, URL: url, Comment: comment})
}

func (b *bomBuilder) properties(n model.Node) ([]cdx.Property, error) {
	if model.IsNil(n) {
		return nil, nil
	}
	out, err := model.Visit[any](b, n)
	if err != nil {
		return nil, err
	}
	props, _ := out.([]cdx.Property)
	return props, nil
}

// SerialNumber derives a stable BOM serial from the dataset identifier.
func SerialNumber(identifier string) string {
	return "urn:uuid:" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(identifier)).String()
}

func (b *bomBuilder) VisitMetadata(md *model.Metadata) (any, error) {
	name := md.Name
	if name == "" {
		name = md.Title
	}
	if name == "" {
		name = "dataset"
	}
	comp := &cdx.Component{
		BOMRef:      md.Identifier,
		Type:        cdx.ComponentTypeData,
		Name:        name,
		Description: md.Description,
	}
	if len(md.Keywords) > 0 {
		tags := append([]string(nil), md.Keywords...)
		comp.Tags = &tags
	}

	var props []cdx.Property
	prop(&props, PropTitle, md.Title)
	prop(&props, PropIdentifier, md.Identifier)
	for _, l := range md.Languages {
		prop(&props, PropLanguage, l)
	}
	prop(&props, PropPublicationDate, md.PublicationDate)

	var refs []cdx.ExternalReference
	if isURL(md.Identifier) {
		ref(&refs, refDistribution, md.Identifier, "")
	}
	if ctx := md.Context; ctx != nil {
		ref(&refs, refWebsite, ctx.Homepage, "homepage")
		ref(&refs, refDocumentation, ctx.Documentation, "")
		ref(&refs, refVCS, ctx.SourceCode, "")
		ref(&refs, refSupport, ctx.Contact, "contact")
		p, err := b.properties(ctx)
		if err != nil {
			return nil, err
		}
		props = append(props, p...)
	}
	for _, n := range []model.Node{md.Spatial, md.Temporal, md.Review} {
		p, err := b.properties(n)
		if err != nil {
			return nil, err
		}
		props = append(props, p...)
	}
	if md.Review != nil {
		ref(&refs, refOther, md.Review.Path, "review")
	}
	for _, s := range md.Sources {
		if s == nil {
			continue
		}
		comment := "source"
		if s.Title != "" {
			comment = "source: " + s.Title
		}
		ref(&refs, refOther, s.Path, comment)
	}

	licenses, err := model.VisitAll[any](b, md.Licenses)
	if err != nil {
		return nil, err
	}
	if len(licenses) > 0 {
		choices := make(cdx.Licenses, 0, len(licenses))
		for _, l := range licenses {
			choices = append(choices, l.(cdx.LicenseChoice))
		}
		comp.Licenses = &choices
	}

	var authors []cdx.OrganizationalContact
	for _, c := range md.Contributors {
		if c == nil {
			continue
		}
		contact, err := b.VisitContributor(c)
		if err != nil {
			return nil, err
		}
		if oc := contact.(cdx.OrganizationalContact); oc.Name+oc.Email != "" {
			authors = append(authors, oc)
		}
		prop(&props, PropContribution, contribution(c))
	}
	if len(authors) > 0 {
		comp.Authors = &authors
	}

	prop(&props, PropMetadataVersion, md.MetadataVersion)
	if len(props) > 0 {
		comp.Properties = &props
	}
	if len(refs) > 0 {
		comp.ExternalReferences = &refs
	}

	data := cdx.ComponentData{Type: cdx.ComponentDataTypeDataset, Name: name, Description: md.Description}
	comp.Data = &[]cdx.ComponentData{data}

	resources, err := model.VisitAll[any](b, md.Resources)
	if err != nil {
		return nil, err
	}
	var components []cdx.Component
	for _, r := range resources {
		components = append(components, r.(cdx.Component))
	}

	bom := cdx.NewBOM()
	bom.SerialNumber = SerialNumber(md.Identifier)
	bom.Metadata = &cdx.Metadata{
		Component: comp,
		Tools: &cdx.ToolsChoice{Components: &[]cdx.Component{{
			Type:         cdx.ComponentTypeApplication,
			Manufacturer: &cdx.OrganizationalEntity{Name: buildinfo.ToolVendor},
			Name:         buildinfo.ToolName,
			Version:      buildinfo.GetVersion(),
		}}},
	}
	if b.now != nil {
		bom.Metadata.Timestamp = b.now().Format(time.RFC3339)
	}
	if len(components) > 0 {
		bom.Components = &components
	}
	return bom, nil
}

// contribution flattens a contributor as "name|date|object|comment"; the
// email travels in the matching author contact.
func contribution(c *model.Contributor) string {
	if c == nil {
		return ""
	}
	name := ""
	if c.Person != nil {
		name = c.Person.Name
	}
	if name+c.Date+c.Object+c.Comment == "" {
		return ""
	}
	return strings.Join([]string{name, c.Date, c.Object, c.Comment}, "|")
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func (b *bomBuilder) VisitContext(c *model.Context) (any, error) {
	var props []cdx.Property
	prop(&props, PropGrantNumber, c.GrantNumber)
	prop(&props, PropFundingAgency, c.FundingAgency)
	prop(&props, PropFundingLogo, c.FundingAgencyLogo)
	prop(&props, PropPublisherLogo, c.PublisherLogo)
	return props, nil
}

func (b *bomBuilder) VisitSpatial(s *model.Spatial) (any, error) {
	var props []cdx.Property
	prop(&props, PropLocation, s.Location)
	prop(&props, PropExtent, s.Extent)
	prop(&props, PropSpatialRes, s.Resolution)
	return props, nil
}

func (b *bomBuilder) VisitTemporal(t *model.Temporal) (any, error) {
	var props []cdx.Property
	prop(&props, PropReferenceDate, t.ReferenceDate)
	ts, err := b.properties(t.Timeseries)
	if err != nil {
		return nil, err
	}
	return append(props, ts...), nil
}

func (b *bomBuilder) VisitTimeseries(ts *model.Timeseries) (any, error) {
	var props []cdx.Property
	prop(&props, PropStart, ts.Start)
	prop(&props, PropEnd, ts.End)
	prop(&props, PropTemporalRes, ts.Resolution)
	prop(&props, PropAlignment, string(ts.Orientation))
	prop(&props, PropAggregation, ts.Aggregation)
	return props, nil
}

// VisitSource is unsupported; sources become external references of the
// dataset component.
func (b *bomBuilder) VisitSource(*model.Source) (any, error) {
	return nil, model.Unsupported(ID, model.KindSource)
}

func (b *bomBuilder) VisitTermsOfUse(t *model.TermsOfUse) (any, error) {
	if t.License == nil {
		return cdx.LicenseChoice{License: &cdx.License{Name: "unknown"}}, nil
	}
	return b.VisitLicense(t.License)
}

func (b *bomBuilder) VisitLicense(l *model.License) (any, error) {
	lic := &cdx.License{URL: l.Path}
	switch {
	case l.Identifier != "":
		lic.ID = l.Identifier
	case l.Name != "":
		lic.Name = l.Name
	default:
		lic.Name = "unknown"
	}
	return cdx.LicenseChoice{License: lic}, nil
}

func (b *bomBuilder) VisitPerson(p *model.Person) (any, error) {
	return cdx.OrganizationalContact{Name: p.Name, Email: p.Email}, nil
}

func (b *bomBuilder) VisitContributor(c *model.Contributor) (any, error) {
	if c.Person == nil {
		return cdx.OrganizationalContact{}, nil
	}
	return b.VisitPerson(c.Person)
}

func (b *bomBuilder) VisitResource(r *model.Resource) (any, error) {
	comp := cdx.Component{
		BOMRef: r.Name,
		Type:   cdx.ComponentTypeData,
		Name:   r.Name,
	}
	var props []cdx.Property
	prop(&props, PropProfile, r.Profile)
	prop(&props, PropFormat, r.Format)
	prop(&props, PropEncoding, r.Encoding)
	for _, n := range []model.Node{r.Schema, r.Dialect} {
		p, err := b.properties(n)
		if err != nil {
			return nil, err
		}
		props = append(props, p...)
	}
	if len(props) > 0 {
		comp.Properties = &props
	}
	if r.Path != "" {
		comp.ExternalReferences = &[]cdx.ExternalReference{{Type: refDistribution, URL: r.Path}}
	}
	comp.Data = &[]cdx.ComponentData{{Type: cdx.ComponentDataTypeDataset, Name: r.Name}}
	return comp, nil
}

func (b *bomBuilder) VisitSchema(s *model.Schema) (any, error) {
	var props []cdx.Property
	for _, f := range s.Fields {
		if f == nil {
			continue
		}
		p, err := b.VisitField(f)
		if err != nil {
			return nil, err
		}
		props = append(props, p.([]cdx.Property)...)
	}
	prop(&props, PropPrimaryKey, strings.Join(s.PrimaryKey, ","))
	for _, fk := range s.ForeignKeys {
		if fk == nil {
			continue
		}
		p, err := b.VisitForeignKey(fk)
		if err != nil {
			return nil, err
		}
		props = append(props, p.([]cdx.Property)...)
	}
	return props, nil
}

// VisitField encodes a field as "name|type|unit|description".
func (b *bomBuilder) VisitField(f *model.Field) (any, error) {
	return []cdx.Property{{
		Name:  PropField,
		Value: strings.Join([]string{f.Name, f.Type, f.Unit, f.Description}, "|"),
	}}, nil
}

// VisitForeignKey encodes one property per column pair as
// "source -> resource.target".
func (b *bomBuilder) VisitForeignKey(fk *model.ForeignKey) (any, error) {
	var props []cdx.Property
	for _, r := range fk.References {
		if r == nil || r.Source == nil || r.Target == nil {
			continue
		}
		props = append(props, cdx.Property{
			Name:  PropForeignKey,
			Value: fmt.Sprintf("%s -> %s.%s", r.Source.Name, r.Target.Resource, r.Target.Name),
		})
	}
	return props, nil
}

func (b *bomBuilder) VisitReference(*model.Reference) (any, error) {
	return nil, model.Unsupported(ID, model.KindReference)
}

func (b *bomBuilder) VisitDialect(d *model.Dialect) (any, error) {
	var props []cdx.Property
	prop(&props, PropDelimiter, d.Delimiter)
	prop(&props, PropDecimalSeparator, d.DecimalSeparator)
	return props, nil
}

func (b *bomBuilder) VisitReview(r *model.Review) (any, error) {
	var props []cdx.Property
	prop(&props, PropReviewBadge, r.Badge)
	return props, nil
}

// VisitMetaComment is unsupported; authoring hints have no place in a BOM.
func (b *bomBuilder) VisitMetaComment(*model.MetaComment) (any, error) {
	return nil, model.Unsupported(ID, model.KindMetaComment)
}
