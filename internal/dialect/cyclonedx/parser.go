package cyclonedx

import (
	"bytes"
	"strings"

	cdx "github.com/CycloneDX/cyclonedx-go"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/model"
)

// Parser reads a BOM written by Compiler back into a model.
type Parser struct {
	ID     string
	Format cdx.BOMFileFormat
}

func (p Parser) Decode(data []byte) (*cdx.BOM, error) {
	bom := new(cdx.BOM)
	if err := cdx.NewBOMDecoder(bytes.NewReader(data), p.Format).Decode(bom); err != nil {
		return nil, apperr.Decode("cyclonedx", err)
	}
	return bom, nil
}

// props indexes properties by name, keeping repeated names in order.
type props map[string][]string

func index(list *[]cdx.Property) props {
	out := props{}
	if list == nil {
		return out
	}
	for _, p := range *list {
		out[p.Name] = append(out[p.Name], p.Value)
	}
	return out
}

func (p props) get(name string) string {
	if v := p[name]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func (p props) any(names ...string) bool {
	for _, n := range names {
		if len(p[n]) > 0 {
			return true
		}
	}
	return false
}

func refsOf(list *[]cdx.ExternalReference) []cdx.ExternalReference {
	if list == nil {
		return nil
	}
	return *list
}

func (p Parser) Parse(bom *cdx.BOM) (*model.Metadata, error) {
	id := p.ID
	if id == "" {
		id = ID
	}
	if bom == nil || bom.Metadata == nil || bom.Metadata.Component == nil {
		return nil, apperr.Parserf(id, "BOM has no metadata component")
	}
	comp := bom.Metadata.Component
	pr := index(comp.Properties)

	md := &model.Metadata{
		Name:            comp.Name,
		Title:           pr.get(PropTitle),
		Identifier:      pr.get(PropIdentifier),
		Description:     comp.Description,
		Languages:       pr[PropLanguage],
		PublicationDate: pr.get(PropPublicationDate),
		MetadataVersion: pr.get(PropMetadataVersion),
	}
	if md.Identifier == "" {
		md.Identifier = comp.BOMRef
	}
	if comp.Tags != nil {
		md.Keywords = append([]string(nil), (*comp.Tags)...)
	}

	ctx := &model.Context{
		GrantNumber:       pr.get(PropGrantNumber),
		FundingAgency:     pr.get(PropFundingAgency),
		FundingAgencyLogo: pr.get(PropFundingLogo),
		PublisherLogo:     pr.get(PropPublisherLogo),
	}
	var review *model.Review
	for _, r := range refsOf(comp.ExternalReferences) {
		switch {
		case r.Type == refWebsite && ctx.Homepage == "":
			ctx.Homepage = r.URL
		case r.Type == refDocumentation && ctx.Documentation == "":
			ctx.Documentation = r.URL
		case r.Type == refVCS && ctx.SourceCode == "":
			ctx.SourceCode = r.URL
		case r.Type == refSupport && ctx.Contact == "":
			ctx.Contact = r.URL
		case r.Type == refOther && r.Comment == "review":
			review = &model.Review{Path: r.URL}
		case r.Type == refOther && strings.HasPrefix(r.Comment, "source"):
			title := strings.TrimPrefix(strings.TrimPrefix(r.Comment, "source"), ": ")
			md.Sources = append(md.Sources, &model.Source{Title: title, Path: r.URL})
		}
	}
	if *ctx != (model.Context{}) {
		md.Context = ctx
	}
	if badge := pr.get(PropReviewBadge); badge != "" {
		if review == nil {
			review = &model.Review{}
		}
		review.Badge = badge
	}
	md.Review = review

	if pr.any(PropLocation, PropExtent, PropSpatialRes) {
		md.Spatial = &model.Spatial{
			Location:   pr.get(PropLocation),
			Extent:     pr.get(PropExtent),
			Resolution: pr.get(PropSpatialRes),
		}
	}
	if pr.any(PropReferenceDate, PropStart, PropEnd, PropTemporalRes, PropAlignment, PropAggregation) {
		md.Temporal = &model.Temporal{ReferenceDate: pr.get(PropReferenceDate)}
		if pr.any(PropStart, PropEnd, PropTemporalRes, PropAlignment, PropAggregation) {
			o, err := model.ParseOrientation(pr.get(PropAlignment))
			if err != nil {
				return nil, apperr.Parserf(id, "%s: %v", PropAlignment, err)
			}
			md.Temporal.Timeseries = &model.Timeseries{
				Start:       pr.get(PropStart),
				End:         pr.get(PropEnd),
				Resolution:  pr.get(PropTemporalRes),
				Orientation: o,
				Aggregation: pr.get(PropAggregation),
			}
		}
	}

	if comp.Licenses != nil {
		for _, choice := range *comp.Licenses {
			tou := &model.TermsOfUse{}
			if l := choice.License; l != nil && !(l.Name == "unknown" && l.ID == "") {
				tou.License = &model.License{Identifier: l.ID, Name: l.Name, Path: l.URL}
			}
			md.Licenses = append(md.Licenses, tou)
		}
	}

	md.Contributors = contributors(comp, pr)

	resources, err := resources(id, bom)
	if err != nil {
		return nil, err
	}
	md.Resources = resources
	return md, nil
}

func contributors(comp *cdx.Component, pr props) []*model.Contributor {
	emails := map[string]string{}
	var authors []cdx.OrganizationalContact
	if comp.Authors != nil {
		authors = *comp.Authors
	}
	for _, a := range authors {
		emails[a.Name] = a.Email
	}

	var out []*model.Contributor
	if entries := pr[PropContribution]; len(entries) > 0 {
		for _, e := range entries {
			parts := strings.SplitN(e, "|", 4)
			for len(parts) < 4 {
				parts = append(parts, "")
			}
			c := &model.Contributor{Date: parts[1], Object: parts[2], Comment: parts[3]}
			if parts[0] != "" || emails[parts[0]] != "" {
				c.Person = &model.Person{Name: parts[0], Email: emails[parts[0]]}
			}
			out = append(out, c)
		}
		return out
	}
	for _, a := range authors {
		out = append(out, &model.Contributor{Person: &model.Person{Name: a.Name, Email: a.Email}})
	}
	return out
}

type pendingKey struct {
	res    *model.Resource
	values []string
}

func resources(id string, bom *cdx.BOM) ([]*model.Resource, error) {
	if bom.Components == nil {
		return nil, nil
	}
	var (
		out     []*model.Resource
		pending []pendingKey
	)
	for _, c := range *bom.Components {
		pr := index(c.Properties)
		res := &model.Resource{
			Name:     c.Name,
			Profile:  pr.get(PropProfile),
			Format:   pr.get(PropFormat),
			Encoding: pr.get(PropEncoding),
		}
		for _, r := range refsOf(c.ExternalReferences) {
			if r.Type == refDistribution {
				res.Path = r.URL
				break
			}
		}
		if pr.any(PropField, PropPrimaryKey, PropForeignKey) {
			res.Schema = &model.Schema{}
			for _, v := range pr[PropField] {
				parts := strings.SplitN(v, "|", 4)
				for len(parts) < 4 {
					parts = append(parts, "")
				}
				res.Schema.Fields = append(res.Schema.Fields, &model.Field{
					Name: parts[0], Type: parts[1], Unit: parts[2], Description: parts[3], Resource: res.Name,
				})
			}
			if pk := pr.get(PropPrimaryKey); pk != "" {
				res.Schema.PrimaryKey = strings.Split(pk, ",")
			}
			if fks := pr[PropForeignKey]; len(fks) > 0 {
				pending = append(pending, pendingKey{res: res, values: fks})
			}
		}
		if pr.any(PropDelimiter, PropDecimalSeparator) {
			res.Dialect = &model.Dialect{Delimiter: pr.get(PropDelimiter), DecimalSeparator: pr.get(PropDecimalSeparator)}
		}
		out = append(out, res)
	}

	lookup := &model.Metadata{Resources: out}
	for _, pk := range pending {
		for _, v := range pk.values {
			src, dst, ok := strings.Cut(v, " -> ")
			dot := strings.LastIndex(dst, ".")
			if !ok || dot < 0 {
				return nil, apperr.Parserf(id, "%s: malformed foreign key %q", pk.res.Name, v)
			}
			targetRes, targetField := dst[:dot], dst[dot+1:]
			source := pk.res.Field(src)
			if source == nil {
				source = &model.Field{Name: src, Resource: pk.res.Name}
			}
			target := lookup.Resource(targetRes).Field(targetField)
			if target == nil {
				target = &model.Field{Name: targetField, Resource: targetRes}
			}
			pk.res.Schema.ForeignKeys = append(pk.res.Schema.ForeignKeys, &model.ForeignKey{
				References: []*model.Reference{{Source: source, Target: target}},
			})
		}
	}
	return out, nil
}
