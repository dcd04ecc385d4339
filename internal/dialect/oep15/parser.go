package oep15

import (
	"strconv"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/dialect/jsontree"
	"github.com/OpenEnergyPlatform/omi/internal/document"
	"github.com/OpenEnergyPlatform/omi/internal/model"
	"github.com/OpenEnergyPlatform/omi/internal/model/oem15"
)

// Parser parses OEP-1.5 and OEP-1.6 JSON documents. ID names the dialect
// in error messages.
type Parser struct {
	ID string
}

func (Parser) Decode(data []byte) (*document.Dict, error) { return jsontree.Decode(data) }

func (ps Parser) Parse(doc *document.Dict) (*oem15.Metadata, error) {
	p := &parser{dialect: ps.ID}
	return p.metadata(doc)
}

type parser struct {
	dialect string
	err     error
}

func (p *parser) fail(format string, args ...any) {
	if p.err == nil {
		p.err = apperr.Parserf(p.dialect, format, args...)
	}
}

func (p *parser) strings(d *document.Dict, key, where string) []string {
	out, err := jsontree.Strings(d, key)
	if err != nil {
		p.fail("%s%v", where, err)
	}
	return out
}

func (p *parser) dicts(d *document.Dict, key, where string) []*document.Dict {
	out, err := jsontree.Dicts(d, key)
	if err != nil {
		p.fail("%s%v", where, err)
	}
	return out
}

func (p *parser) object(d *document.Dict, key, where string) *document.Dict {
	out, err := jsontree.Object(d, key)
	if err != nil {
		p.fail("%s%v", where, err)
	}
	return out
}

func (p *parser) date(d *document.Dict, key, where string) string {
	s := d.GetString(key)
	if !model.ValidDate(s) {
		p.fail("%s%s: invalid ISO-8601 date %q", where, key, s)
	}
	return s
}

func (p *parser) metadata(doc *document.Dict) (*oem15.Metadata, error) {
	if doc == nil {
		return nil, apperr.Parserf(p.dialect, "document is empty")
	}
	if doc.IsNull("id") {
		return nil, apperr.Parserf(p.dialect, "missing required key %q", "id")
	}

	md := &oem15.Metadata{
		Name:            doc.GetString("name"),
		Title:           doc.GetString("title"),
		Identifier:      doc.GetString("id"),
		Description:     doc.GetString("description"),
		Languages:       p.strings(doc, "language", ""),
		Keywords:        p.strings(doc, "keywords", ""),
		PublicationDate: p.date(doc, "publicationDate", ""),
		LinkedID:        doc.GetString("@id"),
		LinkedContext:   doc.GetString("@context"),
	}

	if subjects := p.dicts(doc, "subject", ""); subjects != nil {
		md.Subjects = make([]*oem15.Subject, 0, len(subjects))
		for _, s := range subjects {
			md.Subjects = append(md.Subjects, &oem15.Subject{Name: s.GetString("name"), Path: s.GetString("path")})
		}
	}

	if c := p.object(doc, "context", ""); c != nil {
		md.Context = &oem15.Context{
			Homepage:      c.GetString("homepage"),
			Documentation: c.GetString("documentation"),
			SourceCode:    c.GetString("sourceCode"),
			Contact:       c.GetString("contact"),
			GrantNumber:   c.GetString("grantNo"),
		}
		if !c.IsNull("fundingAgency") || !c.IsNull("fundingAgencyLogo") {
			md.Context.FundingAgency = &oem15.Agency{Name: c.GetString("fundingAgency"), Logo: c.GetString("fundingAgencyLogo")}
		}
		if !c.IsNull("publisherLogo") {
			md.Context.Publisher = &oem15.Agency{Logo: c.GetString("publisherLogo")}
		}
	}
	if s := p.object(doc, "spatial", ""); s != nil {
		md.Spatial = &oem15.Spatial{
			Location:   s.GetString("location"),
			Extent:     s.GetString("extent"),
			Resolution: s.GetString("resolution"),
		}
	}
	if t := p.object(doc, "temporal", ""); t != nil {
		md.Temporal = &oem15.Temporal{ReferenceDate: p.date(t, "referenceDate", "temporal.")}
		if series := p.dicts(t, "timeseries", "temporal."); series != nil {
			md.Temporal.Timeseries = make([]*oem15.Timeseries, 0, len(series))
			for i, ts := range series {
				md.Temporal.Timeseries = append(md.Temporal.Timeseries, p.timeseries(ts, "temporal.timeseries["+strconv.Itoa(i)+"]."))
			}
		}
	}

	if srcs := p.dicts(doc, "sources", ""); srcs != nil {
		md.Sources = make([]*oem15.Source, 0, len(srcs))
		for _, s := range srcs {
			md.Sources = append(md.Sources, &oem15.Source{
				Title:       s.GetString("title"),
				Description: s.GetString("description"),
				Path:        s.GetString("path"),
				Licenses:    p.termsOfUseList(s, "sources[]."),
			})
		}
	}
	md.Licenses = p.termsOfUseList(doc, "")

	if cs := p.dicts(doc, "contributors", ""); cs != nil {
		md.Contributors = make([]*oem15.Contributor, 0, len(cs))
		for _, c := range cs {
			md.Contributors = append(md.Contributors, &oem15.Contributor{
				Name:    c.GetString("title"),
				Email:   c.GetString("email"),
				Date:    p.date(c, "date", "contributors[]."),
				Object:  c.GetString("object"),
				Comment: c.GetString("comment"),
			})
		}
	}

	md.Resources = p.resources(doc)

	if r := p.object(doc, "review", ""); r != nil {
		md.Review = &oem15.Review{Path: r.GetString("path"), Badge: r.GetString("badge")}
	}
	if mm := p.object(doc, "metaMetadata", ""); mm != nil {
		md.MetadataVersion = mm.GetString("metadataVersion")
		if l := p.object(mm, "metadataLicense", "metaMetadata."); l != nil {
			md.MetadataLicense = &oem15.License{
				Identifier: l.GetString("name"),
				Name:       l.GetString("title"),
				Path:       l.GetString("path"),
			}
		}
	}
	if c := p.object(doc, "_comment", ""); c != nil {
		md.Comment = &oem15.MetaComment{
			Metadata:  c.GetString("metadata"),
			Dates:     c.GetString("dates"),
			Units:     c.GetString("units"),
			Languages: c.GetString("languages"),
			Licenses:  c.GetString("licenses"),
			Review:    c.GetString("review"),
			Null:      c.GetString("null"),
		}
	}

	if p.err != nil {
		return nil, p.err
	}
	return md, nil
}

func (p *parser) timeseries(ts *document.Dict, where string) *oem15.Timeseries {
	o, err := model.ParseOrientation(ts.GetString("alignment"))
	if err != nil {
		p.fail("%salignment: %v", where, err)
	}
	return &oem15.Timeseries{
		Start:       p.date(ts, "start", where),
		End:         p.date(ts, "end", where),
		Resolution:  ts.GetString("resolution"),
		Orientation: o,
		Aggregation: ts.GetString("aggregationType"),
	}
}

func (p *parser) termsOfUseList(d *document.Dict, where string) []*oem15.TermsOfUse {
	items := p.dicts(d, "licenses", where)
	if items == nil {
		return nil
	}
	out := make([]*oem15.TermsOfUse, 0, len(items))
	for _, l := range items {
		tou := &oem15.TermsOfUse{
			Instruction: l.GetString("instruction"),
			Attribution: l.GetString("attribution"),
		}
		if !l.IsNull("name") || !l.IsNull("title") || !l.IsNull("path") {
			tou.License = &oem15.License{
				Identifier: l.GetString("name"),
				Name:       l.GetString("title"),
				Path:       l.GetString("path"),
			}
		}
		out = append(out, tou)
	}
	return out
}

func (p *parser) field(f *document.Dict, resource, where string) *oem15.Field {
	field := &oem15.Field{
		Name:        f.GetString("name"),
		Description: f.GetString("description"),
		Type:        f.GetString("type"),
		Unit:        f.GetString("unit"),
		Resource:    resource,
	}
	if items := p.dicts(f, "isAbout", where); items != nil {
		field.IsAbout = make([]*oem15.IsAbout, 0, len(items))
		for _, a := range items {
			field.IsAbout = append(field.IsAbout, &oem15.IsAbout{Name: a.GetString("name"), Path: a.GetString("path")})
		}
	}
	if items := p.dicts(f, "valueReference", where); items != nil {
		field.ValueReference = make([]*oem15.ValueReference, 0, len(items))
		for _, v := range items {
			field.ValueReference = append(field.ValueReference, &oem15.ValueReference{
				Value: v.GetString("value"),
				Name:  v.GetString("name"),
				Path:  v.GetString("path"),
			})
		}
	}
	return field
}

// resources parses the resource list in two passes so that foreign keys
// may reference resources declared later in the document.
func (p *parser) resources(doc *document.Dict) []*oem15.Resource {
	items := p.dicts(doc, "resources", "")
	if items == nil {
		return nil
	}
	if len(items) == 0 {
		p.fail("Resource field doesn't have any child entity")
		return nil
	}

	out := make([]*oem15.Resource, 0, len(items))
	for i, r := range items {
		where := "resources[" + strconv.Itoa(i) + "]."
		res := &oem15.Resource{
			Name:     r.GetString("name"),
			Path:     r.GetString("path"),
			Profile:  r.GetString("profile"),
			Format:   r.GetString("format"),
			Encoding: r.GetString("encoding"),
		}
		if schema := p.object(r, "schema", where); schema != nil {
			res.Schema = &oem15.Schema{}
			if fs := p.dicts(schema, "fields", where+"schema."); fs != nil {
				res.Schema.Fields = make([]*oem15.Field, 0, len(fs))
				for j, f := range fs {
					res.Schema.Fields = append(res.Schema.Fields, p.field(f, res.Name, where+"schema.fields["+strconv.Itoa(j)+"]."))
				}
			}
			res.Schema.PrimaryKey = p.strings(schema, "primaryKey", where+"schema.")
			for _, key := range res.Schema.PrimaryKey {
				if res.Field(key) == nil {
					p.fail("%sschema.primaryKey: unknown field %q", where, key)
				}
			}
		}
		if d := p.object(r, "dialect", where); d != nil {
			res.Dialect = &oem15.Dialect{
				Delimiter:        d.GetString("delimiter"),
				DecimalSeparator: d.GetString("decimalSeparator"),
			}
		}
		out = append(out, res)
	}

	lookup := &oem15.Metadata{Resources: out}
	for i, r := range items {
		schema := r.GetDict("schema")
		if schema == nil || out[i].Schema == nil {
			continue
		}
		out[i].Schema.ForeignKeys = p.foreignKeys(lookup, out[i], schema, "resources["+strconv.Itoa(i)+"].schema.")
	}
	return out
}

func (p *parser) foreignKeys(md *oem15.Metadata, res *oem15.Resource, schema *document.Dict, where string) []*oem15.ForeignKey {
	items := p.dicts(schema, "foreignKeys", where)
	if items == nil {
		return nil
	}
	out := make([]*oem15.ForeignKey, 0, len(items))
	for i, fk := range items {
		at := where + "foreignKeys[" + strconv.Itoa(i) + "]"
		local := p.strings(fk, "fields", at+".")
		ref := p.object(fk, "reference", at+".")
		if ref == nil {
			p.fail("%s: missing reference", at)
			continue
		}
		targetName := ref.GetString("resource")
		remote := p.strings(ref, "fields", at+".reference.")
		if len(local) != len(remote) {
			p.fail("%s: %d local fields but %d referenced fields", at, len(local), len(remote))
			continue
		}
		target := md.Resource(targetName)
		key := &oem15.ForeignKey{References: make([]*oem15.Reference, 0, len(local))}
		for j := range local {
			src := res.Field(local[j])
			if src == nil {
				src = &oem15.Field{Name: local[j], Resource: res.Name}
			}
			dst := target.Field(remote[j])
			if dst == nil {
				logf("%s: %s.%s is not declared in the document", res.Name, targetName, remote[j])
				dst = &oem15.Field{Name: remote[j], Resource: targetName}
			}
			key.References = append(key.References, &oem15.Reference{Source: src, Target: dst})
		}
		out = append(out, key)
	}
	return out
}
