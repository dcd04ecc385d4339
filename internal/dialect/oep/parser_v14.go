package oep

import (
	"strconv"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/dialect/jsontree"
	"github.com/OpenEnergyPlatform/omi/internal/document"
	"github.com/OpenEnergyPlatform/omi/internal/model"
)

// ParserV14 parses OEP-1.4 JSON documents.
type ParserV14 struct{}

func (ParserV14) Decode(data []byte) (*document.Dict, error) { return jsontree.Decode(data) }

func (ParserV14) Parse(doc *document.Dict) (*model.Metadata, error) {
	p := &parser{dialect: IDv14}
	return p.metadataV14(doc)
}

// parser collects the first error so field readers stay short.
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

func (p *parser) metadataV14(doc *document.Dict) (*model.Metadata, error) {
	if doc == nil {
		return nil, apperr.Parserf(p.dialect, "document is empty")
	}
	if doc.IsNull("id") {
		return nil, apperr.Parserf(p.dialect, "missing required key %q", "id")
	}

	md := &model.Metadata{
		Name:            doc.GetString("name"),
		Title:           doc.GetString("title"),
		Identifier:      doc.GetString("id"),
		Description:     doc.GetString("description"),
		Languages:       p.strings(doc, "language", ""),
		Keywords:        p.strings(doc, "keywords", ""),
		PublicationDate: p.date(doc, "publicationDate", ""),
	}

	if c := p.object(doc, "context", ""); c != nil {
		md.Context = &model.Context{
			Homepage:          c.GetString("homepage"),
			Documentation:     c.GetString("documentation"),
			SourceCode:        c.GetString("sourceCode"),
			Contact:           c.GetString("contact"),
			GrantNumber:       c.GetString("grantNo"),
			FundingAgency:     c.GetString("fundingAgency"),
			FundingAgencyLogo: c.GetString("fundingAgencyLogo"),
			PublisherLogo:     c.GetString("publisherLogo"),
		}
	}
	if s := p.object(doc, "spatial", ""); s != nil {
		md.Spatial = &model.Spatial{
			Location:   s.GetString("location"),
			Extent:     s.GetString("extent"),
			Resolution: s.GetString("resolution"),
		}
	}
	if t := p.object(doc, "temporal", ""); t != nil {
		md.Temporal = &model.Temporal{ReferenceDate: p.date(t, "referenceDate", "temporal.")}
		if ts := p.object(t, "timeseries", "temporal."); ts != nil {
			md.Temporal.Timeseries = p.timeseries(ts, "temporal.timeseries.")
		}
	}

	if srcs := p.dicts(doc, "sources", ""); srcs != nil {
		md.Sources = make([]*model.Source, 0, len(srcs))
		for _, s := range srcs {
			md.Sources = append(md.Sources, &model.Source{
				Title:       s.GetString("title"),
				Description: s.GetString("description"),
				Path:        s.GetString("path"),
				Licenses:    p.termsOfUseList(s, "sources[]."),
			})
		}
	}
	md.Licenses = p.termsOfUseList(doc, "")

	if cs := p.dicts(doc, "contributors", ""); cs != nil {
		md.Contributors = make([]*model.Contributor, 0, len(cs))
		for _, c := range cs {
			md.Contributors = append(md.Contributors, &model.Contributor{
				Person:  person(c.GetString("title"), c.GetString("email")),
				Date:    p.date(c, "date", "contributors[]."),
				Object:  c.GetString("object"),
				Comment: c.GetString("comment"),
			})
		}
	}

	md.Resources = p.resources(doc, true)

	if r := p.object(doc, "review", ""); r != nil {
		md.Review = &model.Review{Path: r.GetString("path"), Badge: r.GetString("badge")}
	}
	if mm := p.object(doc, "metaMetadata", ""); mm != nil {
		md.MetadataVersion = mm.GetString("metadataVersion")
		if l := p.object(mm, "metadataLicense", "metaMetadata."); l != nil {
			md.MetadataLicense = &model.License{
				Identifier: l.GetString("name"),
				Name:       l.GetString("title"),
				Path:       l.GetString("path"),
			}
		}
	}
	md.Comment = p.comment(doc, "null")

	if p.err != nil {
		return nil, p.err
	}
	return md, nil
}

func (p *parser) timeseries(ts *document.Dict, where string) *model.Timeseries {
	o, err := model.ParseOrientation(ts.GetString("alignment"))
	if err != nil {
		p.fail("%salignment: %v", where, err)
	}
	return &model.Timeseries{
		Start:       p.date(ts, "start", where),
		End:         p.date(ts, "end", where),
		Resolution:  ts.GetString("resolution"),
		Orientation: o,
		Aggregation: ts.GetString("aggregationType"),
	}
}

func (p *parser) termsOfUseList(d *document.Dict, where string) []*model.TermsOfUse {
	items := p.dicts(d, "licenses", where)
	if items == nil {
		return nil
	}
	out := make([]*model.TermsOfUse, 0, len(items))
	for _, l := range items {
		tou := &model.TermsOfUse{
			Instruction: l.GetString("instruction"),
			Attribution: l.GetString("attribution"),
		}
		if !l.IsNull("name") || !l.IsNull("title") || !l.IsNull("path") {
			tou.License = &model.License{
				Identifier: l.GetString("name"),
				Name:       l.GetString("title"),
				Path:       l.GetString("path"),
			}
		}
		out = append(out, tou)
	}
	return out
}

func person(name, email string) *model.Person {
	if name == "" && email == "" {
		return nil
	}
	return &model.Person{Name: name, Email: email}
}

// resources parses the resource list in two passes so that foreign keys
// may reference resources declared later in the document.
func (p *parser) resources(doc *document.Dict, withSchemaKeys bool) []*model.Resource {
	items := p.dicts(doc, "resources", "")
	if items == nil {
		return nil
	}
	if len(items) == 0 {
		p.fail("Resource field doesn't have any child entity")
		return nil
	}

	out := make([]*model.Resource, 0, len(items))
	for i, r := range items {
		res := &model.Resource{
			Name:     r.GetString("name"),
			Path:     r.GetString("path"),
			Profile:  r.GetString("profile"),
			Format:   r.GetString("format"),
			Encoding: r.GetString("encoding"),
		}
		where := "resources[" + strconv.Itoa(i) + "]."
		fieldsHolder := r
		if withSchemaKeys {
			fieldsHolder = p.object(r, "schema", where)
		}
		if fieldsHolder != nil {
			res.Schema = &model.Schema{}
			if fs := p.dicts(fieldsHolder, "fields", where); fs != nil {
				res.Schema.Fields = make([]*model.Field, 0, len(fs))
				for _, f := range fs {
					res.Schema.Fields = append(res.Schema.Fields, &model.Field{
						Name:        f.GetString("name"),
						Description: f.GetString("description"),
						Type:        f.GetString("type"),
						Unit:        f.GetString("unit"),
						Resource:    res.Name,
					})
				}
			}
			if withSchemaKeys {
				res.Schema.PrimaryKey = p.strings(fieldsHolder, "primaryKey", where+"schema.")
				for _, key := range res.Schema.PrimaryKey {
					if res.Field(key) == nil {
						p.fail("%sschema.primaryKey: unknown field %q", where, key)
					}
				}
			}
		}
		if d := p.object(r, "dialect", where); d != nil {
			res.Dialect = &model.Dialect{
				Delimiter:        d.GetString("delimiter"),
				DecimalSeparator: d.GetString("decimalSeparator"),
			}
		}
		out = append(out, res)
	}

	if withSchemaKeys {
		lookup := &model.Metadata{Resources: out}
		for i, r := range items {
			schema := r.GetDict("schema")
			if schema == nil || out[i].Schema == nil {
				continue
			}
			out[i].Schema.ForeignKeys = p.foreignKeys(lookup, out[i], schema, "resources["+strconv.Itoa(i)+"].schema.")
		}
	}
	return out
}

func (p *parser) foreignKeys(md *model.Metadata, res *model.Resource, schema *document.Dict, where string) []*model.ForeignKey {
	items := p.dicts(schema, "foreignKeys", where)
	if items == nil {
		return nil
	}
	out := make([]*model.ForeignKey, 0, len(items))
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
		key := &model.ForeignKey{References: make([]*model.Reference, 0, len(local))}
		for j := range local {
			src := res.Field(local[j])
			if src == nil {
				src = &model.Field{Name: local[j], Resource: res.Name}
			}
			dst := target.Field(remote[j])
			if dst == nil {
				logf("%s: %s.%s is not declared in the document", res.Name, targetName, remote[j])
				dst = &model.Field{Name: remote[j], Resource: targetName}
			}
			key.References = append(key.References, &model.Reference{Source: src, Target: dst})
		}
		out = append(out, key)
	}
	return out
}

func (p *parser) comment(doc *document.Dict, nullKey string) *model.MetaComment {
	c := p.object(doc, "_comment", "")
	if c == nil {
		return nil
	}
	return &model.MetaComment{
		Metadata:  c.GetString("metadata"),
		Dates:     c.GetString("dates"),
		Units:     c.GetString("units"),
		Languages: c.GetString("languages"),
		Licenses:  c.GetString("licenses"),
		Review:    c.GetString("review"),
		Null:      c.GetString(nullKey),
	}
}
