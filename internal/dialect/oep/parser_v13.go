package oep

import (
	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/dialect/jsontree"
	"github.com/OpenEnergyPlatform/omi/internal/document"
	"github.com/OpenEnergyPlatform/omi/internal/model"
)

// ParserV13 parses OEP-1.3 JSON documents. Version 1.3 documents carry no
// identifier, a flat temporal block and a single dataset license.
type ParserV13 struct{}

func (ParserV13) Decode(data []byte) (*document.Dict, error) { return jsontree.Decode(data) }

func (ParserV13) Parse(doc *document.Dict) (*model.Metadata, error) {
	p := &parser{dialect: IDv13}
	return p.metadataV13(doc)
}

func (p *parser) metadataV13(doc *document.Dict) (*model.Metadata, error) {
	if doc == nil {
		return nil, apperr.Parserf(p.dialect, "document is empty")
	}

	md := &model.Metadata{
		Title:           doc.GetString("title"),
		Description:     doc.GetString("description"),
		Languages:       p.strings(doc, "language", ""),
		MetadataVersion: doc.GetString("metadata_version"),
	}

	if s := p.object(doc, "spatial", ""); s != nil {
		md.Spatial = &model.Spatial{
			Location:   s.GetString("location"),
			Extent:     s.GetString("extent"),
			Resolution: s.GetString("resolution"),
		}
	}
	if t := p.object(doc, "temporal", ""); t != nil {
		md.Temporal = &model.Temporal{ReferenceDate: p.date(t, "reference_date", "temporal.")}
		if !t.IsNull("start") || !t.IsNull("end") || !t.IsNull("resolution") {
			md.Temporal.Timeseries = &model.Timeseries{
				Start:      p.date(t, "start", "temporal."),
				End:        p.date(t, "end", "temporal."),
				Resolution: t.GetString("resolution"),
			}
		}
	}

	if srcs := p.dicts(doc, "sources", ""); srcs != nil {
		md.Sources = make([]*model.Source, 0, len(srcs))
		for _, s := range srcs {
			src := &model.Source{
				Title:       s.GetString("name"),
				Description: s.GetString("description"),
				Path:        s.GetString("url"),
			}
			if !s.IsNull("license") || !s.IsNull("copyright") {
				tou := &model.TermsOfUse{Attribution: s.GetString("copyright")}
				if id := s.GetString("license"); id != "" {
					tou.License = &model.License{Identifier: id}
				}
				src.Licenses = []*model.TermsOfUse{tou}
			}
			md.Sources = append(md.Sources, src)
		}
	}

	if l := p.object(doc, "license", ""); l != nil {
		tou := &model.TermsOfUse{
			Instruction: l.GetString("instruction"),
			Attribution: l.GetString("copyright"),
		}
		if !l.IsNull("id") || !l.IsNull("name") || !l.IsNull("version") || !l.IsNull("url") {
			tou.License = &model.License{
				Identifier: l.GetString("id"),
				Name:       l.GetString("name"),
				Version:    l.GetString("version"),
				Path:       l.GetString("url"),
			}
		}
		md.Licenses = []*model.TermsOfUse{tou}
	}

	if cs := p.dicts(doc, "contributors", ""); cs != nil {
		md.Contributors = make([]*model.Contributor, 0, len(cs))
		for _, c := range cs {
			md.Contributors = append(md.Contributors, &model.Contributor{
				Person:  person(c.GetString("name"), c.GetString("email")),
				Date:    p.date(c, "date", "contributors[]."),
				Comment: c.GetString("comment"),
			})
		}
	}

	md.Resources = p.resources(doc, false)
	md.Comment = p.comment(doc, "none")

	if p.err != nil {
		return nil, p.err
	}
	return md, nil
}
