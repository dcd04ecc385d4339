package conversion

import (
	"fmt"

	"github.com/OpenEnergyPlatform/omi/internal/document"
	"github.com/OpenEnergyPlatform/omi/internal/merger"
	"github.com/OpenEnergyPlatform/omi/internal/specs"
	"github.com/OpenEnergyPlatform/omi/internal/version"
)

// Version tags of the registered graph nodes.
const (
	OEP130        = "OEP-1.3.0"
	OEP140        = "OEP-1.4.0"
	OEP152        = "OEP-1.5.2"
	OEP160        = "OEP-1.6.0"
	OEMetadata200 = "OEMetadata-2.0.0"
	OEMetadata201 = "OEMetadata-2.0.1"
)

// RegisterDefaults adds the built-in steps to r.
func RegisterDefaults(r *Registry, opts Options) error {
	if opts.Now == nil {
		return fmt.Errorf("conversion: Options.Now is required")
	}
	steps := []struct {
		from, to string
		fn       Func
	}{
		{OEP130, OEP140, convert130to140},
		{OEP140, OEP152, convert140to152},
		{OEP152, OEP160, bump(OEP160)},
		{OEP160, OEMetadata200, (&v2Converter{now: opts.Now}).convert},
		{OEMetadata200, OEMetadata201, bump(OEMetadata201)},
	}
	for _, s := range steps {
		if err := r.Register(s.from, s.to, s.fn); err != nil {
			return err
		}
	}
	return nil
}

func template(tag string) (*document.Dict, error) {
	t, err := specs.Template(version.MustParse(tag))
	if err != nil {
		return nil, fmt.Errorf("load template for %s: %w", tag, err)
	}
	return t, nil
}

func setVersion(doc *document.Dict, tag string) {
	mm := doc.GetDict("metaMetadata")
	if mm == nil {
		mm = document.NewDict()
		doc.Set("metaMetadata", mm)
	}
	mm.Set("metadataVersion", tag)
}

// bump returns a step that only rewrites the declared version.
func bump(tag string) Func {
	return func(doc *document.Dict) (*document.Dict, error) {
		setVersion(doc, tag)
		return doc, nil
	}
}

// dicts returns the objects of a list value, skipping anything else.
func dicts(v any) []*document.Dict {
	items, _ := v.([]any)
	out := make([]*document.Dict, 0, len(items))
	for _, item := range items {
		if d, ok := item.(*document.Dict); ok {
			out = append(out, d)
		}
	}
	return out
}

// get returns d[key], or nil when d is nil or lacks the key.
func get(d *document.Dict, key string) any {
	v, _ := d.Get(key)
	return document.Clone(v)
}

// convert130to140 remaps the flat legacy layout and fills the result from
// the OEP-1.4 template.
func convert130to140(doc *document.Dict) (*document.Dict, error) {
	tmpl, err := template(OEP140)
	if err != nil {
		return nil, err
	}
	out := document.NewDict()
	out.Set("title", get(doc, "title"))
	out.Set("description", get(doc, "description"))
	out.Set("language", get(doc, "language"))

	if s := doc.GetDict("spatial"); s != nil {
		out.Set("spatial", s.Clone())
	}
	if t := doc.GetDict("temporal"); t != nil {
		out.Set("temporal", document.FromPairs(
			"referenceDate", get(t, "reference_date"),
			"timeseries", document.FromPairs(
				"start", get(t, "start"),
				"end", get(t, "end"),
				"resolution", get(t, "resolution"),
				"alignment", nil,
				"aggregationType", nil,
			),
		))
	}

	if srcs, ok := doc.Get("sources"); ok && srcs != nil {
		items := []any{}
		for _, s := range dicts(srcs) {
			licenses := []any{}
			if get(s, "license") != nil || get(s, "copyright") != nil {
				licenses = append(licenses, document.FromPairs(
					"name", get(s, "license"),
					"title", nil,
					"path", nil,
					"instruction", nil,
					"attribution", get(s, "copyright"),
				))
			}
			items = append(items, document.FromPairs(
				"title", get(s, "name"),
				"description", get(s, "description"),
				"path", get(s, "url"),
				"licenses", licenses,
			))
		}
		out.Set("sources", items)
	}

	licenses := []any{}
	if l := doc.GetDict("license"); l != nil {
		licenses = append(licenses, document.FromPairs(
			"name", get(l, "id"),
			"title", get(l, "name"),
			"path", get(l, "url"),
			"instruction", get(l, "instruction"),
			"attribution", get(l, "copyright"),
		))
	}
	out.Set("licenses", licenses)

	if cs, ok := doc.Get("contributors"); ok && cs != nil {
		items := []any{}
		for _, c := range dicts(cs) {
			items = append(items, document.FromPairs(
				"title", get(c, "name"),
				"email", get(c, "email"),
				"date", get(c, "date"),
				"object", nil,
				"comment", get(c, "comment"),
			))
		}
		out.Set("contributors", items)
	}

	if rs, ok := doc.Get("resources"); ok && rs != nil {
		items := []any{}
		for _, r := range dicts(rs) {
			fields := []any{}
			for _, f := range dicts(get(r, "fields")) {
				fields = append(fields, document.FromPairs(
					"name", get(f, "name"),
					"description", get(f, "description"),
					"type", nil,
					"unit", get(f, "unit"),
				))
			}
			items = append(items, document.FromPairs(
				"name", get(r, "name"),
				"format", get(r, "format"),
				"schema", document.FromPairs(
					"fields", fields,
					"primaryKey", []any{},
					"foreignKeys", []any{},
				),
			))
		}
		out.Set("resources", items)
	}

	if c := doc.GetDict("_comment"); c != nil {
		comment := c.Clone()
		comment.Rename("none", "null")
		out.Set("_comment", comment)
	}

	filled := merger.Fill(tmpl, out)
	setVersion(filled, OEP140)
	return filled, nil
}

// convert140to152 adds the annotation keys introduced with OEP-1.5 and
// fills the result from the OEP-1.5 template.
func convert140to152(doc *document.Dict) (*document.Dict, error) {
	tmpl, err := template(OEP152)
	if err != nil {
		return nil, err
	}
	if !doc.Has("subject") {
		doc.Set("subject", []any{})
	}
	if t := doc.GetDict("temporal"); t != nil {
		switch ts := get(t, "timeseries").(type) {
		case *document.Dict:
			t.Set("timeseries", []any{ts})
		case nil:
			t.Set("timeseries", []any{})
		}
	}
	if rs, ok := doc.Get("resources"); ok {
		for _, r := range dicts(rs) {
			schema := r.GetDict("schema")
			if schema == nil {
				continue
			}
			if fs, ok := schema.Get("fields"); ok {
				for _, f := range dicts(fs) {
					if !f.Has("isAbout") {
						f.Set("isAbout", []any{})
					}
					if !f.Has("valueReference") {
						f.Set("valueReference", []any{})
					}
				}
			}
		}
	}
	filled := merger.Fill(tmpl, doc)
	setVersion(filled, OEP152)
	return filled, nil
}
