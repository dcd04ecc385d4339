package conversion

import (
	"fmt"
	"strings"
	"time"

	"github.com/OpenEnergyPlatform/omi/internal/document"
)

// Contributor entry recorded once per resource by the OEMetadata-2.0 step.
const (
	ConversionContributorTitle = "Metadata conversion"
	conversionComment          = "Converted from " + OEP160 + " to " + OEMetadata200 + " by omi"
)

// v2Converter spreads an OEP-1.6 document over the resources of a blank
// OEMetadata-2.0 template.
type v2Converter struct {
	now func() time.Time
}

// growable is a template-seeded list: the i-th source item updates the
// i-th entry, and the list grows by cloning a pristine copy of its first
// placeholder. Placeholders without a matching source item stay.
type growable struct {
	owner *document.Dict
	key   string
	items []any
	proto *document.Dict
}

func seeded(owner *document.Dict, key string) (*growable, error) {
	items := owner.GetList(key)
	if len(items) == 0 {
		return nil, fmt.Errorf("template has no placeholder for %q", key)
	}
	proto, ok := items[0].(*document.Dict)
	if !ok {
		return nil, fmt.Errorf("template placeholder for %q is not an object", key)
	}
	return &growable{owner: owner, key: key, items: items, proto: proto.Clone()}, nil
}

// at returns entry i, growing the list as needed.
func (g *growable) at(i int) *document.Dict {
	for len(g.items) <= i {
		g.items = append(g.items, g.proto.Clone())
	}
	g.owner.Set(g.key, g.items)
	return g.items[i].(*document.Dict)
}

func (g *growable) len() int { return len(g.items) }

// object returns the nested template object under key.
func object(d *document.Dict, key string) (*document.Dict, error) {
	sub := d.GetDict(key)
	if sub == nil {
		return nil, fmt.Errorf("template has no object %q", key)
	}
	return sub, nil
}

// set copies src[srcKey] to dst[dstKey] when the source holds a value.
func set(dst *document.Dict, dstKey string, src *document.Dict, srcKey string) {
	if v := get(src, srcKey); v != nil {
		dst.Set(dstKey, v)
	}
}

// asList normalises a string-or-list value to a list.
func asList(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		return []any{t}
	}
}

// extend fills a seeded scalar list: an empty placeholder is replaced by
// the first value, further values are appended.
func extend(d *document.Dict, key string, values []any) {
	if len(values) == 0 {
		return
	}
	list := d.GetList(key)
	if len(list) > 0 && (list[0] == nil || list[0] == "") {
		list = list[1:]
	}
	d.Set(key, append(append([]any{}, list...), values...))
}

// references updates the annotation list of a v2 object from OEP reference
// objects, renaming path to @id.
func references(dst *document.Dict, key string, src []*document.Dict) error {
	if len(src) == 0 {
		return nil
	}
	g, err := seeded(dst, key)
	if err != nil {
		return err
	}
	for i, s := range src {
		entry := g.at(i)
		s.Range(func(k string, v any) bool {
			if v == nil {
				return true
			}
			if k == "path" {
				k = "@id"
			}
			entry.Set(k, document.Clone(v))
			return true
		})
	}
	return nil
}

func (c *v2Converter) convert(doc *document.Dict) (*document.Dict, error) {
	out, err := template(OEMetadata200)
	if err != nil {
		return nil, err
	}
	set(out, "name", doc, "name")
	set(out, "title", doc, "title")
	set(out, "description", doc, "description")
	set(out, "@id", doc, "id")

	resources, err := seeded(out, "resources")
	if err != nil {
		return nil, err
	}
	for i, r := range dicts(get(doc, "resources")) {
		if err := c.resource(resources.at(i), doc, r); err != nil {
			return nil, fmt.Errorf("resources[%d]: %w", i, err)
		}
	}

	mm, err := object(out, "metaMetadata")
	if err != nil {
		return nil, err
	}
	mm.Set("metadataVersion", OEMetadata200)
	return out, nil
}

func (c *v2Converter) resource(res, doc, r *document.Dict) error {
	set(res, "@id", doc, "@id")
	set(res, "path", doc, "id")
	set(res, "title", doc, "title")
	set(res, "description", doc, "description")
	set(res, "publicationDate", doc, "publicationDate")

	if name := r.GetString("name"); name != "" {
		if schema, table, ok := strings.Cut(name, "."); ok {
			extend(res, "topics", []any{schema})
			res.Set("name", table)
		} else {
			res.Set("name", name)
		}
	}
	extend(res, "languages", asList(get(doc, "language")))
	extend(res, "keywords", asList(get(doc, "keywords")))
	if err := references(res, "subject", dicts(get(doc, "subject"))); err != nil {
		return err
	}

	steps := []func(res, doc, r *document.Dict) error{
		c.context,
		c.spatial,
		c.temporal,
		c.sources,
		c.licenses,
		c.contributors,
		c.schema,
	}
	for _, step := range steps {
		if err := step(res, doc, r); err != nil {
			return err
		}
	}

	set(res, "format", r, "format")
	set(res, "encoding", r, "encoding")
	if d := r.GetDict("dialect"); d != nil {
		dialect, err := object(res, "dialect")
		if err != nil {
			return err
		}
		set(dialect, "delimiter", d, "delimiter")
		set(dialect, "decimalSeparator", d, "decimalSeparator")
	}
	if rv := doc.GetDict("review"); rv != nil {
		review, err := object(res, "review")
		if err != nil {
			return err
		}
		set(review, "path", rv, "path")
		set(review, "badge", rv, "badge")
	}
	return nil
}

func (c *v2Converter) context(res, doc, _ *document.Dict) error {
	src := doc.GetDict("context")
	if src == nil {
		return nil
	}
	ctx, err := object(res, "context")
	if err != nil {
		return err
	}
	src.Range(func(k string, v any) bool {
		if v != nil {
			ctx.Set(k, document.Clone(v))
		}
		return true
	})
	return nil
}

func (c *v2Converter) spatial(res, doc, _ *document.Dict) error {
	src := doc.GetDict("spatial")
	if src == nil {
		return nil
	}
	spatial, err := object(res, "spatial")
	if err != nil {
		return err
	}
	location, err := object(spatial, "location")
	if err != nil {
		return err
	}
	extent, err := object(spatial, "extent")
	if err != nil {
		return err
	}
	set(location, "address", src, "location")
	set(extent, "name", src, "extent")
	if s := src.GetString("resolution"); s != "" {
		value, unit := SpatialResolution(s)
		extent.Set("resolutionValue", value)
		extent.Set("resolutionUnit", unit)
	}
	return nil
}

func (c *v2Converter) temporal(res, doc, _ *document.Dict) error {
	src := doc.GetDict("temporal")
	if src == nil {
		return nil
	}
	temporal, err := object(res, "temporal")
	if err != nil {
		return err
	}
	set(temporal, "referenceDate", src, "referenceDate")
	series := dicts(asList(get(src, "timeseries")))
	if len(series) == 0 {
		return nil
	}
	g, err := seeded(temporal, "timeseries")
	if err != nil {
		return err
	}
	for i, ts := range series {
		entry := g.at(i)
		set(entry, "start", ts, "start")
		set(entry, "end", ts, "end")
		if s := ts.GetString("resolution"); s != "" {
			value, unit := TemporalResolution(s)
			entry.Set("resolutionValue", value)
			entry.Set("resolutionUnit", unit)
		}
		set(entry, "alignment", ts, "alignment")
		set(entry, "aggregationType", ts, "aggregationType")
	}
	return nil
}

// license updates a v2 license entry from an OEP license object.
func license(dst, src *document.Dict) {
	for _, k := range []string{"name", "title", "path", "instruction", "attribution"} {
		set(dst, k, src, k)
	}
}

func (c *v2Converter) sources(res, doc, _ *document.Dict) error {
	src := dicts(get(doc, "sources"))
	if len(src) == 0 {
		return nil
	}
	g, err := seeded(res, "sources")
	if err != nil {
		return err
	}
	for i, s := range src {
		entry := g.at(i)
		set(entry, "title", s, "title")
		set(entry, "description", s, "description")
		set(entry, "path", s, "path")
		ls := dicts(get(s, "licenses"))
		if len(ls) == 0 {
			continue
		}
		lg, err := seeded(entry, "sourceLicenses")
		if err != nil {
			return err
		}
		for j, l := range ls {
			license(lg.at(j), l)
		}
	}
	return nil
}

func (c *v2Converter) licenses(res, doc, _ *document.Dict) error {
	src := dicts(get(doc, "licenses"))
	if len(src) == 0 {
		return nil
	}
	g, err := seeded(res, "licenses")
	if err != nil {
		return err
	}
	for i, l := range src {
		license(g.at(i), l)
	}
	return nil
}

func (c *v2Converter) contributors(res, doc, _ *document.Dict) error {
	g, err := seeded(res, "contributors")
	if err != nil {
		return err
	}
	for i, ct := range dicts(get(doc, "contributors")) {
		entry := g.at(i)
		set(entry, "title", ct, "title")
		set(entry, "date", ct, "date")
		set(entry, "object", ct, "object")
		set(entry, "comment", ct, "comment")
	}
	c.recordConversion(g)
	return nil
}

// recordConversion appends the conversion contributor unless the last
// entry already is one. An untouched placeholder is replaced instead.
func (c *v2Converter) recordConversion(g *growable) {
	last := g.items[g.len()-1].(*document.Dict)
	if last.GetString("title") == ConversionContributorTitle {
		return
	}
	entry := g.proto.Clone()
	entry.Set("title", ConversionContributorTitle)
	entry.Set("date", c.now().Format("2006-01-02"))
	entry.Set("object", "metadata")
	entry.Set("comment", conversionComment)
	if g.len() == 1 && document.Equal(last, g.proto) {
		g.items[0] = entry
	} else {
		g.items = append(g.items, entry)
	}
	g.owner.Set(g.key, g.items)
}

func (c *v2Converter) schema(res, _, r *document.Dict) error {
	src := r.GetDict("schema")
	if src == nil {
		return nil
	}
	schema, err := object(res, "schema")
	if err != nil {
		return err
	}
	if fields := dicts(get(src, "fields")); len(fields) > 0 {
		g, err := seeded(schema, "fields")
		if err != nil {
			return err
		}
		for i, f := range fields {
			entry := g.at(i)
			set(entry, "name", f, "name")
			set(entry, "description", f, "description")
			set(entry, "type", f, "type")
			set(entry, "unit", f, "unit")
			if err := references(entry, "isAbout", dicts(get(f, "isAbout"))); err != nil {
				return err
			}
			if err := references(entry, "valueReference", dicts(get(f, "valueReference"))); err != nil {
				return err
			}
		}
	}
	extend(schema, "primaryKey", asList(get(src, "primaryKey")))

	fks := dicts(get(src, "foreignKeys"))
	if len(fks) == 0 {
		return nil
	}
	g, err := seeded(schema, "foreignKeys")
	if err != nil {
		return err
	}
	for i, fk := range fks {
		entry := g.at(i)
		extend(entry, "fields", asList(get(fk, "fields")))
		ref := fk.GetDict("reference")
		if ref == nil {
			continue
		}
		dst, err := object(entry, "reference")
		if err != nil {
			return err
		}
		set(dst, "resource", ref, "resource")
		extend(dst, "fields", asList(get(ref, "fields")))
	}
	return nil
}
