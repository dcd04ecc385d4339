// Package merger fills metadata documents with the defaults of a blank
// template.
package merger

import (
	"github.com/OpenEnergyPlatform/omi/internal/document"
)

// Result contains the filled document and what the fill changed.
type Result struct {
	// Doc is the filled document. It shares no structure with the inputs.
	Doc *document.Dict
	// Defaulted lists the paths taken from the template because the
	// document did not carry them.
	Defaulted []string
	// Extra lists the paths of the document unknown to the template. They
	// are kept after the template keys.
	Extra []string
}

// Fill merges doc into template. The result follows the template's key
// order; values present in doc win; nested objects are filled recursively
// and list items that are objects are filled against the first item of the
// template list. Keys unknown to the template are appended in document
// order.
func Fill(template, doc *document.Dict) *document.Dict {
	return FillReport(template, doc).Doc
}

// FillReport is Fill with a record of defaulted and extra keys.
func FillReport(template, doc *document.Dict) *Result {
	r := &Result{}
	r.Doc = r.fillDict(template, doc, "")
	return r
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func (r *Result) fillDict(template, doc *document.Dict, path string) *document.Dict {
	if template == nil {
		if doc == nil {
			return nil
		}
		return doc.Clone()
	}
	out := document.NewDict()
	template.Range(func(key string, tv any) bool {
		at := join(path, key)
		dv, present := doc.Get(key)
		if !present {
			r.Defaulted = append(r.Defaulted, at)
			out.Set(key, document.Clone(tv))
			return true
		}
		out.Set(key, r.fillValue(tv, dv, at))
		return true
	})
	doc.Range(func(key string, dv any) bool {
		if !template.Has(key) {
			r.Extra = append(r.Extra, join(path, key))
			out.Set(key, document.Clone(dv))
		}
		return true
	})
	return out
}

func (r *Result) fillValue(tv, dv any, path string) any {
	switch t := tv.(type) {
	case *document.Dict:
		if d, ok := dv.(*document.Dict); ok {
			return r.fillDict(t, d, path)
		}
	case []any:
		items, ok := dv.([]any)
		if !ok || len(t) == 0 {
			break
		}
		proto, ok := t[0].(*document.Dict)
		if !ok {
			break
		}
		out := make([]any, len(items))
		for i, item := range items {
			if d, isDict := item.(*document.Dict); isDict {
				out[i] = r.fillDict(proto, d, path+"[]")
				continue
			}
			out[i] = document.Clone(item)
		}
		return out
	}
	return document.Clone(dv)
}
