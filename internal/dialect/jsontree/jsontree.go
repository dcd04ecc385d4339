// Package jsontree holds the small readers and writers shared by the JSON
// dialects.
package jsontree

import (
	"bytes"
	"fmt"

	"github.com/OpenEnergyPlatform/omi/internal/document"
)

// Decode reads JSON, or YAML when the input does not start with an object.
func Decode(data []byte) (*document.Dict, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] != '{' && trimmed[0] != '[' {
		return document.DecodeYAML(data)
	}
	return document.DecodeJSON(data)
}

// Strings reads a list of scalars. Absent or null keys yield nil; a single
// string is accepted as a one-element list.
func Strings(d *document.Dict, key string) ([]string, error) {
	v, ok := d.Get(key)
	if !ok || v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []any:
		out := make([]string, 0, len(t))
		for i, e := range t {
			switch e.(type) {
			case *document.Dict, []any:
				return nil, fmt.Errorf("%s[%d]: expected a scalar", key, i)
			case nil:
				continue
			}
			out = append(out, document.AsString(e))
		}
		return out, nil
	}
	return nil, fmt.Errorf("%s: expected a list, got %T", key, v)
}

// Dicts reads a list of objects. Absent or null keys yield nil; null
// entries are skipped.
func Dicts(d *document.Dict, key string) ([]*document.Dict, error) {
	v, ok := d.Get(key)
	if !ok || v == nil {
		return nil, nil
	}
	l, isList := v.([]any)
	if !isList {
		if single, isDict := v.(*document.Dict); isDict {
			return []*document.Dict{single}, nil
		}
		return nil, fmt.Errorf("%s: expected a list of objects, got %T", key, v)
	}
	out := make([]*document.Dict, 0, len(l))
	for i, e := range l {
		if e == nil {
			continue
		}
		sub, ok := e.(*document.Dict)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: expected an object, got %T", key, i, e)
		}
		out = append(out, sub)
	}
	return out, nil
}

// Object reads a nested object; null or absent keys yield nil.
func Object(d *document.Dict, key string) (*document.Dict, error) {
	v, ok := d.Get(key)
	if !ok || v == nil {
		return nil, nil
	}
	sub, isDict := v.(*document.Dict)
	if !isDict {
		return nil, fmt.Errorf("%s: expected an object, got %T", key, v)
	}
	return sub, nil
}

// Scalar writes "" as null.
func Scalar(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// List writes a nil slice as null and keeps empty lists.
func List(ss []string) any {
	if ss == nil {
		return nil
	}
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// Nodes converts compiled list entries, keeping nil as null.
func Nodes(items []any) any {
	if items == nil {
		return nil
	}
	return items
}
