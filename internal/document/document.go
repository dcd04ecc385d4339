// Package document holds the generic, insertion-ordered tree that metadata
// documents are decoded into before parsing or conversion.
//
// Values in a tree are one of: nil, bool, string, json.Number, *Dict or []any.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Dict is a JSON object that remembers key insertion order.
type Dict struct {
	keys   []string
	values map[string]any
}

// NewDict returns an empty Dict.
func NewDict() *Dict {
	return &Dict{values: make(map[string]any)}
}

// FromPairs builds a Dict from alternating key/value arguments.
func FromPairs(kv ...any) *Dict {
	if len(kv)%2 != 0 {
		panic("document.FromPairs: odd number of arguments")
	}
	d := NewDict()
	for i := 0; i < len(kv); i += 2 {
		d.Set(kv[i].(string), kv[i+1])
	}
	return d
}

func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Keys returns a copy of the keys in insertion order.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.keys...)
}

func (d *Dict) Get(key string) (any, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d.values[key]
	return v, ok
}

func (d *Dict) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Set stores v under key. New keys are appended; existing keys keep their
// position.
func (d *Dict) Set(key string, v any) {
	if d.values == nil {
		d.values = make(map[string]any)
	}
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = normalize(v)
}

func (d *Dict) Delete(key string) {
	if _, ok := d.values[key]; !ok {
		return
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			return
		}
	}
}

// Rename moves the value under oldKey to newKey in place. An existing newKey
// is overwritten and removed from its old position.
func (d *Dict) Rename(oldKey, newKey string) {
	v, ok := d.Get(oldKey)
	if !ok || oldKey == newKey {
		return
	}
	if _, exists := d.values[newKey]; exists {
		d.Delete(newKey)
	}
	for i, k := range d.keys {
		if k == oldKey {
			d.keys[i] = newKey
			break
		}
	}
	delete(d.values, oldKey)
	d.values[newKey] = v
}

// Update copies every key of other into d, overwriting existing values.
func (d *Dict) Update(other *Dict) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		d.Set(k, Clone(other.values[k]))
	}
}

// Range calls fn for every entry in order until fn returns false.
func (d *Dict) Range(fn func(key string, v any) bool) {
	if d == nil {
		return
	}
	for _, k := range d.keys {
		if !fn(k, d.values[k]) {
			return
		}
	}
}

// Clone returns a deep copy of d.
func (d *Dict) Clone() *Dict {
	if d == nil {
		return nil
	}
	out := &Dict{keys: append([]string(nil), d.keys...), values: make(map[string]any, len(d.values))}
	for k, v := range d.values {
		out.values[k] = Clone(v)
	}
	return out
}

// String returns d as JSON, handy in test failure output.
func (d *Dict) String() string {
	b, err := d.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<invalid: %v>", err)
	}
	return string(b)
}

// GetString returns the string stored under key, or "" when absent,
// null or not a string.
func (d *Dict) GetString(key string) string {
	v, _ := d.Get(key)
	return AsString(v)
}

// GetDict returns the object stored under key, or nil.
func (d *Dict) GetDict(key string) *Dict {
	v, _ := d.Get(key)
	sub, _ := v.(*Dict)
	return sub
}

// GetList returns the list stored under key, or nil.
func (d *Dict) GetList(key string) []any {
	v, _ := d.Get(key)
	l, _ := v.([]any)
	return l
}

// IsNull reports whether key is absent or explicitly null.
func (d *Dict) IsNull(key string) bool {
	v, ok := d.Get(key)
	return !ok || v == nil
}

// AsString converts scalar values to their string form. Objects, lists and
// nil yield "".
func AsString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	}
	return ""
}

// Clone deep-copies any tree value.
func Clone(v any) any {
	switch t := v.(type) {
	case *Dict:
		return t.Clone()
	case []any:
		if t == nil {
			return []any(nil)
		}
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Clone(e)
		}
		return out
	default:
		return v
	}
}

// Equal compares two tree values structurally. Object key order is ignored,
// list order is not.
func Equal(a, b any) bool {
	switch ta := a.(type) {
	case *Dict:
		tb, ok := b.(*Dict)
		if !ok {
			return false
		}
		if ta.Len() != tb.Len() {
			return false
		}
		for _, k := range ta.keys {
			vb, ok := tb.Get(k)
			if !ok || !Equal(ta.values[k], vb) {
				return false
			}
		}
		return true
	case []any:
		tb, ok := b.([]any)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for i := range ta {
			if !Equal(ta[i], tb[i]) {
				return false
			}
		}
		return true
	case json.Number:
		tb, ok := b.(json.Number)
		if !ok {
			return false
		}
		if ta == tb {
			return true
		}
		fa, errA := ta.Float64()
		fb, errB := tb.Float64()
		return errA == nil && errB == nil && fa == fb
	default:
		return a == b
	}
}

// Lookup resolves a dotted path such as "metaMetadata.metadataVersion".
func (d *Dict) Lookup(path string) (any, bool) {
	var cur any = d
	for _, part := range strings.Split(path, ".") {
		sub, ok := cur.(*Dict)
		if !ok {
			return nil, false
		}
		cur, ok = sub.Get(part)
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Plain converts a tree into maps and slices accepted by encoding/json based
// libraries. Key order is lost.
func Plain(v any) any {
	switch t := v.(type) {
	case *Dict:
		if t == nil {
			return nil
		}
		m := make(map[string]any, t.Len())
		for _, k := range t.keys {
			m[k] = Plain(t.values[k])
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Plain(e)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON writes d compactly, keeping key order.
func (d *Dict) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(d.values[k])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// normalize maps convenience Go values onto the tree value set.
func normalize(v any) any {
	switch t := v.(type) {
	case []string:
		if t == nil {
			return []any(nil)
		}
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	case []*Dict:
		if t == nil {
			return []any(nil)
		}
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	case int:
		return json.Number(fmt.Sprint(t))
	case float64:
		return json.Number(fmt.Sprint(t))
	case map[string]any:
		d := NewDict()
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			d.Set(k, t[k])
		}
		return d
	default:
		return v
	}
}
