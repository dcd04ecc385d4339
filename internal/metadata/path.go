package metadata

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/OpenEnergyPlatform/omi/internal/document"
)

// Values resolves k against d. Segments ending in "[]" fan out over list
// entries, so the result holds one value per matched entry. Missing keys
// contribute nothing.
func Values(d *document.Dict, k Key) []any {
	cur := []any{d}
	for _, seg := range strings.Split(string(k), ".") {
		name, fan := strings.CutSuffix(seg, "[]")
		var next []any
		for _, v := range cur {
			sub, ok := v.(*document.Dict)
			if !ok {
				continue
			}
			val, ok := sub.Get(name)
			if !ok {
				continue
			}
			if !fan {
				next = append(next, val)
				continue
			}
			if items, isList := val.([]any); isList {
				next = append(next, items...)
			}
		}
		cur = next
	}
	return cur
}

// Filled reports whether a value carries information: non-blank strings,
// numbers and booleans, and lists or objects holding at least one filled
// value.
func Filled(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case json.Number, bool:
		return true
	case []any:
		for _, e := range t {
			if Filled(e) {
				return true
			}
		}
		return false
	case *document.Dict:
		filled := false
		t.Range(func(_ string, e any) bool {
			filled = Filled(e)
			return !filled
		})
		return filled
	}
	return false
}

// Present reports whether k resolves to at least one value and every
// resolved value is filled.
func Present(d *document.Dict, k Key) bool {
	vals := Values(d, k)
	if len(vals) == 0 {
		return false
	}
	for _, v := range vals {
		if !Filled(v) {
			return false
		}
	}
	return true
}

// Settable reports whether Set can write k into d: k has no "[]" segment
// and every existing value along the path is an object, except the last
// one which may be absent, null, a string or a list of strings.
func Settable(d *document.Dict, k Key) bool {
	if d == nil || strings.Contains(string(k), "[]") {
		return false
	}
	segs := strings.Split(string(k), ".")
	cur := d
	for i, seg := range segs {
		v, ok := cur.Get(seg)
		if !ok || v == nil {
			return true
		}
		if i == len(segs)-1 {
			switch t := v.(type) {
			case string:
				return true
			case []any:
				for _, e := range t {
					if _, isStr := e.(string); !isStr && e != nil {
						return false
					}
				}
				return true
			}
			return false
		}
		next, isDict := v.(*document.Dict)
		if !isDict {
			return false
		}
		cur = next
	}
	return false
}

// Set writes value at k, creating missing objects along the way. When the
// current value is a list, value is split on commas into a list.
func Set(d *document.Dict, k Key, value string) error {
	if !Settable(d, k) {
		return fmt.Errorf("field %s cannot be set to a text value", k)
	}
	segs := strings.Split(string(k), ".")
	cur := d
	for _, seg := range segs[:len(segs)-1] {
		next := cur.GetDict(seg)
		if next == nil {
			next = document.NewDict()
			cur.Set(seg, next)
		}
		cur = next
	}
	last := segs[len(segs)-1]
	if v, _ := cur.Get(last); isList(v) {
		cur.Set(last, SplitList(value))
		return nil
	}
	cur.Set(last, strings.TrimSpace(value))
	return nil
}

// SplitList splits comma separated text into a list of trimmed strings.
func SplitList(value string) []any {
	out := []any{}
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isList(v any) bool {
	_, ok := v.([]any)
	return ok
}
