// Package render turns compiled document trees into text.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/OpenEnergyPlatform/omi/internal/document"
)

const indentUnit = "    "

// JSON renders compiled documents the way OEMetadata files are written on
// the platform: four-space indentation, keys in compiler order, lists of
// scalars on a single line and non-ASCII text kept verbatim.
type JSON struct{}

// Render renders a compiled document.
func (JSON) Render(d *document.Dict) (string, error) { return Marshal(d) }

// Marshal renders any tree value with the JSON layout.
func Marshal(v any) (string, error) {
	var b strings.Builder
	if err := writeValue(&b, v, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeValue(b *strings.Builder, v any, depth int) error {
	switch t := v.(type) {
	case *document.Dict:
		return writeDict(b, t, depth)
	case []any:
		return writeList(b, t, depth)
	case nil:
		b.WriteString("null")
	case string:
		writeString(b, t)
	case json.Number:
		b.WriteString(t.String())
	case bool:
		if t {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	default:
		return fmt.Errorf("render: unsupported value of type %T", v)
	}
	return nil
}

func writeDict(b *strings.Builder, d *document.Dict, depth int) error {
	if d == nil {
		b.WriteString("null")
		return nil
	}
	if d.Len() == 0 {
		b.WriteString("{}")
		return nil
	}
	b.WriteString("{\n")
	pad := strings.Repeat(indentUnit, depth+1)
	var err error
	i := 0
	d.Range(func(k string, v any) bool {
		b.WriteString(pad)
		writeString(b, k)
		b.WriteString(": ")
		if err = writeValue(b, v, depth+1); err != nil {
			err = fmt.Errorf("%s: %w", k, err)
			return false
		}
		i++
		if i < d.Len() {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
		return true
	})
	if err != nil {
		return err
	}
	b.WriteString(strings.Repeat(indentUnit, depth))
	b.WriteByte('}')
	return nil
}

func writeList(b *strings.Builder, l []any, depth int) error {
	if l == nil {
		b.WriteString("null")
		return nil
	}
	if isFlat(l) {
		b.WriteByte('[')
		for i, e := range l {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := writeValue(b, e, depth); err != nil {
				return err
			}
		}
		b.WriteByte(']')
		return nil
	}
	b.WriteString("[\n")
	pad := strings.Repeat(indentUnit, depth+1)
	for i, e := range l {
		b.WriteString(pad)
		if err := writeValue(b, e, depth+1); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
		if i < len(l)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(indentUnit, depth))
	b.WriteByte(']')
	return nil
}

// isFlat reports whether every element is a scalar.
func isFlat(l []any) bool {
	for _, e := range l {
		switch e.(type) {
		case *document.Dict, []any:
			return false
		}
	}
	return true
}

func writeString(b *strings.Builder, s string) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	b.Write(bytes.TrimRight(buf.Bytes(), "\n"))
}
