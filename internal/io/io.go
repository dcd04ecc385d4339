// Package io reads metadata documents from disk and writes rendered
// dialect output back.
package io

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/OpenEnergyPlatform/omi/internal/dialect/cyclonedx"
	"github.com/OpenEnergyPlatform/omi/internal/dialect/jsontree"
	"github.com/OpenEnergyPlatform/omi/internal/dialect/rdf"
	"github.com/OpenEnergyPlatform/omi/internal/document"
)

// ReadDocument reads a JSON or YAML document from a file.
// The format parameter can be "json", "yaml", or "auto" (default).
// If "auto", the format is determined from the file extension, falling
// back to the first non-blank byte of the content.
func ReadDocument(path string, format string) (*document.Dict, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	actual := strings.ToLower(strings.TrimSpace(format))
	switch actual {
	case "", "auto":
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			actual = "yaml"
		case ".json":
			actual = "json"
		}
	case "json", "yaml":
		// ok
	default:
		return nil, fmt.Errorf("unsupported document format: %q", format)
	}

	var doc *document.Dict
	switch actual {
	case "json":
		doc, err = document.DecodeJSON(data)
	case "yaml":
		doc, err = document.DecodeYAML(data)
	default:
		doc, err = jsontree.Decode(data)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return doc, nil
}

// Extension returns the file extension used for output of a dialect.
func Extension(dialectID string) string {
	switch dialectID {
	case rdf.IDTurtle:
		return ".ttl"
	case rdf.IDNTriples:
		return ".nt"
	case cyclonedx.IDXML:
		return ".xml"
	}
	return ".json"
}

// DialectFromPath guesses the dialect of a file that can only hold one.
// JSON files are ambiguous and yield false.
func DialectFromPath(path string) (string, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttl":
		return rdf.IDTurtle, true
	case ".nt":
		return rdf.IDNTriples, true
	case ".xml":
		return cyclonedx.IDXML, true
	}
	return "", false
}

// WriteText writes rendered output of a dialect to outputPath, creating
// parent directories. The path extension must match the dialect.
func WriteText(outputPath string, text string, dialectID string) error {
	ext := strings.ToLower(filepath.Ext(outputPath))
	want := Extension(dialectID)
	if ext != want {
		return fmt.Errorf("output path extension %q does not match dialect %q (want %q)", ext, dialectID, want)
	}
	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return os.WriteFile(outputPath, []byte(text), 0o644)
}

// OutputPath places the output for input inside outDir, swapping the
// extension for the one of dialectID.
func OutputPath(input, outDir, dialectID string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(outDir, base+Extension(dialectID))
}
