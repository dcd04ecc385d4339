// Package omi is the library entry point for converting, translating and
// checking OEMetadata documents.
package omi

import (
	"github.com/OpenEnergyPlatform/omi/internal/completeness"
	"github.com/OpenEnergyPlatform/omi/internal/conversion"
	"github.com/OpenEnergyPlatform/omi/internal/dialects"
	"github.com/OpenEnergyPlatform/omi/internal/document"
	omiio "github.com/OpenEnergyPlatform/omi/internal/io"
	"github.com/OpenEnergyPlatform/omi/internal/render"
	"github.com/OpenEnergyPlatform/omi/internal/validator"
	"github.com/OpenEnergyPlatform/omi/internal/version"
)

type (
	// Document is an ordered metadata tree.
	Document = document.Dict

	ValidationOptions  = validator.ValidationOptions
	ValidationResult   = validator.ValidationResult
	CompletenessReport = completeness.Report
)

// Parse decodes a JSON metadata document, keeping key order.
func Parse(data []byte) (*Document, error) { return document.DecodeJSON(data) }

// ParseYAML decodes a YAML metadata document.
func ParseYAML(data []byte) (*Document, error) { return document.DecodeYAML(data) }

// ReadFile reads a JSON or YAML document, chosen by extension or content.
func ReadFile(path string) (*Document, error) { return omiio.ReadDocument(path, "auto") }

// Render encodes doc as indented JSON.
func Render(doc *Document) (string, error) { return render.Marshal(doc) }

// Version returns the metadata version doc declares.
func Version(doc *Document) (string, error) {
	v, err := version.Of(doc)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// Targets lists the versions Convert accepts, oldest first.
func Targets() []string { return conversion.Default().Targets() }

// Convert returns doc converted to target, e.g. "OEMetadata-2.0". The
// input is not modified.
func Convert(doc *Document, target string) (*Document, error) {
	return conversion.Convert(doc, target)
}

// ConvertJSON parses, converts and renders in one go.
func ConvertJSON(data []byte, target string) (string, error) {
	doc, err := Parse(data)
	if err != nil {
		return "", err
	}
	out, err := Convert(doc, target)
	if err != nil {
		return "", err
	}
	return Render(out)
}

// Dialects lists the registered dialect identifiers.
func Dialects() []string { return dialects.Default().Names() }

// Translate parses data with dialect from and renders it with dialect to.
func Translate(data []byte, from, to string) (string, error) {
	return dialects.Default().Translate(data, from, to)
}

// Validate checks doc. See ValidationOptions.
func Validate(doc *Document, opts ValidationOptions) ValidationResult {
	return validator.Validate(doc, opts)
}

// Completeness scores how much of doc is filled in.
func Completeness(doc *Document) (CompletenessReport, error) {
	return completeness.Check(doc)
}
