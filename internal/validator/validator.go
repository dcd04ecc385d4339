// Package validator checks a metadata document against the dialects of its
// version family, an optional JSON schema and the completeness registry.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/OpenEnergyPlatform/omi/internal/completeness"
	"github.com/OpenEnergyPlatform/omi/internal/conversion"
	"github.com/OpenEnergyPlatform/omi/internal/dialects"
	"github.com/OpenEnergyPlatform/omi/internal/document"
	"github.com/OpenEnergyPlatform/omi/internal/metadata"
	"github.com/OpenEnergyPlatform/omi/internal/render"
	"github.com/OpenEnergyPlatform/omi/internal/version"
)

type ValidationResult struct {
	DocID    string
	Version  string
	Dialect  string // dialect that parsed the document, if any
	Valid    bool
	Errors   []string
	Warnings []string

	CompletenessScore float64
	MissingRequired   []metadata.Key
	MissingOptional   []metadata.Key

	// Resource-specific results, in document order.
	ResourceResults []ResourceValidationResult
}

type ResourceValidationResult struct {
	Resource          string
	CompletenessScore float64
	MissingRequired   []metadata.Key
	MissingOptional   []metadata.Key
	Errors            []string
	Warnings          []string
}

type ValidationOptions struct {
	StrictMode           bool    // Fail if required fields missing
	MinCompletenessScore float64 // Minimum acceptable score (0.0-1.0)

	// Schema, when set, is checked against the document tree.
	Schema *jsonschema.Schema
}

// LoadSchema compiles a JSON schema from a file path or URL.
func LoadSchema(path string) (*jsonschema.Schema, error) {
	s, err := jsonschema.Compile(path)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", path, err)
	}
	return s, nil
}

func Validate(doc *document.Dict, opts ValidationOptions) ValidationResult {
	result := ValidationResult{
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
	}

	// 1. Basic structural validation
	if doc == nil {
		result.Valid = false
		result.Errors = append(result.Errors, "document is nil")
		return result
	}
	result.DocID = doc.GetString("name")

	// 2. Version detection
	v, err := version.Of(doc)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	result.Version = v.String()
	family := v.Family()
	if metadata.Registry(family) == nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("unsupported metadata version %s", v))
		return result
	}
	warnOutdated(v, &result)

	// 3. Dialect parsing
	validateDialects(doc, family, &result)

	// 4. JSON schema
	if opts.Schema != nil {
		validateSchema(doc, opts.Schema, &result)
	}

	// 5. Completeness
	report := completeness.CheckFamily(doc, family)
	result.CompletenessScore = report.Score
	result.MissingRequired = report.MissingRequired
	result.MissingOptional = report.MissingOptional

	if opts.StrictMode {
		if len(report.MissingRequired) > 0 {
			result.Valid = false
			for _, key := range report.MissingRequired {
				result.Errors = append(result.Errors, fmt.Sprintf("required field missing: %s", key))
			}
		}
		if report.Score < opts.MinCompletenessScore {
			result.Valid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("completeness score %.2f below minimum %.2f", report.Score, opts.MinCompletenessScore))
		}
	}
	for _, key := range report.MissingOptional {
		result.Warnings = append(result.Warnings, fmt.Sprintf("optional field missing: %s", key))
	}

	for _, res := range report.Resources {
		rr := ResourceValidationResult{
			Resource:          res.Resource,
			CompletenessScore: res.Score,
			MissingRequired:   res.MissingRequired,
			MissingOptional:   res.MissingOptional,
			Errors:            []string{},
			Warnings:          []string{},
		}
		if opts.StrictMode {
			for _, key := range res.MissingRequired {
				msg := fmt.Sprintf("required resource field missing: %s", key)
				rr.Errors = append(rr.Errors, msg)
				result.Warnings = append(result.Warnings, fmt.Sprintf("resource %s: %s", res.Resource, msg))
			}
		}
		for _, key := range res.MissingOptional {
			rr.Warnings = append(rr.Warnings, fmt.Sprintf("optional resource field missing: %s", key))
		}
		result.ResourceResults = append(result.ResourceResults, rr)
	}

	logf("%s valid=%t score=%.2f", result.Version, result.Valid, result.CompletenessScore)
	return result
}

func warnOutdated(v version.Version, result *ValidationResult) {
	targets := conversion.Default().Targets()
	if len(targets) == 0 {
		return
	}
	latest := version.MustParse(targets[len(targets)-1])
	if v.Compare(latest) < 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("metadata version %s is outdated, latest is %s", v, latest))
	}
}

// validateDialects tries the candidate dialects of family in order and
// records the first one that parses the document. When none does, every
// candidate's error is reported.
func validateDialects(doc *document.Dict, family string, result *ValidationResult) {
	candidates := dialects.ForFamily(family)
	if len(candidates) == 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("no parser for %s, structure not checked", family))
		return
	}
	data, err := render.Marshal(doc)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("render document: %v", err))
		return
	}
	var failures []string
	for _, id := range candidates {
		d, err := dialects.Default().Get(id)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", id, err))
			continue
		}
		if _, err := d.Parse([]byte(data)); err != nil {
			logf("dialect %s rejected document: %v", id, err)
			failures = append(failures, fmt.Sprintf("%s: %v", id, err))
			continue
		}
		result.Dialect = id
		return
	}
	result.Valid = false
	result.Errors = append(result.Errors,
		fmt.Sprintf("no dialect could parse the document (%s)", strings.Join(failures, "; ")))
}

func validateSchema(doc *document.Dict, schema *jsonschema.Schema, result *ValidationResult) {
	err := schema.Validate(document.Plain(doc))
	if err == nil {
		return
	}
	result.Valid = false
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, fmt.Sprintf("schema: %v", err))
		return
	}
	n := len(result.Errors)
	for _, e := range ve.BasicOutput().Errors {
		if e.Error == "" || strings.HasPrefix(e.Error, "doesn't validate with") {
			continue
		}
		loc := e.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		result.Errors = append(result.Errors, fmt.Sprintf("schema %s: %s", loc, e.Error))
	}
	if len(result.Errors) == n {
		result.Errors = append(result.Errors, fmt.Sprintf("schema: %v", ve))
	}
}
