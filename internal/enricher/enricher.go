// Package enricher fills fields the completeness check reports as missing,
// from a configuration file or through interactive forms.
package enricher

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/completeness"
	"github.com/OpenEnergyPlatform/omi/internal/document"
	"github.com/OpenEnergyPlatform/omi/internal/metadata"
	"github.com/OpenEnergyPlatform/omi/internal/version"
)

// Config holds enrichment configuration
type Config struct {
	Strategy     string  // "interactive" or "file"
	RequiredOnly bool    // only enrich required fields
	MinWeight    float64 // minimum weight threshold
	NoPreview    bool    // skip preview
}

// ValueGetter reads configured values. *viper.Viper satisfies it.
type ValueGetter interface {
	IsSet(key string) bool
	GetString(key string) string
}

// Prompter asks for values of fields of one target (the dataset or a
// resource). Empty answers are skipped.
type Prompter func(target string, d *document.Dict, fields []metadata.FieldSpec) (map[metadata.Key]string, error)

// Confirmer shows a preview and reports whether to keep the changes.
type Confirmer func(preview string) (bool, error)

// Options for creating an Enricher
type Options struct {
	Writer  io.Writer
	Config  Config
	Values  ValueGetter // file strategy
	Prompt  Prompter    // interactive strategy, defaults to huh forms
	Confirm Confirmer   // defaults to a huh confirmation
}

// Change records one value written by Enrich.
type Change struct {
	Resource string // empty for dataset fields
	Key      metadata.Key
	Value    string
}

// Enricher handles metadata enrichment
type Enricher struct {
	writer  io.Writer
	config  Config
	values  ValueGetter
	prompt  Prompter
	confirm Confirmer
}

// New creates a new Enricher
func New(opts Options) *Enricher {
	e := &Enricher{
		writer:  opts.Writer,
		config:  opts.Config,
		values:  opts.Values,
		prompt:  opts.Prompt,
		confirm: opts.Confirm,
	}
	if e.writer == nil {
		e.writer = io.Discard
	}
	if e.prompt == nil {
		e.prompt = PromptInteractive
	}
	if e.confirm == nil {
		e.confirm = ConfirmPreview
	}
	return e
}

// Enrich returns a copy of doc with missing fields filled in, and the
// changes it made. The input is not modified.
func (e *Enricher) Enrich(doc *document.Dict) (*document.Dict, []Change, error) {
	if doc == nil {
		return nil, nil, apperr.Metadataf("metadata document is empty")
	}
	v, err := version.Of(doc)
	if err != nil {
		return nil, nil, err
	}
	family := v.Family()
	if metadata.Registry(family) == nil {
		return nil, nil, apperr.Metadataf("no completeness registry for %s", family)
	}

	out := doc.Clone()
	initial := completeness.CheckFamily(out, family)
	docID := initial.DocID

	// STEP 1: Enrich dataset fields
	changes, err := e.enrichTarget(docID, "", "enrich.", out, metadata.Registry(family))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to enrich dataset: %w", err)
	}

	// STEP 2: Enrich every resource
	for _, item := range out.GetList("resources") {
		res, ok := item.(*document.Dict)
		if !ok {
			continue
		}
		name := res.GetString("name")
		prefix := "enrich.resources." + configName(name) + "."
		rc, err := e.enrichTarget(docID, name, prefix, res, metadata.ResourceRegistry(family))
		if errors.Is(err, apperr.ErrCancelled) {
			return nil, nil, err
		}
		if err != nil {
			fmt.Fprintf(e.writer, "warning: failed to enrich resource %q: %v\n", name, err)
			continue
		}
		changes = append(changes, rc...)
	}

	if !e.config.NoPreview && len(changes) > 0 {
		final := completeness.CheckFamily(out, family)
		ok, err := e.confirm(BuildPreview(initial, final, changes))
		if err != nil {
			return nil, nil, fmt.Errorf("preview error: %w", err)
		}
		if !ok {
			return nil, nil, apperr.ErrCancelled
		}
	}
	return out, changes, nil
}

func (e *Enricher) enrichTarget(docID, resource, prefix string, d *document.Dict, specs []metadata.FieldSpec) ([]Change, error) {
	missing := e.collectMissingFields(d, specs)
	if len(missing) == 0 {
		return nil, nil
	}

	var values map[metadata.Key]string
	switch e.config.Strategy {
	case "file":
		values = e.valuesFromFile(prefix, missing)
	case "", "interactive":
		target := "Dataset"
		if resource != "" {
			target = "Resource " + resource
		}
		var err error
		values, err = e.prompt(target, d, missing)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown strategy: %s", e.config.Strategy)
	}

	var changes []Change
	for _, spec := range missing {
		value := strings.TrimSpace(values[spec.Key])
		if value == "" {
			continue
		}
		if err := metadata.Set(d, spec.Key, value); err != nil {
			logf(docID, "skip %s: %v", spec.Key, err)
			continue
		}
		logf(docID, "set %s%s", resourcePrefix(resource), spec.Key)
		changes = append(changes, Change{Resource: resource, Key: spec.Key, Value: value})
	}
	return changes, nil
}

// collectMissingFields lists the absent fields that pass the configured
// filters and can hold a text value.
func (e *Enricher) collectMissingFields(d *document.Dict, specs []metadata.FieldSpec) []metadata.FieldSpec {
	var out []metadata.FieldSpec
	for _, spec := range specs {
		if e.config.RequiredOnly && !spec.Required {
			continue
		}
		if spec.Weight < e.config.MinWeight {
			continue
		}
		if metadata.Present(d, spec.Key) || !metadata.Settable(d, spec.Key) {
			continue
		}
		out = append(out, spec)
	}
	return out
}

func (e *Enricher) valuesFromFile(prefix string, specs []metadata.FieldSpec) map[metadata.Key]string {
	values := make(map[metadata.Key]string)
	if e.values == nil {
		return values
	}
	for _, spec := range specs {
		key := prefix + spec.Key.String()
		if e.values.IsSet(key) {
			values[spec.Key] = e.values.GetString(key)
		}
	}
	return values
}

// configName turns a resource name into a single configuration key
// segment.
func configName(name string) string {
	return strings.ReplaceAll(name, ".", "_")
}

func resourcePrefix(resource string) string {
	if resource == "" {
		return ""
	}
	return resource + ": "
}
