package enricher

import (
	"errors"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/completeness"
	"github.com/OpenEnergyPlatform/omi/internal/document"
	"github.com/OpenEnergyPlatform/omi/internal/metadata"
	"github.com/OpenEnergyPlatform/omi/internal/specs"
)

func sparseDoc(t *testing.T) *document.Dict {
	t.Helper()
	doc, err := specs.Example(metadata.FamilyOEP14)
	require.NoError(t, err)
	doc.Set("title", "")
	doc.GetDict("context").Delete("contact")
	doc.Set("keywords", []any{})
	res := doc.GetList("resources")[0].(*document.Dict)
	res.Delete("format")
	return doc
}

func firstResource(d *document.Dict) *document.Dict {
	return d.GetList("resources")[0].(*document.Dict)
}

func TestEnrichFromFile(t *testing.T) {
	v := viper.New()
	v.Set("enrich.title", "Filled title")
	v.Set("enrich.context.contact", "contact@example.org")
	v.Set("enrich.keywords", "energy, grid")
	v.Set("enrich.resources.model_draft_oep_metadata_table_example_v14.format", "PostgreSQL")

	doc := sparseDoc(t)
	e := New(Options{Config: Config{Strategy: "file", NoPreview: true}, Values: v})
	out, changes, err := e.Enrich(doc)
	require.NoError(t, err)

	assert.Equal(t, "Filled title", out.GetString("title"))
	contact, _ := out.Lookup("context.contact")
	assert.Equal(t, "contact@example.org", contact)
	assert.Equal(t, []any{"energy", "grid"}, out.GetList("keywords"))
	assert.Equal(t, "PostgreSQL", firstResource(out).GetString("format"))
	assert.Len(t, changes, 4)
	assert.Equal(t, "model_draft.oep_metadata_table_example_v14", changes[3].Resource)

	// input untouched
	assert.Equal(t, "", doc.GetString("title"))
	assert.Empty(t, firstResource(doc).GetString("format"))
}

func TestEnrichRequiredOnly(t *testing.T) {
	var asked []metadata.Key
	prompt := func(target string, _ *document.Dict, fields []metadata.FieldSpec) (map[metadata.Key]string, error) {
		values := map[metadata.Key]string{}
		for _, f := range fields {
			asked = append(asked, f.Key)
			values[f.Key] = "value"
		}
		return values, nil
	}
	e := New(Options{Config: Config{RequiredOnly: true, NoPreview: true}, Prompt: prompt})
	out, changes, err := e.Enrich(sparseDoc(t))
	require.NoError(t, err)

	assert.Equal(t, []metadata.Key{metadata.Title}, asked)
	require.Len(t, changes, 1)
	assert.Equal(t, "value", out.GetString("title"))
}

func TestEnrichPreviewDeclined(t *testing.T) {
	var preview string
	e := New(Options{
		Config: Config{Strategy: "file"},
		Values: func() *viper.Viper { v := viper.New(); v.Set("enrich.title", "T"); return v }(),
		Confirm: func(p string) (bool, error) {
			preview = p
			return false, nil
		},
	})
	_, _, err := e.Enrich(sparseDoc(t))
	assert.ErrorIs(t, err, apperr.ErrCancelled)
	assert.Contains(t, preview, "Completeness Progress:")
}

func TestEnrichPromptError(t *testing.T) {
	boom := errors.New("boom")
	e := New(Options{Prompt: func(string, *document.Dict, []metadata.FieldSpec) (map[metadata.Key]string, error) {
		return nil, boom
	}})
	_, _, err := e.Enrich(sparseDoc(t))
	assert.ErrorIs(t, err, boom)
}

func TestEnrichErrors(t *testing.T) {
	e := New(Options{Config: Config{Strategy: "carrier-pigeon"}})
	_, _, err := e.Enrich(sparseDoc(t))
	assert.ErrorContains(t, err, "unknown strategy")

	_, _, err = e.Enrich(nil)
	assert.ErrorIs(t, err, apperr.ErrMetadata)

	_, _, err = e.Enrich(document.FromPairs("name", "x"))
	assert.ErrorIs(t, err, apperr.ErrMetadata)
}

func TestBuildPreview(t *testing.T) {
	preview := BuildPreview(
		completeness.Report{Score: 0.5, Passed: 1, Total: 2},
		completeness.Report{Score: 1, Passed: 2, Total: 2, Resources: []completeness.ResourceReport{{Resource: "t", Score: 1, Passed: 1, Total: 1}}},
		[]Change{
			{Key: metadata.Title, Value: "A"},
			{Resource: "t", Key: metadata.ResourceFormat, Value: "CSV"},
		},
	)
	assert.Contains(t, preview, "Dataset Fields:")
	assert.Contains(t, preview, "Resource Fields:")
	assert.Contains(t, preview, "(1/2 fields)")
	assert.Contains(t, preview, "t: ")
}

func TestTruncateValue(t *testing.T) {
	assert.Equal(t, "abc", truncateValue("abc", 5))
	assert.Equal(t, "ab...", truncateValue("abcdefgh", 5))
}
