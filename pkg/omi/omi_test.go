package omi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/specs"
)

func exampleBytes(t *testing.T, family string) []byte {
	t.Helper()
	s, err := specs.GetFamily(family)
	require.NoError(t, err)
	return s.ExampleBytes()
}

func TestConvertJSON(t *testing.T) {
	out, err := ConvertJSON(exampleBytes(t, "OEP-1.6"), "OEMetadata-2.0")
	require.NoError(t, err)

	doc, err := Parse([]byte(out))
	require.NoError(t, err)
	v, err := Version(doc)
	require.NoError(t, err)
	assert.Equal(t, "OEMetadata-2.0.1", v)
}

func TestConvertUnknownTarget(t *testing.T) {
	doc, err := Parse(exampleBytes(t, "OEP-1.4"))
	require.NoError(t, err)
	_, err = Convert(doc, "OEP-9.0")
	assert.True(t, errors.Is(err, apperr.ErrConversion))
}

func TestTargetsAndDialects(t *testing.T) {
	assert.Equal(t, "OEMetadata-2.0.1", Targets()[len(Targets())-1])
	assert.Contains(t, Dialects(), "oep-v1.4")
}

func TestTranslate(t *testing.T) {
	ttl, err := Translate(exampleBytes(t, "OEP-1.4"), "oep-v1.4", "oep-rdf-v1.4")
	require.NoError(t, err)
	assert.Contains(t, ttl, "dcat:Dataset")
}

func TestValidateAndCompleteness(t *testing.T) {
	doc, err := Parse(exampleBytes(t, "OEP-1.5"))
	require.NoError(t, err)

	res := Validate(doc, ValidationOptions{})
	assert.True(t, res.Valid, res.Errors)

	report, err := Completeness(doc)
	require.NoError(t, err)
	assert.Equal(t, "oep_metadata_table_example_v152", report.DocID)
	assert.Greater(t, report.Score, 0.0)
}
