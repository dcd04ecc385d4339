package dialects

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenEnergyPlatform/omi/internal/dialect"
	"github.com/OpenEnergyPlatform/omi/internal/specs"
)

func TestDefaultNames(t *testing.T) {
	assert.Equal(t, []string{
		"cyclonedx-v1.6",
		"cyclonedx-xml-v1.6",
		"oep-nt-v1.4",
		"oep-rdf-v1.4",
		"oep-v1.3",
		"oep-v1.4",
		"oep-v1.5",
		"oep-v1.6",
	}, Default().Names())
	assert.Same(t, Default(), Default())
}

func TestRegisterTwiceFails(t *testing.T) {
	r := dialect.NewRegistry()
	require.NoError(t, Register(r))
	assert.Error(t, Register(r))
}

func TestGetIsExact(t *testing.T) {
	_, err := Default().Get("oep-v1.4")
	require.NoError(t, err)

	for _, id := range []string{"OEP-v1.4", "oep-v1.4 ", "oep-1.4", "rdf"} {
		_, err := Default().Get(id)
		assert.True(t, errors.Is(err, dialect.ErrUnknownDialect), id)
	}
}

func TestTranslate(t *testing.T) {
	s, err := specs.GetFamily("OEP-1.4")
	require.NoError(t, err)

	ttl, err := Default().Translate(s.ExampleBytes(), "oep-v1.4", "oep-rdf-v1.4")
	require.NoError(t, err)
	assert.Contains(t, ttl, "dcat:Dataset")

	_, err = Default().Translate(s.ExampleBytes(), "oep-v1.4", "oep-v1.5")
	assert.Error(t, err, "dialects of different model generations cannot be mixed")
}

func TestForFamily(t *testing.T) {
	tests := []struct {
		family string
		want   []string
	}{
		{"OEP-1.3", []string{"oep-v1.3"}},
		{"OEP-1.4", []string{"oep-v1.4"}},
		{"OEP-1.5", []string{"oep-v1.5", "oep-v1.6"}},
		{"OEMetadata-2.0", nil},
	}
	for _, tt := range tests {
		t.Run(tt.family, func(t *testing.T) {
			assert.Equal(t, tt.want, ForFamily(tt.family))
			for _, id := range tt.want {
				_, err := Default().Get(id)
				assert.NoError(t, err)
			}
		})
	}
}
