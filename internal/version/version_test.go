package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/document"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in       string
		want     string
		family   string
		hasPatch bool
	}{
		{"OEP-1.5.2", "OEP-1.5.2", "OEP-1.5", true},
		{"OEP-1.4", "OEP-1.4.0", "OEP-1.4", false},
		{"OEMetadata-2.0.1", "OEMetadata-2.0.1", "OEMetadata-2.0", true},
		{"1.3", "OEP-1.3.0", "OEP-1.3", false},
		{" OEP-1.6.0 ", "OEP-1.6.0", "OEP-1.6", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
			assert.Equal(t, tt.family, v.Family())
			assert.Equal(t, tt.hasPatch, v.HasPatch())
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "OEP", "OEP-x.y", "Foo-1.0.0", "OEP-1", "OEP-1.2.3.4", "OEP--1.0"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrMetadata)
		})
	}
}

func TestCompare(t *testing.T) {
	assert.Equal(t, -1, MustParse("OEP-1.6.0").Compare(MustParse("OEMetadata-2.0.0")))
	assert.Equal(t, 1, MustParse("OEP-1.5.2").Compare(MustParse("OEP-1.5.0")))
	assert.Equal(t, 0, MustParse("OEP-1.4").Compare(MustParse("OEP-1.4.0")))
	assert.Equal(t, -1, MustParse("OEP-1.3").Compare(MustParse("OEP-1.4.0")))
}

func TestMatches(t *testing.T) {
	node := MustParse("OEMetadata-2.0.1")
	assert.True(t, node.Matches(MustParse("OEMetadata-2.0")))
	assert.True(t, node.Matches(MustParse("OEMetadata-2.0.1")))
	assert.False(t, node.Matches(MustParse("OEMetadata-2.0.0")))
	assert.True(t, MustParse("OEP-1.4").Matches(MustParse("OEP-1.4.0")))
}

func TestOf(t *testing.T) {
	modern := document.FromPairs("metaMetadata", document.FromPairs("metadataVersion", "OEP-1.4.0"))
	v, err := Of(modern)
	require.NoError(t, err)
	assert.Equal(t, "OEP-1.4.0", v.String())

	legacy := document.FromPairs("title", "x", "metadata_version", "1.3")
	v, err = Of(legacy)
	require.NoError(t, err)
	assert.Equal(t, "OEP-1.3", v.Family())

	_, err = Of(document.FromPairs("title", "x"))
	assert.ErrorIs(t, err, apperr.ErrMetadata)

	_, err = Of(document.FromPairs("metaMetadata", document.FromPairs("metadataVersion", "bogus")))
	assert.ErrorIs(t, err, apperr.ErrMetadata)
}
