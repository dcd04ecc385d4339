package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/conversion"
	omiio "github.com/OpenEnergyPlatform/omi/internal/io"
	"github.com/OpenEnergyPlatform/omi/internal/specs"
)

func fixedConverter() *conversion.Converter {
	return conversion.New(conversion.Options{Now: func() time.Time {
		return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	}})
}

func writeExample(t *testing.T, dir, family string) string {
	t.Helper()
	spec, err := specs.GetFamily(family)
	require.NoError(t, err)
	p := filepath.Join(dir, family+".json")
	require.NoError(t, os.WriteFile(p, spec.ExampleBytes(), 0o644))
	return p
}

func TestConvertFiles(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	good := writeExample(t, in, "OEP-1.4")
	bad := filepath.Join(in, "broken.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))

	var events []ProgressEventType
	results, err := ConvertFiles(context.Background(), []string{good, " ", bad}, Options{
		Target:     "OEP-1.6",
		OutDir:     out,
		Converter:  fixedConverter(),
		OnProgress: func(e ProgressEvent) { events = append(events, e.Type) },
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 1, Failed(results))

	ok := results[0]
	require.NoError(t, ok.Err)
	assert.Equal(t, "OEP-1.4.0", ok.From)
	assert.Equal(t, "OEP-1.6.0", ok.To)
	assert.Equal(t, filepath.Join(out, "OEP-1.4.json"), ok.Output)

	written, err := omiio.ReadDocument(ok.Output, "json")
	require.NoError(t, err)
	assert.Equal(t, "OEP-1.6.0", written.GetDict("metaMetadata").GetString("metadataVersion"))

	assert.ErrorIs(t, results[1].Err, apperr.ErrDecode)
	assert.Equal(t, []ProgressEventType{
		EventReadStart, EventReadComplete, EventConvertComplete, EventRenderComplete, EventWriteComplete, EventFileComplete,
		EventReadStart, EventError,
	}, events)
}

func TestConvertFilesWithoutOutDir(t *testing.T) {
	in := t.TempDir()
	p := writeExample(t, in, "OEP-1.5")
	results, err := ConvertFiles(context.Background(), []string{p}, Options{Target: "OEP-1.6.0", Converter: fixedConverter()})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Output)
	assert.Contains(t, results[0].Text, `"metadataVersion": "OEP-1.6.0"`)
}

func TestConvertFilesNoPath(t *testing.T) {
	p := writeExample(t, t.TempDir(), "OEP-1.6")
	results, err := ConvertFiles(context.Background(), []string{p}, Options{Target: "OEP-1.4.0"})
	require.NoError(t, err)
	assert.ErrorIs(t, results[0].Err, apperr.ErrConversion)
}

func TestConvertFilesRequiresTarget(t *testing.T) {
	_, err := ConvertFiles(context.Background(), nil, Options{})
	assert.Error(t, err)
}

func TestConvertFilesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := ConvertFiles(ctx, []string{"a.json"}, Options{Target: "OEP-1.6"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestProgressEventTypeString(t *testing.T) {
	assert.Equal(t, "written", EventWriteComplete.String())
	assert.Equal(t, "unknown", ProgressEventType(99).String())
}
