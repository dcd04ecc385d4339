package completeness

import (
	"strings"

	"github.com/OpenEnergyPlatform/omi/internal/metadata"
)

// PrintReport writes the report to the configured logger writer.
// If no logger writer is configured, it produces no output.
func PrintReport(r Report) {
	logf("score=%.1f%% (%d/%d)", r.Score*100, r.Passed, r.Total)

	if len(r.MissingRequired) > 0 {
		logf("missing required: %s", joinKeys(r.MissingRequired))
	}
	if len(r.MissingOptional) > 0 {
		logf("missing optional: %s", joinKeys(r.MissingOptional))
	}
	for _, res := range r.Resources {
		logf("resource %s score=%.1f%% (%d/%d)", res.Resource, res.Score*100, res.Passed, res.Total)
		if len(res.MissingRequired) > 0 {
			logf("resource %s missing required: %s", res.Resource, joinKeys(res.MissingRequired))
		}
	}
}

func joinKeys(keys []metadata.Key) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, ", ")
}
