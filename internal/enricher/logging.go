package enricher

import (
	"io"

	"github.com/OpenEnergyPlatform/omi/internal/logging"
	"github.com/OpenEnergyPlatform/omi/internal/ui"
)

var logger = &logging.Logger{Prefix: "Enrich:", Color: ui.FgRed}

// SetLogger sets an optional destination for enrichment logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(docID string, format string, args ...any) {
	logger.Logf(docID, format, args...)
}
