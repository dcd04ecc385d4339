package generator

import (
	"io"

	"github.com/OpenEnergyPlatform/omi/internal/logging"
	"github.com/OpenEnergyPlatform/omi/internal/ui"
)

var logger = &logging.Logger{Prefix: "Generator:", Color: ui.FgCyan}

// SetLogger sets an optional destination for batch conversion logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(docID string, format string, args ...any) {
	logger.Logf(docID, format, args...)
}
