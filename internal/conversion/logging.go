package conversion

import (
	"io"

	"github.com/OpenEnergyPlatform/omi/internal/logging"
	"github.com/OpenEnergyPlatform/omi/internal/ui"
)

var logger = &logging.Logger{Prefix: "Conversion:", Color: ui.FgMagenta}

// SetLogger sets an optional destination for conversion logs.
// When set to nil, conversion logs are disabled.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(docID string, format string, args ...any) {
	logger.Logf(docID, format, args...)
}
