package oep

import (
	"io"

	"github.com/OpenEnergyPlatform/omi/internal/logging"
	"github.com/OpenEnergyPlatform/omi/internal/ui"
)

var logger = &logging.Logger{Prefix: "OEP:", Color: ui.FgCyan, OmitDoc: true}

// SetLogger sets an optional destination for parser diagnostics.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(format string, args ...any) {
	logger.Logf("", format, args...)
}
