package completeness

import (
	"io"

	"github.com/OpenEnergyPlatform/omi/internal/logging"
	"github.com/OpenEnergyPlatform/omi/internal/ui"
)

var logger = &logging.Logger{Prefix: "Completeness Report:", Color: ui.FgYellow, OmitDoc: true}

// SetLogger sets an optional destination for completeness output/logs.
// When set to nil, completeness output/logs are disabled.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(format string, args ...any) {
	logger.Logf("", format, args...)
}
