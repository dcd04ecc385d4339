package metadata

import (
	"fmt"
	"io"
	"strings"

	"github.com/OpenEnergyPlatform/omi/internal/logging"
	"github.com/OpenEnergyPlatform/omi/internal/ui"
)

var logger = &logging.Logger{Prefix: "Meta:", Color: ui.FgRed}

// SetLogger sets an optional destination for metadata logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(docID string, format string, args ...any) {
	logger.Logf(docID, format, args...)
}

func summarizeValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "<nil>"
	case string:
		s := strings.TrimSpace(t)
		if len(s) > 80 {
			s = s[:77] + "..."
		}
		return fmt.Sprintf("%q", s)
	case []any:
		return fmt.Sprintf("list(len=%d)", len(t))
	default:
		return fmt.Sprintf("%T", v)
	}
}
