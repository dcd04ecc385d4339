// Package oep15 implements the JSON dialects of the OEP-1.5 and OEP-1.6
// metadata generations on top of the oem15 entity set.
package oep15

import (
	"io"

	"github.com/OpenEnergyPlatform/omi/internal/dialect"
	"github.com/OpenEnergyPlatform/omi/internal/document"
	"github.com/OpenEnergyPlatform/omi/internal/logging"
	"github.com/OpenEnergyPlatform/omi/internal/model/oem15"
	"github.com/OpenEnergyPlatform/omi/internal/render"
	"github.com/OpenEnergyPlatform/omi/internal/ui"
)

const (
	IDv15 = "oep-v1.5"
	IDv16 = "oep-v1.6"

	VersionV15 = "OEP-1.5.2"
	VersionV16 = "OEP-1.6.0"
)

// Dialect is the typed dialect shape of the OEP-1.5 family.
type Dialect = dialect.Generic[*document.Dict, *oem15.Metadata, *document.Dict]

// NewV15 returns the OEP-1.5 JSON dialect.
func NewV15() *Dialect {
	return dialect.New[*document.Dict, *oem15.Metadata, *document.Dict](
		IDv15, "OEP metadata 1.5 (JSON)", Parser{ID: IDv15}, Compiler{ID: IDv15, Version: VersionV15}, render.JSON{})
}

// NewV16 returns the OEP-1.6 JSON dialect. It shares the 1.5 layout.
func NewV16() *Dialect {
	return dialect.New[*document.Dict, *oem15.Metadata, *document.Dict](
		IDv16, "OEP metadata 1.6 (JSON)", Parser{ID: IDv16}, Compiler{ID: IDv16, Version: VersionV16}, render.JSON{})
}

var logger = &logging.Logger{Prefix: "OEP:", Color: ui.FgCyan, OmitDoc: true}

// SetLogger sets an optional destination for parser diagnostics.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(format string, args ...any) {
	logger.Logf("", format, args...)
}
