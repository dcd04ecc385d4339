// Package oep implements the JSON dialects of the first OEP metadata
// generations (1.3 and 1.4). Both share the internal model.
package oep

import (
	"github.com/OpenEnergyPlatform/omi/internal/dialect"
	"github.com/OpenEnergyPlatform/omi/internal/document"
	"github.com/OpenEnergyPlatform/omi/internal/model"
	"github.com/OpenEnergyPlatform/omi/internal/render"
)

const (
	IDv13 = "oep-v1.3"
	IDv14 = "oep-v1.4"
)

// Dialect is the typed dialect shape of the OEP JSON dialects.
type Dialect = dialect.Generic[*document.Dict, *model.Metadata, *document.Dict]

// NewV13 returns the OEP-1.3 JSON dialect.
func NewV13() *Dialect {
	return dialect.New[*document.Dict, *model.Metadata, *document.Dict](
		IDv13, "OEP metadata 1.3 (JSON)", ParserV13{}, CompilerV13{}, render.JSON{})
}

// NewV14 returns the OEP-1.4 JSON dialect.
func NewV14() *Dialect {
	return dialect.New[*document.Dict, *model.Metadata, *document.Dict](
		IDv14, "OEP metadata 1.4 (JSON)", ParserV14{}, CompilerV14{}, render.JSON{})
}
