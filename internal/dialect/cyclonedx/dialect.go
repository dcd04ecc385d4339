package cyclonedx

import (
	"bytes"
	"strings"
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"

	"github.com/OpenEnergyPlatform/omi/internal/dialect"
	"github.com/OpenEnergyPlatform/omi/internal/model"
)

const (
	ID    = "cyclonedx-v1.6"
	IDXML = "cyclonedx-xml-v1.6"
)

// Dialect is the typed dialect shape of the CycloneDX dialects.
type Dialect = dialect.Generic[*cdx.BOM, *model.Metadata, *cdx.BOM]

// Renderer encodes BOMs as CycloneDX 1.6.
type Renderer struct {
	Format cdx.BOMFileFormat
}

func (r Renderer) Render(bom *cdx.BOM) (string, error) {
	var buf bytes.Buffer
	enc := cdx.NewBOMEncoder(&buf, r.Format)
	enc.SetPretty(true)
	if err := enc.EncodeVersion(bom, cdx.SpecVersion1_6); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// New returns the CycloneDX JSON dialect.
func New() *Dialect {
	return dialect.New[*cdx.BOM, *model.Metadata, *cdx.BOM](
		ID, "CycloneDX 1.6 BOM (JSON)",
		Parser{ID: ID, Format: cdx.BOMFileFormatJSON},
		Compiler{Now: time.Now},
		Renderer{Format: cdx.BOMFileFormatJSON})
}

// NewXML returns the CycloneDX XML dialect.
func NewXML() *Dialect {
	return dialect.New[*cdx.BOM, *model.Metadata, *cdx.BOM](
		IDXML, "CycloneDX 1.6 BOM (XML)",
		Parser{ID: IDXML, Format: cdx.BOMFileFormatXML},
		Compiler{Now: time.Now},
		Renderer{Format: cdx.BOMFileFormatXML})
}
