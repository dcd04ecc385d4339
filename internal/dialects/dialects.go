// Package dialects enumerates every dialect the tool ships with.
package dialects

import (
	"sync"

	"github.com/OpenEnergyPlatform/omi/internal/dialect"
	"github.com/OpenEnergyPlatform/omi/internal/dialect/cyclonedx"
	"github.com/OpenEnergyPlatform/omi/internal/dialect/oep"
	"github.com/OpenEnergyPlatform/omi/internal/dialect/oep15"
	"github.com/OpenEnergyPlatform/omi/internal/dialect/rdf"
)

// All returns fresh instances of the built-in dialects.
func All() []dialect.Dialect {
	return []dialect.Dialect{
		oep.NewV13(),
		oep.NewV14(),
		rdf.NewTurtle(),
		rdf.NewNTriples(),
		oep15.NewV15(),
		oep15.NewV16(),
		cyclonedx.New(),
		cyclonedx.NewXML(),
	}
}

// Register adds the built-in dialects to r.
func Register(r *dialect.Registry) error {
	for _, d := range All() {
		if err := r.Register(d); err != nil {
			return err
		}
	}
	return nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *dialect.Registry
)

// Default returns the process-wide registry, populated on first use.
func Default() *dialect.Registry {
	defaultOnce.Do(func() {
		r := dialect.NewRegistry()
		if err := Register(r); err != nil {
			panic(err)
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// ForFamily lists the JSON dialects able to read documents of a version
// family such as "OEP-1.4", most specific first.
func ForFamily(family string) []string {
	switch family {
	case "OEP-1.3":
		return []string{oep.IDv13}
	case "OEP-1.4":
		return []string{oep.IDv14}
	case "OEP-1.5":
		return []string{oep15.IDv15, oep15.IDv16}
	case "OEP-1.6":
		return []string{oep15.IDv16, oep15.IDv15}
	}
	return nil
}
