package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"

	"github.com/OpenEnergyPlatform/omi/internal/completeness"
	"github.com/OpenEnergyPlatform/omi/internal/conversion"
	"github.com/OpenEnergyPlatform/omi/internal/dialect/oep"
	"github.com/OpenEnergyPlatform/omi/internal/dialect/oep15"
	"github.com/OpenEnergyPlatform/omi/internal/enricher"
	"github.com/OpenEnergyPlatform/omi/internal/generator"
	"github.com/OpenEnergyPlatform/omi/internal/metadata"
	"github.com/OpenEnergyPlatform/omi/internal/validator"
)

const (
	levelQuiet    = "quiet"
	levelStandard = "standard"
	levelDebug    = "debug"
)

// logLevel resolves <command>.log-level from config, env or flag.
func logLevel(command string) (string, error) {
	level := strings.ToLower(strings.TrimSpace(viper.GetString(command + ".log-level")))
	if level == "" {
		level = levelStandard
	}
	switch level {
	case levelQuiet, levelStandard, levelDebug:
		return level, nil
	}
	return "", fmt.Errorf("invalid --log-level %q (expected quiet|standard|debug)", level)
}

// wireLoggers points the package loggers at w. Standard enables the
// packages doing the work of a command; debug adds parsers and the
// field registry.
func wireLoggers(w io.Writer, level string) {
	if level == levelQuiet {
		return
	}
	conversion.SetLogger(w)
	generator.SetLogger(w)
	validator.SetLogger(w)
	completeness.SetLogger(w)
	enricher.SetLogger(w)
	if level == levelDebug {
		oep.SetLogger(w)
		oep15.SetLogger(w)
		metadata.SetLogger(w)
	}
}
