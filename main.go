package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/fang"

	cmd "github.com/OpenEnergyPlatform/omi/cmd/omi"
	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/buildinfo"
	"github.com/OpenEnergyPlatform/omi/internal/ui"
)

func main() {
	cmd.SetVersion(buildinfo.GetVersion())
	if err := fang.Execute(
		context.Background(),
		cmd.GetRootCmd(),
		fang.WithColorSchemeFunc(ui.FangColorScheme),
	); err != nil {
		// User deliberately cancelled an interactive flow, not a failure.
		if errors.Is(err, apperr.ErrCancelled) {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
