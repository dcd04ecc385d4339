package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenEnergyPlatform/omi/internal/conversion"
	"github.com/OpenEnergyPlatform/omi/internal/dialects"
	"github.com/OpenEnergyPlatform/omi/internal/ui"
)

var dialectsCmd = &cobra.Command{
	Use:   "dialects",
	Short: "List the available dialects and conversion targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := dialects.Default()
		var sb strings.Builder
		sb.WriteString(ui.Title.Render("Dialects"))
		sb.WriteString("\n")
		for _, id := range reg.Names() {
			d, err := reg.Get(id)
			if err != nil {
				return err
			}
			mode := "read/write"
			if !d.CanParse() {
				mode = "write only"
			}
			fmt.Fprintf(&sb, "%s %s %s\n", ui.GetBullet(), ui.Highlight.Render(id), ui.Dim.Render(d.Description()+" ("+mode+")"))
		}
		sb.WriteString("\n")
		sb.WriteString(ui.Title.Render("Conversion targets"))
		sb.WriteString("\n")
		for _, t := range conversion.Default().Targets() {
			fmt.Fprintf(&sb, "%s %s\n", ui.GetBullet(), t)
		}
		fmt.Fprint(cmd.OutOrStdout(), sb.String())
		return nil
	},
}
