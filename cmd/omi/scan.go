package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/scanner"
	"github.com/OpenEnergyPlatform/omi/internal/ui"
)

var (
	scanDir      string
	scanLogLevel string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Find metadata documents in a directory",
	Long:  "Walks a directory and lists the JSON and YAML files that declare an OEP or OEMetadata version. Use 'convert --dir' to convert them all.",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logLevel("scan")
		if err != nil {
			return err
		}
		dir := viper.GetString("scan.dir")
		if len(args) > 0 {
			dir = args[0]
		}
		if dir == "" {
			return apperr.Userf("--dir is required")
		}

		docs, err := scanner.Scan(dir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if level == levelQuiet {
			for _, d := range docs {
				fmt.Fprintf(out, "%s\t%s\n", d.Path, d.Version)
			}
			return nil
		}
		var sb strings.Builder
		sb.WriteString(ui.Title.Render(fmt.Sprintf("Found %d metadata document(s) in %s", len(docs), dir)))
		sb.WriteString("\n")
		for _, d := range docs {
			fmt.Fprintf(&sb, "%s %s %s", ui.GetBullet(), ui.Highlight.Render(d.Path), ui.Dim.Render(d.Version))
			if d.Name != "" {
				sb.WriteString(" " + ui.Muted.Render(d.Name))
			}
			sb.WriteString("\n")
		}
		fmt.Fprint(out, sb.String())
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVarP(&scanDir, "dir", "d", "", "Directory to scan")
	scanCmd.Flags().StringVar(&scanLogLevel, "log-level", "", "Log level: quiet|standard|debug")

	viper.BindPFlag("scan.dir", scanCmd.Flags().Lookup("dir"))
	viper.BindPFlag("scan.log-level", scanCmd.Flags().Lookup("log-level"))
}
