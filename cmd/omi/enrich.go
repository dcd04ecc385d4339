package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/enricher"
	omiio "github.com/OpenEnergyPlatform/omi/internal/io"
	"github.com/OpenEnergyPlatform/omi/internal/render"
	"github.com/OpenEnergyPlatform/omi/internal/ui"
)

var (
	enrichInput        string
	enrichOutput       string
	enrichFormat       string
	enrichStrategy     string
	enrichConfigFile   string
	enrichRequiredOnly bool
	enrichMinWeight    float64
	enrichNoPreview    bool
	enrichLogLevel     string
)

// enrichCmd represents the enrich command
var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Fill missing fields of a metadata document",
	Long: `Fills fields the completeness check reports as missing, through
interactive prompts or from values under the 'enrich' key of a configuration
file:

  enrich:
    title: My dataset
    resources:
      model_draft_my_table:
        description: Hourly load`,
	RunE: func(cmd *cobra.Command, args []string) error {
		strategy := strings.ToLower(strings.TrimSpace(viper.GetString("enrich.strategy")))
		if strategy == "" {
			strategy = "interactive"
		}
		switch strategy {
		case "interactive", "file":
			// ok
		default:
			return apperr.Userf("invalid --strategy %q (expected interactive|file)", strategy)
		}

		level, err := logLevel("enrich")
		if err != nil {
			return err
		}
		wireLoggers(cmd.ErrOrStderr(), level)

		input := viper.GetString("enrich.input")
		if input == "" {
			return apperr.Userf("--input is required")
		}
		format := viper.GetString("enrich.format")
		if format == "" {
			format = "auto"
		}
		doc, err := omiio.ReadDocument(input, format)
		if err != nil {
			return fmt.Errorf("failed to read input document: %w", err)
		}

		var values enricher.ValueGetter
		if strategy == "file" {
			if enrichConfigFile == "" {
				return apperr.Userf("--file is required when using --strategy file")
			}
			v := viper.New()
			v.SetConfigFile(enrichConfigFile)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to load enrichment file: %w", err)
			}
			values = v
		}

		e := enricher.New(enricher.Options{
			Writer: cmd.ErrOrStderr(),
			Config: enricher.Config{
				Strategy:     strategy,
				RequiredOnly: viper.GetBool("enrich.required-only"),
				MinWeight:    viper.GetFloat64("enrich.min-weight"),
				NoPreview:    viper.GetBool("enrich.no-preview"),
			},
			Values: values,
		})
		enriched, changes, err := e.Enrich(doc)
		if err != nil {
			return err
		}

		text, err := render.JSON{}.Render(enriched)
		if err != nil {
			return err
		}
		outPath := viper.GetString("enrich.output")
		if outPath == "" {
			outPath = omiio.OutputPath(input, filepath.Dir(input), "")
		}
		if err := omiio.WriteText(outPath, text, ""); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}

		if level != levelQuiet {
			msg := fmt.Sprintf("Enriched %d field(s), saved to %s", len(changes), outPath)
			fmt.Fprintln(cmd.OutOrStdout(), ui.FormatStatus("success", msg))
		}
		return nil
	},
}

func init() {
	enrichCmd.Flags().StringVarP(&enrichInput, "input", "i", "", "Path to the metadata document (required)")
	enrichCmd.Flags().StringVarP(&enrichOutput, "output", "o", "", "Output path (default: overwrite the input, as JSON)")
	enrichCmd.Flags().StringVarP(&enrichFormat, "format", "f", "auto", "Input format: json|yaml|auto")
	enrichCmd.Flags().StringVar(&enrichStrategy, "strategy", "interactive", "Enrichment strategy: interactive|file")
	enrichCmd.Flags().StringVar(&enrichConfigFile, "file", "", "Enrichment values file (for file strategy)")
	enrichCmd.Flags().BoolVar(&enrichRequiredOnly, "required-only", false, "Only enrich required fields")
	enrichCmd.Flags().Float64Var(&enrichMinWeight, "min-weight", 0.0, "Minimum weight threshold for fields to enrich")
	enrichCmd.Flags().BoolVar(&enrichNoPreview, "no-preview", false, "Skip preview before saving")
	enrichCmd.Flags().StringVar(&enrichLogLevel, "log-level", "", "Log level: quiet|standard|debug")

	viper.BindPFlag("enrich.input", enrichCmd.Flags().Lookup("input"))
	viper.BindPFlag("enrich.output", enrichCmd.Flags().Lookup("output"))
	viper.BindPFlag("enrich.format", enrichCmd.Flags().Lookup("format"))
	viper.BindPFlag("enrich.strategy", enrichCmd.Flags().Lookup("strategy"))
	viper.BindPFlag("enrich.required-only", enrichCmd.Flags().Lookup("required-only"))
	viper.BindPFlag("enrich.min-weight", enrichCmd.Flags().Lookup("min-weight"))
	viper.BindPFlag("enrich.no-preview", enrichCmd.Flags().Lookup("no-preview"))
	viper.BindPFlag("enrich.log-level", enrichCmd.Flags().Lookup("log-level"))
}
