package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/OpenEnergyPlatform/omi/internal/completeness"
	omiio "github.com/OpenEnergyPlatform/omi/internal/io"
	"github.com/OpenEnergyPlatform/omi/internal/ui"
)

var completenessCmd = &cobra.Command{
	Use:   "completeness",
	Short: "Compute the completeness score of a metadata document",
	Long:  "Reads an OEP or OEMetadata document (json/yaml) and scores it against the field registry of its version.",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logLevel("completeness")
		if err != nil {
			return err
		}
		wireLoggers(cmd.ErrOrStderr(), level)

		inputPath := viper.GetString("completeness.input")
		if inputPath == "" {
			return fmt.Errorf("--input is required")
		}
		inputFormat := viper.GetString("completeness.format")
		if inputFormat == "" {
			inputFormat = "auto"
		}

		doc, err := omiio.ReadDocument(inputPath, inputFormat)
		if err != nil {
			return err
		}

		res, err := completeness.Check(doc)
		if err != nil {
			return err
		}
		if level == levelDebug {
			completeness.PrintReport(res)
		}

		// Machine-readable summary, no styling
		if viper.GetBool("completeness.plain-summary") {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Dataset: %s | Score: %.1f%% | Fields: %d/%d\n", res.DocID, res.Score*100, res.Passed, res.Total)
			for _, r := range res.Resources {
				fmt.Fprintf(out, "Resource: %s | Score: %.1f%% | Fields: %d/%d\n", r.Resource, r.Score*100, r.Passed, r.Total)
			}
			return nil
		}

		completenessUI := ui.NewCompletenessUI(cmd.OutOrStdout(), level == levelQuiet)
		if colorDisabled() {
			completenessUI.PrintSimpleReport(completenessReport(res))
			return nil
		}
		completenessUI.PrintReport(completenessReport(res))
		return nil
	},
}

var (
	completenessInput        string
	completenessFormat       string
	completenessLogLevel     string
	completenessPlainSummary bool
)

func init() {
	completenessCmd.Flags().StringVarP(&completenessInput, "input", "i", "", "Path to the metadata document (required)")
	completenessCmd.Flags().StringVarP(&completenessFormat, "format", "f", "", "Input format: json|yaml|auto")
	completenessCmd.Flags().StringVar(&completenessLogLevel, "log-level", "", "Log level: quiet|standard|debug")
	completenessCmd.Flags().BoolVar(&completenessPlainSummary, "plain-summary", false, "Print plain summary lines (no styling)")

	// Bind all flags to viper for config file support
	viper.BindPFlag("completeness.input", completenessCmd.Flags().Lookup("input"))
	viper.BindPFlag("completeness.format", completenessCmd.Flags().Lookup("format"))
	viper.BindPFlag("completeness.log-level", completenessCmd.Flags().Lookup("log-level"))
	viper.BindPFlag("completeness.plain-summary", completenessCmd.Flags().Lookup("plain-summary"))
}
