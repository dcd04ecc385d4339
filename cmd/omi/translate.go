package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/dialects"
	omiio "github.com/OpenEnergyPlatform/omi/internal/io"
	"github.com/OpenEnergyPlatform/omi/internal/ui"
)

var (
	translateInput    string
	translateFrom     string
	translateTo       string
	translateOutput   string
	translateLogLevel string
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate a metadata document between dialects",
	Long: `Parses a document with one dialect and renders it with another, for
example OEP-1.4 JSON to Turtle. Both dialects must share a metadata model.
Run 'omi dialects' for the identifiers. --from may be left out for .ttl,
.nt and .xml inputs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logLevel("translate")
		if err != nil {
			return err
		}
		wireLoggers(cmd.ErrOrStderr(), level)

		input := viper.GetString("translate.input")
		if input == "" {
			return apperr.Userf("--input is required")
		}
		to := strings.TrimSpace(viper.GetString("translate.to"))
		if to == "" {
			return apperr.Userf("--to is required")
		}
		from := strings.TrimSpace(viper.GetString("translate.from"))
		if from == "" {
			guess, ok := omiio.DialectFromPath(input)
			if !ok {
				return apperr.Userf("cannot infer the dialect of %s, pass --from", input)
			}
			from = guess
		}

		data, err := os.ReadFile(input)
		if err != nil {
			return err
		}

		output := viper.GetString("translate.output")
		var spinner *ui.SimpleSpinner
		if output != "" && level != levelQuiet {
			spinner = ui.NewSimpleSpinner(cmd.ErrOrStderr(), fmt.Sprintf("Translating %s from %s to %s", input, from, to))
			spinner.Start()
		}
		text, err := dialects.Default().Translate(data, from, to)
		if err == nil && output != "" {
			err = omiio.WriteText(output, text, to)
		}
		if spinner != nil {
			if err != nil {
				spinner.Stop(false, err.Error())
			} else {
				spinner.Stop(true, fmt.Sprintf("Translated %s (%s) to %s (%s)", input, from, output, to))
			}
		}
		if err != nil {
			return err
		}

		if output == "" {
			fmt.Fprint(cmd.OutOrStdout(), text)
			if !strings.HasSuffix(text, "\n") {
				fmt.Fprintln(cmd.OutOrStdout())
			}
		}
		return nil
	},
}

func init() {
	translateCmd.Flags().StringVarP(&translateInput, "input", "i", "", "Document to translate (required)")
	translateCmd.Flags().StringVar(&translateFrom, "from", "", "Dialect of the input")
	translateCmd.Flags().StringVar(&translateTo, "to", "", "Dialect of the output (required)")
	translateCmd.Flags().StringVarP(&translateOutput, "output", "o", "", "Output file (default: stdout)")
	translateCmd.Flags().StringVar(&translateLogLevel, "log-level", "", "Log level: quiet|standard|debug")

	viper.BindPFlag("translate.input", translateCmd.Flags().Lookup("input"))
	viper.BindPFlag("translate.from", translateCmd.Flags().Lookup("from"))
	viper.BindPFlag("translate.to", translateCmd.Flags().Lookup("to"))
	viper.BindPFlag("translate.output", translateCmd.Flags().Lookup("output"))
	viper.BindPFlag("translate.log-level", translateCmd.Flags().Lookup("log-level"))
}
