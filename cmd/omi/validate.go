package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	omiio "github.com/OpenEnergyPlatform/omi/internal/io"
	"github.com/OpenEnergyPlatform/omi/internal/ui"
	"github.com/OpenEnergyPlatform/omi/internal/validator"
)

var (
	validateInput        string
	validateFormat       string
	validateSchema       string
	validateStrict       bool
	validateMinScore     float64
	validateLogLevel     string
	validatePlainSummary bool
)

var validateSteps = []string{"Read document", "Load schema", "Validate"}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a metadata document",
	Long: `Checks that a metadata document declares a supported version, parses with
the dialects of its version and, with --schema, conforms to a JSON schema.
Strict mode also fails on missing required fields.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logLevel("validate")
		if err != nil {
			return err
		}
		wireLoggers(cmd.ErrOrStderr(), level)

		input := viper.GetString("validate.input")
		if input == "" {
			return fmt.Errorf("--input is required")
		}
		format := viper.GetString("validate.format")
		if format == "" {
			format = "auto"
		}

		minScore := viper.GetFloat64("validate.min-score")
		if minScore < 0 || minScore > 1 {
			return fmt.Errorf("invalid --min-score %.2f (expected 0.0-1.0)", minScore)
		}

		plain := viper.GetBool("validate.plain-summary")
		schemaPath := strings.TrimSpace(viper.GetString("validate.schema"))

		// Live progress only for interactive, styled output
		var tracker *ui.ProgressTracker
		if level == levelStandard && !plain && !colorDisabled() {
			tracker = ui.NewProgressTracker("Validating "+input, validateSteps)
			tracker.Start()
		}
		step := func(i int, status ui.Status, msg string) {
			if tracker != nil {
				tracker.UpdateStep(i, status, msg)
			}
		}
		fail := func(i int, err error) error {
			step(i, ui.StatusFailed, err.Error())
			if tracker != nil {
				tracker.Complete(err)
			}
			return err
		}

		step(0, ui.StatusRunning, input)
		doc, err := omiio.ReadDocument(input, format)
		if err != nil {
			return fail(0, fmt.Errorf("failed to read document: %w", err))
		}
		step(0, ui.StatusComplete, "")

		opts := validator.ValidationOptions{
			StrictMode:           viper.GetBool("validate.strict"),
			MinCompletenessScore: minScore,
		}
		if schemaPath != "" {
			step(1, ui.StatusRunning, schemaPath)
			schema, err := validator.LoadSchema(schemaPath)
			if err != nil {
				return fail(1, err)
			}
			opts.Schema = schema
			step(1, ui.StatusComplete, "")
		} else {
			step(1, ui.StatusSkipped, "no --schema")
		}

		step(2, ui.StatusRunning, "")
		result := validator.Validate(doc, opts)
		step(2, ui.StatusComplete, "")
		if tracker != nil {
			tracker.Complete(nil)
		}
		if level == levelDebug {
			validator.PrintReport(result)
		}

		validationUI := ui.NewValidationUI(cmd.OutOrStdout(), level == levelQuiet)
		switch {
		case plain:
			fmt.Fprintln(cmd.OutOrStdout(), validator.FormatSummary(result))
		case colorDisabled():
			validationUI.PrintSimpleReport(validationReport(result))
		default:
			validationUI.PrintReport(validationReport(result))
		}

		if !result.Valid {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "Path to the metadata document (required)")
	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", "auto", "Input format: json|yaml|auto")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "JSON schema file or URL to validate against")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Strict mode: fail on missing required fields")
	validateCmd.Flags().Float64Var(&validateMinScore, "min-score", 0.0, "Minimum completeness score (0.0-1.0)")
	validateCmd.Flags().StringVar(&validateLogLevel, "log-level", "", "Log level: quiet|standard|debug")
	validateCmd.Flags().BoolVar(&validatePlainSummary, "plain-summary", false, "Print a single-line plain summary (no styling)")

	// Bind flags to viper for config file support
	viper.BindPFlag("validate.input", validateCmd.Flags().Lookup("input"))
	viper.BindPFlag("validate.format", validateCmd.Flags().Lookup("format"))
	viper.BindPFlag("validate.schema", validateCmd.Flags().Lookup("schema"))
	viper.BindPFlag("validate.strict", validateCmd.Flags().Lookup("strict"))
	viper.BindPFlag("validate.min-score", validateCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("validate.log-level", validateCmd.Flags().Lookup("log-level"))
	viper.BindPFlag("validate.plain-summary", validateCmd.Flags().Lookup("plain-summary"))
}
