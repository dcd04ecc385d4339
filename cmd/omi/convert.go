package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/OpenEnergyPlatform/omi/internal/apperr"
	"github.com/OpenEnergyPlatform/omi/internal/conversion"
	"github.com/OpenEnergyPlatform/omi/internal/generator"
	omiio "github.com/OpenEnergyPlatform/omi/internal/io"
	"github.com/OpenEnergyPlatform/omi/internal/render"
	"github.com/OpenEnergyPlatform/omi/internal/scanner"
	"github.com/OpenEnergyPlatform/omi/internal/ui"
)

var (
	convertInputs   []string
	convertDir      string
	convertTo       string
	convertOutput   string
	convertOutDir   string
	convertFormat   string
	convertForce    bool
	convertLogLevel string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert metadata documents to another metadata version",
	Long: `Converts OEP and OEMetadata documents to a newer metadata version by
applying the registered conversion steps one after another.

A single input is written to --output, or to stdout when no output is given.
Several inputs, or every document found below --dir, are converted as a
batch into --out-dir. Without --to the target version is chosen from a list.`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	level, err := logLevel("convert")
	if err != nil {
		return err
	}
	quiet := level == levelQuiet
	wireLoggers(cmd.ErrOrStderr(), level)

	inputs := append(viper.GetStringSlice("convert.input"), args...)
	if dir := viper.GetString("convert.dir"); dir != "" {
		docs, err := scanner.Scan(dir)
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			return apperr.Userf("no metadata documents found in %s", dir)
		}
		inputs = append(inputs, scanner.Paths(docs)...)
	}
	if len(inputs) == 0 {
		return apperr.Userf("at least one --input or --dir is required")
	}

	conv := conversion.Default()
	target := strings.TrimSpace(viper.GetString("convert.to"))
	if target == "" {
		target, err = selectTarget(conv.Targets())
		if err != nil {
			return err
		}
	}

	outDir := viper.GetString("convert.out-dir")
	output := viper.GetString("convert.output")
	if len(inputs) > 1 || outDir != "" || viper.GetString("convert.dir") != "" {
		if output != "" {
			return apperr.Userf("--output takes a single input, use --out-dir for several")
		}
		if outDir == "" {
			return apperr.Userf("--out-dir is required when converting several inputs")
		}
		return convertBatch(cmd, inputs, target, outDir, quiet)
	}
	return convertSingle(cmd, conv, inputs[0], target, output, quiet)
}

func convertSingle(cmd *cobra.Command, conv *conversion.Converter, input, target, output string, quiet bool) error {
	format := viper.GetString("convert.format")
	if format == "" {
		format = "auto"
	}
	doc, err := omiio.ReadDocument(input, format)
	if err != nil {
		return err
	}
	out, err := conv.Convert(doc, target)
	if err != nil {
		return err
	}
	text, err := render.JSON{}.Render(out)
	if err != nil {
		return err
	}

	if output == "" {
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}
	if err := confirmOverwrite(output); err != nil {
		return err
	}
	if err := omiio.WriteText(output, text, ""); err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.FormatStatus("success", fmt.Sprintf("Converted %s to %s: %s", input, target, output)))
	}
	return nil
}

func convertBatch(cmd *cobra.Command, inputs []string, target, outDir string, quiet bool) error {
	convertUI := ui.NewConvertUI(cmd.OutOrStdout(), quiet)
	convertUI.LogStep("info", fmt.Sprintf("%d document(s) to convert", len(inputs)))
	convertUI.StartWorkflow(inputs, target)

	results, err := generator.ConvertFiles(cmd.Context(), inputs, generator.Options{
		Target: target,
		OutDir: outDir,
		OnProgress: func(ev generator.ProgressEvent) {
			switch ev.Type {
			case generator.EventReadStart:
				convertUI.StartFile(ev.Path)
			case generator.EventConvertComplete:
				convertUI.UpdateFile(ev.Path, "converted to "+ev.Message)
			case generator.EventWriteComplete:
				convertUI.CompleteFile(ev.Path, ev.Message)
			case generator.EventError:
				convertUI.FailFile(ev.Path, ev.Error)
			}
		},
	})
	convertUI.FinishWorkflow()
	if err != nil {
		return err
	}

	failed := generator.Failed(results)
	convertUI.PrintSummary(len(results)-failed, failed, outDir, target)
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to convert", failed, len(results))
	}
	return nil
}

// selectTarget asks for the target version with a huh select.
func selectTarget(targets []string) (string, error) {
	if len(targets) == 0 {
		return "", apperr.Userf("no conversion targets registered")
	}
	options := make([]huh.Option[string], len(targets))
	for i, t := range targets {
		options[i] = huh.NewOption(t, t)
	}
	target := targets[len(targets)-1]
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Target metadata version").
				Options(options...).
				Value(&target),
		),
	).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return "", apperr.ErrCancelled
	}
	if err != nil {
		return "", err
	}
	return target, nil
}

// confirmOverwrite asks before replacing an existing file unless --force
// is set.
func confirmOverwrite(path string) error {
	if viper.GetBool("convert.force") {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Overwrite %s?", path)).
				Value(&ok).
				Affirmative("Yes").
				Negative("No"),
		),
	).Run()
	if errors.Is(err, huh.ErrUserAborted) || (err == nil && !ok) {
		return apperr.ErrCancelled
	}
	return err
}

func init() {
	convertCmd.Flags().StringSliceVarP(&convertInputs, "input", "i", nil, "Metadata document(s) to convert")
	convertCmd.Flags().StringVarP(&convertDir, "dir", "d", "", "Convert every metadata document found in this directory")
	convertCmd.Flags().StringVarP(&convertTo, "to", "t", "", "Target metadata version, e.g. OEMetadata-2.0")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output file for a single input (default: stdout)")
	convertCmd.Flags().StringVar(&convertOutDir, "out-dir", "", "Output directory for batch conversion")
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "auto", "Input format: json|yaml|auto")
	convertCmd.Flags().BoolVar(&convertForce, "force", false, "Overwrite existing output without asking")
	convertCmd.Flags().StringVar(&convertLogLevel, "log-level", "", "Log level: quiet|standard|debug")

	viper.BindPFlag("convert.input", convertCmd.Flags().Lookup("input"))
	viper.BindPFlag("convert.dir", convertCmd.Flags().Lookup("dir"))
	viper.BindPFlag("convert.to", convertCmd.Flags().Lookup("to"))
	viper.BindPFlag("convert.output", convertCmd.Flags().Lookup("output"))
	viper.BindPFlag("convert.out-dir", convertCmd.Flags().Lookup("out-dir"))
	viper.BindPFlag("convert.format", convertCmd.Flags().Lookup("format"))
	viper.BindPFlag("convert.force", convertCmd.Flags().Lookup("force"))
	viper.BindPFlag("convert.log-level", convertCmd.Flags().Lookup("log-level"))
}
