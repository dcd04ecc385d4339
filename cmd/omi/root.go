package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/OpenEnergyPlatform/omi/internal/ui"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "omi",
	Short: "Convert, translate and check OEMetadata documents",
	Long:  longDescription,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.Init(colorDisabled())
		initUIAndBanner(cmd)
	},

	// When invoked without a subcommand, show help (with banner) instead of
	// printing a plain usage output.
	RunE: func(cmd *cobra.Command, args []string) error {
		initUIAndBanner(cmd)
		return cmd.Help()
	},
}

var (
	cfgFile string
	noColor bool
	version string
)

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// GetRootCmd returns the root command for use with fang
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.omi.yaml or ./config/defaults.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
	viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		initUIAndBanner(cmd)
		defaultHelp(cmd, args)
	})

	rootCmd.AddCommand(convertCmd, translateCmd, validateCmd, completenessCmd, enrichCmd, scanCmd, dialectsCmd)
}

func initConfig() {
	// OMI_CONVERT_TO overrides convert.to, and so on.
	viper.SetEnvPrefix("OMI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	found, err := readConfig()
	cobra.CheckErr(err)
	if found {
		announceConfig()
	}
}

// readConfig loads --config, else the first of $HOME/.omi.yaml and
// ./config/defaults.yaml. A missing default file is not an error.
func readConfig() (bool, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		return true, viper.ReadInConfig()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return false, err
	}
	viper.SetConfigType("yaml")
	viper.AddConfigPath(home)
	viper.AddConfigPath("./config")

	for _, name := range []string{".omi", "defaults"} {
		viper.SetConfigName(name)
		err := viper.ReadInConfig()
		if err == nil {
			return true, nil
		}
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return false, err
		}
	}
	return false, nil
}

func colorDisabled() bool {
	return noColor || viper.GetBool("no-color")
}

func announceConfig() {
	fmt.Fprintln(os.Stderr, ui.FormatKeyValue("config", ui.Secondary.Render(viper.ConfigFileUsed())))
}

const longDescription = "Tooling for OEMetadata documents. Converts metadata between versions, translates it between dialects such as JSON and RDF, and checks completeness and validity."

func initUIAndBanner(cmd *cobra.Command) {
	if cmd == nil {
		return
	}
	cmd.Root().Long = ui.RenderGradientBanner(ui.BannerASCII) + "\n" + longDescription
}
