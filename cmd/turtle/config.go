package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/toxic-turtle/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the config file, environment and flags
have been applied. With --defaults, print the built-in configuration file,
a starting point for ~/.turtle/config.yaml.`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in default config file")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagDefaults {
		fmt.Print(string(config.DefaultYAML()))
		return
	}

	data, err := config.Marshal(loadConfig())
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Print(string(data))
}
