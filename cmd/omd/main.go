// Copyright OMD Tools Inc., 2026. All rights reserved.

// Package main is the entry point for the omd CLI, the conversion backend
// of the OhMyMarkdown editor. It converts documents between Markdown and
// other formats by driving pandoc and wkhtmltopdf.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the omd CLI.
var rootCmd = &cobra.Command{
	Use:   "omd",
	Short: "Convert documents between Markdown and other formats",
	Long: `omd is the conversion backend of the OhMyMarkdown editor. It imports
Word, HTML, ODT, LaTeX, EPUB, and PDF documents into Markdown, and exports
Markdown back to those formats.

Imports and exports shell out to pandoc; PDF export renders through
wkhtmltopdf. PDF import needs neither: the embedded text layer is extracted
directly and a heading heuristic rebuilds the document structure. Use
"omd tools" to check for and install the external tools.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./omd.yaml or ~/.config/omd/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("omd")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "omd"))
		}
	}

	viper.SetEnvPrefix("OMD")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// viperString returns the configured value for key, or fallback when the
// config does not set it.
func viperString(key, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
