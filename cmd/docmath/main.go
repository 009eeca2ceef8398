// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docmath CLI.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// logLevel backs the --verbose flag; debug when raised.
var logLevel = new(slog.LevelVar)

// rootCmd is the base command for the docmath CLI. Extraction runs on the
// root command itself; version and catalog are subcommands.
var rootCmd = &cobra.Command{
	Use:   "docmath <document.docx>",
	Short: "Extract mathematical equations from Word documents",
	Long: `docmath opens a .docx container, scans word/document.xml for Office Math
Markup (oMath) elements and equation-bearing embedded objects, and prints
the deduplicated equations to the console or a file.

Equations come back as cleaned plain text by default; use --raw for the
verbatim serialized markup.`,
	Args: cobra.ExactArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose || viper.GetBool("verbose") {
			logLevel.Set(slog.LevelDebug)
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		})))
	},
	RunE:          runExtract,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docmath.yaml or ~/.config/docmath/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose (debug) logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docmath")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docmath"))
		}
	}

	viper.SetEnvPrefix("DOCMATH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
