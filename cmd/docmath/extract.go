// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docmath/internal/catalog"
	"github.com/pdiddy/docmath/internal/docx"
	"github.com/pdiddy/docmath/internal/report"
	"github.com/pdiddy/docmath/pkg/types"
)

func init() {
	rootCmd.Flags().StringP("output", "o", "", "write results to a file instead of standard output")
	rootCmd.Flags().BoolP("raw", "r", false, "return raw XML without cleaning")
	rootCmd.Flags().String("format", "", "output format: text, json, or yaml (default text)")
	rootCmd.Flags().String("catalog", "", "also record the run into a SQLite catalog at this path")
}

// runExtract implements the root command: validate the input, scan the
// document, and emit the results.
func runExtract(cmd *cobra.Command, args []string) error {
	logger := slog.Default()
	path := args[0]

	// Input errors are the only exit-1 case; everything past this point
	// degrades to an empty result instead of failing.
	if err := validateInput(path); err != nil {
		return err
	}

	raw, _ := cmd.Flags().GetBool("raw")
	result := docx.New(docx.Options{Raw: raw, Logger: logger}).Extract(path)

	if catalogPath := stringSetting(cmd, "catalog"); catalogPath != "" {
		if err := recordRun(catalogPath, result); err != nil {
			logger.Error("recording run failed", "catalog", catalogPath, "error", err)
		} else {
			logger.Info("run recorded", "catalog", catalogPath)
		}
	}

	format, err := report.ParseFormat(stringSetting(cmd, "format"))
	if err != nil {
		return err
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		if err := report.WriteFile(output, result, format); err != nil {
			return err
		}
		logger.Info("results written", "path", output)
		return nil
	}

	return report.Write(os.Stdout, result, report.Options{
		Format:  format,
		Summary: format == report.FormatText,
	})
}

// validateInput enforces the input contract before any archive open: the
// file must exist and carry the .docx extension (case-insensitive).
func validateInput(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found: %s", path)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".docx" {
		return fmt.Errorf("unsupported file format %q: provide a .docx document", ext)
	}
	return nil
}

// stringSetting returns the flag value, falling back to the config file.
func stringSetting(cmd *cobra.Command, name string) string {
	if v, _ := cmd.Flags().GetString(name); v != "" {
		return v
	}
	return viper.GetString(name)
}

func recordRun(dbPath string, ex types.Extraction) error {
	store, err := catalog.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Record(context.Background(), ex)
	return err
}
