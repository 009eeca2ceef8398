// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders extraction results to the console or a file.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docmath/pkg/types"
)

// Format selects the rendering of extraction results.
type Format string

const (
	// FormatText renders "Equation <n>:" blocks.
	FormatText Format = "text"
	// FormatJSON renders the extraction as indented JSON.
	FormatJSON Format = "json"
	// FormatYAML renders the extraction as YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. The empty string maps to text.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q: use text, json, or yaml", s)
}

// Options control rendering.
type Options struct {
	Format Format

	// Summary prepends the console header line. Applies to text format
	// only; file output omits it.
	Summary bool
}

// Write renders the extraction to w.
func Write(w io.Writer, ex types.Extraction, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ex)
	case FormatYAML:
		data, err := yaml.Marshal(ex)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	}

	if opts.Summary {
		if _, err := fmt.Fprintf(w, "\nExtracted %d equations from %s:\n\n", ex.Count(), ex.Source); err != nil {
			return err
		}
	}
	for _, eq := range ex.Equations {
		if _, err := fmt.Fprintf(w, "Equation %d:\n%s\n\n", eq.Index, eq.Content); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile renders the extraction to a file, without the console summary.
func WriteFile(path string, ex types.Extraction, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if err := Write(f, ex, Options{Format: format}); err != nil {
		return err
	}
	return f.Close()
}
