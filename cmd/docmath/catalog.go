// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docmath/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect recorded extraction runs",
	Long: `Catalog inspects the SQLite database written by extraction runs that
used --catalog. Each run is stored with its source path, output form, and
timestamp alongside the extracted equations.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cataloged equations",
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	dbPath := stringSetting(cmd, "db")
	if dbPath == "" {
		dbPath = stringSetting(cmd, "catalog")
	}
	if dbPath == "" {
		return fmt.Errorf("catalog database required: pass --db or set catalog in the config file")
	}

	store, err := catalog.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	doc, _ := cmd.Flags().GetString("doc")
	limit, _ := cmd.Flags().GetInt("limit")

	entries, err := store.List(context.Background(), catalog.ListOptions{
		Path:       doc,
		MaxResults: limit,
	})
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatCatalogOutput(entries, jsonOutput)
}

func formatCatalogOutput(entries []catalog.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No entries found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-30s  %-6s  %s\n", "Pos", "Document", "Form", "Content")
	for _, e := range entries {
		doc := e.Path
		if len(doc) > 30 {
			doc = "..." + doc[len(doc)-27:]
		}
		content := e.Content
		if len(content) > 60 {
			content = content[:57] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-30s  %-6s  %s\n", e.Position, doc, e.Form, content)
	}
	fmt.Fprintf(os.Stdout, "\n%d entries\n", len(entries))
	return nil
}

func init() {
	catalogListCmd.Flags().String("db", "", "path to the catalog database")
	catalogListCmd.Flags().String("doc", "", "filter by document path substring")
	catalogListCmd.Flags().Int("limit", 0, "maximum number of entries to list")
	catalogListCmd.Flags().Bool("json", false, "emit JSON instead of a table")

	catalogCmd.AddCommand(catalogListCmd)
	rootCmd.AddCommand(catalogCmd)
}
