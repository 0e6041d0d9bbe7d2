// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/transcript-engine/internal/catalog"
	"github.com/pdiddy/transcript-engine/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the transcript catalog (list, export)",
	Long: `Catalog reads the local SQLite database where the regenerate and
aggregate pipelines record per-transcript state: backup sidecar paths,
container validity, and the last run outcomes.`,
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog records as a table",
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(context.Background())
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("Catalog is empty.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-12s  %-9s  %-10s  %-20s  %-20s  %s\n",
		"Patient", "Container", "Regen", "Regenerated", "Aggregated", "Source")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for _, r := range records {
		valid := "invalid"
		if r.ContainerValid {
			valid = "valid"
		}
		fmt.Fprintf(os.Stdout, "%-12s  %-9s  %-10s  %-20s  %-20s  %s\n",
			r.ID, valid, orDash(r.LastRegenStatus),
			orDash(r.LastRegenAt), orDash(r.LastAggregatedAt), orDash(r.LastSource))
	}

	fmt.Fprintf(os.Stdout, "\n%d transcripts\n", len(records))
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	RunE:  runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	switch format {
	case "yaml", "":
		return store.ExportYAML(context.Background(), os.Stdout)
	case "json":
		return store.ExportJSON(context.Background(), os.Stdout)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}

// --- shared helpers ---

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	cfg := types.CatalogConfig{
		Dir: stringSetting(cmd, "dir", "catalog.dir"),
	}
	return catalog.Open(cfg)
}

func init() {
	catalogCmd.PersistentFlags().String("dir", ".", "working directory holding the catalog database")

	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
