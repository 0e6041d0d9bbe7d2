// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/transcript-engine/internal/aggregate"
	"github.com/pdiddy/transcript-engine/internal/catalog"
	"github.com/pdiddy/transcript-engine/internal/docxfile"
	"github.com/pdiddy/transcript-engine/internal/transcript"
	"github.com/pdiddy/transcript-engine/pkg/types"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Build the single NVivo corpus file from all transcripts",
	Long: `Aggregate concatenates every transcript into one UTF-8 text file,
in ascending patient-number order, each block prefixed with a
====TRANSCRIPT: PATIENT_NNN==== delimiter and the whole file closed by a
footer with the generation timestamp and patient count.

For each transcript the .orig.txt backup sidecar is preferred, preserving
the ** emphasis markers as originally authored. Transcripts without a
sidecar fall back to DOCX extraction, with fully bold paragraphs
re-wrapped in ** markers. The output file is replaced on every run.`,
	RunE: runAggregate,
}

func runAggregate(cmd *cobra.Command, args []string) error {
	manifest, _ := cmd.Flags().GetBool("manifest")
	cfg := types.AggregateConfig{
		Dir:      stringSetting(cmd, "dir", "aggregate.dir"),
		Pattern:  stringSetting(cmd, "pattern", "aggregate.pattern"),
		Output:   stringSetting(cmd, "out", "aggregate.output"),
		Manifest: manifest,
	}

	now := time.Now()
	result, err := aggregate.Run(cfg, docxfile.NewExtractor(), now, os.Stdout)
	if err != nil {
		return err
	}

	recordAggregation(cfg.Dir, result, now)
	return nil
}

// recordAggregation updates the catalog with this run's outcome. Catalog
// trouble is reported but never fails the pipeline.
func recordAggregation(dir string, result *aggregate.Result, now time.Time) {
	store, err := catalog.Open(types.CatalogConfig{Dir: dir})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: catalog unavailable: %v\n", err)
		return
	}
	defer store.Close()

	for _, e := range result.Entries {
		if err := store.RecordAggregated(context.Background(), e.ID, e.Path, e.Source, now); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			return
		}
	}
}

func init() {
	aggregateCmd.Flags().String("dir", ".", "working directory containing transcript files")
	aggregateCmd.Flags().String("pattern", transcript.DefaultPattern, "glob pattern for transcript files")
	aggregateCmd.Flags().String("out", aggregate.DefaultOutput, "aggregate output filename")
	aggregateCmd.Flags().Bool("manifest", false, "also write a YAML manifest describing the corpus")

	rootCmd.AddCommand(aggregateCmd)
}
