// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/transcript-engine/internal/catalog"
	"github.com/pdiddy/transcript-engine/internal/docxfile"
	"github.com/pdiddy/transcript-engine/internal/regen"
	"github.com/pdiddy/transcript-engine/internal/transcript"
	"github.com/pdiddy/transcript-engine/pkg/types"
)

var regenerateCmd = &cobra.Command{
	Use:   "regenerate",
	Short: "Rebuild valid DOCX containers from mislabeled plaintext transcripts",
	Long: `Regenerate inspects each transcript file and rebuilds it as a genuine
DOCX container when it is really plaintext carrying a .docx extension.
Files that already start with the container signature are skipped unless
--force is given.

Before rewriting, the original text is saved to a .orig.txt backup
sidecar exactly once; subsequent runs never overwrite it. Lines carrying
** markers become bold paragraphs with the markers removed, and the
configured font is applied uniformly.`,
	RunE: runRegenerate,
}

func runRegenerate(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	cfg := types.RegenerateConfig{
		Dir:     stringSetting(cmd, "dir", "regenerate.dir"),
		Pattern: stringSetting(cmd, "pattern", "regenerate.pattern"),
		Force:   force,
		Font: types.FontConfig{
			Name:   stringSetting(cmd, "font", "regenerate.font.name"),
			SizePt: intSetting(cmd, "font-size", "regenerate.font.size_pt"),
		},
	}

	result, err := regen.Run(cfg, docxfile.NewBuilder(cfg.Font), os.Stdout)
	if err != nil {
		return err
	}

	recordRegeneration(cfg.Dir, result.Outcomes)

	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed regeneration", result.Failed)
	}
	return nil
}

// recordRegeneration updates the catalog with per-file outcomes. Catalog
// trouble is reported but never fails the pipeline.
func recordRegeneration(dir string, outcomes []regen.Outcome) {
	store, err := catalog.Open(types.CatalogConfig{Dir: dir})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: catalog unavailable: %v\n", err)
		return
	}
	defer store.Close()

	now := time.Now()
	for _, o := range outcomes {
		t, ok := transcript.Parse(o.Path)
		if !ok {
			continue
		}
		valid := docxfile.IsContainer(o.Path)
		if err := store.RecordRegen(context.Background(), t, o.Status, valid, now); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			return
		}
	}
}

func init() {
	regenerateCmd.Flags().String("dir", ".", "working directory containing transcript files")
	regenerateCmd.Flags().String("pattern", transcript.DefaultPattern, "glob pattern for transcript files")
	regenerateCmd.Flags().Bool("force", false, "rebuild even if the file is already a valid container")
	regenerateCmd.Flags().String("font", "Arial", "font family applied to regenerated paragraphs")
	regenerateCmd.Flags().Int("font-size", 12, "font size in points")

	rootCmd.AddCommand(regenerateCmd)
}
