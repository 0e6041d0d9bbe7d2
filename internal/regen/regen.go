// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package regen rebuilds genuine DOCX containers from transcript files
// that are really plaintext mislabeled with a .docx extension. The
// original bytes are preserved in a first-write-wins backup sidecar, and
// markdown-style ** markers become real bold runs.
package regen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/transcript-engine/internal/docxfile"
	"github.com/pdiddy/transcript-engine/internal/transcript"
	"github.com/pdiddy/transcript-engine/pkg/types"
)

const boldMarker = "**"

// Builder is the document-authoring capability the converter depends on.
// The production implementation is docxfile.Builder; tests inject fakes.
type Builder interface {
	Write(path string, lines []types.Line) error
}

// Outcome records the regeneration status of one file.
type Outcome struct {
	Path   string
	Status types.RegenStatus
}

// BatchResult holds the outcome of a batch regeneration run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
	Outcomes  []Outcome
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed regeneration.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Transform splits plaintext into styled lines. A blank line maps to an
// empty paragraph; a line carrying ** anywhere has every marker stripped
// and the whole paragraph marked bold.
func Transform(text string) []types.Line {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")

	var lines []types.Line
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			lines = append(lines, types.Line{})
			continue
		}
		bold := strings.Contains(line, boldMarker)
		lines = append(lines, types.Line{
			Text: strings.ReplaceAll(line, boldMarker, ""),
			Bold: bold,
		})
	}
	return lines
}

// ConvertFile ensures the file at path is a valid document container.
// Already-valid containers are skipped unless force is set. Before
// rewriting, the decoded text is saved to the backup sidecar exactly once;
// the aggregator later prefers that sidecar as the source of truth.
func ConvertFile(path string, b Builder, force bool, w io.Writer) types.RegenStatus {
	base := filepath.Base(path)

	if docxfile.IsContainer(path) && !force {
		fmt.Fprintf(w, "skipped: %s (already a valid container)\n", base)
		return types.RegenSkipped
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (cannot read as text: %v)\n", base, err)
		return types.RegenFailed
	}
	// Invalid byte sequences are replaced, matching a lenient UTF-8 read;
	// the backup still captures everything recoverable.
	text := strings.ToValidUTF8(string(data), "�")

	backup := transcript.BackupPath(path)
	if _, err := os.Stat(backup); os.IsNotExist(err) {
		if err := os.WriteFile(backup, []byte(text), 0o644); err != nil {
			fmt.Fprintf(w, "failed:  %s (writing backup: %v)\n", base, err)
			return types.RegenFailed
		}
	}

	if err := b.Write(path, Transform(text)); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.RegenFailed
	}

	fmt.Fprintf(w, "converted: %s\n", base)
	return types.RegenDone
}

// ConvertBatch processes the given paths sequentially, printing per-file
// status to w and returning a summary.
func ConvertBatch(paths []string, b Builder, force bool, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range paths {
		status := ConvertFile(p, b, force, w)
		switch status {
		case types.RegenDone:
			result.Converted++
		case types.RegenSkipped:
			result.Skipped++
		case types.RegenFailed:
			result.Failed++
		}
		result.Outcomes = append(result.Outcomes, Outcome{Path: p, Status: status})
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// Run discovers transcript files per the configured pattern and converts
// each in turn.
func Run(cfg types.RegenerateConfig, b Builder, w io.Writer) (BatchResult, error) {
	paths, err := transcript.Glob(cfg.Dir, cfg.Pattern)
	if err != nil {
		return BatchResult{}, err
	}
	return ConvertBatch(paths, b, cfg.Force, w), nil
}
