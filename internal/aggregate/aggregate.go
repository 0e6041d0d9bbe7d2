// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate builds the single NVivo-friendly corpus file from all
// transcript sources, preferring plaintext backup sidecars and falling
// back to container extraction with bold-marker reconstruction.
package aggregate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/transcript-engine/internal/transcript"
	"github.com/pdiddy/transcript-engine/pkg/types"
)

// DefaultOutput is the aggregate filename written into the working directory.
const DefaultOutput = "AllTranscripts_NVivo.txt"

const boldMarker = "**"

// Extractor is the document-extraction capability the fallback path
// depends on. A nil Extractor turns the fallback into a descriptive error.
type Extractor interface {
	Extract(path string) ([]types.Paragraph, error)
}

// Entry records where one transcript's text came from.
type Entry struct {
	ID     string           `json:"id" yaml:"id"`
	Path   string           `json:"path" yaml:"path"`
	Source types.TextSource `json:"source" yaml:"source"`
}

// Result summarizes an aggregation run.
type Result struct {
	Output  string
	Entries []Entry
}

// readBackup returns the sidecar content when it exists and decodes as
// UTF-8. Any read or decode failure is treated as "no backup": the caller
// falls through to container extraction.
func readBackup(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

// AcquireText obtains one transcript's text: the backup sidecar verbatim
// when readable, otherwise extraction from the container. Extraction with
// no capability available is an error, not a silent skip.
func AcquireText(t types.Transcript, ex Extractor) (string, types.TextSource, error) {
	if content, ok := readBackup(t.BackupPath); ok {
		return content, types.SourceBackup, nil
	}
	if ex == nil {
		return "", "", fmt.Errorf("document extraction unavailable and no backup sidecar for %s", t.ID)
	}
	paras, err := ex.Extract(t.Path)
	if err != nil {
		return "", "", fmt.Errorf("extracting %s: %w", t.ID, err)
	}
	return Reconstruct(paras), types.SourceContainer, nil
}

// Reconstruct renders extracted paragraphs as plaintext. A paragraph is
// re-wrapped in ** markers when it has at least one non-whitespace run and
// every such run is bold; empty paragraphs become blank lines.
func Reconstruct(paras []types.Paragraph) string {
	lines := make([]string, 0, len(paras))
	for _, p := range paras {
		text := strings.TrimRight(p.Text(), " \t\r\n")
		if text == "" {
			lines = append(lines, "")
			continue
		}
		if fullyBold(p) {
			text = boldMarker + text + boldMarker
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n")
}

func fullyBold(p types.Paragraph) bool {
	seen := false
	for _, r := range p.Runs {
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		seen = true
		if !r.Bold {
			return false
		}
	}
	return seen
}

// HeaderLine returns the delimiter line for a patient identifier.
func HeaderLine(id string) string {
	return fmt.Sprintf("====TRANSCRIPT: %s====", id)
}

// EnsureHeader prepends the delimiter line unless it already appears in
// the first three lines of content, keeping re-runs from stacking
// duplicate delimiters.
func EnsureHeader(id, content string) string {
	header := HeaderLine(id)
	lines := strings.Split(content, "\n")
	limit := min(len(lines), 3)
	for _, l := range lines[:limit] {
		if strings.TrimRight(l, "\r") == header {
			return content
		}
	}
	return header + "\n\n" + strings.TrimSpace(content) + "\n"
}

// Build assembles the aggregate text for the given transcripts in order:
// each block trimmed and delimited, blocks separated by blank lines, then
// the corpus footer stamped with now.
func Build(transcripts []types.Transcript, ex Extractor, now time.Time) (string, []Entry, error) {
	blocks := make([]string, 0, len(transcripts))
	entries := make([]Entry, 0, len(transcripts))
	ids := make([]string, 0, len(transcripts))

	for _, t := range transcripts {
		content, source, err := AcquireText(t, ex)
		if err != nil {
			return "", nil, err
		}
		content = EnsureHeader(t.ID, content)
		blocks = append(blocks, strings.TrimSpace(content)+"\n")
		entries = append(entries, Entry{ID: t.ID, Path: t.Path, Source: source})
		ids = append(ids, t.ID)
	}

	footer := fmt.Sprintf(
		"---\n\nEND OF ALL TRANSCRIPTS\n\nGenerated: %s\nTotal Patients: %d (%s)\nSource: palliative_data.csv\nFormat: Appendix I questionnaire structure with Esther transcript style\n",
		now.UTC().Format("2006-01-02 15:04 UTC"),
		len(transcripts),
		strings.Join(ids, ", "),
	)

	return strings.Join(blocks, "\n") + "\n" + footer, entries, nil
}

// Run discovers transcripts, builds the aggregate, and overwrites the
// output file unconditionally. Per-file progress goes to w.
func Run(cfg types.AggregateConfig, ex Extractor, now time.Time, w io.Writer) (*Result, error) {
	output := cfg.Output
	if output == "" {
		output = DefaultOutput
	}

	transcripts, err := transcript.Discover(cfg.Dir, cfg.Pattern)
	if err != nil {
		return nil, err
	}

	text, entries, err := Build(transcripts, ex, now)
	if err != nil {
		return nil, err
	}

	outPath := filepath.Join(cfg.Dir, output)
	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		return nil, fmt.Errorf("writing aggregate %s: %w", outPath, err)
	}
	fmt.Fprintf(w, "Wrote aggregate file: %s (%d transcripts)\n", outPath, len(transcripts))

	result := &Result{Output: outPath, Entries: entries}
	if cfg.Manifest {
		manifestPath := outPath + ".manifest.yaml"
		if err := writeManifest(manifestPath, result, now); err != nil {
			return nil, err
		}
		fmt.Fprintf(w, "Wrote manifest: %s\n", manifestPath)
	}
	return result, nil
}

// manifest is the YAML sidecar describing the corpus.
type manifest struct {
	GeneratedAt string  `yaml:"generated_at"`
	Output      string  `yaml:"output"`
	Total       int     `yaml:"total"`
	Transcripts []Entry `yaml:"transcripts"`
}

func writeManifest(path string, r *Result, now time.Time) error {
	data, err := yaml.Marshal(manifest{
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Output:      r.Output,
		Total:       len(r.Entries),
		Transcripts: r.Entries,
	})
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
