// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docxfile

import (
	"os"
	"path/filepath"
	"testing"

	docx "github.com/fumiama/go-docx"

	"github.com/pdiddy/transcript-engine/pkg/types"
)

func TestIsContainer(t *testing.T) {
	dir := t.TempDir()

	write := func(name string, data []byte) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{
			name: "zip signature",
			path: write("valid.docx", []byte("PK\x03\x04rest of package")),
			want: true,
		},
		{
			name: "plaintext mislabeled as docx",
			path: write("mislabeled.docx", []byte("**Question 1**\n\nAn answer.")),
			want: false,
		},
		{
			name: "single byte file",
			path: write("tiny.docx", []byte("P")),
			want: false,
		},
		{
			name: "empty file",
			path: write("empty.docx", nil),
			want: false,
		},
		{
			name: "missing file",
			path: filepath.Join(dir, "nope.docx"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsContainer(tt.path); got != tt.want {
				t.Errorf("IsContainer(%s) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestBuilderExtractorRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transcript_PATIENT_001.docx")

	lines := []types.Line{
		{Text: "Question 1", Bold: true},
		{},
		{Text: "An answer."},
	}

	b := NewBuilder(types.FontConfig{Name: "Arial", SizePt: 12})
	if err := b.Write(path, lines); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if !IsContainer(path) {
		t.Fatal("generated file does not carry the container signature")
	}

	paras, err := NewExtractor().Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(paras) != 3 {
		t.Fatalf("paragraphs = %d, want 3", len(paras))
	}

	if got := paras[0].Text(); got != "Question 1" {
		t.Errorf("paragraph 1 text = %q, want %q", got, "Question 1")
	}
	if len(paras[0].Runs) == 0 || !paras[0].Runs[0].Bold {
		t.Error("paragraph 1 should be bold")
	}

	if got := paras[1].Text(); got != "" {
		t.Errorf("paragraph 2 text = %q, want empty", got)
	}

	if got := paras[2].Text(); got != "An answer." {
		t.Errorf("paragraph 3 text = %q, want %q", got, "An answer.")
	}
	for _, r := range paras[2].Runs {
		if r.Bold {
			t.Error("paragraph 3 should not be bold")
		}
	}
}

func TestRunBold(t *testing.T) {
	tests := []struct {
		name string
		run  *docx.Run
		want bool
	}{
		{
			name: "no run properties",
			run:  &docx.Run{},
			want: false,
		},
		{
			name: "properties without bold element",
			run:  &docx.Run{RunProperties: &docx.RunProperties{}},
			want: false,
		},
		{
			name: "bare bold element",
			run:  &docx.Run{RunProperties: &docx.RunProperties{Bold: &docx.Bold{}}},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runBold(tt.run); got != tt.want {
				t.Errorf("runBold() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractMissingFile(t *testing.T) {
	_, err := NewExtractor().Extract(filepath.Join(t.TempDir(), "absent.docx"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
