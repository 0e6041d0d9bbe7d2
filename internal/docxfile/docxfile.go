// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docxfile wraps the DOCX document collaborator: container
// signature checks, paragraph/run extraction, and document authoring.
package docxfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	docx "github.com/fumiama/go-docx"

	"github.com/pdiddy/transcript-engine/pkg/types"
)

// containerMagic is the ZIP local-file-header signature. A genuine DOCX
// package always starts with it; mislabeled plaintext never does.
var containerMagic = []byte("PK")

// IsContainer reports whether the file at path begins with the DOCX
// container signature. Unreadable or too-short files are not containers.
func IsContainer(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	sig := make([]byte, len(containerMagic))
	if _, err := io.ReadFull(f, sig); err != nil {
		return false
	}
	return bytes.Equal(sig, containerMagic)
}

// Extractor pulls paragraph text and per-run bold flags out of document
// containers using the go-docx parser.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the container at path and returns its paragraphs in
// document order. Tables and section breaks carry no transcript text and
// are ignored.
func (*Extractor) Extract(path string) ([]types.Paragraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening container %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parsing container %s: %w", path, err)
	}

	var paras []types.Paragraph
	for _, item := range doc.Document.Body.Items {
		p, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		var runs []types.Run
		for _, child := range p.Children {
			r, ok := child.(*docx.Run)
			if !ok {
				continue
			}
			var text strings.Builder
			for _, rc := range r.Children {
				if t, ok := rc.(*docx.Text); ok {
					text.WriteString(t.Text)
				}
			}
			runs = append(runs, types.Run{
				Text: text.String(),
				Bold: runBold(r),
			})
		}
		paras = append(paras, types.Paragraph{Runs: runs})
	}
	return paras, nil
}

// runBold reports whether a run is rendered bold. The w:b element is an
// OOXML on/off toggle: presence means on unless its val attribute
// explicitly switches it off, but the pinned go-docx version does not
// parse the val attribute at all (docx.Bold carries only XMLName), so
// presence of the element is the only signal available.
func runBold(r *docx.Run) bool {
	return r.RunProperties != nil && r.RunProperties.Bold != nil
}

// Builder authors new document containers with a uniform font.
type Builder struct {
	font string
	// size is in half-points, as OOXML measures run sizes.
	size string
}

// NewBuilder creates a Builder that applies the given font uniformly to
// every non-empty paragraph it writes.
func NewBuilder(cfg types.FontConfig) *Builder {
	name := cfg.Name
	if name == "" {
		name = "Arial"
	}
	size := cfg.SizePt
	if size <= 0 {
		size = 12
	}
	return &Builder{font: name, size: fmt.Sprintf("%d", size*2)}
}

// Write creates a container at path holding one paragraph per line, bold
// where flagged.
func (b *Builder) Write(path string, lines []types.Line) error {
	doc := docx.New().WithDefaultTheme()
	for _, line := range lines {
		para := doc.AddParagraph()
		if line.Text == "" {
			continue
		}
		run := para.AddText(line.Text).Font(b.font, b.font, b.font, "").Size(b.size)
		if line.Bold {
			run.Bold()
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating container %s: %w", path, err)
	}
	if _, err := doc.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing container %s: %w", path, err)
	}
	return f.Close()
}
