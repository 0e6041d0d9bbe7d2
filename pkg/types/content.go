// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Run is one styled span of text inside an extracted paragraph.
type Run struct {
	Text string `json:"text" yaml:"text"`
	Bold bool   `json:"bold" yaml:"bold"`
}

// Paragraph is one paragraph extracted from a document container.
type Paragraph struct {
	Runs []Run `json:"runs" yaml:"runs"`
}

// Text returns the concatenated text of all runs.
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Line is one paragraph to be written into a document container. A zero
// Line produces an empty paragraph.
type Line struct {
	Text string `json:"text" yaml:"text"`
	Bold bool   `json:"bold" yaml:"bold"`
}
