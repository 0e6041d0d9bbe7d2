// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data structures for the transcript pipeline.
package types

// Transcript identifies one interview transcript file in the working
// directory. The ID is the patient identifier embedded in the filename
// (e.g. "PATIENT_007"); Seq is its numeric suffix, used as the sort key.
type Transcript struct {
	// ID is the patient identifier extracted from the filename.
	ID string `json:"id" yaml:"id"`

	// Seq is the numeric portion of the identifier.
	Seq int `json:"seq" yaml:"seq"`

	// Path is the transcript source file (a .docx container, or plaintext
	// mislabeled with the .docx extension).
	Path string `json:"path" yaml:"path"`

	// BackupPath is the plaintext sidecar preserving the originally
	// authored text, including ** emphasis markers. It may not exist.
	BackupPath string `json:"backup_path" yaml:"backup_path"`
}

// RegenStatus indicates the outcome of regenerating a transcript container.
type RegenStatus string

const (
	RegenDone    RegenStatus = "converted"
	RegenSkipped RegenStatus = "skipped"
	RegenFailed  RegenStatus = "failed"
)

// TextSource identifies where the aggregator obtained a transcript's text.
type TextSource string

const (
	// SourceBackup means the .orig.txt sidecar was used verbatim.
	SourceBackup TextSource = "backup"
	// SourceContainer means the text was extracted from the DOCX container.
	SourceContainer TextSource = "container"
)
