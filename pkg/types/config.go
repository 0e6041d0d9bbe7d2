// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AggregateConfig holds settings for the aggregation stage.
type AggregateConfig struct {
	// Dir is the working directory containing transcript files.
	Dir string `json:"dir" yaml:"dir"`

	// Pattern is the glob matched against transcript filenames
	// (default "transcript_PATIENT_*.docx").
	Pattern string `json:"pattern" yaml:"pattern"`

	// Output is the aggregate filename written into Dir
	// (default "AllTranscripts_NVivo.txt").
	Output string `json:"output" yaml:"output"`

	// Manifest controls whether a YAML manifest sidecar is written next
	// to the aggregate.
	Manifest bool `json:"manifest" yaml:"manifest"`
}

// FontConfig holds the uniform font applied to regenerated documents.
type FontConfig struct {
	// Name is the font family (default "Arial").
	Name string `json:"name" yaml:"name"`

	// SizePt is the font size in points (default 12).
	SizePt int `json:"size_pt" yaml:"size_pt"`
}

// RegenerateConfig holds settings for the container regeneration stage.
type RegenerateConfig struct {
	// Dir is the working directory containing transcript files.
	Dir string `json:"dir" yaml:"dir"`

	// Pattern is the glob matched against transcript filenames.
	Pattern string `json:"pattern" yaml:"pattern"`

	// Force rebuilds containers even when they are already valid.
	Force bool `json:"force" yaml:"force"`

	// Font is applied uniformly to every regenerated paragraph.
	Font FontConfig `json:"font" yaml:"font"`
}

// CatalogConfig holds settings for the transcript catalog.
type CatalogConfig struct {
	// Dir is the working directory; the catalog database lives under
	// Dir/.transcript-engine/.
	Dir string `json:"dir" yaml:"dir"`
}
