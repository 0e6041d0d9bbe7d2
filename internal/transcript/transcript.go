// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transcript discovers interview transcript files and derives
// their identifiers and sidecar paths.
package transcript

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/transcript-engine/pkg/types"
)

// DefaultPattern is the glob matched against transcript filenames.
const DefaultPattern = "transcript_PATIENT_*.docx"

// BackupSuffix is appended to a source filename to form its plaintext
// backup sidecar path.
const BackupSuffix = ".orig.txt"

// idPattern extracts the patient identifier from a transcript filename.
var idPattern = regexp.MustCompile(`transcript_(PATIENT_\d{3})\.docx$`)

// BackupPath returns the plaintext sidecar path for a transcript source file.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// Glob returns the paths matching pattern under dir, sorted by name.
// A pattern with no matches returns an error: an empty transcript set is
// a reported failure, not a silent no-op.
func Glob(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no transcript files match %q in %s", pattern, dir)
	}
	sort.Strings(paths)
	return paths, nil
}

// Parse derives a Transcript from a source path. It reports false when
// the filename does not follow the naming convention.
func Parse(path string) (types.Transcript, bool) {
	m := idPattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return types.Transcript{}, false
	}
	id := m[1]
	seq, err := strconv.Atoi(id[strings.LastIndex(id, "_")+1:])
	if err != nil {
		return types.Transcript{}, false
	}
	return types.Transcript{
		ID:         id,
		Seq:        seq,
		Path:       path,
		BackupPath: BackupPath(path),
	}, true
}

// Discover enumerates transcript files under dir, extracts each patient
// identifier, and returns the set sorted ascending by the identifier's
// numeric value. Files matching the glob but not the identifier naming
// convention are ignored.
func Discover(dir, pattern string) ([]types.Transcript, error) {
	paths, err := Glob(dir, pattern)
	if err != nil {
		return nil, err
	}

	var transcripts []types.Transcript
	for _, p := range paths {
		t, ok := Parse(p)
		if !ok {
			continue
		}
		transcripts = append(transcripts, t)
	}
	if len(transcripts) == 0 {
		return nil, fmt.Errorf("no files matching %q follow the transcript naming convention", pattern)
	}

	sort.Slice(transcripts, func(i, j int) bool {
		return transcripts[i].Seq < transcripts[j].Seq
	})
	return transcripts, nil
}
