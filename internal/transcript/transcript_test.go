// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transcript

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("placeholder"), 0o644))
	return path
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantID  string
		wantSeq int
		wantOK  bool
	}{
		{
			name:    "standard transcript filename",
			path:    "/data/transcript_PATIENT_007.docx",
			wantID:  "PATIENT_007",
			wantSeq: 7,
			wantOK:  true,
		},
		{
			name:    "three digit identifier",
			path:    "transcript_PATIENT_123.docx",
			wantID:  "PATIENT_123",
			wantSeq: 123,
			wantOK:  true,
		},
		{
			name:   "two digit suffix does not match",
			path:   "transcript_PATIENT_12.docx",
			wantOK: false,
		},
		{
			name:   "wrong prefix",
			path:   "notes_PATIENT_001.docx",
			wantOK: false,
		},
		{
			name:   "wrong extension",
			path:   "transcript_PATIENT_001.txt",
			wantOK: false,
		},
		{
			name:   "backup sidecar does not match",
			path:   "transcript_PATIENT_001.docx.orig.txt",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.path)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantID, got.ID)
			assert.Equal(t, tt.wantSeq, got.Seq)
			assert.Equal(t, tt.path, got.Path)
			assert.Equal(t, tt.path+BackupSuffix, got.BackupPath)
		})
	}
}

func TestBackupPath(t *testing.T) {
	assert.Equal(t,
		"transcript_PATIENT_001.docx.orig.txt",
		BackupPath("transcript_PATIENT_001.docx"))
}

func TestDiscoverSortsNumerically(t *testing.T) {
	dir := t.TempDir()
	// Created out of order; lexical order (010 < 002 is false, but 010 < 02x
	// style mistakes are common) must not leak into the result.
	touch(t, dir, "transcript_PATIENT_010.docx")
	touch(t, dir, "transcript_PATIENT_002.docx")
	touch(t, dir, "transcript_PATIENT_001.docx")

	got, err := Discover(dir, "")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "PATIENT_001", got[0].ID)
	assert.Equal(t, "PATIENT_002", got[1].ID)
	assert.Equal(t, "PATIENT_010", got[2].ID)
}

func TestDiscoverIgnoresNonMatchingNames(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "transcript_PATIENT_001.docx")
	touch(t, dir, "transcript_PATIENT_xx.docx")

	got, err := Discover(dir, "transcript_PATIENT_*.docx")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "PATIENT_001", got[0].ID)
}

func TestDiscoverEmptyDirFails(t *testing.T) {
	_, err := Discover(t.TempDir(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no transcript files match")
}

func TestGlob(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "transcript_PATIENT_002.docx")
	touch(t, dir, "transcript_PATIENT_001.docx")

	paths, err := Glob(dir, "")
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "transcript_PATIENT_001.docx"), paths[0])

	_, err = Glob(dir, "*.pdf")
	assert.Error(t, err)
}
