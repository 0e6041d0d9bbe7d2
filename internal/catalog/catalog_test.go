// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/transcript-engine/pkg/types"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := Open(types.CatalogConfig{Dir: dir})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, dir
}

func sample(id string) types.Transcript {
	return types.Transcript{
		ID:         id,
		Path:       "transcript_" + id + ".docx",
		BackupPath: "transcript_" + id + ".docx.orig.txt",
	}
}

func TestOpenCreatesDatabase(t *testing.T) {
	_, dir := openTestStore(t)
	_, err := os.Stat(filepath.Join(dir, stateDir, dbFile))
	assert.NoError(t, err)
}

func TestRecordRegenUpsertIsIdempotent(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	tr := sample("PATIENT_001")
	require.NoError(t, store.RecordRegen(ctx, tr, types.RegenDone, true, at))
	require.NoError(t, store.RecordRegen(ctx, tr, types.RegenSkipped, true, at.Add(time.Hour)))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "PATIENT_001", records[0].ID)
	assert.Equal(t, string(types.RegenSkipped), records[0].LastRegenStatus)
	assert.Equal(t, "2026-02-01T13:00:00Z", records[0].LastRegenAt)
	assert.True(t, records[0].ContainerValid)
}

func TestRecordAggregatedMergesIntoExistingRow(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	tr := sample("PATIENT_002")
	require.NoError(t, store.RecordRegen(ctx, tr, types.RegenDone, true, at))
	require.NoError(t, store.RecordAggregated(ctx, tr.ID, tr.Path, types.SourceBackup, at.Add(time.Minute)))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, string(types.RegenDone), r.LastRegenStatus)
	assert.Equal(t, string(types.SourceBackup), r.LastSource)
	assert.Equal(t, "2026-02-01T12:01:00Z", r.LastAggregatedAt)
}

func TestListOrdersByID(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	for _, id := range []string{"PATIENT_010", "PATIENT_002"} {
		tr := sample(id)
		require.NoError(t, store.RecordAggregated(ctx, tr.ID, tr.Path, types.SourceContainer, now))
	}

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "PATIENT_002", records[0].ID)
	assert.Equal(t, "PATIENT_010", records[1].ID)
}

func TestExport(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	tr := sample("PATIENT_003")
	require.NoError(t, store.RecordAggregated(ctx, tr.ID, tr.Path, types.SourceBackup, time.Now()))

	var yamlOut bytes.Buffer
	require.NoError(t, store.ExportYAML(ctx, &yamlOut))
	assert.Contains(t, yamlOut.String(), "PATIENT_003")

	var jsonOut bytes.Buffer
	require.NoError(t, store.ExportJSON(ctx, &jsonOut))
	assert.Contains(t, jsonOut.String(), `"id": "PATIENT_003"`)
}
