// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists per-transcript state observed by the pipelines
// in a local SQLite database.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/transcript-engine/pkg/types"
)

const (
	stateDir = ".transcript-engine"
	dbFile   = "catalog.db"
)

// Store manages the transcript catalog database.
type Store struct {
	db *sql.DB
}

// Record is one catalog row: the last observed state of a transcript.
type Record struct {
	ID               string `json:"id" yaml:"id"`
	Path             string `json:"path" yaml:"path"`
	BackupPath       string `json:"backup_path,omitempty" yaml:"backup_path,omitempty"`
	ContainerValid   bool   `json:"container_valid" yaml:"container_valid"`
	LastRegenStatus  string `json:"last_regen_status,omitempty" yaml:"last_regen_status,omitempty"`
	LastRegenAt      string `json:"last_regen_at,omitempty" yaml:"last_regen_at,omitempty"`
	LastSource       string `json:"last_source,omitempty" yaml:"last_source,omitempty"`
	LastAggregatedAt string `json:"last_aggregated_at,omitempty" yaml:"last_aggregated_at,omitempty"`
}

// Open opens or creates the catalog database under
// cfg.Dir/.transcript-engine/, creating the schema if it does not exist.
func Open(cfg types.CatalogConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	dbDir := filepath.Join(dir, stateDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS transcripts (
		id TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		backup_path TEXT NOT NULL DEFAULT '',
		container_valid INTEGER NOT NULL DEFAULT 0,
		last_regen_status TEXT NOT NULL DEFAULT '',
		last_regen_at TEXT NOT NULL DEFAULT '',
		last_source TEXT NOT NULL DEFAULT '',
		last_aggregated_at TEXT NOT NULL DEFAULT ''
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// RecordRegen upserts the outcome of a regeneration pass for one
// transcript. Upserts are idempotent per transcript ID.
func (s *Store) RecordRegen(ctx context.Context, t types.Transcript, status types.RegenStatus, containerValid bool, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transcripts (id, path, backup_path, container_valid, last_regen_status, last_regen_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			path = excluded.path,
			backup_path = excluded.backup_path,
			container_valid = excluded.container_valid,
			last_regen_status = excluded.last_regen_status,
			last_regen_at = excluded.last_regen_at`,
		t.ID, t.Path, t.BackupPath, containerValid, string(status), at.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording regeneration for %s: %w", t.ID, err)
	}
	return nil
}

// RecordAggregated upserts the outcome of an aggregation pass for one
// transcript, noting which source provided its text.
func (s *Store) RecordAggregated(ctx context.Context, id, path string, source types.TextSource, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transcripts (id, path, last_source, last_aggregated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			path = excluded.path,
			last_source = excluded.last_source,
			last_aggregated_at = excluded.last_aggregated_at`,
		id, path, string(source), at.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording aggregation for %s: %w", id, err)
	}
	return nil
}

// List returns all catalog records ordered by transcript ID.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path, backup_path, container_valid,
		       last_regen_status, last_regen_at, last_source, last_aggregated_at
		FROM transcripts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Path, &r.BackupPath, &r.ContainerValid,
			&r.LastRegenStatus, &r.LastRegenAt, &r.LastSource, &r.LastAggregatedAt); err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ExportYAML writes all catalog records to w as YAML.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	records, err := s.List(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportJSON writes all catalog records to w as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer) error {
	records, err := s.List(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
