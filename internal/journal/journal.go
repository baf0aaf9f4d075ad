// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal records extraction runs in a SQLite database and keeps
// compressed backups of records deleted from world stores so they can be
// restored later.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/snappy"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/destruc7i0n/extract-mcstructure/pkg/types"
)

const (
	appDir  = "extract-mcstructure"
	dbFile  = "journal.db"
	timeFmt = time.RFC3339Nano
)

// ErrNoBackup is returned when no backup exists for a structure id.
var ErrNoBackup = errors.New("no backup found")

// DefaultPath returns <user config dir>/extract-mcstructure/journal.db.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(dir, appDir, dbFile), nil
}

// Journal manages the journal database.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the journal at cfg.Path (DefaultPath when empty)
// and creates the schema if it does not exist.
func Open(cfg types.JournalConfig) (*Journal, error) {
	path := cfg.Path
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	j := &Journal{db: db, now: time.Now}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating journal schema: %w", err)
	}
	return j, nil
}

// Close releases the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			world_name TEXT NOT NULL,
			world_root TEXT NOT NULL,
			criterion TEXT NOT NULL,
			force_overwrite INTEGER NOT NULL,
			delete_records INTEGER NOT NULL,
			started_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS entries (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			structure_id TEXT NOT NULL,
			display_id TEXT,
			path TEXT,
			status TEXT NOT NULL,
			size INTEGER NOT NULL,
			error TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS backups (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			world_root TEXT NOT NULL,
			structure_id TEXT NOT NULL,
			payload BLOB NOT NULL,
			size INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_run_id ON entries(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_backups_lookup ON backups(world_root, structure_id)`,
	}

	for _, stmt := range statements {
		if _, err := j.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Run describes one extract invocation.
type Run struct {
	ID        string    `json:"id" yaml:"id"`
	WorldName string    `json:"world_name" yaml:"world_name"`
	WorldRoot string    `json:"world_root" yaml:"world_root"`
	Criterion string    `json:"criterion" yaml:"criterion"`
	Force     bool      `json:"force" yaml:"force"`
	Delete    bool      `json:"delete" yaml:"delete"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`
}

// Entry is the recorded outcome for one structure in a run.
type Entry struct {
	StructureID string                  `json:"structure_id" yaml:"structure_id"`
	DisplayID   string                  `json:"display_id,omitempty" yaml:"display_id,omitempty"`
	Path        string                  `json:"path,omitempty" yaml:"path,omitempty"`
	Status      types.MaterializeStatus `json:"status" yaml:"status"`
	Size        int                     `json:"size" yaml:"size"`
	Error       string                  `json:"error,omitempty" yaml:"error,omitempty"`
}

// BeginRun inserts run, assigning an id and start time when unset, and
// returns the stored run.
func (j *Journal) BeginRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = j.now().UTC()
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO runs (id, world_name, world_root, criterion, force_overwrite, delete_records, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.WorldName, run.WorldRoot, run.Criterion, run.Force, run.Delete,
		run.StartedAt.Format(timeFmt),
	)
	if err != nil {
		return Run{}, fmt.Errorf("inserting run: %w", err)
	}
	return run, nil
}

// Backup stores snappy-compressed copies of records deleted in runID.
func (j *Journal) Backup(ctx context.Context, runID, worldRoot string, records []types.Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO backups (run_id, world_root, structure_id, payload, size, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing backup insert: %w", err)
	}
	defer stmt.Close()

	created := j.now().UTC().Format(timeFmt)
	for _, rec := range records {
		_, err := stmt.ExecContext(ctx,
			runID, worldRoot, rec.ID, snappy.Encode(nil, rec.Payload), len(rec.Payload), created)
		if err != nil {
			return fmt.Errorf("backing up %s: %w", rec.ID, err)
		}
	}
	return tx.Commit()
}

// Record stores the materialization outcome of every entry in runID.
func (j *Journal) Record(ctx context.Context, runID string, entries []Entry) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO entries (run_id, structure_id, display_id, path, status, size, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing entry insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		_, err := stmt.ExecContext(ctx,
			runID, e.StructureID, e.DisplayID, e.Path, string(e.Status), e.Size, e.Error)
		if err != nil {
			return fmt.Errorf("recording %s: %w", e.StructureID, err)
		}
	}
	return tx.Commit()
}

// BackupRecord holds a restored record and where it came from.
type BackupRecord struct {
	RunID     string
	WorldRoot string
	CreatedAt time.Time
	Record    types.Record
}

// LatestBackup returns the most recent backup of structureID taken from
// the world at worldRoot.
func (j *Journal) LatestBackup(ctx context.Context, worldRoot, structureID string) (BackupRecord, error) {
	var (
		b       BackupRecord
		encoded []byte
		size    int
		created string
	)
	err := j.db.QueryRowContext(ctx,
		`SELECT run_id, payload, size, created_at FROM backups
		 WHERE world_root = ? AND structure_id = ?
		 ORDER BY rowid DESC LIMIT 1`,
		worldRoot, structureID,
	).Scan(&b.RunID, &encoded, &size, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return BackupRecord{}, fmt.Errorf("%w for %q", ErrNoBackup, structureID)
	}
	if err != nil {
		return BackupRecord{}, fmt.Errorf("querying backup: %w", err)
	}

	payload, err := snappy.Decode(nil, encoded)
	if err != nil {
		return BackupRecord{}, fmt.Errorf("decoding backup of %s: %w", structureID, err)
	}
	if len(payload) != size {
		return BackupRecord{}, fmt.Errorf("backup of %s: size %d, want %d", structureID, len(payload), size)
	}

	b.WorldRoot = worldRoot
	b.CreatedAt, _ = time.Parse(timeFmt, created)
	b.Record = types.Record{ID: structureID, Payload: payload}
	return b, nil
}

// HistoryEntry is one recorded outcome together with its run.
type HistoryEntry struct {
	Run   Run   `json:"run" yaml:"run"`
	Entry Entry `json:"entry" yaml:"entry"`
}

// History returns up to limit recorded outcomes, most recent first.
func (j *Journal) History(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT r.id, r.world_name, r.world_root, r.criterion, r.force_overwrite, r.delete_records, r.started_at,
		        e.structure_id, e.display_id, e.path, e.status, e.size, e.error
		 FROM entries e JOIN runs r ON r.id = e.run_id
		 ORDER BY e.rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var (
			h       HistoryEntry
			started string
			status  string
			display sql.NullString
			path    sql.NullString
			errText sql.NullString
		)
		if err := rows.Scan(
			&h.Run.ID, &h.Run.WorldName, &h.Run.WorldRoot, &h.Run.Criterion,
			&h.Run.Force, &h.Run.Delete, &started,
			&h.Entry.StructureID, &display, &path, &status, &h.Entry.Size, &errText,
		); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		h.Run.StartedAt, _ = time.Parse(timeFmt, started)
		h.Entry.Status = types.MaterializeStatus(status)
		h.Entry.DisplayID = display.String
		h.Entry.Path = path.String
		h.Entry.Error = errText.String
		out = append(out, h)
	}
	return out, rows.Err()
}
