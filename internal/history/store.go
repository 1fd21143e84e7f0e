// Copyright OMD Tools Inc., 2026. All rights reserved.

// Package history persists a record of every conversion run in a local
// SQLite database so the application can show and search recent documents.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/omdtools/omd/pkg/types"
)

const dbFile = "history.db"

// Store manages the conversion history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database under cfg.HistoryDir,
// creating the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.HistoryDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.HistoryDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			source_path TEXT NOT NULL,
			target_path TEXT,
			direction TEXT NOT NULL,
			format TEXT NOT NULL,
			status TEXT NOT NULL,
			detail TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_created_at ON conversions(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='conversions_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE conversions_fts USING fts5(source_path, target_path, content=conversions, content_rowid=rowid)`,
			`CREATE TRIGGER conversions_ai AFTER INSERT ON conversions BEGIN
				INSERT INTO conversions_fts(rowid, source_path, target_path) VALUES (new.rowid, new.source_path, new.target_path);
			END`,
			`CREATE TRIGGER conversions_ad AFTER DELETE ON conversions BEGIN
				INSERT INTO conversions_fts(conversions_fts, rowid, source_path, target_path) VALUES('delete', old.rowid, old.source_path, old.target_path);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}
	return nil
}

// Record appends one conversion to the history.
func (s *Store) Record(ctx context.Context, rec types.ConversionRecord) error {
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (source_path, target_path, direction, format, status, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.SourcePath, rec.TargetPath, string(rec.Direction), string(rec.Format),
		string(rec.Status), rec.Detail, created.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording conversion of %s: %w", rec.SourcePath, err)
	}
	return nil
}

// List returns the most recent conversions, newest first. A limit of zero
// uses the configured default.
func (s *Store) List(ctx context.Context, limit int) ([]types.ConversionRecord, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT source_path, target_path, direction, format, status, detail, created_at
		 FROM conversions ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Search finds conversions whose source or target path matches the
// full-text query, newest first.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]types.ConversionRecord, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.source_path, c.target_path, c.direction, c.format, c.status, c.detail, c.created_at
		 FROM conversions_fts f
		 JOIN conversions c ON c.rowid = f.rowid
		 WHERE conversions_fts MATCH ?
		 ORDER BY c.rowid DESC LIMIT ?`, quoteFTS(query), limit)
	if err != nil {
		return nil, fmt.Errorf("searching history for %q: %w", query, err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Clear removes all history entries.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM conversions`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

func scanRecords(rows *sql.Rows) ([]types.ConversionRecord, error) {
	var records []types.ConversionRecord
	for rows.Next() {
		var rec types.ConversionRecord
		var createdAt string
		if err := rows.Scan(&rec.SourcePath, &rec.TargetPath,
			(*string)(&rec.Direction), (*string)(&rec.Format),
			(*string)(&rec.Status), &rec.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			rec.CreatedAt = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// quoteFTS wraps the query as an FTS5 string literal so path characters
// like "." and "/" are not parsed as operators.
func quoteFTS(query string) string {
	return `"` + strings.ReplaceAll(query, `"`, `""`) + `"`
}
