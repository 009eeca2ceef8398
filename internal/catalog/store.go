// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists extraction runs in a local SQLite database.
// Recording is opt-in from the CLI; the extractor itself stays stateless.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docmath/pkg/types"
)

// defaultMaxResults bounds List output when no limit is given.
const defaultMaxResults = 100

// Store manages the extraction catalog database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			form TEXT NOT NULL,
			extracted_at TEXT NOT NULL,
			equation_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS equations (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			document_id TEXT NOT NULL REFERENCES documents(id),
			position INTEGER NOT NULL,
			content TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_equations_document_id ON equations(document_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores one extraction run and returns the new document row ID.
// Every run gets its own row; re-extracting a document does not overwrite
// earlier runs.
func (s *Store) Record(ctx context.Context, ex types.Extraction) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.New().String()
	extractedAt := time.Now().UTC().Format(time.RFC3339Nano)

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO documents (id, path, form, extracted_at, equation_count)
		 VALUES (?, ?, ?, ?, ?)`,
		id, ex.Source, string(ex.Form), extractedAt, ex.Count(),
	); err != nil {
		return "", fmt.Errorf("inserting document: %w", err)
	}

	for _, eq := range ex.Equations {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO equations (document_id, position, content) VALUES (?, ?, ?)`,
			id, eq.Index, eq.Content,
		); err != nil {
			return "", fmt.Errorf("inserting equation %d: %w", eq.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}
	return id, nil
}

// Entry is one cataloged equation with its document provenance.
type Entry struct {
	DocumentID  string             `json:"document_id" yaml:"document_id"`
	Path        string             `json:"path" yaml:"path"`
	Form        types.EquationForm `json:"form" yaml:"form"`
	ExtractedAt time.Time          `json:"extracted_at" yaml:"extracted_at"`
	Position    int                `json:"position" yaml:"position"`
	Content     string             `json:"content" yaml:"content"`
}

// ListOptions filter catalog listings.
type ListOptions struct {
	// Path restricts results to documents whose path contains this
	// substring.
	Path string

	// MaxResults limits the number of entries. Zero uses the default.
	MaxResults int
}

// List returns cataloged equations in insertion order, oldest run first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	var qb strings.Builder
	qb.WriteString(
		`SELECT d.id, d.path, d.form, d.extracted_at, e.position, e.content
		FROM equations e
		JOIN documents d ON d.id = e.document_id
		WHERE 1=1`)
	var args []any

	if opts.Path != "" {
		qb.WriteString(` AND d.path LIKE ?`)
		args = append(args, "%"+opts.Path+"%")
	}

	qb.WriteString(` ORDER BY e.rowid ASC LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry       Entry
			form        string
			extractedAt string
		)
		if err := rows.Scan(&entry.DocumentID, &entry.Path, &form, &extractedAt,
			&entry.Position, &entry.Content); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		entry.Form = types.EquationForm(form)
		ts, err := time.Parse(time.RFC3339Nano, extractedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp %q: %w", extractedAt, err)
		}
		entry.ExtractedAt = ts
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
