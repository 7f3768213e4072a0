// Package sqlite provides a SQLite-backed document registry. It records
// which files have been ingested; the vector store remains the source of
// truth for retrieval.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/docsift/docsift/internal/core/domain"
	"github.com/docsift/docsift/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.DocumentRegistry = (*Registry)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS ingested_documents (
	id          TEXT PRIMARY KEY,
	file_name   TEXT NOT NULL,
	pages       INTEGER NOT NULL,
	chunks      INTEGER NOT NULL,
	ingested_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ingested_documents_at
	ON ingested_documents (ingested_at DESC);
`

// Registry is a SQLite-backed implementation of driven.DocumentRegistry.
type Registry struct {
	db   *sql.DB
	path string
}

// NewRegistry opens (or creates) the registry database under dataDir.
// If dataDir is empty, defaults to ~/.docsift/data.
func NewRegistry(dataDir string) (*Registry, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docsift", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "registry.db")

	// WAL mode for better concurrency between serve and watch.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Registry{db: db, path: dbPath}, nil
}

// Record stores one ingest run.
func (r *Registry) Record(ctx context.Context, doc domain.IngestedDocument) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ingested_documents (id, file_name, pages, chunks, ingested_at)
		 VALUES (?, ?, ?, ?, ?)`,
		doc.ID, doc.FileName, doc.Pages, doc.Chunks,
		doc.IngestedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record ingest of %s: %w", doc.FileName, err)
	}
	return nil
}

// List returns all recorded ingests, most recent first.
func (r *Registry) List(ctx context.Context) ([]domain.IngestedDocument, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, file_name, pages, chunks, ingested_at
		 FROM ingested_documents
		 ORDER BY ingested_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list ingested documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.IngestedDocument
	for rows.Next() {
		var doc domain.IngestedDocument
		var ingestedAt string
		if err := rows.Scan(&doc.ID, &doc.FileName, &doc.Pages, &doc.Chunks, &ingestedAt); err != nil {
			return nil, fmt.Errorf("scan ingested document: %w", err)
		}
		doc.IngestedAt, err = time.Parse(time.RFC3339, ingestedAt)
		if err != nil {
			return nil, fmt.Errorf("parse ingested_at %q: %w", ingestedAt, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ingested documents: %w", err)
	}
	return docs, nil
}

// Path returns the database file path.
func (r *Registry) Path() string {
	return r.path
}

// Close closes the database connection.
func (r *Registry) Close() error {
	return r.db.Close()
}
