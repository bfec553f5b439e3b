// Package store persists processed documents and user settings in a
// local sqlite database, so a transcript is only sent through the
// backend once per source.
package store

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/nguyentantai21042004/kinetic-reader/internal/document"
)

//go:embed schema.sql
var schema string

const savedModelKey = "selected_model"

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("store: not found")

// SavedDocument is a processed document with its storage metadata.
type SavedDocument struct {
	ID        string
	SourceID  string
	Title     string
	Model     string
	Document  *document.Document
	CreatedAt time.Time
}

// Store handles database operations.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the database at dbPath and applies the
// schema.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SavedModel returns the last persisted model name, or "" when none
// has been saved yet.
func (s *Store) SavedModel() (string, error) {
	var value string
	err := s.db.QueryRow(
		"SELECT value FROM settings WHERE key = ?",
		savedModelKey,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get saved model: %w", err)
	}
	return value, nil
}

// SaveModel persists name as the preferred model for future runs.
func (s *Store) SaveModel(name string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO settings (key, value, updated_at) VALUES (?, ?, ?)",
		savedModelKey, name, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	return nil
}

// SaveDocument stores a processed document under sourceID, replacing
// any previous result for the same source.
func (s *Store) SaveDocument(sourceID, title, model string, doc *document.Document) (*SavedDocument, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	id := uuid.New().String()
	now := time.Now()

	_, err = s.db.Exec(`
		INSERT INTO documents (id, source_id, title, model, body, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_id) DO UPDATE SET
			id = excluded.id,
			title = excluded.title,
			model = excluded.model,
			body = excluded.body,
			created_at = excluded.created_at
	`, id, sourceID, title, model, string(body), now)
	if err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}

	return &SavedDocument{
		ID:        id,
		SourceID:  sourceID,
		Title:     title,
		Model:     model,
		Document:  doc,
		CreatedAt: now,
	}, nil
}

// GetDocument retrieves the stored result for a source, or ErrNotFound.
func (s *Store) GetDocument(sourceID string) (*SavedDocument, error) {
	var (
		saved SavedDocument
		body  string
	)
	err := s.db.QueryRow(
		"SELECT id, source_id, title, model, body, created_at FROM documents WHERE source_id = ?",
		sourceID,
	).Scan(&saved.ID, &saved.SourceID, &saved.Title, &saved.Model, &body, &saved.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	var doc document.Document
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	saved.Document = &doc

	return &saved, nil
}

// ListDocuments returns recent documents without their bodies, newest
// first.
func (s *Store) ListDocuments(limit int) ([]SavedDocument, error) {
	rows, err := s.db.Query(
		"SELECT id, source_id, title, model, created_at FROM documents ORDER BY created_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []SavedDocument
	for rows.Next() {
		var d SavedDocument
		if err := rows.Scan(&d.ID, &d.SourceID, &d.Title, &d.Model, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}

	return docs, nil
}

// DeleteDocument removes the stored result for a source.
func (s *Store) DeleteDocument(sourceID string) error {
	res, err := s.db.Exec("DELETE FROM documents WHERE source_id = ?", sourceID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
