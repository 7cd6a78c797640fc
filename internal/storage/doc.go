package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// DocumentKey is the row key under which the tracker state is stored.
const DocumentKey = "oathly"

// DocStore persists the whole Document as one JSON blob in the documents
// table. Every save is a full overwrite; there is no partial update.
type DocStore struct {
	db *sql.DB
}

func NewDocStore(db *sql.DB) *DocStore {
	return &DocStore{db: db}
}

// Load reads the stored document. A missing row yields an empty Document
// (no targets, no active pointer), which the caller treats as first run.
func (s *DocStore) Load(ctx context.Context) (*Document, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM documents WHERE key = ?`, DocumentKey)

	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return &Document{}, nil
		}
		return nil, fmt.Errorf("document load: %w", err)
	}

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("document decode: %w", err)
	}
	return &doc, nil
}

// Save overwrites the stored document.
func (s *DocStore) Save(ctx context.Context, doc *Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("document encode: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, DocumentKey, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("document save: %w", err)
	}
	return nil
}
