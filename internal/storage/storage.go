package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/studiowebux/doccli/internal/types"
)

// AutosaveKey is the fixed key under which the autosaved document lives
const AutosaveKey = "autosave"

// Store is a small sqlite-backed key-value store holding serialized
// documents. One row per key, overwritten on each save.
type Store struct {
	db *sql.DB
}

// Open opens (and creates if needed) the document store at dbPath
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open document store: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize storage schema: %w", err)
	}

	return nil
}

// Save writes a serialized document under the given key, replacing any
// previous payload
func (s *Store) Save(key string, payload []byte) error {
	query := `
		INSERT INTO documents (key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`

	timestamp := time.Now().Local().Format("2006-01-02 15:04:05")

	if _, err := s.db.Exec(query, key, payload, timestamp); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	return nil
}

// Load returns the document stored under key. A missing key or a
// payload that no longer parses as a document both return (nil, nil):
// a corrupt autosave must not take the session down, it simply means
// there is no saved document.
func (s *Store) Load(key string) (*types.Document, error) {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM documents WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	doc, err := types.Decode(payload)
	if err != nil {
		return nil, nil
	}
	if len(doc.Pages) == 0 {
		return nil, nil
	}

	return doc, nil
}

// Delete removes the document stored under key
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM documents WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
