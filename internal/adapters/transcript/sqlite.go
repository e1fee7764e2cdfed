package transcript

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"docchat/internal/domain/entities"
)

// SQLiteStore implements ports.TranscriptStore with SQLite persistence so a
// chat transcript survives restarts within one session.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the transcript database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = filepath.Join(".", "data", "transcript.db")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return store, nil
}

// initSchema creates the messages table. Append order is rowid order.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		role TEXT NOT NULL,
		artifacts TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append stores one message at the end of the transcript.
func (s *SQLiteStore) Append(ctx context.Context, msg entities.Message) error {
	encoded, err := encodeArtifacts(msg.Artifacts)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO messages (id, role, artifacts) VALUES (?, ?, ?)`,
		msg.ID.String(), msg.Role, string(encoded),
	)
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	return nil
}

// Load returns all stored messages in append order.
func (s *SQLiteStore) Load(ctx context.Context) ([]entities.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, role, artifacts FROM messages ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var messages []entities.Message
	for rows.Next() {
		var id, role, raw string
		if err := rows.Scan(&id, &role, &raw); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}

		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parsing message id: %w", err)
		}
		artifacts, err := decodeArtifacts([]byte(raw))
		if err != nil {
			return nil, err
		}
		messages = append(messages, entities.Message{ID: parsed, Role: role, Artifacts: artifacts})
	}
	return messages, rows.Err()
}

// Clear removes the whole transcript.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM messages`)
	return err
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
