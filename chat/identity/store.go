package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
)

const usersSchema = `
CREATE TABLE IF NOT EXISTS users (
	username      TEXT PRIMARY KEY,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMP NOT NULL
);
`

// SQLiteUserStore persists users in a SQLite database.
type SQLiteUserStore struct {
	db *sql.DB
}

// NewSQLiteUserStore creates the users table if needed and returns the store.
func NewSQLiteUserStore(db *sql.DB) (*SQLiteUserStore, error) {
	if _, err := db.Exec(usersSchema); err != nil {
		return nil, fmt.Errorf("failed to create users schema: %w", err)
	}
	return &SQLiteUserStore{db: db}, nil
}

func (s *SQLiteUserStore) Create(ctx context.Context, username, passwordHash string) error {
	query := "INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)"
	if _, err := s.db.ExecContext(ctx, query, username, passwordHash, time.Now()); err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return ErrUserExists
		}
		return fmt.Errorf("failed to insert user %s: %w", username, err)
	}
	return nil
}

func (s *SQLiteUserStore) PasswordHash(ctx context.Context, username string) (string, error) {
	var hash string
	query := "SELECT password_hash FROM users WHERE username = ?"
	if err := s.db.QueryRowContext(ctx, query, username).Scan(&hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to query user %s: %w", username, err)
	}
	return hash, nil
}

// MemoryUserStore keeps users in memory for tests and the -memory flag.
type MemoryUserStore struct {
	mu     sync.RWMutex
	hashes map[string]string
}

// NewMemoryUserStore creates an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{hashes: make(map[string]string)}
}

func (s *MemoryUserStore) Create(ctx context.Context, username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.hashes[username]; exists {
		return ErrUserExists
	}
	s.hashes[username] = passwordHash
	return nil
}

func (s *MemoryUserStore) PasswordHash(ctx context.Context, username string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hash, exists := s.hashes[username]
	if !exists {
		return "", ErrInvalidCredentials
	}
	return hash, nil
}
