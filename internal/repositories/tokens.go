package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/insure/internal/models"
)

// The two fixed entry names in durable storage. Absence of either is
// treated as no session.
const (
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
)

// TokenRepository persists the session token pair across process restarts.
type TokenRepository struct {
	db *sql.DB
}

// NewTokenRepository creates a new [TokenRepository] with the given database connection
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Load reads the persisted token pair. It returns (nil, nil) when either
// entry is missing; callers decide how to treat read errors.
func (r *TokenRepository) Load() (*models.TokenPair, error) {
	query := `SELECT name, value FROM session_tokens WHERE name IN (?, ?)`

	rows, err := r.db.Query(query, accessTokenKey, refreshTokenKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query session tokens: %w", err)
	}
	defer rows.Close()

	var pair models.TokenPair
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("failed to scan session token: %w", err)
		}
		switch name {
		case accessTokenKey:
			pair.AccessToken = value
		case refreshTokenKey:
			pair.RefreshToken = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	if !pair.Complete() {
		return nil, nil
	}

	return &pair, nil
}

// Save writes both entries in one transaction so a partial pair can never be
// observed, even across a crash mid-write.
func (r *TokenRepository) Save(pair models.TokenPair) error {
	if !pair.Complete() {
		return fmt.Errorf("refusing to persist partial token pair")
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO session_tokens (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	now := time.Now()
	for name, value := range map[string]string{
		accessTokenKey:  pair.AccessToken,
		refreshTokenKey: pair.RefreshToken,
	} {
		if _, err := tx.Exec(query, name, value, now); err != nil {
			return fmt.Errorf("failed to save %s: %w", name, err)
		}
	}

	return tx.Commit()
}

// Clear removes both entries. Clearing an empty store is not an error.
func (r *TokenRepository) Clear() error {
	_, err := r.db.Exec(`DELETE FROM session_tokens WHERE name IN (?, ?)`, accessTokenKey, refreshTokenKey)
	if err != nil {
		return fmt.Errorf("failed to clear session tokens: %w", err)
	}
	return nil
}
