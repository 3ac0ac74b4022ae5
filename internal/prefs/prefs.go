// Package prefs is the local key/value preference store: the small pieces
// of app state (stored credentials, client id, flags) that live outside
// the structured record store.
package prefs

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Keys carried over from the mobile app's preference storage
const (
	KeyEmail      = "saved_email"
	KeyPassword   = "saved_password"
	KeyClientID   = "client_id"
	KeyPushID     = "push_id"
	KeyIDFA       = "idfa_of_user"
	KeyOnboarding = "hasSeenOnboarding"
	KeyFavorites  = "favoriteFish"
)

const schema = `
CREATE TABLE IF NOT EXISTS prefs (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// Prefs persists key/value pairs. Writes are durable before returning.
type Prefs struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens (and if needed initializes) the preference database
func Open(path string, log *zap.Logger) (*Prefs, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open prefs: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init prefs schema: %w", err)
	}

	return &Prefs{db: db, log: log}, nil
}

// Close closes the underlying database
func (p *Prefs) Close() error {
	return p.db.Close()
}

// Get returns the stored value for key, and whether it was present.
// Query failures read as absent, but are logged so a broken database is
// not silently indistinguishable from a fresh one.
func (p *Prefs) Get(key string) (string, bool) {
	var value string
	err := p.db.QueryRow("SELECT value FROM prefs WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		p.log.Warn("read pref", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return value, true
}

// Set stores a value for key, replacing any previous value
func (p *Prefs) Set(key, value string) error {
	_, err := p.db.Exec("INSERT OR REPLACE INTO prefs (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		return fmt.Errorf("set pref %s: %w", key, err)
	}
	return nil
}

// Delete removes a key; deleting an absent key is not an error
func (p *Prefs) Delete(key string) error {
	if _, err := p.db.Exec("DELETE FROM prefs WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete pref %s: %w", key, err)
	}
	return nil
}

// GetBool reads a key as a boolean flag; absent or non-"true" values are false
func (p *Prefs) GetBool(key string) bool {
	v, ok := p.Get(key)
	return ok && v == "true"
}

// SetBool stores a boolean flag
func (p *Prefs) SetBool(key string, v bool) error {
	if v {
		return p.Set(key, "true")
	}
	return p.Set(key, "false")
}
