package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/jamwaves/internal/db"
)

const (
	appName    = "jamwaves"
	dbFileName = "jamwaves.db"
)

// Manager is a key-value store backed by a SQLite database.
type Manager struct {
	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

// Open opens the database at its default XDG data location.
func Open() (*Manager, error) {
	dbPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens (and creates if needed) the database at path.
// The special path ":memory:" opens a private in-memory database.
func OpenPath(path string) (*Manager, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps ":memory:" databases consistent.
	conn.SetMaxOpenConns(1)

	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Manager{db: conn}, nil
}

// DefaultPath returns the XDG location of the database file.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// Get returns the value stored under key. The boolean is false when the
// key has never been set.
func (m *Manager) Get(key string) (string, bool, error) {
	var value sql.Null[string]
	err := m.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return db.Or(value, ""), true, nil
}

// Set stores value under key, replacing any previous value.
func (m *Manager) Set(key, value string) error {
	return db.PutKV(context.Background(), m.db, key, value, time.Now())
}

// SetMany stores every pair atomically.
func (m *Manager) SetMany(values map[string]string) error {
	ctx := context.Background()
	now := time.Now()
	return db.WithTx(ctx, m.db, func(tx *sql.Tx) error {
		for k, v := range values {
			if err := db.PutKV(ctx, tx, k, v, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes key. Deleting a missing key is not an error.
func (m *Manager) Delete(key string) error {
	_, err := m.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

// UpdatedAt returns when key was last written.
func (m *Manager) UpdatedAt(key string) (time.Time, bool, error) {
	var ts sql.Null[int64]
	err := m.db.QueryRow(`SELECT updated_at FROM kv WHERE key = ?`, key).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return time.Unix(db.Or(ts, 0), 0), true, nil
}

// DB exposes the underlying handle.
func (m *Manager) DB() *sql.DB {
	return m.db
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	return m.db.Close()
}
