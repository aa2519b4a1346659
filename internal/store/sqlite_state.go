package store

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore is the primary state store: one JSON document per key in a
// small key/value table. SQLite gives us atomic writes and survives partial
// crashes better than a bare file, which is why it sits first in the chain.
type SQLiteStore struct {
	Path string
}

func (s *SQLiteStore) Name() string { return "sqlite" }

func (s *SQLiteStore) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", sqliteDSN(s.Path))
	if err != nil {
		return nil, err
	}
	// modernc.org/sqlite is happiest with a single connection.
	db.SetMaxOpenConns(1)
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// modernc.org/sqlite uses driver name "sqlite" and prefers a file: DSN.
// mode=rwc creates the database file if it doesn't exist.
func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: path}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS app_state (
		k TEXT PRIMARY KEY,
		json TEXT NOT NULL,
		updated_at_unixms INTEGER NOT NULL
	);`)
	return err
}

func (s *SQLiteStore) Load(ctx context.Context) ([]byte, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var doc string
	err = db.QueryRowContext(ctx, `SELECT json FROM app_state WHERE k = ?`, DocumentKey).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(doc) == "" {
		return nil, ErrNotFound
	}
	return []byte(doc), nil
}

func (s *SQLiteStore) Save(ctx context.Context, doc []byte) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx,
		`INSERT OR REPLACE INTO app_state(k, json, updated_at_unixms) VALUES(?, ?, ?)`,
		DocumentKey, string(doc), time.Now().UTC().UnixMilli())
	return err
}
