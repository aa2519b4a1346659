package store

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"focustab/internal/model"
)

const (
	sqliteFileName = "state.sqlite"
	jsonFileName   = "state.json"

	// DocumentKey is the single key the app state document lives under.
	DocumentKey = "appState"
)

// ErrNotFound is returned by DocumentStore.Load when no document has been
// saved yet.
var ErrNotFound = errors.New("store: document not found")

// DocumentStore persists one opaque JSON document. The app treats each store
// as an async get/set capability; failure handling lives in Chain.
type DocumentStore interface {
	Name() string
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, doc []byte) error
}

type Store struct {
	Dir string
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

// SQLitePath and JSONPath expose the on-disk layout for diagnostics.
func (s Store) SQLitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s Store) JSONPath() string {
	return filepath.Join(s.Dir, jsonFileName)
}

// DefaultDir resolves the store directory: an explicit dir wins, then the
// FOCUSTAB_DIR environment override, then ~/.focustab.
func DefaultDir(explicit string) (string, error) {
	if d := strings.TrimSpace(explicit); d != "" {
		return d, nil
	}
	if d := strings.TrimSpace(os.Getenv("FOCUSTAB_DIR")); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".focustab"), nil
}

// Chain is the persistence fallback chain: a primary store, a secondary
// fallback, and a last-resort in-memory store so the app stays interactive
// even when every durable store fails.
type Chain struct {
	stores []DocumentStore
	log    *slog.Logger
}

func NewChain(log *slog.Logger, stores ...DocumentStore) *Chain {
	if log == nil {
		log = slog.Default()
	}
	return &Chain{stores: stores, log: log}
}

// Open builds the standard chain for a store directory: SQLite primary,
// JSON file secondary, memory tertiary.
func Open(dir string, log *slog.Logger) (*Chain, error) {
	s := Store{Dir: dir}
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return NewChain(log,
		&SQLiteStore{Path: s.SQLitePath()},
		&JSONStore{Path: s.JSONPath()},
		NewMemoryStore(),
	), nil
}

// Load reads the app state from the first store in the chain that yields a
// document, migrating it to the canonical shape. It is total: when every
// store fails or none has a document, the first-run default is returned.
func (c *Chain) Load(ctx context.Context) *model.AppState {
	for _, st := range c.stores {
		raw, err := st.Load(ctx)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				c.log.Warn("state load failed", "store", st.Name(), "error", err)
			}
			continue
		}
		return model.Migrate(raw)
	}
	return model.DefaultState()
}

// Save writes the state to the primary store. Failures are logged, never
// returned: in-memory state stays the source of truth for the session and the
// next successful save reconciles durable storage. On primary failure the
// document falls through to the next store in the chain.
func (c *Chain) Save(ctx context.Context, st *model.AppState) {
	raw, err := encodeState(st)
	if err != nil {
		c.log.Error("state encode failed", "error", err)
		return
	}
	for i, target := range c.stores {
		if err := target.Save(ctx, raw); err != nil {
			c.log.Warn("state save failed", "store", target.Name(), "error", err)
			continue
		}
		if i > 0 {
			c.log.Info("state saved to fallback store", "store", target.Name())
		}
		return
	}
}
