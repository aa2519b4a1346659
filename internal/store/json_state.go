package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"focustab/internal/model"
)

func encodeState(st *model.AppState) ([]byte, error) {
	return json.MarshalIndent(st, "", "  ")
}

// JSONStore keeps the state document in a plain JSON file. It is the local
// fallback behind the SQLite store and doubles as the mirror target when the
// primary write fails.
type JSONStore struct {
	Path string
}

func (s *JSONStore) Name() string { return "json" }

func (s *JSONStore) Load(ctx context.Context) ([]byte, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(b) == 0 {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *JSONStore) Save(ctx context.Context, doc []byte) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	// Unique temp file + atomic rename so concurrent writers (CLI + TUI)
	// cannot corrupt the document.
	f, err := os.CreateTemp(dir, filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(doc); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, 0o644)
	return os.Rename(tmp, s.Path)
}

// MemoryStore is the last-resort store when the host storage is entirely
// unavailable. Durability is the session only.
type MemoryStore struct {
	doc []byte
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Name() string { return "memory" }

func (s *MemoryStore) Load(ctx context.Context) ([]byte, error) {
	if len(s.doc) == 0 {
		return nil, ErrNotFound
	}
	return s.doc, nil
}

func (s *MemoryStore) Save(ctx context.Context, doc []byte) error {
	s.doc = append([]byte(nil), doc...)
	return nil
}
