package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"focustab/internal/model"
)

type brokenStore struct{}

func (brokenStore) Name() string                                 { return "broken" }
func (brokenStore) Load(ctx context.Context) ([]byte, error)     { return nil, errors.New("disk on fire") }
func (brokenStore) Save(ctx context.Context, doc []byte) error   { return errors.New("disk on fire") }

func TestChainLoadIsTotal(t *testing.T) {
	chain := NewChain(nil, brokenStore{}, NewMemoryStore())
	st := chain.Load(context.Background())
	if st == nil {
		t.Fatal("load returned nil")
	}
	if !st.HasList(model.DefaultListName) {
		t.Fatalf("empty chain should yield the first-run default, got %+v", st)
	}
}

func TestChainSaveFallsBack(t *testing.T) {
	mem := NewMemoryStore()
	chain := NewChain(nil, brokenStore{}, mem)

	st := model.DefaultState()
	st.ActiveList = model.DefaultListName
	chain.Save(context.Background(), st)

	if _, err := mem.Load(context.Background()); err != nil {
		t.Fatalf("fallback store did not receive the document: %v", err)
	}

	loaded := chain.Load(context.Background())
	if loaded.ActiveList != st.ActiveList {
		t.Fatalf("round trip lost state: %+v", loaded)
	}
}

func TestChainLoadPrefersFirstStore(t *testing.T) {
	first := NewMemoryStore()
	second := NewMemoryStore()

	a := model.DefaultState()
	a.CurrentTheme = model.ThemeSepia
	rawA, err := encodeState(a)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Save(context.Background(), rawA); err != nil {
		t.Fatal(err)
	}

	b := model.DefaultState()
	b.CurrentTheme = model.ThemeBlack
	rawB, err := encodeState(b)
	if err != nil {
		t.Fatal(err)
	}
	if err := second.Save(context.Background(), rawB); err != nil {
		t.Fatal(err)
	}

	chain := NewChain(nil, first, second)
	if got := chain.Load(context.Background()).CurrentTheme; got != model.ThemeSepia {
		t.Fatalf("theme = %q, want the first store's document", got)
	}
}

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := &JSONStore{Path: path}

	if _, err := s.Load(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing file: got %v, want ErrNotFound", err)
	}

	st := model.DefaultState()
	st.Lists["Work"] = []model.Task{{Text: "Ship", Priority: model.PriorityHigh}}
	st.ListOrder = append(st.ListOrder, "Work")
	raw, err := encodeState(st)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(context.Background(), raw); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	loaded := model.Migrate(got)
	if len(loaded.Lists["Work"]) != 1 || loaded.Lists["Work"][0].Text != "Ship" {
		t.Fatalf("round trip lost tasks: %+v", loaded.Lists)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if entry.Name() != "state.json" {
			t.Fatalf("unexpected leftover file %q", entry.Name())
		}
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.sqlite")
	s := &SQLiteStore{Path: path}

	if _, err := s.Load(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("fresh db: got %v, want ErrNotFound", err)
	}

	doc := []byte(`{"lists": {"To-Do": []}, "activeList": "To-Do"}`)
	if err := s.Save(context.Background(), doc); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(doc) {
		t.Fatalf("got %s, want %s", got, doc)
	}

	// Saves overwrite the single document.
	doc2 := []byte(`{"lists": {"Work": []}, "activeList": "Work"}`)
	if err := s.Save(context.Background(), doc2); err != nil {
		t.Fatal(err)
	}
	got, err = s.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(doc2) {
		t.Fatalf("got %s, want %s", got, doc2)
	}
}

func TestOpenBuildsChainAndPersists(t *testing.T) {
	dir := t.TempDir()
	chain, err := Open(dir, nil)
	if err != nil {
		t.Fatal(err)
	}

	st := chain.Load(context.Background())
	st.CurrentTheme = model.ThemeSkyblue
	chain.Save(context.Background(), st)

	chain2, err := Open(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := chain2.Load(context.Background()).CurrentTheme; got != model.ThemeSkyblue {
		t.Fatalf("theme = %q after reopen", got)
	}
}

func TestDefaultDirPrecedence(t *testing.T) {
	t.Setenv("FOCUSTAB_DIR", "/tmp/from-env")

	dir, err := DefaultDir("/tmp/explicit")
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/tmp/explicit" {
		t.Fatalf("explicit dir lost: %q", dir)
	}

	dir, err = DefaultDir("")
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/tmp/from-env" {
		t.Fatalf("env dir lost: %q", dir)
	}
}
