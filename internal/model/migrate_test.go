package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestMigrateEmptyAndGarbage(t *testing.T) {
	for _, raw := range [][]byte{nil, {}, []byte("not json"), []byte(`"just a string"`)} {
		st := Migrate(raw)
		if !reflect.DeepEqual(st, DefaultState()) {
			t.Fatalf("Migrate(%q) = %+v, want default state", raw, st)
		}
	}
}

func TestMigrateStringTaskEra(t *testing.T) {
	raw := []byte(`{
		"lists": {"To-Do": ["Buy milk", "Call bank"]},
		"finished": ["Old chore"],
		"activeList": "To-Do"
	}`)
	st := Migrate(raw)

	tasks := st.Lists["To-Do"]
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].Text != "Buy milk" || tasks[0].Priority != PriorityMedium {
		t.Fatalf("string task not wrapped: %+v", tasks[0])
	}

	if len(st.Finished) != 1 {
		t.Fatalf("got %d finished, want 1", len(st.Finished))
	}
	if st.Finished[0].Task.Text != "Old chore" {
		t.Fatalf("finished text = %q", st.Finished[0].Task.Text)
	}
	if st.Finished[0].OriginalList != ArchivedListName {
		t.Fatalf("finished provenance = %q, want %q", st.Finished[0].OriginalList, ArchivedListName)
	}
}

func TestMigrateFlatFinishedEra(t *testing.T) {
	raw := []byte(`{
		"lists": {"To-Do": [{"text": "Alive", "priority": "high"}]},
		"finished": [{"text": "Done deal", "priority": "low"}],
		"activeList": "To-Do"
	}`)
	st := Migrate(raw)

	if len(st.Finished) != 1 {
		t.Fatalf("got %d finished, want 1", len(st.Finished))
	}
	ft := st.Finished[0]
	if ft.Task.Text != "Done deal" || ft.Task.Priority != PriorityLow {
		t.Fatalf("flat finished entry not wrapped: %+v", ft)
	}
	if ft.OriginalList != ArchivedListName {
		t.Fatalf("provenance = %q, want %q", ft.OriginalList, ArchivedListName)
	}
}

func TestMigrateCanonicalIsIdempotent(t *testing.T) {
	st := DefaultState()
	st.Lists["Work"] = []Task{{Text: "Ship it", Priority: PriorityHigh, DueDate: "2024-07-01"}}
	st.ListOrder = append(st.ListOrder, "Work")
	st.Finished = []FinishedTask{{Task: Task{Text: "Old", Priority: PriorityMedium}, OriginalList: "Work"}}
	st.ActiveList = "Work"
	st.CurrentTheme = ThemeSepia
	st.ThemeLocked = true
	st.CustomBackgrounds = []Background{{URL: "https://images.unsplash.com/photo-x?w=1920&h=1080&fit=crop&q=80", Theme: ThemeBlack}}
	st.BackgroundImageIndex = 4

	raw, err := json.Marshal(st)
	if err != nil {
		t.Fatal(err)
	}
	once := Migrate(raw)
	if !reflect.DeepEqual(once, st) {
		t.Fatalf("canonical document changed by migration:\n got %+v\nwant %+v", once, st)
	}

	raw2, err := json.Marshal(once)
	if err != nil {
		t.Fatal(err)
	}
	twice := Migrate(raw2)
	if !reflect.DeepEqual(twice, once) {
		t.Fatalf("migration not idempotent:\n got %+v\nwant %+v", twice, once)
	}
}

func TestMigrateThemeClassNames(t *testing.T) {
	st := Migrate([]byte(`{"lists": {"To-Do": []}, "currentTheme": "theme-skyblue"}`))
	if st.CurrentTheme != ThemeSkyblue {
		t.Fatalf("theme = %q, want skyblue", st.CurrentTheme)
	}

	st = Migrate([]byte(`{"lists": {"To-Do": []}, "currentTheme": "neon"}`))
	if st.CurrentTheme != DefaultTheme {
		t.Fatalf("unknown theme = %q, want default", st.CurrentTheme)
	}
}

func TestMigrateThemeLockedAbsentVsFalse(t *testing.T) {
	st := Migrate([]byte(`{"lists": {"To-Do": []}}`))
	if st.ThemeLocked {
		t.Fatal("absent themeLocked should migrate to false")
	}
	st = Migrate([]byte(`{"lists": {"To-Do": []}, "themeLocked": true}`))
	if !st.ThemeLocked {
		t.Fatal("themeLocked=true dropped")
	}
}

func TestMigrateStoredFinishedListFolds(t *testing.T) {
	raw := []byte(`{
		"lists": {"Finished": ["stray"], "Home": []},
		"activeList": "Finished"
	}`)
	st := Migrate(raw)

	if _, ok := st.Lists[FinishedList]; ok {
		t.Fatal("stored Finished list survived migration")
	}
	if len(st.Lists["Home"]) != 1 || st.Lists["Home"][0].Text != "stray" {
		t.Fatalf("stray task not folded into first list: %+v", st.Lists)
	}
	// activeList "Finished" is the synthetic tab, which remains selectable.
	if st.ActiveList != FinishedList {
		t.Fatalf("activeList = %q", st.ActiveList)
	}
}

func TestMigrateClampsDanglingReferences(t *testing.T) {
	raw := []byte(`{
		"lists": {"A": [], "B": []},
		"listOrder": ["B", "Ghost", "A"],
		"activeList": "Ghost",
		"backgroundImageIndex": 99
	}`)
	st := Migrate(raw)

	if !reflect.DeepEqual(st.ListOrder, []string{"B", "A"}) {
		t.Fatalf("listOrder = %v", st.ListOrder)
	}
	if st.ActiveList != "B" {
		t.Fatalf("activeList = %q, want first ordered list", st.ActiveList)
	}
	if st.BackgroundImageIndex != 0 {
		t.Fatalf("backgroundImageIndex = %d, want 0", st.BackgroundImageIndex)
	}
}

func TestMigrateListOrderAppendsMissingSorted(t *testing.T) {
	raw := []byte(`{"lists": {"Zeta": [], "Alpha": [], "Mid": []}, "listOrder": ["Mid"]}`)
	st := Migrate(raw)
	if !reflect.DeepEqual(st.ListOrder, []string{"Mid", "Alpha", "Zeta"}) {
		t.Fatalf("listOrder = %v", st.ListOrder)
	}
}

func TestMigrateInvalidPriorityDefaultsMedium(t *testing.T) {
	raw := []byte(`{"lists": {"To-Do": [{"text": "x", "priority": "urgent"}]}}`)
	st := Migrate(raw)
	if got := st.Lists["To-Do"][0].Priority; got != PriorityMedium {
		t.Fatalf("priority = %q, want medium", got)
	}
}
