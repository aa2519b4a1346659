package engine

import (
	"context"
	"errors"
	"testing"

	"focustab/internal/model"
)

type recordingSaver struct {
	saves int
}

func (s *recordingSaver) Save(ctx context.Context, st *model.AppState) { s.saves++ }

func newTestEngine() (*Engine, *recordingSaver) {
	saver := &recordingSaver{}
	return New(model.DefaultState(), saver, nil), saver
}

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func wantRejection(t *testing.T, err error) {
	t.Helper()
	var rej Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("got %v, want a rejection", err)
	}
}

func TestCreateListValidation(t *testing.T) {
	eng, saver := newTestEngine()

	wantRejection(t, eng.CreateList("   "))
	wantRejection(t, eng.CreateList(model.FinishedList))
	if saver.saves != 0 {
		t.Fatal("rejected operations must not persist")
	}

	mustNoErr(t, eng.CreateList("Work"))
	if eng.State().ActiveList != "Work" {
		t.Fatalf("activeList = %q, want new list", eng.State().ActiveList)
	}
	wantRejection(t, eng.CreateList("Work"))
	if saver.saves != 1 {
		t.Fatalf("saves = %d, want 1", saver.saves)
	}
}

func TestDeleteListKeepsAtLeastOne(t *testing.T) {
	eng, _ := newTestEngine()

	mustNoErr(t, eng.DeleteList(model.DefaultListName))
	st := eng.State()
	if !st.HasList(model.DefaultListName) {
		t.Fatal("deleting the last list must recreate the default list")
	}
	if st.ActiveList != model.DefaultListName {
		t.Fatalf("activeList = %q", st.ActiveList)
	}
}

func TestDeleteActiveListActivatesFirstRemaining(t *testing.T) {
	eng, _ := newTestEngine()
	mustNoErr(t, eng.CreateList("Work"))
	mustNoErr(t, eng.CreateList("Home"))

	mustNoErr(t, eng.DeleteList("Home"))
	if got := eng.State().ActiveList; got != model.DefaultListName {
		t.Fatalf("activeList = %q, want first remaining list", got)
	}

	wantRejection(t, eng.DeleteList("Home"))
}

func TestAddTaskValidation(t *testing.T) {
	eng, _ := newTestEngine()

	wantRejection(t, eng.AddTask("  ", "", ""))
	wantRejection(t, eng.AddTask("x", "urgent", ""))
	wantRejection(t, eng.AddTask("x", "", "tomorrow"))

	mustNoErr(t, eng.AddTask("  Buy milk  ", "", "2024-07-01"))
	tasks := eng.State().Lists[model.DefaultListName]
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks", len(tasks))
	}
	if tasks[0].Text != "Buy milk" {
		t.Fatalf("text = %q, want trimmed", tasks[0].Text)
	}
	if tasks[0].Priority != model.PriorityMedium {
		t.Fatalf("priority = %q, want default medium", tasks[0].Priority)
	}

	mustNoErr(t, eng.SelectList(model.FinishedList))
	wantRejection(t, eng.AddTask("nope", "", ""))
}

func TestEditTaskKeepsPriorityWhenUnset(t *testing.T) {
	eng, _ := newTestEngine()
	mustNoErr(t, eng.AddTask("Draft report", model.PriorityHigh, ""))

	mustNoErr(t, eng.EditTask(model.DefaultListName, 0, "Final report", "", ""))
	task := eng.State().Lists[model.DefaultListName][0]
	if task.Text != "Final report" || task.Priority != model.PriorityHigh {
		t.Fatalf("edit lost priority: %+v", task)
	}

	wantRejection(t, eng.EditTask(model.DefaultListName, 0, "   ", "", ""))
	wantRejection(t, eng.EditTask(model.DefaultListName, 5, "x", "", ""))
}

func TestCompleteAndRestoreRoundTrip(t *testing.T) {
	eng, _ := newTestEngine()
	mustNoErr(t, eng.CreateList("Work"))
	mustNoErr(t, eng.AddTask("First", "", ""))
	mustNoErr(t, eng.AddTask("Second", "", ""))

	mustNoErr(t, eng.CompleteTask("Work", 0))
	mustNoErr(t, eng.CompleteTask("Work", 0))

	st := eng.State()
	if len(st.Lists["Work"]) != 0 {
		t.Fatalf("work list = %+v", st.Lists["Work"])
	}
	// Newest first.
	if st.Finished[0].Task.Text != "Second" || st.Finished[1].Task.Text != "First" {
		t.Fatalf("archive order = %+v", st.Finished)
	}
	if st.Finished[0].OriginalList != "Work" {
		t.Fatalf("provenance = %q", st.Finished[0].OriginalList)
	}

	mustNoErr(t, eng.RestoreTask(1))
	if len(st.Finished) != 1 {
		t.Fatalf("finished = %+v", st.Finished)
	}
	if got := st.Lists["Work"]; len(got) != 1 || got[0].Text != "First" {
		t.Fatalf("restored list = %+v", got)
	}
}

func TestRestoreRecreatesDeletedOriginList(t *testing.T) {
	eng, _ := newTestEngine()
	mustNoErr(t, eng.CreateList("Work"))
	mustNoErr(t, eng.AddTask("Ship it", "", ""))
	mustNoErr(t, eng.CompleteTask("Work", 0))
	mustNoErr(t, eng.DeleteList("Work"))

	mustNoErr(t, eng.RestoreTask(0))
	st := eng.State()
	if !st.HasList("Work") {
		t.Fatal("restore must recreate the origin list")
	}
	if st.Lists["Work"][0].Text != "Ship it" {
		t.Fatalf("restored = %+v", st.Lists["Work"])
	}
	if st.ListOrder[len(st.ListOrder)-1] != "Work" {
		t.Fatalf("recreated list not appended to tab order: %v", st.ListOrder)
	}

	wantRejection(t, eng.RestoreTask(0))
}

func TestDeleteTaskIsSilentOnBadInput(t *testing.T) {
	eng, saver := newTestEngine()
	mustNoErr(t, eng.AddTask("Keep me", "", ""))
	before := saver.saves

	mustNoErr(t, eng.DeleteTask(model.FinishedList, 0))
	mustNoErr(t, eng.DeleteTask(model.DefaultListName, 7))
	mustNoErr(t, eng.DeleteTask("Ghost", 0))
	if saver.saves != before {
		t.Fatal("no-op deletes must not persist")
	}

	mustNoErr(t, eng.DeleteTask(model.DefaultListName, 0))
	if len(eng.State().Lists[model.DefaultListName]) != 0 {
		t.Fatal("task not deleted")
	}
}

func TestSearchQueryIsTransient(t *testing.T) {
	eng, saver := newTestEngine()
	eng.SetSearchQuery("milk")
	if eng.SearchQuery() != "milk" {
		t.Fatalf("query = %q", eng.SearchQuery())
	}
	if saver.saves != 0 {
		t.Fatal("search must never persist")
	}
}
