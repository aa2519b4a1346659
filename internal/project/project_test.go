package project

import (
	"testing"
	"time"

	"focustab/internal/model"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
}

func testState() *model.AppState {
	st := model.DefaultState()
	st.Lists["To-Do"] = []model.Task{
		{Text: "Call bank", Priority: model.PriorityHigh, DueDate: "2024-06-15"},
		{Text: "Water plants", Priority: model.PriorityLow},
		{Text: "Cancel subscription", Priority: model.PriorityMedium, DueDate: "2024-06-10"},
	}
	st.Lists["Work"] = []model.Task{{Text: "Ship release", Priority: model.PriorityHigh}}
	st.ListOrder = []string{"To-Do", "Work"}
	st.Finished = []model.FinishedTask{
		{Task: model.Task{Text: "Newest done", Priority: model.PriorityMedium}, OriginalList: "Work"},
		{Task: model.Task{Text: "Oldest done", Priority: model.PriorityMedium}, OriginalList: "To-Do"},
	}
	return st
}

func TestProjectTabs(t *testing.T) {
	tree := Project(testState(), Transient{Now: fixedNow()})

	if len(tree.Tabs) != 3 {
		t.Fatalf("got %d tabs", len(tree.Tabs))
	}
	if tree.Tabs[0].Name != "To-Do" || tree.Tabs[1].Name != "Work" {
		t.Fatalf("tab order = %+v", tree.Tabs)
	}
	last := tree.Tabs[2]
	if last.Name != model.FinishedList || last.Closable {
		t.Fatalf("finished tab = %+v, want non-closable trailing tab", last)
	}
	if !tree.Tabs[0].Active {
		t.Fatal("active list tab not marked")
	}
	if !tree.ShowInputs {
		t.Fatal("list tabs must show inputs")
	}
}

func TestProjectSearchKeepsCanonicalIndexes(t *testing.T) {
	tree := Project(testState(), Transient{SearchQuery: "ca", Now: fixedNow()})

	if len(tree.Tasks) != 2 {
		t.Fatalf("got %d rows: %+v", len(tree.Tasks), tree.Tasks)
	}
	// Case-insensitive substring match; indexes stay canonical so mutations
	// hit the right task even under a filter.
	if tree.Tasks[0].Text != "Call bank" || tree.Tasks[0].Index != 0 {
		t.Fatalf("row 0 = %+v", tree.Tasks[0])
	}
	if tree.Tasks[1].Text != "Cancel subscription" || tree.Tasks[1].Index != 2 {
		t.Fatalf("row 1 = %+v", tree.Tasks[1])
	}
}

func TestProjectDueBadges(t *testing.T) {
	tree := Project(testState(), Transient{Now: fixedNow()})

	if badge := tree.Tasks[0].Due; badge == nil || !badge.Today || badge.Label != "Today" {
		t.Fatalf("today badge = %+v", tree.Tasks[0].Due)
	}
	if tree.Tasks[1].Due != nil {
		t.Fatalf("no-due task got badge %+v", tree.Tasks[1].Due)
	}
	if badge := tree.Tasks[2].Due; badge == nil || !badge.Overdue || badge.Label != "Overdue (Jun 10)" {
		t.Fatalf("overdue badge = %+v", tree.Tasks[2].Due)
	}
}

func TestDueLabel(t *testing.T) {
	now := fixedNow()
	cases := []struct {
		due  string
		want string
	}{
		{"", ""},
		{"garbage", ""},
		{"2024-06-14", "Overdue (Jun 14)"},
		{"2024-06-15", "Today"},
		{"2024-06-16", "Tomorrow"},
		{"2024-06-20", "Jun 20"},
	}
	for _, tc := range cases {
		badge := DueLabel(tc.due, now)
		got := ""
		if badge != nil {
			got = badge.Label
		}
		if got != tc.want {
			t.Fatalf("DueLabel(%q) = %q, want %q", tc.due, got, tc.want)
		}
	}
}

func TestDueLabelAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	// 2024-03-10 is the US spring-forward date: the next local midnight is
	// only 23 hours away, which must not collapse tomorrow into today.
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, loc)

	cases := []struct {
		due  string
		want string
	}{
		{"2024-03-10", "Today"},
		{"2024-03-11", "Tomorrow"},
		{"2024-03-12", "Mar 12"},
		{"2024-03-09", "Overdue (Mar 9)"},
	}
	for _, tc := range cases {
		badge := DueLabel(tc.due, now)
		if badge == nil || badge.Label != tc.want {
			t.Fatalf("DueLabel(%q) = %+v, want %q", tc.due, badge, tc.want)
		}
	}
}

func TestProjectFinishedView(t *testing.T) {
	st := testState()
	st.ActiveList = model.FinishedList
	tree := Project(st, Transient{Now: fixedNow()})

	if tree.ShowInputs {
		t.Fatal("finished tab must hide inputs")
	}
	if tree.Tasks != nil {
		t.Fatal("finished tab should not carry task rows")
	}
	if len(tree.Finished) != 2 {
		t.Fatalf("got %d finished rows", len(tree.Finished))
	}
	if tree.Finished[0].Text != "Newest done" || tree.Finished[0].OriginalList != "Work" {
		t.Fatalf("row 0 = %+v", tree.Finished[0])
	}
	if tree.Finished[0].Index != 0 || tree.Finished[1].Index != 1 {
		t.Fatalf("restore indexes wrong: %+v", tree.Finished)
	}
}

func TestProjectEditingFlag(t *testing.T) {
	tree := Project(testState(), Transient{
		Editing: &EditRef{List: "To-Do", Index: 1},
		Now:     fixedNow(),
	})
	if tree.Tasks[0].Editing || !tree.Tasks[1].Editing {
		t.Fatalf("editing flags = %+v", tree.Tasks)
	}
}

func TestProjectBackgroundAndGrid(t *testing.T) {
	st := testState()
	st.CustomBackgrounds = []model.Background{{URL: "https://images.unsplash.com/custom?w=1920&h=1080&fit=crop&q=80"}}
	st.BackgroundImageIndex = 4
	st.CurrentTheme = model.ThemeSepia

	tree := Project(st, Transient{Now: fixedNow()})

	if tree.Background.Theme != model.ThemeSepia {
		t.Fatalf("background theme = %q", tree.Background.Theme)
	}
	if tree.Background.URL == "" {
		t.Fatal("background URL missing")
	}

	defaultCount := len(model.DefaultBackgrounds())
	if len(tree.Grid.Tiles) != defaultCount+1 {
		t.Fatalf("got %d tiles", len(tree.Grid.Tiles))
	}
	for i, tile := range tree.Grid.Tiles {
		wantDeletable := i >= defaultCount
		if tile.Deletable != wantDeletable {
			t.Fatalf("tile %d deletable = %v", i, tile.Deletable)
		}
		if tile.Active != (i == 4) {
			t.Fatalf("tile %d active = %v", i, tile.Active)
		}
	}
	if len(tree.Grid.Swatches) != len(model.DefaultSwatches()) {
		t.Fatalf("swatches = %v", tree.Grid.Swatches)
	}
}
