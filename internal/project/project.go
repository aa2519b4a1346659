// Package project derives the renderable view from the canonical state plus
// transient UI state. Everything here is pure: the same state and transient
// inputs always produce the same tree, which is what makes the view layer
// testable without a terminal.
package project

import (
	"strings"
	"time"

	"focustab/internal/model"
)

// Transient is UI state that is never persisted.
type Transient struct {
	SearchQuery string

	// Editing marks the task currently open in an inline edit form, if any.
	Editing *EditRef

	// Now anchors due-date labels; zero means time.Now().
	Now time.Time
}

// EditRef identifies a task by list name and canonical index.
type EditRef struct {
	List  string
	Index int
}

// Tree is the renderable projection consumed by the view layer.
type Tree struct {
	Tabs  []Tab
	Title string

	// ShowInputs is false on the Finished tab, which is read-only apart from
	// restores.
	ShowInputs bool

	// Tasks is the active list's visible rows (nil on the Finished tab).
	Tasks []TaskRow

	// Finished is the archive view, newest first (nil on list tabs).
	Finished []FinishedRow

	Background BackgroundView
	Grid       GridView
}

type Tab struct {
	Name   string
	Active bool

	// Closable is false for the synthetic Finished tab.
	Closable bool
}

// TaskRow is one visible task. Index is the canonical position in the
// unfiltered list; mutations must use it, not the display position, since
// two tasks may share identical text.
type TaskRow struct {
	Index    int
	Text     string
	Priority model.Priority
	Due      *DueBadge
	Editing  bool
}

type DueBadge struct {
	Label   string
	Overdue bool
	Today   bool
}

type FinishedRow struct {
	Index        int
	Text         string
	OriginalList string
}

type BackgroundView struct {
	URL   string
	Theme model.Theme
}

// GridView is the background chooser: one tile per catalog entry plus the
// add-image and custom-color affordances.
type GridView struct {
	Tiles    []GridTile
	Swatches []string
}

type GridTile struct {
	Index     int
	ThumbURL  string
	Active    bool
	Deletable bool
}

func Project(st *model.AppState, tr Transient) Tree {
	tree := Tree{
		Title:      st.ActiveList,
		ShowInputs: st.ActiveList != model.FinishedList,
	}

	for _, name := range st.ListOrder {
		tree.Tabs = append(tree.Tabs, Tab{
			Name:     name,
			Active:   name == st.ActiveList,
			Closable: true,
		})
	}
	tree.Tabs = append(tree.Tabs, Tab{
		Name:   model.FinishedList,
		Active: st.ActiveList == model.FinishedList,
	})

	if st.ActiveList == model.FinishedList {
		tree.Finished = make([]FinishedRow, 0, len(st.Finished))
		for i, entry := range st.Finished {
			tree.Finished = append(tree.Finished, FinishedRow{
				Index:        i,
				Text:         entry.Task.Text,
				OriginalList: entry.OriginalList,
			})
		}
	} else {
		tree.Tasks = taskRows(st, tr)
	}

	if bg, ok := st.ActiveBackground(); ok {
		tree.Background = BackgroundView{URL: model.ResizedURL(bg.URL), Theme: st.CurrentTheme}
	} else {
		tree.Background = BackgroundView{Theme: st.CurrentTheme}
	}
	tree.Grid = gridView(st)

	return tree
}

func taskRows(st *model.AppState, tr Transient) []TaskRow {
	now := tr.Now
	if now.IsZero() {
		now = time.Now()
	}
	query := strings.ToLower(strings.TrimSpace(tr.SearchQuery))

	tasks := st.Lists[st.ActiveList]
	rows := make([]TaskRow, 0, len(tasks))
	for i, task := range tasks {
		if query != "" && !strings.Contains(strings.ToLower(task.Text), query) {
			continue
		}
		row := TaskRow{
			Index:    i,
			Text:     task.Text,
			Priority: task.Priority,
			Due:      DueLabel(task.DueDate, now),
		}
		if tr.Editing != nil && tr.Editing.List == st.ActiveList && tr.Editing.Index == i {
			row.Editing = true
		}
		rows = append(rows, row)
	}
	return rows
}

func gridView(st *model.AppState) GridView {
	defaultCount := len(model.DefaultBackgrounds())
	catalog := st.Catalog()
	g := GridView{
		Tiles:    make([]GridTile, 0, len(catalog)),
		Swatches: model.DefaultSwatches(),
	}
	for i, bg := range catalog {
		g.Tiles = append(g.Tiles, GridTile{
			Index:     i,
			ThumbURL:  model.ThumbURL(bg.URL),
			Active:    i == st.BackgroundImageIndex,
			Deletable: i >= defaultCount,
		})
	}
	return g
}
