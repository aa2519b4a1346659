// Package engine owns the canonical app state and every operation that
// mutates it. An Engine is explicitly constructed from a migrated state and a
// saver; there is no package-level state. Single-writer: operations run to
// completion on the calling goroutine, so no locking is needed.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"focustab/internal/model"
)

// Saver persists the state document. Saves are best-effort: failures are the
// saver's concern (logged, never propagated), so mutating operations return
// as soon as the in-memory state is updated and the save has been issued.
type Saver interface {
	Save(ctx context.Context, st *model.AppState)
}

// Rejection is a validation failure surfaced to the user. The operation was a
// no-op: no state mutation, no persistence attempt.
type Rejection struct {
	Reason string
}

func (r Rejection) Error() string { return r.Reason }

func reject(format string, args ...any) error {
	return Rejection{Reason: fmt.Sprintf(format, args...)}
}

type Engine struct {
	state *model.AppState
	saver Saver
	log   *slog.Logger

	// Transient UI state; never persisted.
	searchQuery string

	// Monotonic token guarding async background classification. A result is
	// applied only if its token is still current, so a superseded in-flight
	// classification can never overwrite a newer selection.
	selToken uint64
}

func New(st *model.AppState, saver Saver, log *slog.Logger) *Engine {
	if st == nil {
		st = model.DefaultState()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Engine{state: st, saver: saver, log: log}
}

// State exposes the canonical state for projection. Callers must not mutate
// it; all mutations go through engine operations.
func (e *Engine) State() *model.AppState { return e.state }

func (e *Engine) persist() {
	if e.saver == nil {
		return
	}
	e.saver.Save(context.Background(), e.state)
}

// CreateList inserts an empty list and makes it active.
func (e *Engine) CreateList(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return reject("list name is empty")
	}
	// The Finished tab is synthetic but occupies its name from the user's
	// point of view.
	if name == model.FinishedList || e.state.HasList(name) {
		return reject("a list named %q already exists", name)
	}
	e.state.Lists[name] = []model.Task{}
	e.state.ListOrder = append(e.state.ListOrder, name)
	e.state.ActiveList = name
	e.persist()
	return nil
}

// DeleteList removes a list and all its tasks. Confirmation is the caller's
// concern. Deleting the active list activates the first remaining list;
// deleting the last list recreates the default one.
func (e *Engine) DeleteList(name string) error {
	if !e.state.HasList(name) {
		return reject("no list named %q", name)
	}
	delete(e.state.Lists, name)
	e.state.ListOrder = removeString(e.state.ListOrder, name)
	if len(e.state.ListOrder) == 0 {
		e.state.Lists[model.DefaultListName] = []model.Task{}
		e.state.ListOrder = []string{model.DefaultListName}
	}
	if e.state.ActiveList == name {
		e.state.ActiveList = e.state.ListOrder[0]
	}
	e.persist()
	return nil
}

// SelectList activates a list tab or the Finished tab.
func (e *Engine) SelectList(name string) error {
	if name != model.FinishedList && !e.state.HasList(name) {
		return reject("no list named %q", name)
	}
	e.state.ActiveList = name
	e.persist()
	return nil
}

// AddTask appends a task to the active list.
func (e *Engine) AddTask(text string, priority model.Priority, dueDate string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return reject("task text is empty")
	}
	if e.state.ActiveList == model.FinishedList {
		return reject("cannot add tasks to the Finished view")
	}
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return reject("invalid priority %q", priority)
	}
	dueDate, err := normalizeDueDate(dueDate)
	if err != nil {
		return err
	}
	list := e.state.ActiveList
	e.state.Lists[list] = append(e.state.Lists[list], model.Task{
		Text:     text,
		Priority: priority,
		DueDate:  dueDate,
	})
	e.persist()
	return nil
}

// EditTask replaces the task at index in list. Empty new text is a rejection
// so the caller can revert to display mode.
func (e *Engine) EditTask(list string, index int, text string, priority model.Priority, dueDate string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return reject("task text is empty")
	}
	tasks, ok := e.state.Lists[list]
	if !ok || index < 0 || index >= len(tasks) {
		return reject("no such task")
	}
	if priority == "" {
		priority = tasks[index].Priority
	}
	if !priority.Valid() {
		return reject("invalid priority %q", priority)
	}
	dueDate, err := normalizeDueDate(dueDate)
	if err != nil {
		return err
	}
	tasks[index] = model.Task{Text: text, Priority: priority, DueDate: dueDate}
	e.persist()
	return nil
}

// DeleteTask removes the task at index. Indexes are canonical (unfiltered)
// positions; the projection layer translates displayed positions back.
func (e *Engine) DeleteTask(list string, index int) error {
	if list == model.FinishedList {
		return nil
	}
	tasks, ok := e.state.Lists[list]
	if !ok || index < 0 || index >= len(tasks) {
		return nil
	}
	e.state.Lists[list] = append(tasks[:index], tasks[index+1:]...)
	e.persist()
	return nil
}

// CompleteTask moves the task at the canonical index into the archive,
// newest-first, recording its origin list.
func (e *Engine) CompleteTask(list string, index int) error {
	tasks, ok := e.state.Lists[list]
	if !ok || index < 0 || index >= len(tasks) {
		return reject("no such task")
	}
	task := tasks[index]
	e.state.Lists[list] = append(tasks[:index], tasks[index+1:]...)
	e.state.Finished = append([]model.FinishedTask{{Task: task, OriginalList: list}}, e.state.Finished...)
	e.persist()
	return nil
}

// RestoreTask moves a finished entry back to its origin list, recreating the
// list if it no longer exists. The task is appended; its original position is
// not preserved.
func (e *Engine) RestoreTask(finishedIndex int) error {
	if finishedIndex < 0 || finishedIndex >= len(e.state.Finished) {
		return reject("no such finished task")
	}
	entry := e.state.Finished[finishedIndex]
	e.state.Finished = append(e.state.Finished[:finishedIndex], e.state.Finished[finishedIndex+1:]...)
	if !e.state.HasList(entry.OriginalList) {
		e.state.Lists[entry.OriginalList] = []model.Task{}
		e.state.ListOrder = append(e.state.ListOrder, entry.OriginalList)
	}
	e.state.Lists[entry.OriginalList] = append(e.state.Lists[entry.OriginalList], entry.Task)
	e.persist()
	return nil
}

// SetSearchQuery updates the transient filter. It never persists and never
// triggers a save.
func (e *Engine) SetSearchQuery(q string) {
	e.searchQuery = q
}

func (e *Engine) SearchQuery() string { return e.searchQuery }

func normalizeDueDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", reject("invalid due date %q (want YYYY-MM-DD)", s)
	}
	return s, nil
}

func removeString(xs []string, s string) []string {
	out := xs[:0]
	for _, x := range xs {
		if x != s {
			out = append(out, x)
		}
	}
	return out
}
