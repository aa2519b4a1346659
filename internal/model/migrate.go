package model

import (
	"encoding/json"
	"sort"
	"strings"
)

// Migrate upgrades any persisted shape of the app state document into the
// canonical AppState. It is total (unparsable input yields the first-run
// default) and idempotent: migrating an already-canonical document is a no-op.
//
// There is no version tag; generations are detected structurally:
//   - string-task era: list and finished entries are bare strings
//   - flat-finished era: finished entries are tasks without the {task,
//     originalList} wrapper
//   - current era: canonical shape
func Migrate(raw []byte) *AppState {
	if len(raw) == 0 {
		return DefaultState()
	}

	var doc rawState
	if err := json.Unmarshal(raw, &doc); err != nil {
		return DefaultState()
	}

	out := &AppState{
		Lists:                map[string][]Task{},
		Finished:             []FinishedTask{},
		CustomBackgrounds:    []Background{},
		BackgroundImageIndex: doc.BackgroundImageIndex,
		ActiveList:           doc.ActiveList,
	}

	if len(doc.Lists) == 0 {
		out.Lists[DefaultListName] = []Task{}
	} else {
		for name, entries := range doc.Lists {
			tasks := make([]Task, 0, len(entries))
			for _, entry := range entries {
				tasks = append(tasks, migrateTask(entry))
			}
			out.Lists[name] = tasks
		}
	}
	// The Finished tab is synthetic; a stored list under that name would
	// shadow it, so fold any such tasks into the default list.
	if tasks, ok := out.Lists[FinishedList]; ok {
		delete(out.Lists, FinishedList)
		if len(out.Lists) == 0 {
			out.Lists[DefaultListName] = []Task{}
		}
		if len(tasks) > 0 {
			first := firstListName(out.Lists, doc.ListOrder)
			out.Lists[first] = append(out.Lists[first], tasks...)
		}
	}

	out.ListOrder = migrateListOrder(out.Lists, doc.ListOrder)

	for _, entry := range doc.Finished {
		if ft, ok := migrateFinished(entry); ok {
			out.Finished = append(out.Finished, ft)
		}
	}

	if doc.CustomBackgrounds != nil {
		out.CustomBackgrounds = doc.CustomBackgrounds
	}

	out.CurrentTheme = normalizeTheme(doc.CurrentTheme)

	// Absent means unset; false is a valid stored value.
	if doc.ThemeLocked != nil {
		out.ThemeLocked = *doc.ThemeLocked
	}

	if out.ActiveList != FinishedList && !out.HasList(out.ActiveList) {
		out.ActiveList = out.ListOrder[0]
	}
	if out.BackgroundImageIndex < 0 || out.BackgroundImageIndex >= len(out.Catalog()) {
		out.BackgroundImageIndex = 0
	}

	return out
}

type rawState struct {
	Lists                map[string][]json.RawMessage `json:"lists"`
	ListOrder            []string                     `json:"listOrder"`
	Finished             []json.RawMessage            `json:"finished"`
	ActiveList           string                       `json:"activeList"`
	BackgroundImageIndex int                          `json:"backgroundImageIndex"`
	CustomBackgrounds    []Background                 `json:"customBackgrounds"`
	CurrentTheme         string                       `json:"currentTheme"`
	ThemeLocked          *bool                        `json:"themeLocked"`
}

func migrateTask(raw json.RawMessage) Task {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return Task{Text: text, Priority: PriorityMedium}
	}
	var t Task
	if err := json.Unmarshal(raw, &t); err != nil {
		return Task{Priority: PriorityMedium}
	}
	if !t.Priority.Valid() {
		t.Priority = PriorityMedium
	}
	return t
}

func migrateFinished(raw json.RawMessage) (FinishedTask, bool) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return FinishedTask{
			Task:         Task{Text: text, Priority: PriorityMedium},
			OriginalList: ArchivedListName,
		}, true
	}

	// Probe for the flat-finished era: a task object stored directly, without
	// the {task, originalList} wrapper.
	var probe struct {
		Text string           `json:"text"`
		Task *json.RawMessage `json:"task"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return FinishedTask{}, false
	}
	if probe.Task == nil && probe.Text != "" {
		return FinishedTask{Task: migrateTask(raw), OriginalList: ArchivedListName}, true
	}

	var ft FinishedTask
	if err := json.Unmarshal(raw, &ft); err != nil {
		return FinishedTask{}, false
	}
	if !ft.Task.Priority.Valid() {
		ft.Task.Priority = PriorityMedium
	}
	if ft.OriginalList == "" {
		ft.OriginalList = ArchivedListName
	}
	return ft, true
}

// migrateListOrder reconciles the recorded tab order with the actual list
// keys: known names keep their recorded position, unknown names are dropped,
// and keys missing from the order are appended sorted so the result is
// deterministic.
func migrateListOrder(lists map[string][]Task, recorded []string) []string {
	out := make([]string, 0, len(lists))
	seen := map[string]bool{}
	for _, name := range recorded {
		if _, ok := lists[name]; ok && !seen[name] {
			out = append(out, name)
			seen[name] = true
		}
	}
	var missing []string
	for name := range lists {
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return append(out, missing...)
}

func firstListName(lists map[string][]Task, recorded []string) string {
	order := migrateListOrder(lists, recorded)
	return order[0]
}

func normalizeTheme(s string) Theme {
	// The browser-era document stored CSS class names ("theme-white").
	t := Theme(strings.TrimPrefix(s, "theme-"))
	if t.Valid() {
		return t
	}
	return DefaultTheme
}
