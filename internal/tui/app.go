package tui

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"focustab/internal/classify"
	"focustab/internal/engine"
	"focustab/internal/model"
	"focustab/internal/project"
)

type mode int

const (
	modeBrowse mode = iota
	modeAddTask
	modeEditTask
	modeSearch
	modeNewList
	modeConfirmDeleteList
	modeGrid
	modeAddBackground
	modeHelp
)

// classifiedMsg reports the async theme classification for a background
// selection. The token ties it to the selection that requested it; the engine
// drops stale results.
type classifiedMsg struct {
	token uint64
	theme model.Theme
}

// customClassifiedMsg reports the classification of a freshly added custom
// background. It carries the URL so the result can be matched back to the
// right entry even if the catalog shifted while the fetch was in flight.
type customClassifiedMsg struct {
	index int
	url   string
	theme model.Theme
}

type appModel struct {
	eng    *engine.Engine
	glyphs glyphSet

	width  int
	height int

	mode   mode
	cursor int
	grid   int
	input  textinput.Model
	edit   *project.EditRef

	confirmList string

	// One-shot message line, cleared on the next keypress.
	status string
}

func newAppModel(eng *engine.Engine, glyphs glyphSet) appModel {
	ti := textinput.New()
	ti.CharLimit = 256
	return appModel{eng: eng, glyphs: glyphs, input: ti}
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) tree() project.Tree {
	return project.Project(m.eng.State(), project.Transient{
		SearchQuery: m.eng.SearchQuery(),
		Editing:     m.edit,
	})
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case classifiedMsg:
		m.eng.ApplyClassification(msg.token, msg.theme)
		return m, nil

	case customClassifiedMsg:
		m.applyCustomClassification(msg)
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		switch m.mode {
		case modeBrowse:
			return m.updateBrowse(msg)
		case modeGrid:
			return m.updateGrid(msg)
		case modeConfirmDeleteList:
			return m.updateConfirm(msg)
		case modeHelp:
			m.mode = modeBrowse
			return m, nil
		default:
			return m.updateInput(msg)
		}
	}
	return m, nil
}

func (m appModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tree := m.tree()
	st := m.eng.State()

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab", "right":
		m.selectTab(tree, +1)
		m.cursor = 0
		return m, nil
	case "shift+tab", "left":
		m.selectTab(tree, -1)
		m.cursor = 0
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < m.rowCount(tree)-1 {
			m.cursor++
		}
		return m, nil

	case "a":
		if !tree.ShowInputs {
			return m, nil
		}
		return m.openInput(modeAddTask, "New task", ""), nil

	case "e":
		if !tree.ShowInputs || m.cursor >= len(tree.Tasks) {
			return m, nil
		}
		row := tree.Tasks[m.cursor]
		m.edit = &project.EditRef{List: st.ActiveList, Index: row.Index}
		return m.openInput(modeEditTask, "Edit task", row.Text), nil

	case "d", "x":
		if tree.ShowInputs && m.cursor < len(tree.Tasks) {
			m.do(m.eng.DeleteTask(st.ActiveList, tree.Tasks[m.cursor].Index))
			m.clampCursor()
		}
		return m, nil

	case " ", "c":
		if tree.ShowInputs && m.cursor < len(tree.Tasks) {
			m.do(m.eng.CompleteTask(st.ActiveList, tree.Tasks[m.cursor].Index))
			m.clampCursor()
		}
		return m, nil

	case "enter", "r":
		if !tree.ShowInputs && m.cursor < len(tree.Finished) {
			m.do(m.eng.RestoreTask(tree.Finished[m.cursor].Index))
			m.clampCursor()
		}
		return m, nil

	case "/":
		return m.openInput(modeSearch, "Search", m.eng.SearchQuery()), nil

	case "N":
		return m.openInput(modeNewList, "New list", ""), nil

	case "D":
		if st.ActiveList != model.FinishedList {
			m.confirmList = st.ActiveList
			m.mode = modeConfirmDeleteList
		}
		return m, nil

	case "b":
		m.mode = modeGrid
		m.grid = st.BackgroundImageIndex
		return m, nil

	case "t":
		m.eng.CycleTheme()
		return m, nil
	case "L":
		m.eng.ToggleThemeLock()
		return m, nil

	case "?":
		m.mode = modeHelp
		return m, nil
	}
	return m, nil
}

func (m appModel) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.eng.State()
	catalog := st.Catalog()

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "b", "q":
		m.mode = modeBrowse
		return m, nil

	case "left", "h":
		if m.grid > 0 {
			m.grid--
		}
		return m, nil
	case "right", "l":
		if m.grid < len(catalog)-1 {
			m.grid++
		}
		return m, nil
	case "up", "k":
		if m.grid-gridColumns >= 0 {
			m.grid -= gridColumns
		}
		return m, nil
	case "down", "j":
		if m.grid+gridColumns < len(catalog) {
			m.grid += gridColumns
		}
		return m, nil

	case "enter":
		sel, err := m.eng.SelectBackground(m.grid)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		if sel.Classify {
			return m, classifyBackground(sel)
		}
		return m, nil

	case "d", "x":
		m.do(m.eng.DeleteCustomBackground(m.grid))
		if m.grid >= len(m.eng.State().Catalog()) {
			m.grid = len(m.eng.State().Catalog()) - 1
		}
		return m, nil

	case "a":
		return m.openInput(modeAddBackground, "Image URL", ""), nil

	case "1", "2", "3", "4", "5", "6":
		n, _ := strconv.Atoi(msg.String())
		swatches := model.DefaultSwatches()
		if n >= 1 && n <= len(swatches) {
			m.eng.ApplySwatchTheme(classify.Color(swatches[n-1]))
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.do(m.eng.DeleteList(m.confirmList))
		m.confirmList = ""
		m.mode = modeBrowse
		m.cursor = 0
		return m, nil
	case "n", "esc", "ctrl+g":
		m.confirmList = ""
		m.mode = modeBrowse
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc", "ctrl+g":
		if m.mode == modeSearch {
			m.eng.SetSearchQuery("")
		}
		return m.closeInput(), nil

	case "enter":
		return m.submitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == modeSearch {
		// Live filter; transient, never persisted.
		m.eng.SetSearchQuery(m.input.Value())
	}
	return m, cmd
}

func (m appModel) submitInput() (tea.Model, tea.Cmd) {
	value := m.input.Value()

	switch m.mode {
	case modeAddTask:
		if err := m.eng.AddTask(value, "", ""); err != nil {
			m.fail(err)
			return m, nil
		}
		return m.closeInput(), nil

	case modeEditTask:
		if m.edit == nil {
			return m.closeInput(), nil
		}
		if err := m.eng.EditTask(m.edit.List, m.edit.Index, value, "", m.taskDue(*m.edit)); err != nil {
			m.fail(err)
			return m, nil
		}
		return m.closeInput(), nil

	case modeSearch:
		m.eng.SetSearchQuery(value)
		return m.closeInput(), nil

	case modeNewList:
		if err := m.eng.CreateList(value); err != nil {
			m.fail(err)
			return m, nil
		}
		m.cursor = 0
		return m.closeInput(), nil

	case modeAddBackground:
		index, err := m.eng.AddCustomBackground(value)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		next := m.closeInput()
		next.mode = modeGrid
		next.grid = index
		return next, classifyCustom(m.eng, index)
	}
	return m.closeInput(), nil
}

func (m appModel) openInput(mo mode, placeholder, value string) appModel {
	m.mode = mo
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	return m
}

func (m appModel) closeInput() appModel {
	m.input.Blur()
	m.input.SetValue("")
	if m.mode == modeAddBackground {
		m.mode = modeGrid
	} else {
		m.mode = modeBrowse
	}
	m.edit = nil
	return m
}

// do runs an engine operation and routes a rejection into the status line.
func (m *appModel) do(err error) {
	if err != nil {
		m.fail(err)
	}
}

func (m *appModel) fail(err error) {
	m.status = err.Error()
}

func (m *appModel) selectTab(tree project.Tree, delta int) {
	active := 0
	for i, tab := range tree.Tabs {
		if tab.Active {
			active = i
			break
		}
	}
	n := len(tree.Tabs)
	next := tree.Tabs[((active+delta)%n+n)%n]
	m.do(m.eng.SelectList(next.Name))
}

func (m appModel) rowCount(tree project.Tree) int {
	if tree.ShowInputs {
		return len(tree.Tasks)
	}
	return len(tree.Finished)
}

func (m *appModel) clampCursor() {
	if n := m.rowCount(m.tree()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m appModel) taskDue(ref project.EditRef) string {
	tasks := m.eng.State().Lists[ref.List]
	if ref.Index < 0 || ref.Index >= len(tasks) {
		return ""
	}
	return tasks[ref.Index].DueDate
}

func classifyBackground(sel engine.Selection) tea.Cmd {
	return func() tea.Msg {
		theme := sel.Background.Theme
		if !theme.Valid() {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			defer cancel()
			theme = classify.Fetch(ctx, sel.Background.URL)
		}
		return classifiedMsg{token: sel.Token, theme: theme}
	}
}

// applyCustomClassification writes a classified theme back to the custom
// entry it was fetched for. Deleting another custom background shifts catalog
// indexes, so the entry is re-resolved by URL; a result for an entry that no
// longer exists is dropped.
func (m *appModel) applyCustomClassification(msg customClassifiedMsg) {
	catalog := m.eng.State().Catalog()
	if msg.index >= 0 && msg.index < len(catalog) && catalog[msg.index].URL == msg.url {
		m.eng.SetCustomBackgroundTheme(msg.index, msg.theme)
		return
	}
	for i := len(model.DefaultBackgrounds()); i < len(catalog); i++ {
		if catalog[i].URL == msg.url {
			m.eng.SetCustomBackgroundTheme(i, msg.theme)
			return
		}
	}
}

func classifyCustom(eng *engine.Engine, index int) tea.Cmd {
	catalog := eng.State().Catalog()
	if index < 0 || index >= len(catalog) {
		return nil
	}
	url := catalog[index].URL
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		return customClassifiedMsg{index: index, url: url, theme: classify.Fetch(ctx, url)}
	}
}
