package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"focustab/internal/docs"
	"focustab/internal/model"
	"focustab/internal/project"
)

const gridColumns = 4

func (m appModel) View() string {
	tree := m.tree()
	pal := paletteFor(m.eng.State().CurrentTheme)

	switch m.mode {
	case modeGrid, modeAddBackground:
		return m.viewGrid(tree, pal)
	case modeConfirmDeleteList:
		return m.viewConfirm(pal)
	case modeHelp:
		return m.viewHelp(pal)
	}

	var b strings.Builder
	b.WriteString(m.viewHeader(tree, pal))
	b.WriteString("\n")
	b.WriteString(m.viewTabs(tree, pal))
	b.WriteString("\n\n")

	if tree.ShowInputs {
		b.WriteString(m.viewTasks(tree, pal))
	} else {
		b.WriteString(m.viewFinished(tree, pal))
	}

	if m.mode == modeAddTask || m.mode == modeEditTask || m.mode == modeSearch || m.mode == modeNewList {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(pal.Overdue).Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.viewFooter(tree, pal))
	return b.String()
}

func (m appModel) viewHeader(tree project.Tree, pal palette) string {
	st := m.eng.State()
	title := lipgloss.NewStyle().Bold(true).Foreground(pal.Accent).Render("Focustab")

	lock := m.glyphs.Unlock
	if st.ThemeLocked {
		lock = m.glyphs.Lock
	}
	meta := lipgloss.NewStyle().Foreground(pal.Muted).Render(
		fmt.Sprintf("theme=%s %s  bg=%d", st.CurrentTheme, lock, st.BackgroundImageIndex))
	return title + "  " + meta
}

func (m appModel) viewTabs(tree project.Tree, pal palette) string {
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(pal.Accent).Underline(true)
	idleStyle := lipgloss.NewStyle().Foreground(pal.Muted)

	parts := make([]string, 0, len(tree.Tabs))
	for _, tab := range tree.Tabs {
		label := tab.Name
		if n := len(m.eng.State().Lists[tab.Name]); tab.Closable && n > 0 {
			label = fmt.Sprintf("%s (%d)", tab.Name, n)
		}
		if !tab.Closable {
			label = fmt.Sprintf("%s (%d)", tab.Name, len(m.eng.State().Finished))
		}
		if tab.Active {
			parts = append(parts, activeStyle.Render(label))
		} else {
			parts = append(parts, idleStyle.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

func (m appModel) viewTasks(tree project.Tree, pal palette) string {
	if len(tree.Tasks) == 0 {
		if m.eng.SearchQuery() != "" {
			return lipgloss.NewStyle().Foreground(pal.Muted).Render("No tasks match the search.") + "\n"
		}
		return lipgloss.NewStyle().Foreground(pal.Muted).Render("No tasks yet. Press a to add one.") + "\n"
	}

	var b strings.Builder
	for i, row := range tree.Tasks {
		cursor := "  "
		style := lipgloss.NewStyle().Foreground(pal.Fg)
		if i == m.cursor {
			cursor = m.glyphs.Cursor + " "
			style = style.Background(pal.Selected)
		}

		prio := lipgloss.NewStyle().Foreground(m.priorityColor(row.Priority, pal)).Render(m.glyphs.Priority)
		line := cursor + prio + " " + style.Render(row.Text)
		if row.Due != nil {
			badge := lipgloss.NewStyle().Foreground(pal.Muted)
			if row.Due.Overdue {
				badge = badge.Foreground(pal.Overdue).Bold(true)
			} else if row.Due.Today {
				badge = badge.Foreground(pal.Today)
			}
			line += "  " + badge.Render(row.Due.Label)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m appModel) viewFinished(tree project.Tree, pal palette) string {
	if len(tree.Finished) == 0 {
		return lipgloss.NewStyle().Foreground(pal.Muted).Render("Nothing finished yet.") + "\n"
	}

	muted := lipgloss.NewStyle().Foreground(pal.Muted)
	var b strings.Builder
	for i, row := range tree.Finished {
		cursor := "  "
		style := lipgloss.NewStyle().Foreground(pal.Fg)
		if i == m.cursor {
			cursor = m.glyphs.Cursor + " "
			style = style.Background(pal.Selected)
		}
		b.WriteString(cursor + m.glyphs.Check + " " + style.Render(row.Text) + "  " + muted.Render("from "+row.OriginalList))
		b.WriteString("\n")
	}
	return b.String()
}

func (m appModel) viewGrid(tree project.Tree, pal palette) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(pal.Accent).Render("Backgrounds"))
	b.WriteString("\n\n")

	tileStyle := lipgloss.NewStyle().Foreground(pal.Fg).Padding(0, 1)
	focusStyle := tileStyle.Background(pal.Selected).Bold(true)
	muted := lipgloss.NewStyle().Foreground(pal.Muted)

	for rowStart := 0; rowStart < len(tree.Grid.Tiles); rowStart += gridColumns {
		end := rowStart + gridColumns
		if end > len(tree.Grid.Tiles) {
			end = len(tree.Grid.Tiles)
		}
		cells := make([]string, 0, gridColumns)
		for _, tile := range tree.Grid.Tiles[rowStart:end] {
			label := fmt.Sprintf("#%d", tile.Index)
			if tile.Active {
				label = m.glyphs.Active + " " + label
			}
			if tile.Deletable {
				label += " (custom)"
			}
			if tile.Index == m.grid {
				cells = append(cells, focusStyle.Render(label))
			} else {
				cells = append(cells, tileStyle.Render(label))
			}
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(muted.Render("colors: "))
	for i, hex := range tree.Grid.Swatches {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(fmt.Sprintf("%d:%s ", i+1, m.glyphs.Bullet)))
	}
	b.WriteString("\n")

	if m.mode == modeAddBackground {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(pal.Overdue).Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(muted.Render("enter: select  a: add url  d: delete  1-6: flat color  esc: back"))
	return b.String()
}

func (m appModel) viewConfirm(pal palette) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(pal.Accent).
		Padding(1, 2)

	body := fmt.Sprintf("Delete list %q and all its tasks?", m.confirmList)
	help := lipgloss.NewStyle().Foreground(pal.Muted).Render("y/enter: delete   n/esc: cancel")
	return box.Render(body + "\n\n" + help)
}

func (m appModel) viewHelp(pal palette) string {
	body, ok := docs.Get("overview")
	if !ok {
		return "No help available."
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	return renderMarkdown(body, width-2, m.eng.State().CurrentTheme)
}

func (m appModel) viewFooter(tree project.Tree, pal palette) string {
	help := "a: add  e: edit  space: done  d: delete  /: search  tab: next list  N: new list  D: delete list  b: backgrounds  t: theme  L: lock  ?: help  q: quit"
	if !tree.ShowInputs {
		help = "enter: restore  tab: next list  b: backgrounds  t: theme  ?: help  q: quit"
	}
	return lipgloss.NewStyle().Foreground(pal.Muted).Render(help)
}

func (m appModel) priorityColor(p model.Priority, pal palette) lipgloss.Color {
	switch p {
	case model.PriorityHigh:
		return pal.PriorityHigh
	case model.PriorityLow:
		return pal.PriorityLow
	default:
		return pal.PriorityMedium
	}
}
