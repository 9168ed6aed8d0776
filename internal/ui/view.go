package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"tarefa/internal/view"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTabStyle = tabStyle.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Bold(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	doneStyle      = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	draggingStyle  = lipgloss.NewStyle().Reverse(true)
	emptyStyle     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	modalStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("204")).Padding(0, 1)
)

func (m Model) View() string {
	d := m.ctrl.Display()
	msg := m.ctrl.Messages()

	var b strings.Builder
	b.WriteString(titleStyle.Render("tarefa"))
	b.WriteString("\n")
	b.WriteString(renderTabs(d.Filter, msg))
	b.WriteString("\n\n")

	if len(d.Rows) == 0 {
		if d.EmptyMessage != "" {
			b.WriteString(emptyStyle.Render(d.EmptyMessage))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(m.renderTaskList(d))
	}

	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(d.Progress.Percent / 100))
	b.WriteString("\n")
	b.WriteString(d.Progress.Label)
	b.WriteString("\n\n")

	switch m.mode {
	case modeAdd, modeEdit:
		label := "Add Task: "
		if m.mode == modeEdit {
			label = msg.EditPrompt + " "
		}
		b.WriteString(label)
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeConfirm:
		question := msg.ConfirmDelete
		if m.confirm == confirmClear {
			question = msg.ConfirmClearDone
		}
		b.WriteString(modalStyle.Render(question + " (y/n)"))
		b.WriteString("\n")
	case modeAlert:
		b.WriteString(modalStyle.Render(m.alert))
		b.WriteString("\n")
	}

	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func renderTabs(active view.Filter, msg view.Messages) string {
	tabs := make([]string, 0, len(view.Filters))
	for _, f := range view.Filters {
		style := tabStyle
		if f == active {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(msg.FilterName(f)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderTaskList(d view.Display) string {
	byID := make(map[int64]view.Row, len(d.Rows))
	for _, r := range d.Rows {
		byID[r.ID] = r
	}
	dragged, dragging := m.drag.Dragging()

	var b strings.Builder
	for i, id := range m.visibleIDs() {
		r, ok := byID[id]
		if !ok {
			continue
		}
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = cursorStyle.Render(">")
		}
		checkbox := "[ ]"
		if r.Completed {
			checkbox = "[x]"
		}

		text := r.Text
		if m.width > 0 {
			// Rows must stay on one line so mouse rows map to tasks.
			text = ansi.Truncate(text, max(m.width-8, 4), "…")
		}
		switch {
		case dragging && id == dragged:
			text = draggingStyle.Render(text)
		case r.Completed:
			text = doneStyle.Render(text)
		}

		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, checkbox, text))
	}
	return b.String()
}

func (m Model) renderHelp() string {
	if m.drag.Active() {
		return m.help.View(dragKeys(m.keys))
	}
	return m.help.View(m.keys)
}

// compile-time check that both key sets satisfy help.KeyMap.
var (
	_ help.KeyMap = keyMap{}
	_ help.KeyMap = dragKeys{}
)
