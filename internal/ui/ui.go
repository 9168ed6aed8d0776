package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tarefa/internal/config"
	"tarefa/internal/controller"
	"tarefa/internal/dialog"
	"tarefa/internal/drag"
	"tarefa/internal/task"
	"tarefa/internal/view"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeConfirm
	modeAlert
)

type confirmKind int

const (
	confirmDelete confirmKind = iota
	confirmClear
)

// dragArmMsg applies the dragging mark one tick after the drag started.
type dragArmMsg struct{}

// The task list starts on this screen line: title, filter tabs, blank.
const listTop = 3

type Model struct {
	ctrl    *controller.Controller
	answers *dialog.Preset
	cfg     config.Config
	keys    keyMap
	help    help.Model
	bar     progress.Model
	input   textinput.Model
	drag    *drag.Session

	mode      mode
	prevMode  mode
	confirm   confirmKind
	pendingID int64
	editID    int64
	alert     string
	cursor    int
	status    string
	width     int
}

// New builds the TUI over ctrl. answers must be the dialog provider ctrl
// was created with; the model fills it from its own modal dialogs before
// each gated operation.
func New(ctrl *controller.Controller, answers *dialog.Preset, cfg config.Config) Model {
	msg := ctrl.Messages()

	ti := textinput.New()
	ti.Placeholder = msg.InputPlaceholder
	ti.CharLimit = 256
	ti.Width = 40

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 40

	return Model{
		ctrl:    ctrl,
		answers: answers,
		cfg:     cfg,
		keys:    newKeyMap(cfg.Keys),
		help:    help.New(),
		bar:     bar,
		input:   ti,
		drag:    &drag.Session{},
		mode:    modeList,
		status:  fmt.Sprintf("Press '%s' to add, %s to toggle, '%s' to move.", cfg.Keys.Add, keyLabel(cfg.Keys.Toggle), cfg.Keys.Grab),
	}
}

func Run(ctrl *controller.Controller, answers *dialog.Preset, cfg config.Config) error {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	_, err := tea.NewProgram(New(ctrl, answers, cfg), opts...).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeAlert:
			return m.dismissAlert()
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeAdd:
			return m.updateAddMode(msg)
		case modeEdit:
			return m.updateEditMode(msg)
		}
		if m.drag.Active() {
			return m.updateDragKeys(msg)
		}
		return m.updateListMode(msg)
	case tea.MouseMsg:
		if m.mode != modeList {
			return m, nil
		}
		return m.updateMouse(msg)
	case dragArmMsg:
		m.drag.Arm()
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-10, 10)
		m.bar.Width = max(min(msg.Width-4, 60), 10)
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m Model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.ctrl.Display().Rows
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampCursor(m.cursor+1, len(rows))
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampCursor(m.cursor-1, len(rows))
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.input.SetValue("")
		m.input.Placeholder = m.ctrl.Messages().InputPlaceholder
		m.status = "Add mode: type a task and press Enter"
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Toggle):
		id, ok := m.selectedID()
		if !ok {
			return m, nil
		}
		if _, err := m.ctrl.ToggleComplete(id); err != nil {
			m.status = fmt.Sprintf("toggle failed: %v", err)
			return m, nil
		}
		m.cursor = clampCursor(m.cursor, len(m.ctrl.Display().Rows))
		m.status = "Toggled task"
	case key.Matches(msg, m.keys.Edit):
		id, ok := m.selectedID()
		if !ok {
			m.status = "No tasks to edit"
			return m, nil
		}
		t, _ := m.ctrl.Get(id)
		m.mode = modeEdit
		m.editID = id
		m.input.SetValue(t.Text)
		m.input.CursorEnd()
		m.status = m.ctrl.Messages().EditPrompt
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		id, ok := m.selectedID()
		if !ok {
			return m, nil
		}
		m.mode = modeConfirm
		m.confirm = confirmDelete
		m.pendingID = id
	case key.Matches(msg, m.keys.ClearCompleted):
		m.mode = modeConfirm
		m.confirm = confirmClear
	case key.Matches(msg, m.keys.FilterAll):
		return m.setFilter(view.FilterAll)
	case key.Matches(msg, m.keys.FilterPending):
		return m.setFilter(view.FilterPending)
	case key.Matches(msg, m.keys.FilterCompleted):
		return m.setFilter(view.FilterCompleted)
	case key.Matches(msg, m.keys.CycleFilter):
		return m.setFilter(m.ctrl.Filter().Next())
	case key.Matches(msg, m.keys.Grab):
		id, ok := m.selectedID()
		if !ok {
			return m, nil
		}
		return m.startDrag(id)
	}
	return m, nil
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		t, err := m.ctrl.Add(m.input.Value())
		if errors.Is(err, task.ErrEmptyText) {
			return m.showAlert()
		}
		if err != nil {
			m.status = err.Error()
		} else {
			m.status = "Added task"
		}
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		m.selectID(t.ID)
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		*m.answers = dialog.Preset{Cancelled: true}
	case key.Matches(msg, m.keys.Confirm):
		*m.answers = dialog.Preset{Reply: m.input.Value()}
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	changed, err := m.ctrl.Edit(m.editID)
	*m.answers = dialog.Preset{}
	switch {
	case err != nil:
		m.status = fmt.Sprintf("edit failed: %v", err)
	case changed:
		m.status = "Task updated"
	default:
		m.status = "Edit cancelled"
	}
	m.mode = modeList
	m.editID = 0
	m.input.SetValue("")
	m.input.Blur()
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var accepted bool
	switch {
	case key.Matches(msg, m.keys.Yes):
		accepted = true
	case key.Matches(msg, m.keys.No), key.Matches(msg, m.keys.Cancel):
	default:
		return m, nil
	}

	*m.answers = dialog.Preset{Confirmed: accepted}
	defer func() { *m.answers = dialog.Preset{} }()

	switch m.confirm {
	case confirmDelete:
		deleted, err := m.ctrl.Delete(m.pendingID)
		switch {
		case err != nil:
			m.status = fmt.Sprintf("delete failed: %v", err)
		case deleted:
			m.status = "Deleted task"
		default:
			m.status = "Delete cancelled"
		}
	case confirmClear:
		n, err := m.ctrl.ClearCompleted()
		switch {
		case err != nil:
			m.status = fmt.Sprintf("clear failed: %v", err)
		case accepted:
			m.status = fmt.Sprintf("Cleared %d completed task(s)", n)
		default:
			m.status = "Clear cancelled"
		}
	}
	m.mode = modeList
	m.pendingID = 0
	m.cursor = clampCursor(m.cursor, len(m.ctrl.Display().Rows))
	return m, nil
}

func (m Model) showAlert() (tea.Model, tea.Cmd) {
	text, ok := m.answers.LastAlert()
	if !ok {
		return m, nil
	}
	m.alert = text
	m.prevMode = m.mode
	m.mode = modeAlert
	return m, nil
}

func (m Model) dismissAlert() (tea.Model, tea.Cmd) {
	m.alert = ""
	m.mode = m.prevMode
	return m, nil
}

func (m Model) setFilter(f view.Filter) (tea.Model, tea.Cmd) {
	if err := m.ctrl.SetFilter(f); err != nil {
		m.status = err.Error()
	} else {
		m.status = "Filter: " + m.ctrl.Messages().FilterName(f)
	}
	m.cursor = clampCursor(m.cursor, len(m.ctrl.Display().Rows))
	return m, nil
}

func (m Model) selectedID() (int64, bool) {
	rows := m.ctrl.Display().Rows
	if len(rows) == 0 {
		return 0, false
	}
	return rows[clampCursor(m.cursor, len(rows))].ID, true
}

func (m *Model) selectID(id int64) {
	for i, r := range m.ctrl.Display().Rows {
		if r.ID == id {
			m.cursor = i
			return
		}
	}
	m.cursor = clampCursor(m.cursor, len(m.ctrl.Display().Rows))
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
