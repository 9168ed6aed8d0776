package ui

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tarefa/internal/drag"
)

func armDrag() tea.Msg { return dragArmMsg{} }

func (m Model) startDrag(id int64) (tea.Model, tea.Cmd) {
	if !m.drag.Start(id, m.ctrl.Display().IDs()) {
		return m, nil
	}
	m.status = "Moving task: up/down to place, enter to drop, esc to cancel"
	return m, armDrag
}

func (m Model) updateDragKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.drag.Step(-1)
	case key.Matches(msg, m.keys.Down):
		m.drag.Step(1)
	case key.Matches(msg, m.keys.Confirm):
		return m.dropDrag()
	case key.Matches(msg, m.keys.Cancel):
		m.drag.End()
		m.status = "Move cancelled"
	case key.Matches(msg, m.keys.Quit):
		m.drag.End()
		return m, tea.Quit
	}
	m.followDragged()
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.drag.Active() {
			return m, nil
		}
		ids := m.ctrl.Display().IDs()
		i := msg.Y - listTop
		if i < 0 || i >= len(ids) {
			return m, nil
		}
		m.cursor = i
		return m.startDrag(ids[i])
	case tea.MouseActionMotion:
		if !m.drag.Active() {
			return m, nil
		}
		m.drag.Over(m.pointerY(msg.Y), drag.Rows(m.drag.Order(), listTop))
		m.followDragged()
		return m, nil
	case tea.MouseActionRelease:
		if !m.drag.Active() {
			return m, nil
		}
		if !m.drag.Moved() {
			m.drag.End()
			return m, nil
		}
		return m.dropDrag()
	}
	return m, nil
}

// dropDrag commits the visual order. The drag session always ends here.
func (m Model) dropDrag() (tea.Model, tea.Cmd) {
	defer m.drag.End()
	order, ok := m.drag.Drop()
	if !ok {
		return m, nil
	}
	if err := m.ctrl.ReorderVisible(order); err != nil {
		m.status = fmt.Sprintf("reorder failed: %v", err)
		return m, nil
	}
	m.status = "Order saved"
	return m, nil
}

// pointerY places the pointer on screen line y. Lines above the dragged row
// map to the top of the cell and the rest to its bottom, so landing on a
// row's line always carries the dragged row past it.
func (m Model) pointerY(y int) float64 {
	id, _ := m.drag.Dragging()
	if y < listTop+slices.Index(m.drag.Order(), id) {
		return float64(y)
	}
	return float64(y + 1)
}

func (m *Model) followDragged() {
	if !m.drag.Active() {
		return
	}
	id, ok := m.drag.Dragging()
	if !ok {
		return
	}
	for i, v := range m.drag.Order() {
		if v == id {
			m.cursor = i
			return
		}
	}
}

// visibleIDs is the order rows are drawn in: the drag's order while one is
// in progress, else the display order.
func (m Model) visibleIDs() []int64 {
	if m.drag.Active() {
		return m.drag.Order()
	}
	return m.ctrl.Display().IDs()
}
