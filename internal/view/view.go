// Package view derives what the list shows from the task collection and the
// active filter. It has no terminal dependencies.
package view

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"tarefa/internal/task"
)

type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

var Filters = []Filter{FilterAll, FilterPending, FilterCompleted}

var ErrUnknownFilter = errors.New("unknown filter")

// ParseFilter accepts the filter names case-insensitively.
func ParseFilter(s string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterAll, "":
		return FilterAll, nil
	case FilterPending:
		return FilterPending, nil
	case FilterCompleted:
		return FilterCompleted, nil
	}
	return FilterAll, fmt.Errorf("%w %q (want all, pending or completed)", ErrUnknownFilter, s)
}

func (f Filter) Valid() bool {
	return slices.Contains(Filters, f)
}

// Next cycles all -> pending -> completed -> all.
func (f Filter) Next() Filter {
	for i, cur := range Filters {
		if cur == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

func (f Filter) Match(t task.Task) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

type Row struct {
	ID          int64
	Text        string
	Completed   bool
	Draggable   bool
	ToggleTitle string
	EditTitle   string
	DeleteTitle string
}

type Progress struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
	Label     string  `json:"label"`
}

type Display struct {
	Filter       Filter
	Rows         []Row
	EmptyMessage string
	Progress     Progress
}

// Render filters tasks, keeping collection order, and computes progress over
// the whole collection.
// Render treats an unknown filter as FilterAll.
func Render(tasks []task.Task, filter Filter, msg Messages) Display {
	if !filter.Valid() {
		filter = FilterAll
	}
	d := Display{Filter: filter}
	for _, t := range tasks {
		if !filter.Match(t) {
			continue
		}
		d.Rows = append(d.Rows, Row{
			ID:          t.ID,
			Text:        t.Text,
			Completed:   t.Completed,
			Draggable:   true,
			ToggleTitle: msg.toggleTitle(t.Completed),
			EditTitle:   msg.EditTask,
			DeleteTitle: msg.DeleteTask,
		})
	}

	if len(d.Rows) == 0 {
		switch {
		case filter != FilterAll:
			d.EmptyMessage = msg.emptyFor(filter)
		case len(tasks) == 0:
			d.EmptyMessage = msg.NothingAdded
		}
	}

	d.Progress = ComputeProgress(tasks, msg)
	return d
}

func ComputeProgress(tasks []task.Task, msg Messages) Progress {
	p := Progress{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percent = float64(p.Completed) / float64(p.Total) * 100
	}
	p.Label = fmt.Sprintf(msg.ProgressFormat, p.Completed, p.Total)
	return p
}

// IDs returns the row ids in display order.
func (d Display) IDs() []int64 {
	ids := make([]int64, len(d.Rows))
	for i, r := range d.Rows {
		ids[i] = r.ID
	}
	return ids
}

// MergeVisibleOrder writes a reordered visible subset back into the slots
// those tasks hold in the full order. Ids outside visible keep their place.
// If visible is not a rearrangement of the tasks that pass filter, full is
// returned unchanged.
func MergeVisibleOrder(tasks []task.Task, filter Filter, visible []int64) []int64 {
	full := make([]int64, len(tasks))
	var slots []int
	for i, t := range tasks {
		full[i] = t.ID
		if filter.Match(t) {
			slots = append(slots, i)
		}
	}
	if len(slots) != len(visible) {
		return full
	}
	want := make(map[int64]bool, len(slots))
	for _, i := range slots {
		want[full[i]] = true
	}
	for _, id := range visible {
		if !want[id] {
			return full
		}
		delete(want, id)
	}
	for n, i := range slots {
		full[i] = visible[n]
	}
	return full
}
