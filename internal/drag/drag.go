// Package drag implements drag-to-reorder over a vertical list of rows
// without any knowledge of how the rows are drawn.
package drag

import (
	"math"
	"slices"
)

// Geometry is the vertical extent of one row.
type Geometry struct {
	ID     int64
	Top    float64
	Height float64
}

// InsertionIndex returns the index in rows of the nearest row whose midpoint
// lies below pointerY, or len(rows) when the pointer is below every midpoint.
func InsertionIndex(pointerY float64, rows []Geometry) int {
	best := len(rows)
	closest := math.Inf(-1)
	for i, r := range rows {
		offset := pointerY - r.Top - r.Height/2
		if offset < 0 && offset > closest {
			closest = offset
			best = i
		}
	}
	return best
}

// Session tracks one drag gesture. Only one row can be dragged at a time.
type Session struct {
	order   []int64
	dragged int64
	active  bool
	armed   bool
	moved   bool
}

// Start records id as the dragged row over the current visual order. The
// row is not marked as dragging until Arm is called on the next tick.
func (s *Session) Start(id int64, order []int64) bool {
	if slices.Index(order, id) < 0 {
		return false
	}
	s.order = append(s.order[:0], order...)
	s.dragged = id
	s.active = true
	s.armed = false
	s.moved = false
	return true
}

// Arm applies the dragging mark. It is a no-op once the session has ended.
func (s *Session) Arm() {
	if s.active {
		s.armed = true
	}
}

func (s *Session) Active() bool { return s.active }

// Dragging reports the marked row, if any.
func (s *Session) Dragging() (int64, bool) {
	if !s.active || !s.armed {
		return 0, false
	}
	return s.dragged, true
}

// Order is the current visual order, including the dragged row.
func (s *Session) Order() []int64 {
	out := make([]int64, len(s.order))
	copy(out, s.order)
	return out
}

// Over moves the dragged row to just before the sibling chosen by
// InsertionIndex, or to the end. geometry must describe every row in the
// current visual order; the dragged row is skipped. It reports whether the
// order changed.
func (s *Session) Over(pointerY float64, geometry []Geometry) bool {
	if _, ok := s.Dragging(); !ok {
		return false
	}
	siblings := make([]Geometry, 0, len(geometry))
	for _, g := range geometry {
		if g.ID != s.dragged {
			siblings = append(siblings, g)
		}
	}
	at := InsertionIndex(pointerY, siblings)

	rest := make([]int64, 0, len(s.order))
	for _, id := range s.order {
		if id != s.dragged {
			rest = append(rest, id)
		}
	}
	pos := len(rest)
	if at < len(siblings) {
		if i := slices.Index(rest, siblings[at].ID); i >= 0 {
			pos = i
		}
	}
	next := make([]int64, 0, len(s.order))
	next = append(next, rest[:pos]...)
	next = append(next, s.dragged)
	next = append(next, rest[pos:]...)

	if slices.Equal(next, s.order) {
		return false
	}
	s.order = next
	s.moved = true
	return true
}

// Step moves the dragged row one position up (delta < 0) or down. It is the
// keyboard counterpart of Over.
func (s *Session) Step(delta int) bool {
	if _, ok := s.Dragging(); !ok || delta == 0 {
		return false
	}
	i := slices.Index(s.order, s.dragged)
	j := i + delta
	if j < 0 || j >= len(s.order) {
		return false
	}
	s.order[i], s.order[j] = s.order[j], s.order[i]
	s.moved = true
	return true
}

// Drop returns the final visual order. ok is false when no drag is in
// progress. The session stays active until End.
func (s *Session) Drop() (order []int64, ok bool) {
	if !s.active {
		return nil, false
	}
	return s.Order(), true
}

// Moved reports whether any Over or Step changed the order.
func (s *Session) Moved() bool { return s.active && s.moved }

// End clears the mark and the dragged reference whether or not a drop
// happened.
func (s *Session) End() {
	s.order = s.order[:0]
	s.dragged = 0
	s.active = false
	s.armed = false
	s.moved = false
}

// Rows builds unit-height geometry for rows laid out one per line starting
// at top.
func Rows(ids []int64, top int) []Geometry {
	out := make([]Geometry, len(ids))
	for i, id := range ids {
		out[i] = Geometry{ID: id, Top: float64(top + i), Height: 1}
	}
	return out
}
