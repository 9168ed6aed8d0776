// Package task holds the ordered task collection and its mutations.
package task

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyText      = errors.New("task text is empty")
	ErrNotFound       = errors.New("task not found")
	ErrNotPermutation = errors.New("order is not a permutation of the collection")
)

type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Collection is the in-memory, ordered list of tasks. The zero value is an
// empty collection that stamps ids from the wall clock.
type Collection struct {
	tasks []Task
	now   func() time.Time
}

func NewCollection(tasks []Task) *Collection {
	c := &Collection{}
	c.tasks = append(c.tasks, tasks...)
	return c
}

// WithClock sets the clock new ids are stamped from.
func (c *Collection) WithClock(now func() time.Time) *Collection {
	c.now = now
	return c
}

func (c *Collection) Len() int {
	return len(c.tasks)
}

// Tasks returns a copy of the tasks in collection order.
func (c *Collection) Tasks() []Task {
	out := make([]Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

func (c *Collection) Get(id int64) (Task, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return c.tasks[i], true
}

func (c *Collection) IDs() []int64 {
	ids := make([]int64, len(c.tasks))
	for i, t := range c.tasks {
		ids[i] = t.ID
	}
	return ids
}

// Add appends a new pending task and returns it.
func (c *Collection) Add(text string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmptyText
	}
	t := Task{ID: c.nextID(), Text: text}
	c.tasks = append(c.tasks, t)
	return t, nil
}

func (c *Collection) ToggleComplete(id int64) (Task, error) {
	i := c.indexOf(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}
	c.tasks[i].Completed = !c.tasks[i].Completed
	return c.tasks[i], nil
}

func (c *Collection) Edit(id int64, text string) (Task, error) {
	i := c.indexOf(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return c.tasks[i], ErrEmptyText
	}
	c.tasks[i].Text = text
	return c.tasks[i], nil
}

func (c *Collection) Delete(id int64) (Task, error) {
	i := c.indexOf(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}
	t := c.tasks[i]
	c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
	return t, nil
}

// ClearCompleted drops every completed task, keeping the order of the rest,
// and reports how many were removed.
func (c *Collection) ClearCompleted() int {
	kept := c.tasks[:0]
	for _, t := range c.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(c.tasks) - len(kept)
	clear(c.tasks[len(kept):])
	c.tasks = kept
	return removed
}

func (c *Collection) CompletedCount() int {
	n := 0
	for _, t := range c.tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// Reorder rearranges the collection to follow ids, which must name every
// task exactly once.
func (c *Collection) Reorder(ids []int64) error {
	if len(ids) != len(c.tasks) {
		return ErrNotPermutation
	}
	byID := make(map[int64]Task, len(c.tasks))
	for _, t := range c.tasks {
		byID[t.ID] = t
	}
	next := make([]Task, 0, len(ids))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			return ErrNotPermutation
		}
		delete(byID, id)
		next = append(next, t)
	}
	c.tasks = next
	return nil
}

func (c *Collection) indexOf(id int64) int {
	for i, t := range c.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// nextID uses the creation time in milliseconds, bumped past the largest id
// in use so two adds within the same millisecond never collide.
func (c *Collection) nextID() int64 {
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	id := now().UnixMilli()
	for _, t := range c.tasks {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}
