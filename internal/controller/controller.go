// Package controller owns the task collection for one session and applies
// user actions to it. Every action re-renders the display and writes the
// whole collection back to the store.
package controller

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"tarefa/internal/dialog"
	"tarefa/internal/task"
	"tarefa/internal/view"
)

// Saver persists the full collection.
type Saver interface {
	Save(tasks []task.Task) error
}

type Options struct {
	Filter   view.Filter
	Messages view.Messages
	Logger   *log.Logger
}

type Controller struct {
	tasks   *task.Collection
	filter  view.Filter
	store   Saver
	dialogs dialog.Provider
	msg     view.Messages
	logger  *log.Logger
	display view.Display
}

func New(tasks *task.Collection, store Saver, dialogs dialog.Provider, opts Options) *Controller {
	if !opts.Filter.Valid() {
		opts.Filter = view.FilterAll
	}
	if opts.Messages.ProgressFormat == "" {
		opts.Messages = view.DefaultMessages()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	c := &Controller{
		tasks:   tasks,
		filter:  opts.Filter,
		store:   store,
		dialogs: dialogs,
		msg:     opts.Messages,
		logger:  opts.Logger,
	}
	c.render()
	return c
}

func (c *Controller) Display() view.Display { return c.display }

func (c *Controller) Filter() view.Filter { return c.filter }

func (c *Controller) Messages() view.Messages { return c.msg }

func (c *Controller) Tasks() []task.Task { return c.tasks.Tasks() }

func (c *Controller) Get(id int64) (task.Task, bool) { return c.tasks.Get(id) }

// Add appends a task. Empty text raises an alert and returns
// task.ErrEmptyText without touching the collection.
func (c *Controller) Add(text string) (task.Task, error) {
	t, err := c.tasks.Add(text)
	if errors.Is(err, task.ErrEmptyText) {
		c.dialogs.Alert(c.msg.EmptyTextAlert)
		return task.Task{}, err
	}
	if err != nil {
		return task.Task{}, err
	}
	c.logger.Info("task added", "id", t.ID)
	return t, c.commit()
}

func (c *Controller) ToggleComplete(id int64) (task.Task, error) {
	t, err := c.tasks.ToggleComplete(id)
	if err != nil {
		c.logger.Debug("toggle ignored", "id", id, "err", err)
		return task.Task{}, err
	}
	c.logger.Info("task toggled", "id", id, "completed", t.Completed)
	return t, c.commit()
}

// Edit prompts for a replacement text prefilled with the current one. A
// cancelled prompt or a blank reply leaves the task untouched and reports
// changed=false.
func (c *Controller) Edit(id int64) (changed bool, err error) {
	cur, ok := c.tasks.Get(id)
	if !ok {
		return false, task.ErrNotFound
	}
	reply, ok := c.dialogs.Prompt(c.msg.EditPrompt, cur.Text)
	if !ok {
		return false, nil
	}
	if _, err := c.tasks.Edit(id, reply); err != nil {
		if errors.Is(err, task.ErrEmptyText) {
			return false, nil
		}
		return false, err
	}
	c.logger.Info("task edited", "id", id)
	return true, c.commit()
}

// Delete removes a task after confirmation.
func (c *Controller) Delete(id int64) (deleted bool, err error) {
	if _, ok := c.tasks.Get(id); !ok {
		return false, task.ErrNotFound
	}
	if !c.dialogs.Confirm(c.msg.ConfirmDelete) {
		return false, nil
	}
	if _, err := c.tasks.Delete(id); err != nil {
		return false, err
	}
	c.logger.Info("task deleted", "id", id)
	return true, c.commit()
}

// ClearCompleted removes every completed task after confirmation and
// returns how many went away.
func (c *Controller) ClearCompleted() (int, error) {
	if !c.dialogs.Confirm(c.msg.ConfirmClearDone) {
		return 0, nil
	}
	n := c.tasks.ClearCompleted()
	c.logger.Info("completed tasks cleared", "count", n)
	return n, c.commit()
}

// SetFilter switches the visible subset. Unknown filters are rejected and
// leave the current one in place.
func (c *Controller) SetFilter(f view.Filter) error {
	if !f.Valid() {
		return fmt.Errorf("%w %q", view.ErrUnknownFilter, f)
	}
	c.filter = f
	return c.commit()
}

// Reorder replaces the collection order with ids, a permutation of every
// task. Only the store is written; callers already show the new order.
func (c *Controller) Reorder(ids []int64) error {
	if err := c.tasks.Reorder(ids); err != nil {
		return err
	}
	c.syncRowOrder()
	c.logger.Info("tasks reordered", "count", len(ids))
	return c.save()
}

// ReorderVisible applies a new order of the rows currently displayed. Tasks
// hidden by the filter keep their positions.
func (c *Controller) ReorderVisible(visible []int64) error {
	return c.Reorder(view.MergeVisibleOrder(c.tasks.Tasks(), c.filter, visible))
}

func (c *Controller) commit() error {
	c.render()
	return c.save()
}

func (c *Controller) render() {
	c.display = view.Render(c.tasks.Tasks(), c.filter, c.msg)
}

func (c *Controller) save() error {
	if err := c.store.Save(c.tasks.Tasks()); err != nil {
		c.logger.Error("save failed", "err", err)
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// syncRowOrder puts the displayed rows in collection order without
// re-filtering, matching what the drag already drew.
func (c *Controller) syncRowOrder() {
	pos := make(map[int64]int, c.tasks.Len())
	for i, id := range c.tasks.IDs() {
		pos[id] = i
	}
	rows := append([]view.Row(nil), c.display.Rows...)
	slices.SortStableFunc(rows, func(a, b view.Row) int {
		return pos[a.ID] - pos[b.ID]
	})
	c.display.Rows = rows
}
