package controller

import (
	"errors"
	"io"
	"slices"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"tarefa/internal/dialog"
	"tarefa/internal/storage"
	"tarefa/internal/task"
	"tarefa/internal/view"
)

type recordingSaver struct {
	saves [][]task.Task
	err   error
}

func (r *recordingSaver) Save(tasks []task.Task) error {
	if r.err != nil {
		return r.err
	}
	r.saves = append(r.saves, tasks)
	return nil
}

func (r *recordingSaver) last() []task.Task {
	if len(r.saves) == 0 {
		return nil
	}
	return r.saves[len(r.saves)-1]
}

func newController(t *testing.T, d dialog.Provider, tasks ...task.Task) (*Controller, *recordingSaver) {
	t.Helper()
	coll := task.NewCollection(tasks).WithClock(func() time.Time { return time.UnixMilli(1000) })
	saver := &recordingSaver{}
	c := New(coll, saver, d, Options{Logger: log.New(io.Discard)})
	return c, saver
}

func threeTasks() []task.Task {
	return []task.Task{
		{ID: 1, Text: "um"},
		{ID: 2, Text: "dois", Completed: true},
		{ID: 3, Text: "três"},
	}
}

func TestAddRendersAndSaves(t *testing.T) {
	c, saver := newController(t, &dialog.Scripted{})
	got, err := c.Add("  nova  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(saver.saves) != 1 {
		t.Fatalf("expected one save, got %d", len(saver.saves))
	}
	if !slices.Equal(saver.last(), c.Tasks()) {
		t.Error("saved blob out of sync with collection")
	}
	d := c.Display()
	if len(d.Rows) != 1 || d.Rows[0].ID != got.ID {
		t.Errorf("expected display to show new task, got %+v", d.Rows)
	}
	if d.Progress.Label != "0/1 Tarefas Concluídas" {
		t.Errorf("unexpected progress %q", d.Progress.Label)
	}
}

func TestAddEmptyAlertsWithoutSaving(t *testing.T) {
	d := &dialog.Scripted{}
	c, saver := newController(t, d, threeTasks()...)
	if _, err := c.Add("   "); !errors.Is(err, task.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if len(c.Tasks()) != 3 {
		t.Errorf("expected size unchanged, got %d", len(c.Tasks()))
	}
	if len(saver.saves) != 0 {
		t.Errorf("expected no save, got %d", len(saver.saves))
	}
	if len(d.Alerts) != 1 || d.Alerts[0] != view.DefaultMessages().EmptyTextAlert {
		t.Errorf("expected one empty-text alert, got %v", d.Alerts)
	}
}

func TestEdit(t *testing.T) {
	tests := []struct {
		name    string
		reply   *string
		changed bool
		want    string
	}{
		{"replacement", dialog.Reply("  um editado "), true, "um editado"},
		{"cancelled", nil, false, "um"},
		{"blank", dialog.Reply("   "), false, "um"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &dialog.Scripted{Replies: []*string{tt.reply}}
			c, saver := newController(t, d, threeTasks()...)
			before, _ := c.Get(1)

			changed, err := c.Edit(1)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if changed != tt.changed {
				t.Errorf("changed = %v, want %v", changed, tt.changed)
			}
			after, _ := c.Get(1)
			if after.Text != tt.want {
				t.Errorf("text = %q, want %q", after.Text, tt.want)
			}
			if after.ID != before.ID || after.Completed != before.Completed {
				t.Errorf("edit touched more than text: %+v -> %+v", before, after)
			}
			if wantSaves := map[bool]int{true: 1, false: 0}[tt.changed]; len(saver.saves) != wantSaves {
				t.Errorf("expected %d saves, got %d", wantSaves, len(saver.saves))
			}
			if len(d.Asked) != 1 || d.Asked[0] != view.DefaultMessages().EditPrompt {
				t.Errorf("expected edit prompt, got %v", d.Asked)
			}
		})
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		c, saver := newController(t, &dialog.Scripted{Confirms: []bool{false}}, threeTasks()...)
		deleted, err := c.Delete(2)
		if err != nil || deleted {
			t.Fatalf("expected no delete, got %v %v", deleted, err)
		}
		if len(c.Tasks()) != 3 || len(saver.saves) != 0 {
			t.Error("declined delete changed state")
		}
	})

	t.Run("accepted", func(t *testing.T) {
		c, saver := newController(t, &dialog.Scripted{Confirms: []bool{true}}, threeTasks()...)
		deleted, err := c.Delete(2)
		if err != nil || !deleted {
			t.Fatalf("expected delete, got %v %v", deleted, err)
		}
		var ids []int64
		for _, tk := range saver.last() {
			ids = append(ids, tk.ID)
		}
		if !slices.Equal(ids, []int64{1, 3}) {
			t.Errorf("expected saved ids [1 3], got %v", ids)
		}
	})

	t.Run("unknown id is not asked", func(t *testing.T) {
		d := &dialog.Scripted{Confirms: []bool{true}}
		c, _ := newController(t, d, threeTasks()...)
		if _, err := c.Delete(42); !errors.Is(err, task.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if len(d.Asked) != 0 {
			t.Errorf("expected no confirmation, got %v", d.Asked)
		}
	})
}

func TestClearCompleted(t *testing.T) {
	c, saver := newController(t, &dialog.Scripted{Confirms: []bool{true}}, threeTasks()...)
	n, err := c.ClearCompleted()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 removed, got %d", n)
	}
	if got := c.Display().IDs(); !slices.Equal(got, []int64{1, 3}) {
		t.Errorf("unexpected rows %v", got)
	}
	if len(saver.saves) != 1 {
		t.Errorf("expected one save, got %d", len(saver.saves))
	}
}

func TestToggleUpdatesProgress(t *testing.T) {
	c, _ := newController(t, &dialog.Scripted{}, threeTasks()...)
	if _, err := c.ToggleComplete(1); err != nil {
		t.Fatal(err)
	}
	if got := c.Display().Progress.Label; got != "2/3 Tarefas Concluídas" {
		t.Errorf("unexpected progress %q", got)
	}
	if _, err := c.ToggleComplete(99); !errors.Is(err, task.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSetFilter(t *testing.T) {
	c, saver := newController(t, &dialog.Scripted{}, threeTasks()...)
	if err := c.SetFilter(view.FilterCompleted); err != nil {
		t.Fatal(err)
	}
	if got := c.Display().IDs(); !slices.Equal(got, []int64{2}) {
		t.Errorf("expected [2], got %v", got)
	}
	if len(saver.saves) != 1 {
		t.Errorf("expected filter change to persist, got %d saves", len(saver.saves))
	}
}

func TestSetFilterRejectsUnknown(t *testing.T) {
	c, saver := newController(t, &dialog.Scripted{}, threeTasks()...)
	if err := c.SetFilter(view.FilterPending); err != nil {
		t.Fatal(err)
	}

	err := c.SetFilter(view.Filter("someday"))
	if !errors.Is(err, view.ErrUnknownFilter) {
		t.Fatalf("expected ErrUnknownFilter, got %v", err)
	}
	if c.Filter() != view.FilterPending {
		t.Errorf("filter changed to %q", c.Filter())
	}
	if got := c.Display().IDs(); !slices.Equal(got, []int64{1, 3}) {
		t.Errorf("expected pending rows [1 3], got %v", got)
	}
	if len(saver.saves) != 1 {
		t.Errorf("expected no save for a rejected filter, got %d saves", len(saver.saves))
	}
}

func TestNewFallsBackToAllForUnknownFilter(t *testing.T) {
	c := New(task.NewCollection(nil), &recordingSaver{}, &dialog.Scripted{}, Options{
		Filter: view.Filter("someday"),
		Logger: log.New(io.Discard),
	})
	if c.Filter() != view.FilterAll {
		t.Errorf("expected all, got %q", c.Filter())
	}
	if got := c.Display().EmptyMessage; got != view.DefaultMessages().NothingAdded {
		t.Errorf("expected nothing-added message, got %q", got)
	}
}

func TestReorderSavesWithoutRerender(t *testing.T) {
	c, saver := newController(t, &dialog.Scripted{}, threeTasks()...)
	if err := c.SetFilter(view.FilterPending); err != nil {
		t.Fatal(err)
	}
	saver.saves = nil

	if err := c.ReorderVisible([]int64{3, 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var ids []int64
	for _, tk := range c.Tasks() {
		ids = append(ids, tk.ID)
	}
	if !slices.Equal(ids, []int64{3, 2, 1}) {
		t.Errorf("expected hidden task to keep its slot, got %v", ids)
	}
	if got := c.Display().IDs(); !slices.Equal(got, []int64{3, 1}) {
		t.Errorf("expected rows [3 1], got %v", got)
	}
	if len(saver.saves) != 1 {
		t.Errorf("expected one save, got %d", len(saver.saves))
	}
}

func TestReorderRejectsNonPermutation(t *testing.T) {
	c, saver := newController(t, &dialog.Scripted{}, threeTasks()...)
	if err := c.Reorder([]int64{1, 2}); !errors.Is(err, task.ErrNotPermutation) {
		t.Fatalf("expected ErrNotPermutation, got %v", err)
	}
	if len(saver.saves) != 0 {
		t.Error("rejected reorder was saved")
	}
}

func TestSaveErrorIsReturned(t *testing.T) {
	c, saver := newController(t, &dialog.Scripted{}, threeTasks()...)
	saver.err = errors.New("disk full")
	_, err := c.ToggleComplete(1)
	if err == nil || !errors.Is(err, saver.err) {
		t.Fatalf("expected wrapped save error, got %v", err)
	}
	// The in-memory mutation still happened.
	got, _ := c.Get(1)
	if !got.Completed {
		t.Error("expected toggle applied in memory")
	}
}

func TestPersistedOrderMatchesMemoryAcrossStore(t *testing.T) {
	store := storage.NewStore(storage.NewMemory(), "tasks", log.New(io.Discard))
	coll := task.NewCollection(store.Load())
	c := New(coll, store, &dialog.Scripted{}, Options{Logger: log.New(io.Discard)})

	for _, text := range []string{"a", "b", "c"} {
		if _, err := c.Add(text); err != nil {
			t.Fatal(err)
		}
	}
	ids := coll.IDs()
	slices.Reverse(ids)
	if err := c.Reorder(ids); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(store.Load(), c.Tasks()) {
		t.Errorf("store %+v != memory %+v", store.Load(), c.Tasks())
	}
}
