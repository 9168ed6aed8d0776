package cli

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tarefa/internal/dialog"
	"tarefa/internal/task"
	"tarefa/internal/view"
)

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, app, terminalDialogs(cmd))
			if err != nil {
				return err
			}
			defer s.Close()

			t, err := s.ctrl.Add(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %d\n", t.ID)
			return nil
		},
	}
}

type listedTask struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type listOutput struct {
	Filter   view.Filter   `json:"filter"`
	Tasks    []listedTask  `json:"tasks"`
	Progress view.Progress `json:"progress"`
}

func newListCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks under the active filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, app, terminalDialogs(cmd))
			if err != nil {
				return err
			}
			defer s.Close()

			d := s.ctrl.Display()
			out := cmd.OutOrStdout()
			if asJSON {
				res := listOutput{Filter: d.Filter, Tasks: []listedTask{}, Progress: d.Progress}
				for _, r := range d.Rows {
					res.Tasks = append(res.Tasks, listedTask{ID: r.ID, Text: r.Text, Completed: r.Completed})
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			if len(d.Rows) == 0 && d.EmptyMessage != "" {
				fmt.Fprintln(out, d.EmptyMessage)
			}
			for _, r := range d.Rows {
				box := "[ ]"
				if r.Completed {
					box = "[x]"
				}
				fmt.Fprintf(out, "%d  %s %s\n", r.ID, box, r.Text)
			}
			fmt.Fprintln(out, d.Progress.Label)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a task between pending and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := openSession(cmd, app, terminalDialogs(cmd))
			if err != nil {
				return err
			}
			defer s.Close()

			t, err := s.ctrl.ToggleComplete(id)
			if err != nil {
				return fmt.Errorf("task %d: %w", id, err)
			}
			state := "pending"
			if t.Completed {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", t.ID, state)
			return nil
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> [text...]",
		Short: "Replace a task's text (prompts when no text is given)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			dialogs := terminalDialogs(cmd)
			if len(args) > 1 {
				dialogs = &dialog.Preset{Reply: strings.Join(args[1:], " ")}
			}
			s, err := openSession(cmd, app, dialogs)
			if err != nil {
				return err
			}
			defer s.Close()

			changed, err := s.ctrl.Edit(id)
			if err != nil {
				return fmt.Errorf("task %d: %w", id, err)
			}
			if !changed {
				fmt.Fprintln(cmd.OutOrStdout(), "unchanged")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "edited %d\n", id)
			return nil
		},
	}
}

func newRmCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := openSession(cmd, app, confirmDialogs(cmd, yes))
			if err != nil {
				return err
			}
			defer s.Close()

			deleted, err := s.ctrl.Delete(id)
			if err != nil {
				return fmt.Errorf("task %d: %w", id, err)
			}
			if !deleted {
				fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")
	return cmd
}

func newClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every completed task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, app, confirmDialogs(cmd, yes))
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := s.ctrl.ClearCompleted()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %d\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")
	return cmd
}

func newReorderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <id>...",
		Short: "Set the order of the tasks shown under the active filter",
		Long:  "Give every id listed by `tarefa list` (same --filter) in the new order. Tasks hidden by the filter keep their slots.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, a := range args {
				id, err := parseID(a)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			s, err := openSession(cmd, app, terminalDialogs(cmd))
			if err != nil {
				return err
			}
			defer s.Close()

			shown := s.ctrl.Display().IDs()
			if !samePermutation(ids, shown) {
				return fmt.Errorf("reorder needs exactly the %d listed ids: %w", len(shown), task.ErrNotPermutation)
			}
			if err := s.ctrl.ReorderVisible(ids); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "reordered")
			return nil
		},
	}
}

func confirmDialogs(cmd *cobra.Command, yes bool) dialog.Provider {
	if yes {
		return &dialog.Preset{Confirmed: true}
	}
	return terminalDialogs(cmd)
}

func samePermutation(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}
