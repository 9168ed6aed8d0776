package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"tarefa/internal/config"
)

type keyMap struct {
	Quit            key.Binding
	Add             key.Binding
	Up              key.Binding
	Down            key.Binding
	Toggle          key.Binding
	Delete          key.Binding
	Edit            key.Binding
	ClearCompleted  key.Binding
	FilterAll       key.Binding
	FilterPending   key.Binding
	FilterCompleted key.Binding
	CycleFilter     key.Binding
	Grab            key.Binding
	Confirm         key.Binding
	Cancel          key.Binding
	Yes             key.Binding
	No              key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Quit:            binding("quit", k.Quit, "ctrl+c"),
		Add:             binding("add", k.Add),
		Up:              binding("up", k.Up, "up"),
		Down:            binding("down", k.Down, "down"),
		Toggle:          binding("toggle", k.Toggle),
		Delete:          binding("delete", k.Delete),
		Edit:            binding("edit", k.Edit),
		ClearCompleted:  binding("clear done", k.ClearCompleted),
		FilterAll:       binding("all", k.FilterAll),
		FilterPending:   binding("pending", k.FilterPending),
		FilterCompleted: binding("completed", k.FilterCompleted),
		CycleFilter:     binding("filter", k.CycleFilter),
		Grab:            binding("move", k.Grab),
		Confirm:         binding("confirm", k.Confirm),
		Cancel:          binding("cancel", k.Cancel),
		Yes:             binding("yes", "y", "Y", "s", "S"),
		No:              binding("no", "n", "N"),
	}
}

func binding(desc string, keys ...string) key.Binding {
	var set []string
	for _, k := range keys {
		if k != "" {
			set = append(set, k)
		}
	}
	if len(set) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(key.WithKeys(set...), key.WithHelp(keyLabel(set[0]), desc))
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.Grab, k.CycleFilter, k.ClearCompleted, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Grab},
		{k.Add, k.Toggle, k.Edit, k.Delete},
		{k.FilterAll, k.FilterPending, k.FilterCompleted, k.CycleFilter},
		{k.ClearCompleted, k.Quit},
	}
}

// dragKeys is the help shown while a row is grabbed.
type dragKeys keyMap

func (k dragKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Cancel}
}

func (k dragKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
