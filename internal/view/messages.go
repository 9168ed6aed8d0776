package view

import (
	"fmt"
	"strings"
)

// Messages is the fixed user-facing text for one locale.
type Messages struct {
	Locale string

	NothingAdded   string
	NonePending    string
	NoneCompleted  string
	ProgressFormat string

	MarkPending   string
	MarkCompleted string
	EditTask      string
	DeleteTask    string

	EmptyTextAlert   string
	EditPrompt       string
	ConfirmDelete    string
	ConfirmClearDone string
	InputPlaceholder string
	FilterNames      map[Filter]string
}

var catalog = map[string]Messages{
	"pt-BR": {
		Locale:           "pt-BR",
		NothingAdded:     "Nenhuma tarefa adicionada ainda. Que tal adicionar uma?",
		NonePending:      "Nenhuma tarefa pendente.",
		NoneCompleted:    "Nenhuma tarefa concluída.",
		ProgressFormat:   "%d/%d Tarefas Concluídas",
		MarkPending:      "Marcar como pendente",
		MarkCompleted:    "Marcar como concluída",
		EditTask:         "Editar tarefa",
		DeleteTask:       "Excluir tarefa",
		EmptyTextAlert:   "Por favor, digite uma tarefa.",
		EditPrompt:       "Editar tarefa:",
		ConfirmDelete:    "Tem certeza que deseja excluir esta tarefa?",
		ConfirmClearDone: "Tem certeza que deseja limpar todas as tarefas concluídas?",
		FilterNames: map[Filter]string{
			FilterAll:       "Todas",
			FilterPending:   "Pendentes",
			FilterCompleted: "Concluídas",
		},
		InputPlaceholder: "Adicionar nova tarefa...",
	},
	"en": {
		Locale:           "en",
		NothingAdded:     "No tasks added yet. Why not add one?",
		NonePending:      "No pending tasks.",
		NoneCompleted:    "No completed tasks.",
		ProgressFormat:   "%d/%d Tasks Done",
		MarkPending:      "Mark as pending",
		MarkCompleted:    "Mark as completed",
		EditTask:         "Edit task",
		DeleteTask:       "Delete task",
		EmptyTextAlert:   "Please type a task.",
		EditPrompt:       "Edit task:",
		ConfirmDelete:    "Are you sure you want to delete this task?",
		ConfirmClearDone: "Are you sure you want to clear all completed tasks?",
		FilterNames: map[Filter]string{
			FilterAll:       "All",
			FilterPending:   "Pending",
			FilterCompleted: "Completed",
		},
		InputPlaceholder: "Add a new task...",
	},
}

const DefaultLocale = "pt-BR"

// MessagesFor looks up a locale by name ("pt-BR", "pt_br", "EN", ...).
func MessagesFor(locale string) (Messages, error) {
	norm := strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if norm == "" {
		return catalog[DefaultLocale], nil
	}
	for name, m := range catalog {
		if strings.EqualFold(name, norm) {
			return m, nil
		}
	}
	return catalog[DefaultLocale], fmt.Errorf("unsupported locale %q", locale)
}

// DefaultMessages is the pt-BR catalog.
func DefaultMessages() Messages {
	return catalog[DefaultLocale]
}

func (m Messages) toggleTitle(completed bool) string {
	if completed {
		return m.MarkPending
	}
	return m.MarkCompleted
}

func (m Messages) emptyFor(f Filter) string {
	if f == FilterPending {
		return m.NonePending
	}
	return m.NoneCompleted
}

func (m Messages) FilterName(f Filter) string {
	if name, ok := m.FilterNames[f]; ok {
		return name
	}
	return string(f)
}
