package app

import (
	"fmt"
	"strings"

	"github.com/hylla/tickit/internal/keymap"
)

// TaskRow is one projected list entry.
type TaskRow struct {
	Title     string
	Completed bool
	Selected  bool
}

// HelpEntry pairs a key label with what it does in the current mode.
type HelpEntry struct {
	Key  string
	Desc string
}

// ViewModel is the read-only projection consumed by renderers.
type ViewModel struct {
	Tasks    []TaskRow
	Input    string
	Mode     Mode
	Help     []HelpEntry
	HelpText string
}

// Project derives the view model from the current state without mutating it.
func (s *State) Project() ViewModel {
	tasks := s.store.All()
	selected, hasSelected := s.store.Selected()
	rows := make([]TaskRow, 0, len(tasks))
	for idx, task := range tasks {
		rows = append(rows, TaskRow{
			Title:     task.Title,
			Completed: task.Completed,
			Selected:  hasSelected && idx == selected,
		})
	}
	help := helpEntries(s.keys, s.mode)
	return ViewModel{
		Tasks:    rows,
		Input:    string(s.input),
		Mode:     s.mode,
		Help:     help,
		HelpText: helpText(s.keys, s.mode, help),
	}
}

// helpEntries lists the key hints shown for a mode.
func helpEntries(b keymap.Bindings, mode Mode) []HelpEntry {
	switch mode {
	case ModeBrowsing:
		return []HelpEntry{
			{Key: b.Label(keymap.ActionExitApp), Desc: "exit"},
			{Key: b.Label(keymap.ActionNewTask), Desc: "new task"},
			{Key: b.Label(keymap.ActionToggleTask), Desc: "check/uncheck task"},
			{Key: b.Label(keymap.ActionListUp) + "/" + b.Label(keymap.ActionListDown), Desc: "navigate list"},
			{Key: b.Label(keymap.ActionDeleteTask), Desc: "delete task"},
		}
	case ModeComposing:
		return []HelpEntry{
			{Key: b.Label(keymap.ActionExitAdding), Desc: "stop adding"},
			{Key: b.Label(keymap.ActionSaveTask), Desc: "save task"},
		}
	case ModeConfirmingExit:
		return []HelpEntry{
			{Key: b.Label(keymap.ActionConfirmExit), Desc: "confirm quitting"},
			{Key: b.Label(keymap.ActionDeclineExit), Desc: "cancel"},
		}
	default:
		return nil
	}
}

func helpText(b keymap.Bindings, mode Mode, entries []HelpEntry) string {
	if mode == ModeConfirmingExit {
		return fmt.Sprintf("Press %s to confirm quitting, '%s' to cancel",
			b.Label(keymap.ActionConfirmExit), b.Label(keymap.ActionDeclineExit))
	}
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, entry.Key+" "+entry.Desc)
	}
	return strings.Join(parts, " | ")
}
