package app

import "github.com/hylla/tickit/internal/keymap"

// Mode is the interaction context that gates which actions are reachable.
type Mode int

const (
	ModeBrowsing Mode = iota
	ModeComposing
	ModeConfirmingExit
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeBrowsing:
		return "browsing"
	case ModeComposing:
		return "composing"
	case ModeConfirmingExit:
		return "confirming-exit"
	default:
		return "unknown"
	}
}

// IsInputMode reports whether the mode accepts text input.
func (m Mode) IsInputMode() bool {
	return m == ModeComposing
}

// Actions lists the actions reachable from the mode, in resolution priority order.
func (m Mode) Actions() []keymap.Action {
	switch m {
	case ModeBrowsing:
		return []keymap.Action{
			keymap.ActionNewTask,
			keymap.ActionExitApp,
			keymap.ActionListUp,
			keymap.ActionListDown,
			keymap.ActionToggleTask,
			keymap.ActionDeleteTask,
		}
	case ModeComposing:
		return []keymap.Action{keymap.ActionSaveTask, keymap.ActionExitAdding}
	case ModeConfirmingExit:
		return []keymap.Action{keymap.ActionConfirmExit, keymap.ActionDeclineExit}
	default:
		return nil
	}
}

// ResolveAction looks up the action bound to k among those the mode exposes.
func ResolveAction(b keymap.Bindings, mode Mode, k keymap.Key) (keymap.Action, bool) {
	return b.Resolve(k, mode.Actions()...)
}
