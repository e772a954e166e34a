package app

import (
	"github.com/hylla/tickit/internal/domain"
	"github.com/hylla/tickit/internal/keymap"
)

// EventKind distinguishes resolved actions from raw text editing.
type EventKind int

const (
	EventAction EventKind = iota
	EventChar
	EventBackspace
)

// Event is one input to the mode state machine. HasText reports whether the input
// buffer held a non-blank title when the event was raised; a save without it is ignored.
type Event struct {
	Kind    EventKind
	Action  keymap.Action
	Char    rune
	HasText bool
}

// ActionEvent wraps a resolved action.
func ActionEvent(action keymap.Action) Event {
	return Event{Kind: EventAction, Action: action}
}

// WithBuffer records whether buffer is a committable title.
func (e Event) WithBuffer(buffer string) Event {
	e.HasText = !domain.IsBlankTitle(buffer)
	return e
}

// CharEvent wraps one typed character.
func CharEvent(r rune) Event {
	return Event{Kind: EventChar, Char: r}
}

// BackspaceEvent removes the last typed character.
func BackspaceEvent() Event {
	return Event{Kind: EventBackspace}
}

// EffectKind names one state change requested by a transition.
type EffectKind int

const (
	EffectSuspendSelection EffectKind = iota
	EffectResetSelection
	EffectMoveUp
	EffectMoveDown
	EffectToggleSelected
	EffectDeleteSelected
	EffectAppendFromBuffer
	EffectClearBuffer
	EffectInsertChar
	EffectDeleteChar
	EffectQuit
)

// String returns the string representation of the effect.
func (k EffectKind) String() string {
	switch k {
	case EffectSuspendSelection:
		return "suspend-selection"
	case EffectResetSelection:
		return "reset-selection"
	case EffectMoveUp:
		return "move-up"
	case EffectMoveDown:
		return "move-down"
	case EffectToggleSelected:
		return "toggle-selected"
	case EffectDeleteSelected:
		return "delete-selected"
	case EffectAppendFromBuffer:
		return "append-from-buffer"
	case EffectClearBuffer:
		return "clear-buffer"
	case EffectInsertChar:
		return "insert-char"
	case EffectDeleteChar:
		return "delete-char"
	case EffectQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Effect is applied in order by State after a transition.
type Effect struct {
	Kind EffectKind
	Char rune
}

// Transition maps (mode, event) onto the next mode and the effects to apply. Pairs not
// listed for the mode leave it unchanged with no effects. A save without text keeps the
// mode in Composing.
func Transition(mode Mode, ev Event) (Mode, []Effect) {
	switch mode {
	case ModeBrowsing:
		return browsingTransition(ev)
	case ModeComposing:
		return composingTransition(ev)
	case ModeConfirmingExit:
		return confirmingExitTransition(ev)
	default:
		return mode, nil
	}
}

func browsingTransition(ev Event) (Mode, []Effect) {
	if ev.Kind != EventAction {
		return ModeBrowsing, nil
	}
	switch ev.Action {
	case keymap.ActionNewTask:
		return ModeComposing, effects(EffectSuspendSelection)
	case keymap.ActionExitApp:
		return ModeConfirmingExit, nil
	case keymap.ActionListUp:
		return ModeBrowsing, effects(EffectMoveUp)
	case keymap.ActionListDown:
		return ModeBrowsing, effects(EffectMoveDown)
	case keymap.ActionToggleTask:
		return ModeBrowsing, effects(EffectToggleSelected)
	case keymap.ActionDeleteTask:
		return ModeBrowsing, effects(EffectDeleteSelected)
	default:
		return ModeBrowsing, nil
	}
}

func composingTransition(ev Event) (Mode, []Effect) {
	switch ev.Kind {
	case EventChar:
		return ModeComposing, []Effect{{Kind: EffectInsertChar, Char: ev.Char}}
	case EventBackspace:
		return ModeComposing, effects(EffectDeleteChar)
	case EventAction:
		switch ev.Action {
		case keymap.ActionSaveTask:
			if !ev.HasText {
				return ModeComposing, nil
			}
			return ModeBrowsing, effects(EffectAppendFromBuffer, EffectClearBuffer, EffectResetSelection)
		case keymap.ActionExitAdding:
			return ModeBrowsing, effects(EffectClearBuffer, EffectResetSelection)
		}
	}
	return ModeComposing, nil
}

func confirmingExitTransition(ev Event) (Mode, []Effect) {
	if ev.Kind != EventAction {
		return ModeConfirmingExit, nil
	}
	switch ev.Action {
	case keymap.ActionConfirmExit:
		return ModeConfirmingExit, effects(EffectQuit)
	case keymap.ActionDeclineExit:
		return ModeBrowsing, nil
	default:
		return ModeConfirmingExit, nil
	}
}

func effects(kinds ...EffectKind) []Effect {
	out := make([]Effect, 0, len(kinds))
	for _, kind := range kinds {
		out = append(out, Effect{Kind: kind})
	}
	return out
}
