package app

import (
	"github.com/hylla/tickit/internal/domain"
	"github.com/hylla/tickit/internal/keymap"
)

// State owns the task store, the current mode and the input buffer. It is driven from a
// single event loop and is not safe for concurrent use.
type State struct {
	store *Store
	mode  Mode
	input []rune
	keys  keymap.Bindings
	done  bool
}

// NewState constructs the application state in Browsing mode.
func NewState(tasks []domain.Task, keys keymap.Bindings) *State {
	return &State{
		store: NewStore(tasks),
		mode:  ModeBrowsing,
		keys:  keys,
	}
}

// Dispatch handles one raw key. Explicit bindings for the current mode win; in
// Composing mode backspace and printable characters edit the buffer. Anything else is
// ignored.
func (s *State) Dispatch(k keymap.Key) {
	if s.done {
		return
	}
	if action, ok := ResolveAction(s.keys, s.mode, k); ok {
		s.apply(ActionEvent(action).WithBuffer(string(s.input)))
		return
	}
	if s.mode != ModeComposing {
		return
	}
	switch {
	case k == keymap.Backspace:
		s.apply(BackspaceEvent())
	case k.IsPrintable():
		r, _ := k.Rune()
		s.apply(CharEvent(r))
	}
}

// apply runs one event through the transition function and applies its effects.
func (s *State) apply(ev Event) {
	next, effs := Transition(s.mode, ev)
	s.mode = next
	for _, eff := range effs {
		s.applyEffect(eff)
	}
}

func (s *State) applyEffect(eff Effect) {
	switch eff.Kind {
	case EffectSuspendSelection:
		s.store.ClearSelection()
	case EffectResetSelection:
		s.store.ResetSelection()
	case EffectMoveUp:
		s.store.MoveUp()
	case EffectMoveDown:
		s.store.MoveDown()
	case EffectToggleSelected:
		s.store.ToggleSelected()
	case EffectDeleteSelected:
		s.store.DeleteSelected()
	case EffectAppendFromBuffer:
		s.store.Append(string(s.input))
	case EffectClearBuffer:
		s.input = s.input[:0]
	case EffectInsertChar:
		s.input = append(s.input, eff.Char)
	case EffectDeleteChar:
		if len(s.input) > 0 {
			s.input = s.input[:len(s.input)-1]
		}
	case EffectQuit:
		s.done = true
	}
}

// Mode returns the current mode.
func (s *State) Mode() Mode {
	return s.mode
}

// Done reports whether exit was confirmed.
func (s *State) Done() bool {
	return s.done
}

// Input returns the current input buffer.
func (s *State) Input() string {
	return string(s.input)
}

// Selected returns the selection cursor.
func (s *State) Selected() (int, bool) {
	return s.store.Selected()
}

// Tasks returns a copy of the task collection.
func (s *State) Tasks() []domain.Task {
	return s.store.All()
}

// Keys returns the binding table.
func (s *State) Keys() keymap.Bindings {
	return s.keys
}
