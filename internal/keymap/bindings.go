package keymap

import "fmt"

// Action is a logical, mode-independent operation name.
type Action string

// Configurable actions use the config key names; the confirm/decline pair is fixed.
const (
	ActionExitApp     Action = "exit_app"
	ActionNewTask     Action = "new_task"
	ActionToggleTask  Action = "check_and_uncheck_task"
	ActionListUp      Action = "list_up"
	ActionListDown    Action = "list_down"
	ActionDeleteTask  Action = "delete_task"
	ActionExitAdding  Action = "exit_adding"
	ActionSaveTask    Action = "save_task"
	ActionConfirmExit Action = "confirm_exit"
	ActionDeclineExit Action = "decline_exit"
)

// ConfigurableActions lists the actions users may rebind, in config order.
var ConfigurableActions = []Action{
	ActionExitApp,
	ActionNewTask,
	ActionToggleTask,
	ActionListUp,
	ActionListDown,
	ActionDeleteTask,
	ActionExitAdding,
	ActionSaveTask,
}

// fixedBindings are not configurable.
var fixedBindings = map[Action]Key{
	ActionConfirmExit: Enter,
	ActionDeclineExit: Char('n'),
}

// Bindings maps every action onto exactly one key. Build it once at startup.
type Bindings struct {
	ExitApp    Key
	NewTask    Key
	ToggleTask Key
	ListUp     Key
	ListDown   Key
	DeleteTask Key
	ExitAdding Key
	SaveTask   Key
}

// Default returns the stock bindings.
func Default() Bindings {
	return Bindings{
		ExitApp:    Esc,
		NewTask:    Char('n'),
		ToggleTask: Enter,
		ListUp:     Up,
		ListDown:   Down,
		DeleteTask: Delete,
		ExitAdding: Esc,
		SaveTask:   Enter,
	}
}

// FromStrings builds bindings from config identifiers keyed by action name. Missing or
// blank entries keep the default key.
func FromStrings(raw map[Action]string) (Bindings, error) {
	b := Default()
	for _, action := range ConfigurableActions {
		value, ok := raw[action]
		if !ok || value == "" {
			continue
		}
		k, err := ParseKey(value)
		if err != nil {
			return Bindings{}, fmt.Errorf("keys.%s: %w", action, err)
		}
		b.set(action, k)
	}
	return b, nil
}

// KeyFor returns the key bound to an action.
func (b Bindings) KeyFor(action Action) (Key, bool) {
	switch action {
	case ActionExitApp:
		return b.ExitApp, true
	case ActionNewTask:
		return b.NewTask, true
	case ActionToggleTask:
		return b.ToggleTask, true
	case ActionListUp:
		return b.ListUp, true
	case ActionListDown:
		return b.ListDown, true
	case ActionDeleteTask:
		return b.DeleteTask, true
	case ActionExitAdding:
		return b.ExitAdding, true
	case ActionSaveTask:
		return b.SaveTask, true
	}
	k, ok := fixedBindings[action]
	return k, ok
}

// Resolve returns the first candidate action bound to k. Unbound keys resolve to nothing.
func (b Bindings) Resolve(k Key, candidates ...Action) (Action, bool) {
	for _, action := range candidates {
		bound, ok := b.KeyFor(action)
		if ok && bound == k {
			return action, true
		}
	}
	return "", false
}

// Label returns the display name of the key bound to an action.
func (b Bindings) Label(action Action) string {
	k, ok := b.KeyFor(action)
	if !ok {
		return DisplayName(Null)
	}
	return DisplayName(k)
}

// Strings returns the config identifiers of the configurable bindings.
func (b Bindings) Strings() map[Action]string {
	out := make(map[Action]string, len(ConfigurableActions))
	for _, action := range ConfigurableActions {
		k, _ := b.KeyFor(action)
		out[action] = k.String()
	}
	return out
}

func (b *Bindings) set(action Action, k Key) {
	switch action {
	case ActionExitApp:
		b.ExitApp = k
	case ActionNewTask:
		b.NewTask = k
	case ActionToggleTask:
		b.ToggleTask = k
	case ActionListUp:
		b.ListUp = k
	case ActionListDown:
		b.ListDown = k
	case ActionDeleteTask:
		b.DeleteTask = k
	case ActionExitAdding:
		b.ExitAdding = k
	case ActionSaveTask:
		b.SaveTask = k
	}
}
