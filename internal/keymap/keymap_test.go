package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{"null", Null, "Null"},
		{"backspace", Backspace, "Backspace"},
		{"enter", Enter, "Enter"},
		{"left", Left, "←"},
		{"right", Right, "→"},
		{"up", Up, "↑"},
		{"down", Down, "↓"},
		{"home", Home, "Home"},
		{"end", End, "End"},
		{"page up", PageUp, "Page Up"},
		{"page down", PageDown, "Page Down"},
		{"tab", Tab, "Tab"},
		{"back tab", BackTab, "Back Tab"},
		{"delete", Delete, "Delete"},
		{"insert", Insert, "Insert"},
		{"esc", Esc, "Esc"},
		{"function key", F(5), "F5"},
		{"char", Char('n'), "n"},
		{"uppercase char", Char('N'), "N"},
		{"unicode char", Char('é'), "é"},
		{"space", Char(' '), "Space"},
		{"control char", Char('\x01'), "U+0001"},
		{"zero value", Key{}, "Null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.key))
		})
	}
}

func TestDisplayNameNeverEmpty(t *testing.T) {
	for kind := Kind(0); kind < kindCount; kind++ {
		k := Key{kind: kind}
		assert.NotEmpty(t, DisplayName(k), "kind %d", kind)
	}
	assert.NotEmpty(t, DisplayName(Char(0)))
	assert.NotEmpty(t, DisplayName(F(0)))
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		raw  string
		want Key
	}{
		{"esc", Esc},
		{"Escape", Esc},
		{"ENTER", Enter},
		{"return", Enter},
		{"up", Up},
		{"down", Down},
		{"delete", Delete},
		{"pgup", PageUp},
		{"PageDown", PageDown},
		{"shift+tab", BackTab},
		{"f1", F(1)},
		{"F12", F(12)},
		{"n", Char('n')},
		{"N", Char('N')},
		{"space", Char(' ')},
		{" ", Char(' ')},
		{"  x  ", Char('x')},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseKey(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKeyRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "   ", "ctrl+q", "f0", "f64", "fx", "\x01"} {
		_, err := ParseKey(raw)
		assert.Error(t, err, "raw %q", raw)
	}
}

func TestKeyStringRoundTrip(t *testing.T) {
	keys := []Key{Null, Backspace, Enter, Left, Right, Up, Down, Home, End, PageUp, PageDown, Tab, BackTab, Delete, Insert, Esc, F(7), Char('q'), Char('Z'), Char(' ')}
	for _, k := range keys {
		parsed, err := ParseKey(k.String())
		require.NoError(t, err, "key %q", k.String())
		assert.Equal(t, k, parsed)
	}
}

func TestIsPrintable(t *testing.T) {
	assert.True(t, Char('a').IsPrintable())
	assert.True(t, Char(' ').IsPrintable())
	assert.False(t, Char('\t').IsPrintable())
	assert.False(t, Enter.IsPrintable())
	assert.False(t, F(1).IsPrintable())
}

func TestDefaultBindings(t *testing.T) {
	b := Default()
	assert.Equal(t, Esc, b.ExitApp)
	assert.Equal(t, Char('n'), b.NewTask)
	assert.Equal(t, Enter, b.ToggleTask)
	assert.Equal(t, Up, b.ListUp)
	assert.Equal(t, Down, b.ListDown)
	assert.Equal(t, Delete, b.DeleteTask)
	assert.Equal(t, Esc, b.ExitAdding)
	assert.Equal(t, Enter, b.SaveTask)
}

func TestFromStringsOverridesAndKeepsDefaults(t *testing.T) {
	b, err := FromStrings(map[Action]string{
		ActionNewTask:    "a",
		ActionListUp:     "k",
		ActionDeleteTask: "",
	})
	require.NoError(t, err)
	assert.Equal(t, Char('a'), b.NewTask)
	assert.Equal(t, Char('k'), b.ListUp)
	assert.Equal(t, Delete, b.DeleteTask)
	assert.Equal(t, Esc, b.ExitApp)
}

func TestFromStringsRejectsInvalid(t *testing.T) {
	_, err := FromStrings(map[Action]string{ActionSaveTask: "hyper+s"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keys.save_task")
}

func TestResolveHonorsCandidateOrder(t *testing.T) {
	b := Default()

	action, ok := b.Resolve(Esc, ActionNewTask, ActionExitApp)
	require.True(t, ok)
	assert.Equal(t, ActionExitApp, action)

	action, ok = b.Resolve(Esc, ActionSaveTask, ActionExitAdding)
	require.True(t, ok)
	assert.Equal(t, ActionExitAdding, action)

	action, ok = b.Resolve(Enter, ActionConfirmExit, ActionDeclineExit)
	require.True(t, ok)
	assert.Equal(t, ActionConfirmExit, action)

	_, ok = b.Resolve(Char('x'), ActionNewTask, ActionExitApp)
	assert.False(t, ok)

	_, ok = b.Resolve(Char('n'))
	assert.False(t, ok)
}

func TestKeyForFixedActions(t *testing.T) {
	b := Default()
	k, ok := b.KeyFor(ActionDeclineExit)
	require.True(t, ok)
	assert.Equal(t, Char('n'), k)

	_, ok = b.KeyFor(Action("nope"))
	assert.False(t, ok)
	assert.Equal(t, "Null", b.Label(Action("nope")))
	assert.Equal(t, "Enter", b.Label(ActionConfirmExit))
}

func TestStringsRoundTrip(t *testing.T) {
	b := Default()
	b.ListDown = Char('j')
	b.SaveTask = F(2)
	raw := b.Strings()
	assert.Len(t, raw, len(ConfigurableActions))
	assert.Equal(t, "j", raw[ActionListDown])

	parsed, err := FromStrings(raw)
	require.NoError(t, err)
	assert.Equal(t, b, parsed)
}
