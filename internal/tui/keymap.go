package tui

import (
	"unicode"
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/hylla/tickit/internal/app"
	"github.com/hylla/tickit/internal/keymap"
)

// keyFromPress converts a terminal key event into the closed key set. Printable text
// becomes a character key; everything else is matched by name. Chords with ctrl or alt
// and keys outside the set report false.
func keyFromPress(msg tea.KeyPressMsg) (keymap.Key, bool) {
	if msg.Mod.Contains(tea.ModCtrl) || msg.Mod.Contains(tea.ModAlt) {
		return keymap.Key{}, false
	}
	if utf8.RuneCountInString(msg.Text) == 1 {
		r, _ := utf8.DecodeRuneInString(msg.Text)
		if unicode.IsPrint(r) {
			return keymap.Char(r), true
		}
	}
	k, err := keymap.ParseKey(msg.String())
	if err != nil {
		return keymap.Key{}, false
	}
	return k, true
}

// helpKeyMap adapts projected help entries to the bubbles help component.
type helpKeyMap struct {
	bindings []key.Binding
}

// newHelpKeyMap constructs the help bindings for one projection.
func newHelpKeyMap(entries []app.HelpEntry) helpKeyMap {
	bindings := make([]key.Binding, 0, len(entries))
	for _, entry := range entries {
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(entry.Key),
			key.WithHelp(entry.Key, entry.Desc),
		))
	}
	return helpKeyMap{bindings: bindings}
}

// ShortHelp handles short help.
func (k helpKeyMap) ShortHelp() []key.Binding {
	return k.bindings
}

// FullHelp handles full help.
func (k helpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.bindings}
}
