// Package keymap defines the closed set of key identifiers tickit understands and the
// configurable table that maps logical actions onto them.
package keymap

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind enumerates every key identifier variant.
type Kind uint8

const (
	KindNull Kind = iota
	KindBackspace
	KindEnter
	KindLeft
	KindRight
	KindUp
	KindDown
	KindHome
	KindEnd
	KindPageUp
	KindPageDown
	KindTab
	KindBackTab
	KindDelete
	KindInsert
	KindEsc
	KindF
	KindChar

	kindCount
)

// Key identifies one key. The zero value is the Null key.
type Key struct {
	kind Kind
	r    rune
	n    uint8
}

// Named keys.
var (
	Null      = Key{kind: KindNull}
	Backspace = Key{kind: KindBackspace}
	Enter     = Key{kind: KindEnter}
	Left      = Key{kind: KindLeft}
	Right     = Key{kind: KindRight}
	Up        = Key{kind: KindUp}
	Down      = Key{kind: KindDown}
	Home      = Key{kind: KindHome}
	End       = Key{kind: KindEnd}
	PageUp    = Key{kind: KindPageUp}
	PageDown  = Key{kind: KindPageDown}
	Tab       = Key{kind: KindTab}
	BackTab   = Key{kind: KindBackTab}
	Delete    = Key{kind: KindDelete}
	Insert    = Key{kind: KindInsert}
	Esc       = Key{kind: KindEsc}
)

// Char returns the key for a single character.
func Char(r rune) Key {
	return Key{kind: KindChar, r: r}
}

// F returns the function key F<n>.
func F(n uint8) Key {
	return Key{kind: KindF, n: n}
}

// Kind reports the key variant.
func (k Key) Kind() Kind {
	return k.kind
}

// Rune returns the character of a Char key.
func (k Key) Rune() (rune, bool) {
	if k.kind != KindChar {
		return 0, false
	}
	return k.r, true
}

// IsPrintable reports whether the key is a character that can be typed into text input.
func (k Key) IsPrintable() bool {
	return k.kind == KindChar && unicode.IsPrint(k.r)
}

// displayNames holds the label for every fixed-name kind. F and Char are formatted from
// their payload and keep empty placeholders here.
var displayNames = [...]string{
	KindNull:      "Null",
	KindBackspace: "Backspace",
	KindEnter:     "Enter",
	KindLeft:      "←",
	KindRight:     "→",
	KindUp:        "↑",
	KindDown:      "↓",
	KindHome:      "Home",
	KindEnd:       "End",
	KindPageUp:    "Page Up",
	KindPageDown:  "Page Down",
	KindTab:       "Tab",
	KindBackTab:   "Back Tab",
	KindDelete:    "Delete",
	KindInsert:    "Insert",
	KindEsc:       "Esc",
	KindF:         "",
	KindChar:      "",
}

// configNames holds the identifier used in config files for every fixed-name kind.
var configNames = [...]string{
	KindNull:      "null",
	KindBackspace: "backspace",
	KindEnter:     "enter",
	KindLeft:      "left",
	KindRight:     "right",
	KindUp:        "up",
	KindDown:      "down",
	KindHome:      "home",
	KindEnd:       "end",
	KindPageUp:    "pgup",
	KindPageDown:  "pgdown",
	KindTab:       "tab",
	KindBackTab:   "shift+tab",
	KindDelete:    "delete",
	KindInsert:    "insert",
	KindEsc:       "esc",
	KindF:         "",
	KindChar:      "",
}

// Both tables must cover every kind; adding a kind without a name fails to compile.
var (
	_ [len(displayNames) - int(kindCount)]struct{}
	_ [int(kindCount) - len(displayNames)]struct{}
	_ [len(configNames) - int(kindCount)]struct{}
	_ [int(kindCount) - len(configNames)]struct{}
)

// DisplayName renders a human-readable, non-empty label for a key.
func DisplayName(k Key) string {
	switch k.kind {
	case KindF:
		return "F" + strconv.Itoa(int(k.n))
	case KindChar:
		return charDisplayName(k.r)
	}
	if int(k.kind) >= len(displayNames) {
		return displayNames[KindNull]
	}
	return displayNames[k.kind]
}

func charDisplayName(r rune) string {
	switch {
	case r == ' ':
		return "Space"
	case unicode.IsPrint(r):
		return string(r)
	default:
		return fmt.Sprintf("%U", r)
	}
}

// String returns the config identifier for the key, accepted back by ParseKey.
func (k Key) String() string {
	switch k.kind {
	case KindF:
		return "f" + strconv.Itoa(int(k.n))
	case KindChar:
		if k.r == ' ' {
			return "space"
		}
		return string(k.r)
	}
	if int(k.kind) >= len(configNames) {
		return configNames[KindNull]
	}
	return configNames[k.kind]
}

// keyAliases maps accepted config spellings onto named keys.
var keyAliases = map[string]Key{
	"null":      Null,
	"backspace": Backspace,
	"enter":     Enter,
	"return":    Enter,
	"left":      Left,
	"right":     Right,
	"up":        Up,
	"down":      Down,
	"home":      Home,
	"end":       End,
	"pgup":      PageUp,
	"pageup":    PageUp,
	"pgdown":    PageDown,
	"pagedown":  PageDown,
	"tab":       Tab,
	"shift+tab": BackTab,
	"backtab":   BackTab,
	"delete":    Delete,
	"del":       Delete,
	"insert":    Insert,
	"esc":       Esc,
	"escape":    Esc,
	"space":     Char(' '),
}

// maxFunctionKey bounds F<n> identifiers.
const maxFunctionKey = 63

// ParseKey parses a key identifier from config text. Single characters keep their case;
// named keys are matched case-insensitively.
func ParseKey(raw string) (Key, error) {
	if raw == " " {
		return Char(' '), nil
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return Key{}, fmt.Errorf("empty key identifier")
	}
	if utf8.RuneCountInString(value) == 1 {
		r, _ := utf8.DecodeRuneInString(value)
		if !unicode.IsPrint(r) {
			return Key{}, fmt.Errorf("unprintable key identifier %q", raw)
		}
		return Char(r), nil
	}
	lower := strings.ToLower(value)
	if k, ok := keyAliases[lower]; ok {
		return k, nil
	}
	if strings.HasPrefix(lower, "f") {
		n, err := strconv.Atoi(lower[1:])
		if err == nil && n >= 1 && n <= maxFunctionKey {
			return F(uint8(n)), nil
		}
	}
	return Key{}, fmt.Errorf("unknown key identifier %q", raw)
}
