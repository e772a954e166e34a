package tui

import (
	"testing"

	"github.com/hylla/tickit/internal/app"
)

// TestNewHelpKeyMap verifies projected help entries become enabled help bindings.
func TestNewHelpKeyMap(t *testing.T) {
	km := newHelpKeyMap([]app.HelpEntry{
		{Key: "Esc", Desc: "exit"},
		{Key: "↑/↓", Desc: "navigate list"},
	})

	short := km.ShortHelp()
	if len(short) != 2 {
		t.Fatalf("expected 2 short help bindings, got %d", len(short))
	}
	for i, want := range []struct{ key, desc string }{{"Esc", "exit"}, {"↑/↓", "navigate list"}} {
		if !short[i].Enabled() {
			t.Fatalf("expected binding %d to be enabled", i)
		}
		h := short[i].Help()
		if h.Key != want.key || h.Desc != want.desc {
			t.Fatalf("binding %d help = %q/%q, want %q/%q", i, h.Key, h.Desc, want.key, want.desc)
		}
	}

	full := km.FullHelp()
	if len(full) != 1 || len(full[0]) != 2 {
		t.Fatalf("expected one full help column of 2 bindings, got %#v", full)
	}
}

// TestNewHelpKeyMapEmpty verifies an empty projection yields no bindings.
func TestNewHelpKeyMapEmpty(t *testing.T) {
	if got := newHelpKeyMap(nil).ShortHelp(); len(got) != 0 {
		t.Fatalf("expected no bindings, got %d", len(got))
	}
}
