package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/hylla/tickit/internal/app"
	"github.com/hylla/tickit/internal/keymap"
)

// minWrapWidth keeps narrow terminals from collapsing the binding table.
const minWrapWidth = 24

// RenderMarkdown converts markdown into ANSI-styled terminal text wrapped at width.
// Rendering failures fall back to the raw markdown.
func RenderMarkdown(markdown string, width int) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width, minWrapWidth)),
	)
	if err != nil {
		return markdown
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(rendered, "\n")
}

// BindingsMarkdown documents every mode's reachable actions and the keys bound to them.
func BindingsMarkdown(b keymap.Bindings) string {
	var sb strings.Builder
	sb.WriteString("# tickit key bindings\n\n")
	sb.WriteString("| Mode | Key | Config name | Action |\n")
	sb.WriteString("| --- | --- | --- | --- |\n")
	for _, mode := range []app.Mode{app.ModeBrowsing, app.ModeComposing, app.ModeConfirmingExit} {
		for _, action := range mode.Actions() {
			k, ok := b.KeyFor(action)
			if !ok {
				continue
			}
			fmt.Fprintf(&sb, "| %s | %s | `%s` | %s |\n", mode, escapeCell(keymap.DisplayName(k)), escapeCell(k.String()), action)
		}
	}
	sb.WriteString("\nIn composing mode any other printable key is typed into the new task title.\n")
	return sb.String()
}

// escapeCell keeps a literal pipe key from splitting the table row.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
