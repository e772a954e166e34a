package tui

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// Colors holds the six theme slots as hex (#rrggbb) or ANSI index strings.
type Colors struct {
	Foreground     string
	Background     string
	SelectionFG    string
	SelectionBG    string
	CheckSign      string
	WelcomeMessage string
}

type Option func(*Model)

func DefaultColors() Colors {
	return Colors{
		Foreground:     "#F23C93",
		Background:     "#000000",
		SelectionFG:    "#FFFFFF",
		SelectionBG:    "#008080",
		CheckSign:      "#D9C819",
		WelcomeMessage: "#F23C93",
	}
}

// defaultWelcome is shown in place of the list while no tasks exist.
const defaultWelcome = "Nothing to do yet.\nPress %s to add your first task."

func WithColors(c Colors) Option {
	return func(m *Model) {
		m.styles = newStyles(c)
	}
}

// WithWelcomeMessage replaces the empty-list message. A %s verb receives the new-task key label.
func WithWelcomeMessage(msg string) Option {
	return func(m *Model) {
		if strings.TrimSpace(msg) != "" {
			m.welcome = msg
		}
	}
}

// styles holds the lipgloss styles derived from one color set.
type styles struct {
	base        lipgloss.Style
	selected    lipgloss.Style
	welcome     lipgloss.Style
	box         lipgloss.Style
	boxTitle    lipgloss.Style
	accent      color.Color
	check       color.Color
	foreground  color.Color
	background  color.Color
	helpKey     lipgloss.Style
	helpDesc    lipgloss.Style
	helpDivider lipgloss.Style
}

func newStyles(c Colors) styles {
	fg := lipgloss.Color(c.Foreground)
	bg := lipgloss.Color(c.Background)
	selFG := lipgloss.Color(c.SelectionFG)
	selBG := lipgloss.Color(c.SelectionBG)

	base := lipgloss.NewStyle().Foreground(fg).Background(bg)
	return styles{
		base:        base,
		selected:    lipgloss.NewStyle().Foreground(selFG).Background(selBG).Bold(true),
		welcome:     lipgloss.NewStyle().Foreground(lipgloss.Color(c.WelcomeMessage)).Italic(true),
		box:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(fg).Padding(0, 1),
		boxTitle:    lipgloss.NewStyle().Bold(true).Foreground(fg),
		accent:      selBG,
		check:       lipgloss.Color(c.CheckSign),
		foreground:  fg,
		background:  bg,
		helpKey:     lipgloss.NewStyle().Bold(true).Foreground(fg),
		helpDesc:    lipgloss.NewStyle().Foreground(fg),
		helpDivider: lipgloss.NewStyle().Foreground(fg).Faint(true),
	}
}
