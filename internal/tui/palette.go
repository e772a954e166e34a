package tui

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// swatchWidth is the cell width of one rendered color sample.
const swatchWidth = 10

// RenderPalette previews the theme slots followed by the ANSI 256 grid that index-valued
// colors select from.
func RenderPalette(c Colors) string {
	var sb strings.Builder
	sb.WriteString(themeTable(c))
	sb.WriteString("\n\nANSI 256 colors:\n")
	sb.WriteString(ansiBlock(0, 15, 8))
	for row := range 6 {
		start := 16 + row*36
		sb.WriteString(ansiBlock(start, start+35, 12))
	}
	sb.WriteString(ansiBlock(232, 255, 12))
	return strings.TrimRight(sb.String(), "\n")
}

// themeTable lists every config slot with its raw value and a sample.
func themeTable(c Colors) string {
	header := lipgloss.NewStyle().Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Foreground))).
		Headers("Slot", "Value", "Sample").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, slot := range []struct{ name, value string }{
		{"foreground", c.Foreground},
		{"background", c.Background},
		{"selection_fg", c.SelectionFG},
		{"selection_bg", c.SelectionBG},
		{"check_sign", c.CheckSign},
		{"welcome_message", c.WelcomeMessage},
	} {
		t.Row(slot.name, slot.value, swatch(slot.value))
	}
	return t.Render()
}

// ansiBlock renders indexes start..end, perRow per line.
func ansiBlock(start, end, perRow int) string {
	var sb strings.Builder
	for i := start; i <= end; i++ {
		value := strconv.Itoa(i)
		sb.WriteString(lipgloss.NewStyle().
			Background(lipgloss.Color(value)).
			Foreground(contrastColor(value)).
			Width(5).
			Align(lipgloss.Center).
			Render(fmt.Sprintf("%3d", i)))
		if (i-start+1)%perRow == 0 || i == end {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func swatch(value string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(value)).
		Foreground(contrastColor(value)).
		Width(swatchWidth).
		Align(lipgloss.Center).
		Render(value)
}

// contrastColor picks white or black text for a background given as hex or ANSI index.
func contrastColor(value string) color.Color {
	white, black := lipgloss.Color("15"), lipgloss.Color("0")
	if idx, err := strconv.Atoi(value); err == nil {
		switch {
		case idx < 16:
			if idx == 0 || idx == 1 || idx == 4 || idx == 5 || idx == 8 {
				return white
			}
			return black
		case idx >= 232:
			if idx < 244 {
				return white
			}
			return black
		default:
			return white
		}
	}
	c, err := colorful.Hex(value)
	if err != nil {
		return white
	}
	if l, _, _ := c.Lab(); l < 0.5 {
		return white
	}
	return black
}
