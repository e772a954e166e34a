package tui

import (
	"image/color"
	"strings"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/hylla/tickit/internal/app"
	"github.com/hylla/tickit/internal/keymap"
)

// fallbackWidth is used before the first WindowSizeMsg arrives.
const fallbackWidth = 60

// minListHeight keeps one task row on screen in very short terminals.
const minListHeight = 4

// Model hosts the application state inside a bubbletea program.
type Model struct {
	state   *app.State
	styles  styles
	help    help.Model
	welcome string
	width   int
	height  int
}

// NewModel constructs a new value for this package.
func NewModel(state *app.State, opts ...Option) Model {
	if state == nil {
		state = app.NewState(nil, keymap.Default())
	}
	h := help.New()
	h.ShowAll = false
	h.ShortSeparator = " | "
	m := Model{
		state:   state,
		styles:  newStyles(DefaultColors()),
		help:    h,
		welcome: defaultWelcome,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	m.help.Styles.ShortKey = m.styles.helpKey
	m.help.Styles.ShortDesc = m.styles.helpDesc
	m.help.Styles.ShortSeparator = m.styles.helpDivider
	m.help.Styles.Ellipsis = m.styles.helpDivider
	return m
}

// State returns the hosted application state.
func (m Model) State() *app.State {
	return m.state
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		k, ok := keyFromPress(msg)
		if !ok {
			return m, nil
		}
		m.state.Dispatch(k)
		if m.state.Done() {
			return m, tea.Quit
		}
		return m, nil

	default:
		return m, nil
	}
}

// View handles view.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.WindowTitle = "tickit"
	v.ForegroundColor = m.styles.foreground
	v.BackgroundColor = m.styles.background
	return v
}

// render draws the current projection as a string.
func (m Model) render() string {
	vm := m.state.Project()
	width := m.contentWidth()

	inputBorder := m.styles.foreground
	inputBody := vm.Input
	if vm.Mode == app.ModeComposing {
		inputBorder = m.styles.accent
		inputBody += "█"
	}
	input := m.box("New task", inputBody, inputBorder, width, 0)
	helpLine := m.renderHelp(vm, width)

	listHeight, maxRows := 0, 0
	if m.height > 0 {
		// The outer padding takes 2 lines. The list frame spends 2 on its border and 1 on its title.
		listHeight = max(minListHeight, m.height-lipgloss.Height(input)-lipgloss.Height(helpLine)-2)
		maxRows = listHeight - 3
	}
	list := m.box("Tasks", m.renderTasks(vm, maxRows), m.styles.foreground, width, listHeight)

	content := lipgloss.JoinVertical(lipgloss.Left, input, list, helpLine)
	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// renderTasks draws at most maxRows rows, scrolled to keep the selection visible. A
// non-positive maxRows draws every row.
func (m Model) renderTasks(vm app.ViewModel, maxRows int) string {
	if len(vm.Tasks) == 0 {
		label := m.state.Keys().Label(keymap.ActionNewTask)
		return m.styles.welcome.Render(strings.Replace(m.welcome, "%s", label, 1))
	}
	start, end := visibleRange(vm.Tasks, maxRows)
	lines := make([]string, 0, end-start)
	for _, row := range vm.Tasks[start:end] {
		rowStyle := m.styles.base
		if row.Selected {
			rowStyle = m.styles.selected
		}
		mark, markStyle, titleStyle := "   ", rowStyle, rowStyle
		if row.Completed {
			mark = "✔  "
			markStyle = rowStyle.Foreground(m.styles.check)
			titleStyle = rowStyle.Strikethrough(true)
		}
		lines = append(lines, markStyle.Render(mark)+titleStyle.Render(row.Title))
	}
	return strings.Join(lines, "\n")
}

// visibleRange returns the [start, end) window of rows that fits maxRows, centered on the
// selected row where possible.
func visibleRange(rows []app.TaskRow, maxRows int) (int, int) {
	total := len(rows)
	if maxRows <= 0 || total <= maxRows {
		return 0, total
	}
	selected := 0
	for i, row := range rows {
		if row.Selected {
			selected = i
			break
		}
	}
	start := min(max(selected-maxRows/2, 0), total-maxRows)
	return start, start + maxRows
}

func (m Model) renderHelp(vm app.ViewModel, width int) string {
	if vm.Mode == app.ModeConfirmingExit {
		return m.styles.helpKey.Render(vm.HelpText)
	}
	h := m.help
	h.SetWidth(width)
	return h.View(newHelpKeyMap(vm.Help))
}

// box draws a titled rounded frame. A positive height sets the minimum frame height, border included.
func (m Model) box(title, body string, border color.Color, width, height int) string {
	style := m.styles.box.BorderForeground(border).Width(width)
	if height > 0 {
		style = style.Height(height)
	}
	return style.Render(m.styles.boxTitle.Render(title) + "\n" + body)
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return fallbackWidth
	}
	return max(20, m.width-4)
}
