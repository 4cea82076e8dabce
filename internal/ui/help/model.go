package help

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/portfolio/internal/keys"
	"github.com/nhle/portfolio/internal/theme"
)

// section pairs a heading with the bindings listed under it.
type section struct {
	title string
	keys  help.KeyMap
}

// Model is the help overlay. It lists the list/detail bindings and the
// project form bindings as separate sections.
type Model struct {
	sections []section
	help     help.Model
	width    int
	height   int
}

// New creates a help view for km and the default form bindings.
func New(km *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.ShowAll = true
	m := Model{
		sections: []section{
			{title: "Projects", keys: km},
			{title: "Project Form", keys: keys.DefaultFormKeyMap()},
		},
		help: h,
	}
	m.SetSize(width, height)
	return m
}

// Update is a no-op; the app closes the overlay.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) View() string {
	heading := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	var blocks []string
	for i, s := range m.sections {
		if i > 0 {
			blocks = append(blocks, "")
		}
		blocks = append(blocks, heading.Render(s.title), m.help.View(s.keys))
	}
	blocks = append(blocks, "", theme.HelpStyle.Render("? or esc to close"))

	return theme.DetailPanelStyle.
		Width(max(m.width-4, 0)).
		Height(max(m.height-4, 0)).
		Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = max(width-4, 0)
}
