package detail

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/portfolio/internal/keys"
	"github.com/nhle/portfolio/internal/model"
	"github.com/nhle/portfolio/internal/querycache"
	"github.com/nhle/portfolio/internal/render"
	"github.com/nhle/portfolio/internal/store"
	"github.com/nhle/portfolio/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// EditMsg asks the parent to open the form on the shown project.
type EditMsg struct {
	Project model.Project
}

type projectLoadedMsg struct {
	id      string
	project *model.Project
	err     error
}

// Model shows one project, backed by its single-record cache entry.
type Model struct {
	project  *model.Project
	id       string
	viewport viewport.Model
	store    store.Store
	cache    *querycache.Cache
	keys     *keys.KeyMap
	width    int
	height   int
	loading  bool
	failed   bool
}

// New creates a new detail view model.
func New(s store.Store, c *querycache.Cache, k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, max(height-2, 0))
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		store:    s,
		cache:    c,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Open shows p. A fresh cache entry for p is used as is; otherwise p is
// shown while the record is fetched.
func (m *Model) Open(p model.Project) tea.Cmd {
	m.id = p.ID
	m.failed = false

	if cached, fresh, ok := querycache.Lookup[model.Project](m.cache, querycache.ProjectKey(p.ID)); ok {
		m.setProject(cached)
		if fresh {
			return nil
		}
	} else {
		m.setProject(p)
	}
	m.loading = true
	return m.fetch()
}

// ProjectID returns the id of the shown project.
func (m Model) ProjectID() string { return m.id }

// Project returns the shown project.
func (m Model) Project() (model.Project, bool) {
	if m.project == nil {
		return model.Project{}, false
	}
	return m.project.Clone(), true
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case querycache.InvalidatedMsg:
		if m.id != "" && msg.Key == querycache.ProjectKey(m.id) {
			m.loading = true
			return m, m.fetch()
		}
		return m, nil

	case projectLoadedMsg:
		if msg.id != m.id {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.failed = true
			m.viewport.SetContent(m.renderContent())
			return m, nil
		}
		m.failed = false
		m.setProject(*msg.project)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }

		case key.Matches(msg, m.keys.Edit):
			if p, ok := m.Project(); ok {
				return m, func() tea.Msg { return EditMsg{Project: p} }
			}
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.fetch()
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.project == nil {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No project selected")
	}

	status := ""
	switch {
	case m.loading:
		status = theme.HelpStyle.Render("Refreshing...")
	case m.failed:
		status = theme.ErrorStyle.Render("Failed to load project. Press r to retry.")
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), status)
}

func (m *Model) setProject(p model.Project) {
	m.project = &p
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

func (m Model) renderContent() string {
	if m.project == nil {
		return ""
	}
	return theme.DetailPanelStyle.
		Width(max(m.width-2, 20)).
		Render(render.Detail(*m.project, max(m.width-8, 20)))
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-2, 0)
	m.viewport.SetContent(m.renderContent())
}

func (m Model) fetch() tea.Cmd {
	id, s, c := m.id, m.store, m.cache
	return func() tea.Msg {
		p, err := s.GetProject(context.Background(), id)
		if err != nil {
			return projectLoadedMsg{id: id, err: err}
		}
		c.Set(querycache.ProjectKey(id), *p)
		return projectLoadedMsg{id: id, project: p}
	}
}
