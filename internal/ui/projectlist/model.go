package projectlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/portfolio/internal/keys"
	"github.com/nhle/portfolio/internal/model"
	"github.com/nhle/portfolio/internal/querycache"
	"github.com/nhle/portfolio/internal/store"
	"github.com/nhle/portfolio/internal/theme"
	"github.com/nhle/portfolio/internal/ui/toast"
)

// SkeletonCount is the number of placeholder cards shown while the first
// load is pending, whatever the eventual result size.
const SkeletonCount = 2

// CreatedDateLayout formats a project's creation date on its card.
const CreatedDateLayout = "January 2, 2006"

// Messages shown by the list.
const (
	LoadFailedText  = "Failed to load projects. Please try again."
	EmptyTitle      = "No Projects Yet"
	MsgDeleted      = "Project deleted successfully!"
	MsgDeleteFailed = "Failed to delete project"
)

// BeginCreateMsg asks the parent to open the form with a blank draft.
type BeginCreateMsg struct{}

// BeginEditMsg asks the parent to open the form on a copy of Project.
type BeginEditMsg struct {
	Project model.Project
}

// OpenDetailMsg asks the parent to show Project.
type OpenDetailMsg struct {
	Project model.Project
}

type projectMode int

const (
	modeList projectMode = iota
	modeConfirmDelete
)

// formBindings holds the confirm value on the heap so that huh's Value()
// pointer stays valid across Bubble Tea model copies.
type formBindings struct {
	confirm bool
}

type projectsLoadedMsg struct {
	seq      int
	projects []model.Project
	err      error
}

type projectDeletedMsg struct {
	id  string
	err error
}

// Model is the Bubble Tea model for the project list.
type Model struct {
	mode        projectMode
	store       store.Store
	cache       *querycache.Cache
	keys        *keys.KeyMap
	projects    []model.Project
	hasData     bool
	loading     bool
	loadFailed  bool
	loadSeq     int
	selectedIdx int
	deleting    map[string]bool
	pending     *model.Project
	confirmForm *huh.Form
	fb          *formBindings
	spinner     spinner.Model
	width       int
	height      int
}

// New creates the list. A fresh cached collection is shown immediately;
// otherwise Init fetches it.
func New(s store.Store, c *querycache.Cache, k *keys.KeyMap, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)

	m := Model{
		mode:     modeList,
		store:    s,
		cache:    c,
		keys:     k,
		deleting: make(map[string]bool),
		fb:       &formBindings{},
		spinner:  sp,
		width:    width,
		height:   height,
	}

	if projects, fresh, ok := querycache.Lookup[[]model.Project](c, querycache.ProjectsKey); ok {
		m.projects = projects
		m.hasData = true
		m.loading = !fresh
	} else {
		m.loading = true
	}
	return m
}

// Init starts the spinner and the first load if one is needed.
func (m Model) Init() tea.Cmd {
	if !m.loading {
		return m.spinner.Tick
	}
	return tea.Batch(m.spinner.Tick, m.fetch(m.loadSeq))
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case querycache.InvalidatedMsg:
		if msg.Key == querycache.ProjectsKey {
			return m.Reload()
		}
		return m, nil

	case projectsLoadedMsg:
		if msg.seq != m.loadSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.loadFailed = true
			return m, nil
		}
		m.loadFailed = false
		m.hasData = true
		m.projects = msg.projects
		m.clampSelection()
		return m, nil

	case projectDeletedMsg:
		delete(m.deleting, msg.id)
		if msg.err != nil {
			return m, toast.Show(model.Failure(MsgDeleteFailed))
		}
		return m, toast.Show(model.Success(MsgDeleted))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.mode == modeConfirmDelete {
			return m.updateConfirm(msg)
		}
		return m.handleListKey(msg)
	}

	if m.mode == modeConfirmDelete {
		return m.updateConfirm(msg)
	}
	return m, nil
}

// Reload refetches the collection. Data already on screen stays visible
// until the new result arrives; a response to an older request is dropped.
func (m Model) Reload() (Model, tea.Cmd) {
	m.loadSeq++
	m.loading = true
	return m, m.fetch(m.loadSeq)
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if len(m.projects) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.projects)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(m.projects) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(m.projects) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		return m, m.beginCreate()

	case key.Matches(msg, m.keys.Refresh):
		return m.Reload()

	case key.Matches(msg, m.keys.Select):
		if m.IsEmpty() {
			return m, m.beginCreate()
		}
		if p, ok := m.Selected(); ok {
			return m, func() tea.Msg { return OpenDetailMsg{Project: p} }
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if p, ok := m.Selected(); ok {
			return m, func() tea.Msg { return BeginEditMsg{Project: p} }
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		return m.confirmDelete()
	}
	return m, nil
}

// beginCreate is shared by the "n" key and the empty-state call to action.
func (m Model) beginCreate() tea.Cmd {
	return func() tea.Msg { return BeginCreateMsg{} }
}

func (m Model) confirmDelete() (Model, tea.Cmd) {
	p, ok := m.Selected()
	if !ok || m.deleting[p.ID] {
		return m, nil
	}
	m.pending = &p
	m.fb.confirm = false
	m.confirmForm = m.buildConfirmForm(p)
	m.mode = modeConfirmDelete
	return m, m.confirmForm.Init()
}

func (m Model) buildConfirmForm(p model.Project) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", p.Title)).
				Description("This cannot be undone.").
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth()).WithShowHelp(false)
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm == nil {
		m.mode = modeList
		return m, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Back) {
		return m.resolveConfirm(false)
	}
	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}
	switch m.confirmForm.State {
	case huh.StateCompleted:
		return m.resolveConfirm(m.fb.confirm)
	case huh.StateAborted:
		return m.resolveConfirm(false)
	}
	return m, cmd
}

// resolveConfirm closes the confirmation and, if accepted, issues the
// delete request for the pending project.
func (m Model) resolveConfirm(confirmed bool) (Model, tea.Cmd) {
	p := m.pending
	m.pending = nil
	m.confirmForm = nil
	m.mode = modeList
	if !confirmed || p == nil || m.deleting[p.ID] {
		return m, nil
	}
	m.deleting[p.ID] = true
	return m, tea.Batch(m.spinner.Tick, m.deleteProject(p.ID))
}

// Selected returns the focused project.
func (m Model) Selected() (model.Project, bool) {
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.projects) {
		return model.Project{}, false
	}
	return m.projects[m.selectedIdx].Clone(), true
}

// Projects returns the projects currently shown.
func (m Model) Projects() []model.Project { return m.projects }

// IsEmpty reports a successful load that returned no projects.
func (m Model) IsEmpty() bool {
	return m.hasData && !m.loadFailed && len(m.projects) == 0
}

func (m Model) IsLoading() bool  { return m.loading }
func (m Model) LoadFailed() bool { return m.loadFailed }

// IsDeleting reports whether a delete request for id is outstanding.
func (m Model) IsDeleting(id string) bool { return m.deleting[id] }

// Confirming reports whether the delete confirmation is open.
func (m Model) Confirming() bool { return m.mode == modeConfirmDelete }

func (m *Model) clampSelection() {
	if m.selectedIdx >= len(m.projects) {
		m.selectedIdx = max(len(m.projects)-1, 0)
	}
}

// View renders the list.
func (m Model) View() string {
	if m.mode == modeConfirmDelete && m.confirmForm != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.confirmForm.View())
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	title := titleStyle.Render("Projects")
	if m.loading && m.hasData {
		title += "  " + m.spinner.View() + theme.HelpStyle.Render("Refreshing...")
	}
	b.WriteString(title)
	b.WriteString("\n\n")

	switch {
	case m.loadFailed:
		b.WriteString(theme.ErrorStyle.Render(LoadFailedText))
		b.WriteString("\n")
		b.WriteString(theme.HelpStyle.Render("Press r to retry."))

	case !m.hasData:
		for i := 0; i < SkeletonCount; i++ {
			b.WriteString(m.renderSkeleton())
			b.WriteString("\n")
		}

	case len(m.projects) == 0:
		b.WriteString(m.renderEmpty())

	default:
		b.WriteString(m.renderCards())
	}

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

func (m Model) renderSkeleton() string {
	w := m.cardWidth() - 4
	bar := func(n int) string { return theme.SkeletonStyle.Render(strings.Repeat("░", max(n, 1))) }
	return theme.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, bar(w/3), bar(w), bar(w*2/3)),
	)
}

func (m Model) renderEmpty() string {
	heading := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).Render(EmptyTitle)
	body := theme.HelpStyle.Render("Showcase your work by adding your first project.")
	cta := theme.ChipStyle.Render("+ Add Project (enter)")
	return lipgloss.NewStyle().
		Width(m.cardWidth()).
		Align(lipgloss.Center).
		Padding(1, 0).
		Render(lipgloss.JoinVertical(lipgloss.Center, heading, body, "", cta))
}

func (m Model) renderCards() string {
	cards := make([]string, 0, len(m.projects))
	for i, p := range m.projects {
		cards = append(cards, m.renderCard(p, i == m.selectedIdx))
	}

	// Keep the selection on screen: drop cards from the top until it fits.
	start := 0
	for start < m.selectedIdx && lipgloss.Height(strings.Join(cards[start:m.selectedIdx+1], "\n")) > m.height-4 {
		start++
	}
	return strings.Join(cards[start:], "\n")
}

func (m Model) renderCard(p model.Project, selected bool) string {
	style := theme.CardStyle
	if selected {
		style = theme.SelectedCardStyle
	}
	inner := m.cardWidth() - 4

	lines := []string{theme.TitleStyle.Render(p.Title)}
	if p.CreatedAt != nil {
		lines = append(lines, theme.HelpStyle.Render(p.CreatedAt.Local().Format(CreatedDateLayout)))
	}
	if desc := firstLine(p.Description); desc != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorGray).MaxWidth(inner).Render(desc))
	}
	if len(p.Technologies) > 0 {
		chips := make([]string, 0, len(p.Technologies))
		for _, t := range p.Technologies {
			chips = append(chips, theme.ChipStyle.Render(t))
		}
		lines = append(lines, lipgloss.NewStyle().Width(inner).Render(strings.Join(chips, " ")))
	}
	if links := p.Links(); len(links) > 0 {
		rendered := make([]string, 0, len(links))
		for _, l := range links {
			rendered = append(rendered, theme.LinkStyle.Render(l))
		}
		lines = append(lines, strings.Join(rendered, "  "))
	}
	if m.deleting[p.ID] {
		lines = append(lines, m.spinner.View()+theme.DeletingStyle.Render("Deleting..."))
	}

	return style.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) cardWidth() int {
	return min(max(m.width-6, 20), 100)
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}

// fetch loads the collection and, on success, refreshes the cache for the
// collection and for every project in it.
func (m Model) fetch(seq int) tea.Cmd {
	s, c := m.store, m.cache
	return func() tea.Msg {
		projects, err := s.ListProjects(context.Background())
		if err != nil {
			return projectsLoadedMsg{seq: seq, err: err}
		}
		c.Set(querycache.ProjectsKey, projects)
		for _, p := range projects {
			c.Set(querycache.ProjectKey(p.ID), p)
		}
		return projectsLoadedMsg{seq: seq, projects: projects}
	}
}

func (m Model) deleteProject(id string) tea.Cmd {
	s, c := m.store, m.cache
	return func() tea.Msg {
		err := s.DeleteProject(context.Background(), id)
		if err == nil {
			c.Invalidate(querycache.ProjectsKey, querycache.ProjectKey(id))
		}
		return projectDeletedMsg{id: id, err: err}
	}
}
