package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/portfolio/internal/keys"
	"github.com/nhle/portfolio/internal/querycache"
	"github.com/nhle/portfolio/internal/store"
	"github.com/nhle/portfolio/internal/ui"
	"github.com/nhle/portfolio/internal/ui/command"
	"github.com/nhle/portfolio/internal/ui/detail"
	helpview "github.com/nhle/portfolio/internal/ui/help"
	"github.com/nhle/portfolio/internal/ui/projectform"
	"github.com/nhle/portfolio/internal/ui/projectlist"
	"github.com/nhle/portfolio/internal/ui/toast"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewForm
	ViewHelp
	ViewCommand
)

// Options configures the root model.
type Options struct {
	Store store.Store
	Cache *querycache.Cache

	// Server is shown in the header.
	Server string

	// ToastDuration is how long notifications stay visible.
	ToastDuration time.Duration
}

// Model is the root Bubble Tea model that manages view routing, layout
// and the shared cache subscription.
type Model struct {
	currentView  ViewState
	previousView ViewState
	formReturn   ViewState
	layout       ui.Layout
	store        store.Store
	cache        *querycache.Cache
	keys         *keys.KeyMap
	server       string
	projectList  projectlist.Model
	detail       detail.Model
	detailOpen   bool
	form         projectform.Model
	formOpen     bool
	helpView     helpview.Model
	commandView  command.Model
	toast        toast.Model
	ready        bool
}

// New creates the root model.
func New(opts Options) Model {
	k := keys.DefaultKeyMap()
	ttl := opts.ToastDuration
	if ttl <= 0 {
		ttl = 3 * time.Second
	}

	return Model{
		currentView: ViewList,
		store:       opts.Store,
		cache:       opts.Cache,
		keys:        k,
		server:      opts.Server,
		projectList: projectlist.New(opts.Store, opts.Cache, k, 80, 24),
		detail:      detail.New(opts.Store, opts.Cache, k, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
		toast:       toast.New(ttl),
	}
}

// Init loads the project list and subscribes to cache invalidations.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.projectList.Init(),
		m.cache.WaitForInvalidation(),
	)
}

// CurrentView returns the active view.
func (m Model) CurrentView() ViewState { return m.currentView }

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.Width, m.layout.ContentHeight()
		m.projectList.SetSize(w, h)
		m.detail.SetSize(w, h)
		if m.formOpen {
			m.form.SetSize(w, h)
		}
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		// Forward to the list so an open huh confirm can lay itself out.
		var cmd tea.Cmd
		m.projectList, cmd = m.projectList.Update(msg)
		return m, cmd

	case querycache.InvalidatedMsg:
		var listCmd, detailCmd tea.Cmd
		m.projectList, listCmd = m.projectList.Update(msg)
		if m.detailOpen {
			m.detail, detailCmd = m.detail.Update(msg)
		}
		return m, tea.Batch(listCmd, detailCmd, m.cache.WaitForInvalidation())

	case projectlist.BeginCreateMsg:
		return m.openForm(projectform.NewCreate(m.store, m.cache, m.layout.Width, m.layout.ContentHeight()))

	case projectlist.BeginEditMsg:
		return m.openForm(projectform.NewEdit(msg.Project, m.store, m.cache, m.layout.Width, m.layout.ContentHeight()))

	case detail.EditMsg:
		return m.openForm(projectform.NewEdit(msg.Project, m.store, m.cache, m.layout.Width, m.layout.ContentHeight()))

	case projectlist.OpenDetailMsg:
		m.currentView = ViewDetail
		m.detailOpen = true
		return m, m.detail.Open(msg.Project)

	case detail.BackMsg:
		m.currentView = ViewList
		m.detailOpen = false
		return m, nil

	case projectform.FormCancelMsg, projectform.ProjectSavedMsg:
		m.formOpen = false
		m.currentView = m.formReturn
		return m, nil

	case projectform.SubmitResultMsg:
		if m.formOpen && msg.FormID == m.form.ID() {
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			return m, cmd
		}
		// The form was closed while its request was in flight.
		return m, toast.Show(msg.Notification)

	case command.CommandMsg:
		m.currentView = m.previousView
		return m.executeCommand(string(msg))

	case command.CloseMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.broadcast(msg)
}

// broadcast delivers a non-key message to every live component. Results
// of background requests must reach their view even when it is not the
// one on screen.
func (m Model) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.toast, cmd = m.toast.Update(msg)
	cmds = append(cmds, cmd)

	m.projectList, cmd = m.projectList.Update(msg)
	cmds = append(cmds, cmd)

	if m.detailOpen {
		m.detail, cmd = m.detail.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.formOpen {
		m.form, cmd = m.form.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.currentView == ViewCommand {
		m.commandView, cmd = m.commandView.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.currentView {
	case ViewForm, ViewCommand:
		// Text entry owns every key.
		return m.updateActiveView(msg)

	case ViewHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Back, m.keys.Quit) {
			m.currentView = m.previousView
		}
		return m, nil

	case ViewList:
		if m.projectList.Confirming() {
			return m.updateActiveView(msg)
		}
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m, m.commandView.Focus()
	}

	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.projectList, cmd = m.projectList.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewForm:
		m.form, cmd = m.form.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

func (m Model) openForm(f projectform.Model) (tea.Model, tea.Cmd) {
	m.formReturn = m.currentView
	if m.formReturn == ViewForm || m.formReturn == ViewHelp || m.formReturn == ViewCommand {
		m.formReturn = ViewList
	}
	m.form = f
	m.formOpen = true
	m.currentView = ViewForm
	return m, m.form.Init()
}

// executeCommand handles a command string from the command palette.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	switch cmd {
	case command.CmdNew:
		return m, func() tea.Msg { return projectlist.BeginCreateMsg{} }
	case command.CmdReload:
		var c tea.Cmd
		m.projectList, c = m.projectList.Reload()
		return m, c
	case command.CmdHelp:
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil
	case command.CmdQuit:
		return m, tea.Quit
	default:
		return m, nil
	}
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Portfolio Projects", m.headerStatus())
	statusBar := m.layout.RenderStatusBar(m.keyHints())
	return m.layout.RenderWithFrame(header, m.renderContent(), m.toast.View(), statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.projectList.View()
	case ViewDetail:
		return m.detail.View()
	case ViewForm:
		return m.form.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

func (m Model) headerStatus() string {
	switch {
	case m.projectList.IsLoading():
		return "loading · " + m.server
	case m.projectList.LoadFailed():
		return "offline · " + m.server
	default:
		return fmt.Sprintf("%d projects · %s", len(m.projectList.Projects()), m.server)
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc close"
	case ViewDetail:
		return "esc back | e edit | r reload | j/k scroll"
	case ViewForm:
		return "ctrl+s save | tab next field | enter add technology | esc cancel"
	default:
		if m.projectList.Confirming() {
			return "←/→ choose | enter confirm | esc cancel"
		}
		return "q quit | ? help | n new | e edit | d delete | r reload | : command"
	}
}
