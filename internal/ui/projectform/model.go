package projectform

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/portfolio/internal/editor"
	"github.com/nhle/portfolio/internal/keys"
	"github.com/nhle/portfolio/internal/model"
	"github.com/nhle/portfolio/internal/querycache"
	"github.com/nhle/portfolio/internal/store"
	"github.com/nhle/portfolio/internal/theme"
	"github.com/nhle/portfolio/internal/ui/toast"
)

// ProjectSavedMsg is dispatched when a submission succeeds. The parent
// closes the form on receipt.
type ProjectSavedMsg struct {
	Project *model.Project
	Mode    editor.Mode
}

// FormCancelMsg is dispatched when the user dismisses the form.
type FormCancelMsg struct{}

// SubmitResultMsg carries a finished request back to the form that sent
// it. If that form has been closed in the meantime the parent shows
// Notification itself.
type SubmitResultMsg struct {
	FormID       int64
	Project      *model.Project
	Err          error
	Notification model.Notification
}

type field int

const (
	fieldTitle field = iota
	fieldDescription
	fieldTech
	fieldGithub
	fieldLive
	fieldDownload
	fieldCount
)

var formSeq atomic.Int64

// Model is the Bubble Tea model for the project create/edit form.
type Model struct {
	id          int64
	editor      *editor.Editor
	store       store.Store
	cache       *querycache.Cache
	keys        keys.FormKeyMap
	title       textinput.Model
	description textarea.Model
	tech        textinput.Model
	github      textinput.Model
	live        textinput.Model
	download    textinput.Model
	focus       field
	chip        int
	errs        editor.FieldErrors
	spinner     spinner.Model
	help        help.Model
	width       int
	height      int
}

// NewCreate returns a form with a blank draft.
func NewCreate(s store.Store, c *querycache.Cache, width, height int) Model {
	return newModel(editor.NewCreate(), s, c, width, height)
}

// NewEdit returns a form seeded from a copy of p.
func NewEdit(p model.Project, s store.Store, c *querycache.Cache, width, height int) Model {
	return newModel(editor.NewEdit(p), s, c, width, height)
}

func newModel(ed *editor.Editor, s store.Store, c *querycache.Cache, width, height int) Model {
	d := ed.Draft()

	input := func(placeholder, value string) textinput.Model {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholder
		ti.CharLimit = 500
		ti.SetValue(value)
		return ti
	}

	ta := textarea.New()
	ta.Placeholder = "What does it do? Markdown is supported."
	ta.ShowLineNumbers = false
	ta.CharLimit = 5000
	ta.SetHeight(4)
	ta.SetValue(d.Description)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		id:          formSeq.Add(1),
		editor:      ed,
		store:       s,
		cache:       c,
		keys:        keys.DefaultFormKeyMap(),
		title:       input("Project title", d.Title),
		description: ta,
		tech:        input("Add technology and press enter", ""),
		github:      input("https://github.com/...", d.GithubURL),
		live:        input("https://...", d.LiveURL),
		download:    input("https://...", d.DownloadURL),
		chip:        -1,
		spinner:     sp,
		help:        help.New(),
	}
	m.SetSize(width, height)
	m, _ = m.setFocus(fieldTitle)
	return m
}

// ID identifies this form instance in SubmitResultMsg.
func (m Model) ID() int64 { return m.id }

// State returns the submission state.
func (m Model) State() editor.State { return m.editor.State() }

// Mode tells whether the form creates or edits.
func (m Model) Mode() editor.Mode { return m.editor.Mode() }

// Technologies returns the current technology list.
func (m Model) Technologies() []string { return m.editor.Technologies() }

// Draft returns the values currently entered in the text fields.
func (m Model) Draft() model.Draft {
	return model.Draft{
		Title:       m.title.Value(),
		Description: m.description.Value(),
		GithubURL:   m.github.Value(),
		LiveURL:     m.live.Value(),
		DownloadURL: m.download.Value(),
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SubmitResultMsg:
		if msg.FormID != m.id {
			return m, nil
		}
		n := m.editor.Finish(msg.Err)
		if msg.Err != nil {
			return m, toast.Show(n)
		}
		saved := ProjectSavedMsg{Project: msg.Project, Mode: m.editor.Mode()}
		return m, tea.Batch(toast.Show(n), func() tea.Msg { return saved })

	case spinner.TickMsg:
		if m.editor.State() != editor.Submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Cancel) {
		return m, func() tea.Msg { return FormCancelMsg{} }
	}

	// Fields are read-only while a request is in flight.
	if m.editor.State() == editor.Submitting {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Next):
		return m.setFocus((m.focus + 1) % fieldCount)
	case key.Matches(msg, m.keys.Prev):
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	}

	if m.focus == fieldTech {
		return m.handleTechKey(msg)
	}

	// Enter in a single-line field submits; in the description it is a newline.
	if msg.Type == tea.KeyEnter && m.focus != fieldDescription {
		return m.submit()
	}
	return m.updateFocused(msg)
}

// handleTechKey edits the technology list. Enter adds the typed value and
// never submits the form. With the input empty, left/right select a chip
// and backspace removes the selected one (the first press selects the
// last chip).
func (m Model) handleTechKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	techs := m.editor.Technologies()
	empty := m.tech.Value() == ""

	switch {
	case key.Matches(msg, m.keys.AddTech):
		if m.editor.AddTechnology(m.tech.Value()) {
			m.tech.Reset()
		}
		m.chip = -1
		return m, nil

	case empty && key.Matches(msg, m.keys.ChipLeft):
		switch {
		case len(techs) == 0:
		case m.chip < 0:
			m.chip = len(techs) - 1
		case m.chip > 0:
			m.chip--
		}
		return m, nil

	case empty && key.Matches(msg, m.keys.ChipRight):
		if m.chip >= 0 {
			m.chip++
			if m.chip >= len(techs) {
				m.chip = -1
			}
		}
		return m, nil

	case empty && key.Matches(msg, m.keys.RemoveTech):
		if len(techs) == 0 {
			return m, nil
		}
		if m.chip < 0 {
			m.chip = len(techs) - 1
			return m, nil
		}
		m.editor.RemoveTechnology(techs[m.chip])
		m.chip = min(m.chip, len(techs)-2)
		return m, nil
	}

	m.chip = -1
	return m.updateFocused(msg)
}

func (m Model) submit() (Model, tea.Cmd) {
	m.editor.SetDraft(m.Draft())

	in, err := m.editor.Prepare()
	var fe editor.FieldErrors
	switch {
	case errors.As(err, &fe):
		m.errs = fe
		return m.setFocus(firstInvalid(fe))
	case err != nil:
		return m, nil
	}
	m.errs = nil

	id, ed, s, c := m.id, m.editor, m.store, m.cache
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		p, err := ed.Commit(context.Background(), s, c, in)
		return SubmitResultMsg{
			FormID:       id,
			Project:      p,
			Err:          err,
			Notification: editor.Outcome(ed.Mode(), err),
		}
	})
}

func firstInvalid(fe editor.FieldErrors) field {
	order := []struct {
		name string
		f    field
	}{
		{editor.FieldTitle, fieldTitle},
		{editor.FieldDescription, fieldDescription},
		{editor.FieldGithubURL, fieldGithub},
		{editor.FieldLiveURL, fieldLive},
		{editor.FieldDownloadURL, fieldDownload},
	}
	for _, o := range order {
		if _, ok := fe[o.name]; ok {
			return o.f
		}
	}
	return fieldTitle
}

func (m Model) setFocus(f field) (Model, tea.Cmd) {
	m.focus = f
	m.chip = -1

	m.title.Blur()
	m.description.Blur()
	m.tech.Blur()
	m.github.Blur()
	m.live.Blur()
	m.download.Blur()

	switch f {
	case fieldTitle:
		return m, m.title.Focus()
	case fieldDescription:
		return m, m.description.Focus()
	case fieldTech:
		return m, m.tech.Focus()
	case fieldGithub:
		return m, m.github.Focus()
	case fieldLive:
		return m, m.live.Focus()
	case fieldDownload:
		return m, m.download.Focus()
	}
	return m, nil
}

func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldDescription:
		m.description, cmd = m.description.Update(msg)
	case fieldTech:
		m.tech, cmd = m.tech.Update(msg)
	case fieldGithub:
		m.github, cmd = m.github.Update(msg)
	case fieldLive:
		m.live, cmd = m.live.Update(msg)
	case fieldDownload:
		m.download, cmd = m.download.Update(msg)
	}
	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	heading := "New Project"
	if m.editor.Mode() == editor.ModeEdit {
		heading = "Edit Project"
	}

	sections := []string{
		lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).MarginBottom(1).Render(heading),
		m.renderField(fieldTitle, "Title", m.title.View(), editor.FieldTitle),
		m.renderField(fieldDescription, "Description", m.description.View(), editor.FieldDescription),
		m.renderField(fieldTech, "Technologies", m.tech.View()+"\n"+m.renderChips(), ""),
		m.renderField(fieldGithub, "GitHub URL", m.github.View(), editor.FieldGithubURL),
		m.renderField(fieldLive, "Live Demo URL", m.live.View(), editor.FieldLiveURL),
		m.renderField(fieldDownload, "Download URL", m.download.View(), editor.FieldDownloadURL),
		m.renderButton(),
		m.help.View(m.keys),
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

func (m Model) renderField(f field, label, input, errKey string) string {
	labelStyle := theme.LabelStyle
	if m.focus == f {
		labelStyle = theme.FocusedLabelStyle
	}
	lines := []string{labelStyle.Render(label), input}
	if msg, ok := m.errs[errKey]; ok && errKey != "" {
		lines = append(lines, theme.ErrorStyle.Render(msg))
	}
	return lipgloss.NewStyle().MarginBottom(1).Render(strings.Join(lines, "\n"))
}

func (m Model) renderChips() string {
	techs := m.editor.Technologies()
	if len(techs) == 0 {
		return theme.HelpStyle.Render("No technologies added")
	}
	chips := make([]string, 0, len(techs))
	for i, t := range techs {
		style := theme.ChipStyle
		if i == m.chip {
			style = theme.SelectedChipStyle
		}
		chips = append(chips, style.Render(t+" ×"))
	}
	return lipgloss.NewStyle().Width(m.inputWidth()).Render(strings.Join(chips, " "))
}

func (m Model) renderButton() string {
	if m.editor.State() == editor.Submitting {
		return theme.HelpStyle.Render(m.spinner.View() + "Saving...")
	}
	label := "Create Project"
	if m.editor.Mode() == editor.ModeEdit {
		label = "Update Project"
	}
	return theme.ChipStyle.Render(label + " (ctrl+s)")
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	w := m.inputWidth()
	m.title.Width = w
	m.tech.Width = w
	m.github.Width = w
	m.live.Width = w
	m.download.Width = w
	m.description.SetWidth(w)
	m.help.Width = w
}

func (m Model) inputWidth() int {
	return min(max(m.width-8, 20), 96)
}
