// Package toast shows one transient notification at a time.
package toast

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/portfolio/internal/model"
	"github.com/nhle/portfolio/internal/theme"
)

// ShowMsg asks the toast line to display a notification.
type ShowMsg struct {
	Notification model.Notification
}

type expireMsg struct{ seq int }

// Show returns a command emitting ShowMsg for n.
func Show(n model.Notification) tea.Cmd {
	return func() tea.Msg { return ShowMsg{Notification: n} }
}

// Model holds the visible notification. A newer notification replaces
// the current one and restarts the timer.
type Model struct {
	current *model.Notification
	seq     int
	ttl     time.Duration
}

// New creates a toast model that hides notifications after ttl.
func New(ttl time.Duration) Model {
	return Model{ttl: ttl}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ShowMsg:
		n := msg.Notification
		m.current = &n
		m.seq++
		seq := m.seq
		return m, tea.Tick(m.ttl, func(time.Time) tea.Msg { return expireMsg{seq: seq} })

	case expireMsg:
		if msg.seq == m.seq {
			m.current = nil
		}
	}
	return m, nil
}

// Current returns the visible notification, if any.
func (m Model) Current() (model.Notification, bool) {
	if m.current == nil {
		return model.Notification{}, false
	}
	return *m.current, true
}

func (m Model) View() string {
	if m.current == nil {
		return ""
	}
	return theme.ToastStyle(m.current.IsFailure()).Render(m.current.Title)
}
