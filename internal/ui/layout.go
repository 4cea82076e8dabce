package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/portfolio/internal/theme"
)

// Layout holds the terminal dimensions and the fixed-height chrome
// around the content area.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	ToastHeight     int
	StatusBarHeight int
}

// NewLayout creates a Layout for the given terminal size. The header,
// the toast line and the status bar each take one row.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		ToastHeight:     1,
		StatusBarHeight: 1,
	}
}

// ContentHeight returns the rows left for the active view.
func (l Layout) ContentHeight() int {
	h := l.Height - l.HeaderHeight - l.ToastHeight - l.StatusBarHeight
	if h < 0 {
		return 0
	}
	return h
}

// RenderHeader renders the title on the left and status on the right.
func (l Layout) RenderHeader(title, status string) string {
	left := theme.HeaderStyle.Render(title)
	right := theme.HeaderStyle.Render(status)

	gap := max(l.Width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	filler := lipgloss.NewStyle().
		Width(gap).
		Background(theme.HeaderStyle.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, filler, right)
}

// RenderStatusBar renders the bottom bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	return theme.StatusBarStyle.
		Width(max(l.Width, 0)).
		MaxHeight(l.StatusBarHeight).
		Render(hints)
}

// RenderWithFrame stacks header, content, toast line and status bar.
// Content is padded to ContentHeight so the bottom rows stay put.
func (l Layout) RenderWithFrame(header, content, toast, statusBar string) string {
	body := lipgloss.NewStyle().
		Height(l.ContentHeight()).
		MaxHeight(l.ContentHeight()).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		body,
		lipgloss.NewStyle().Height(l.ToastHeight).Render(toast),
		statusBar,
	)
}
