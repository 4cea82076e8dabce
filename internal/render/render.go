// Package render turns projects into terminal text for the TUI and the
// non-interactive commands.
package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nhle/portfolio/internal/model"
	"github.com/nhle/portfolio/internal/theme"
)

// Glamour renderers are costly to build; keep one per wrap width.
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache.Store(width, r)
	return r, nil
}

// Description renders markdown wrapped at width. It falls back to the
// raw text if rendering fails.
func Description(desc string, width int) string {
	if strings.TrimSpace(desc) == "" {
		return theme.HelpStyle.Render("No description")
	}
	r, err := getRenderer(max(width, 20))
	if err != nil {
		return desc
	}
	out, err := r.Render(desc)
	if err != nil {
		return desc
	}
	return strings.TrimSpace(out)
}

// Chips renders technologies as inline labels.
func Chips(techs []string) string {
	chips := make([]string, 0, len(techs))
	for _, t := range techs {
		chips = append(chips, theme.ChipStyle.Render(t))
	}
	return strings.Join(chips, " ")
}

// LinkLines lists each present link as "label  url".
func LinkLines(p model.Project) []string {
	type link struct {
		label string
		url   *string
	}
	var out []string
	for _, l := range []link{
		{"Code", p.GithubURL},
		{"Live Demo", p.LiveURL},
		{"Download", p.DownloadURL},
	} {
		if u := model.Deref(l.url); u != "" {
			out = append(out, fmt.Sprintf("%-10s %s", theme.LinkStyle.Render(l.label), u))
		}
	}
	return out
}

// Detail renders a full project: header, metadata, links and the
// markdown description.
func Detail(p model.Project, width int) string {
	label := lipgloss.NewStyle().Foreground(theme.ColorGray)

	sections := []string{theme.TitleStyle.Render(p.Title)}
	meta := label.Render("ID:") + " " + p.ID
	if p.CreatedAt != nil {
		meta += "   " + label.Render("Created:") + " " + p.CreatedAt.Local().Format("2006-01-02 15:04")
	}
	sections = append(sections, meta)

	if len(p.Technologies) > 0 {
		sections = append(sections, "", lipgloss.NewStyle().Width(max(width, 20)).Render(Chips(p.Technologies)))
	}
	if links := LinkLines(p); len(links) > 0 {
		sections = append(sections, "")
		sections = append(sections, links...)
	}

	sep := lipgloss.NewStyle().Foreground(theme.ColorSubtle).Render(strings.Repeat("─", min(max(width, 1), 80)))
	sections = append(sections, "", sep, "", Description(p.Description, width))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

var headerRowStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue)

// ProjectTable renders projects in server order.
func ProjectTable(projects []model.Project) string {
	if len(projects) == 0 {
		return "No projects yet."
	}
	rows := make([][]string, len(projects))
	for i, p := range projects {
		created := ""
		if p.CreatedAt != nil {
			created = p.CreatedAt.Local().Format("2006-01-02")
		}
		rows[i] = []string{p.ID, p.Title, strings.Join(p.Technologies, ", "), strings.Join(p.Links(), ", "), created}
	}

	t := table.New().
		Headers("ID", "Title", "Technologies", "Links", "Created").
		Rows(rows...).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.ColorSubtle)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerRowStyle
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}
