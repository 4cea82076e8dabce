package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// DetailPanelStyle wraps the detail view content area.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// CardStyle frames one project in the list.
var CardStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// SelectedCardStyle frames the focused project.
var SelectedCardStyle = CardStyle.
	BorderForeground(ColorBlue)

// SkeletonStyle renders loading placeholders.
var SkeletonStyle = lipgloss.NewStyle().
	Foreground(ColorSubtle)

// TitleStyle is used for project titles.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite)

// ChipStyle renders one technology label.
var ChipStyle = lipgloss.NewStyle().
	Foreground(ColorBlue).
	Background(lipgloss.AdaptiveColor{Dark: "#1F2A37", Light: "#EBF4FF"}).
	Padding(0, 1)

// SelectedChipStyle highlights the technology chosen for removal.
var SelectedChipStyle = ChipStyle.
	Foreground(ColorWhite).
	Background(ColorRed)

// LinkStyle labels the links present on a project.
var LinkStyle = lipgloss.NewStyle().
	Foreground(ColorMagenta).
	Underline(true)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// ErrorStyle is used for inline failures and field errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorRed)

// LabelStyle is used for form field labels.
var LabelStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorGray)

// FocusedLabelStyle marks the label of the focused field.
var FocusedLabelStyle = LabelStyle.
	Foreground(ColorBlue)

// BorderStyle provides a standard rounded border for panels.
var BorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ToastStyle returns the style for a notification of the given kind.
func ToastStyle(failure bool) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if failure {
		return base.Foreground(ColorWhite).Background(ColorRed)
	}
	return base.Foreground(ColorWhite).Background(ColorGreen)
}

// DeletingStyle dims a card whose delete request is outstanding.
var DeletingStyle = lipgloss.NewStyle().
	Foreground(ColorYellow).
	Italic(true)
