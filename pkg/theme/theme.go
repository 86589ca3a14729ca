// Package theme holds the lipgloss styles shared by the CLI output and the TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Colors is the palette every style is built from.
type Colors struct {
	Green     lipgloss.AdaptiveColor
	Yellow    lipgloss.AdaptiveColor
	Orange    lipgloss.AdaptiveColor
	Red       lipgloss.AdaptiveColor
	Cyan      lipgloss.AdaptiveColor
	Violet    lipgloss.AdaptiveColor
	MutedText lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
}

// Theme groups the named styles.
type Theme struct {
	Colors    Colors
	Title     lipgloss.Style
	Header    lipgloss.Style
	Box       lipgloss.Style
	Bold      lipgloss.Style
	Info      lipgloss.Style
	Highlight lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Selected  lipgloss.Style
}

// Icons used by the tree page.
const (
	IconArrowRight = "▶"
	IconChecked    = "[x]"
	IconUnchecked  = "[ ]"
	IconFolderOpen = "▾"
	IconFolderShut = "▸"
	IconUnreadable = "·"
)

// New builds a theme from a palette.
func New(c Colors) *Theme {
	return &Theme{
		Colors:    c,
		Title:     lipgloss.NewStyle().Bold(true).Foreground(c.Violet),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(c.Cyan),
		Box:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(c.Border),
		Bold:      lipgloss.NewStyle().Bold(true),
		Info:      lipgloss.NewStyle().Foreground(c.Cyan),
		Highlight: lipgloss.NewStyle().Foreground(c.Yellow),
		Muted:     lipgloss.NewStyle().Foreground(c.MutedText),
		Success:   lipgloss.NewStyle().Foreground(c.Green),
		Warning:   lipgloss.NewStyle().Foreground(c.Orange),
		Error:     lipgloss.NewStyle().Foreground(c.Red),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(c.Green),
	}
}

// DefaultTheme is used everywhere unless a caller builds its own.
var DefaultTheme = New(Colors{
	Green:     lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#A6E3A1"},
	Yellow:    lipgloss.AdaptiveColor{Light: "#B58900", Dark: "#F9E2AF"},
	Orange:    lipgloss.AdaptiveColor{Light: "#CB4B16", Dark: "#FAB387"},
	Red:       lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#F38BA8"},
	Cyan:      lipgloss.AdaptiveColor{Light: "#00838F", Dark: "#89DCEB"},
	Violet:    lipgloss.AdaptiveColor{Light: "#6C71C4", Dark: "#CBA6F7"},
	MutedText: lipgloss.AdaptiveColor{Light: "#757575", Dark: "#6C7086"},
	Border:    lipgloss.AdaptiveColor{Light: "#BDBDBD", Dark: "#45475A"},
})
