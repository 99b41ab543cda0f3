package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Brand palette
var (
	LightForeground = lipgloss.Color("#1F2A24")
	LightPrimary    = lipgloss.Color("#2F5D50") // Evergreen
	LightAccent     = lipgloss.Color("#C8963E") // Brass
	LightMuted      = lipgloss.Color("#8A948F")
	LightBorder     = lipgloss.Color("#D5DAD7")

	DarkForeground = lipgloss.Color("#EEF1EF")
	DarkPrimary    = lipgloss.Color("#7FB7A4")
	DarkAccent     = lipgloss.Color("#E0B35C")
	DarkMuted      = lipgloss.Color("#6E7A74")
	DarkBorder     = lipgloss.Color("#3A4641")

	Destructive = lipgloss.Color("#D9534F")
	Success     = lipgloss.Color("#5CB85C")
)

// Theme holds the current color scheme
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// DetectTheme picks dark mode from COLORFGBG or STANDARDS_DARK_MODE=1.
func DetectTheme() Theme {
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bg, err := strconv.Atoi(parts[1]); err == nil && ((bg >= 0 && bg <= 6) || bg == 8) {
			return DarkTheme()
		}
	}
	if os.Getenv("STANDARDS_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	Header    lipgloss.Style
	Footer    lipgloss.Style
	TabActive lipgloss.Style
	Tab       lipgloss.Style
	Chip      lipgloss.Style
	ChipOn    lipgloss.Style

	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardTitle    lipgloss.Style
	Badge        lipgloss.Style
	Price        lipgloss.Style
	Muted        lipgloss.Style
	Link         lipgloss.Style
	Related      lipgloss.Style
	RelatedOpen  lipgloss.Style

	Welcome lipgloss.Style
	Form    lipgloss.Style
	Label   lipgloss.Style
	Alert   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),
		TabActive: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Underline(true).
			Padding(0, 1),
		Tab: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),
		Chip: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),
		ChipOn: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Padding(0, 1),

		Card:         card,
		CardSelected: card.BorderForeground(theme.Primary),
		CardTitle:    lipgloss.NewStyle().Foreground(theme.Foreground).Bold(true),
		Badge: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Italic(true),
		Price:       lipgloss.NewStyle().Foreground(theme.Primary),
		Muted:       lipgloss.NewStyle().Foreground(theme.Muted),
		Link:        lipgloss.NewStyle().Foreground(theme.Primary).Underline(true),
		Related:     lipgloss.NewStyle().Foreground(theme.Foreground).PaddingLeft(2),
		RelatedOpen: lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).PaddingLeft(2),

		Welcome: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(theme.Accent).
			Padding(1, 2),
		Form: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(1, 2),
		Label: lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		Alert: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Destructive).
			Foreground(Destructive).
			Padding(1, 2),
		Success: lipgloss.NewStyle().Foreground(Success).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(Destructive),
	}
}

// DefaultStyles returns styles for the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}
