package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme selects the color palette.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ThemeKey is the storage key of the saved theme.
const ThemeKey = "theme"

// ParseTheme maps a saved value to a Theme.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeDark, ThemeLight:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// palette is the handful of colors a theme defines.
type palette struct {
	primary  lipgloss.Color // main text
	subtle   lipgloss.Color // secondary text
	accent   lipgloss.Color // headers, selection
	viewed   lipgloss.Color // visited links
	selected lipgloss.Color // text on the selection bar
	errorFg  lipgloss.Color
	success  lipgloss.Color
}

func paletteFor(t Theme) palette {
	if t == ThemeLight {
		return palette{
			primary:  lipgloss.Color("#303030"),
			subtle:   lipgloss.Color("#888888"),
			accent:   lipgloss.Color("#4A7070"),
			viewed:   lipgloss.Color("#7A5C99"),
			selected: lipgloss.Color("#FFFFFF"),
			errorFg:  lipgloss.Color("#CC3333"),
			success:  lipgloss.Color("#338833"),
		}
	}
	return palette{
		primary:  lipgloss.Color("#A0A0A0"),
		subtle:   lipgloss.Color("#606060"),
		accent:   lipgloss.Color("#5F8787"),
		viewed:   lipgloss.Color("#8C7AA9"),
		selected: lipgloss.Color("#1A1A1A"),
		errorFg:  lipgloss.Color("#FF6666"),
		success:  lipgloss.Color("#66CC66"),
	}
}

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Title        lipgloss.Style
	ColumnHeader lipgloss.Style
	Category     lipgloss.Style // category header rows
	Item         lipgloss.Style
	Viewed       lipgloss.Style // entries whose link was opened before
	Selected     lipgloss.Style
	Date         lipgloss.Style
	Search       lipgloss.Style
	Empty        lipgloss.Style
	Error        lipgloss.Style
	Success      lipgloss.Style
	HintKey      lipgloss.Style // Key portion of hints (e.g., "Enter", "j/k")
	HintDesc     lipgloss.Style // Description portion of hints (e.g., "toggle", "move")
}

// DefaultStyles returns the style configuration for theme.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles(theme Theme) Styles {
	p := paletteFor(theme)

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent),

		ColumnHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.subtle),

		Category: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent),

		Item: lipgloss.NewStyle().
			Foreground(p.primary),

		Viewed: lipgloss.NewStyle().
			Foreground(p.viewed).
			Italic(true),

		Selected: lipgloss.NewStyle().
			Background(p.accent).
			Foreground(p.selected),

		Date: lipgloss.NewStyle().
			Foreground(p.subtle),

		Search: lipgloss.NewStyle().
			Foreground(p.accent),

		Empty: lipgloss.NewStyle().
			Foreground(p.subtle),

		Error: lipgloss.NewStyle().
			Foreground(p.errorFg).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true),

		HintKey: lipgloss.NewStyle().
			Foreground(p.accent),

		HintDesc: lipgloss.NewStyle().
			Foreground(p.subtle),
	}
}
