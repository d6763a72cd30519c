// Package ui is the terminal surface: the employee table, toasts and prompts.
package ui

import (
	"empdir/internal/types"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Light Mode Colors (Default)
	LightForeground = lipgloss.Color("#101F38")
	LightPrimary    = lipgloss.Color("#1E3A8A")
	LightMuted      = lipgloss.Color("#6B7280")
	LightBorder     = lipgloss.Color("#D1D5DB")

	// Dark Mode Colors
	DarkForeground = lipgloss.Color("#F2F2F2")
	DarkPrimary    = lipgloss.Color("#93C5FD")
	DarkMuted      = lipgloss.Color("#9CA3AF")
	DarkBorder     = lipgloss.Color("#374151")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#E53935")
	Success     = lipgloss.Color("#43A047")
	Info        = lipgloss.Color("#2196F3")
)

type Theme struct {
	Name       string
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
}

func LightTheme() Theme {
	return Theme{
		Name:       types.ThemeLight,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Muted:      LightMuted,
		Border:     LightBorder,
	}
}

func DarkTheme() Theme {
	return Theme{
		Name:       types.ThemeDark,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
	}
}

// ThemeNamed returns the dark theme for "dark" and the light theme otherwise.
func ThemeNamed(name string) Theme {
	if name == types.ThemeDark {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds the styled components derived from a Theme.
type Styles struct {
	Theme Theme

	Header lipgloss.Style
	Cell   lipgloss.Style
	Border lipgloss.Style
	Stats  lipgloss.Style
	Empty  lipgloss.Style

	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	ToastInfo    lipgloss.Style
	ToastBody    lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Theme:  t,
		Header: lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Padding(0, 1),
		Cell:   lipgloss.NewStyle().Foreground(t.Foreground).Padding(0, 1),
		Border: lipgloss.NewStyle().Foreground(t.Border),
		Stats:  lipgloss.NewStyle().Foreground(t.Muted),
		Empty:  lipgloss.NewStyle().Italic(true).Foreground(t.Muted),

		ToastSuccess: lipgloss.NewStyle().Bold(true).Foreground(Success),
		ToastError:   lipgloss.NewStyle().Bold(true).Foreground(Destructive),
		ToastInfo:    lipgloss.NewStyle().Bold(true).Foreground(Info),
		ToastBody:    lipgloss.NewStyle().Foreground(t.Foreground),
	}
}
