// Package tui es la consola de terminal del sistema hospitalario (bubbletea).
package tui

import "github.com/charmbracelet/lipgloss"

// Paleta.
var (
	colorPrimary     = lipgloss.Color("#006978")
	colorAccent      = lipgloss.Color("#4DB6AC")
	colorForeground  = lipgloss.Color("#F2F2F2")
	colorMuted       = lipgloss.Color("#7A8A99")
	colorBorder      = lipgloss.Color("#2A3850")
	colorDestructive = lipgloss.Color("#E53935")
	colorSuccess     = lipgloss.Color("#8BC34A")
	colorWarning     = lipgloss.Color("#FFC107")
)

// Styles estilos de los componentes de la consola.
type Styles struct {
	Header      lipgloss.Style
	Footer      lipgloss.Style
	Sidebar     lipgloss.Style
	MenuItem    lipgloss.Style
	MenuActive  lipgloss.Style
	Content     lipgloss.Style
	Title       lipgloss.Style
	Muted       lipgloss.Style
	Label       lipgloss.Style
	Card        lipgloss.Style
	CardValue   lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
	Warning     lipgloss.Style
	FormBox     lipgloss.Style
	FocusedItem lipgloss.Style
}

// DefaultStyles estilos por defecto.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(colorPrimary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),
		Footer: lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 2),
		Sidebar: lipgloss.NewStyle().
			Width(28).
			Padding(1, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(colorBorder),
		MenuItem: lipgloss.NewStyle().
			Foreground(colorForeground).
			PaddingLeft(1),
		MenuActive: lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			PaddingLeft(1),
		Content: lipgloss.NewStyle().
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			MarginBottom(1),
		Muted: lipgloss.NewStyle().
			Foreground(colorMuted),
		Label: lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(18),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Width(22),
		CardValue: lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(colorDestructive).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true),
		FormBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2),
		FocusedItem: lipgloss.NewStyle().
			Foreground(colorAccent),
	}
}
