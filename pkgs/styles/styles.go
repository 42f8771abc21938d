// Package styles contains the shared styles for terminal output.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

type RenderFunc func(string ...string) string

const (
	ColorError  = "#d75f6b"
	ColorSubtle = "#a3a3a3"
)

var (
	Bold   = lipgloss.NewStyle().Bold(true).Render
	Error  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render
	Subtle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSubtle)).Render
)

// ErrorBox creates a bordered error box with title and message
func ErrorBox(title, message string) string {
	redStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
	subtleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSubtle))

	lines := []string{
		redStyle.Render("╭ " + title),
		redStyle.Render("│") + " " + subtleStyle.Render(message),
		redStyle.Render("╵"),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
