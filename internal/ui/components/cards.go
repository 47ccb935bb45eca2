package components

import (
	"charm.land/lipgloss/v2"

	"github.com/vvai/classdesk/internal/ui/theme"
)

// Card wraps content in a rounded border at the given outer width.
// Active cards use the brand color.
func Card(content string, width int, active bool) string {
	style := theme.Card
	if active {
		style = theme.ActiveCard
	}
	return style.Width(width).Render(content)
}

// SectionTitle renders a bold heading with a dim caption.
func SectionTitle(title, caption string) string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(title)
	if caption != "" {
		s += "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(caption)
	}
	return s
}

// Toast renders a notification line centered in width.
func Toast(msg string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Toast.Render(msg))
}
