package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/versely/internal/ui/theme"
)

// ContentWidth returns the uniform inner width for centered cards.
func ContentWidth(frameWidth int) int {
	// Leave room for the card border (2) and padding (4).
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Center places content in the middle of a width x height area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Card wraps content in a rounded-border card of content width cw.
func Card(content string, cw int) string {
	return theme.Card.
		Width(cw).
		Render(content)
}
