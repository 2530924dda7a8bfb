package components

import (
	"strings"

	"github.com/abhisek/versely/internal/ui/theme"
)

// Button is one navigation control. Hidden buttons take no space;
// disabled ones are drawn dimmed.
type Button struct {
	Label    string
	Hidden   bool
	Disabled bool
}

// View renders the button.
func (b Button) View() string {
	if b.Hidden {
		return ""
	}
	if b.Disabled {
		return theme.ButtonInactive.Render(b.Label)
	}
	return theme.ButtonActive.Render(b.Label)
}

// ButtonRow renders the visible buttons side by side.
func ButtonRow(buttons ...Button) string {
	parts := make([]string, 0, len(buttons))
	for _, b := range buttons {
		if v := b.View(); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "  ")
}
