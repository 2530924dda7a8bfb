package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/versely/internal/store"
	"github.com/abhisek/versely/internal/ui/theme"
)

const titleFull = `╦  ╦╔═╗╦═╗╔═╗╔═╗╦ ╦ ╦
╚╗╔╝║╣ ╠╦╝╚═╗║╣ ║ ╚╦╝
 ╚╝ ╚═╝╩╚═╚═╝╚═╝╩═╝╩ `

const titleCompact = "V · E · R · S · E · L · Y"

const bookArt = `  ______ ______
 /      Y      \
|  ~~~~  |  ~~~~ |
|  ~~~~  |  ~~~~ |
|________|_______|`

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(art))
}

func renderBook(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render(bookArt)
}

// renderStats summarizes past quizzes in a bordered box.
func renderStats(sum *store.QuizSummary, cw int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	hi := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var stats string
	switch {
	case sum == nil:
		stats = dim.Render("Quiz history unavailable")
	case sum.Attempts == 0:
		stats = dim.Render("No quizzes taken yet")
	default:
		stats = fmt.Sprintf("%s  %s  %s",
			hi.Render(fmt.Sprintf("%d QUIZZES", sum.Attempts)),
			hi.Render(fmt.Sprintf("%d/%d CORRECT", sum.Correct, sum.Questions)),
			hi.Render(fmt.Sprintf("BEST %d%%", sum.BestPercentage)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw).
		Align(lipgloss.Center).
		Render(stats)
}
