package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/versely/internal/quiz"
	"github.com/abhisek/versely/internal/router"
	"github.com/abhisek/versely/internal/screen"
	"github.com/abhisek/versely/internal/store"
	"github.com/abhisek/versely/internal/ui/layout"
	"github.com/abhisek/versely/internal/ui/theme"
)

const historyLimit = 50

type historyLoadedMsg struct {
	Turns    []store.ChatTurnRecord
	Attempts []store.QuizAttemptRecord
	Err      error
}

// tab selects which list is shown.
type tab int

const (
	tabChat tab = iota
	tabQuiz
)

// HistoryScreen lists past chat turns and quiz attempts.
type HistoryScreen struct {
	turnsRepo    store.ChatRepo
	attemptsRepo store.QuizRepo

	turns    []store.ChatTurnRecord
	attempts []store.QuizAttemptRecord
	tab      tab
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. Either repo may be nil.
func New(turns store.ChatRepo, attempts store.QuizRepo) *HistoryScreen {
	return &HistoryScreen{
		turnsRepo:    turns,
		attemptsRepo: attempts,
		expanded:     make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	turnsRepo, attemptsRepo := s.turnsRepo, s.attemptsRepo
	return func() tea.Msg {
		ctx := context.Background()
		var msg historyLoadedMsg

		if turnsRepo != nil {
			turns, err := turnsRepo.RecentTurns(ctx, historyLimit)
			if err != nil {
				return historyLoadedMsg{Err: err}
			}
			msg.Turns = turns
		}
		if attemptsRepo != nil {
			attempts, err := attemptsRepo.RecentAttempts(ctx, historyLimit)
			if err != nil {
				return historyLoadedMsg{Err: err}
			}
			msg.Attempts = attempts
		}
		return msg
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Chat/Quiz"},
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) count() int {
	if s.tab == tabQuiz {
		return len(s.attempts)
	}
	return len(s.turns)
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.turns = msg.Turns
			s.attempts = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.tab = 1 - s.tab
			s.selected = 0
			s.expanded = make(map[int]bool)
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < s.count()-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Render(s.viewTabs()))
	b.WriteString("\n\n")

	if s.tab == tabQuiz {
		s.viewAttempts(&b, width)
	} else {
		s.viewTurns(&b, width)
	}
	return b.String()
}

func (s *HistoryScreen) viewTabs() string {
	chatLabel, quizLabel := theme.Hint.Render(" Chat "), theme.Hint.Render(" Quizzes ")
	if s.tab == tabChat {
		chatLabel = theme.Selected.Render("[Chat]")
	} else {
		quizLabel = theme.Selected.Render("[Quizzes]")
	}
	return chatLabel + "  " + quizLabel
}

func (s *HistoryScreen) line(i int, text string) string {
	prefix := "  "
	style := theme.Unselected
	if i == s.selected {
		prefix = "> "
		style = theme.Selected
	}
	return style.Render(prefix + text)
}

func (s *HistoryScreen) viewTurns(b *strings.Builder, width int) {
	if len(s.turns) == 0 {
		b.WriteString(theme.Hint.Render("  No questions asked yet."))
		return
	}
	wrap := layout.WrapWidth(width)
	for i, t := range s.turns {
		status := ""
		if !t.Success {
			status = "  (failed)"
		}
		b.WriteString(s.line(i, fmt.Sprintf("%s  %s%s", t.Timestamp.Format("Jan 02 15:04"), oneLine(t.UserText, wrap-20), status)))
		b.WriteString("\n")
		if s.expanded[i] {
			b.WriteString(theme.Body.Width(wrap).PaddingLeft(4).Render(t.Reply))
			b.WriteString("\n")
			if t.ErrorMessage != "" {
				b.WriteString(theme.ErrorText.PaddingLeft(4).Render(t.ErrorMessage))
				b.WriteString("\n")
			}
		}
	}
}

func (s *HistoryScreen) viewAttempts(b *strings.Builder, width int) {
	if len(s.attempts) == 0 {
		b.WriteString(theme.Hint.Render("  No quizzes taken yet."))
		return
	}
	for i, a := range s.attempts {
		topic := a.Topic
		if topic == "" {
			topic = "general"
		}
		b.WriteString(s.line(i, fmt.Sprintf("%s  %-6s  %-20s  %d/%d  %d%% (%s)",
			a.Timestamp.Format("Jan 02 15:04"), a.Level, oneLine(topic, 20), a.Correct, a.Total, a.Percentage, a.Band)))
		b.WriteString("\n")
		if s.expanded[i] {
			b.WriteString(theme.Hint.PaddingLeft(4).Render(answersLine(a.Answers)))
			b.WriteString("\n")
		}
	}
}

// answersLine lists chosen keys in question order.
func answersLine(answers map[string]string) string {
	if len(answers) == 0 {
		return "No answers recorded"
	}
	parts := make([]string, 0, len(answers))
	for i := 1; i <= quiz.MaxQuestions*2 && len(parts) < len(answers); i++ {
		id := fmt.Sprint(i)
		if k, ok := answers[id]; ok {
			parts = append(parts, id+":"+k)
		}
	}
	if len(parts) < len(answers) {
		// Non-numeric ids; fall back to map order.
		parts = parts[:0]
		for id, k := range answers {
			parts = append(parts, id+":"+k)
		}
	}
	return strings.Join(parts, "  ")
}

func oneLine(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if max < 4 {
		max = 4
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
