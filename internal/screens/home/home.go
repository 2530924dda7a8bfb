package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/versely/internal/chat"
	"github.com/abhisek/versely/internal/quiz"
	"github.com/abhisek/versely/internal/router"
	"github.com/abhisek/versely/internal/screen"
	chatscreen "github.com/abhisek/versely/internal/screens/chat"
	"github.com/abhisek/versely/internal/screens/history"
	quizscreen "github.com/abhisek/versely/internal/screens/quiz"
	"github.com/abhisek/versely/internal/store"
	"github.com/abhisek/versely/internal/ui/components"
	"github.com/abhisek/versely/internal/ui/layout"
	"github.com/abhisek/versely/internal/ui/markdown"
	"github.com/abhisek/versely/internal/ui/theme"
)

// Deps are the services the screens reachable from home need. Turns and
// Attempts may be nil when no local database is available.
type Deps struct {
	Ctx      context.Context
	Chat     chat.Client
	Quiz     quiz.Client
	Markdown *markdown.Renderer
	Turns    store.ChatRepo
	Attempts store.QuizRepo
}

type summaryLoadedMsg struct {
	summary store.QuizSummary
	err     error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps    Deps
	menu    components.Menu
	summary *store.QuizSummary
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Ctx == nil {
		deps.Ctx = context.Background()
	}
	h := &HomeScreen{deps: deps}

	items := []components.MenuItem{
		{Label: "STUDY CHAT", Action: func() tea.Cmd { return push(h.ChatScreen()) }},
		{Label: "BIBLE QUIZ", Action: func() tea.Cmd { return push(h.QuizScreen()) }},
		{Label: "HISTORY", Disabled: deps.Turns == nil && deps.Attempts == nil, Action: func() tea.Cmd {
			return push(history.New(deps.Turns, deps.Attempts))
		}},
		{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	}
	h.menu = components.NewMenu(items)
	return h
}

// ChatScreen builds a fresh chat screen.
func (h *HomeScreen) ChatScreen() screen.Screen {
	return chatscreen.New(h.deps.Ctx, h.deps.Chat, h.deps.Markdown)
}

// QuizScreen builds a fresh quiz screen.
func (h *HomeScreen) QuizScreen() screen.Screen {
	return quizscreen.New(h.deps.Ctx, h.deps.Quiz, h.deps.Attempts)
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

// Init loads the quiz stats. The app calls it again whenever home becomes
// the active screen.
func (h *HomeScreen) Init() tea.Cmd {
	repo, ctx := h.deps.Attempts, h.deps.Ctx
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		sum, err := repo.Summary(ctx)
		return summaryLoadedMsg{summary: sum, err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(summaryLoadedMsg); ok {
		if m.err == nil {
			sum := m.summary
			h.summary = &sum
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)
	if cw > 60 {
		cw = 60
	}

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, renderBook(cw))
	}
	if h.deps.Attempts != nil {
		sections = append(sections, renderStats(h.summary, cw))
	}
	sections = append(sections,
		lipgloss.NewStyle().Width(cw).Render(h.menu.View()),
		theme.Subtitle.Width(cw).Render("Reformed study helps, ESV quotations"),
	)

	return components.Center(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
