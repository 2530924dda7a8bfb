package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/versely/internal/chat"
	"github.com/abhisek/versely/internal/quiz"
	"github.com/abhisek/versely/internal/router"
	"github.com/abhisek/versely/internal/screen"
	"github.com/abhisek/versely/internal/screens/home"
	"github.com/abhisek/versely/internal/store"
	"github.com/abhisek/versely/internal/ui/layout"
	"github.com/abhisek/versely/internal/ui/markdown"
)

// Start screens accepted in Options.Start.
const (
	StartHome = "home"
	StartChat = "chat"
	StartQuiz = "quiz"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Ctx      context.Context
	Chat     chat.Client
	Quiz     quiz.Client
	Markdown *markdown.Renderer

	// Turns and Attempts are nil when no local database is open.
	Turns    store.ChatRepo
	Attempts store.QuizRepo

	// Start opens a screen on top of home.
	Start string

	// Status is shown on the right of the header, usually the server URL.
	Status string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	home   *home.HomeScreen
	status string
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen, plus the
// requested start screen above it.
func newAppModel(opts Options) AppModel {
	if opts.Ctx == nil {
		opts.Ctx = context.Background()
	}
	if opts.Markdown == nil {
		opts.Markdown = markdown.New("")
	}

	homeScreen := home.New(home.Deps{
		Ctx:      opts.Ctx,
		Chat:     opts.Chat,
		Quiz:     opts.Quiz,
		Markdown: opts.Markdown,
		Turns:    opts.Turns,
		Attempts: opts.Attempts,
	})
	r := router.New(homeScreen)
	switch opts.Start {
	case StartChat:
		r.Push(homeScreen.ChatScreen())
	case StartQuiz:
		r.Push(homeScreen.QuizScreen())
	}

	return AppModel{
		router: r,
		home:   homeScreen,
		status: opts.Status,
	}
}

func (m AppModel) Init() tea.Cmd {
	// Any start screen was pushed before the program ran.
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case router.PopScreenMsg:
		cmd := m.router.Update(msg)
		if m.router.Depth() == 1 {
			// Back on home: refresh the quiz stats.
			return m, tea.Batch(cmd, m.home.Init())
		}
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.EscapeCapturer); ok && c.CapturesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the framed active screen at the current window size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
