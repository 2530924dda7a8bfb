// Package chat is the study chat screen. It drives chat.Controller and
// draws replies with glamour; sectioned replies become collapsible blocks.
package chat

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/versely/internal/chat"
	"github.com/abhisek/versely/internal/screen"
	"github.com/abhisek/versely/internal/ui/components"
	"github.com/abhisek/versely/internal/ui/layout"
	"github.com/abhisek/versely/internal/ui/markdown"
	"github.com/abhisek/versely/internal/ui/theme"
)

const sidebarWidth = 30

// replyMsg carries the outcome of a chat request back to the UI loop.
type replyMsg struct {
	pending *chat.Pending
	resp    *chat.Response
	err     error
}

// pane is the part of the screen receiving keys.
type pane int

const (
	paneInput pane = iota
	paneTranscript
)

// ChatScreen is the conversation view.
type ChatScreen struct {
	ctrl   *chat.Controller
	client chat.Client
	md     *markdown.Renderer
	input  components.TextInput
	pane   pane
	scroll int
	ctx    context.Context
}

var (
	_ screen.Screen          = (*ChatScreen)(nil)
	_ screen.KeyHintProvider = (*ChatScreen)(nil)
	_ screen.EscapeCapturer  = (*ChatScreen)(nil)
)

// New creates a chat screen talking through client.
func New(ctx context.Context, client chat.Client, md *markdown.Renderer, opts ...chat.Option) *ChatScreen {
	return &ChatScreen{
		ctrl:   chat.NewController(client, nil, opts...),
		client: client,
		md:     md,
		input:  components.NewTextInput("Ask a question about the Bible…", 2000),
		ctx:    ctx,
	}
}

// Controller exposes the underlying controller.
func (s *ChatScreen) Controller() *chat.Controller { return s.ctrl }

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *ChatScreen) Title() string {
	return "Study Chat"
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	if s.pane == paneTranscript {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Turn"},
			{Key: "1-9", Description: "Section"},
			{Key: "a-c", Description: "Ask follow-up"},
			{Key: "A-C", Description: "Edit follow-up"},
			{Key: "s", Description: "Sidebar"},
			{Key: "Tab", Description: "Input"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Tab", Description: "Browse replies"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

// CapturesEscape keeps Esc inside the screen while browsing replies.
func (s *ChatScreen) CapturesEscape() bool {
	return s.pane == paneTranscript
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		s.ctrl.Complete(msg.pending, msg.resp, msg.err)
		s.input.Disabled = !s.ctrl.InputEnabled()
		s.scroll = 0
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			return s, s.switchPane()
		case "pgup":
			s.scroll += 5
			return s, nil
		case "pgdown":
			s.scroll -= 5
			if s.scroll < 0 {
				s.scroll = 0
			}
			return s, nil
		}
		if s.pane == paneTranscript {
			return s, s.updateTranscript(msg)
		}
		if msg.String() == "enter" {
			return s, s.send()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) switchPane() tea.Cmd {
	if s.pane == paneInput {
		s.pane = paneTranscript
		s.input.Blur()
		if s.ctrl.Focused() < 0 {
			if turns := s.ctrl.Turns(); len(turns) > 0 {
				s.ctrl.Focus(turns[0].ID)
			}
		}
		return nil
	}
	s.pane = paneInput
	return s.input.Focus()
}

// send submits the input box through the controller.
func (s *ChatScreen) send() tea.Cmd {
	s.ctrl.SetInput(s.input.Value())
	p, ok := s.ctrl.Begin()
	if !ok {
		return nil
	}
	s.input.SetValue("")
	s.input.Disabled = true
	s.scroll = 0
	return s.request(p)
}

func (s *ChatScreen) request(p *chat.Pending) tea.Cmd {
	client, ctx := s.client, s.ctx
	return func() tea.Msg {
		resp, err := client.Send(ctx, p.Request)
		return replyMsg{pending: p, resp: resp, err: err}
	}
}

func (s *ChatScreen) updateTranscript(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	focused := s.ctrl.Focused()

	switch key {
	case "esc":
		s.pane = paneInput
		return s.input.Focus()
	case "up", "k":
		s.moveFocus(1)
	case "down", "j":
		s.moveFocus(-1)
	case "s":
		s.ctrl.ToggleSidebar()
	case "a", "b", "c":
		i := int(key[0] - 'a')
		if !s.ctrl.SelectFollowUp(focused, i) {
			return nil
		}
		s.input.SetValue(s.ctrl.Input())
		s.pane = paneInput
		return tea.Batch(s.input.Focus(), s.send())
	case "A", "B", "C":
		// Copy into the input for editing instead of sending.
		if s.ctrl.SelectFollowUp(focused, int(key[0]-'A')) {
			s.input.SetValue(s.ctrl.Input())
			s.pane = paneInput
			return s.input.Focus()
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			s.ctrl.ToggleSection(focused, int(key[0]-'1'))
		}
	}
	return nil
}

// moveFocus steps through turns; delta 1 moves to an older turn.
func (s *ChatScreen) moveFocus(delta int) {
	turns := s.ctrl.Turns()
	if len(turns) == 0 {
		return
	}
	idx := 0
	for i, t := range turns {
		if t.ID == s.ctrl.Focused() {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(turns) {
		idx = len(turns) - 1
	}
	s.ctrl.Focus(turns[idx].ID)
}

func (s *ChatScreen) View(width, height int) string {
	showSidebar := !s.ctrl.SidebarCollapsed() && !layout.IsCompactWidth(width) && len(s.ctrl.Sidebar()) > 0

	mainWidth := width
	if showSidebar {
		mainWidth = width - sidebarWidth - 2
	}

	input := s.input.View()
	if s.ctrl.Sending() {
		input = theme.Hint.Render("Waiting for reply…")
	}
	inputBox := lipgloss.NewStyle().
		Width(mainWidth - 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(inputBorder(s.pane == paneInput)).
		Render(input)

	transcriptHeight := height - lipgloss.Height(inputBox)
	if transcriptHeight < 0 {
		transcriptHeight = 0
	}
	transcript := s.viewTranscript(layout.WrapWidth(mainWidth), transcriptHeight)

	main := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Height(transcriptHeight).Render(transcript),
		inputBox,
	)
	if !showSidebar {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, s.viewSidebar(height), " ", main)
}

func inputBorder(active bool) color.Color {
	if active {
		return theme.Primary
	}
	return theme.Border
}

// viewTranscript renders turns oldest first and keeps the newest lines in
// view unless the user scrolled up.
func (s *ChatScreen) viewTranscript(width, height int) string {
	turns := s.ctrl.Turns()
	if len(turns) == 0 {
		return theme.Hint.Render("\n  Ask about a passage, a doctrine, or a word study.")
	}

	var blocks []string
	for i := len(turns) - 1; i >= 0; i-- {
		blocks = append(blocks, s.viewTurn(turns[i], width))
	}
	lines := strings.Split(strings.Join(blocks, "\n\n"), "\n")

	maxScroll := len(lines) - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}
	end := len(lines) - s.scroll
	start := end - height
	if start < 0 {
		start = 0
	}
	return strings.Join(lines[start:end], "\n")
}

func (s *ChatScreen) viewTurn(t *chat.Turn, width int) string {
	var b strings.Builder

	b.WriteString(theme.UserLabel.Render(t.User.Role.Label()))
	b.WriteString("\n")
	b.WriteString(theme.Body.Width(width).Render(t.User.Text))
	b.WriteString("\n\n")

	a := t.Assistant
	b.WriteString(theme.AssistantLabel.Render(a.Role.Label()))
	b.WriteString("\n")

	switch {
	case a.Loading:
		b.WriteString(theme.Hint.Render(a.Text))
	case a.Error:
		b.WriteString(theme.ErrorText.Width(width).Render(a.Text))
	case a.Accordion != nil:
		if a.Accordion.Intro != "" {
			b.WriteString(s.md.Render(a.Accordion.Intro, width))
			b.WriteString("\n")
		}
		for i, item := range a.Accordion.Items {
			if item.Open {
				b.WriteString(theme.SectionOpen.Render(fmt.Sprintf("▾ %d. %s", i+1, item.Title)))
				b.WriteString("\n")
				if item.Content != "" {
					b.WriteString(s.md.Render(item.Content, width))
					b.WriteString("\n")
				}
			} else {
				b.WriteString(theme.SectionClosed.Render(fmt.Sprintf("▸ %d. %s", i+1, item.Title)))
				b.WriteString("\n")
			}
		}
	default:
		b.WriteString(s.md.Render(a.Text, width))
	}

	if len(a.FollowUps) > 0 {
		b.WriteString("\n")
		for i, q := range a.FollowUps {
			if i > 2 {
				break
			}
			b.WriteString(theme.FollowUp.Render(fmt.Sprintf("%c) %s", 'a'+i, q)))
			b.WriteString("\n")
		}
	}

	block := strings.TrimRight(b.String(), "\n")
	if s.pane == paneTranscript && t.ID == s.ctrl.Focused() {
		return theme.Focused.Render(block)
	}
	return theme.Unfocused.Render(block)
}

func (s *ChatScreen) viewSidebar(height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("History"))
	b.WriteString("\n\n")
	for _, e := range s.ctrl.Sidebar() {
		style := theme.Unselected
		if e.TurnID == s.ctrl.Focused() {
			style = theme.Selected
		}
		b.WriteString(style.Width(sidebarWidth).Render(e.Preview))
		b.WriteString("\n")
	}
	return theme.Sidebar.Width(sidebarWidth).Height(height).Render(b.String())
}
