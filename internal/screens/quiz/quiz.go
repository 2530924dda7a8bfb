// Package quiz is the quiz wizard screen: setup, one question at a time,
// then the scored review.
package quiz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/versely/internal/quiz"
	"github.com/abhisek/versely/internal/router"
	"github.com/abhisek/versely/internal/screen"
	"github.com/abhisek/versely/internal/screens/history"
	"github.com/abhisek/versely/internal/store"
	"github.com/abhisek/versely/internal/ui/components"
	"github.com/abhisek/versely/internal/ui/layout"
	"github.com/abhisek/versely/internal/ui/theme"
)

type generatedMsg struct {
	resp *quiz.GenerateResponse
	err  error
}

// revertMsg fires a callback the controller scheduled.
type revertMsg struct {
	fn func()
}

type savedMsg struct {
	err error
}

// setupField is the focused control on the setup page.
type setupField int

const (
	fieldLevel setupField = iota
	fieldTopic
)

// QuizScreen runs one quiz at a time.
type QuizScreen struct {
	ctrl     *quiz.Controller
	client   quiz.Client
	attempts store.QuizRepo
	ctx      context.Context

	field    setupField
	levelIdx int
	topic    components.TextInput
	options  components.OptionList
	shownID  quiz.QuestionID

	scheduled []revertMsg
	delay     time.Duration
	saved     bool
	saveErr   string
}

var (
	_ screen.Screen          = (*QuizScreen)(nil)
	_ screen.KeyHintProvider = (*QuizScreen)(nil)
	_ screen.EscapeCapturer  = (*QuizScreen)(nil)
)

// New creates a quiz screen. attempts may be nil, in which case results
// are not recorded.
func New(ctx context.Context, client quiz.Client, attempts store.QuizRepo) *QuizScreen {
	s := &QuizScreen{
		client:   client,
		attempts: attempts,
		ctx:      ctx,
		levelIdx: 1,
		topic:    components.NewTextInput("e.g. Romans, covenant, the Psalms", 120),
	}
	s.topic.Blur()
	// Timers become tea.Tick commands so reverts run on the UI loop.
	s.ctrl = quiz.NewController(client, func(d time.Duration, fn func()) {
		s.delay = d
		s.scheduled = append(s.scheduled, revertMsg{fn: fn})
	})
	return s
}

// Controller exposes the underlying wizard.
func (s *QuizScreen) Controller() *quiz.Controller { return s.ctrl }

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Bible Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.ctrl.Step() {
	case quiz.StepSetup:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Level/Topic"},
			{Key: "←→", Description: "Level"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	case quiz.StepInProgress:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Option"},
			{Key: "Enter", Description: "Choose"},
			{Key: "←→", Description: "Question"},
			{Key: "Ctrl+S", Description: "Submit"},
			{Key: "Esc", Description: "Back"},
		}
	case quiz.StepSubmitted:
		return []layout.KeyHint{
			{Key: "r", Description: "New quiz"},
			{Key: "h", Description: "History"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

// CapturesEscape leaves the topic field before leaving the screen.
func (s *QuizScreen) CapturesEscape() bool {
	return s.ctrl.Step() == quiz.StepSetup && s.field == fieldTopic
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		s.ctrl.CompleteSetup(msg.resp, msg.err)
		s.syncQuestion()
		return s, s.flushScheduled()

	case revertMsg:
		msg.fn()
		return s, nil

	case savedMsg:
		if msg.err != nil {
			s.saveErr = msg.err.Error()
		}
		return s, nil

	case components.OptionChosenMsg:
		if q, _ := s.ctrl.Current(); q != nil {
			s.ctrl.SelectOption(q.ID, msg.Key)
		}
		return s, nil

	case tea.KeyMsg:
		switch s.ctrl.Step() {
		case quiz.StepSetup:
			return s, s.updateSetup(msg)
		case quiz.StepInProgress:
			return s, s.updateQuestion(msg)
		case quiz.StepSubmitted:
			switch msg.String() {
			case "r":
				s.ctrl.Restart()
				s.shownID = ""
				s.saved, s.saveErr = false, ""
			case "h":
				if s.attempts != nil {
					next := history.New(nil, s.attempts)
					return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
				}
			}
			return s, nil
		}
		return s, nil
	}

	if s.field == fieldTopic {
		var cmd tea.Cmd
		s.topic, cmd = s.topic.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) updateSetup(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "shift+tab":
		if s.field == fieldLevel {
			s.field = fieldTopic
			return s.topic.Focus()
		}
		s.field = fieldLevel
		s.topic.Blur()
		return nil
	case "esc":
		s.field = fieldLevel
		s.topic.Blur()
		return nil
	case "enter":
		return s.start()
	}

	if s.field == fieldLevel {
		switch msg.String() {
		case "left", "h":
			if s.levelIdx > 0 {
				s.levelIdx--
			}
		case "right", "l":
			if s.levelIdx < len(quiz.Levels)-1 {
				s.levelIdx++
			}
		}
		return nil
	}

	var cmd tea.Cmd
	s.topic, cmd = s.topic.Update(msg)
	return cmd
}

// start requests a quiz for the chosen level and topic.
func (s *QuizScreen) start() tea.Cmd {
	req, ok := s.ctrl.BeginSetup(string(quiz.Levels[s.levelIdx]), s.topic.Value())
	if !ok {
		return nil
	}
	// Ids restart at "1" in every quiz.
	s.shownID = ""
	client, ctx := s.client, s.ctx
	return func() tea.Msg {
		resp, err := client.Generate(ctx, req)
		return generatedMsg{resp: resp, err: err}
	}
}

func (s *QuizScreen) flushScheduled() tea.Cmd {
	if len(s.scheduled) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(s.scheduled))
	for _, m := range s.scheduled {
		m := m
		cmds = append(cmds, tea.Tick(s.delay, func(time.Time) tea.Msg { return m }))
	}
	s.scheduled = nil
	return tea.Batch(cmds...)
}

func (s *QuizScreen) updateQuestion(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "left", "h":
		s.ctrl.Prev()
		s.syncQuestion()
		return nil
	case "right", "l":
		if !s.ctrl.Nav().NextDisabled {
			s.ctrl.Next()
			s.syncQuestion()
		}
		return nil
	case "ctrl+s":
		if !s.ctrl.Nav().SubmitShown {
			return nil
		}
		return s.submit()
	}

	var cmd tea.Cmd
	s.options, cmd = s.options.Update(msg)
	return cmd
}

// syncQuestion rebuilds the option list when the shown question changes.
func (s *QuizScreen) syncQuestion() {
	q, _ := s.ctrl.Current()
	if q == nil {
		s.shownID = ""
		return
	}
	if q.ID == s.shownID {
		return
	}
	s.shownID = q.ID
	s.options = components.NewOptionList(q.Options, s.ctrl.Answer(q.ID))
}

func (s *QuizScreen) submit() tea.Cmd {
	if _, ok := s.ctrl.SubmitAnswers(nil); !ok {
		return nil
	}
	attempt, ok := s.ctrl.Attempt()
	if !ok || s.attempts == nil || s.saved {
		return nil
	}
	s.saved = true
	repo, ctx := s.attempts, s.ctx
	return func() tea.Msg {
		err := repo.AppendAttempt(ctx, attempt)
		if err != nil {
			log.Warn().Err(err).Msg("failed to record quiz attempt")
		}
		return savedMsg{err: err}
	}
}

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch s.ctrl.Step() {
	case quiz.StepSetup:
		body = s.viewSetup(cw)
	case quiz.StepLoading:
		style := theme.Hint
		if s.ctrl.Failed() {
			style = theme.ErrorText
		}
		body = style.Render(s.ctrl.LoadingText())
	case quiz.StepInProgress:
		body = s.viewQuestion(cw)
	case quiz.StepSubmitted:
		body = s.viewResults(cw)
	}

	return components.Center(components.Card(body, cw), width, height)
}

func (s *QuizScreen) viewSetup(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("New quiz"))
	b.WriteString("\n\n")

	label := theme.Body
	if s.field == fieldLevel {
		label = theme.Selected
	}
	b.WriteString(label.Render("Level  "))
	for i, l := range quiz.Levels {
		name := strings.ToUpper(string(l[:1])) + string(l[1:])
		if i == s.levelIdx {
			b.WriteString(theme.Chosen.Render("[" + name + "]"))
		} else {
			b.WriteString(theme.Hint.Render(" " + name + " "))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	label = theme.Body
	if s.field == fieldTopic {
		label = theme.Selected
	}
	b.WriteString(label.Render("Topic (optional)"))
	b.WriteString("\n")
	b.WriteString(s.topic.View())
	return b.String()
}

func (s *QuizScreen) viewQuestion(cw int) string {
	q, idx := s.ctrl.Current()
	if q == nil {
		return ""
	}
	nav := s.ctrl.Nav()
	total := len(s.ctrl.Questions())

	var b strings.Builder
	b.WriteString(components.StepBar(nav.Progress, idx, total, cw-8).View())
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Bold(true).Width(cw).Render(q.Question))
	b.WriteString("\n\n")
	b.WriteString(s.options.View())
	b.WriteString("\n")
	b.WriteString(components.ButtonRow(
		components.Button{Label: "← Previous", Hidden: nav.PrevHidden},
		components.Button{Label: "Next →", Disabled: nav.NextDisabled},
		components.Button{Label: "Submit (Ctrl+S)", Hidden: !nav.SubmitShown},
	))
	return b.String()
}

func (s *QuizScreen) viewResults(cw int) string {
	res := s.ctrl.Result()
	if res == nil {
		return theme.Hint.Width(cw).Render(s.ctrl.Message())
	}

	var b strings.Builder
	b.WriteString(bandStyle(res.Band).Render(res.ScoreText()))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(res.DetailText()))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", float64(res.Percentage)/100, true, cw-8).View())
	b.WriteString("\n\n")

	for i, item := range res.Review {
		b.WriteString(theme.Body.Bold(true).Width(cw).Render(fmt.Sprintf("%d. %s", i+1, item.Question)))
		b.WriteString("\n")
		chosen := "Your answer: " + item.ChosenText
		if item.Wrong {
			b.WriteString(theme.Incorrect.Render("✗ " + chosen))
			b.WriteString("\n")
			b.WriteString(theme.Correct.Render("  Correct: " + item.CorrectText))
		} else {
			b.WriteString(theme.Correct.Render("✓ " + chosen))
		}
		b.WriteString("\n")
	}

	if s.saveErr != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render("Could not save this attempt: " + s.saveErr))
	}
	return lipgloss.NewStyle().MaxWidth(cw).Render(strings.TrimRight(b.String(), "\n"))
}

func bandStyle(b quiz.Band) lipgloss.Style {
	switch b {
	case quiz.BandGood:
		return theme.Correct
	case quiz.BandOK:
		return theme.Fair
	}
	return theme.Incorrect
}
