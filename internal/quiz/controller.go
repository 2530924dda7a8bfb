package quiz

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// Texts shown by the wizard.
const (
	LoadingText     = "Generating questions…"
	NoQuestionsText = "No questions were generated. Please try again."
	LoadFailedText  = "Could not load quiz."
)

// ErrorDisplay is how long a generation error stays up before the wizard
// returns to setup.
const ErrorDisplay = 3 * time.Second

// Step is the wizard page.
type Step int

const (
	StepSetup Step = iota
	StepLoading
	StepInProgress
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepSetup:
		return "setup"
	case StepLoading:
		return "loading"
	case StepInProgress:
		return "in_progress"
	case StepSubmitted:
		return "submitted"
	}
	return "unknown"
}

// Scheduler runs fn once after d. The controller calls it without holding
// its lock, so fn may also run synchronously.
type Scheduler func(d time.Duration, fn func())

// AfterFunc schedules on a runtime timer.
func AfterFunc(d time.Duration, fn func()) { time.AfterFunc(d, fn) }

// Controller is the quiz wizard. It is safe for use from the UI goroutine
// and the scheduler's callback.
type Controller struct {
	client   Client
	schedule Scheduler

	mu          sync.Mutex
	step        Step
	level       Level
	topic       string
	state       *State
	loadingText string
	message     string
	result      *Result
	loading     bool
	generation  int
}

// NewController returns a wizard at the setup step. A nil schedule uses
// AfterFunc.
func NewController(client Client, schedule Scheduler) *Controller {
	if schedule == nil {
		schedule = AfterFunc
	}
	return &Controller{
		client:      client,
		schedule:    schedule,
		level:       LevelMedium,
		loadingText: LoadingText,
	}
}

// BeginSetup resets the quiz and moves to loading. It returns the request
// to send, or false while a request is already in flight.
func (c *Controller) BeginSetup(level, topic string) (GenerateRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading {
		return GenerateRequest{}, false
	}

	if strings.TrimSpace(level) == "" {
		level = string(LevelMedium)
	}
	c.level = Level(strings.ToLower(strings.TrimSpace(level)))
	c.topic = strings.TrimSpace(topic)
	c.state = nil
	c.result = nil
	c.message = ""
	c.loadingText = LoadingText
	c.step = StepLoading
	c.loading = true
	c.generation++

	req := GenerateRequest{Level: string(c.level)}
	if c.topic != "" {
		t := c.topic
		req.Topic = &t
	}
	return req, true
}

// CompleteSetup applies the generation outcome.
func (c *Controller) CompleteSetup(resp *GenerateResponse, err error) {
	if err != nil {
		c.mu.Lock()
		c.loading = false
		c.loadingText = "Error: " + failureText(err)
		gen := c.generation
		c.mu.Unlock()

		c.schedule(ErrorDisplay, func() { c.revert(gen) })
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.loading = false

	var questions []Question
	if resp != nil {
		questions = resp.Questions
	}
	if len(questions) == 0 {
		c.message = NoQuestionsText
		c.step = StepSubmitted
		return
	}

	c.state = NewState(questions)
	c.step = StepInProgress
}

// SubmitSetup requests a new quiz and waits for it.
func (c *Controller) SubmitSetup(ctx context.Context, level, topic string) {
	req, ok := c.BeginSetup(level, topic)
	if !ok {
		return
	}
	resp, err := c.client.Generate(ctx, req)
	c.CompleteSetup(resp, err)
}

// revert returns to setup after an error, unless another quiz has been
// requested since.
func (c *Controller) revert(gen int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation || c.step != StepLoading || c.loading {
		return
	}
	c.step = StepSetup
	c.loadingText = LoadingText
}

// Restart returns to the setup step, keeping the last level and topic.
func (c *Controller) Restart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return
	}
	c.generation++
	c.step = StepSetup
	c.loadingText = LoadingText
	c.state = nil
	c.result = nil
	c.message = ""
}

// Prev shows the previous question.
func (c *Controller) Prev() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step == StepInProgress {
		c.state.Prev()
	}
}

// Next shows the next question.
func (c *Controller) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step == StepInProgress {
		c.state.Next()
	}
}

// Nav returns the slider control state. It is the zero Nav outside the
// in-progress step.
func (c *Controller) Nav() Nav {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step != StepInProgress {
		return Nav{}
	}
	return c.state.Nav()
}

// SelectOption records key for question id, whichever question is shown.
func (c *Controller) SelectOption(id QuestionID, key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step != StepInProgress {
		return false
	}
	return c.state.Select(id, strings.ToUpper(key))
}

// SubmitAnswers scores the quiz. Selections in form override recorded
// answers; pass nil when the UI keeps no separate form state.
func (c *Controller) SubmitAnswers(form map[QuestionID]string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step != StepInProgress {
		return Result{}, false
	}

	for _, q := range c.state.Questions {
		if v, ok := form[q.ID]; ok {
			c.state.Answers[q.ID] = strings.ToUpper(v)
		}
	}

	res := Score(c.state.Questions, c.state.Answers)
	c.result = &res
	c.step = StepSubmitted
	return res, true
}

// Step returns the current wizard page.
func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Level returns the level of the current or last quiz.
func (c *Controller) Level() Level {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.level
}

// Topic returns the topic of the current or last quiz, "" for none.
func (c *Controller) Topic() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.topic
}

// LoadingText is the loading line, or the error while one is displayed.
func (c *Controller) LoadingText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadingText
}

// Failed reports whether a generation error is on display.
func (c *Controller) Failed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step == StepLoading && !c.loading
}

// Message is the results-page text shown instead of a score.
func (c *Controller) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// Result returns the scored quiz after submission.
func (c *Controller) Result() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Current returns the shown question and its index.
func (c *Controller) Current() (*Question, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return nil, 0
	}
	return c.state.Question(), c.state.Current
}

// Answer returns the recorded answer for id.
func (c *Controller) Answer(id QuestionID) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return ""
	}
	return c.state.Answers[id]
}

// Answers returns a copy of all recorded answers.
func (c *Controller) Answers() map[QuestionID]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[QuestionID]string)
	if c.state != nil {
		for k, v := range c.state.Answers {
			out[k] = v
		}
	}
	return out
}

// Questions returns the questions of the current quiz.
func (c *Controller) Questions() []Question {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return nil
	}
	return c.state.Questions
}

func failureText(err error) string {
	var se *ServerError
	if errors.As(err, &se) {
		if se.Message != "" {
			return se.Message
		}
		return "Failed to load quiz"
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return LoadFailedText
}
