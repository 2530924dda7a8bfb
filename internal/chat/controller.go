// Package chat drives the study-question conversation: the per-turn
// request cycle, reply rendering and the history sidebar.
package chat

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/abhisek/versely/internal/render"
	"github.com/abhisek/versely/internal/reply"
)

// Texts shown in place of a reply.
const (
	PlaceholderText  = "…"
	ServerErrorText  = "Something went wrong. Please try again."
	NetworkErrorText = "Network error. Please check your connection and try again."
	EmptyReplyText   = "No reply received."
)

const previewLen = 60

// Pending is a turn whose request has been issued but not completed.
type Pending struct {
	Turn    *Turn
	Request Request
}

// Controller owns the message list, the sidebar and the request cycle.
// Methods are meant to be called from a single UI goroutine; only
// Client.Send may run elsewhere.
type Controller struct {
	client   Client
	renderer *render.Renderer
	newID    func() string

	input        string
	inputEnabled bool
	pending      *Pending

	turns      []*Turn // most recent first
	sidebar    []SidebarEntry
	nextTurnID int
	focused    int
	collapsed  bool
}

// Option configures a Controller.
type Option func(*Controller)

// NewMessageID returns a fresh "msg-" prefixed id.
func NewMessageID() string { return "msg-" + uuid.NewString() }

// WithMessageIDs replaces the message id generator.
func WithMessageIDs(fn func() string) Option {
	return func(c *Controller) { c.newID = fn }
}

// NewController returns a controller sending through client. A nil
// renderer shows every reply as escaped plain text.
func NewController(client Client, renderer *render.Renderer, opts ...Option) *Controller {
	c := &Controller{
		client:       client,
		renderer:     renderer,
		newID:        NewMessageID,
		inputEnabled: true,
		focused:      -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetInput replaces the text in the input box. Ignored while a request is
// in flight.
func (c *Controller) SetInput(text string) {
	if !c.inputEnabled {
		return
	}
	c.input = text
}

// Input returns the current input text.
func (c *Controller) Input() string { return c.input }

// InputEnabled reports whether the input and submit controls are usable.
func (c *Controller) InputEnabled() bool { return c.inputEnabled }

// Sending reports whether a request is outstanding.
func (c *Controller) Sending() bool { return c.pending != nil }

// State is the state of the newest turn, or composing before the first
// submit.
func (c *Controller) State() State {
	if len(c.turns) == 0 {
		return StateComposing
	}
	return c.turns[0].State
}

// Turns returns all turns, most recent first.
func (c *Controller) Turns() []*Turn { return c.turns }

// Sidebar returns the history entries, most recent first.
func (c *Controller) Sidebar() []SidebarEntry { return c.sidebar }

// Turn looks up a turn by id.
func (c *Controller) Turn(id int) *Turn {
	for _, t := range c.turns {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Begin starts a turn from the current input. It returns false without
// side effects when the input is blank or a request is already in flight.
func (c *Controller) Begin() (*Pending, bool) {
	if c.pending != nil {
		return nil, false
	}
	text := strings.TrimSpace(c.input)
	if text == "" {
		return nil, false
	}

	c.input = ""
	messageID := c.newID()
	turn := &Turn{
		ID:                 c.nextTurnID,
		UserText:           text,
		AssistantMessageID: messageID,
		State:              StateSending,
		User: &Message{
			ID:   messageID,
			Role: RoleUser,
			Text: text,
			HTML: render.Text(text),
		},
		Assistant: &Message{
			Role:    RoleAssistant,
			Text:    PlaceholderText,
			HTML:    render.Text(PlaceholderText),
			Loading: true,
		},
	}
	c.nextTurnID++

	c.turns = append([]*Turn{turn}, c.turns...)
	c.sidebar = append([]SidebarEntry{{
		TurnID:  turn.ID,
		Preview: preview(text),
		Anchor:  turn.Anchor(),
	}}, c.sidebar...)
	c.focused = turn.ID

	c.inputEnabled = false
	c.pending = &Pending{
		Turn:    turn,
		Request: Request{Message: text, MessageID: messageID},
	}
	return c.pending, true
}

// Complete finishes a pending turn with the outcome of Client.Send. The
// input is re-enabled on every path.
func (c *Controller) Complete(p *Pending, resp *Response, err error) {
	if p == nil {
		return
	}
	defer func() {
		if c.pending == p {
			c.pending = nil
		}
		c.inputEnabled = true
	}()

	turn := p.Turn
	var serverErr *ServerError
	switch {
	case errors.As(err, &serverErr):
		text := serverErr.Message
		if text == "" {
			text = ServerErrorText
		}
		c.setAssistant(turn, text)
		turn.Assistant.Error = true
		turn.State = StateFailed
	case err != nil:
		c.setAssistant(turn, NetworkErrorText)
		turn.Assistant.Error = true
		turn.State = StateFailed
	default:
		text := ""
		if resp != nil {
			text = resp.Reply
		}
		if text == "" {
			text = EmptyReplyText
		}
		c.setAssistant(turn, text)
		turn.State = StateSucceeded
	}
}

// Submit sends the current input and waits for the reply. It returns the
// new turn, or nil when the input was blank or a request is in flight.
func (c *Controller) Submit(ctx context.Context) *Turn {
	p, ok := c.Begin()
	if !ok {
		return nil
	}
	resp, err := c.client.Send(ctx, p.Request)
	c.Complete(p, resp, err)
	return p.Turn
}

// SelectFollowUp copies follow-up i of a turn into the input. It reports
// whether the follow-up exists and the input accepted it.
func (c *Controller) SelectFollowUp(turnID, i int) bool {
	t := c.Turn(turnID)
	if t == nil || i < 0 || i >= len(t.Assistant.FollowUps) || !c.inputEnabled {
		return false
	}
	c.input = t.Assistant.FollowUps[i]
	return true
}

// ChooseFollowUp copies follow-up i into the input and submits it.
func (c *Controller) ChooseFollowUp(ctx context.Context, turnID, i int) *Turn {
	if !c.SelectFollowUp(turnID, i) {
		return nil
	}
	return c.Submit(ctx)
}

// Rerender replaces the assistant text of a finished turn. The previous
// follow-up group is dropped before the new one is built.
func (c *Controller) Rerender(turnID int, text string) bool {
	t := c.Turn(turnID)
	if t == nil || t.Assistant.Loading {
		return false
	}
	c.setAssistant(t, text)
	return true
}

// ToggleSection flips accordion item i of a turn's reply.
func (c *Controller) ToggleSection(turnID, i int) bool {
	t := c.Turn(turnID)
	if t == nil || t.Assistant.Accordion == nil {
		return false
	}
	open := t.Assistant.Accordion.Toggle(i)
	t.Assistant.HTML = c.renderer.Accordion(t.Assistant.Accordion)
	return open
}

// Focus records the turn the view should scroll to, as a sidebar click
// does. Unknown ids are ignored.
func (c *Controller) Focus(turnID int) bool {
	if c.Turn(turnID) == nil {
		return false
	}
	c.focused = turnID
	return true
}

// Focused returns the id of the turn to scroll to, or -1.
func (c *Controller) Focused() int { return c.focused }

// ToggleSidebar collapses or expands the history sidebar and returns the
// new collapsed state.
func (c *Controller) ToggleSidebar() bool {
	c.collapsed = !c.collapsed
	return c.collapsed
}

// SidebarCollapsed reports whether the sidebar is hidden.
func (c *Controller) SidebarCollapsed() bool { return c.collapsed }

func (c *Controller) setAssistant(t *Turn, text string) {
	parsed := reply.ParseFollowUps(text)
	msg := t.Assistant
	msg.Loading = false
	msg.Text = parsed.Body
	msg.Accordion = nil

	intro, sections := reply.ParseSections(parsed.Body)
	if len(sections) > 0 {
		msg.Accordion = render.NewAccordion(t.AssistantMessageID, intro, sections)
		msg.HTML = c.renderer.Accordion(msg.Accordion)
	} else {
		msg.HTML = c.renderer.Markdown(parsed.Body)
	}

	msg.FollowUps = parsed.FollowUps
	msg.FollowUpsHTML = render.FollowUps(parsed.FollowUps)
}

// preview shortens text for the sidebar.
func preview(text string) string {
	if utf8.RuneCountInString(text) <= previewLen {
		return text
	}
	return string([]rune(text)[:previewLen]) + "…"
}
