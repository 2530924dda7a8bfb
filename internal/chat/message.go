package chat

import (
	"html/template"
	"strconv"

	"github.com/abhisek/versely/internal/render"
)

// Role identifies who wrote a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Label is the heading shown above a message.
func (r Role) Label() string {
	if r == RoleUser {
		return "You"
	}
	return "Assistant"
}

// State is the lifecycle of a turn.
type State int

const (
	StateComposing State = iota
	StateSending
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateComposing:
		return "composing"
	case StateSending:
		return "sending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Message is the view model of one chat bubble.
type Message struct {
	ID   string
	Role Role

	// Text is what the bubble displays before rendering: the user input,
	// or the assistant body with the follow-up block removed.
	Text string
	HTML template.HTML

	Loading bool
	Error   bool

	// Accordion is set when the assistant body has "## " sections.
	Accordion *render.Accordion

	FollowUps     []string
	FollowUpsHTML template.HTML
}

// Turn is one user message plus its paired assistant reply. Turns are
// created on submit and never removed.
type Turn struct {
	ID                 int
	UserText           string
	AssistantMessageID string

	User      *Message
	Assistant *Message
	State     State
}

// Anchor is the element id the sidebar links to.
func (t *Turn) Anchor() string {
	return "turn-" + strconv.Itoa(t.ID)
}

// SidebarEntry is one history link.
type SidebarEntry struct {
	TurnID  int
	Preview string
	Anchor  string
}
