package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// ChatTurnData is one answered (or failed) chat turn.
type ChatTurnData struct {
	MessageID    string
	UserText     string
	Reply        string
	Success      bool
	ErrorMessage string
}

// ChatTurnRecord is a stored chat turn.
type ChatTurnRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	ChatTurnData
}

// ChatRepo persists chat turns served by the backend.
type ChatRepo interface {
	AppendTurn(ctx context.Context, data ChatTurnData) error

	// RecentTurns returns up to limit turns, most recent first.
	RecentTurns(ctx context.Context, limit int) ([]ChatTurnRecord, error)
}

// QuizAttemptData is one submitted quiz.
type QuizAttemptData struct {
	Level      string
	Topic      string
	Total      int
	Correct    int
	Percentage int
	Band       string
	// Answers maps question id to the chosen option key.
	Answers map[string]string
}

// QuizAttemptRecord is a stored quiz attempt.
type QuizAttemptRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	QuizAttemptData
}

// QuizSummary aggregates every stored attempt.
type QuizSummary struct {
	Attempts       int
	Questions      int
	Correct        int
	BestPercentage int
	// ByLevel counts attempts per difficulty level.
	ByLevel map[string]int
}

// QuizRepo persists submitted quiz attempts.
type QuizRepo interface {
	AppendAttempt(ctx context.Context, data QuizAttemptData) error
	RecentAttempts(ctx context.Context, limit int) ([]QuizAttemptRecord, error)
	Summary(ctx context.Context) (QuizSummary, error)
}
