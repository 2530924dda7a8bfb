package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/abhisek/versely/internal/llm"
	"github.com/abhisek/versely/internal/prompts"
)

// Limits applied to generated quizzes.
const (
	MaxQuestions  = 10
	OptionCount   = 4
	MaxOptionRune = 200
)

// Generation failures.
var (
	ErrQuizNotConfigured = errors.New("quiz requires an LLM provider")
	ErrUnparseable       = errors.New("could not parse quiz questions")
)

// Display texts for the generation failures.
const (
	NotConfiguredText = "Quiz requires an LLM provider to be configured."
	UnparseableText   = "Could not parse quiz questions. Please try again."
)

// questionsSchema is the structured output requested from the model.
var questionsSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "Multiple-choice Bible study questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"correct": map[string]any{"type": "string"},
					},
					"required":             []any{"question", "options", "correct"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// Generator builds quizzes with an LLM.
type Generator struct {
	provider llm.Provider
	prompts  prompts.QuizConfig
	logger   zerolog.Logger
}

// NewGenerator creates a Generator. A nil provider makes every Generate
// call fail with ErrQuizNotConfigured.
func NewGenerator(provider llm.Provider, cfg prompts.QuizConfig, logger zerolog.Logger) *Generator {
	return &Generator{
		provider: provider,
		prompts:  cfg,
		logger:   logger.With().Str("component", "quiz").Logger(),
	}
}

// Generate asks the model for a quiz at level, optionally focused on topic.
func (g *Generator) Generate(ctx context.Context, level, topic string) ([]Question, error) {
	if g.provider == nil {
		return nil, ErrQuizNotConfigured
	}

	lvl := NormalizeLevel(level)
	topic = strings.TrimSpace(topic)

	resp, err := g.provider.Generate(llm.WithPurpose(ctx, llm.PurposeQuizGen), llm.Request{
		System:      g.prompts.BasePrompt,
		Messages:    llm.UserPrompt(g.prompts.UserPrompt(string(lvl), topic)),
		Schema:      questionsSchema,
		MaxTokens:   g.prompts.LLM.MaxTokens,
		Temperature: g.prompts.LLM.Temperature,
	})
	if err != nil {
		var invalid *llm.ErrInvalidResponse
		var syntax *json.SyntaxError
		if errors.As(err, &invalid) || errors.As(err, &syntax) {
			g.logger.Warn().Err(err).Str("level", string(lvl)).Msg("unparseable quiz output")
			return nil, ErrUnparseable
		}
		g.logger.Warn().Err(err).Str("level", string(lvl)).Msg("quiz generation failed")
		return nil, err
	}

	questions, err := ParseQuestions(resp.Content)
	if err != nil {
		g.logger.Warn().Err(err).Str("level", string(lvl)).Msg("unparseable quiz output")
		return nil, ErrUnparseable
	}

	g.logger.Debug().
		Str("level", string(lvl)).
		Str("topic", topic).
		Int("questions", len(questions)).
		Msg("quiz generated")
	return questions, nil
}

// ParseQuestions reads model output that is either a JSON array of
// questions or an object with a "questions" array, optionally inside a
// code fence. Only the first MaxQuestions items are considered; items that
// are not objects or have fewer than OptionCount options are dropped. Ids
// are the 1-based position in the model's list.
func ParseQuestions(content []byte) ([]Question, error) {
	text := llm.StripCodeFence(strings.TrimSpace(string(content)))

	var items []json.RawMessage
	if strings.HasPrefix(text, "[") {
		if err := json.Unmarshal([]byte(text), &items); err != nil {
			return nil, err
		}
	} else {
		var wrapped struct {
			Questions []json.RawMessage `json:"questions"`
		}
		if err := json.Unmarshal([]byte(text), &wrapped); err != nil {
			return nil, err
		}
		items = wrapped.Questions
	}

	if len(items) > MaxQuestions {
		items = items[:MaxQuestions]
	}

	questions := make([]Question, 0, len(items))
	for i, raw := range items {
		var item struct {
			Question string `json:"question"`
			Options  []any  `json:"options"`
			Correct  any    `json:"correct"`
		}
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}
		if len(item.Options) < OptionCount {
			continue
		}

		options := make([]string, 0, OptionCount)
		for _, o := range item.Options[:OptionCount] {
			options = append(options, truncateRunes(stringify(o), MaxOptionRune))
		}

		questions = append(questions, Question{
			ID:       QuestionID(strconv.Itoa(i + 1)),
			Question: strings.TrimSpace(item.Question),
			Options:  options,
			Correct:  normalizeCorrect(stringify(item.Correct)),
		})
	}
	return questions, nil
}

func normalizeCorrect(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "A", "B", "C", "D":
		return s
	}
	return "A"
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
