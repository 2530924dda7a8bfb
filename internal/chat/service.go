package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/abhisek/versely/internal/llm"
	"github.com/abhisek/versely/internal/prompts"
	"github.com/abhisek/versely/internal/store"
)

// EmptyModelText replaces a blank model answer.
const EmptyModelText = "The model did not return a reply. Please try rephrasing your question."

// Service answers study questions with the configured LLM. It always
// produces reply text; failures are explained in the text itself.
type Service struct {
	provider llm.Provider
	prompts  prompts.ChatConfig
	turns    store.ChatRepo
	logger   zerolog.Logger
}

// NewService creates a Service. provider and turns may be nil: without a
// provider every reply is the configuration hint, without a repo turns
// are not recorded.
func NewService(provider llm.Provider, cfg prompts.ChatConfig, turns store.ChatRepo, logger zerolog.Logger) *Service {
	return &Service{
		provider: provider,
		prompts:  cfg,
		turns:    turns,
		logger:   logger.With().Str("component", "chat").Logger(),
	}
}

// Configured reports whether an LLM provider is available.
func (s *Service) Configured() bool { return s.provider != nil }

// Reply answers message and records the turn under messageID.
func (s *Service) Reply(ctx context.Context, messageID, message string) string {
	text, err := s.generate(ctx, message)

	turn := store.ChatTurnData{
		MessageID: messageID,
		UserText:  message,
		Reply:     text,
		Success:   err == nil,
	}
	if err != nil {
		turn.ErrorMessage = err.Error()
	}
	if s.turns != nil {
		if recErr := s.turns.AppendTurn(ctx, turn); recErr != nil {
			s.logger.Warn().Err(recErr).Str("message_id", messageID).Msg("failed to record chat turn")
		}
	}

	return text
}

func (s *Service) generate(ctx context.Context, message string) (string, error) {
	if s.provider == nil {
		return s.prompts.NotConfigured, llm.ErrNotConfigured
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, llm.PurposeChat), llm.Request{
		System:      s.prompts.BasePrompt,
		Messages:    llm.UserPrompt(message),
		MaxTokens:   s.prompts.LLM.MaxTokens,
		Temperature: s.prompts.LLM.Temperature,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("llm reply failed")
		return fmt.Sprintf("Sorry, the AI service returned an error. Please try again. (Details: %s)", err), err
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return EmptyModelText, errors.New("empty model reply")
	}
	return text, nil
}
