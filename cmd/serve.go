package cmd

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/versely/internal/chat"
	"github.com/abhisek/versely/internal/llm"
	"github.com/abhisek/versely/internal/prompts"
	"github.com/abhisek/versely/internal/quiz"
	"github.com/abhisek/versely/internal/render"
	"github.com/abhisek/versely/internal/server"
	"github.com/abhisek/versely/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service for chat and quiz clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		chatSvc, gen, err := buildServices(cmd.Context(), st, log.Logger)
		if err != nil {
			return err
		}

		srv, err := server.New(chatSvc, gen, render.New(), log.Logger)
		if err != nil {
			return err
		}
		return srv.Run(cmd.Context(), cfg.Addr)
	},
}

// buildServices wires the LLM provider and prompts into the chat and quiz
// services. A missing provider is not an error: both services then answer
// with a configuration hint.
func buildServices(ctx context.Context, st *store.Store, logger zerolog.Logger) (*chat.Service, *quiz.Generator, error) {
	var events store.EventRepo
	var turns store.ChatRepo
	if st != nil {
		events = st.EventRepo()
		turns = st.ChatRepo()
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, events, logger)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		logger.Warn().Msg("no LLM provider configured; chat and quiz will report setup instructions")
		provider = nil
	case err != nil:
		return nil, nil, err
	default:
		logger.Info().Str("provider", cfg.LLM.Provider).Msg("LLM provider ready")
	}

	p, err := prompts.Load(cfg.PromptsPath)
	if err != nil {
		return nil, nil, err
	}

	return chat.NewService(provider, p.Chat, turns, logger),
		quiz.NewGenerator(provider, p.Quiz, logger),
		nil
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides VERSELY_ADDR and PORT)")
}
