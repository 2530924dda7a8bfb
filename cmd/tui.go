package cmd

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/versely/internal/app"
	"github.com/abhisek/versely/internal/chat"
	"github.com/abhisek/versely/internal/quiz"
	"github.com/abhisek/versely/internal/ui/markdown"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the study chat in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, app.StartChat)
	},
}

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a Bible quiz in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, app.StartQuiz)
	},
}

// runTUI launches the terminal client against cfg.ServerURL. The local
// database only backs the history and stats views, so the client still
// starts when it cannot be opened.
func runTUI(cmd *cobra.Command, start string) error {
	opts := app.Options{
		Ctx:      cmd.Context(),
		Chat:     chat.NewHTTPClient(cfg.ServerURL, nil),
		Quiz:     quiz.NewHTTPClient(cfg.ServerURL, nil),
		Markdown: markdown.New(""),
		Start:    start,
		Status:   cfg.ServerURL,
	}

	dbPath, err := resolveDBPath(cmd)
	if err == nil {
		// The alternate screen owns stderr; log next to the database.
		if f, ferr := os.OpenFile(filepath.Join(filepath.Dir(dbPath), "versely.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); ferr == nil {
			defer f.Close()
			cfg.SetupLogging(f)
		}
	}

	st, err := openStore(cmd)
	if err != nil {
		log.Warn().Err(err).Msg("history unavailable")
	} else {
		defer st.Close()
		opts.Turns = st.ChatRepo()
		opts.Attempts = st.QuizRepo()
	}

	return app.Run(opts)
}
