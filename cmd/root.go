package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/versely/internal/app"
	"github.com/abhisek/versely/internal/config"
	"github.com/abhisek/versely/internal/store"
)

// cfg is resolved once in PersistentPreRunE and read by every command.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "versely",
	Short: "Reformed Bible study assistant",
	Long:  "Versely: a Bible study chat and quiz service with a terminal client.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if s, _ := cmd.Flags().GetString("server"); s != "" {
			cfg.ServerURL = s
		}
		cfg.SetupLogging(os.Stderr)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, app.StartHome)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides VERSELY_DB env var)")
	rootCmd.PersistentFlags().String("server", "", "Versely server URL for the terminal client (overrides VERSELY_SERVER_URL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then VERSELY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database chosen by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}
