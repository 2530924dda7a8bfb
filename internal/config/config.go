// Package config resolves runtime settings from .env, the environment and
// defaults.
package config

import (
	"io"
	"net"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/versely/internal/llm"
)

// Environment names.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	defaultPort      = "5000"
	defaultServerURL = "http://127.0.0.1:5000"
)

// Config is the resolved application configuration.
type Config struct {
	Env   string
	Debug bool

	// Addr is the listen address for `serve`.
	Addr string

	// DBPath overrides the default SQLite location when set.
	DBPath string

	// PromptsPath is an optional YAML file replacing the embedded prompts.
	PromptsPath string

	// ServerURL is the backend the TUI clients talk to.
	ServerURL string

	LogLevel zerolog.Level

	LLM llm.Config
}

// Load reads .env files (if present) into the process environment and
// resolves the configuration from it. Variables already set win over .env.
func Load(files ...string) Config {
	// A missing .env is normal outside development.
	_ = godotenv.Load(files...)
	return FromEnv()
}

// FromEnv resolves the configuration from the current environment only.
func FromEnv() Config {
	env := strings.ToLower(firstEnv("VERSELY_ENV", "FLASK_ENV"))
	if env != EnvProduction {
		env = EnvDevelopment
	}

	cfg := Config{
		Env:         env,
		Debug:       env == EnvDevelopment,
		DBPath:      os.Getenv("VERSELY_DB"),
		PromptsPath: os.Getenv("VERSELY_PROMPTS"),
		ServerURL:   strings.TrimRight(firstEnv("VERSELY_SERVER_URL"), "/"),
		LogLevel:    zerolog.InfoLevel,
		LLM:         llm.ConfigFromEnv(),
	}

	if cfg.Debug {
		cfg.LogLevel = zerolog.DebugLevel
	}
	if lvl := os.Getenv("VERSELY_LOG_LEVEL"); lvl != "" {
		if l, err := zerolog.ParseLevel(strings.ToLower(lvl)); err == nil {
			cfg.LogLevel = l
		}
	}

	cfg.Addr = os.Getenv("VERSELY_ADDR")
	if cfg.Addr == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = defaultPort
		}
		cfg.Addr = net.JoinHostPort("", port)
	}

	if cfg.ServerURL == "" {
		cfg.ServerURL = defaultServerURL
	}

	return cfg
}

// NewLogger builds the application logger: human-readable console output
// in development, JSON lines in production.
func (c Config) NewLogger(w io.Writer) zerolog.Logger {
	if c.Env == EnvDevelopment {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(w).Level(c.LogLevel).With().Timestamp().Logger()
}

// SetupLogging installs the application logger as the global zerolog
// logger and returns it.
func (c Config) SetupLogging(w io.Writer) zerolog.Logger {
	logger := c.NewLogger(w)
	zerolog.SetGlobalLevel(c.LogLevel)
	log.Logger = logger
	return logger
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
