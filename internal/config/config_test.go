package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"VERSELY_ENV", "FLASK_ENV", "VERSELY_DB", "VERSELY_PROMPTS", "VERSELY_SERVER_URL",
		"VERSELY_LOG_LEVEL", "VERSELY_ADDR", "PORT", "VERSELY_LLM_PROVIDER",
		"GEMINI_API_KEY", "AI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := FromEnv()
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.True(t, cfg.Debug)
	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, "http://127.0.0.1:5000", cfg.ServerURL)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Empty(t, cfg.LLM.Provider)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("FLASK_ENV", "production")
	t.Setenv("PORT", "8080")
	t.Setenv("VERSELY_SERVER_URL", "http://study.local:8080/")
	t.Setenv("VERSELY_LOG_LEVEL", "WARN")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg := FromEnv()
	assert.Equal(t, EnvProduction, cfg.Env)
	assert.False(t, cfg.Debug)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "http://study.local:8080", cfg.ServerURL)
	assert.Equal(t, zerolog.WarnLevel, cfg.LogLevel)
	assert.Equal(t, "gemini", cfg.LLM.Provider)

	t.Setenv("VERSELY_ADDR", "127.0.0.1:9000")
	assert.Equal(t, "127.0.0.1:9000", FromEnv().Addr)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("VERSELY_PROMPTS=/tmp/prompts.yaml\n"), 0o644))

	// godotenv sets variables that t.Setenv cannot restore; clean up by hand.
	t.Cleanup(func() { os.Unsetenv("VERSELY_PROMPTS") })
	os.Unsetenv("VERSELY_PROMPTS")

	cfg := Load(path)
	assert.Equal(t, "/tmp/prompts.yaml", cfg.PromptsPath)
}

func TestNewLogger_ProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{Env: EnvProduction, LogLevel: zerolog.InfoLevel}

	logger := cfg.NewLogger(&buf)
	logger.Debug().Msg("hidden")
	logger.Info().Str("route", "/api/chat").Msg("hello")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"route":"/api/chat"`)
	assert.Contains(t, out, `"message":"hello"`)
}
