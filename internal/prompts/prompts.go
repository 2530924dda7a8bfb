// Package prompts holds the system prompts and quiz wording sent to the LLM.
// A default set is embedded; a YAML file with the same shape may replace
// any part of it.
package prompts

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultYAML []byte

// Config is the full prompt document.
type Config struct {
	Chat ChatConfig `yaml:"chat"`
	Quiz QuizConfig `yaml:"quiz"`
}

// LLMSettings tunes a single kind of request.
type LLMSettings struct {
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// ChatConfig configures study-question replies.
type ChatConfig struct {
	LLM           LLMSettings `yaml:"llm"`
	BasePrompt    string      `yaml:"base_prompt"`
	NotConfigured string      `yaml:"not_configured"`
}

// QuizConfig configures quiz generation.
type QuizConfig struct {
	LLM                LLMSettings       `yaml:"llm"`
	QuestionCount      int               `yaml:"question_count"`
	BasePrompt         string            `yaml:"base_prompt"`
	UserPromptTemplate string            `yaml:"user_prompt_template"`
	TopicFocus         string            `yaml:"topic_focus"`
	TopicDefault       string            `yaml:"topic_default"`
	Levels             map[string]string `yaml:"levels"`
}

// Default returns the embedded prompt set.
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("prompts: embedded prompts.yaml is invalid: %v", err))
	}
	return &cfg
}

// Load returns the embedded defaults overlaid with the YAML file at path.
// Keys missing from the file keep their default values. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file %s: %w", path, err)
	}
	return cfg, nil
}

// LevelDescription returns the wording for level, falling back to medium.
func (q QuizConfig) LevelDescription(level string) string {
	if d, ok := q.Levels[level]; ok {
		return d
	}
	return q.Levels["medium"]
}

// UserPrompt fills the quiz user prompt for a level and optional topic.
func (q QuizConfig) UserPrompt(level, topic string) string {
	topicPart := q.TopicDefault
	if topic != "" {
		topicPart = strings.ReplaceAll(q.TopicFocus, "{topic}", topic)
	}

	prompt := q.UserPromptTemplate
	prompt = strings.ReplaceAll(prompt, "{count}", strconv.Itoa(q.QuestionCount))
	prompt = strings.ReplaceAll(prompt, "{level}", q.LevelDescription(level))
	prompt = strings.ReplaceAll(prompt, "{topic}", topicPart)
	return prompt
}
