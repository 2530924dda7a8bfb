// Package quiz runs multiple-choice Bible quizzes: question generation on
// the server and the setup, slider and results wizard on the client.
package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Level is the quiz difficulty.
type Level string

const (
	LevelEasy   Level = "easy"
	LevelMedium Level = "medium"
	LevelHard   Level = "hard"
)

// Levels lists the difficulties in display order.
var Levels = []Level{LevelEasy, LevelMedium, LevelHard}

// NormalizeLevel lowercases s and maps anything unknown to medium.
func NormalizeLevel(s string) Level {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case LevelEasy, LevelMedium, LevelHard:
		return l
	}
	return LevelMedium
}

// QuestionID identifies a question within one quiz. The server sends
// integers; any JSON string or number is accepted.
type QuestionID string

// UnmarshalJSON accepts both `1` and `"1"`.
func (id *QuestionID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = QuestionID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("question id must be a string or number: %w", err)
	}
	*id = QuestionID(n.String())
	return nil
}

// MarshalJSON writes integer ids as numbers and anything else as a string.
func (id QuestionID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.Atoi(string(id)); err == nil {
		return []byte(strconv.Itoa(n)), nil
	}
	return json.Marshal(string(id))
}

// Question is one multiple-choice question. Options carry their key prefix,
// e.g. "B) Grace".
type Question struct {
	ID       QuestionID `json:"id"`
	Question string     `json:"question"`
	Options  []string   `json:"options"`
	Correct  string     `json:"correct"`
}

// CorrectKey is the normalized correct key, "A" when missing.
func (q Question) CorrectKey() string {
	k := strings.ToUpper(strings.TrimSpace(q.Correct))
	if k == "" {
		return "A"
	}
	return k
}

// AnswerText is the display text of the option with key, "No answer" for
// an empty key, or the key itself when no option carries it.
func (q Question) AnswerText(key string) string {
	if key == "" {
		return NoAnswerText
	}
	for _, o := range q.Options {
		if OptionKey(o) == key {
			return OptionText(o)
		}
	}
	return key
}

var (
	optionKeyRe    = regexp.MustCompile(`^([A-D])\)`)
	optionPrefixRe = regexp.MustCompile(`^[A-D]\)\s*`)
)

// OptionKey returns the leading capital A-D of an option written as
// "B) ...", or "" when the option has no such prefix.
func OptionKey(option string) string {
	m := optionKeyRe.FindStringSubmatch(option)
	if m == nil {
		return ""
	}
	return m[1]
}

// OptionText strips the key prefix from an option.
func OptionText(option string) string {
	return strings.TrimSpace(optionPrefixRe.ReplaceAllString(option, ""))
}
