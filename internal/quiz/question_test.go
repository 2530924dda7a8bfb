package quiz

import (
	"encoding/json"
	"testing"
)

func TestOptionKeyAndText(t *testing.T) {
	tests := []struct {
		option string
		key    string
		text   string
	}{
		{"B) Grace", "B", "Grace"},
		{"A)Faith", "A", "Faith"},
		{"D)   Paul  ", "D", "Paul"},
		{"b) lower", "", "b) lower"},
		{"E) Extra", "", "E) Extra"},
		{"(A) Parens", "", "(A) Parens"},
		{"Grace", "", "Grace"},
	}
	for _, tt := range tests {
		if got := OptionKey(tt.option); got != tt.key {
			t.Errorf("OptionKey(%q) = %q, want %q", tt.option, got, tt.key)
		}
		if got := OptionText(tt.option); got != tt.text {
			t.Errorf("OptionText(%q) = %q, want %q", tt.option, got, tt.text)
		}
	}
}

func TestNormalizeLevel(t *testing.T) {
	tests := map[string]Level{
		"easy":    LevelEasy,
		" HARD ":  LevelHard,
		"Medium":  LevelMedium,
		"":        LevelMedium,
		"extreme": LevelMedium,
	}
	for in, want := range tests {
		if got := NormalizeLevel(in); got != want {
			t.Errorf("NormalizeLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestQuestionID_JSON(t *testing.T) {
	var qs []Question
	data := `[{"id":1,"question":"a","options":[],"correct":"A"},{"id":"x7","question":"b","options":[],"correct":"B"}]`
	if err := json.Unmarshal([]byte(data), &qs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if qs[0].ID != "1" || qs[1].ID != "x7" {
		t.Fatalf("ids = %q, %q", qs[0].ID, qs[1].ID)
	}

	out, err := json.Marshal(qs[0].ID)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "1" {
		t.Errorf("numeric id marshaled as %s", out)
	}
	out, _ = json.Marshal(qs[1].ID)
	if string(out) != `"x7"` {
		t.Errorf("string id marshaled as %s", out)
	}

	var bad Question
	if err := json.Unmarshal([]byte(`{"id":true}`), &bad); err == nil {
		t.Error("expected error for boolean id")
	}
}

func TestAnswerText(t *testing.T) {
	q := Question{Options: []string{"A) Law", "B) Grace", "C) Works", "D) Merit"}, Correct: "b"}

	if got := q.CorrectKey(); got != "B" {
		t.Errorf("CorrectKey = %q", got)
	}
	if got := q.AnswerText("B"); got != "Grace" {
		t.Errorf("AnswerText(B) = %q", got)
	}
	if got := q.AnswerText(""); got != NoAnswerText {
		t.Errorf("AnswerText(\"\") = %q", got)
	}
	if got := q.AnswerText("Z"); got != "Z" {
		t.Errorf("AnswerText(Z) = %q", got)
	}
	if got := (Question{}).CorrectKey(); got != "A" {
		t.Errorf("empty CorrectKey = %q", got)
	}
}
