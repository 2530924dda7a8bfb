package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-question",
		Description: "A single quiz question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string"},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 4,
				},
				"correct": map[string]any{"type": "string", "enum": []any{"A", "B", "C", "D"}},
			},
			"required": []any{"question", "options"},
		},
	}
}

const validQuestion = `{"question":"Who led Israel out of Egypt?","options":["A) Moses","B) Aaron","C) Joshua","D) Caleb"],"correct":"A"}`

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", validQuestion, false},
		{"optional field omitted", `{"question":"q","options":["a","b","c","d"]}`, false},
		{"missing required", `{"question":"q"}`, true},
		{"wrong type", `{"question":"q","options":"A) Moses"}`, true},
		{"too few options", `{"question":"q","options":["a","b"]}`, true},
		{"invalid enum", `{"question":"q","options":["a","b","c","d"],"correct":"E"}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invErr *ErrInvalidResponse
				if !errors.As(err, &invErr) {
					t.Fatalf("expected ErrInvalidResponse, got: %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything goes`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n[1,2]\n```\n", `[1,2]`},
		{"single line fence", "```json{\"a\":1}```", `{"a":1}`},
		{"surrounding space", "  \n```JSON\n{}\n```  ", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.in); got != tt.want {
				t.Fatalf("StripCodeFence() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFinishContent(t *testing.T) {
	// Free text is passed through untouched, fences included.
	text := "## Answer\n\n```go\nx\n```"
	got, err := finishContent(nil, text)
	if err != nil || string(got) != text {
		t.Fatalf("free text altered: %q, %v", got, err)
	}

	got, err = finishContent(testSchema(), "```json\n"+validQuestion+"\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != validQuestion {
		t.Fatalf("fence not stripped: %s", got)
	}

	if _, err := finishContent(testSchema(), "Sorry, I cannot help."); err == nil {
		t.Fatal("expected error for prose under a schema")
	}
}
