package llm

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/abhisek/versely/internal/store"
)

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "versely.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	mock := NewMockProvider(
		MockResponse{Content: []byte("Grace is unmerited favour."), Usage: Usage{InputTokens: 12, OutputTokens: 7}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)

	var logs bytes.Buffer
	p := WithLogging(mock, ProviderGemini, s.EventRepo(), zerolog.New(&logs))
	ctx := WithPurpose(context.Background(), PurposeChat)

	if _, err := p.Generate(ctx, Request{System: "sys", Messages: UserPrompt("What is grace?")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, Request{Messages: UserPrompt("again")}); err == nil {
		t.Fatal("expected error")
	}

	events, err := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	failed, ok := events[0], events[1]
	if !ok.Success || ok.Provider != "gemini" || ok.Purpose != "chat" {
		t.Fatalf("unexpected success event: %+v", ok.LLMRequestEventData)
	}
	if ok.InputTokens != 12 || ok.ResponseBody != "Grace is unmerited favour." {
		t.Fatalf("usage or body not recorded: %+v", ok.LLMRequestEventData)
	}
	if !strings.Contains(ok.RequestBody, "[system]\nsys") || !strings.Contains(ok.RequestBody, "[user]\nWhat is grace?") {
		t.Fatalf("request body not serialized: %q", ok.RequestBody)
	}
	if failed.Success || !strings.Contains(failed.ErrorMessage, "down") {
		t.Fatalf("unexpected failure event: %+v", failed.LLMRequestEventData)
	}

	if !strings.Contains(logs.String(), "llm request failed") {
		t.Fatalf("failure not logged: %s", logs.String())
	}
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(MockText("ok")), ProviderMock, nil, zerolog.Nop())

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "ok" {
		t.Fatalf("unexpected text %q", resp.Text())
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected model id to delegate, got %q", p.ModelID())
	}
}
