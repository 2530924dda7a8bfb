package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/versely/internal/chat"
	"github.com/abhisek/versely/internal/llm"
	"github.com/abhisek/versely/internal/prompts"
	"github.com/abhisek/versely/internal/quiz"
	"github.com/abhisek/versely/internal/render"
)

const sectionedReply = "Grace is unmerited favor.\n\n## Scripture\nEph 2:8-9\n\n## Doctrine\nSola gratia.\n\n---\nSuggested follow-up questions:\n- What is faith?\n- What are works?"

func newTestServer(t *testing.T, chatProvider, quizProvider llm.Provider) http.Handler {
	t.Helper()
	cfg := prompts.Default()
	srv, err := New(
		chat.NewService(chatProvider, cfg.Chat, nil, zerolog.Nop()),
		quiz.NewGenerator(quizProvider, cfg.Quiz, zerolog.Nop()),
		render.New(),
		zerolog.Nop(),
	)
	require.NoError(t, err)
	return srv.Handler()
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestChat_EmptyMessage(t *testing.T) {
	h := newTestServer(t, nil, nil)

	for _, body := range []string{`{"message":"   "}`, `{}`, `not json`} {
		rec := post(t, h, "/api/chat", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.JSONEq(t, `{"error":"Message is required"}`, rec.Body.String(), body)
	}
}

func TestChat_Reply(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText(sectionedReply))
	h := newTestServer(t, mock, nil)

	rec := post(t, h, "/api/chat", `{"message":"What is grace?","message_id":"msg-7"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chat.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, sectionedReply, resp.Reply)
	assert.Equal(t, "msg-7", resp.MessageID)
	assert.Equal(t, []string{"What is faith?", "What are works?"}, resp.FollowUps)
	assert.Contains(t, resp.HTML, `id="msg-7-acc-head-0"`)
	assert.NotContains(t, resp.HTML, "follow-up")

	assert.Equal(t, "What is grace?", mock.LastCall().Messages[0].Content)
}

func TestChat_GeneratesMessageID(t *testing.T) {
	h := newTestServer(t, llm.NewMockProvider(llm.MockText("Amen.")), nil)

	rec := post(t, h, "/api/chat", `{"message":"hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chat.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.MessageID, "msg-"))
	assert.Contains(t, resp.HTML, "Amen.")
	assert.Empty(t, resp.FollowUps)
}

func TestChat_NotConfigured(t *testing.T) {
	h := newTestServer(t, nil, nil)

	rec := post(t, h, "/api/chat", `{"message":"hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chat.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, prompts.Default().Chat.NotConfigured, resp.Reply)
}

const quizJSON = `{"questions":[{"question":"Who wrote Romans?","options":["A) Paul","B) Peter","C) John","D) James"],"correct":"a"}]}`

func TestQuizGenerate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(quizJSON)})
	h := newTestServer(t, nil, mock)

	rec := post(t, h, "/quiz/generate", `{"level":"hard","topic":"Romans"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"questions":[{"id":1,"question":"Who wrote Romans?","options":["A) Paul","B) Peter","C) John","D) James"],"correct":"A"}]}`, rec.Body.String())

	assert.Contains(t, mock.LastCall().Messages[0].Content, "Focus on: Romans.")
}

func TestQuizGenerate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		provider llm.Provider
		status   int
		message  string
	}{
		{"not configured", nil, http.StatusServiceUnavailable, quiz.NotConfiguredText},
		{"unparseable", llm.NewMockProvider(llm.MockText("sorry, no quiz today")), http.StatusBadGateway, quiz.UnparseableText},
		{"provider error", llm.NewMockProvider(llm.MockResponse{Err: errors.New("quota exhausted")}), http.StatusBadGateway, "quota exhausted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, nil, tt.provider)
			rec := post(t, h, "/quiz/generate", `{"level":"easy","topic":null}`)
			assert.Equal(t, tt.status, rec.Code)

			var resp quiz.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.message, resp.Error)
		})
	}
}

func TestQuizGenerate_EmptyList(t *testing.T) {
	h := newTestServer(t, nil, llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"questions":[]}`)}))

	rec := post(t, h, "/quiz/generate", `{"level":"easy"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"questions":[]}`, rec.Body.String())
}

func TestPages(t *testing.T) {
	h := newTestServer(t, nil, nil)

	for path, want := range map[string]string{"/": "chat-form", "/quiz/": "quiz-setup"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), want, path)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/quiz", nil))
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t, nil, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","llm_available":false}`, rec.Body.String())
}
