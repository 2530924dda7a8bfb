package server

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/abhisek/versely/internal/chat"
	"github.com/abhisek/versely/internal/quiz"
	"github.com/abhisek/versely/internal/render"
	"github.com/abhisek/versely/internal/reply"
)

const messageRequiredText = "Message is required"

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index.gohtml", map[string]any{"Title": "Bible Study Chat"})
}

func (s *Server) quizPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "quiz.gohtml", map[string]any{
		"Title":  "Bible Quiz",
		"Levels": quiz.Levels,
	})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"llm_available": s.chat.Configured(),
	})
}

// handleChat handles POST /api/chat.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chat.Request
	// A malformed body is treated like an empty message.
	_ = json.NewDecoder(r.Body).Decode(&req)

	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeJSON(w, http.StatusBadRequest, chat.ErrorResponse{Error: messageRequiredText})
		return
	}

	id := strings.TrimSpace(req.MessageID)
	if id == "" {
		id = s.newID()
	}

	text := s.chat.Reply(r.Context(), id, message)
	parsed := reply.ParseFollowUps(text)

	var html template.HTML
	if s.renderer != nil {
		html = s.renderer.Reply(id, parsed.Body)
	} else {
		html = render.Text(parsed.Body)
	}

	writeJSON(w, http.StatusOK, chat.Response{
		Reply:     text,
		MessageID: id,
		HTML:      string(html),
		FollowUps: parsed.FollowUps,
	})
}

// handleQuizGenerate handles POST /quiz/generate.
func (s *Server) handleQuizGenerate(w http.ResponseWriter, r *http.Request) {
	var req quiz.GenerateRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	topic := ""
	if req.Topic != nil {
		topic = *req.Topic
	}

	questions, err := s.quiz.Generate(r.Context(), req.Level, topic)
	switch {
	case errors.Is(err, quiz.ErrQuizNotConfigured):
		writeJSON(w, http.StatusServiceUnavailable, quiz.ErrorResponse{Error: quiz.NotConfiguredText})
		return
	case errors.Is(err, quiz.ErrUnparseable):
		writeJSON(w, http.StatusBadGateway, quiz.ErrorResponse{Error: quiz.UnparseableText})
		return
	case err != nil:
		writeJSON(w, http.StatusBadGateway, quiz.ErrorResponse{Error: err.Error()})
		return
	}

	if questions == nil {
		questions = []quiz.Question{}
	}
	writeJSON(w, http.StatusOK, quiz.GenerateResponse{Questions: questions})
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.pages.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error().Err(err).Str("template", name).Msg("render page")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
