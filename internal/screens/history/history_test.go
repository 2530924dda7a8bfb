package history

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/versely/internal/store"
)

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "versely.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func loaded(t *testing.T, s *HistoryScreen) *HistoryScreen {
	t.Helper()
	next, _ := s.Update(s.Init()())
	return next.(*HistoryScreen)
}

func TestHistoryListsTurnsAndAttempts(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	require.NoError(t, st.ChatRepo().AppendTurn(ctx, store.ChatTurnData{
		MessageID: "msg-1", UserText: "What is justification?", Reply: "Declared righteous by faith.", Success: true,
	}))
	require.NoError(t, st.QuizRepo().AppendAttempt(ctx, store.QuizAttemptData{
		Level: "hard", Topic: "Romans", Total: 2, Correct: 1, Percentage: 50, Band: "ok",
		Answers: map[string]string{"2": "C", "1": "A"},
	}))

	s := loaded(t, New(st.ChatRepo(), st.QuizRepo()))

	view := s.View(100, 30)
	assert.Contains(t, view, "What is justification?")
	assert.NotContains(t, view, "Declared righteous")

	s.Update(key(tea.KeyEnter))
	assert.Contains(t, s.View(100, 30), "Declared righteous by faith.")

	s.Update(key(tea.KeyTab))
	view = s.View(100, 30)
	assert.Contains(t, view, "Romans")
	assert.Contains(t, view, "1/2")
	assert.Contains(t, view, "50%")

	s.Update(key(tea.KeyEnter))
	assert.Contains(t, s.View(100, 30), "1:A  2:C")
}

func TestHistoryEmpty(t *testing.T) {
	s := loaded(t, New(nil, nil))

	assert.Contains(t, s.View(80, 24), "No questions asked yet.")
	s.Update(key(tea.KeyTab))
	assert.Contains(t, s.View(80, 24), "No quizzes taken yet.")
}

func TestHistoryLoadError(t *testing.T) {
	s := New(nil, nil)
	s.Update(historyLoadedMsg{Err: errors.New("database is locked")})
	assert.True(t, strings.Contains(s.View(80, 24), "database is locked"))
}

func TestHistoryNavigationClamps(t *testing.T) {
	s := New(nil, nil)
	s.Update(historyLoadedMsg{Turns: []store.ChatTurnRecord{{ID: 1}, {ID: 2}}})

	s.Update(key(tea.KeyUp))
	assert.Equal(t, 0, s.selected)
	s.Update(key(tea.KeyDown))
	s.Update(key(tea.KeyDown))
	assert.Equal(t, 1, s.selected)
}

func TestAnswersLine(t *testing.T) {
	assert.Equal(t, "No answers recorded", answersLine(nil))
	assert.Equal(t, "1:B  3:D", answersLine(map[string]string{"3": "D", "1": "B"}))
}
