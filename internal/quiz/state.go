package quiz

import "fmt"

// State is the per-quiz answer state. Current always stays within the
// question list; Answers only holds ids of questions in the list.
type State struct {
	Questions []Question
	Answers   map[QuestionID]string
	Current   int
}

// NewState starts a quiz over questions at the first question.
func NewState(questions []Question) *State {
	return &State{Questions: questions, Answers: make(map[QuestionID]string)}
}

// Question returns the current question, or nil for an empty quiz.
func (s *State) Question() *Question {
	if s == nil || len(s.Questions) == 0 {
		return nil
	}
	return &s.Questions[s.Current]
}

// Go moves to index i, clamped to the question list.
func (s *State) Go(i int) {
	last := len(s.Questions) - 1
	if i > last {
		i = last
	}
	if i < 0 {
		i = 0
	}
	s.Current = i
}

// Prev moves back one question.
func (s *State) Prev() { s.Go(s.Current - 1) }

// Next moves forward one question.
func (s *State) Next() { s.Go(s.Current + 1) }

// Select records key as the answer to question id. Unknown ids are
// rejected.
func (s *State) Select(id QuestionID, key string) bool {
	for _, q := range s.Questions {
		if q.ID == id {
			s.Answers[id] = key
			return true
		}
	}
	return false
}

// Nav describes the slider controls for the current position.
type Nav struct {
	PrevHidden   bool
	NextDisabled bool
	SubmitShown  bool
	Progress     string
}

// Nav returns the control state for the current question.
func (s *State) Nav() Nav {
	n := len(s.Questions)
	last := s.Current >= n-1
	return Nav{
		PrevHidden:   s.Current <= 0,
		NextDisabled: last,
		SubmitShown:  last,
		Progress:     fmt.Sprintf("Question %d of %d", s.Current+1, n),
	}
}
