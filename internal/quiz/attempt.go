package quiz

import "github.com/abhisek/versely/internal/store"

// Attempt describes the submitted quiz for the attempt history. It is
// false until answers have been submitted.
func (c *Controller) Attempt() (store.QuizAttemptData, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil || c.state == nil {
		return store.QuizAttemptData{}, false
	}

	answers := make(map[string]string, len(c.state.Answers))
	for id, key := range c.state.Answers {
		answers[string(id)] = key
	}
	return store.QuizAttemptData{
		Level:      string(c.level),
		Topic:      c.topic,
		Total:      c.result.Total,
		Correct:    c.result.Correct,
		Percentage: c.result.Percentage,
		Band:       string(c.result.Band),
		Answers:    answers,
	}, true
}
