package quiz

import (
	"fmt"
	"math"
	"strings"
)

// NoAnswerText is shown in the review for unanswered questions.
const NoAnswerText = "No answer"

// Band classifies a percentage score.
type Band string

const (
	BandGood Band = "good"
	BandOK   Band = "ok"
	BandLow  Band = "low"
)

// BandFor returns good for 70 and above, ok for 50 and above, low otherwise.
func BandFor(percentage int) Band {
	switch {
	case percentage >= 70:
		return BandGood
	case percentage >= 50:
		return BandOK
	}
	return BandLow
}

// ReviewItem explains one question after submission.
type ReviewItem struct {
	QuestionID QuestionID
	Question   string
	ChosenKey  string
	ChosenText string
	Wrong      bool
	// CorrectText is only set for wrong answers.
	CorrectText string
}

// Result is a scored quiz.
type Result struct {
	Correct    int
	Total      int
	Percentage int
	Band       Band
	Review     []ReviewItem
}

// ScoreText is the headline, e.g. "Score: 3 / 4".
func (r Result) ScoreText() string {
	return fmt.Sprintf("Score: %d / %d", r.Correct, r.Total)
}

// DetailText is the percentage line, e.g. "75% correct.".
func (r Result) DetailText() string {
	return fmt.Sprintf("%d%% correct.", r.Percentage)
}

// Score grades answers against questions. Answer keys are compared in
// upper case.
func Score(questions []Question, answers map[QuestionID]string) Result {
	res := Result{Total: len(questions), Review: make([]ReviewItem, 0, len(questions))}

	for _, q := range questions {
		chosen := strings.ToUpper(strings.TrimSpace(answers[q.ID]))
		correct := q.CorrectKey()
		right := chosen != "" && chosen == correct
		if right {
			res.Correct++
		}

		item := ReviewItem{
			QuestionID: q.ID,
			Question:   q.Question,
			ChosenKey:  chosen,
			ChosenText: q.AnswerText(chosen),
			Wrong:      !right,
		}
		if !right {
			item.CorrectText = q.AnswerText(correct)
		}
		res.Review = append(res.Review, item)
	}

	if res.Total > 0 {
		res.Percentage = int(math.Round(100 * float64(res.Correct) / float64(res.Total)))
	}
	res.Band = BandFor(res.Percentage)
	return res
}
