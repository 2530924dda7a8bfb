package quiz

import "testing"

func sampleQuestions() []Question {
	opts := []string{"A) Law", "B) Grace", "C) Works", "D) Merit"}
	return []Question{
		{ID: "1", Question: "By what are we saved?", Options: opts, Correct: "B"},
		{ID: "2", Question: "Q2", Options: opts, Correct: "A"},
		{ID: "3", Question: "Q3", Options: opts, Correct: "C"},
		{ID: "4", Question: "Q4", Options: opts, Correct: "D"},
	}
}

func TestScore_ThreeOfFour(t *testing.T) {
	res := Score(sampleQuestions(), map[QuestionID]string{"1": "B", "2": "a", "3": "C", "4": "A"})

	if res.Correct != 3 || res.Total != 4 {
		t.Fatalf("score = %d/%d, want 3/4", res.Correct, res.Total)
	}
	if res.Percentage != 75 {
		t.Errorf("percentage = %d, want 75", res.Percentage)
	}
	if res.Band != BandGood {
		t.Errorf("band = %q, want good", res.Band)
	}
	if got := res.ScoreText(); got != "Score: 3 / 4" {
		t.Errorf("ScoreText = %q", got)
	}
	if got := res.DetailText(); got != "75% correct." {
		t.Errorf("DetailText = %q", got)
	}

	wrong := res.Review[3]
	if !wrong.Wrong || wrong.ChosenText != "Law" || wrong.CorrectText != "Merit" {
		t.Errorf("review[3] = %+v", wrong)
	}
	if right := res.Review[0]; right.Wrong || right.CorrectText != "" || right.ChosenText != "Grace" {
		t.Errorf("review[0] = %+v", right)
	}
}

func TestScore_Unanswered(t *testing.T) {
	res := Score(sampleQuestions()[:2], nil)

	if res.Correct != 0 || res.Percentage != 0 || res.Band != BandLow {
		t.Fatalf("result = %+v", res)
	}
	for _, item := range res.Review {
		if !item.Wrong || item.ChosenText != NoAnswerText {
			t.Errorf("review = %+v", item)
		}
	}
}

func TestScore_Empty(t *testing.T) {
	res := Score(nil, nil)
	if res.Total != 0 || res.Percentage != 0 {
		t.Errorf("result = %+v", res)
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		pct  int
		want Band
	}{
		{100, BandGood},
		{70, BandGood},
		{69, BandOK},
		{50, BandOK},
		{49, BandLow},
		{0, BandLow},
	}
	for _, tt := range tests {
		if got := BandFor(tt.pct); got != tt.want {
			t.Errorf("BandFor(%d) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestScore_Rounding(t *testing.T) {
	qs := sampleQuestions()[:3]
	res := Score(qs, map[QuestionID]string{"1": "B", "2": "A"})
	if res.Percentage != 67 {
		t.Errorf("2/3 = %d%%, want 67", res.Percentage)
	}
}
