package reply

import (
	"reflect"
	"testing"
)

func TestParseSections_NoHeadings(t *testing.T) {
	intro, sections := ParseSections("  Just a plain answer.\nWith two lines.  \n")
	if intro != "Just a plain answer.\nWith two lines." {
		t.Fatalf("intro = %q", intro)
	}
	if len(sections) != 0 {
		t.Fatalf("expected no sections, got %d", len(sections))
	}
}

func TestParseSections_IntroAndSections(t *testing.T) {
	intro, sections := ParseSections("Intro\n## A\nbody a\n## B\nbody b")
	if intro != "Intro" {
		t.Fatalf("intro = %q, want %q", intro, "Intro")
	}
	want := []Section{
		{Title: "A", Content: "body a"},
		{Title: "B", Content: "body b"},
	}
	if !reflect.DeepEqual(sections, want) {
		t.Fatalf("sections = %+v, want %+v", sections, want)
	}
}

func TestParseSections_NoIntro(t *testing.T) {
	intro, sections := ParseSections("## Overview\nGod is sovereign.\n\n## Practical application\n- Pray\n- Read")
	if intro != "" {
		t.Fatalf("expected empty intro, got %q", intro)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[1].Content != "- Pray\n- Read" {
		t.Errorf("content = %q", sections[1].Content)
	}
}

func TestParseSections_DropsEmptyTitle(t *testing.T) {
	_, sections := ParseSections("Intro\n##    \norphan\n## Kept\nyes")
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d: %+v", len(sections), sections)
	}
	if sections[0].Title != "Kept" {
		t.Errorf("title = %q", sections[0].Title)
	}
}

func TestParseSections_HeadingWithoutBody(t *testing.T) {
	_, sections := ParseSections("## Only a title")
	if len(sections) != 1 || sections[0].Title != "Only a title" || sections[0].Content != "" {
		t.Fatalf("unexpected sections: %+v", sections)
	}
}

func TestParseSections_DeeperHeadingsStayInContent(t *testing.T) {
	_, sections := ParseSections("## A\n### sub\ntext")
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Content != "### sub\ntext" {
		t.Errorf("content = %q", sections[0].Content)
	}
}

func TestParseSections_Empty(t *testing.T) {
	intro, sections := ParseSections("   ")
	if intro != "" || sections != nil {
		t.Fatalf("expected zero values, got %q %v", intro, sections)
	}
}

func TestParseFollowUps(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		body      string
		followUps []string
	}{
		{
			name:      "marker with dashes",
			text:      "Answer text.\n\nSuggested follow-up questions:\n- Q1?\n- Q2?",
			body:      "Answer text.",
			followUps: []string{"Q1?", "Q2?"},
		},
		{
			name:      "rule before marker",
			text:      "Answer.\n---\nSuggested follow-up questions:\n- What about election?\n- How does context help?\n",
			body:      "Answer.",
			followUps: []string{"What about election?", "How does context help?"},
		},
		{
			name:      "numbered and bullets",
			text:      "Body\nSuggested follow-up questions\n1. First\n2.  Second \n• Third",
			body:      "Body",
			followUps: []string{"First", "Second", "Third"},
		},
		{
			name:      "stops at blank line after items",
			text:      "Body\nSuggested follow-up questions:\n\n- One\n\n- Not collected",
			body:      "Body",
			followUps: []string{"One"},
		},
		{
			name:      "skips non-list lines",
			text:      "Body\nSuggested follow-up questions:\nPick one:\n- One",
			body:      "Body",
			followUps: []string{"One"},
		},
		{
			name: "no marker",
			text: "  Plain reply\n\n",
			body: "Plain reply",
		},
		{
			name: "rule without marker still ends body",
			text: "Top\n---\nBottom",
			body: "Top",
		},
		{
			name: "empty",
			text: "",
			body: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFollowUps(tt.text)
			if got.Body != tt.body {
				t.Errorf("body = %q, want %q", got.Body, tt.body)
			}
			if len(got.FollowUps) != len(tt.followUps) {
				t.Fatalf("followUps = %q, want %q", got.FollowUps, tt.followUps)
			}
			for i := range tt.followUps {
				if got.FollowUps[i] != tt.followUps[i] {
					t.Errorf("followUps[%d] = %q, want %q", i, got.FollowUps[i], tt.followUps[i])
				}
			}
		})
	}
}

func TestParseFollowUps_MarkerLineInsideBold(t *testing.T) {
	got := ParseFollowUps("Body text\n**Suggested follow-up questions:**\n- A?")
	if got.Body != "Body text" {
		t.Errorf("body = %q", got.Body)
	}
	if len(got.FollowUps) != 1 || got.FollowUps[0] != "A?" {
		t.Errorf("followUps = %q", got.FollowUps)
	}
}
