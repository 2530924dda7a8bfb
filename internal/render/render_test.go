package render

import (
	"strings"
	"testing"

	"github.com/abhisek/versely/internal/reply"
)

func TestMarkdown_RendersAllowedTags(t *testing.T) {
	r := New()
	got := string(r.Markdown("**bold** and [link](https://example.com)"))
	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("missing strong: %s", got)
	}
	if !strings.Contains(got, `href="https://example.com"`) {
		t.Errorf("missing href: %s", got)
	}
}

func TestMarkdown_StripsDisallowedMarkup(t *testing.T) {
	r := New()
	got := string(r.Markdown("hello <img src=x onerror=alert(1)> <script>alert(1)</script>\n\n#### deep"))
	for _, bad := range []string{"<img", "onerror", "<script", "<h4"} {
		if strings.Contains(got, bad) {
			t.Errorf("output contains %q: %s", bad, got)
		}
	}
}

func TestMarkdown_DropsJavascriptLinks(t *testing.T) {
	r := New()
	got := string(r.Markdown("[x](javascript:alert(1))"))
	if strings.Contains(got, "javascript:") {
		t.Errorf("javascript URL survived: %s", got)
	}
}

func TestMarkdown_FallbackEscapes(t *testing.T) {
	var r Renderer
	got := string(r.Markdown("<b>hi</b> **there**"))
	want := "&lt;b&gt;hi&lt;/b&gt; **there**"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	var nilRenderer *Renderer
	if got := string(nilRenderer.Markdown("a < b")); got != "a &lt; b" {
		t.Fatalf("nil renderer: got %q", got)
	}
}

func TestText_NeverMarkdown(t *testing.T) {
	got := string(Text("**not bold** <i>"))
	if got != "**not bold** &lt;i&gt;" {
		t.Fatalf("got %q", got)
	}
}

func sections() []reply.Section {
	return []reply.Section{
		{Title: "Overview", Content: "Short summary."},
		{Title: "Grammar & wording", Content: "Key words."},
		{Title: "Practical application", Content: ""},
	}
}

func TestNewAccordion_FirstOpenOnly(t *testing.T) {
	a := NewAccordion("m1", "Intro", sections())
	for i, it := range a.Items {
		if it.Open != (i == 0) {
			t.Errorf("item %d open = %v", i, it.Open)
		}
	}
	if a.Expanded(0) != "true" || a.Expanded(1) != "false" {
		t.Errorf("unexpected aria state %s %s", a.Expanded(0), a.Expanded(1))
	}
}

func TestAccordion_ToggleIsIndependent(t *testing.T) {
	a := NewAccordion("", "", sections())

	if !a.Toggle(1) {
		t.Fatal("expected item 1 to open")
	}
	if !a.Items[0].Open {
		t.Fatal("opening item 1 must not close item 0")
	}
	if a.Toggle(0) {
		t.Fatal("expected item 0 to close")
	}
	if !a.Items[1].Open {
		t.Fatal("closing item 0 must not affect item 1")
	}
	if a.Toggle(42) {
		t.Fatal("out of range toggle should report closed")
	}
	if a.Expanded(-1) != "false" {
		t.Fatal("out of range should not be expanded")
	}
}

func TestRendererAccordion_HTML(t *testing.T) {
	r := New()
	a := NewAccordion("msg-1", "Hello **world**", sections())
	got := string(r.Accordion(a))

	checks := []string{
		`<div class="msg__intro msg__body--md"><p>Hello <strong>world</strong></p>`,
		`class="accordion__item is-open"`,
		`id="msg-1-acc-head-0" aria-expanded="true" aria-controls="msg-1-acc-body-0">Overview</button>`,
		`aria-expanded="false" aria-controls="msg-1-acc-body-1">Grammar &amp; wording</button>`,
		`aria-labelledby="msg-1-acc-head-1" hidden>`,
	}
	for _, c := range checks {
		if !strings.Contains(got, c) {
			t.Errorf("missing %q in:\n%s", c, got)
		}
	}
	if strings.Count(got, "is-open") != 1 {
		t.Errorf("expected exactly one open item:\n%s", got)
	}
}

func TestRendererAccordion_RerenderIsStable(t *testing.T) {
	r := New()
	a := NewAccordion("x", "", sections())
	first := r.Accordion(a)
	second := r.Accordion(a)
	if first != second {
		t.Fatal("rendering the same accordion twice must be identical")
	}
}

func TestRendererReply_FallsBackToMarkdown(t *testing.T) {
	r := New()
	got := string(r.Reply("m", "Just *text*."))
	if strings.Contains(got, "accordion") {
		t.Fatalf("unexpected accordion: %s", got)
	}
	if !strings.Contains(got, "<em>text</em>") {
		t.Fatalf("expected markdown: %s", got)
	}
}

func TestRendererReply_Sections(t *testing.T) {
	r := New()
	got := string(r.Reply("m", "Intro\n## A\nbody a\n## B\nbody b"))
	if strings.Count(got, `class="accordion__head"`) != 2 {
		t.Fatalf("expected two heads: %s", got)
	}
}

func TestFollowUps(t *testing.T) {
	if FollowUps(nil) != "" {
		t.Fatal("expected empty output for no questions")
	}
	got := string(FollowUps([]string{"Q1?", "<Q2>"}))
	if strings.Count(got, `class="followup-btn"`) != 2 {
		t.Fatalf("expected two buttons: %s", got)
	}
	if !strings.Contains(got, "&lt;Q2&gt;") {
		t.Fatalf("questions must be escaped: %s", got)
	}
	if strings.Count(got, "msg__followups") != 1 {
		t.Fatalf("expected one group: %s", got)
	}
}
