package render

import (
	"bytes"
	"html/template"
	"strconv"

	"github.com/abhisek/versely/internal/reply"
)

// AccordionItem is one collapsible section.
type AccordionItem struct {
	Title   string
	Content string
	Open    bool
}

// Accordion is an intro followed by independently collapsible sections.
// Exactly the first item starts open; toggling one item never touches the
// others.
type Accordion struct {
	// ID prefixes element ids so several accordions can share a page.
	ID    string
	Intro string
	Items []AccordionItem
}

// NewAccordion builds a fresh accordion from parsed sections.
func NewAccordion(id, intro string, sections []reply.Section) *Accordion {
	items := make([]AccordionItem, len(sections))
	for i, s := range sections {
		items[i] = AccordionItem{Title: s.Title, Content: s.Content, Open: i == 0}
	}
	return &Accordion{ID: id, Intro: intro, Items: items}
}

// Toggle flips item i and returns its new state. Out of range is a no-op.
func (a *Accordion) Toggle(i int) bool {
	if i < 0 || i >= len(a.Items) {
		return false
	}
	a.Items[i].Open = !a.Items[i].Open
	return a.Items[i].Open
}

// Expanded returns the aria-expanded value for item i.
func (a *Accordion) Expanded(i int) string {
	if i < 0 || i >= len(a.Items) {
		return "false"
	}
	return strconv.FormatBool(a.Items[i].Open)
}

var accordionTmpl = template.Must(template.New("accordion").Parse(
	`<div class="msg__body-inner">` +
		`{{if .Intro}}<div class="msg__intro msg__body--md">{{.Intro}}</div>{{end}}` +
		`<div class="accordion">` +
		`{{range .Items}}<div class="accordion__item{{if .Open}} is-open{{end}}">` +
		`<button type="button" class="accordion__head" id="{{.HeadID}}" aria-expanded="{{.Open}}" aria-controls="{{.BodyID}}">{{.Title}}</button>` +
		`<div id="{{.BodyID}}" class="accordion__body" role="region" aria-labelledby="{{.HeadID}}"{{if not .Open}} hidden{{end}}>{{.Body}}</div>` +
		`</div>{{end}}` +
		`</div></div>`,
))

type accordionView struct {
	Intro template.HTML
	Items []accordionItemView
}

type accordionItemView struct {
	Title  string
	Open   bool
	HeadID string
	BodyID string
	Body   template.HTML
}

// Accordion renders a as HTML. Section bodies and the intro go through
// Markdown; titles are escaped.
func (r *Renderer) Accordion(a *Accordion) template.HTML {
	if a == nil || len(a.Items) == 0 {
		return ""
	}

	prefix := ""
	if a.ID != "" {
		prefix = a.ID + "-"
	}

	view := accordionView{Items: make([]accordionItemView, len(a.Items))}
	if a.Intro != "" {
		view.Intro = r.Markdown(a.Intro)
	}
	for i, it := range a.Items {
		n := strconv.Itoa(i)
		v := accordionItemView{
			Title:  it.Title,
			Open:   it.Open,
			HeadID: prefix + "acc-head-" + n,
			BodyID: prefix + "acc-body-" + n,
		}
		if it.Content != "" {
			v.Body = r.Markdown(it.Content)
		}
		view.Items[i] = v
	}

	var buf bytes.Buffer
	if err := accordionTmpl.Execute(&buf, view); err != nil {
		return Text(a.Intro)
	}
	return template.HTML(buf.String())
}

// Reply renders an assistant body: an accordion when it has "## " sections,
// plain markdown otherwise.
func (r *Renderer) Reply(id, body string) template.HTML {
	intro, sections := reply.ParseSections(body)
	if len(sections) == 0 {
		return r.Markdown(body)
	}
	return r.Accordion(NewAccordion(id, intro, sections))
}

var followUpsTmpl = template.Must(template.New("followups").Parse(
	`<div class="msg__followups">{{range .}}<button type="button" class="followup-btn">{{.}}</button>{{end}}</div>`,
))

// FollowUps renders one button per question inside a single group.
// No questions renders nothing.
func FollowUps(questions []string) template.HTML {
	if len(questions) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := followUpsTmpl.Execute(&buf, questions); err != nil {
		return ""
	}
	return template.HTML(buf.String())
}
