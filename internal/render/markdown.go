// Package render turns assistant replies into sanitized HTML fragments.
package render

import (
	"bytes"
	"html"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// AllowedTags is the sanitizer allow-list for rendered markdown.
var AllowedTags = []string{
	"p", "br", "strong", "em", "b", "i", "u", "code", "pre",
	"ul", "ol", "li", "a", "h1", "h2", "h3", "blockquote",
}

// AllowedAttrs are the only attributes that survive sanitizing.
var AllowedAttrs = []string{"href", "target", "rel"}

// Renderer converts markdown to sanitized HTML. The zero value has no
// markdown converter and renders every input as escaped plain text.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New returns a Renderer backed by goldmark and a bluemonday allow-list.
func New() *Renderer {
	return &Renderer{
		md:     goldmark.New(),
		policy: NewPolicy(),
	}
}

// NewPolicy builds the sanitizer policy for assistant markdown.
func NewPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowElements(AllowedTags...)
	p.AllowAttrs(AllowedAttrs...).Globally()
	return p
}

// Markdown renders text as sanitized HTML, or as escaped text when no
// markdown converter is available.
func (r *Renderer) Markdown(text string) template.HTML {
	if r == nil || r.md == nil {
		return Text(text)
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return Text(text)
	}
	out := buf.Bytes()
	if r.policy != nil {
		out = r.policy.SanitizeBytes(out)
	}
	return template.HTML(out)
}

// Text escapes text for literal display. User messages always go through
// here, never through Markdown.
func Text(text string) template.HTML {
	return template.HTML(html.EscapeString(text))
}
