// Package markdown renders reply markdown for the terminal with glamour.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Renderer caches one glamour renderer per wrap width.
type Renderer struct {
	style string

	mu    sync.Mutex
	byW   map[int]*glamour.TermRenderer
	failW map[int]bool
}

// New returns a Renderer. An empty style picks one from the terminal
// background.
func New(style string) *Renderer {
	return &Renderer{
		style: style,
		byW:   make(map[int]*glamour.TermRenderer),
		failW: make(map[int]bool),
	}
}

// Render returns text styled for a terminal of the given wrap width. If
// glamour cannot be set up the text is returned unchanged.
func (r *Renderer) Render(text string, width int) string {
	if r == nil || strings.TrimSpace(text) == "" {
		return text
	}

	tr := r.termRenderer(width)
	if tr == nil {
		return text
	}
	out, err := tr.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

func (r *Renderer) termRenderer(width int) *glamour.TermRenderer {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tr, ok := r.byW[width]; ok {
		return tr
	}
	if r.failW[width] {
		return nil
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if r.style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(r.style))
	}

	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		r.failW[width] = true
		return nil
	}
	r.byW[width] = tr
	return tr
}
