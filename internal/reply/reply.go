// Package reply parses the loose markdown conventions used by assistant
// replies: level-2 headed sections and a trailing list of suggested
// follow-up questions.
package reply

import (
	"regexp"
	"strings"
)

// FollowUpMarker introduces the trailing block of suggested questions.
const FollowUpMarker = "Suggested follow-up questions"

const sectionPrefix = "## "

var (
	bulletItem   = regexp.MustCompile(`^\s*[-•]\s+(.+)$`)
	numberedItem = regexp.MustCompile(`^\s*\d+\.\s+(.+)$`)
)

// Section is one titled block of an assistant reply.
type Section struct {
	Title   string
	Content string
}

// Reply is an assistant reply with the follow-up block split off.
type Reply struct {
	Body      string
	FollowUps []string
}

// ParseSections splits text into an intro and the sections introduced by
// lines starting with "## ". Sections with an empty title are dropped. When
// no such line exists the whole trimmed text is returned as the intro.
func ParseSections(text string) (string, []Section) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	var (
		intro    strings.Builder
		sections []Section
		current  *blockBuilder
	)

	flush := func() {
		if current == nil {
			return
		}
		if s, ok := current.section(); ok {
			sections = append(sections, s)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, sectionPrefix) {
			flush()
			current = &blockBuilder{title: line}
			continue
		}
		if current != nil {
			current.body = append(current.body, line)
			continue
		}
		intro.WriteString(line)
		intro.WriteByte('\n')
	}
	flush()

	return strings.TrimSpace(intro.String()), sections
}

type blockBuilder struct {
	title string
	body  []string
}

func (b *blockBuilder) section() (Section, bool) {
	title := strings.TrimSpace(strings.TrimPrefix(b.title, "##"))
	if title == "" {
		return Section{}, false
	}
	return Section{
		Title:   title,
		Content: strings.TrimSpace(strings.Join(b.body, "\n")),
	}, true
}

// ParseFollowUps separates the suggested follow-up questions from the
// body of a reply. The body ends at the first line that is exactly "---" or
// the first line containing FollowUpMarker, whichever comes first. Without
// the marker the whole trimmed text is the body.
func ParseFollowUps(text string) Reply {
	lines := strings.Split(text, "\n")

	markerLine, ruleLine := -1, -1
	for i, line := range lines {
		if ruleLine < 0 && strings.TrimRight(line, "\r") == "---" {
			ruleLine = i
		}
		if markerLine < 0 && strings.Contains(line, FollowUpMarker) {
			markerLine = i
		}
	}

	end := len(lines)
	if ruleLine >= 0 && ruleLine < end {
		end = ruleLine
	}
	if markerLine >= 0 && markerLine < end {
		end = markerLine
	}

	out := Reply{Body: strings.TrimSpace(strings.Join(lines[:end], "\n"))}
	if markerLine < 0 {
		return out
	}

	for _, line := range lines[markerLine+1:] {
		line = strings.TrimRight(line, "\r")
		if q, ok := listItem(line); ok {
			out.FollowUps = append(out.FollowUps, q)
			continue
		}
		if len(out.FollowUps) > 0 && strings.TrimSpace(line) == "" {
			break
		}
	}
	return out
}

func listItem(line string) (string, bool) {
	m := bulletItem.FindStringSubmatch(line)
	if m == nil {
		m = numberedItem.FindStringSubmatch(line)
	}
	if m == nil {
		return "", false
	}
	q := strings.TrimSpace(m[1])
	return q, q != ""
}
