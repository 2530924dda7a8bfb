package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/versely/internal/quiz"
	"github.com/abhisek/versely/internal/ui/theme"
)

// OptionChosenMsg reports that an option key was picked.
type OptionChosenMsg struct {
	Key string
}

// OptionList is a multiple-choice selector. Options carry their own key
// prefix ("B) Grace"); Chosen is the key of the picked option.
type OptionList struct {
	Options []string
	Cursor  int
	Chosen  string
}

// NewOptionList creates a selector with the cursor on the chosen option,
// or on the first one.
func NewOptionList(options []string, chosen string) OptionList {
	o := OptionList{Options: options, Chosen: chosen}
	for i, opt := range options {
		if chosen != "" && quiz.OptionKey(opt) == chosen {
			o.Cursor = i
		}
	}
	return o
}

// Update moves the cursor and picks options. Letters a-d pick directly.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
	case "enter", "space", " ":
		if o.Cursor < len(o.Options) {
			return o.pick(o.Cursor)
		}
	case "a", "b", "c", "d":
		want := strings.ToUpper(key)
		for i, opt := range o.Options {
			if quiz.OptionKey(opt) == want {
				o.Cursor = i
				return o.pick(i)
			}
		}
	}
	return o, nil
}

func (o OptionList) pick(i int) (OptionList, tea.Cmd) {
	key := quiz.OptionKey(o.Options[i])
	if key == "" {
		// Unprefixed options are addressed by position.
		key = string(rune('A' + i))
	}
	o.Chosen = key
	return o, func() tea.Msg { return OptionChosenMsg{Key: key} }
}

// View renders the options, marking the cursor and the chosen one.
func (o OptionList) View() string {
	var b strings.Builder
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Cursor {
			prefix = "▸ "
		}
		mark := "○ "
		chosen := o.Chosen != "" && quiz.OptionKey(opt) == o.Chosen
		if chosen {
			mark = "● "
		}

		line := prefix + mark + opt
		switch {
		case chosen:
			b.WriteString(theme.Chosen.Render(line))
		case i == o.Cursor:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
