package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nsharma/lingua/internal/profile"
	"github.com/nsharma/lingua/internal/ui/theme"
)

// SelectList is a single-choice selector over a catalog of options.
// Exactly one value is chosen; moving the cursor does not choose.
type SelectList struct {
	Options []profile.Option
	Cursor  int
	Chosen  string
}

// NewSelectList creates a selector, positioning the cursor on the
// currently chosen value when present.
func NewSelectList(options []profile.Option, chosen string) SelectList {
	s := SelectList{Options: options, Chosen: chosen}
	for i, opt := range options {
		if opt.Value == chosen {
			s.Cursor = i
			break
		}
	}
	return s
}

// Update handles keyboard navigation and selection.
func (s SelectList) Update(msg tea.Msg) (SelectList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.Cursor > 0 {
			s.Cursor--
		}
	case "down", "j":
		if s.Cursor < len(s.Options)-1 {
			s.Cursor++
		}
	case "enter", "space":
		s.Chosen = s.Options[s.Cursor].Value
	}

	return s, nil
}

// View renders the list.
func (s SelectList) View() string {
	var out string
	for i, opt := range s.Options {
		marker := "( ) "
		if opt.Value == s.Chosen {
			marker = "(•) "
		}

		line := marker + opt.Label
		if opt.Desc != "" {
			line += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + opt.Desc)
		}

		if i == s.Cursor {
			out += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ ") +
				lipgloss.NewStyle().Foreground(theme.Primary).Render(line) + "\n"
		} else {
			out += "  " + lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return out
}
