package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nsharma/lingua/internal/profile"
	"github.com/nsharma/lingua/internal/ui/theme"
)

// MultiSelect is a toggle-set selector. Any number of options may be
// chosen, including none.
type MultiSelect struct {
	Options []profile.Option
	Cursor  int
	Chosen  []string
}

// NewMultiSelect creates a selector with the given values pre-chosen.
func NewMultiSelect(options []profile.Option, chosen []string) MultiSelect {
	return MultiSelect{
		Options: options,
		Chosen:  append([]string(nil), chosen...),
	}
}

// Update handles keyboard navigation and toggling.
func (m MultiSelect) Update(msg tea.Msg) (MultiSelect, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "space", "enter":
		m.Chosen = profile.Toggle(m.Chosen, m.Options[m.Cursor].Value)
	}

	return m, nil
}

// Has reports whether the given value is currently chosen.
func (m MultiSelect) Has(value string) bool {
	return profile.Contains(m.Chosen, value)
}

// View renders the list with [x] marks for chosen options.
func (m MultiSelect) View() string {
	var out string
	for i, opt := range m.Options {
		mark := "[ ] "
		if m.Has(opt.Value) {
			mark = "[x] "
		}

		line := mark + opt.Label
		if opt.Desc != "" {
			line += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + opt.Desc)
		}

		if i == m.Cursor {
			out += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ ") +
				lipgloss.NewStyle().Foreground(theme.Primary).Render(line) + "\n"
		} else {
			out += "  " + lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return out
}
