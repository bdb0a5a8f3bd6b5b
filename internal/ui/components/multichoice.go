package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyy/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. The learner may choose again
// after a wrong answer; the last choice is highlighted.
type MultiChoice struct {
	Options       []string
	Selected      int
	ChosenIndex   int
	ChosenCorrect bool
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{
		Options:     options,
		ChosenIndex: -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles arrow keys and number shortcuts.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	default:
		if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(m.Options) {
			m.Selected = int(key[0] - '1')
		}
	}

	return m, nil
}

// Value returns the selected option, or "" when there are no options.
func (m MultiChoice) Value() string {
	if m.Selected < 0 || m.Selected >= len(m.Options) {
		return ""
	}
	return m.Options[m.Selected]
}

// Choose records the selected option as the learner's answer.
func (m *MultiChoice) Choose(correct bool) {
	m.ChosenIndex = m.Selected
	m.ChosenCorrect = correct
}

// View renders the options.
func (m MultiChoice) View() string {
	var s string
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+i, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == m.ChosenIndex && m.ChosenCorrect:
			style = style.Foreground(theme.Success).Bold(true)
		case i == m.ChosenIndex:
			style = style.Foreground(theme.Error).Bold(true)
		case i == m.Selected:
			style = style.Foreground(theme.Primary).Bold(true)
		}
		s += style.Render(line) + "\n"
	}
	return s
}
