package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyy/internal/router"
	"github.com/abhisek/studyy/internal/screen"
	"github.com/abhisek/studyy/internal/session"
	"github.com/abhisek/studyy/internal/ui/layout"
	"github.com/abhisek/studyy/internal/ui/theme"
)

// SummaryScreen displays the practice session summary.
type SummaryScreen struct {
	summary session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Topics"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Nice work!"))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("Time: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	accuracy := fmt.Sprintf("%.0f%%", sum.Accuracy*100)
	statsLine := fmt.Sprintf("Problems: %d        Answers: %d        Correct: %d        Accuracy: %s",
		sum.Problems, sum.Submitted, sum.Correct, accuracy)
	b.WriteString(center.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	xpStyle := center.Foreground(theme.Accent).Bold(true)
	if sum.XPEarned == 0 {
		xpStyle = center.Foreground(theme.TextDim)
	}
	b.WriteString(xpStyle.Render(fmt.Sprintf("+%d XP earned", sum.XPEarned)))

	return b.String()
}
