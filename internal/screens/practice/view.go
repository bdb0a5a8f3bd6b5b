package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyy/internal/progress"
	"github.com/abhisek/studyy/internal/session"
	"github.com/abhisek/studyy/internal/ui/components"
	"github.com/abhisek/studyy/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.sess == nil {
		return renderLoading(width)
	}
	return s.renderProblem(width)
}

// renderProblem renders the current problem, answer area and any feedback.
func (s *PracticeScreen) renderProblem(width int) string {
	p := s.sess.Current()
	st := s.sess.State()
	cw := components.ContentWidth(width)

	var b strings.Builder

	// Position and status line.
	status := s.tracker.ProblemStatus(p.ID)
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Problem %d/%d", s.sess.Index()+1, s.sess.Len()))
	infoRight := renderStatus(status)
	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Problem card.
	var card strings.Builder
	card.WriteString(theme.Selected.Render(p.Title))
	card.WriteString("\n")
	meta := []string{string(p.Difficulty)}
	if p.QuestionType != "" {
		meta = append(meta, string(p.QuestionType))
	}
	meta = append(meta, p.Tags...)
	card.WriteString(theme.Hint.Render(strings.Join(meta, " · ")))
	card.WriteString("\n\n")
	if p.Passage != "" {
		card.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw - 6).Render(p.Passage))
		card.WriteString("\n\n")
	}
	card.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6).Render(p.Statement))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.ArcadeCard(card.String(), cw)))
	b.WriteString("\n\n")

	// Answer area.
	if p.IsMCQ() {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View()))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "Answer: "+s.input.View()))
	}
	b.WriteString("\n")

	if fb := renderFeedback(s.feedback); fb != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, fb))
		b.WriteString("\n")
	}

	// Revealed steps.
	if st.StepsShown {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderSteps(p.Steps, cw)))
		b.WriteString("\n")
	}

	// Hint.
	switch {
	case s.hintBusy:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render("Thinking of a hint...")))
		b.WriteString("\n")
	case st.Hint != "":
		hint := lipgloss.NewStyle().Foreground(theme.Accent).Width(cw).Render("Hint: " + st.Hint)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, hint))
		b.WriteString("\n")
	}

	if s.notice != "" {
		notice := lipgloss.NewStyle().Foreground(theme.Error).Width(cw).Render(s.notice)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, notice))
		b.WriteString("\n")
	}

	// Action row.
	b.WriteString("\n")
	actions := lipgloss.JoinHorizontal(lipgloss.Top,
		components.NewButton("Submit", true, nil).View(),
		" ",
		components.NewButton("Steps +5 XP", !st.StepsShown, nil).View(),
		" ",
		components.NewButton("Hint", st.Hint == "" && !s.hintBusy, nil).View(),
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, actions))

	return b.String()
}

func renderStatus(st progress.Status) string {
	switch st {
	case progress.StatusSolved:
		return theme.Correct.Render("✓ solved")
	case progress.StatusAttempted:
		return lipgloss.NewStyle().Foreground(theme.Accent).Render("● attempted")
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("○ todo")
	}
}

func renderFeedback(res *session.Result) string {
	switch {
	case res == nil:
		return ""
	case res.Correct && res.XPAwarded > 0:
		return theme.Correct.Render(fmt.Sprintf("Correct! +%d XP", res.XPAwarded))
	case res.Correct:
		return theme.Correct.Render("Correct! (already solved)")
	default:
		return theme.Incorrect.Render("Not quite, try again")
	}
}

func renderSteps(steps []string, cw int) string {
	if len(steps) == 0 {
		return theme.Hint.Render("No worked steps for this problem.")
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Solution"))
	b.WriteString("\n")
	style := lipgloss.NewStyle().Foreground(theme.Text).Width(cw)
	for _, step := range steps {
		b.WriteString(style.Render(step))
		b.WriteString("\n")
	}
	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Generating questions...")
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
