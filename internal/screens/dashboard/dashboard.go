// Package dashboard shows the learner's level, streak and recent XP.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyy/internal/progress"
	"github.com/abhisek/studyy/internal/screen"
	"github.com/abhisek/studyy/internal/ui/components"
	"github.com/abhisek/studyy/internal/ui/layout"
	"github.com/abhisek/studyy/internal/ui/theme"
)

// HistoryDays is the number of days shown in the XP chart.
const HistoryDays = 14

// DashboardScreen renders progress from a Tracker.
type DashboardScreen struct {
	tracker *progress.Tracker
	notice  string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a new DashboardScreen.
func New(tracker *progress.Tracker) *DashboardScreen {
	return &DashboardScreen{tracker: tracker}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (s *DashboardScreen) Title() string {
	return "My Progress"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "r", Description: "Reset today"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "r" {
		s.tracker.ResetToday(context.Background())
		s.notice = "Today's completed topics cleared."
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	st := s.tracker.State()
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render(fmt.Sprintf("Level %d", st.Level())))
	b.WriteString("\n")

	bar := components.NewProgressBar(
		fmt.Sprintf("%d/%d XP", st.XPIntoLevel(), progress.XPPerLevel),
		float64(st.XPIntoLevel())/float64(progress.XPPerLevel),
		false, cw,
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Total XP: %d      Streak: %d day(s)      Solved: %d      Attempted: %d",
		st.XP, st.Streak, st.SolvedCount(), st.AttemptedCount())
	b.WriteString(center.Foreground(theme.Text).Render(stats))
	b.WriteString("\n\n")

	if len(st.CompletedToday) > 0 {
		b.WriteString(center.Foreground(theme.Success).Render("Completed today: " + strings.Join(st.CompletedToday, ", ")))
		b.WriteString("\n\n")
	}

	b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("XP over the last %d days", HistoryDays)))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderHistory(s.tracker.RecentXP(HistoryDays), cw)))

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Accent).Render(s.notice))
	}
	return b.String()
}

// renderHistory draws one bar per day, scaled to the best day.
func renderHistory(days []progress.DayXP, cw int) string {
	best := 0
	for _, d := range days {
		best = max(best, d.XP)
	}
	var b strings.Builder
	for _, d := range days {
		pct := 0.0
		if best > 0 {
			pct = float64(d.XP) / float64(best)
		}
		label := fmt.Sprintf("%s %4d", d.Date[5:], d.XP)
		b.WriteString(components.NewProgressBar(label, pct, false, cw).View())
		b.WriteString("\n")
	}
	return b.String()
}
