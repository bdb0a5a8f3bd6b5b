// Package topics is the home screen: a menu of topics grouped by subject.
package topics

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyy/internal/catalog"
	"github.com/abhisek/studyy/internal/preferences"
	"github.com/abhisek/studyy/internal/progress"
	"github.com/abhisek/studyy/internal/questions"
	"github.com/abhisek/studyy/internal/router"
	"github.com/abhisek/studyy/internal/screen"
	"github.com/abhisek/studyy/internal/screens/dashboard"
	"github.com/abhisek/studyy/internal/screens/practice"
	"github.com/abhisek/studyy/internal/ui/components"
	"github.com/abhisek/studyy/internal/ui/theme"
)

// GenerateCount is the number of AI problems requested from the menu.
const GenerateCount = 5

// TopicsScreen lists the catalog topics and the AI practice entry.
type TopicsScreen struct {
	source  *questions.Source
	tracker *progress.Tracker
	prefs   *preferences.Store
	menu    components.Menu
	notice  string
}

var _ screen.Screen = (*TopicsScreen)(nil)
var _ screen.Resumer = (*TopicsScreen)(nil)

// New creates a new TopicsScreen. prefs may be nil.
func New(source *questions.Source, tracker *progress.Tracker, prefs *preferences.Store) *TopicsScreen {
	s := &TopicsScreen{
		source:  source,
		tracker: tracker,
		prefs:   prefs,
	}
	s.menu = s.buildMenu()
	return s
}

func (s *TopicsScreen) Init() tea.Cmd {
	return nil
}

// Resume rebuilds the menu so solved counts are current.
func (s *TopicsScreen) Resume() tea.Cmd {
	selected := s.menu.Selected
	s.menu = s.buildMenu()
	if selected < len(s.menu.Items) {
		s.menu.Selected = selected
	}
	return nil
}

func (s *TopicsScreen) Title() string {
	return "Topics"
}

func (s *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *TopicsScreen) buildMenu() components.Menu {
	var items []components.MenuItem
	for _, group := range s.source.Catalog().BySubject() {
		items = append(items, components.MenuItem{Label: strings.ToUpper(string(group.Subject)), Disabled: true})
		for _, t := range group.Topics {
			items = append(items, components.MenuItem{
				Label:  s.topicLabel(t),
				Action: s.openTopic(t),
			})
		}
	}

	items = append(items,
		components.MenuItem{Label: "MORE", Disabled: true},
		components.MenuItem{Label: fmt.Sprintf("Practise %d AI questions", GenerateCount), Action: s.openGenerated},
		components.MenuItem{Label: "My progress", Action: s.openDashboard},
	)
	return components.NewMenu(items)
}

func (s *TopicsScreen) topicLabel(t catalog.Topic) string {
	solved := 0
	for _, p := range t.Problems {
		if s.tracker.IsProblemSolved(p.ID) {
			solved++
		}
	}
	label := fmt.Sprintf("%-32s %d/%d solved", t.Title, solved, len(t.Problems))
	if solved == len(t.Problems) && solved > 0 {
		label += " ✓"
	}
	return label
}

func (s *TopicsScreen) openTopic(t catalog.Topic) func() tea.Cmd {
	return func() tea.Cmd {
		s.notice = ""
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: practice.NewTopic(t, s.source, s.tracker)}
		}
	}
}

func (s *TopicsScreen) openGenerated() tea.Cmd {
	var prefs preferences.Preferences
	if s.prefs != nil {
		prefs = s.prefs.Load(context.Background())
	}
	if !prefs.Complete() {
		s.notice = "Choose your subject, level, type and difficulty first: studyy prefs set"
		return nil
	}
	s.notice = ""
	req := questions.GenerateRequest{
		Subject:        prefs.Subject,
		EducationLevel: prefs.EducationLevel,
		QuestionType:   prefs.QuestionType,
		Difficulty:     prefs.Difficulty,
		Count:          GenerateCount,
	}
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: practice.NewGenerated(req, s.source, s.tracker)}
	}
}

func (s *TopicsScreen) openDashboard() tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: dashboard.New(s.tracker)}
	}
}

func (s *TopicsScreen) View(width, height int) string {
	st := s.tracker.State()
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("What do you want to practise today?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf(
		"%d of %d problems solved · %d topics completed today",
		st.SolvedCount(), s.source.Catalog().TotalProblems(), len(st.CompletedToday))))
	b.WriteString("\n\n")

	cw := components.ContentWidth(width)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(s.menu.View())))

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Accent).Render(s.notice))
	}
	return b.String()
}
