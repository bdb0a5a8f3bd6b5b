package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyy/internal/preferences"
	"github.com/abhisek/studyy/internal/progress"
	"github.com/abhisek/studyy/internal/questions"
	"github.com/abhisek/studyy/internal/router"
	"github.com/abhisek/studyy/internal/screen"
	"github.com/abhisek/studyy/internal/screens/practice"
	"github.com/abhisek/studyy/internal/screens/topics"
	"github.com/abhisek/studyy/internal/screens/welcome"
	"github.com/abhisek/studyy/internal/ui/layout"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Source  *questions.Source
	Tracker *progress.Tracker
	Prefs   *preferences.Store

	// StartTopic, if set, opens that topic's practice screen directly.
	StartTopic string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	tracker *progress.Tracker
	width   int
	height  int
}

// newAppModel creates a new AppModel with the topics screen at the root,
// behind a welcome splash when no saved progress was loaded.
func newAppModel(opts Options) (AppModel, error) {
	home := func() screen.Screen {
		return topics.New(opts.Source, opts.Tracker, opts.Prefs)
	}
	root := home()
	if res := opts.Tracker.LoadResult(); res.Defaulted() && opts.StartTopic == "" {
		root = welcome.New(res.Status, home)
	}
	m := AppModel{
		router:  router.New(root),
		tracker: opts.Tracker,
	}
	if opts.StartTopic != "" {
		t, err := opts.Source.Catalog().Topic(opts.StartTopic)
		if err != nil {
			return AppModel{}, err
		}
		m.router.Push(practice.NewTopic(t, opts.Source, opts.Tracker))
	}
	return m, nil
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) headerStats() layout.HeaderStats {
	st := m.tracker.State()
	return layout.HeaderStats{
		Level:       st.Level(),
		XPIntoLevel: st.XPIntoLevel(),
		XPPerLevel:  progress.XPPerLevel,
		Streak:      st.Streak,
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerStats(), m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	model, err := newAppModel(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
