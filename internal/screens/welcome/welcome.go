package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyy/internal/progress"
	"github.com/abhisek/studyy/internal/router"
	"github.com/abhisek/studyy/internal/screen"
	"github.com/abhisek/studyy/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 300 * time.Millisecond
	phase2End    = 900 * time.Millisecond
	totalDur     = 1500 * time.Millisecond
)

const bookArt = `   ________   ________
  /        \ /        \
 |  a + b   |  x = ?   |
 |  ----    |  ----    |
 |  ----    |  ----    |
  \________/ \________/`

var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

// WelcomeScreen is the splash shown when no usable progress was loaded.
// Any key replaces it with the screen built by next.
type WelcomeScreen struct {
	next         func() screen.Screen
	status       progress.LoadStatus
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen explaining why progress starts from zero.
func New(status progress.LoadStatus, next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		next:   next,
		status: status,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		if w.transitioned {
			return w, nil
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// Message is the line shown under the banner.
func (w *WelcomeScreen) Message() string {
	switch w.status {
	case progress.LoadedDefaultCorrupt:
		return "Saved progress could not be read, so you are starting fresh."
	case progress.LoadedDefaultUnavailable:
		return "Progress storage is unavailable. XP earned now may not be saved."
	default:
		return "Pick a topic, solve problems, earn XP."
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	rendered := lipgloss.NewStyle().Foreground(theme.Secondary).Render(bookArt)

	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		lines[0] = s1 + "  " + lines[0]
		lines[len(lines)-1] = lines[len(lines)-1] + "  " + s2
		rendered = strings.Join(lines, "\n")
	}
	sections = append(sections, rendered)

	if w.elapsed >= phase2End {
		msgColor := theme.Text
		if w.status == progress.LoadedDefaultCorrupt || w.status == progress.LoadedDefaultUnavailable {
			msgColor = theme.Error
		}
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(msgColor).Bold(true).Render(w.Message()),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
