// Package practice is the screen where the learner answers problems.
package practice

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyy/internal/catalog"
	"github.com/abhisek/studyy/internal/progress"
	"github.com/abhisek/studyy/internal/questions"
	"github.com/abhisek/studyy/internal/router"
	"github.com/abhisek/studyy/internal/screen"
	"github.com/abhisek/studyy/internal/screens/summary"
	"github.com/abhisek/studyy/internal/session"
	"github.com/abhisek/studyy/internal/ui/components"
	"github.com/abhisek/studyy/internal/ui/layout"
)

const inputWidth = 40

// PracticeScreen implements screen.Screen for a practice session.
type PracticeScreen struct {
	source  *questions.Source
	tracker *progress.Tracker
	title   string
	genReq  *questions.GenerateRequest

	sess     *session.Session
	input    components.TextInput
	mc       components.MultiChoice
	typing   bool // text input has focus
	feedback *session.Result
	hintBusy bool
	errMsg   string // fatal; any key goes back
	notice   string // transient, e.g. a failed hint
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// NewTopic creates a screen over the problems of a catalog topic.
func NewTopic(topic catalog.Topic, source *questions.Source, tracker *progress.Tracker) *PracticeScreen {
	s := &PracticeScreen{
		source:  source,
		tracker: tracker,
		title:   topic.Title,
	}
	sess, err := session.New(topic.ID, topic.Problems, tracker)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.sess = sess
	s.loadProblem()
	return s
}

// NewGenerated creates a screen that first generates problems for req.
func NewGenerated(req questions.GenerateRequest, source *questions.Source, tracker *progress.Tracker) *PracticeScreen {
	return &PracticeScreen{
		source:  source,
		tracker: tracker,
		title:   fmt.Sprintf("AI %s", req.Subject),
		genReq:  &req,
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	if s.genReq != nil && s.sess == nil {
		return s.generate(*s.genReq)
	}
	return s.focusCmd()
}

// focusCmd focuses the text input when the current problem uses one.
func (s *PracticeScreen) focusCmd() tea.Cmd {
	if s.sess == nil || s.isMCQ() {
		return nil
	}
	return s.input.Init()
}

func (s *PracticeScreen) Title() string {
	return s.title
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" || s.sess == nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if s.typing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Tab", Description: "Commands"},
			{Key: "Esc", Description: "Back"},
		}
	}
	hints := []layout.KeyHint{{Key: "Enter", Description: "Submit"}}
	if !s.isMCQ() {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Type"})
	}
	return append(hints,
		layout.KeyHint{Key: "s", Description: "Steps"},
		layout.KeyHint{Key: "h", Description: "Hint"},
		layout.KeyHint{Key: "n/p", Description: "Next/Prev"},
		layout.KeyHint{Key: "q", Description: "Finish"},
	)
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case problemsReadyMsg:
		return s.handleProblemsReady(msg)

	case hintReadyMsg:
		return s.handleHintReady(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.typing {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PracticeScreen) generate(req questions.GenerateRequest) tea.Cmd {
	src := s.source
	return func() tea.Msg {
		problems, err := src.Generate(context.Background(), req)
		return problemsReadyMsg{Problems: problems, Err: err}
	}
}

func (s *PracticeScreen) handleProblemsReady(msg problemsReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = describeError(msg.Err)
		return s, nil
	}
	sess, err := session.New("", msg.Problems, s.tracker)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.sess = sess
	s.loadProblem()
	return s, s.focusCmd()
}

func (s *PracticeScreen) handleHintReady(msg hintReadyMsg) (screen.Screen, tea.Cmd) {
	s.hintBusy = false
	if msg.Err != nil {
		s.notice = describeError(msg.Err)
		return s, nil
	}
	if s.sess != nil && s.sess.Current().ID == msg.ProblemID {
		s.sess.SetHint(msg.Hint)
	}
	return s, nil
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.sess == nil {
		return s, nil
	}

	key := msg.String()
	switch key {
	case "enter":
		return s.submit()
	case "tab":
		if !s.isMCQ() {
			s.typing = !s.typing
			if s.typing {
				return s, s.input.Model.Focus()
			}
			s.input.Model.Blur()
		}
		return s, nil
	}

	if s.typing {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		s.sess.Type(context.Background(), s.input.Value())
		return s, cmd
	}

	switch key {
	case "s":
		return s.revealSteps()
	case "h":
		return s.requestHint()
	case "n", "right":
		if s.sess.Next() {
			s.loadProblem()
			return s, s.focusCmd()
		}
		return s, nil
	case "p", "left":
		if s.sess.Prev() {
			s.loadProblem()
			return s, s.focusCmd()
		}
		return s, nil
	case "q":
		sum := session.BuildSummary(s.sess)
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: summary.New(sum)}
		}
	}

	if s.isMCQ() {
		var cmd tea.Cmd
		s.mc, cmd = s.mc.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PracticeScreen) submit() (screen.Screen, tea.Cmd) {
	value := s.input.Value()
	if s.isMCQ() {
		value = s.mc.Value()
	}
	if value == "" {
		return s, nil
	}

	res, err := s.sess.Submit(context.Background(), value)
	if err != nil {
		s.notice = err.Error()
	}
	s.feedback = &res
	if s.isMCQ() {
		s.mc.Choose(res.Correct)
	} else {
		s.input.Submit(res.Correct)
	}
	return s, nil
}

func (s *PracticeScreen) revealSteps() (screen.Screen, tea.Cmd) {
	if _, err := s.sess.RevealSteps(context.Background()); err != nil {
		s.notice = err.Error()
	}
	return s, nil
}

func (s *PracticeScreen) requestHint() (screen.Screen, tea.Cmd) {
	if s.hintBusy || s.sess.State().Hint != "" {
		return s, nil
	}
	s.hintBusy = true
	s.notice = ""
	p := s.sess.Current()
	src := s.source
	return s, func() tea.Msg {
		hint, err := src.Hint(context.Background(), p)
		return hintReadyMsg{ProblemID: p.ID, Hint: hint, Err: err}
	}
}

// loadProblem resets the answer widgets for the current problem.
func (s *PracticeScreen) loadProblem() {
	p := s.sess.Current()
	st := s.sess.State()
	s.feedback = nil
	s.notice = ""
	s.hintBusy = false

	if p.IsMCQ() {
		s.typing = false
		s.mc = components.NewMultiChoice(p.Options)
		return
	}

	placeholder := p.Placeholder
	if placeholder == "" {
		placeholder = "Type your answer..."
	}
	s.input = components.NewTextInput(placeholder, p.QuestionType == catalog.TypeInteger, inputWidth)
	s.input.Model.SetValue(st.Answer)
	s.typing = true
}

func (s *PracticeScreen) isMCQ() bool {
	return s.sess != nil && s.sess.Current().IsMCQ()
}

func describeError(err error) string {
	var cfgErr *questions.ConfigurationError
	if errors.As(err, &cfgErr) {
		return cfgErr.Error()
	}
	var genErr *questions.GenerationError
	if errors.As(err, &genErr) {
		return "The AI request failed. Please try again."
	}
	return err.Error()
}
