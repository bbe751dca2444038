// Package practice is the main terminal screen: the current exercise, a
// SQL editor and the result of the last statement.
package practice

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sqlpractice/internal/hints"
	"github.com/abhisek/sqlpractice/internal/router"
	"github.com/abhisek/sqlpractice/internal/screen"
	"github.com/abhisek/sqlpractice/internal/screens/exerciselist"
	"github.com/abhisek/sqlpractice/internal/screens/submit"
	"github.com/abhisek/sqlpractice/internal/screens/summary"
	sess "github.com/abhisek/sqlpractice/internal/session"
	"github.com/abhisek/sqlpractice/internal/sqlexec"
	"github.com/abhisek/sqlpractice/internal/submission"
	"github.com/abhisek/sqlpractice/internal/ui/components"
	"github.com/abhisek/sqlpractice/internal/ui/layout"
)

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeSuccess
	noticeWarn
	noticeError
)

// PracticeScreen implements screen.Screen for the practice workbench.
type PracticeScreen struct {
	session   *sess.Session
	submitter *submission.Submitter
	editor    components.Editor

	index  int // exercise the editor is loaded for
	result *sqlexec.Result
	hint   *hints.Hint

	notice     string
	noticeKind noticeKind

	busy            bool
	confirmReset    bool
	completionShown bool
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.Focuser = (*PracticeScreen)(nil)
var _ screen.EscCapturer = (*PracticeScreen)(nil)

// New creates a PracticeScreen over s. submitter may be nil, in which case
// the submit screen explains that submission is not configured.
func New(s *sess.Session, submitter *submission.Submitter) *PracticeScreen {
	p := &PracticeScreen{
		session:   s,
		submitter: submitter,
		editor:    components.NewEditor(60, 8),
	}
	p.loadCurrent()
	p.completionShown = s.State().IsComplete()
	return p
}

func (p *PracticeScreen) Init() tea.Cmd {
	return p.editor.Init()
}

func (p *PracticeScreen) Title() string {
	return "Practice"
}

func (p *PracticeScreen) KeyHints() []layout.KeyHint {
	if p.confirmReset {
		return []layout.KeyHint{
			{Key: "Y", Description: "Reset data"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Ctrl+R", Description: "Run"},
		{Key: "Ctrl+S", Description: "Solution"},
		{Key: "Ctrl+G", Description: "Hint"},
		{Key: "Ctrl+N/P", Description: "Next/Prev"},
		{Key: "Ctrl+L", Description: "List"},
		{Key: "Ctrl+X", Description: "Reset DB"},
		{Key: "Ctrl+U", Description: "Submit"},
		{Key: "Esc", Description: "Back"},
	}
}

// CapturesEsc keeps Esc inside the screen while the reset prompt is open.
func (p *PracticeScreen) CapturesEsc() bool {
	return p.confirmReset
}

// Refocus reloads the editor when another screen moved the session to a
// different exercise.
func (p *PracticeScreen) Refocus() tea.Cmd {
	if p.session.State().CurrentIndex != p.index {
		p.loadCurrent()
		p.result = nil
		p.setNotice("", noticeInfo)
	}
	return p.editor.Init()
}

func (p *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case queryDoneMsg:
		return p.handleQueryDone(msg)

	case revealDoneMsg:
		p.busy = false
		p.editor.SetValue(msg.Answer)
		p.setNotice("Solution revealed. This exercise is marked skipped; run your own query to solve it.", noticeWarn)
		return p, nil

	case hintReadyMsg:
		p.busy = false
		h := msg.Hint
		p.hint = &h
		p.setNotice("", noticeInfo)
		return p, nil

	case resetDoneMsg:
		p.busy = false
		if msg.Err != nil {
			p.setNotice("Reset failed: "+msg.Err.Error(), noticeError)
		} else {
			p.result = nil
			p.setNotice("Practice database reset to its original rows.", noticeSuccess)
		}
		return p, nil

	case jumpDoneMsg:
		p.busy = false
		if msg.Err != nil {
			p.setNotice(msg.Err.Error(), noticeError)
			return p, nil
		}
		p.loadCurrent()
		p.result = nil
		p.setNotice("", noticeInfo)
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	var cmd tea.Cmd
	p.editor, cmd = p.editor.Update(msg)
	return p, cmd
}

func (p *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if p.confirmReset {
		switch key {
		case "y", "Y":
			p.confirmReset = false
			p.busy = true
			return p, p.resetCmd()
		case "n", "N", "esc":
			p.confirmReset = false
		}
		return p, nil
	}

	if p.busy {
		return p, nil
	}

	switch key {
	case "ctrl+r", "f5":
		return p.run()
	case "ctrl+s":
		p.busy = true
		return p, p.revealCmd()
	case "ctrl+g":
		p.busy = true
		p.setNotice("Thinking about a hint...", noticeInfo)
		return p, p.hintCmd()
	case "ctrl+x":
		p.confirmReset = true
		return p, nil
	case "ctrl+n":
		return p, p.jumpCmd(p.index + 1)
	case "ctrl+p":
		return p, p.jumpCmd(p.index - 1)
	case "ctrl+l":
		return p, func() tea.Msg {
			return router.PushScreenMsg{Screen: exerciselist.New(p.session)}
		}
	case "ctrl+u":
		return p, func() tea.Msg {
			return router.PushScreenMsg{Screen: submit.New(p.session, p.submitter)}
		}
	}

	var cmd tea.Cmd
	p.editor, cmd = p.editor.Update(msg)
	return p, cmd
}

// run executes the editor contents against the current exercise.
func (p *PracticeScreen) run() (screen.Screen, tea.Cmd) {
	sql := p.editor.Value()
	p.busy = true
	s := p.session
	return p, func() tea.Msg {
		return queryDoneMsg{Outcome: s.Execute(context.Background(), sql)}
	}
}

func (p *PracticeScreen) handleQueryDone(msg queryDoneMsg) (screen.Screen, tea.Cmd) {
	p.busy = false
	out := msg.Outcome
	res := out.Result
	p.result = &res

	switch {
	case res.Rejected:
		p.setNotice(res.ErrorText, noticeError)
	case res.Failed():
		p.setNotice("The database rejected the statement. Fix it and run again.", noticeError)
	case out.Credited && out.Advanced:
		p.loadCurrent()
		p.setNotice(fmt.Sprintf("Exercise %d solved! On to exercise %d.", out.Index+1, p.index+1), noticeSuccess)
	case out.Credited:
		p.setNotice(fmt.Sprintf("Exercise %d solved!", out.Index+1), noticeSuccess)
	default:
		p.setNotice("Ran fine, but no rows came back. Not credited yet.", noticeWarn)
	}

	if out.Credited && !p.completionShown && p.session.State().IsComplete() {
		p.completionShown = true
		sum := p.session.Summary()
		return p, func() tea.Msg {
			return router.PushScreenMsg{Screen: summary.New(sum)}
		}
	}
	return p, nil
}

func (p *PracticeScreen) revealCmd() tea.Cmd {
	s := p.session
	return func() tea.Msg {
		return revealDoneMsg{Answer: s.RevealSolution(context.Background())}
	}
}

func (p *PracticeScreen) hintCmd() tea.Cmd {
	s := p.session
	return func() tea.Msg {
		return hintReadyMsg{Hint: s.Hint(context.Background())}
	}
}

func (p *PracticeScreen) resetCmd() tea.Cmd {
	s := p.session
	return func() tea.Msg {
		return resetDoneMsg{Err: s.ResetDatabase(context.Background())}
	}
}

func (p *PracticeScreen) jumpCmd(j int) tea.Cmd {
	if j < 0 || j >= len(p.session.Exercises()) {
		return nil
	}
	p.busy = true
	s := p.session
	return func() tea.Msg {
		return jumpDoneMsg{Err: s.JumpTo(context.Background(), j)}
	}
}

// loadCurrent points the editor at the current exercise and its last
// recorded answer.
func (p *PracticeScreen) loadCurrent() {
	st := p.session.State()
	p.index = st.CurrentIndex
	p.editor.SetValue(st.Answers[st.CurrentIndex])
	p.hint = nil
}

func (p *PracticeScreen) setNotice(text string, kind noticeKind) {
	p.notice = text
	p.noticeKind = kind
}
