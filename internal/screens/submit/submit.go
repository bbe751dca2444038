// Package submit packages the session's progress and sends it to the
// configured submission sink.
package submit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlpractice/internal/logging"
	"github.com/abhisek/sqlpractice/internal/router"
	"github.com/abhisek/sqlpractice/internal/screen"
	sess "github.com/abhisek/sqlpractice/internal/session"
	"github.com/abhisek/sqlpractice/internal/submission"
	"github.com/abhisek/sqlpractice/internal/ui/components"
	"github.com/abhisek/sqlpractice/internal/ui/layout"
	"github.com/abhisek/sqlpractice/internal/ui/theme"
)

type submitDoneMsg struct {
	Receipt *submission.Receipt
	Err     error
}

// SubmitScreen asks for the learner's name and uploads both artifacts.
type SubmitScreen struct {
	session   *sess.Session
	submitter *submission.Submitter
	input     components.TextInput

	sending bool
	receipt *submission.Receipt
	errMsg  string
}

var _ screen.Screen = (*SubmitScreen)(nil)
var _ screen.KeyHintProvider = (*SubmitScreen)(nil)

// New creates a SubmitScreen. A nil submitter shows a configuration notice.
func New(s *sess.Session, submitter *submission.Submitter) *SubmitScreen {
	return &SubmitScreen{
		session:   s,
		submitter: submitter,
		input:     components.NewTextInput("Your name", 60),
	}
}

func (s *SubmitScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *SubmitScreen) Title() string {
	return "Submit"
}

func (s *SubmitScreen) KeyHints() []layout.KeyHint {
	if s.submitter == nil || (s.receipt != nil && s.receipt.OK()) {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SubmitScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		s.sending = false
		s.receipt = msg.Receipt
		s.errMsg = ""
		if errors.Is(msg.Err, submission.ErrMissingName) {
			s.input.SetError("Please enter your name.")
			return s, nil
		}
		if msg.Err != nil && msg.Receipt == nil {
			s.errMsg = logging.PresentError("submit", msg.Err)
		}
		return s, nil

	case tea.KeyMsg:
		if s.submitter == nil || s.sending {
			return s, nil
		}
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			if s.receipt != nil && s.receipt.OK() {
				return s, nil
			}
			s.sending = true
			return s, s.submitCmd(s.input.Value())
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SubmitScreen) submitCmd(name string) tea.Cmd {
	submitter := s.submitter
	id := s.session.ID()
	state := s.session.State()
	return func() tea.Msg {
		receipt, err := submitter.Submit(context.Background(), id, name, state)
		return submitDoneMsg{Receipt: receipt, Err: err}
	}
}

func (s *SubmitScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")

	if s.submitter == nil {
		b.WriteString(center.Foreground(theme.Accent).Render("Submission is not configured."))
		b.WriteString("\n\n")
		b.WriteString(center.Foreground(theme.TextDim).Render("Set SQLPRACTICE_SINK and its settings, then restart."))
		return b.String()
	}

	counts := s.session.State().Counts()
	b.WriteString(center.Foreground(theme.Text).Render(fmt.Sprintf(
		"You are submitting %d solved, %d skipped and %d untouched exercises.",
		counts.Solved, counts.Skipped, counts.Locked)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Card.Render("Name: "+s.input.View())))
	b.WriteString("\n\n")

	switch {
	case s.sending:
		b.WriteString(center.Foreground(theme.TextDim).Render("Uploading..."))
	case s.errMsg != "":
		b.WriteString(center.Foreground(theme.Error).Render(s.errMsg))
	case s.receipt != nil:
		b.WriteString(renderReceipt(s.receipt, width))
	}
	return b.String()
}

func renderReceipt(r *submission.Receipt, width int) string {
	var b strings.Builder
	for _, u := range r.Uploads {
		line := fmt.Sprintf("%s  %d", u.Path, u.StatusCode)
		style := theme.Correct
		if !u.OK() {
			style = theme.Incorrect
			if u.Err != nil {
				line += "  " + logging.Mask(u.Err.Error())
			}
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if r.OK() {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Correct.Render("Submitted. Thank you, "+r.Name+"!")))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Warning.Render("Some uploads failed. Your progress is kept; press Enter to retry.")))
	}
	return b.String()
}
