package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlpractice/internal/router"
	"github.com/abhisek/sqlpractice/internal/screen"
	"github.com/abhisek/sqlpractice/internal/store"
	"github.com/abhisek/sqlpractice/internal/ui/layout"
	"github.com/abhisek/sqlpractice/internal/ui/theme"
)

// attemptsShown is how many recent attempts an expanded session lists.
const attemptsShown = 5

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Err      error
}

type attemptsLoadedMsg struct {
	SessionID string
	Attempts  []store.AttemptRecord
	Err       error
}

// HistoryScreen displays past sessions and their latest attempts.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionSummaryRecord
	attempts  map[string][]store.AttemptRecord // sessionID → recent attempts
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		attempts:  make(map[string][]store.AttemptRecord),
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sessions, err := s.eventRepo.SessionSummaries(context.Background(), store.QueryOpts{Limit: 50})
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case attemptsLoadedMsg:
		if msg.Err == nil {
			s.attempts[msg.SessionID] = msg.Attempts
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if len(s.sessions) == 0 {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			id := s.sessions[s.selected].SessionID
			if _, ok := s.attempts[id]; ok || !s.expanded[s.selected] {
				return s, nil
			}
			return s, s.loadAttempts(id)
		}
	}
	return s, nil
}

func (s *HistoryScreen) loadAttempts(sessionID string) tea.Cmd {
	return func() tea.Msg {
		attempts, err := s.eventRepo.QueryAttempts(context.Background(), store.QueryOpts{
			Limit:     attemptsShown,
			SessionID: sessionID,
		})
		return attemptsLoadedMsg{SessionID: sessionID, Attempts: attempts, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		dateStr := sess.Started.Format("Jan 02, 2006 15:04")
		dur := sess.LastActivity.Sub(sess.Started)
		durationStr := fmt.Sprintf("%d:%02d", int(dur.Minutes()), int(dur.Seconds())%60)

		submitted := ""
		if sess.Submitted {
			submitted = "  submitted"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %d solved  %d skipped  %d attempts%s",
			prefix, dateStr, durationStr, sess.Solved, sess.Skipped, sess.Attempts, submitted)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(renderAttempts(s.attempts[sess.SessionID], width))
		}
	}

	return b.String()
}

func renderAttempts(attempts []store.AttemptRecord, width int) string {
	if len(attempts) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("    No attempts recorded")) + "\n"
	}

	var b strings.Builder
	for _, a := range attempts {
		query := strings.Join(strings.Fields(a.QueryText), " ")
		if r := []rune(query); len(r) > 50 {
			query = string(r[:49]) + "…"
		}
		line := fmt.Sprintf("    #%d  %-11s  %s", a.ExerciseIndex+1, a.ResultKind, query)

		color := theme.TextDim
		switch {
		case a.Credited:
			color = theme.StatusSolved
		case a.ErrorText != "":
			color = theme.Error
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(color).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
