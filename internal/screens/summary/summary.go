package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlpractice/internal/router"
	"github.com/abhisek/sqlpractice/internal/screen"
	"github.com/abhisek/sqlpractice/internal/session"
	"github.com/abhisek/sqlpractice/internal/ui/components"
	"github.com/abhisek/sqlpractice/internal/ui/layout"
	"github.com/abhisek/sqlpractice/internal/ui/theme"
)

// SummaryScreen is shown once every exercise is solved or skipped.
type SummaryScreen struct {
	summary *session.SessionSummary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.SessionSummary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "All Done"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	title := "Every exercise attempted!"
	if sum.Skipped == 0 {
		title = "Every exercise solved on your own!"
	}
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render(title))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("Time: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Solved: %s        Skipped: %s        Total: %d",
		lipgloss.NewStyle().Foreground(theme.StatusSolved).Render(fmt.Sprint(sum.Solved)),
		lipgloss.NewStyle().Foreground(theme.StatusSkipped).Render(fmt.Sprint(sum.Skipped)),
		sum.Total)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, statsLine))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("Solved", float64(sum.Solved)/float64(max(sum.Total, 1)), true, min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.Text).Render("Press Ctrl+U on the practice screen to submit your work."))
	return b.String()
}
