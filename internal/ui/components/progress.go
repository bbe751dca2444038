package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlpractice/internal/session"
	"github.com/abhisek/sqlpractice/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}

// StatusColor maps an exercise status to its display color.
func StatusColor(st session.Status) color.Color {
	switch st {
	case session.StatusSolved:
		return theme.StatusSolved
	case session.StatusSkipped:
		return theme.StatusSkipped
	default:
		return theme.StatusLocked
	}
}

// StatusStrip renders one numbered cell per exercise in status color,
// the terminal twin of the submitted progress image. The current
// exercise is underlined.
func StatusStrip(statuses []session.Status, current int) string {
	cells := make([]string, len(statuses))
	for i, st := range statuses {
		style := lipgloss.NewStyle().
			Foreground(theme.BgDark).
			Background(StatusColor(st))
		if i == current {
			style = style.Bold(true).Underline(true)
		}
		cells[i] = style.Render(fmt.Sprintf("%2d", i+1))
	}
	return strings.Join(cells, " ")
}
