// Package layout draws the frame shared by every screen: a header bar with
// the session tally, the screen body and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlpractice/internal/ui/theme"
)

// Smallest terminal the practice editor and result pane fit in.
const (
	MinWidth  = 80
	MinHeight = 24
)

const appName = "SQL Practice"

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Progress is the per-session tally shown on the right of the header.
type Progress struct {
	Solved  int
	Skipped int
	Total   int
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the learner to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	body := fmt.Sprintf("The editor needs at least %d×%d.\nThis terminal is %d×%d.", MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Warning.Render(body))
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

func tally(p Progress) string {
	if p.Total == 0 {
		return ""
	}
	solved := lipgloss.NewStyle().Foreground(theme.StatusSolved).Render(fmt.Sprintf("✔ %d/%d", p.Solved, p.Total))
	skipped := lipgloss.NewStyle().Foreground(theme.StatusSkipped).Render(fmt.Sprintf("↷ %d", p.Skipped))
	return solved + "   " + skipped
}

// RenderHeader renders the app name on the left, the screen title centred
// and the tally on the right.
func RenderHeader(title string, p Progress, width int) string {
	left := "  " + lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(appName)
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := tally(p)

	inner := max(width-4, 0)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)

	leftGap := max((inner-cw)/2-lw, 1)
	rightGap := max(inner-lw-leftGap-cw-rw, 1)

	return bar(width).Render(left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right)
}

// RenderFooter renders the key hints separated by dots.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)
	sep := desc.Render("  ·  ")

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar(width).Render("  " + strings.Join(parts, sep))
}

// Divider renders a horizontal rule across width.
func Divider(width int) string {
	return lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width, 0)))
}

// RenderFrame stacks header, body and footer, padding the body so the
// footer sits on the last rows.
func RenderFrame(header, content, footer string, width, height int) string {
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(bodyHeight).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
