package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlpractice/internal/session"
	"github.com/abhisek/sqlpractice/internal/ui/theme"
)

const titleFull = ` ███████╗ ██████╗ ██╗
 ██╔════╝██╔═══██╗██║
 ███████╗██║   ██║██║
 ╚════██║██║▄▄ ██║██║
 ███████║╚██████╔╝███████╗
 ╚══════╝ ╚══▀▀═╝ ╚══════╝`

const titleCompact = "S · Q · L"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for frame border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	title := titleFull
	if compact {
		title = titleCompact
	}
	block := style.Render(title) + "\n" + theme.Subtitle.Render("practice")
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderStatsBar renders the session counts in a bordered box.
func renderStatsBar(c session.Counts, current, total, cw int) string {
	solved := lipgloss.NewStyle().Foreground(theme.StatusSolved).Bold(true)
	skipped := lipgloss.NewStyle().Foreground(theme.StatusSkipped).Bold(true)
	locked := lipgloss.NewStyle().Foreground(theme.StatusLocked)

	stats := fmt.Sprintf("%s  %s  %s",
		solved.Render(fmt.Sprintf("✔ %d SOLVED", c.Solved)),
		skipped.Render(fmt.Sprintf("↷ %d SKIPPED", c.Skipped)),
		locked.Render(fmt.Sprintf("● %d TO GO", c.Locked)),
	)
	at := theme.Subtitle.Render(fmt.Sprintf("on exercise %d of %d", current+1, total))

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats + "\n" + at)
}

// renderMenu renders the menu block centered at content width.
func renderMenu(menu string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.TrimRight(menu, "\n"))
}

// renderNote renders a dim one-line note, e.g. the LLM hint status.
func renderNote(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderFrame wraps content in a double-border frame, centered vertically
// and horizontally within the given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).   // account for border chars
		Height(height - 2). // account for border chars
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
