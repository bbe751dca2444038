package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlpractice/internal/hints"
	"github.com/abhisek/sqlpractice/internal/ui/components"
	"github.com/abhisek/sqlpractice/internal/ui/layout"
	"github.com/abhisek/sqlpractice/internal/ui/theme"
)

const editorHeight = 8

func (p *PracticeScreen) View(width, height int) string {
	if p.confirmReset {
		return renderResetConfirm(width)
	}

	st := p.session.State()
	ex := p.session.Exercises()[p.index]
	inner := width - 4

	var b strings.Builder

	// Exercise info line.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Exercise %d/%d", ex.Number(), st.Len()))
	infoRight := theme.Subtitle.Render(string(ex.Topic))
	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n  ")
	b.WriteString(components.StatusStrip(st.Statuses, p.index))
	b.WriteString("\n")
	b.WriteString("  " + layout.Divider(inner))
	b.WriteString("\n")

	// Prompt.
	b.WriteString(lipgloss.NewStyle().
		Width(inner).
		PaddingLeft(2).
		Foreground(theme.Text).
		Bold(true).
		Render(ex.Prompt))
	b.WriteString("\n")

	if p.hint != nil {
		b.WriteString(renderHint(*p.hint, inner))
		b.WriteString("\n")
	}

	// Editor.
	p.editor.Resize(inner-4, editorHeight)
	card := theme.FocusedCard
	if p.busy {
		card = theme.Card
	}
	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(card.Render(p.editor.View())))
	b.WriteString("\n")

	if p.notice != "" {
		b.WriteString("  " + noticeStyle(p.noticeKind).Render(p.notice))
		b.WriteString("\n")
	}

	// Result pane gets what is left.
	if p.result != nil {
		used := lipgloss.Height(b.String())
		maxRows := height - used - 6 // table borders, header and summary line
		if maxRows < 1 {
			maxRows = 1
		}
		res := components.ResultView(*p.result, inner, maxRows)
		b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(res))
	}

	return b.String()
}

func renderHint(h hints.Hint, width int) string {
	label := "Hint"
	if h.Source == hints.SourceLLM {
		label = "Hint (generated)"
	}
	return lipgloss.NewStyle().
		Width(width).
		PaddingLeft(2).
		Render(theme.Warning.Render(label+": ") + theme.Hint.Render(h.Text))
}

func noticeStyle(kind noticeKind) lipgloss.Style {
	switch kind {
	case noticeSuccess:
		return theme.Correct
	case noticeWarn:
		return theme.Warning
	case noticeError:
		return theme.Incorrect
	default:
		return theme.Subtitle
	}
}

// renderResetConfirm renders the reset confirmation dialog.
func renderResetConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("Reset the practice database?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("All four tables go back to their original rows. Your progress is kept."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Error).Render("[Y] Yes, reset"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render("[N] No, keep my changes"))
	return b.String()
}
