// Package exerciselist lets the learner jump to any exercise.
package exerciselist

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlpractice/internal/router"
	"github.com/abhisek/sqlpractice/internal/screen"
	sess "github.com/abhisek/sqlpractice/internal/session"
	"github.com/abhisek/sqlpractice/internal/ui/components"
	"github.com/abhisek/sqlpractice/internal/ui/layout"
	"github.com/abhisek/sqlpractice/internal/ui/theme"
)

// ExerciseListScreen lists the catalog with each exercise's status.
type ExerciseListScreen struct {
	session  *sess.Session
	selected int
	offset   int
	errMsg   string
}

var _ screen.Screen = (*ExerciseListScreen)(nil)
var _ screen.KeyHintProvider = (*ExerciseListScreen)(nil)

// New creates the list with the current exercise selected.
func New(s *sess.Session) *ExerciseListScreen {
	return &ExerciseListScreen{
		session:  s,
		selected: s.State().CurrentIndex,
	}
}

func (l *ExerciseListScreen) Init() tea.Cmd {
	return nil
}

func (l *ExerciseListScreen) Title() string {
	return "Exercises"
}

func (l *ExerciseListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (l *ExerciseListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	n := len(l.session.Exercises())
	switch kmsg.String() {
	case "up", "k":
		if l.selected > 0 {
			l.selected--
		}
	case "down", "j":
		if l.selected < n-1 {
			l.selected++
		}
	case "home", "g":
		l.selected = 0
	case "end", "G":
		l.selected = n - 1
	case "enter":
		if err := l.session.JumpTo(context.Background(), l.selected); err != nil {
			l.errMsg = err.Error()
			return l, nil
		}
		return l, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return l, nil
}

// Selected returns the highlighted exercise index.
func (l *ExerciseListScreen) Selected() int {
	return l.selected
}

func (l *ExerciseListScreen) View(width, height int) string {
	st := l.session.State()
	catalog := l.session.Exercises()

	visible := height - 4
	if visible < 1 {
		visible = 1
	}
	if l.selected < l.offset {
		l.offset = l.selected
	}
	if l.selected >= l.offset+visible {
		l.offset = l.selected - visible + 1
	}

	var b strings.Builder
	b.WriteString("  " + components.StatusStrip(st.Statuses, st.CurrentIndex))
	b.WriteString("\n\n")

	end := min(l.offset+visible, len(catalog))
	for i := l.offset; i < end; i++ {
		ex := catalog[i]
		badge := lipgloss.NewStyle().
			Foreground(components.StatusColor(st.Statuses[i])).
			Render(fmt.Sprintf("%-8s", st.Statuses[i]))

		prompt := ex.Prompt
		if maxLen := width - 20; maxLen > 10 && len([]rune(prompt)) > maxLen {
			prompt = string([]rune(prompt)[:maxLen-1]) + "…"
		}
		label := fmt.Sprintf("%2d. %s", ex.Number(), prompt)

		prefix := "    "
		style := theme.Unselected
		if i == l.selected {
			prefix = "  ▸ "
			style = theme.Selected
		}
		b.WriteString(prefix + badge + " " + style.Render(label))
		b.WriteString("\n")
	}

	if l.errMsg != "" {
		b.WriteString("\n" + theme.Incorrect.Render("  "+l.errMsg))
	}
	return b.String()
}
