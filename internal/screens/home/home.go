package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sqlpractice/internal/router"
	"github.com/abhisek/sqlpractice/internal/screen"
	"github.com/abhisek/sqlpractice/internal/screens/exerciselist"
	"github.com/abhisek/sqlpractice/internal/screens/history"
	"github.com/abhisek/sqlpractice/internal/screens/practice"
	"github.com/abhisek/sqlpractice/internal/screens/submit"
	"github.com/abhisek/sqlpractice/internal/session"
	"github.com/abhisek/sqlpractice/internal/store"
	"github.com/abhisek/sqlpractice/internal/submission"
	"github.com/abhisek/sqlpractice/internal/ui/components"
)

// Options wires the home screen to the running session.
type Options struct {
	Session   *session.Session
	Submitter *submission.Submitter // nil when no sink is configured
	Events    store.EventRepo       // nil disables History
	Note      string                // one-line status, e.g. hint provider
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	session *session.Session
	menu    components.Menu
	note    string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. The practice screen is created once so the
// editor keeps its contents between visits.
func New(opts Options) *HomeScreen {
	s := opts.Session
	practiceScreen := practice.New(s, opts.Submitter)

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}

	items := []components.MenuItem{
		{Label: "PRACTICE", Description: "write and run queries", Action: push(func() screen.Screen {
			return practiceScreen
		})},
		{Label: "EXERCISES", Description: "jump to any exercise", Action: push(func() screen.Screen {
			return exerciselist.New(s)
		})},
		{Label: "SUBMIT", Description: "send your progress", Action: push(func() screen.Screen {
			return submit.New(s, opts.Submitter)
		})},
		{Label: "HISTORY", Description: "past sessions", Disabled: opts.Events == nil, Action: push(func() screen.Screen {
			return history.New(opts.Events)
		})},
		{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		session: s,
		menu:    components.NewMenu(items),
		note:    opts.Note,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 32 || width < 100

	cw := contentWidth(width)
	st := h.session.State()

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(st.Counts(), st.CurrentIndex, st.Len(), cw))
	sections = append(sections, renderMenu(h.menu.View(), cw))
	if h.note != "" {
		sections = append(sections, renderNote(h.note, cw))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
