package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sqlpractice/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Focuser is implemented by screens that reload shared state when they
// become active again after the screen above them is popped.
type Focuser interface {
	Refocus() tea.Cmd
}

// EscCapturer is implemented by screens that use Esc themselves, e.g. to
// dismiss a confirmation. While CapturesEsc reports true the app does not
// treat Esc as the global back key.
type EscCapturer interface {
	CapturesEsc() bool
}
