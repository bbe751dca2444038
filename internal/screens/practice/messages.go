package practice

import (
	"github.com/abhisek/sqlpractice/internal/hints"
	sess "github.com/abhisek/sqlpractice/internal/session"
)

// queryDoneMsg is sent when an execute event has been applied.
type queryDoneMsg struct {
	Outcome sess.Outcome
}

// revealDoneMsg carries the text recorded as the answer after a reveal.
type revealDoneMsg struct {
	Answer string
}

// hintReadyMsg is sent when a hint has been produced.
type hintReadyMsg struct {
	Hint hints.Hint
}

// resetDoneMsg is sent when the practice database has been re-seeded.
type resetDoneMsg struct {
	Err error
}

// jumpDoneMsg is sent after moving to another exercise.
type jumpDoneMsg struct {
	Err error
}
