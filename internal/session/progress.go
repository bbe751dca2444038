package session

import (
	"fmt"

	"github.com/abhisek/sqlpractice/internal/exercises"
	"github.com/abhisek/sqlpractice/internal/sqlexec"
)

// Outcome is what one execute event did to the session.
type Outcome struct {
	Result sqlexec.Result

	// Index is the exercise the statement was run against.
	Index int

	// Credited is set when the exercise was marked solved.
	Credited bool

	// Advanced is set when CurrentIndex moved to the next exercise.
	Advanced bool
}

// Credits reports whether res counts as solving an exercise: a non-tabular
// acknowledgement, or a tabular result with at least one row.
func Credits(res sqlexec.Result) bool {
	switch res.Kind {
	case sqlexec.KindNonTabular:
		return true
	case sqlexec.KindTabular:
		return res.HasRows()
	}
	return false
}

// HandleResult applies the result of executing sql at the current exercise.
// Failures and empty row sets leave state untouched. A crediting result
// marks the exercise solved, records sql as its answer and advances to the
// next exercise unless the current one is the last.
func HandleResult(state *SessionState, sql string, res sqlexec.Result) Outcome {
	i := state.CurrentIndex
	out := Outcome{Result: res, Index: i}

	if !Credits(res) {
		return out
	}

	state.Statuses[i] = StatusSolved
	state.Answers[i] = sql
	out.Credited = true

	if i < state.Len()-1 {
		state.CurrentIndex = i + 1
		out.Advanced = true
	}
	return out
}

// RevealSolution marks the current exercise skipped and records ex's
// reference solution, or the placeholder when it has none, as the answer.
// The current index does not move.
func RevealSolution(state *SessionState, ex exercises.Exercise) string {
	text := ex.RevealText()
	state.Statuses[state.CurrentIndex] = StatusSkipped
	state.Answers[state.CurrentIndex] = text
	return text
}

// JumpTo moves to exercise j without touching any status.
func JumpTo(state *SessionState, j int) error {
	if j < 0 || j >= state.Len() {
		return fmt.Errorf("jump to exercise %d: %w", j, exercises.ErrIndexOutOfRange)
	}
	state.CurrentIndex = j
	return nil
}
