package session

import "time"

// SessionSummary holds the data displayed on the completion screen.
type SessionSummary struct {
	SessionID string
	Duration  time.Duration
	Total     int
	Counts
	Complete bool
}

// BuildSummary creates a SessionSummary from the current state.
func BuildSummary(id string, state *SessionState, elapsed time.Duration) *SessionSummary {
	return &SessionSummary{
		SessionID: id,
		Duration:  elapsed,
		Total:     state.Len(),
		Counts:    state.Counts(),
		Complete:  state.IsComplete(),
	}
}

// Percent returns the share of exercises solved or skipped, 0-100.
func (s *SessionSummary) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return (s.Solved + s.Skipped) * 100 / s.Total
}
