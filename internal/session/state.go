package session

import (
	"fmt"
	"slices"
)

// Status is the completion state of one exercise.
type Status string

const (
	StatusLocked  Status = "locked"  // not yet attempted
	StatusSkipped Status = "skipped" // solution revealed
	StatusSolved  Status = "solved"  // learner's own query was credited
)

// ParseStatus converts a persisted status string back to a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusLocked, StatusSkipped, StatusSolved:
		return st, nil
	}
	return "", fmt.Errorf("unknown exercise status %q", s)
}

// Attempted reports whether the exercise has left the locked state.
func (s Status) Attempted() bool {
	return s == StatusSolved || s == StatusSkipped
}

// SessionState is one learner's progress through the catalog. Statuses and
// Answers are index-aligned with the catalog and always have the same
// length; CurrentIndex is always within [0, len(Statuses)).
type SessionState struct {
	Statuses     []Status
	Answers      []string
	CurrentIndex int
}

// NewSessionState returns the initial state for a catalog of n exercises:
// everything locked, no answers, positioned on the first exercise.
func NewSessionState(n int) *SessionState {
	statuses := make([]Status, n)
	for i := range statuses {
		statuses[i] = StatusLocked
	}
	return &SessionState{
		Statuses: statuses,
		Answers:  make([]string, n),
	}
}

// Len returns the number of exercises tracked.
func (s *SessionState) Len() int {
	return len(s.Statuses)
}

// Clone returns a deep copy.
func (s *SessionState) Clone() *SessionState {
	return &SessionState{
		Statuses:     slices.Clone(s.Statuses),
		Answers:      slices.Clone(s.Answers),
		CurrentIndex: s.CurrentIndex,
	}
}

// Counts tallies exercises by status.
type Counts struct {
	Solved  int `json:"solved"`
	Skipped int `json:"skipped"`
	Locked  int `json:"locked"`
}

// Counts returns how many exercises are in each status.
func (s *SessionState) Counts() Counts {
	var c Counts
	for _, st := range s.Statuses {
		switch st {
		case StatusSolved:
			c.Solved++
		case StatusSkipped:
			c.Skipped++
		default:
			c.Locked++
		}
	}
	return c
}

// IsComplete reports whether every exercise is solved or skipped. A
// complete session stays mutable.
func (s *SessionState) IsComplete() bool {
	for _, st := range s.Statuses {
		if !st.Attempted() {
			return false
		}
	}
	return len(s.Statuses) > 0
}
