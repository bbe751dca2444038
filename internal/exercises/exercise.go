// Package exercises holds the fixed, index-ordered catalog of SQL practice
// exercises with their reference solutions and hints.
package exercises

import (
	"errors"
	"fmt"
)

// Topic groups exercises by the SQL concept they practise.
type Topic string

const (
	TopicFiltering   Topic = "filtering"
	TopicRanges      Topic = "ranges"
	TopicSets        Topic = "set-membership"
	TopicSorting     Topic = "sorting"
	TopicJoins       Topic = "joins"
	TopicAggregation Topic = "aggregation"
	TopicOuterJoin   Topic = "full-join-emulation"
)

// NoSolutionPlaceholder is recorded as the answer when an exercise without a
// reference solution is revealed.
const NoSolutionPlaceholder = "-- No reference solution available"

// NoHintMessage is shown when neither the catalog nor a hint provider has a
// hint for an exercise.
const NoHintMessage = "Hint unavailable for this exercise."

// ErrIndexOutOfRange is returned for an exercise index outside [0, Len()).
var ErrIndexOutOfRange = errors.New("exercise index out of range")

// Exercise is one static prompt with its optional solution and hint.
type Exercise struct {
	Index    int // zero-based, stable
	Topic    Topic
	Prompt   string
	Solution string
	Hint     string
}

// Number is the one-based exercise number shown to learners.
func (e Exercise) Number() int { return e.Index + 1 }

// Label returns the numbered prompt, e.g. "3) Books rated 4.5 or higher.".
func (e Exercise) Label() string {
	return fmt.Sprintf("%d) %s", e.Number(), e.Prompt)
}

// HasSolution reports whether a reference solution exists.
func (e Exercise) HasSolution() bool { return e.Solution != "" }

// HasHint reports whether the catalog carries a hint.
func (e Exercise) HasHint() bool { return e.Hint != "" }

// RevealText is the text recorded when the solution is revealed.
func (e Exercise) RevealText() string {
	if e.HasSolution() {
		return e.Solution
	}
	return NoSolutionPlaceholder
}

// All returns a copy of the catalog in index order.
func All() []Exercise {
	out := make([]Exercise, len(catalog))
	copy(out, catalog)
	return out
}

// Len returns the number of exercises.
func Len() int { return len(catalog) }

// Get returns exercise i.
func Get(i int) (Exercise, error) {
	if i < 0 || i >= len(catalog) {
		return Exercise{}, fmt.Errorf("get exercise %d: %w", i, ErrIndexOutOfRange)
	}
	return catalog[i], nil
}
