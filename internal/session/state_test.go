package session

import (
	"errors"
	"testing"
	"time"

	"github.com/abhisek/sqlpractice/internal/exercises"
	"github.com/abhisek/sqlpractice/internal/sqlexec"
)

func tabular(rows int) sqlexec.Result {
	res := sqlexec.Result{Kind: sqlexec.KindTabular, Columns: []string{"id"}}
	for i := range rows {
		res.Rows = append(res.Rows, []any{int64(i + 1)})
	}
	return res
}

func TestNewSessionState(t *testing.T) {
	s := NewSessionState(4)
	if s.Len() != 4 || len(s.Answers) != 4 {
		t.Fatalf("lengths = %d/%d, want 4/4", s.Len(), len(s.Answers))
	}
	for i, st := range s.Statuses {
		if st != StatusLocked {
			t.Errorf("status[%d] = %q, want locked", i, st)
		}
		if s.Answers[i] != "" {
			t.Errorf("answer[%d] = %q, want empty", i, s.Answers[i])
		}
	}
	if s.CurrentIndex != 0 {
		t.Errorf("CurrentIndex = %d, want 0", s.CurrentIndex)
	}
}

func TestHandleResult(t *testing.T) {
	tests := []struct {
		name         string
		start        int
		res          sqlexec.Result
		wantCredited bool
		wantAdvanced bool
		wantIndex    int
		wantStatus   Status
	}{
		{"rows credit and advance", 0, tabular(1), true, true, 1, StatusSolved},
		{"zero rows do not credit", 0, tabular(0), false, false, 0, StatusLocked},
		{"non-tabular credits", 1, sqlexec.Result{Kind: sqlexec.KindNonTabular, Message: sqlexec.AckMessage}, true, true, 2, StatusSolved},
		{"failure does not credit", 1, sqlexec.Result{Kind: sqlexec.KindFailure, ErrorText: "near \"SELEC\": syntax error"}, false, false, 1, StatusLocked},
		{"last exercise does not advance", 2, tabular(3), true, false, 2, StatusSolved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSessionState(3)
			s.CurrentIndex = tt.start

			out := HandleResult(s, "SELECT 1", tt.res)

			if out.Credited != tt.wantCredited || out.Advanced != tt.wantAdvanced {
				t.Errorf("credited/advanced = %v/%v, want %v/%v", out.Credited, out.Advanced, tt.wantCredited, tt.wantAdvanced)
			}
			if out.Index != tt.start {
				t.Errorf("Index = %d, want %d", out.Index, tt.start)
			}
			if s.CurrentIndex != tt.wantIndex {
				t.Errorf("CurrentIndex = %d, want %d", s.CurrentIndex, tt.wantIndex)
			}
			if s.Statuses[tt.start] != tt.wantStatus {
				t.Errorf("status = %q, want %q", s.Statuses[tt.start], tt.wantStatus)
			}
			wantAnswer := ""
			if tt.wantCredited {
				wantAnswer = "SELECT 1"
			}
			if s.Answers[tt.start] != wantAnswer {
				t.Errorf("answer = %q, want %q", s.Answers[tt.start], wantAnswer)
			}
		})
	}
}

func TestHandleResult_FailureKeepsPriorState(t *testing.T) {
	for _, prior := range []Status{StatusLocked, StatusSkipped, StatusSolved} {
		s := NewSessionState(2)
		s.Statuses[0] = prior
		s.Answers[0] = "previous"

		HandleResult(s, "SELEC * FROM books", sqlexec.Result{Kind: sqlexec.KindFailure, ErrorText: "syntax error"})

		if s.Statuses[0] != prior || s.Answers[0] != "previous" || s.CurrentIndex != 0 {
			t.Errorf("prior %q: state changed to %q/%q/%d", prior, s.Statuses[0], s.Answers[0], s.CurrentIndex)
		}
	}
}

func TestRevealSolution(t *testing.T) {
	s := NewSessionState(2)
	s.CurrentIndex = 1

	text := RevealSolution(s, exercises.Exercise{Index: 1, Solution: "SELECT * FROM movies;"})

	if text != "SELECT * FROM movies;" {
		t.Errorf("text = %q", text)
	}
	if s.Statuses[1] != StatusSkipped || s.Answers[1] != text {
		t.Errorf("state = %q/%q", s.Statuses[1], s.Answers[1])
	}
	if s.CurrentIndex != 1 {
		t.Errorf("CurrentIndex = %d, reveal must not advance", s.CurrentIndex)
	}

	// A solved exercise can be skipped and solved again.
	HandleResult(s, "SELECT 1", tabular(1))
	if s.Statuses[1] != StatusSolved {
		t.Errorf("status after re-solve = %q", s.Statuses[1])
	}
}

func TestRevealSolution_Placeholder(t *testing.T) {
	s := NewSessionState(1)
	text := RevealSolution(s, exercises.Exercise{})
	if text != exercises.NoSolutionPlaceholder {
		t.Fatalf("text = %q, want placeholder", text)
	}
	if s.Statuses[0] != StatusSkipped {
		t.Fatalf("placeholder reveal should still skip, got %q", s.Statuses[0])
	}
}

func TestJumpTo(t *testing.T) {
	s := NewSessionState(5)
	s.Statuses[3] = StatusSolved

	if err := JumpTo(s, 3); err != nil {
		t.Fatalf("JumpTo: %v", err)
	}
	if s.CurrentIndex != 3 || s.Statuses[3] != StatusSolved {
		t.Fatalf("state after jump = %d/%q", s.CurrentIndex, s.Statuses[3])
	}

	for _, j := range []int{-1, 5} {
		err := JumpTo(s, j)
		if !errors.Is(err, exercises.ErrIndexOutOfRange) {
			t.Errorf("JumpTo(%d) err = %v, want ErrIndexOutOfRange", j, err)
		}
	}
	if s.CurrentIndex != 3 {
		t.Errorf("failed jump moved index to %d", s.CurrentIndex)
	}
}

func TestCountsAndCompletion(t *testing.T) {
	s := NewSessionState(3)
	if s.IsComplete() {
		t.Fatal("fresh state should not be complete")
	}

	s.Statuses[0] = StatusSolved
	s.Statuses[1] = StatusSkipped
	if got := s.Counts(); got != (Counts{Solved: 1, Skipped: 1, Locked: 1}) {
		t.Fatalf("Counts = %+v", got)
	}

	s.Statuses[2] = StatusSolved
	if !s.IsComplete() {
		t.Fatal("expected complete")
	}
	if NewSessionState(0).IsComplete() {
		t.Fatal("empty catalog should not count as complete")
	}
}

func TestClone_IsDeep(t *testing.T) {
	s := NewSessionState(2)
	c := s.Clone()
	c.Statuses[0] = StatusSolved
	c.Answers[0] = "x"
	if s.Statuses[0] != StatusLocked || s.Answers[0] != "" {
		t.Fatal("clone shares backing arrays")
	}
}

func TestParseStatus(t *testing.T) {
	for _, st := range []Status{StatusLocked, StatusSkipped, StatusSolved} {
		got, err := ParseStatus(string(st))
		if err != nil || got != st {
			t.Errorf("ParseStatus(%q) = %q, %v", st, got, err)
		}
	}
	if _, err := ParseStatus("done"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestBuildSummary(t *testing.T) {
	s := NewSessionState(4)
	s.Statuses[0] = StatusSolved
	s.Statuses[1] = StatusSkipped

	sum := BuildSummary("abc", s, 90*time.Second)
	if sum.Total != 4 || sum.Solved != 1 || sum.Skipped != 1 || sum.Locked != 2 {
		t.Fatalf("summary = %+v", sum)
	}
	if sum.Percent() != 50 {
		t.Errorf("Percent = %d, want 50", sum.Percent())
	}
	if sum.Complete {
		t.Error("expected incomplete")
	}
}
