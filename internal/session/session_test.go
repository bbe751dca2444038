package session

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/abhisek/sqlpractice/internal/exercises"
	"github.com/abhisek/sqlpractice/internal/hints"
	"github.com/abhisek/sqlpractice/internal/llm"
	"github.com/abhisek/sqlpractice/internal/sqlexec"
	"github.com/abhisek/sqlpractice/internal/store"
)

func newTestSession(t *testing.T, opts Options) *Session {
	t.Helper()
	s, err := New(context.Background(), opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close(context.Background()) })
	return s
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSession_ZeroRowsDoNotCredit(t *testing.T) {
	s := newTestSession(t, Options{})
	ctx := context.Background()

	out := s.Execute(ctx, "SELECT * FROM authors WHERE id = 999999")
	if out.Result.Kind != sqlexec.KindTabular || out.Result.HasRows() {
		t.Fatalf("expected empty tabular result, got %+v", out.Result)
	}
	if out.Credited {
		t.Fatal("empty result must not credit")
	}
	st := s.State()
	if st.Statuses[0] != StatusLocked || st.CurrentIndex != 0 {
		t.Fatalf("state changed: %q/%d", st.Statuses[0], st.CurrentIndex)
	}

	out = s.Execute(ctx, "SELECT * FROM authors LIMIT 1")
	if !out.Credited || !out.Advanced {
		t.Fatalf("expected credit and advance, got %+v", out)
	}
	st = s.State()
	if st.Statuses[0] != StatusSolved || st.CurrentIndex != 1 {
		t.Fatalf("state = %q/%d, want solved/1", st.Statuses[0], st.CurrentIndex)
	}
	if st.Answers[0] != "SELECT * FROM authors LIMIT 1" {
		t.Fatalf("answer = %q", st.Answers[0])
	}
}

func TestSession_RevealLastExercise(t *testing.T) {
	s := newTestSession(t, Options{})
	ctx := context.Background()
	last := exercises.Len() - 1

	if err := s.JumpTo(ctx, last); err != nil {
		t.Fatalf("JumpTo: %v", err)
	}
	text := s.RevealSolution(ctx)

	st := s.State()
	if st.Statuses[last] != StatusSkipped {
		t.Fatalf("status = %q, want skipped", st.Statuses[last])
	}
	if st.Answers[last] != text || !strings.Contains(text, "UNION") || !strings.Contains(text, "LEFT JOIN") {
		t.Fatalf("answer = %q", st.Answers[last])
	}
	if st.CurrentIndex != last {
		t.Fatalf("CurrentIndex = %d, want %d", st.CurrentIndex, last)
	}

	// Executing at the last index credits without advancing.
	out := s.Execute(ctx, "SELECT 1")
	if !out.Credited || out.Advanced {
		t.Fatalf("outcome = %+v", out)
	}
	if s.State().Statuses[last] != StatusSolved {
		t.Fatal("expected solved after execute")
	}
}

func TestSession_FailureLeavesStateAlone(t *testing.T) {
	s := newTestSession(t, Options{})
	ctx := context.Background()

	s.RevealSolution(ctx)
	before := s.State()

	out := s.Execute(ctx, "SELEC * FROM books")
	if !out.Result.Failed() || out.Result.Rejected {
		t.Fatalf("expected engine failure, got %+v", out.Result)
	}
	if !strings.Contains(out.Result.ErrorText, "syntax error") {
		t.Errorf("error text = %q", out.Result.ErrorText)
	}

	after := s.State()
	if after.Statuses[0] != before.Statuses[0] || after.Answers[0] != before.Answers[0] || after.CurrentIndex != 0 {
		t.Fatalf("state changed on failure: %+v -> %+v", before, after)
	}
}

func TestSession_BlankInputRejected(t *testing.T) {
	st := openTestStore(t)
	s := newTestSession(t, Options{Events: st.EventRepo()})
	ctx := context.Background()

	for _, q := range []string{"", "   "} {
		out := s.Execute(ctx, q)
		if !out.Result.Rejected || out.Result.ErrorText != sqlexec.EmptyQueryMessage {
			t.Fatalf("Execute(%q) = %+v", q, out.Result)
		}
	}
	if got := s.State(); got.Statuses[0] != StatusLocked || got.CurrentIndex != 0 {
		t.Fatalf("state changed: %+v", got)
	}

	attempts, err := st.EventRepo().QueryAttempts(ctx, store.QueryOpts{SessionID: s.ID()})
	if err != nil {
		t.Fatalf("QueryAttempts: %v", err)
	}
	if len(attempts) != 0 {
		t.Fatalf("rejected input logged %d attempts", len(attempts))
	}
}

func TestSession_CountBooksPerAuthor(t *testing.T) {
	s := newTestSession(t, Options{})
	ctx := context.Background()

	if err := s.JumpTo(ctx, 17); err != nil {
		t.Fatalf("JumpTo: %v", err)
	}
	if !strings.Contains(s.Current().Prompt, "authors without books") {
		t.Fatalf("unexpected exercise 18: %q", s.Current().Prompt)
	}

	out := s.Execute(ctx, "SELECT a.name, COUNT(b.id) AS total FROM authors a LEFT JOIN books b ON b.author_id=a.id GROUP BY a.name")
	if len(out.Result.Rows) != 11 {
		t.Fatalf("rows = %d, want 11", len(out.Result.Rows))
	}
	if s.State().Statuses[17] != StatusSolved {
		t.Fatal("exercise 18 should be solved")
	}
}

func TestSession_ResetDatabaseKeepsProgress(t *testing.T) {
	s := newTestSession(t, Options{})
	ctx := context.Background()

	out := s.Execute(ctx, "DELETE FROM books")
	if !out.Credited {
		t.Fatalf("non-tabular statement should credit: %+v", out)
	}
	if res := s.Execute(ctx, "SELECT * FROM books"); res.Result.HasRows() {
		t.Fatal("books should be empty before reset")
	}

	if err := s.ResetDatabase(ctx); err != nil {
		t.Fatalf("ResetDatabase: %v", err)
	}
	res := s.Execute(ctx, "SELECT * FROM books")
	if len(res.Result.Rows) != 11 {
		t.Fatalf("books after reset = %d, want 11", len(res.Result.Rows))
	}
	if s.State().Statuses[0] != StatusSolved {
		t.Fatal("reset must not touch statuses")
	}
}

func TestSession_IndependentDatabases(t *testing.T) {
	a := newTestSession(t, Options{})
	b := newTestSession(t, Options{})
	ctx := context.Background()

	a.Execute(ctx, "DROP TABLE movies")

	if res := b.Execute(ctx, "SELECT * FROM movies"); len(res.Result.Rows) != 11 {
		t.Fatalf("session b sees %d movies, want 11", len(res.Result.Rows))
	}
	if a.ID() == b.ID() {
		t.Fatal("sessions share an ID")
	}
}

func TestSession_JumpOutOfRange(t *testing.T) {
	s := newTestSession(t, Options{})
	err := s.JumpTo(context.Background(), exercises.Len())
	if !errors.Is(err, exercises.ErrIndexOutOfRange) {
		t.Fatalf("err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestSession_HintUsesCatalogThenProvider(t *testing.T) {
	st := openTestStore(t)
	mock := llm.NewMockProvider(llm.MockJSON(`{"hint":"Use WHERE genre = ..."}`))
	s := newTestSession(t, Options{
		Events: st.EventRepo(),
		Hints:  hints.NewService(mock, hints.DefaultConfig()),
	})
	ctx := context.Background()

	s.Execute(ctx, "SELECT * FROM book")
	h := s.Hint(ctx)
	if h.Source != hints.SourceLLM {
		t.Fatalf("source = %q, want llm", h.Source)
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, "no such table") {
		t.Error("last error not passed to the provider")
	}

	if err := s.JumpTo(ctx, exercises.Len()-1); err != nil {
		t.Fatalf("JumpTo: %v", err)
	}
	if h := s.Hint(ctx); h.Source != hints.SourceCatalog {
		t.Fatalf("source = %q, want catalog", h.Source)
	}
	if s.State().Statuses[exercises.Len()-1] != StatusLocked {
		t.Fatal("hint must not change status")
	}
}

func TestSession_HintWithoutService(t *testing.T) {
	s := newTestSession(t, Options{})
	if h := s.Hint(context.Background()); h.Text != exercises.NoHintMessage {
		t.Fatalf("hint = %q", h.Text)
	}
}

func TestSession_HintLoggedUnderRestoredID(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	donor := newTestSession(t, Options{})
	snap := donor.Snapshot()

	s := newTestSession(t, Options{Events: st.EventRepo()})
	original := s.ID()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 20 {
			s.Hint(ctx)
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.Restore(ctx, snap); err != nil {
			t.Errorf("Restore: %v", err)
		}
	}()
	wg.Wait()
	s.Hint(ctx)

	rows, err := st.DB().QueryContext(ctx, "SELECT session_id FROM hint_events ORDER BY sequence")
	if err != nil {
		t.Fatalf("query hint events: %v", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			t.Fatalf("scan: %v", err)
		}
		if id != original && id != snap.SessionID {
			t.Errorf("hint logged under unknown session %q", id)
		}
		ids = append(ids, id)
	}
	if len(ids) != 21 {
		t.Fatalf("got %d hint events, want 21", len(ids))
	}
	if last := ids[len(ids)-1]; last != snap.SessionID {
		t.Errorf("last hint logged under %q, want restored %q", last, snap.SessionID)
	}
}

func TestSession_EventsAndSnapshots(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	s := newTestSession(t, Options{Events: st.EventRepo(), Snapshots: st.SnapshotRepo()})

	s.Execute(ctx, "SELECT * FROM books")
	s.Execute(ctx, "SELECT * FROM books WHERE id = -1")
	s.RevealSolution(ctx)

	attempts, err := st.EventRepo().QueryAttempts(ctx, store.QueryOpts{SessionID: s.ID()})
	if err != nil {
		t.Fatalf("QueryAttempts: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("attempts = %d, want 2", len(attempts))
	}
	if attempts[0].Credited || attempts[0].ResultKind != "tabular" || attempts[0].ExerciseIndex != 1 {
		t.Errorf("newest attempt = %+v", attempts[0].AttemptEventData)
	}
	if !attempts[1].Credited || attempts[1].RowCount != 11 {
		t.Errorf("oldest attempt = %+v", attempts[1].AttemptEventData)
	}

	sums, err := st.EventRepo().SessionSummaries(ctx, store.QueryOpts{})
	if err != nil {
		t.Fatalf("SessionSummaries: %v", err)
	}
	if len(sums) != 1 || sums[0].Solved != 1 || sums[0].Skipped != 1 || sums[0].Attempts != 2 {
		t.Fatalf("summaries = %+v", sums)
	}

	snap, err := st.SnapshotRepo().Latest(ctx)
	if err != nil || snap == nil {
		t.Fatalf("Latest: %v, %v", snap, err)
	}
	want := []string{"solved", "skipped"}
	for i, w := range want {
		if snap.Data.Statuses[i] != w {
			t.Errorf("snapshot status[%d] = %q, want %q", i, snap.Data.Statuses[i], w)
		}
	}
	if snap.Data.SessionID != s.ID() || snap.Data.CurrentIndex != 1 {
		t.Errorf("snapshot = %+v", snap.Data)
	}
}

func TestSession_Restore(t *testing.T) {
	ctx := context.Background()
	first := newTestSession(t, Options{})
	first.Execute(ctx, "SELECT * FROM books")
	first.JumpTo(ctx, 5)
	snap := first.Snapshot()

	second := newTestSession(t, Options{})
	if err := second.Restore(ctx, snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if second.ID() != first.ID() {
		t.Errorf("ID = %q, want %q", second.ID(), first.ID())
	}
	st := second.State()
	if st.Statuses[0] != StatusSolved || st.Answers[0] != "SELECT * FROM books" || st.CurrentIndex != 5 {
		t.Fatalf("restored state = %+v", st)
	}
}

func TestSession_RestoreRejectsMismatch(t *testing.T) {
	s := newTestSession(t, Options{})
	ctx := context.Background()

	tests := []struct {
		name string
		snap store.SnapshotData
	}{
		{"short", store.SnapshotData{Statuses: []string{"solved"}, Answers: []string{""}}},
		{"bad index", func() store.SnapshotData {
			d := s.Snapshot()
			d.CurrentIndex = 99
			return d
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Restore(ctx, tt.snap); !errors.Is(err, ErrSnapshotMismatch) {
				t.Fatalf("err = %v, want ErrSnapshotMismatch", err)
			}
		})
	}

	bad := s.Snapshot()
	bad.Statuses[0] = "finished"
	if err := s.Restore(ctx, bad); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestSession_CustomCatalog(t *testing.T) {
	s := newTestSession(t, Options{
		ID:        "fixed-id",
		Exercises: []exercises.Exercise{{Prompt: "Anything."}},
	})
	if s.ID() != "fixed-id" || len(s.Exercises()) != 1 {
		t.Fatalf("id/catalog = %q/%d", s.ID(), len(s.Exercises()))
	}
	s.Execute(context.Background(), "SELECT 1")
	if !s.Summary().Complete {
		t.Fatal("single-exercise session should be complete")
	}
}
