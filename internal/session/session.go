// Package session owns one learner's practice session: the progress state
// machine, the learner's private practice database and the event log
// entries each event produces.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/sqlpractice/internal/dataset"
	"github.com/abhisek/sqlpractice/internal/exercises"
	"github.com/abhisek/sqlpractice/internal/hints"
	"github.com/abhisek/sqlpractice/internal/sqlexec"
	"github.com/abhisek/sqlpractice/internal/store"
)

// snapshotVersion is bumped whenever store.SnapshotData changes shape.
const snapshotVersion = 1

// ErrSnapshotMismatch is returned when a snapshot does not fit the catalog.
var ErrSnapshotMismatch = errors.New("snapshot does not match exercise catalog")

// Options configures a new Session. Only the zero value of every field is
// needed for a working, unlogged session over the built-in catalog.
type Options struct {
	// ID identifies the session in the event log. A random UUID is used
	// when empty.
	ID string

	// Script seeds the practice database. Defaults to dataset.Script.
	Script string

	// Exercises is the catalog. Defaults to exercises.All().
	Exercises []exercises.Exercise

	Events    store.EventRepo    // optional
	Snapshots store.SnapshotRepo // optional
	Hints     *hints.Service     // optional
}

// Session is a per-learner context: its own in-memory engine, its own
// SessionState and its own event stream. Events are serialized, so a
// Session is safe for use by concurrent HTTP handlers.
type Session struct {
	mu sync.Mutex

	id      string
	script  string
	catalog []exercises.Exercise
	state   *SessionState
	started time.Time

	engine *sqlexec.Engine
	exec   *sqlexec.Executor

	events    store.EventRepo
	snapshots store.SnapshotRepo
	hints     *hints.Service

	lastError string
}

// New opens a fresh practice database, seeds it and returns a session
// positioned on the first exercise.
func New(ctx context.Context, opts Options) (*Session, error) {
	if opts.ID == "" {
		opts.ID = uuid.New().String()
	}
	if opts.Script == "" {
		opts.Script = dataset.Script
	}
	if opts.Exercises == nil {
		opts.Exercises = exercises.All()
	}

	engine, err := sqlexec.Open(ctx)
	if err != nil {
		return nil, err
	}
	if err := dataset.Reset(ctx, engine.Conn(), opts.Script); err != nil {
		engine.Close()
		return nil, err
	}

	s := &Session{
		id:        opts.ID,
		script:    opts.Script,
		catalog:   opts.Exercises,
		state:     NewSessionState(len(opts.Exercises)),
		started:   time.Now(),
		engine:    engine,
		exec:      sqlexec.NewExecutor(engine.Conn()),
		events:    opts.Events,
		snapshots: opts.Snapshots,
		hints:     opts.Hints,
	}
	s.logSession(ctx, store.ActionStart, 0, "")
	return s, nil
}

// ID returns the session identifier. Restore may replace it.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Exercises returns the catalog this session runs over.
func (s *Session) Exercises() []exercises.Exercise {
	return s.catalog
}

// Current returns the exercise being shown.
func (s *Session) Current() exercises.Exercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog[s.state.CurrentIndex]
}

// State returns a copy of the progress state.
func (s *Session) State() *SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Summary returns the progress summary.
func (s *Session) Summary() *SessionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BuildSummary(s.id, s.state, time.Since(s.started))
}

// Execute runs sql against the current exercise and applies the result.
func (s *Session) Execute(ctx context.Context, sql string) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.exec.Execute(ctx, sql)
	out := HandleResult(s.state, sql, res)

	if res.Failed() {
		s.lastError = res.ErrorText
	} else {
		s.lastError = ""
	}

	if !res.Rejected {
		s.logAttempt(ctx, sql, out)
	}
	if out.Credited {
		s.logSession(ctx, store.ActionSolve, out.Index, "")
		s.saveSnapshot(ctx)
	}
	return out
}

// RevealSolution marks the current exercise skipped and returns the text
// recorded as its answer.
func (s *Session) RevealSolution(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.state.CurrentIndex
	text := RevealSolution(s.state, s.catalog[i])
	s.logSession(ctx, store.ActionReveal, i, "")
	s.saveSnapshot(ctx)
	return text
}

// JumpTo moves to exercise j (zero-based).
func (s *Session) JumpTo(ctx context.Context, j int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.state.CurrentIndex
	if err := JumpTo(s.state, j); err != nil {
		return err
	}
	s.logSession(ctx, store.ActionJump, j, fmt.Sprintf("from %d", from))
	s.saveSnapshot(ctx)
	return nil
}

// ResetDatabase re-seeds the practice database. Progress is untouched.
func (s *Session) ResetDatabase(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := dataset.Reset(ctx, s.engine.Conn(), s.script); err != nil {
		return err
	}
	s.logSession(ctx, store.ActionResetDB, s.state.CurrentIndex, "")
	return nil
}

// Hint returns a hint for the current exercise. It never changes progress.
func (s *Session) Hint(ctx context.Context) hints.Hint {
	s.mu.Lock()
	id, i := s.id, s.state.CurrentIndex
	in := hints.Input{
		Exercise:   s.catalog[i],
		LastAnswer: s.state.Answers[i],
		LastError:  s.lastError,
	}
	s.mu.Unlock()

	// Generation may call out to a provider, so it runs unlocked.
	h := s.hints.Hint(ctx, in)

	if s.events != nil {
		err := s.events.AppendHintEvent(ctx, store.HintEventData{
			SessionID:     id,
			ExerciseIndex: i,
			Source:        string(h.Source),
			HintText:      h.Text,
		})
		warn("log hint event", err)
	}
	return h
}

// Snapshot captures the current progress.
func (s *Session) Snapshot() store.SnapshotData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotData()
}

// Restore replaces progress with snap and adopts its session ID. The
// practice database is not touched.
func (s *Session) Restore(ctx context.Context, snap store.SnapshotData) error {
	n := len(s.catalog)
	if len(snap.Statuses) != n || len(snap.Answers) != n {
		return fmt.Errorf("restore session: %w (%d exercises, snapshot has %d)", ErrSnapshotMismatch, n, len(snap.Statuses))
	}
	if snap.CurrentIndex < 0 || snap.CurrentIndex >= n {
		return fmt.Errorf("restore session: %w (current index %d)", ErrSnapshotMismatch, snap.CurrentIndex)
	}

	state := NewSessionState(n)
	for i, raw := range snap.Statuses {
		st, err := ParseStatus(raw)
		if err != nil {
			return fmt.Errorf("restore session: %w", err)
		}
		state.Statuses[i] = st
	}
	copy(state.Answers, snap.Answers)
	state.CurrentIndex = snap.CurrentIndex

	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.SessionID != "" {
		s.id = snap.SessionID
	}
	s.state = state
	s.logSession(ctx, store.ActionResume, state.CurrentIndex, "restored from snapshot")
	return nil
}

// Close ends the session and releases its practice database.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logSession(ctx, store.ActionEnd, s.state.CurrentIndex, "")
	return s.engine.Close()
}

func (s *Session) snapshotData() store.SnapshotData {
	statuses := make([]string, len(s.state.Statuses))
	for i, st := range s.state.Statuses {
		statuses[i] = string(st)
	}
	return store.SnapshotData{
		Version:      snapshotVersion,
		SessionID:    s.id,
		Statuses:     statuses,
		Answers:      append([]string(nil), s.state.Answers...),
		CurrentIndex: s.state.CurrentIndex,
	}
}

func (s *Session) saveSnapshot(ctx context.Context) {
	if s.snapshots == nil {
		return
	}
	err := s.snapshots.Save(ctx, &store.Snapshot{
		Timestamp: time.Now(),
		Data:      s.snapshotData(),
	})
	warn("save snapshot", err)
}

func (s *Session) logSession(ctx context.Context, action string, index int, detail string) {
	if s.events == nil {
		return
	}
	c := s.state.Counts()
	err := s.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:     s.id,
		Action:        action,
		ExerciseIndex: index,
		Solved:        c.Solved,
		Skipped:       c.Skipped,
		Detail:        detail,
	})
	warn("log session event", err)
}

func (s *Session) logAttempt(ctx context.Context, sql string, out Outcome) {
	if s.events == nil {
		return
	}
	err := s.events.AppendAttemptEvent(ctx, store.AttemptEventData{
		SessionID:     s.id,
		ExerciseIndex: out.Index,
		QueryText:     sql,
		ResultKind:    out.Result.Kind.String(),
		RowCount:      len(out.Result.Rows),
		ErrorText:     out.Result.ErrorText,
		Credited:      out.Credited,
	})
	warn("log attempt event", err)
}

// warn reports a persistence failure without failing the learner's event.
func warn(what string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s: %v\n", what, err)
	}
}
