package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int    // max results (0 = unlimited)
	After     int64  // sequence > After
	SessionID string // restrict to one session when set
}

// Session event actions.
const (
	ActionStart   = "start"
	ActionResume  = "resume"
	ActionSolve   = "solve"
	ActionReveal  = "reveal"
	ActionJump    = "jump"
	ActionResetDB = "reset_db"
	ActionEnd     = "end"
)

// SessionEventData records a state-changing event of one learner session.
// Solved and Skipped are the session's counts after the event.
type SessionEventData struct {
	SessionID     string
	Action        string
	ExerciseIndex int
	Solved        int
	Skipped       int
	Detail        string
}

// AttemptEventData records one executed statement.
type AttemptEventData struct {
	SessionID     string
	ExerciseIndex int
	QueryText     string
	ResultKind    string // tabular, non_tabular, failure
	RowCount      int
	ErrorText     string
	Credited      bool // the attempt marked the exercise solved
}

// AttemptRecord is a persisted attempt.
type AttemptRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AttemptEventData
}

// HintEventData records a hint shown to the learner.
type HintEventData struct {
	SessionID     string
	ExerciseIndex int
	Source        string // catalog, llm, none
	HintText      string
}

// SubmissionEventData records one artifact upload.
type SubmissionEventData struct {
	SessionID    string
	LearnerName  string
	Path         string
	StatusCode   int
	Success      bool
	ErrorMessage string
}

// SessionSummaryRecord summarises one session for the history view.
type SessionSummaryRecord struct {
	SessionID    string
	Started      time.Time
	LastActivity time.Time
	LastAction   string
	Solved       int
	Skipped      int
	Attempts     int
	Submitted    bool
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a persisted LLM request.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStat aggregates LLM usage for one purpose.
type LLMUsageStat struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAttemptEvent(ctx context.Context, data AttemptEventData) error
	AppendHintEvent(ctx context.Context, data HintEventData) error
	AppendSubmissionEvent(ctx context.Context, data SubmissionEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryAttempts returns attempts, newest first.
	QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error)

	// SessionSummaries returns one record per session, most recently active first.
	SessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStat, error)
}

// SnapshotData captures one session's progress at a point in time.
type SnapshotData struct {
	Version      int      `json:"version"`
	SessionID    string   `json:"session_id"`
	Statuses     []string `json:"statuses"`
	Answers      []string `json:"answers"`
	CurrentIndex int      `json:"current_index"`
}

// Snapshot represents a point-in-time capture of learner progress.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages progress snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error

	// DeleteAll removes every snapshot.
	DeleteAll(ctx context.Context) error
}

func nowMillis() int64 {
	return time.Now().UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
