package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	_, err := r.insertEvent(ctx, tableSessionEvents,
		[]string{"session_id", "action", "exercise_index", "solved", "skipped", "detail"},
		[]any{data.SessionID, data.Action, data.ExerciseIndex, data.Solved, data.Skipped, data.Detail},
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAttemptEvent(ctx context.Context, data AttemptEventData) error {
	_, err := r.insertEvent(ctx, tableAttemptEvents,
		[]string{"session_id", "exercise_index", "query_text", "result_kind", "row_count", "error_text", "credited"},
		[]any{data.SessionID, data.ExerciseIndex, data.QueryText, data.ResultKind, data.RowCount, data.ErrorText, boolInt(data.Credited)},
	)
	if err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error) {
	b := builder()
	sel := b.Select("id", "sequence", "timestamp", "session_id", "exercise_index",
		"query_text", "result_kind", "row_count", "error_text", "credited").
		From(b.Table(tableAttemptEvents)).
		OrderBy(entsql.Desc("sequence"))
	applyOpts(sel, opts)

	var rows entsql.Rows
	if err := queryRows(ctx, r.drv, sel, &rows); err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var records []AttemptRecord
	for rows.Next() {
		var (
			rec AttemptRecord
			ts  int64
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.SessionID, &rec.ExerciseIndex,
			&rec.QueryText, &rec.ResultKind, &rec.RowCount, &rec.ErrorText, &rec.Credited); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	return records, nil
}

func (r *eventRepo) SessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	b := builder()
	sel := b.Select(
		"session_id",
		entsql.As(entsql.Min("timestamp"), "started"),
		entsql.As(entsql.Max("timestamp"), "last_ts"),
		entsql.As(entsql.Max("sequence"), "last_seq"),
	).
		From(b.Table(tableSessionEvents)).
		GroupBy("session_id").
		OrderBy(entsql.Desc("last_seq"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	type group struct {
		id      string
		started int64
		last    int64
		lastSeq int64
	}

	var groups []group
	var rows entsql.Rows
	if err := queryRows(ctx, r.drv, sel, &rows); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	for rows.Next() {
		var g group
		if err := rows.Scan(&g.id, &g.started, &g.last, &g.lastSeq); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		groups = append(groups, g)
	}
	err := rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}

	records := make([]SessionSummaryRecord, 0, len(groups))
	for _, g := range groups {
		rec := SessionSummaryRecord{
			SessionID:    g.id,
			Started:      fromMillis(g.started),
			LastActivity: fromMillis(g.last),
		}
		if err := r.latestCounts(ctx, g.lastSeq, &rec); err != nil {
			return nil, err
		}

		rec.Attempts, err = r.count(ctx, tableAttemptEvents, entsql.EQ("session_id", g.id))
		if err != nil {
			return nil, err
		}
		submitted, err := r.count(ctx, tableSubmissionEvents,
			entsql.And(entsql.EQ("session_id", g.id), entsql.EQ("success", 1)))
		if err != nil {
			return nil, err
		}
		rec.Submitted = submitted > 0

		records = append(records, rec)
	}
	return records, nil
}

// latestCounts fills the action and counts recorded by the event at seq.
func (r *eventRepo) latestCounts(ctx context.Context, seq int64, rec *SessionSummaryRecord) error {
	b := builder()
	sel := b.Select("action", "solved", "skipped").
		From(b.Table(tableSessionEvents)).
		Where(entsql.EQ("sequence", seq))

	var rows entsql.Rows
	if err := queryRows(ctx, r.drv, sel, &rows); err != nil {
		return fmt.Errorf("query latest session event: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&rec.LastAction, &rec.Solved, &rec.Skipped); err != nil {
			return fmt.Errorf("scan latest session event: %w", err)
		}
	}
	return rows.Err()
}

// count returns the number of rows in table matching pred.
func (r *eventRepo) count(ctx context.Context, table string, pred *entsql.Predicate) (int, error) {
	b := builder()
	sel := b.Select(entsql.Count("*")).From(b.Table(table)).Where(pred)

	var rows entsql.Rows
	if err := queryRows(ctx, r.drv, sel, &rows); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("count %s: %w", table, err)
		}
	}
	return n, rows.Err()
}

// applyOpts adds the common filters and limit to an event query.
func applyOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.SessionID != "" {
		sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}
