package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const (
	tableSessionEvents    = "session_events"
	tableAttemptEvents    = "attempt_events"
	tableHintEvents       = "hint_events"
	tableSubmissionEvents = "submission_events"
	tableLLMEvents        = "llm_request_events"
	tableSnapshots        = "snapshots"
)

// builder returns a SQL builder for the store's dialect.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// eventColumns are shared by every event table: a row id, the global
// sequence number and a UTC timestamp in unix milliseconds.
const eventColumns = `id INTEGER PRIMARY KEY AUTOINCREMENT,
	sequence INTEGER NOT NULL UNIQUE,
	timestamp INTEGER NOT NULL`

func text(name string) string    { return name + " TEXT NOT NULL DEFAULT ''" }
func integer(name string) string { return name + " INTEGER NOT NULL DEFAULT 0" }

func eventTable(name string, cols ...string) string {
	return createTable(name, append([]string{eventColumns}, cols...)...)
}

func createTable(name string, cols ...string) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", name, strings.Join(cols, ",\n\t"))
}

// migrate creates every table and index the store needs. It is safe to run
// against an existing database.
func migrate(ctx context.Context, drv dialect.Driver) error {
	tables := []string{
		eventTable(tableSessionEvents,
			text("session_id"),
			text("action"),
			integer("exercise_index"),
			integer("solved"),
			integer("skipped"),
			text("detail"),
		),
		eventTable(tableAttemptEvents,
			text("session_id"),
			integer("exercise_index"),
			text("query_text"),
			text("result_kind"),
			integer("row_count"),
			text("error_text"),
			integer("credited"),
		),
		eventTable(tableHintEvents,
			text("session_id"),
			integer("exercise_index"),
			text("source"),
			text("hint_text"),
		),
		eventTable(tableSubmissionEvents,
			text("session_id"),
			text("learner_name"),
			text("path"),
			integer("status_code"),
			integer("success"),
			text("error_message"),
		),
		eventTable(tableLLMEvents,
			text("provider"),
			text("model"),
			text("purpose"),
			integer("input_tokens"),
			integer("output_tokens"),
			integer("latency_ms"),
			integer("success"),
			text("error_message"),
			text("request_body"),
			text("response_body"),
		),
		createTable(tableSnapshots,
			"id INTEGER PRIMARY KEY AUTOINCREMENT",
			integer("sequence"),
			"timestamp INTEGER NOT NULL",
			text("session_id"),
			text("data"),
		),
	}
	for _, ddl := range tables {
		if err := drv.Exec(ctx, ddl, []any{}, nil); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS session_events_session_id ON session_events (session_id)",
		"CREATE INDEX IF NOT EXISTS attempt_events_session_id ON attempt_events (session_id)",
		"CREATE INDEX IF NOT EXISTS llm_request_events_purpose ON llm_request_events (purpose)",
		"CREATE INDEX IF NOT EXISTS snapshots_timestamp ON snapshots (timestamp)",
	}
	for _, idx := range indexes {
		if err := drv.Exec(ctx, idx, []any{}, nil); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// execQuerier runs a builder statement and returns its result.
func execQuerier(ctx context.Context, drv dialect.ExecQuerier, q entsql.Querier) (sql.Result, error) {
	query, args := q.Query()
	if args == nil {
		args = []any{}
	}
	var res sql.Result
	if err := drv.Exec(ctx, query, args, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// queryRows runs a builder query; the caller must close rows.
func queryRows(ctx context.Context, drv dialect.ExecQuerier, q entsql.Querier, rows *entsql.Rows) error {
	query, args := q.Query()
	if args == nil {
		args = []any{}
	}
	return drv.Query(ctx, query, args, rows)
}
