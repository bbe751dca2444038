package store

import (
	"context"
	"encoding/json"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// snapshotRepo implements SnapshotRepo on the ent SQL driver.
type snapshotRepo struct {
	drv dialect.ExecQuerier
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	ts := snap.Timestamp
	if ts.IsZero() {
		ts = fromMillis(nowMillis())
	}

	ins := builder().Insert(tableSnapshots).
		Columns("sequence", "timestamp", "session_id", "data").
		Values(snap.Sequence, ts.UTC().UnixMilli(), snap.Data.SessionID, string(data))
	if _, err := execQuerier(ctx, r.drv, ins); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	b := builder()
	sel := b.Select("id", "sequence", "timestamp", "data").
		From(b.Table(tableSnapshots)).
		OrderBy(entsql.Desc("timestamp"), entsql.Desc("id")).
		Limit(1)

	var rows entsql.Rows
	if err := queryRows(ctx, r.drv, sel, &rows); err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query latest snapshot: %w", err)
		}
		return nil, nil
	}

	var (
		snap Snapshot
		ts   int64
		raw  string
	)
	if err := rows.Scan(&snap.ID, &snap.Sequence, &ts, &raw); err != nil {
		return nil, fmt.Errorf("scan snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &snap.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	snap.Timestamp = fromMillis(ts)
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	// Find the newest snapshot that falls outside the keep window.
	b := builder()
	sel := b.Select("id").
		From(b.Table(tableSnapshots)).
		OrderBy(entsql.Desc("timestamp"), entsql.Desc("id")).
		Offset(keep).
		Limit(1)

	var rows entsql.Rows
	if err := queryRows(ctx, r.drv, sel, &rows); err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}
	var threshold int
	found := rows.Next()
	if found {
		if err := rows.Scan(&threshold); err != nil {
			rows.Close()
			return fmt.Errorf("scan prune threshold: %w", err)
		}
	}
	err := rows.Err()
	rows.Close()
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}
	if !found {
		return nil // fewer than keep snapshots exist
	}

	del := builder().Delete(tableSnapshots).Where(entsql.LTE("id", threshold))
	if _, err := execQuerier(ctx, r.drv, del); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

func (r *snapshotRepo) DeleteAll(ctx context.Context) error {
	if _, err := execQuerier(ctx, r.drv, builder().Delete(tableSnapshots)); err != nil {
		return fmt.Errorf("delete snapshots: %w", err)
	}
	return nil
}
