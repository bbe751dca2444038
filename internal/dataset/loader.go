// Package dataset owns the fixed books/authors/movies/directors practice
// data and the operation that restores it.
package dataset

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"

	"github.com/abhisek/sqlpractice/internal/sqlexec"
)

// mysqlFragments matches MySQL-only statements that SQLite rejects.
var mysqlFragments = regexp.MustCompile(`(?i)SET\s+FOREIGN_KEY_CHECKS\s*=\s*\d+;\s*`)

// Reset discards any uncommitted work on conn and runs script as a single
// batch. With the default Script the result is identical on every call.
func Reset(ctx context.Context, conn sqlexec.Conn, script string) error {
	if err := sqlexec.Rollback(ctx, conn); err != nil {
		return fmt.Errorf("rollback pending work: %w", err)
	}

	script = Sanitize(script)
	if _, err := conn.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("run reset script: %w", err)
	}
	return nil
}

// Sanitize strips MySQL-specific fragments from a reset script.
func Sanitize(script string) string {
	return mysqlFragments.ReplaceAllString(script, "")
}

// TableFingerprint summarises one table's contents.
type TableFingerprint struct {
	Table    string
	Rows     int
	Checksum string // hex sha256 over all rows ordered by id
}

// Fingerprint computes a row count and content checksum for every practice
// table. Missing tables produce an error.
func Fingerprint(ctx context.Context, conn sqlexec.Conn) ([]TableFingerprint, error) {
	out := make([]TableFingerprint, 0, len(Tables))
	for _, table := range Tables {
		fp, err := fingerprintTable(ctx, conn, table)
		if err != nil {
			return nil, err
		}
		out = append(out, fp)
	}
	return out, nil
}

func fingerprintTable(ctx context.Context, conn sqlexec.Conn, table string) (TableFingerprint, error) {
	rows, err := conn.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s ORDER BY id", table))
	if err != nil {
		return TableFingerprint{}, fmt.Errorf("fingerprint %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return TableFingerprint{}, fmt.Errorf("fingerprint %s: %w", table, err)
	}

	h := sha256.New()
	count := 0
	for rows.Next() {
		cells := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return TableFingerprint{}, fmt.Errorf("fingerprint %s: %w", table, err)
		}
		for _, c := range cells {
			if b, ok := c.([]byte); ok {
				c = string(b)
			}
			fmt.Fprintf(h, "%v\x1f", c)
		}
		h.Write([]byte{'\n'})
		count++
	}
	if err := rows.Err(); err != nil {
		return TableFingerprint{}, fmt.Errorf("fingerprint %s: %w", table, err)
	}

	return TableFingerprint{
		Table:    table,
		Rows:     count,
		Checksum: hex.EncodeToString(h.Sum(nil)),
	}, nil
}
