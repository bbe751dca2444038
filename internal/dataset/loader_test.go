package dataset

import (
	"context"
	"testing"

	"github.com/abhisek/sqlpractice/internal/sqlexec"
)

func openSeeded(t *testing.T) *sqlexec.Engine {
	t.Helper()
	e, err := sqlexec.Open(context.Background())
	if err != nil {
		t.Fatalf("open engine: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	if err := Reset(context.Background(), e.Conn(), Script); err != nil {
		t.Fatalf("reset: %v", err)
	}
	return e
}

func TestReset_SeedsElevenRowsPerTable(t *testing.T) {
	e := openSeeded(t)

	fps, err := Fingerprint(context.Background(), e.Conn())
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	if len(fps) != len(Tables) {
		t.Fatalf("got %d fingerprints, want %d", len(fps), len(Tables))
	}
	for i, fp := range fps {
		if fp.Table != Tables[i] {
			t.Errorf("fps[%d].Table = %q, want %q", i, fp.Table, Tables[i])
		}
		if fp.Rows != 11 {
			t.Errorf("%s rows = %d, want 11", fp.Table, fp.Rows)
		}
	}
}

func TestReset_Idempotent(t *testing.T) {
	e := openSeeded(t)
	ctx := context.Background()

	first, err := Fingerprint(ctx, e.Conn())
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := Reset(ctx, e.Conn(), Script); err != nil {
			t.Fatalf("reset #%d: %v", i+2, err)
		}
		got, err := Fingerprint(ctx, e.Conn())
		if err != nil {
			t.Fatalf("fingerprint: %v", err)
		}
		for j := range got {
			if got[j] != first[j] {
				t.Errorf("reset #%d: %s = %+v, want %+v", i+2, got[j].Table, got[j], first[j])
			}
		}
	}
}

func TestReset_ReplacesMutatedState(t *testing.T) {
	e := openSeeded(t)
	ctx := context.Background()
	ex := sqlexec.NewExecutor(e.Conn())

	want, err := Fingerprint(ctx, e.Conn())
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}

	for _, q := range []string{
		"DELETE FROM books WHERE id > 5",
		"UPDATE authors SET name = 'x'",
		"DROP TABLE movies",
	} {
		if res := ex.Execute(ctx, q); res.Failed() {
			t.Fatalf("%s: %s", q, res.ErrorText)
		}
	}

	// Uncommitted work is discarded too.
	if _, err := e.Conn().ExecContext(ctx, "BEGIN"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := e.Conn().ExecContext(ctx, "DELETE FROM directors"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if err := Reset(ctx, e.Conn(), Script); err != nil {
		t.Fatalf("reset: %v", err)
	}
	got, err := Fingerprint(ctx, e.Conn())
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("%s = %+v, want %+v", got[i].Table, got[i], want[i])
		}
	}
}

func TestSanitize_StripsMySQLFragments(t *testing.T) {
	in := "SET FOREIGN_KEY_CHECKS=0;\nDROP TABLE IF EXISTS x;\nset foreign_key_checks = 1;  \nSELECT 1;"
	want := "DROP TABLE IF EXISTS x;\nSELECT 1;"
	if got := Sanitize(in); got != want {
		t.Errorf("Sanitize() = %q, want %q", got, want)
	}
}

func TestReset_AcceptsMySQLFlavouredScript(t *testing.T) {
	e := openSeeded(t)
	script := "SET FOREIGN_KEY_CHECKS=0;\n" + Script + "\nSET FOREIGN_KEY_CHECKS=1;"
	if err := Reset(context.Background(), e.Conn(), script); err != nil {
		t.Fatalf("reset: %v", err)
	}
}

func TestFingerprint_MissingTable(t *testing.T) {
	e, err := sqlexec.Open(context.Background())
	if err != nil {
		t.Fatalf("open engine: %v", err)
	}
	defer e.Close()

	if _, err := Fingerprint(context.Background(), e.Conn()); err == nil {
		t.Fatal("expected error for unseeded engine")
	}
}
