package exercises

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/sqlpractice/internal/dataset"
	"github.com/abhisek/sqlpractice/internal/sqlexec"
)

func TestCatalogShape(t *testing.T) {
	all := All()
	if len(all) != 20 {
		t.Fatalf("len(All()) = %d, want 20", len(all))
	}
	if Len() != len(all) {
		t.Errorf("Len() = %d, want %d", Len(), len(all))
	}
	for i, ex := range all {
		if ex.Index != i {
			t.Errorf("exercise %d has Index %d", i, ex.Index)
		}
		if ex.Prompt == "" {
			t.Errorf("exercise %d has empty prompt", i)
		}
		if !ex.HasSolution() {
			t.Errorf("exercise %d has no solution", i)
		}
		if ex.Topic == "" {
			t.Errorf("exercise %d has no topic", i)
		}
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].Prompt = "mutated"
	if ex, _ := Get(0); ex.Prompt == "mutated" {
		t.Error("mutating All() leaked into the catalog")
	}
}

func TestGet_OutOfRange(t *testing.T) {
	for _, i := range []int{-1, Len(), 100} {
		if _, err := Get(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Get(%d) err = %v, want ErrIndexOutOfRange", i, err)
		}
	}
}

func TestOnlyLastExerciseHasHint(t *testing.T) {
	for _, ex := range All() {
		want := ex.Index == Len()-1
		if ex.HasHint() != want {
			t.Errorf("exercise %d HasHint() = %v, want %v", ex.Number(), ex.HasHint(), want)
		}
	}
}

func TestLastExerciseEmulatesFullJoin(t *testing.T) {
	ex, err := Get(19)
	if err != nil {
		t.Fatal(err)
	}
	for _, frag := range []string{"UNION", "LEFT JOIN a", "LEFT JOIN d", "COALESCE"} {
		if !strings.Contains(ex.Solution, frag) {
			t.Errorf("solution missing %q", frag)
		}
	}
}

func TestRevealText(t *testing.T) {
	if got := (Exercise{}).RevealText(); got != NoSolutionPlaceholder {
		t.Errorf("RevealText() = %q, want placeholder", got)
	}
	ex, _ := Get(0)
	if got := ex.RevealText(); got != ex.Solution {
		t.Errorf("RevealText() = %q, want solution", got)
	}
}

func TestLabel(t *testing.T) {
	ex, _ := Get(2)
	if got := ex.Label(); got != "3) Books rated 4.5 or higher." {
		t.Errorf("Label() = %q", got)
	}
}

// Every reference solution must return at least one row on the seed data,
// otherwise running it would not credit the exercise.
func TestSolutionsReturnRows(t *testing.T) {
	ctx := context.Background()
	e, err := sqlexec.Open(ctx)
	if err != nil {
		t.Fatalf("open engine: %v", err)
	}
	defer e.Close()
	if err := dataset.Reset(ctx, e.Conn(), dataset.Script); err != nil {
		t.Fatalf("reset: %v", err)
	}

	for _, ex := range All() {
		rows, err := e.Conn().QueryContext(ctx, ex.Solution)
		if err != nil {
			t.Errorf("exercise %d: %v", ex.Number(), err)
			continue
		}
		n := 0
		for rows.Next() {
			n++
		}
		if err := rows.Err(); err != nil {
			t.Errorf("exercise %d: %v", ex.Number(), err)
		}
		rows.Close()
		if n == 0 {
			t.Errorf("exercise %d returned no rows", ex.Number())
		}
	}
}

func TestPerAuthorCountIncludesEveryAuthor(t *testing.T) {
	ctx := context.Background()
	e, err := sqlexec.Open(ctx)
	if err != nil {
		t.Fatalf("open engine: %v", err)
	}
	defer e.Close()
	if err := dataset.Reset(ctx, e.Conn(), dataset.Script); err != nil {
		t.Fatalf("reset: %v", err)
	}

	ex, _ := Get(17)
	res := sqlexec.NewExecutor(e.Conn()).Execute(ctx, ex.Solution)
	if res.Kind != sqlexec.KindTabular {
		t.Fatalf("Kind = %v (err %q)", res.Kind, res.ErrorText)
	}
	if len(res.Rows) != 11 {
		t.Errorf("rows = %d, want 11", len(res.Rows))
	}
}
