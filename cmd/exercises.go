package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/abhisek/sqlpractice/internal/dataset"
	"github.com/abhisek/sqlpractice/internal/exercises"
	"github.com/abhisek/sqlpractice/internal/sqlexec"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var exercisesCmd = &cobra.Command{
	Use:   "exercises [number]",
	Short: "List the exercise catalog or show one exercise",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid exercise number %q: %w", args[0], err)
			}
			ex, err := exercises.Get(n - 1)
			if err != nil {
				return err
			}
			showSolution, _ := cmd.Flags().GetBool("solution")
			printExercise(ex, showSolution)
			return nil
		}

		verify, _ := cmd.Flags().GetBool("verify")
		if verify {
			return verifySolutions(context.Background())
		}
		return listExercises()
	},
}

func listExercises() error {
	data := pterm.TableData{{"#", "Topic", "Prompt", "Hint"}}
	for _, ex := range exercises.All() {
		hint := ""
		if ex.HasHint() {
			hint = "✓"
		}
		data = append(data, []string{strconv.Itoa(ex.Number()), string(ex.Topic), ex.Prompt, hint})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printExercise(ex exercises.Exercise, showSolution bool) {
	pterm.DefaultSection.Println(fmt.Sprintf("Exercise %d", ex.Number()))
	fmt.Println(ex.Prompt)
	if ex.HasHint() {
		fmt.Println()
		pterm.Info.Println(ex.Hint)
	}
	if showSolution {
		fmt.Println()
		fmt.Println(ex.RevealText())
	}
}

// verifySolutions runs every reference solution against a freshly seeded
// database and reports whether it would be credited.
func verifySolutions(ctx context.Context) error {
	engine, err := sqlexec.Open(ctx)
	if err != nil {
		return err
	}
	defer engine.Close()
	exec := sqlexec.NewExecutor(engine.Conn())

	data := pterm.TableData{{"#", "Kind", "Rows", "Result"}}
	failed := 0
	for _, ex := range exercises.All() {
		if err := dataset.Reset(ctx, engine.Conn(), dataset.Script); err != nil {
			return err
		}
		res := exec.Execute(ctx, ex.Solution)

		status := "ok"
		switch {
		case res.Failed():
			status = res.ErrorText
			failed++
		case res.Kind == sqlexec.KindTabular && !res.HasRows():
			status = "no rows"
			failed++
		}
		data = append(data, []string{
			strconv.Itoa(ex.Number()),
			res.Kind.String(),
			strconv.Itoa(len(res.Rows)),
			status,
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d reference solution(s) would not be credited", failed)
	}
	pterm.Success.Println("Every reference solution is credited.")
	return nil
}

func init() {
	exercisesCmd.Flags().BoolP("solution", "s", false, "Show the reference solution")
	exercisesCmd.Flags().Bool("verify", false, "Run every reference solution against a fresh database")
}
