package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/abhisek/sqlpractice/internal/exercises"
	"github.com/abhisek/sqlpractice/internal/store"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past practice sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		sessions, err := s.EventRepo().SessionSummaries(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		total := exercises.Len()
		data := pterm.TableData{{"Session", "Started", "Last activity", "Solved", "Skipped", "Attempts", "Submitted"}}
		for _, rec := range sessions {
			submitted := ""
			if rec.Submitted {
				submitted = "✓"
			}
			data = append(data, []string{
				shortID(rec.SessionID),
				rec.Started.Local().Format("2006-01-02 15:04"),
				rec.LastActivity.Local().Format("2006-01-02 15:04"),
				fmt.Sprintf("%d/%d", rec.Solved, total),
				strconv.Itoa(rec.Skipped),
				strconv.Itoa(rec.Attempts),
				submitted,
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
