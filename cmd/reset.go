package cmd

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget saved progress",
	Long:  "Delete every progress snapshot so the next play --resume starts from exercise 1. The event log is kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			ok, err := pterm.DefaultInteractiveConfirm.Show("Delete all saved progress?")
			if err != nil {
				return fmt.Errorf("confirm reset: %w", err)
			}
			if !ok {
				fmt.Println("Nothing deleted.")
				return nil
			}
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.SnapshotRepo().DeleteAll(context.Background()); err != nil {
			return fmt.Errorf("delete snapshots: %w", err)
		}
		pterm.Success.Println("Saved progress deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
