package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		resume, _ := cmd.Flags().GetBool("resume")
		return runApp(cmd, resume)
	},
}

func init() {
	playCmd.Flags().BoolP("resume", "r", false, "Continue from the most recent saved progress")
}
