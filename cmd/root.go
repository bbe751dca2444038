package cmd

import (
	"fmt"

	"github.com/abhisek/sqlpractice/internal/config"
	"github.com/abhisek/sqlpractice/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sqlpractice",
	Short: "Interactive SQL practice in the terminal",
	Long:  "sqlpractice: twenty graded SQL exercises over a small books and movies database.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite event-log file (overrides SQLPRACTICE_DB env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exercisesCmd)
	rootCmd.AddCommand(datasetCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies --db on top.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg := config.FromEnv()
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	return cfg
}

// openStore opens the event log named by --db, SQLPRACTICE_DB or the
// default XDG path, in that order.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := loadConfig(cmd).ResolvedDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
