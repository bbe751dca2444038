package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/sqlpractice/internal/app"
	"github.com/abhisek/sqlpractice/internal/config"
	"github.com/abhisek/sqlpractice/internal/exercises"
	"github.com/abhisek/sqlpractice/internal/hints"
	"github.com/abhisek/sqlpractice/internal/llm"
	"github.com/abhisek/sqlpractice/internal/session"
	"github.com/abhisek/sqlpractice/internal/store"
	"github.com/abhisek/sqlpractice/internal/submission"
	"github.com/spf13/cobra"
)

// snapshotsKept is how many progress snapshots survive a session.
const snapshotsKept = 20

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, resume bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := loadConfig(cmd)

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	opts := session.Options{Events: eventRepo}
	if cfg.Snapshots {
		opts.Snapshots = st.SnapshotRepo()
	}

	hintSvc, note := buildHints(ctx, cfg, eventRepo)
	opts.Hints = hintSvc

	sess, err := session.New(ctx, opts)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer func() {
		if err := sess.Close(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "warning: close session: %v\n", err)
		}
		if cfg.Snapshots {
			if err := st.SnapshotRepo().Prune(ctx, snapshotsKept); err != nil {
				fmt.Fprintf(os.Stderr, "warning: prune snapshots: %v\n", err)
			}
		}
	}()

	if resume {
		if err := restoreLatest(ctx, sess, st.SnapshotRepo()); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			fmt.Fprintln(os.Stderr, "Starting from exercise 1.")
		}
	}

	return app.Run(app.Options{
		Session:   sess,
		Submitter: buildSubmitter(cfg, eventRepo),
		Events:    eventRepo,
		Note:      note,
	})
}

// buildHints returns the hint service and a one-line status for the home
// screen. Hints still work from the catalog when no provider is configured.
func buildHints(ctx context.Context, cfg config.Config, events store.EventRepo) (*hints.Service, string) {
	provider, err := llm.NewProvider(ctx, cfg.LLM, events)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI hints will be unavailable.")
	}
	if provider == nil {
		return hints.NewService(nil, hints.DefaultConfig()), "AI hints off"
	}
	return hints.NewService(provider, hints.DefaultConfig()), "AI hints via " + provider.ModelID()
}

// buildSubmitter returns nil when the sink settings are unusable.
func buildSubmitter(cfg config.Config, events store.EventRepo) *submission.Submitter {
	sink, err := cfg.NewSink()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Submission sink not configured:", err)
		return nil
	}
	return submission.NewSubmitter(sink, exercises.All(), events)
}

func restoreLatest(ctx context.Context, sess *session.Session, snaps store.SnapshotRepo) error {
	snap, err := snaps.Latest(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if snap == nil {
		return fmt.Errorf("no saved progress to resume")
	}
	return sess.Restore(ctx, snap.Data)
}
