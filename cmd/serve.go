package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abhisek/sqlpractice/internal/server"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the practice API over HTTP",
	Long:  "Serve a JSON API where every learner gets an independent session and practice database.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		cfg := loadConfig(cmd)
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTPAddr = addr
		}
		maxSessions, _ := cmd.Flags().GetInt("max-sessions")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		eventRepo := st.EventRepo()

		hintSvc, note := buildHints(ctx, cfg, eventRepo)
		reg := server.NewRegistry(eventRepo, hintSvc, maxSessions)
		defer reg.CloseAll(ctx)

		srv := &http.Server{
			Addr: cfg.HTTPAddr,
			Handler: server.NewRouter(reg, server.Options{
				CORSOrigins: cfg.CORSOrigins,
				Submitter:   buildSubmitter(cfg, eventRepo),
			}),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 45 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			pterm.Info.Printf("Listening on %s (%s)\n", cfg.HTTPAddr, note)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("serve http: %w", err)
			}
			return nil
		case <-quit:
		}

		pterm.Info.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides SQLPRACTICE_HTTP_ADDR)")
	serveCmd.Flags().Int("max-sessions", 200, "Maximum live sessions (0 = unlimited)")
}
