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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/aryanwebd35/portfolio/internal/observability"
	"github.com/aryanwebd35/portfolio/internal/store"
	"github.com/aryanwebd35/portfolio/internal/web"
)

const cleanupInterval = time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portfolio web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, profile, err := loadConfigAndProfile()
		if err != nil {
			return err
		}
		gin.SetMode(cfg.GinMode)
		log := observability.Logger()

		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		if !cfg.SMTPConfigured() {
			log.Warn("SMTP credentials not configured; contact form submissions will fail")
		}
		mailer := web.NewSMTPMailer(cfg, profile.Contact.Email)

		srv, err := web.New(cfg, profile, st, mailer)
		if err != nil {
			return fmt.Errorf("building server: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go cleanupVisitors(ctx, st, cfg.VisitorRetention)

		httpSrv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("server starting", "port", cfg.Port, "db", cfg.DBPath, "stars", cfg.StarCount)
			errCh <- httpSrv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listening on :%s: %w", cfg.Port, err)
			}
		case <-ctx.Done():
			log.Info("shutting down")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", "error", err)
		}
		srv.Close()
		return nil
	},
}

// cleanupVisitors drops visitor rows past the retention window, once at
// startup and then hourly.
func cleanupVisitors(ctx context.Context, st *store.Store, retention time.Duration) {
	log := observability.WithFields("component", "cleanup")
	t := time.NewTicker(cleanupInterval)
	defer t.Stop()
	for {
		n, err := st.CleanupVisitors(time.Now().Add(-retention))
		if err != nil {
			log.Error("visitor cleanup failed", "error", err)
		} else if n > 0 {
			log.Info("visitor cleanup", "removed", n)
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
