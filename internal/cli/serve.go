package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jharden/campgrounds/internal/auth"
	"github.com/jharden/campgrounds/internal/config"
	"github.com/jharden/campgrounds/internal/geocode"
	"github.com/jharden/campgrounds/internal/imagestore"
	"github.com/jharden/campgrounds/internal/logging"
	"github.com/jharden/campgrounds/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI",
		Long:  "Start the HTTP server for the campgrounds web UI.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "port to listen on (default: CAMP_PORT or 8080)")

	return cmd
}

func runServe(port int) error {
	cfg := config.Load()
	logging.Setup(cfg.DevMode)
	if port == 0 {
		port = cfg.Port
	}

	database, err := openDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer closeDB(database)

	geocoder, err := geocode.NewClient(cfg.GeocodeToken)
	if err != nil {
		return fmt.Errorf("configuring geocoder (set CAMP_GEOCODE_TOKEN): %w", err)
	}
	geocode.SetTestURL(geocoder, cfg.GeocodeURL)

	images, err := imagestore.NewClient(cfg.ImageStoreKey)
	if err != nil {
		return fmt.Errorf("configuring image store (set CAMP_IMAGESTORE_KEY): %w", err)
	}
	imagestore.SetTestURL(images, cfg.ImageStoreURL)

	server, err := web.NewServer(database, geocoder, images)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Sweep expired sessions in the background.
	sessions := auth.NewSessionStore(database)
	stopCleanup := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := sessions.Cleanup(); err != nil {
					slog.Error("session cleanup", "error", err)
				}
			case <-stopCleanup:
				return
			}
		}
	}()
	defer close(stopCleanup)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "port", port, "dev_mode", cfg.DevMode)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
