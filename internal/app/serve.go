package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"onboard-project/internal/server"
	"onboard-project/internal/state"
	sqlitestore "onboard-project/internal/storage/sqlite"
)

type ServeOptions struct {
	Addr       string
	ConfigPath string
	DBPath     string
}

// RunServe hosts the configuration and submission API until ctx is done.
func (a *App) RunServe(ctx context.Context, opts ServeOptions) error {
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = a.Paths.ConfigPath()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = a.Paths.SubmissionsDBPath()
	}

	submissions, err := sqlitestore.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = submissions.Close()
	}()

	logger := slog.New(slog.NewTextHandler(a.Stderr, nil))
	handler := server.New(state.NewStore(configPath), submissions, logger).Handler()

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
