package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sqlitestore "onboard-project/internal/storage/sqlite"
)

// RunSubmissions lists persisted submissions from the local store.
func (a *App) RunSubmissions(ctx context.Context, jsonOut bool) error {
	if a.ServerURL != "" {
		return errors.New("submissions can only be listed from the local store")
	}
	store, err := sqlitestore.Open(a.Paths.SubmissionsDBPath())
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	all, err := store.ListSubmissions(ctx)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(a.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	}

	if len(all) == 0 {
		fmt.Fprintln(a.Stdout, "no submissions")
		return nil
	}
	for _, sub := range all {
		fmt.Fprintf(a.Stdout, "%s\t%s\t%s\n", sub.ID, sub.CreatedAt.Format(time.RFC3339), sub.Record.Email)
	}
	return nil
}
