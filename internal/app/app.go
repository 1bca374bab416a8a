package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"onboard-project/internal/client"
	"onboard-project/internal/domain"
	"onboard-project/internal/state"
	sqlitestore "onboard-project/internal/storage/sqlite"
)

// ConfigSource reads the current configuration; it is consulted again at
// every guard check rather than snapshotted per session.
type ConfigSource interface {
	FetchConfig(ctx context.Context) (domain.Pages, error)
}

// ConfigStore is the full configuration collaborator. PersistConfig
// returns the normalized configuration, never an echo of the input.
type ConfigStore interface {
	ConfigSource
	PersistConfig(ctx context.Context, candidate []domain.PageConfig) (domain.Pages, error)
}

type SubmissionSink interface {
	PersistSubmission(ctx context.Context, record domain.Submission) (string, error)
}

type App struct {
	Paths   state.Paths
	Stdout  io.Writer
	Stderr  io.Writer
	Verbose bool
	Now     func() time.Time

	// ServerURL switches the collaborators from the local stores to a
	// remote onboard server.
	ServerURL string

	IsInteractiveTerminal func() bool
	RunWizardUI           WizardRunner
}

func New(paths state.Paths, stdout, stderr io.Writer) *App {
	return &App{
		Paths:                 paths,
		Stdout:                stdout,
		Stderr:                stderr,
		Now:                   time.Now,
		IsInteractiveTerminal: defaultIsInteractiveTerminal,
		RunWizardUI:           runWizardInteractive,
	}
}

func defaultIsInteractiveTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func (a *App) SetVerbose(verbose bool) {
	a.Verbose = verbose
}

func (a *App) SetServerURL(url string) {
	a.ServerURL = url
}

func (a *App) logf(format string, args ...any) {
	if !a.Verbose {
		return
	}
	fmt.Fprintf(a.Stderr, format+"\n", args...)
}

func (a *App) configStore() ConfigStore {
	if a.ServerURL != "" {
		return client.New(a.ServerURL)
	}
	return state.NewStore(a.Paths.ConfigPath())
}

// submissionSink returns the sink plus a close func for the local case.
func (a *App) submissionSink() (SubmissionSink, func() error, error) {
	if a.ServerURL != "" {
		return client.New(a.ServerURL), func() error { return nil }, nil
	}
	store, err := sqlitestore.Open(a.Paths.SubmissionsDBPath())
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}
