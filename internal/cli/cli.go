package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"onboard-project/internal/app"
	"onboard-project/internal/server"
	"onboard-project/internal/state"
)

type appRunner interface {
	SetVerbose(verbose bool)
	SetServerURL(url string)
	RunWizard(ctx context.Context) error
	RunAdminShow(ctx context.Context) error
	RunAdminSave(ctx context.Context, page int, components []string) error
	RunServe(ctx context.Context, opts app.ServeOptions) error
	RunSubmissions(ctx context.Context, jsonOut bool) error
}

type runDeps struct {
	userHomeDir func() (string, error)
	newApp      func(paths state.Paths, stdout, stderr io.Writer) appRunner
}

type runtimeState struct {
	stdout  io.Writer
	stderr  io.Writer
	verbose bool
	server  string

	deps runDeps
	app  appRunner
}

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

func defaultRunDeps() runDeps {
	return runDeps{
		userHomeDir: os.UserHomeDir,
		newApp: func(paths state.Paths, stdout, stderr io.Writer) appRunner {
			return app.New(paths, stdout, stderr)
		},
	}
}

func Run(args []string, stdout, stderr io.Writer) int {
	return runWithDeps(args, stdout, stderr, defaultRunDeps())
}

func runWithDeps(args []string, stdout, stderr io.Writer, deps runDeps) int {
	runtime := &runtimeState{
		stdout: stdout,
		stderr: stderr,
		deps:   deps,
	}

	cmd := newRootCommand(runtime)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var codedErr *exitError
	if errors.As(err, &codedErr) {
		if codedErr.err != nil {
			fmt.Fprintln(stderr, codedErr.err)
		}
		if codedErr.code == 0 {
			return 2
		}
		return codedErr.code
	}

	fmt.Fprintln(stderr, err)
	return 2
}

func (r *runtimeState) appRunner() (appRunner, error) {
	if r.app != nil {
		return r.app, nil
	}

	home, err := r.deps.userHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home: %w", err)
	}

	a := r.deps.newApp(state.NewPaths(home), r.stdout, r.stderr)
	a.SetVerbose(r.verbose)
	a.SetServerURL(r.server)
	r.app = a
	return r.app, nil
}

func newRootCommand(runtime *runtimeState) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "onboard",
		Short:         "Configurable multi-step onboarding wizard.",
		Long:          "onboard runs a three-step onboarding wizard whose second and third steps are assembled from admin-assigned components.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cmd.Help(); err != nil {
				return withExitCode(2, err)
			}
			return withExitCode(2, errors.New("a command is required"))
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withExitCode(2, err)
	})

	cmd.PersistentFlags().BoolVarP(&runtime.verbose, "verbose", "v", false, "Print verbose logs.")
	cmd.PersistentFlags().StringVar(&runtime.server, "server", "", "Use a remote onboard server instead of local files.")

	cmd.AddCommand(
		newWizardCommand(runtime),
		newAdminCommand(runtime),
		newServeCommand(runtime),
		newSubmissionsCommand(runtime),
	)

	return cmd
}

func withExitCode(code int, err error) error {
	if err == nil {
		if code == 0 {
			return nil
		}
		return &exitError{code: code}
	}
	if code == 0 {
		code = 2
	}
	return &exitError{code: code, err: err}
}

func newWizardCommand(runtime *runtimeState) *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Run the interactive onboarding wizard.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runner, err := runtime.appRunner()
			if err != nil {
				return withExitCode(2, err)
			}
			return withExitCode(0, runner.RunWizard(cmd.Context()))
		},
	}
}

func newAdminCommand(runtime *runtimeState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Inspect and edit the wizard page configuration.",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the component assignment of the configurable pages.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runner, err := runtime.appRunner()
			if err != nil {
				return withExitCode(2, err)
			}
			return withExitCode(0, runner.RunAdminShow(cmd.Context()))
		},
	}

	save := &cobra.Command{
		Use:   "save <page> <component>...",
		Short: "Save one page's component list, reconciling with the other page.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := strconv.Atoi(args[0])
			if err != nil {
				return withExitCode(2, fmt.Errorf("invalid page %q", args[0]))
			}
			runner, err := runtime.appRunner()
			if err != nil {
				return withExitCode(2, err)
			}
			return withExitCode(0, runner.RunAdminSave(cmd.Context(), page, args[1:]))
		},
	}

	cmd.AddCommand(show, save)
	return cmd
}

func newServeCommand(runtime *runtimeState) *cobra.Command {
	var addr string
	var dbPath string
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the configuration and submission API over HTTP.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			envCfg, err := server.ParseEnv()
			if err != nil {
				return withExitCode(2, err)
			}
			if addr == "" {
				addr = envCfg.Addr
			}
			if dbPath == "" {
				dbPath = envCfg.DBPath
			}
			if configPath == "" && envCfg.ConfigDir != "" {
				configPath = filepath.Join(envCfg.ConfigDir, state.ConfigFileName)
			}

			runner, err := runtime.appRunner()
			if err != nil {
				return withExitCode(2, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return withExitCode(0, runner.RunServe(ctx, app.ServeOptions{
				Addr:       addr,
				DBPath:     dbPath,
				ConfigPath: configPath,
			}))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from ONBOARD_ADDR, else :8880).")
	cmd.Flags().StringVar(&dbPath, "db", "", "Submission database path.")
	cmd.Flags().StringVar(&configPath, "config", "", "Configuration file path.")

	return cmd
}

func newSubmissionsCommand(runtime *runtimeState) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "submissions",
		Short: "List persisted submissions.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runner, err := runtime.appRunner()
			if err != nil {
				return withExitCode(2, err)
			}
			return withExitCode(0, runner.RunSubmissions(cmd.Context(), jsonOut))
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit submissions as JSON.")

	return cmd
}
