package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"onboard-project/internal/app"
	"onboard-project/internal/state"
)

type fakeRunner struct {
	verbose   bool
	serverURL string

	wizardCalls      int
	adminShowCalls   int
	adminSavePage    int
	adminSaveList    []string
	serveOpts        app.ServeOptions
	submissionsJSON  bool
	submissionsCalls int

	err error
}

func (f *fakeRunner) SetVerbose(verbose bool) { f.verbose = verbose }
func (f *fakeRunner) SetServerURL(url string) { f.serverURL = url }
func (f *fakeRunner) RunWizard(_ context.Context) error {
	f.wizardCalls++
	return f.err
}
func (f *fakeRunner) RunAdminShow(_ context.Context) error {
	f.adminShowCalls++
	return f.err
}
func (f *fakeRunner) RunAdminSave(_ context.Context, page int, components []string) error {
	f.adminSavePage = page
	f.adminSaveList = components
	return f.err
}
func (f *fakeRunner) RunServe(_ context.Context, opts app.ServeOptions) error {
	f.serveOpts = opts
	return f.err
}
func (f *fakeRunner) RunSubmissions(_ context.Context, jsonOut bool) error {
	f.submissionsJSON = jsonOut
	f.submissionsCalls++
	return f.err
}

func fakeDeps(runner *fakeRunner) runDeps {
	return runDeps{
		userHomeDir: func() (string, error) { return "/home/tester", nil },
		newApp: func(_ state.Paths, _, _ io.Writer) appRunner {
			return runner
		},
	}
}

func runFake(t *testing.T, runner *fakeRunner, args ...string) (int, string, string) {
	t.Helper()
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := runWithDeps(args, &stdout, &stderr, fakeDeps(runner))
	return code, stdout.String(), stderr.String()
}

func TestRunNoCommandShowsHelp(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	code, stdout, stderr := runFake(t, runner)
	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	mustContain(t, stdout, "Usage:")
	mustContain(t, stdout, "wizard")
	mustContain(t, stdout, "admin")
	mustContain(t, stderr, "a command is required")
	if runner.wizardCalls != 0 {
		t.Fatalf("wizard should not run without a command")
	}
}

func TestRunWizardCommand(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	code, _, stderr := runFake(t, runner, "wizard")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0 (stderr=%q)", code, stderr)
	}
	if runner.wizardCalls != 1 {
		t.Fatalf("wizard calls = %d, want 1", runner.wizardCalls)
	}
}

func TestRunWizardErrorExitsNonZero(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{err: errors.New("no terminal")}
	code, _, stderr := runFake(t, runner, "wizard")
	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	mustContain(t, stderr, "no terminal")
}

func TestGlobalFlagsReachApp(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	code, _, stderr := runFake(t, runner, "--verbose", "--server", "http://localhost:8880", "admin", "show")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0 (stderr=%q)", code, stderr)
	}
	if !runner.verbose {
		t.Fatal("verbose flag not applied")
	}
	if runner.serverURL != "http://localhost:8880" {
		t.Fatalf("server url = %q, want %q", runner.serverURL, "http://localhost:8880")
	}
	if runner.adminShowCalls != 1 {
		t.Fatalf("admin show calls = %d, want 1", runner.adminShowCalls)
	}
}

func TestAdminSaveParsesPageAndComponents(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	code, _, stderr := runFake(t, runner, "admin", "save", "2", "about", "address")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0 (stderr=%q)", code, stderr)
	}
	if runner.adminSavePage != 2 {
		t.Fatalf("page = %d, want 2", runner.adminSavePage)
	}
	if len(runner.adminSaveList) != 2 || runner.adminSaveList[0] != "about" || runner.adminSaveList[1] != "address" {
		t.Fatalf("components = %v, want [about address]", runner.adminSaveList)
	}
}

func TestAdminSaveRejectsNonNumericPage(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	code, _, stderr := runFake(t, runner, "admin", "save", "two", "about")
	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	mustContain(t, stderr, `invalid page "two"`)
}

func TestAdminSaveRequiresComponents(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	code, _, _ := runFake(t, runner, "admin", "save", "2")
	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}

func TestServeFlagsOverrideEnvDefaults(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	code, _, stderr := runFake(t, runner, "serve", "--addr", ":9100", "--db", "/tmp/sub.db", "--config", "/tmp/pages.yaml")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0 (stderr=%q)", code, stderr)
	}
	if runner.serveOpts.Addr != ":9100" {
		t.Fatalf("addr = %q, want %q", runner.serveOpts.Addr, ":9100")
	}
	if runner.serveOpts.DBPath != "/tmp/sub.db" {
		t.Fatalf("db path = %q, want %q", runner.serveOpts.DBPath, "/tmp/sub.db")
	}
	if runner.serveOpts.ConfigPath != "/tmp/pages.yaml" {
		t.Fatalf("config path = %q, want %q", runner.serveOpts.ConfigPath, "/tmp/pages.yaml")
	}
}

func TestSubmissionsJSONFlag(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	code, _, _ := runFake(t, runner, "submissions", "--json")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if runner.submissionsCalls != 1 || !runner.submissionsJSON {
		t.Fatalf("submissions json = %v calls = %d, want true/1", runner.submissionsJSON, runner.submissionsCalls)
	}
}

func TestUnknownFlagExitsTwo(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	code, _, stderr := runFake(t, runner, "wizard", "--bogus")
	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	mustContain(t, stderr, "unknown flag")
}

func TestHomeDirFailureReported(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	deps := runDeps{
		userHomeDir: func() (string, error) { return "", errors.New("no home") },
		newApp: func(_ state.Paths, _, _ io.Writer) appRunner {
			t.Fatal("newApp should not be reached")
			return nil
		},
	}
	code := runWithDeps([]string{"wizard"}, &stdout, &stderr, deps)
	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	mustContain(t, stderr.String(), "resolve home")
}

func mustContain(t *testing.T, got string, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Fatalf("expected output to contain %q, got:\n%s", want, got)
	}
}
