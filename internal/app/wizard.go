package app

import (
	"context"
	"errors"
	"fmt"

	"onboard-project/internal/domain"
)

type WizardInput struct {
	Source ConfigSource
	Submit func(ctx context.Context, session *domain.Session) (string, error)
}

type WizardResult struct {
	Completed    bool
	SubmissionID string
}

type WizardRunner func(WizardInput) (WizardResult, error)

// RunWizard drives the interactive onboarding flow.
func (a *App) RunWizard(ctx context.Context) error {
	if a.IsInteractiveTerminal == nil || !a.IsInteractiveTerminal() {
		return errors.New("onboard wizard requires an interactive terminal")
	}
	if a.RunWizardUI == nil {
		return errors.New("wizard UI is not configured")
	}

	source := a.configStore()
	pages, err := source.FetchConfig(ctx)
	if err != nil {
		return err
	}
	// The wizard is only usable once an admin has assigned components to
	// both configurable pages.
	for _, n := range []int{domain.FirstConfigurablePage, domain.LastConfigurablePage} {
		if len(pages.ComponentsOn(n)) == 0 {
			return fmt.Errorf("step %d has no components assigned; run onboard admin first", n)
		}
	}

	sink, closeSink, err := a.submissionSink()
	if err != nil {
		return err
	}
	defer func() {
		_ = closeSink()
	}()

	coordinator := &Coordinator{Config: source, Sink: sink}
	result, err := a.RunWizardUI(WizardInput{Source: source, Submit: coordinator.Submit})
	if err != nil {
		return err
	}
	if !result.Completed {
		fmt.Fprintln(a.Stdout, "onboarding cancelled")
		return nil
	}
	fmt.Fprintf(a.Stdout, "submission %s saved\n", result.SubmissionID)
	return nil
}
