package app

import (
	"context"
	"errors"
	"sync"

	"onboard-project/internal/domain"
)

// ErrSubmissionInFlight rejects a duplicate submit while one is running.
var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// Coordinator finalizes a wizard session: it re-runs the full submit
// validation against the configuration as it is right now, builds the
// record, and hands it to the sink.
type Coordinator struct {
	Config ConfigSource
	Sink   SubmissionSink

	mu     sync.Mutex
	saving bool
}

func (c *Coordinator) Submit(ctx context.Context, session *domain.Session) (string, error) {
	c.mu.Lock()
	if c.saving {
		c.mu.Unlock()
		return "", ErrSubmissionInFlight
	}
	c.saving = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.saving = false
		c.mu.Unlock()
	}()

	pages, err := c.Config.FetchConfig(ctx)
	if err != nil {
		return "", err
	}
	if errs := domain.ValidateFields(session, domain.SubmitFields(pages)); errs != nil {
		return "", &domain.ValidationError{Fields: errs}
	}
	record := domain.BuildSubmission(pages, session)
	return c.Sink.PersistSubmission(ctx, record)
}
