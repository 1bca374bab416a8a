package app

import (
	"context"
	"sync"

	"onboard-project/internal/domain"
)

type fakeConfigStore struct {
	mu       sync.Mutex
	pages    domain.Pages
	fetchErr error
	writes   [][]domain.PageConfig
}

func (f *fakeConfigStore) FetchConfig(ctx context.Context) (domain.Pages, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return domain.Pages{}, f.fetchErr
	}
	return f.pages.Clone(), nil
}

func (f *fakeConfigStore) PersistConfig(ctx context.Context, candidate []domain.PageConfig) (domain.Pages, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, candidate)
	f.pages = domain.Pages{Pages: domain.NormalizePages(candidate)}
	return f.pages.Clone(), nil
}

func (f *fakeConfigStore) setPages(pages domain.Pages) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages = pages
}

type fakeSink struct {
	mu      sync.Mutex
	err     error
	block   chan struct{}
	records []domain.Submission
}

func (f *fakeSink) PersistSubmission(ctx context.Context, record domain.Submission) (string, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.records = append(f.records, record)
	return "1", nil
}

func defaultTestPages() domain.Pages {
	return domain.Pages{Pages: []domain.PageConfig{
		{PageNumber: 2, Components: []domain.ComponentID{domain.ComponentAbout, domain.ComponentAddress}},
		{PageNumber: 3, Components: []domain.ComponentID{domain.ComponentBirthdate}},
	}}
}

func completeSession() *domain.Session {
	s := domain.NewSession()
	s.SetValue(domain.FieldEmail, "user@example.com")
	s.SetValue(domain.FieldPassword, "hunter22")
	s.SetValue("about.bio", "hello")
	s.SetValue("address.line1", "1 Main St")
	s.SetValue("address.city", "Springfield")
	s.SetValue("address.state", "IL")
	s.SetValue("address.zip", "62704")
	s.SetValue("birthdate.date", "1990-04-02")
	return s
}
