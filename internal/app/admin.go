package app

import (
	"context"
	"fmt"
	"strings"

	"onboard-project/internal/domain"
	"onboard-project/internal/state"
)

// Editor carries the admin's working view of the two configurable pages:
// local drafts plus the last value seen from the store. Saving one page
// reconciles it with the other page and writes both, then refreshes the
// caches from the store's normalized response rather than trusting the
// optimistic local value.
type Editor struct {
	Store ConfigStore

	drafts map[int][]domain.ComponentID
	server map[int][]domain.ComponentID
}

func NewEditor(store ConfigStore) *Editor {
	return &Editor{
		Store:  store,
		drafts: map[int][]domain.ComponentID{},
		server: map[int][]domain.ComponentID{},
	}
}

func (e *Editor) Load(ctx context.Context) error {
	pages, err := e.Store.FetchConfig(ctx)
	if err != nil {
		return err
	}
	e.refresh(pages)
	return nil
}

func (e *Editor) refresh(pages domain.Pages) {
	for _, n := range []int{domain.FirstConfigurablePage, domain.LastConfigurablePage} {
		components := pages.ComponentsOn(n)
		e.server[n] = components
		e.drafts[n] = append([]domain.ComponentID(nil), components...)
	}
}

func (e *Editor) Draft(page int) []domain.ComponentID {
	return append([]domain.ComponentID(nil), e.drafts[page]...)
}

func (e *Editor) SetDraft(page int, components []domain.ComponentID) {
	e.drafts[page] = append([]domain.ComponentID(nil), components...)
}

// Save reconciles the page's draft with the other page and persists the
// combined result. On rejection nothing is written and the caches are
// left untouched.
func (e *Editor) Save(ctx context.Context, page int) (domain.Pages, error) {
	other := domain.FirstConfigurablePage
	if page == domain.FirstConfigurablePage {
		other = domain.LastConfigurablePage
	}
	combined, err := domain.ReconcilePages(page, e.drafts[page], e.drafts[other], e.server[other])
	if err != nil {
		return domain.Pages{}, err
	}
	normalized, err := e.Store.PersistConfig(ctx, combined)
	if err != nil {
		return domain.Pages{}, err
	}
	e.refresh(normalized)
	return normalized, nil
}

func (a *App) RunAdminShow(ctx context.Context) error {
	pages, err := a.configStore().FetchConfig(ctx)
	if err != nil {
		return err
	}
	for _, n := range []int{domain.FirstConfigurablePage, domain.LastConfigurablePage} {
		components := pages.ComponentsOn(n)
		names := make([]string, len(components))
		for i, c := range components {
			names[i] = string(c)
		}
		value := strings.Join(names, ", ")
		if value == "" {
			value = "(empty)"
		}
		fmt.Fprintf(a.Stdout, "page %d: %s\n", n, value)
	}
	return nil
}

func (a *App) RunAdminSave(ctx context.Context, page int, rawComponents []string) error {
	components := make([]domain.ComponentID, 0, len(rawComponents))
	for _, raw := range rawComponents {
		id, ok := domain.ParseComponent(raw)
		if !ok {
			return fmt.Errorf("unknown component %q (valid: %s)", raw, validComponentNames())
		}
		components = append(components, id)
	}

	// Serialize local writes; a remote server is its own writer.
	if a.ServerURL == "" {
		lock, err := state.AcquireLock(a.Paths)
		if err != nil {
			return err
		}
		defer func() {
			_ = lock.Release()
		}()
	}

	editor := NewEditor(a.configStore())
	if err := editor.Load(ctx); err != nil {
		return err
	}
	a.logf("saving page %d as %v", page, components)
	editor.SetDraft(page, components)
	normalized, err := editor.Save(ctx, page)
	if err != nil {
		return err
	}
	for _, p := range normalized.Pages {
		names := make([]string, len(p.Components))
		for i, c := range p.Components {
			names[i] = string(c)
		}
		fmt.Fprintf(a.Stdout, "page %d: %s\n", p.PageNumber, strings.Join(names, ", "))
	}
	return nil
}

func validComponentNames() string {
	all := domain.AllComponents()
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
