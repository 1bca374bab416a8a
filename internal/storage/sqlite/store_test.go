package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"onboard-project/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "submissions.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testRecord() domain.Submission {
	return domain.Submission{
		Email:     "user@example.com",
		Password:  "hunter22",
		Address:   &domain.AddressFields{Line1: "1 Main St", City: "Springfield", State: "IL", Zip: "62704"},
		Birthdate: &domain.BirthdateFields{Date: "1990-04-02"},
	}
}

func TestPersistAndGetSubmission(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.PersistSubmission(ctx, testRecord())
	if err != nil {
		t.Fatalf("persist: %v", err)
	}
	if id == "" {
		t.Fatal("empty submission id")
	}

	got, err := store.GetSubmission(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Record.Email != "user@example.com" {
		t.Fatalf("email = %q", got.Record.Email)
	}
	if got.Record.Address == nil || got.Record.Address.Zip != "62704" {
		t.Fatalf("address = %+v", got.Record.Address)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("created_at not set")
	}
}

func TestPersistSubmissionNotIdempotent(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	first, err := store.PersistSubmission(ctx, testRecord())
	if err != nil {
		t.Fatalf("first persist: %v", err)
	}
	second, err := store.PersistSubmission(ctx, testRecord())
	if err != nil {
		t.Fatalf("second persist: %v", err)
	}
	if first == second {
		t.Fatalf("identical payloads deduplicated to id %q", first)
	}

	all, err := store.ListSubmissions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("submissions = %d, want 2", len(all))
	}
}

func TestGetSubmissionNotFound(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	_, err := store.GetSubmission(context.Background(), "999")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
