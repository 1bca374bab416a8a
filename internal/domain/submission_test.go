package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBuildSubmissionOmitsDeadComponents(t *testing.T) {
	t.Parallel()

	pages := Pages{Pages: []PageConfig{
		{PageNumber: 2, Components: []ComponentID{ComponentAddress}},
		{PageNumber: 3, Components: []ComponentID{ComponentBirthdate}},
	}}
	s := sessionWithAccount()
	fillAddress(s)
	s.SetValue("birthdate.date", "1990-04-02")
	// stale value for a component no longer in the configuration
	s.SetValue("about.bio", "left over")

	record := BuildSubmission(pages, s)
	if record.About != nil {
		t.Fatalf("about = %+v, want omitted", record.About)
	}
	if record.Address == nil || record.Address.City != "Springfield" {
		t.Fatalf("address = %+v", record.Address)
	}
	if record.Birthdate == nil || record.Birthdate.Date != "1990-04-02" {
		t.Fatalf("birthdate = %+v", record.Birthdate)
	}
}

func TestBuildSubmissionScenarioPayloadKeys(t *testing.T) {
	t.Parallel()

	pages := Pages{Pages: []PageConfig{
		{PageNumber: 2, Components: []ComponentID{ComponentAbout, ComponentAddress}},
		{PageNumber: 3, Components: []ComponentID{ComponentBirthdate}},
	}}
	s := sessionWithAccount()
	fillAddress(s)
	s.SetValue("about.bio", "hello")
	s.SetValue("birthdate.date", "1990-04-02")

	b, err := json.Marshal(BuildSubmission(pages, s))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"about"`, `"address"`, `"birthdate"`, `"email"`} {
		if !strings.Contains(string(b), key) {
			t.Fatalf("payload missing %s: %s", key, b)
		}
	}
}

func TestBuildSubmissionEmptyPasswordOmitted(t *testing.T) {
	t.Parallel()

	s := NewSession()
	s.SetValue(FieldEmail, "user@example.com")
	b, err := json.Marshal(BuildSubmission(Pages{}, s))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "password") {
		t.Fatalf("empty password serialized: %s", b)
	}
}
