package domain

import "strings"

// Submission is the finalized payload handed to the persistence
// collaborator. It is created once per successful submit and never
// mutated afterwards.
type Submission struct {
	Email     string           `json:"email"`
	Password  string           `json:"password,omitempty"`
	About     *AboutFields     `json:"about,omitempty"`
	Address   *AddressFields   `json:"address,omitempty"`
	Birthdate *BirthdateFields `json:"birthdate,omitempty"`
}

type AboutFields struct {
	Bio string `json:"bio,omitempty"`
}

type AddressFields struct {
	Line1 string `json:"line1,omitempty"`
	Line2 string `json:"line2,omitempty"`
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
	Zip   string `json:"zip,omitempty"`
}

type BirthdateFields struct {
	Date string `json:"date,omitempty"`
}

// BuildSubmission assembles the record from the session, keyed by the
// components live in the current configuration. Stale session values for
// components the admin has since removed are omitted.
func BuildSubmission(pages Pages, s *Session) Submission {
	record := Submission{
		Email:    strings.TrimSpace(s.Value(FieldEmail)),
		Password: s.Value(FieldPassword),
	}
	for _, id := range AllComponents() {
		if !pages.Live(id) {
			continue
		}
		switch id {
		case ComponentAbout:
			record.About = &AboutFields{Bio: s.Value("about.bio")}
		case ComponentAddress:
			record.Address = &AddressFields{
				Line1: s.Value("address.line1"),
				Line2: s.Value("address.line2"),
				City:  s.Value("address.city"),
				State: s.Value("address.state"),
				Zip:   s.Value("address.zip"),
			}
		case ComponentBirthdate:
			record.Birthdate = &BirthdateFields{Date: s.Value("birthdate.date")}
		}
	}
	return record
}
