package domain

import "strings"

// AllComponents returns every component identifier in display order.
func AllComponents() []ComponentID {
	return []ComponentID{ComponentAbout, ComponentAddress, ComponentBirthdate}
}

func ParseComponent(raw string) (ComponentID, bool) {
	id := ComponentID(strings.ToLower(strings.TrimSpace(raw)))
	switch id {
	case ComponentAbout, ComponentAddress, ComponentBirthdate:
		return id, true
	default:
		return "", false
	}
}

func IsValidComponent(raw string) bool {
	_, ok := ParseComponent(raw)
	return ok
}

// RequiredFields returns the fields that must be filled before the page
// carrying the component counts as complete. About has none: the bio is
// optional in every configuration.
func RequiredFields(id ComponentID) []FieldPath {
	switch id {
	case ComponentAddress:
		return []FieldPath{"address.line1", "address.city", "address.state", "address.zip"}
	case ComponentBirthdate:
		return []FieldPath{"birthdate.date"}
	default:
		return nil
	}
}

// Fields returns every field the component renders, optional ones included.
func Fields(id ComponentID) []FieldPath {
	switch id {
	case ComponentAbout:
		return []FieldPath{"about.bio"}
	case ComponentAddress:
		return []FieldPath{"address.line1", "address.line2", "address.city", "address.state", "address.zip"}
	case ComponentBirthdate:
		return []FieldPath{"birthdate.date"}
	default:
		return nil
	}
}
