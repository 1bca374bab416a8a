package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const PasswordMinLength = 6

var emailPattern = regexp.MustCompile(`^\S+@\S+$`)

type FieldErrors map[FieldPath]string

// ValidationError carries per-field messages for re-rendering a step with
// inline errors. The entered data is untouched; the user corrects and retries.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	paths := make([]string, 0, len(e.Fields))
	for p := range e.Fields {
		paths = append(paths, string(p))
	}
	sort.Strings(paths)
	return fmt.Sprintf("invalid fields: %s", strings.Join(paths, ", "))
}

// ValidateFields checks the given fields against the session. Account
// fields carry their own rules; component fields only need to be filled.
func ValidateFields(s *Session, fields []FieldPath) FieldErrors {
	errs := FieldErrors{}
	for _, f := range fields {
		value := strings.TrimSpace(s.Value(f))
		switch f {
		case FieldEmail:
			if value == "" {
				errs[f] = "Email is required"
			} else if !emailPattern.MatchString(value) {
				errs[f] = "Enter a valid email"
			}
		case FieldPassword:
			if value == "" {
				errs[f] = "Password is required"
			} else if len(value) < PasswordMinLength {
				errs[f] = fmt.Sprintf("At least %d characters", PasswordMinLength)
			}
		default:
			if value == "" {
				errs[f] = "Required"
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func AccountFields() []FieldPath {
	return []FieldPath{FieldEmail, FieldPassword}
}
