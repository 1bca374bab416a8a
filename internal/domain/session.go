package domain

import "strings"

// Session accumulates the values a user has entered across the wizard.
// It is owned by the interaction that created it; validation and
// navigation only read it.
type Session struct {
	values map[FieldPath]string
}

func NewSession() *Session {
	return &Session{values: map[FieldPath]string{}}
}

func (s *Session) Value(path FieldPath) string {
	if s == nil || s.values == nil {
		return ""
	}
	return s.values[path]
}

func (s *Session) SetValue(path FieldPath, value string) {
	if s.values == nil {
		s.values = map[FieldPath]string{}
	}
	s.values[path] = value
}

// Filled is the single presence predicate shared by every validation
// point: a value counts once it is non-empty after trimming.
func Filled(value string) bool {
	return strings.TrimSpace(value) != ""
}

func (s *Session) FilledAll(fields []FieldPath) bool {
	for _, f := range fields {
		if !Filled(s.Value(f)) {
			return false
		}
	}
	return true
}
