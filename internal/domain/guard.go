package domain

// The navigation guard is pure over a session snapshot and a configuration
// value. Callers fetch the current configuration before every check, so a
// mid-flow admin edit is picked up at the next transition.

// ResolveStep gates direct navigation (deep links, back/forward). Entering
// step 2 or later needs the account fields; entering step 3 additionally
// needs every field required on page 2. Out-of-order requests are silently
// redirected to the right step, never reported as errors.
func ResolveStep(pages Pages, s *Session, requested int) int {
	step := requested
	if step < StepAccount {
		step = StepAccount
	}
	if step > StepCount {
		step = StepCount
	}
	if step >= FirstConfigurablePage && !s.FilledAll(AccountFields()) {
		return StepAccount
	}
	if step == LastConfigurablePage && !s.FilledAll(RequiredFieldsForPage(pages, FirstConfigurablePage)) {
		return FirstConfigurablePage
	}
	return step
}

// NextStep validates the current step and advances on success. On failure
// the step is unchanged and the field errors are returned for inline
// display.
func NextStep(pages Pages, s *Session, step int) (int, FieldErrors) {
	switch step {
	case StepAccount:
		if errs := ValidateFields(s, AccountFields()); errs != nil {
			return step, errs
		}
		return FirstConfigurablePage, nil
	case FirstConfigurablePage:
		if errs := ValidateFields(s, RequiredFieldsForPage(pages, FirstConfigurablePage)); errs != nil {
			return step, errs
		}
		return LastConfigurablePage, nil
	default:
		return step, nil
	}
}

// PrevStep is unconditional; going back never validates.
func PrevStep(step int) int {
	if step > StepAccount {
		return step - 1
	}
	return StepAccount
}

// SubmitFields is the union validated on submission: account fields plus
// everything required on both configurable pages.
func SubmitFields(pages Pages) []FieldPath {
	out := AccountFields()
	out = append(out, RequiredFieldsForPage(pages, FirstConfigurablePage)...)
	out = append(out, RequiredFieldsForPage(pages, LastConfigurablePage)...)
	return out
}
