package domain

// RequiredFieldsForPage accumulates the required fields of every component
// assigned to the page, in assignment order. Account fields are not derived
// here; they belong to the fixed first step.
func RequiredFieldsForPage(pages Pages, pageNumber int) []FieldPath {
	var out []FieldPath
	for _, id := range pages.ComponentsOn(pageNumber) {
		out = append(out, RequiredFields(id)...)
	}
	return out
}
