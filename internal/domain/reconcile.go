package domain

import (
	"errors"
	"fmt"
)

// ErrConfigurationRejected marks an admin write that would violate the
// business rule: both configurable pages must always carry at least one
// component. Nothing is written when it is returned.
var ErrConfigurationRejected = errors.New("configuration rejected")

// ReconcilePages merges an edit of one configurable page with the other
// page's last known list and returns the combined two-page candidate.
//
// The other page keeps its local draft when that draft is non-empty,
// otherwise it falls back to the server value, so a request that only
// touched one page cannot wipe the other. A component lands on the page
// that was explicitly edited: it is subtracted from the other page rather
// than rejecting the write.
func ReconcilePages(edited int, editedList, otherDraft, otherServer []ComponentID) ([]PageConfig, error) {
	if edited != FirstConfigurablePage && edited != LastConfigurablePage {
		return nil, fmt.Errorf("page %d is not configurable", edited)
	}
	other := FirstConfigurablePage
	if edited == FirstConfigurablePage {
		other = LastConfigurablePage
	}

	editedFinal := dedupe(editedList)

	otherBase := otherDraft
	if len(otherBase) == 0 {
		otherBase = otherServer
	}
	otherFinal := subtract(dedupe(otherBase), editedFinal)

	if len(editedFinal) == 0 {
		return nil, fmt.Errorf("%w: page %d must keep at least one component", ErrConfigurationRejected, edited)
	}
	if len(otherFinal) == 0 {
		return nil, fmt.Errorf("%w: page %d must keep at least one component", ErrConfigurationRejected, other)
	}

	combined := []PageConfig{
		{PageNumber: edited, Components: editedFinal},
		{PageNumber: other, Components: otherFinal},
	}
	if combined[0].PageNumber > combined[1].PageNumber {
		combined[0], combined[1] = combined[1], combined[0]
	}
	return combined, nil
}

func dedupe(ids []ComponentID) []ComponentID {
	seen := map[ComponentID]struct{}{}
	out := make([]ComponentID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func subtract(ids, remove []ComponentID) []ComponentID {
	removed := map[ComponentID]struct{}{}
	for _, id := range remove {
		removed[id] = struct{}{}
	}
	out := make([]ComponentID, 0, len(ids))
	for _, id := range ids {
		if _, ok := removed[id]; ok {
			continue
		}
		out = append(out, id)
	}
	return out
}
