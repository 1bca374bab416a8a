package domain

import "sort"

// NormalizePages coerces an admin-supplied candidate into a well-formed
// configuration: non-positive page numbers default to 1, unknown component
// identifiers are dropped, duplicates within a page keep first-seen order,
// pages left without components are removed, and the result is sorted by
// page number. Cross-page rules are the caller's concern; this stays usable
// for any page count.
func NormalizePages(candidate []PageConfig) []PageConfig {
	out := make([]PageConfig, 0, len(candidate))
	for _, page := range candidate {
		number := page.PageNumber
		if number <= 0 {
			number = 1
		}
		seen := map[ComponentID]struct{}{}
		components := make([]ComponentID, 0, len(page.Components))
		for _, raw := range page.Components {
			id, ok := ParseComponent(string(raw))
			if !ok {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			components = append(components, id)
		}
		if len(components) == 0 {
			continue
		}
		out = append(out, PageConfig{PageNumber: number, Components: components})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PageNumber < out[j].PageNumber })
	return out
}
