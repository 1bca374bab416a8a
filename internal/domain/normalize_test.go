package domain

import (
	"reflect"
	"testing"
)

func TestNormalizePagesDropsInvalidAndEmpty(t *testing.T) {
	t.Parallel()

	got := NormalizePages([]PageConfig{
		{PageNumber: 2, Components: []ComponentID{"ABOUT", "about", "bogus", "address"}},
		{PageNumber: 3, Components: []ComponentID{"nope"}},
	})
	want := []PageConfig{
		{PageNumber: 2, Components: []ComponentID{ComponentAbout, ComponentAddress}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("normalized = %+v, want %+v", got, want)
	}
}

func TestNormalizePagesSortsAndDefaultsPageNumber(t *testing.T) {
	t.Parallel()

	got := NormalizePages([]PageConfig{
		{PageNumber: 3, Components: []ComponentID{"birthdate"}},
		{PageNumber: -4, Components: []ComponentID{"about"}},
		{PageNumber: 2, Components: []ComponentID{"address"}},
	})
	want := []PageConfig{
		{PageNumber: 1, Components: []ComponentID{ComponentAbout}},
		{PageNumber: 2, Components: []ComponentID{ComponentAddress}},
		{PageNumber: 3, Components: []ComponentID{ComponentBirthdate}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("normalized = %+v, want %+v", got, want)
	}
}

func TestNormalizePagesNeverKeepsDuplicatesWithinPage(t *testing.T) {
	t.Parallel()

	got := NormalizePages([]PageConfig{
		{PageNumber: 2, Components: []ComponentID{"address", "birthdate", "address", "ADDRESS"}},
	})
	if len(got) != 1 {
		t.Fatalf("pages = %d, want 1", len(got))
	}
	seen := map[ComponentID]int{}
	for _, c := range got[0].Components {
		seen[c]++
	}
	for c, n := range seen {
		if n != 1 {
			t.Fatalf("component %q appears %d times on page 2", c, n)
		}
	}
}

func TestNormalizePagesEmptyInput(t *testing.T) {
	t.Parallel()

	if got := NormalizePages(nil); len(got) != 0 {
		t.Fatalf("normalized nil = %+v, want empty", got)
	}
}
