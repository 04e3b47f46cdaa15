package progression_test

import (
	"reflect"
	"testing"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/app/progression"
	"github.com/Romi-2023/kopalnia-wiedzy/internal/domain"
)

func completedSet(ids ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

var testCorridors = []domain.Corridor{
	{ID: "matematyka", Label: "Matematyka"},
	{ID: "przyroda", Label: "Przyroda", Prerequisites: []string{"mat-01"}},
	{ID: "data_science", Label: "Data Science", Prerequisites: []string{"mat-01", "mat-02"}},
}

func TestUnlockedCorridors_NoPrereqsAlwaysOpen(t *testing.T) {
	got := progression.UnlockedCorridors(completedSet(), testCorridors)
	if !reflect.DeepEqual(got, []string{"matematyka"}) {
		t.Errorf("expected only matematyka open, got %v", got)
	}
}

func TestUnlockedCorridors_SubsetRule(t *testing.T) {
	got := progression.UnlockedCorridors(completedSet("mat-01"), testCorridors)
	if !reflect.DeepEqual(got, []string{"matematyka", "przyroda"}) {
		t.Errorf("expected matematyka+przyroda, got %v", got)
	}

	got = progression.UnlockedCorridors(completedSet("mat-01", "mat-02", "extra"), testCorridors)
	if !reflect.DeepEqual(got, []string{"data_science", "matematyka", "przyroda"}) {
		t.Errorf("expected all three, got %v", got)
	}
}

func TestUnlockedCorridors_Monotone(t *testing.T) {
	small := completedSet("mat-01")
	large := completedSet("mat-01", "mat-02", "pol-01")

	before := progression.UnlockedCorridors(small, testCorridors)
	after := progression.UnlockedCorridors(large, testCorridors)

	// Growing the completed set can only grow the unlocked set.
	haveAfter := completedSet(after...)
	for _, id := range before {
		if _, ok := haveAfter[id]; !ok {
			t.Errorf("corridor %s re-locked after more completions", id)
		}
	}
}

func TestUnlockedCorridors_UnknownPrereqFailsClosed(t *testing.T) {
	corridors := []domain.Corridor{
		{ID: "ghost", Prerequisites: []string{"no-such-task"}},
	}
	got := progression.UnlockedCorridors(completedSet("mat-01", "mat-02"), corridors)
	if len(got) != 0 {
		t.Errorf("corridor with unknown prereq should stay locked, got %v", got)
	}
}

func TestUnlockedSupermoce(t *testing.T) {
	supermoce := []domain.Supermoc{
		{ID: "detektyw-danych", Prerequisites: []string{"ds-01"}},
		{ID: "rachmistrz", Prerequisites: []string{"mat-01", "mat-02", "mat-03"}},
	}

	got := progression.UnlockedSupermoce(completedSet("ds-01", "mat-01"), supermoce)
	if !reflect.DeepEqual(got, []string{"detektyw-danych"}) {
		t.Errorf("expected detektyw-danych only, got %v", got)
	}
}
