package location

import "testing"

func TestPrimary(t *testing.T) {
	locations := []Location{
		{ID: "gym-2", Category: CategoryGym},
		{ID: "house", Category: CategoryHousing},
		{ID: "gym-1", Category: CategoryGym},
		{ID: "spa", Category: Category("spa")},
		{ID: "train", Category: CategoryTraining},
	}

	got := Primary(locations)

	wantIDs := []string{"house", "train", "gym-2"}
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d locations, got %d", len(wantIDs), len(got))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Fatalf("position %d: want %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestCategoryLabel(t *testing.T) {
	if CategoryTraining.Label() != "Training Facility" {
		t.Fatalf("unexpected label %q", CategoryTraining.Label())
	}
	if Category("spa").Known() {
		t.Fatalf("expected unknown category")
	}
}
