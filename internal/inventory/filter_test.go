package inventory

import (
	"testing"

	"github.com/homematch/homematch/internal/models"
)

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

func TestFilter(t *testing.T) {
	listings := DefaultSeedListings()

	tests := []struct {
		name    string
		pref    models.NormalizedPreference
		wantIDs []string
	}{
		{
			"no constraints keep everything",
			models.NormalizedPreference{},
			[]string{"P001", "P002", "P003", "P004", "P005"},
		},
		{
			"budget range",
			models.NormalizedPreference{BudgetMin: f(3_000_000), BudgetMax: f(5_000_000)},
			[]string{"P001", "P002", "P005"},
		},
		{
			"area",
			models.NormalizedPreference{RequiredArea: "朝阳区"},
			[]string{"P001", "P005"},
		},
		{
			"school substring",
			models.NormalizedPreference{RequiredSchool: "中关村"},
			[]string{"P002"},
		},
		{
			"commute cap",
			models.NormalizedPreference{MaxCommuteMinutes: i(28)},
			[]string{"P001", "P004", "P005"},
		},
		{
			"combined",
			models.NormalizedPreference{
				BudgetMax:         f(4_000_000),
				RequiredArea:      "朝阳区",
				MaxCommuteMinutes: i(30)},
			[]string{"P001", "P005"},
		},
		{
			"nothing matches",
			models.NormalizedPreference{RequiredArea: "通州区"},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(listings, tt.pref)
			var gotIDs []string
			for _, l := range got {
				gotIDs = append(gotIDs, l.ID)
			}
			if len(gotIDs) != len(tt.wantIDs) {
				t.Fatalf("got %v, want %v", gotIDs, tt.wantIDs)
			}
			for idx := range gotIDs {
				if gotIDs[idx] != tt.wantIDs[idx] {
					t.Errorf("got %v, want %v", gotIDs, tt.wantIDs)
					break
				}
			}
		})
	}
}

func TestFilter_SkipsNil(t *testing.T) {
	listings := []*models.Listing{nil, {ID: "A", Price: 1, Area: "x"}}
	if got := Filter(listings, models.NormalizedPreference{}); len(got) != 1 {
		t.Errorf("got %d listings, want 1", len(got))
	}
}
