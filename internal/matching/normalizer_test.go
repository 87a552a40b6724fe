package matching

import (
	"testing"

	"github.com/homematch/homematch/internal/models"
)

func TestNormalizer_Budget(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name    string
		text    string
		wantMin *float64
		wantMax *float64
	}{
		{"range", "300-500万", f(3_000_000), f(5_000_000)},
		{"range with spaces", " 300 - 500万 ", f(3_000_000), f(5_000_000)},
		{"ceiling", "400万以内", nil, f(4_000_000)},
		{"fractional range", "2.5-3.5万", f(25_000), f(35_000)},
		{"no unit marker", "300-500", nil, nil},
		{"bare number", "500万", nil, nil},
		{"garbage", "cheap please", nil, nil},
		{"garbage range", "abc-def万", nil, nil},
		{"empty", "", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pref := n.Normalize(models.PreferenceRecord{BudgetText: tt.text})
			checkFloatPtr(t, "budget_min", pref.BudgetMin, tt.wantMin)
			checkFloatPtr(t, "budget_max", pref.BudgetMax, tt.wantMax)
		})
	}
}

func TestNormalizer_Commute(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name string
		text string
		want *int
	}{
		{"plain", "30分钟", i(30)},
		{"embedded", "通勤30分钟以内", i(30)},
		{"first run wins", "30到45分钟", i(30)},
		{"no digits", "分钟", nil},
		{"no unit marker", "30", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pref := n.Normalize(models.PreferenceRecord{CommuteText: tt.text})
			if (pref.MaxCommuteMinutes == nil) != (tt.want == nil) {
				t.Fatalf("max_commute_minutes = %v, want %v", pref.MaxCommuteMinutes, tt.want)
			}
			if tt.want != nil && *pref.MaxCommuteMinutes != *tt.want {
				t.Errorf("max_commute_minutes = %d, want %d", *pref.MaxCommuteMinutes, *tt.want)
			}
		})
	}
}

func TestNormalizer_PassThrough(t *testing.T) {
	n := NewNormalizer()
	pref := n.Normalize(models.PreferenceRecord{
		AreaText:   " 朝阳区 ",
		SchoolText: "中关村第一小学",
	})
	if pref.RequiredArea != "朝阳区" {
		t.Errorf("required_area = %q", pref.RequiredArea)
	}
	if pref.RequiredSchool != "中关村第一小学" {
		t.Errorf("required_school = %q", pref.RequiredSchool)
	}
}

func checkFloatPtr(t *testing.T, field string, got, want *float64) {
	t.Helper()
	if (got == nil) != (want == nil) {
		t.Fatalf("%s = %v, want %v", field, got, want)
	}
	if want != nil && *got != *want {
		t.Errorf("%s = %v, want %v", field, *got, *want)
	}
}

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }
