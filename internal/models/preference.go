package models

// PreferenceRecord holds the buyer's raw preference text, one optional string
// per dimension. An empty field means no constraint on that dimension.
type PreferenceRecord struct {
	BudgetText  string `json:"budget_text,omitempty"`
	AreaText    string `json:"area_text,omitempty"`
	SchoolText  string `json:"school_text,omitempty"`
	CommuteText string `json:"commute_text,omitempty"`
}

// NormalizedPreference is the numeric form of a PreferenceRecord produced by
// the normalizer. Nil pointer fields mean the dimension is unconstrained.
type NormalizedPreference struct {
	BudgetMin         *float64 `json:"budget_min,omitempty"`
	BudgetMax         *float64 `json:"budget_max,omitempty"`
	RequiredArea      string   `json:"required_area,omitempty"`
	RequiredSchool    string   `json:"required_school,omitempty"`
	MaxCommuteMinutes *int     `json:"max_commute_minutes,omitempty"`
}
