// Package models defines core data structures for listings, buyer preferences,
// and recommendation reports.
package models

// Listing represents a candidate property record.
type Listing struct {
	ID             string                 `json:"id" db:"id"`
	Price          float64                `json:"price" db:"price"`
	Area           string                 `json:"area" db:"area"`
	SizeSqm        float64                `json:"size_sqm" db:"size_sqm"`
	Bedrooms       int                    `json:"bedrooms" db:"bedrooms"`
	Bathrooms      int                    `json:"bathrooms" db:"bathrooms"`
	SchoolDistrict string                 `json:"school_district" db:"school_district"`
	CommuteMinutes int                    `json:"commute_minutes" db:"commute_minutes"`
	Address        string                 `json:"address" db:"address"`
	ListingDate    string                 `json:"listing_date,omitempty" db:"listing_date"`
	PropertyType   string                 `json:"property_type,omitempty" db:"property_type"`
	Metadata       map[string]interface{} `json:"metadata,omitempty" db:"metadata"`
}

// HasPrice reports whether the listing carries a usable price. Listings
// without one are excluded from ranking and counted as skipped.
func (l *Listing) HasPrice() bool {
	return l.Price > 0
}
