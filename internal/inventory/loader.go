package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/homematch/homematch/internal/models"
)

// LoadSeedFile reads a JSON array of listings from path. Listings without an
// ID are assigned one; listings without a usable price are rejected so bad
// seed data surfaces at load time instead of silently skewing rankings.
func LoadSeedFile(path string) ([]*models.Listing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var listings []*models.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	for _, listing := range listings {
		if listing.ID == "" {
			listing.ID = uuid.NewString()
		}
		if !listing.HasPrice() {
			return nil, fmt.Errorf("seed listing %s has no usable price", listing.ID)
		}
	}
	return listings, nil
}

// Seed loads listings from path (or the built-in sample inventory when path
// is empty) into the store and keyword index.
func Seed(ctx context.Context, store Store, index *KeywordIndex, path string) (int, error) {
	var listings []*models.Listing
	var err error
	if path == "" {
		listings = DefaultSeedListings()
	} else {
		listings, err = LoadSeedFile(path)
		if err != nil {
			return 0, err
		}
	}
	if err := store.ReplaceAll(ctx, listings); err != nil {
		return 0, err
	}
	if index != nil {
		if err := index.ReplaceAll(ctx, listings); err != nil {
			return 0, err
		}
	}
	return len(listings), nil
}

// DefaultSeedListings returns the built-in sample inventory used by the seed
// command and tests when no seed file is configured.
func DefaultSeedListings() []*models.Listing {
	return []*models.Listing{
		{
			ID: "P001", Price: 3_500_000, Area: "朝阳区", SizeSqm: 120.5,
			Bedrooms: 3, Bathrooms: 2, SchoolDistrict: "朝阳实验小学",
			CommuteMinutes: 25, Address: "朝阳区建国路88号",
			ListingDate: "2024-01-15", PropertyType: "公寓",
		},
		{
			ID: "P002", Price: 4_200_000, Area: "海淀区", SizeSqm: 95.0,
			Bedrooms: 2, Bathrooms: 1, SchoolDistrict: "中关村第一小学",
			CommuteMinutes: 30, Address: "海淀区中关村大街123号",
			ListingDate: "2024-01-20", PropertyType: "公寓",
		},
		{
			ID: "P003", Price: 2_800_000, Area: "丰台区", SizeSqm: 85.0,
			Bedrooms: 2, Bathrooms: 1, SchoolDistrict: "丰台第五小学",
			CommuteMinutes: 35, Address: "丰台区南三环西路456号",
			ListingDate: "2024-01-18", PropertyType: "公寓",
		},
		{
			ID: "P004", Price: 5_800_000, Area: "西城区", SizeSqm: 140.0,
			Bedrooms: 3, Bathrooms: 2, SchoolDistrict: "北京第二实验小学",
			CommuteMinutes: 15, Address: "西城区金融街789号",
			ListingDate: "2024-01-22", PropertyType: "公寓",
		},
		{
			ID: "P005", Price: 3_200_000, Area: "朝阳区", SizeSqm: 110.0,
			Bedrooms: 3, Bathrooms: 2, SchoolDistrict: "朝阳外国语学校",
			CommuteMinutes: 28, Address: "朝阳区望京西路321号",
			ListingDate: "2024-01-25", PropertyType: "公寓",
		},
	}
}
