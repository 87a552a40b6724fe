// Package inventory is the candidate-sourcing side of HomeMatch: listing
// persistence, seed loading, structured pre-filtering, and keyword search.
// The matching engine never reaches into this package; it is handed
// already-resolved listing slices.
package inventory

import (
	"context"

	"github.com/homematch/homematch/internal/models"
)

// Store defines listing persistence operations.
type Store interface {
	CreateListing(ctx context.Context, listing *models.Listing) error
	GetListing(ctx context.Context, id string) (*models.Listing, error)
	DeleteListing(ctx context.Context, id string) error
	ListListings(ctx context.Context, offset, limit int) ([]*models.Listing, error)
	// ReplaceAll atomically swaps the stored inventory for the given set.
	// Used by the seed-file watcher on reload.
	ReplaceAll(ctx context.Context, listings []*models.Listing) error
	CountListings(ctx context.Context) (int64, error)

	Close() error
}
