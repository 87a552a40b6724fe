package inventory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/homematch/homematch/internal/models"
)

func searchTestListings() []*models.Listing {
	return []*models.Listing{
		{ID: "S1", Price: 450_000, Area: "riverside", SchoolDistrict: "lincoln elementary", Address: "12 river road", PropertyType: "apartment"},
		{ID: "S2", Price: 600_000, Area: "hillcrest", SchoolDistrict: "roosevelt middle", Address: "88 hill lane", PropertyType: "townhouse"},
		{ID: "S3", Price: 520_000, Area: "riverside", SchoolDistrict: "roosevelt middle", Address: "7 park avenue", PropertyType: "apartment"},
	}
}

func TestKeywordIndex_IndexAndSearch(t *testing.T) {
	index, err := NewKeywordIndex(filepath.Join(t.TempDir(), "bleve"))
	if err != nil {
		t.Fatalf("NewKeywordIndex: %v", err)
	}
	t.Cleanup(func() { _ = index.Close() })
	ctx := context.Background()

	for _, l := range searchTestListings() {
		if err := index.Index(ctx, l); err != nil {
			t.Fatalf("Index(%s): %v", l.ID, err)
		}
	}

	hits, err := index.Search(ctx, "riverside", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	for _, hit := range hits {
		if hit.ID != "S1" && hit.ID != "S3" {
			t.Errorf("unexpected hit %s", hit.ID)
		}
		if hit.Score <= 0 {
			t.Errorf("hit %s has non-positive score %v", hit.ID, hit.Score)
		}
	}

	hits, err = index.Search(ctx, "lincoln", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "S1" {
		t.Errorf("school search hits = %+v", hits)
	}
}

func TestKeywordIndex_DeleteAndReplaceAll(t *testing.T) {
	index, err := NewKeywordIndex(filepath.Join(t.TempDir(), "bleve"))
	if err != nil {
		t.Fatalf("NewKeywordIndex: %v", err)
	}
	t.Cleanup(func() { _ = index.Close() })
	ctx := context.Background()

	if err := index.ReplaceAll(ctx, searchTestListings()); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	if err := index.Delete(ctx, "S2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	hits, err := index.Search(ctx, "hillcrest", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("deleted listing still found: %+v", hits)
	}

	// Replacing again drops stale entries.
	replacement := []*models.Listing{
		{ID: "S9", Price: 300_000, Area: "lakeview", Address: "1 lake street"},
	}
	if err := index.ReplaceAll(ctx, replacement); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	hits, err = index.Search(ctx, "riverside", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("stale listings survived ReplaceAll: %+v", hits)
	}
	hits, err = index.Search(ctx, "lakeview", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "S9" {
		t.Errorf("replacement not searchable: %+v", hits)
	}
}
