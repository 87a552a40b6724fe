package inventory

import (
	"context"
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"

	"github.com/homematch/homematch/internal/models"
)

// KeywordIndex provides full-text lookup over listing addresses, areas, and
// school districts, backed by Bleve. It powers the free-text listing search
// endpoint; ranking itself never consults it.
type KeywordIndex struct {
	index bleve.Index
}

// listingDoc is the indexable projection of a listing.
type listingDoc struct {
	ID             string `json:"id"`
	Address        string `json:"address"`
	Area           string `json:"area"`
	SchoolDistrict string `json:"school_district"`
	PropertyType   string `json:"property_type"`
}

// SearchHit is one keyword search result.
type SearchHit struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// NewKeywordIndex creates or opens a Bleve index at path. An existing index
// is opened and reused; remove the directory to force a full re-index after
// a mapping change.
func NewKeywordIndex(path string) (*KeywordIndex, error) {
	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open Bleve index: %w", openErr)
		}
		return &KeywordIndex{index: index}, nil
	}

	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer: lowercase + tokenize, no stemming, so district and
	// school names match as typed.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("address", textFieldMapping)
	docMapping.AddFieldMappingsAt("area", textFieldMapping)
	docMapping.AddFieldMappingsAt("school_district", textFieldMapping)
	docMapping.AddFieldMappingsAt("property_type", textFieldMapping)
	docMapping.AddFieldMappingsAt("id", bleve.NewKeywordFieldMapping())
	im.AddDocumentMapping("listing", docMapping)
	im.DefaultType = "listing"
	im.DefaultMapping = docMapping

	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}
	return &KeywordIndex{index: index}, nil
}

// NewMemKeywordIndex creates an in-memory index with no on-disk state.
func NewMemKeywordIndex() (*KeywordIndex, error) {
	im := bleve.NewIndexMapping()
	index, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory Bleve index: %w", err)
	}
	return &KeywordIndex{index: index}, nil
}

// Index indexes one listing.
func (k *KeywordIndex) Index(ctx context.Context, listing *models.Listing) error {
	return k.index.Index(listing.ID, toListingDoc(listing))
}

// Delete removes a listing from the index.
func (k *KeywordIndex) Delete(ctx context.Context, id string) error {
	return k.index.Delete(id)
}

// ReplaceAll drops every indexed listing and indexes the given set in one
// batch, mirroring Store.ReplaceAll on seed reload.
func (k *KeywordIndex) ReplaceAll(ctx context.Context, listings []*models.Listing) error {
	batch := k.index.NewBatch()

	match := bleve.NewSearchRequest(bleve.NewMatchAllQuery())
	count, err := k.index.DocCount()
	if err != nil {
		return fmt.Errorf("failed to count indexed listings: %w", err)
	}
	match.Size = int(count)
	if match.Size > 0 {
		existing, err := k.index.Search(match)
		if err != nil {
			return fmt.Errorf("failed to enumerate indexed listings: %w", err)
		}
		for _, hit := range existing.Hits {
			batch.Delete(hit.ID)
		}
	}

	for _, listing := range listings {
		if err := batch.Index(listing.ID, toListingDoc(listing)); err != nil {
			return fmt.Errorf("failed to batch listing %s: %w", listing.ID, err)
		}
	}
	return k.index.Batch(batch)
}

// Search runs a match query over all indexed fields and returns up to limit
// hits ordered by relevance.
func (k *KeywordIndex) Search(ctx context.Context, query string, limit int) ([]*SearchHit, error) {
	if limit <= 0 {
		limit = 10
	}
	req := bleve.NewSearchRequest(bleve.NewMatchQuery(query))
	req.Size = limit
	results, err := k.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}
	hits := make([]*SearchHit, len(results.Hits))
	for i, hit := range results.Hits {
		hits[i] = &SearchHit{ID: hit.ID, Score: hit.Score}
	}
	return hits, nil
}

// Close closes the index.
func (k *KeywordIndex) Close() error {
	return k.index.Close()
}

func toListingDoc(listing *models.Listing) *listingDoc {
	return &listingDoc{
		ID:             listing.ID,
		Address:        listing.Address,
		Area:           listing.Area,
		SchoolDistrict: listing.SchoolDistrict,
		PropertyType:   listing.PropertyType,
	}
}
