package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/homematch/homematch/internal/config"
	"github.com/homematch/homematch/internal/inventory"
	"github.com/homematch/homematch/internal/matching"
	"github.com/homematch/homematch/internal/models"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()

	store, err := inventory.NewSQLiteStore(filepath.Join(dir, "listings.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	index, err := inventory.NewKeywordIndex(filepath.Join(dir, "bleve"))
	if err != nil {
		t.Fatalf("NewKeywordIndex: %v", err)
	}
	t.Cleanup(func() { _ = index.Close() })

	if _, err := inventory.Seed(context.Background(), store, index, ""); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	engine, err := matching.NewEngine(matching.DefaultWeights(), nil, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	return NewServer(engine, store, index,
		&config.ServerConfig{Host: "localhost", Port: 8080},
		&config.MatchingConfig{DefaultTopK: 5, MaxTopK: 100},
		zap.NewNop(),
	)
}

func TestHandleRecommend(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(RecommendRequest{
		Preference: models.PreferenceRecord{
			BudgetText:  "300-500万",
			AreaText:    "朝阳区",
			CommuteText: "30分钟",
		},
		TopK: 3,
	})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	var report models.SummaryReport
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	if report.TotalRecommendations != 3 {
		t.Errorf("total = %d, want 3", report.TotalRecommendations)
	}
	if report.TopRecommendation == nil || report.TopRecommendation.Reason == "" {
		t.Error("top recommendation missing or without reason")
	}
	for idx, entry := range report.Recommendations {
		if entry.Rank != idx+1 {
			t.Errorf("rank at %d = %d", idx, entry.Rank)
		}
	}
}

func TestHandleRecommend_Prefilter(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(RecommendRequest{
		Preference: models.PreferenceRecord{AreaText: "朝阳区"},
		TopK:       10,
		Prefilter:  true,
	})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var report models.SummaryReport
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	// Only P001 and P005 are in 朝阳区.
	if report.TotalRecommendations != 2 {
		t.Errorf("total = %d, want 2", report.TotalRecommendations)
	}
}

func TestHandleRecommend_BadBody(t *testing.T) {
	srv := newTestServer(t)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", bytes.NewReader([]byte("{oops")))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestHandleListingsCRUD(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(models.Listing{
		Price: 4_000_000, Area: "东城区", Address: "东城区某路10号",
		SchoolDistrict: "东城第一小学", CommuteMinutes: 20,
	})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/listings", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status: got %d, body %s", w.Code, w.Body.String())
	}
	var created map[string]string
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	id := created["id"]
	if id == "" {
		t.Fatal("no id assigned")
	}

	r = httptest.NewRequest(http.MethodGet, "/api/v1/listings/"+id, nil)
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("get status: got %d", w.Code)
	}
	var got models.Listing
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Area != "东城区" {
		t.Errorf("area = %q", got.Area)
	}

	r = httptest.NewRequest(http.MethodDelete, "/api/v1/listings/"+id, nil)
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status: got %d", w.Code)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/v1/listings/"+id, nil)
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete: got %d, want 404", w.Code)
	}
}

func TestHandleCreateListing_RequiresPrice(t *testing.T) {
	srv := newTestServer(t)
	body, _ := json.Marshal(models.Listing{Area: "东城区"})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/listings", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestHandleListListings(t *testing.T) {
	srv := newTestServer(t)
	r := httptest.NewRequest(http.MethodGet, "/api/v1/listings?limit=2&offset=1", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out struct {
		Listings []*models.Listing `json:"listings"`
		Count    int               `json:"count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 || len(out.Listings) != 2 {
		t.Errorf("count = %d, listings = %d", out.Count, len(out.Listings))
	}
}

func TestHandleSearchListings(t *testing.T) {
	srv := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/listings/search?q=建国路", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}

	r = httptest.NewRequest(http.MethodGet, "/api/v1/listings/search", nil)
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing q: got %d, want 400", w.Code)
	}
}

func TestHandleHealthAndStatus(t *testing.T) {
	srv := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("health status: got %d", w.Code)
	}

	r = httptest.NewRequest(http.MethodGet, "/status", nil)
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out struct {
		Listings int64 `json:"listings"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Listings != 5 {
		t.Errorf("listings = %d, want 5", out.Listings)
	}
}
