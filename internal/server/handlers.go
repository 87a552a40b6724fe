package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/homematch/homematch/internal/inventory"
	"github.com/homematch/homematch/internal/matching"
	"github.com/homematch/homematch/internal/models"
)

// RecommendRequest is the body of POST /api/v1/recommendations.
type RecommendRequest struct {
	Preference models.PreferenceRecord `json:"preference"`
	TopK       int                     `json:"top_k,omitempty"`
	// Prefilter applies the hard constraint filter before scoring, so only
	// listings satisfying every stated bound are ranked.
	Prefilter bool `json:"prefilter,omitempty"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	topK := req.TopK
	if topK == 0 {
		topK = s.matching.DefaultTopK
	}
	if topK > s.matching.MaxTopK {
		topK = s.matching.MaxTopK
	}
	s.logger.Debug("recommend request",
		zap.String("budget", req.Preference.BudgetText),
		zap.String("area", req.Preference.AreaText),
		zap.Int("top_k", topK),
	)

	listings, err := s.store.ListListings(r.Context(), 0, s.matching.MaxTopK*10)
	if err != nil {
		s.logger.Error("listing load failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if req.Prefilter {
		listings = inventory.Filter(listings, s.engine.Normalize(req.Preference))
	}

	result := s.engine.Rank(listings, req.Preference, topK)
	report := matching.Summarize(result)
	s.respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	var listing models.Listing
	if err := json.NewDecoder(r.Body).Decode(&listing); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !listing.HasPrice() {
		s.respondError(w, http.StatusBadRequest, "listing price is required")
		return
	}
	if listing.ID == "" {
		listing.ID = uuid.NewString()
	}
	s.logger.Debug("create listing request", zap.String("id", listing.ID), zap.String("area", listing.Area))
	if err := s.store.CreateListing(r.Context(), &listing); err != nil {
		s.logger.Error("listing create failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if s.index != nil {
		if err := s.index.Index(r.Context(), &listing); err != nil {
			s.logger.Warn("listing index failed", zap.String("id", listing.ID), zap.Error(err))
		}
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{"id": listing.ID, "status": "created"})
}

func (s *Server) handleListListings(w http.ResponseWriter, r *http.Request) {
	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", 50)
	listings, err := s.store.ListListings(r.Context(), offset, limit)
	if err != nil {
		s.logger.Error("listing list failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"listings": listings,
		"count":    len(listings),
	})
}

func (s *Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	listing, err := s.store.GetListing(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "listing not found")
		return
	}
	s.respondJSON(w, http.StatusOK, listing)
}

func (s *Server) handleDeleteListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug("delete listing request", zap.String("id", id))
	if err := s.store.DeleteListing(r.Context(), id); err != nil {
		s.logger.Error("listing delete failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if s.index != nil {
		if err := s.index.Delete(r.Context(), id); err != nil {
			s.logger.Warn("listing unindex failed", zap.String("id", id), zap.Error(err))
		}
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleSearchListings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.respondError(w, http.StatusBadRequest, "q parameter is required")
		return
	}
	if s.index == nil {
		s.respondError(w, http.StatusNotImplemented, "keyword search not enabled")
		return
	}
	limit := queryInt(r, "limit", 10)
	hits, err := s.index.Search(r.Context(), query, limit)
	if err != nil {
		s.logger.Error("listing search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	listings := make([]*models.Listing, 0, len(hits))
	for _, hit := range hits {
		listing, err := s.store.GetListing(r.Context(), hit.ID)
		if err != nil {
			// Index can briefly lag behind the store; skip stale hits.
			continue
		}
		listings = append(listings, listing)
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"query":    query,
		"listings": listings,
		"count":    len(listings),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.CountListings(r.Context())
	if err != nil {
		s.logger.Error("status: count listings failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"listings": count,
		"config": map[string]interface{}{
			"weights":       s.engine.Weights(),
			"default_top_k": s.matching.DefaultTopK,
			"max_top_k":     s.matching.MaxTopK,
		},
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
