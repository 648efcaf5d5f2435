// Steam Game Recommender - Tag-Based Recommendations from Steam Libraries
// Copyright 2026 ja-nacek
// SPDX-License-Identifier: MIT
// https://github.com/ja-nacek/steam-game-recommender

package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/ja-nacek/steam-game-recommender/internal/catalog"
	"github.com/ja-nacek/steam-game-recommender/internal/logging"
	"github.com/ja-nacek/steam-game-recommender/internal/models"
	"github.com/ja-nacek/steam-game-recommender/internal/recommend"
)

// maxRequestBodySize caps recommendation request bodies. The payload is
// a SteamID and a count; anything bigger is garbage.
const maxRequestBodySize = 4 * 1024

// RecommendationEngine is the engine surface the handlers depend on.
// Tests substitute a fake; production wires *recommend.Engine.
type RecommendationEngine interface {
	Recommend(ctx context.Context, steamID string, topN int) (*recommend.Result, error)
}

// Handler holds dependencies for all HTTP handlers.
type Handler struct {
	engine    RecommendationEngine
	catalog   *catalog.Catalog
	startTime time.Time
	version   string
}

// NewHandler creates a handler with the given engine and catalogue.
func NewHandler(engine RecommendationEngine, cat *catalog.Catalog, version string) *Handler {
	return &Handler{
		engine:    engine,
		catalog:   cat,
		startTime: time.Now(),
		version:   version,
	}
}

// RecommendRequest is the POST /api/v1/recommendations body.
type RecommendRequest struct {
	SteamID string `json:"steam_id" validate:"required,steamid"`
	Count   int    `json:"count"    validate:"omitempty,min=1,max=50"`
}

// Recommend handles POST /api/v1/recommendations.
//
// The request body names a SteamID64 and an optional result count. On
// success the response data is a models.RecommendationResponse; on
// failure the error carries exactly one reason code and a user-safe
// message.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req RecommendRequest
	body := io.LimitReader(r.Body, maxRequestBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST",
			"Request body must be JSON with a steam_id field.", err)
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	result, err := h.engine.Recommend(r.Context(), req.SteamID, req.Count)
	if err != nil {
		respondRecommendError(w, err)
		return
	}

	logging.Info().
		Str("steamid", sanitizeLogValue(req.SteamID)).
		Int("results", len(result.Items)).
		Dur("duration", time.Since(start)).
		Msg("Recommendation request served")

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   buildRecommendationResponse(result),
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// buildRecommendationResponse converts an engine result to the wire shape.
// Catalogue rows without a parseable appid keep a null appid and no
// image URL rather than being dropped.
func buildRecommendationResponse(result *recommend.Result) *models.RecommendationResponse {
	recs := make([]models.Recommendation, len(result.Items))
	for i, scored := range result.Items {
		rec := models.Recommendation{
			Name:     scored.Item.Name,
			ImageURL: scored.Item.ImageURL,
			Score:    scored.Score,
			Tags:     scored.Item.Tags,
		}
		if scored.Item.AppID.Valid {
			appID := scored.Item.AppID.Value
			rec.AppID = &appID
		}
		recs[i] = rec
	}

	return &models.RecommendationResponse{
		SteamID:         result.SteamID,
		PersonaName:     result.PersonaName,
		LibrarySize:     result.LibrarySize,
		CandidateCount:  result.CandidateCount,
		Recommendations: recs,
	}
}

// Health handles GET /api/v1/health, the human-facing aggregate of the
// liveness and readiness probes.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	catalogLoaded := h.catalog != nil && h.catalog.Len() > 0

	catalogItems := 0
	if h.catalog != nil {
		catalogItems = h.catalog.Len()
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"status":         "healthy",
			"version":        h.version,
			"catalog_loaded": catalogLoaded,
			"catalog_items":  catalogItems,
			"uptime":         time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":   true,
			"uptime":  time.Since(h.startTime).Seconds(),
			"version": h.version,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// The service is ready once the catalogue is loaded and the engine is
// wired; Steam reachability is deliberately not probed here because a
// readiness check must not spend Steam API quota.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	catalogLoaded := h.catalog != nil && h.catalog.Len() > 0
	ready := catalogLoaded && h.engine != nil

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	catalogItems := 0
	if h.catalog != nil {
		catalogItems = h.catalog.Len()
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"catalog_loaded": catalogLoaded,
			"catalog_items":  catalogItems,
			"ready_to_serve": ready,
			"uptime":         time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
