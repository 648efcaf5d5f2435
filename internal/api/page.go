// Steam Game Recommender - Tag-Based Recommendations from Steam Libraries
// Copyright 2026 ja-nacek
// SPDX-License-Identifier: MIT
// https://github.com/ja-nacek/steam-game-recommender

package api

import (
	_ "embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/ja-nacek/steam-game-recommender/internal/logging"
	"github.com/ja-nacek/steam-game-recommender/internal/models"
	"github.com/ja-nacek/steam-game-recommender/internal/recommend"
)

//go:embed templates/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// indexData is the template context for the landing page.
type indexData struct {
	Version         string
	CatalogItems    int
	SteamID         string
	Error           string
	Recommendations []models.Recommendation
}

// Index serves the recommendation UI. GET renders the empty form; the
// page's script talks to the JSON API from there.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderIndex(w, indexData{})
}

// IndexSubmit handles the no-JS form POST: it runs the recommendation
// inline and renders results (or a single error message) server-side.
func (h *Handler) IndexSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderIndex(w, indexData{Error: "Could not read the submitted form."})
		return
	}

	steamID := r.PostFormValue("steam_id")
	req := RecommendRequest{SteamID: steamID}
	if apiErr := validateRequest(&req); apiErr != nil {
		h.renderIndex(w, indexData{SteamID: steamID, Error: apiErr.Message})
		return
	}

	result, err := h.engine.Recommend(r.Context(), steamID, 0)
	if err != nil {
		message := "Could not reach Steam. Please try again later."
		var recErr *recommend.Error
		if errors.As(err, &recErr) {
			message = recErr.Message()
		}
		h.renderIndex(w, indexData{SteamID: steamID, Error: message})
		return
	}

	payload := buildRecommendationResponse(result)
	h.renderIndex(w, indexData{
		SteamID:         steamID,
		Recommendations: payload.Recommendations,
	})
}

func (h *Handler) renderIndex(w http.ResponseWriter, data indexData) {
	data.Version = h.version
	if h.catalog != nil {
		data.CatalogItems = h.catalog.Len()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		logging.Error().Err(err).Msg("Failed to render index page")
	}
}
