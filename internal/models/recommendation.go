// Steam Game Recommender - Tag-Based Recommendations from Steam Libraries
// Copyright 2026 ja-nacek
// SPDX-License-Identifier: MIT
// https://github.com/ja-nacek/steam-game-recommender

package models

// Recommendation is one recommended catalogue item as delivered to
// clients. AppID is nil for catalogue rows whose store URL carried no
// parseable appid; such rows can still be recommended, they just never
// match an owned game.
type Recommendation struct {
	AppID    *int     `json:"appid"`
	Name     string   `json:"name"`
	ImageURL string   `json:"image_url,omitempty"`
	Score    float64  `json:"score"`
	Tags     []string `json:"tags,omitempty"`
}

// ScorePercent renders the cosine score as a percentage for display.
func (r Recommendation) ScorePercent() float64 {
	return r.Score * 100
}

// RecommendationResponse is the payload of a successful recommendation
// request.
type RecommendationResponse struct {
	SteamID         string           `json:"steamid"`
	PersonaName     string           `json:"personaname,omitempty"`
	LibrarySize     int              `json:"library_size"`
	CandidateCount  int              `json:"candidate_count"`
	Recommendations []Recommendation `json:"recommendations"`
}
