// Steam Game Recommender - Tag-Based Recommendations from Steam Libraries
// Copyright 2026 ja-nacek
// SPDX-License-Identifier: MIT
// https://github.com/ja-nacek/steam-game-recommender

package api

import (
	"errors"
	"net/http"

	"github.com/ja-nacek/steam-game-recommender/internal/recommend"
)

// reasonStatus maps each recommendation failure reason to an HTTP status.
//
// USER_NOT_FOUND is the only 404: the resource (the Steam user) does not
// exist. Library-shaped failures are 422 because the request was valid
// but the account's data cannot produce recommendations. Upstream
// failures are 502 so load balancers and clients can distinguish "Steam
// is down" from "this service is broken".
var reasonStatus = map[recommend.Reason]int{
	recommend.ReasonCommunicationFailure:   http.StatusBadGateway,
	recommend.ReasonUserNotFound:           http.StatusNotFound,
	recommend.ReasonProfilePrivate:         http.StatusForbidden,
	recommend.ReasonNoOwnedGames:           http.StatusUnprocessableEntity,
	recommend.ReasonInsufficientOwnedGames: http.StatusUnprocessableEntity,
	recommend.ReasonNoCandidates:           http.StatusUnprocessableEntity,
}

// respondRecommendError translates an engine failure into the API error
// envelope. Reason-coded failures map to their documented status and
// user-facing message; anything unclassified becomes a 502
// COMMUNICATION_FAILURE so internal detail never leaks to clients.
func respondRecommendError(w http.ResponseWriter, err error) {
	var recErr *recommend.Error
	if errors.As(err, &recErr) {
		status, ok := reasonStatus[recErr.Reason]
		if !ok {
			status = http.StatusBadGateway
		}
		respondError(w, status, string(recErr.Reason), recErr.Message(), err)
		return
	}

	respondError(w, http.StatusBadGateway, string(recommend.ReasonCommunicationFailure),
		"Could not reach Steam. Please try again later.", err)
}
