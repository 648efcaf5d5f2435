// Steam Game Recommender - Tag-Based Recommendations from Steam Libraries
// Copyright 2026 ja-nacek
// SPDX-License-Identifier: MIT
// https://github.com/ja-nacek/steam-game-recommender

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
		duration   time.Duration
	}{
		{
			name:       "successful recommendation request",
			method:     "POST",
			endpoint:   "/api/v1/recommendations",
			statusCode: "200",
			duration:   150 * time.Millisecond,
		},
		{
			name:       "not found response",
			method:     "POST",
			endpoint:   "/api/v1/recommendations",
			statusCode: "404",
			duration:   80 * time.Millisecond,
		},
		{
			name:       "health check",
			method:     "GET",
			endpoint:   "/api/v1/health/live",
			statusCode: "200",
			duration:   500 * time.Microsecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)
			after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			if after != before+1 {
				t.Errorf("APIRequestsTotal = %v, want %v", after, before+1)
			}
		})
	}
}

// TestRecordRecommendation tests recommendation outcome recording
func TestRecordRecommendation(t *testing.T) {
	outcomes := []string{
		"success",
		"PROFILE_PRIVATE",
		"USER_NOT_FOUND",
		"INSUFFICIENT_OWNED_GAMES",
		"NO_CANDIDATES",
		"COMMUNICATION_FAILURE",
	}

	for _, outcome := range outcomes {
		before := testutil.ToFloat64(RecommendationsTotal.WithLabelValues(outcome))
		RecordRecommendation(outcome, 100*time.Millisecond)
		after := testutil.ToFloat64(RecommendationsTotal.WithLabelValues(outcome))
		if after != before+1 {
			t.Errorf("RecommendationsTotal[%s] = %v, want %v", outcome, after, before+1)
		}
	}
}

// TestRecordCacheAccess tests cache hit/miss recording
func TestRecordCacheAccess(t *testing.T) {
	hitsBefore := testutil.ToFloat64(CacheHits.WithLabelValues("owned_games"))
	missesBefore := testutil.ToFloat64(CacheMisses.WithLabelValues("owned_games"))

	RecordCacheAccess("owned_games", true)
	RecordCacheAccess("owned_games", false)
	RecordCacheAccess("owned_games", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("owned_games")); got != hitsBefore+1 {
		t.Errorf("CacheHits = %v, want %v", got, hitsBefore+1)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("owned_games")); got != missesBefore+2 {
		t.Errorf("CacheMisses = %v, want %v", got, missesBefore+2)
	}
}

// TestRecordSteamAPICall tests Steam API call recording
func TestRecordSteamAPICall(t *testing.T) {
	before := testutil.ToFloat64(SteamAPICalls.WithLabelValues("GetOwnedGames", "success"))
	RecordSteamAPICall("GetOwnedGames", "success", 200*time.Millisecond)
	after := testutil.ToFloat64(SteamAPICalls.WithLabelValues("GetOwnedGames", "success"))
	if after != before+1 {
		t.Errorf("SteamAPICalls = %v, want %v", after, before+1)
	}
}

// TestTrackActiveRequest tests the active request gauge
func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("APIActiveRequests after inc = %v, want %v", got, before+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("APIActiveRequests after dec = %v, want %v", got, before)
	}
}
