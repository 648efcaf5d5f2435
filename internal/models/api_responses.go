// Steam Game Recommender - Tag-Based Recommendations from Steam Libraries
// Copyright 2026 ja-nacek
// SPDX-License-Identifier: MIT
// https://github.com/ja-nacek/steam-game-recommender

// Package models defines the shared API response envelope used by all
// HTTP endpoints.
package models

import (
	"time"
)

// APIResponse is the standardized response wrapper used by every JSON
// endpoint. It provides a consistent structure for both successful and
// error responses.
//
// Status field values:
//   - "success": request completed, see Data
//   - "error": request failed, see Error
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "PROFILE_PRIVATE",
//	    "message": "This Steam profile is private. Set it to public in your Steam privacy settings."
//	  },
//	  "metadata": {"timestamp": "2026-09-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// QueryTimeMS is the server-side processing time in milliseconds. Cached is
// set when the owned-games lookup behind the request was served from the
// in-memory cache rather than the Steam Web API.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError carries structured error details.
//
// Code is machine-readable (e.g. "VALIDATION_ERROR", "PROFILE_PRIVATE",
// "COMMUNICATION_FAILURE"); Message is safe to show to end users and never
// contains internal error text.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
