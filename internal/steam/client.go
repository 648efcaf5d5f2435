// Steam Game Recommender - Tag-Based Recommendations from Steam Libraries
// Copyright 2026 ja-nacek
// SPDX-License-Identifier: MIT
// https://github.com/ja-nacek/steam-game-recommender

/*
client.go - Steam Web API Client

Thin HTTP client for the two Steam Web API endpoints the recommender
needs:

  - ISteamUser/GetPlayerSummaries/v2: profile existence and visibility
  - IPlayerService/GetOwnedGames/v1: the user's library with playtime

Resilience:
  - Client-side rate limiting (golang.org/x/time/rate) so bursts of
    recommendation requests stay inside Steam's per-key quota
  - Exponential backoff on HTTP 429 (1s, 2s, 4s, 8s, 16s), honoring
    Retry-After
  - Context support for cancellation, including during backoff waits

Circuit breaker protection lives in circuit_breaker.go; response
caching in provider.go.
*/

//nolint:staticcheck // File documentation, not package doc
package steam

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/ja-nacek/steam-game-recommender/internal/config"
	"github.com/ja-nacek/steam-game-recommender/internal/metrics"
	"github.com/ja-nacek/steam-game-recommender/internal/models"
)

// maxErrorBodySize limits how much of an error response body is read
// for diagnostics
const maxErrorBodySize = 64 * 1024 // 64KB

// ClientInterface is implemented by Client, by CircuitBreakerClient,
// and by mocks in tests.
type ClientInterface interface {
	GetPlayerSummary(ctx context.Context, steamID string) (*models.PlayerSummary, error)
	GetOwnedGames(ctx context.Context, steamID string) ([]models.OwnedGame, error)
}

// Client handles communication with the Steam Web API.
//
// Thread Safety: safe for concurrent use; each call creates its own
// HTTP request and the rate limiter is internally synchronized.
type Client struct {
	baseURL        string
	apiKey         string
	client         *http.Client
	limiter        *rate.Limiter
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewClient creates a Steam Web API client from configuration
func NewClient(cfg *config.SteamConfig) *Client {
	burst := int(cfg.RateLimit)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:        rate.NewLimiter(rate.Limit(cfg.RateLimit), burst),
		maxRetries:     5,
		retryBaseDelay: 1 * time.Second,
	}
}

// playerSummariesResponse mirrors the GetPlayerSummaries v2 wire format
type playerSummariesResponse struct {
	Response struct {
		Players []models.PlayerSummary `json:"players"`
	} `json:"response"`
}

// ownedGamesResponse mirrors the GetOwnedGames v1 wire format
type ownedGamesResponse struct {
	Response struct {
		GameCount int                `json:"game_count"`
		Games     []models.OwnedGame `json:"games"`
	} `json:"response"`
}

// GetPlayerSummary fetches the profile summary for one SteamID.
// Returns models.ErrUserNotFound when Steam reports no player for the
// identifier.
func (c *Client) GetPlayerSummary(ctx context.Context, steamID string) (*models.PlayerSummary, error) {
	params := url.Values{}
	params.Set("steamids", steamID)

	var result playerSummariesResponse
	if err := c.makeRequest(ctx, "GetPlayerSummaries", "/ISteamUser/GetPlayerSummaries/v2/", params, &result); err != nil {
		return nil, err
	}

	if len(result.Response.Players) == 0 {
		return nil, fmt.Errorf("steamid %s: %w", steamID, models.ErrUserNotFound)
	}
	return &result.Response.Players[0], nil
}

// GetOwnedGames fetches the user's library with per-game lifetime
// playtime. include_appinfo is requested so game names come back too;
// played free games count as owned.
func (c *Client) GetOwnedGames(ctx context.Context, steamID string) ([]models.OwnedGame, error) {
	params := url.Values{}
	params.Set("steamid", steamID)
	params.Set("include_appinfo", "1")
	params.Set("include_played_free_games", "1")

	var result ownedGamesResponse
	if err := c.makeRequest(ctx, "GetOwnedGames", "/IPlayerService/GetOwnedGames/v1/", params, &result); err != nil {
		return nil, err
	}

	return result.Response.Games, nil
}

// makeRequest handles the shared Steam Web API boilerplate: key
// injection, rate-limited dispatch, status checking and JSON decoding.
func (c *Client) makeRequest(ctx context.Context, endpoint, path string, params url.Values, result interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("key", c.apiKey)
	params.Set("format", "json")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	start := time.Now()
	resp, err := c.doRequestWithRateLimit(ctx, reqURL)
	if err != nil {
		metrics.RecordSteamAPICall(endpoint, "error", time.Since(start))
		return fmt.Errorf("failed to make %s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordSteamAPICall(endpoint, "error", time.Since(start))
		body := readBodyForError(resp.Body)
		return fmt.Errorf("%s request failed with status %d: %s", endpoint, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		metrics.RecordSteamAPICall(endpoint, "error", time.Since(start))
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}

	metrics.RecordSteamAPICall(endpoint, "success", time.Since(start))
	return nil
}

// doRequestWithRateLimit performs an HTTP request behind the client
// rate limiter with automatic HTTP 429 handling. Backoff is
// exponential (1s, 2s, 4s, 8s, 16s), overridden by a Retry-After
// header when present. The context cancels both limiter and backoff
// waits.
func (c *Client) doRequestWithRateLimit(ctx context.Context, reqURL string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// Rate limited - close body and retry with backoff.
		_ = resp.Body.Close()
		metrics.SteamAPIRetries.Inc()

		if attempt == c.maxRetries {
			lastErr = fmt.Errorf("rate limit exceeded after %d retries (HTTP 429)", c.maxRetries)
			break
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
				delay = seconds
			}
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

// readBodyForError reads a bounded amount of the response body for
// error reporting
func readBodyForError(r io.Reader) []byte {
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
