// Steam Game Recommender - Tag-Based Recommendations from Steam Libraries
// Copyright 2026 ja-nacek
// SPDX-License-Identifier: MIT
// https://github.com/ja-nacek/steam-game-recommender

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ja-nacek/steam-game-recommender/internal/catalog"
	"github.com/ja-nacek/steam-game-recommender/internal/metrics"
	"github.com/ja-nacek/steam-game-recommender/internal/models"
)

// UserDataProvider fetches per-user data from Steam. Implementations
// return models.ErrUserNotFound (possibly wrapped) when Steam reports
// no profile for the identifier; any other error is classified as a
// communication failure. Caching, rate limiting and retries live
// behind this interface, not in the engine.
type UserDataProvider interface {
	GetPlayerSummary(ctx context.Context, steamID string) (*models.PlayerSummary, error)
	GetOwnedGames(ctx context.Context, steamID string) ([]models.OwnedGame, error)
}

// Config holds the engine's tuning knobs
type Config struct {
	// TopN is the default number of recommendations when the request
	// does not ask for a specific count.
	TopN int

	// MaxTopN caps the per-request count.
	MaxTopN int

	// MinGames is the minimum library size required before a taste
	// profile is considered meaningful.
	MinGames int
}

// DefaultConfig returns the standard engine configuration
func DefaultConfig() Config {
	return Config{
		TopN:     10,
		MaxTopN:  50,
		MinGames: 5,
	}
}

// Validate checks config invariants
func (c Config) Validate() error {
	if c.TopN < 1 {
		return fmt.Errorf("top_n must be at least 1, got %d", c.TopN)
	}
	if c.MaxTopN < c.TopN {
		return fmt.Errorf("max_top_n (%d) must be >= top_n (%d)", c.MaxTopN, c.TopN)
	}
	if c.MinGames < 1 {
		return fmt.Errorf("min_games must be at least 1, got %d", c.MinGames)
	}
	return nil
}

// Result is a completed recommendation run
type Result struct {
	SteamID        string
	PersonaName    string
	LibrarySize    int
	CandidateCount int
	Items          []ScoredItem
}

// Engine runs the recommendation pipeline for one user request:
// fetch profile, check visibility, fetch library, build the tag basis
// and engagement-weighted taste profile, then rank unowned catalogue
// items by cosine similarity.
//
// The catalogue is read-only after startup and each request builds its
// own basis, vectors and profile, so the engine is safe for concurrent
// use without locking.
type Engine struct {
	catalog  *catalog.Catalog
	provider UserDataProvider
	config   Config
	logger   zerolog.Logger
}

// NewEngine creates a recommendation engine
func NewEngine(cat *catalog.Catalog, provider UserDataProvider, cfg Config, logger zerolog.Logger) (*Engine, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalogue is required")
	}
	if provider == nil {
		return nil, fmt.Errorf("user data provider is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		catalog:  cat,
		provider: provider,
		config:   cfg,
		logger:   logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Recommend runs the full pipeline for one user. topN <= 0 selects the
// configured default; values above the configured maximum are clamped.
//
// The request either fully succeeds with a ranked Result or fails with
// a single reason-coded *Error; no partial result is ever returned.
func (e *Engine) Recommend(ctx context.Context, steamID string, topN int) (*Result, error) {
	start := time.Now()

	result, err := e.recommend(ctx, steamID, e.clampTopN(topN))

	outcome := "success"
	if err != nil {
		if reason, ok := ReasonOf(err); ok {
			outcome = string(reason)
		} else {
			outcome = string(ReasonCommunicationFailure)
		}
	}
	metrics.RecordRecommendation(outcome, time.Since(start))

	return result, err
}

func (e *Engine) recommend(ctx context.Context, steamID string, topN int) (*Result, error) {
	logger := e.logger.With().Str("steam_id", steamID).Logger()

	// Fetch the player summary first; it tells us whether the profile
	// exists and whether the library is readable at all.
	summary, err := e.provider.GetPlayerSummary(ctx, steamID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			logger.Debug().Msg("user not found")
			return nil, newError(ReasonUserNotFound, err)
		}
		logger.Warn().Err(err).Msg("player summary fetch failed")
		return nil, newError(ReasonCommunicationFailure, err)
	}

	if !summary.IsPublic() {
		logger.Debug().Int("visibility", summary.Visibility).Msg("profile not public")
		return nil, newError(ReasonProfilePrivate, nil)
	}

	owned, err := e.provider.GetOwnedGames(ctx, steamID)
	if err != nil {
		logger.Warn().Err(err).Msg("owned games fetch failed")
		return nil, newError(ReasonCommunicationFailure, err)
	}
	if len(owned) == 0 {
		logger.Debug().Msg("library is empty")
		return nil, newError(ReasonNoOwnedGames, nil)
	}
	if len(owned) < e.config.MinGames {
		logger.Debug().
			Int("library_size", len(owned)).
			Int("min_games", e.config.MinGames).
			Msg("library below minimum size")
		return nil, newError(ReasonInsufficientOwnedGames, nil)
	}
	metrics.RecommendationLibrarySize.Observe(float64(len(owned)))

	// Left join against the catalogue: owned games without a catalogue
	// row keep an empty tag list. They still count toward exclusion and
	// contribute a zero vector to the profile.
	ownedTags := make([][]string, len(owned))
	weights := make([]float64, len(owned))
	ownedSet := make(map[int]struct{}, len(owned))
	for i, game := range owned {
		ownedSet[game.AppID] = struct{}{}
		weights[i] = float64(game.PlaytimeMinutes)
		if item, ok := e.catalog.Lookup(game.AppID); ok {
			ownedTags[i] = item.Tags
		}
	}

	// The basis depends on this user's tags, so it is rebuilt per
	// request; reusing one across requests would misalign vectors.
	basis := BuildBasis(ownedTags, e.catalog.TagLists())

	vectors := make([][]float64, len(ownedTags))
	for i, tags := range ownedTags {
		vectors[i] = Encode(tags, basis)
	}

	// Cannot fail here: the library was already checked non-empty.
	profile, err := BuildProfile(vectors, weights)
	if err != nil {
		return nil, fmt.Errorf("profile construction failed: %w", err)
	}

	ranked, err := Rank(profile, e.catalog.Items(), ownedSet, basis, topN)
	if err != nil {
		logger.Debug().Msg("no candidates left after exclusion")
		return nil, err
	}

	candidateCount := e.catalog.Len() - countOwnedInCatalog(e.catalog, ownedSet)
	metrics.RecommendationCandidates.Observe(float64(candidateCount))

	logger.Info().
		Int("library_size", len(owned)).
		Int("basis_size", len(basis)).
		Int("candidates", candidateCount).
		Int("results", len(ranked)).
		Msg("recommendations built")

	return &Result{
		SteamID:        steamID,
		PersonaName:    summary.PersonaName,
		LibrarySize:    len(owned),
		CandidateCount: candidateCount,
		Items:          ranked,
	}, nil
}

// clampTopN resolves the requested count against config bounds
func (e *Engine) clampTopN(n int) int {
	if n <= 0 {
		return e.config.TopN
	}
	if n > e.config.MaxTopN {
		return e.config.MaxTopN
	}
	return n
}

// countOwnedInCatalog counts catalogue rows excluded by ownership
func countOwnedInCatalog(cat *catalog.Catalog, owned map[int]struct{}) int {
	count := 0
	for appID := range owned {
		if _, ok := cat.Lookup(appID); ok {
			count++
		}
	}
	return count
}
