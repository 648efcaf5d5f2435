// Steam Game Recommender - Tag-Based Recommendations from Steam Libraries
// Copyright 2026 ja-nacek
// SPDX-License-Identifier: MIT
// https://github.com/ja-nacek/steam-game-recommender

package recommend

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ja-nacek/steam-game-recommender/internal/catalog"
	"github.com/ja-nacek/steam-game-recommender/internal/models"
)

type fakeProvider struct {
	summary    *models.PlayerSummary
	summaryErr error
	owned      []models.OwnedGame
	ownedErr   error
}

func (f *fakeProvider) GetPlayerSummary(_ context.Context, _ string) (*models.PlayerSummary, error) {
	return f.summary, f.summaryErr
}

func (f *fakeProvider) GetOwnedGames(_ context.Context, _ string) ([]models.OwnedGame, error) {
	return f.owned, f.ownedErr
}

func publicSummary() *models.PlayerSummary {
	return &models.PlayerSummary{
		SteamID:     "76561197960287930",
		PersonaName: "tester",
		Visibility:  models.VisibilityPublic,
	}
}

func testCatalog(t *testing.T, csv string) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("catalogue parse failed: %v", err)
	}
	return c
}

func newTestEngine(t *testing.T, cat *catalog.Catalog, provider UserDataProvider, cfg Config) *Engine {
	t.Helper()
	engine, err := NewEngine(cat, provider, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

func wantReason(t *testing.T, err error, want Reason) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s failure, got nil error", want)
	}
	reason, ok := ReasonOf(err)
	if !ok {
		t.Fatalf("error %v carries no reason, want %s", err, want)
	}
	if reason != want {
		t.Fatalf("reason = %s, want %s", reason, want)
	}
}

const scenarioCSV = `url,name,popular_tags
https://store.steampowered.com/app/1/One/,One,"rpg, action"
https://store.steampowered.com/app/2/Two/,Two,rpg
https://store.steampowered.com/app/3/Three/,Three,puzzle
`

// TestRecommendScenario walks the full pipeline on a three-item
// catalogue with one owned game and checks the exact similarity math.
func TestRecommendScenario(t *testing.T) {
	cat := testCatalog(t, scenarioCSV)
	provider := &fakeProvider{
		summary: publicSummary(),
		owned: []models.OwnedGame{
			{AppID: 1, Name: "One", PlaytimeMinutes: 10},
		},
	}
	engine := newTestEngine(t, cat, provider, Config{TopN: 1, MaxTopN: 10, MinGames: 1})

	result, err := engine.Recommend(context.Background(), "76561197960287930", 1)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	// Basis [action, puzzle, rpg], profile [1,0,1]:
	// item 2 encodes to [0,0,1] -> cosine 1/sqrt(2); item 3 -> 0.
	if len(result.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(result.Items))
	}
	top := result.Items[0]
	if top.Item.Name != "Two" {
		t.Errorf("top recommendation = %q, want Two", top.Item.Name)
	}
	if math.Abs(top.Score-1/math.Sqrt2) > 1e-9 {
		t.Errorf("top score = %v, want %v", top.Score, 1/math.Sqrt2)
	}
	if result.LibrarySize != 1 {
		t.Errorf("LibrarySize = %d, want 1", result.LibrarySize)
	}
	if result.CandidateCount != 2 {
		t.Errorf("CandidateCount = %d, want 2", result.CandidateCount)
	}
	if result.PersonaName != "tester" {
		t.Errorf("PersonaName = %q, want tester", result.PersonaName)
	}
}

func TestRecommendInsufficientOwnedGames(t *testing.T) {
	cat := testCatalog(t, scenarioCSV)
	provider := &fakeProvider{
		summary: publicSummary(),
		owned: []models.OwnedGame{
			{AppID: 1}, {AppID: 2}, {AppID: 3},
		},
	}
	engine := newTestEngine(t, cat, provider, Config{TopN: 10, MaxTopN: 10, MinGames: 5})

	_, err := engine.Recommend(context.Background(), "76561197960287930", 0)
	wantReason(t, err, ReasonInsufficientOwnedGames)
}

func TestRecommendAllCandidatesOwned(t *testing.T) {
	cat := testCatalog(t, scenarioCSV)
	provider := &fakeProvider{
		summary: publicSummary(),
		owned: []models.OwnedGame{
			{AppID: 1, PlaytimeMinutes: 5},
			{AppID: 2, PlaytimeMinutes: 5},
			{AppID: 3, PlaytimeMinutes: 5},
		},
	}
	engine := newTestEngine(t, cat, provider, Config{TopN: 10, MaxTopN: 10, MinGames: 1})

	_, err := engine.Recommend(context.Background(), "76561197960287930", 0)
	wantReason(t, err, ReasonNoCandidates)
}

// Zero total playtime falls back to the unweighted mean profile.
func TestRecommendZeroPlaytime(t *testing.T) {
	csv := `url,name,popular_tags
https://store.steampowered.com/app/1/One/,One,rpg
https://store.steampowered.com/app/2/Two/,Two,puzzle
https://store.steampowered.com/app/3/Three/,Three,"rpg, puzzle"
`
	cat := testCatalog(t, csv)
	provider := &fakeProvider{
		summary: publicSummary(),
		owned: []models.OwnedGame{
			{AppID: 1, PlaytimeMinutes: 0},
			{AppID: 2, PlaytimeMinutes: 0},
		},
	}
	engine := newTestEngine(t, cat, provider, Config{TopN: 1, MaxTopN: 10, MinGames: 1})

	result, err := engine.Recommend(context.Background(), "76561197960287930", 1)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	// Mean profile over basis [puzzle, rpg] is [0.5, 0.5]; item 3
	// encodes to [1,1] -> cosine 1.
	if len(result.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(result.Items))
	}
	if result.Items[0].Item.Name != "Three" {
		t.Errorf("top recommendation = %q, want Three", result.Items[0].Item.Name)
	}
	if math.Abs(result.Items[0].Score-1) > 1e-9 {
		t.Errorf("top score = %v, want 1", result.Items[0].Score)
	}
}

func TestRecommendUserNotFound(t *testing.T) {
	cat := testCatalog(t, scenarioCSV)
	provider := &fakeProvider{summaryErr: models.ErrUserNotFound}
	engine := newTestEngine(t, cat, provider, DefaultConfig())

	_, err := engine.Recommend(context.Background(), "76561197960287930", 0)
	wantReason(t, err, ReasonUserNotFound)
}

func TestRecommendCommunicationFailure(t *testing.T) {
	cat := testCatalog(t, scenarioCSV)

	t.Run("summary fetch fails", func(t *testing.T) {
		provider := &fakeProvider{summaryErr: errors.New("connection refused")}
		engine := newTestEngine(t, cat, provider, DefaultConfig())
		_, err := engine.Recommend(context.Background(), "76561197960287930", 0)
		wantReason(t, err, ReasonCommunicationFailure)
	})

	t.Run("owned games fetch fails", func(t *testing.T) {
		provider := &fakeProvider{
			summary:  publicSummary(),
			ownedErr: errors.New("timeout"),
		}
		engine := newTestEngine(t, cat, provider, DefaultConfig())
		_, err := engine.Recommend(context.Background(), "76561197960287930", 0)
		wantReason(t, err, ReasonCommunicationFailure)
	})
}

func TestRecommendProfilePrivate(t *testing.T) {
	cat := testCatalog(t, scenarioCSV)
	provider := &fakeProvider{
		summary: &models.PlayerSummary{SteamID: "x", Visibility: 1},
	}
	engine := newTestEngine(t, cat, provider, DefaultConfig())

	_, err := engine.Recommend(context.Background(), "76561197960287930", 0)
	wantReason(t, err, ReasonProfilePrivate)
}

func TestRecommendNoOwnedGames(t *testing.T) {
	cat := testCatalog(t, scenarioCSV)
	provider := &fakeProvider{summary: publicSummary(), owned: nil}
	engine := newTestEngine(t, cat, provider, DefaultConfig())

	_, err := engine.Recommend(context.Background(), "76561197960287930", 0)
	wantReason(t, err, ReasonNoOwnedGames)
}

// Owned games missing from the catalogue still count toward the
// minimum and toward exclusion, they just add zero vectors.
func TestRecommendOwnedGameNotInCatalog(t *testing.T) {
	cat := testCatalog(t, scenarioCSV)
	provider := &fakeProvider{
		summary: publicSummary(),
		owned: []models.OwnedGame{
			{AppID: 1, PlaytimeMinutes: 10},
			{AppID: 99999, PlaytimeMinutes: 500},
		},
	}
	engine := newTestEngine(t, cat, provider, Config{TopN: 10, MaxTopN: 10, MinGames: 2})

	result, err := engine.Recommend(context.Background(), "76561197960287930", 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if result.LibrarySize != 2 {
		t.Errorf("LibrarySize = %d, want 2", result.LibrarySize)
	}
	// Only items 2 and 3 remain; the uncatalogued game is not a candidate.
	if result.CandidateCount != 2 {
		t.Errorf("CandidateCount = %d, want 2", result.CandidateCount)
	}
	if result.Items[0].Item.Name != "Two" {
		t.Errorf("top recommendation = %q, want Two", result.Items[0].Item.Name)
	}
}

func TestClampTopN(t *testing.T) {
	cat := testCatalog(t, scenarioCSV)
	engine := newTestEngine(t, cat, &fakeProvider{}, Config{TopN: 10, MaxTopN: 50, MinGames: 5})

	tests := []struct {
		in, want int
	}{
		{0, 10},
		{-3, 10},
		{25, 25},
		{100, 50},
	}
	for _, tt := range tests {
		if got := engine.clampTopN(tt.in); got != tt.want {
			t.Errorf("clampTopN(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNewEngineValidation(t *testing.T) {
	cat := testCatalog(t, scenarioCSV)

	if _, err := NewEngine(nil, &fakeProvider{}, DefaultConfig(), zerolog.Nop()); err == nil {
		t.Error("NewEngine() expected error for nil catalogue")
	}
	if _, err := NewEngine(cat, nil, DefaultConfig(), zerolog.Nop()); err == nil {
		t.Error("NewEngine() expected error for nil provider")
	}
	if _, err := NewEngine(cat, &fakeProvider{}, Config{TopN: 0, MaxTopN: 10, MinGames: 5}, zerolog.Nop()); err == nil {
		t.Error("NewEngine() expected error for invalid config")
	}
}
