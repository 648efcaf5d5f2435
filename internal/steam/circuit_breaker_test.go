// Steam Game Recommender - Tag-Based Recommendations from Steam Libraries
// Copyright 2026 ja-nacek
// SPDX-License-Identifier: MIT
// https://github.com/ja-nacek/steam-game-recommender

package steam

import (
	"context"
	"errors"
	"fmt"
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/ja-nacek/steam-game-recommender/internal/models"
)

type flakyClient struct {
	err error
}

func (c *flakyClient) GetPlayerSummary(_ context.Context, steamID string) (*models.PlayerSummary, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &models.PlayerSummary{SteamID: steamID, Visibility: models.VisibilityPublic}, nil
}

func (c *flakyClient) GetOwnedGames(_ context.Context, _ string) ([]models.OwnedGame, error) {
	if c.err != nil {
		return nil, c.err
	}
	return []models.OwnedGame{{AppID: 1}}, nil
}

func TestBreakerPassesThroughSuccess(t *testing.T) {
	cbc := wrapWithBreaker(&flakyClient{})

	summary, err := cbc.GetPlayerSummary(context.Background(), "76561197960287930")
	if err != nil {
		t.Fatalf("GetPlayerSummary() error = %v", err)
	}
	if summary.SteamID != "76561197960287930" {
		t.Errorf("SteamID = %q", summary.SteamID)
	}

	games, err := cbc.GetOwnedGames(context.Background(), "76561197960287930")
	if err != nil {
		t.Fatalf("GetOwnedGames() error = %v", err)
	}
	if len(games) != 1 {
		t.Errorf("len(games) = %d, want 1", len(games))
	}
	if cbc.State() != "closed" {
		t.Errorf("State() = %q, want closed", cbc.State())
	}
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	client := &flakyClient{err: fmt.Errorf("connection refused")}
	cbc := wrapWithBreaker(client)

	// Drive past the minimum request count with a 100% failure rate.
	for i := 0; i < 10; i++ {
		if _, err := cbc.GetOwnedGames(context.Background(), "1"); err == nil {
			t.Fatal("expected failure")
		}
	}

	_, err := cbc.GetOwnedGames(context.Background(), "1")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, want ErrOpenState", err)
	}
	if cbc.State() != "open" {
		t.Errorf("State() = %q, want open", cbc.State())
	}
}

// A missing user is an answer, not an outage; it must never open the
// circuit.
func TestBreakerIgnoresUserNotFound(t *testing.T) {
	client := &flakyClient{err: fmt.Errorf("steamid 1: %w", models.ErrUserNotFound)}
	cbc := wrapWithBreaker(client)

	for i := 0; i < 20; i++ {
		_, err := cbc.GetPlayerSummary(context.Background(), "1")
		if !errors.Is(err, models.ErrUserNotFound) {
			t.Fatalf("call %d: error = %v, want ErrUserNotFound", i, err)
		}
	}
	if cbc.State() != "closed" {
		t.Errorf("State() = %q, want closed", cbc.State())
	}
}
