// Steam Game Recommender - Tag-Based Recommendations from Steam Libraries
// Copyright 2026 ja-nacek
// SPDX-License-Identifier: MIT
// https://github.com/ja-nacek/steam-game-recommender

package steam

import (
	"context"

	"github.com/ja-nacek/steam-game-recommender/internal/cache"
	"github.com/ja-nacek/steam-game-recommender/internal/models"
)

// Provider layers a TTL cache over a Steam client. Owned-games lookups
// are the expensive call (large libraries, per-key quota), so repeated
// recommendation requests for the same user within the TTL are served
// from memory. Player summaries are always fetched live: visibility
// changes should take effect immediately.
//
// It implements recommend.UserDataProvider.
type Provider struct {
	client ClientInterface
	cache  *cache.Cache
}

// NewProvider creates a cached user-data provider
func NewProvider(client ClientInterface, c *cache.Cache) *Provider {
	return &Provider{
		client: client,
		cache:  c,
	}
}

// GetPlayerSummary fetches the profile summary, always live
func (p *Provider) GetPlayerSummary(ctx context.Context, steamID string) (*models.PlayerSummary, error) {
	return p.client.GetPlayerSummary(ctx, steamID)
}

// GetOwnedGames fetches the user's library, served from cache within
// the freshness window
func (p *Provider) GetOwnedGames(ctx context.Context, steamID string) ([]models.OwnedGame, error) {
	key := cache.GenerateKey("GetOwnedGames", steamID)

	if cached, ok := p.cache.Get(key); ok {
		if games, ok := cached.([]models.OwnedGame); ok {
			return games, nil
		}
	}

	games, err := p.client.GetOwnedGames(ctx, steamID)
	if err != nil {
		return nil, err
	}

	p.cache.Set(key, games)
	return games, nil
}
