// Steam Game Recommender - Tag-Based Recommendations from Steam Libraries
// Copyright 2026 ja-nacek
// SPDX-License-Identifier: MIT
// https://github.com/ja-nacek/steam-game-recommender

package recommend

import (
	"sort"

	"github.com/ja-nacek/steam-game-recommender/internal/catalog"
)

// ScoredItem pairs a catalogue item with its similarity to the profile
type ScoredItem struct {
	Item  catalog.Item
	Score float64
}

// Rank scores every catalogue item not owned by the user against the
// profile and returns the top n by descending cosine similarity.
//
// Exclusion is an exact appid match: catalogue rows with an invalid
// appid can never match an owned game and therefore always remain
// candidates. Ties keep original catalogue order (stable sort on
// descending score), so results are reproducible. Fewer than n
// remaining candidates returns all of them.
//
// Returns a NO_CANDIDATES error when exclusion leaves nothing to score.
func Rank(profile []float64, items []catalog.Item, owned map[int]struct{}, basis []string, n int) ([]ScoredItem, error) {
	candidates := make([]ScoredItem, 0, len(items))
	for _, item := range items {
		if item.AppID.Valid {
			if _, isOwned := owned[item.AppID.Value]; isOwned {
				continue
			}
		}
		candidates = append(candidates, ScoredItem{
			Item:  item,
			Score: Cosine(profile, Encode(item.Tags, basis)),
		})
	}

	if len(candidates) == 0 {
		return nil, newError(ReasonNoCandidates, nil)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if n > len(candidates) {
		n = len(candidates)
	}
	return candidates[:n], nil
}
