// Steam Game Recommender - Tag-Based Recommendations from Steam Libraries
// Copyright 2026 ja-nacek
// SPDX-License-Identifier: MIT
// https://github.com/ja-nacek/steam-game-recommender

package recommend

import "fmt"

// BuildProfile combines owned-game feature vectors into one taste
// profile over the same basis.
//
// With a strictly positive total weight the profile is the weighted
// average of the vectors, each weighted by its engagement. With total
// weight zero (a library with no recorded playtime) it falls back to
// the unweighted arithmetic mean. Vectors with no tags contribute zero
// vectors either way; they dilute the profile but never break it.
//
// The caller must reject empty libraries before this point; an empty
// vector collection is an error here, not a reason-coded failure.
func BuildProfile(vectors [][]float64, weights []float64) ([]float64, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("cannot build a profile from zero vectors")
	}
	if len(vectors) != len(weights) {
		return nil, fmt.Errorf("vector/weight count mismatch: %d vs %d", len(vectors), len(weights))
	}

	var total float64
	for _, w := range weights {
		total += w
	}

	dim := len(vectors[0])
	profile := make([]float64, dim)

	if total > 0 {
		for i, vec := range vectors {
			w := weights[i] / total
			for j, v := range vec {
				profile[j] += w * v
			}
		}
		return profile, nil
	}

	// Zero total engagement: every game counts equally.
	n := float64(len(vectors))
	for _, vec := range vectors {
		for j, v := range vec {
			profile[j] += v / n
		}
	}
	return profile, nil
}
