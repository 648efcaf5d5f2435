// Steam Game Recommender - Tag-Based Recommendations from Steam Libraries
// Copyright 2026 ja-nacek
// SPDX-License-Identifier: MIT
// https://github.com/ja-nacek/steam-game-recommender

package recommend

import (
	"math"
	"sort"
)

// BuildBasis produces the feature-space basis for one request: the
// sorted union of all distinct tags across the given tag-list
// collections. The order is lexicographic, so the result is
// deterministic regardless of input ordering. The same basis must be
// used to encode both the profile and every candidate it is compared
// against.
func BuildBasis(collections ...[][]string) []string {
	seen := make(map[string]struct{})
	for _, lists := range collections {
		for _, tags := range lists {
			for _, tag := range tags {
				seen[tag] = struct{}{}
			}
		}
	}

	basis := make([]string, 0, len(seen))
	for tag := range seen {
		basis = append(basis, tag)
	}
	sort.Strings(basis)
	return basis
}

// Encode maps a tag list onto a basis as a binary indicator vector:
// position i is 1 iff basis[i] appears in the tag list. Membership,
// not count; duplicate tags do not raise the value. An empty tag list
// yields the zero vector.
func Encode(tags []string, basis []string) []float64 {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}

	vec := make([]float64, len(basis))
	for i, tag := range basis {
		if _, ok := set[tag]; ok {
			vec[i] = 1
		}
	}
	return vec
}

// Cosine returns the cosine similarity dot(a,b)/(||a||*||b||).
// A zero-norm vector is treated as orthogonal to everything and scores
// 0, never a division-by-zero error.
func Cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
