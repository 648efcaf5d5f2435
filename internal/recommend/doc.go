// Steam Game Recommender - Tag-Based Recommendations from Steam Libraries
// Copyright 2026 ja-nacek
// SPDX-License-Identifier: MIT
// https://github.com/ja-nacek/steam-game-recommender

/*
Package recommend implements the content-based recommendation pipeline.

A user's taste profile is built from their Steam library: each owned
game is encoded as a binary indicator vector over the tag vocabulary
(the sorted union of the user's tags and the catalogue's tags), and the
vectors are averaged weighted by lifetime playtime. Candidates are the
catalogue items the user does not own, encoded over the same basis and
ranked by cosine similarity to the profile.

# Pipeline

	fetch player summary
	    -> check profile visibility
	    -> fetch owned games
	    -> check minimum library size
	    -> build basis, vectors, profile
	    -> exclude owned, score, top-N

Each step can fail the whole request with exactly one Reason code; see
errors.go. Results are deterministic: the basis order is lexicographic
and ties in score keep catalogue order.

# Usage

	engine, err := recommend.NewEngine(cat, steamProvider, recommend.DefaultConfig(), logger)
	if err != nil {
	    return err
	}
	result, err := engine.Recommend(ctx, steamID, 10)
	if reason, ok := recommend.ReasonOf(err); ok {
	    // map reason to an HTTP error
	}
*/
package recommend
