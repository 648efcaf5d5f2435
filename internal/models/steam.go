// Steam Game Recommender - Tag-Based Recommendations from Steam Libraries
// Copyright 2026 ja-nacek
// SPDX-License-Identifier: MIT
// https://github.com/ja-nacek/steam-game-recommender

package models

import "errors"

// VisibilityPublic is the communityvisibilitystate value Steam reports
// for profiles visible to everyone. Any other value means the profile
// (and its game library) cannot be read.
const VisibilityPublic = 3

// ErrUserNotFound is returned by user-data providers when Steam reports
// no profile for the requested identifier. Callers test for it with
// errors.Is, like sql.ErrNoRows.
var ErrUserNotFound = errors.New("steam user not found")

// PlayerSummary is the subset of the GetPlayerSummaries response the
// recommender needs.
type PlayerSummary struct {
	SteamID     string `json:"steamid"`
	PersonaName string `json:"personaname"`
	AvatarURL   string `json:"avatarfull"`
	Visibility  int    `json:"communityvisibilitystate"`
}

// IsPublic reports whether the profile and its library are readable
func (p *PlayerSummary) IsPublic() bool {
	return p.Visibility == VisibilityPublic
}

// OwnedGame is one entry of a user's game library. PlaytimeMinutes is
// the lifetime playtime Steam reports (playtime_forever) and serves as
// the engagement weight when building the taste profile.
type OwnedGame struct {
	AppID           int    `json:"appid"`
	Name            string `json:"name"`
	PlaytimeMinutes int    `json:"playtime_forever"`
}
