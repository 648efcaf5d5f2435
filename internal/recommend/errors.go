// Steam Game Recommender - Tag-Based Recommendations from Steam Libraries
// Copyright 2026 ja-nacek
// SPDX-License-Identifier: MIT
// https://github.com/ja-nacek/steam-game-recommender

package recommend

import (
	"errors"
	"fmt"
)

// Reason classifies why a recommendation request failed. Every failure
// that escapes the engine carries exactly one Reason; no partial result
// is ever returned alongside one.
type Reason string

const (
	// ReasonCommunicationFailure covers any Steam Web API transport or
	// protocol error, including circuit breaker rejections.
	ReasonCommunicationFailure Reason = "COMMUNICATION_FAILURE"

	// ReasonUserNotFound means Steam returned no profile for the identifier.
	ReasonUserNotFound Reason = "USER_NOT_FOUND"

	// ReasonProfilePrivate means the profile exists but is not public,
	// so the game library cannot be read.
	ReasonProfilePrivate Reason = "PROFILE_PRIVATE"

	// ReasonNoOwnedGames means the library is readable but empty.
	ReasonNoOwnedGames Reason = "NO_OWNED_GAMES"

	// ReasonInsufficientOwnedGames means the library holds fewer games
	// than the configured minimum for a statistically meaningful profile.
	ReasonInsufficientOwnedGames Reason = "INSUFFICIENT_OWNED_GAMES"

	// ReasonNoCandidates means every catalogue item with a matchable
	// appid is already owned, leaving nothing to score.
	ReasonNoCandidates Reason = "NO_CANDIDATES"
)

// reasonMessages maps each reason to its user-facing message.
// Internal error detail never reaches the client.
var reasonMessages = map[Reason]string{
	ReasonCommunicationFailure:   "Could not reach Steam. Please try again later.",
	ReasonUserNotFound:           "No Steam profile was found for that ID.",
	ReasonProfilePrivate:         "This Steam profile is private. Game details must be public to build recommendations.",
	ReasonNoOwnedGames:           "This account owns no games, so there is nothing to build a profile from.",
	ReasonInsufficientOwnedGames: "This account owns too few games to build a reliable profile.",
	ReasonNoCandidates:           "You already own every game we could have recommended.",
}

// Error is a reason-coded recommendation failure. It wraps the
// underlying cause (if any) for logging while exposing only the
// classified reason and a safe message to clients.
type Error struct {
	Reason Reason
	cause  error
}

func newError(reason Reason, cause error) *Error {
	return &Error{Reason: reason, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.cause)
	}
	return string(e.Reason)
}

// Unwrap exposes the underlying cause for errors.Is/As chains
func (e *Error) Unwrap() error {
	return e.cause
}

// Message returns the user-facing message for the error's reason
func (e *Error) Message() string {
	if msg, ok := reasonMessages[e.Reason]; ok {
		return msg
	}
	return "Recommendation request failed."
}

// ReasonOf extracts the failure reason from an error chain.
// Returns false when err carries no recommendation reason.
func ReasonOf(err error) (Reason, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason, true
	}
	return "", false
}
