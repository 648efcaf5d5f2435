// Steam Game Recommender - Tag-Based Recommendations from Steam Libraries
// Copyright 2026 ja-nacek
// SPDX-License-Identifier: MIT
// https://github.com/ja-nacek/steam-game-recommender

package recommend

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("tcp dial timeout")
	err := newError(ReasonCommunicationFailure, cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	wrapped := fmt.Errorf("request failed: %w", err)
	reason, ok := ReasonOf(wrapped)
	if !ok || reason != ReasonCommunicationFailure {
		t.Errorf("ReasonOf(wrapped) = %v, %v; want COMMUNICATION_FAILURE", reason, ok)
	}
}

func TestReasonOfPlainError(t *testing.T) {
	if _, ok := ReasonOf(errors.New("plain")); ok {
		t.Error("plain errors should carry no reason")
	}
	if _, ok := ReasonOf(nil); ok {
		t.Error("nil should carry no reason")
	}
}

func TestErrorMessages(t *testing.T) {
	// Every reason must map to a non-empty user-facing message that
	// does not leak internal detail.
	reasons := []Reason{
		ReasonCommunicationFailure,
		ReasonUserNotFound,
		ReasonProfilePrivate,
		ReasonNoOwnedGames,
		ReasonInsufficientOwnedGames,
		ReasonNoCandidates,
	}
	for _, reason := range reasons {
		err := newError(reason, errors.New("secret internal detail"))
		msg := err.Message()
		if msg == "" {
			t.Errorf("reason %s has no message", reason)
		}
		if msg == err.Error() {
			t.Errorf("reason %s message should not equal internal error text", reason)
		}
	}
}
