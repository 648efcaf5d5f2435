// Steam Game Recommender - Tag-Based Recommendations from Steam Libraries
// Copyright 2026 ja-nacek
// SPDX-License-Identifier: MIT
// https://github.com/ja-nacek/steam-game-recommender

package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ja-nacek/steam-game-recommender/internal/recommend"
)

func postForm(t *testing.T, h *Handler, steamID string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{"steam_id": {steamID}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.IndexSubmit(rec, req)
	return rec
}

func TestIndexPage(t *testing.T) {
	cat := testCatalog(t)
	h := NewHandler(&fakeEngine{}, cat, "test")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Index(rec, req)

	page := rec.Body.String()
	if !strings.Contains(page, `name="steam_id"`) {
		t.Error("form input missing")
	}
	if !strings.Contains(page, "3 games in catalogue") {
		t.Error("catalogue size missing from footer")
	}
}

func TestIndexSubmitRendersResults(t *testing.T) {
	cat := testCatalog(t)
	h := NewHandler(&fakeEngine{result: testResult(cat)}, cat, "test")

	rec := postForm(t, h, validSteamID)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	page := rec.Body.String()
	if !strings.Contains(page, "Two") || !strings.Contains(page, "Mystery Pack") {
		t.Errorf("rendered page missing recommendations: %s", page)
	}
	if !strings.Contains(page, "match 91.0%") {
		t.Error("rendered page missing score")
	}
}

func TestIndexSubmitInvalidSteamID(t *testing.T) {
	engine := &fakeEngine{}
	h := NewHandler(engine, testCatalog(t), "test")

	rec := postForm(t, h, "not-a-steamid")

	if !strings.Contains(rec.Body.String(), "SteamID64") {
		t.Error("expected validation message on page")
	}
	if engine.gotSteamID != "" {
		t.Error("engine must not be called for invalid form input")
	}
}

func TestIndexSubmitEngineFailure(t *testing.T) {
	engine := &fakeEngine{err: &recommend.Error{Reason: recommend.ReasonProfilePrivate}}
	h := NewHandler(engine, testCatalog(t), "test")

	rec := postForm(t, h, validSteamID)

	if !strings.Contains(rec.Body.String(), "private") {
		t.Error("expected the profile-private message on the page")
	}
}
