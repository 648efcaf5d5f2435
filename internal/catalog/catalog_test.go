// Steam Game Recommender - Tag-Based Recommendations from Steam Libraries
// Copyright 2026 ja-nacek
// SPDX-License-Identifier: MIT
// https://github.com/ja-nacek/steam-game-recommender

package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseAppID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want AppID
	}{
		{
			name: "standard store URL",
			url:  "https://store.steampowered.com/app/413150/Stardew_Valley/",
			want: AppID{Value: 413150, Valid: true},
		},
		{
			name: "no trailing slash",
			url:  "https://store.steampowered.com/app/570",
			want: AppID{Value: 570, Valid: true},
		},
		{
			name: "bundle URL without app segment",
			url:  "https://store.steampowered.com/bundle/232/Valve_Complete_Pack/",
			want: AppID{},
		},
		{
			name: "app segment followed by non-numeric",
			url:  "https://store.steampowered.com/app/not-a-number/",
			want: AppID{},
		},
		{
			name: "app is the last segment",
			url:  "https://store.steampowered.com/app",
			want: AppID{},
		},
		{
			name: "empty URL",
			url:  "",
			want: AppID{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAppID(tt.url)
			if got != tt.want {
				t.Errorf("ParseAppID(%q) = %+v, want %+v", tt.url, got, tt.want)
			}
		})
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  []string
	}{
		{
			name:  "mixed case and whitespace",
			field: "RPG, Open World ,  Pixel Graphics",
			want:  []string{"rpg", "open world", "pixel graphics"},
		},
		{
			name:  "single tag",
			field: "Puzzle",
			want:  []string{"puzzle"},
		},
		{
			name:  "empty field",
			field: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			field: "   ",
			want:  nil,
		},
		{
			name:  "trailing comma",
			field: "action,indie,",
			want:  []string{"action", "indie"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTags(tt.field)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTags(%q) = %v, want %v", tt.field, got, tt.want)
			}
		})
	}
}

func TestParseCatalogue(t *testing.T) {
	csv := `url,name,popular_tags,extra
https://store.steampowered.com/app/413150/Stardew_Valley/,Stardew Valley,"Farming Sim, RPG, Pixel Graphics",x
https://store.steampowered.com/bundle/232/Valve_Pack/,Valve Pack,"Action, FPS",y
https://store.steampowered.com/app/570/Dota_2/,Dota 2,,z
`
	c, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (no rows dropped)", c.Len())
	}

	items := c.Items()

	// Row with parseable appid gets an image URL.
	if !items[0].AppID.Valid || items[0].AppID.Value != 413150 {
		t.Errorf("items[0].AppID = %+v, want valid 413150", items[0].AppID)
	}
	wantImage := "https://cdn.akamai.steamstatic.com/steam/apps/413150/header.jpg"
	if items[0].ImageURL != wantImage {
		t.Errorf("items[0].ImageURL = %q, want %q", items[0].ImageURL, wantImage)
	}
	if !reflect.DeepEqual(items[0].Tags, []string{"farming sim", "rpg", "pixel graphics"}) {
		t.Errorf("items[0].Tags = %v", items[0].Tags)
	}

	// Row without an app segment is retained with an invalid appid and no image.
	if items[1].AppID.Valid {
		t.Errorf("items[1].AppID should be invalid, got %+v", items[1].AppID)
	}
	if items[1].ImageURL != "" {
		t.Errorf("items[1].ImageURL = %q, want empty", items[1].ImageURL)
	}

	// Row with an empty tag field is retained with an empty tag list.
	if len(items[2].Tags) != 0 {
		t.Errorf("items[2].Tags = %v, want empty", items[2].Tags)
	}

	// Lookup by appid.
	item, ok := c.Lookup(570)
	if !ok || item.Name != "Dota 2" {
		t.Errorf("Lookup(570) = %+v, %v; want Dota 2, true", item, ok)
	}
	if _, ok := c.Lookup(999999); ok {
		t.Error("Lookup(999999) should not be found")
	}
}

func TestParseMissingColumns(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{
			name: "missing popular_tags",
			csv:  "url,name\na,b\n",
		},
		{
			name: "missing url",
			csv:  "name,popular_tags\na,b\n",
		},
		{
			name: "empty file",
			csv:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.csv)); err == nil {
				t.Error("Parse() expected error, got nil")
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "games.csv")
	csv := "url,name,popular_tags\nhttps://store.steampowered.com/app/1/G/,G,tag\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	if _, err := Load(filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestTagLists(t *testing.T) {
	c, err := Parse(strings.NewReader("url,name,popular_tags\nu1,a,\"x, y\"\nu2,b,z\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := [][]string{{"x", "y"}, {"z"}}
	if got := c.TagLists(); !reflect.DeepEqual(got, want) {
		t.Errorf("TagLists() = %v, want %v", got, want)
	}
}
