// Steam Game Recommender - Tag-Based Recommendations from Steam Libraries
// Copyright 2026 ja-nacek
// SPDX-License-Identifier: MIT
// https://github.com/ja-nacek/steam-game-recommender

// Package catalog loads the Steam game catalogue from a CSV export and
// normalizes it into the tag feature space used by the recommender.
//
// The catalogue is loaded once at startup and is immutable afterwards,
// so it is safe for unsynchronized concurrent reads across requests.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ja-nacek/steam-game-recommender/internal/logging"
	"github.com/ja-nacek/steam-game-recommender/internal/metrics"
)

// headerImageTemplate builds the store header image URL from an appid
const headerImageTemplate = "https://cdn.akamai.steamstatic.com/steam/apps/%d/header.jpg"

// Required CSV columns. Missing any of these is a startup-fatal schema error.
const (
	columnURL  = "url"
	columnName = "name"
	columnTags = "popular_tags"
)

// AppID is an optional Steam application identifier. Catalogue rows whose
// store URL does not contain a parseable appid carry an invalid AppID:
// they stay in the catalogue and can be recommended, but they can never
// match or be excluded against a user's owned games.
type AppID struct {
	Value int
	Valid bool
}

// Item is one normalized catalogue row.
type Item struct {
	AppID    AppID
	Name     string
	Tags     []string
	ImageURL string
}

// Catalog holds the full loaded catalogue plus an appid index for
// joining against owned-games libraries.
type Catalog struct {
	items   []Item
	byAppID map[int]int
}

// Load reads and normalizes the catalogue CSV at path.
//
// The file must carry url, name and popular_tags columns (any order,
// extra columns ignored). Rows are never dropped: a row with an
// unparseable appid or an empty tag field is retained with an invalid
// AppID or empty tag list respectively.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalogue file: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalogue file %s: %w", path, err)
	}

	logging.Info().
		Str("path", path).
		Int("items", c.Len()).
		Int("with_appid", len(c.byAppID)).
		Msg("Catalogue loaded")
	metrics.CatalogSize.Set(float64(c.Len()))

	return c, nil
}

// Parse reads catalogue CSV data from r
func Parse(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	urlIdx, nameIdx, tagsIdx := -1, -1, -1
	for i, col := range header {
		switch strings.TrimSpace(strings.ToLower(col)) {
		case columnURL:
			urlIdx = i
		case columnName:
			nameIdx = i
		case columnTags:
			tagsIdx = i
		}
	}
	if urlIdx < 0 || nameIdx < 0 || tagsIdx < 0 {
		return nil, fmt.Errorf("CSV is missing required columns (need %s, %s, %s), got %v",
			columnURL, columnName, columnTags, header)
	}

	c := &Catalog{
		byAppID: make(map[int]int),
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		item := Item{
			AppID: parseAppIDAt(record, urlIdx),
			Name:  fieldAt(record, nameIdx),
			Tags:  ParseTags(fieldAt(record, tagsIdx)),
		}
		if item.AppID.Valid {
			item.ImageURL = fmt.Sprintf(headerImageTemplate, item.AppID.Value)
			// First row wins for duplicate appids.
			if _, seen := c.byAppID[item.AppID.Value]; !seen {
				c.byAppID[item.AppID.Value] = len(c.items)
			}
		}
		c.items = append(c.items, item)
	}

	return c, nil
}

// Items returns the catalogue rows in file order. The returned slice is
// shared; callers must not mutate it.
func (c *Catalog) Items() []Item {
	return c.items
}

// Len returns the number of catalogue rows
func (c *Catalog) Len() int {
	return len(c.items)
}

// Lookup returns the catalogue item for an appid, if present
func (c *Catalog) Lookup(appID int) (Item, bool) {
	idx, ok := c.byAppID[appID]
	if !ok {
		return Item{}, false
	}
	return c.items[idx], true
}

// TagLists returns the per-row tag lists in file order, for vocabulary
// construction.
func (c *Catalog) TagLists() [][]string {
	lists := make([][]string, len(c.items))
	for i, item := range c.items {
		lists[i] = item.Tags
	}
	return lists
}

// ParseAppID extracts the numeric appid from a Steam store URL.
// The appid is the path segment following the literal "app" segment,
// e.g. https://store.steampowered.com/app/413150/Stardew_Valley/ -> 413150.
// Returns an invalid AppID when no such segment exists or it is not
// an integer.
func ParseAppID(rawURL string) AppID {
	segments := strings.Split(rawURL, "/")
	for i, seg := range segments {
		if seg != "app" || i+1 >= len(segments) {
			continue
		}
		n, err := strconv.Atoi(segments[i+1])
		if err != nil {
			return AppID{}
		}
		return AppID{Value: n, Valid: true}
	}
	return AppID{}
}

// ParseTags splits a comma-separated tag field into normalized tags:
// whitespace trimmed, lowercased, empties dropped. An empty or missing
// field yields an empty list, never an error.
func ParseTags(field string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}
	parts := strings.Split(field, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tag := strings.ToLower(strings.TrimSpace(p))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func parseAppIDAt(record []string, idx int) AppID {
	return ParseAppID(fieldAt(record, idx))
}

// fieldAt returns the field at idx or "" when the row is short
func fieldAt(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return record[idx]
}
