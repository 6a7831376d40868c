// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package query

import (
	"strings"

	"folio/internal/models"
)

// ArtistGroup holds the tabs of one artist.
type ArtistGroup struct {
	Artist  string
	Entries []*models.Entry
}

// ByArtist groups tabs by artist. Artists appear in the order their first
// tab appears in entries, so a Sorted slice puts the most recently
// published artist first. Entries without tab metadata are skipped.
func ByArtist(entries []*models.Entry) []ArtistGroup {
	index := make(map[string]int)
	groups := []ArtistGroup{}
	for _, e := range entries {
		if e.Meta.Tab == nil {
			continue
		}
		artist := strings.TrimSpace(e.Meta.Tab.Artist)
		i, ok := index[artist]
		if !ok {
			i = len(groups)
			index[artist] = i
			groups = append(groups, ArtistGroup{Artist: artist})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}

// MusicTypeGroup holds the music entries of one type.
type MusicTypeGroup struct {
	Type    models.MusicType
	Entries []*models.Entry
}

// ByMusicType splits music entries into covers, originals, jams and
// lessons, always in that order. Empty types are kept with no entries.
func ByMusicType(entries []*models.Entry) []MusicTypeGroup {
	groups := make([]MusicTypeGroup, len(models.MusicTypes))
	index := make(map[models.MusicType]int, len(models.MusicTypes))
	for i, typ := range models.MusicTypes {
		groups[i] = MusicTypeGroup{Type: typ, Entries: []*models.Entry{}}
		index[typ] = i
	}
	for _, e := range entries {
		if e.Meta.Music == nil {
			continue
		}
		if i, ok := index[e.Meta.Music.Type]; ok {
			groups[i].Entries = append(groups[i].Entries, e)
		}
	}
	return groups
}

// TotalWords sums the word counts of entries.
func TotalWords(entries []*models.Entry) int {
	n := 0
	for _, e := range entries {
		n += e.Words
	}
	return n
}
