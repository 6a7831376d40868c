// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package site

import (
	"folio/internal/models"
	"folio/internal/query"
)

// FeaturedSeriesLimit caps the series shown on the landing page.
const FeaturedSeriesLimit = 3

// Stats summarises the visible posts.
type Stats struct {
	Posts      int `json:"posts"`
	Categories int `json:"categories"`
	Tags       int `json:"tags"`
	Words      int `json:"words"`
}

// ArtistTabs is one artist with their tabs, newest first.
type ArtistTabs struct {
	Artist string         `json:"artist"`
	Tabs   []EntrySummary `json:"tabs"`
}

// MusicGroup is one music type with its entries, newest first.
type MusicGroup struct {
	Type    models.MusicType `json:"type"`
	Entries []EntrySummary   `json:"entries"`
}

// Stats returns post, category and tag totals plus the total word count.
func (s *Site) Stats() Stats {
	posts := s.collections[models.KindPost].sorted
	return Stats{
		Posts:      len(posts),
		Categories: len(s.categories),
		Tags:       len(s.tags),
		Words:      query.TotalWords(posts),
	}
}

// FeaturedSeries returns the first listed series that have posts.
func (s *Site) FeaturedSeries() []SeriesSummary {
	out := []SeriesSummary{}
	for _, sum := range s.seriesList {
		if sum.Count == 0 {
			continue
		}
		out = append(out, sum)
		if len(out) == FeaturedSeriesLimit {
			break
		}
	}
	return out
}

// TabsByArtist groups visible tabs by artist.
func (s *Site) TabsByArtist() []ArtistTabs {
	groups := query.ByArtist(s.collections[models.KindTab].sorted)
	out := make([]ArtistTabs, 0, len(groups))
	for _, g := range groups {
		out = append(out, ArtistTabs{Artist: g.Artist, Tabs: s.summarize(g.Entries)})
	}
	return out
}

// MusicByType groups visible music entries by type.
func (s *Site) MusicByType() []MusicGroup {
	groups := query.ByMusicType(s.collections[models.KindMusic].sorted)
	out := make([]MusicGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, MusicGroup{Type: g.Type, Entries: s.summarize(g.Entries)})
	}
	return out
}
