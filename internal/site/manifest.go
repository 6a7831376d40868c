// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package site

import (
	"time"

	"github.com/google/uuid"

	"folio/internal/models"
)

// Manifest is the serialisable form of a Site. The index command writes
// it to disk and publish uploads it.
type Manifest struct {
	BuildID     uuid.UUID              `json:"build_id"`
	GeneratedAt time.Time              `json:"generated_at"`
	Mode        string                 `json:"mode"`
	Base        string                 `json:"base"`
	Home        []EntrySummary         `json:"home"`
	Posts       []EntrySummary         `json:"posts"`
	Tabs        []EntrySummary         `json:"tabs"`
	Music       []EntrySummary         `json:"music"`
	Tags        []models.TaxonomyCount `json:"tags"`
	Categories  []models.TaxonomyCount `json:"categories"`
	Series      []SeriesSummary        `json:"series"`
	Featured    []SeriesSummary        `json:"featured_series"`
	Artists     []ArtistTabs           `json:"artists"`
	MusicTypes  []MusicGroup           `json:"music_types"`
	Stats       Stats                  `json:"stats"`
	Archive     []ArchiveYear          `json:"archive"`
	Routes      []Route                `json:"routes"`
}

// Manifest returns the full snapshot as plain data.
func (s *Site) Manifest() Manifest {
	return Manifest{
		BuildID:     s.BuildID,
		GeneratedAt: s.GeneratedAt,
		Mode:        s.opts.Mode.String(),
		Base:        s.opts.Mapper.Base(),
		Home:        s.Home(),
		Posts:       s.summarizeLinked(s.collections[models.KindPost].linked),
		Tabs:        s.summarizeLinked(s.collections[models.KindTab].linked),
		Music:       s.summarizeLinked(s.collections[models.KindMusic].linked),
		Tags:        s.tags,
		Categories:  s.categories,
		Series:      s.seriesList,
		Featured:    s.FeaturedSeries(),
		Artists:     s.TabsByArtist(),
		MusicTypes:  s.MusicByType(),
		Stats:       s.Stats(),
		Archive:     s.Archive(),
		Routes:      s.routes,
	}
}
