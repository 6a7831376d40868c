// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package site

import (
	"time"

	"folio/internal/link"
	"folio/internal/models"
	"folio/internal/query"
	"folio/internal/slug"
	"folio/internal/urlpath"
)

// NeighborRef points at an adjacent entry.
type NeighborRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// SeriesPosition places an entry inside its series.
type SeriesPosition struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	URL     string       `json:"url"`
	Current int          `json:"current"`
	Total   int          `json:"total"`
	Prev    *NeighborRef `json:"prev,omitempty"`
	Next    *NeighborRef `json:"next,omitempty"`
}

// EntrySummary is the listing view of an entry.
type EntrySummary struct {
	ID          string          `json:"id"`
	Kind        models.Kind     `json:"kind"`
	Title       string          `json:"title"`
	URL         string          `json:"url"`
	Description string          `json:"description,omitempty"`
	Published   time.Time       `json:"published"`
	Updated     *time.Time      `json:"updated,omitempty"`
	Draft       bool            `json:"draft,omitempty"`
	Pinned      bool            `json:"pinned,omitempty"`
	Tags        []string        `json:"tags"`
	Category    string          `json:"category"`
	CategoryURL string          `json:"category_url,omitempty"`
	ReadingTime string          `json:"reading_time"`
	Prev        *NeighborRef    `json:"prev,omitempty"`
	Next        *NeighborRef    `json:"next,omitempty"`
	Series      *SeriesPosition `json:"series,omitempty"`
}

// EntryDetail adds the rendered body and the full entry to its summary.
type EntryDetail struct {
	EntrySummary
	HTML  string        `json:"html"`
	Entry *models.Entry `json:"entry"`
}

// SeriesSummary is a series with its visible post count.
type SeriesSummary struct {
	models.Series
	URL     string `json:"url"`
	Count   int    `json:"count"`
	Defined bool   `json:"defined"`
}

// SeriesDetail is a series with its posts in part order.
type SeriesDetail struct {
	SeriesSummary
	Entries []EntrySummary `json:"entries"`
}

// ArchiveMonth is one month of the archive.
type ArchiveMonth struct {
	Month   int            `json:"month"`
	Name    string         `json:"name"`
	Entries []EntrySummary `json:"entries"`
}

// ArchiveYear is one year of the archive, newest month first.
type ArchiveYear struct {
	Year   int            `json:"year"`
	Count  int            `json:"count"`
	Months []ArchiveMonth `json:"months"`
}

var pathKinds = map[models.Kind]urlpath.Kind{
	models.KindPost:  urlpath.Post,
	models.KindTab:   urlpath.Tab,
	models.KindMusic: urlpath.Music,
}

// EntryURL returns the canonical path of an entry.
func (s *Site) EntryURL(e *models.Entry) string {
	return s.opts.Mapper.Path(pathKinds[e.Kind], e.ID)
}

func (s *Site) neighborRef(kind models.Kind, n *link.Neighbor) *NeighborRef {
	if n == nil {
		return nil
	}
	return &NeighborRef{ID: n.ID, Title: n.Title, URL: s.opts.Mapper.Path(pathKinds[kind], n.ID)}
}

func (s *Site) entryRef(e *models.Entry) *NeighborRef {
	if e == nil {
		return nil
	}
	return &NeighborRef{ID: e.ID, Title: e.Meta.Title, URL: s.EntryURL(e)}
}

// summary builds the listing view of a linked entry.
func (s *Site) summary(l link.Linked) EntrySummary {
	e := l.Entry
	sum := EntrySummary{
		ID:          e.ID,
		Kind:        e.Kind,
		Title:       e.Meta.Title,
		URL:         s.EntryURL(e),
		Description: e.Meta.Description,
		Published:   e.Meta.Published,
		Updated:     e.Meta.Updated,
		Draft:       e.Meta.Draft,
		Pinned:      e.Meta.Pinned,
		Tags:        e.Meta.Tags,
		Category:    query.CategoryKeys(e)[0],
		ReadingTime: e.ReadingTime,
		Prev:        s.neighborRef(e.Kind, l.Prev),
		Next:        s.neighborRef(e.Kind, l.Next),
		Series:      s.seriesPosition(e),
	}
	if sum.Description == "" {
		sum.Description = s.collections[e.Kind].excerpts[e.ID]
	}
	if sum.Tags == nil {
		sum.Tags = []string{}
	}
	if e.HasCategory() {
		sum.CategoryURL = s.opts.Mapper.Path(urlpath.Category, e.Meta.Category)
	}
	return sum
}

// summarize looks up the linked form of each entry so summaries carry
// their global neighbours.
func (s *Site) summarize(entries []*models.Entry) []EntrySummary {
	out := make([]EntrySummary, 0, len(entries))
	for _, e := range entries {
		l, ok := s.collections[e.Kind].table[e.ID]
		if !ok {
			l = link.Linked{Entry: e}
		}
		out = append(out, s.summary(l))
	}
	return out
}

func (s *Site) summarizeLinked(linked []link.Linked) []EntrySummary {
	out := make([]EntrySummary, 0, len(linked))
	for _, l := range linked {
		out = append(out, s.summary(l))
	}
	return out
}

func (s *Site) seriesPosition(e *models.Entry) *SeriesPosition {
	nav := link.SeriesNavigation(s.collections[e.Kind].sorted, e)
	if nav == nil {
		return nil
	}
	return &SeriesPosition{
		ID:      nav.SeriesID,
		Title:   s.seriesTitle(nav.SeriesID, e.Meta.Series),
		URL:     s.opts.Mapper.Path(urlpath.Series, nav.SeriesID),
		Current: nav.Current,
		Total:   nav.Total,
		Prev:    s.entryRef(nav.Prev),
		Next:    s.entryRef(nav.Next),
	}
}

// seriesTitle prefers the registry title, then the title given on the
// entry, then one derived from the id.
func (s *Site) seriesTitle(id string, ref *models.SeriesRef) string {
	if def := s.series.Find(id); def != nil {
		return def.Title
	}
	if ref != nil && ref.Title != "" {
		return ref.Title
	}
	return slug.Title(id)
}

// seriesSummary describes id whether or not it is defined in the
// registry.
func (s *Site) seriesSummary(id string, count int) SeriesSummary {
	sum := SeriesSummary{
		Series: models.Series{ID: id, Title: s.seriesTitle(id, nil)},
		Count:  count,
	}
	if def := s.series.Find(id); def != nil {
		sum.Series = *def
		sum.Defined = true
	}
	if path, err := s.opts.Mapper.Resolve(urlpath.Series, id); err == nil {
		sum.URL = path
	}
	return sum
}

// buildSeriesList lists defined series in registry order, followed by
// series only referenced from posts.
func (s *Site) buildSeriesList(posts []*models.Entry) []SeriesSummary {
	counts := query.SeriesCounts(posts, s.opts.Mapper)
	out := make([]SeriesSummary, 0, s.series.Len()+len(counts))
	for _, def := range s.series.Sorted() {
		out = append(out, s.seriesSummary(def.ID, query.CountExact(counts, def.ID)))
	}
	for _, c := range counts {
		if s.series.Find(c.Name) != nil {
			continue
		}
		sum := s.seriesSummary(c.Name, c.Count)
		for _, p := range posts {
			if p.InSeries(c.Name) && p.Meta.Series.Title != "" {
				sum.Title = p.Meta.Series.Title
				break
			}
		}
		out = append(out, sum)
	}
	return out
}
