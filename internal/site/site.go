// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package site assembles a Site snapshot from loaded content: sorted and
// linked collections, taxonomy counts, the archive and the route table.
// A Site is immutable once built and safe for concurrent readers.
package site

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"folio/internal/link"
	"folio/internal/markdown"
	"folio/internal/models"
	"folio/internal/query"
	"folio/internal/store"
	"folio/internal/urlpath"
)

// Defaults taken from the site's listing layout.
const (
	DefaultPageSize     = 10
	DefaultHomePageSize = 5
)

// ExcerptWords bounds the description derived from a body when the
// frontmatter has none.
const ExcerptWords = 30

// Options controls how a Site is built.
type Options struct {
	Mode         query.Mode
	Mapper       *urlpath.Mapper
	PageSize     int
	HomePageSize int
}

// collection is one sorted, linked kind with its rendered bodies.
type collection struct {
	sorted   []*models.Entry
	linked   []link.Linked
	table    map[string]link.Linked
	html     map[string]string
	excerpts map[string]string
}

func newCollection(entries []*models.Entry, mode query.Mode) (collection, error) {
	sorted := query.Sorted(entries, mode)
	linked := link.Global(sorted)
	c := collection{
		sorted:   sorted,
		linked:   linked,
		table:    link.Table(linked),
		html:     make(map[string]string, len(sorted)),
		excerpts: make(map[string]string),
	}
	for _, e := range sorted {
		body, err := markdown.ToHTML(e.Body)
		if err != nil {
			return collection{}, fmt.Errorf("render %s %q: %w", e.Kind, e.ID, err)
		}
		c.html[e.ID] = body
		if e.Meta.Description == "" {
			c.excerpts[e.ID] = markdown.Excerpt(e.Body, ExcerptWords)
		}
	}
	return c, nil
}

// Site is a built snapshot of the content.
type Site struct {
	BuildID     uuid.UUID
	GeneratedAt time.Time

	opts        Options
	series      *store.SeriesRegistry
	collections map[models.Kind]collection

	tags       []models.TaxonomyCount
	categories []models.TaxonomyCount
	seriesList []SeriesSummary
	archive    []query.YearGroup
	routes     []Route
}

// Build sorts, links and aggregates content under opts.
func Build(content *store.Content, opts Options) (*Site, error) {
	if content == nil || content.Entries == nil {
		return nil, errors.New("build site: no content")
	}
	if opts.Mapper == nil {
		opts.Mapper = urlpath.New("/")
	}
	if opts.PageSize == 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.HomePageSize == 0 {
		opts.HomePageSize = DefaultHomePageSize
	}
	if opts.PageSize < 0 {
		return nil, fmt.Errorf("build site: page size %d: %w", opts.PageSize, query.ErrInvalidPageSize)
	}
	if opts.HomePageSize < 0 {
		return nil, fmt.Errorf("build site: home page size %d: %w", opts.HomePageSize, query.ErrInvalidPageSize)
	}

	series := content.Series
	if series == nil {
		series, _ = store.NewSeriesRegistry(nil)
	}

	s := &Site{
		BuildID:     uuid.New(),
		GeneratedAt: time.Now().UTC(),
		opts:        opts,
		series:      series,
		collections: make(map[models.Kind]collection, len(models.Kinds)),
	}
	for _, kind := range models.Kinds {
		c, err := newCollection(content.Entries.List(kind), opts.Mode)
		if err != nil {
			return nil, fmt.Errorf("build site: %w", err)
		}
		s.collections[kind] = c
	}

	posts := s.collections[models.KindPost].sorted
	s.tags = query.Tags(posts, opts.Mapper)
	s.categories = query.Categories(posts, opts.Mapper)
	s.seriesList = s.buildSeriesList(posts)
	s.archive = query.GroupByYearMonth(posts)
	s.routes = s.buildRoutes()
	return s, nil
}

// Mode returns the visibility mode the site was built with.
func (s *Site) Mode() query.Mode {
	return s.opts.Mode
}

// Mapper returns the URL mapper in use.
func (s *Site) Mapper() *urlpath.Mapper {
	return s.opts.Mapper
}

// Sorted returns the visible entries of a kind in site order.
func (s *Site) Sorted(kind models.Kind) []*models.Entry {
	return s.collections[kind].sorted
}

// Page returns page n of a collection as summaries.
func (s *Site) Page(kind models.Kind, n int) (query.Page[EntrySummary], error) {
	page, err := query.Paginate(s.collections[kind].linked, n, s.opts.PageSize)
	if err != nil {
		return query.Page[EntrySummary]{}, err
	}
	return query.Page[EntrySummary]{
		Items:      s.summarizeLinked(page.Items),
		Number:     page.Number,
		Size:       page.Size,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}, nil
}

// Home returns the newest posts shown on the landing page.
func (s *Site) Home() []EntrySummary {
	posts := s.collections[models.KindPost]
	return s.summarize(query.Latest(posts.sorted, s.opts.HomePageSize))
}

// Entry returns the detail view of one entry, or nil when the id is not
// visible in this site.
func (s *Site) Entry(kind models.Kind, id string) *EntryDetail {
	c, ok := s.collections[kind]
	if !ok {
		return nil
	}
	l, ok := c.table[id]
	if !ok {
		return nil
	}
	return &EntryDetail{
		EntrySummary: s.summary(l),
		HTML:         c.html[id],
		Entry:        l.Entry,
	}
}

// Tags returns tag counts over visible posts.
func (s *Site) Tags() []models.TaxonomyCount {
	return s.tags
}

// Categories returns category counts over visible posts.
func (s *Site) Categories() []models.TaxonomyCount {
	return s.categories
}

// Series returns every listed series with its post count.
func (s *Site) Series() []SeriesSummary {
	return s.seriesList
}

// Archive returns visible posts grouped by year and month.
func (s *Site) Archive() []ArchiveYear {
	years := make([]ArchiveYear, 0, len(s.archive))
	for _, y := range s.archive {
		ay := ArchiveYear{Year: y.Year, Count: y.Count()}
		for _, m := range y.Months {
			ay.Months = append(ay.Months, ArchiveMonth{
				Month:   int(m.Month),
				Name:    m.Month.String(),
				Entries: s.summarize(m.Entries),
			})
		}
		years = append(years, ay)
	}
	return years
}

// TagEntries returns visible posts carrying tag. Unused tags give an
// empty slice.
func (s *Site) TagEntries(tag string) []EntrySummary {
	return s.summarize(query.ByTag(s.collections[models.KindPost].sorted, tag))
}

// CategoryEntries returns visible posts in category.
func (s *Site) CategoryEntries(category string) []EntrySummary {
	return s.summarize(query.ByCategory(s.collections[models.KindPost].sorted, category))
}

// SeriesDetail returns a series and its posts in part order. Unknown ids
// give a detail with no posts and a zero count.
func (s *Site) SeriesDetail(id string) SeriesDetail {
	members := link.SeriesEntries(s.collections[models.KindPost].sorted, id)
	return SeriesDetail{
		SeriesSummary: s.seriesSummary(id, len(members)),
		Entries:       s.summarize(members),
	}
}

// Routes returns every page path the site exposes.
func (s *Site) Routes() []Route {
	return s.routes
}
