// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package site

import (
	"time"

	"folio/internal/models"
	"folio/internal/query"
	"folio/internal/urlpath"
)

// Route is one page the site exposes. Hidden routes are served but left
// out of the sitemap.
type Route struct {
	Path    string     `json:"path"`
	Kind    string     `json:"kind"`
	Hidden  bool       `json:"hidden,omitempty"`
	LastMod *time.Time `json:"lastmod,omitempty"`
}

// buildRoutes lists every page in a stable order: home, paginated
// collections, entries, then taxonomy pages.
func (s *Site) buildRoutes() []Route {
	m := s.opts.Mapper
	var routes []Route
	add := func(r Route) {
		routes = append(routes, r)
	}

	add(Route{Path: m.Home(), Kind: "home"})

	for _, kind := range models.Kinds {
		c := s.collections[kind]
		hidden := kind == models.KindMusic
		pages := max(1, query.TotalPages(len(c.sorted), s.opts.PageSize))
		for n := 1; n <= pages; n++ {
			add(Route{Path: m.PagePath(kind.Dir(), n), Kind: "collection", Hidden: hidden})
		}
		for _, e := range c.sorted {
			mod := e.LastModified()
			add(Route{Path: s.EntryURL(e), Kind: string(kind), Hidden: hidden, LastMod: &mod})
		}
	}

	add(Route{Path: m.Path(urlpath.Collection, "archive"), Kind: "archive"})
	add(Route{Path: m.Path(urlpath.Collection, "tags"), Kind: "tags"})
	for _, t := range s.tags {
		add(Route{Path: t.URL, Kind: "tag"})
	}
	add(Route{Path: m.Path(urlpath.Collection, "categories"), Kind: "categories"})
	for _, c := range s.categories {
		add(Route{Path: c.URL, Kind: "category"})
	}
	add(Route{Path: m.Path(urlpath.Collection, "series"), Kind: "series-index"})
	for _, sr := range s.seriesList {
		if sr.URL != "" {
			add(Route{Path: sr.URL, Kind: "series"})
		}
	}
	return routes
}

// Sitemap returns absolute URLs of every visible route under siteURL.
func (s *Site) Sitemap(siteURL string) []string {
	out := make([]string, 0, len(s.routes))
	seen := make(map[string]bool, len(s.routes))
	for _, r := range s.routes {
		if r.Hidden || seen[r.Path] {
			continue
		}
		seen[r.Path] = true
		out = append(out, urlpath.Absolute(siteURL, r.Path))
	}
	return out
}
