// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers serves the JSON preview API over the current Site
// snapshot.
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"folio/internal/cache"
	"folio/internal/models"
	"folio/internal/query"
	"folio/internal/site"
)

// API groups the preview handlers. Every response is built from one Site
// snapshot, so a reload mid-request never mixes two builds.
type API struct {
	sites *site.Holder
	cache *cache.ResponseCache
}

// NewAPI creates the handler group. rc may be nil to disable caching.
func NewAPI(sites *site.Holder, rc *cache.ResponseCache) *API {
	return &API{sites: sites, cache: rc}
}

// errNotFound marks a lookup miss inside a build func.
var errNotFound = errors.New("not found")

// errBadRequest marks unparseable input inside a build func.
type errBadRequest struct{ msg string }

func (e errBadRequest) Error() string { return e.msg }

// buildFunc produces the response payload from a snapshot.
type buildFunc func(s *site.Site, r *http.Request) (any, error)

// serve runs build against the current snapshot, consulting the response
// cache first. Only successful responses are cached.
func (a *API) serve(build buildFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s := a.sites.Load()
		key := cache.Key(s.BuildID.String(), r.URL.RequestURI())

		if body, ok := a.cache.Get(ctx, key); ok {
			w.Header().Set("X-Cache", "HIT")
			writeRaw(w, http.StatusOK, body)
			return
		}

		payload, err := build(s, r)
		if err != nil {
			var bad errBadRequest
			switch {
			case errors.As(err, &bad):
				writeError(w, http.StatusBadRequest, bad.msg)
			case errors.Is(err, errNotFound), errors.Is(err, query.ErrPageOutOfRange):
				writeError(w, http.StatusNotFound, "not found")
			default:
				slog.Error("api handler failed", "path", r.URL.Path, "error", err)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}

		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(payload); err != nil {
			slog.Error("encode response failed", "path", r.URL.Path, "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		a.cache.Set(ctx, key, buf.Bytes())
		w.Header().Set("X-Cache", "MISS")
		writeRaw(w, http.StatusOK, buf.Bytes())
	}
}

// Home returns the newest posts for the landing page.
func (a *API) Home() http.HandlerFunc {
	return a.serve(func(s *site.Site, _ *http.Request) (any, error) {
		return map[string]any{"posts": s.Home()}, nil
	})
}

// Collection returns a page of one kind. The page number comes from
// ?page=N and defaults to 1.
func (a *API) Collection(kind models.Kind) http.HandlerFunc {
	return a.serve(func(s *site.Site, r *http.Request) (any, error) {
		n, err := pageParam(r)
		if err != nil {
			return nil, err
		}
		if msg := validatePage(n); msg != "" {
			return nil, errBadRequest{msg: msg}
		}
		return s.Page(kind, n)
	})
}

// Entry returns a single entry of kind by the wildcard id.
func (a *API) Entry(kind models.Kind) http.HandlerFunc {
	return a.serve(func(s *site.Site, r *http.Request) (any, error) {
		id, err := pathParam(r, "*")
		if err != nil {
			return nil, err
		}
		id = strings.Trim(id, "/")
		if msg := validateID(id); msg != "" {
			return nil, errBadRequest{msg: msg}
		}
		detail := s.Entry(kind, id)
		if detail == nil {
			return nil, errNotFound
		}
		return detail, nil
	})
}

// Tags lists tag counts.
func (a *API) Tags() http.HandlerFunc {
	return a.serve(func(s *site.Site, _ *http.Request) (any, error) {
		return s.Tags(), nil
	})
}

// Tag lists the posts carrying one tag. A tag nobody uses is a 404.
func (a *API) Tag() http.HandlerFunc {
	return a.serve(func(s *site.Site, r *http.Request) (any, error) {
		tag, err := termParam(r, "tag")
		if err != nil {
			return nil, err
		}
		count := query.CountFor(s.Tags(), tag)
		if count == 0 {
			return nil, errNotFound
		}
		return map[string]any{"tag": tag, "count": count, "posts": s.TagEntries(tag)}, nil
	})
}

// Categories lists category counts.
func (a *API) Categories() http.HandlerFunc {
	return a.serve(func(s *site.Site, _ *http.Request) (any, error) {
		return s.Categories(), nil
	})
}

// Category lists the posts in one category.
func (a *API) Category() http.HandlerFunc {
	return a.serve(func(s *site.Site, r *http.Request) (any, error) {
		category, err := termParam(r, "category")
		if err != nil {
			return nil, err
		}
		count := query.CountFor(s.Categories(), category)
		if count == 0 {
			return nil, errNotFound
		}
		return map[string]any{"category": category, "count": count, "posts": s.CategoryEntries(category)}, nil
	})
}

// SeriesList lists every series with its post count.
func (a *API) SeriesList() http.HandlerFunc {
	return a.serve(func(s *site.Site, _ *http.Request) (any, error) {
		return s.Series(), nil
	})
}

// Series returns one series with its posts in part order. Ids that are
// neither defined nor referenced are a 404.
func (a *API) Series() http.HandlerFunc {
	return a.serve(func(s *site.Site, r *http.Request) (any, error) {
		id, err := termParam(r, "id")
		if err != nil {
			return nil, err
		}
		detail := s.SeriesDetail(id)
		if !detail.Defined && detail.Count == 0 {
			return nil, errNotFound
		}
		return detail, nil
	})
}

// FeaturedSeries lists the series shown on the landing page.
func (a *API) FeaturedSeries() http.HandlerFunc {
	return a.serve(func(s *site.Site, _ *http.Request) (any, error) {
		return s.FeaturedSeries(), nil
	})
}

// Artists returns tabs grouped by artist.
func (a *API) Artists() http.HandlerFunc {
	return a.serve(func(s *site.Site, _ *http.Request) (any, error) {
		return s.TabsByArtist(), nil
	})
}

// MusicTypes returns music entries grouped by type.
func (a *API) MusicTypes() http.HandlerFunc {
	return a.serve(func(s *site.Site, _ *http.Request) (any, error) {
		return s.MusicByType(), nil
	})
}

// Stats returns post, taxonomy and word totals.
func (a *API) Stats() http.HandlerFunc {
	return a.serve(func(s *site.Site, _ *http.Request) (any, error) {
		return s.Stats(), nil
	})
}

// Archive returns posts grouped by year and month.
func (a *API) Archive() http.HandlerFunc {
	return a.serve(func(s *site.Site, _ *http.Request) (any, error) {
		return s.Archive(), nil
	})
}

// Routes returns the route table.
func (a *API) Routes() http.HandlerFunc {
	return a.serve(func(s *site.Site, _ *http.Request) (any, error) {
		return s.Routes(), nil
	})
}

// pageParam parses ?page=N. Missing means page 1.
func pageParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errBadRequest{msg: "Page must be a number."}
	}
	return n, nil
}

// pathParam returns a decoded chi URL parameter. chi matches on the raw
// path when the request carries escapes such as %2F, and then hands back
// the segment still escaped.
func pathParam(r *http.Request, name string) (string, error) {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v, nil
	}
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return "", errBadRequest{msg: "Malformed path."}
	}
	return decoded, nil
}

// termParam reads and checks a taxonomy URL parameter.
func termParam(r *http.Request, name string) (string, error) {
	v, err := pathParam(r, name)
	if err != nil {
		return "", err
	}
	if msg := validateTerm(v); msg != "" {
		return "", errBadRequest{msg: msg}
	}
	return v, nil
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

// writeError writes a JSON error body.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
