package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"folio/internal/cache"
	"folio/internal/models"
	"folio/internal/query"
	"folio/internal/site"
	"folio/internal/store"
	"folio/internal/urlpath"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// testSite builds a small production snapshot.
func testSite(t *testing.T) *site.Site {
	t.Helper()
	es, err := store.NewEntryStore([]*models.Entry{
		{ID: "first", Kind: models.KindPost, Body: "Hello *world*.", Words: 2, Meta: models.Metadata{
			Title: "First", Published: day(2024, 1, 1), Tags: []string{"Go"},
			Series: &models.SeriesRef{ID: "basics", Part: 1},
		}},
		{ID: "guides/second", Kind: models.KindPost, Meta: models.Metadata{
			Title: "Second", Published: day(2024, 2, 1), Tags: []string{"go"}, Category: "Guides",
			Series: &models.SeriesRef{ID: "basics", Part: 2},
		}},
		{ID: "third", Kind: models.KindPost, Meta: models.Metadata{
			Title: "Third", Published: day(2024, 3, 1),
		}},
		{ID: "secret", Kind: models.KindPost, Meta: models.Metadata{
			Title: "Secret", Published: day(2024, 4, 1), Draft: true,
		}},
		{ID: "riff", Kind: models.KindTab, Meta: models.Metadata{
			Title: "Riff", Published: day(2024, 1, 5), Tab: &models.TabMeta{Artist: "A"},
		}},
	})
	if err != nil {
		t.Fatalf("NewEntryStore: %v", err)
	}
	series, err := store.NewSeriesRegistry([]models.Series{
		{ID: "basics", Title: "Basics", Status: models.SeriesOngoing},
		{ID: "later", Title: "Later", Status: models.SeriesPaused},
	})
	if err != nil {
		t.Fatalf("NewSeriesRegistry: %v", err)
	}

	s, err := site.Build(&store.Content{Entries: es, Series: series}, site.Options{
		Mode:     query.Production,
		Mapper:   urlpath.New("/blog-site"),
		PageSize: 2,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

// testCache returns a response cache backed by miniredis.
func testCache(t *testing.T) *cache.ResponseCache {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewResponseCache(client, time.Minute)
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func do(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func TestCollection(t *testing.T) {
	api := NewAPI(site.NewHolder(testSite(t)), nil)
	h := api.Collection(models.KindPost)

	tests := []struct {
		name   string
		target string
		status int
		items  int
	}{
		{"default page", "/api/posts", http.StatusOK, 2},
		{"second page", "/api/posts?page=2", http.StatusOK, 1},
		{"non-numeric page", "/api/posts?page=abc", http.StatusBadRequest, 0},
		{"page zero", "/api/posts?page=0", http.StatusNotFound, 0},
		{"past the end", "/api/posts?page=3", http.StatusNotFound, 0},
		{"absurd page", "/api/posts?page=999999999", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(h, httptest.NewRequest(http.MethodGet, tt.target, nil))
			if rr.Code != tt.status {
				t.Fatalf("status: got %d, want %d (%s)", rr.Code, tt.status, rr.Body.String())
			}
			if tt.status != http.StatusOK {
				var body map[string]string
				decode(t, rr, &body)
				if body["error"] == "" {
					t.Error("error body should carry a message")
				}
				return
			}
			var page query.Page[site.EntrySummary]
			decode(t, rr, &page)
			if len(page.Items) != tt.items {
				t.Errorf("items: got %d, want %d", len(page.Items), tt.items)
			}
			if page.TotalItems != 3 || page.TotalPages != 2 {
				t.Errorf("totals: %d items, %d pages", page.TotalItems, page.TotalPages)
			}
		})
	}
}

func TestCollectionOrder(t *testing.T) {
	api := NewAPI(site.NewHolder(testSite(t)), nil)
	rr := do(api.Collection(models.KindPost), httptest.NewRequest(http.MethodGet, "/api/posts", nil))

	var page query.Page[site.EntrySummary]
	decode(t, rr, &page)
	if page.Items[0].ID != "third" || page.Items[1].ID != "guides/second" {
		t.Errorf("order: %s, %s", page.Items[0].ID, page.Items[1].ID)
	}
	if page.Items[1].URL != "/blog-site/posts/guides/second/" {
		t.Errorf("url: %q", page.Items[1].URL)
	}
}

func TestEntry(t *testing.T) {
	api := NewAPI(site.NewHolder(testSite(t)), nil)

	tests := []struct {
		name   string
		kind   models.Kind
		id     string
		status int
	}{
		{"post", models.KindPost, "first", http.StatusOK},
		{"nested id", models.KindPost, "guides/second/", http.StatusOK},
		{"tab", models.KindTab, "riff", http.StatusOK},
		{"draft hidden", models.KindPost, "secret", http.StatusNotFound},
		{"wrong kind", models.KindTab, "first", http.StatusNotFound},
		{"unknown", models.KindPost, "nope", http.StatusNotFound},
		{"relative id", models.KindPost, "a/../b", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/api/x", nil), "*", tt.id)
			rr := do(api.Entry(tt.kind), req)
			if rr.Code != tt.status {
				t.Errorf("status: got %d, want %d", rr.Code, tt.status)
			}
		})
	}
}

func TestEntryNavigation(t *testing.T) {
	api := NewAPI(site.NewHolder(testSite(t)), nil)
	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/api/posts/first", nil), "*", "first")
	rr := do(api.Entry(models.KindPost), req)

	var detail site.EntryDetail
	decode(t, rr, &detail)
	if detail.Next == nil || detail.Next.ID != "guides/second" || detail.Prev != nil {
		t.Errorf("neighbours: prev %+v, next %+v", detail.Prev, detail.Next)
	}
	if detail.Series == nil || detail.Series.Current != 1 || detail.Series.Total != 2 {
		t.Fatalf("series: %+v", detail.Series)
	}
	if detail.Series.Next == nil || detail.Series.Next.ID != "guides/second" {
		t.Errorf("series next: %+v", detail.Series.Next)
	}
	if detail.Entry == nil || detail.Entry.Meta.Title != "First" {
		t.Errorf("entry: %+v", detail.Entry)
	}
	if !strings.Contains(detail.HTML, "<em>world</em>") {
		t.Errorf("html: %q", detail.HTML)
	}
	if detail.Description != "Hello world." {
		t.Errorf("description: %q", detail.Description)
	}
}

func TestTaxonomy(t *testing.T) {
	api := NewAPI(site.NewHolder(testSite(t)), nil)

	tests := []struct {
		name    string
		handler http.Handler
		param   string
		value   string
		status  int
		count   float64
	}{
		{"tag any case", api.Tag(), "tag", "GO", http.StatusOK, 2},
		{"unused tag", api.Tag(), "tag", "rust", http.StatusNotFound, 0},
		{"category", api.Category(), "category", "guides", http.StatusOK, 1},
		{"uncategorized", api.Category(), "category", "Uncategorized", http.StatusOK, 2},
		{"unknown category", api.Category(), "category", "misc", http.StatusNotFound, 0},
		{"series", api.Series(), "id", "basics", http.StatusOK, 2},
		{"defined empty series", api.Series(), "id", "later", http.StatusOK, 0},
		{"unknown series", api.Series(), "id", "nope", http.StatusNotFound, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/api/x", nil), tt.param, tt.value)
			rr := do(tt.handler, req)
			if rr.Code != tt.status {
				t.Fatalf("status: got %d, want %d", rr.Code, tt.status)
			}
			if tt.status != http.StatusOK {
				return
			}
			var body map[string]any
			decode(t, rr, &body)
			if body["count"] != tt.count {
				t.Errorf("count: got %v, want %v", body["count"], tt.count)
			}
		})
	}
}

func TestListings(t *testing.T) {
	api := NewAPI(site.NewHolder(testSite(t)), nil)

	var tags []models.TaxonomyCount
	decode(t, do(api.Tags(), httptest.NewRequest(http.MethodGet, "/api/tags", nil)), &tags)
	if len(tags) != 1 || tags[0].Count != 2 || tags[0].URL != "/blog-site/tags/go/" {
		t.Errorf("tags: %+v", tags)
	}

	var series []site.SeriesSummary
	decode(t, do(api.SeriesList(), httptest.NewRequest(http.MethodGet, "/api/series", nil)), &series)
	if len(series) != 2 || series[0].ID != "basics" || series[1].ID != "later" {
		t.Errorf("series: %+v", series)
	}

	var archive []site.ArchiveYear
	decode(t, do(api.Archive(), httptest.NewRequest(http.MethodGet, "/api/archive", nil)), &archive)
	if len(archive) != 1 || archive[0].Count != 3 {
		t.Errorf("archive: %+v", archive)
	}

	var routes []site.Route
	decode(t, do(api.Routes(), httptest.NewRequest(http.MethodGet, "/api/routes", nil)), &routes)
	if len(routes) == 0 || routes[0].Path != "/blog-site/" {
		t.Errorf("routes: %+v", routes)
	}

	var home map[string][]site.EntrySummary
	decode(t, do(api.Home(), httptest.NewRequest(http.MethodGet, "/api/", nil)), &home)
	if len(home["posts"]) != 3 {
		t.Errorf("home posts: %d", len(home["posts"]))
	}
}

func TestOverviewEndpoints(t *testing.T) {
	api := NewAPI(site.NewHolder(testSite(t)), nil)

	var stats site.Stats
	decode(t, do(api.Stats(), httptest.NewRequest(http.MethodGet, "/api/stats", nil)), &stats)
	if stats.Posts != 3 || stats.Tags != 1 || stats.Categories != 2 || stats.Words != 2 {
		t.Errorf("stats: %+v", stats)
	}

	var featured []site.SeriesSummary
	decode(t, do(api.FeaturedSeries(), httptest.NewRequest(http.MethodGet, "/api/featured-series", nil)), &featured)
	if len(featured) != 1 || featured[0].ID != "basics" {
		t.Errorf("featured: %+v", featured)
	}

	var artists []site.ArtistTabs
	decode(t, do(api.Artists(), httptest.NewRequest(http.MethodGet, "/api/artists", nil)), &artists)
	if len(artists) != 1 || artists[0].Artist != "A" || artists[0].Tabs[0].ID != "riff" {
		t.Errorf("artists: %+v", artists)
	}

	var music []site.MusicGroup
	decode(t, do(api.MusicTypes(), httptest.NewRequest(http.MethodGet, "/api/music-types", nil)), &music)
	if len(music) != len(models.MusicTypes) {
		t.Errorf("music types: %+v", music)
	}
}

func TestTermParamDecodesEscapedSlash(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/tags/ci%2Fcd", nil)
	req = withChiURLParam(req, "tag", "ci%2Fcd")
	got, err := termParam(req, "tag")
	if err != nil || got != "ci/cd" {
		t.Errorf("termParam = %q, %v; want ci/cd", got, err)
	}

	plain := withChiURLParam(httptest.NewRequest(http.MethodGet, "/api/tags/100%25", nil), "tag", "100%")
	if got, err := termParam(plain, "tag"); err != nil || got != "100%" {
		t.Errorf("termParam = %q, %v; want 100%%", got, err)
	}
}

func TestResponseCaching(t *testing.T) {
	holder := site.NewHolder(testSite(t))
	api := NewAPI(holder, testCache(t))
	h := api.Collection(models.KindPost)

	first := do(h, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	if got := first.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("first request: X-Cache %q, want MISS", got)
	}

	second := do(h, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	if got := second.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("second request: X-Cache %q, want HIT", got)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached body differs from the original")
	}

	bad := do(h, httptest.NewRequest(http.MethodGet, "/api/posts?page=7", nil))
	again := do(h, httptest.NewRequest(http.MethodGet, "/api/posts?page=7", nil))
	if bad.Code != http.StatusNotFound || again.Header().Get("X-Cache") != "" {
		t.Error("error responses must not be cached")
	}

	holder.Swap(testSite(t))
	third := do(h, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	if got := third.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("after swap: X-Cache %q, want MISS", got)
	}
}
