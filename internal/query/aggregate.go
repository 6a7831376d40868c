// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package query

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"folio/internal/models"
	"folio/internal/urlpath"
)

// KeyFunc returns the grouping keys of an entry. An entry contributes
// once to each distinct key it returns.
type KeyFunc func(*models.Entry) []string

// URLFunc returns the listing URL of a key.
type URLFunc func(key string) string

// Aggregate counts entries per key. Keys with the same canonical URL form
// are one group, named by the first spelling seen. Groups are ordered by
// case-folded name ascending, ties broken by the raw name.
func Aggregate(entries []*models.Entry, keys KeyFunc, url URLFunc) []models.TaxonomyCount {
	return aggregate(entries, keys, urlpath.Canonical, url)
}

// AggregateExact is Aggregate for keys that are matched verbatim, such as
// series ids.
func AggregateExact(entries []*models.Entry, keys KeyFunc, url URLFunc) []models.TaxonomyCount {
	return aggregate(entries, keys, strings.TrimSpace, url)
}

func aggregate(entries []*models.Entry, keys KeyFunc, norm func(string) string, url URLFunc) []models.TaxonomyCount {
	index := make(map[string]int)
	var groups []models.TaxonomyCount

	for _, e := range entries {
		seen := make(map[string]bool)
		for _, k := range keys(e) {
			k = strings.TrimSpace(k)
			if k == "" {
				continue
			}
			key := norm(k)
			if seen[key] {
				continue
			}
			seen[key] = true

			if i, ok := index[key]; ok {
				groups[i].Count++
				continue
			}
			index[key] = len(groups)
			groups = append(groups, models.TaxonomyCount{Name: k, Count: 1})
		}
	}

	for i := range groups {
		if url != nil {
			groups[i].URL = url(groups[i].Name)
		}
	}

	folder := cases.Fold()
	slices.SortFunc(groups, func(a, b models.TaxonomyCount) int {
		if c := strings.Compare(folder.String(a.Name), folder.String(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	if groups == nil {
		groups = []models.TaxonomyCount{}
	}
	return groups
}

// TagKeys groups by every tag.
func TagKeys(e *models.Entry) []string {
	return e.Meta.Tags
}

// CategoryKeys groups by category, with Uncategorized as the fallback.
func CategoryKeys(e *models.Entry) []string {
	if !e.HasCategory() {
		return []string{models.Uncategorized}
	}
	return []string{e.Meta.Category}
}

// SeriesKeys groups by series id. Entries outside a series contribute
// nothing.
func SeriesKeys(e *models.Entry) []string {
	if e.Meta.Series == nil {
		return nil
	}
	return []string{e.Meta.Series.ID}
}

// Tags counts tag usage with tag page URLs.
func Tags(entries []*models.Entry, m *urlpath.Mapper) []models.TaxonomyCount {
	return Aggregate(entries, TagKeys, func(k string) string { return m.Path(urlpath.Tag, k) })
}

// Categories counts category usage with category page URLs.
func Categories(entries []*models.Entry, m *urlpath.Mapper) []models.TaxonomyCount {
	return Aggregate(entries, CategoryKeys, func(k string) string { return m.Path(urlpath.Category, k) })
}

// SeriesCounts counts series membership with series page URLs.
func SeriesCounts(entries []*models.Entry, m *urlpath.Mapper) []models.TaxonomyCount {
	return AggregateExact(entries, SeriesKeys, func(k string) string { return m.Path(urlpath.Series, k) })
}

// CountFor returns the count of the named tag or category group, compared
// in canonical form, or 0 when absent.
func CountFor(groups []models.TaxonomyCount, name string) int {
	want := urlpath.Canonical(name)
	for _, g := range groups {
		if urlpath.Canonical(g.Name) == want {
			return g.Count
		}
	}
	return 0
}

// CountExact returns the count of the group named exactly name, or 0.
func CountExact(groups []models.TaxonomyCount, name string) int {
	for _, g := range groups {
		if g.Name == name {
			return g.Count
		}
	}
	return 0
}

// ByTag returns entries carrying tag, compared in canonical form.
func ByTag(entries []*models.Entry, tag string) []*models.Entry {
	return filterKeys(entries, TagKeys, tag)
}

// ByCategory returns entries in category. "Uncategorized" matches entries
// without a category.
func ByCategory(entries []*models.Entry, category string) []*models.Entry {
	return filterKeys(entries, CategoryKeys, category)
}

// BySeries returns entries whose series id equals seriesID, in input order.
func BySeries(entries []*models.Entry, seriesID string) []*models.Entry {
	out := []*models.Entry{}
	for _, e := range entries {
		if e.InSeries(seriesID) {
			out = append(out, e)
		}
	}
	return out
}

// filterKeys keeps entries where any key canonically equals want.
func filterKeys(entries []*models.Entry, keys KeyFunc, want string) []*models.Entry {
	want = urlpath.Canonical(want)
	out := []*models.Entry{}
	if want == "" {
		return out
	}
	for _, e := range entries {
		for _, k := range keys(e) {
			if urlpath.Canonical(k) == want {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
