// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package link derives prev/next relationships between entries, both
// across a whole sorted collection and inside a single series. Entries
// are never modified; neighbours are returned alongside them.
package link

import (
	"math"
	"slices"
	"strings"

	"folio/internal/models"
)

// Neighbor identifies an adjacent entry.
type Neighbor struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Linked pairs an entry with its neighbours in a sorted collection.
// Next is one step newer, Prev one step older.
type Linked struct {
	Entry *models.Entry
	Prev  *Neighbor
	Next  *Neighbor
}

func neighbor(e *models.Entry) *Neighbor {
	return &Neighbor{ID: e.ID, Title: e.Meta.Title}
}

// Global links a newest-first sequence. sorted should be the production
// filtered output of query.Sorted so drafts never become neighbours.
// The entry at i gets Next from i-1 and Prev from i+1.
func Global(sorted []*models.Entry) []Linked {
	out := make([]Linked, len(sorted))
	for i, e := range sorted {
		out[i].Entry = e
		if i > 0 {
			out[i].Next = neighbor(sorted[i-1])
		}
		if i+1 < len(sorted) {
			out[i].Prev = neighbor(sorted[i+1])
		}
	}
	return out
}

// Table indexes linked entries by id.
func Table(linked []Linked) map[string]Linked {
	t := make(map[string]Linked, len(linked))
	for _, l := range linked {
		t[l.Entry.ID] = l
	}
	return t
}

// missingPart orders entries without a part after every numbered one.
const missingPart = math.MaxInt

func partOf(e *models.Entry) int {
	if e.Meta.Series.HasPart() {
		return e.Meta.Series.Part
	}
	return missingPart
}

// SeriesEntries returns the members of seriesID ordered by part
// ascending, then id. Unknown ids give an empty slice.
func SeriesEntries(entries []*models.Entry, seriesID string) []*models.Entry {
	members := []*models.Entry{}
	for _, e := range entries {
		if e.InSeries(seriesID) {
			members = append(members, e)
		}
	}
	slices.SortFunc(members, func(a, b *models.Entry) int {
		pa, pb := partOf(a), partOf(b)
		if pa != pb {
			if pa < pb {
				return -1
			}
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})
	return members
}

// SeriesNav describes where an entry sits inside its series. Current is
// 1-based.
type SeriesNav struct {
	SeriesID string
	Prev     *models.Entry
	Next     *models.Entry
	Total    int
	Current  int
}

// SeriesNavigation locates current among the entries of its series. It
// returns nil when current has no series reference or is not among
// entries.
func SeriesNavigation(entries []*models.Entry, current *models.Entry) *SeriesNav {
	if current == nil || current.Meta.Series == nil {
		return nil
	}
	members := SeriesEntries(entries, current.Meta.Series.ID)
	idx := slices.Index(members, current)
	if idx < 0 {
		return nil
	}

	nav := &SeriesNav{
		SeriesID: current.Meta.Series.ID,
		Total:    len(members),
		Current:  idx + 1,
	}
	if idx > 0 {
		nav.Prev = members[idx-1]
	}
	if idx+1 < len(members) {
		nav.Next = members[idx+1]
	}
	return nav
}
