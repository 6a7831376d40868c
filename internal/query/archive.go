// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package query

import (
	"slices"
	"time"

	"folio/internal/models"
)

// MonthGroup holds the entries published in one calendar month.
type MonthGroup struct {
	Month   time.Month      `json:"month"`
	Entries []*models.Entry `json:"entries"`
}

// YearGroup holds the month groups of one year.
type YearGroup struct {
	Year   int          `json:"year"`
	Months []MonthGroup `json:"months"`
}

// Count returns the number of entries in the year.
func (y YearGroup) Count() int {
	n := 0
	for _, m := range y.Months {
		n += len(m.Entries)
	}
	return n
}

// GroupByYearMonth buckets entries by the year and month of their
// published date. Years and months are newest first; inside a month the
// input order is kept, so passing a Sorted slice keeps the site order.
func GroupByYearMonth(entries []*models.Entry) []YearGroup {
	type ym struct {
		year  int
		month time.Month
	}
	buckets := make(map[ym][]*models.Entry)
	for _, e := range entries {
		k := ym{e.Meta.Published.Year(), e.Meta.Published.Month()}
		buckets[k] = append(buckets[k], e)
	}

	keys := make([]ym, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b ym) int {
		if a.year != b.year {
			return b.year - a.year
		}
		return int(b.month) - int(a.month)
	})

	years := []YearGroup{}
	for _, k := range keys {
		if len(years) == 0 || years[len(years)-1].Year != k.year {
			years = append(years, YearGroup{Year: k.year})
		}
		last := &years[len(years)-1]
		last.Months = append(last.Months, MonthGroup{Month: k.month, Entries: buckets[k]})
	}
	return years
}
