// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package query filters, sorts, paginates and aggregates entries. Every
// function is pure: inputs are never reordered or modified, results are
// fresh slices of the same borrowed *models.Entry pointers.
package query

import (
	"slices"
	"strings"

	"folio/internal/models"
)

// Mode selects whether drafts are visible.
type Mode int

const (
	// Development includes drafts.
	Development Mode = iota
	// Production excludes drafts.
	Production
)

// ModeFor maps an APP_ENV value to a Mode. Only "production" hides drafts.
func ModeFor(env string) Mode {
	if env == "production" {
		return Production
	}
	return Development
}

func (m Mode) String() string {
	if m == Production {
		return "production"
	}
	return "development"
}

// Visible returns the entries the mode allows, in input order.
func Visible(entries []*models.Entry, mode Mode) []*models.Entry {
	out := make([]*models.Entry, 0, len(entries))
	for _, e := range entries {
		if mode == Production && e.Meta.Draft {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Sorted returns the visible entries ordered pinned first, then by
// published date newest first. Entries published at the same instant are
// ordered by id ascending so the result never depends on input order.
func Sorted(entries []*models.Entry, mode Mode) []*models.Entry {
	out := Visible(entries, mode)
	slices.SortFunc(out, compareEntries)
	return out
}

// compareEntries implements the Sorted ordering.
func compareEntries(a, b *models.Entry) int {
	if a.Meta.Pinned != b.Meta.Pinned {
		if a.Meta.Pinned {
			return -1
		}
		return 1
	}
	if c := b.Meta.Published.Compare(a.Meta.Published); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// Latest returns at most n entries from the front of sorted.
func Latest(sorted []*models.Entry, n int) []*models.Entry {
	if n <= 0 {
		return []*models.Entry{}
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return slices.Clone(sorted[:n])
}

// Find returns the entry with the given id, or nil.
func Find(entries []*models.Entry, id string) *models.Entry {
	for _, e := range entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}
