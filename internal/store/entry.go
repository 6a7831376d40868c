// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store holds the read-only Entry Store: content entries parsed
// from Markdown files and the static series definitions. Stores are built
// once and never modified afterwards.
package store

import (
	"errors"
	"fmt"
	"slices"

	"folio/internal/models"
)

// ErrDuplicateID is returned when two entries of the same kind resolve to
// the same id.
var ErrDuplicateID = errors.New("duplicate entry id")

// EntryStore is an immutable collection of validated entries.
type EntryStore struct {
	byKind map[models.Kind][]*models.Entry
	index  map[string]*models.Entry // keyed by Entry.Key()
}

// NewEntryStore indexes entries, keeping their order within each kind.
func NewEntryStore(entries []*models.Entry) (*EntryStore, error) {
	s := &EntryStore{
		byKind: make(map[models.Kind][]*models.Entry),
		index:  make(map[string]*models.Entry, len(entries)),
	}
	for _, e := range entries {
		if !e.Kind.Valid() {
			return nil, fmt.Errorf("entry %q: unknown kind %q", e.ID, e.Kind)
		}
		if prev, ok := s.index[e.Key()]; ok {
			return nil, fmt.Errorf("%s (%s and %s): %w", e.Key(), prev.SourcePath, e.SourcePath, ErrDuplicateID)
		}
		s.index[e.Key()] = e
		s.byKind[e.Kind] = append(s.byKind[e.Kind], e)
	}
	return s, nil
}

// List returns the entries of a kind. The slice is a copy; the entries
// are shared.
func (s *EntryStore) List(kind models.Kind) []*models.Entry {
	return slices.Clone(s.byKind[kind])
}

// Find returns the entry of the given kind and id, or nil.
func (s *EntryStore) Find(kind models.Kind, id string) *models.Entry {
	return s.index[fmt.Sprintf("%s:%s", kind, id)]
}

// Len returns the total number of entries.
func (s *EntryStore) Len() int {
	return len(s.index)
}

// Count returns the number of entries of a kind.
func (s *EntryStore) Count(kind models.Kind) int {
	return len(s.byKind[kind])
}
