// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the content records shared by the loader, the
// query layer and the preview API.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies the collection an entry was loaded from.
type Kind string

const (
	KindPost  Kind = "post"
	KindTab   Kind = "tab"
	KindMusic Kind = "music"
)

// Kinds lists every collection in load order.
var Kinds = []Kind{KindPost, KindTab, KindMusic}

// Dir returns the content subdirectory holding entries of this kind.
func (k Kind) Dir() string {
	switch k {
	case KindPost:
		return "posts"
	case KindTab:
		return "tabs"
	case KindMusic:
		return "music"
	}
	return ""
}

// Valid reports whether k is one of the known collections.
func (k Kind) Valid() bool {
	return k.Dir() != ""
}

// Difficulty grades a guitar tab.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
)

// MusicType classifies a music video entry.
type MusicType string

const (
	MusicTypeCover    MusicType = "cover"
	MusicTypeOriginal MusicType = "original"
	MusicTypeJam      MusicType = "jam"
	MusicTypeLesson   MusicType = "lesson"
)

// MusicTypes lists every music type in display order.
var MusicTypes = []MusicType{MusicTypeCover, MusicTypeOriginal, MusicTypeJam, MusicTypeLesson}

// SeriesRef places an entry inside a named series. Part is 1-based;
// zero means the frontmatter did not give one.
type SeriesRef struct {
	ID    string `json:"id"`
	Part  int    `json:"part,omitempty"`
	Title string `json:"title,omitempty"`
}

// HasPart reports whether an explicit part number was given.
func (r *SeriesRef) HasPart() bool {
	return r != nil && r.Part > 0
}

// TabMeta holds the fields only guitar tabs carry.
type TabMeta struct {
	Artist     string     `json:"artist"`
	Album      string     `json:"album,omitempty"`
	Difficulty Difficulty `json:"difficulty"`
	Tuning     string     `json:"tuning"`
	Capo       int        `json:"capo"`
	Key        string     `json:"key,omitempty"`
	Tempo      int        `json:"tempo,omitempty"`
}

// MusicMeta holds the fields only music entries carry.
type MusicMeta struct {
	Type           MusicType `json:"type"`
	YouTubeID      string    `json:"youtube_id"`
	OriginalArtist string    `json:"original_artist,omitempty"`
	OriginalSong   string    `json:"original_song,omitempty"`
	Gear           []string  `json:"gear,omitempty"`
}

// Metadata is the validated, fully defaulted frontmatter of an entry.
// Category is empty when the entry has none.
type Metadata struct {
	Title       string     `json:"title"`
	Published   time.Time  `json:"published"`
	Updated     *time.Time `json:"updated,omitempty"`
	Draft       bool       `json:"draft"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	Category    string     `json:"category,omitempty"`
	Lang        string     `json:"lang"`
	Pinned      bool       `json:"pinned"`
	Series      *SeriesRef `json:"series,omitempty"`

	Tab   *TabMeta   `json:"tab,omitempty"`
	Music *MusicMeta `json:"music,omitempty"`
}

// Entry is one content item. Entries are owned by the store and shared
// read-only with every consumer; nothing downstream mutates them.
type Entry struct {
	ID          string   `json:"id"`
	Kind        Kind     `json:"kind"`
	Meta        Metadata `json:"meta"`
	Body        string   `json:"-"`
	Words       int      `json:"words"`
	ReadingTime string   `json:"reading_time"`
	SourcePath  string   `json:"-"`
}

// Key returns the store-wide identity of the entry ("post:hello-world").
func (e *Entry) Key() string {
	return fmt.Sprintf("%s:%s", e.Kind, e.ID)
}

// HasCategory reports whether a category was assigned.
func (e *Entry) HasCategory() bool {
	return strings.TrimSpace(e.Meta.Category) != ""
}

// InSeries reports whether the entry belongs to the given series.
func (e *Entry) InSeries(seriesID string) bool {
	return e.Meta.Series != nil && e.Meta.Series.ID == seriesID
}

// LastModified returns Updated when set, otherwise Published.
func (e *Entry) LastModified() time.Time {
	if e.Meta.Updated != nil && e.Meta.Updated.After(e.Meta.Published) {
		return *e.Meta.Updated
	}
	return e.Meta.Published
}
