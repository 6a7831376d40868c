// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "strings"

// SeriesStatus is the publishing state of a series.
type SeriesStatus string

const (
	SeriesOngoing   SeriesStatus = "ongoing"
	SeriesPaused    SeriesStatus = "paused"
	SeriesCompleted SeriesStatus = "completed"
)

// ParseSeriesStatus normalises a status string. "hiatus" is accepted as
// an older spelling of paused. ok is false for anything else.
func ParseSeriesStatus(s string) (SeriesStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ongoing":
		return SeriesOngoing, true
	case "paused", "hiatus":
		return SeriesPaused, true
	case "completed":
		return SeriesCompleted, true
	}
	return "", false
}

// Rank orders statuses for listing: ongoing, then paused, then completed.
func (s SeriesStatus) Rank() int {
	switch s {
	case SeriesOngoing:
		return 0
	case SeriesPaused:
		return 1
	case SeriesCompleted:
		return 2
	}
	return 3
}

// Series is a named grouping of entries. Series are defined statically
// and never modified by entry processing.
type Series struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      SeriesStatus `json:"status"`
}
