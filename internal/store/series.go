// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"folio/internal/models"
	"folio/internal/slug"
)

// SeriesFile is the series definition file inside the content directory.
const SeriesFile = "series.yaml"

// rawSeries is one entry of series.yaml.
type rawSeries struct {
	ID          string `yaml:"id" validate:"required,excludes=/,segment"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Status      string `yaml:"status" validate:"required,oneof=ongoing completed paused hiatus"`
}

// SeriesRegistry holds the statically defined series.
type SeriesRegistry struct {
	items []models.Series
	index map[string]int
}

// NewSeriesRegistry indexes series definitions. Ids must be unique.
func NewSeriesRegistry(series []models.Series) (*SeriesRegistry, error) {
	r := &SeriesRegistry{index: make(map[string]int, len(series))}
	for _, s := range series {
		if _, ok := r.index[s.ID]; ok {
			return nil, fmt.Errorf("series %q: %w", s.ID, ErrDuplicateID)
		}
		r.index[s.ID] = len(r.items)
		r.items = append(r.items, s)
	}
	return r, nil
}

// LoadSeries reads series definitions from a YAML file. A missing file
// yields an empty registry.
func LoadSeries(path string) (*SeriesRegistry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewSeriesRegistry(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("read series file: %w", err)
	}

	var raws []rawSeries
	if err := yaml.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	v := newValidator()
	series := make([]models.Series, 0, len(raws))
	for i, raw := range raws {
		if err := validate(v, &raw); err != nil {
			return nil, fmt.Errorf("%s: series #%d: %w", path, i+1, err)
		}
		status, _ := models.ParseSeriesStatus(raw.Status)
		title := strings.TrimSpace(raw.Title)
		if title == "" {
			title = slug.Title(raw.ID)
		}
		series = append(series, models.Series{
			ID:          raw.ID,
			Title:       title,
			Description: raw.Description,
			Status:      status,
		})
	}
	return NewSeriesRegistry(series)
}

// Find returns the series with the given id, or nil.
func (r *SeriesRegistry) Find(id string) *models.Series {
	i, ok := r.index[id]
	if !ok {
		return nil
	}
	s := r.items[i]
	return &s
}

// Sorted returns every series ordered ongoing, paused, completed, then by
// id.
func (r *SeriesRegistry) Sorted() []models.Series {
	out := slices.Clone(r.items)
	slices.SortFunc(out, func(a, b models.Series) int {
		if d := a.Status.Rank() - b.Status.Rank(); d != 0 {
			return d
		}
		return strings.Compare(a.ID, b.ID)
	})
	if out == nil {
		out = []models.Series{}
	}
	return out
}

// Len returns the number of defined series.
func (r *SeriesRegistry) Len() int {
	return len(r.items)
}
