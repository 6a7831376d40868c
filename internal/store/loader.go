// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"folio/internal/markdown"
	"folio/internal/models"
	"folio/internal/slug"
)

// Content is everything loaded from a content directory.
type Content struct {
	Entries *EntryStore
	Series  *SeriesRegistry
}

// Load reads every collection under dir (posts/, tabs/, music/) plus the
// optional series.yaml. Missing collection directories are skipped.
// Every invalid file is reported, not just the first.
func Load(dir string) (*Content, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content directory %s is not a directory", dir)
	}

	v := newValidator()
	var (
		entries []*models.Entry
		errs    []error
	)
	for _, kind := range models.Kinds {
		loaded, err := loadKind(v, dir, kind)
		if err != nil {
			errs = append(errs, err)
		}
		entries = append(entries, loaded...)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	entryStore, err := NewEntryStore(entries)
	if err != nil {
		return nil, err
	}
	series, err := LoadSeries(filepath.Join(dir, SeriesFile))
	if err != nil {
		return nil, err
	}

	slog.Info("content loaded",
		"dir", dir,
		"posts", entryStore.Count(models.KindPost),
		"tabs", entryStore.Count(models.KindTab),
		"music", entryStore.Count(models.KindMusic),
		"series", series.Len(),
	)
	return &Content{Entries: entryStore, Series: series}, nil
}

// loadKind walks one collection directory.
func loadKind(v *validator.Validate, dir string, kind models.Kind) ([]*models.Entry, error) {
	root := filepath.Join(dir, kind.Dir())
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		slog.Debug("collection directory missing, skipping", "kind", kind, "dir", root)
		return nil, nil
	}

	var (
		entries []*models.Entry
		errs    []error
	)
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}

		e, err := loadFile(v, root, path, kind)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			return nil
		}
		entries = append(entries, e)
		return nil
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}
	return entries, errors.Join(errs...)
}

// loadFile parses one Markdown file into an Entry.
func loadFile(v *validator.Validate, root, path string, kind models.Kind) (*models.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	meta, permalink, body, err := decode(v, kind, f)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return nil, err
	}
	id := slug.FromPath(filepath.ToSlash(rel))
	if permalink != "" {
		id = slug.FromPath(permalink)
	}
	if id == "" {
		return nil, fmt.Errorf("cannot derive an id from %q", rel)
	}

	words, readingTime := markdown.Stats(body)
	return &models.Entry{
		ID:          id,
		Kind:        kind,
		Meta:        meta,
		Body:        body,
		Words:       words,
		ReadingTime: readingTime,
		SourcePath:  path,
	}, nil
}
