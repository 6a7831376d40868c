// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"folio/internal/models"
)

// yamlFormat splits "---" delimited YAML frontmatter and decodes it with
// yaml.v3.
var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// dateLayouts are the accepted spellings of frontmatter dates, tried in
// order. Values without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// rawSeriesRef is the frontmatter shape of a series reference.
type rawSeriesRef struct {
	ID    string `yaml:"id" validate:"required,excludes=/,segment"`
	Part  *int   `yaml:"part" validate:"omitempty,gt=0"`
	Title string `yaml:"title"`
}

// rawCommon holds the fields every collection shares.
type rawCommon struct {
	Title       string        `yaml:"title" validate:"required"`
	Published   string        `yaml:"published" validate:"required"`
	Updated     string        `yaml:"updated"`
	Draft       bool          `yaml:"draft"`
	Description string        `yaml:"description"`
	Tags        []string      `yaml:"tags" validate:"dive,required,notblank,segment"`
	Category    *string       `yaml:"category" validate:"omitempty,segment"`
	Lang        string        `yaml:"lang" validate:"omitempty,oneof=en ne"`
	Pinned      bool          `yaml:"pinned"`
	Permalink   string        `yaml:"permalink"`
	Series      *rawSeriesRef `yaml:"series"`
}

// rawPost is the frontmatter of a blog post.
type rawPost struct {
	Common rawCommon `yaml:",inline"`
}

// rawTab is the frontmatter of a guitar tab.
type rawTab struct {
	Common     rawCommon `yaml:",inline"`
	Artist     string    `yaml:"artist" validate:"required"`
	Album      string    `yaml:"album"`
	Difficulty string    `yaml:"difficulty" validate:"required,oneof=beginner intermediate advanced expert"`
	Tuning     string    `yaml:"tuning"`
	Capo       int       `yaml:"capo" validate:"gte=0,lte=12"`
	Key        string    `yaml:"key"`
	Tempo      int       `yaml:"tempo" validate:"gte=0"`
}

// rawYouTube is the video reference of a music entry.
type rawYouTube struct {
	ID    string `yaml:"id" validate:"required"`
	Title string `yaml:"title"`
}

// rawMusic is the frontmatter of a music video entry.
type rawMusic struct {
	Common         rawCommon  `yaml:",inline"`
	Type           string     `yaml:"type" validate:"omitempty,oneof=cover original jam lesson"`
	YouTube        rawYouTube `yaml:"youtube"`
	OriginalArtist string     `yaml:"originalArtist"`
	OriginalSong   string     `yaml:"originalSong"`
	Gear           []string   `yaml:"gear"`
}

// FieldError lists the frontmatter fields of one file that failed
// validation, keyed by YAML field name.
type FieldError struct {
	Fields map[string]string
}

func (e *FieldError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return "invalid frontmatter: " + strings.Join(parts, "; ")
}

// newValidator returns a validator that reports YAML field names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Values that become a single URL segment.
	v.RegisterValidation("segment", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		return s != "." && s != ".."
	})
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// validate runs struct validation and converts failures to a FieldError.
func validate(v *validator.Validate, raw any) error {
	err := v.Struct(raw)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fe := &FieldError{Fields: make(map[string]string)}
	for _, f := range verrs {
		fe.Fields[fieldPath(f.Namespace())] = describe(f)
	}
	return fe
}

// fieldPath turns a validator namespace into the YAML path an author
// wrote: "rawTab.Common.tags[1]" → "tags[1]".
func fieldPath(ns string) string {
	parts := strings.Split(ns, ".")
	out := make([]string, 0, len(parts))
	for i, p := range parts {
		if i == 0 || p == "Common" {
			continue
		}
		out = append(out, p)
	}
	return strings.Join(out, ".")
}

// describe renders one validation failure for authors.
func describe(f validator.FieldError) string {
	switch f.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + f.Param()
	case "gt":
		return "must be greater than " + f.Param()
	case "gte":
		return "must be at least " + f.Param()
	case "lte":
		return "must be at most " + f.Param()
	case "excludes":
		return "must not contain " + f.Param()
	case "notblank":
		return "must not be blank"
	case "segment":
		return `must not be "." or ".."`
	}
	return "failed " + f.Tag()
}

// parseDate coerces a frontmatter date string.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q (use YYYY-MM-DD or RFC3339)", s)
}

// decode splits and validates the frontmatter of one file for the given
// kind, returning the defaulted metadata, the permalink override and the
// Markdown body.
func decode(v *validator.Validate, kind models.Kind, r io.Reader) (models.Metadata, string, string, error) {
	var (
		meta   models.Metadata
		common *rawCommon
		target any
	)

	post, tab, music := &rawPost{}, &rawTab{}, &rawMusic{}
	switch kind {
	case models.KindPost:
		target, common = post, &post.Common
	case models.KindTab:
		target, common = tab, &tab.Common
	case models.KindMusic:
		target, common = music, &music.Common
	default:
		return meta, "", "", fmt.Errorf("unknown kind %q", kind)
	}

	body, err := frontmatter.MustParse(r, target, yamlFormat)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return meta, "", "", errors.New("frontmatter not found")
		}
		return meta, "", "", fmt.Errorf("parse frontmatter: %w", err)
	}
	if err := validate(v, target); err != nil {
		return meta, "", "", err
	}

	meta, err = common.metadata()
	if err != nil {
		return meta, "", "", err
	}

	switch kind {
	case models.KindTab:
		meta.Tab = tab.meta()
	case models.KindMusic:
		meta.Music = music.meta()
	}
	return meta, strings.TrimSpace(common.Permalink), string(body), nil
}

// metadata applies defaults and date coercion to the shared fields.
func (c *rawCommon) metadata() (models.Metadata, error) {
	published, err := parseDate(c.Published)
	if err != nil {
		return models.Metadata{}, fmt.Errorf("published: %w", err)
	}

	meta := models.Metadata{
		Title:       strings.TrimSpace(c.Title),
		Published:   published,
		Draft:       c.Draft,
		Description: c.Description,
		Tags:        []string{},
		Lang:        c.Lang,
		Pinned:      c.Pinned,
	}
	if meta.Lang == "" {
		meta.Lang = "en"
	}
	for _, tag := range c.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			meta.Tags = append(meta.Tags, tag)
		}
	}
	if c.Category != nil {
		meta.Category = strings.TrimSpace(*c.Category)
	}
	if c.Updated != "" {
		updated, err := parseDate(c.Updated)
		if err != nil {
			return models.Metadata{}, fmt.Errorf("updated: %w", err)
		}
		meta.Updated = &updated
	}
	if c.Series != nil {
		ref := &models.SeriesRef{ID: strings.TrimSpace(c.Series.ID), Title: c.Series.Title}
		if c.Series.Part != nil {
			ref.Part = *c.Series.Part
		}
		meta.Series = ref
	}
	return meta, nil
}

func (t *rawTab) meta() *models.TabMeta {
	tuning := t.Tuning
	if tuning == "" {
		tuning = "standard"
	}
	return &models.TabMeta{
		Artist:     t.Artist,
		Album:      t.Album,
		Difficulty: models.Difficulty(t.Difficulty),
		Tuning:     tuning,
		Capo:       t.Capo,
		Key:        t.Key,
		Tempo:      t.Tempo,
	}
}

func (m *rawMusic) meta() *models.MusicMeta {
	typ := models.MusicType(m.Type)
	if typ == "" {
		typ = models.MusicTypeCover
	}
	gear := m.Gear
	if gear == nil {
		gear = []string{}
	}
	return &models.MusicMeta{
		Type:           typ,
		YouTubeID:      m.YouTube.ID,
		OriginalArtist: m.OriginalArtist,
		OriginalSong:   m.OriginalSong,
		Gear:           gear,
	}
}
