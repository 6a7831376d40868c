// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package urlpath maps entry ids and taxonomy values to canonical
// site-relative paths. Every path carries the configured base prefix and
// ends with a trailing slash, matching the generator's routing.
package urlpath

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrMalformed is returned when a value cannot form a path. It marks a
// caller bug, not a runtime condition.
var ErrMalformed = errors.New("malformed path value")

// Kind selects the route family a value belongs to.
type Kind string

const (
	Post       Kind = "post"
	Tab        Kind = "tab"
	Music      Kind = "music"
	Category   Kind = "category"
	Tag        Kind = "tag"
	Series     Kind = "series"
	Collection Kind = "collection"
)

// segments holds the leading path segment for each kind.
var segments = map[Kind]string{
	Post:     "posts",
	Tab:      "tabs",
	Music:    "music",
	Category: "categories",
	Tag:      "tags",
	Series:   "series",
}

// Mapper builds paths under a single base prefix.
type Mapper struct {
	base string // always "/" or "/seg/.../"
}

// New returns a Mapper for the given base path. "", "/" and "blog-site/"
// are all accepted; the stored form is "/" or "/blog-site/".
func New(base string) *Mapper {
	trimmed := strings.Trim(strings.TrimSpace(base), "/")
	if trimmed == "" {
		return &Mapper{base: "/"}
	}
	return &Mapper{base: "/" + trimmed + "/"}
}

// Base returns the normalised base prefix.
func (m *Mapper) Base() string {
	return m.base
}

// Home returns the site root path.
func (m *Mapper) Home() string {
	return m.base
}

// Resolve returns the canonical path for value under kind. Category and
// tag values are lower-cased before escaping so that "DevOps" and "devops"
// share one URL. Entry ids may contain "/" separated segments.
func (m *Mapper) Resolve(kind Kind, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s: empty value: %w", kind, ErrMalformed)
	}

	switch kind {
	case Post, Tab, Music:
		escaped, err := escapeID(value)
		if err != nil {
			return "", fmt.Errorf("%s %q: %w", kind, value, err)
		}
		return m.base + segments[kind] + "/" + escaped + "/", nil
	case Category, Tag:
		canonical := Canonical(value)
		if isRelative(canonical) {
			return "", fmt.Errorf("%s %q: relative segment: %w", kind, value, ErrMalformed)
		}
		return m.base + segments[kind] + "/" + url.PathEscape(canonical) + "/", nil
	case Series:
		if strings.Contains(value, "/") {
			return "", fmt.Errorf("series %q: contains slash: %w", value, ErrMalformed)
		}
		if isRelative(value) {
			return "", fmt.Errorf("series %q: relative segment: %w", value, ErrMalformed)
		}
		return m.base + segments[kind] + "/" + url.PathEscape(value) + "/", nil
	case Collection:
		escaped, err := escapeID(value)
		if err != nil {
			return "", fmt.Errorf("collection %q: %w", value, err)
		}
		return m.base + escaped + "/", nil
	}
	return "", fmt.Errorf("unknown kind %q: %w", kind, ErrMalformed)
}

// Path is Resolve for callers that hold validated values. It panics on a
// malformed value.
func (m *Mapper) Path(kind Kind, value string) string {
	p, err := m.Resolve(kind, value)
	if err != nil {
		panic(err)
	}
	return p
}

// PagePath returns the path of page n of a paginated collection. Page 1
// (and anything below) is the bare collection path.
func (m *Mapper) PagePath(collection string, n int) string {
	root := m.Path(Collection, collection)
	if n <= 1 {
		return root
	}
	return root + "page/" + strconv.Itoa(n) + "/"
}

// Canonical returns the form a taxonomy value takes inside URLs and
// lookups.
func Canonical(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Absolute joins a site origin such as "https://example.com" with a path
// produced by this package.
func Absolute(siteURL, path string) string {
	return strings.TrimRight(siteURL, "/") + path
}

// escapeID escapes each "/" separated segment of an id and rejects empty
// or relative segments.
func escapeID(id string) (string, error) {
	parts := strings.Split(strings.Trim(id, "/"), "/")
	for i, p := range parts {
		if p == "" || isRelative(p) {
			return "", ErrMalformed
		}
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/"), nil
}

// isRelative reports whether a path segment is "." or "..".
func isRelative(seg string) bool {
	return seg == "." || seg == ".."
}
