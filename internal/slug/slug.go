// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns titles and content file paths into URL-friendly ids.
package slug

import (
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, hyphen or whitespace.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s_-]`)
	// separators matches runs of whitespace and underscores.
	separators = regexp.MustCompile(`[\s_]+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = separators.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// FromPath derives an entry id from a content file path relative to its
// collection root: the extension is dropped and every directory segment
// is slugged. "Guides/My First Post.md" → "guides/my-first-post".
// A trailing "index" segment names its directory.
func FromPath(rel string) string {
	rel = strings.ReplaceAll(rel, "\\", "/")
	rel = strings.TrimSuffix(rel, path.Ext(rel))

	var parts []string
	for _, seg := range strings.Split(rel, "/") {
		if s := Generate(seg); s != "" {
			parts = append(parts, s)
		}
	}
	if n := len(parts); n > 1 && parts[n-1] == "index" {
		parts = parts[:n-1]
	}
	return strings.Join(parts, "/")
}

// Title makes a display title out of a file name stem:
// "getting_started-guide" → "Getting Started Guide".
func Title(stem string) string {
	stem = strings.TrimSuffix(path.Base(strings.ReplaceAll(stem, "\\", "/")), path.Ext(stem))
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(stem))
	return cases.Title(language.English).String(strings.Join(words, " "))
}
