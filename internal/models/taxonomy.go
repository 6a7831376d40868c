// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Uncategorized is the label used for entries without a category.
const Uncategorized = "Uncategorized"

// TaxonomyCount is a derived per-key count (tag, category or series) with
// the canonical URL of its listing page. Recomputed on every query.
type TaxonomyCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	URL   string `json:"url"`
}
