// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package query

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidPageSize is returned for a page size below 1.
	ErrInvalidPageSize = errors.New("page size must be positive")
	// ErrPageOutOfRange is returned for a page outside [1, TotalPages].
	// Page 1 of an empty collection is not out of range.
	ErrPageOutOfRange = errors.New("page out of range")
)

// Page is one slice of a paginated sequence.
type Page[T any] struct {
	Items      []T `json:"items"`
	Number     int `json:"page"`
	Size       int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// HasPrev reports whether a page precedes this one.
func (p Page[T]) HasPrev() bool {
	return p.Number > 1
}

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool {
	return p.Number < p.TotalPages
}

// TotalPages returns ceil(n / pageSize), or 0 for a non-positive size.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// Paginate returns the 1-based page of items. Out-of-range pages fail
// with ErrPageOutOfRange; the only exception is page 1 of an empty
// sequence, which is an empty page with TotalPages 0.
func Paginate[T any](items []T, page, pageSize int) (Page[T], error) {
	if pageSize <= 0 {
		return Page[T]{}, fmt.Errorf("paginate: size %d: %w", pageSize, ErrInvalidPageSize)
	}

	total := TotalPages(len(items), pageSize)
	result := Page[T]{
		Number:     page,
		Size:       pageSize,
		TotalItems: len(items),
		TotalPages: total,
	}

	if page == 1 && total == 0 {
		result.Items = []T{}
		return result, nil
	}
	if page < 1 || page > total {
		return Page[T]{}, fmt.Errorf("paginate: page %d of %d: %w", page, total, ErrPageOutOfRange)
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(items))
	result.Items = slices.Clone(items[start:end])
	return result, nil
}
