// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package site

import "sync/atomic"

// Holder publishes the current Site to concurrent readers. A reload
// builds a new Site and swaps it in; readers keep whatever snapshot they
// already loaded.
type Holder struct {
	current atomic.Pointer[Site]
}

// NewHolder returns a Holder serving s.
func NewHolder(s *Site) *Holder {
	h := &Holder{}
	h.current.Store(s)
	return h
}

// Load returns the current snapshot.
func (h *Holder) Load() *Site {
	return h.current.Load()
}

// Swap replaces the snapshot and returns the previous one.
func (h *Holder) Swap(s *Site) *Site {
	return h.current.Swap(s)
}
