// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trail records the recent world positions of moving bodies
// and turns them into polylines for drawing.
package trail

import (
	"cogentcore.org/core/math32"
)

// DefaultCapacity is the default number of positions kept per trail.
const DefaultCapacity = 300

// Trail is a bounded first-in first-out history of positions,
// stored in a ring buffer so that adding never reallocates.
type Trail struct {

	// Name is the name of the body being traced.
	Name string

	ring  []math32.Vector3
	start int
	n     int

	// line is the reusable polyline buffer.
	line []math32.Vector3
}

// New returns a new trail with the given capacity, or
// [DefaultCapacity] if it is not positive.
func New(name string, capacity int) *Trail {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Trail{
		Name: name,
		ring: make([]math32.Vector3, capacity),
		line: make([]math32.Vector3, 0, capacity),
	}
}

// Cap returns the maximum number of positions kept.
func (tr *Trail) Cap() int {
	return len(tr.ring)
}

// Len returns the number of positions currently kept.
func (tr *Trail) Len() int {
	return tr.n
}

// Add appends a position, evicting the oldest one when full.
func (tr *Trail) Add(p math32.Vector3) {
	c := len(tr.ring)
	if tr.n < c {
		tr.ring[(tr.start+tr.n)%c] = p
		tr.n++
		return
	}
	tr.ring[tr.start] = p
	tr.start = (tr.start + 1) % c
}

// At returns the i-th kept position, where 0 is the oldest.
func (tr *Trail) At(i int) math32.Vector3 {
	return tr.ring[(tr.start+i)%len(tr.ring)]
}

// Points returns a copy of the kept positions, oldest first.
func (tr *Trail) Points() []math32.Vector3 {
	pts := make([]math32.Vector3, tr.n)
	for i := range pts {
		pts[i] = tr.At(i)
	}
	return pts
}

// Polyline rebuilds the draw buffer from exactly the kept positions,
// oldest first. The returned slice is reused by the next call.
func (tr *Trail) Polyline() []math32.Vector3 {
	tr.line = tr.line[:0]
	for i := 0; i < tr.n; i++ {
		tr.line = append(tr.line, tr.At(i))
	}
	return tr.line
}
