// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trail

import (
	"log/slog"

	"cogentcore.org/core/math32"
	"cogentcore.org/orrery/scene"
)

// Positioner provides world positions of scene nodes.
// [scene.Graph] is the standard implementation.
type Positioner interface {
	WorldPos(h scene.Handle) (math32.Vector3, error)
}

// Set is the collection of trails of all traced bodies.
type Set struct {

	// Enabled is whether trails are recorded. Buffers are kept
	// when disabled, so toggling back resumes the same trails.
	Enabled bool

	// Capacity is the capacity of new trails.
	Capacity int

	trails  []*Trail
	handles []scene.Handle
}

// NewSet returns a new, disabled set whose trails have the given capacity.
func NewSet(capacity int) *Set {
	return &Set{Capacity: capacity}
}

// Track adds a trail for the node with the given handle.
func (ts *Set) Track(name string, h scene.Handle) *Trail {
	tr := New(name, ts.Capacity)
	ts.trails = append(ts.trails, tr)
	ts.handles = append(ts.handles, h)
	return tr
}

// Trails returns the trails in the order they were added.
func (ts *Set) Trails() []*Trail {
	return ts.trails
}

// ByName returns the trail for the body with the given name, or nil.
func (ts *Set) ByName(name string) *Trail {
	for _, tr := range ts.trails {
		if tr.Name == name {
			return tr
		}
	}
	return nil
}

// Toggle flips [Set.Enabled] and returns the new value.
func (ts *Set) Toggle() bool {
	ts.Enabled = !ts.Enabled
	return ts.Enabled
}

// Record samples the current world position of every traced node
// and rebuilds each polyline. A node whose position cannot be read
// is skipped for this frame without affecting the others.
func (ts *Set) Record(src Positioner) (recorded, skipped int) {
	for i, tr := range ts.trails {
		pos, err := src.WorldPos(ts.handles[i])
		if err != nil {
			slog.Debug("trail: skipping sample", "body", tr.Name, "err", err)
			skipped++
			continue
		}
		tr.Add(pos)
		tr.Polyline()
		recorded++
	}
	return
}
