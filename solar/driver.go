// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solar

import (
	"time"

	"cogentcore.org/orrery/metrics"
)

// FrameDuration is the frame duration that the per-frame rates are
// specified for, used when [Driver.TimeScaled] is on.
const FrameDuration = time.Second / 60

// Driver advances a [System] by one frame on every call to [Driver.Step].
// It is driven by the host paint loop and must only be used from it.
type Driver struct {

	// System is the system being animated.
	System *System

	// TimeScaled scales each step by the elapsed time relative to
	// [FrameDuration], so that motion speed does not depend on the
	// display refresh rate. When off, each step advances by exactly
	// one frame's worth of rotation.
	TimeScaled bool

	// Paused stops all motion; steps still update and redraw.
	Paused bool

	// Stats, if non-nil, receives frame statistics.
	Stats *metrics.Frames

	// Redraw, if non-nil, is called at the end of every step.
	Redraw func()

	// Frames is the number of steps done so far.
	Frames int
}

// NewDriver returns a new driver for the given system.
func NewDriver(sy *System) *Driver {
	return &Driver{System: sy}
}

// Step advances every spin and revolution angle, recomputes world
// poses once, records trails if they are enabled, and requests a redraw.
// The delta is the time since the previous step.
func (dr *Driver) Step(delta time.Duration) {
	sy := dr.System
	g := sy.Graph
	if !dr.Paused {
		scale := float32(1)
		if dr.TimeScaled && delta > 0 {
			scale = float32(delta) / float32(FrameDuration)
		}
		for _, b := range sy.Bodies {
			b.Advance(scale)
			b.Apply(g)
		}
	}
	g.UpdateWorld()
	recorded, skipped := 0, 0
	if sy.Trails.Enabled {
		recorded, skipped = sy.Trails.Record(g)
	}
	dr.Frames++
	if dr.Stats != nil {
		dr.Stats.ObserveFrame(delta, recorded, skipped)
	}
	if dr.Redraw != nil {
		dr.Redraw()
	}
}
