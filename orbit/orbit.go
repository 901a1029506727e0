// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package orbit generates the decorative orbit paths drawn around
// orbiting bodies: closed, planar ellipses sampled at uniform angles.
package orbit

import (
	"fmt"
	"image/color"
	"math"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
)

// DefaultSamples is the default number of points in an orbit path.
const DefaultSamples = 100

// ErrInvalid is returned for orbit parameters that cannot describe a path.
var ErrInvalid = errors.New("orbit: invalid parameters")

// Style is how an orbit path is drawn.
type Style struct {

	// Color of the line.
	Color color.RGBA

	// Width of the line, in scene units.
	Width float32
}

// DefaultStyle returns the default orbit line style: a thin, translucent white.
func DefaultStyle() Style {
	return Style{Color: color.RGBA{255, 255, 255, 96}, Width: 0.15}
}

// Path is an immutable closed orbit path in the XZ plane of its parent.
// The loop is closed by drawing, not by repeating the first point.
type Path struct {

	// Radius is the semi-axis along X.
	Radius float32

	// Ratio is the ratio of the Z semi-axis to the X semi-axis.
	Ratio float32

	// Points are the sampled points, in order of increasing angle.
	Points []math32.Vector3

	// Style is how the path is drawn.
	Style Style
}

// New returns a new [Path] for the given parameters; see [Generate].
func New(radius, ratio float32, samples int, style Style) (*Path, error) {
	pts, err := Generate(radius, ratio, samples)
	if err != nil {
		return nil, err
	}
	return &Path{Radius: radius, Ratio: ratio, Points: pts, Style: style}, nil
}

// Generate samples the ellipse x = r cos θ, z = r ratio sin θ at the given
// number of angles uniformly spaced over [0, 2π). The radius must be positive,
// the ratio in (0, 1], and there must be at least 3 samples.
func Generate(radius, ratio float32, samples int) ([]math32.Vector3, error) {
	switch {
	case !finite(radius) || radius <= 0:
		return nil, fmt.Errorf("%w: radius %g must be positive", ErrInvalid, radius)
	case !finite(ratio) || ratio <= 0 || ratio > 1:
		return nil, fmt.Errorf("%w: ratio %g must be in (0, 1]", ErrInvalid, ratio)
	case samples < 3:
		return nil, fmt.Errorf("%w: %d samples, need at least 3", ErrInvalid, samples)
	}
	r := float64(radius)
	rz := r * float64(ratio)
	pts := make([]math32.Vector3, samples)
	for i := range pts {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(samples))
		pts[i] = math32.Vec3(float32(r*cos), 0, float32(rz*sin))
	}
	return pts, nil
}

// Len returns the number of points.
func (p *Path) Len() int {
	return len(p.Points)
}

// Extent returns the bounding box of the path points.
func (p *Path) Extent() math32.Box3 {
	var bb math32.Box3
	bb.SetFromPoints(p.Points)
	return bb
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}
