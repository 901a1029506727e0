// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import (
	"fmt"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
)

// ErrBadSize is returned when resizing to a zero or negative size.
var ErrBadSize = errors.New("camera: viewport size must be positive")

// Projection is a perspective projection whose aspect ratio
// follows the size of the viewport.
type Projection struct {

	// FOV is the vertical field of view, in degrees.
	FOV float32 `default:"45"`

	// Aspect is the width over height aspect ratio.
	Aspect float32

	// Near is the distance of the near clipping plane.
	Near float32 `default:"0.1"`

	// Far is the distance of the far clipping plane.
	Far float32 `default:"1000"`

	// Width and Height are the current viewport size in pixels.
	Width, Height int

	// Matrix is the projection matrix.
	Matrix math32.Matrix4

	// Recomputes is the number of times the matrix has been computed.
	Recomputes int
}

// NewProjection returns a projection with default parameters
// for a viewport of the given size.
func NewProjection(width, height int) (*Projection, error) {
	pj := &Projection{}
	pj.Defaults()
	if err := pj.Resize(width, height); err != nil {
		return nil, err
	}
	return pj, nil
}

// Defaults sets a 45 degree field of view, a 0.1 to 1000 depth range
// and a square aspect ratio.
func (pj *Projection) Defaults() {
	pj.FOV = 45
	pj.Near = 0.1
	pj.Far = 1000
	pj.Aspect = 1
}

// Resize sets the viewport size and aspect ratio and recomputes
// the matrix once. The projection is unchanged on error.
func (pj *Projection) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadSize, width, height)
	}
	pj.Width, pj.Height = width, height
	pj.Aspect = float32(width) / float32(height)
	pj.Update()
	return nil
}

// Update recomputes the projection matrix from the current parameters.
func (pj *Projection) Update() {
	pj.Matrix.SetPerspective(pj.FOV, pj.Aspect, pj.Near, pj.Far)
	pj.Recomputes++
}
