// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solar

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/orrery/scene"
)

// Body is a celestial body in the scene graph. Each body owns three nodes:
// a pivot whose rotation revolves the body around its parent, a frame
// offset from the pivot by the orbital distance, and the body node itself,
// which carries the axial tilt and spin. Moons are added under the frame,
// so a planet's spin never changes the orbits around it.
type Body struct {

	// Config is the configuration the body was built from.
	Config *BodyConfig

	// Pivot is the orbital pivot node.
	Pivot scene.Handle

	// Frame is the node at the orbital distance from the pivot,
	// under which the body node and any moon pivots are added.
	Frame scene.Handle

	// Node is the renderable body node.
	Node scene.Handle

	// Ring is the renderable ring node, or [scene.NoHandle].
	// It is turned so that its local XY plane is the equator of the body.
	Ring scene.Handle

	// Spin is the current axial rotation angle, in radians in [0, 2π).
	Spin float32

	// Revolution is the current orbital angle, in radians in [0, 2π).
	Revolution float32

	tilt math32.Quat
}

// Name returns the name of the body.
func (b *Body) Name() string {
	return b.Config.Name
}

// NewBody adds the nodes for a new body under the given parent node,
// which is the frame of the body it orbits, or the root for the central
// body. The body is placed at its orbital distance along +X and tilted
// about +Z by its axial tilt. Inputs are assumed to be validated.
func NewBody(g *scene.Graph, parent scene.Handle, bc *BodyConfig) (*Body, error) {
	b := &Body{Config: bc, Ring: scene.NoHandle}
	var err error
	if b.Pivot, err = g.Add(parent, bc.Name+"-pivot", scene.Group); err != nil {
		return nil, err
	}
	if b.Frame, err = g.Add(b.Pivot, bc.Name+"-frame", scene.Group); err != nil {
		return nil, err
	}
	g.Node(b.Frame).Pose.Pos = math32.Vec3(bc.Distance, 0, 0)
	if b.Node, err = g.Add(b.Frame, bc.Name, scene.Solid); err != nil {
		return nil, err
	}
	b.tilt.SetFromAxisAngle(math32.Vec3(0, 0, 1), math32.DegToRad(bc.Tilt))
	if bc.Ring != nil {
		if b.Ring, err = g.Add(b.Node, bc.Name+"-ring", scene.Solid); err != nil {
			return nil, err
		}
		// ring meshes are built in the XY plane
		g.Node(b.Ring).Pose.SetAxisRotation(1, 0, 0, -90)
	}
	b.Apply(g)
	return b, nil
}

// Advance advances the spin and revolution angles by their per-frame
// rates multiplied by the given scale, wrapping them into [0, 2π).
func (b *Body) Advance(scale float32) {
	b.Spin = wrapAngle(b.Spin + b.Config.Spin*scale)
	b.Revolution = wrapAngle(b.Revolution + b.Config.Revolution*scale)
}

// Apply sets the local rotations of the pivot and body nodes
// from the current angles.
func (b *Body) Apply(g *scene.Graph) {
	g.Node(b.Pivot).Pose.SetAxisRotationRad(0, 1, 0, b.Revolution)
	spin := math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), b.Spin)
	g.Node(b.Node).Pose.Quat = b.tilt.Mul(spin)
}

func wrapAngle(a float32) float32 {
	a = math32.Mod(a, 2*math32.Pi)
	if a < 0 {
		a += 2 * math32.Pi
	}
	return a
}
