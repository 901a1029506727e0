// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/core/math32"
)

// Pose contains the position and orientation of a node,
// relative to its parent for local poses, or to the scene root
// for world poses.
type Pose struct {

	// Pos is the position of the node origin.
	Pos math32.Vector3

	// Quat is the rotation of the node, specified as a quaternion.
	Quat math32.Quat
}

// Defaults sets defaults only if current values are nil.
func (ps *Pose) Defaults() {
	if ps.Quat.IsNil() {
		ps.Quat.SetIdentity()
	}
}

// FromRel sets the pose from a pose relative to the given parent pose.
// The parent rotation is applied after the relative one, so the world
// rotation of a node is the product of all of its ancestor rotations.
func (ps *Pose) FromRel(rel, par *Pose) {
	ps.Quat = par.Quat.Mul(rel.Quat)
	ps.Pos = rel.Pos.MulQuat(par.Quat).Add(par.Pos)
}

// SetAxisRotation sets rotation from local axis and angle in degrees.
func (ps *Pose) SetAxisRotation(x, y, z, angle float32) {
	ps.Quat.SetFromAxisAngle(math32.Vec3(x, y, z), math32.DegToRad(angle))
}

// SetAxisRotationRad sets rotation from local axis and angle in radians.
func (ps *Pose) SetAxisRotationRad(x, y, z, angle float32) {
	ps.Quat.SetFromAxisAngle(math32.Vec3(x, y, z), angle)
}
