// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package camera provides the camera rig that is pointed at a selected
// body, and the perspective projection that follows the viewport size.
package camera

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/orrery/scene"
)

// DefaultOffset is the default position of the camera relative to the rig pivot.
var DefaultOffset = math32.Vec3(-90, 140, 140)

// Controls is an interactive orbit-style camera control that keeps
// internal state about the eye and target positions. It must recompute
// that state whenever they are changed from outside.
type Controls interface {
	Update(eye, target math32.Vector3)
}

// Rig is a pivot node holding the camera node, plus the target point
// of the interactive controls. It only moves when [Rig.Focus] is called;
// it does not follow the focused node afterward.
type Rig struct {

	// Graph is the graph holding the rig nodes.
	Graph *scene.Graph

	// Pivot is the rig pivot node, directly under the root.
	Pivot scene.Handle

	// Camera is the camera node, offset from the pivot.
	Camera scene.Handle

	// Target is the target point of the controls, in world coordinates.
	Target math32.Vector3

	// Controls, if non-nil, are updated once on every focus.
	Controls Controls

	// Focused is the last focused node, or [scene.NoHandle].
	Focused scene.Handle
}

// NewRig adds the rig pivot and camera nodes under the root of the
// given graph, with the camera at the given offset from the pivot.
func NewRig(g *scene.Graph, offset math32.Vector3) (*Rig, error) {
	rg := &Rig{Graph: g, Focused: scene.NoHandle}
	var err error
	if rg.Pivot, err = g.Add(g.Root(), "camera-pivot", scene.Group); err != nil {
		return nil, err
	}
	if rg.Camera, err = g.Add(rg.Pivot, "camera", scene.Camera); err != nil {
		return nil, err
	}
	g.Node(rg.Camera).Pose.Pos = offset
	return rg, nil
}

// Eye returns the world position of the camera from the current
// local poses, without requiring a world update.
func (rg *Rig) Eye() math32.Vector3 {
	pv := &rg.Graph.Node(rg.Pivot).Pose
	cam := rg.Graph.Node(rg.Camera).Pose.Pos
	return cam.MulQuat(pv.Quat).Add(pv.Pos)
}

// Focus snaps the rig onto the current world position of the given
// node: the position is copied onto the pivot and onto the control
// target, and the controls are updated exactly once.
func (rg *Rig) Focus(h scene.Handle) error {
	pos, err := rg.Graph.WorldPos(h)
	if err != nil {
		return err
	}
	rg.Graph.Node(rg.Pivot).Pose.Pos = pos
	rg.Target = pos
	rg.Focused = h
	if rg.Controls != nil {
		rg.Controls.Update(rg.Eye(), rg.Target)
	}
	return nil
}
