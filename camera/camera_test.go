// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import (
	"testing"

	"cogentcore.org/core/math32"
	"cogentcore.org/orrery/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordControls struct {
	calls       int
	eye, target math32.Vector3
}

func (rc *recordControls) Update(eye, target math32.Vector3) {
	rc.calls++
	rc.eye, rc.target = eye, target
}

func TestFocusSnapsOnce(t *testing.T) {
	g := scene.NewGraph()
	pivot, err := g.Add(g.Root(), "pivot", scene.Group)
	require.NoError(t, err)
	body, err := g.Add(pivot, "body", scene.Solid)
	require.NoError(t, err)
	g.Node(body).Pose.Pos = math32.Vec3(30, 0, 0)

	rg, err := NewRig(g, DefaultOffset)
	require.NoError(t, err)
	rc := &recordControls{}
	rg.Controls = rc
	g.UpdateWorld()

	require.NoError(t, rg.Focus(body))
	assert.Equal(t, 1, rc.calls)
	assert.InDelta(t, 30, rg.Target.X, 1e-5)
	assert.Equal(t, rg.Target, rc.target)
	assert.InDelta(t, 30-90, rc.eye.X, 1e-4)
	assert.InDelta(t, 140, rc.eye.Y, 1e-4)
	assert.InDelta(t, 140, rc.eye.Z, 1e-4)
	assert.Equal(t, body, rg.Focused)

	// the body moves on, the rig stays
	g.Node(pivot).Pose.SetAxisRotation(0, 1, 0, 90)
	g.UpdateWorld()
	moved, err := g.WorldPos(body)
	require.NoError(t, err)
	assert.InDelta(t, -30, moved.Z, 1e-4)
	assert.InDelta(t, 30, rg.Target.X, 1e-5)
	assert.InDelta(t, 0, rg.Target.Z, 1e-5)
	assert.Equal(t, 1, rc.calls)

	pv, err := g.WorldPos(rg.Pivot)
	require.NoError(t, err)
	assert.InDelta(t, 30, pv.X, 1e-5)
}

func TestFocusDetached(t *testing.T) {
	g := scene.NewGraph()
	body, err := g.Add(g.Root(), "body", scene.Solid)
	require.NoError(t, err)
	rg, err := NewRig(g, DefaultOffset)
	require.NoError(t, err)
	rc := &recordControls{}
	rg.Controls = rc
	require.NoError(t, g.Detach(body))
	g.UpdateWorld()

	assert.ErrorIs(t, rg.Focus(body), scene.ErrDetached)
	assert.ErrorIs(t, rg.Focus(scene.Handle(99)), scene.ErrInvalidHandle)
	assert.Equal(t, 0, rc.calls)
	assert.Equal(t, scene.NoHandle, rg.Focused)
}

func TestResize(t *testing.T) {
	pj, err := NewProjection(800, 600)
	require.NoError(t, err)
	assert.Equal(t, 1, pj.Recomputes)
	assert.InDelta(t, 800.0/600.0, pj.Aspect, 1e-6)

	require.NoError(t, pj.Resize(1920, 1080))
	assert.Equal(t, 2, pj.Recomputes)
	assert.InDelta(t, 1920.0/1080.0, pj.Aspect, 1e-6)

	var want math32.Matrix4
	want.SetPerspective(45, 1920.0/1080.0, 0.1, 1000)
	assert.Equal(t, want, pj.Matrix)

	for _, sz := range [][2]int{{0, 10}, {10, 0}, {-5, 10}} {
		assert.ErrorIs(t, pj.Resize(sz[0], sz[1]), ErrBadSize)
	}
	assert.Equal(t, 2, pj.Recomputes)
	assert.Equal(t, 1920, pj.Width)

	_, err = NewProjection(0, 0)
	assert.ErrorIs(t, err, ErrBadSize)
}
