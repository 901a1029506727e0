// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"
	"cogentcore.org/orrery/assets"
	"cogentcore.org/orrery/camera"
	"cogentcore.org/orrery/solar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newView(t *testing.T, fsys fstest.MapFS) *View {
	t.Helper()
	sy, err := solar.Build(solar.Default())
	require.NoError(t, err)
	return New(sy, xyz.NewScene(), assets.NewLoader(fsys))
}

func TestTextureSwap(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 8))
	blue := color.RGBA{0, 0, 255, 255}
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			img.SetRGBA(x, y, blue)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	vw := newView(t, fstest.MapFS{"earth.jpg": {Data: buf.Bytes()}})
	earth := vw.System.Body("Earth").Config

	tx := vw.texture(earth.Texture, earth.PlaceholderColor())
	require.NotNil(t, tx)
	assert.Same(t, tx, vw.texture(earth.Texture, earth.PlaceholderColor()))
	assert.Equal(t, earth.PlaceholderColor(), tx.RGBA.RGBAAt(0, 0))

	missing := vw.texture("mars.jpg", color.RGBA{200, 0, 0, 255})
	assert.Nil(t, vw.texture("", color.RGBA{}))

	vw.Loader.Wait()
	vw.Loader.Poll()
	assert.Equal(t, image.Pt(16, 8), tx.RGBA.Bounds().Size())
	assert.Equal(t, blue, tx.RGBA.RGBAAt(3, 3))
	assert.Equal(t, color.RGBA{200, 0, 0, 255}, missing.RGBA.RGBAAt(0, 0))
	assert.Equal(t, 1, vw.Loader.Failed)
}

func TestControls(t *testing.T) {
	vw := newView(t, fstest.MapFS{})
	sy := vw.System
	sy.Rig.Controls = &Controls{Scene: vw.Scene}
	require.NoError(t, sy.Focus(sy.Body("Jupiter")))
	want := math32.Vec3(150-90, 140, 140)
	got := vw.Scene.Camera.Pose.Pos
	assert.InDelta(t, want.X, got.X, 1e-3)
	assert.InDelta(t, want.Y, got.Y, 1e-3)
	assert.InDelta(t, want.Z, got.Z, 1e-3)
}

func TestResize(t *testing.T) {
	vw := newView(t, fstest.MapFS{})
	require.NoError(t, vw.Resize(image.Pt(1000, 500)))
	assert.Equal(t, 1, vw.Projection.Recomputes)
	assert.Equal(t, float32(2), vw.Projection.Aspect)

	require.NoError(t, vw.Resize(image.Pt(1000, 500)))
	assert.Equal(t, 1, vw.Projection.Recomputes)

	assert.ErrorIs(t, vw.Resize(image.Pt(0, 500)), camera.ErrBadSize)
	assert.Equal(t, 1, vw.Projection.Recomputes)
	assert.Equal(t, float32(2), vw.Projection.Aspect)
}

func assertNear(t *testing.T, want, got math32.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-3)
	assert.InDelta(t, want.Y, got.Y, 1e-3)
	assert.InDelta(t, want.Z, got.Z, 1e-3)
}

func TestSync(t *testing.T) {
	vw := newView(t, fstest.MapFS{})
	sy := vw.System
	vw.Init()
	assert.Len(t, vw.Solids, len(sy.Bodies)+len(sy.Orbits)+2)
	assert.Len(t, vw.Scene.Children, len(vw.Solids))
	require.Contains(t, vw.Solids, "stars")
	require.Contains(t, vw.Solids, "Saturn-ring")
	for _, o := range sy.Orbits {
		assert.Contains(t, vw.Solids, o.Body.Name()+"-orbit")
	}

	dr := solar.NewDriver(sy)
	dr.Redraw = vw.Sync
	for range 5 {
		dr.Step(solar.FrameDuration)
	}
	for _, b := range sy.Bodies {
		sld := vw.Solids[b.Name()]
		require.NotNil(t, sld, b.Name())
		wp, err := sy.Graph.WorldPose(b.Node)
		require.NoError(t, err)
		assertNear(t, wp.Pos, sld.Pose.Pos)
		assert.Equal(t, wp.Quat, sld.Pose.Quat)
	}
	for _, o := range sy.Orbits {
		wp, err := sy.Graph.WorldPos(o.Node)
		require.NoError(t, err)
		assertNear(t, wp, vw.Solids[o.Body.Name()+"-orbit"].Pose.Pos)
	}
	saturn := sy.Body("Saturn")
	ring := vw.Solids["Saturn-ring"]
	wp, err := sy.Graph.WorldPose(saturn.Ring)
	require.NoError(t, err)
	assert.Equal(t, wp.Quat, ring.Pose.Quat)
	assert.Equal(t, math32.Vec3(1, 1, RingThickness), ring.Pose.Scale)

	// the ring axis is the axis of the planet
	up, err := sy.Graph.WorldPose(saturn.Node)
	require.NoError(t, err)
	assertNear(t, math32.Vec3(0, 1, 0).MulQuat(up.Quat), math32.Vec3(0, 0, 1).MulQuat(ring.Pose.Quat))
}

func TestSyncTrails(t *testing.T) {
	vw := newView(t, fstest.MapFS{})
	sy := vw.System
	vw.Init()
	dr := solar.NewDriver(sy)
	dr.Redraw = vw.Sync
	dr.Step(solar.FrameDuration)
	assert.NotContains(t, vw.Solids, "Earth-trail")

	sy.Trails.Toggle()
	dr.Step(solar.FrameDuration)
	assert.NotContains(t, vw.Solids, "Earth-trail")
	dr.Step(solar.FrameDuration)
	require.Contains(t, vw.Solids, "Earth-trail")
	for _, tr := range sy.Trails.Trails() {
		sld := vw.Solids[tr.Name+"-trail"]
		require.NotNil(t, sld, tr.Name)
		assert.NotNil(t, sld.Mesh)
		assert.GreaterOrEqual(t, tr.Len(), 2)
	}

	sy.Trails.Toggle()
	dr.Step(solar.FrameDuration)
	assert.NotContains(t, vw.Solids, "Earth-trail")
	assert.Equal(t, 2, sy.Trails.ByName("Earth").Len())
}

func TestStarsFollowCamera(t *testing.T) {
	vw := newView(t, fstest.MapFS{})
	sy := vw.System
	vw.Init()
	require.NoError(t, sy.Focus(sy.Body("Neptune")))
	vw.Sync()
	eye := vw.Scene.Camera.Pose.Pos
	assert.Greater(t, eye.Length(), float32(240))
	assert.Equal(t, eye, vw.Solids["stars"].Pose.Pos)
	assert.Less(t, float32(StarsRadius), vw.Scene.Camera.Far)
}
