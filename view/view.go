// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package view renders a [solar.System] in an [xyz.Scene]. The scene
// graph computes all world poses, so every renderable node is mirrored
// as a top-level xyz solid that is given its world pose on each update.
package view

import (
	"image"
	"image/color"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/tree"
	"cogentcore.org/core/xyz"
	"cogentcore.org/orrery/assets"
	"cogentcore.org/orrery/camera"
	"cogentcore.org/orrery/input"
	"cogentcore.org/orrery/orbit"
	"cogentcore.org/orrery/scene"
	"cogentcore.org/orrery/solar"
	"cogentcore.org/orrery/trail"
)

const (
	// StarsRadius is the radius of the sphere the starfield is drawn on,
	// inside the far clipping plane. The sphere is kept centered on the camera.
	StarsRadius = 900

	// SphereSegments is the number of segments of body spheres.
	SphereSegments = 32

	// AmbientLumens is the brightness of the ambient light.
	AmbientLumens = 2

	// RingThickness is the scale of the ring torus along its axis.
	RingThickness = 0.02
)

// TrailColor is the color of trail lines.
var TrailColor = color.RGBA{255, 255, 255, 160}

// View mirrors a [solar.System] into an [xyz.Scene].
type View struct {

	// System is the system being rendered.
	System *solar.System

	// Scene is the xyz scene rendered into.
	Scene *xyz.Scene

	// Loader loads the textures.
	Loader *assets.Loader

	// Projection follows the size of the scene.
	Projection *camera.Projection

	// Solids are the solids by name, as of the last [View.Sync].
	Solids map[string]*xyz.Solid

	textures map[string]*xyz.TextureBase
}

// New returns a new view of the given system in the given scene,
// with textures loaded by the given loader.
func New(sy *solar.System, sc *xyz.Scene, ld *assets.Loader) *View {
	pj := &camera.Projection{}
	pj.Defaults()
	return &View{
		System:     sy,
		Scene:      sc,
		Loader:     ld,
		Projection: pj,
		Solids:     map[string]*xyz.Solid{},
		textures:   map[string]*xyz.TextureBase{},
	}
}

// Init sets up the lights, meshes, textures and camera, points the
// camera rig controls at the scene camera, and builds the solids.
func (vw *View) Init() {
	sy := vw.System
	sc := vw.Scene
	sc.Background = colors.Uniform(color.Black)
	xyz.NewAmbient(sc, "ambient", AmbientLumens, xyz.DirectSun)

	xyz.NewSphere(sc, "stars", StarsRadius, SphereSegments)
	for _, b := range sy.Bodies {
		bc := b.Config
		xyz.NewSphere(sc, meshName(bc.Name), bc.Radius, SphereSegments)
		vw.texture(bc.Texture, bc.PlaceholderColor())
		if rc := bc.Ring; rc != nil {
			xyz.NewTorus(sc, meshName(bc.Name+"-ring"), (rc.Inner+rc.Outer)/2, (rc.Outer-rc.Inner)/2, SphereSegments*2)
			vw.texture(rc.Texture, solar.DefaultColor)
		}
	}
	for _, o := range sy.Orbits {
		st := o.Path.Style
		xyz.NewLines(sc, meshName(o.Body.Name()+"-orbit"), o.Path.Points, math32.Vec2(st.Width, st.Width), xyz.CloseLines)
	}
	vw.texture(sy.Config.Background, color.RGBA{0, 0, 8, 255})

	sc.Camera.FOV = vw.Projection.FOV
	sc.Camera.Near = vw.Projection.Near
	sc.Camera.Far = vw.Projection.Far
	sy.Rig.Controls = &Controls{Scene: sc}
	sy.Rig.Controls.Update(sy.Rig.Eye(), sy.Rig.Target)
	sc.SaveCamera("default")

	sc.Maker(vw.makeSolids)
	vw.Sync()
}

func meshName(name string) string {
	return "orrery-" + name
}

// texture adds a texture with a placeholder image and starts loading
// the actual image, which replaces it once delivered.
func (vw *View) texture(name string, placeholder color.RGBA) *xyz.TextureBase {
	if name == "" {
		return nil
	}
	if tx, ok := vw.textures[name]; ok {
		return tx
	}
	fu := vw.Loader.Load(name, placeholder)
	tx := &xyz.TextureBase{Name: name, RGBA: fu.Image()}
	vw.textures[name] = tx
	vw.Scene.SetTexture(tx)
	fu.OnReady(func(img *image.RGBA) {
		tx.RGBA = img
		vw.Scene.SetTexture(tx)
		vw.Scene.SetNeedsUpdate()
	})
	return tx
}

// Texture returns the texture with the given name, or nil.
func (vw *View) Texture(name string) *xyz.TextureBase {
	return vw.textures[name]
}

func (vw *View) makeSolids(p *tree.Plan) {
	sy := vw.System
	cfg := sy.Config
	tree.AddAt(p, "stars", func(sld *xyz.Solid) {
		sld.SetMeshName("stars")
		sld.Material.CullBack = false
		sld.Material.CullFront = true
		sld.Material.Emissive = color.RGBA{255, 255, 255, 255}
		sld.Material.Tiling.Repeat.Set(float32(cfg.BackgroundRepeat), float32(cfg.BackgroundRepeat))
		if tx := vw.Texture(cfg.Background); tx != nil {
			sld.SetTexture(tx)
		}
		sld.Updater(func() {
			sld.Pose.Pos = vw.Scene.Camera.Pose.Pos
		})
	})
	for _, b := range sy.Bodies {
		bc := b.Config
		tree.AddAt(p, bc.Name, func(sld *xyz.Solid) {
			sld.SetMeshName(meshName(bc.Name))
			sld.SetColor(bc.PlaceholderColor())
			if bc.Emissive {
				sld.Material.Emissive = bc.PlaceholderColor()
			}
			if tx := vw.Texture(bc.Texture); tx != nil {
				sld.SetTexture(tx)
			}
			sld.Updater(func() {
				vw.updatePose(&sld.Pose, b.Node)
			})
		})
		if rc := bc.Ring; rc != nil {
			name := bc.Name + "-ring"
			tree.AddAt(p, name, func(sld *xyz.Solid) {
				sld.SetMeshName(meshName(name))
				sld.Material.CullBack = false
				if tx := vw.Texture(rc.Texture); tx != nil {
					sld.SetTexture(tx)
				}
				sld.Updater(func() {
					vw.updatePose(&sld.Pose, b.Ring)
					sld.Pose.Scale.Set(1, 1, RingThickness)
				})
			})
		}
	}
	for _, o := range sy.Orbits {
		name := o.Body.Name() + "-orbit"
		tree.AddAt(p, name, func(sld *xyz.Solid) {
			sld.SetMeshName(meshName(name))
			sld.SetColor(o.Path.Style.Color)
			sld.Updater(func() {
				vw.updatePose(&sld.Pose, o.Node)
			})
		})
	}
	if !sy.Trails.Enabled {
		return
	}
	for _, tr := range sy.Trails.Trails() {
		if tr.Len() < 2 {
			continue
		}
		name := tr.Name + "-trail"
		tree.AddAt(p, name, func(sld *xyz.Solid) {
			sld.SetColor(TrailColor)
			sld.Updater(func() {
				vw.updateTrail(sld, tr)
			})
		})
	}
}

// updatePose sets the pose of a solid to the world pose of the
// given node. Detached nodes keep their last pose.
func (vw *View) updatePose(ps *xyz.Pose, h scene.Handle) {
	wp, err := vw.System.Graph.WorldPose(h)
	if err != nil {
		return
	}
	ps.Pos = wp.Pos
	ps.Quat = wp.Quat
}

// updateTrail replaces the line mesh of a trail solid with the current
// trail points, which are already in world coordinates.
func (vw *View) updateTrail(sld *xyz.Solid, tr *trail.Trail) {
	if tr.Len() < 2 {
		return
	}
	w := orbit.DefaultStyle().Width
	ln := xyz.NewLines(vw.Scene, meshName(tr.Name+"-trail"), tr.Polyline(), math32.Vec2(w, w), false)
	sld.SetMesh(ln)
}

// Sync updates all solids from the current state of the system,
// adding and removing solids as needed, and copies the world poses.
// It must be called after every [solar.Driver.Step].
func (vw *View) Sync() {
	sc := vw.Scene
	sc.UpdateFromMake()
	clear(vw.Solids)
	for _, kid := range sc.Children {
		kid.AsTree().RunUpdaters()
		if sld, ok := kid.(*xyz.Solid); ok {
			vw.Solids[sld.Name] = sld
		}
	}
	sc.SetNeedsUpdate()
}

// Resize updates the projection for a new scene size. Sizes equal to
// the current one are ignored. Errors are logged and returned.
func (vw *View) Resize(size image.Point) error {
	pj := vw.Projection
	if size.X == pj.Width && size.Y == pj.Height {
		return nil
	}
	return input.Dispatch("resize", func() error {
		if err := pj.Resize(size.X, size.Y); err != nil {
			return err
		}
		vw.Scene.Camera.FOV = pj.FOV
		vw.Scene.Camera.Aspect = pj.Aspect
		vw.Scene.SetNeedsUpdate()
		return nil
	})
}

// Controls updates the camera of an [xyz.Scene], whose built-in
// navigation is the interactive orbit control of the camera rig.
type Controls struct {
	Scene *xyz.Scene
}

// Update moves the scene camera to the given eye position,
// looking at the target.
func (ct *Controls) Update(eye, target math32.Vector3) {
	cam := &ct.Scene.Camera
	cam.Pose.Pos = eye
	cam.LookAt(target, math32.Vec3(0, 1, 0))
	ct.Scene.SetNeedsUpdate()
}
