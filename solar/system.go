// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solar builds and animates a system of celestial bodies
// on a [scene.Graph]: the central body at the root, orbiting bodies
// on pivots under the frames of the bodies they orbit, decorative
// orbit paths, and optional trails.
package solar

import (
	"fmt"
	"io"

	"cogentcore.org/core/math32"
	"cogentcore.org/orrery/camera"
	"cogentcore.org/orrery/orbit"
	"cogentcore.org/orrery/scene"
	"cogentcore.org/orrery/trail"
)

// Orbit is the orbit path of one body, attached to the frame
// of the body it orbits so that it moves along with it.
type Orbit struct {

	// Body is the orbiting body.
	Body *Body

	// Node is the line node holding the path.
	Node scene.Handle

	// Path is the path geometry.
	Path *orbit.Path
}

// System is the whole scene state: it is owned by the application
// and passed by reference to the driver and camera controller.
type System struct {

	// Config is the validated configuration.
	Config *Config

	// Graph is the scene graph holding all nodes.
	Graph *scene.Graph

	// Central is the body with no parent.
	Central *Body

	// Bodies are all the bodies, in configuration order.
	Bodies []*Body

	// Orbits are the orbit paths of all bodies at a positive distance.
	Orbits []*Orbit

	// Trails are the trails of all orbiting bodies.
	Trails *trail.Set

	// Rig is the camera rig, under the root of the graph.
	Rig *camera.Rig

	byName map[string]*Body
}

// Build validates the configuration and builds the system in a new
// scene graph, with world poses up to date.
func Build(cfg *Config) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sy := &System{
		Config: cfg,
		Graph:  scene.NewGraph(),
		Trails: trail.NewSet(trail.DefaultCapacity),
		byName: map[string]*Body{},
	}
	central := cfg.Central()
	if err := sy.addBody(sy.Graph.Root(), central); err != nil {
		return nil, err
	}
	sy.Central = sy.byName[central.Name]
	rig, err := camera.NewRig(sy.Graph, camera.DefaultOffset)
	if err != nil {
		return nil, err
	}
	sy.Rig = rig
	for i := range cfg.Bodies {
		b := sy.byName[cfg.Bodies[i].Name]
		sy.Bodies = append(sy.Bodies, b)
		if b != sy.Central {
			sy.Trails.Track(b.Name(), b.Node)
		}
	}
	sy.Graph.UpdateWorld()
	return sy, nil
}

// addBody adds the given body under the parent node, followed by
// all the bodies orbiting it, depth first.
func (sy *System) addBody(parent scene.Handle, bc *BodyConfig) error {
	b, err := NewBody(sy.Graph, parent, bc)
	if err != nil {
		return err
	}
	sy.byName[bc.Name] = b
	if bc.Distance > 0 && bc.Parent != "" {
		if err := sy.addOrbit(b, parent); err != nil {
			return err
		}
	}
	for i := range sy.Config.Bodies {
		kc := &sy.Config.Bodies[i]
		if kc.Parent != bc.Name {
			continue
		}
		if err := sy.addBody(b.Frame, kc); err != nil {
			return err
		}
	}
	return nil
}

func (sy *System) addOrbit(b *Body, parent scene.Handle) error {
	bc := b.Config
	path, err := orbit.New(bc.Distance, bc.Ratio, sy.Config.OrbitSamples, orbit.DefaultStyle())
	if err != nil {
		return fmt.Errorf("orbit of %q: %w", bc.Name, err)
	}
	h, err := sy.Graph.Add(parent, bc.Name+"-orbit", scene.Line)
	if err != nil {
		return err
	}
	sy.Orbits = append(sy.Orbits, &Orbit{Body: b, Node: h, Path: path})
	return nil
}

// Body returns the body with the given name, or nil.
func (sy *System) Body(name string) *Body {
	return sy.byName[name]
}

// BodyForKey returns the body selected by the given key chord, or nil.
func (sy *System) BodyForKey(key string) *Body {
	for _, b := range sy.Bodies {
		if b.Config.Key != "" && b.Config.Key == key {
			return b
		}
	}
	return nil
}

// Focus points the camera rig at the current position of the given body.
func (sy *System) Focus(b *Body) error {
	if err := sy.Rig.Focus(b.Node); err != nil {
		return fmt.Errorf("focus on %q: %w", b.Name(), err)
	}
	return nil
}

// Position is the world position of a named body.
type Position struct {
	Name string
	Pos  math32.Vector3
}

// Positions returns the current world positions of all bodies,
// in configuration order. Bodies whose position cannot be read are omitted.
func (sy *System) Positions() []Position {
	ps := make([]Position, 0, len(sy.Bodies))
	for _, b := range sy.Bodies {
		pos, err := sy.Graph.WorldPos(b.Node)
		if err != nil {
			continue
		}
		ps = append(ps, Position{Name: b.Name(), Pos: pos})
	}
	return ps
}

// WritePositions writes one line per body with its name and world
// coordinates to two decimal places.
func (sy *System) WritePositions(w io.Writer) error {
	for _, p := range sy.Positions() {
		if _, err := fmt.Fprintf(w, "%s %.2f %.2f %.2f\n", p.Name, p.Pos.X, p.Pos.Y, p.Pos.Z); err != nil {
			return err
		}
	}
	return nil
}
