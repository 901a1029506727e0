// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene provides a retained-mode transform graph whose nodes
// are stored in a flat arena and addressed by stable [Handle] values.
// World poses are computed top-down once per [Graph.UpdateWorld] pass,
// instead of being propagated implicitly on every mutation.
package scene

import (
	"fmt"
	"slices"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
)

var (
	// ErrInvalidHandle is returned for handles that do not address a node.
	ErrInvalidHandle = errors.New("scene: invalid handle")

	// ErrDetached is returned when the world pose of a node is requested
	// but the node was not reachable from the root in the last update.
	ErrDetached = errors.New("scene: node is not attached to the root")

	// ErrDuplicateName is returned when adding a node whose name is already used.
	ErrDuplicateName = errors.New("scene: duplicate node name")
)

// Handle addresses a node in a [Graph]. Handles stay valid for the
// lifetime of the graph: nodes are never removed, only detached.
type Handle int32

// NoHandle is the handle of no node, used as the parent of detached nodes.
const NoHandle Handle = -1

// RootName is the name of the root node of every [Graph].
const RootName = "root"

// Kinds are the kinds of nodes, which tell a renderer what, if anything,
// to draw for a node.
type Kinds int32

const (
	// Group is an invisible transform node, such as an orbital pivot.
	Group Kinds = iota

	// Solid is a renderable node with a mesh.
	Solid

	// Line is a renderable polyline, such as an orbit path.
	Line

	// Camera is a camera node.
	Camera
)

func (k Kinds) String() string {
	switch k {
	case Group:
		return "Group"
	case Solid:
		return "Solid"
	case Line:
		return "Line"
	case Camera:
		return "Camera"
	}
	return fmt.Sprintf("Kinds(%d)", int32(k))
}

// Node is one node of a [Graph].
type Node struct {

	// Name is the unique name of the node.
	Name string

	// Kind is what the node represents.
	Kind Kinds

	// Parent is the parent handle, or [NoHandle] for the root and detached nodes.
	Parent Handle

	// Children are the handles of the children, in insertion order.
	Children []Handle

	// Pose is the local pose, relative to the parent. It is the only
	// thing that callers mutate between updates.
	Pose Pose

	// World is the world pose computed by the last [Graph.UpdateWorld].
	World Pose

	// attached is whether World was computed in the last update.
	attached bool
}

// Graph is an arena of nodes forming a tree under a single root.
// A Graph is not safe for concurrent use: it is owned by the frame loop.
type Graph struct {
	nodes  []Node
	byName map[string]Handle

	// Updates is the number of world update passes done so far.
	Updates int
}

// NewGraph returns a new graph containing only the root node.
func NewGraph() *Graph {
	g := &Graph{byName: map[string]Handle{}}
	g.nodes = append(g.nodes, Node{Name: RootName, Parent: NoHandle})
	g.nodes[0].Pose.Defaults()
	g.byName[RootName] = 0
	return g
}

// Root returns the handle of the root node.
func (g *Graph) Root() Handle {
	return 0
}

// Len returns the number of nodes, including the root.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Valid returns whether the handle addresses a node.
func (g *Graph) Valid(h Handle) bool {
	return h >= 0 && int(h) < len(g.nodes)
}

// Node returns the node for the given handle, or nil if it is not valid.
// The pointer is only valid until the next [Graph.Add].
func (g *Graph) Node(h Handle) *Node {
	if !g.Valid(h) {
		return nil
	}
	return &g.nodes[h]
}

// ByName returns the handle of the node with the given name.
func (g *Graph) ByName(name string) (Handle, bool) {
	h, ok := g.byName[name]
	return h, ok
}

// Add adds a new node with the given name and kind under the given parent,
// which can be [NoHandle] to create a detached node.
func (g *Graph) Add(parent Handle, name string, kind Kinds) (Handle, error) {
	if parent != NoHandle && !g.Valid(parent) {
		return NoHandle, fmt.Errorf("adding %q under %d: %w", name, parent, ErrInvalidHandle)
	}
	if _, has := g.byName[name]; has {
		return NoHandle, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	h := Handle(len(g.nodes))
	g.nodes = append(g.nodes, Node{Name: name, Kind: kind, Parent: parent})
	g.nodes[h].Pose.Defaults()
	g.nodes[h].World.Defaults()
	g.byName[name] = h
	if parent != NoHandle {
		g.nodes[parent].Children = append(g.nodes[parent].Children, h)
	}
	return h, nil
}

// Detach removes the node from its parent. The node and its subtree
// keep their local poses, and their world poses are no longer updated.
func (g *Graph) Detach(h Handle) error {
	if !g.Valid(h) || h == g.Root() {
		return ErrInvalidHandle
	}
	nd := &g.nodes[h]
	if nd.Parent == NoHandle {
		return nil
	}
	par := &g.nodes[nd.Parent]
	par.Children = slices.DeleteFunc(par.Children, func(c Handle) bool { return c == h })
	nd.Parent = NoHandle
	return nil
}

// Walk calls the given function on every node reachable from the root,
// parents before children. Returning false from the function skips
// the children of that node.
func (g *Graph) Walk(fun func(h Handle, nd *Node) bool) {
	stack := []Handle{g.Root()}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nd := &g.nodes[h]
		if !fun(h, nd) {
			continue
		}
		for i := len(nd.Children) - 1; i >= 0; i-- {
			stack = append(stack, nd.Children[i])
		}
	}
}

// UpdateWorld recomputes the world pose of every node reachable from
// the root, top-down. Nodes that are not reachable are marked detached
// until the next update in which they are.
func (g *Graph) UpdateWorld() {
	for i := range g.nodes {
		g.nodes[i].attached = false
	}
	root := &g.nodes[g.Root()]
	root.World = root.Pose
	root.attached = true
	g.Walk(func(h Handle, nd *Node) bool {
		for _, c := range nd.Children {
			kid := &g.nodes[c]
			kid.World.FromRel(&kid.Pose, &nd.World)
			kid.attached = true
		}
		return true
	})
	g.Updates++
}

// WorldPose returns the world pose of the node as of the last
// [Graph.UpdateWorld].
func (g *Graph) WorldPose(h Handle) (Pose, error) {
	if !g.Valid(h) {
		return Pose{}, ErrInvalidHandle
	}
	nd := &g.nodes[h]
	if !nd.attached {
		return Pose{}, fmt.Errorf("%q: %w", nd.Name, ErrDetached)
	}
	return nd.World, nil
}

// WorldPos returns the world position of the node as of the last
// [Graph.UpdateWorld].
func (g *Graph) WorldPos(h Handle) (math32.Vector3, error) {
	ps, err := g.WorldPose(h)
	return ps.Pos, err
}
