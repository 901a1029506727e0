// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package input maps key chords to commands on a running system,
// and runs event handlers so that their faults never reach the
// frame loop.
package input

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/events/key"
	"cogentcore.org/orrery/metrics"
	"cogentcore.org/orrery/solar"
)

// ErrPanic is wrapped by errors returned for recovered panics.
var ErrPanic = errors.New("input: handler panicked")

// Commands are the commands that key chords can be bound to.
type Commands int32

const (
	// Focus points the camera at a body.
	Focus Commands = iota

	// DumpPositions writes the world positions of all bodies.
	DumpPositions

	// ToggleTrails turns trail recording on or off.
	ToggleTrails

	// Pause stops or resumes motion.
	Pause
)

func (c Commands) String() string {
	switch c {
	case Focus:
		return "Focus"
	case DumpPositions:
		return "DumpPositions"
	case ToggleTrails:
		return "ToggleTrails"
	case Pause:
		return "Pause"
	}
	return fmt.Sprintf("Commands(%d)", int32(c))
}

// Binding is what a key chord does.
type Binding struct {
	Command Commands

	// Body is the name of the body to focus on, for [Focus].
	Body string
}

// Bindings maps key chords to bindings.
type Bindings map[key.Chord]Binding

// DefaultBindings returns p to dump positions, t to toggle trails
// and space to pause. Focus keys come from the body configuration.
func DefaultBindings() Bindings {
	return Bindings{
		"p":     {Command: DumpPositions},
		"t":     {Command: ToggleTrails},
		" ":     {Command: Pause},
		"Space": {Command: Pause},
	}
}

// Handler runs bound commands on a driven system.
type Handler struct {
	Bindings Bindings
	Driver   *solar.Driver

	// Output receives position dumps; os.Stdout if nil.
	Output io.Writer

	// Stats, if non-nil, counts focus changes.
	Stats *metrics.Frames
}

// NewHandler returns a handler with the default bindings for the system.
func NewHandler(dr *solar.Driver) *Handler {
	return &Handler{Bindings: DefaultBindings(), Driver: dr, Stats: dr.Stats}
}

// Binding returns the binding for the given key chord: one of
// [Handler.Bindings], or else focus on the body with that key.
func (hd *Handler) Binding(ch key.Chord) (Binding, bool) {
	if b, ok := hd.Bindings[ch]; ok {
		return b, true
	}
	if body := hd.Driver.System.BodyForKey(string(ch)); body != nil {
		return Binding{Command: Focus, Body: body.Name()}, true
	}
	return Binding{}, false
}

// HandleChord runs the command bound to the given key chord, if any,
// returning whether there was one. Faults are logged and returned.
func (hd *Handler) HandleChord(ch key.Chord) (bool, error) {
	b, ok := hd.Binding(ch)
	if !ok {
		return false, nil
	}
	return true, Dispatch(string(ch), func() error { return hd.Run(b) })
}

// Run runs the given binding.
func (hd *Handler) Run(b Binding) error {
	sy := hd.Driver.System
	switch b.Command {
	case Focus:
		body := sy.Body(b.Body)
		if body == nil {
			return fmt.Errorf("input: no body named %q", b.Body)
		}
		if err := sy.Focus(body); err != nil {
			return err
		}
		if hd.Stats != nil {
			hd.Stats.ObserveFocus(body.Name())
		}
	case DumpPositions:
		w := hd.Output
		if w == nil {
			w = os.Stdout
		}
		return sy.WritePositions(w)
	case ToggleTrails:
		on := sy.Trails.Toggle()
		slog.Info("trails", "enabled", on)
	case Pause:
		hd.Driver.Paused = !hd.Driver.Paused
		slog.Info("pause", "paused", hd.Driver.Paused)
	default:
		return fmt.Errorf("input: unknown command %v", b.Command)
	}
	return nil
}

// Dispatch runs the given event handler function, recovering from
// any panic in it. Errors and panics are logged with the given event
// name and returned, so that the caller can carry on.
func Dispatch(event string, fun func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrPanic, event, r)
			slog.Error("input: recovered", "event", event, "err", err, "stack", string(debug.Stack()))
		}
	}()
	if err = fun(); err != nil {
		slog.Error("input: handler failed", "event", event, "err", err)
	}
	return err
}
