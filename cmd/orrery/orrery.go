// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command orrery shows an animated solar system.
package main

import (
	"context"
	"image"
	"io"
	"log/slog"
	"os"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/cli"
	"cogentcore.org/core/core"
	"cogentcore.org/core/events"
	"cogentcore.org/core/xyz/xyzcore"
	"cogentcore.org/orrery/assets"
	"cogentcore.org/orrery/input"
	"cogentcore.org/orrery/metrics"
	"cogentcore.org/orrery/solar"
	"cogentcore.org/orrery/view"
)

// Config is the configuration information for orrery.
type Config struct {

	// System is a TOML file describing the bodies to show.
	// The built-in solar system is used if it is empty.
	System string `posarg:"0" required:"-"`

	// Assets is the directory textures are loaded from.
	// Bodies whose texture is not found are shown in a flat color.
	Assets string `default:"assets"`

	// MaxTextureSize is the maximum width and height of textures;
	// larger images are scaled down when loaded.
	MaxTextureSize int `default:"2048"`

	// Trails records and draws the recent path of each orbiting body.
	// They can also be toggled with the t key.
	Trails bool

	// TimeScaled makes motion speed independent of the display
	// refresh rate, instead of advancing a fixed step per frame.
	TimeScaled bool

	// MetricsAddr is the address to serve frame statistics on,
	// in the Prometheus format at /metrics, such as localhost:9090.
	MetricsAddr string

	// NoGUI runs without a window: it steps the given number
	// of Frames and prints the resulting body positions.
	NoGUI bool `flag:"nogui"`

	// Frames is the number of frames to step with NoGUI.
	Frames int `default:"600"`
}

func main() {
	opts := cli.DefaultOptions("orrery", "An animated solar system with keyboard camera targeting.")
	cli.Run(opts, &Config{}, Run)
}

// Run builds the system and shows it, or steps it without a window.
func Run(c *Config) error {
	sys := solar.Default()
	if c.System != "" {
		var err error
		if sys, err = solar.Open(c.System); err != nil {
			return err
		}
	}
	sy, err := solar.Build(sys)
	if err != nil {
		return err
	}
	sy.Trails.Enabled = c.Trails
	dr := solar.NewDriver(sy)
	dr.TimeScaled = c.TimeScaled
	dr.Stats = metrics.NewFrames()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if c.MetricsAddr != "" {
		go func() {
			errors.Log(dr.Stats.Serve(ctx, c.MetricsAddr))
		}()
	}
	if c.NoGUI {
		return Step(dr, c.Frames, os.Stdout)
	}
	RunGUI(c, dr)
	return nil
}

// Step steps the driver by the given number of frames
// and writes the resulting positions.
func Step(dr *solar.Driver, frames int, w io.Writer) error {
	for range frames {
		dr.Step(solar.FrameDuration)
	}
	slog.Info("stepped", "frames", dr.Frames)
	return dr.System.WritePositions(w)
}

// RunGUI shows the system in a window, with the scene advanced
// on every paint tick, until the window is closed.
func RunGUI(c *Config, dr *solar.Driver) {
	b := core.NewBody("Orrery")
	se := xyzcore.NewSceneEditor(b)
	se.UpdateWidget()
	sw := se.SceneWidget()

	ld := assets.NewLoader(os.DirFS(c.Assets))
	ld.MaxSize = c.MaxTextureSize
	vw := view.New(dr.System, se.SceneXYZ(), ld)
	vw.Init()

	hd := input.NewHandler(dr)
	dr.Redraw = func() {
		vw.Sync()
		sw.NeedsRender()
	}
	sw.Animate(func(a *core.Animation) {
		ld.Poll()
		dr.Step(frameDelta(a))
	})
	sw.OnKeyChord(func(e events.Event) {
		if ok, _ := hd.HandleChord(e.KeyChord()); ok {
			e.SetHandled()
		}
	})
	sw.Updater(func() {
		sz := sw.Geom.Size.Actual.Content.ToPointFloor()
		if sz != (image.Point{}) {
			vw.Resize(sz)
		}
	})
	b.RunMainWindow()
}

// frameDelta returns the time since the previous paint tick.
func frameDelta(a *core.Animation) time.Duration {
	return time.Duration(a.Dt * float32(time.Millisecond))
}
