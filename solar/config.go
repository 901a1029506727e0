// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solar

import (
	"bytes"
	_ "embed"
	"fmt"
	"image/color"
	"io"
	"os"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"cogentcore.org/orrery/orbit"
	"github.com/pelletier/go-toml/v2"
)

//go:embed default.toml
var defaultSystem []byte

// ErrConfig is wrapped by every configuration validation error.
var ErrConfig = errors.New("solar: invalid configuration")

// RingConfig describes a flat ring around a body, in its equatorial plane.
type RingConfig struct {

	// Inner radius of the ring.
	Inner float32 `toml:"inner"`

	// Outer radius of the ring.
	Outer float32 `toml:"outer"`

	// Texture is the name of the ring texture.
	Texture string `toml:"texture"`

	// Color is the flat color shown until the texture is loaded.
	Color string `toml:"color"`
}

// BodyConfig describes one celestial body.
type BodyConfig struct {

	// Name is the unique name of the body.
	Name string `toml:"name"`

	// Parent is the name of the body this one orbits.
	// It is empty only for the central body.
	Parent string `toml:"parent"`

	// Key is the key chord that focuses the camera on this body, if any.
	Key string `toml:"key"`

	// Radius of the body sphere; must be positive.
	Radius float32 `toml:"radius"`

	// Texture is the name of the surface texture.
	Texture string `toml:"texture"`

	// Color is the flat color shown until the texture is loaded,
	// as a color name or hex value.
	Color string `toml:"color"`

	// Tilt is the axial tilt in degrees.
	Tilt float32 `toml:"tilt"`

	// Distance from the parent; must not be negative.
	Distance float32 `toml:"distance"`

	// Ratio is the minor to major axis ratio of the drawn orbit path, in (0, 1].
	// Zero means a circle.
	Ratio float32 `toml:"ratio"`

	// Spin is the axial rotation per frame, in radians.
	Spin float32 `toml:"spin"`

	// Revolution is the orbital rotation per frame, in radians.
	Revolution float32 `toml:"revolution"`

	// Emissive bodies glow independent of lighting.
	Emissive bool `toml:"emissive"`

	// Ring is an optional ring around the body.
	Ring *RingConfig `toml:"ring"`
}

// Config describes a whole system of bodies.
type Config struct {

	// Background is the name of the starfield texture.
	Background string `toml:"background"`

	// BackgroundRepeat is how many times the background is tiled along each axis.
	BackgroundRepeat int `toml:"background_repeat"`

	// OrbitSamples is the number of points in each orbit path.
	OrbitSamples int `toml:"orbit_samples"`

	// Bodies are the bodies, in selection and reporting order.
	Bodies []BodyConfig `toml:"body"`
}

// Default returns the default solar system configuration.
func Default() *Config {
	return errors.Must1(Parse(bytes.NewReader(defaultSystem)))
}

// Open reads and validates a system configuration from the given TOML file.
func Open(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// Parse reads a system configuration in TOML format, applies defaults,
// and validates it. Unknown keys are errors.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}
	cfg.Defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults fills in zero values that have defaults.
func (cfg *Config) Defaults() {
	if cfg.OrbitSamples == 0 {
		cfg.OrbitSamples = orbit.DefaultSamples
	}
	if cfg.BackgroundRepeat == 0 {
		cfg.BackgroundRepeat = 1
	}
	for i := range cfg.Bodies {
		if cfg.Bodies[i].Ratio == 0 {
			cfg.Bodies[i].Ratio = 1
		}
	}
}

// Central returns the body with no parent, or nil if there is none.
func (cfg *Config) Central() *BodyConfig {
	for i := range cfg.Bodies {
		if cfg.Bodies[i].Parent == "" {
			return &cfg.Bodies[i]
		}
	}
	return nil
}

// Validate returns all the problems with the configuration joined
// into one error, or nil if there are none.
func (cfg *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrConfig}, args...)...))
	}
	if len(cfg.Bodies) == 0 {
		bad("no bodies")
	}
	if cfg.OrbitSamples < 3 {
		bad("orbit_samples %d is less than 3", cfg.OrbitSamples)
	}
	names := map[string]*BodyConfig{}
	keys := map[string]string{}
	roots := 0
	for i := range cfg.Bodies {
		bc := &cfg.Bodies[i]
		if bc.Name == "" {
			bad("body %d has no name", i)
			continue
		}
		if _, has := names[bc.Name]; has {
			bad("duplicate body %q", bc.Name)
		}
		names[bc.Name] = bc
		if bc.Parent == "" {
			roots++
		}
		if bc.Key != "" {
			if other, has := keys[bc.Key]; has {
				bad("key %q is used by both %q and %q", bc.Key, other, bc.Name)
			}
			keys[bc.Key] = bc.Name
		}
		for _, v := range []float32{bc.Radius, bc.Tilt, bc.Distance, bc.Ratio, bc.Spin, bc.Revolution} {
			if !finite(v) {
				bad("%q has a non-finite value", bc.Name)
				break
			}
		}
		if bc.Radius <= 0 {
			bad("%q radius %g must be positive", bc.Name, bc.Radius)
		}
		if bc.Distance < 0 {
			bad("%q distance %g must not be negative", bc.Name, bc.Distance)
		}
		if bc.Ratio <= 0 || bc.Ratio > 1 {
			bad("%q ratio %g must be in (0, 1]", bc.Name, bc.Ratio)
		}
		if _, err := ParseColor(bc.Color); err != nil {
			bad("%q color: %v", bc.Name, err)
		}
		if rc := bc.Ring; rc != nil {
			if rc.Inner <= 0 || rc.Outer <= rc.Inner {
				bad("%q ring radii %g, %g must satisfy 0 < inner < outer", bc.Name, rc.Inner, rc.Outer)
			}
			if _, err := ParseColor(rc.Color); err != nil {
				bad("%q ring color: %v", bc.Name, err)
			}
		}
	}
	if len(cfg.Bodies) > 0 && roots != 1 {
		bad("%d bodies have no parent, need exactly 1", roots)
	}
	for i := range cfg.Bodies {
		bc := &cfg.Bodies[i]
		if bc.Name == "" || bc.Parent == "" {
			continue
		}
		if _, has := names[bc.Parent]; !has {
			bad("%q has unknown parent %q", bc.Name, bc.Parent)
			continue
		}
		seen := map[string]bool{bc.Name: true}
		for p := bc.Parent; p != ""; p = names[p].Parent {
			if seen[p] {
				bad("%q is part of a parent cycle", bc.Name)
				break
			}
			seen[p] = true
			if _, has := names[p]; !has {
				break
			}
		}
	}
	return errors.Join(errs...)
}

// DefaultColor is the placeholder color of bodies that do not set one.
var DefaultColor = color.RGBA{128, 128, 128, 255}

// ParseColor parses a placeholder color, returning [DefaultColor]
// for an empty string.
func ParseColor(s string) (color.RGBA, error) {
	if s == "" {
		return DefaultColor, nil
	}
	return colors.FromString(s)
}

// PlaceholderColor returns the parsed placeholder color of the body.
func (bc *BodyConfig) PlaceholderColor() color.RGBA {
	return errors.Log1(ParseColor(bc.Color))
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}
