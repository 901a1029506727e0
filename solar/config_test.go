// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solar

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Len(t, cfg.Bodies, 10)
	assert.Equal(t, "Sun", cfg.Central().Name)
	assert.Equal(t, 100, cfg.OrbitSamples)
	assert.Equal(t, 2, cfg.BackgroundRepeat)
	for _, bc := range cfg.Bodies {
		if bc.Name == "Saturn" {
			require.NotNil(t, bc.Ring)
			assert.Equal(t, float32(10), bc.Ring.Inner)
			assert.Equal(t, float32(20), bc.Ring.Outer)
		}
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
[[body]]
name = "Star"
radius = 2

[[body]]
name = "Rock"
parent = "Star"
radius = 1
distance = 5
`))
	require.NoError(t, err)
	assert.Equal(t, float32(1), cfg.Bodies[1].Ratio)
	assert.Equal(t, 100, cfg.OrbitSamples)
	assert.Equal(t, 1, cfg.BackgroundRepeat)
}

func TestParseUnknownField(t *testing.T) {
	_, err := Parse(strings.NewReader(`
[[body]]
name = "Star"
radius = 2
colour = "red"
`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		toml   string
		errors []string
	}{
		{"zero radius", `
[[body]]
name = "Star"
radius = 0
`, []string{`"Star" radius 0 must be positive`}},
		{"negative distance and bad ratio", `
[[body]]
name = "Star"
radius = 1
[[body]]
name = "Rock"
parent = "Star"
radius = 1
distance = -3
ratio = 1.5
`, []string{`"Rock" distance -3 must not be negative`, `"Rock" ratio 1.5 must be in (0, 1]`}},
		{"unknown parent", `
[[body]]
name = "Star"
radius = 1
[[body]]
name = "Rock"
parent = "Nowhere"
radius = 1
`, []string{`"Rock" has unknown parent "Nowhere"`}},
		{"two roots", `
[[body]]
name = "A"
radius = 1
[[body]]
name = "B"
radius = 1
`, []string{"2 bodies have no parent"}},
		{"cycle", `
[[body]]
name = "Star"
radius = 1
[[body]]
name = "A"
parent = "B"
radius = 1
[[body]]
name = "B"
parent = "A"
radius = 1
`, []string{`"A" is part of a parent cycle`, `"B" is part of a parent cycle`}},
		{"duplicates", `
[[body]]
name = "Star"
key = "1"
radius = 1
[[body]]
name = "Star"
key = "1"
parent = "Star"
radius = 1
`, []string{`duplicate body "Star"`, `key "1" is used by both`}},
		{"bad ring", `
[[body]]
name = "Star"
radius = 1
[body.ring]
inner = 5
outer = 2
`, []string{`"Star" ring radii 5, 2`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.toml))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfig)
			for _, msg := range tt.errors {
				assert.Contains(t, err.Error(), msg)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "system.toml")
	require.NoError(t, os.WriteFile(fn, defaultSystem, 0666))
	cfg, err := Open(fn)
	require.NoError(t, err)
	assert.Len(t, cfg.Bodies, 10)

	_, err = Open(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestColors(t *testing.T) {
	cfg := Default()
	sun := cfg.Central()
	assert.Equal(t, color.RGBA{0xff, 0xcc, 0x33, 0xff}, sun.PlaceholderColor())

	c, err := ParseColor("")
	require.NoError(t, err)
	assert.Equal(t, DefaultColor, c)

	_, err = Parse(strings.NewReader(`
[[body]]
name = "Star"
radius = 1
color = "not a color"
`))
	assert.ErrorIs(t, err, ErrConfig)
}
