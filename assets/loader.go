// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assets loads texture images in the background, handing out
// futures that show a flat placeholder until the image is delivered
// on the frame loop.
package assets

import (
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"log/slog"
	"sync"

	"cogentcore.org/core/base/iox/imagex"
	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/draw"
)

// DefaultMaxSize is the default maximum texture width and height.
const DefaultMaxSize = 2048

// Loader loads images from a filesystem, each on its own goroutine.
// Completed loads are queued and only become visible to consumers
// when [Loader.Poll] is called, so that all scene changes happen
// on the frame loop.
type Loader struct {

	// FS is the filesystem images are loaded from.
	// A nil FS makes every load fail, leaving placeholders in place.
	FS fs.FS

	// MaxSize is the maximum width and height of loaded images;
	// larger images are scaled down, keeping their aspect ratio.
	// Zero means no limit.
	MaxSize int

	// Loaded is the number of images delivered by Poll.
	Loaded int

	// Failed is the number of failed loads reported by Poll.
	Failed int

	mu        sync.Mutex
	completed []*Future
	wg        sync.WaitGroup
}

// NewLoader returns a new loader for the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{FS: fsys, MaxSize: DefaultMaxSize}
}

// Load starts loading the named image and returns its future,
// which shows a flat image of the given color until delivered.
func (ld *Loader) Load(name string, placeholder color.RGBA) *Future {
	fu := newFuture(name, Placeholder(placeholder))
	ld.wg.Add(1)
	go func() {
		defer ld.wg.Done()
		img, err := ld.open(name)
		fu.finish(img, err)
		ld.mu.Lock()
		ld.completed = append(ld.completed, fu)
		ld.mu.Unlock()
	}()
	return fu
}

func (ld *Loader) open(name string) (*image.RGBA, error) {
	if ld.FS == nil {
		return nil, fmt.Errorf("assets: no filesystem to load %q from", name)
	}
	img, _, err := imagex.OpenFS(ld.FS, name)
	if err != nil {
		return nil, err
	}
	return imagex.AsRGBA(Fit(img, ld.MaxSize)), nil
}

// Poll delivers all loads completed since the last call, running
// their readiness callbacks. Failed loads are logged and keep their
// placeholder. It returns the number of futures delivered.
func (ld *Loader) Poll() int {
	ld.mu.Lock()
	done := ld.completed
	ld.completed = nil
	ld.mu.Unlock()
	for _, fu := range done {
		fu.deliver()
		if err := fu.Err(); err != nil {
			ld.Failed++
			slog.Error("assets: using placeholder", "name", fu.Name, "err", err)
			continue
		}
		ld.Loaded++
	}
	return len(done)
}

// Wait blocks until every load started so far has completed.
// Completed loads still need a [Loader.Poll] to be delivered.
func (ld *Loader) Wait() {
	ld.wg.Wait()
}

// Placeholder returns a small flat image of the given color.
func Placeholder(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// Fit scales the image down so that neither side exceeds maxSize,
// keeping its aspect ratio. Smaller images and a maxSize of zero
// return the image unchanged.
func Fit(img image.Image, maxSize int) image.Image {
	sz := img.Bounds().Size()
	if maxSize <= 0 || (sz.X <= maxSize && sz.Y <= maxSize) {
		return img
	}
	w, h := maxSize, maxSize
	if sz.X > sz.Y {
		h = max(1, sz.Y*maxSize/sz.X)
	} else {
		w = max(1, sz.X*maxSize/sz.Y)
	}
	return transform.Resize(img, w, h, transform.Linear)
}
