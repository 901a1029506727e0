// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"image"
	"sync"
)

// Future is a texture image that is being loaded in the background.
// Until it is delivered by [Loader.Poll], [Future.Image] returns
// the flat placeholder image. Its readiness callbacks run on the
// goroutine that calls Poll, which is the frame loop.
type Future struct {

	// Name is the name of the image file.
	Name string

	placeholder *image.RGBA
	done        chan struct{}

	// mu guards the fields below: img and err are set by the loading
	// goroutine, delivered and callbacks by the frame loop.
	mu        sync.Mutex
	img       *image.RGBA
	err       error
	delivered bool
	callbacks []func(img *image.RGBA)
}

func newFuture(name string, placeholder *image.RGBA) *Future {
	return &Future{Name: name, placeholder: placeholder, done: make(chan struct{})}
}

// Done returns a channel that is closed when loading has finished,
// successfully or not. The result is only visible after [Loader.Poll].
func (fu *Future) Done() <-chan struct{} {
	return fu.done
}

// Ready returns whether the loaded image has been delivered.
func (fu *Future) Ready() bool {
	fu.mu.Lock()
	defer fu.mu.Unlock()
	return fu.delivered && fu.err == nil
}

// Err returns the load error, once delivered.
func (fu *Future) Err() error {
	fu.mu.Lock()
	defer fu.mu.Unlock()
	if !fu.delivered {
		return nil
	}
	return fu.err
}

// Image returns the loaded image once delivered, and the placeholder
// before that or if loading failed.
func (fu *Future) Image() *image.RGBA {
	fu.mu.Lock()
	defer fu.mu.Unlock()
	if fu.delivered && fu.img != nil {
		return fu.img
	}
	return fu.placeholder
}

// OnReady adds a function to call with the loaded image when it is
// delivered. If it already was, the function is called immediately.
// It is never called if loading fails.
func (fu *Future) OnReady(fun func(img *image.RGBA)) {
	fu.mu.Lock()
	if !fu.delivered {
		fu.callbacks = append(fu.callbacks, fun)
		fu.mu.Unlock()
		return
	}
	img := fu.img
	fu.mu.Unlock()
	if img != nil {
		fun(img)
	}
}

// finish records the result; called once by the loading goroutine.
func (fu *Future) finish(img *image.RGBA, err error) {
	fu.mu.Lock()
	fu.img, fu.err = img, err
	fu.mu.Unlock()
	close(fu.done)
}

// deliver marks the result visible and runs the callbacks on success.
func (fu *Future) deliver() {
	fu.mu.Lock()
	fu.delivered = true
	cbs := fu.callbacks
	fu.callbacks = nil
	img := fu.img
	fu.mu.Unlock()
	if img == nil {
		return
	}
	for _, fun := range cbs {
		fun(img)
	}
}
