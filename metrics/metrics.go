// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics collects frame statistics of the animation loop
// and can serve them in the Prometheus text format.
package metrics

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"cogentcore.org/core/base/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Frames collects statistics about animation frames on its own registry,
// so that multiple instances (e.g., in tests) do not collide.
type Frames struct {

	// Registry is the registry all collectors are registered on.
	Registry *prometheus.Registry

	frames       prometheus.Counter
	frameSeconds prometheus.Histogram
	samples      *prometheus.CounterVec
	focus        *prometheus.CounterVec
}

// NewFrames returns a new [Frames] with all collectors registered.
func NewFrames() *Frames {
	fm := &Frames{
		Registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orrery",
			Name:      "frames_total",
			Help:      "Total number of animation frames stepped",
		}),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "orrery",
			Name:      "frame_delta_seconds",
			Help:      "Time between consecutive animation frames",
			Buckets:   []float64{1.0 / 240, 1.0 / 120, 1.0 / 60, 1.0 / 30, 1.0 / 15, 0.25, 1},
		}),
		samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orrery",
			Name:      "trail_samples_total",
			Help:      "Trail samples by outcome",
		}, []string{"outcome"}),
		focus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orrery",
			Name:      "camera_focus_total",
			Help:      "Camera focus selections by body",
		}, []string{"body"}),
	}
	fm.Registry.MustRegister(fm.frames, fm.frameSeconds, fm.samples, fm.focus)
	return fm
}

// ObserveFrame records one frame with the given delta since the
// previous frame and the trail sampling outcome.
func (fm *Frames) ObserveFrame(delta time.Duration, recorded, skipped int) {
	fm.frames.Inc()
	if delta > 0 {
		fm.frameSeconds.Observe(delta.Seconds())
	}
	if recorded > 0 {
		fm.samples.WithLabelValues("recorded").Add(float64(recorded))
	}
	if skipped > 0 {
		fm.samples.WithLabelValues("skipped").Add(float64(skipped))
	}
}

// ObserveFocus records a camera focus selection of the named body.
func (fm *Frames) ObserveFocus(body string) {
	fm.focus.WithLabelValues(body).Inc()
}

// Handler returns an http.Handler serving the registry.
func (fm *Frames) Handler() http.Handler {
	return promhttp.HandlerFor(fm.Registry, promhttp.HandlerOpts{})
}

// Serve serves the metrics on /metrics at the given address
// until the context is done.
func (fm *Frames) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return fm.ServeListener(ctx, ln)
}

// ServeListener is like [Frames.Serve] on the given listener,
// which is closed when it returns.
func (fm *Frames) ServeListener(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", fm.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shut, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		errors.Log(srv.Shutdown(shut))
	}()
	slog.Info("serving metrics", "addr", ln.Addr().String())
	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
