// Package capture turns the record on the render surface into a single-page
// PDF artifact.
package capture

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/MrJamesThe3rd/mockuments/internal/document"
	"github.com/MrJamesThe3rd/mockuments/internal/render"
)

const (
	captureScale      = 2
	captureBackground = "#ffffff"
	maxTiltDegrees    = 0.75
)

// Artifact is one captured page.
type Artifact struct {
	PDF         []byte
	Orientation Orientation
	Width       int
	Height      int
}

type Pipeline struct {
	raster render.Rasterizer
	tilt   bool
	angle  func() float64

	mu sync.Mutex
}

type Option func(*Pipeline)

// WithTilt rotates each capture by a small random angle so pages look
// hand-scanned.
func WithTilt(enabled bool) Option {
	return func(p *Pipeline) {
		p.tilt = enabled
	}
}

// WithAngle overrides the source of tilt angles, in degrees.
func WithAngle(fn func() float64) Option {
	return func(p *Pipeline) {
		p.angle = fn
	}
}

func New(raster render.Rasterizer, opts ...Option) *Pipeline {
	p := &Pipeline{
		raster: raster,
		angle: func() float64 {
			return (rand.Float64()*2 - 1) * maxTiltDegrees
		},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Capture rasterizes whatever s currently shows. The surface style is
// switched to a static capture state for the duration of the call and
// restored afterwards, also on failure. Captures are serialized.
func (p *Pipeline) Capture(ctx context.Context, s *render.Surface) (Artifact, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	original := s.Style()
	defer s.SetStyle(original)

	s.SetStyle(p.captureStyle())

	select {
	case <-s.Ready():
	case <-ctx.Done():
		return Artifact{}, &document.CaptureError{Op: "await surface", Err: ctx.Err()}
	}

	page, err := s.Page()
	if err != nil {
		return Artifact{}, &document.CaptureError{Op: "layout", Err: err}
	}

	bitmap, err := p.raster.Rasterize(ctx, page, render.RasterOptions{
		Scale:      captureScale,
		Background: captureBackground,
	})
	if err != nil {
		return Artifact{}, &document.CaptureError{Op: "rasterize", Err: err}
	}

	art, err := assemble(bitmap)
	if err != nil {
		return Artifact{}, &document.CaptureError{Op: "assemble", Err: err}
	}

	return art, nil
}

func (p *Pipeline) captureStyle() render.Style {
	st := render.Style{Transition: "none", TransformOrigin: "center", Transform: "scale(1)"}

	if p.tilt {
		st.Transform = fmt.Sprintf("rotate(%.3fdeg) scale(0.98)", p.angle())
	}

	return st
}
