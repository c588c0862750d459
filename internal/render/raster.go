package render

import "context"

// RasterOptions controls bitmap output.
type RasterOptions struct {
	// Scale is the linear device pixel ratio.
	Scale float64
	// Background fills transparent areas, as a CSS color.
	Background string
}

//go:generate mockgen -source=raster.go -destination=rasterizer_mock.go -package=render
type Rasterizer interface {
	// Rasterize returns page as a PNG bitmap. It must not be called
	// concurrently for the same surface.
	Rasterize(ctx context.Context, page Page, opts RasterOptions) ([]byte, error)
}
