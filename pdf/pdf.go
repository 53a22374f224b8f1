package pdf

import "errors"

// ErrNoContent indicates that a PDF yielded no usable content.
var ErrNoContent = errors.New("no content found in pdf")

// FilledRect is a vector-drawn rectangle filled with a solid color,
// in PDF page coordinates (points, origin bottom-left).
type FilledRect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64

	// Fill color channels in [0, 1]. Gray fills repeat the level
	// across all three channels.
	R float64
	G float64
	B float64
}

// PageGeometry describes one page's dimensions and its filled rectangles.
type PageGeometry struct {
	Page   int // 1-based
	Width  float64
	Height float64
	Rects  []FilledRect
}

// Parser reads PDF files for the pipeline stages.
// Implementations must be safe for concurrent use.
type Parser interface {
	// ExtractPages extracts text per page. The returned slice has one
	// entry per page, empty for pages without extractable text, and the
	// page count equals len of the slice.
	ExtractPages(path string) ([]string, error)

	// Geometry returns per-page dimensions and vector-drawn filled
	// rectangles. Raster image content is not inspected.
	Geometry(path string) ([]PageGeometry, error)
}
