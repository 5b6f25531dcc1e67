// Package plot renders scatter plots to PNG.
//
// This package implements the rendering core shared by every entry
// point (C boundary, CLI, HTTP service). It resolves axis ranges from
// options or data, delegates pixel work to the gonum/plot engine, and
// converts every engine diagnostic into a structured error.
//
// # Usage
//
//	opts := plot.DefaultOptions()
//	opts.Width, opts.Height = 1024, 768
//	if err := plot.RenderFile("out.png", xs, ys, opts); err != nil {
//	    log.Fatal(err)
//	}
//
// Rendering is synchronous and safe for concurrent use against
// distinct outputs; the only shared state is the one-shot font
// registration in pkg/fonts.
package plot

import (
	"github.com/plotkit/plotkit/pkg/errors"
)

// Default values shared by the CLI, HTTP service, and C boundary callers
// that pass zeroed options.
const (
	// DefaultWidth is the default output width in pixels.
	DefaultWidth = 800

	// DefaultHeight is the default output height in pixels.
	DefaultHeight = 600

	// DefaultMarkerRadius is the default point marker radius in pixels.
	DefaultMarkerRadius = 5
)

// Options configures a scatter plot render.
// The zero value is not useful; start from DefaultOptions.
type Options struct {
	// Width and Height are the output raster dimensions in pixels.
	// Both must be greater than zero.
	Width  int `json:"width"`
	Height int `json:"height"`

	// MarkerRadius is the radius of each point marker in pixels.
	// Must not be negative.
	MarkerRadius float64 `json:"marker_radius"`

	// AutoRange selects automatic axis bounds computed from the data.
	// When false, the explicit XMin..YMax bounds are used and must
	// satisfy XMin < XMax and YMin < YMax.
	AutoRange bool `json:"auto_range"`

	// Explicit axis bounds, meaningful only when AutoRange is false.
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
}

// DefaultOptions returns options for an 800x600 auto-ranged plot with
// 5px markers.
func DefaultOptions() Options {
	return Options{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		MarkerRadius: DefaultMarkerRadius,
		AutoRange:    true,
	}
}

// Validate checks the option fields that do not depend on data.
// Range bounds are validated by ResolveRange since they only apply in
// explicit mode.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidDimensions, "width and height must be greater than zero")
	}
	if o.MarkerRadius < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "marker radius must not be negative")
	}
	return nil
}
