package plot

import (
	"math"

	"github.com/plotkit/plotkit/pkg/errors"
)

const (
	// autoPadFraction is the fraction of the data span added to each
	// side of an auto-computed axis range.
	autoPadFraction = 0.02

	// degeneratePad is the padding substituted when a data span is
	// numerically indistinguishable from zero, so a series whose
	// points all share a coordinate still gets a positive-width axis.
	degeneratePad = 1.0

	// spanEpsilon is 2^-52, the smallest span treated as nonzero.
	spanEpsilon = 2.220446049250313e-16
)

// Range holds the resolved axis bounds used to configure the chart's
// coordinate system. Invariant: XMin < XMax and YMin < YMax.
type Range struct {
	XMin, XMax float64
	YMin, YMax float64
}

// ResolveRange computes the axis bounds for the given series.
//
// In auto mode the bounds are the per-axis min/max padded by 2% of the
// span on each side (or by a fixed 1.0 when the span is degenerate).
// Non-finite coordinates are rejected: NaN and infinities would poison
// the min/max fold, so they are a validation error rather than
// undefined behavior.
//
// In explicit mode the option bounds pass through unchanged after
// validation. The result is deterministic: identical inputs always
// resolve to identical ranges.
func ResolveRange(xs, ys []float64, opts Options) (Range, error) {
	if !opts.AutoRange {
		if opts.XMin >= opts.XMax {
			return Range{}, errors.New(errors.ErrCodeInvalidRange,
				"invalid X range: x_min (%g) must be less than x_max (%g)", opts.XMin, opts.XMax)
		}
		if opts.YMin >= opts.YMax {
			return Range{}, errors.New(errors.ErrCodeInvalidRange,
				"invalid Y range: y_min (%g) must be less than y_max (%g)", opts.YMin, opts.YMax)
		}
		return Range{XMin: opts.XMin, XMax: opts.XMax, YMin: opts.YMin, YMax: opts.YMax}, nil
	}

	if len(xs) == 0 || len(ys) == 0 {
		return Range{}, errors.New(errors.ErrCodeInvalidInput, "cannot auto-range an empty series")
	}

	xMin, xMax, err := seriesBounds("x", xs)
	if err != nil {
		return Range{}, err
	}
	yMin, yMax, err := seriesBounds("y", ys)
	if err != nil {
		return Range{}, err
	}

	xPad := pad(xMax - xMin)
	yPad := pad(yMax - yMin)

	return Range{
		XMin: xMin - xPad,
		XMax: xMax + xPad,
		YMin: yMin - yPad,
		YMax: yMax + yPad,
	}, nil
}

// seriesBounds returns the min and max of vs, rejecting non-finite values.
func seriesBounds(axis string, vs []float64) (min, max float64, err error) {
	min, max = vs[0], vs[0]
	for i, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, errors.New(errors.ErrCodeInvalidInput,
				"non-finite %s value at index %d", axis, i)
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, nil
}

// pad returns the per-side padding for a data span.
func pad(span float64) float64 {
	if math.Abs(span) < spanEpsilon {
		return degeneratePad
	}
	return span * autoPadFraction
}
