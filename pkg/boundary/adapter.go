package boundary

import (
	"fmt"
	"unicode/utf8"

	"github.com/plotkit/plotkit/pkg/errors"
	"github.com/plotkit/plotkit/pkg/plot"
)

// Status codes returned across the boundary.
const (
	// StatusOK means the render succeeded and the channel is empty.
	StatusOK int32 = 0

	// StatusError means the render failed; the channel holds the reason.
	StatusError int32 = 1
)

// RenderFunc renders the series to a PNG file at path.
type RenderFunc func(path string, xs, ys []float64, opts plot.Options) error

// Adapter validates raw inputs, runs the render pipeline inside a
// crash-containment barrier, and maps every outcome to a status code
// plus a channel update.
type Adapter struct {
	errs   *Channel
	render RenderFunc
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithRenderFunc replaces the render pipeline. Used by tests to
// observe calls or inject failures and panics.
func WithRenderFunc(fn RenderFunc) Option {
	return func(a *Adapter) { a.render = fn }
}

// New creates an Adapter reporting through errs. By default it renders
// with plot.RenderFile.
func New(errs *Channel, opts ...Option) *Adapter {
	a := &Adapter{errs: errs, render: plot.RenderFile}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Render runs one render call. A nil path, xs, or ys models a NULL
// pointer from the foreign caller; the slices are the safe,
// bounds-limited views the cgo layer constructed from the caller's
// declared count.
//
// The steps are strictly ordered and short-circuit on first failure:
// clear the channel, reject null references, reject an empty series,
// reject a non-UTF-8 path, then render. Any panic raised by the
// pipeline is caught here and converted into an "Internal panic"
// message so it can never unwind past the exported entry point.
func (a *Adapter) Render(path *string, xs, ys []float64, opts plot.Options) (status int32) {
	a.errs.Clear()

	defer func() {
		if r := recover(); r != nil {
			a.errs.Set(fmt.Sprintf("Internal panic: %v", r))
			status = StatusError
		}
	}()

	if err := validate(path, xs, ys); err != nil {
		a.errs.Set(errors.UserMessage(err))
		return StatusError
	}

	if err := a.render(*path, xs, ys, opts); err != nil {
		a.errs.Set(errors.UserMessage(err))
		return StatusError
	}
	return StatusOK
}

// validate performs the ordered pointer, count, and encoding checks.
func validate(path *string, xs, ys []float64) error {
	if path == nil {
		return errors.New(errors.ErrCodeInvalidPath, "path pointer is NULL")
	}
	if xs == nil {
		return errors.New(errors.ErrCodeInvalidInput, "x data pointer is NULL")
	}
	if ys == nil {
		return errors.New(errors.ErrCodeInvalidInput, "y data pointer is NULL")
	}
	if len(xs) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "point count must be greater than zero")
	}
	if !utf8.ValidString(*path) {
		return errors.New(errors.ErrCodeInvalidPath, "path is not valid UTF-8")
	}
	return nil
}
