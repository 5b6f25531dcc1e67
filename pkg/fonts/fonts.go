// Package fonts registers the bundled font with the chart engine.
//
// The font bytes ship inside the binary (the Go Regular face from
// golang.org/x/image), so rendering never depends on system font
// discovery. Registration happens exactly once per process: the first
// caller parses the bytes and installs the face into the engine's font
// cache, and the outcome, success or failure, is cached and returned
// to every later caller. A failure is permanent: the embedded bytes
// cannot change at runtime, so retrying cannot succeed.
package fonts

import (
	"sync"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/plotkit/plotkit/pkg/errors"
)

// Name is the typeface under which the bundled font is registered with
// the engine. Text styles reference the font by this name.
const Name = "plotkit-regular"

var (
	registerOnce sync.Once
	registerErr  error
)

// Register parses the bundled font bytes and installs them in the
// engine's font cache, making Name resolvable by text styles. Only the
// first call does any work; all callers, including concurrent ones,
// observe the result of that single attempt.
func Register() error {
	registerOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			registerErr = errors.Wrap(errors.ErrCodeFont, err, "failed to register bundled font: invalid font data")
			return
		}
		// Text drawing resolves faces through font.DefaultCache, so the
		// face must land there; vg.AddFont only covers legacy callers.
		font.DefaultCache.Add(font.Collection{{
			Font: font.Font{Typeface: Name},
			Face: f,
		}})
		vg.AddFont(Name, f)
		plot.DefaultFont = font.Font{Typeface: Name}
		plotter.DefaultFont = font.Font{Typeface: Name}
	})
	return registerErr
}

// Style returns a text font of the given size in the registered
// typeface. Callers must have run Register first.
func Style(size vg.Length) font.Font {
	return font.Font{Typeface: Name, Size: size}
}
