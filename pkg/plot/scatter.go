package plot

import (
	"image"
	"image/color"
	"io"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/plotkit/plotkit/pkg/errors"
	"github.com/plotkit/plotkit/pkg/fonts"
)

// Fixed chart geometry, in pixels. The bottom and left insets reserve
// room for tick and axis labels so the data area never collides with
// text, mirroring the margin/label-area split of the chart layout.
const (
	chartMargin = 10 // outer margin, all sides
	xLabelArea  = 40 // bottom strip for X labels
	yLabelArea  = 50 // left strip for Y labels
)

// Font sizes, in points.
const (
	tickFontSize = 14 // tick labels
	axisFontSize = 16 // axis titles
)

// markerColor is the fill color for point markers.
var markerColor = color.RGBA{B: 255, A: 255}

// RenderFile renders a scatter plot of the series to a PNG file at
// path. All validation (dimensions, series lengths, range resolution,
// font registration) happens before the file is created, so a
// validation failure never creates or truncates the output. A failure
// after the file is open may leave a partial file behind; callers must
// treat any error as "no usable output".
func RenderFile(path string, xs, ys []float64, opts Options) error {
	p, err := build(xs, ys, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "failed to create output file %q", path)
	}

	if err := writePNG(f, p, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "failed to write PNG")
	}
	return nil
}

// Render renders a scatter plot of the series as PNG bytes written to w.
func Render(w io.Writer, xs, ys []float64, opts Options) error {
	p, err := build(xs, ys, opts)
	if err != nil {
		return err
	}
	return writePNG(w, p, opts)
}

// build validates the inputs and assembles the chart: white
// background, grid and tick mesh in the registered font, and one
// filled circle per point in input order (coincident points overpaint,
// last drawn wins).
func build(xs, ys []float64, opts Options) (*plot.Plot, error) {
	if err := fonts.Register(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(xs) != len(ys) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"xs and ys must have equal length (got %d and %d)", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "point count must be greater than zero")
	}

	r, err := ResolveRange(xs, ys, opts)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.BackgroundColor = color.White
	p.X.Min, p.X.Max = r.XMin, r.XMax
	p.Y.Min, p.Y.Max = r.YMin, r.YMax

	tickFont := fonts.Style(vg.Points(tickFontSize))
	axisFont := fonts.Style(vg.Points(axisFontSize))
	p.X.Tick.Label.Font = tickFont
	p.Y.Tick.Label.Font = tickFont
	p.X.Label.TextStyle.Font = axisFont
	p.Y.Label.TextStyle.Font = axisFont

	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "failed to draw points")
	}
	s.GlyphStyle.Shape = vgdraw.CircleGlyph{}
	s.GlyphStyle.Radius = pxLength(opts.MarkerRadius)
	s.GlyphStyle.Color = markerColor
	p.Add(s)

	return p, nil
}

// writePNG draws the assembled chart onto a raster of the configured
// pixel dimensions and encodes it as PNG to w.
func writePNG(w io.Writer, p *plot.Plot, opts Options) error {
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	c := vgimg.NewWith(vgimg.UseImage(img))

	dc := vgdraw.New(c)
	dc = vgdraw.Crop(dc,
		pxLength(chartMargin+yLabelArea), -pxLength(chartMargin),
		pxLength(chartMargin+xLabelArea), -pxLength(chartMargin))
	p.Draw(dc)

	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(w); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "failed to write PNG")
	}
	return nil
}

// pxLength converts a pixel measure to a canvas length at the
// raster's DPI.
func pxLength(px float64) vg.Length {
	return vg.Length(px) * vg.Inch / vgimg.DefaultDPI
}
