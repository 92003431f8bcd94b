// Package render draws B-spline curves into raster images.
package render

import (
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/gogpu/gg"

	"honnef.co/go/bspline"
)

// Renderer draws curves with a fixed configuration. A Renderer owns a drawing
// context and must be closed.
type Renderer struct {
	cfg Config
	pal palette
	aff bspline.Affine
	dc  *gg.Context
	log *slog.Logger
}

// New returns a renderer for cfg. If log is nil, the package logger of
// bspline is used.
func New(cfg Config, log *slog.Logger) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render configuration: %w", err)
	}
	pal, _ := cfg.Colors.palette()
	if log == nil {
		log = bspline.Logger()
	}
	w, h := float64(cfg.Width), float64(cfg.Height)
	return &Renderer{
		cfg: cfg,
		pal: pal,
		// Curve space has y pointing up, image space has it pointing down.
		aff: bspline.MapRect(cfg.view(), bspline.Rect{X0: 0, Y0: h, X1: w, Y1: 0}),
		dc:  gg.NewContext(cfg.Width, cfg.Height),
		log: log,
	}, nil
}

func (r *Renderer) Close() error {
	return r.dc.Close()
}

// Transform maps curve space to pixel space.
func (r *Renderer) Transform() bspline.Affine { return r.aff }

// Unproject maps a pixel position back to curve space, for picking control
// points under a pointer.
func (r *Renderer) Unproject(x, y float64) bspline.Point {
	return bspline.Pt(x, y).Transform(r.aff.Invert())
}

func (r *Renderer) px(pt bspline.Point) bspline.Point {
	return pt.Transform(r.aff)
}

// radius converts a curve space distance along x to pixels.
func (r *Renderer) radius(d float64) float64 {
	return d * float64(r.cfg.Width) / r.cfg.view().Width()
}

// Draw replaces the image with a drawing of c. The parameter marker and the
// construction lines are drawn at u when the configuration asks for them.
func (r *Renderer) Draw(c bspline.Curve, u float64) error {
	if err := c.Validate(); err != nil {
		return err
	}
	dc := r.dc
	dc.ClearWithColor(gg.FromColor(r.pal.background))
	dc.SetLineWidth(r.cfg.LineWidth)

	samples, err := c.Sample(r.cfg.SampleStep)
	if err != nil {
		return err
	}
	dc.SetColor(r.pal.curve)
	r.polyline(samples)
	if err := dc.Stroke(); err != nil {
		return err
	}

	if r.cfg.ShowPoints {
		if err := r.drawPoints(c); err != nil {
			return err
		}
	}
	if r.cfg.ShowConstruction {
		if err := r.drawConstruction(c, u); err != nil {
			return err
		}
	}
	r.log.Debug("drew curve",
		"points", len(c.Points),
		"order", c.Order,
		"samples", len(samples),
		"u", c.ClampParameter(u))
	return nil
}

func (r *Renderer) polyline(pts []bspline.Point) {
	for i, pt := range pts {
		p := r.px(pt)
		if i == 0 {
			r.dc.MoveTo(p.X, p.Y)
		} else {
			r.dc.LineTo(p.X, p.Y)
		}
	}
}

func (r *Renderer) drawPoints(c bspline.Curve) error {
	dc := r.dc
	rad := r.radius(r.cfg.PointRadius)

	dc.SetColor(r.pal.points)
	for _, pt := range c.Points {
		p := r.px(pt)
		dc.DrawCircle(p.X, p.Y, rad)
	}
	if err := dc.Fill(); err != nil {
		return err
	}

	knots, err := c.KnotPoints()
	if err != nil {
		return err
	}
	dc.SetColor(r.pal.knots)
	for _, pt := range knots {
		p := r.px(pt)
		dc.DrawCircle(p.X, p.Y, rad/2)
	}
	return dc.Fill()
}

func (r *Renderer) drawConstruction(c bspline.Curve, u float64) error {
	dc := r.dc
	segs, err := c.ConstructionSegments(u)
	if err != nil {
		return err
	}
	dc.SetColor(r.pal.construction)
	for _, seg := range segs {
		if !drawable(seg) {
			continue
		}
		seg = seg.Transform(r.aff)
		dc.DrawLine(seg.P0.X, seg.P0.Y, seg.P1.X, seg.P1.Y)
	}
	if err := dc.Stroke(); err != nil {
		return err
	}

	pt, err := c.Evaluate(u)
	if err != nil {
		return err
	}
	p := r.px(pt)
	d := r.radius(r.cfg.PointRadius)
	dc.SetColor(r.pal.marker)
	dc.DrawLine(p.X-d, p.Y-d, p.X+d, p.Y+d)
	dc.DrawLine(p.X-d, p.Y+d, p.X+d, p.Y-d)
	return dc.Stroke()
}

// drawable reports whether seg covers any distance. Coincident control points
// cut zero-length segments.
func drawable(seg bspline.Line) bool {
	return !seg.IsNaN() && seg.Length() > 0
}

// Image returns the current drawing.
func (r *Renderer) Image() image.Image {
	return r.dc.Image()
}

// WritePNG encodes the current drawing as PNG.
func (r *Renderer) WritePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

// SavePNG writes the current drawing to a PNG file.
func (r *Renderer) SavePNG(path string) error {
	if err := r.dc.SavePNG(path); err != nil {
		return err
	}
	r.log.Info("saved image", "path", path, "width", r.cfg.Width, "height", r.cfg.Height)
	return nil
}
