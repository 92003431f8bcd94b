package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/colornames"

	"honnef.co/go/bspline"
)

// Config controls how a curve is drawn. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// View is the part of curve space mapped onto the image, as
	// [x0, y0, x1, y1] with y pointing up.
	View [4]float64 `toml:"view"`

	// LineWidth is in pixels.
	LineWidth float64 `toml:"line_width"`
	// SampleStep is the parameter increment between curve samples.
	SampleStep float64 `toml:"sample_step"`
	// PointRadius is the radius of control point and knot markers, in curve
	// space.
	PointRadius float64 `toml:"point_radius"`

	ShowPoints       bool `toml:"show_points"`
	ShowConstruction bool `toml:"show_construction"`

	Colors Colors `toml:"colors"`
}

// Colors names the palette entries, using the SVG 1.1 colour keywords.
type Colors struct {
	Background   string `toml:"background"`
	Curve        string `toml:"curve"`
	Points       string `toml:"points"`
	Knots        string `toml:"knots"`
	Construction string `toml:"construction"`
	Marker       string `toml:"marker"`
}

// DefaultConfig draws a white curve and control points on black, with red
// knots and parameter marker and green construction lines.
func DefaultConfig() Config {
	return Config{
		Width:            1000,
		Height:           1000,
		View:             [4]float64{-1, -1, 1, 1},
		LineWidth:        1.5,
		SampleStep:       bspline.DefaultSampleStep,
		PointRadius:      bspline.DefaultPickRadius,
		ShowPoints:       true,
		ShowConstruction: true,
		Colors: Colors{
			Background:   "black",
			Curve:        "white",
			Points:       "white",
			Knots:        "red",
			Construction: "lime",
			Marker:       "red",
		},
	}
}

// LoadConfig reads a TOML file. Keys missing from the file keep their
// defaults; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig decodes TOML from r on top of DefaultConfig and validates the
// result.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) view() bspline.Rect {
	return bspline.Rect{X0: cfg.View[0], Y0: cfg.View[1], X1: cfg.View[2], Y1: cfg.View[3]}
}

func (cfg Config) Validate() error {
	var errs []error
	if cfg.Width <= 0 || cfg.Height <= 0 {
		errs = append(errs, fmt.Errorf("image size %dx%d is empty", cfg.Width, cfg.Height))
	}
	if v := cfg.view(); v.IsNaN() || v.Width() == 0 || v.Height() == 0 {
		errs = append(errs, fmt.Errorf("view %v is empty", cfg.View))
	}
	if !(cfg.LineWidth > 0) {
		errs = append(errs, fmt.Errorf("line width %g isn't positive", cfg.LineWidth))
	}
	if !(cfg.SampleStep > 0) {
		errs = append(errs, fmt.Errorf("sample step %g isn't positive", cfg.SampleStep))
	}
	if !(cfg.PointRadius > 0) {
		errs = append(errs, fmt.Errorf("point radius %g isn't positive", cfg.PointRadius))
	}
	if _, err := cfg.Colors.palette(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

type palette struct {
	background, curve, points, knots, construction, marker color.RGBA
}

func (c Colors) palette() (palette, error) {
	var p palette
	var errs []error
	for _, e := range []struct {
		name string
		dst  *color.RGBA
	}{
		{c.Background, &p.background},
		{c.Curve, &p.curve},
		{c.Points, &p.points},
		{c.Knots, &p.knots},
		{c.Construction, &p.construction},
		{c.Marker, &p.marker},
	} {
		col, ok := colornames.Map[e.name]
		if !ok {
			errs = append(errs, fmt.Errorf("unknown colour %q", e.name))
			continue
		}
		*e.dst = col
	}
	return p, errors.Join(errs...)
}
