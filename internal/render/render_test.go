package render

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/bspline"
)

func scenarioCurve(t *testing.T) bspline.Curve {
	t.Helper()
	c, err := bspline.NewCurve([]bspline.Point{
		bspline.Pt(-0.5, -0.25),
		bspline.Pt(0, -0.25),
		bspline.Pt(0.25, 0),
		bspline.Pt(0, 0.25),
		bspline.Pt(0.5, 0.25),
	}, 3)
	require.NoError(t, err)
	return c
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 200
	cfg.Height = 200
	return cfg
}

func rgba(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func TestDecodeConfig(t *testing.T) {
	cfg, err := DecodeConfig(strings.NewReader(`
width = 640
show_construction = false
view = [-2.0, -1.0, 2.0, 1.0]

[colors]
curve = "yellow"
`))
	require.NoError(t, err)

	want := DefaultConfig()
	want.Width = 640
	want.ShowConstruction = false
	want.View = [4]float64{-2, -1, 2, 1}
	want.Colors.Curve = "yellow"
	assert.Equal(t, want, cfg)
}

func TestDecodeConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown key", `colour = "red"`},
		{"bad colour", "[colors]\nknots = \"no such colour\""},
		{"empty view", `view = [0.0, 0.0, 0.0, 1.0]`},
		{"negative size", `height = -1`},
		{"zero step", `sample_step = 0.0`},
		{"syntax", `width = `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeConfig(strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.toml")
	require.NoError(t, os.WriteFile(path, []byte("line_width = 3.0\n"), 0o644))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.LineWidth)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Colors.Background = "blurple"
	_, err := New(cfg, nil)
	assert.Error(t, err)
}

func TestTransform(t *testing.T) {
	r, err := New(smallConfig(), nil)
	require.NoError(t, err)
	defer r.Close()

	aff := r.Transform()
	for _, tt := range []struct {
		in, want bspline.Point
	}{
		{bspline.Pt(-1, -1), bspline.Pt(0, 200)},
		{bspline.Pt(1, 1), bspline.Pt(200, 0)},
		{bspline.Pt(0, 0), bspline.Pt(100, 100)},
	} {
		got := tt.in.Transform(aff)
		assert.InDelta(t, tt.want.X, got.X, 1e-9)
		assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
	}
}

func TestUnprojectPick(t *testing.T) {
	r, err := New(smallConfig(), nil)
	require.NoError(t, err)
	defer r.Close()

	s, err := bspline.NewSession(scenarioCurve(t).Points, 3)
	require.NoError(t, err)
	// (0.25, 0) sits at pixel (125, 100).
	i, ok := s.Pick(r.Unproject(125.5, 100.5))
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = s.Pick(r.Unproject(10, 10))
	assert.False(t, ok)
}

func TestDraw(t *testing.T) {
	cfg := smallConfig()
	cfg.PointRadius = 0.05
	cfg.ShowConstruction = false
	r, err := New(cfg, nil)
	require.NoError(t, err)
	defer r.Close()

	c := scenarioCurve(t)
	require.NoError(t, r.Draw(c, 0.5))
	img := r.Image()
	require.Equal(t, 200, img.Bounds().Dx())
	require.Equal(t, 200, img.Bounds().Dy())

	// Nothing is drawn near the corners.
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, rgba(img.At(2, 2)))

	// The disc of the second control point covers its centre. No knot sits
	// there and the curve passes well clear of it.
	p := c.Points[1].Transform(r.Transform())
	got := rgba(img.At(int(p.X), int(p.Y)))
	assert.Greater(t, got.R, uint8(200))
	assert.Greater(t, got.G, uint8(200))
	assert.Greater(t, got.B, uint8(200))
}

func TestDrawable(t *testing.T) {
	p, q := bspline.Pt(0.1, 0.2), bspline.Pt(0.3, 0.2)
	assert.True(t, drawable(bspline.Line{P0: p, P1: q}))
	assert.False(t, drawable(bspline.Line{P0: p, P1: p}))
	assert.False(t, drawable(bspline.Line{P0: p, P1: bspline.Pt(math.NaN(), 0)}))
}

func TestDrawCoincidentPoints(t *testing.T) {
	r, err := New(smallConfig(), nil)
	require.NoError(t, err)
	defer r.Close()

	pt := bspline.Pt(0.2, 0.2)
	c, err := bspline.NewCurve([]bspline.Point{pt, pt, pt, bspline.Pt(0.5, 0.5)}, 3)
	require.NoError(t, err)
	segs, err := c.ConstructionSegments(0)
	require.NoError(t, err)
	for _, seg := range segs {
		assert.False(t, drawable(seg))
	}
	assert.NoError(t, r.Draw(c, 0))
}

func TestDrawRejectsStaleCurve(t *testing.T) {
	r, err := New(smallConfig(), nil)
	require.NoError(t, err)
	defer r.Close()

	c := scenarioCurve(t)
	c.Points = append(c.Points, bspline.Pt(1, 1))
	assert.ErrorIs(t, r.Draw(c, 0.5), bspline.ErrInconsistent)
}

func TestWritePNG(t *testing.T) {
	cfg := smallConfig()
	cfg.ShowPoints = false
	cfg.ShowConstruction = false
	r, err := New(cfg, nil)
	require.NoError(t, err)
	defer r.Close()
	require.NoError(t, r.Draw(scenarioCurve(t), 0))

	var buf bytes.Buffer
	require.NoError(t, r.WritePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())

	path := filepath.Join(t.TempDir(), "curve.png")
	require.NoError(t, r.SavePNG(path))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	assert.NoError(t, err)
}
