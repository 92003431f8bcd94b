// Command bspline draws a clamped uniform B-spline and its de Boor
// construction into a PNG file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"honnef.co/go/bspline"
	"honnef.co/go/bspline/internal/render"
)

const defaultPoints = "-0.5,-0.25 0,-0.25 0.25,0 0,0.25 0.5,0.25"

func main() {
	var (
		configPath = flag.String("config", "", "TOML render configuration")
		output     = flag.String("output", "bspline.png", "output file")
		order      = flag.Int("order", 3, "order of the curve")
		u          = flag.Float64("u", 0.5, "parameter of the construction shown")
		points     = flag.String("points", defaultPoints, "control points as space separated x,y pairs")
		width      = flag.Int("width", 0, "image width, overrides the configuration")
		height     = flag.Int("height", 0, "image height, overrides the configuration")
		verbose    = flag.Bool("v", false, "log debug output")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	bspline.SetLogger(log)

	if err := run(log, *configPath, *output, *order, *u, *points, *width, *height); err != nil {
		log.Error("failed", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, configPath, output string, order int, u float64, points string, width, height int) error {
	cfg := render.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = render.LoadConfig(configPath)
		if err != nil {
			return err
		}
	}
	if width > 0 {
		cfg.Width = width
	}
	if height > 0 {
		cfg.Height = height
	}

	pts, err := parsePoints(points)
	if err != nil {
		return err
	}
	// Start at the lowest order and raise it the way an editor would, so
	// every step is checked.
	s, err := bspline.NewSession(pts, bspline.MinOrder, bspline.WithLogger(log))
	if err != nil {
		return err
	}
	if err := s.SetOrder(order); err != nil {
		return err
	}
	u = s.StepParameter(u, 0)

	r, err := render.New(cfg, log)
	if err != nil {
		return err
	}
	defer r.Close()
	if err := r.Draw(s.Snapshot(), u); err != nil {
		return err
	}
	if err := r.SavePNG(output); err != nil {
		return err
	}

	st := s.Stats()
	pt, err := s.Evaluate(u)
	if err != nil {
		return err
	}
	log.Info("curve",
		"order", st.Order,
		"points", st.Points,
		"knots", st.Knots,
		"u", u,
		"at", pt)
	return nil
}

// parsePoints parses control points written as x,y pairs separated by
// whitespace or semicolons.
func parsePoints(s string) ([]bspline.Point, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) == 0 {
		return nil, errors.New("no control points")
	}
	out := make([]bspline.Point, 0, len(fields))
	for _, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return nil, fmt.Errorf("control point %q: want x,y", f)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, fmt.Errorf("control point %q: %w", f, err)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, fmt.Errorf("control point %q: %w", f, err)
		}
		out = append(out, bspline.Pt(x, y))
	}
	return out, nil
}
