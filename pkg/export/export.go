// Package export renders configured gauges to SVG or PNG files.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/roffe/dialgauge/pkg/colors"
	"github.com/roffe/dialgauge/pkg/config"
	"github.com/roffe/dialgauge/pkg/gauge"
	"github.com/roffe/dialgauge/pkg/raster"
	"github.com/roffe/dialgauge/pkg/svgsurface"
)

type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSVG, FormatPNG:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q, want svg or png", s)
}

// Surface builds a mounted surface for g. Each call gets its own controller.
func Surface(g config.GaugeConfig) (*svgsurface.Surface, error) {
	s := svgsurface.New(g.Width, g.Height)
	ctrl := gauge.New(s)
	if err := g.Apply(ctrl); err != nil {
		return nil, fmt.Errorf("gauge %s: %w", g.Name, err)
	}
	if err := ctrl.Mount(); err != nil {
		return nil, fmt.Errorf("gauge %s: %w", g.Name, err)
	}

	arcColor, err := colors.ArcColor(g.ArcColor, g.Topic, ctrl.ScaleStart(), ctrl.ScaleEnd())
	if err != nil {
		return nil, fmt.Errorf("gauge %s: arc_color: %w", g.Name, err)
	}
	v := ctrl.ScaleStart()
	if raw, ok := ctrl.Value(); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			v = f
		}
	}
	s.SetArcColor(arcColor(v))
	return s, nil
}

// Render writes g to w in the given format.
func Render(w io.Writer, g config.GaugeConfig, format Format) error {
	s, err := Surface(g)
	if err != nil {
		return err
	}
	switch format {
	case FormatSVG:
		_, err = s.WriteTo(w)
		return err
	case FormatPNG:
		img, err := raster.Image(s, g.Width, g.Height)
		if err != nil {
			return fmt.Errorf("gauge %s: %w", g.Name, err)
		}
		return raster.EncodePNG(w, img)
	}
	return fmt.Errorf("unknown format %q", format)
}

// File renders g into dir and returns the written path.
func File(dir string, g config.GaugeConfig, format Format) (string, error) {
	path := filepath.Join(dir, fileName(g.Name)+"."+string(format))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := Render(f, g, format); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	return path, f.Close()
}

// All renders every gauge concurrently, at most jobs at a time. Paths are
// returned in gauge order.
func All(ctx context.Context, dir string, gauges []config.GaugeConfig, format Format, jobs int) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, len(gauges))
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, gc := range gauges {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path, err := File(dir, gc, format)
			if err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func fileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, name)
}
