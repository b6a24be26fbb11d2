// Package raster turns a gauge surface into an image.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/roffe/dialgauge/pkg/gauge"
	"github.com/roffe/dialgauge/pkg/svgsurface"
)

// Arcs renders the visible arcs of s into a transparent w×h image, scaling
// the surface's view box to fit.
func Arcs(s *svgsurface.Surface, w, h int) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	sw, sh := s.Size()
	if w <= 0 || h <= 0 || sw <= 0 || sh <= 0 {
		return img, nil
	}
	for _, t := range []gauge.Target{gauge.TargetBackgroundArc, gauge.TargetArc} {
		if d := s.Path(t); d != "" {
			if _, err := gauge.ParseArc(d); err != nil {
				return nil, fmt.Errorf("%s: %w", t, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := s.WriteArcsTo(&buf); err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(&buf, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse arcs: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img, nil
}

// Image renders the whole gauge: background, arcs and the visible texts.
func Image(s *svgsurface.Surface, w, h int) (*image.RGBA, error) {
	arcs, err := Arcs(s, w, h)
	if err != nil {
		return nil, err
	}
	style := s.Style()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(style.Background), image.Point{}, draw.Src)
	draw.Draw(img, img.Bounds(), arcs, image.Point{}, draw.Over)
	if err := drawTexts(img, s); err != nil {
		return nil, err
	}
	return img, nil
}

func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
