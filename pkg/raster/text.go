package raster

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/roffe/dialgauge/pkg/common"
	"github.com/roffe/dialgauge/pkg/gauge"
	"github.com/roffe/dialgauge/pkg/svgsurface"
)

var (
	fontOnce sync.Once
	goFont   *opentype.Font
	fontErr  error
)

func regular() (*opentype.Font, error) {
	fontOnce.Do(func() {
		goFont, fontErr = opentype.Parse(goregular.TTF)
	})
	return goFont, fontErr
}

type textLine struct {
	target   gauge.Target
	y        float64
	size     float64
	centered bool // vertically centered on y instead of sitting on it
}

func drawTexts(img *image.RGBA, s *svgsurface.Surface) error {
	f, err := regular()
	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}
	style := s.Style()
	_, sh := s.Size()
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if sh <= 0 || w <= 0 || h <= 0 {
		return nil
	}
	scale := float64(h) / float64(sh)

	lines := []textLine{
		{gauge.TargetTitle, common.TitleY, style.TitleSize, false},
		{gauge.TargetNumeric, common.NumericY, style.NumericSize, true},
		{gauge.TargetSubtitle, common.SubtitleY, style.SubtitleSize, false},
	}
	for _, l := range lines {
		text := s.Text(l.target)
		if text == "" || !s.Visible(l.target) {
			continue
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    l.size * scale,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return fmt.Errorf("failed to create font face: %w", err)
		}
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(style.Text),
			Face: face,
		}
		baseline := fixed.I(int(l.y * float64(h)))
		if l.centered {
			m := face.Metrics()
			baseline += (m.Ascent - m.Descent) / 2
		}
		d.Dot = fixed.Point26_6{
			X: (fixed.I(w) - d.MeasureString(text)) / 2,
			Y: baseline,
		}
		d.DrawString(text)
		face.Close()
	}
	return nil
}
