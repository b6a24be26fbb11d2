package svgsurface

import (
	"fmt"
	"image/color"

	"github.com/roffe/dialgauge/pkg/colors"
)

// Style holds the presentation of a gauge document.
type Style struct {
	Background    color.RGBA
	ArcBackground color.RGBA
	Arc           color.RGBA
	Text          color.RGBA
	ArcWidth      float64
	TitleSize     float64 // px
	NumericSize   float64 // px
	SubtitleSize  float64 // px
	FontFamily    string
}

func DefaultStyle() Style {
	return Style{
		Background:    color.RGBA{0xff, 0xff, 0xff, 0xff},
		ArcBackground: color.RGBA{0xef, 0xef, 0xef, 0xff},
		Arc:           color.RGBA{0x00, 0x00, 0x00, 0xff},
		Text:          color.RGBA{0x00, 0x00, 0x00, 0xff},
		ArcWidth:      20,
		TitleSize:     24,
		NumericSize:   40,
		SubtitleSize:  16,
		FontFamily:    "sans-serif",
	}
}

func (s Style) backgroundCSS() string {
	return "fill:" + colors.Hex(s.Background)
}

func (s Style) strokeCSS(c color.RGBA) string {
	return fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g", colors.Hex(c), s.ArcWidth)
}

func (s Style) textCSS(size float64, extra string) string {
	css := fmt.Sprintf("text-anchor:middle;font-family:%s;font-size:%gpx;fill:%s", s.FontFamily, size, colors.Hex(s.Text))
	if extra != "" {
		css += ";" + extra
	}
	return css
}
