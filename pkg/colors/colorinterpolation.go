package colors

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

type ColorBlindMode int

const (
	ModeNormal       ColorBlindMode = iota // green, yellow, red
	ModeUniversal                          // blue, gray, orange
	ModeProtanopia                         // blue, white, brown
	ModeDeuteranopia                       // blue, beige, brown
	ModeTritanopia                         // teal, gray, red
)

// palette is the low, mid and high color of a scale.
type palette [3]color.RGBA

var palettes = [...]struct {
	name   string
	colors palette
}{
	ModeNormal:       {"normal", palette{{0, 255, 0, 255}, {255, 255, 0, 255}, {255, 0, 0, 255}}},
	ModeUniversal:    {"universal", palette{{0x21, 0x66, 0xac, 255}, {0xf7, 0xf7, 0xf7, 255}, {0xff, 0xa5, 0x00, 255}}},
	ModeProtanopia:   {"protanopia", palette{{0x05, 0x71, 0xb0, 255}, {0xf7, 0xf7, 0xf7, 255}, {0x96, 0x4b, 0x00, 255}}},
	ModeDeuteranopia: {"deuteranopia", palette{{0x4a, 0x90, 0xe2, 255}, {0xf5, 0xe6, 0xb3, 255}, {0x8b, 0x45, 0x13, 255}}},
	ModeTritanopia:   {"tritanopia", palette{{0x00, 0x80, 0x80, 255}, {0xf7, 0xf7, 0xf7, 255}, {0xd7, 0x30, 0x27, 255}}},
}

func (m ColorBlindMode) String() string {
	if m < 0 || int(m) >= len(palettes) {
		return "unknown"
	}
	return palettes[m].name
}

// ParseColorBlindMode looks a palette up by name, ignoring case.
func ParseColorBlindMode(s string) (ColorBlindMode, error) {
	for i, p := range palettes {
		if strings.EqualFold(strings.TrimSpace(s), p.name) {
			return ColorBlindMode(i), nil
		}
	}
	return ModeNormal, fmt.Errorf("unknown color blind mode %q", s)
}

// GetColorInterpolation returns the color for value on the scale [min, max]
// in the given palette. Values outside the scale get the end colors.
func GetColorInterpolation(min, max, value float64, mode ColorBlindMode) color.RGBA {
	t := (value - min) / (max - min)
	if math.IsNaN(t) {
		return color.RGBA{128, 128, 128, 255}
	}
	t = math.Max(0, math.Min(1, t))

	if mode < 0 || int(mode) >= len(palettes) {
		mode = ModeNormal
	}
	p := palettes[mode].colors
	if t < 0.5 {
		return lerpColor(p[0], p[1], t*2)
	}
	return lerpColor(p[1], p[2], (t-0.5)*2)
}

func lerpColor(c1, c2 color.RGBA, t float64) color.RGBA {
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + t*(float64(b)-float64(a)))
	}
	return color.RGBA{
		R: lerp(c1.R, c2.R),
		G: lerp(c1.G, c2.G),
		B: lerp(c1.B, c2.B),
		A: 255,
	}
}
