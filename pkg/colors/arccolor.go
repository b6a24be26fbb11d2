package colors

import (
	"image/color"
	"strings"
)

// Arc color settings understood by ArcColor.
const (
	ArcColorDefault = ""      // black, like the stock stylesheet
	ArcColorTopic   = "topic" // stable color derived from the gauge topic
	ArcColorScale   = "scale" // follows the value, "scale:<mode>" picks the palette
)

// ArcColor returns a function giving the arc color for a value. The
// setting is a hex color, "topic", "scale" or "scale:<color blind mode>".
func ArcColor(setting, topic string, min, max float64) (func(value float64) color.RGBA, error) {
	setting = strings.TrimSpace(setting)
	switch {
	case setting == ArcColorDefault:
		return fixed(color.RGBA{A: 255}), nil
	case strings.EqualFold(setting, ArcColorTopic):
		return fixed(GetColor(topic)), nil
	case strings.EqualFold(setting, ArcColorScale):
		return scaled(min, max, ModeNormal), nil
	case len(setting) > len(ArcColorScale)+1 && strings.EqualFold(setting[:len(ArcColorScale)+1], ArcColorScale+":"):
		mode, err := ParseColorBlindMode(setting[len(ArcColorScale)+1:])
		if err != nil {
			return nil, err
		}
		return scaled(min, max, mode), nil
	}
	c, err := ParseHex(setting)
	if err != nil {
		return nil, err
	}
	return fixed(c), nil
}

func fixed(c color.RGBA) func(float64) color.RGBA {
	return func(float64) color.RGBA { return c }
}

func scaled(min, max float64, mode ColorBlindMode) func(float64) color.RGBA {
	return func(v float64) color.RGBA {
		return GetColorInterpolation(min, max, v, mode)
	}
}
