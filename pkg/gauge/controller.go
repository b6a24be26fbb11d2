// Package gauge computes the geometry of a circular dial gauge and keeps a
// DrawSurface in sync with the gauge configuration.
package gauge

import (
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/roffe/dialgauge/pkg/common"
)

// Attribute names understood by SetAttribute.
const (
	AttrValue       = "value"
	AttrMainTitle   = "main-title"
	AttrSubTitle    = "sub-title"
	AttrScaleStart  = "scale-start"
	AttrScaleEnd    = "scale-end"
	AttrScaleOffset = "scale-offset"
)

// OverloadText is shown instead of the value when it is outside the scale.
const OverloadText = "OL"

const (
	DefaultScaleStart  = 0.0
	DefaultScaleEnd    = 100.0
	DefaultScaleOffset = 0.0
)

func ObservedAttributes() []string {
	return []string{AttrValue, AttrMainTitle, AttrSubTitle, AttrScaleStart, AttrScaleEnd, AttrScaleOffset}
}

// ApplyOrder lists the attributes in the order SetAttributes applies them.
// The whole scale is in place before the value is classified against it.
func ApplyOrder() []string {
	return []string{AttrMainTitle, AttrSubTitle, AttrScaleOffset, AttrScaleStart, AttrScaleEnd, AttrValue}
}

type Config struct {
	Value       string // as received, shown verbatim
	ValueSet    bool
	MainTitle   string
	SubTitle    string
	ScaleStart  float64
	ScaleEnd    float64
	ScaleOffset float64 // degrees, 0-180
}

// DrawInstruction is the last state pushed to the surface. ArcPath is empty
// while the value arc is hidden.
type DrawInstruction struct {
	BackgroundPath  string
	ArcPath         string
	NumericText     string
	TitleText       string
	SubtitleText    string
	TitleVisible    bool
	SubtitleVisible bool
	ArcVisible      bool
	NumericVisible  bool
}

type Controller struct {
	surface DrawSurface
	cfg     Config
	value   float64
	instr   DrawInstruction

	radiusFactor float64
	mounted      bool
	drawing      bool
}

type Option func(*Controller)

// WithRadiusFactor sets the arc radius as a fraction of the container width.
func WithRadiusFactor(f float64) Option {
	return func(c *Controller) {
		if f > 0 {
			c.radiusFactor = f
		}
	}
}

func New(surface DrawSurface, opts ...Option) *Controller {
	c := &Controller{
		surface: surface,
		cfg: Config{
			ScaleStart:  DefaultScaleStart,
			ScaleEnd:    DefaultScaleEnd,
			ScaleOffset: DefaultScaleOffset,
		},
		radiusFactor: common.ArcRadius,
		instr:        DrawInstruction{NumericText: "0.0"},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Controller) Config() Config               { return c.cfg }
func (c *Controller) Instruction() DrawInstruction { return c.instr }
func (c *Controller) Mounted() bool                { return c.mounted }

// Value returns the value as it was set and whether one is set at all.
func (c *Controller) Value() (string, bool) { return c.cfg.Value, c.cfg.ValueSet }
func (c *Controller) MainTitle() string     { return c.cfg.MainTitle }
func (c *Controller) SubTitle() string      { return c.cfg.SubTitle }
func (c *Controller) ScaleStart() float64   { return c.cfg.ScaleStart }
func (c *Controller) ScaleEnd() float64     { return c.cfg.ScaleEnd }
func (c *Controller) ScaleOffset() float64  { return c.cfg.ScaleOffset }

// Mount attaches the gauge to its surface: decides the initial visibility of
// every element and draws the background arc.
func (c *Controller) Mount() error {
	return c.guard(func() error {
		c.mounted = true
		c.setVisible(TargetTitle, c.cfg.MainTitle != "")
		c.setVisible(TargetSubtitle, c.cfg.SubTitle != "")
		c.setVisible(TargetNumeric, c.cfg.ValueSet)
		c.drawBackground()
		return c.drawValue()
	})
}

// Redraw recomputes every arc from the current container size. Hosts call
// it when the surface is resized.
func (c *Controller) Redraw() error {
	return c.guard(func() error {
		if c.mounted {
			c.drawBackground()
		}
		return c.drawValue()
	})
}

func (c *Controller) SetValue(s string) error {
	return c.guard(func() error {
		v, err := parseNumber(AttrValue, s)
		if err != nil {
			return err
		}
		c.cfg.Value, c.cfg.ValueSet, c.value = s, true, v
		return c.drawValue()
	})
}

func (c *Controller) ClearValue() error {
	return c.guard(func() error {
		c.cfg.Value, c.cfg.ValueSet, c.value = "", false, 0
		return c.drawValue()
	})
}

func (c *Controller) SetMainTitle(s string) error {
	return c.guard(func() error {
		if s == c.cfg.MainTitle {
			return nil
		}
		c.cfg.MainTitle = s
		c.setText(TargetTitle, s)
		if c.mounted {
			c.setVisible(TargetTitle, s != "")
		}
		return nil
	})
}

func (c *Controller) SetSubTitle(s string) error {
	return c.guard(func() error {
		if s == c.cfg.SubTitle {
			return nil
		}
		c.cfg.SubTitle = s
		c.setText(TargetSubtitle, s)
		if c.mounted {
			c.setVisible(TargetSubtitle, s != "")
		}
		return nil
	})
}

func (c *Controller) SetScaleStart(s string) error {
	return c.guard(func() error {
		v, err := parseNumber(AttrScaleStart, s)
		if err != nil {
			return err
		}
		if v == c.cfg.ScaleStart {
			return nil
		}
		c.cfg.ScaleStart = v
		return c.drawValue()
	})
}

func (c *Controller) SetScaleEnd(s string) error {
	return c.guard(func() error {
		v, err := parseNumber(AttrScaleEnd, s)
		if err != nil {
			return err
		}
		if v == c.cfg.ScaleEnd {
			return nil
		}
		c.cfg.ScaleEnd = v
		return c.drawValue()
	})
}

func (c *Controller) SetScaleOffset(s string) error {
	return c.guard(func() error {
		v, err := parseNumber(AttrScaleOffset, s)
		if err != nil {
			return err
		}
		if v < 0 || v > common.HalfCircle {
			return c.reject(&ConfigurationError{Field: AttrScaleOffset, Input: s, Err: ErrOffsetRange})
		}
		if v == c.cfg.ScaleOffset {
			return nil
		}
		c.cfg.ScaleOffset = v
		if c.mounted {
			c.drawBackground()
		}
		return c.drawValue()
	})
}

// SetAttribute sets a configuration field by its attribute name.
func (c *Controller) SetAttribute(name, value string) error {
	switch name {
	case AttrValue:
		return c.SetValue(value)
	case AttrMainTitle:
		return c.SetMainTitle(value)
	case AttrSubTitle:
		return c.SetSubTitle(value)
	case AttrScaleStart:
		return c.SetScaleStart(value)
	case AttrScaleEnd:
		return c.SetScaleEnd(value)
	case AttrScaleOffset:
		return c.SetScaleOffset(value)
	}
	return c.reject(&ConfigurationError{Field: name, Input: value, Err: ErrUnknownAttribute})
}

// SetAttributes sets several attributes in ApplyOrder and stops at the
// first rejected one.
func (c *Controller) SetAttributes(attrs map[string]string) error {
	for _, name := range ApplyOrder() {
		if v, ok := attrs[name]; ok {
			if err := c.SetAttribute(name, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// RemoveAttribute unsets the value, empties a title or restores a scale
// field to its default.
func (c *Controller) RemoveAttribute(name string) error {
	switch name {
	case AttrValue:
		return c.ClearValue()
	case AttrMainTitle:
		return c.SetMainTitle("")
	case AttrSubTitle:
		return c.SetSubTitle("")
	case AttrScaleStart:
		return c.SetScaleStart(f64s(DefaultScaleStart))
	case AttrScaleEnd:
		return c.SetScaleEnd(f64s(DefaultScaleEnd))
	case AttrScaleOffset:
		return c.SetScaleOffset(f64s(DefaultScaleOffset))
	}
	return c.reject(&ConfigurationError{Field: name, Err: ErrUnknownAttribute})
}

// Attribute returns the string form of a configuration field.
func (c *Controller) Attribute(name string) (string, bool) {
	switch name {
	case AttrValue:
		return c.cfg.Value, c.cfg.ValueSet
	case AttrMainTitle:
		return c.cfg.MainTitle, true
	case AttrSubTitle:
		return c.cfg.SubTitle, true
	case AttrScaleStart:
		return f64s(c.cfg.ScaleStart), true
	case AttrScaleEnd:
		return f64s(c.cfg.ScaleEnd), true
	case AttrScaleOffset:
		return f64s(c.cfg.ScaleOffset), true
	}
	return "", false
}

func (c *Controller) guard(fn func() error) error {
	if c.drawing {
		return ErrReentrant
	}
	c.drawing = true
	defer func() { c.drawing = false }()
	return fn()
}

func (c *Controller) drawValue() error {
	if !c.cfg.ValueSet {
		c.setVisible(TargetArc, false)
		c.setVisible(TargetNumeric, false)
		return nil
	}

	if c.value < c.cfg.ScaleStart || c.value > c.cfg.ScaleEnd {
		// numeric visibility is left as it is
		c.setVisible(TargetArc, false)
		c.setText(TargetNumeric, OverloadText)
		return nil
	}

	cx, cy, radius := c.geometry()
	scaledValue, err := ScaleDegrees(c.value, c.cfg.ScaleStart, c.cfg.ScaleEnd, c.cfg.ScaleOffset)
	if err != nil {
		c.setVisible(TargetArc, false)
		return c.reject(err)
	}
	d := DescribeArc(
		cx,
		cy,
		radius,
		c.cfg.ScaleOffset-common.HalfCircle,
		scaledValue-(common.HalfCircle-c.cfg.ScaleOffset),
	)

	c.setVisible(TargetArc, true)
	c.setVisible(TargetNumeric, true)
	c.setPath(TargetArc, d)
	c.setText(TargetNumeric, c.cfg.Value)

	Logger().Debug("gauge: value arc",
		slog.String("value", c.cfg.Value),
		slog.Float64("degrees", scaledValue),
		slog.Float64("radius", radius),
	)
	return nil
}

func (c *Controller) drawBackground() {
	cx, cy, radius := c.geometry()
	c.setPath(TargetBackgroundArc, DescribeArc(
		cx,
		cy,
		radius,
		c.cfg.ScaleOffset-common.HalfCircle,
		common.HalfCircle-c.cfg.ScaleOffset,
	))
}

// geometry derives center and radius from the surface on every call since
// the container may have been resized since the last draw.
func (c *Controller) geometry() (cx, cy, radius float64) {
	size := c.surface.ContainerSize()
	return size.Width * common.OneHalf, size.Height * common.OneHalf, size.Width * c.radiusFactor
}

func (c *Controller) setPath(t Target, d string) {
	switch t {
	case TargetArc:
		c.instr.ArcPath = d
	case TargetBackgroundArc:
		c.instr.BackgroundPath = d
	}
	c.surface.SetPath(t, d)
}

func (c *Controller) setText(t Target, text string) {
	switch t {
	case TargetNumeric:
		c.instr.NumericText = text
	case TargetTitle:
		c.instr.TitleText = text
	case TargetSubtitle:
		c.instr.SubtitleText = text
	}
	c.surface.SetText(t, text)
}

func (c *Controller) setVisible(t Target, visible bool) {
	switch t {
	case TargetArc:
		c.instr.ArcVisible = visible
		if !visible {
			c.instr.ArcPath = ""
		}
	case TargetNumeric:
		c.instr.NumericVisible = visible
	case TargetTitle:
		c.instr.TitleVisible = visible
	case TargetSubtitle:
		c.instr.SubtitleVisible = visible
	}
	c.surface.SetVisible(t, visible)
}

func (c *Controller) reject(err error) error {
	Logger().Warn("gauge: rejected configuration", slog.String("error", err.Error()))
	return err
}

func parseNumber(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		Logger().Warn("gauge: rejected configuration", slog.String("field", field), slog.String("input", s))
		return 0, &ConfigurationError{Field: field, Input: s, Err: ErrNotNumeric}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		Logger().Warn("gauge: rejected configuration", slog.String("field", field), slog.String("input", s))
		return 0, &ConfigurationError{Field: field, Input: s, Err: ErrNotFinite}
	}
	return v, nil
}
