package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roffe/dialgauge/pkg/colors"
	"github.com/roffe/dialgauge/pkg/gauge"
)

// Attributes returns the gauge attributes this config sets, keyed by
// attribute name. Empty fields are left out so the gauge keeps its defaults.
func (g GaugeConfig) Attributes() map[string]string {
	attrs := make(map[string]string)
	for name, v := range map[string]string{
		gauge.AttrValue:       g.Value,
		gauge.AttrMainTitle:   g.MainTitle,
		gauge.AttrSubTitle:    g.SubTitle,
		gauge.AttrScaleStart:  g.ScaleStart,
		gauge.AttrScaleEnd:    g.ScaleEnd,
		gauge.AttrScaleOffset: g.ScaleOffset,
	} {
		if strings.TrimSpace(v) != "" {
			attrs[name] = v
		}
	}
	return attrs
}

// Apply sets the gauge attributes on c.
func (g GaugeConfig) Apply(c *gauge.Controller) error {
	return c.SetAttributes(g.Attributes())
}

// Validate checks every gauge by applying it to a throwaway controller.
func (c *Config) Validate() error {
	var errs []error
	seen := make(map[string]bool)
	for _, g := range c.Gauges {
		if seen[g.Name] {
			errs = append(errs, fmt.Errorf("gauge %s: duplicate name", g.Name))
		}
		seen[g.Name] = true
		if g.Width <= 0 || g.Height <= 0 {
			errs = append(errs, fmt.Errorf("gauge %s: invalid size %dx%d", g.Name, g.Width, g.Height))
		}
		ctrl := gauge.New(gauge.NewRecorder(float64(g.Width), float64(g.Height)))
		if err := g.Apply(ctrl); err != nil {
			errs = append(errs, fmt.Errorf("gauge %s: %w", g.Name, err))
		}
		if err := ctrl.Mount(); err != nil {
			errs = append(errs, fmt.Errorf("gauge %s: %w", g.Name, err))
		} else if ctrl.ScaleStart() == ctrl.ScaleEnd() {
			errs = append(errs, fmt.Errorf("gauge %s: %w", g.Name, gauge.ErrDegenerateScale))
		}
		if _, err := colors.ArcColor(g.ArcColor, g.Topic, 0, 1); err != nil {
			errs = append(errs, fmt.Errorf("gauge %s: arc_color: %w", g.Name, err))
		}
	}
	for i, a := range c.Aggregators {
		if a.First == "" || a.Second == "" || a.Output == "" {
			errs = append(errs, fmt.Errorf("aggregator %d: first, second and output are required", i+1))
		}
	}
	if c.Feed.BaudRate <= 0 {
		errs = append(errs, fmt.Errorf("feed: invalid baud rate %d", c.Feed.BaudRate))
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseLevel maps the logging level names to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging: invalid level %q", s)
	}
	return l, nil
}
