package widgets

import (
	"strings"

	"fyne.io/fyne/v2"

	"github.com/roffe/dialgauge/pkg/gauge"
)

type GaugeConfig struct {
	Name          string
	Topic         string // bus topic the gauge follows
	Title         string
	SubTitle      string
	Value         string // initial value, empty leaves it unset
	ScaleStart    string
	ScaleEnd      string
	ScaleOffset   string
	DisplayString string // format for bus values, like "%.1f"; shortest form when empty
	ArcColor      string // hex, "topic", "scale" or "scale:<mode>"
	MinSize       fyne.Size
}

// Attributes returns the non-empty fields as gauge attributes.
func (c GaugeConfig) Attributes() map[string]string {
	attrs := make(map[string]string)
	for name, v := range map[string]string{
		gauge.AttrValue:       c.Value,
		gauge.AttrMainTitle:   c.Title,
		gauge.AttrSubTitle:    c.SubTitle,
		gauge.AttrScaleStart:  c.ScaleStart,
		gauge.AttrScaleEnd:    c.ScaleEnd,
		gauge.AttrScaleOffset: c.ScaleOffset,
	} {
		if strings.TrimSpace(v) != "" {
			attrs[name] = v
		}
	}
	return attrs
}
