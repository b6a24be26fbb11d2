package widgets

import (
	"fyne.io/fyne/v2"
)

type IGauge interface {
	fyne.Widget
	SetValue(float64)
	SetValueString(string) error
	GetConfig() GaugeConfig
}
