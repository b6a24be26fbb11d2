package gauge

import (
	"fyne.io/fyne/v2"

	"github.com/roffe/dialgauge/pkg/ebus"
	"github.com/roffe/dialgauge/pkg/widgets"
	"github.com/roffe/dialgauge/pkg/widgets/dialgauge"
)

// New builds the widget for cfg and subscribes it to its topic. The
// returned funcs cancel the subscriptions.
func New(cfg widgets.GaugeConfig, bus *ebus.Bus) (widgets.IGauge, []func()) {
	dial := dialgauge.New(cfg)
	if cfg.Topic == "" || bus == nil {
		return dial, nil
	}
	cancel := bus.SubscribeFunc(cfg.Topic, dial.SetValue)
	return dial, []func(){cancel}
}

// NewAll builds one widget per config.
func NewAll(cfgs []widgets.GaugeConfig, bus *ebus.Bus) ([]fyne.CanvasObject, []func()) {
	var objs []fyne.CanvasObject
	var cancels []func()
	for _, cfg := range cfgs {
		w, c := New(cfg, bus)
		objs = append(objs, w)
		cancels = append(cancels, c...)
	}
	return objs, cancels
}
