// Package dialgauge is a fyne widget showing a single value on a circular
// arc with a title, a numeric readout and a subtitle.
package dialgauge

import (
	"image"
	"image/color"
	"log"
	"strconv"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/roffe/dialgauge/pkg/colors"
	"github.com/roffe/dialgauge/pkg/common"
	"github.com/roffe/dialgauge/pkg/gauge"
	"github.com/roffe/dialgauge/pkg/raster"
	"github.com/roffe/dialgauge/pkg/svgsurface"
	"github.com/roffe/dialgauge/pkg/widgets"
)

type DialGauge struct {
	widget.BaseWidget

	cfg widgets.GaugeConfig

	mu    sync.Mutex
	ctrl  *gauge.Controller
	svg   *svgsurface.Surface
	style svgsurface.Style

	background   *canvas.Rectangle
	arcs         *canvas.Raster
	titleText    *canvas.Text
	numericText  *canvas.Text
	subtitleText *canvas.Text

	size    fyne.Size
	minsize fyne.Size

	fmtPrec int
	buf     []byte
}

// New builds a mounted gauge from cfg. Rejected attributes are logged and
// skipped so one bad field does not take the gauge down.
func New(cfg widgets.GaugeConfig) *DialGauge {
	d := &DialGauge{
		cfg:     cfg,
		minsize: fyne.NewSize(150, 150),
		style:   svgsurface.DefaultStyle(),
		fmtPrec: -1,
	}
	d.ExtendBaseWidget(d)

	if cfg.MinSize.Width > 0 && cfg.MinSize.Height > 0 {
		d.minsize = cfg.MinSize
	}
	if n := parseFixedPrec(cfg.DisplayString); n >= 0 {
		d.fmtPrec = n
	}
	if _, err := colors.ArcColor(cfg.ArcColor, cfg.Topic, 0, 1); err != nil {
		log.Printf("gauge %s: %v", cfg.Name, err)
		d.cfg.ArcColor = colors.ArcColorDefault
	}

	d.svg = svgsurface.New(int(d.minsize.Width), int(d.minsize.Height), svgsurface.WithStyle(d.style))
	d.ctrl = gauge.New(d)

	d.background = &canvas.Rectangle{FillColor: d.style.Background}
	d.arcs = canvas.NewRaster(d.drawArcs)
	d.titleText = newText(d.style.TitleSize, d.style.Text)
	d.numericText = newText(d.style.NumericSize, d.style.Text)
	d.numericText.Text = "0.0"
	d.subtitleText = newText(d.style.SubtitleSize, d.style.Text)

	d.mu.Lock()
	defer d.mu.Unlock()
	attrs := cfg.Attributes()
	for _, name := range gauge.ApplyOrder() {
		v, ok := attrs[name]
		if !ok {
			continue
		}
		if err := d.ctrl.SetAttribute(name, v); err != nil {
			log.Printf("gauge %s: %v", cfg.Name, err)
		}
	}
	d.setArcColorLocked()
	if err := d.ctrl.Mount(); err != nil {
		log.Printf("gauge %s: %v", cfg.Name, err)
	}
	return d
}

func newText(size float64, col color.Color) *canvas.Text {
	return &canvas.Text{Color: col, TextSize: float32(size), Alignment: fyne.TextAlignCenter}
}

func (d *DialGauge) GetConfig() widgets.GaugeConfig { return d.cfg }

func (d *DialGauge) Instruction() gauge.DrawInstruction {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ctrl.Instruction()
}

func (d *DialGauge) Config() gauge.Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ctrl.Config()
}

// SetValue shows a value coming off the bus.
func (d *DialGauge) SetValue(value float64) {
	d.mu.Lock()
	d.buf = d.buf[:0]
	d.buf = strconv.AppendFloat(d.buf, value, 'f', d.fmtPrec, 64)
	s := string(d.buf)
	d.mu.Unlock()
	if err := d.SetValueString(s); err != nil {
		log.Printf("gauge %s: %v", d.cfg.Name, err)
	}
}

func (d *DialGauge) SetValueString(s string) error {
	return d.update(func() error {
		return d.ctrl.SetValue(s)
	})
}

func (d *DialGauge) ClearValue() error {
	return d.update(d.ctrl.ClearValue)
}

func (d *DialGauge) SetAttribute(name, value string) error {
	return d.update(func() error {
		return d.ctrl.SetAttribute(name, value)
	})
}

func (d *DialGauge) RemoveAttribute(name string) error {
	return d.update(func() error {
		return d.ctrl.RemoveAttribute(name)
	})
}

func (d *DialGauge) update(fn func() error) error {
	d.mu.Lock()
	err := fn()
	d.setArcColorLocked()
	d.mu.Unlock()
	d.refreshObjects()
	return err
}

// setArcColorLocked picks the arc color for the current value and scale.
func (d *DialGauge) setArcColorLocked() {
	cfg := d.ctrl.Config()
	arcColor, err := colors.ArcColor(d.cfg.ArcColor, d.cfg.Topic, cfg.ScaleStart, cfg.ScaleEnd)
	if err != nil {
		return
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(cfg.Value), 64)
	if err != nil {
		v = cfg.ScaleStart
	}
	d.svg.SetArcColor(arcColor(v))
}

func (d *DialGauge) drawArcs(w, h int) image.Image {
	img, err := raster.Arcs(d.svg, w, h)
	if err != nil {
		log.Printf("gauge %s: %v", d.cfg.Name, err)
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}
	return img
}

func (d *DialGauge) refreshObjects() {
	canvas.Refresh(d.arcs)
	canvas.Refresh(d.titleText)
	canvas.Refresh(d.numericText)
	canvas.Refresh(d.subtitleText)
}

// gauge.DrawSurface, called by the controller with d.mu held.

func (d *DialGauge) SetPath(t gauge.Target, path string) {
	d.svg.SetPath(t, path)
}

func (d *DialGauge) SetText(t gauge.Target, text string) {
	d.svg.SetText(t, text)
	if obj := d.text(t); obj != nil {
		obj.Text = text
	}
}

func (d *DialGauge) SetVisible(t gauge.Target, visible bool) {
	d.svg.SetVisible(t, visible)
	if obj := d.text(t); obj != nil {
		obj.Hidden = !visible
	}
}

func (d *DialGauge) ContainerSize() gauge.Size {
	return d.svg.ContainerSize()
}

func (d *DialGauge) text(t gauge.Target) *canvas.Text {
	switch t {
	case gauge.TargetTitle:
		return d.titleText
	case gauge.TargetNumeric:
		return d.numericText
	case gauge.TargetSubtitle:
		return d.subtitleText
	}
	return nil
}

func (d *DialGauge) CreateRenderer() fyne.WidgetRenderer { return &DialGaugeRenderer{DialGauge: d} }

type DialGaugeRenderer struct {
	*DialGauge
	objects []fyne.CanvasObject
}

func (r *DialGaugeRenderer) Layout(space fyne.Size) {
	if r.size == space {
		return
	}
	r.size = space

	r.background.Resize(space)
	r.arcs.Move(fyne.NewPos(0, 0))
	r.arcs.Resize(space)

	r.placeText(r.titleText, space, common.TitleY, false)
	r.placeText(r.numericText, space, common.NumericY, true)
	r.placeText(r.subtitleText, space, common.SubtitleY, false)

	r.mu.Lock()
	r.svg.Resize(int(space.Width), int(space.Height))
	if err := r.ctrl.Redraw(); err != nil {
		log.Printf("gauge %s: %v", r.cfg.Name, err)
	}
	r.mu.Unlock()

	for _, o := range r.Objects() {
		canvas.Refresh(o)
	}
}

// placeText puts t on the baseline at y (a fraction of the height), or
// centers it on y.
func (r *DialGaugeRenderer) placeText(t *canvas.Text, space fyne.Size, y float32, centered bool) {
	h := fyne.MeasureText("0", t.TextSize, t.TextStyle).Height
	top := space.Height*y - h*common.Baseline
	if centered {
		top = space.Height*y - h*common.OneHalf
	}
	t.Move(fyne.NewPos(0, top))
	t.Resize(fyne.NewSize(space.Width, h))
}

func (r *DialGaugeRenderer) MinSize() fyne.Size { return r.minsize }

func (r *DialGaugeRenderer) Refresh() {
	for _, o := range r.Objects() {
		canvas.Refresh(o)
	}
}

func (r *DialGaugeRenderer) Destroy() {}

func (r *DialGaugeRenderer) Objects() []fyne.CanvasObject {
	if r.objects == nil {
		r.objects = []fyne.CanvasObject{r.background, r.titleText, r.arcs, r.numericText, r.subtitleText}
	}
	return r.objects
}

// parseFixedPrec tries to parse a format like "%.0f", "%.1f" and returns the precision, or -1 if unknown.
func parseFixedPrec(format string) int {
	if len(format) >= 4 && format[0] == '%' && format[1] == '.' && format[len(format)-1] == 'f' {
		n := 0
		has := false
		for i := 2; i < len(format)-1; i++ {
			ch := format[i]
			if ch < '0' || ch > '9' {
				return -1
			}
			has = true
			n = n*10 + int(ch-'0')
		}
		if has {
			return n
		}
	}
	return -1
}
