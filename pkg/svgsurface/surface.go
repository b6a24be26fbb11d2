// Package svgsurface renders a gauge as a standalone SVG document.
package svgsurface

import (
	"bytes"
	"image/color"
	"io"
	"math"
	"sync"

	svg "github.com/ajstarks/svgo"

	"github.com/roffe/dialgauge/pkg/common"
	"github.com/roffe/dialgauge/pkg/gauge"
)

// Element ids in the written document.
const (
	IDTitle         = "gauge-title"
	IDBackgroundArc = "gauge-background-arc"
	IDArc           = "gauge-arc"
	IDNumeric       = "gauge-numeric"
	IDSubtitle      = "gauge-subtitle"
)

// Surface is a gauge.DrawSurface backed by plain state. It is safe for
// concurrent use so a renderer may read it while a controller writes.
type Surface struct {
	mu     sync.Mutex
	width  int
	height int
	style  Style
	paths  map[gauge.Target]string
	texts  map[gauge.Target]string
	hidden map[gauge.Target]bool
}

type Option func(*Surface)

func WithStyle(st Style) Option {
	return func(s *Surface) {
		s.style = st
	}
}

func New(width, height int, opts ...Option) *Surface {
	s := &Surface{
		width:  width,
		height: height,
		style:  DefaultStyle(),
		paths:  make(map[gauge.Target]string),
		texts:  map[gauge.Target]string{gauge.TargetNumeric: "0.0"},
		hidden: make(map[gauge.Target]bool),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Surface) SetPath(t gauge.Target, d string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths[t] = d
}

func (s *Surface) SetText(t gauge.Target, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts[t] = text
}

func (s *Surface) SetVisible(t gauge.Target, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hidden[t] = !visible
}

func (s *Surface) ContainerSize() gauge.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gauge.Size{Width: float64(s.width), Height: float64(s.height)}
}

// Resize changes the document size. The controller has to redraw afterwards.
func (s *Surface) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
}

func (s *Surface) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *Surface) Style() Style {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.style
}

func (s *Surface) SetStyle(st Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style = st
}

func (s *Surface) SetArcColor(c color.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style.Arc = c
}

func (s *Surface) Path(t gauge.Target) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paths[t]
}

func (s *Surface) Text(t gauge.Target) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.texts[t]
}

func (s *Surface) Visible(t gauge.Target) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.hidden[t]
}

// WriteTo writes the complete document: background, arcs and texts.
// Hidden elements are kept with display="none".
func (s *Surface) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	s.write(&buf, false)
	return buf.WriteTo(w)
}

// WriteArcsTo writes a document with only the visible arcs, for
// rasterizers that draw text on their own.
func (s *Surface) WriteArcsTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	s.write(&buf, true)
	return buf.WriteTo(w)
}

func (s *Surface) write(buf *bytes.Buffer, arcsOnly bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	canvas := svg.New(buf)
	canvas.Startview(s.width, s.height, 0, 0, s.width, s.height)
	if !arcsOnly {
		canvas.Rect(0, 0, s.width, s.height, s.style.backgroundCSS())
		s.text(canvas, gauge.TargetTitle, IDTitle, common.TitleY, s.style.textCSS(s.style.TitleSize, ""))
	}
	s.path(canvas, gauge.TargetBackgroundArc, IDBackgroundArc, arcsOnly, s.style.strokeCSS(s.style.ArcBackground))
	s.path(canvas, gauge.TargetArc, IDArc, arcsOnly, s.style.strokeCSS(s.style.Arc), `fill="none"`)
	if !arcsOnly {
		s.text(canvas, gauge.TargetNumeric, IDNumeric, common.NumericY, s.style.textCSS(s.style.NumericSize, "dominant-baseline:middle"))
		s.text(canvas, gauge.TargetSubtitle, IDSubtitle, common.SubtitleY, s.style.textCSS(s.style.SubtitleSize, ""))
	}
	canvas.End()
}

func (s *Surface) path(canvas *svg.SVG, t gauge.Target, id string, arcsOnly bool, attrs ...string) {
	d := s.paths[t]
	if arcsOnly && (d == "" || s.hidden[t]) {
		return
	}
	canvas.Path(d, s.attrs(t, id, attrs)...)
}

func (s *Surface) text(canvas *svg.SVG, t gauge.Target, id string, y float64, css string) {
	canvas.Text(s.width/2, int(math.Round(float64(s.height)*y)), s.texts[t], s.attrs(t, id, []string{css})...)
}

func (s *Surface) attrs(t gauge.Target, id string, extra []string) []string {
	out := append([]string{`id="` + id + `"`}, extra...)
	if s.hidden[t] {
		out = append(out, `display="none"`)
	}
	return out
}
