package svgsurface_test

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/roffe/dialgauge/pkg/gauge"
	"github.com/roffe/dialgauge/pkg/svgsurface"
)

func render(t *testing.T, s *svgsurface.Surface, arcsOnly bool) string {
	t.Helper()
	var buf bytes.Buffer
	var err error
	if arcsOnly {
		_, err = s.WriteArcsTo(&buf)
	} else {
		_, err = s.WriteTo(&buf)
	}
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	return buf.String()
}

// element returns the line carrying the given id.
func element(doc, id string) string {
	for _, line := range strings.Split(doc, "\n") {
		if strings.Contains(line, `id="`+id+`"`) {
			return line
		}
	}
	return ""
}

func mounted(t *testing.T, attrs map[string]string) (*svgsurface.Surface, *gauge.Controller) {
	t.Helper()
	s := svgsurface.New(200, 200)
	c := gauge.New(s)
	for _, name := range gauge.ApplyOrder() {
		if v, ok := attrs[name]; ok {
			if err := c.SetAttribute(name, v); err != nil {
				t.Fatalf("SetAttribute(%s) error: %v", name, err)
			}
		}
	}
	if err := c.Mount(); err != nil {
		t.Fatalf("Mount() error: %v", err)
	}
	return s, c
}

func TestWriteTo(t *testing.T) {
	s, _ := mounted(t, map[string]string{
		gauge.AttrValue:       "50",
		gauge.AttrMainTitle:   "Boost",
		gauge.AttrScaleOffset: "20",
	})
	doc := render(t, s, false)

	if !strings.Contains(doc, `width="200" height="200"`) || !strings.Contains(doc, `viewBox="0 0 200 200"`) {
		t.Errorf("WriteTo() missing size or view box:\n%s", doc)
	}

	tests := []struct {
		id       string
		contains []string
		hidden   bool
	}{
		{svgsurface.IDTitle, []string{">Boost</text>", `x="100" y="22"`, "font-size:24px"}, false},
		{svgsurface.IDBackgroundArc, []string{`d="` + gauge.DescribeArc(100, 100, 60, -160, 160) + `"`, "stroke:#efefef", "stroke-width:20"}, false},
		{svgsurface.IDArc, []string{`d="` + gauge.DescribeArc(100, 100, 60, -160, 0) + `"`, `fill="none"`, "stroke:#000000"}, false},
		{svgsurface.IDNumeric, []string{">50</text>", `y="100"`, "dominant-baseline:middle", "font-size:40px"}, false},
		{svgsurface.IDSubtitle, []string{`y="192"`, "font-size:16px"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			line := element(doc, tt.id)
			if line == "" {
				t.Fatalf("WriteTo() has no element %s:\n%s", tt.id, doc)
			}
			for _, want := range tt.contains {
				if !strings.Contains(line, want) {
					t.Errorf("element %s got %s, want it to contain %s", tt.id, line, want)
				}
			}
			if got := strings.Contains(line, `display="none"`); got != tt.hidden {
				t.Errorf("element %s hidden got %v, want %v", tt.id, got, tt.hidden)
			}
		})
	}
}

func TestWriteToOrder(t *testing.T) {
	s, _ := mounted(t, map[string]string{gauge.AttrValue: "10"})
	doc := render(t, s, false)
	last := -1
	for _, id := range []string{svgsurface.IDTitle, svgsurface.IDBackgroundArc, svgsurface.IDArc, svgsurface.IDNumeric, svgsurface.IDSubtitle} {
		i := strings.Index(doc, `id="`+id+`"`)
		if i <= last {
			t.Fatalf("element %s out of order in:\n%s", id, doc)
		}
		last = i
	}
}

func TestWriteArcsTo(t *testing.T) {
	s, c := mounted(t, map[string]string{gauge.AttrValue: "50", gauge.AttrMainTitle: "Boost"})
	doc := render(t, s, true)
	if strings.Contains(doc, "<text") || strings.Contains(doc, "<rect") {
		t.Errorf("WriteArcsTo() got text or background:\n%s", doc)
	}
	if element(doc, svgsurface.IDArc) == "" || element(doc, svgsurface.IDBackgroundArc) == "" {
		t.Errorf("WriteArcsTo() missing arcs:\n%s", doc)
	}

	if err := c.SetValue("500"); err != nil {
		t.Fatalf("SetValue() error: %v", err)
	}
	doc = render(t, s, true)
	if element(doc, svgsurface.IDArc) != "" {
		t.Errorf("WriteArcsTo() kept the hidden arc:\n%s", doc)
	}
}

func TestInitialState(t *testing.T) {
	s := svgsurface.New(120, 80)
	if got := s.Text(gauge.TargetNumeric); got != "0.0" {
		t.Errorf("Text(numeric) got %q, want %q", got, "0.0")
	}
	for _, target := range gauge.Targets {
		if !s.Visible(target) {
			t.Errorf("Visible(%s) got false, want true", target)
		}
	}
	if got, want := s.ContainerSize(), (gauge.Size{Width: 120, Height: 80}); got != want {
		t.Errorf("ContainerSize() got %v, want %v", got, want)
	}
}

func TestResizeAndRedraw(t *testing.T) {
	s, c := mounted(t, map[string]string{gauge.AttrValue: "50", gauge.AttrScaleOffset: "20"})
	s.Resize(400, 300)
	if err := c.Redraw(); err != nil {
		t.Fatalf("Redraw() error: %v", err)
	}
	if got, want := s.Path(gauge.TargetBackgroundArc), gauge.DescribeArc(200, 150, 120, -160, 160); got != want {
		t.Errorf("background path got %s, want %s", got, want)
	}
	if w, h := s.Size(); w != 400 || h != 300 {
		t.Errorf("Size() got %dx%d, want 400x300", w, h)
	}
}

func TestStyle(t *testing.T) {
	st := svgsurface.DefaultStyle()
	st.ArcWidth = 8
	st.Text = color.RGBA{0x11, 0x22, 0x33, 0xff}
	s := svgsurface.New(100, 100, svgsurface.WithStyle(st))
	s.SetArcColor(color.RGBA{0xff, 0, 0, 0xff})
	c := gauge.New(s)
	if err := c.SetValue("30"); err != nil {
		t.Fatal(err)
	}
	if err := c.Mount(); err != nil {
		t.Fatal(err)
	}
	doc := render(t, s, false)
	if line := element(doc, svgsurface.IDArc); !strings.Contains(line, "stroke:#ff0000;stroke-width:8") {
		t.Errorf("arc got %s, want red stroke of width 8", line)
	}
	if line := element(doc, svgsurface.IDNumeric); !strings.Contains(line, "fill:#112233") {
		t.Errorf("numeric got %s, want text color #112233", line)
	}
}
