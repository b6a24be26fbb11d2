package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/roffe/dialgauge/pkg/gauge"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dialgauge.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadReturnsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Window.Title != "Dial gauges" {
		t.Errorf("Window.Title: got %q, want %q", cfg.Window.Title, "Dial gauges")
	}
	if cfg.Window.Width != 1024 || cfg.Window.Height != 768 {
		t.Errorf("Window size: got %vx%v, want 1024x768", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Feed.BaudRate != 9600 {
		t.Errorf("Feed.BaudRate: got %d, want 9600", cfg.Feed.BaudRate)
	}
	if cfg.Feed.DefaultTopic != "value" {
		t.Errorf("Feed.DefaultTopic: got %q, want %q", cfg.Feed.DefaultTopic, "value")
	}
	if cfg.Feed.RetryDelay != 1500*time.Millisecond {
		t.Errorf("Feed.RetryDelay: got %v, want 1.5s", cfg.Feed.RetryDelay)
	}
	if cfg.Bus.CacheTTL != time.Minute {
		t.Errorf("Bus.CacheTTL: got %v, want 1m", cfg.Bus.CacheTTL)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "info")
	}
	if len(cfg.Gauges) != 0 {
		t.Errorf("Gauges: got %d, want none", len(cfg.Gauges))
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
window:
  title: Boost
  cols: 2
gauges:
  - name: boost
    topic: boost
    main_title: Boost
    sub_title: bar
    scale_start: -1
    scale_end: 2
    scale_offset: 20
  - topic: rpm
    value: 900
    width: 400
    height: 200
feed:
  stdin: true
  retry_delay: 2s
aggregators:
  - first: request
    second: actual
    output: diff
`)
	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if cfg.Window.Title != "Boost" || cfg.Window.Cols != 2 {
		t.Errorf("Window: got %+v", cfg.Window)
	}
	if len(cfg.Gauges) != 2 {
		t.Fatalf("Gauges: got %d, want 2", len(cfg.Gauges))
	}
	g := cfg.Gauges[0]
	if g.ScaleStart != "-1" || g.ScaleEnd != "2" || g.ScaleOffset != "20" {
		t.Errorf("scale: got %q %q %q, want -1 2 20", g.ScaleStart, g.ScaleEnd, g.ScaleOffset)
	}
	if g.Width != DefaultGaugeWidth || g.Height != DefaultGaugeHeight {
		t.Errorf("default size: got %dx%d", g.Width, g.Height)
	}
	g = cfg.Gauges[1]
	if g.Name != "gauge-2" {
		t.Errorf("Name: got %q, want %q", g.Name, "gauge-2")
	}
	if g.Value != "900" || g.Width != 400 || g.Height != 200 {
		t.Errorf("gauge-2: got %+v", g)
	}
	if !cfg.Feed.Stdin || cfg.Feed.RetryDelay != 2*time.Second {
		t.Errorf("Feed: got %+v", cfg.Feed)
	}
	if len(cfg.Aggregators) != 1 || cfg.Aggregators[0].Output != "diff" {
		t.Errorf("Aggregators: got %+v", cfg.Aggregators)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("LoadFromFile() got nil error for a missing file")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("DIALGAUGE_FEED_SERIAL_PORT", "/dev/ttyUSB9")
	t.Setenv("DIALGAUGE_LOGGING_LEVEL", "debug")
	cfg, err := LoadFromFile(writeConfig(t, "feed:\n  serial_port: /dev/ttyUSB0\n"))
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if cfg.Feed.SerialPort != "/dev/ttyUSB9" {
		t.Errorf("Feed.SerialPort: got %q, want %q", cfg.Feed.SerialPort, "/dev/ttyUSB9")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Feed:    FeedConfig{BaudRate: 9600},
			Logging: LoggingConfig{Level: "info"},
		}
	}
	tests := []struct {
		name    string
		gauges  []GaugeConfig
		want    string
		wantErr error
	}{
		{"ok", []GaugeConfig{{Name: "a", Width: 100, Height: 100, ScaleEnd: "10", Value: "5"}}, "", nil},
		{"value at scale start", []GaugeConfig{{Name: "rpm", Width: 100, Height: 100, Value: "100", ScaleStart: "100", ScaleEnd: "200"}}, "", nil},
		{"scale above defaults", []GaugeConfig{{Name: "egt", Width: 100, Height: 100, Value: "850", ScaleStart: "300", ScaleEnd: "1000"}}, "", nil},
		{"not numeric", []GaugeConfig{{Name: "a", Width: 100, Height: 100, ScaleEnd: "ten"}}, "gauge a", gauge.ErrNotNumeric},
		{"offset range", []GaugeConfig{{Name: "a", Width: 100, Height: 100, ScaleOffset: "200"}}, "gauge a", gauge.ErrOffsetRange},
		{"degenerate", []GaugeConfig{{Name: "a", Width: 100, Height: 100, ScaleStart: "5", ScaleEnd: "5"}}, "gauge a", gauge.ErrDegenerateScale},
		{"duplicate", []GaugeConfig{{Name: "a", Width: 1, Height: 1}, {Name: "a", Width: 1, Height: 1}}, "duplicate name", nil},
		{"size", []GaugeConfig{{Name: "a"}}, "invalid size", nil},
		{"arc color", []GaugeConfig{{Name: "a", Width: 1, Height: 1, ArcColor: "nope"}}, "arc_color", nil},
		{"arc color mode", []GaugeConfig{{Name: "a", Width: 1, Height: 1, ArcColor: "scale:sepia"}}, "arc_color", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			cfg.Gauges = tt.gauges
			err := cfg.Validate()
			if tt.want == "" {
				if err != nil {
					t.Fatalf("Validate() error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate() got %v, want it to mention %q", err, tt.want)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestApply(t *testing.T) {
	g := GaugeConfig{MainTitle: "Boost", ScaleStart: "-1", ScaleEnd: "2", Value: "1.5"}
	ctrl := gauge.New(gauge.NewRecorder(100, 100))
	if err := g.Apply(ctrl); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if v, ok := ctrl.Value(); !ok || v != "1.5" {
		t.Errorf("Value() got %q, %v, want 1.5, true", v, ok)
	}
	if ctrl.ScaleStart() != -1 || ctrl.ScaleEnd() != 2 || ctrl.ScaleOffset() != 0 {
		t.Errorf("scale got %v %v %v, want -1 2 0", ctrl.ScaleStart(), ctrl.ScaleEnd(), ctrl.ScaleOffset())
	}
	if _, ok := g.Attributes()[gauge.AttrSubTitle]; ok {
		t.Errorf("Attributes() includes an empty sub title")
	}
}

func TestApplyValueAtScaleStart(t *testing.T) {
	g := GaugeConfig{Name: "rpm", Value: "100", ScaleStart: "100", ScaleEnd: "200"}
	ctrl := gauge.New(gauge.NewRecorder(100, 100))
	if err := g.Apply(ctrl); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if err := ctrl.Mount(); err != nil {
		t.Fatalf("Mount() error: %v", err)
	}
	if ctrl.ScaleStart() != 100 || ctrl.ScaleEnd() != 200 {
		t.Errorf("scale got [%v,%v], want [100,200]", ctrl.ScaleStart(), ctrl.ScaleEnd())
	}
	if in := ctrl.Instruction(); !in.ArcVisible || in.NumericText != "100" {
		t.Errorf("Instruction() got %+v, want the value shown", in)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel() got %v, want %v", got, tt.want)
			}
		})
	}
}
