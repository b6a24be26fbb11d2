// Package config loads the dashboard and export configuration.
// It supports YAML config files with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "DIALGAUGE"

const (
	DefaultGaugeWidth  = 300
	DefaultGaugeHeight = 300
)

type Config struct {
	Window      WindowConfig       `mapstructure:"window"      yaml:"window"`
	Gauges      []GaugeConfig      `mapstructure:"gauges"      yaml:"gauges"`
	Feed        FeedConfig         `mapstructure:"feed"        yaml:"feed"`
	Bus         BusConfig          `mapstructure:"bus"         yaml:"bus"`
	Aggregators []AggregatorConfig `mapstructure:"aggregators" yaml:"aggregators"`
	Logging     LoggingConfig      `mapstructure:"logging"     yaml:"logging"`
}

type WindowConfig struct {
	Title   string  `mapstructure:"title"   yaml:"title"`
	Width   float32 `mapstructure:"width"   yaml:"width"`
	Height  float32 `mapstructure:"height"  yaml:"height"`
	Cols    int     `mapstructure:"cols"    yaml:"cols"` // 0 picks a square-ish grid
	Rows    int     `mapstructure:"rows"    yaml:"rows"`
	Padding float32 `mapstructure:"padding" yaml:"padding"`
}

// GaugeConfig describes one gauge. The scale fields are kept as text and
// go through the same parsing as attributes set at runtime.
type GaugeConfig struct {
	Name        string `mapstructure:"name"         yaml:"name"`
	Topic       string `mapstructure:"topic"        yaml:"topic"`
	MainTitle   string `mapstructure:"main_title"   yaml:"main_title"`
	SubTitle    string `mapstructure:"sub_title"    yaml:"sub_title"`
	Value       string `mapstructure:"value"        yaml:"value"`
	ScaleStart  string `mapstructure:"scale_start"  yaml:"scale_start"`
	ScaleEnd    string `mapstructure:"scale_end"    yaml:"scale_end"`
	ScaleOffset string `mapstructure:"scale_offset" yaml:"scale_offset"`
	Width       int    `mapstructure:"width"        yaml:"width"`
	Height      int    `mapstructure:"height"       yaml:"height"`
	ArcColor    string `mapstructure:"arc_color"    yaml:"arc_color"` // hex, "topic", "scale" or "scale:<mode>"
}

type FeedConfig struct {
	SerialPort    string        `mapstructure:"serial_port"    yaml:"serial_port"`
	BaudRate      int           `mapstructure:"baud_rate"      yaml:"baud_rate"`
	Stdin         bool          `mapstructure:"stdin"          yaml:"stdin"`
	DefaultTopic  string        `mapstructure:"default_topic"  yaml:"default_topic"`
	RetryAttempts uint          `mapstructure:"retry_attempts" yaml:"retry_attempts"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"    yaml:"retry_delay"`
}

type BusConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

// AggregatorConfig publishes Second-First on Output.
type AggregatorConfig struct {
	First  string `mapstructure:"first"  yaml:"first"`
	Second string `mapstructure:"second" yaml:"second"`
	Output string `mapstructure:"output" yaml:"output"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // "debug", "info", "warn", "error"
}

// Load reads configuration from the first dialgauge.yaml found in:
//  1. the working directory
//  2. ~/.config/dialgauge
//  3. /etc/dialgauge
//
// Environment variables override config file values.
// Format: DIALGAUGE_<SECTION>_<KEY>, e.g. DIALGAUGE_FEED_SERIAL_PORT
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("dialgauge")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(homeDir(), ".config", "dialgauge"))
	v.AddConfigPath("/etc/dialgauge")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return unmarshal(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.fillGaugeDefaults()
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.title", "Dial gauges")
	v.SetDefault("window.width", 1024)
	v.SetDefault("window.height", 768)
	v.SetDefault("window.cols", 0)
	v.SetDefault("window.rows", 0)
	v.SetDefault("window.padding", 4)

	v.SetDefault("feed.serial_port", "")
	v.SetDefault("feed.baud_rate", 9600)
	v.SetDefault("feed.stdin", false)
	v.SetDefault("feed.default_topic", "value")
	v.SetDefault("feed.retry_attempts", 4)
	v.SetDefault("feed.retry_delay", 1500*time.Millisecond)

	v.SetDefault("bus.cache_ttl", time.Minute)

	v.SetDefault("logging.level", "info")
}

func (c *Config) fillGaugeDefaults() {
	for i := range c.Gauges {
		g := &c.Gauges[i]
		if g.Name == "" {
			g.Name = fmt.Sprintf("gauge-%d", i+1)
		}
		if g.Width == 0 {
			g.Width = DefaultGaugeWidth
		}
		if g.Height == 0 {
			g.Height = DefaultGaugeHeight
		}
	}
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return "."
}
