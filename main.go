package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"github.com/roffe/dialgauge/pkg/config"
	"github.com/roffe/dialgauge/pkg/ebus"
	"github.com/roffe/dialgauge/pkg/feed"
	"github.com/roffe/dialgauge/pkg/gauge"
	"github.com/roffe/dialgauge/pkg/layout"
	"github.com/roffe/dialgauge/pkg/theme"
	"github.com/roffe/dialgauge/pkg/widgets"
	gaugewidget "github.com/roffe/dialgauge/pkg/widgets/gauge"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile | log.Lmicroseconds)
}

func main() {
	configFile := flag.String("config", "", "config file path (default: ./dialgauge.yaml)")
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	level, err := config.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Fatal(err)
	}
	gauge.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	bus := ebus.New(cfg.Bus.CacheTTL)
	defer bus.Close()
	for _, agg := range cfg.Aggregators {
		bus.RegisterAggregator(ebus.DIFFAggregator(agg.First, agg.Second, agg.Output))
	}

	a := app.NewWithID("com.roffe.dialgauge")
	a.Settings().SetTheme(&theme.GaugeTheme{})

	objs, cancels := gaugewidget.NewAll(widgetConfigs(cfg.Gauges), bus)
	defer func() {
		for _, cancel := range cancels {
			cancel()
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startFeeds(ctx, cfg.Feed, bus)

	mw := a.NewWindow(cfg.Window.Title)
	mw.SetMaster()
	mw.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	mw.SetContent(container.New(layout.NewGrid(cfg.Window.Cols, cfg.Window.Rows, cfg.Window.Padding), objs...))
	mw.ShowAndRun()
}

func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func widgetConfigs(gauges []config.GaugeConfig) []widgets.GaugeConfig {
	out := make([]widgets.GaugeConfig, 0, len(gauges))
	for _, g := range gauges {
		out = append(out, widgets.GaugeConfig{
			Name:        g.Name,
			Topic:       g.Topic,
			Title:       g.MainTitle,
			SubTitle:    g.SubTitle,
			Value:       g.Value,
			ScaleStart:  g.ScaleStart,
			ScaleEnd:    g.ScaleEnd,
			ScaleOffset: g.ScaleOffset,
			ArcColor:    g.ArcColor,
			MinSize:     fyne.NewSize(float32(g.Width), float32(g.Height)),
		})
	}
	return out
}

func startFeeds(ctx context.Context, cfg config.FeedConfig, bus *ebus.Bus) {
	logFunc := func(s string) { log.Println(s) }
	if cfg.Stdin {
		r := feed.NewReader(os.Stdin, bus, cfg.DefaultTopic, logFunc)
		go func() {
			if err := r.Run(ctx); err != nil && ctx.Err() == nil {
				log.Printf("stdin feed: %v", err)
			}
		}()
	}
	if cfg.SerialPort != "" {
		s := feed.NewSerial(feed.SerialConfig{
			Port:          cfg.SerialPort,
			BaudRate:      cfg.BaudRate,
			DefaultTopic:  cfg.DefaultTopic,
			RetryAttempts: cfg.RetryAttempts,
			RetryDelay:    cfg.RetryDelay,
		}, bus, logFunc)
		go func() {
			if err := s.Start(ctx); err != nil {
				log.Printf("serial feed: %v", err)
				return
			}
			<-ctx.Done()
			s.Stop()
		}()
	}
}
