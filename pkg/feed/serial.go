package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"go.bug.st/serial"
)

type SerialConfig struct {
	Port          string
	BaudRate      int
	DefaultTopic  string
	RetryAttempts uint
	RetryDelay    time.Duration
}

// Serial feeds values from a serial port.
type Serial struct {
	cfg SerialConfig
	pub Publisher
	sp  serial.Port

	log func(string)

	closeOnce sync.Once
	done      chan struct{}
}

func NewSerial(cfg SerialConfig, pub Publisher, logFunc func(string)) *Serial {
	if cfg.BaudRate == 0 {
		cfg.BaudRate = 9600
	}
	if cfg.RetryAttempts == 0 {
		cfg.RetryAttempts = 1
	}
	return &Serial{
		cfg:  cfg,
		pub:  pub,
		log:  logFunc,
		done: make(chan struct{}),
	}
}

// Ports lists the serial ports present on the system.
func Ports() ([]string, error) {
	return serial.GetPortsList()
}

// Start opens the port and reads from it in the background until ctx is
// done or Stop is called.
func (s *Serial) Start(ctx context.Context) error {
	if s.cfg.Port == "" {
		return errors.New("no serial port configured")
	}
	mode := &serial.Mode{
		BaudRate: s.cfg.BaudRate,
	}
	err := retry.Do(func() error {
		sp, err := serial.Open(s.cfg.Port, mode)
		if err != nil {
			var portErr *serial.PortError
			if errors.As(err, &portErr) && portErr.Code() == serial.PortNotFound {
				return retry.Unrecoverable(err)
			}
			return err
		}
		s.sp = sp
		return nil
	},
		retry.Context(ctx),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(s.cfg.RetryDelay),
		retry.Attempts(s.cfg.RetryAttempts),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			s.log(fmt.Sprintf("Retrying to open %s (%d): %v", s.cfg.Port, n+1, err))
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.cfg.Port, err)
	}

	if err := s.sp.SetReadTimeout(50 * time.Millisecond); err != nil {
		s.sp.Close()
		return err
	}

	go s.run(ctx)
	return nil
}

func (s *Serial) run(ctx context.Context) {
	defer s.Stop()
	lines := &lineBuffer{
		max:          256,
		defaultTopic: s.cfg.DefaultTopic,
		pub:          s.pub,
		log:          s.log,
		prefix:       s.cfg.Port + ": ",
	}
	buf := make([]byte, 64)
	for {
		n, err := s.sp.Read(buf)
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		default:
		}
		if err != nil {
			s.log(s.cfg.Port + ": " + err.Error())
			return
		}
		if n == 0 {
			continue
		}
		lines.write(buf[:n])
	}
}

func (s *Serial) Stop() {
	s.closeOnce.Do(func() {
		close(s.done)
		if s.sp != nil {
			s.log("Stopping serial feed " + s.cfg.Port)
			if err := s.sp.Close(); err != nil {
				s.log(err.Error())
			}
		}
	})
}

// Done is closed once the feed has stopped.
func (s *Serial) Done() <-chan struct{} {
	return s.done
}
