// Package feed reads gauge values from line oriented sources and publishes
// them on a bus. A line is either "topic=value" or a bare value, which goes
// to the default topic.
package feed

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrEmptyLine  = errors.New("empty line")
	ErrEmptyTopic = errors.New("empty topic")
)

type Publisher interface {
	Publish(topic string, value float64) error
}

type Line struct {
	Topic string
	Value float64
}

func ParseLine(line, defaultTopic string) (Line, error) {
	line = strings.TrimSpace(strings.TrimRight(line, "\r"))
	if line == "" {
		return Line{}, ErrEmptyLine
	}
	topic, raw := defaultTopic, line
	if i := strings.IndexByte(line, '='); i >= 0 {
		topic, raw = strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:])
	}
	if topic == "" {
		return Line{}, fmt.Errorf("%w: %q", ErrEmptyTopic, line)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Line{}, fmt.Errorf("invalid value %q: %w", raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Line{}, fmt.Errorf("invalid value %q: not finite", raw)
	}
	return Line{Topic: topic, Value: v}, nil
}

// lineBuffer assembles lines from chunks read off a port.
type lineBuffer struct {
	buf          []byte
	max          int
	defaultTopic string
	pub          Publisher
	log          func(string)
	prefix       string
}

func (l *lineBuffer) write(p []byte) {
	for _, b := range p {
		switch b {
		case '\r':
			continue
		case '\n':
			l.flush()
			continue
		}
		if len(l.buf) == l.max {
			l.log(l.prefix + "line too long, dropped")
			l.buf = l.buf[:0]
		}
		l.buf = append(l.buf, b)
	}
}

func (l *lineBuffer) flush() {
	defer func() { l.buf = l.buf[:0] }()
	publish(string(l.buf), l.defaultTopic, l.pub, l.log, l.prefix)
}

func publish(line, defaultTopic string, pub Publisher, logFunc func(string), prefix string) {
	msg, err := ParseLine(line, defaultTopic)
	if err != nil {
		if !errors.Is(err, ErrEmptyLine) {
			logFunc(prefix + err.Error())
		}
		return
	}
	if err := pub.Publish(msg.Topic, msg.Value); err != nil {
		logFunc(prefix + msg.Topic + ": " + err.Error())
	}
}
