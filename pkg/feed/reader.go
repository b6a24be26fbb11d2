package feed

import (
	"bufio"
	"context"
	"io"
)

// Reader feeds values from any io.Reader, typically stdin.
type Reader struct {
	r            io.Reader
	pub          Publisher
	defaultTopic string
	log          func(string)
}

func NewReader(r io.Reader, pub Publisher, defaultTopic string, logFunc func(string)) *Reader {
	return &Reader{
		r:            r,
		pub:          pub,
		defaultTopic: defaultTopic,
		log:          logFunc,
	}
}

// Run publishes every line until EOF, a read error or ctx is done. A
// pending read is not interrupted by ctx.
func (r *Reader) Run(ctx context.Context) error {
	sc := bufio.NewScanner(r.r)
	for sc.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		publish(sc.Text(), r.defaultTopic, r.pub, r.log, "feed: ")
	}
	return sc.Err()
}
