// Package recorder buffers decoded samples in memory and periodically
// writes them to sinks (CSV file, sqlite, influx, remote telemetry).
//
// Contract:
// - Append never does I/O and never blocks on sinks
// - Flush writes all buffered samples in arrival order, flushes are serialized
// - Close flushes then closes sinks; safe to call many times
package recorder

import (
	"context"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/juju/errors"
	"github.com/temoto/atomic_clock"
	"github.com/temoto/imulink/helpers"
	"github.com/temoto/imulink/internal/types"
	"github.com/temoto/imulink/log2"
)

const DefaultInterval = 15 * time.Second

var ErrClosed = errors.New("recorder closed")

type Sink interface {
	WriteSamples([]types.Sample) error
	Close() error
}

type Config struct {
	Interval time.Duration // default 15s
	MaxRows  int           // early flush threshold, 0=disabled
}

type Buffer struct {
	log      *log2.Log
	interval time.Duration
	maxRows  int
	sinks    []Sink
	signal   chan struct{}

	mu     sync.Mutex
	buf    []types.Sample
	lastTs float64
	closed bool

	flushMu   sync.Mutex
	lastFlush atomic_clock.Clock
	rows      uint64
	sinksDone bool
}

func NewBuffer(log *log2.Log, config Config, sinks ...Sink) *Buffer {
	if config.Interval <= 0 {
		config.Interval = DefaultInterval
	}
	self := &Buffer{
		log:      log,
		interval: config.Interval,
		maxRows:  config.MaxRows,
		sinks:    sinks,
		signal:   make(chan struct{}, 1),
	}
	self.lastFlush.SetNow()
	return self
}

// Append stores sample for next flush. Timestamp going backwards is clamped
// to previous value so output stays monotonic.
func (self *Buffer) Append(s types.Sample) {
	self.mu.Lock()
	if self.closed {
		self.mu.Unlock()
		return
	}
	if s.Timestamp < self.lastTs {
		s.Timestamp = self.lastTs
	}
	self.lastTs = s.Timestamp
	self.buf = append(self.buf, s)
	full := self.maxRows > 0 && len(self.buf) >= self.maxRows
	self.mu.Unlock()

	if full {
		select {
		case self.signal <- struct{}{}:
		default:
		}
	}
}

func (self *Buffer) Len() int {
	self.mu.Lock()
	defer self.mu.Unlock()
	return len(self.buf)
}

// Flush writes buffered samples to every sink and clears the buffer.
// One failing sink does not prevent others from receiving the batch,
// failed batch is not retried.
func (self *Buffer) Flush() (int, error) {
	self.flushMu.Lock()
	defer self.flushMu.Unlock()
	return self.flush()
}

func (self *Buffer) flush() (int, error) {
	if self.sinksDone {
		return 0, ErrClosed
	}
	self.mu.Lock()
	batch := self.buf
	self.buf = nil
	self.mu.Unlock()

	if len(batch) == 0 {
		return 0, nil
	}
	var errs []error
	for _, sink := range self.sinks {
		if err := sink.WriteSamples(batch); err != nil {
			errs = append(errs, err)
		}
	}
	self.rows += uint64(len(batch))
	self.log.Debugf("recorder flush rows=%d total=%s since_last=%v",
		len(batch), humanize.Comma(int64(self.rows)), atomic_clock.Since(&self.lastFlush).Round(time.Millisecond))
	self.lastFlush.SetNow()
	return len(batch), errors.Annotate(helpers.FoldErrors(errs), "recorder flush")
}

// Run flushes every interval or when MaxRows reached, until ctx is done.
// Final flush belongs to Close.
func (self *Buffer) Run(ctx context.Context) {
	tmr := time.NewTicker(self.interval)
	defer tmr.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tmr.C:
		case <-self.signal:
		}
		if _, err := self.Flush(); err != nil {
			self.log.Error(err)
		}
	}
}

// Close stops accepting samples, flushes the rest and closes sinks.
func (self *Buffer) Close() error {
	self.mu.Lock()
	self.closed = true
	self.mu.Unlock()

	self.flushMu.Lock()
	defer self.flushMu.Unlock()
	if self.sinksDone {
		return nil
	}
	n, err := self.flush()
	errs := []error{}
	if err != nil {
		errs = append(errs, err)
	}
	for _, sink := range self.sinks {
		if e := sink.Close(); e != nil {
			errs = append(errs, e)
		}
	}
	self.sinksDone = true
	self.log.Infof("recorder closed final_rows=%d total=%s", n, humanize.Comma(int64(self.rows)))
	return errors.Annotate(helpers.FoldErrors(errs), "recorder close")
}

// Rows is total count of flushed samples.
func (self *Buffer) Rows() uint64 {
	self.flushMu.Lock()
	defer self.flushMu.Unlock()
	return self.rows
}
