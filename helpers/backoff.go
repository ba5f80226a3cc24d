package helpers

import (
	"sync"
	"time"

	"github.com/temoto/atomic_clock"
)

// Backoff is limited exponential retry delay, safe for concurrent use.
// Consecutive failures give Min*K, Min*K^2 ... up to Max, success resets.
//
//	for {
//	  err := op()
//	  time.Sleep(backoff.DelayAfter(err == nil))
//	}
type Backoff struct {
	Min time.Duration
	Max time.Duration
	K   float32
	Res time.Duration // delay resolution for nice logs, default=1ms

	mu       sync.Mutex
	next     time.Duration
	failures uint32
	last     atomic_clock.Clock
}

// DelayAfter records result of attempt and returns wait before next one.
func (b *Backoff) DelayAfter(success bool) time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	if success {
		b.reset()
		return 0
	}
	if b.next == 0 {
		b.next = b.Min
	}
	b.failure()
	return b.remaining()
}

// DelayBefore is remaining time until next attempt is allowed.
func (b *Backoff) DelayBefore() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.remaining()
}

func (b *Backoff) Failure() {
	b.mu.Lock()
	b.failure()
	b.mu.Unlock()
}

func (b *Backoff) Reset() {
	b.mu.Lock()
	b.reset()
	b.mu.Unlock()
}

// Failures counts consecutive failed attempts since last success.
func (b *Backoff) Failures() uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

func (b *Backoff) failure() {
	if b.next == 0 {
		b.next = b.Min
	} else {
		b.next = time.Duration(float32(b.next) * b.K)
	}
	b.next = b.limit(b.next)
	b.failures++
	b.last.SetNow()
}

func (b *Backoff) reset() {
	b.next = 0
	b.failures = 0
	b.last.SetNow()
}

func (b *Backoff) remaining() time.Duration {
	if b.next == 0 {
		return 0
	}
	delay := b.limit(b.next)
	since := atomic_clock.Since(&b.last)
	if since >= delay {
		return 0
	}
	return b.round(delay - since)
}

func (b *Backoff) limit(d time.Duration) time.Duration {
	if d < b.Min {
		d = b.Min
	}
	if b.Max != 0 && d > b.Max {
		d = b.Max
	}
	return b.round(d)
}

func (b *Backoff) round(d time.Duration) time.Duration {
	res := b.Res
	if res <= 0 {
		res = time.Millisecond
	}
	return d / res * res
}
