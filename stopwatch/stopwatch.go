// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package stopwatch keeps a minutes and seconds count for a 4-digit display.
//
// The count advances on a once-per-second tick running asynchronously to the
// loop that reads it, the same shape as a timer interrupt against a polling
// main. To keep a reader from ever seeing a half-updated pair, the minute
// already carried but the seconds not yet wrapped, the pair is packed into a
// single atomic word of elapsed seconds and every transition is one atomic
// operation.
package stopwatch

import (
	"context"
	"sync/atomic"
	"time"
)

// span is the full range of the counter in seconds. The display has two
// digits per field, so the count wraps to 00:00 after 99:59.
const span = 100 * 60

// Clock is a 00:00 to 99:59 stopwatch. The zero value is ready to use and
// reads 00:00. All methods are safe for concurrent use.
type Clock struct {
	elapsed atomic.Uint32
}

// New returns a Clock at 00:00.
func New() *Clock {
	return &Clock{}
}

// Tick advances the count by one second, carrying into minutes at 60 and
// wrapping the whole count after 99:59. Run calls it once per second.
func (c *Clock) Tick() {
	for {
		old := c.elapsed.Load()
		if c.elapsed.CompareAndSwap(old, (old+1)%span) {
			return
		}
	}
}

// Reset returns the count to 00:00.
func (c *Clock) Reset() {
	c.elapsed.Store(0)
}

// Snapshot returns a mutually consistent minutes and seconds pair.
func (c *Clock) Snapshot() (minutes, seconds int) {
	e := c.elapsed.Load()
	return int(e / 60), int(e % 60)
}

// MMSS returns the count as a single integer reading minutes*100+seconds,
// the layout a 4-digit display shows: 1234 is 12:34.
func (c *Clock) MMSS() int {
	minutes, seconds := c.Snapshot()
	return minutes*100 + seconds
}

// Run ticks the clock once per second of wall time until ctx is cancelled.
// Start it on its own goroutine.
func (c *Clock) Run(ctx context.Context) {
	c.run(ctx, time.Second)
}

func (c *Clock) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}
