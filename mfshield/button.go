// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mfshield

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Button is one of the shield's push buttons. The switch shorts the line to
// ground, so the line idles high through a pull-up and reads low while
// pressed.
//
// Pressed applies a lockout so that one physical press, contact bounce
// included, reads as one event. A held button fires again each time the
// lockout lapses, which is how the shield's buttons are used: hold reset and
// the count stays pinned at zero.
type Button struct {
	pin     gpio.PinIn
	lockout time.Duration
	last    time.Time
}

// NewButton configures p with its pull-up and returns the debounced button.
// lockout is how long Pressed stays quiet after reporting a press; 200ms
// suits the shield's switches.
func NewButton(p gpio.PinIn, lockout time.Duration) (*Button, error) {
	if p == nil {
		return nil, errors.New("mfshield: a button pin is required")
	}
	if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("mfshield: %v", err)
	}
	return &Button{pin: p, lockout: lockout}, nil
}

// Pressed reports whether the button is down and out of lockout. It is meant
// to be polled from the control loop and never blocks.
func (b *Button) Pressed() bool {
	if b.pin.Read() != gpio.Low {
		return false
	}
	now := time.Now()
	if !b.last.IsZero() && now.Sub(b.last) < b.lockout {
		return false
	}
	b.last = now
	return true
}

func (b *Button) String() string {
	return fmt.Sprintf("mfshield.Button{%s}", b.pin)
}
