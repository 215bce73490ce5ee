// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mfshield/stopclock/mfshield"
	"github.com/mfshield/stopclock/stopwatch"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/physic"
)

// controller owns the polling side of the firmware: buttons, the pot and the
// display scan. The clock ticks on its own goroutine and is only read here.
// Nothing in the loop blocks beyond the per-digit hold inside a scan pass,
// so the scan repeats fast enough for persistence of vision.
type controller struct {
	display *mfshield.Dev
	clock   *stopwatch.Clock
	reset   *mfshield.Button // nil when the button is not wired
	mode    *mfshield.Button // nil when the button is not wired
	pot     analog.PinADC    // nil when the converter is not wired
	log     *slog.Logger

	showVolts bool
	volts     physic.ElectricPotential
	seen      bool
	minV      physic.ElectricPotential
	maxV      physic.ElectricPotential
}

// run polls until ctx is cancelled.
func (c *controller) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if err := c.step(ctx); err != nil {
			return err
		}
	}
}

// step is one loop iteration: inputs, policy, one scan pass.
func (c *controller) step(ctx context.Context) error {
	if c.reset != nil && c.reset.Pressed() {
		c.clock.Reset()
		c.log.LogAttrs(ctx, slog.LevelInfo, "stopwatch reset")
	}
	if c.mode != nil && c.mode.Pressed() {
		c.showVolts = !c.showVolts
		c.log.LogAttrs(ctx, slog.LevelInfo, "display mode switched",
			slog.Bool("volts", c.showVolts))
	}
	if c.pot != nil {
		if err := c.sample(ctx); err != nil {
			return err
		}
	}
	if c.showVolts && c.pot != nil {
		// Centivolts with the point after the second digit: 2.45V shows
		// "02.45".
		return c.display.RenderPoint(int(c.volts/(10*physic.MilliVolt)), 1)
	}
	return c.display.Render(c.clock.MMSS())
}

// sample reads the pot and keeps the running range.
func (c *controller) sample(ctx context.Context) error {
	s, err := c.pot.Read()
	if err != nil {
		return fmt.Errorf("adc: %w", err)
	}
	c.volts = s.V
	if c.seen && s.V >= c.minV && s.V <= c.maxV {
		return nil
	}
	if !c.seen || s.V < c.minV {
		c.minV = s.V
	}
	if !c.seen || s.V > c.maxV {
		c.maxV = s.V
	}
	c.seen = true
	c.log.LogAttrs(ctx, slog.LevelDebug, "voltage range widened",
		slog.String("min", c.minV.String()),
		slog.String("max", c.maxV.String()))
	return nil
}
