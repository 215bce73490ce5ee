// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sn74hc595 drives a chain of 74HC595 serial-in, parallel-out shift
// registers over three bit-banged GPIO lines: serial data, shift clock and
// storage latch.
//
// Dev implements conn.Conn so anything speaking a write-only byte stream can
// sit on top of it. One Tx is one latch frame: the latch line drops, every
// byte of the write buffer is shifted out most significant bit first, and the
// latch line rises again, at which point the register chain exposes the new
// bits on its parallel outputs all at once. The register samples the data
// line on the rising clock edge, so the data pin is always written before its
// clock pulse.
//
// The chip shifts happily at tens of MHz; bit-banged GPIO is orders of
// magnitude below that, so no settle delays are inserted.
//
// Dev is not safe for concurrent use. The expected wiring gives the link a
// single owner, typically a display refresh loop.
//
// # Datasheet
//
// https://www.ti.com/lit/ds/symlink/sn74hc595.pdf
package sn74hc595

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

// ErrRead is returned by Tx when data is requested back. The register chain
// has no output line to read from.
var ErrRead = errors.New("sn74hc595: read not supported")

// New returns a Dev shifting out on the three given output pins.
//
// The lines are settled to their idle state: data and clock low, latch high
// so the register keeps showing whatever it held before.
func New(data, clk, latch gpio.PinOut) (*Dev, error) {
	if data == nil || clk == nil || latch == nil {
		return nil, errors.New("sn74hc595: data, clock and latch pins are all required")
	}
	d := &Dev{data: data, clk: clk, latch: latch}
	if err := d.data.Out(gpio.Low); err != nil {
		return nil, err
	}
	if err := d.clk.Out(gpio.Low); err != nil {
		return nil, err
	}
	if err := d.latch.Out(gpio.High); err != nil {
		return nil, err
	}
	return d, nil
}

// Dev is an open handle to a 74HC595 chain wired for bit-banging.
type Dev struct {
	data  gpio.PinOut
	clk   gpio.PinOut
	latch gpio.PinOut
}

func (d *Dev) String() string {
	return fmt.Sprintf("SN74HC595{%s, %s, %s}", d.data, d.clk, d.latch)
}

// Tx shifts out every byte of w within a single latch frame. An 8-bit
// register consumes the last byte shifted; earlier bytes travel down the
// chain. r must be empty.
func (d *Dev) Tx(w, r []byte) error {
	if len(r) != 0 {
		return ErrRead
	}
	if err := d.latch.Out(gpio.Low); err != nil {
		return err
	}
	for _, b := range w {
		if err := d.shiftOut(b); err != nil {
			return err
		}
	}
	return d.latch.Out(gpio.High)
}

// Duplex implements conn.Conn.
func (d *Dev) Duplex() conn.Duplex {
	return conn.Half
}

// Halt drives all three lines low. The register keeps its outputs; clear
// them first if they must go dark.
func (d *Dev) Halt() error {
	if err := d.data.Out(gpio.Low); err != nil {
		return err
	}
	if err := d.clk.Out(gpio.Low); err != nil {
		return err
	}
	return d.latch.Out(gpio.Low)
}

// shiftOut clocks one byte onto the data line, most significant bit first.
func (d *Dev) shiftOut(b byte) error {
	for i := 7; i >= 0; i-- {
		if err := d.data.Out(gpio.Level(b&(1<<i) != 0)); err != nil {
			return err
		}
		if err := d.clk.Out(gpio.High); err != nil {
			return err
		}
		if err := d.clk.Out(gpio.Low); err != nil {
			return err
		}
	}
	return nil
}

var _ conn.Conn = &Dev{}
