// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mfshield controls the LED display of the Arduino style
// multi-function shield: four common-anode 7-segment digits behind a pair of
// daisy-chained 74HC595 shift registers, plus its push buttons.
//
// The register pair takes two bytes per latch frame: the segment byte first,
// then the digit-select byte. Segments are active low because of the common
// anode, so patterns are complemented on the way out; the select lines are
// active high and one-hot, position 0 on the left. Only one digit is ever
// physically lit. Render performs a single scan pass across the four
// positions and relies on being called continuously, so persistence of
// vision fuses the passes into a steady 4-digit reading.
//
// The display hangs off anything implementing conn.Conn that accepts 2-byte
// writes: a bit-banged sn74hc595.Dev, a real SPI port through NewSPI, or a
// simulator.
package mfshield

import (
	"errors"
	"fmt"
	"time"

	"github.com/mfshield/stopclock/mfshield/seg7"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// NoPoint disables the decimal point in RenderPoint.
const NoPoint = -1

// digitSelect enables one display position per latch frame, leftmost first.
var digitSelect = [4]byte{0x01, 0x02, 0x04, 0x08}

// Opts holds the display options.
type Opts struct {
	// DigitHold is how long each digit stays lit during a scan pass. Too
	// short and the digits go dim, too long and the scan visibly flickers.
	// Zero removes the hold entirely, which is only useful against
	// simulators and test fixtures.
	DigitHold time.Duration
}

// DefaultOpts is the recommended configuration: 2ms per digit, so a full
// scan pass every 8ms.
var DefaultOpts = Opts{
	DigitHold: 2 * time.Millisecond,
}

// New returns a display driven through c, which carries one latch frame per
// Tx. The display starts blanked.
func New(c conn.Conn, opts *Opts) (*Dev, error) {
	if c == nil {
		return nil, errors.New("mfshield: a connection is required")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	d := &Dev{c: c, hold: opts.DigitHold}
	return d, d.Clear()
}

// NewSPI returns a display driven over an SPI port wired to the register
// pair: MOSI to serial data, SCLK to the shift clock and CS to the storage
// latch.
func NewSPI(p spi.Port, opts *Opts) (*Dev, error) {
	c, err := p.Connect(physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("mfshield: %v", err)
	}
	return New(c, opts)
}

// Dev is an open handle to the shield's display.
type Dev struct {
	c    conn.Conn
	hold time.Duration
}

func (d *Dev) String() string {
	return fmt.Sprintf("mfshield.Dev{%s}", d.c)
}

// Render draws value on the display, one scan pass. Only the low four
// decimal digits are shown: 12345 renders as 2345. value must not be
// negative.
//
// One pass lights each position for DigitHold and returns with the last
// digit still latched. Call Render continuously from the control loop; any
// pause much beyond the eye's persistence window, a few tens of
// milliseconds, shows up as flicker or a lone stuck digit.
func (d *Dev) Render(value int) error {
	return d.RenderPoint(value, NoPoint)
}

// RenderPoint is Render with the decimal point of one position lit.
// pointDigit counts 0 to 3 from the left; NoPoint lights none. Rendering
// centivolts with pointDigit 1 reads as volts: 245 shows "02.45".
func (d *Dev) RenderPoint(value, pointDigit int) error {
	div := 1000
	for i := range digitSelect {
		digit := value / div % 10
		div /= 10
		pattern := ^seg7.Pattern(digit, i == pointDigit)
		if err := d.c.Tx([]byte{pattern, digitSelect[i]}, nil); err != nil {
			return err
		}
		if d.hold > 0 {
			time.Sleep(d.hold)
		}
	}
	return nil
}

// Clear blanks the display: every segment off, no digit selected.
func (d *Dev) Clear() error {
	return d.c.Tx([]byte{^seg7.Blank, 0x00}, nil)
}

// Halt blanks the display.
func (d *Dev) Halt() error {
	return d.Clear()
}

var _ conn.Resource = &Dev{}
