// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mcp3008 reads the Microchip MCP3008 8-channel 10-bit analog to
// digital converter over SPI.
//
// Every input channel is exposed as an analog.PinADC through Dev.Pins, so a
// potentiometer wired to channel 0 is just dev.Pins[0].Read(). Conversions
// are single-ended against the voltage on the VREF pin.
//
// # Datasheet
//
// https://ww1.microchip.com/downloads/en/DeviceDoc/21295d.pdf
package mcp3008

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

const channels = 8

// New returns a Dev speaking on p. vref is the voltage on the chip's VREF
// pin, which sets the top of the conversion range. The multi-function shield
// feeds it the 3.3V rail.
func New(p spi.Port, vref physic.ElectricPotential) (*Dev, error) {
	if vref <= 0 {
		return nil, errors.New("mcp3008: a positive reference voltage is required")
	}
	c, err := p.Connect(physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("mcp3008: %v", err)
	}
	dev := &Dev{c: c, vref: vref, Pins: make([]analog.PinADC, channels)}
	for ix := range channels {
		dev.Pins[ix] = &Pin{
			dev:    dev,
			name:   fmt.Sprintf("MCP3008_CH%d", ix),
			number: ix,
		}
	}
	return dev, nil
}

// Dev is an open handle to an MCP3008.
type Dev struct {
	// Pins is the 8 input channels.
	Pins []analog.PinADC

	c    spi.Conn
	vref physic.ElectricPotential
}

func (d *Dev) String() string {
	return "MCP3008"
}

// Halt implements conn.Resource. The chip powers down between conversions on
// its own; there is nothing to stop.
func (d *Dev) Halt() error {
	return nil
}

// read runs one single-ended conversion: a start bit, the channel in the
// configuration byte, then 10 result bits straddling the last two bytes.
func (d *Dev) read(channel int) (analog.Sample, error) {
	w := []byte{0x01, 0x80 | byte(channel)<<4, 0x00}
	r := make([]byte, 3)
	if err := d.c.Tx(w, r); err != nil {
		return analog.Sample{}, fmt.Errorf("mcp3008: %v", err)
	}
	raw := int32(r[1]&0x03)<<8 | int32(r[2])
	return analog.Sample{
		V:   d.vref * physic.ElectricPotential(raw) / 1024,
		Raw: raw,
	}, nil
}
