// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mcp3008

import (
	"periph.io/x/conn/v3/analog"
)

// Pin is a single input channel of the converter.
type Pin struct {
	dev    *Dev
	name   string
	number int
}

// Halt implements conn.Resource.
func (pin *Pin) Halt() error {
	return nil
}

// Name returns the name of the channel.
func (pin *Pin) Name() string {
	return pin.name
}

// Number returns the channel number.
func (pin *Pin) Number() int {
	return pin.number
}

// Deprecated: returns "In"
func (pin *Pin) Function() string {
	return "In"
}

// Range returns the conversion range: zero to the reference voltage, in
// 1024 steps.
func (pin *Pin) Range() (analog.Sample, analog.Sample) {
	return analog.Sample{}, analog.Sample{V: pin.dev.vref, Raw: 1023}
}

// Read runs one conversion. The sample carries both the raw 10 bit count and
// the scaled potential.
func (pin *Pin) Read() (analog.Sample, error) {
	return pin.dev.read(pin.number)
}

func (pin *Pin) String() string {
	return pin.name
}

var _ analog.PinADC = &Pin{}
