// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package seg7 holds the canonical segment encodings for 7-segment numeric
// displays.
//
// Patterns are active high: bit 0 is segment A around the ring to bit 6 for
// the middle segment G, and bit 7 is the decimal point. Drivers for displays
// with inverted drive, like the common-anode units behind most shift
// registers, complement the pattern before writing it out.
package seg7

const (
	// DP is the decimal point, bit 7 of a pattern.
	DP byte = 0x80

	// Blank is the pattern with every segment off.
	Blank byte = 0x00
)

// digits holds the on-patterns for 0 through 9.
var digits = [10]byte{
	0x3f, // 0
	0x06, // 1
	0x5b, // 2
	0x4f, // 3
	0x66, // 4
	0x6d, // 5
	0x7d, // 6
	0x07, // 7
	0x7f, // 8
	0x6f, // 9
}

// Pattern returns the active-high segment pattern for a decimal digit,
// optionally with the decimal point lit. digit must be in [0,9]; callers
// decompose values with modulo arithmetic so the range holds.
func Pattern(digit int, dp bool) byte {
	p := digits[digit]
	if dp {
		p |= DP
	}
	return p
}
