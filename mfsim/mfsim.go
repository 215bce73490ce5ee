// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mfsim emulates the multi-function shield's 4-digit display while
// the real board is elsewhere.
//
// The simulators consume the exact two byte latch frames the hardware takes,
// complemented segment byte then digit-select byte, so a display driver is
// pointed at one by swapping its conn.Conn. Term draws in place on a
// terminal with ANSI colors. Screen rasterizes to an image for snapshots.
//
// Like the eye watching the multiplexed display, a simulator integrates over
// the scan: each position keeps the last pattern latched into it, and Term
// repaints once per completed pass.
package mfsim

import (
	"errors"
	"fmt"
)

var errRead = errors.New("mfsim: read not supported")

// panel integrates latch frames into what the eye would see: the last
// pattern lit at each of the four positions, stored active high.
type panel struct {
	segs [4]byte
}

// latch applies one frame and reports whether a scan pass just completed,
// which is when the rightmost position was written or the frame selected no
// position at all and the display went dark.
func (p *panel) latch(w []byte) (bool, error) {
	if len(w) != 2 {
		return false, fmt.Errorf("mfsim: frame is %d bytes, expected 2", len(w))
	}
	segments, sel := ^w[0], w[1]
	if sel&0x0f == 0 {
		p.segs = [4]byte{}
		return true, nil
	}
	for i := range p.segs {
		if sel&(1<<i) != 0 {
			p.segs[i] = segments
		}
	}
	return sel&0x08 != 0, nil
}
