// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sn74hc595

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

// tracePin records every level written to it, in program order, into a log
// shared by all pins of the fixture. gpiotest.Pin only keeps the last level,
// which is not enough to check a pulse train.
type tracePin struct {
	gpiotest.Pin
	log *[]string
}

func (p *tracePin) Out(l gpio.Level) error {
	v := 0
	if l {
		v = 1
	}
	*p.log = append(*p.log, fmt.Sprintf("%s=%d", p.N, v))
	return p.Pin.Out(l)
}

func testPins() (*tracePin, *tracePin, *tracePin, *[]string) {
	log := &[]string{}
	data := &tracePin{Pin: gpiotest.Pin{N: "data", Num: 8}, log: log}
	clk := &tracePin{Pin: gpiotest.Pin{N: "clk", Num: 7}, log: log}
	latch := &tracePin{Pin: gpiotest.Pin{N: "latch", Num: 4}, log: log}
	return data, clk, latch, log
}

// expectedFrame is the pulse train of one latch frame carrying the given
// bytes: latch drop, then per bit the data level followed by a full clock
// pulse, then the latch rise.
func expectedFrame(bytes ...byte) []string {
	frame := []string{"latch=0"}
	for _, b := range bytes {
		for i := 7; i >= 0; i-- {
			bit := 0
			if b&(1<<i) != 0 {
				bit = 1
			}
			frame = append(frame, fmt.Sprintf("data=%d", bit), "clk=1", "clk=0")
		}
	}
	return append(frame, "latch=1")
}

func TestNew(t *testing.T) {
	data, clk, latch, log := testPins()
	dev, err := New(data, clk, latch)
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{"data=0", "clk=0", "latch=1"}
	if diff := cmp.Diff(*log, expected); diff != "" {
		t.Errorf("idle state writes (-got +want):\n%s", diff)
	}
	if s := dev.String(); s != "SN74HC595{data(8), clk(7), latch(4)}" {
		t.Errorf("unexpected String(): %q", s)
	}
	if d := dev.Duplex(); d != conn.Half {
		t.Errorf("Duplex() = %s expected %s", d, conn.Half)
	}
}

func TestNewNilPin(t *testing.T) {
	data, clk, _, _ := testPins()
	if _, err := New(data, clk, nil); err == nil {
		t.Fatal("New accepted a nil latch pin")
	}
}

func TestTxFrame(t *testing.T) {
	data, clk, latch, log := testPins()
	dev, err := New(data, clk, latch)
	if err != nil {
		t.Fatal(err)
	}
	*log = (*log)[:0]

	if err := dev.Tx([]byte{0xa5, 0x3c}, nil); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(*log, expectedFrame(0xa5, 0x3c)); diff != "" {
		t.Errorf("Tx(0xa5, 0x3c) pulse train (-got +want):\n%s", diff)
	}
}

func TestTxPulseCount(t *testing.T) {
	data, clk, latch, log := testPins()
	dev, err := New(data, clk, latch)
	if err != nil {
		t.Fatal(err)
	}
	*log = (*log)[:0]

	if err := dev.Tx([]byte{0x00, 0xff}, nil); err != nil {
		t.Fatal(err)
	}
	trace := *log
	if first, last := trace[0], trace[len(trace)-1]; first != "latch=0" || last != "latch=1" {
		t.Errorf("frame bracketed by %q .. %q expected latch=0 .. latch=1", first, last)
	}
	rises := 0
	for i, ev := range trace {
		if ev != "clk=1" {
			continue
		}
		rises++
		// Data must already be stable when the clock rises.
		if prev := trace[i-1]; prev != "data=0" && prev != "data=1" {
			t.Errorf("clock rise %d preceded by %q, not a data write", rises, prev)
		}
	}
	if rises != 16 {
		t.Errorf("counted %d clock rises in a 2 byte frame, expected 16", rises)
	}
}

func TestTxRead(t *testing.T) {
	data, clk, latch, _ := testPins()
	dev, err := New(data, clk, latch)
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.Tx(nil, make([]byte, 1)); !errors.Is(err, ErrRead) {
		t.Fatalf("Tx with a read buffer returned %v expected ErrRead", err)
	}
}

func TestHalt(t *testing.T) {
	data, clk, latch, _ := testPins()
	dev, err := New(data, clk, latch)
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.Halt(); err != nil {
		t.Fatal(err)
	}
	for _, p := range []*tracePin{data, clk, latch} {
		if p.L != gpio.Low {
			t.Errorf("%s left %s after Halt()", p.N, p.L)
		}
	}
}
