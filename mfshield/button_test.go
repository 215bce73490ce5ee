// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mfshield

import (
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func TestButtonPull(t *testing.T) {
	pin := &gpiotest.Pin{N: "S1", Num: 16}
	if _, err := NewButton(pin, 200*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if pin.P != gpio.PullUp {
		t.Errorf("button pin pull is %s, expected %s", pin.P, gpio.PullUp)
	}
}

func TestButtonNilPin(t *testing.T) {
	if _, err := NewButton(nil, 0); err == nil {
		t.Fatal("NewButton accepted a nil pin")
	}
}

func TestButtonPressed(t *testing.T) {
	pin := &gpiotest.Pin{N: "S1", Num: 16}
	b, err := NewButton(pin, 50*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	// The pull-up leaves the released line high.
	if b.Pressed() {
		t.Error("released button reported pressed")
	}

	pin.L = gpio.Low
	if !b.Pressed() {
		t.Error("pressed button not reported")
	}
	if b.Pressed() {
		t.Error("press reported again inside the lockout")
	}

	time.Sleep(60 * time.Millisecond)
	if !b.Pressed() {
		t.Error("held button did not fire again after the lockout")
	}

	pin.L = gpio.High
	time.Sleep(60 * time.Millisecond)
	if b.Pressed() {
		t.Error("released button reported pressed after the lockout")
	}
}

func TestButtonBounce(t *testing.T) {
	pin := &gpiotest.Pin{N: "S1", Num: 16}
	b, err := NewButton(pin, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	// A bouncing contact makes and breaks quickly; only the first make
	// counts.
	events := 0
	for range 20 {
		pin.L = gpio.Low
		if b.Pressed() {
			events++
		}
		pin.L = gpio.High
		b.Pressed()
		pin.L = gpio.Low
		if b.Pressed() {
			events++
		}
	}
	if events != 1 {
		t.Errorf("bouncing press produced %d events, expected 1", events)
	}
}

func TestButtonString(t *testing.T) {
	pin := &gpiotest.Pin{N: "S1", Num: 16}
	b, err := NewButton(pin, 0)
	if err != nil {
		t.Fatal(err)
	}
	if s := b.String(); s != "mfshield.Button{S1(16)}" {
		t.Errorf("unexpected String(): %q", s)
	}
}
