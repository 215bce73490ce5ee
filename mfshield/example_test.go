// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mfshield_test

import (
	"log"
	"time"

	"github.com/mfshield/stopclock/mfshield"
	"github.com/mfshield/stopclock/sn74hc595"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	link, err := sn74hc595.New(
		gpioreg.ByName("GPIO8"), // DS
		gpioreg.ByName("GPIO7"), // SHCP
		gpioreg.ByName("GPIO4"), // STCP
	)
	if err != nil {
		log.Fatal(err)
	}
	dev, err := mfshield.New(link, &mfshield.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Halt()

	// Each Render is one scan pass, so it is called continuously and the
	// eye fuses the passes into a steady reading.
	start := time.Now()
	for time.Since(start) < 5*time.Second {
		if err := dev.Render(int(time.Since(start).Milliseconds())); err != nil {
			log.Fatal(err)
		}
	}
}

// ExampleNewSPI latches the registers through a real SPI port instead of
// bit-banged GPIO: MOSI to DS, SCLK to SHCP, CE0 to STCP.
func ExampleNewSPI() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	port, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer port.Close()
	dev, err := mfshield.NewSPI(port, &mfshield.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Halt()

	for {
		if err := dev.RenderPoint(1234, 1); err != nil {
			log.Fatal(err)
		}
	}
}

func ExampleNewButton() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	button, err := mfshield.NewButton(gpioreg.ByName("GPIO16"), 200*time.Millisecond)
	if err != nil {
		log.Fatal(err)
	}
	for {
		if button.Pressed() {
			log.Printf("%s pressed", button)
		}
		time.Sleep(time.Millisecond)
	}
}
