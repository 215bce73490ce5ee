// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"
)

// Config is the wiring and timing of the shield, loadable from YAML so a
// rewired board does not need a rebuild.
type Config struct {
	Pins    PinsConfig    `yaml:"pins"`
	Scan    ScanConfig    `yaml:"scan"`
	Buttons ButtonsConfig `yaml:"buttons"`
	ADC     ADCConfig     `yaml:"adc"`
}

// PinsConfig names the GPIOs wired to the register pair and the buttons, as
// known to the GPIO registry.
type PinsConfig struct {
	Data  string `yaml:"data"`
	Clock string `yaml:"clock"`
	Latch string `yaml:"latch"`
	// Reset and Mode may be left empty on boards without the buttons wired.
	Reset string `yaml:"reset"`
	Mode  string `yaml:"mode"`
}

// ScanConfig tunes the display scan.
type ScanConfig struct {
	// DigitHoldMs is how long each digit stays lit, in milliseconds.
	DigitHoldMs int `yaml:"digit_hold_ms"`
}

// ButtonsConfig tunes the buttons.
type ButtonsConfig struct {
	// LockoutMs is the debounce lockout, in milliseconds.
	LockoutMs int `yaml:"lockout_ms"`
}

// ADCConfig locates the potentiometer behind the SPI analog converter.
type ADCConfig struct {
	// Port is the SPI port name; empty picks the first port registered.
	Port string `yaml:"port"`
	// Channel is the converter input the pot is wired to.
	Channel int `yaml:"channel"`
	// RefMv is the converter's reference voltage, in millivolts.
	RefMv int `yaml:"ref_mv"`
}

// DefaultConfig mirrors the usual hookup on a Pi header.
var DefaultConfig = Config{
	Pins: PinsConfig{
		Data:  "GPIO8",
		Clock: "GPIO7",
		Latch: "GPIO4",
		Reset: "GPIO16",
		Mode:  "GPIO20",
	},
	Scan:    ScanConfig{DigitHoldMs: 2},
	Buttons: ButtonsConfig{LockoutMs: 200},
	ADC:     ADCConfig{Channel: 0, RefMv: 3300},
}

// loadConfig returns DefaultConfig overlaid with the YAML file at path, or
// the defaults untouched when path is empty.
func loadConfig(path string) (*Config, error) {
	cfg := DefaultConfig
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("config: %v", err)
		}
	}
	return &cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Pins.Data == "" || c.Pins.Clock == "" || c.Pins.Latch == "" {
		return errors.New("config: data, clock and latch pins are all required")
	}
	if c.Scan.DigitHoldMs < 0 {
		return errors.New("config: digit_hold_ms must not be negative")
	}
	if c.Buttons.LockoutMs < 0 {
		return errors.New("config: lockout_ms must not be negative")
	}
	if c.ADC.Channel < 0 || c.ADC.Channel > 7 {
		return errors.New("config: adc channel must be 0 through 7")
	}
	if c.ADC.RefMv <= 0 {
		return errors.New("config: adc ref_mv must be positive")
	}
	return nil
}

func (c ScanConfig) hold() time.Duration {
	return time.Duration(c.DigitHoldMs) * time.Millisecond
}

func (c ButtonsConfig) lockout() time.Duration {
	return time.Duration(c.LockoutMs) * time.Millisecond
}

func (c ADCConfig) vref() physic.ElectricPotential {
	return physic.ElectricPotential(c.RefMv) * physic.MilliVolt
}
