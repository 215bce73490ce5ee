// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// stopclock runs an Arduino style multi-function shield as a wall stopwatch:
// minutes and seconds on the 4-digit display, one button resetting the
// count, the other switching the display over to the potentiometer voltage.
//
// With -sim the display is emulated on the terminal, buttons and pot
// disabled, so the firmware loop can be watched without hardware.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mfshield/stopclock/mcp3008"
	"github.com/mfshield/stopclock/mfshield"
	"github.com/mfshield/stopclock/mfsim"
	"github.com/mfshield/stopclock/sn74hc595"
	"github.com/mfshield/stopclock/stopwatch"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func main() {
	configPath := flag.String("config", "", "wiring and timing config (YAML)")
	sim := flag.Bool("sim", false, "emulate the display on the terminal")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	var level slog.LevelVar
	if *debug {
		level.Set(slog.LevelDebug)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &level}))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, log, *configPath, *sim); err != nil {
		log.LogAttrs(ctx, slog.LevelError, "stopclock failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, configPath string, sim bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	c := &controller{clock: stopwatch.New(), log: log}
	if sim {
		term := mfsim.NewTerm(nil)
		defer term.Halt()
		if c.display, err = mfshield.New(term, &mfshield.DefaultOpts); err != nil {
			return err
		}
	} else {
		if err = c.wire(ctx, cfg); err != nil {
			return err
		}
	}
	defer c.display.Halt()

	go c.clock.Run(ctx)
	log.LogAttrs(ctx, slog.LevelInfo, "stopclock running",
		slog.String("display", c.display.String()),
		slog.Bool("sim", sim))
	return c.run(ctx)
}

// wire opens the shield's hardware per the config: the bit-banged register
// link, the buttons and the analog converter.
func (c *controller) wire(ctx context.Context, cfg *Config) error {
	if _, err := host.Init(); err != nil {
		return err
	}

	data, err := pinByName(cfg.Pins.Data)
	if err != nil {
		return err
	}
	clk, err := pinByName(cfg.Pins.Clock)
	if err != nil {
		return err
	}
	latch, err := pinByName(cfg.Pins.Latch)
	if err != nil {
		return err
	}
	link, err := sn74hc595.New(data, clk, latch)
	if err != nil {
		return err
	}
	if c.display, err = mfshield.New(link, &mfshield.Opts{DigitHold: cfg.Scan.hold()}); err != nil {
		return err
	}

	if cfg.Pins.Reset != "" {
		p, err := pinByName(cfg.Pins.Reset)
		if err != nil {
			return err
		}
		if c.reset, err = mfshield.NewButton(p, cfg.Buttons.lockout()); err != nil {
			return err
		}
	}
	if cfg.Pins.Mode != "" {
		p, err := pinByName(cfg.Pins.Mode)
		if err != nil {
			return err
		}
		if c.mode, err = mfshield.NewButton(p, cfg.Buttons.lockout()); err != nil {
			return err
		}
	}

	// Boards without the converter still make a fine stopwatch.
	port, err := spireg.Open(cfg.ADC.Port)
	if err != nil {
		c.log.LogAttrs(ctx, slog.LevelWarn, "no ADC, voltage display disabled",
			slog.Any("err", err))
		return nil
	}
	adc, err := mcp3008.New(port, cfg.ADC.vref())
	if err != nil {
		return err
	}
	c.pot = adc.Pins[cfg.ADC.Channel]
	return nil
}

// pinByName resolves a GPIO through the host registry.
func pinByName(name string) (gpio.PinIO, error) {
	if p := gpioreg.ByName(name); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("no GPIO named %q", name)
}
