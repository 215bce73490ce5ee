// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mfsim

import (
	"bytes"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"
)

// TermOpts represents the options available for the terminal simulator.
type TermOpts struct {
	// W is where the panel is drawn. Leaving it nil draws to stdout through
	// go-colorable so the ANSI codes survive Windows consoles.
	W io.Writer
	// Palette converts LED colors to terminal colors. Leaving it nil picks
	// ansi256.Default.
	Palette *ansi256.Palette

	_ struct{}
}

// Term draws the shield's four digits in place on a terminal, three rows of
// colored blocks per digit.
//
// Useful while the real shield is plugged into a board on the other side of
// the room.
type Term struct {
	w       io.Writer
	palette ansi256.Palette

	panel panel
	drawn bool
	buf   bytes.Buffer
}

// NewTerm returns a Term ready to stand in for the display.
func NewTerm(opts *TermOpts) *Term {
	if opts == nil {
		opts = &TermOpts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Term{w: w, palette: *p}
}

func (t *Term) String() string {
	return "mfsim.Term"
}

// Halt implements conn.Resource.
//
// It leaves the cursor on a fresh line and restores the terminal attributes.
func (t *Term) Halt() error {
	_, err := t.w.Write([]byte("\n\033[0m"))
	return err
}

// Duplex implements conn.Conn.
func (t *Term) Duplex() conn.Duplex {
	return conn.Half
}

// Tx latches one display frame and repaints the terminal once per completed
// scan pass. r must be empty.
func (t *Term) Tx(w, r []byte) error {
	if len(r) != 0 {
		return errRead
	}
	repaint, err := t.panel.latch(w)
	if err != nil || !repaint {
		return err
	}
	return t.refresh()
}

// termCells maps each drawing cell to its segment bit, -1 for a gap. Three
// rows of four cells roughly shape a digit: A across the top, F G B through
// the middle, E D C along the bottom with the point at the end.
var termCells = [3][4]int{
	{-1, 0, -1, -1},
	{5, 6, 1, -1},
	{4, 3, 2, 7},
}

var (
	termLit = color.NRGBA{0xff, 0x20, 0x10, 0xff}
	termDim = color.NRGBA{0x30, 0x30, 0x30, 0xff}
)

func (t *Term) refresh() error {
	// This code is designed to minimize the amount of memory allocated per
	// call; the scan hits it many times a second.
	t.buf.Reset()
	if t.drawn {
		_, _ = t.buf.WriteString("\033[3A")
	}
	for row := range 3 {
		_, _ = t.buf.WriteString("\r")
		for digit, segs := range t.panel.segs {
			if digit > 0 {
				_, _ = t.buf.WriteString(" ")
			}
			for _, bit := range termCells[row] {
				switch {
				case bit < 0:
					_, _ = t.buf.WriteString(" ")
				case segs&(1<<bit) != 0:
					_, _ = io.WriteString(&t.buf, t.palette.Block(termLit))
				default:
					_, _ = io.WriteString(&t.buf, t.palette.Block(termDim))
				}
			}
		}
		_, _ = t.buf.WriteString("\033[0m\n")
	}
	t.drawn = true
	_, err := t.buf.WriteTo(t.w)
	return err
}

var _ conn.Conn = &Term{}
