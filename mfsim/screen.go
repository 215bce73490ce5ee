// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mfsim

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/mfshield/stopclock/mfshield/seg7"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/conn/v3"
)

// Geometry of the rendered panel, in pixels.
const (
	segLen  = 26 // stroke length of one segment
	cellGap = 16 // between digit cells
	margin  = 14
	footer  = 22 // room under the digits for the caption

	imgW = 2*margin + 4*segLen + 3*cellGap
	imgH = 2*margin + 2*segLen + footer
)

// segEnds is the skeleton of a digit: per segment bit, the endpoints of its
// stroke in segment lengths relative to the cell's top left corner.
var segEnds = [7][4]float64{
	{0, 0, 1, 0}, // A
	{1, 0, 1, 1}, // B
	{1, 1, 1, 2}, // C
	{0, 2, 1, 2}, // D
	{0, 1, 0, 2}, // E
	{0, 0, 0, 1}, // F
	{0, 1, 1, 1}, // G
}

// ScreenOpts represents the options available for the image simulator.
type ScreenOpts struct {
	// Label is stamped under the digits. Leaving it empty stamps the board
	// name.
	Label string

	_ struct{}
}

// Screen rasterizes the panel into an image, handy for snapshotting what the
// display showed in a failing test or a bug report.
type Screen struct {
	panel panel
	font  *truetype.Font
	label string
}

// NewScreen returns a Screen rendering the panel at its native size.
func NewScreen(opts *ScreenOpts) (*Screen, error) {
	if opts == nil {
		opts = &ScreenOpts{}
	}
	label := opts.Label
	if label == "" {
		label = "multi-function shield"
	}
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("mfsim: %v", err)
	}
	return &Screen{font: f, label: label}, nil
}

func (s *Screen) String() string {
	return "mfsim.Screen"
}

// Halt implements conn.Resource. It blanks the panel.
func (s *Screen) Halt() error {
	s.panel = panel{}
	return nil
}

// Duplex implements conn.Conn.
func (s *Screen) Duplex() conn.Duplex {
	return conn.Half
}

// Tx latches one display frame. r must be empty.
func (s *Screen) Tx(w, r []byte) error {
	if len(r) != 0 {
		return errRead
	}
	_, err := s.panel.latch(w)
	return err
}

// Image renders the panel as it currently looks: LED red segments on a dark
// board, unlit segments faintly visible the way real hardware keeps them.
func (s *Screen) Image() *image.RGBA {
	dc := gg.NewContext(imgW, imgH)
	dc.SetRGB(0.07, 0.07, 0.09)
	dc.Clear()
	dc.SetLineWidth(4)
	dc.SetLineCap(gg.LineCapRound)
	for i := range s.panel.segs {
		s.drawDigit(dc, i)
	}
	dc.SetFontFace(truetype.NewFace(s.font, &truetype.Options{Size: 12}))
	dc.SetRGB(0.55, 0.55, 0.55)
	dc.DrawString(s.label, margin, imgH-8)
	return dc.Image().(*image.RGBA)
}

func (s *Screen) drawDigit(dc *gg.Context, i int) {
	x0 := float64(margin + i*(segLen+cellGap))
	const y0 = float64(margin)
	for bit, e := range segEnds {
		setLED(dc, s.panel.segs[i]&(1<<bit) != 0)
		dc.DrawLine(x0+e[0]*segLen, y0+e[1]*segLen, x0+e[2]*segLen, y0+e[3]*segLen)
		dc.Stroke()
	}
	setLED(dc, s.panel.segs[i]&seg7.DP != 0)
	dc.DrawCircle(x0+segLen+7, y0+2*segLen, 2.5)
	dc.Fill()
}

func setLED(dc *gg.Context, lit bool) {
	if lit {
		dc.SetRGB(0.95, 0.18, 0.08)
	} else {
		dc.SetRGB(0.16, 0.16, 0.18)
	}
}

var _ conn.Conn = &Screen{}
