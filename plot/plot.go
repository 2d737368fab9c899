// Copyright 2017 The Hermes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package plot renders meshes and solutions to PNG files
package plot

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/fogleman/gg"

	"github.com/ionhandshaker/hermes/msh"
)

// margins and sampling density
const (
	pad     = 40.0
	samples = 16 // points per element when sampling the solution
)

// Solution draws component eq of the solution held by the space, sampling
// each active element, and saves it to filename
func Solution(spc *msh.Space, eq, width, height int, filename string) error {
	var xx, yy []float64
	for _, h := range spc.ActiveElems() {
		e := spc.Elems[h]
		for i := 0; i <= samples; i++ {
			ξ := -1 + 2*float64(i)/float64(samples)
			u, _ := spc.EvalElem(h, ξ)
			xx = append(xx, e.X0+(ξ+1)*e.Len()/2)
			yy = append(yy, u[eq])
		}
	}
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, y := range yy {
		ymin = math.Min(ymin, y)
		ymax = math.Max(ymax, y)
	}
	if ymax-ymin < 1e-12 {
		ymin, ymax = ymin-1, ymax+1
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	sx := (float64(width) - 2*pad) / (spc.B - spc.A)
	sy := (float64(height) - 2*pad) / (ymax - ymin)
	px := func(x float64) float64 { return pad + (x-spc.A)*sx }
	py := func(y float64) float64 { return float64(height) - pad - (y-ymin)*sy }

	// axis
	dc.SetRGB(0.7, 0.7, 0.7)
	dc.SetLineWidth(1)
	if ymin <= 0 && ymax >= 0 {
		dc.DrawLine(px(spc.A), py(0), px(spc.B), py(0))
		dc.Stroke()
	}

	// curve
	dc.SetRGB(0.1, 0.3, 0.8)
	dc.SetLineWidth(2)
	dc.MoveTo(px(xx[0]), py(yy[0]))
	for i := 1; i < len(xx); i++ {
		dc.LineTo(px(xx[i]), py(yy[i]))
	}
	dc.Stroke()

	if err := dc.SavePNG(filename); err != nil {
		return chk.Err("cannot save solution plot to %q:\n%v", filename, err)
	}
	return nil
}

// Mesh draws the active elements as segments with their polynomial degrees
// and saves the picture to filename
func Mesh(spc *msh.Space, width, height int, filename string) error {
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	sx := (float64(width) - 2*pad) / (spc.B - spc.A)
	px := func(x float64) float64 { return pad + (x-spc.A)*sx }
	ym := float64(height) / 2

	dc.SetLineWidth(2)
	for _, h := range spc.ActiveElems() {
		e := spc.Elems[h]
		dc.SetRGB(0.2, 0.2, 0.2)
		dc.DrawLine(px(e.X0), ym, px(e.X1), ym)
		dc.Stroke()
		dc.DrawLine(px(e.X0), ym-6, px(e.X0), ym+6)
		dc.DrawLine(px(e.X1), ym-6, px(e.X1), ym+6)
		dc.Stroke()
		dc.SetRGB(0.7, 0.1, 0.1)
		dc.DrawStringAnchored(io.Sf("p=%d", e.P), px(e.Xmid()), ym-14, 0.5, 0.5)
	}

	if err := dc.SavePNG(filename); err != nil {
		return chk.Err("cannot save mesh plot to %q:\n%v", filename, err)
	}
	return nil
}
