// Copyright 2017 The Hermes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// checkPoisson verifies -u'' = rhs and the reported derivative by central
// differences at a few interior points
func checkPoisson(tst *testing.T, label string, sol func(x float64) (u, dudx []float64), rhs func(x float64) float64, xs []float64) {
	h := 1e-5
	for _, x := range xs {
		_, d0 := sol(x)
		up, dp := sol(x + h)
		um, dm := sol(x - h)
		chk.AnaNum(tst, label+" u'  ", 1e-9, d0[0], (up[0]-um[0])/(2*h), chk.Verbose)
		chk.AnaNum(tst, label+" -u''", 1e-5, rhs(x), -(dp[0]-dm[0])/(2*h), chk.Verbose)
	}
}

func Test_quadratic01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("quadratic01. -u'' = 2 on [-1,1]")

	p := QuadraticPoisson{}
	u, _ := p.Sol(-1)
	chk.Float64(tst, "u(-1)", 1e-17, u[0], 0)
	u, _ = p.Sol(1)
	chk.Float64(tst, "u(+1)", 1e-17, u[0], 0)
	u, _ = p.Sol(0)
	chk.Float64(tst, "u(0) ", 1e-17, u[0], 1)
	checkPoisson(tst, "quad", p.Sol, p.Rhs, []float64{-0.6, -0.1, 0.3, 0.8})
}

func Test_sine01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sine01. -u'' = (kπ)² sin(kπx) on [0,1]")

	for k := 0; k <= 3; k++ {
		p := SinePoisson{K: k}
		u, _ := p.Sol(0)
		chk.Float64(tst, io.Sf("k=%d u(0)", k), 1e-13, u[0], 0)
		u, _ = p.Sol(1)
		chk.Float64(tst, io.Sf("k=%d u(1)", k), 1e-13, u[0], 0)
		checkPoisson(tst, io.Sf("sine k=%d", k), p.Sol, p.Rhs, []float64{0.1, 0.37, 0.52, 0.9})
	}
}
