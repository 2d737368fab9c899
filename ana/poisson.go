// Copyright 2017 The Hermes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana provides closed-form solutions for verification
package ana

import "math"

// QuadraticPoisson is the manufactured solution of
//   -u'' = 2  on [-1,1],  u(-1) = u(1) = 0
// namely u(x) = 1 - x². It lies in the span of degree-2 elements, so
// hp-adaptivity must recover it exactly with pure p-refinements
type QuadraticPoisson struct{}

// Sol returns the solution and its derivative
func (o QuadraticPoisson) Sol(x float64) (u, dudx []float64) {
	return []float64{1 - x*x}, []float64{-2 * x}
}

// Rhs returns the source term f(x)
func (o QuadraticPoisson) Rhs(x float64) float64 {
	return 2
}

// SinePoisson is the manufactured solution of
//   -u'' = (kπ)² sin(kπx)  on [0,1],  u(0) = u(1) = 0
// namely u(x) = sin(kπx). Not polynomial: adaptivity keeps refining
type SinePoisson struct {
	K int // number of half-waves; values below 1 mean 1
}

func (o SinePoisson) kpi() float64 {
	k := o.K
	if k < 1 {
		k = 1
	}
	return float64(k) * math.Pi
}

// Sol returns the solution and its derivative
func (o SinePoisson) Sol(x float64) (u, dudx []float64) {
	w := o.kpi()
	return []float64{math.Sin(w * x)}, []float64{w * math.Cos(w * x)}
}

// Rhs returns the source term f(x)
func (o SinePoisson) Rhs(x float64) float64 {
	w := o.kpi()
	return w * w * math.Sin(w*x)
}
