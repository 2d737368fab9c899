// Copyright 2017 The Hermes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"sync"

	"gonum.org/v1/gonum/integrate/quad"
)

// quadrature rules are cached per point count since assembly requests the
// same orders over and over
var (
	gaussMu    sync.Mutex
	gaussCache = make(map[int]*GaussRule)
)

// GaussRule holds Gauss-Legendre points and weights on the reference
// interval [-1,1]
type GaussRule struct {
	X []float64 // points
	W []float64 // weights
}

// Gauss returns the Gauss-Legendre rule integrating polynomials of the given
// order exactly. The rule lives on [-1,1]; callers map points and scale
// weights by the element Jacobian
func Gauss(order int) *GaussRule {
	if order < 0 {
		order = 0
	}
	n := order/2 + 1 // n points are exact up to order 2n-1
	gaussMu.Lock()
	defer gaussMu.Unlock()
	if r, ok := gaussCache[n]; ok {
		return r
	}
	r := &GaussRule{
		X: make([]float64, n),
		W: make([]float64, n),
	}
	quad.Legendre{}.FixedLocations(r.X, r.W, -1, 1)
	gaussCache[n] = r
	return r
}

// Integrate approximates ∫f over [a,b] with a rule of the given order
func Integrate(a, b float64, order int, f func(x float64) float64) (res float64) {
	r := Gauss(order)
	jac := (b - a) / 2
	for i, ξ := range r.X {
		x := a + (ξ+1)*jac
		res += f(x) * r.W[i] * jac
	}
	return
}
