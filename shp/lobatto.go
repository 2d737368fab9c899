// Copyright 2017 The Hermes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements hierarchic (Lobatto) shape functions and
// Gauss-Legendre quadrature for 1D hp finite elements
package shp

import "math"

// Legendre computes the Legendre polynomial Ln(ξ) and its derivative at ξ ∈ [-1,1]
// using the three-term recurrence
func Legendre(n int, ξ float64) (l, dl float64) {
	if n == 0 {
		return 1, 0
	}
	if n == 1 {
		return ξ, 1
	}
	lkm1, lk := 1.0, ξ   // L0, L1
	dlkm1, dlk := 0.0, 1.0 // L0', L1'
	for k := 1; k < n; k++ {
		lkp1 := (float64(2*k+1)*ξ*lk - float64(k)*lkm1) / float64(k+1)
		dlkp1 := dlkm1 + float64(2*k+1)*lk
		lkm1, lk = lk, lkp1
		dlkm1, dlk = dlk, dlkp1
	}
	return lk, dlk
}

// Lobatto computes the j-th Lobatto shape function and its derivative at the
// reference coordinate ξ ∈ [-1,1]. Shape 0 and 1 are the vertex functions;
// shapes j ≥ 2 are the bubbles
//   l_j(ξ) = (Lj(ξ) - L{j-2}(ξ)) / √(2(2j-1))
// whose derivatives are scaled Legendre polynomials, hence L2-orthogonal
func Lobatto(j int, ξ float64) (f, g float64) {
	switch j {
	case 0:
		return (1 - ξ) / 2, -0.5
	case 1:
		return (1 + ξ) / 2, 0.5
	}
	s := math.Sqrt(2 * float64(2*j-1))
	lj, _ := Legendre(j, ξ)
	ljm2, _ := Legendre(j-2, ξ)
	ljm1, _ := Legendre(j-1, ξ)
	f = (lj - ljm2) / s
	g = math.Sqrt(float64(2*j-1)/2.0) * ljm1
	return
}

// Eval returns shape function values and reference derivatives for all
// nshape = p+1 shapes of degree p at the given reference points
//  f, g -- [p+1][len(ξ)]
func Eval(p int, ξ []float64) (f, g [][]float64) {
	f = make([][]float64, p+1)
	g = make([][]float64, p+1)
	for j := 0; j <= p; j++ {
		f[j] = make([]float64, len(ξ))
		g[j] = make([]float64, len(ξ))
		for i, x := range ξ {
			f[j][i], g[j][i] = Lobatto(j, x)
		}
	}
	return
}
