// Copyright 2017 The Hermes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package adapt implements the discretization-error estimator, the hp
// refinement selector and the outer adaptivity loop
package adapt

import (
	"math"

	"github.com/ionhandshaker/hermes/msh"
	"github.com/ionhandshaker/hermes/shp"
)

// Norm selects the norm used to measure errors
type Norm int

const (
	NormL2 Norm = iota
	NormH1
)

// Estimate computes, for each active coarse element, the norm of the
// difference between the coarse solution and the reference solution over
// that element's sub-interval, and the relative global error as a
// percentage of the reference solution norm
func Estimate(norm Norm, coarse, ref *msh.Space) (elemErrs []float64, relErr float64) {
	act := coarse.ActiveElems()
	elemErrs = make([]float64, len(act))
	total2 := 0.0
	for k, h := range act {
		e := coarse.Elems[h]
		err2 := diffNorm2(norm, coarse, ref, e.X0, e.X1)
		elemErrs[k] = math.Sqrt(err2)
		total2 += err2
	}
	relErr = 100 * math.Sqrt(total2/solutionNorm2(norm, ref))
	return
}

// EstimateExact computes the relative global error of the coarse solution
// against a supplied exact solution, as a percentage. Validation only; it
// never feeds the adaptivity decision
func EstimateExact(norm Norm, spc *msh.Space, exact msh.Target) (relErr float64) {
	err2 := 0.0
	norm2 := 0.0
	for _, h := range spc.ActiveElems() {
		e := spc.Elems[h]
		order := 2*e.P + 20 // the exact solution is in general not polynomial
		err2 += shp.Integrate(e.X0, e.X1, order, func(x float64) float64 {
			u, dudx := spc.EvalAt(x)
			ue, due := exact(x)
			s := 0.0
			for c := range u {
				d := u[c] - ue[c]
				s += d * d
				if norm == NormH1 {
					d = dudx[c] - due[c]
					s += d * d
				}
			}
			return s
		})
		norm2 += shp.Integrate(e.X0, e.X1, order, func(x float64) float64 {
			ue, due := exact(x)
			s := 0.0
			for c := range ue {
				s += ue[c] * ue[c]
				if norm == NormH1 {
					s += due[c] * due[c]
				}
			}
			return s
		})
	}
	return 100 * math.Sqrt(err2/norm2)
}

// diffNorm2 integrates the squared norm of (coarse - reference) over
// [x0,x1], splitting at reference element boundaries so quadrature never
// crosses a solution kink
func diffNorm2(norm Norm, coarse, ref *msh.Space, x0, x1 float64) (res float64) {
	breaks := ref.Breaks(x0, x1)
	order := 2*maxInt(coarse.MaxP(), ref.MaxP()) + 2
	for i := 0; i < len(breaks)-1; i++ {
		res += shp.Integrate(breaks[i], breaks[i+1], order, func(x float64) float64 {
			uc, duc := coarse.EvalAt(x)
			ur, dur := ref.EvalAt(x)
			s := 0.0
			for c := range uc {
				d := uc[c] - ur[c]
				s += d * d
				if norm == NormH1 {
					d = duc[c] - dur[c]
					s += d * d
				}
			}
			return s
		})
	}
	return
}

// solutionNorm2 integrates the squared norm of the solution held by a space
func solutionNorm2(norm Norm, spc *msh.Space) (res float64) {
	for _, h := range spc.ActiveElems() {
		e := spc.Elems[h]
		res += shp.Integrate(e.X0, e.X1, 2*e.P+2, func(x float64) float64 {
			u, dudx := spc.EvalAt(x)
			s := 0.0
			for c := range u {
				s += u[c] * u[c]
				if norm == NormH1 {
					s += dudx[c] * dudx[c]
				}
			}
			return s
		})
	}
	return
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
