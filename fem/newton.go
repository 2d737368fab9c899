// Copyright 2017 The Hermes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// NewtonStatus is the state of the Newton solver
type NewtonStatus int

const (
	NewtonIterating NewtonStatus = iota
	NewtonConverged
	NewtonDiverged
)

// Newton drives assembly, linear solve and state update to convergence for a
// nonlinear discrete problem on a fixed space. The space holds the current
// iterate and receives the converged solution
type Newton struct {
	Dp      *DiscreteProblem
	Bk      *Backend
	Tol     float64 // tolerance on the residual L2 norm
	MaxIt   int     // iteration cap; reaching it is fatal
	Verbose bool
	Status  NewtonStatus
}

// NewNewton returns a Newton solver for the given problem and backend
func NewNewton(dp *DiscreteProblem, bk *Backend, tol float64, maxIt int) *Newton {
	return &Newton{Dp: dp, Bk: bk, Tol: tol, MaxIt: maxIt}
}

// Solve runs Newton's method from the iterate stored in the space and writes
// the converged coefficients back into element-local storage. Returns the
// number of iterations performed
func (o *Newton) Solve() (it int, err error) {
	spc := o.Dp.Spc
	ndof := spc.Ndof
	y := la.NewVector(ndof)
	spc.SolutionToVector(y)

	m := o.Bk.Matrix()
	r := o.Bk.Vector()
	sol := o.Bk.Solver(m, r)

	o.Status = NewtonIterating
	it = 1
	for {
		// assemble Jacobian and residual at the current iterate
		if err = o.Dp.Assemble(m, r); err != nil {
			o.Status = NewtonDiverged
			return
		}

		// l2 norm of the residual vector
		res2 := 0.0
		for i := 0; i < ndof; i++ {
			res2 += r.Get(i) * r.Get(i)
		}
		if o.Verbose {
			io.Pf("  Newton iter %d, residual norm: %.15f\n", it, math.Sqrt(res2))
		}

		// at least one full iteration is forced: the initial residual can be
		// spuriously small
		if res2 < o.Tol*o.Tol && it > 1 {
			o.Status = NewtonConverged
			break
		}

		// the matrix equation reads J(Y) δY = -F(Y)
		for i := 0; i < ndof; i++ {
			r.Set(i, -r.Get(i))
		}
		if err = sol.Solve(); err != nil {
			o.Status = NewtonDiverged
			return it, chk.Err("matrix solver failed:\n%v", err)
		}

		// update the iterate
		δ := sol.Solution()
		for i := 0; i < ndof; i++ {
			y[i] += δ[i]
		}

		if it >= o.MaxIt {
			o.Status = NewtonDiverged
			return it, chk.Err("Newton's method did not converge after %d iterations", it)
		}

		spc.VectorToSolution(y)
		it++
	}
	return
}
