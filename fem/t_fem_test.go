// Copyright 2017 The Hermes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/ionhandshaker/hermes/msh"
)

// poissonWf returns the weak form of -u'' = f:
//   jacobian: ∫ u' v'    residual: ∫ (uPrev' v' - f v)
func poissonWf(f func(x float64) float64) *WeakForm {
	wf := new(WeakForm)
	wf.AddMatrixForm(0, 0, func(np int, x, w, u, dudx, v, dvdx []float64, uPrev, duPrevdx [][][]float64, extra interface{}) (val float64) {
		for i := 0; i < np; i++ {
			val += dudx[i] * dvdx[i] * w[i]
		}
		return
	})
	wf.AddVectorForm(0, func(np int, x, w []float64, uPrev, duPrevdx [][][]float64, v, dvdx []float64, extra interface{}) (val float64) {
		for i := 0; i < np; i++ {
			val += (duPrevdx[0][0][i]*dvdx[i] - f(x[i])*v[i]) * w[i]
		}
		return
	})
	return wf
}

func Test_assemble01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assemble01. Poisson on two linear elements")

	// -u'' = 2 on [-1,1], homogeneous Dirichlet: a single hat dof with
	// stiffness 2 and source integral 2
	s := msh.NewSpace(-1, 1, 2, 1, 1)
	s.SetDirichletLeft(0, 0)
	s.SetDirichletRight(0, 0)
	chk.IntAssert(s.AssignDofs(), 1)

	dp := NewDiscreteProblem(poissonWf(func(x float64) float64 { return 2 }), s)
	bk, _ := NewBackend("dense", false)
	m := bk.Matrix()
	r := bk.Vector()
	if err := dp.Assemble(m, r); err != nil {
		tst.Errorf("assemble failed: %v\n", err)
		return
	}
	d := m.(*TripletMatrix).T.ToDense()
	chk.Float64(tst, "J(0,0)", 1e-14, d.Get(0, 0), 2)
	chk.Float64(tst, "F(0)  ", 1e-14, r.Get(0), -2)
}

func Test_assemble02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assemble02. concurrent equals serial")

	s := msh.NewSpace(0, 1, 8, 3, 1)
	s.SetDirichletLeft(0, 0)
	s.SetDirichletRight(0, 0)
	n := s.AssignDofs()

	// nonzero iterate so the residual forms see a previous solution
	v := make([]float64, n)
	for i := range v {
		v[i] = 0.3*float64(i) - 1.1
	}
	s.VectorToSolution(v)

	wf := poissonWf(func(x float64) float64 { return x * x })
	bk, _ := NewBackend("dense", false)

	dp1 := NewDiscreteProblem(wf, s)
	dp1.Nworkers = 1
	m1 := bk.Matrix()
	r1 := bk.Vector()
	if err := dp1.Assemble(m1, r1); err != nil {
		tst.Errorf("serial assemble failed: %v\n", err)
		return
	}

	dp4 := NewDiscreteProblem(wf, s)
	dp4.Nworkers = 4
	m4 := bk.Matrix()
	r4 := bk.Vector()
	if err := dp4.Assemble(m4, r4); err != nil {
		tst.Errorf("concurrent assemble failed: %v\n", err)
		return
	}

	d1 := m1.(*TripletMatrix).T.ToDense()
	d4 := m4.(*TripletMatrix).T.ToDense()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			chk.AnaNum(tst, io.Sf("J(%d,%d)", i, j), 1e-11, d1.Get(i, j), d4.Get(i, j), false)
		}
		chk.AnaNum(tst, io.Sf("F(%d)", i), 1e-11, r1.Get(i), r4.Get(i), false)
	}
}

func Test_newton01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("newton01. convergence and idempotence")

	s := msh.NewSpace(-1, 1, 2, 1, 1)
	s.SetDirichletLeft(0, 0)
	s.SetDirichletRight(0, 0)
	s.AssignDofs()

	dp := NewDiscreteProblem(poissonWf(func(x float64) float64 { return 2 }), s)
	bk, _ := NewBackend("dense", false)
	newton := NewNewton(dp, bk, 1e-10, 50)
	newton.Verbose = chk.Verbose

	it, err := newton.Solve()
	if err != nil {
		tst.Errorf("newton failed: %v\n", err)
		return
	}
	chk.IntAssert(int(newton.Status), int(NewtonConverged))
	chk.IntAssert(it, 2) // one forced iteration, then the convergence check

	// linear elements are nodally exact for this problem
	u, _ := s.EvalAt(0)
	chk.Float64(tst, "u(0)", 1e-13, u[0], 1)

	// re-solving from the converged state stays within the forced iteration
	it, err = newton.Solve()
	if err != nil {
		tst.Errorf("newton re-solve failed: %v\n", err)
		return
	}
	chk.IntAssert(it, 2)
	u, _ = s.EvalAt(0)
	chk.Float64(tst, "u(0) after re-solve", 1e-13, u[0], 1)
}

func Test_newton02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("newton02. iteration cap is fatal")

	s := msh.NewSpace(-1, 1, 2, 1, 1)
	s.SetDirichletLeft(0, 0)
	s.SetDirichletRight(0, 0)
	s.AssignDofs()

	dp := NewDiscreteProblem(poissonWf(func(x float64) float64 { return 2 }), s)
	bk, _ := NewBackend("dense", false)
	newton := NewNewton(dp, bk, 0, 3) // unreachable tolerance
	if _, err := newton.Solve(); err == nil {
		tst.Errorf("newton must fail when the iteration cap is reached\n")
		return
	}
	chk.IntAssert(int(newton.Status), int(NewtonDiverged))
}
