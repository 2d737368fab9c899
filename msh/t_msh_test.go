// Copyright 2017 The Hermes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

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

func Test_space01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("space01. dof enumeration")

	// two linear elements on [-1,1] with both endpoints fixed: one hat dof
	s := NewSpace(-1, 1, 2, 1, 1)
	s.SetDirichletLeft(0, 0)
	s.SetDirichletRight(0, 0)
	chk.IntAssert(s.AssignDofs(), 1)
	chk.IntAssert(s.NactiveElem(), 2)

	// raising both degrees to 2 adds one bubble per element
	for _, h := range s.ActiveElems() {
		s.SetP(h, 2)
	}
	chk.IntAssert(s.AssignDofs(), 3)

	// dof indices are contiguous and unique
	seen := make(map[int]int)
	for _, h := range s.ActiveElems() {
		e := s.Elems[h]
		for j, I := range e.Dofs[0] {
			if I < 0 {
				continue
			}
			if j > 0 || e.X0 == s.A { // left vertex is shared with the previous element
				seen[I]++
			}
		}
	}
	chk.IntAssert(len(seen), 3)
	for I := 0; I < 3; I++ {
		chk.IntAssert(seen[I], 1)
	}

	// free endpoints get dofs
	s2 := NewSpace(0, 1, 3, 1, 1)
	chk.IntAssert(s2.AssignDofs(), 4)

	// two equations double the count
	s3 := NewSpace(0, 1, 3, 2, 2)
	s3.SetDirichletLeft(0, 0)
	chk.IntAssert(s3.AssignDofs(), (3+3)+(4+3))
}

func Test_roundtrip01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("roundtrip01. vector <-> solution mapping")

	s := NewSpace(0, 1, 3, 3, 2)
	s.SetDirichletLeft(0, 1.5)
	s.SetDirichletRight(1, -2.0)
	n := s.AssignDofs()

	v := make([]float64, n)
	for i := range v {
		v[i] = float64(i)*0.7 - 1.3
	}
	s.VectorToSolution(v)
	w := make([]float64, n)
	s.SolutionToVector(w)
	chk.Array(tst, "v == solution_to_vector(vector_to_solution(v))", 1e-17, w, v)

	// fixed values stay put
	first := s.Elems[s.ActiveElems()[0]]
	chk.Float64(tst, "left Dirichlet coefficient", 1e-17, first.Coeffs[0][0], 1.5)
}

func Test_split01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("split01. midpoint split preserves the solution")

	// u(x) = x(1-x) as a degree-2 expansion on a single element
	s := NewSpace(0, 1, 1, 2, 1)
	s.AssignDofs()
	e := s.Elems[0]
	e.Coeffs[0] = ProjectPoly(0, 1, 2, nil, 8, func(x float64) (float64, float64) {
		return x * (1 - x), 1 - 2*x
	})
	for _, x := range []float64{0, 0.25, 0.5, 0.8, 1} {
		u, dudx := s.EvalAt(x)
		chk.AnaNum(tst, "u   ", 1e-14, u[0], x*(1-x), chk.Verbose)
		chk.AnaNum(tst, "dudx", 1e-13, dudx[0], 1-2*x, chk.Verbose)
	}

	// split with children of the same degree: still exact
	ndofBefore := s.AssignDofs()
	s.Split(0, 2, 2)
	ndofAfter := s.AssignDofs()
	if ndofAfter <= ndofBefore {
		tst.Errorf("split must increase the dof count: %d -> %d\n", ndofBefore, ndofAfter)
		return
	}
	chk.IntAssert(s.NactiveElem(), 2)
	for _, x := range []float64{0, 0.2, 0.5, 0.7, 1} {
		u, _ := s.EvalAt(x)
		chk.AnaNum(tst, "u after split", 1e-13, u[0], x*(1-x), chk.Verbose)
	}
}

func Test_refineall01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("refineall01. reference space construction")

	s := NewSpace(0, 1, 2, 1, 1)
	s.AssignDofs()

	// commit u(x) = x
	for _, h := range s.ActiveElems() {
		e := s.Elems[h]
		e.Coeffs[0][0] = e.X0
		e.Coeffs[0][1] = e.X1
	}

	r := s.RefineAll(1)
	chk.IntAssert(r.NactiveElem(), 4)
	for _, h := range r.ActiveElems() {
		chk.IntAssert(r.Elems[h].P, 2)
	}
	// 5 vertices + 4 bubbles, no essential conditions
	chk.IntAssert(r.Ndof, 9)

	// transferred solution still represents u(x) = x
	for _, x := range []float64{0, 0.1, 0.5, 0.9, 1} {
		u, dudx := r.EvalAt(x)
		chk.AnaNum(tst, "ref u ", 1e-13, u[0], x, chk.Verbose)
		chk.AnaNum(tst, "ref u'", 1e-12, dudx[0], 1, chk.Verbose)
	}

	// the coarse space is untouched
	chk.IntAssert(s.NactiveElem(), 2)
	chk.IntAssert(s.Elems[s.ActiveElems()[0]].P, 1)
}

func Test_findactive01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("findactive01. right endpoint with roundoff in the mesh")

	// with 49 elements the last element's X1 lands one ulp below 1; splitting
	// it makes the rightmost root inactive, so the endpoint lookup must
	// descend to the leaf
	s := NewSpace(0, 1, 49, 1, 1)
	s.AssignDofs()
	last := s.Roots[len(s.Roots)-1]
	s.Split(last, 1, 1)
	s.AssignDofs()

	h := s.FindActive(1.0)
	if !s.Elems[h].Active {
		tst.Errorf("FindActive(B) returned inactive element %d\n", h)
		return
	}

	// commit u(x) = x and evaluate at the endpoint
	for _, k := range s.ActiveElems() {
		e := s.Elems[k]
		e.Coeffs[0][0] = e.X0
		e.Coeffs[0][1] = e.X1
	}
	u, dudx := s.EvalAt(1.0)
	chk.AnaNum(tst, "u(B) ", 1e-14, u[0], 1, chk.Verbose)
	chk.AnaNum(tst, "u'(B)", 1e-10, dudx[0], 1, chk.Verbose)
}

func Test_breaks01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("breaks01. active boundaries within an interval")

	s := NewSpace(0, 1, 2, 1, 1)
	s.AssignDofs()
	r := s.RefineAll(1) // active boundaries at 0.25, 0.5, 0.75

	chk.Array(tst, "breaks [0,0.5]", 1e-15, r.Breaks(0, 0.5), []float64{0, 0.25, 0.5})
	chk.Array(tst, "breaks [0,1]", 1e-15, r.Breaks(0, 1), []float64{0, 0.25, 0.5, 0.75, 1})
	chk.Array(tst, "breaks [0.5,0.75]", 1e-15, r.Breaks(0.5, 0.75), []float64{0.5, 0.75})
}
