// Copyright 2017 The Hermes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"github.com/cpmech/gosl/chk"

	"github.com/ionhandshaker/hermes/shp"
)

// BcKind defines the kind of boundary condition at a domain endpoint
type BcKind int

const (
	BcNone      BcKind = iota // natural (do-nothing) boundary
	BcDirichlet               // essential boundary with fixed value
)

// Bc holds one boundary condition specification
type Bc struct {
	Kind  BcKind
	Value float64
}

// Space holds the element arena and enumerates the degrees of freedom of the
// active elements. The active elements' intervals are disjoint and tile [A,B]
type Space struct {
	A, B  float64    // domain endpoints
	Neq   int        // number of equations
	Elems []*Element // arena; the handle of an element is its index here
	Roots []int      // root element handles, ordered left to right
	Left  []Bc       // [neq] boundary conditions at x=A
	Right []Bc       // [neq] boundary conditions at x=B
	Ndof  int        // total number of degrees of freedom (set by AssignDofs)
}

// NewSpace creates a space with nelem uniform active elements of degree p
func NewSpace(a, b float64, nelem, p, neq int) (o *Space) {
	if b <= a || nelem < 1 || p < 1 || neq < 1 {
		chk.Panic("invalid space parameters: a=%g b=%g nelem=%d p=%d neq=%d", a, b, nelem, p, neq)
	}
	o = &Space{
		A: a, B: b, Neq: neq,
		Left:  make([]Bc, neq),
		Right: make([]Bc, neq),
	}
	dx := (b - a) / float64(nelem)
	for i := 0; i < nelem; i++ {
		h := o.add(&Element{
			X0: a + float64(i)*dx, X1: a + float64(i+1)*dx,
			P: p, Active: true, Parent: -1, Kids: [2]int{-1, -1},
		})
		o.Roots = append(o.Roots, h)
	}
	return
}

// add appends an element to the arena and returns its handle
func (o *Space) add(e *Element) int {
	o.Elems = append(o.Elems, e)
	return len(o.Elems) - 1
}

// SetDirichletLeft fixes equation eq to the given value at x=A
func (o *Space) SetDirichletLeft(eq int, value float64) {
	o.Left[eq] = Bc{BcDirichlet, value}
}

// SetDirichletRight fixes equation eq to the given value at x=B
func (o *Space) SetDirichletRight(eq int, value float64) {
	o.Right[eq] = Bc{BcDirichlet, value}
}

// ActiveElems returns the handles of the active elements, left to right
func (o *Space) ActiveElems() (res []int) {
	var walk func(h int)
	walk = func(h int) {
		e := o.Elems[h]
		if e.Active {
			res = append(res, h)
			return
		}
		walk(e.Kids[0])
		walk(e.Kids[1])
	}
	for _, r := range o.Roots {
		walk(r)
	}
	return
}

// NactiveElem returns the number of active elements
func (o *Space) NactiveElem() int {
	return len(o.ActiveElems())
}

// AssignDofs enumerates a contiguous global equation number for every
// independent coefficient of every active element, honouring inter-element
// continuity at shared vertices and Dirichlet conditions at the endpoints.
// Dirichlet-fixed coefficients get dof -1 and their boundary value stored.
// Returns the total number of degrees of freedom
func (o *Space) AssignDofs() int {
	act := o.ActiveElems()
	n := 0
	for c := 0; c < o.Neq; c++ {
		for k, h := range act {
			e := o.Elems[h]
			e.alloc(o.Neq)

			// left vertex: shared with the previous element, except at x=A
			if k == 0 {
				if o.Left[c].Kind == BcDirichlet {
					e.Dofs[c][0] = -1
					e.Coeffs[c][0] = o.Left[c].Value
				} else {
					e.Dofs[c][0] = n
					n++
				}
			} else {
				prev := o.Elems[act[k-1]]
				e.Dofs[c][0] = prev.Dofs[c][1]
				e.Coeffs[c][0] = prev.Coeffs[c][1]
			}

			// right vertex
			if k == len(act)-1 {
				if o.Right[c].Kind == BcDirichlet {
					e.Dofs[c][1] = -1
					e.Coeffs[c][1] = o.Right[c].Value
				} else {
					e.Dofs[c][1] = n
					n++
				}
			} else {
				e.Dofs[c][1] = n
				n++
			}

			// bubbles
			for j := 2; j <= e.P; j++ {
				e.Dofs[c][j] = n
				n++
			}
		}
	}
	o.Ndof = n
	return n
}

// SolutionToVector copies the element-local coefficients of the active
// elements into the flat coefficient vector
func (o *Space) SolutionToVector(v []float64) {
	if len(v) != o.Ndof {
		chk.Panic("coefficient vector has wrong size: %d != %d", len(v), o.Ndof)
	}
	for _, h := range o.ActiveElems() {
		e := o.Elems[h]
		for c := 0; c < o.Neq; c++ {
			for j, I := range e.Dofs[c] {
				if I >= 0 {
					v[I] = e.Coeffs[c][j]
				}
			}
		}
	}
}

// VectorToSolution writes the coefficient vector back into the element-local
// storage so that elements hold the latest committed solution
func (o *Space) VectorToSolution(v []float64) {
	if len(v) != o.Ndof {
		chk.Panic("coefficient vector has wrong size: %d != %d", len(v), o.Ndof)
	}
	for _, h := range o.ActiveElems() {
		e := o.Elems[h]
		for c := 0; c < o.Neq; c++ {
			for j, I := range e.Dofs[c] {
				if I >= 0 {
					e.Coeffs[c][j] = v[I]
				}
			}
		}
	}
}

// FindActive returns the handle of the active element containing x
func (o *Space) FindActive(x float64) int {
	if x < o.A {
		x = o.A
	}
	if x > o.B {
		x = o.B
	}
	for _, r := range o.Roots {
		if x > o.Elems[r].X1 {
			continue
		}
		h := r
		for !o.Elems[h].Active {
			e := o.Elems[h]
			if x <= o.Elems[e.Kids[0]].X1 {
				h = e.Kids[0]
			} else {
				h = e.Kids[1]
			}
		}
		return h
	}
	// x == B with roundoff in the last root's X1: take the rightmost leaf
	h := o.Roots[len(o.Roots)-1]
	for !o.Elems[h].Active {
		h = o.Elems[h].Kids[1]
	}
	return h
}

// EvalElem evaluates all solution components and their x-derivatives at the
// reference coordinate ξ ∈ [-1,1] of element h
func (o *Space) EvalElem(h int, ξ float64) (u, dudx []float64) {
	e := o.Elems[h]
	u = make([]float64, o.Neq)
	dudx = make([]float64, o.Neq)
	jri := 2 / e.Len() // inverse Jacobian
	for j := 0; j <= e.P; j++ {
		f, g := shp.Lobatto(j, ξ)
		for c := 0; c < o.Neq; c++ {
			u[c] += e.Coeffs[c][j] * f
			dudx[c] += e.Coeffs[c][j] * g * jri
		}
	}
	return
}

// EvalAt evaluates the solution at the physical point x
func (o *Space) EvalAt(x float64) (u, dudx []float64) {
	h := o.FindActive(x)
	e := o.Elems[h]
	ξ := 2*(x-e.X0)/e.Len() - 1
	return o.EvalElem(h, ξ)
}

// Breaks returns the boundaries of the active elements intersecting [x0,x1],
// including x0 and x1, sorted left to right. Integrating between consecutive
// breaks avoids quadrature across solution kinks
func (o *Space) Breaks(x0, x1 float64) (res []float64) {
	tiny := 1e-12 * (o.B - o.A)
	res = append(res, x0)
	for _, h := range o.ActiveElems() {
		e := o.Elems[h]
		if e.X1 <= x0+tiny || e.X0 >= x1-tiny {
			continue
		}
		if e.X1 < x1-tiny {
			res = append(res, e.X1)
		}
	}
	res = append(res, x1)
	return
}

// MaxP returns the largest polynomial degree among active elements
func (o *Space) MaxP() (p int) {
	for _, h := range o.ActiveElems() {
		if o.Elems[h].P > p {
			p = o.Elems[h].P
		}
	}
	return
}
