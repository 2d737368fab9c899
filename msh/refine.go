// Copyright 2017 The Hermes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"github.com/cpmech/gosl/chk"

	"github.com/ionhandshaker/hermes/shp"
)

// Target evaluates a target function to be projected: all components and
// their x-derivatives at the physical point x
type Target func(x float64) (u, dudx []float64)

// Split replaces active element h by two children at the midpoint, with
// degrees p0 (left) and p1 (right). The parent's solution is transferred to
// the children by local projection, so the committed solution is preserved
// exactly whenever the children span the parent restriction. DOFs must be
// re-enumerated before the space is used again
func (o *Space) Split(h, p0, p1 int) (k0, k1 int) {
	e := o.Elems[h]
	if !e.Active {
		chk.Panic("cannot split inactive element %d", h)
	}
	if p0 < 1 || p1 < 1 {
		chk.Panic("invalid children degrees: p0=%d p1=%d", p0, p1)
	}
	xm := e.Xmid()
	k0 = o.add(&Element{X0: e.X0, X1: xm, P: p0, Active: true, Parent: h, Kids: [2]int{-1, -1}})
	k1 = o.add(&Element{X0: xm, X1: e.X1, P: p1, Active: true, Parent: h, Kids: [2]int{-1, -1}})

	// transfer parent solution
	target := func(x float64) (u, dudx []float64) {
		ξ := 2*(x-e.X0)/e.Len() - 1
		return o.EvalElem(h, ξ)
	}
	order := 2 * (e.P + 1)
	o.projectInto(o.Elems[k0], nil, target, order)
	o.projectInto(o.Elems[k1], nil, target, order)

	e.Active = false
	e.Kids = [2]int{k0, k1}
	return
}

// SetP changes the degree of active element h in place. Existing coefficients
// are kept (the basis is hierarchic); new bubbles start at zero, and lowering
// the degree truncates. DOFs must be re-enumerated afterwards
func (o *Space) SetP(h, p int) {
	e := o.Elems[h]
	if !e.Active {
		chk.Panic("cannot change degree of inactive element %d", h)
	}
	if p < 1 {
		chk.Panic("invalid degree: p=%d", p)
	}
	e.P = p
	e.alloc(o.Neq)
}

// RefineAll builds the reference space: a structurally independent copy in
// which every active element is split once and both children's degree is
// raised by dp. The coarse solution is transferred as the reference warm
// start and DOFs are enumerated before returning
func (o *Space) RefineAll(dp int) (r *Space) {
	r = &Space{
		A: o.A, B: o.B, Neq: o.Neq,
		Left:  append([]Bc(nil), o.Left...),
		Right: append([]Bc(nil), o.Right...),
		Roots: append([]int(nil), o.Roots...),
	}
	r.Elems = make([]*Element, len(o.Elems))
	for i, e := range o.Elems {
		r.Elems[i] = e.clone()
	}
	for _, h := range r.ActiveElems() {
		p := r.Elems[h].P
		r.Split(h, p+dp, p+dp)
	}
	r.AssignDofs()
	return
}

// projectInto sets the coefficients of element e by projecting the target,
// one equation at a time. breaks lists interior points of [e.X0,e.X1] where
// the target's derivative may jump; nil means the target is smooth there
func (o *Space) projectInto(e *Element, breaks []float64, target Target, order int) {
	e.alloc(o.Neq)
	for c := 0; c < o.Neq; c++ {
		cc := c
		e.Coeffs[c] = ProjectPoly(e.X0, e.X1, e.P, breaks, order, func(x float64) (float64, float64) {
			u, dudx := target(x)
			return u[cc], dudx[cc]
		})
	}
}

// ProjectPoly computes the Lobatto coefficients of degree p on [x0,x1]
// approximating a scalar target: vertex interpolation plus H1-seminorm
// projection of the bubbles. breaks lists interior derivative kinks of the
// target; order is the quadrature order used per sub-interval
func ProjectPoly(x0, x1 float64, p int, breaks []float64, order int, target func(x float64) (u, dudx float64)) []float64 {
	c := make([]float64, p+1)
	c[0], _ = target(x0)
	c[1], _ = target(x1)
	iv := append([]float64{x0}, breaks...)
	iv = append(iv, x1)
	jac := (x1 - x0) / 2
	for k := 2; k <= p; k++ {
		kk := k
		var val float64
		for i := 0; i < len(iv)-1; i++ {
			val += shp.Integrate(iv[i], iv[i+1], order, func(x float64) float64 {
				_, dudx := target(x)
				ξ := 2*(x-x0)/(x1-x0) - 1
				_, gk := shp.Lobatto(kk, ξ)
				return (dudx*jac - (c[1]-c[0])/2) * gk / jac
			})
		}
		c[k] = val
	}
	return c
}

// PolyEval evaluates a Lobatto expansion with coefficients c on [x0,x1] at
// the physical point x
func PolyEval(c []float64, x0, x1, x float64) (u, dudx float64) {
	ξ := 2*(x-x0)/(x1-x0) - 1
	jri := 2 / (x1 - x0)
	for j, cj := range c {
		f, g := shp.Lobatto(j, ξ)
		u += cj * f
		dudx += cj * g * jri
	}
	return
}
