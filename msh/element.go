// Copyright 2017 The Hermes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msh implements the hp mesh: an arena of elements forming binary
// refinement trees, and the Space that enumerates degrees of freedom on the
// active elements
package msh

// local shape ordering within an element:
//  0    -- left vertex function
//  1    -- right vertex function
//  2..P -- bubbles

// Element holds one sub-interval of the domain. Inactive elements keep the
// refinement history; their two children tile the parent's interval
type Element struct {
	X0, X1 float64     // sub-interval endpoints
	P      int         // polynomial degree (shared by all equations)
	Active bool        // true for leaves of the refinement tree
	Parent int         // parent handle; -1 for roots
	Kids   [2]int      // children handles; -1 when active
	Dofs   [][]int     // [neq][P+1] global equation numbers; -1 => fixed by Dirichlet BC
	Coeffs [][]float64 // [neq][P+1] solution coefficients; BC value stored when dof < 0
}

// Len returns the element length
func (o *Element) Len() float64 {
	return o.X1 - o.X0
}

// Xmid returns the midpoint
func (o *Element) Xmid() float64 {
	return (o.X0 + o.X1) / 2
}

// Nshapes returns the number of local shape functions
func (o *Element) Nshapes() int {
	return o.P + 1
}

// alloc resizes the dof and coefficient arrays for neq equations and the
// current degree, preserving existing coefficients (hierarchic basis: new
// bubbles start at zero)
func (o *Element) alloc(neq int) {
	for len(o.Dofs) < neq {
		o.Dofs = append(o.Dofs, nil)
		o.Coeffs = append(o.Coeffs, nil)
	}
	n := o.P + 1
	for c := 0; c < neq; c++ {
		for len(o.Dofs[c]) < n {
			o.Dofs[c] = append(o.Dofs[c], -1)
			o.Coeffs[c] = append(o.Coeffs[c], 0)
		}
		o.Dofs[c] = o.Dofs[c][:n]
		o.Coeffs[c] = o.Coeffs[c][:n]
	}
}

// clone returns a deep copy (same handles; used by reference-space construction)
func (o *Element) clone() *Element {
	e := new(Element)
	*e = *o
	e.Dofs = make([][]int, len(o.Dofs))
	e.Coeffs = make([][]float64, len(o.Coeffs))
	for c := range o.Dofs {
		e.Dofs[c] = append([]int(nil), o.Dofs[c]...)
		e.Coeffs[c] = append([]float64(nil), o.Coeffs[c]...)
	}
	return e
}
