// Copyright 2017 The Hermes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the discrete problem (assembler), the pluggable
// linear-solver backend and the Newton solver
package fem

// MatrixForm computes one element-local Jacobian contribution. The engine
// supplies quadrature data and basis evaluations; the application supplies
// the physics
//  np       -- number of quadrature points
//  x, w     -- physical quadrature points and weights (Jacobian included)
//  u, dudx  -- trial basis function values and physical derivatives at points
//  v, dvdx  -- test basis function values and physical derivatives at points
//  uPrev, duPrevdx -- previous solutions [sln][eq][pt]
//  extra    -- user data passed through unchanged
type MatrixForm func(np int, x, w, u, dudx, v, dvdx []float64, uPrev, duPrevdx [][][]float64, extra interface{}) float64

// VectorForm computes one element-local residual contribution
type VectorForm func(np int, x, w []float64, uPrev, duPrevdx [][][]float64, v, dvdx []float64, extra interface{}) float64

// MatrixFormSpec binds a matrix form to its equation pair: I is the test
// (row) equation, J the trial (column) equation
type MatrixFormSpec struct {
	I, J int
	Fcn  MatrixForm
}

// VectorFormSpec binds a vector form to its test equation
type VectorFormSpec struct {
	I   int
	Fcn VectorForm
}

// WeakForm holds the ordered matrix and vector form collections of one weak
// formulation. Immutable for the lifetime of a solve
type WeakForm struct {
	Matrix []MatrixFormSpec
	Vector []VectorFormSpec
	Extra  interface{} // user data handed to every form
}

// AddMatrixForm appends a Jacobian form acting on equations (i, j)
func (o *WeakForm) AddMatrixForm(i, j int, fcn MatrixForm) {
	o.Matrix = append(o.Matrix, MatrixFormSpec{i, j, fcn})
}

// AddVectorForm appends a residual form acting on equation i
func (o *WeakForm) AddVectorForm(i int, fcn VectorForm) {
	o.Vector = append(o.Vector, VectorFormSpec{i, fcn})
}
