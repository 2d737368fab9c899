// Copyright 2017 The Hermes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// Matrix is the global Jacobian container mutated by the assembler
type Matrix interface {
	Start(n, nnz int)       // reset to n×n, all entries zero; nnz is the expected number of put calls
	Put(i, j int, v float64) // accumulate v into entry (i,j)
}

// Vector is the global residual container mutated by the assembler
type Vector interface {
	Start(n int)           // reset to length n, zeroed
	Add(i int, v float64)  // accumulate
	Set(i int, v float64)
	Get(i int) float64
	Len() int
}

// Solver solves the linear system held by a (Matrix, Vector) pair. Failure
// is a single signal; the discretization state is not salvageable mid-Newton
type Solver interface {
	Solve() error
	Solution() []float64
}

// backendImpl is implemented by each registered backend kind
type backendImpl interface {
	Matrix() Matrix
	Vector() Vector
	Solver(m Matrix, r Vector) Solver
	SupportsComplex() bool
}

// allocators holds all available linear solver backends
var allocators = make(map[string]func() backendImpl)

// Backend is the process-scoped handle to one linear-algebra backend. It is
// acquired once where the backend is first needed and passed down explicitly
type Backend struct {
	Kind string
	impl backendImpl
}

// NewBackend acquires a backend of the given kind. The scalar-kind
// configuration is validated here: requesting complex-valued assembly from a
// backend without complex support fails before any computation proceeds
func NewBackend(kind string, complexNumbers bool) (*Backend, error) {
	alloc, ok := allocators[kind]
	if !ok {
		return nil, chk.Err("cannot find linear solver backend named %q", kind)
	}
	impl := alloc()
	if complexNumbers && !impl.SupportsComplex() {
		return nil, chk.Err("backend %q does not support complex-valued assembly", kind)
	}
	return &Backend{Kind: kind, impl: impl}, nil
}

// Matrix creates an empty global matrix
func (o *Backend) Matrix() Matrix { return o.impl.Matrix() }

// Vector creates an empty global vector
func (o *Backend) Vector() Vector { return o.impl.Vector() }

// Solver creates a solver bound to the given matrix and right-hand side
func (o *Backend) Solver(m Matrix, r Vector) Solver { return o.impl.Solver(m, r) }

// dense backend: triplet-assembled matrix, LU factorization ////////////////

func init() {
	allocators["dense"] = func() backendImpl { return denseBackend{} }
}

type denseBackend struct{}

func (denseBackend) Matrix() Matrix        { return new(TripletMatrix) }
func (denseBackend) Vector() Vector        { return new(DenseVector) }
func (denseBackend) SupportsComplex() bool { return false }

func (denseBackend) Solver(m Matrix, r Vector) Solver {
	return &DenseLU{m: m.(*TripletMatrix), r: r.(*DenseVector)}
}

// TripletMatrix accumulates duplicate (i,j) entries in a sparse triplet
type TripletMatrix struct {
	N int
	T la.Triplet
}

// Start implements Matrix
func (o *TripletMatrix) Start(n, nnz int) {
	if n != o.N || nnz > o.T.Max() {
		o.T.Init(n, n, nnz)
		o.N = n
		return
	}
	o.T.Start()
}

// Put implements Matrix
func (o *TripletMatrix) Put(i, j int, v float64) {
	o.T.Put(i, j, v)
}

// DenseVector is a flat residual vector
type DenseVector struct {
	V la.Vector
}

// Start implements Vector
func (o *DenseVector) Start(n int) {
	if len(o.V) != n {
		o.V = la.NewVector(n)
		return
	}
	o.V.Fill(0)
}

func (o *DenseVector) Add(i int, v float64) { o.V[i] += v }
func (o *DenseVector) Set(i int, v float64) { o.V[i] = v }
func (o *DenseVector) Get(i int) float64    { return o.V[i] }
func (o *DenseVector) Len() int             { return len(o.V) }

// DenseLU solves the assembled system with a dense LU factorization. The hp
// systems here stay small; a factorization per Newton iteration is cheap
type DenseLU struct {
	m *TripletMatrix
	r *DenseVector
	x []float64
}

// Solve implements Solver
func (o *DenseLU) Solve() error {
	n := o.m.N
	d := o.m.T.ToDense()
	A := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			A.Set(i, j, d.Get(i, j))
		}
	}
	b := mat.NewVecDense(n, append([]float64(nil), o.r.V...))
	var lu mat.LU
	lu.Factorize(A)
	x := mat.NewVecDense(n, nil)
	if err := lu.SolveVecTo(x, false, b); err != nil {
		return chk.Err("dense LU solve failed:\n%v", err)
	}
	o.x = append(o.x[:0], x.RawVector().Data...)
	return nil
}

// Solution implements Solver
func (o *DenseLU) Solution() []float64 { return o.x }
