// Copyright 2017 The Hermes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"runtime"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/ionhandshaker/hermes/msh"
	"github.com/ionhandshaker/hermes/shp"
)

// DiscreteProblem assembles the global Jacobian matrix and residual vector
// of a weak form on a space by looping over active elements and quadrature
// points
type DiscreteProblem struct {
	Wf       *WeakForm
	Spc      *msh.Space
	Nworkers int // number of concurrent element workers; 0 => GOMAXPROCS
}

// NewDiscreteProblem returns a discrete problem for the given weak form and
// space
func NewDiscreteProblem(wf *WeakForm, spc *msh.Space) *DiscreteProblem {
	return &DiscreteProblem{Wf: wf, Spc: spc}
}

// Assemble zeroes and fills the global Jacobian and residual at the current
// iterate held by the space. Element contributions are computed concurrently;
// accumulation into each shared container is serialized. Rows and columns of
// Dirichlet-fixed coefficients are excluded
func (o *DiscreteProblem) Assemble(m Matrix, r Vector) error {
	spc := o.Spc
	act := spc.ActiveElems()
	if len(act) == 0 {
		return chk.Err("space has no active elements")
	}
	nnz := 0
	for _, h := range act {
		e := spc.Elems[h]
		if len(e.Dofs) == 0 {
			return chk.Err("dofs must be assigned before assembly")
		}
		ns := e.Nshapes()
		nnz += len(o.Wf.Matrix) * ns * ns
	}
	m.Start(spc.Ndof, nnz)
	r.Start(spc.Ndof)

	nw := o.Nworkers
	if nw < 1 {
		nw = runtime.GOMAXPROCS(0)
	}
	if nw > len(act) {
		nw = len(act)
	}
	if nw <= 1 {
		var mu sync.Mutex
		for _, h := range act {
			o.assembleElem(h, m, r, &mu, &mu)
		}
		return nil
	}

	// one in-flight add per shared structure at a time
	var muM, muR sync.Mutex
	ch := make(chan int, len(act))
	for _, h := range act {
		ch <- h
	}
	close(ch)
	var wg sync.WaitGroup
	for i := 0; i < nw; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for h := range ch {
				o.assembleElem(h, m, r, &muM, &muR)
			}
		}()
	}
	wg.Wait()
	return nil
}

// assembleElem accumulates the contributions of one active element
func (o *DiscreteProblem) assembleElem(h int, m Matrix, r Vector, muM, muR *sync.Mutex) {
	spc := o.Spc
	e := spc.Elems[h]
	neq := spc.Neq
	ns := e.Nshapes()

	// quadrature data on this element
	rule := shp.Gauss(2 * e.P)
	np := len(rule.X)
	jac := e.Len() / 2
	x := make([]float64, np)
	w := make([]float64, np)
	for i := 0; i < np; i++ {
		x[i] = e.X0 + (rule.X[i]+1)*jac
		w[i] = rule.W[i] * jac
	}

	// basis values and physical derivatives
	f, g := shp.Eval(e.P, rule.X)
	for j := 0; j < ns; j++ {
		for i := 0; i < np; i++ {
			g[j][i] /= jac
		}
	}

	// previous solution at quadrature points (one history slot)
	uPrev := utl.Deep3alloc(1, neq, np)
	duPrev := utl.Deep3alloc(1, neq, np)
	for c := 0; c < neq; c++ {
		for j := 0; j < ns; j++ {
			cf := e.Coeffs[c][j]
			for i := 0; i < np; i++ {
				uPrev[0][c][i] += cf * f[j][i]
				duPrev[0][c][i] += cf * g[j][i]
			}
		}
	}

	// Jacobian forms: row = test dof, col = trial dof
	for _, mf := range o.Wf.Matrix {
		for jt := 0; jt < ns; jt++ {
			J := e.Dofs[mf.J][jt]
			if J < 0 {
				continue
			}
			for it := 0; it < ns; it++ {
				I := e.Dofs[mf.I][it]
				if I < 0 {
					continue
				}
				val := mf.Fcn(np, x, w, f[jt], g[jt], f[it], g[it], uPrev, duPrev, o.Wf.Extra)
				muM.Lock()
				m.Put(I, J, val)
				muM.Unlock()
			}
		}
	}

	// residual forms
	for _, vf := range o.Wf.Vector {
		for it := 0; it < ns; it++ {
			I := e.Dofs[vf.I][it]
			if I < 0 {
				continue
			}
			val := vf.Fcn(np, x, w, uPrev, duPrev, f[it], g[it], o.Wf.Extra)
			muR.Lock()
			r.Add(I, val)
			muR.Unlock()
		}
	}
}
