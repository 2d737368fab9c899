// Copyright 2017 The Hermes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapt

import (
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/ionhandshaker/hermes/fem"
	"github.com/ionhandshaker/hermes/msh"
	"github.com/ionhandshaker/hermes/out"
)

// Driver runs the outer adaptivity loop: reference solve, warm-started
// coarse solve, error estimation, tolerance check and refinement selection,
// until the estimated relative error drops below TolRel or MaxSteps is
// reached. Newton failures and linear-solver failures abort the whole run
type Driver struct {

	// input
	Spc *msh.Space    // coarse space; mutated by the selector between steps
	Wf  *fem.WeakForm // the weak formulation; immutable during the run
	Bk  *fem.Backend  // linear solver backend
	Sel *Selector     // refinement selection policy

	// parameters
	TolCoarse   float64    // Newton tolerance on the coarse mesh
	TolRef      float64    // Newton tolerance on the reference mesh
	NewtonMaxIt int        // Newton iteration cap
	TolRel      float64    // stopping tolerance on the estimated relative error [%]
	MaxSteps    int        // hard stop; reported as non-convergence, not an error
	RefDp       int        // degree raise when building the reference space
	Exact       msh.Target // optional exact solution; validation graphs only
	Verbose     bool

	// OnStep, when set, observes every adaptivity step after both solves and
	// the error estimate, including the final one (per-step plots, tracing)
	OnStep func(step int, coarse, ref *msh.Space)

	// results
	Converged bool
	Steps     int
	ErrEst    float64 // last estimated relative error [%]
	ErrExact  float64 // last exact relative error [%], if Exact is given

	// convergence graphs
	GraphDofEst   *out.Graph
	GraphCpuEst   *out.Graph
	GraphDofExact *out.Graph
	GraphCpuExact *out.Graph
}

// NewDriver returns a driver with the hermes defaults
func NewDriver(spc *msh.Space, wf *fem.WeakForm, bk *fem.Backend, sel *Selector) *Driver {
	return &Driver{
		Spc: spc, Wf: wf, Bk: bk, Sel: sel,
		TolCoarse:   1e-6,
		TolRef:      1e-6,
		NewtonMaxIt: 150,
		TolRel:      1e-3,
		MaxSteps:    50,
		RefDp:       1,
		GraphDofEst: new(out.Graph), GraphCpuEst: new(out.Graph),
		GraphDofExact: new(out.Graph), GraphCpuExact: new(out.Graph),
	}
}

// Run executes the adaptivity loop
func (o *Driver) Run() (err error) {
	cpu := time.Now()
	o.Converged = false

	// initial coarse solve with the default (zero) guess
	o.Spc.AssignDofs()
	dpCoarse := fem.NewDiscreteProblem(o.Wf, o.Spc)
	newtonCoarse := fem.NewNewton(dpCoarse, o.Bk, o.TolCoarse, o.NewtonMaxIt)
	newtonCoarse.Verbose = o.Verbose
	if _, err = newtonCoarse.Solve(); err != nil {
		return chk.Err("initial coarse solve failed:\n%v", err)
	}

	for step := 1; ; step++ {
		o.Steps = step
		if o.Verbose {
			io.Pf("============ Adaptivity step %d ============\n", step)
		}

		// construct globally refined reference space; the coarse solution is
		// transferred as the Newton warm start
		ref := o.Spc.RefineAll(o.RefDp)
		if o.Verbose {
			io.Pf("ndof coarse: %d, ndof ref: %d\n", o.Spc.Ndof, ref.Ndof)
		}

		// reference solve
		dpRef := fem.NewDiscreteProblem(o.Wf, ref)
		newtonRef := fem.NewNewton(dpRef, o.Bk, o.TolRef, o.NewtonMaxIt)
		newtonRef.Verbose = o.Verbose
		if _, err = newtonRef.Solve(); err != nil {
			return chk.Err("reference solve failed at step %d:\n%v", step, err)
		}

		// from the second step onward, re-solve on the coarse mesh using the
		// previous coarse solution as the initial guess
		if step > 1 {
			if _, err = newtonCoarse.Solve(); err != nil {
				return chk.Err("coarse solve failed at step %d:\n%v", step, err)
			}
		}

		// estimate element errors from the difference of the two solutions
		elemErrs, relErr := Estimate(o.Sel.Norm, o.Spc, ref)
		o.ErrEst = relErr
		elapsed := time.Since(cpu).Seconds()
		o.GraphDofEst.Add(float64(o.Spc.Ndof), relErr)
		o.GraphCpuEst.Add(elapsed, relErr)
		if o.Verbose {
			io.Pf("relative error (est) = %g %%\n", relErr)
		}

		// exact error, when a reference solution is available (validation only)
		if o.Exact != nil {
			o.ErrExact = EstimateExact(o.Sel.Norm, o.Spc, o.Exact)
			o.GraphDofExact.Add(float64(o.Spc.Ndof), o.ErrExact)
			o.GraphCpuExact.Add(elapsed, o.ErrExact)
			if o.Verbose {
				io.Pf("relative error (exact) = %g %%\n", o.ErrExact)
			}
		}

		if o.OnStep != nil {
			o.OnStep(step, o.Spc, ref)
		}

		// stopping criteria
		if relErr < o.TolRel {
			o.Converged = true
			return nil
		}
		if step >= o.MaxSteps {
			return nil // hard stop; Converged stays false
		}

		// select and commit refinements; mutates the coarse space
		o.Sel.Adapt(elemErrs, o.Spc, ref)
	}
}

// SaveGraphs writes the four convergence series next to each other using the
// given filename prefix
func (o *Driver) SaveGraphs(prefix string) (err error) {
	if err = o.GraphDofEst.Save(prefix + "_conv_dof_est.dat"); err != nil {
		return
	}
	if err = o.GraphCpuEst.Save(prefix + "_conv_cpu_est.dat"); err != nil {
		return
	}
	if o.Exact == nil {
		return
	}
	if err = o.GraphDofExact.Save(prefix + "_conv_dof_exact.dat"); err != nil {
		return
	}
	return o.GraphCpuExact.Save(prefix + "_conv_cpu_exact.dat")
}
