// Copyright 2017 The Hermes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command hermes solves the Poisson problem -u'' = f with hp-adaptivity and
// writes convergence graphs and plots of the final mesh and solution
package main

import (
	"log/slog"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/lmittmann/tint"

	"github.com/ionhandshaker/hermes/adapt"
	"github.com/ionhandshaker/hermes/ana"
	"github.com/ionhandshaker/hermes/fem"
	"github.com/ionhandshaker/hermes/msh"
	"github.com/ionhandshaker/hermes/plot"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	// logging
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: "15:04:05",
		}),
	))

	// read input parameters
	nelem := io.ArgToInt(0, 4)
	pinit := io.ArgToInt(1, 1)
	tolRel := io.ArgToFloat(2, 1e-2)
	threshold := io.ArgToFloat(3, 0.7)
	mode := io.ArgToString(4, "hp")
	norm := io.ArgToString(5, "h1")
	verbose := io.ArgToBool(6, false)
	prefix := io.ArgToString(7, "hermes")
	plotSteps := io.ArgToBool(8, false)

	io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
		"number of elements", "nelem", nelem,
		"initial polynomial degree", "pinit", pinit,
		"relative error tolerance [%]", "tolRel", tolRel,
		"refinement threshold", "threshold", threshold,
		"adaptivity mode: hp, h, p", "mode", mode,
		"error norm: h1, l2", "norm", norm,
		"show iteration messages", "verbose", verbose,
		"output filename prefix", "prefix", prefix,
		"plot mesh and solution each step", "plotSteps", plotSteps,
	))

	// problem: -u'' = (kπ)² sin(kπx) on [0,1], u(0) = u(1) = 0
	problem := ana.SinePoisson{K: 2}

	// weak formulation
	wf := new(fem.WeakForm)
	wf.AddMatrixForm(0, 0, func(np int, x, w, u, dudx, v, dvdx []float64, uPrev, duPrevdx [][][]float64, extra interface{}) (val float64) {
		for i := 0; i < np; i++ {
			val += dudx[i] * dvdx[i] * w[i]
		}
		return
	})
	wf.AddVectorForm(0, func(np int, x, w []float64, uPrev, duPrevdx [][][]float64, v, dvdx []float64, extra interface{}) (val float64) {
		for i := 0; i < np; i++ {
			val += (duPrevdx[0][0][i]*dvdx[i] - problem.Rhs(x[i])*v[i]) * w[i]
		}
		return
	})

	// coarse space with Dirichlet conditions
	spc := msh.NewSpace(0, 1, nelem, pinit, 1)
	spc.SetDirichletLeft(0, 0)
	spc.SetDirichletRight(0, 0)

	// linear solver backend (real-valued)
	bk, err := fem.NewBackend("dense", false)
	if err != nil {
		chk.Panic("cannot create backend:\n%v", err)
	}

	// adaptivity
	sel := adapt.NewSelector(parseNorm(norm), parseMode(mode), threshold)
	drv := adapt.NewDriver(spc, wf, bk, sel)
	drv.TolRel = tolRel
	drv.Exact = problem.Sol
	drv.Verbose = verbose
	if plotSteps {
		drv.OnStep = func(step int, coarse, ref *msh.Space) {
			if err := plot.Mesh(coarse, 800, 200, io.Sf("%s_mesh_%03d.png", prefix, step)); err != nil {
				chk.Panic("cannot plot mesh at step %d:\n%v", step, err)
			}
			if err := plot.Solution(coarse, 0, 800, 500, io.Sf("%s_solution_%03d.png", prefix, step)); err != nil {
				chk.Panic("cannot plot solution at step %d:\n%v", step, err)
			}
		}
	}

	slog.Info("run started", "nelem", nelem, "pinit", pinit, "mode", mode, "norm", norm)
	if err := drv.Run(); err != nil {
		chk.Panic("adaptivity run failed:\n%v", err)
	}
	slog.Info("run finished",
		"converged", drv.Converged,
		"steps", drv.Steps,
		"ndof", spc.Ndof,
		"errEst%", drv.ErrEst,
		"errExact%", drv.ErrExact,
	)

	// convergence graphs and plots
	if err := drv.SaveGraphs(prefix); err != nil {
		chk.Panic("cannot save convergence graphs:\n%v", err)
	}
	if err := plot.Mesh(spc, 800, 200, prefix+"_mesh.png"); err != nil {
		chk.Panic("cannot plot mesh:\n%v", err)
	}
	if err := plot.Solution(spc, 0, 800, 500, prefix+"_solution.png"); err != nil {
		chk.Panic("cannot plot solution:\n%v", err)
	}
	slog.Info("output written", "prefix", prefix)
}

func parseMode(s string) adapt.Mode {
	switch s {
	case "hp":
		return adapt.ModeHP
	case "h":
		return adapt.ModeH
	case "p":
		return adapt.ModeP
	}
	chk.Panic("unknown adaptivity mode %q", s)
	return adapt.ModeHP
}

func parseNorm(s string) adapt.Norm {
	switch s {
	case "h1":
		return adapt.NormH1
	case "l2":
		return adapt.NormL2
	}
	chk.Panic("unknown error norm %q", s)
	return adapt.NormH1
}
