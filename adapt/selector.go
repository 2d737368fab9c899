// Copyright 2017 The Hermes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adapt

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/ionhandshaker/hermes/msh"
	"github.com/ionhandshaker/hermes/shp"
)

// Mode selects the admissible refinement family
type Mode int

const (
	ModeHP Mode = iota // h-splits, p-raises and split-with-independent-degrees
	ModeH              // midpoint splits only, children inherit the degree
	ModeP              // degree raises only
)

// Selector evaluates candidate refinements for flagged elements and commits,
// per element, the one with the best error-reduction-per-added-DOF ratio.
// The candidate enumeration bounds are policy, not hidden constants
type Selector struct {
	Norm      Norm
	Mode      Mode
	Threshold float64 // θ: elements with error ≥ θ·max_error are refined
	MaxDp     int     // largest degree raise considered per step
	PMax      int     // global cap on element degree
	Verbose   bool
}

// NewSelector returns a selector with default enumeration bounds
func NewSelector(norm Norm, mode Mode, threshold float64) *Selector {
	return &Selector{Norm: norm, Mode: mode, Threshold: threshold, MaxDp: 2, PMax: 10}
}

// candidate is one admissible refinement of a single element
type candidate struct {
	split  bool
	p0, p1 int // children degrees if split; p0 is the new degree otherwise
	err    float64
	cost   int
}

// Adapt refines the flagged elements of the coarse space in place, using the
// reference solution to project candidate refinements. It re-enumerates the
// coarse DOFs before returning. elemErrs must align with the active elements
// of the coarse space. Returns the number of elements refined
func (o *Selector) Adapt(elemErrs []float64, coarse, ref *msh.Space) (nref int) {
	act := coarse.ActiveElems()
	if len(elemErrs) != len(act) {
		chk.Panic("error array does not match active elements: %d != %d", len(elemErrs), len(act))
	}
	maxErr := 0.0
	for _, e := range elemErrs {
		if e > maxErr {
			maxErr = e
		}
	}

	for k, h := range act {
		if elemErrs[k] < o.Threshold*maxErr {
			continue
		}
		e := coarse.Elems[h]
		best, ok := o.pick(elemErrs[k], e, coarse, ref)
		if !ok {
			continue // degree cap exhausted the candidate list
		}
		oldP := e.P
		if best.split {
			coarse.Split(h, best.p0, best.p1)
			if o.Verbose {
				io.Pf("  elem [%g,%g]: split -> p=(%d,%d)\n", e.X0, e.X1, best.p0, best.p1)
			}
		} else {
			coarse.SetP(h, best.p0)
			if o.Verbose {
				io.Pf("  elem [%g,%g]: p %d -> %d\n", e.X0, e.X1, oldP, best.p0)
			}
		}
		nref++
	}
	coarse.AssignDofs()
	return
}

// pick scores all admissible candidates of one element and returns the best
func (o *Selector) pick(elemErr float64, e *msh.Element, coarse, ref *msh.Space) (best candidate, ok bool) {
	cands := o.enumerate(e.P)
	if len(cands) == 0 {
		return
	}
	neq := coarse.Neq
	bestScore := math.Inf(-1)
	for _, c := range cands {
		if c.split {
			xm := (e.X0 + e.X1) / 2
			c.err = math.Sqrt(projErr2(o.Norm, e.X0, xm, c.p0, ref) + projErr2(o.Norm, xm, e.X1, c.p1, ref))
			c.cost = neq * (c.p0 + c.p1 - e.P)
		} else {
			c.err = math.Sqrt(projErr2(o.Norm, e.X0, e.X1, c.p0, ref))
			c.cost = neq * (c.p0 - e.P)
		}
		cost := c.cost
		if cost < 1 {
			cost = 1
		}
		score := (elemErr - c.err) / float64(cost)

		// tie-break by lower resulting error, then by smaller dof cost
		tie := math.Abs(score-bestScore) <= 1e-12*math.Max(math.Abs(score), math.Abs(bestScore))
		switch {
		case !ok || (!tie && score > bestScore):
			best, bestScore, ok = c, score, true
		case tie && (c.err < best.err || (c.err == best.err && c.cost < best.cost)):
			best, bestScore, ok = c, score, true
		}
	}
	return
}

// enumerate lists the admissible candidates for an element of degree p under
// the selector's mode and caps
func (o *Selector) enumerate(p int) (cands []candidate) {
	switch o.Mode {
	case ModeH:
		cands = append(cands, candidate{split: true, p0: p, p1: p})
	case ModeP:
		for q := p + 1; q <= p+o.MaxDp && q <= o.PMax; q++ {
			cands = append(cands, candidate{p0: q})
		}
	case ModeHP:
		for q := p + 1; q <= p+o.MaxDp && q <= o.PMax; q++ {
			cands = append(cands, candidate{p0: q})
		}
		// children never need more than the parent's degree: halving the
		// interval roughly halves the resolvable scale. The lower bound keeps
		// p0+p1 > p so every split adds at least one dof
		lo := p/2 + 1
		for p0 := lo; p0 <= p; p0++ {
			for p1 := lo; p1 <= p; p1++ {
				cands = append(cands, candidate{split: true, p0: p0, p1: p1})
			}
		}
	}
	return
}

// projErr2 projects the reference solution onto a prospective sub-element of
// degree p over [x0,x1] and returns the squared norm of the remainder
func projErr2(norm Norm, x0, x1 float64, p int, ref *msh.Space) (res float64) {
	breaks := ref.Breaks(x0, x1)
	inner := breaks[1 : len(breaks)-1]
	order := 2*(p+ref.MaxP()) + 2
	neq := ref.Neq
	coeffs := make([][]float64, neq)
	for c := 0; c < neq; c++ {
		cc := c
		coeffs[c] = msh.ProjectPoly(x0, x1, p, inner, order, func(x float64) (float64, float64) {
			u, dudx := ref.EvalAt(x)
			return u[cc], dudx[cc]
		})
	}
	for i := 0; i < len(breaks)-1; i++ {
		res += shp.Integrate(breaks[i], breaks[i+1], order, func(x float64) float64 {
			ur, dur := ref.EvalAt(x)
			s := 0.0
			for c := 0; c < neq; c++ {
				u, dudx := msh.PolyEval(coeffs[c], x0, x1, x)
				d := ur[c] - u
				s += d * d
				if norm == NormH1 {
					d = dur[c] - dudx
					s += d * d
				}
			}
			return s
		})
	}
	return
}
