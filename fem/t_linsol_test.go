// Copyright 2017 The Hermes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

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

func Test_backend01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("backend01. acquisition and capability checks")

	if _, err := NewBackend("dense", false); err != nil {
		tst.Errorf("cannot create dense backend: %v\n", err)
		return
	}

	// complex-valued assembly is rejected before any computation
	if _, err := NewBackend("dense", true); err == nil {
		tst.Errorf("complex request must fail on the dense backend\n")
		return
	}

	// unknown kinds are rejected
	if _, err := NewBackend("mumps", false); err == nil {
		tst.Errorf("unknown backend kind must fail\n")
		return
	}
}

func Test_denselu01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("denselu01. triplet assembly and LU solve")

	bk, err := NewBackend("dense", false)
	if err != nil {
		tst.Errorf("backend: %v\n", err)
		return
	}
	m := bk.Matrix()
	r := bk.Vector()
	sol := bk.Solver(m, r)

	// [2 1; 1 3] x = [3; 5], with the (0,0) entry accumulated in two puts
	m.Start(2, 5)
	m.Put(0, 0, 1.5)
	m.Put(0, 0, 0.5)
	m.Put(0, 1, 1)
	m.Put(1, 0, 1)
	m.Put(1, 1, 3)
	r.Start(2)
	r.Add(0, 3)
	r.Add(1, 5)

	if err := sol.Solve(); err != nil {
		tst.Errorf("solve failed: %v\n", err)
		return
	}
	chk.Array(tst, "x", 1e-14, sol.Solution(), []float64{0.8, 1.4})

	// restarting zeroes the containers; a second solve stands alone
	m.Start(2, 4)
	m.Put(0, 0, 1)
	m.Put(1, 1, 2)
	r.Start(2)
	r.Set(0, 4)
	r.Set(1, 4)
	if err := sol.Solve(); err != nil {
		tst.Errorf("second solve failed: %v\n", err)
		return
	}
	chk.Array(tst, "x2", 1e-14, sol.Solution(), []float64{4, 2})
}
