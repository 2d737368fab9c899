// Copyright 2017 The Hermes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements convergence-graph recording and export
package out

import (
	"bytes"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Graph is an append-only series of (x, y) convergence pairs; e.g.
// (DOF count, relative error %) or (elapsed seconds, relative error %)
type Graph struct {
	X []float64
	Y []float64
}

// Add appends one pair
func (o *Graph) Add(x, y float64) {
	o.X = append(o.X, x)
	o.Y = append(o.Y, y)
}

// Len returns the number of recorded pairs
func (o *Graph) Len() int {
	return len(o.X)
}

// Save writes the series as plain numeric rows to the named file
func (o *Graph) Save(filename string) error {
	var buf bytes.Buffer
	for i := range o.X {
		buf.WriteString(io.Sf("%.16g %.16g\n", o.X[i], o.Y[i]))
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return chk.Err("cannot save graph to %q:\n%v", filename, err)
	}
	return nil
}
