// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/cpmech/gosl/la"
)

// ComputeDamping returns the factor in (0,1] the Newton update du should be
// multiplied by: the minimum over all dampers and all elements they apply to.
// Without dampers the factor is 1.
func (o *System) ComputeDamping(du la.Vector) (factor float64, err error) {
	factor = 1
	if o.dampers[0].Len() == 0 {
		return
	}
	o.CheckSystemsIntegrity()

	factors := make([]float64, o.Nthreads)
	errs := make([]error, o.Nthreads)
	var wg sync.WaitGroup
	for tid := 0; tid < o.Nthreads; tid++ {
		wg.Add(1)
		go func(tid int) {
			defer wg.Done()
			factors[tid], errs[tid] = o.dampingWorker(tid, du)
		}(tid)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return 1, e
		}
	}
	return floats.Min(factors), nil
}

// dampingWorker computes the damping factor over one thread's cells
func (o *System) dampingWorker(tid int, du la.Vector) (factor float64, err error) {
	factor = 1
	ed := o.edata[tid]
	dd := o.ddata[tid]
	dd.Ed = ed
	nsol := o.Fields.NumVars()
	for _, icell := range o.elemParts[tid] {
		cell := o.mesh.Cells[icell]
		if err = o.reinitElement(tid, cell, ed); err != nil {
			return
		}
		for v := 0; v < nsol; v++ {
			for m := 0; m < ed.Nverts; m++ {
				dd.Du[v][m] = du[ed.Dof.Eqs[v][m]]
			}
		}
		for _, d := range o.dampers[tid].All() {
			if f := d.ComputeDamping(dd); f < factor {
				factor = f
			}
		}
	}
	return
}
