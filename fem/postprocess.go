// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sync"

	"github.com/cpmech/gosl/chk"

	"github.com/mieuicedu/moose/phys"
)

// ComputePostprocessors reevaluates all postprocessors: every thread
// accumulates partial reductions over its cells and vertices, partials are
// joined into the thread-0 instance and finalised values are cached for
// PostprocessorValue.
func (o *System) ComputePostprocessors() (err error) {
	if len(o.ppNames) == 0 {
		return
	}
	o.CheckSystemsIntegrity()

	errs := make([]error, o.Nthreads)
	var wg sync.WaitGroup
	for tid := 0; tid < o.Nthreads; tid++ {
		wg.Add(1)
		go func(tid int) {
			defer wg.Done()
			errs[tid] = o.ppWorker(tid)
		}(tid)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return e
		}
	}

	// join and finalise
	for _, name := range o.ppNames {
		pp, _ := o.pps[0].Get(name)
		for tid := 1; tid < o.Nthreads; tid++ {
			other, _ := o.pps[tid].Get(name)
			pp.Join(other)
		}
		o.ppVals[name] = pp.Value()
	}
	return
}

// ppWorker accumulates one thread's postprocessor partials
func (o *System) ppWorker(tid int) (err error) {
	for _, pp := range o.pps[tid].All() {
		pp.Init()
	}

	// element reductions
	ed := o.edata[tid]
	md := o.mdata[tid]
	hasElem := false
	for _, pp := range o.pps[tid].All() {
		if _, ok := pp.(phys.ElementPostprocessor); ok {
			hasElem = true
			break
		}
	}
	if hasElem {
		for _, icell := range o.elemParts[tid] {
			cell := o.mesh.Cells[icell]
			if err = o.reinitElement(tid, cell, ed); err != nil {
				return
			}
			for _, m := range o.mats[tid].Active(cell.Sub) {
				m.ComputeProperties(ed, md)
			}
			for _, pp := range o.pps[tid].Active(cell.Sub) {
				if epp, ok := pp.(phys.ElementPostprocessor); ok {
					epp.ExecuteElem(ed, md)
				}
			}
		}
	}

	// nodal reductions
	ad := o.adata[tid]
	ad.T = o.Time.T
	hasNodal := false
	for _, pp := range o.pps[tid].All() {
		if _, ok := pp.(phys.NodalPostprocessor); ok {
			hasNodal = true
			break
		}
	}
	if hasNodal {
		gm := o.geomMesh()
		for _, vert := range o.nodeParts[tid] {
			o.nodeVals(vert, ad.UVals)
			ad.Node = vert
			ad.X = gm.Verts[vert].C
			for _, pp := range o.pps[tid].All() {
				if npp, ok := pp.(phys.NodalPostprocessor); ok {
					npp.ExecuteNode(ad)
				}
			}
		}
	}
	return
}

// PostprocessorValue returns the last computed value of one postprocessor
func (o *System) PostprocessorValue(name string) (val float64, err error) {
	val, ok := o.ppVals[name]
	if !ok {
		if _, exists := o.pps[0].Get(name); exists {
			return 0, chk.Err("postprocessor %q has not been computed yet", name)
		}
		return 0, chk.Err("cannot find postprocessor %q", name)
	}
	return
}
