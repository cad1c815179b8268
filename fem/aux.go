// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sync"

	"github.com/mieuicedu/moose/phys"
)

// UpdateAuxVars reevaluates all auxiliary fields from the current solution.
// Nodal kernels run over each thread's vertices, elemental kernels over each
// thread's cells; boundary-restricted kernels run afterwards over the
// vertices of their tagged faces, overriding the domain-wide values.
func (o *System) UpdateAuxVars() (err error) {
	if o.auxs[0].Len() == 0 && o.auxBcs[0].Len() == 0 {
		return
	}

	errs := make([]error, o.Nthreads)
	var wg sync.WaitGroup
	for tid := 0; tid < o.Nthreads; tid++ {
		wg.Add(1)
		go func(tid int) {
			defer wg.Done()
			errs[tid] = o.auxWorker(tid)
		}(tid)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return e
		}
	}

	// boundary-restricted nodal kernels; serial, the boundary is small
	ad := o.adata[0]
	ad.T = o.Time.T
	ad.Dt = o.Time.Dt
	nsol := o.Fields.NumVars()
	for tag, verts := range o.mesh.Bnd2verts {
		for _, k := range o.auxBcs[0].Active(tag) {
			for _, vert := range verts {
				o.nodeVals(vert, ad.UVals)
				ad.Node = vert
				ad.X = o.geomMesh().Verts[vert].C
				val := k.Compute(ad)
				o.AuxNod[k.Var()][vert] = val
				ad.UVals[nsol+k.Var()] = val
			}
		}
	}
	return
}

// auxWorker updates the auxiliary fields on one thread's vertices and cells
func (o *System) auxWorker(tid int) (err error) {
	ad := o.adata[tid]
	ad.T = o.Time.T
	ad.Dt = o.Time.Dt
	nsol := o.Fields.NumVars()
	gm := o.geomMesh()

	// nodal kernels; each vertex is owned by exactly one thread, so writes
	// to AuxNod never race
	hasNodal := false
	for _, k := range o.auxs[tid].All() {
		if k.Nodal() {
			hasNodal = true
			break
		}
	}
	if hasNodal {
		for _, vert := range o.nodeParts[tid] {
			o.nodeVals(vert, ad.UVals)
			ad.Node = vert
			ad.X = gm.Verts[vert].C
			for _, k := range o.auxs[tid].All() {
				if !k.Nodal() {
					continue
				}
				val := k.Compute(ad)
				o.AuxNod[k.Var()][vert] = val
				ad.UVals[nsol+k.Var()] = val
			}
		}
	}

	// elemental kernels
	ed := o.edata[tid]
	for _, icell := range o.elemParts[tid] {
		cell := o.mesh.Cells[icell]
		var elems []phys.AuxKernel
		for _, k := range o.auxs[tid].Active(cell.Sub) {
			if !k.Nodal() {
				elems = append(elems, k)
			}
		}
		if len(elems) == 0 {
			continue
		}
		if err = o.reinitElement(tid, cell, ed); err != nil {
			return
		}
		for e := 0; e < o.Fields.NumExt(); e++ {
			sum := 0.0
			for qp := 0; qp < ed.Nqp; qp++ {
				sum += ed.U[e][qp]
			}
			ad.UAvg[e] = sum / float64(ed.Nqp)
		}
		ad.Cell = cell
		for _, k := range elems {
			val := k.Compute(ad)
			o.AuxElem[k.Var()][cell.Id] = val
			ad.UAvg[nsol+k.Var()] = val
		}
	}
	return
}
