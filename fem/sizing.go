// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/mieuicedu/moose/msh"
	"github.com/mieuicedu/moose/phys"
	"github.com/mieuicedu/moose/shp"
)

// resizeVec grows or shrinks a vector, copying the overlapping prefix when
// preserve is set
func resizeVec(v la.Vector, n int, preserve bool) la.Vector {
	if len(v) == n {
		return v
	}
	nv := la.NewVector(n)
	if preserve {
		copy(nv, v)
	}
	return nv
}

// resizeRows resizes a [nrows][ncols] table, copying overlapping entries when
// preserve is set
func resizeRows(tab [][]float64, nrows, ncols int, preserve bool) [][]float64 {
	nt := utl.Alloc(nrows, ncols)
	if preserve {
		for i := 0; i < nrows && i < len(tab); i++ {
			copy(nt[i], tab[i])
		}
	}
	return nt
}

// SizeEverything computes global sizes from the bound mesh and field registry
// and allocates solution storage, per-thread scratch data and thread
// partitions. It is safe to call repeatedly: as long as the mesh kept its
// node cardinality, existing solution and auxiliary values are preserved,
// so registering an extra variable does not wipe the state of the others.
func (o *System) SizeEverything() (err error) {
	if o.mesh == nil {
		return chk.Err("cannot size the system without a mesh")
	}
	if o.Fields.NumVars() < 1 {
		return chk.Err("cannot size the system without solution variables")
	}

	sameVerts := o.nverts == len(o.mesh.Verts) && o.nverts > 0
	sameCells := o.ncells == len(o.mesh.Cells) && o.ncells > 0
	o.nverts = len(o.mesh.Verts)
	o.ncells = len(o.mesh.Cells)
	nsol := o.Fields.NumVars()
	naux := o.Fields.NumAuxVars()
	nExt := nsol + naux
	ndim := o.mesh.Ndim
	o.Neq = nsol * o.nverts

	// worst-case basis sizes over the cell types present
	o.maxNv, o.maxNqp, o.maxNfqp = 0, 0, 0
	types := make(map[string]bool)
	for _, cell := range o.mesh.Cells {
		if types[cell.Type] {
			continue
		}
		types[cell.Type] = true
		sh := shp.Get(cell.Type)
		if sh == nil {
			return chk.Err("cell type %q is not available", cell.Type)
		}
		if sh.Nverts > o.maxNv {
			o.maxNv = sh.Nverts
		}
		if len(sh.Ips) > o.maxNqp {
			o.maxNqp = len(sh.Ips)
		}
		if len(sh.FaceIps) > o.maxNfqp {
			o.maxNfqp = len(sh.FaceIps)
		}
	}

	// solution storage
	o.Sol = resizeVec(o.Sol, o.Neq, sameVerts)
	o.SolOld = resizeVec(o.SolOld, o.Neq, sameVerts)
	o.SolOlder = resizeVec(o.SolOlder, o.Neq, sameVerts)
	o.SolDot = resizeVec(o.SolDot, o.Neq, sameVerts)
	o.SolDotOld = resizeVec(o.SolDotOld, o.Neq, sameVerts)
	o.SerSol = resizeVec(o.SerSol, o.Neq, sameVerts)
	o.ResCopy = resizeVec(o.ResCopy, o.Neq, false)

	// auxiliary storage
	o.AuxNod = resizeRows(o.AuxNod, naux, o.nverts, sameVerts)
	o.AuxElem = resizeRows(o.AuxElem, naux, o.ncells, sameVerts && sameCells)

	// thread partitions
	o.elemParts = msh.Partition(o.ncells, o.Nthreads)
	o.nodeParts = msh.Partition(o.nverts, o.Nthreads)

	// hanging vertex constraints, replicated per solution variable. The mesh
	// lists hangs deepest first; variable blocks keep that order so chained
	// constraints fold correctly during assembly.
	o.hangEqs = nil
	o.hangSet = make(map[int][2]int)
	for v := 0; v < nsol; v++ {
		for _, h := range o.mesh.Hangs {
			eqs := [3]int{o.EqNum(v, h.M), o.EqNum(v, h.A), o.EqNum(v, h.B)}
			o.hangEqs = append(o.hangEqs, eqs)
			o.hangSet[eqs[0]] = [2]int{eqs[1], eqs[2]}
		}
	}
	o.hangDepth = 0
	var chainDepth func(eq int) int
	chainDepth = func(eq int) int {
		if ab, ok := o.hangSet[eq]; ok {
			da, db := chainDepth(ab[0]), chainDepth(ab[1])
			if db > da {
				da = db
			}
			return 1 + da
		}
		return 0
	}
	for eq := range o.hangSet {
		if d := chainDepth(eq); d > o.hangDepth {
			o.hangDepth = d
		}
	}

	// per-thread scratch
	o.edata = make([]*phys.ElementData, o.Nthreads)
	o.ndata = make([]*phys.ElementData, o.Nthreads)
	o.fdata = make([]*phys.FaceData, o.Nthreads)
	o.nfdata = make([]*phys.FaceData, o.Nthreads)
	o.adata = make([]*phys.AuxData, o.Nthreads)
	o.mdata = make([]*phys.MaterialData, o.Nthreads)
	o.fmdata = make([]*phys.MaterialData, o.Nthreads)
	o.ddata = make([]*phys.DamperData, o.Nthreads)
	o.bndData = make([]*phys.BCNodeData, o.Nthreads)
	o.shapes = make([]map[string]*shp.Shape, o.Nthreads)
	for tid := 0; tid < o.Nthreads; tid++ {
		o.edata[tid] = phys.NewElementData(tid, nsol, nExt, o.maxNv, o.maxNqp, ndim)
		o.ndata[tid] = phys.NewElementData(tid, nsol, nExt, o.maxNv, o.maxNqp, ndim)
		o.fdata[tid] = phys.NewFaceData(tid, nsol, nExt, o.maxNv, o.maxNfqp, ndim)
		o.nfdata[tid] = phys.NewFaceData(tid, nsol, nExt, o.maxNv, o.maxNfqp, ndim)
		o.adata[tid] = phys.NewAuxData(tid, nExt, ndim)
		o.mdata[tid] = phys.NewMaterialData(tid, o.maxNqp)
		o.fmdata[tid] = phys.NewMaterialData(tid, o.maxNfqp)
		o.ddata[tid] = phys.NewDamperData(tid, nsol, o.maxNv)
		o.bndData[tid] = &phys.BCNodeData{Tid: tid, X: make([]float64, ndim), UVals: make([]float64, nExt)}
		o.shapes[tid] = make(map[string]*shp.Shape)
		for t := range types {
			o.shapes[tid][t] = shp.Get(t)
		}
	}

	o.meshChanged = false
	o.sized = true
	return
}
