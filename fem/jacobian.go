// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"sync"

	"github.com/cpmech/gosl/la"

	"github.com/mieuicedu/moose/phys"
)

// ComputeJacobian assembles the full jacobian into the triplet. Rows of
// dirichlet-constrained equations are skipped during assembly and receive a
// unit diagonal afterwards, matching the residual's row replacement.
func (o *System) ComputeJacobian(K *la.Triplet) (err error) {
	return o.computeJacobian(K, -1, -1)
}

// ComputeJacobianBlock assembles only the coupling block of (ivar, jvar),
// both in the solution variable numbering
func (o *System) ComputeJacobianBlock(K *la.Triplet, ivar, jvar int) (err error) {
	return o.computeJacobian(K, ivar, jvar)
}

func (o *System) computeJacobian(K *la.Triplet, ivar, jvar int) (err error) {
	o.CheckSystemsIntegrity()

	// same preparation as the residual, minus the constraint handling
	o.ComputeTimeDeriv()
	if err = o.UpdateAuxVars(); err != nil {
		return
	}
	o.UpdateDisplacedMesh()

	// capacity: one volumetric block per cell, one block per tagged face,
	// both-sided interface blocks, the constrained diagonals; folded hanging
	// rows fan every entry out by 2 per chain level
	nsol := o.Fields.NumVars()
	haveDG := o.dgs[0].Len() > 0
	blockCap := 0
	for _, cell := range o.mesh.Cells {
		nv := len(cell.Verts)
		nblk := 1
		for _, tag := range cell.FTags {
			if tag != 0 {
				nblk++
			}
		}
		if haveDG {
			nblk += 4 * len(cell.FaceVerts())
		}
		blockCap += nblk * nv * nv
	}
	max := (blockCap*nsol*nsol)<<o.hangDepth + o.Neq + 3*len(o.hangEqs)
	K.Init(o.Neq, o.Neq, max)

	_, dirichlet := o.collectEssentials()
	var mu sync.Mutex
	errs := make([]error, o.Nthreads)
	var wg sync.WaitGroup
	for tid := 0; tid < o.Nthreads; tid++ {
		wg.Add(1)
		go func(tid int) {
			defer wg.Done()
			errs[tid] = o.jacobianWorker(tid, K, &mu, dirichlet, ivar, jvar)
		}(tid)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return e
		}
	}

	// unit diagonal on constrained rows
	for eq := range dirichlet {
		K.Put(eq, eq, 1)
	}

	// hanging rows carry the constraint; essential conditions win
	for _, h := range o.hangEqs {
		if dirichlet[h[0]] {
			continue
		}
		K.Put(h[0], h[0], 1)
		K.Put(h[0], h[1], -0.5)
		K.Put(h[0], h[2], -0.5)
	}
	return
}

// putKe adds one jacobian entry, folding hanging rows into their masters
func (o *System) putKe(K *la.Triplet, row, col int, val float64, dirichlet map[int]bool) {
	if dirichlet[row] {
		return
	}
	if ab, ok := o.hangSet[row]; ok {
		o.putKe(K, ab[0], col, 0.5*val, dirichlet)
		o.putKe(K, ab[1], col, 0.5*val, dirichlet)
		return
	}
	K.Put(row, col, val)
}

// scatterKe puts the solution-variable blocks of a local jacobian into the
// global triplet, skipping constrained rows and applying per-variable
// scaling. Auxiliary columns are not unknowns and are ignored.
func (o *System) scatterKe(Ke [][][][]float64, rowEqs, colEqs [][]int, nrv, ncv int,
	K *la.Triplet, mu *sync.Mutex, dirichlet map[int]bool, ivar, jvar int) {

	nsol := o.Fields.NumVars()
	mu.Lock()
	defer mu.Unlock()
	for v := 0; v < nsol; v++ {
		if ivar >= 0 && v != ivar {
			continue
		}
		scale := o.Fields.VarScale(v)
		for e := 0; e < nsol; e++ {
			if jvar >= 0 && e != jvar {
				continue
			}
			for i := 0; i < nrv; i++ {
				row := rowEqs[v][i]
				if dirichlet[row] {
					continue
				}
				for j := 0; j < ncv; j++ {
					val := Ke[v][e][i][j]
					if val == 0 {
						continue
					}
					o.putKe(K, row, colEqs[e][j], val*scale, dirichlet)
				}
			}
		}
	}
}

// jacobianWorker traverses one thread's cells accumulating into the shared
// triplet
func (o *System) jacobianWorker(tid int, K *la.Triplet, mu *sync.Mutex,
	dirichlet map[int]bool, ivar, jvar int) (err error) {

	ed := o.edata[tid]
	ned := o.ndata[tid]
	fd := o.fdata[tid]
	nfd := o.nfdata[tid]
	md := o.mdata[tid]
	nExt := o.Fields.NumExt()
	haveDG := o.dgs[tid].Len() > 0
	var lastSub int64 = math.MinInt64

	runKernel := func(k phys.Kernel) {
		if ivar >= 0 && k.Var() != ivar {
			return
		}
		if jvar < 0 || jvar == k.Var() {
			k.ComputeJacobian(ed, md)
		}
		for e := 0; e < nExt; e++ {
			if e == k.Var() {
				continue
			}
			if jvar >= 0 && e != jvar {
				continue
			}
			k.ComputeOffDiagJacobian(e, ed, md)
		}
	}

	for _, icell := range o.elemParts[tid] {
		cell := o.mesh.Cells[icell]
		if int64(cell.Sub) != lastSub {
			o.subdomainSetup(tid, cell.Sub)
			lastSub = int64(cell.Sub)
		}
		if err = o.reinitElement(tid, cell, ed); err != nil {
			return
		}
		ed.ZeroKe()
		for _, m := range o.mats[tid].Active(cell.Sub) {
			m.ComputeProperties(ed, md)
		}
		for _, k := range o.kernels[tid].Active(cell.Sub) {
			runKernel(k)
		}
		for _, s := range o.stabs[tid].Active(cell.Sub) {
			if ivar >= 0 && s.Var() != ivar {
				continue
			}
			if jvar < 0 || jvar == s.Var() {
				s.ComputeJacobian(ed, md)
			}
		}
		o.scatterKe(ed.Ke, ed.Dof.Eqs, ed.Dof.Eqs, ed.Nverts, ed.Nverts, K, mu, dirichlet, ivar, jvar)

		// flux bc jacobians
		for fid, tag := range cell.FTags {
			if tag == 0 {
				continue
			}
			nat := o.naturalActive(tid, tag)
			if len(nat) == 0 {
				continue
			}
			if err = o.reinitFace(tid, ed, fid, tag, fd, false); err != nil {
				return
			}
			fd.ZeroKe()
			o.faceMaterials(tid, fd, cell.Sub)
			for _, bc := range nat {
				bc.ComputeJacobian(fd, o.fmdata[tid])
			}
			o.scatterKe(fd.Ke, ed.Dof.Eqs, ed.Dof.Eqs, ed.Nverts, ed.Nverts, K, mu, dirichlet, ivar, jvar)
		}

		// interface jacobians
		if !haveDG {
			continue
		}
		for fid, neigh := range cell.Neighs {
			if neigh < 0 || neigh < cell.Id {
				continue
			}
			ncell := o.mesh.Cells[neigh]
			nfid, ferr := neighFaceId(ncell, cell.Id)
			if ferr != nil {
				return ferr
			}
			if err = o.reinitElement(tid, ncell, ned); err != nil {
				return
			}
			if err = o.reinitFace(tid, ed, fid, 0, fd, false); err != nil {
				return
			}
			if err = o.reinitFace(tid, ned, nfid, 0, nfd, true); err != nil {
				return
			}
			fd.ZeroKe()
			nfd.ZeroKe()
			for _, dg := range o.dgs[tid].Active(cell.Sub) {
				dg.ComputeJacobian(fd, nfd)
			}
			o.scatterKe(fd.Ke, ed.Dof.Eqs, ed.Dof.Eqs, ed.Nverts, ed.Nverts, K, mu, dirichlet, ivar, jvar)
			o.scatterKe(fd.KeN, ed.Dof.Eqs, ned.Dof.Eqs, ed.Nverts, ned.Nverts, K, mu, dirichlet, ivar, jvar)
			o.scatterKe(nfd.Ke, ned.Dof.Eqs, ned.Dof.Eqs, ned.Nverts, ned.Nverts, K, mu, dirichlet, ivar, jvar)
			o.scatterKe(nfd.KeN, ned.Dof.Eqs, ed.Dof.Eqs, ned.Nverts, ed.Nverts, K, mu, dirichlet, ivar, jvar)
		}
	}
	return
}
