// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/mieuicedu/moose/phys"
)

// essential holds one (equation, vertex, bc) triple of a dirichlet condition
type essential struct {
	eq, vert, bnd int
	bc            phys.EssentialBC
}

// collectEssentials lists all dirichlet-constrained equations, using the
// thread-0 warehouse. The same equation may appear once per (bc, boundary)
// pair; later entries win, matching warehouse insertion order.
func (o *System) collectEssentials() (list []essential, set map[int]bool) {
	set = make(map[int]bool)
	for tag, verts := range o.mesh.Bnd2verts {
		for _, bc := range o.bcs[0].Active(tag) {
			ebc, ok := bc.(phys.EssentialBC)
			if !ok {
				continue
			}
			for _, vert := range verts {
				eq := o.EqNum(ebc.Var(), vert)
				list = append(list, essential{eq: eq, vert: vert, bnd: tag, bc: ebc})
				set[eq] = true
			}
		}
	}
	return
}

// naturalActive returns the flux-type boundary conditions active on one
// boundary id for one thread
func (o *System) naturalActive(tid, tag int) (list []phys.NaturalBC) {
	for _, bc := range o.bcs[tid].Active(tag) {
		if nbc, ok := bc.(phys.NaturalBC); ok {
			list = append(list, nbc)
		}
	}
	return
}

// scatterRe adds local residual rows into a global vector using the element's
// equation numbers
func scatterRe(Re [][]float64, eqs [][]int, nverts int, dest la.Vector) {
	for v := range Re {
		for m := 0; m < nverts; m++ {
			dest[eqs[v][m]] += Re[v][m]
		}
	}
}

// faceMaterials recomputes face properties for the materials active on the
// current subdomain that implement the face capability
func (o *System) faceMaterials(tid int, fd *phys.FaceData, sub int) {
	for _, m := range o.mats[tid].Active(sub) {
		if fm, ok := m.(phys.FaceMaterial); ok {
			fm.ComputeFaceProperties(fd, o.fmdata[tid])
		}
	}
}

// UpdateMaterials recomputes material properties on every cell outside an
// assembly traversal, refreshing stateful materials after solution changes
func (o *System) UpdateMaterials() (err error) {
	o.CheckSystemsIntegrity()
	errs := make([]error, o.Nthreads)
	var wg sync.WaitGroup
	for tid := 0; tid < o.Nthreads; tid++ {
		wg.Add(1)
		go func(tid int) {
			defer wg.Done()
			ed := o.edata[tid]
			md := o.mdata[tid]
			var lastSub int64 = math.MinInt64
			for _, icell := range o.elemParts[tid] {
				cell := o.mesh.Cells[icell]
				if int64(cell.Sub) != lastSub {
					o.subdomainSetup(tid, cell.Sub)
					lastSub = int64(cell.Sub)
				}
				if errs[tid] = o.reinitElement(tid, cell, ed); errs[tid] != nil {
					return
				}
				for _, m := range o.mats[tid].Active(cell.Sub) {
					m.ComputeProperties(ed, md)
				}
			}
		}(tid)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return
}

// SerializeSolution gathers the full solution vector into SerSol
func (o *System) SerializeSolution() error {
	return o.Comm.AllGather(o.SerSol, o.Sol)
}

// ComputeResidual assembles the global residual of the implicit system:
//
//  1. postprocessors are recomputed if any contribution consumes them
//  2. the solution is serialized if anything needs the gathered vector
//  3. the solution time derivative is refreshed with the scheme weights
//  4. auxiliary fields are updated, then the displaced mesh is moved
//  5. worker threads traverse their cells: volumetric kernels and
//     stabilizers, flux bcs on tagged faces and interface kernels on
//     interior faces, each accumulating into per-thread partial vectors
//  6. partials are merged, per-variable scaling is applied, and the
//     pre-constraint residual is copied away if requested
//  7. dirichlet rows are replaced by (current value - prescribed value)
func (o *System) ComputeResidual(R la.Vector) (err error) {
	o.CheckSystemsIntegrity()
	if len(R) != o.Neq {
		return chk.Err("residual vector size must be %d. %d is invalid", o.Neq, len(R))
	}

	// preparation
	if o.NeedPpsForResidual {
		if err = o.ComputePostprocessors(); err != nil {
			return
		}
	}
	if o.NeedSerializedSol {
		if err = o.SerializeSolution(); err != nil {
			return
		}
	}
	o.ComputeTimeDeriv()
	if err = o.UpdateAuxVars(); err != nil {
		return
	}
	o.UpdateDisplacedMesh()

	// parallel traversal
	partials := make([]la.Vector, o.Nthreads)
	errs := make([]error, o.Nthreads)
	var wg sync.WaitGroup
	for tid := 0; tid < o.Nthreads; tid++ {
		wg.Add(1)
		go func(tid int) {
			defer wg.Done()
			partials[tid] = la.NewVector(o.Neq)
			errs[tid] = o.residualWorker(tid, partials[tid])
		}(tid)
	}
	wg.Wait()
	for _, e := range errs {
		if e != nil {
			return e
		}
	}

	// merge and scale
	for i := 0; i < o.Neq; i++ {
		sum := 0.0
		for tid := 0; tid < o.Nthreads; tid++ {
			sum += partials[tid][i]
		}
		R[i] = sum * o.Fields.VarScale(o.eqToVar(i))
	}

	// hanging rows fold into their edge ends; deepest first so chained
	// constraints pass through intermediate masters
	for _, h := range o.hangEqs {
		R[h[1]] += 0.5 * R[h[0]]
		R[h[2]] += 0.5 * R[h[0]]
	}

	// copy before constraints
	if o.NeedResidualCopy {
		copy(o.ResCopy, R)
	}

	// dirichlet row replacement
	ess, dirichlet := o.collectEssentials()
	bd := o.bndData[0]
	gm := o.geomMesh()
	for _, e := range ess {
		bd.Node = e.vert
		bd.BndId = e.bnd
		bd.T = o.Time.T
		copy(bd.X, gm.Verts[e.vert].C)
		o.nodeVals(e.vert, bd.UVals)
		R[e.eq] = o.Sol[e.eq] - e.bc.Value(bd)
	}

	// hanging rows become the constraint itself; essential conditions win
	for _, h := range o.hangEqs {
		if dirichlet[h[0]] {
			continue
		}
		R[h[0]] = o.Sol[h[0]] - 0.5*(o.Sol[h[1]]+o.Sol[h[2]])
	}
	return
}

// residualWorker traverses one thread's cells accumulating into dest
func (o *System) residualWorker(tid int, dest la.Vector) (err error) {
	ed := o.edata[tid]
	ned := o.ndata[tid]
	fd := o.fdata[tid]
	nfd := o.nfdata[tid]
	md := o.mdata[tid]
	haveDG := o.dgs[tid].Len() > 0
	var lastSub int64 = math.MinInt64

	for _, icell := range o.elemParts[tid] {
		cell := o.mesh.Cells[icell]

		// subdomain notification
		if int64(cell.Sub) != lastSub {
			o.subdomainSetup(tid, cell.Sub)
			lastSub = int64(cell.Sub)
		}

		// volumetric terms
		if err = o.reinitElement(tid, cell, ed); err != nil {
			return
		}
		ed.ZeroRe()
		for _, m := range o.mats[tid].Active(cell.Sub) {
			m.ComputeProperties(ed, md)
		}
		for _, k := range o.kernels[tid].Active(cell.Sub) {
			k.ComputeResidual(ed, md)
		}
		for _, s := range o.stabs[tid].Active(cell.Sub) {
			s.ComputeResidual(ed, md)
		}
		scatterRe(ed.Re, ed.Dof.Eqs, ed.Nverts, dest)

		// flux bcs on tagged faces
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
			fd.ZeroRe()
			o.faceMaterials(tid, fd, cell.Sub)
			for _, bc := range nat {
				bc.ComputeResidual(fd, o.fmdata[tid])
			}
			scatterRe(fd.Re, ed.Dof.Eqs, ed.Nverts, dest)
		}

		// interface terms; the lower-id cell owns the face and assembles
		// both sides
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
			fd.ZeroRe()
			nfd.ZeroRe()
			for _, dg := range o.dgs[tid].Active(cell.Sub) {
				dg.ComputeResidual(fd, nfd)
			}
			scatterRe(fd.Re, ed.Dof.Eqs, ed.Nverts, dest)
			scatterRe(nfd.Re, ned.Dof.Eqs, ned.Nverts, dest)
		}
	}
	return
}
