// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/mieuicedu/moose/msh"
	"github.com/mieuicedu/moose/phys"
	"github.com/mieuicedu/moose/shp"
)

// subdomainSetup notifies subdomain-aware contributions that the traversal
// entered a new subdomain
func (o *System) subdomainSetup(tid, sub int) {
	for _, m := range o.mats[tid].All() {
		m.SubdomainSetup(sub)
	}
	for _, s := range o.stabs[tid].All() {
		s.SubdomainSetup(sub)
	}
}

// reinitElement fills one thread's element scratchpad for a cell: geometry,
// basis data at integration points, dof values and interpolated fields. With
// DontReinitFE set and the scratchpad already holding this cell, the geometry
// and basis part is skipped and only field values are refreshed.
func (o *System) reinitElement(tid int, cell *msh.Cell, ed *phys.ElementData) (err error) {
	gm := o.geomMesh()
	sh := o.shapes[tid][cell.Type]
	nsol := o.Fields.NumVars()
	naux := o.Fields.NumAuxVars()
	ndim := o.mesh.Ndim

	skipFE := o.DontReinitFE && ed.Cell == cell

	ed.Shape = sh
	ed.Nverts = sh.Nverts
	ed.Nqp = len(sh.Ips)
	ed.T = o.Time.T
	ed.Dt = o.Time.Dt
	ed.DuDotDu = o.Time.DuDotDu()

	// coordinates
	if !skipFE {
		for d := 0; d < ndim; d++ {
			for m, vert := range cell.Verts {
				ed.X[d][m] = gm.Verts[vert].C[d]
			}
		}
	}

	// dof values
	for v := 0; v < nsol; v++ {
		for m, vert := range cell.Verts {
			eq := o.EqNum(v, vert)
			ed.Dof.Eqs[v][m] = eq
			ed.Dof.Vals[v][m] = o.Sol[eq]
		}
	}
	for a := 0; a < naux; a++ {
		e := nsol + a
		for m, vert := range cell.Verts {
			ed.Dof.Eqs[e][m] = -1
			if o.Fields.AuxIsNodal(a) {
				ed.Dof.Vals[e][m] = o.AuxNod[a][vert]
			} else {
				ed.Dof.Vals[e][m] = o.AuxElem[a][cell.Id]
			}
		}
	}

	// integration point data
	for qp, ip := range sh.Ips {
		if !skipFE {
			if err = sh.CalcAtIp(ed.X, ip, true); err != nil {
				return chk.Err("cannot reinitialise cell %d:\n%v", cell.Id, err)
			}
			ed.JxW[qp] = math.Abs(sh.J) * ip[3]
			for d := 0; d < ndim; d++ {
				ed.XQ[qp][d] = 0
			}
			for m := 0; m < sh.Nverts; m++ {
				ed.Phi[qp][m] = sh.S[m]
				for d := 0; d < ndim; d++ {
					ed.GradPhi[qp][m][d] = sh.G[m][d]
					ed.XQ[qp][d] += sh.S[m] * ed.X[d][m]
				}
			}
		}
		for e := 0; e < nsol+naux; e++ {
			u := 0.0
			for d := 0; d < ndim; d++ {
				ed.GradU[e][qp][d] = 0
			}
			for m := 0; m < sh.Nverts; m++ {
				u += ed.Phi[qp][m] * ed.Dof.Vals[e][m]
				for d := 0; d < ndim; d++ {
					ed.GradU[e][qp][d] += ed.GradPhi[qp][m][d] * ed.Dof.Vals[e][m]
				}
			}
			ed.U[e][qp] = u
		}
		for v := 0; v < nsol; v++ {
			udot := 0.0
			for m, vert := range cell.Verts {
				udot += ed.Phi[qp][m] * o.SolDot[o.EqNum(v, vert)]
			}
			ed.UDot[v][qp] = udot
		}
	}
	ed.Cell = cell
	return
}

// faceNat maps a face integration point into the cell's natural coordinates
func faceNat(sh *shp.Shape, fid int, ip shp.Ipoint) shp.Ipoint {
	r := ip[0]
	switch fid {
	case 0:
		return shp.Ipoint{r, -1, 0, ip[3]}
	case 1:
		return shp.Ipoint{1, r, 0, ip[3]}
	case 2:
		return shp.Ipoint{-r, 1, 0, ip[3]}
	default:
		return shp.Ipoint{-1, -r, 0, ip[3]}
	}
}

// reinitFace fills one thread's face scratchpad for one side of a cell.
// The element scratchpad ed must already be reinitialised for the same cell;
// the face trace of the cell basis comes from evaluating the full-cell shape
// functions at the face's natural coordinates.
//   flip -- evaluate face points in reverse parametric direction, so the two
//           sides of a shared interior face see matching physical points
func (o *System) reinitFace(tid int, ed *phys.ElementData, fid, bndId int, fd *phys.FaceData, flip bool) (err error) {
	cell := ed.Cell
	sh := ed.Shape
	if sh.FaceType == "" {
		return chk.Err("cell type %q has no faces", cell.Type)
	}
	nExt := o.Fields.NumExt()
	ndim := o.mesh.Ndim

	fd.Cell = cell
	fd.Fid = fid
	fd.BndId = bndId
	fd.Nverts = sh.Nverts
	fd.Nfqp = len(sh.FaceIps)
	fd.T = o.Time.T
	fd.Dt = o.Time.Dt

	for qp, ip := range sh.FaceIps {
		if flip {
			ip = shp.Ipoint{-ip[0], ip[1], ip[2], ip[3]}
		}
		nat := faceNat(sh, fid, ip)
		if err = sh.CalcAtIp(ed.X, nat, true); err != nil {
			return chk.Err("cannot reinitialise face %d of cell %d:\n%v", fid, cell.Id, err)
		}
		if err = sh.CalcFaceAtIp(ed.X, fid, ip); err != nil {
			return chk.Err("cannot reinitialise face %d of cell %d:\n%v", fid, cell.Id, err)
		}
		fd.FaceJxW[qp] = sh.Jf * ip[3]
		for d := 0; d < ndim; d++ {
			fd.Normal[qp][d] = sh.Fnvec[d]
			fd.XF[qp][d] = 0
		}
		for m := 0; m < sh.Nverts; m++ {
			fd.PhiF[qp][m] = sh.S[m]
			for d := 0; d < ndim; d++ {
				fd.GradPhiV[qp][m][d] = sh.G[m][d]
				fd.XF[qp][d] += sh.S[m] * ed.X[d][m]
			}
		}
		for e := 0; e < nExt; e++ {
			u := 0.0
			for d := 0; d < ndim; d++ {
				fd.GradU[e][qp][d] = 0
			}
			for m := 0; m < sh.Nverts; m++ {
				u += sh.S[m] * ed.Dof.Vals[e][m]
				for d := 0; d < ndim; d++ {
					fd.GradU[e][qp][d] += sh.G[m][d] * ed.Dof.Vals[e][m]
				}
			}
			fd.U[e][qp] = u
		}
	}
	return
}

// neighFaceId returns the local face id by which neigh touches cell
func neighFaceId(neigh *msh.Cell, cellId int) (fid int, err error) {
	for fid, n := range neigh.Neighs {
		if n == cellId {
			return fid, nil
		}
	}
	return 0, chk.Err("cells %d and %d are not neighbours", neigh.Id, cellId)
}

// nodeVals fills dest with the extended field values at one vertex. Elemental
// auxiliary variables contribute the average of the adjacent cells.
func (o *System) nodeVals(vert int, dest []float64) {
	nsol := o.Fields.NumVars()
	for v := 0; v < nsol; v++ {
		dest[v] = o.Sol[o.EqNum(v, vert)]
	}
	for a := 0; a < o.Fields.NumAuxVars(); a++ {
		if o.Fields.AuxIsNodal(a) {
			dest[nsol+a] = o.AuxNod[a][vert]
			continue
		}
		sum, n := 0.0, 0
		for _, cid := range o.mesh.Vert2cells[vert] {
			sum += o.AuxElem[a][cid]
			n++
		}
		if n > 0 {
			dest[nsol+a] = sum / float64(n)
		} else {
			dest[nsol+a] = 0
		}
	}
}
