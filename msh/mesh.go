// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msh implements the mesh held by a simulation: vertices, cells,
// subdomain and boundary tags, neighbour adjacency and h-refinement
package msh

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
)

// Vert holds vertex data
type Vert struct {
	Id  int       `json:"id"`  // id
	Tag int       `json:"tag"` // tag; e.g. for vertex boundary conditions
	C   []float64 `json:"c"`   // coordinates (size==2 or 3)
}

// Cell holds cell data
type Cell struct {

	// input data
	Id    int    `json:"id"`    // id
	Sub   int    `json:"sub"`   // subdomain (block) id
	Type  string `json:"type"`  // geometry type; e.g. "qua4", "lin2"
	Verts []int  `json:"verts"` // vertices
	FTags []int  `json:"ftags"` // boundary id per edge (2D) or end vertex (1D); 0 => none
	Part  int    `json:"part"`  // partition id

	// refinement
	Level int `json:"level"` // h-refinement level; 0 for input cells

	// derived
	Neighs []int // neighbour cell id per face; -1 => no neighbour

	// refinement bookkeeping
	parent *Cell // cell this one was split from; nil for input cells
}

// CellFace holds one (cell, local face id) pair
type CellFace struct {
	C   *Cell // cell
	Fid int   // local face id
}

// Mesh holds a mesh for FE analyses
type Mesh struct {

	// from JSON
	Ndim  int     `json:"ndim"`  // space dimension
	Verts []*Vert `json:"verts"` // vertices
	Cells []*Cell `json:"cells"` // cells

	// derived: maps
	Sub2cells  map[int][]*Cell    // subdomain id => cells
	Bnd2faces  map[int][]CellFace // boundary id => tagged faces
	Bnd2verts  map[int][]int      // boundary id => vertices on tagged faces
	Vert2cells [][]int            // vertex id => ids of cells connected to it

	// derived: refinement conformity
	Hangs []*Hang // hanging mid-edge vertices, deepest first

	// derived: limits
	Xmin, Xmax float64
	Ymin, Ymax float64

	// mid-edge vertex registry kept across refinement cycles
	mids map[edgeKey]int
}

// faceVerts maps a cell type to the local vertices of each of its faces
var faceVerts = map[string][][]int{
	"lin2": {{0}, {1}},
	"qua4": {{0, 1}, {1, 2}, {2, 3}, {3, 0}},
}

// FaceVerts returns the local vertices of each face of this cell
func (o *Cell) FaceVerts() [][]int {
	return faceVerts[o.Type]
}

// ReadMsh reads a mesh from a JSON file
func ReadMsh(fnamepath string) (o *Mesh, err error) {
	b, err := os.ReadFile(fnamepath)
	if err != nil {
		err = chk.Err("cannot read mesh file %q:\n%v", fnamepath, err)
		return
	}
	o = new(Mesh)
	err = json.Unmarshal(b, o)
	if err != nil {
		err = chk.Err("cannot unmarshal mesh file %q:\n%v", fnamepath, err)
		return
	}
	err = o.CalcDerived()
	return
}

// CalcDerived computes derived maps and neighbour adjacency. Must be called
// after any change to Verts or Cells.
func (o *Mesh) CalcDerived() (err error) {

	// check
	if len(o.Verts) < 2 {
		return chk.Err("mesh must have at least 2 vertices. %d is invalid", len(o.Verts))
	}
	if len(o.Cells) < 1 {
		return chk.Err("mesh must have at least 1 cell. %d is invalid", len(o.Cells))
	}
	if o.Ndim < 1 || o.Ndim > 3 {
		return chk.Err("space dimension must be 1, 2 or 3. %d is invalid", o.Ndim)
	}

	// limits
	o.Xmin, o.Xmax = o.Verts[0].C[0], o.Verts[0].C[0]
	if o.Ndim > 1 {
		o.Ymin, o.Ymax = o.Verts[0].C[1], o.Verts[0].C[1]
	}
	for _, v := range o.Verts {
		if v.C[0] < o.Xmin {
			o.Xmin = v.C[0]
		}
		if v.C[0] > o.Xmax {
			o.Xmax = v.C[0]
		}
		if o.Ndim > 1 {
			if v.C[1] < o.Ymin {
				o.Ymin = v.C[1]
			}
			if v.C[1] > o.Ymax {
				o.Ymax = v.C[1]
			}
		}
	}

	// subdomain and boundary maps
	o.Sub2cells = make(map[int][]*Cell)
	o.Bnd2faces = make(map[int][]CellFace)
	o.Bnd2verts = make(map[int][]int)
	o.Vert2cells = make([][]int, len(o.Verts))
	bndVertSeen := make(map[int]map[int]bool)
	for i, cell := range o.Cells {
		cell.Id = i
		fverts := cell.FaceVerts()
		if fverts == nil {
			return chk.Err("cell type %q is not available", cell.Type)
		}
		if len(cell.FTags) > 0 && len(cell.FTags) != len(fverts) {
			return chk.Err("cell %d has %d face tags but %d faces", cell.Id, len(cell.FTags), len(fverts))
		}
		o.Sub2cells[cell.Sub] = append(o.Sub2cells[cell.Sub], cell)
		for _, v := range cell.Verts {
			o.Vert2cells[v] = append(o.Vert2cells[v], cell.Id)
		}
		for fid, tag := range cell.FTags {
			if tag == 0 {
				continue
			}
			o.Bnd2faces[tag] = append(o.Bnd2faces[tag], CellFace{cell, fid})
			if bndVertSeen[tag] == nil {
				bndVertSeen[tag] = make(map[int]bool)
			}
			for _, l := range fverts[fid] {
				v := cell.Verts[l]
				if !bndVertSeen[tag][v] {
					bndVertSeen[tag][v] = true
					o.Bnd2verts[tag] = append(o.Bnd2verts[tag], v)
				}
			}
		}
	}

	// neighbour adjacency via shared faces
	type faceKey [2]int
	face2cell := make(map[faceKey]CellFace)
	for _, cell := range o.Cells {
		cell.Neighs = make([]int, len(cell.FaceVerts()))
		for i := range cell.Neighs {
			cell.Neighs[i] = -1
		}
	}
	for _, cell := range o.Cells {
		for fid, fv := range cell.FaceVerts() {
			key := faceKey{cell.Verts[fv[0]], -1}
			if len(fv) > 1 {
				a, b := cell.Verts[fv[0]], cell.Verts[fv[1]]
				if a > b {
					a, b = b, a
				}
				key = faceKey{a, b}
			}
			if other, ok := face2cell[key]; ok {
				cell.Neighs[fid] = other.C.Id
				other.C.Neighs[other.Fid] = cell.Id
			} else {
				face2cell[key] = CellFace{cell, fid}
			}
		}
	}
	return
}

// BndTags returns all boundary ids present in the mesh
func (o *Mesh) BndTags() (tags []int) {
	for tag := range o.Bnd2faces {
		tags = append(tags, tag)
	}
	return
}

// GenGrid2D generates a structured nx by ny grid of qua4 cells over a
// lx by ly rectangle. Boundary edges are tagged 1 (bottom), 2 (right),
// 3 (top) and 4 (left). All cells belong to subdomain 0.
func GenGrid2D(nx, ny int, lx, ly float64) (o *Mesh) {
	if nx < 1 || ny < 1 {
		chk.Panic("grid must have at least 1x1 cells. %dx%d is invalid", nx, ny)
	}
	o = new(Mesh)
	o.Ndim = 2
	dx, dy := lx/float64(nx), ly/float64(ny)
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			o.Verts = append(o.Verts, &Vert{
				Id: j*(nx+1) + i,
				C:  []float64{float64(i) * dx, float64(j) * dy},
			})
		}
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			v0 := j*(nx+1) + i
			ftags := make([]int, 4)
			if j == 0 {
				ftags[0] = 1
			}
			if i == nx-1 {
				ftags[1] = 2
			}
			if j == ny-1 {
				ftags[2] = 3
			}
			if i == 0 {
				ftags[3] = 4
			}
			o.Cells = append(o.Cells, &Cell{
				Id:    j*nx + i,
				Type:  "qua4",
				Verts: []int{v0, v0 + 1, v0 + nx + 2, v0 + nx + 1},
				FTags: ftags,
			})
		}
	}
	if err := o.CalcDerived(); err != nil {
		chk.Panic("cannot generate grid:\n%v", err)
	}
	return
}
