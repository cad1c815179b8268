// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"sort"

	"github.com/cpmech/gosl/chk"
)

// edgeKey identifies an edge by its two global vertices, smallest first
type edgeKey [2]int

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Hang records one hanging vertex after non-uniform refinement: M lies at the
// midpoint of edge (A,B) and carries no free degree of freedom; its value is
// slaved to the average of A and B
type Hang struct {
	M, A, B int
}

// RefineCells splits the flagged qua4 cells into 4 children each. Mid-edge
// vertices are shared between adjacent refined cells. Children keep the
// parent's subdomain id and inherit the parent's face tags on outer edges.
// Cell ids are renumbered afterwards; derived maps are recomputed.
func (o *Mesh) RefineCells(flags []bool) (changed bool, err error) {
	if len(flags) != len(o.Cells) {
		return false, chk.Err("flags length must equal number of cells. %d != %d", len(flags), len(o.Cells))
	}

	// the registry persists across cycles: refining the coarse side of an
	// edge split earlier must reuse the existing (hanging) midpoint instead
	// of duplicating it
	if o.mids == nil {
		o.mids = make(map[edgeKey]int)
	}
	midVert := func(a, b int) int {
		key := newEdgeKey(a, b)
		if id, ok := o.mids[key]; ok {
			return id
		}
		va, vb := o.Verts[a], o.Verts[b]
		c := make([]float64, len(va.C))
		for i := range c {
			c[i] = 0.5 * (va.C[i] + vb.C[i])
		}
		id := len(o.Verts)
		o.Verts = append(o.Verts, &Vert{Id: id, C: c})
		o.mids[key] = id
		return id
	}

	newCells := make([]*Cell, 0, len(o.Cells))
	for i, cell := range o.Cells {
		if !flags[i] {
			newCells = append(newCells, cell)
			continue
		}
		if cell.Type != "qua4" {
			return false, chk.Err("refinement of %q cells is not available", cell.Type)
		}
		changed = true

		// new vertices
		v := cell.Verts
		m01 := midVert(v[0], v[1])
		m12 := midVert(v[1], v[2])
		m23 := midVert(v[2], v[3])
		m30 := midVert(v[3], v[0])
		cc := make([]float64, len(o.Verts[v[0]].C))
		for k := range cc {
			cc[k] = 0.25 * (o.Verts[v[0]].C[k] + o.Verts[v[1]].C[k] + o.Verts[v[2]].C[k] + o.Verts[v[3]].C[k])
		}
		ctr := len(o.Verts)
		o.Verts = append(o.Verts, &Vert{Id: ctr, C: cc})

		// children; outer edges carry the parent's face tags
		f := cell.FTags
		if len(f) == 0 {
			f = []int{0, 0, 0, 0}
		}
		children := []*Cell{
			{Type: "qua4", Verts: []int{v[0], m01, ctr, m30}, FTags: []int{f[0], 0, 0, f[3]}},
			{Type: "qua4", Verts: []int{m01, v[1], m12, ctr}, FTags: []int{f[0], f[1], 0, 0}},
			{Type: "qua4", Verts: []int{ctr, m12, v[2], m23}, FTags: []int{0, f[1], f[2], 0}},
			{Type: "qua4", Verts: []int{m30, ctr, m23, v[3]}, FTags: []int{0, 0, f[2], f[3]}},
		}
		for _, child := range children {
			child.Sub = cell.Sub
			child.Part = cell.Part
			child.Level = cell.Level + 1
			child.parent = cell
			newCells = append(newCells, child)
		}
	}
	if !changed {
		return
	}
	o.Cells = newCells
	if err = o.CalcDerived(); err != nil {
		return
	}
	o.updateHangs()
	return
}

// updateHangs rebuilds the hanging vertex list. A midpoint hangs while the
// coarse side of its edge still presents the unsplit face: that face matched
// no neighbour, yet the registered midpoint is in use by the finer side.
// Deeper hangs come first so chained constraints fold into their masters in a
// single pass.
func (o *Mesh) updateHangs() {
	o.Hangs = nil
	for _, cell := range o.Cells {
		for fid, fv := range cell.FaceVerts() {
			if cell.Neighs[fid] >= 0 || len(fv) < 2 {
				continue
			}
			a, b := cell.Verts[fv[0]], cell.Verts[fv[1]]
			m, ok := o.mids[newEdgeKey(a, b)]
			if !ok || len(o.Vert2cells[m]) == 0 {
				continue
			}
			o.Hangs = append(o.Hangs, &Hang{M: m, A: a, B: b})
		}
	}
	sort.Slice(o.Hangs, func(i, j int) bool { return o.Hangs[i].M > o.Hangs[j].M })
}

// CoarsenCells merges sibling groups back into their parent cell. A group is
// merged only when all 4 siblings are flagged; partially flagged groups are
// left alone. Vertices introduced by the refinement are kept (possibly
// orphaned) to avoid renumbering the remaining cells' connectivity.
func (o *Mesh) CoarsenCells(flags []bool) (changed bool, err error) {
	if len(flags) != len(o.Cells) {
		return false, chk.Err("flags length must equal number of cells. %d != %d", len(flags), len(o.Cells))
	}

	// count flagged children per parent
	count := make(map[*Cell]int)
	for i, cell := range o.Cells {
		if flags[i] && cell.parent != nil {
			count[cell.parent]++
		}
	}

	newCells := make([]*Cell, 0, len(o.Cells))
	restored := make(map[*Cell]bool)
	for i, cell := range o.Cells {
		p := cell.parent
		if flags[i] && p != nil && count[p] == 4 {
			changed = true
			if !restored[p] {
				restored[p] = true
				newCells = append(newCells, p)
			}
			continue
		}
		newCells = append(newCells, cell)
	}
	if !changed {
		return
	}
	o.Cells = newCells
	if err = o.CalcDerived(); err != nil {
		return
	}
	o.updateHangs()
	return
}
