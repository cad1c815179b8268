// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

// CloneCoords returns a mesh sharing this mesh's cells but owning a fresh
// copy of the vertex coordinates. The clone has the node cardinality and
// connectivity of the original; only coordinates may be changed afterwards.
func (o *Mesh) CloneCoords() (clone *Mesh) {
	clone = new(Mesh)
	clone.Ndim = o.Ndim
	clone.Cells = o.Cells
	clone.Hangs = o.Hangs
	clone.mids = o.mids
	clone.Verts = make([]*Vert, len(o.Verts))
	for i, v := range o.Verts {
		c := make([]float64, len(v.C))
		copy(c, v.C)
		clone.Verts[i] = &Vert{Id: v.Id, Tag: v.Tag, C: c}
	}
	clone.CalcDerived()
	return
}

// SetCoords sets the coordinates of one vertex
func (o *Mesh) SetCoords(vid int, c []float64) {
	copy(o.Verts[vid].C, c)
}
