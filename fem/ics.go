// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
)

// ProjectSolution sets the nodal values of one solution variable from a
// function of the node coordinates
func (o *System) ProjectSolution(varName string, f func(x []float64) float64) (err error) {
	v, err := o.Fields.VariableNumber(varName)
	if err != nil {
		return chk.Err("cannot project solution:\n%v", err)
	}
	o.CheckSystemsIntegrity()
	for vid, vert := range o.geomMesh().Verts {
		o.Sol[o.EqNum(v, vid)] = f(vert.C)
	}
	return
}

// ApplyInitialConditions evaluates all initial conditions onto the solution
// and auxiliary storage, then seeds the solution history with the result.
// Conditions are applied in insertion order, so later ones override earlier
// ones where restrictions overlap.
func (o *System) ApplyInitialConditions() (err error) {
	o.CheckSystemsIntegrity()
	if o.ics[0].Len() == 0 {
		return
	}

	centroid := make([]float64, o.mesh.Ndim)
	for _, cell := range o.mesh.Cells {
		for _, ic := range o.ics[0].Active(cell.Sub) {

			// elemental auxiliary target: one value at the centroid
			if ic.IsAux() && !o.Fields.AuxIsNodal(ic.Var()) {
				for d := range centroid {
					centroid[d] = 0
				}
				for _, vert := range cell.Verts {
					for d, c := range o.mesh.Verts[vert].C {
						centroid[d] += c / float64(len(cell.Verts))
					}
				}
				o.AuxElem[ic.Var()][cell.Id] = ic.Value(centroid)
				continue
			}

			// nodal targets
			for _, vert := range cell.Verts {
				x := o.mesh.Verts[vert].C
				if ic.IsAux() {
					o.AuxNod[ic.Var()][vert] = ic.Value(x)
				} else {
					o.Sol[o.EqNum(ic.Var(), vert)] = ic.Value(x)
				}
			}
		}
	}

	// seed the history
	copy(o.SolOld, o.Sol)
	copy(o.SolOlder, o.Sol)
	return
}
