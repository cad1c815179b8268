// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"

	"github.com/mieuicedu/moose/msh"
)

// InitMesh reads a mesh file and binds it to the system
func (o *System) InitMesh(fnamepath string) (err error) {
	m, err := msh.ReadMsh(fnamepath)
	if err != nil {
		return chk.Err("cannot initialise mesh:\n%v", err)
	}
	o.SetMesh(m)
	return
}

// SetMesh binds an already constructed mesh to the system. Binding marks the
// mesh as changed; SizeEverything must run before the next assembly.
func (o *System) SetMesh(m *msh.Mesh) {
	o.mesh = m
	o.dispMesh = nil
	o.meshChanged = true
}

// CheckValid reports whether the system is initialised enough to expose its
// meshes
func (o *System) CheckValid() error {
	if o.mesh == nil {
		return chk.Err("uninitialized system: no mesh bound")
	}
	return nil
}

// GetMesh returns the bound (reference) mesh. An uninitialized system is a
// programming error and panics, unless the validity check is skipped.
func (o *System) GetMesh(skipValidCheck ...bool) *msh.Mesh {
	if len(skipValidCheck) == 0 || !skipValidCheck[0] {
		if err := o.CheckValid(); err != nil {
			chk.Panic("%v", err)
		}
	}
	return o.mesh
}

// Ndim returns the space dimension of the bound mesh
func (o *System) Ndim() int {
	if o.mesh == nil {
		return 0
	}
	return o.mesh.Ndim
}

// InitDisplacedMesh creates the displaced copy of the mesh, moved by the
// given displacement variables (one per dimension). Calling it again after a
// mesh change rebuilds the copy; it is idempotent otherwise.
func (o *System) InitDisplacedMesh(varNames []string) (err error) {
	if o.mesh == nil {
		return chk.Err("cannot initialise displaced mesh without a mesh")
	}
	if len(varNames) != o.mesh.Ndim {
		return chk.Err("need one displacement variable per dimension. %d != %d", len(varNames), o.mesh.Ndim)
	}
	vars := make([]int, len(varNames))
	for i, name := range varNames {
		if vars[i], err = o.Fields.VariableNumber(name); err != nil {
			return chk.Err("cannot initialise displaced mesh:\n%v", err)
		}
	}
	o.displaceVars = vars
	o.dispMesh = o.mesh.CloneCoords()
	return
}

// HasDisplacedMesh tells whether a displaced mesh exists
func (o *System) HasDisplacedMesh() bool { return o.dispMesh != nil }

// GetDisplacedMesh returns the displaced mesh, or nil when the mesh is not
// displaced. The same validity gate as GetMesh applies.
func (o *System) GetDisplacedMesh(skipValidCheck ...bool) *msh.Mesh {
	if len(skipValidCheck) == 0 || !skipValidCheck[0] {
		if err := o.CheckValid(); err != nil {
			chk.Panic("%v", err)
		}
	}
	return o.dispMesh
}

// UpdateDisplacedMesh moves the displaced mesh to reference coordinates plus
// the current displacement solution. A no-op without a displaced mesh.
func (o *System) UpdateDisplacedMesh() {
	if o.dispMesh == nil {
		return
	}
	c := make([]float64, o.mesh.Ndim)
	for vid, v := range o.mesh.Verts {
		for d, varNum := range o.displaceVars {
			c[d] = v.C[d] + o.Sol[o.EqNum(varNum, vid)]
		}
		o.dispMesh.SetCoords(vid, c)
	}
}

// geomMesh returns the mesh geometry is read from: the displaced mesh when
// one exists, the reference mesh otherwise
func (o *System) geomMesh() *msh.Mesh {
	if o.dispMesh != nil {
		return o.dispMesh
	}
	return o.mesh
}

// MeshChanged marks the mesh as modified, invalidating sizing-dependent state
func (o *System) MeshChanged() {
	o.meshChanged = true
}

// IsMeshChanged tells whether the mesh changed since the last sizing
func (o *System) IsMeshChanged() bool { return o.meshChanged }

// ActiveElemRange returns the cell indices owned by one thread
func (o *System) ActiveElemRange(tid int) []int { return o.elemParts[tid] }

// ActiveNodeRange returns the vertex indices owned by one thread
func (o *System) ActiveNodeRange(tid int) []int { return o.nodeParts[tid] }
