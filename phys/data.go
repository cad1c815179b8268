// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package phys implements the pluggable physics contributions (kernels,
// boundary conditions, materials, etc.), their factories and warehouses, and
// the per-thread scratch data handed to contributions during assembly
package phys

import (
	"github.com/cpmech/gosl/utl"

	"github.com/mieuicedu/moose/msh"
	"github.com/mieuicedu/moose/shp"
)

// DofData holds the degrees-of-freedom of the current element. Variables are
// indexed in the extended numbering: solution variables first, then auxiliary
// variables remapped past the solution count.
type DofData struct {
	Eqs  [][]int     // [nvarsExt][nverts] global equation numbers; -1 => inactive
	Vals [][]float64 // [nvarsExt][nverts] dof values
}

// ElementData is the per-thread scratchpad for volumetric terms. It is
// allocated once by the sizing step and reinitialised, never reallocated, on
// every element visit.
type ElementData struct {

	// identity
	Tid  int       // owning thread
	Cell *msh.Cell // current cell

	// geometry and basis
	X       [][]float64   // [ndim][nverts] coordinates matrix
	Shape   *shp.Shape    // per-thread shape scratchpad
	Nverts  int           // number of vertices of current cell
	Nqp     int           // number of integration points of current cell
	Ndim    int           // space dimension
	JxW     []float64     // [nqp] jacobian times weight
	XQ      [][]float64   // [nqp][ndim] real coordinates of integration points
	Phi     [][]float64   // [nqp][nverts] shape values
	GradPhi [][][]float64 // [nqp][nverts][ndim] shape gradients

	// field values
	Dof     DofData
	U       [][]float64   // [nvarsExt][nqp] values at integration points
	GradU   [][][]float64 // [nvarsExt][nqp][ndim] gradients at integration points
	UDot    [][]float64   // [nvarsExt][nqp] time derivative (solution vars only)
	DuDotDu float64       // d(u_dot)/du of the active time scheme

	// accumulation targets
	Re [][]float64     // [nsol][nverts] local residual
	Ke [][][][]float64 // [nsol][nvarsExt][nverts][nverts] local jacobian blocks

	// time state
	T, Dt float64
}

// NewElementData allocates an ElementData sized for the worst case
func NewElementData(tid, nsol, nvarsExt, maxNverts, maxNqp, ndim int) (o *ElementData) {
	o = new(ElementData)
	o.Tid = tid
	o.Ndim = ndim
	o.X = utl.Alloc(ndim, maxNverts)
	o.JxW = make([]float64, maxNqp)
	o.XQ = utl.Alloc(maxNqp, ndim)
	o.Phi = utl.Alloc(maxNqp, maxNverts)
	o.GradPhi = utl.Deep3alloc(maxNqp, maxNverts, ndim)
	o.Dof.Eqs = make([][]int, nvarsExt)
	for i := range o.Dof.Eqs {
		o.Dof.Eqs[i] = make([]int, maxNverts)
	}
	o.Dof.Vals = utl.Alloc(nvarsExt, maxNverts)
	o.U = utl.Alloc(nvarsExt, maxNqp)
	o.GradU = utl.Deep3alloc(nvarsExt, maxNqp, ndim)
	o.UDot = utl.Alloc(nvarsExt, maxNqp)
	o.Re = utl.Alloc(nsol, maxNverts)
	o.Ke = allocBlocks(nsol, nvarsExt, maxNverts)
	return
}

// ZeroRe clears the local residual
func (o *ElementData) ZeroRe() {
	for i := range o.Re {
		for j := range o.Re[i] {
			o.Re[i][j] = 0
		}
	}
}

// ZeroKe clears the local jacobian blocks
func (o *ElementData) ZeroKe() {
	zeroBlocks(o.Ke)
}

// FaceData is the per-thread scratchpad for boundary and interface terms on
// one side of one cell
type FaceData struct {

	// identity
	Tid   int
	Cell  *msh.Cell
	Fid   int // local face id
	BndId int // boundary id; 0 for interior faces

	// geometry and basis at face integration points
	Nfqp     int
	Nverts   int           // vertices of the parent cell
	Ndim     int
	FaceJxW  []float64     // [nfqp]
	Normal   [][]float64   // [nfqp][ndim] unit outward normal
	XF       [][]float64   // [nfqp][ndim] real coordinates
	PhiF     [][]float64   // [nfqp][nverts] face trace of cell shapes (zero off-face)
	GradPhiV [][][]float64 // [nfqp][nverts][ndim] full-cell gradients at face ips

	// field values at face integration points
	U     [][]float64   // [nvarsExt][nfqp]
	GradU [][][]float64 // [nvarsExt][nfqp][ndim]

	// accumulation targets
	Re  [][]float64     // [nsol][nverts]
	Ke  [][][][]float64 // [nsol][nvarsExt][nverts][nverts] self coupling
	KeN [][][][]float64 // [nsol][nvarsExt][nverts][nverts] coupling to neighbour dofs

	// time state
	T, Dt float64
}

// NewFaceData allocates a FaceData sized for the worst case
func NewFaceData(tid, nsol, nvarsExt, maxNverts, maxNfqp, ndim int) (o *FaceData) {
	o = new(FaceData)
	o.Tid = tid
	o.Ndim = ndim
	o.FaceJxW = make([]float64, maxNfqp)
	o.Normal = utl.Alloc(maxNfqp, ndim)
	o.XF = utl.Alloc(maxNfqp, ndim)
	o.PhiF = utl.Alloc(maxNfqp, maxNverts)
	o.GradPhiV = utl.Deep3alloc(maxNfqp, maxNverts, ndim)
	o.U = utl.Alloc(nvarsExt, maxNfqp)
	o.GradU = utl.Deep3alloc(nvarsExt, maxNfqp, ndim)
	o.Re = utl.Alloc(nsol, maxNverts)
	o.Ke = allocBlocks(nsol, nvarsExt, maxNverts)
	o.KeN = allocBlocks(nsol, nvarsExt, maxNverts)
	return
}

// ZeroRe clears the local residual
func (o *FaceData) ZeroRe() {
	for i := range o.Re {
		for j := range o.Re[i] {
			o.Re[i][j] = 0
		}
	}
}

// ZeroKe clears the local jacobian blocks
func (o *FaceData) ZeroKe() {
	zeroBlocks(o.Ke)
	zeroBlocks(o.KeN)
}

// BCNodeData holds the state handed to node-based (essential) boundary
// conditions
type BCNodeData struct {
	Tid   int
	Node  int       // vertex id
	BndId int       // boundary id
	X     []float64 // node coordinates
	UVals []float64 // [nvarsExt] values of all variables at the node
	T     float64
}

// AuxData holds the state handed to auxiliary kernels. Nodal kernels see
// Node/X/UVals; elemental kernels see Cell/UAvg.
type AuxData struct {
	Tid int

	// nodal context
	Node  int
	X     []float64
	UVals []float64 // [nvarsExt] values at the node

	// elemental context
	Cell *msh.Cell
	UAvg []float64 // [nvarsExt] cell averages at integration points

	// time state
	T, Dt float64
}

// NewAuxData allocates an AuxData
func NewAuxData(tid, nvarsExt, ndim int) (o *AuxData) {
	o = new(AuxData)
	o.Tid = tid
	o.UVals = make([]float64, nvarsExt)
	o.UAvg = make([]float64, nvarsExt)
	return
}

// MaterialData holds per-thread material properties at the integration points
// of the current element or face
type MaterialData struct {
	Tid   int
	Nqp   int
	Props map[string][]float64 // property name => per-ip values
}

// NewMaterialData allocates a MaterialData
func NewMaterialData(tid, maxNqp int) (o *MaterialData) {
	o = new(MaterialData)
	o.Tid = tid
	o.Nqp = maxNqp
	o.Props = make(map[string][]float64)
	return
}

// SetProp sets a property value at all integration points
func (o *MaterialData) SetProp(name string, val float64) {
	vals, ok := o.Props[name]
	if !ok {
		vals = make([]float64, o.Nqp)
		o.Props[name] = vals
	}
	for i := range vals {
		vals[i] = val
	}
}

// SetPropAt sets a property value at one integration point
func (o *MaterialData) SetPropAt(name string, ip int, val float64) {
	vals, ok := o.Props[name]
	if !ok {
		vals = make([]float64, o.Nqp)
		o.Props[name] = vals
	}
	vals[ip] = val
}

// Value returns a property value at one integration point, or dflt if the
// property was never computed
func (o *MaterialData) Value(name string, ip int, dflt float64) float64 {
	if vals, ok := o.Props[name]; ok {
		return vals[ip]
	}
	return dflt
}

// DamperData holds the state handed to dampers: the current element data and
// the proposed Newton update restricted to the element's dofs
type DamperData struct {
	Tid int
	Ed  *ElementData
	Du  [][]float64 // [nsol][nverts] proposed update
}

// NewDamperData allocates a DamperData
func NewDamperData(tid, nsol, maxNverts int) (o *DamperData) {
	o = new(DamperData)
	o.Tid = tid
	o.Du = utl.Alloc(nsol, maxNverts)
	return
}

// allocBlocks allocates a [nsol][nvarsExt][n][n] set of jacobian blocks
func allocBlocks(nsol, nvarsExt, n int) (K [][][][]float64) {
	K = make([][][][]float64, nsol)
	for i := 0; i < nsol; i++ {
		K[i] = make([][][]float64, nvarsExt)
		for j := 0; j < nvarsExt; j++ {
			K[i][j] = utl.Alloc(n, n)
		}
	}
	return
}

// zeroBlocks clears a set of jacobian blocks
func zeroBlocks(K [][][][]float64) {
	for i := range K {
		for j := range K[i] {
			for a := range K[i][j] {
				for b := range K[i][j][a] {
					K[i][j][a][b] = 0
				}
			}
		}
	}
}
