// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape functions and isoparametric mappings for the
// cell geometries used by the assembly engine
package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// Ipoint holds integration point data: natural coordinates and weight
// {r, s, t, w}
type Ipoint []float64

// Shape holds the shape-function scratchpad for one cell geometry. One
// instance must not be shared across threads; use Get to allocate per-thread
// copies.
type Shape struct {

	// constants
	Type   string // geometry type; e.g. "qua4"
	Nverts int    // number of vertices
	Gndim  int    // geometry dimension
	Ips    []Ipoint

	// volume scratchpad; computed by CalcAtIp
	S    []float64   // shape function values [nverts]
	DSdR [][]float64 // dS/dR natural derivatives [nverts][gndim]
	G    [][]float64 // dS/dx cartesian derivatives [nverts][gndim]
	J    float64     // determinant of mapping jacobian

	// face scratchpad; computed by CalcFaceAtIp
	FaceType   string
	FaceVerts  [][]int // local vertices of each face
	FaceIps    []Ipoint
	Sf         []float64 // face shape function values
	Fnvec      []float64 // unit outward normal at face ip
	Jf         float64   // face mapping jacobian (arclength factor)
	FaceLocals []int     // local vertices of the face last computed

	// internal scratch, reused across calls
	jmat *mat.Dense
	jinv mat.Dense
}

const sq3 = 0.577350269189625764509148780502 // 1/sqrt(3)

// Get returns a fresh Shape for the given geometry type or nil for an
// unknown type
func Get(geoType string) (o *Shape) {
	switch geoType {
	case "lin2":
		o = &Shape{
			Type: "lin2", Nverts: 2, Gndim: 1,
			Ips: []Ipoint{{-sq3, 0, 0, 1}, {sq3, 0, 0, 1}},
		}
	case "qua4":
		o = &Shape{
			Type: "qua4", Nverts: 4, Gndim: 2,
			Ips: []Ipoint{
				{-sq3, -sq3, 0, 1}, {sq3, -sq3, 0, 1},
				{sq3, sq3, 0, 1}, {-sq3, sq3, 0, 1},
			},
			FaceType:  "lin2",
			FaceVerts: [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
			FaceIps:   []Ipoint{{-sq3, 0, 0, 1}, {sq3, 0, 0, 1}},
		}
	default:
		return nil
	}
	o.S = make([]float64, o.Nverts)
	o.DSdR = utl.Alloc(o.Nverts, o.Gndim)
	o.G = utl.Alloc(o.Nverts, o.Gndim)
	if o.FaceType != "" {
		o.Sf = make([]float64, 2)
		o.Fnvec = make([]float64, 2)
	}
	return
}

// funcQua4 computes S and dSdR for the bilinear quadrilateral
func funcQua4(S []float64, dSdR [][]float64, r, s float64) {
	S[0] = (1.0 - r) * (1.0 - s) / 4.0
	S[1] = (1.0 + r) * (1.0 - s) / 4.0
	S[2] = (1.0 + r) * (1.0 + s) / 4.0
	S[3] = (1.0 - r) * (1.0 + s) / 4.0
	dSdR[0][0], dSdR[0][1] = -(1.0-s)/4.0, -(1.0-r)/4.0
	dSdR[1][0], dSdR[1][1] = (1.0-s)/4.0, -(1.0+r)/4.0
	dSdR[2][0], dSdR[2][1] = (1.0+s)/4.0, (1.0+r)/4.0
	dSdR[3][0], dSdR[3][1] = -(1.0+s)/4.0, (1.0-r)/4.0
}

// funcLin2 computes S and dSdR for the linear segment
func funcLin2(S []float64, dSdR [][]float64, r float64) {
	S[0] = (1.0 - r) / 2.0
	S[1] = (1.0 + r) / 2.0
	if dSdR != nil {
		dSdR[0][0] = -0.5
		dSdR[1][0] = 0.5
	}
}

// CalcAtIp calculates S, G and J at the given integration point.
//   x -- coordinates matrix [ndim][nverts]
func (o *Shape) CalcAtIp(x [][]float64, ip Ipoint, derivs bool) (err error) {

	// shape functions and natural derivatives
	switch o.Type {
	case "lin2":
		funcLin2(o.S, o.DSdR, ip[0])
	case "qua4":
		funcQua4(o.S, o.DSdR, ip[0], ip[1])
	default:
		return chk.Err("geometry type %q is not available", o.Type)
	}
	if !derivs {
		return
	}

	// mapping jacobian Jmat[i][j] = dx_i/dr_j
	if o.Gndim == 1 {
		jac := 0.0
		for m := 0; m < o.Nverts; m++ {
			jac += x[0][m] * o.DSdR[m][0]
		}
		if math.Abs(jac) < 1e-14 {
			return chk.Err("singular mapping jacobian: J=%g", jac)
		}
		o.J = jac
		for m := 0; m < o.Nverts; m++ {
			o.G[m][0] = o.DSdR[m][0] / jac
		}
		return
	}
	if o.jmat == nil {
		o.jmat = mat.NewDense(2, 2, nil)
	}
	jmat := o.jmat
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			sum := 0.0
			for m := 0; m < o.Nverts; m++ {
				sum += x[i][m] * o.DSdR[m][j]
			}
			jmat.Set(i, j, sum)
		}
	}
	o.J = mat.Det(jmat)
	if math.Abs(o.J) < 1e-14 {
		return chk.Err("singular mapping jacobian: J=%g", o.J)
	}
	if err := o.jinv.Inverse(jmat); err != nil {
		return chk.Err("cannot invert mapping jacobian:\n%v", err)
	}
	for m := 0; m < o.Nverts; m++ {
		for i := 0; i < 2; i++ {
			o.G[m][i] = 0
			for j := 0; j < 2; j++ {
				o.G[m][i] += o.DSdR[m][j] * o.jinv.At(j, i)
			}
		}
	}
	return
}

// CalcFaceAtIp calculates Sf, Fnvec and Jf at a face integration point.
// Faces of qua4 cells are lin2 segments; the outward normal relies on the
// counter-clockwise vertex ordering of the cell.
//   x -- coordinates matrix of the whole cell [ndim][nverts]
func (o *Shape) CalcFaceAtIp(x [][]float64, fid int, ip Ipoint) (err error) {
	if o.FaceType == "" {
		return chk.Err("geometry type %q has no face shape", o.Type)
	}
	if fid < 0 || fid >= len(o.FaceVerts) {
		return chk.Err("face id %d is out of range", fid)
	}
	o.FaceLocals = o.FaceVerts[fid]
	funcLin2(o.Sf, nil, ip[0])

	// tangent vector along the edge
	a, b := o.FaceLocals[0], o.FaceLocals[1]
	tx := (x[0][b] - x[0][a]) / 2.0
	ty := (x[1][b] - x[1][a]) / 2.0
	o.Jf = math.Sqrt(tx*tx + ty*ty)
	if o.Jf < 1e-14 {
		return chk.Err("degenerate face: Jf=%g", o.Jf)
	}
	o.Fnvec[0] = ty / o.Jf
	o.Fnvec[1] = -tx / o.Jf
	return
}
