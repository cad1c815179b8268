// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/mieuicedu/moose/inp"
)

func TestAux01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("aux01. nodal and elemental updates")

	sys := gridSys(2, 2, 2)
	sys.AddVariable("u", 1, nil)
	sys.AddAuxVariable("a", 1, nil)
	sys.AddAuxVariable("c", 0, nil)
	err := sys.AddAuxKernel("scale_aux", "a_from_u", &inp.Params{
		Var: "a", Coupled: []string{"u"}, Prms: []*inp.Prm{{N: "factor", V: 2}},
	})
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	err = sys.AddAuxKernel("cell_average_aux", "c_from_u", &inp.Params{Var: "c", Coupled: []string{"u"}})
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if err = sys.SizeEverything(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}

	for vid, v := range sys.GetMesh().Verts {
		sys.Sol[sys.EqNum(0, vid)] = v.C[0]
	}
	if err = sys.UpdateAuxVars(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}

	// nodal field: a = 2x at every vertex
	for vid, v := range sys.GetMesh().Verts {
		chk.Float64(tst, io.Sf("a%d", vid), 1e-14, sys.AuxNod[0][vid], 2*v.C[0])
	}

	// elemental field: cell average of u = x
	chk.Float64(tst, "c cell0", 1e-14, sys.AuxElem[1][0], 0.25)
	chk.Float64(tst, "c cell1", 1e-14, sys.AuxElem[1][1], 0.75)
	chk.Float64(tst, "c cell2", 1e-14, sys.AuxElem[1][2], 0.25)
}

func TestAux02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("aux02. boundary-restricted override")

	sys := gridSys(1, 2, 2)
	sys.AddVariable("u", 1, nil)
	sys.AddAuxVariable("a", 1, nil)
	err := sys.AddAuxKernel("constant_aux", "a_bulk", &inp.Params{Var: "a", Prms: []*inp.Prm{{N: "value", V: 5}}})
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	err = sys.AddAuxBC("constant_aux", "a_left", &inp.Params{
		Var: "a", Bnds: []int{4}, Prms: []*inp.Prm{{N: "value", V: 9}},
	})
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if err = sys.SizeEverything(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if err = sys.UpdateAuxVars(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}

	// left vertices carry the boundary value, the rest the bulk value
	chk.Float64(tst, "a0", 1e-15, sys.AuxNod[0][0], 9)
	chk.Float64(tst, "a3", 1e-15, sys.AuxNod[0][3], 9)
	chk.Float64(tst, "a6", 1e-15, sys.AuxNod[0][6], 9)
	chk.Float64(tst, "a1", 1e-15, sys.AuxNod[0][1], 5)
	chk.Float64(tst, "a4", 1e-15, sys.AuxNod[0][4], 5)
}

func TestAux03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("aux03. postprocessor reductions")

	sys := gridSys(2, 2, 2)
	sys.AddVariable("u", 1, nil)
	if err := sys.AddPostprocessor("element_integral", "total", &inp.Params{Var: "u"}); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if err := sys.AddPostprocessor("nodal_max", "umax", &inp.Params{Var: "u"}); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if err := sys.SizeEverything(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}

	for vid, v := range sys.GetMesh().Verts {
		sys.Sol[sys.EqNum(0, vid)] = v.C[0]
	}

	// not computed yet
	if _, err := sys.PostprocessorValue("total"); err == nil {
		tst.Errorf("value before computation must fail\n")
	}

	if err := sys.ComputePostprocessors(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	total, err := sys.PostprocessorValue("total")
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Float64(tst, "integral of x", 1e-14, total, 0.5)
	umax, err := sys.PostprocessorValue("umax")
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Float64(tst, "max of x", 1e-15, umax, 1.0)

	if _, err := sys.PostprocessorValue("nope"); err == nil {
		tst.Errorf("unknown postprocessor must fail\n")
	}
}
