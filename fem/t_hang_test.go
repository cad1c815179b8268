// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/mieuicedu/moose/inp"
	"github.com/mieuicedu/moose/msh"
)

// hangGridSys builds a 2x1 grid with only the left cell refined, leaving one
// hanging vertex on the shared edge
func hangGridSys(nthreads int) (*System, error) {
	m := msh.GenGrid2D(2, 1, 1, 1)
	if _, err := m.RefineCells([]bool{true, false}); err != nil {
		return nil, err
	}
	sys := NewSystem(nthreads)
	sys.SetMesh(m)
	sys.AddVariable("u", 1, nil)
	sys.AddKernel("diffusion", "diff", &inp.Params{Var: "u"})
	sys.AddBC("dirichlet", "left", &inp.Params{Var: "u", Bnds: []int{4}, Prms: []*inp.Prm{{N: "value", V: 0}}})
	sys.AddBC("dirichlet", "right", &inp.Params{Var: "u", Bnds: []int{2}, Prms: []*inp.Prm{{N: "value", V: 1}}})
	if err := sys.SizeEverything(); err != nil {
		return nil, err
	}
	return sys, nil
}

func TestHang01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("hang01. constraints on a non-uniformly refined mesh")

	sys, err := hangGridSys(1)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.IntAssert(len(sys.GetMesh().Hangs), 1)
	chk.IntAssert(sys.Neq, 11)

	// the exact linear profile satisfies the constrained system
	for vid, v := range sys.GetMesh().Verts {
		sys.Sol[sys.EqNum(0, vid)] = v.C[0]
	}
	R := la.NewVector(sys.Neq)
	if err = sys.ComputeResidual(R); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	for i := range R {
		chk.Float64(tst, io.Sf("R%d", i), 1e-13, R[i], 0)
	}

	// the hanging row carries the constraint, not a free equation
	K := new(la.Triplet)
	if err = sys.ComputeJacobian(K); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	D := K.ToDense()
	eqH := sys.EqNum(0, 7)
	chk.Float64(tst, "KHH", 1e-15, D.Get(eqH, eqH), 1.0)
	chk.Float64(tst, "KHA", 1e-15, D.Get(eqH, sys.EqNum(0, 4)), -0.5)
	chk.Float64(tst, "KHB", 1e-15, D.Get(eqH, sys.EqNum(0, 1)), -0.5)
	chk.Float64(tst, "KH0", 1e-15, D.Get(eqH, sys.EqNum(0, 0)), 0.0)
}

func TestHang02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("hang02. steady solve across a refinement interface")

	sys, err := hangGridSys(2)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	cfg := &inp.SolverData{NmaxIt: 10, LinSol: "dense", FbTol: 1e-10, FbMin: 1e-13, Itol: 1e-12}
	ls, err := NewLinSolver("dense")
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if _, err = sys.NonlinearSolve(cfg, ls); err != nil {
		tst.Errorf("solve failed:\n%v\n", err)
		return
	}

	// the solution stays continuous across the interface: the hanging vertex
	// lands on the linear profile along with everything else
	for vid, v := range sys.GetMesh().Verts {
		chk.Float64(tst, io.Sf("u%d", vid), 1e-10, sys.Sol[sys.EqNum(0, vid)], v.C[0])
	}
}
