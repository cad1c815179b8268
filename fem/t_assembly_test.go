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

func TestAssembly01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assembly01. stiffness of one unit cell")

	sys := gridSys(1, 1, 1)
	sys.AddVariable("u", 1, nil)
	if err := sys.AddKernel("diffusion", "diff", &inp.Params{Var: "u"}); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if err := sys.SizeEverything(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}

	K := new(la.Triplet)
	if err := sys.ComputeJacobian(K); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	D := K.ToDense()

	// laplacian of one bilinear cell on the unit square
	chk.Float64(tst, "K00", 1e-14, D.Get(0, 0), 2.0/3.0)
	chk.Float64(tst, "K01", 1e-14, D.Get(0, 1), -1.0/6.0)
	chk.Float64(tst, "K02", 1e-14, D.Get(0, 2), -1.0/6.0)
	chk.Float64(tst, "K03", 1e-14, D.Get(0, 3), -1.0/3.0)
	chk.Float64(tst, "K12", 1e-14, D.Get(1, 2), -1.0/3.0)
	chk.Float64(tst, "symmetry", 1e-14, D.Get(1, 0), D.Get(0, 1))
}

func TestAssembly02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assembly02. residual vanishes at the solution")

	sys := gridSys(2, 2, 2)
	sys.AddVariable("u", 1, nil)
	sys.AddKernel("diffusion", "diff", &inp.Params{Var: "u"})
	err := sys.AddBC("dirichlet", "left", &inp.Params{Var: "u", Bnds: []int{4}, Prms: []*inp.Prm{{N: "value", V: 0}}})
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	err = sys.AddBC("dirichlet", "right", &inp.Params{Var: "u", Bnds: []int{2}, Prms: []*inp.Prm{{N: "value", V: 1}}})
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if err = sys.SizeEverything(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}

	// u = x solves the problem exactly
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
}

func TestAssembly03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assembly03. residual copy before constraints")

	sys := gridSys(1, 2, 2)
	sys.AddVariable("u", 1, nil)
	sys.AddKernel("diffusion", "diff", &inp.Params{Var: "u"})
	sys.AddBC("dirichlet", "left", &inp.Params{Var: "u", Bnds: []int{4}, Prms: []*inp.Prm{{N: "value", V: 0}}})
	sys.AddBC("dirichlet", "right", &inp.Params{Var: "u", Bnds: []int{2}, Prms: []*inp.Prm{{N: "value", V: 1}}})
	if err := sys.SizeEverything(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	sys.NeedResidualCopy = true

	for vid, v := range sys.GetMesh().Verts {
		sys.Sol[sys.EqNum(0, vid)] = v.C[0]
	}
	R := la.NewVector(sys.Neq)
	if err := sys.ComputeResidual(R); err != nil {
		tst.Errorf("%v\n", err)
		return
	}

	// constrained row is replaced in R but survives in the copy
	eq0 := sys.EqNum(0, 0)
	chk.Float64(tst, "R at corner", 1e-14, R[eq0], 0)
	chk.Float64(tst, "copy at corner", 1e-14, sys.ResCopy[eq0], -0.25)
}

func TestAssembly04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assembly04. steady solve of the linear profile")

	sys := gridSys(2, 2, 2)
	sys.AddVariable("u", 1, nil)
	sys.AddKernel("diffusion", "diff", &inp.Params{Var: "u"})
	sys.AddBC("dirichlet", "left", &inp.Params{Var: "u", Bnds: []int{4}, Prms: []*inp.Prm{{N: "value", V: 0}}})
	sys.AddBC("dirichlet", "right", &inp.Params{Var: "u", Bnds: []int{2}, Prms: []*inp.Prm{{N: "value", V: 1}}})
	if err := sys.SizeEverything(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}

	cfg := &inp.SolverData{NmaxIt: 10, LinSol: "dense", FbTol: 1e-10, FbMin: 1e-13, Itol: 1e-12}
	ls, err := NewLinSolver("dense")
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	iters, err := sys.NonlinearSolve(cfg, ls)
	if err != nil {
		tst.Errorf("solve failed:\n%v\n", err)
		return
	}

	// the problem is linear: one newton step lands on u = x
	chk.IntAssert(iters, 1)
	for vid, v := range sys.GetMesh().Verts {
		chk.Float64(tst, io.Sf("u%d", vid), 1e-10, sys.Sol[sys.EqNum(0, vid)], v.C[0])
	}
}

func TestAssembly05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assembly05. jacobian blocks")

	sys := gridSys(1, 1, 1)
	sys.AddVariable("u", 1, nil)
	sys.AddVariable("v", 1, nil)
	sys.AddKernel("diffusion", "diff_u", &inp.Params{Var: "u"})
	sys.AddKernel("diffusion", "diff_v", &inp.Params{Var: "v"})
	if err := sys.SizeEverything(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}

	// the (u,u) block alone leaves the v rows empty
	K := new(la.Triplet)
	if err := sys.ComputeJacobianBlock(K, 0, 0); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	D := K.ToDense()
	chk.Float64(tst, "block uu", 1e-14, D.Get(0, 0), 2.0/3.0)
	chk.Float64(tst, "block vv empty", 1e-15, D.Get(4, 4), 0.0)

	// the full jacobian carries both diagonal blocks
	if err := sys.ComputeJacobian(K); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	D = K.ToDense()
	chk.Float64(tst, "full uu", 1e-14, D.Get(0, 0), 2.0/3.0)
	chk.Float64(tst, "full vv", 1e-14, D.Get(4, 4), 2.0/3.0)
}

func TestAssembly06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assembly06. flux boundary condition")

	sys := gridSys(1, 1, 1)
	sys.AddVariable("u", 1, nil)
	sys.AddKernel("diffusion", "diff", &inp.Params{Var: "u"})
	err := sys.AddBC("neumann", "flux", &inp.Params{Var: "u", Bnds: []int{2}, Prms: []*inp.Prm{{N: "value", V: 2}}})
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if err = sys.SizeEverything(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}

	// at u=0 only the flux on the right edge (verts 1 and 3) contributes
	R := la.NewVector(sys.Neq)
	if err = sys.ComputeResidual(R); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Float64(tst, "R0", 1e-14, R[0], 0)
	chk.Float64(tst, "R1", 1e-14, R[1], -1.0)
	chk.Float64(tst, "R2", 1e-14, R[2], 0)
	chk.Float64(tst, "R3", 1e-14, R[3], -1.0)
}

func TestAssembly07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assembly07. transient mass matrix")

	sys := gridSys(1, 1, 1)
	sys.AddVariable("u", 1, nil)
	sys.AddKernel("time_derivative", "dudt", &inp.Params{Var: "u"})
	if err := sys.SizeEverything(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	sys.ReinitDT(1.0) // backward euler with dt=1: d(udot)/du = 1

	K := new(la.Triplet)
	if err := sys.ComputeJacobian(K); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	D := K.ToDense()

	// consistent mass matrix of one bilinear cell on the unit square
	chk.Float64(tst, "M00", 1e-14, D.Get(0, 0), 1.0/9.0)
	chk.Float64(tst, "M01", 1e-14, D.Get(0, 1), 1.0/18.0)
	chk.Float64(tst, "M02", 1e-14, D.Get(0, 2), 1.0/18.0)
	chk.Float64(tst, "M03", 1e-14, D.Get(0, 3), 1.0/36.0)
}

func TestAssembly08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assembly08. interface terms vanish for a continuous field")

	sys := gridSys(1, 2, 2)
	sys.AddVariable("u", 1, nil)
	sys.AddKernel("diffusion", "diff", &inp.Params{Var: "u"})
	err := sys.AddDGKernel("dg_diffusion", "jump", &inp.Params{Var: "u", Prms: []*inp.Prm{{N: "penalty", V: 1e3}}})
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	sys.AddBC("dirichlet", "left", &inp.Params{Var: "u", Bnds: []int{4}, Prms: []*inp.Prm{{N: "value", V: 0}}})
	sys.AddBC("dirichlet", "right", &inp.Params{Var: "u", Bnds: []int{2}, Prms: []*inp.Prm{{N: "value", V: 1}}})
	if err = sys.SizeEverything(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}

	// the solution jump across interior faces is zero, so the penalty terms
	// must not disturb the residual of the exact solution
	for vid, v := range sys.GetMesh().Verts {
		sys.Sol[sys.EqNum(0, vid)] = v.C[0]
	}
	R := la.NewVector(sys.Neq)
	if err = sys.ComputeResidual(R); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	for i := range R {
		chk.Float64(tst, io.Sf("R%d", i), 1e-10, R[i], 0)
	}
}

func TestAssembly09(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assembly09. stabilizer jacobian consistency")

	sys := gridSys(1, 2, 2)
	sys.AddVariable("u", 1, nil)
	sys.AddKernel("diffusion", "diff", &inp.Params{Var: "u"})
	err := sys.AddStabilizer("artificial_diffusion", "stab", &inp.Params{Var: "u", Prms: []*inp.Prm{{N: "eps", V: 0.5}}})
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	sys.AddBC("dirichlet", "left", &inp.Params{Var: "u", Bnds: []int{4}, Prms: []*inp.Prm{{N: "value", V: 0}}})
	sys.AddBC("dirichlet", "right", &inp.Params{Var: "u", Bnds: []int{2}, Prms: []*inp.Prm{{N: "value", V: 1}}})
	if err = sys.SizeEverything(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}

	// the stabilizer scales the laplacian by (1+eps)
	K := new(la.Triplet)
	if err = sys.ComputeJacobian(K); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	D := K.ToDense()
	chk.Float64(tst, "K11", 1e-14, D.Get(1, 1), 2.0)

	// a jacobian consistent with the stabilized residual converges in one
	// newton step
	cfg := &inp.SolverData{NmaxIt: 10, LinSol: "dense", FbTol: 1e-10, FbMin: 1e-13, Itol: 1e-12}
	ls, err := NewLinSolver("dense")
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	iters, err := sys.NonlinearSolve(cfg, ls)
	if err != nil {
		tst.Errorf("solve failed:\n%v\n", err)
		return
	}
	chk.IntAssert(iters, 1)
	for vid, v := range sys.GetMesh().Verts {
		chk.Float64(tst, io.Sf("u%d", vid), 1e-10, sys.Sol[sys.EqNum(0, vid)], v.C[0])
	}
}

func TestAssembly10(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assembly10. registration order on disjoint subdomains")

	build := func(perm bool) (*System, error) {
		m := msh.GenGrid2D(2, 2, 1, 1)
		m.Cells[2].Sub = 1
		m.Cells[3].Sub = 1
		if err := m.CalcDerived(); err != nil {
			return nil, err
		}
		sys := NewSystem(2)
		sys.SetMesh(m)
		sys.AddVariable("u", 1, nil)
		lower := &inp.Params{Var: "u", Blocks: []int{0}, Prms: []*inp.Prm{{N: "value", V: 2}}}
		upper := &inp.Params{Var: "u", Blocks: []int{1}, Prms: []*inp.Prm{{N: "value", V: 3}}}
		var err error
		if perm {
			err = sys.AddKernel("body_force", "qu", upper)
			if err == nil {
				err = sys.AddKernel("body_force", "ql", lower)
			}
			if err == nil {
				err = sys.AddKernel("diffusion", "diff", &inp.Params{Var: "u"})
			}
		} else {
			err = sys.AddKernel("diffusion", "diff", &inp.Params{Var: "u"})
			if err == nil {
				err = sys.AddKernel("body_force", "ql", lower)
			}
			if err == nil {
				err = sys.AddKernel("body_force", "qu", upper)
			}
		}
		if err != nil {
			return nil, err
		}
		if err = sys.SizeEverything(); err != nil {
			return nil, err
		}
		for vid, v := range sys.GetMesh().Verts {
			sys.Sol[sys.EqNum(0, vid)] = v.C[0] * v.C[1]
		}
		return sys, nil
	}

	sysA, err := build(false)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	sysB, err := build(true)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	Ra := la.NewVector(sysA.Neq)
	Rb := la.NewVector(sysB.Neq)
	if err = sysA.ComputeResidual(Ra); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if err = sysB.ComputeResidual(Rb); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Array(tst, "residuals match", 1e-14, Ra, Rb)

	// the sources really contribute
	nonzero := false
	for i := range Ra {
		if Ra[i] != 0 {
			nonzero = true
		}
	}
	if !nonzero {
		tst.Errorf("residual must not vanish identically\n")
	}
}
