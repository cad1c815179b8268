// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/mieuicedu/moose/inp"
	"github.com/mieuicedu/moose/msh"
)

// gridSys builds a system over a structured grid on the unit square
func gridSys(nthreads, nx, ny int) *System {
	sys := NewSystem(nthreads)
	sys.SetMesh(msh.GenGrid2D(nx, ny, 1, 1))
	return sys
}

func TestSystem01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system01. sizing and equation numbering")

	sys := gridSys(2, 2, 2)
	if _, err := sys.AddVariable("u", 1, nil); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if err := sys.SizeEverything(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.IntAssert(sys.Neq, 9)
	chk.IntAssert(sys.EqNum(0, 4), 4)
	if sys.IsMeshChanged() {
		tst.Errorf("sizing must clear the mesh-changed flag\n")
	}

	// adding a variable preserves existing equation numbers and values
	sys.Sol[3] = 1.5
	if _, err := sys.AddVariable("v", 1, nil); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if err := sys.SizeEverything(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.IntAssert(sys.Neq, 18)
	chk.IntAssert(sys.EqNum(0, 3), 3)
	chk.IntAssert(sys.EqNum(1, 0), 9)
	chk.Float64(tst, "preserved value", 1e-15, sys.Sol[3], 1.5)
}

func TestSystem02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system02. displaced mesh")

	sys := gridSys(1, 2, 2)
	sys.AddVariable("ux", 1, nil)
	sys.AddVariable("uy", 1, nil)
	if err := sys.SizeEverything(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if sys.HasDisplacedMesh() {
		tst.Errorf("displaced mesh must not exist before InitDisplacedMesh\n")
	}
	if err := sys.InitDisplacedMesh([]string{"ux"}); err == nil {
		tst.Errorf("one displacement variable per dimension is required\n")
	}
	if err := sys.InitDisplacedMesh([]string{"ux", "uy"}); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if !sys.HasDisplacedMesh() {
		tst.Errorf("displaced mesh must exist\n")
	}

	// constant x-displacement shifts every vertex by 0.1
	for vid := range sys.GetMesh().Verts {
		sys.Sol[sys.EqNum(0, vid)] = 0.1
	}
	sys.UpdateDisplacedMesh()
	dm := sys.GetDisplacedMesh()
	chk.Float64(tst, "disp x0", 1e-15, dm.Verts[0].C[0], 0.1)
	chk.Float64(tst, "disp y0", 1e-15, dm.Verts[0].C[1], 0.0)
	chk.Float64(tst, "disp x8", 1e-15, dm.Verts[8].C[0], 1.1)

	// the reference mesh is untouched
	chk.Float64(tst, "ref x0", 1e-15, sys.GetMesh().Verts[0].C[0], 0.0)
}

func TestSystem03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system03. serialization and function lookup")

	sys := gridSys(1, 1, 1)
	sys.AddVariable("u", 1, nil)
	if err := sys.SizeEverything(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	for i := range sys.Sol {
		sys.Sol[i] = 0.5 * float64(i)
	}
	if err := sys.SerializeSolution(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Array(tst, "sersol", 1e-15, sys.SerSol, sys.Sol)

	// registered functions are found by instance name
	err := sys.AddFunction("constant", "two", &inp.Params{Prms: []*inp.Prm{{N: "value", V: 2}}})
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	f, err := sys.Function("two")
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Float64(tst, "f(t,x)", 1e-15, f.F(0, nil), 2.0)
	if _, err := sys.Function("nope"); err == nil {
		tst.Errorf("unknown function must fail\n")
	}
}

func TestSystem04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system04. validity checks and solution projection")

	// the mesh accessors refuse an uninitialized system
	sys := NewSystem(1)
	if err := sys.CheckValid(); err == nil {
		tst.Errorf("fresh system must be invalid\n")
	}
	func() {
		defer func() {
			if recover() == nil {
				tst.Errorf("GetMesh must panic on an uninitialized system\n")
			}
		}()
		sys.GetMesh()
	}()
	if m := sys.GetMesh(true); m != nil {
		tst.Errorf("skipping the check must expose the nil mesh\n")
	}
	if m := sys.GetDisplacedMesh(true); m != nil {
		tst.Errorf("skipping the check must expose the nil displaced mesh\n")
	}

	sys = gridSys(1, 2, 2)
	sys.AddVariable("u", 1, nil)
	if err := sys.SizeEverything(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if err := sys.CheckValid(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}

	// nodal projection from a coordinate function
	err := sys.ProjectSolution("u", func(x []float64) float64 { return 3*x[0] + x[1] })
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	for vid, v := range sys.GetMesh().Verts {
		chk.Float64(tst, io.Sf("u%d", vid), 1e-15, sys.Sol[sys.EqNum(0, vid)], 3*v.C[0]+v.C[1])
	}
	if err := sys.ProjectSolution("nope", func(x []float64) float64 { return 0 }); err == nil {
		tst.Errorf("projection of an unknown variable must fail\n")
	}

	// materials refresh outside an assembly traversal
	err = sys.AddMaterial("constant", "mat", &inp.Params{Prms: []*inp.Prm{{N: "diffusivity", V: 2.5}}})
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if err = sys.UpdateMaterials(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Float64(tst, "diffusivity", 1e-15, sys.mdata[0].Value("diffusivity", 0, 0), 2.5)
}

func TestSystem05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("system05. re-sizing without mesh mutation")

	sys := gridSys(2, 2, 2)
	sys.AddVariable("u", 1, nil)
	if err := sys.SizeEverything(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	neq := sys.Neq
	elems := make([][]int, sys.Nthreads)
	nodes := make([][]int, sys.Nthreads)
	for tid := range elems {
		elems[tid] = sys.ActiveElemRange(tid)
		nodes[tid] = sys.ActiveNodeRange(tid)
	}
	sys.Sol[5] = 2.5

	// flagging without mutating is idempotent: sizes, ranges and values are
	// all reproduced
	sys.MeshChanged()
	sys.MeshChanged()
	if !sys.IsMeshChanged() {
		tst.Errorf("mesh must be flagged as changed\n")
	}
	if err := sys.SizeEverything(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.IntAssert(sys.Neq, neq)
	for tid := 0; tid < sys.Nthreads; tid++ {
		chk.Ints(tst, io.Sf("elems%d", tid), sys.ActiveElemRange(tid), elems[tid])
		chk.Ints(tst, io.Sf("nodes%d", tid), sys.ActiveNodeRange(tid), nodes[tid])
	}
	chk.Float64(tst, "preserved value", 1e-15, sys.Sol[5], 2.5)
	if sys.IsMeshChanged() {
		tst.Errorf("sizing must clear the mesh-changed flag\n")
	}
}
