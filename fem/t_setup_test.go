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

func TestSetup01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("setup01. build and run from input files")

	sim, err := inp.ReadSim("testdata/diffu.sim")
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	sys, err := BuildSystem(sim)
	if err != nil {
		tst.Errorf("cannot build system:\n%v\n", err)
		return
	}
	chk.IntAssert(sys.Nthreads, 2)
	chk.IntAssert(sys.Neq, 9)

	// initial condition seeds the solution
	chk.Float64(tst, "ic", 1e-15, sys.Sol[sys.EqNum(0, 4)], 0.5)

	exec, err := NewExecutioner(sim.Solver.Type)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if err = exec.Run(sys); err != nil {
		tst.Errorf("run failed:\n%v\n", err)
		return
	}

	// solution is the linear profile between the prescribed side values
	for vid, v := range sys.GetMesh().Verts {
		chk.Float64(tst, io.Sf("u%d", vid), 1e-10, sys.Sol[sys.EqNum(0, vid)], v.C[0])
	}
	total, err := sys.PostprocessorValue("total_u")
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	chk.Float64(tst, "integral", 1e-10, total, 0.5)
}

func TestSetup02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("setup02. input errors surface at build time")

	sim := &inp.Simulation{}
	sim.SetDefault()
	if _, err := BuildSystem(sim); err == nil {
		tst.Errorf("missing mesh file must fail\n")
	}

	sim, err := inp.ReadSim("testdata/diffu.sim")
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	sim.Kernels[0].Prms.Var = "nope"
	if _, err := BuildSystem(sim); err == nil {
		tst.Errorf("unresolvable kernel variable must fail\n")
	}
}
