// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/mieuicedu/moose/inp"
)

func adaptCtl() *inp.AdaptData {
	return &inp.AdaptData{
		On:         true,
		Estimator:  "gradient-jump",
		MaxSteps:   1,
		RefFrac:    0.3,
		CoarseFrac: 0.05,
		MaxHlevel:  2,
	}
}

func TestAdapt01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("adapt01. uniform field leaves the mesh alone")

	sys := gridSys(1, 2, 2)
	sys.AddVariable("u", 1, nil)
	if err := sys.SizeEverything(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if err := sys.InitAdaptivity(adaptCtl()); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	for i := range sys.Sol {
		sys.Sol[i] = 3
	}
	changed, err := sys.AdaptMesh()
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if changed {
		tst.Errorf("uniform field must not change the mesh\n")
	}
	chk.IntAssert(len(sys.GetMesh().Cells), 4)

	// named controls are settable; unknown names are ignored
	sys.SetAdaptivityParam("refine fraction", 0.5)
	chk.Float64(tst, "reffrac", 1e-15, sys.Adapt.RefFrac, 0.5)
	sys.SetAdaptivityParam("max h-level", 4)
	chk.IntAssert(sys.Adapt.MaxHlevel, 4)
	sys.SetAdaptivityParam("bogus", 1)
	chk.Float64(tst, "reffrac unchanged", 1e-15, sys.Adapt.RefFrac, 0.5)

	// adaptivity off is a no-op
	off := gridSys(1, 1, 1)
	off.AddVariable("u", 1, nil)
	if err := off.SizeEverything(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	changed, err = off.AdaptMesh()
	if err != nil || changed {
		tst.Errorf("adaptivity off must be a no-op. changed=%v err=%v\n", changed, err)
	}

	// an unknown estimator is a setup error
	if err := sys.SetErrorEstimator("nope"); err == nil {
		tst.Errorf("unknown estimator must fail\n")
	}
}

func TestAdapt02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("adapt02. corner feature refines and projects")

	sys := gridSys(1, 2, 2)
	sys.AddVariable("u", 1, nil)
	if err := sys.SizeEverything(); err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if err := sys.InitAdaptivity(adaptCtl()); err != nil {
		tst.Errorf("%v\n", err)
		return
	}

	// spike at the origin: the three cells near it have gradient jumps
	sys.Sol[sys.EqNum(0, 0)] = 1

	changed, err := sys.AdaptMesh()
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if !changed {
		tst.Errorf("spike must trigger refinement\n")
	}

	// cells 0, 1 and 2 split into 4 children each; cell 3 stays
	m := sys.GetMesh()
	chk.IntAssert(len(m.Cells), 13)
	chk.IntAssert(len(m.Verts), 22)
	chk.IntAssert(sys.Neq, 22)
	chk.IntAssert(m.Cells[0].Level, 1)
	chk.IntAssert(m.Cells[12].Level, 0)

	// surviving vertices keep their values
	chk.Float64(tst, "spike kept", 1e-15, sys.Sol[sys.EqNum(0, 0)], 1.0)
	chk.Float64(tst, "zero kept", 1e-15, sys.Sol[sys.EqNum(0, 4)], 0.0)

	// the first new vertex splits the bottom edge of cell 0: linear interp
	chk.Float64(tst, "mid-edge value", 1e-15, sys.Sol[sys.EqNum(0, 9)], 0.5)

	// the history restarts from the projected state
	chk.Float64(tst, "old restarted", 1e-15, sys.SolOld[sys.EqNum(0, 0)], 1.0)
	chk.Float64(tst, "udot restarted", 1e-15, sys.SolDot[sys.EqNum(0, 0)], 0.0)
}
