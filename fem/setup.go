// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/mieuicedu/moose/inp"
)

// conName returns the instance name of a contribution, generating one from
// its type when the input left it blank
func conName(c *inp.ConData, idx int) string {
	if c.Name != "" {
		return c.Name
	}
	return io.Sf("%s%d", c.Type, idx)
}

// BuildSystem assembles a complete System from simulation input: mesh,
// variables, every contribution list, adaptivity controls and initial
// conditions. Functions are registered before the contributions that may
// reference them.
func BuildSystem(sim *inp.Simulation) (sys *System, err error) {
	sys = NewSystem(sim.Data.Nthread)
	sys.Sim = sim

	// mesh
	if sim.MshFile == "" {
		return nil, chk.Err("simulation input has no mesh file")
	}
	if err = sys.InitMesh(filepath.Join(sim.FnameDir, sim.MshFile)); err != nil {
		return nil, err
	}

	// time integration
	if err = sys.Time.SetScheme(sim.Time.Scheme); err != nil {
		return nil, err
	}
	if sim.Data.Eigen {
		sys.ReinitEigen()
	}

	// fields
	for _, v := range sim.Vars {
		order := v.Order
		if order == 0 {
			order = 1
		}
		if _, err = sys.AddVariable(v.Name, order, v.Blocks); err != nil {
			return nil, err
		}
	}
	for _, v := range sim.AuxVars {
		if _, err = sys.AddAuxVariable(v.Name, v.Order, v.Blocks); err != nil {
			return nil, err
		}
	}
	if len(sim.Displace) > 0 {
		if err = sys.InitDisplacedMesh(sim.Displace); err != nil {
			return nil, err
		}
	}

	// contributions; functions first
	for i, c := range sim.Fcns {
		if err = sys.AddFunction(c.Type, conName(c, i), c.Prms); err != nil {
			return nil, err
		}
	}
	for i, c := range sim.Mats {
		if err = sys.AddMaterial(c.Type, conName(c, i), c.Prms); err != nil {
			return nil, err
		}
	}
	for i, c := range sim.Kernels {
		if err = sys.AddKernel(c.Type, conName(c, i), c.Prms); err != nil {
			return nil, err
		}
	}
	for i, c := range sim.DGs {
		if err = sys.AddDGKernel(c.Type, conName(c, i), c.Prms); err != nil {
			return nil, err
		}
	}
	for i, c := range sim.Bcs {
		if err = sys.AddBC(c.Type, conName(c, i), c.Prms); err != nil {
			return nil, err
		}
	}
	for i, c := range sim.Auxs {
		if err = sys.AddAuxKernel(c.Type, conName(c, i), c.Prms); err != nil {
			return nil, err
		}
	}
	for i, c := range sim.AuxBcs {
		if err = sys.AddAuxBC(c.Type, conName(c, i), c.Prms); err != nil {
			return nil, err
		}
	}
	for i, c := range sim.Stabs {
		if err = sys.AddStabilizer(c.Type, conName(c, i), c.Prms); err != nil {
			return nil, err
		}
	}
	for i, c := range sim.Ics {
		if err = sys.AddInitialCondition(c.Type, conName(c, i), c.Prms); err != nil {
			return nil, err
		}
	}
	for i, c := range sim.Pps {
		if err = sys.AddPostprocessor(c.Type, conName(c, i), c.Prms); err != nil {
			return nil, err
		}
	}
	for i, c := range sim.Dampers {
		if err = sys.AddDamper(c.Type, conName(c, i), c.Prms); err != nil {
			return nil, err
		}
	}

	if sim.Data.ListBcs {
		io.Pf("boundary conditions:\n")
		for _, name := range sys.bcs[0].Names() {
			io.Pf("  %s\n", name)
		}
	}

	// sizing, adaptivity and initial state
	if err = sys.SizeEverything(); err != nil {
		return nil, err
	}
	if err = sys.InitAdaptivity(&sim.Adapt); err != nil {
		return nil, err
	}
	if err = sys.ApplyInitialConditions(); err != nil {
		return nil, err
	}
	return
}

// RunSimulation reads a .sim file, builds the system and runs its
// executioner to completion
func RunSimulation(simfilepath string, verbose bool) (err error) {
	sim, err := inp.ReadSim(simfilepath)
	if err != nil {
		return
	}
	if verbose {
		io.Pf("%s\n", sim.Data.Desc)
	}
	sys, err := BuildSystem(sim)
	if err != nil {
		return
	}
	exec, err := NewExecutioner(sim.Solver.Type)
	if err != nil {
		return
	}
	return exec.Run(sys)
}
