// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for simulations
type Data struct {
	Desc    string `json:"desc"`    // description of simulation
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/moose
	Steady  bool   `json:"steady"`  // steady simulation
	Eigen   bool   `json:"eigen"`   // eigenvalue analysis
	Nthread int    `json:"nthread"` // number of worker threads; 0 => 1
	ListBcs bool   `json:"listbcs"` // list boundary conditions
}

// SolverData holds nonlinear solver data
type SolverData struct {
	Type   string  `json:"type"`   // executioner type: "steady", "transient"
	LinSol string  `json:"linsol"` // linear solver name; e.g. "dense"
	NmaxIt int     `json:"nmaxit"` // number of max iterations
	FbTol  float64 `json:"fbtol"`  // tolerance for convergence on fb
	FbMin  float64 `json:"fbmin"`  // minimum value of fb
	Itol   float64 `json:"itol"`   // iterations tolerance on solution increment
}

// TimeData holds transient control data
type TimeData struct {
	Scheme string  `json:"scheme"` // time stepping scheme: "implicit-euler", "bdf2", "crank-nicolson"
	Tf     float64 `json:"tf"`     // final time
	Dt     float64 `json:"dt"`     // time step size
	DtOut  float64 `json:"dtout"`  // time increment for output; 0 => every step
}

// AdaptData holds mesh adaptivity controls
type AdaptData struct {
	On         bool    `json:"on"`         // enable adaptivity
	Estimator  string  `json:"estimator"`  // error estimator name; e.g. "gradient-jump"
	MaxSteps   int     `json:"maxsteps"`   // maximum refinement steps per solve
	IniSteps   int     `json:"inisteps"`   // refinement steps using initial conditions
	RefFrac    float64 `json:"reffrac"`    // "refine fraction"
	CoarseFrac float64 `json:"coarsefrac"` // "coarsen fraction"
	MaxHlevel  int     `json:"maxhlevel"`  // "max h-level"
}

// VarData holds the declaration of one field (solution or auxiliary variable)
type VarData struct {
	Name   string `json:"name"`   // variable name; e.g. "u"
	Order  int    `json:"order"`  // interpolation order; 1 => linear Lagrange
	Blocks []int  `json:"blocks"` // subdomain restriction; empty => everywhere
}

// ConData holds the declaration of one contribution of any kind
type ConData struct {
	Type string  `json:"type"` // type name registered in the factory; e.g. "diffusion"
	Name string  `json:"name"` // unique instance name; e.g. "diff_u"
	Prms *Params `json:"prms"` // parameter bundle
}

// Simulation holds all simulation data read from a .sim file
type Simulation struct {

	// input
	Data     Data       `json:"data"`     // global data
	Solver   SolverData `json:"solver"`   // nonlinear solver data
	Time     TimeData   `json:"time"`     // transient control data
	Adapt    AdaptData  `json:"adapt"`    // adaptivity controls
	MshFile  string     `json:"mesh"`     // mesh filename (relative to .sim file)
	Vars     []*VarData `json:"vars"`     // solution variables
	AuxVars  []*VarData `json:"auxvars"`  // auxiliary variables
	Kernels  []*ConData `json:"kernels"`  // volumetric kernels
	DGs      []*ConData `json:"dgs"`      // interface (dg) kernels
	Bcs      []*ConData `json:"bcs"`      // boundary conditions
	Auxs     []*ConData `json:"auxs"`     // auxiliary kernels
	AuxBcs   []*ConData `json:"auxbcs"`   // auxiliary kernels restricted to boundaries
	Mats     []*ConData `json:"mats"`     // materials
	Stabs    []*ConData `json:"stabs"`    // stabilizers
	Ics      []*ConData `json:"ics"`      // initial conditions
	Pps      []*ConData `json:"pps"`      // postprocessors
	Fcns     []*ConData `json:"fcns"`     // functions
	Dampers  []*ConData `json:"dampers"`  // dampers
	Displace []string   `json:"displace"` // displacement variable names; non-empty => displaced mesh

	// derived
	FnameDir string // directory where .sim file is located
	FnameKey string // simulation key; i.e. .sim filename without extension
}

// ReadSim reads simulation data from a .sim JSON file
func ReadSim(simfilepath string) (o *Simulation, err error) {

	// read file; io.ReadFile panics on failure, so the stdlib variant is used
	// to honour the error return
	b, err := os.ReadFile(simfilepath)
	if err != nil {
		err = chk.Err("cannot read simulation file %q:\n%v", simfilepath, err)
		return
	}

	// decode
	o = new(Simulation)
	err = json.Unmarshal(b, o)
	if err != nil {
		err = chk.Err("cannot unmarshal simulation file %q:\n%v", simfilepath, err)
		return
	}

	// derived data
	o.FnameDir = filepath.Dir(simfilepath)
	o.FnameKey = io.FnKey(simfilepath)
	o.SetDefault()
	return
}

// SetDefault sets default values for unset entries
func (o *Simulation) SetDefault() {
	if o.Data.Nthread < 1 {
		o.Data.Nthread = 1
	}
	if o.Data.DirOut == "" {
		o.Data.DirOut = "/tmp/moose"
	}
	if o.Solver.Type == "" {
		o.Solver.Type = "steady"
	}
	if o.Solver.LinSol == "" {
		o.Solver.LinSol = "dense"
	}
	if o.Solver.NmaxIt < 1 {
		o.Solver.NmaxIt = 20
	}
	if o.Solver.FbTol <= 0 {
		o.Solver.FbTol = 1e-8
	}
	if o.Solver.FbMin <= 0 {
		o.Solver.FbMin = 1e-14
	}
	if o.Solver.Itol <= 0 {
		o.Solver.Itol = 1e-8
	}
	if o.Time.Scheme == "" {
		o.Time.Scheme = "implicit-euler"
	}
	if o.Adapt.On {
		if o.Adapt.Estimator == "" {
			o.Adapt.Estimator = "gradient-jump"
		}
		if o.Adapt.RefFrac <= 0 {
			o.Adapt.RefFrac = 0.3
		}
		if o.Adapt.CoarseFrac <= 0 {
			o.Adapt.CoarseFrac = 0.05
		}
		if o.Adapt.MaxHlevel < 1 {
			o.Adapt.MaxHlevel = 3
		}
	}
}
