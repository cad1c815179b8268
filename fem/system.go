// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the coordination layer of one physics system: the
// mesh binding, field registry, per-thread contribution warehouses and
// scratch data, and the residual/jacobian assembly engine driving them
package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/mieuicedu/moose/inp"
	"github.com/mieuicedu/moose/msh"
	"github.com/mieuicedu/moose/phys"
	"github.com/mieuicedu/moose/shp"
)

// System owns everything one physics problem needs: meshes, fields,
// contributions replicated per worker thread, per-thread scratch data, the
// global solution vectors and the time state. All Add* and assembly
// operations go through it.
type System struct {

	// configuration
	Nthreads int
	Comm     Comm

	// meshes
	mesh         *msh.Mesh
	dispMesh     *msh.Mesh // nil => mesh is not displaced
	displaceVars []int     // solution vars displacing the mesh, one per dimension
	meshChanged  bool

	// fields
	Fields *FieldSet

	// per-thread contribution warehouses [Nthreads]
	kernels []*phys.Warehouse[phys.Kernel]
	dgs     []*phys.Warehouse[phys.DGKernel]
	bcs     []*phys.Warehouse[phys.BC]
	auxs    []*phys.Warehouse[phys.AuxKernel]
	auxBcs  []*phys.Warehouse[phys.AuxKernel]
	mats    []*phys.Warehouse[phys.Material]
	stabs   []*phys.Warehouse[phys.Stabilizer]
	ics     []*phys.Warehouse[phys.InitialCondition]
	pps     []*phys.Warehouse[phys.Postprocessor]
	fcns    []*phys.Warehouse[phys.Function]
	dampers []*phys.Warehouse[phys.Damper]

	// restrictions per instance, needed when replaying warehouses
	ppNames []string // postprocessor instance names in insertion order

	// per-thread scratch [Nthreads]; allocated by SizeEverything
	edata   []*phys.ElementData
	fdata   []*phys.FaceData
	nfdata  []*phys.FaceData // neighbour side for dg terms
	ndata   []*phys.ElementData // neighbour element scratch for dg reinit
	adata   []*phys.AuxData
	mdata   []*phys.MaterialData
	fmdata  []*phys.MaterialData
	ddata   []*phys.DamperData
	bndData []*phys.BCNodeData
	shapes  []map[string]*shp.Shape // per-thread shape scratchpads by cell type

	// partitions [Nthreads]
	elemParts [][]int
	nodeParts [][]int

	// hanging vertex constraints; rebuilt by SizeEverything from the mesh
	hangEqs   [][3]int       // (slaved eq, master a, master b), deepest first
	hangSet   map[int][2]int // slaved eq => master eqs
	hangDepth int            // longest master chain

	// sizes; computed by SizeEverything
	Neq     int // number of implicit equations
	nverts  int
	ncells  int
	maxNv   int // max vertices per cell
	maxNqp  int // max integration points per cell
	maxNfqp int // max integration points per face
	sized   bool

	// solution storage
	Sol       la.Vector // current solution
	SolOld    la.Vector // solution at t-dt
	SolOlder  la.Vector // solution at t-dt-dtOld
	SolDot    la.Vector // time derivative
	SolDotOld la.Vector // time derivative at t-dt
	SerSol    la.Vector // serialized (gathered) solution
	ResCopy   la.Vector // residual copied before essential bcs

	// auxiliary storage
	AuxNod  [][]float64 // [naux][nverts] nodal auxiliary fields
	AuxElem [][]float64 // [naux][ncells] elemental auxiliary fields

	// flags
	NeedResidualCopy      bool // keep a copy of the residual before bcs
	NeedSerializedSol     bool // gather the full solution before assembly
	NeedPpsForResidual    bool // recompute postprocessors before assembly
	DontReinitFE          bool // skip shape/geometry recomputation (fixed meshes)
	Eigen                 bool // eigenvalue mode: time weights are zeroed

	// time state
	Time TimeState

	// adaptivity
	Adapt     AdaptState
	estimator ErrorEstimator

	// postprocessor results
	ppVals map[string]float64

	// simulation input; nil when the system is assembled programmatically
	Sim *inp.Simulation
}

// NewSystem allocates a System with per-thread warehouses
func NewSystem(nthreads int) (o *System) {
	if nthreads < 1 {
		nthreads = 1
	}
	o = new(System)
	o.Nthreads = nthreads
	o.Comm = &SerialComm{}
	o.Fields = NewFieldSet()
	o.kernels = make([]*phys.Warehouse[phys.Kernel], nthreads)
	o.dgs = make([]*phys.Warehouse[phys.DGKernel], nthreads)
	o.bcs = make([]*phys.Warehouse[phys.BC], nthreads)
	o.auxs = make([]*phys.Warehouse[phys.AuxKernel], nthreads)
	o.auxBcs = make([]*phys.Warehouse[phys.AuxKernel], nthreads)
	o.mats = make([]*phys.Warehouse[phys.Material], nthreads)
	o.stabs = make([]*phys.Warehouse[phys.Stabilizer], nthreads)
	o.ics = make([]*phys.Warehouse[phys.InitialCondition], nthreads)
	o.pps = make([]*phys.Warehouse[phys.Postprocessor], nthreads)
	o.fcns = make([]*phys.Warehouse[phys.Function], nthreads)
	o.dampers = make([]*phys.Warehouse[phys.Damper], nthreads)
	for tid := 0; tid < nthreads; tid++ {
		o.kernels[tid] = new(phys.Warehouse[phys.Kernel])
		o.dgs[tid] = new(phys.Warehouse[phys.DGKernel])
		o.bcs[tid] = new(phys.Warehouse[phys.BC])
		o.auxs[tid] = new(phys.Warehouse[phys.AuxKernel])
		o.auxBcs[tid] = new(phys.Warehouse[phys.AuxKernel])
		o.mats[tid] = new(phys.Warehouse[phys.Material])
		o.stabs[tid] = new(phys.Warehouse[phys.Stabilizer])
		o.ics[tid] = new(phys.Warehouse[phys.InitialCondition])
		o.pps[tid] = new(phys.Warehouse[phys.Postprocessor])
		o.fcns[tid] = new(phys.Warehouse[phys.Function])
		o.dampers[tid] = new(phys.Warehouse[phys.Damper])
	}
	o.ppVals = make(map[string]float64)
	o.Time.SetScheme("implicit-euler")
	return
}

// CheckSystemsIntegrity panics if the system is in an unusable state. Called
// by the assembly operations; a failure here is a programming error, not a
// user input error.
func (o *System) CheckSystemsIntegrity() {
	if o.mesh == nil {
		chk.Panic("system has no mesh bound")
	}
	if o.Fields.NumVars() < 1 {
		chk.Panic("system has no solution variables")
	}
	if !o.sized {
		chk.Panic("SizeEverything must be called before assembly")
	}
	if o.meshChanged {
		chk.Panic("mesh changed after sizing; SizeEverything must be called again")
	}
}

// EqNum returns the global equation number of (solution variable, vertex).
// The numbering is variable-major: registering additional variables never
// disturbs existing equation numbers.
func (o *System) EqNum(varNum, vert int) int {
	return varNum*o.nverts + vert
}

// eqToVar recovers the variable number from an equation number
func (o *System) eqToVar(eq int) int {
	return eq / o.nverts
}

// Function returns a registered function by instance name (thread 0 copy)
func (o *System) Function(name string) (phys.Function, error) {
	f, ok := o.fcns[0].Get(name)
	if !ok {
		return nil, chk.Err("cannot find function %q", name)
	}
	return f, nil
}

// buildCtx assembles the construction context handed to contribution
// allocators for one thread
func (o *System) buildCtx(tid int, name string, prms *inp.Params) *phys.BuildCtx {
	ndim := 1
	if o.mesh != nil {
		ndim = o.mesh.Ndim
	}
	return &phys.BuildCtx{
		Tid:        tid,
		Name:       name,
		Prms:       prms,
		Ndim:       ndim,
		NumVars:    o.Fields.NumVars,
		NumAuxVars: o.Fields.NumAuxVars,
		Resolve:    o.Fields.VariableNumber,
		ResolveAux: o.Fields.AuxVariableNumber,
		ResolveExt: o.Fields.ExtNumber,
		Function: func(fname string) (phys.Function, error) {
			f, ok := o.fcns[tid].Get(fname)
			if !ok {
				return nil, chk.Err("cannot find function %q", fname)
			}
			return f, nil
		},
	}
}
