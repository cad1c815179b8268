// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/mieuicedu/moose/inp"
)

// LinearSolver solves K*du = rhs for one Newton iteration
type LinearSolver interface {
	Solve(du la.Vector, K *la.Triplet, rhs la.Vector) error
}

// LinSolAllocator allocates a linear solver
type LinSolAllocator func() LinearSolver

var linSolAllocators = make(map[string]LinSolAllocator)

// SetLinSolAllocator registers a new linear solver type
func SetLinSolAllocator(typeName string, fcn LinSolAllocator) {
	if _, ok := linSolAllocators[typeName]; ok {
		chk.Panic("cannot set allocator for linear solver %q because it exists already", typeName)
	}
	linSolAllocators[typeName] = fcn
}

// NewLinSolver allocates a linear solver from the factory
func NewLinSolver(typeName string) (ls LinearSolver, err error) {
	fcn, ok := linSolAllocators[typeName]
	if !ok {
		err = chk.Err("cannot find allocator for linear solver type %q", typeName)
		return
	}
	return fcn(), nil
}

// DenseSolver factorises the jacobian as a dense matrix with an LU
// decomposition. Adequate for the problem sizes a single process handles;
// larger runs would register a sparse alternative.
type DenseSolver struct {
	a *mat.Dense
	b *mat.VecDense
	x *mat.VecDense
}

func init() {
	SetLinSolAllocator("dense", func() LinearSolver { return &DenseSolver{} })
}

// Solve implements LinearSolver
func (o *DenseSolver) Solve(du la.Vector, K *la.Triplet, rhs la.Vector) (err error) {
	n := len(rhs)
	if o.a == nil || o.b.Len() != n {
		o.a = mat.NewDense(n, n, nil)
		o.b = mat.NewVecDense(n, nil)
		o.x = mat.NewVecDense(n, nil)
	}
	A := K.ToDense()
	for i := 0; i < n; i++ {
		o.b.SetVec(i, rhs[i])
		for j := 0; j < n; j++ {
			o.a.Set(i, j, A.Get(i, j))
		}
	}
	var lu mat.LU
	lu.Factorize(o.a)
	if err = lu.SolveVecTo(o.x, false, o.b); err != nil {
		return chk.Err("linear solve failed:\n%v", err)
	}
	for i := 0; i < n; i++ {
		du[i] = o.x.AtVec(i)
	}
	return
}

// NonlinearSolve runs Newton iterations until the residual norm drops below
// the tolerances or the iteration budget is exhausted. Each accepted update
// is scaled by the damping factor from the registered dampers.
func (o *System) NonlinearSolve(cfg *inp.SolverData, ls LinearSolver) (iters int, err error) {
	R := la.NewVector(o.Neq)
	du := la.NewVector(o.Neq)
	K := new(la.Triplet)
	var fb0 float64
	for it := 0; it < cfg.NmaxIt; it++ {
		if err = o.ComputeResidual(R); err != nil {
			return
		}
		fb := floats.Norm(R, 2)
		if it == 0 {
			fb0 = fb
			if fb0 < cfg.FbMin {
				fb0 = cfg.FbMin
			}
		}
		if fb < cfg.FbMin || fb <= cfg.FbTol*fb0 {
			return
		}
		if err = o.ComputeJacobian(K); err != nil {
			return
		}
		for i := range R {
			R[i] = -R[i]
		}
		if err = ls.Solve(du, K, R); err != nil {
			return
		}
		var factor float64
		if factor, err = o.ComputeDamping(du); err != nil {
			return
		}
		for i := range du {
			o.Sol[i] += factor * du[i]
		}
		iters = it + 1
		if factor*floats.Norm(du, math.Inf(1)) < cfg.Itol {
			return
		}
	}
	return iters, chk.Err("nonlinear solve did not converge within %d iterations", cfg.NmaxIt)
}

// Executioner drives a complete solve of one system
type Executioner interface {
	Run(sys *System) error
}

// ExecAllocator allocates an executioner
type ExecAllocator func() Executioner

var execAllocators = make(map[string]ExecAllocator)

// SetExecAllocator registers a new executioner type
func SetExecAllocator(typeName string, fcn ExecAllocator) {
	if _, ok := execAllocators[typeName]; ok {
		chk.Panic("cannot set allocator for executioner %q because it exists already", typeName)
	}
	execAllocators[typeName] = fcn
}

// NewExecutioner allocates an executioner from the factory
func NewExecutioner(typeName string) (e Executioner, err error) {
	fcn, ok := execAllocators[typeName]
	if !ok {
		err = chk.Err("cannot find allocator for executioner type %q", typeName)
		return
	}
	return fcn(), nil
}

// solverCfg returns the nonlinear solver configuration, falling back to
// defaults when the system was assembled programmatically
func solverCfg(sys *System) *inp.SolverData {
	if sys.Sim != nil {
		return &sys.Sim.Solver
	}
	cfg := &inp.SolverData{}
	tmp := inp.Simulation{Solver: *cfg}
	tmp.SetDefault()
	*cfg = tmp.Solver
	return cfg
}

// SteadyExec solves the system once, then runs the adaptivity cycles
type SteadyExec struct{}

func init() {
	SetExecAllocator("steady", func() Executioner { return &SteadyExec{} })
	SetExecAllocator("transient", func() Executioner { return &TransientExec{} })
}

// Run implements Executioner
func (o *SteadyExec) Run(sys *System) (err error) {
	cfg := solverCfg(sys)
	ls, err := NewLinSolver(cfg.LinSol)
	if err != nil {
		return
	}

	// refinement cycles driven by the initial conditions
	for i := 0; i < sys.Adapt.IniSteps; i++ {
		changed, aerr := sys.AdaptMesh()
		if aerr != nil {
			return aerr
		}
		if !changed {
			break
		}
		if err = sys.ApplyInitialConditions(); err != nil {
			return
		}
	}

	iters, err := sys.NonlinearSolve(cfg, ls)
	if err != nil {
		return
	}
	io.Pf("steady solve converged in %d iterations\n", iters)

	// solve-adapt cycles
	for step := 0; step < sys.Adapt.MaxSteps; step++ {
		changed, aerr := sys.AdaptMesh()
		if aerr != nil {
			return aerr
		}
		if !changed {
			break
		}
		if iters, err = sys.NonlinearSolve(cfg, ls); err != nil {
			return
		}
		io.Pf("adapted solve (%d cells) converged in %d iterations\n", len(sys.GetMesh().Cells), iters)
	}

	if err = sys.ComputePostprocessors(); err != nil {
		return
	}
	if err = sys.OutputSystem(0); err != nil {
		return
	}
	return sys.OutputPostprocessors()
}

// TransientExec advances the system in time until the final time
type TransientExec struct{}

// Run implements Executioner
func (o *TransientExec) Run(sys *System) (err error) {
	if sys.Sim == nil {
		return chk.Err("transient run requires simulation input data")
	}
	cfg := solverCfg(sys)
	td := &sys.Sim.Time
	if td.Dt <= 0 || td.Tf <= 0 {
		return chk.Err("transient run requires positive dt and tf. dt=%v tf=%v are invalid", td.Dt, td.Tf)
	}
	ls, err := NewLinSolver(cfg.LinSol)
	if err != nil {
		return
	}

	for i := 0; i < sys.Adapt.IniSteps; i++ {
		changed, aerr := sys.AdaptMesh()
		if aerr != nil {
			return aerr
		}
		if !changed {
			break
		}
		if err = sys.ApplyInitialConditions(); err != nil {
			return
		}
	}

	if err = sys.OutputSystem(0); err != nil {
		return
	}
	step := 0
	nextOut := td.DtOut
	for sys.Time.T < td.Tf-1e-12 {
		sys.OnTimestepBegin(td.Dt)
		step++
		iters, serr := sys.NonlinearSolve(cfg, ls)
		if serr != nil {
			return chk.Err("time step %d (t=%g) failed:\n%v", step, sys.Time.T, serr)
		}
		io.Pf("t=%-10g converged in %d iterations\n", sys.Time.T, iters)
		if err = sys.ComputePostprocessors(); err != nil {
			return
		}
		if td.DtOut <= 0 || sys.Time.T >= nextOut-1e-12 {
			if err = sys.OutputSystem(step); err != nil {
				return
			}
			if err = sys.OutputPostprocessors(); err != nil {
				return
			}
			nextOut += td.DtOut
		}
		if sys.Adapt.On && sys.Adapt.MaxSteps > 0 {
			if _, err = sys.AdaptMesh(); err != nil {
				return
			}
		}
	}
	return
}
