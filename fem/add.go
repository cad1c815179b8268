// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"

	"github.com/mieuicedu/moose/inp"
	"github.com/mieuicedu/moose/phys"
)

// AddVariable registers a solution variable. Sizing becomes stale and must be
// redone before the next assembly; existing variable numbers are preserved.
func (o *System) AddVariable(name string, order int, blocks []int) (num int, err error) {
	num, err = o.Fields.AddVariable(name, order, blocks)
	if err == nil {
		o.sized = false
	}
	return
}

// AddAuxVariable registers an auxiliary variable
func (o *System) AddAuxVariable(name string, order int, blocks []int) (num int, err error) {
	num, err = o.Fields.AddAuxVariable(name, order, blocks)
	if err == nil {
		o.sized = false
	}
	return
}

// blocksOf returns the subdomain restriction of a parameter bundle
func blocksOf(prms *inp.Params) []int {
	if prms == nil {
		return nil
	}
	return prms.Blocks
}

// bndsOf returns the boundary restriction of a parameter bundle
func bndsOf(prms *inp.Params) []int {
	if prms == nil {
		return nil
	}
	return prms.Bnds
}

// AddKernel allocates one kernel per thread and stores them under a unique
// instance name. All Add* operations work this way: every thread gets its own
// instance so evaluation never shares contribution state across threads.
func (o *System) AddKernel(typeName, name string, prms *inp.Params) (err error) {
	for tid := 0; tid < o.Nthreads; tid++ {
		k, err := phys.NewKernel(typeName, o.buildCtx(tid, name, prms))
		if err != nil {
			return chk.Err("cannot add kernel %q:\n%v", name, err)
		}
		if err = o.kernels[tid].Add(name, k, blocksOf(prms)); err != nil {
			return chk.Err("cannot add kernel %q:\n%v", name, err)
		}
	}
	return
}

// AddDGKernel allocates one interface (dg) kernel per thread
func (o *System) AddDGKernel(typeName, name string, prms *inp.Params) (err error) {
	for tid := 0; tid < o.Nthreads; tid++ {
		k, err := phys.NewDGKernel(typeName, o.buildCtx(tid, name, prms))
		if err != nil {
			return chk.Err("cannot add dg kernel %q:\n%v", name, err)
		}
		if err = o.dgs[tid].Add(name, k, blocksOf(prms)); err != nil {
			return chk.Err("cannot add dg kernel %q:\n%v", name, err)
		}
	}
	return
}

// AddBC allocates one boundary condition per thread, restricted to the
// boundary ids in prms.Bnds
func (o *System) AddBC(typeName, name string, prms *inp.Params) (err error) {
	if len(bndsOf(prms)) == 0 {
		return chk.Err("cannot add bc %q: boundary ids are required", name)
	}
	for tid := 0; tid < o.Nthreads; tid++ {
		bc, err := phys.NewBC(typeName, o.buildCtx(tid, name, prms))
		if err != nil {
			return chk.Err("cannot add bc %q:\n%v", name, err)
		}
		if err = o.bcs[tid].Add(name, bc, prms.Bnds); err != nil {
			return chk.Err("cannot add bc %q:\n%v", name, err)
		}
	}
	return
}

// AddAuxKernel allocates one auxiliary kernel per thread
func (o *System) AddAuxKernel(typeName, name string, prms *inp.Params) (err error) {
	for tid := 0; tid < o.Nthreads; tid++ {
		k, err := phys.NewAuxKernel(typeName, o.buildCtx(tid, name, prms))
		if err != nil {
			return chk.Err("cannot add aux kernel %q:\n%v", name, err)
		}
		if err = o.auxs[tid].Add(name, k, blocksOf(prms)); err != nil {
			return chk.Err("cannot add aux kernel %q:\n%v", name, err)
		}
	}
	return
}

// AddAuxBC allocates one boundary-restricted auxiliary kernel per thread.
// Aux bcs must be nodal: they run over the vertices of tagged faces.
func (o *System) AddAuxBC(typeName, name string, prms *inp.Params) (err error) {
	if len(bndsOf(prms)) == 0 {
		return chk.Err("cannot add aux bc %q: boundary ids are required", name)
	}
	for tid := 0; tid < o.Nthreads; tid++ {
		k, err := phys.NewAuxKernel(typeName, o.buildCtx(tid, name, prms))
		if err != nil {
			return chk.Err("cannot add aux bc %q:\n%v", name, err)
		}
		if !k.Nodal() {
			return chk.Err("cannot add aux bc %q: elemental aux kernels cannot be boundary restricted", name)
		}
		if err = o.auxBcs[tid].Add(name, k, prms.Bnds); err != nil {
			return chk.Err("cannot add aux bc %q:\n%v", name, err)
		}
	}
	return
}

// AddMaterial allocates one material per thread
func (o *System) AddMaterial(typeName, name string, prms *inp.Params) (err error) {
	for tid := 0; tid < o.Nthreads; tid++ {
		m, err := phys.NewMaterial(typeName, o.buildCtx(tid, name, prms))
		if err != nil {
			return chk.Err("cannot add material %q:\n%v", name, err)
		}
		if err = o.mats[tid].Add(name, m, blocksOf(prms)); err != nil {
			return chk.Err("cannot add material %q:\n%v", name, err)
		}
	}
	return
}

// AddStabilizer allocates one stabilizer per thread
func (o *System) AddStabilizer(typeName, name string, prms *inp.Params) (err error) {
	for tid := 0; tid < o.Nthreads; tid++ {
		s, err := phys.NewStabilizer(typeName, o.buildCtx(tid, name, prms))
		if err != nil {
			return chk.Err("cannot add stabilizer %q:\n%v", name, err)
		}
		if err = o.stabs[tid].Add(name, s, blocksOf(prms)); err != nil {
			return chk.Err("cannot add stabilizer %q:\n%v", name, err)
		}
	}
	return
}

// AddInitialCondition allocates one initial condition per thread
func (o *System) AddInitialCondition(typeName, name string, prms *inp.Params) (err error) {
	for tid := 0; tid < o.Nthreads; tid++ {
		ic, err := phys.NewIC(typeName, o.buildCtx(tid, name, prms))
		if err != nil {
			return chk.Err("cannot add initial condition %q:\n%v", name, err)
		}
		if err = o.ics[tid].Add(name, ic, blocksOf(prms)); err != nil {
			return chk.Err("cannot add initial condition %q:\n%v", name, err)
		}
	}
	return
}

// AddPostprocessor allocates one postprocessor per thread
func (o *System) AddPostprocessor(typeName, name string, prms *inp.Params) (err error) {
	for tid := 0; tid < o.Nthreads; tid++ {
		pp, err := phys.NewPostprocessor(typeName, o.buildCtx(tid, name, prms))
		if err != nil {
			return chk.Err("cannot add postprocessor %q:\n%v", name, err)
		}
		if err = o.pps[tid].Add(name, pp, blocksOf(prms)); err != nil {
			return chk.Err("cannot add postprocessor %q:\n%v", name, err)
		}
	}
	o.ppNames = append(o.ppNames, name)
	return
}

// AddFunction allocates one function per thread. Functions must exist before
// the contributions referencing them are added.
func (o *System) AddFunction(typeName, name string, prms *inp.Params) (err error) {
	for tid := 0; tid < o.Nthreads; tid++ {
		f, err := phys.NewFunction(typeName, o.buildCtx(tid, name, prms))
		if err != nil {
			return chk.Err("cannot add function %q:\n%v", name, err)
		}
		if err = o.fcns[tid].Add(name, f, nil); err != nil {
			return chk.Err("cannot add function %q:\n%v", name, err)
		}
	}
	return
}

// AddDamper allocates one damper per thread
func (o *System) AddDamper(typeName, name string, prms *inp.Params) (err error) {
	for tid := 0; tid < o.Nthreads; tid++ {
		d, err := phys.NewDamper(typeName, o.buildCtx(tid, name, prms))
		if err != nil {
			return chk.Err("cannot add damper %q:\n%v", name, err)
		}
		if err = o.dampers[tid].Add(name, d, blocksOf(prms)); err != nil {
			return chk.Err("cannot add damper %q:\n%v", name, err)
		}
	}
	return
}
