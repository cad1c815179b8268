// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import (
	"github.com/cpmech/gosl/chk"
)

// resolveAuxVar returns the auxiliary number of the contribution's target
func resolveAuxVar(ctx *BuildCtx) (int, error) {
	if ctx.Prms == nil || ctx.Prms.Var == "" {
		return 0, chk.Err("contribution %q requires parameter 'var'", ctx.Name)
	}
	return ctx.ResolveAux(ctx.Prms.Var)
}

// resolveOneCoupled returns the extended number of the single coupled variable
func resolveOneCoupled(ctx *BuildCtx) (int, error) {
	if len(ctx.Prms.Coupled) != 1 {
		return 0, chk.Err("contribution %q requires exactly one coupled variable", ctx.Name)
	}
	return ctx.ResolveExt(ctx.Prms.Coupled[0])
}

// ConstantAux sets an auxiliary field to a constant value at every node
type ConstantAux struct {
	auxNum int
	value  float64
}

func init() {
	SetAuxKernelAllocator("constant_aux", func(ctx *BuildCtx) (AuxKernel, error) {
		v, err := resolveAuxVar(ctx)
		if err != nil {
			return nil, err
		}
		value, err := ctx.Prms.GetPrm("value")
		if err != nil {
			return nil, err
		}
		return &ConstantAux{auxNum: v, value: value}, nil
	})
}

func (o *ConstantAux) Var() int    { return o.auxNum }
func (o *ConstantAux) Nodal() bool { return true }

func (o *ConstantAux) Compute(ad *AuxData) float64 { return o.value }

// ScaleAux sets a nodal auxiliary field to a scaled copy of a coupled variable
type ScaleAux struct {
	auxNum int
	cvar   int // extended number of the coupled variable
	factor float64
}

func init() {
	SetAuxKernelAllocator("scale_aux", func(ctx *BuildCtx) (AuxKernel, error) {
		v, err := resolveAuxVar(ctx)
		if err != nil {
			return nil, err
		}
		cv, err := resolveOneCoupled(ctx)
		if err != nil {
			return nil, err
		}
		return &ScaleAux{auxNum: v, cvar: cv, factor: ctx.Prms.GetPrmD("factor", 1.0)}, nil
	})
}

func (o *ScaleAux) Var() int    { return o.auxNum }
func (o *ScaleAux) Nodal() bool { return true }

func (o *ScaleAux) Compute(ad *AuxData) float64 {
	return o.factor * ad.UVals[o.cvar]
}

// CellAverageAux sets an elemental auxiliary field to the cell average of a
// coupled variable
type CellAverageAux struct {
	auxNum int
	cvar   int
}

func init() {
	SetAuxKernelAllocator("cell_average_aux", func(ctx *BuildCtx) (AuxKernel, error) {
		v, err := resolveAuxVar(ctx)
		if err != nil {
			return nil, err
		}
		cv, err := resolveOneCoupled(ctx)
		if err != nil {
			return nil, err
		}
		return &CellAverageAux{auxNum: v, cvar: cv}, nil
	})
}

func (o *CellAverageAux) Var() int    { return o.auxNum }
func (o *CellAverageAux) Nodal() bool { return false }

func (o *CellAverageAux) Compute(ad *AuxData) float64 {
	return ad.UAvg[o.cvar]
}
