// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// resolveExtVar returns the extended number of the contribution's target
func resolveExtVar(ctx *BuildCtx) (int, error) {
	if ctx.Prms == nil || ctx.Prms.Var == "" {
		return 0, chk.Err("contribution %q requires parameter 'var'", ctx.Name)
	}
	return ctx.ResolveExt(ctx.Prms.Var)
}

// ElementIntegral computes ∫ u over the traversed elements
type ElementIntegral struct {
	cvar int
	sum  float64
}

func init() {
	SetPostprocessorAllocator("element_integral", func(ctx *BuildCtx) (Postprocessor, error) {
		v, err := resolveExtVar(ctx)
		if err != nil {
			return nil, err
		}
		return &ElementIntegral{cvar: v}, nil
	})
}

func (o *ElementIntegral) Init() { o.sum = 0 }

func (o *ElementIntegral) ExecuteElem(ed *ElementData, md *MaterialData) {
	for qp := 0; qp < ed.Nqp; qp++ {
		o.sum += ed.JxW[qp] * ed.U[o.cvar][qp]
	}
}

func (o *ElementIntegral) Join(other Postprocessor) {
	o.sum += other.(*ElementIntegral).sum
}

func (o *ElementIntegral) Value() float64 { return o.sum }

// ElementL2Norm computes sqrt(∫ u²) over the traversed elements
type ElementL2Norm struct {
	cvar int
	sum  float64
}

func init() {
	SetPostprocessorAllocator("element_l2_norm", func(ctx *BuildCtx) (Postprocessor, error) {
		v, err := resolveExtVar(ctx)
		if err != nil {
			return nil, err
		}
		return &ElementL2Norm{cvar: v}, nil
	})
}

func (o *ElementL2Norm) Init() { o.sum = 0 }

func (o *ElementL2Norm) ExecuteElem(ed *ElementData, md *MaterialData) {
	for qp := 0; qp < ed.Nqp; qp++ {
		u := ed.U[o.cvar][qp]
		o.sum += ed.JxW[qp] * u * u
	}
}

func (o *ElementL2Norm) Join(other Postprocessor) {
	o.sum += other.(*ElementL2Norm).sum
}

func (o *ElementL2Norm) Value() float64 { return math.Sqrt(o.sum) }

// NodalMax tracks the maximum nodal value of a variable
type NodalMax struct {
	cvar int
	max  float64
}

func init() {
	SetPostprocessorAllocator("nodal_max", func(ctx *BuildCtx) (Postprocessor, error) {
		v, err := resolveExtVar(ctx)
		if err != nil {
			return nil, err
		}
		return &NodalMax{cvar: v}, nil
	})
}

func (o *NodalMax) Init() { o.max = math.Inf(-1) }

func (o *NodalMax) ExecuteNode(ad *AuxData) {
	o.max = math.Max(o.max, ad.UVals[o.cvar])
}

func (o *NodalMax) Join(other Postprocessor) {
	o.max = math.Max(o.max, other.(*NodalMax).max)
}

func (o *NodalMax) Value() float64 { return o.max }

// NodalMin tracks the minimum nodal value of a variable
type NodalMin struct {
	cvar int
	min  float64
}

func init() {
	SetPostprocessorAllocator("nodal_min", func(ctx *BuildCtx) (Postprocessor, error) {
		v, err := resolveExtVar(ctx)
		if err != nil {
			return nil, err
		}
		return &NodalMin{cvar: v}, nil
	})
}

func (o *NodalMin) Init() { o.min = math.Inf(1) }

func (o *NodalMin) ExecuteNode(ad *AuxData) {
	o.min = math.Min(o.min, ad.UVals[o.cvar])
}

func (o *NodalMin) Join(other Postprocessor) {
	o.min = math.Min(o.min, other.(*NodalMin).min)
}

func (o *NodalMin) Value() float64 { return o.min }
