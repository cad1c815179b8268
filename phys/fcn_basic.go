// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import (
	"math"
)

// ConstantFcn returns the same value everywhere
type ConstantFcn struct {
	value float64
}

func init() {
	SetFunctionAllocator("constant", func(ctx *BuildCtx) (Function, error) {
		value, err := ctx.Prms.GetPrm("value")
		if err != nil {
			return nil, err
		}
		return &ConstantFcn{value: value}, nil
	})
}

func (o *ConstantFcn) F(t float64, x []float64) float64 { return o.value }

// RampFcn is linear in time:  offset + slope*t
type RampFcn struct {
	slope, offset float64
}

func init() {
	SetFunctionAllocator("ramp", func(ctx *BuildCtx) (Function, error) {
		slope, err := ctx.Prms.GetPrm("slope")
		if err != nil {
			return nil, err
		}
		return &RampFcn{slope: slope, offset: ctx.Prms.GetPrmD("offset", 0)}, nil
	})
}

func (o *RampFcn) F(t float64, x []float64) float64 { return o.offset + o.slope*t }

// SineFcn is sinusoidal in time:  amp * sin(omega*t + phase)
type SineFcn struct {
	amp, omega, phase float64
}

func init() {
	SetFunctionAllocator("sine", func(ctx *BuildCtx) (Function, error) {
		amp, err := ctx.Prms.GetPrm("amp")
		if err != nil {
			return nil, err
		}
		omega, err := ctx.Prms.GetPrm("omega")
		if err != nil {
			return nil, err
		}
		return &SineFcn{amp: amp, omega: omega, phase: ctx.Prms.GetPrmD("phase", 0)}, nil
	})
}

func (o *SineFcn) F(t float64, x []float64) float64 {
	return o.amp * math.Sin(o.omega*t+o.phase)
}

// LinearSpaceFcn is linear in space:  c0 + cx*x + cy*y
type LinearSpaceFcn struct {
	c0, cx, cy float64
}

func init() {
	SetFunctionAllocator("linear_space", func(ctx *BuildCtx) (Function, error) {
		return &LinearSpaceFcn{
			c0: ctx.Prms.GetPrmD("c0", 0),
			cx: ctx.Prms.GetPrmD("cx", 0),
			cy: ctx.Prms.GetPrmD("cy", 0),
		}, nil
	})
}

func (o *LinearSpaceFcn) F(t float64, x []float64) float64 {
	res := o.c0 + o.cx*x[0]
	if len(x) > 1 {
		res += o.cy * x[1]
	}
	return res
}
