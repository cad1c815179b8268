// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cpmech/gosl/chk"
)

// ConstantDamper shrinks every Newton update by a fixed factor
type ConstantDamper struct {
	varNum int
	factor float64
}

func init() {
	SetDamperAllocator("constant_damper", func(ctx *BuildCtx) (Damper, error) {
		factor, err := ctx.Prms.GetPrm("factor")
		if err != nil {
			return nil, err
		}
		if factor <= 0 || factor > 1 {
			return nil, chk.Err("damper %q: factor must be in (0,1]; got %v", ctx.Name, factor)
		}
		v := -1
		if ctx.Prms.Var != "" {
			if v, err = ctx.Resolve(ctx.Prms.Var); err != nil {
				return nil, err
			}
		}
		return &ConstantDamper{varNum: v, factor: factor}, nil
	})
}

func (o *ConstantDamper) Var() int { return o.varNum }

func (o *ConstantDamper) ComputeDamping(dd *DamperData) float64 { return o.factor }

// MaxIncrementDamper bounds the largest per-dof change of one (or all)
// variables within a Newton step
type MaxIncrementDamper struct {
	varNum int
	maxInc float64
}

func init() {
	SetDamperAllocator("max_increment", func(ctx *BuildCtx) (Damper, error) {
		maxInc, err := ctx.Prms.GetPrm("max")
		if err != nil {
			return nil, err
		}
		if maxInc <= 0 {
			return nil, chk.Err("damper %q: max must be positive; got %v", ctx.Name, maxInc)
		}
		v := -1
		if ctx.Prms.Var != "" {
			if v, err = ctx.Resolve(ctx.Prms.Var); err != nil {
				return nil, err
			}
		}
		return &MaxIncrementDamper{varNum: v, maxInc: maxInc}, nil
	})
}

func (o *MaxIncrementDamper) Var() int { return o.varNum }

func (o *MaxIncrementDamper) ComputeDamping(dd *DamperData) float64 {
	factor := 1.0
	for v, du := range dd.Du {
		if o.varNum >= 0 && v != o.varNum {
			continue
		}
		biggest := floats.Norm(du[:dd.Ed.Nverts], math.Inf(1))
		if biggest > o.maxInc {
			factor = math.Min(factor, o.maxInc/biggest)
		}
	}
	return factor
}
