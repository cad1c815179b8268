// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import (
	"github.com/cpmech/gosl/chk"
)

// resolveICVar resolves the target of an initial condition: solution variables
// take precedence; names unknown in both spaces are setup errors
func resolveICVar(ctx *BuildCtx) (num int, isAux bool, err error) {
	if ctx.Prms == nil || ctx.Prms.Var == "" {
		err = chk.Err("contribution %q requires parameter 'var'", ctx.Name)
		return
	}
	if num, err = ctx.Resolve(ctx.Prms.Var); err == nil {
		return
	}
	num, err = ctx.ResolveAux(ctx.Prms.Var)
	isAux = err == nil
	return
}

// ConstantIC initialises a variable to a constant value
type ConstantIC struct {
	varNum int
	isAux  bool
	value  float64
}

func init() {
	SetICAllocator("constant_ic", func(ctx *BuildCtx) (InitialCondition, error) {
		v, isAux, err := resolveICVar(ctx)
		if err != nil {
			return nil, err
		}
		value, err := ctx.Prms.GetPrm("value")
		if err != nil {
			return nil, err
		}
		return &ConstantIC{varNum: v, isAux: isAux, value: value}, nil
	})
}

func (o *ConstantIC) Var() int    { return o.varNum }
func (o *ConstantIC) IsAux() bool { return o.isAux }

func (o *ConstantIC) Value(x []float64) float64 { return o.value }

// FunctionIC initialises a variable from a function evaluated at t=0
type FunctionIC struct {
	varNum int
	isAux  bool
	fcn    Function
}

func init() {
	SetICAllocator("function_ic", func(ctx *BuildCtx) (InitialCondition, error) {
		v, isAux, err := resolveICVar(ctx)
		if err != nil {
			return nil, err
		}
		fcn, err := ctx.Function(ctx.Prms.Fcn)
		if err != nil {
			return nil, err
		}
		return &FunctionIC{varNum: v, isAux: isAux, fcn: fcn}, nil
	})
}

func (o *FunctionIC) Var() int    { return o.varNum }
func (o *FunctionIC) IsAux() bool { return o.isAux }

func (o *FunctionIC) Value(x []float64) float64 { return o.fcn.F(0, x) }
