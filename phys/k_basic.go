// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import (
	"github.com/cpmech/gosl/chk"
)

// resolvePrimaryVar returns the number of the contribution's primary variable
func resolvePrimaryVar(ctx *BuildCtx) (int, error) {
	if ctx.Prms == nil || ctx.Prms.Var == "" {
		return 0, chk.Err("contribution %q requires parameter 'var'", ctx.Name)
	}
	return ctx.Resolve(ctx.Prms.Var)
}

// Diffusion implements the weak form of -div(D grad(u)):  ∫ D ∇u·∇φ
type Diffusion struct {
	varNum int
	dcte   float64 // constant diffusivity; overridden by material "diffusivity"
}

func init() {
	SetKernelAllocator("diffusion", func(ctx *BuildCtx) (Kernel, error) {
		v, err := resolvePrimaryVar(ctx)
		if err != nil {
			return nil, err
		}
		return &Diffusion{varNum: v, dcte: ctx.Prms.GetPrmD("d", 1.0)}, nil
	})
}

func (o *Diffusion) Var() int { return o.varNum }

func (o *Diffusion) ComputeResidual(ed *ElementData, md *MaterialData) {
	for qp := 0; qp < ed.Nqp; qp++ {
		D := md.Value("diffusivity", qp, o.dcte)
		for i := 0; i < ed.Nverts; i++ {
			sum := 0.0
			for d := 0; d < ed.Ndim; d++ {
				sum += ed.GradU[o.varNum][qp][d] * ed.GradPhi[qp][i][d]
			}
			ed.Re[o.varNum][i] += ed.JxW[qp] * D * sum
		}
	}
}

func (o *Diffusion) ComputeJacobian(ed *ElementData, md *MaterialData) {
	for qp := 0; qp < ed.Nqp; qp++ {
		D := md.Value("diffusivity", qp, o.dcte)
		for i := 0; i < ed.Nverts; i++ {
			for j := 0; j < ed.Nverts; j++ {
				sum := 0.0
				for d := 0; d < ed.Ndim; d++ {
					sum += ed.GradPhi[qp][j][d] * ed.GradPhi[qp][i][d]
				}
				ed.Ke[o.varNum][o.varNum][i][j] += ed.JxW[qp] * D * sum
			}
		}
	}
}

func (o *Diffusion) ComputeOffDiagJacobian(jvar int, ed *ElementData, md *MaterialData) {
}

// TimeDerivative implements the transient term:  ∫ u_dot φ
type TimeDerivative struct {
	varNum int
}

func init() {
	SetKernelAllocator("time_derivative", func(ctx *BuildCtx) (Kernel, error) {
		v, err := resolvePrimaryVar(ctx)
		if err != nil {
			return nil, err
		}
		return &TimeDerivative{varNum: v}, nil
	})
}

func (o *TimeDerivative) Var() int { return o.varNum }

func (o *TimeDerivative) ComputeResidual(ed *ElementData, md *MaterialData) {
	for qp := 0; qp < ed.Nqp; qp++ {
		for i := 0; i < ed.Nverts; i++ {
			ed.Re[o.varNum][i] += ed.JxW[qp] * ed.UDot[o.varNum][qp] * ed.Phi[qp][i]
		}
	}
}

func (o *TimeDerivative) ComputeJacobian(ed *ElementData, md *MaterialData) {
	for qp := 0; qp < ed.Nqp; qp++ {
		for i := 0; i < ed.Nverts; i++ {
			for j := 0; j < ed.Nverts; j++ {
				ed.Ke[o.varNum][o.varNum][i][j] += ed.JxW[qp] * ed.DuDotDu * ed.Phi[qp][j] * ed.Phi[qp][i]
			}
		}
	}
}

func (o *TimeDerivative) ComputeOffDiagJacobian(jvar int, ed *ElementData, md *MaterialData) {
}

// BodyForce implements a source term:  -∫ f φ  with f given by a function or
// a constant value
type BodyForce struct {
	varNum int
	value  float64
	fcn    Function
}

func init() {
	SetKernelAllocator("body_force", func(ctx *BuildCtx) (Kernel, error) {
		v, err := resolvePrimaryVar(ctx)
		if err != nil {
			return nil, err
		}
		o := &BodyForce{varNum: v, value: ctx.Prms.GetPrmD("value", 0)}
		if ctx.Prms.Fcn != "" {
			o.fcn, err = ctx.Function(ctx.Prms.Fcn)
			if err != nil {
				return nil, err
			}
		}
		return o, nil
	})
}

func (o *BodyForce) Var() int { return o.varNum }

func (o *BodyForce) ComputeResidual(ed *ElementData, md *MaterialData) {
	for qp := 0; qp < ed.Nqp; qp++ {
		f := o.value
		if o.fcn != nil {
			f = o.fcn.F(ed.T, ed.XQ[qp])
		}
		for i := 0; i < ed.Nverts; i++ {
			ed.Re[o.varNum][i] -= ed.JxW[qp] * f * ed.Phi[qp][i]
		}
	}
}

func (o *BodyForce) ComputeJacobian(ed *ElementData, md *MaterialData) {
}

func (o *BodyForce) ComputeOffDiagJacobian(jvar int, ed *ElementData, md *MaterialData) {
}

// Reaction implements a linear reaction term:  ∫ c u φ
type Reaction struct {
	varNum int
	rate   float64
}

func init() {
	SetKernelAllocator("reaction", func(ctx *BuildCtx) (Kernel, error) {
		v, err := resolvePrimaryVar(ctx)
		if err != nil {
			return nil, err
		}
		rate, err := ctx.Prms.GetPrm("rate")
		if err != nil {
			return nil, err
		}
		return &Reaction{varNum: v, rate: rate}, nil
	})
}

func (o *Reaction) Var() int { return o.varNum }

func (o *Reaction) ComputeResidual(ed *ElementData, md *MaterialData) {
	for qp := 0; qp < ed.Nqp; qp++ {
		for i := 0; i < ed.Nverts; i++ {
			ed.Re[o.varNum][i] += ed.JxW[qp] * o.rate * ed.U[o.varNum][qp] * ed.Phi[qp][i]
		}
	}
}

func (o *Reaction) ComputeJacobian(ed *ElementData, md *MaterialData) {
	for qp := 0; qp < ed.Nqp; qp++ {
		for i := 0; i < ed.Nverts; i++ {
			for j := 0; j < ed.Nverts; j++ {
				ed.Ke[o.varNum][o.varNum][i][j] += ed.JxW[qp] * o.rate * ed.Phi[qp][j] * ed.Phi[qp][i]
			}
		}
	}
}

func (o *Reaction) ComputeOffDiagJacobian(jvar int, ed *ElementData, md *MaterialData) {
}

// CoupledForce implements a source proportional to a coupled (possibly
// auxiliary) variable:  -∫ c v φ. The coupled variable is addressed by its
// extended number, so auxiliary fields go through the modified numbering.
type CoupledForce struct {
	varNum int
	cvar   int // extended number of the coupled variable
	coef   float64
}

func init() {
	SetKernelAllocator("coupled_force", func(ctx *BuildCtx) (Kernel, error) {
		v, err := resolvePrimaryVar(ctx)
		if err != nil {
			return nil, err
		}
		if len(ctx.Prms.Coupled) != 1 {
			return nil, chk.Err("kernel %q requires exactly one coupled variable", ctx.Name)
		}
		cv, err := ctx.ResolveExt(ctx.Prms.Coupled[0])
		if err != nil {
			return nil, err
		}
		return &CoupledForce{varNum: v, cvar: cv, coef: ctx.Prms.GetPrmD("coef", 1.0)}, nil
	})
}

func (o *CoupledForce) Var() int { return o.varNum }

// CoupledVar returns the extended number of the coupled variable
func (o *CoupledForce) CoupledVar() int { return o.cvar }

func (o *CoupledForce) ComputeResidual(ed *ElementData, md *MaterialData) {
	for qp := 0; qp < ed.Nqp; qp++ {
		for i := 0; i < ed.Nverts; i++ {
			ed.Re[o.varNum][i] -= ed.JxW[qp] * o.coef * ed.U[o.cvar][qp] * ed.Phi[qp][i]
		}
	}
}

func (o *CoupledForce) ComputeJacobian(ed *ElementData, md *MaterialData) {
}

func (o *CoupledForce) ComputeOffDiagJacobian(jvar int, ed *ElementData, md *MaterialData) {
	if jvar != o.cvar {
		return
	}
	for qp := 0; qp < ed.Nqp; qp++ {
		for i := 0; i < ed.Nverts; i++ {
			for j := 0; j < ed.Nverts; j++ {
				ed.Ke[o.varNum][jvar][i][j] -= ed.JxW[qp] * o.coef * ed.Phi[qp][j] * ed.Phi[qp][i]
			}
		}
	}
}
