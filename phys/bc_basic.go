// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

// DirichletBC prescribes a constant value on a boundary
type DirichletBC struct {
	varNum int
	value  float64
}

func init() {
	SetBCAllocator("dirichlet", func(ctx *BuildCtx) (BC, error) {
		v, err := resolvePrimaryVar(ctx)
		if err != nil {
			return nil, err
		}
		value, err := ctx.Prms.GetPrm("value")
		if err != nil {
			return nil, err
		}
		return &DirichletBC{varNum: v, value: value}, nil
	})
}

func (o *DirichletBC) Var() int { return o.varNum }

func (o *DirichletBC) Value(bd *BCNodeData) float64 { return o.value }

// FunctionDirichletBC prescribes a time/space dependent value on a boundary
type FunctionDirichletBC struct {
	varNum int
	fcn    Function
}

func init() {
	SetBCAllocator("function_dirichlet", func(ctx *BuildCtx) (BC, error) {
		v, err := resolvePrimaryVar(ctx)
		if err != nil {
			return nil, err
		}
		fcn, err := ctx.Function(ctx.Prms.Fcn)
		if err != nil {
			return nil, err
		}
		return &FunctionDirichletBC{varNum: v, fcn: fcn}, nil
	})
}

func (o *FunctionDirichletBC) Var() int { return o.varNum }

func (o *FunctionDirichletBC) Value(bd *BCNodeData) float64 {
	return o.fcn.F(bd.T, bd.X)
}

// NeumannBC prescribes a constant flux on a boundary:  -∫ q φ
type NeumannBC struct {
	varNum int
	flux   float64
}

func init() {
	SetBCAllocator("neumann", func(ctx *BuildCtx) (BC, error) {
		v, err := resolvePrimaryVar(ctx)
		if err != nil {
			return nil, err
		}
		flux, err := ctx.Prms.GetPrm("value")
		if err != nil {
			return nil, err
		}
		return &NeumannBC{varNum: v, flux: flux}, nil
	})
}

func (o *NeumannBC) Var() int { return o.varNum }

func (o *NeumannBC) ComputeResidual(fd *FaceData, md *MaterialData) {
	for qp := 0; qp < fd.Nfqp; qp++ {
		for i := 0; i < fd.Nverts; i++ {
			fd.Re[o.varNum][i] -= fd.FaceJxW[qp] * o.flux * fd.PhiF[qp][i]
		}
	}
}

func (o *NeumannBC) ComputeJacobian(fd *FaceData, md *MaterialData) {
}

// FunctionNeumannBC prescribes a time/space dependent flux on a boundary
type FunctionNeumannBC struct {
	varNum int
	fcn    Function
}

func init() {
	SetBCAllocator("function_neumann", func(ctx *BuildCtx) (BC, error) {
		v, err := resolvePrimaryVar(ctx)
		if err != nil {
			return nil, err
		}
		fcn, err := ctx.Function(ctx.Prms.Fcn)
		if err != nil {
			return nil, err
		}
		return &FunctionNeumannBC{varNum: v, fcn: fcn}, nil
	})
}

func (o *FunctionNeumannBC) Var() int { return o.varNum }

func (o *FunctionNeumannBC) ComputeResidual(fd *FaceData, md *MaterialData) {
	for qp := 0; qp < fd.Nfqp; qp++ {
		q := o.fcn.F(fd.T, fd.XF[qp])
		for i := 0; i < fd.Nverts; i++ {
			fd.Re[o.varNum][i] -= fd.FaceJxW[qp] * q * fd.PhiF[qp][i]
		}
	}
}

func (o *FunctionNeumannBC) ComputeJacobian(fd *FaceData, md *MaterialData) {
}
