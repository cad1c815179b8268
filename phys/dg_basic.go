// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

// DGDiffusion penalises the jump of a variable across interior faces:
//   ∫ σ (u_e - u_n) φ
// The penalty σ is a user parameter; a pure interior-penalty stabilization,
// not the full symmetric interior penalty form.
type DGDiffusion struct {
	varNum  int
	penalty float64
}

func init() {
	SetDGKernelAllocator("dg_diffusion", func(ctx *BuildCtx) (DGKernel, error) {
		v, err := resolvePrimaryVar(ctx)
		if err != nil {
			return nil, err
		}
		return &DGDiffusion{varNum: v, penalty: ctx.Prms.GetPrmD("penalty", 1e3)}, nil
	})
}

func (o *DGDiffusion) Var() int { return o.varNum }

func (o *DGDiffusion) ComputeResidual(fd, nfd *FaceData) {
	v := o.varNum
	for qp := 0; qp < fd.Nfqp; qp++ {
		jump := fd.U[v][qp] - nfd.U[v][qp]
		coef := fd.FaceJxW[qp] * o.penalty * jump
		for i := 0; i < fd.Nverts; i++ {
			fd.Re[v][i] += coef * fd.PhiF[qp][i]
		}
		for i := 0; i < nfd.Nverts; i++ {
			nfd.Re[v][i] -= coef * nfd.PhiF[qp][i]
		}
	}
}

func (o *DGDiffusion) ComputeJacobian(fd, nfd *FaceData) {
	v := o.varNum
	for qp := 0; qp < fd.Nfqp; qp++ {
		coef := fd.FaceJxW[qp] * o.penalty
		for i := 0; i < fd.Nverts; i++ {
			for j := 0; j < fd.Nverts; j++ {
				fd.Ke[v][v][i][j] += coef * fd.PhiF[qp][i] * fd.PhiF[qp][j]
			}
			for j := 0; j < nfd.Nverts; j++ {
				fd.KeN[v][v][i][j] -= coef * fd.PhiF[qp][i] * nfd.PhiF[qp][j]
			}
		}
		for i := 0; i < nfd.Nverts; i++ {
			for j := 0; j < nfd.Nverts; j++ {
				nfd.Ke[v][v][i][j] += coef * nfd.PhiF[qp][i] * nfd.PhiF[qp][j]
			}
			for j := 0; j < fd.Nverts; j++ {
				nfd.KeN[v][v][i][j] -= coef * nfd.PhiF[qp][i] * fd.PhiF[qp][j]
			}
		}
	}
}
