// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

// ArtificialDiffusion adds isotropic numerical diffusion to one variable:
//   ∫ ε ∇u·∇φ
type ArtificialDiffusion struct {
	varNum int
	eps    float64
}

func init() {
	SetStabilizerAllocator("artificial_diffusion", func(ctx *BuildCtx) (Stabilizer, error) {
		v, err := resolvePrimaryVar(ctx)
		if err != nil {
			return nil, err
		}
		eps, err := ctx.Prms.GetPrm("eps")
		if err != nil {
			return nil, err
		}
		return &ArtificialDiffusion{varNum: v, eps: eps}, nil
	})
}

func (o *ArtificialDiffusion) Var() int { return o.varNum }

func (o *ArtificialDiffusion) SubdomainSetup(sub int) {
}

func (o *ArtificialDiffusion) ComputeResidual(ed *ElementData, md *MaterialData) {
	for qp := 0; qp < ed.Nqp; qp++ {
		for i := 0; i < ed.Nverts; i++ {
			sum := 0.0
			for d := 0; d < ed.Ndim; d++ {
				sum += ed.GradU[o.varNum][qp][d] * ed.GradPhi[qp][i][d]
			}
			ed.Re[o.varNum][i] += ed.JxW[qp] * o.eps * sum
		}
	}
}

func (o *ArtificialDiffusion) ComputeJacobian(ed *ElementData, md *MaterialData) {
	for qp := 0; qp < ed.Nqp; qp++ {
		for i := 0; i < ed.Nverts; i++ {
			for j := 0; j < ed.Nverts; j++ {
				sum := 0.0
				for d := 0; d < ed.Ndim; d++ {
					sum += ed.GradPhi[qp][j][d] * ed.GradPhi[qp][i][d]
				}
				ed.Ke[o.varNum][o.varNum][i][j] += ed.JxW[qp] * o.eps * sum
			}
		}
	}
}
