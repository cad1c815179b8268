// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

// ConstantMaterial publishes each of its parameters as a uniform property at
// all integration points; e.g. {"diffusivity": 2.5} makes kernels see a
// diffusivity of 2.5 everywhere the material is active
type ConstantMaterial struct {
	props map[string]float64
}

func init() {
	SetMaterialAllocator("constant", func(ctx *BuildCtx) (Material, error) {
		o := &ConstantMaterial{props: make(map[string]float64)}
		if ctx.Prms != nil {
			for _, p := range ctx.Prms.Prms {
				o.props[p.N] = p.V
			}
		}
		return o, nil
	})
}

func (o *ConstantMaterial) SubdomainSetup(sub int) {
}

func (o *ConstantMaterial) ComputeProperties(ed *ElementData, md *MaterialData) {
	for name, val := range o.props {
		o.setAll(md, name, val, ed.Nqp)
	}
}

func (o *ConstantMaterial) ComputeFaceProperties(fd *FaceData, md *MaterialData) {
	for name, val := range o.props {
		o.setAll(md, name, val, fd.Nfqp)
	}
}

func (o *ConstantMaterial) setAll(md *MaterialData, name string, val float64, nqp int) {
	for ip := 0; ip < nqp; ip++ {
		md.SetPropAt(name, ip, val)
	}
}
