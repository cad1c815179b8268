// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import (
	"github.com/cpmech/gosl/chk"
)

// AuxKernel updates one auxiliary (explicit) field from solution and other
// auxiliary fields. Nodal kernels are evaluated per node with ad.Node/ad.UVals
// set; elemental kernels per cell with ad.Cell/ad.UAvg set.
type AuxKernel interface {
	Var() int    // auxiliary variable number (auxiliary numbering space)
	Nodal() bool // true => per-node evaluation; false => per-cell
	Compute(ad *AuxData) float64
}

// AuxKernelAllocator allocates one aux kernel instance for one thread
type AuxKernelAllocator func(ctx *BuildCtx) (AuxKernel, error)

var auxKernelAllocators = make(map[string]AuxKernelAllocator)

// SetAuxKernelAllocator registers a new aux kernel type
func SetAuxKernelAllocator(typeName string, fcn AuxKernelAllocator) {
	if _, ok := auxKernelAllocators[typeName]; ok {
		chk.Panic("cannot set allocator for aux kernel %q because it exists already", typeName)
	}
	auxKernelAllocators[typeName] = fcn
}

// NewAuxKernel allocates an aux kernel from the factory
func NewAuxKernel(typeName string, ctx *BuildCtx) (k AuxKernel, err error) {
	fcn, ok := auxKernelAllocators[typeName]
	if !ok {
		err = chk.Err("cannot find allocator for aux kernel type %q", typeName)
		return
	}
	return fcn(ctx)
}
