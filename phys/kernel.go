// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import (
	"github.com/cpmech/gosl/chk"
)

// Kernel defines a volumetric physics term. A kernel accumulates into the
// element scratchpad's Re and Ke; the assembly engine moves those into the
// global residual/jacobian.
type Kernel interface {
	Var() int                                                     // number of the variable this kernel acts on
	ComputeResidual(ed *ElementData, md *MaterialData)            // accumulate into ed.Re[Var()]
	ComputeJacobian(ed *ElementData, md *MaterialData)            // accumulate into ed.Ke[Var()][Var()]
	ComputeOffDiagJacobian(jvar int, ed *ElementData, md *MaterialData) // accumulate into ed.Ke[Var()][jvar]
}

// KernelAllocator allocates one kernel instance for one thread
type KernelAllocator func(ctx *BuildCtx) (Kernel, error)

// kernelAllocators holds all kernel allocators
var kernelAllocators = make(map[string]KernelAllocator)

// SetKernelAllocator registers a new kernel type
func SetKernelAllocator(typeName string, fcn KernelAllocator) {
	if _, ok := kernelAllocators[typeName]; ok {
		chk.Panic("cannot set allocator for kernel %q because it exists already", typeName)
	}
	kernelAllocators[typeName] = fcn
}

// NewKernel allocates a kernel from the factory
func NewKernel(typeName string, ctx *BuildCtx) (k Kernel, err error) {
	fcn, ok := kernelAllocators[typeName]
	if !ok {
		err = chk.Err("cannot find allocator for kernel type %q", typeName)
		return
	}
	return fcn(ctx)
}
