// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import (
	"github.com/cpmech/gosl/chk"
)

// DGKernel defines an interface term coupling a cell to its neighbour across
// an interior face. Both sides are reinitialised consistently before the call:
// fd holds the element side, nfd the neighbour side, with matching integration
// points and a normal pointing from element to neighbour.
type DGKernel interface {
	Var() int
	ComputeResidual(fd, nfd *FaceData)
	ComputeJacobian(fd, nfd *FaceData) // fd.Ke: ee, fd.KeN: en, nfd.Ke: nn, nfd.KeN: ne
}

// DGKernelAllocator allocates one dg kernel instance for one thread
type DGKernelAllocator func(ctx *BuildCtx) (DGKernel, error)

var dgKernelAllocators = make(map[string]DGKernelAllocator)

// SetDGKernelAllocator registers a new dg kernel type
func SetDGKernelAllocator(typeName string, fcn DGKernelAllocator) {
	if _, ok := dgKernelAllocators[typeName]; ok {
		chk.Panic("cannot set allocator for dg kernel %q because it exists already", typeName)
	}
	dgKernelAllocators[typeName] = fcn
}

// NewDGKernel allocates a dg kernel from the factory
func NewDGKernel(typeName string, ctx *BuildCtx) (k DGKernel, err error) {
	fcn, ok := dgKernelAllocators[typeName]
	if !ok {
		err = chk.Err("cannot find allocator for dg kernel type %q", typeName)
		return
	}
	return fcn(ctx)
}
