// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import (
	"github.com/cpmech/gosl/chk"
)

// BC is the common contract of boundary conditions. Concrete types implement
// exactly one of the capability interfaces below.
type BC interface {
	Var() int
}

// EssentialBC is a node-based (dirichlet type) boundary condition, enforced
// by direct row replacement after assembly: the residual row becomes
// current_value - Value(bd).
type EssentialBC interface {
	BC
	Value(bd *BCNodeData) float64
}

// NaturalBC is a side-based (flux type) boundary condition, integrated over
// boundary faces into the residual
type NaturalBC interface {
	BC
	ComputeResidual(fd *FaceData, md *MaterialData)
	ComputeJacobian(fd *FaceData, md *MaterialData)
}

// BCAllocator allocates one boundary condition instance for one thread
type BCAllocator func(ctx *BuildCtx) (BC, error)

var bcAllocators = make(map[string]BCAllocator)

// SetBCAllocator registers a new boundary condition type
func SetBCAllocator(typeName string, fcn BCAllocator) {
	if _, ok := bcAllocators[typeName]; ok {
		chk.Panic("cannot set allocator for bc %q because it exists already", typeName)
	}
	bcAllocators[typeName] = fcn
}

// NewBC allocates a boundary condition from the factory
func NewBC(typeName string, ctx *BuildCtx) (bc BC, err error) {
	fcn, ok := bcAllocators[typeName]
	if !ok {
		err = chk.Err("cannot find allocator for bc type %q", typeName)
		return
	}
	bc, err = fcn(ctx)
	if err != nil {
		return
	}
	switch bc.(type) {
	case EssentialBC, NaturalBC:
	default:
		err = chk.Err("bc type %q implements neither essential nor natural capability", typeName)
	}
	return
}
