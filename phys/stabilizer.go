// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import (
	"github.com/cpmech/gosl/chk"
)

// Stabilizer adds stabilization terms to the residual of one variable; e.g.
// artificial diffusion for advection-dominated problems. Like materials,
// stabilizers get a SubdomainSetup notification to cache subdomain-invariant
// state.
type Stabilizer interface {
	Var() int
	SubdomainSetup(sub int)
	ComputeResidual(ed *ElementData, md *MaterialData)
	ComputeJacobian(ed *ElementData, md *MaterialData)
}

// StabilizerAllocator allocates one stabilizer instance for one thread
type StabilizerAllocator func(ctx *BuildCtx) (Stabilizer, error)

var stabilizerAllocators = make(map[string]StabilizerAllocator)

// SetStabilizerAllocator registers a new stabilizer type
func SetStabilizerAllocator(typeName string, fcn StabilizerAllocator) {
	if _, ok := stabilizerAllocators[typeName]; ok {
		chk.Panic("cannot set allocator for stabilizer %q because it exists already", typeName)
	}
	stabilizerAllocators[typeName] = fcn
}

// NewStabilizer allocates a stabilizer from the factory
func NewStabilizer(typeName string, ctx *BuildCtx) (s Stabilizer, err error) {
	fcn, ok := stabilizerAllocators[typeName]
	if !ok {
		err = chk.Err("cannot find allocator for stabilizer type %q", typeName)
		return
	}
	return fcn(ctx)
}
