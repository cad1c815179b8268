// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import (
	"github.com/cpmech/gosl/chk"
)

// InitialCondition provides the initial value of one variable at a point
type InitialCondition interface {
	Var() int
	IsAux() bool
	Value(x []float64) float64
}

// ICAllocator allocates one initial condition instance for one thread
type ICAllocator func(ctx *BuildCtx) (InitialCondition, error)

var icAllocators = make(map[string]ICAllocator)

// SetICAllocator registers a new initial condition type
func SetICAllocator(typeName string, fcn ICAllocator) {
	if _, ok := icAllocators[typeName]; ok {
		chk.Panic("cannot set allocator for initial condition %q because it exists already", typeName)
	}
	icAllocators[typeName] = fcn
}

// NewIC allocates an initial condition from the factory
func NewIC(typeName string, ctx *BuildCtx) (ic InitialCondition, err error) {
	fcn, ok := icAllocators[typeName]
	if !ok {
		err = chk.Err("cannot find allocator for initial condition type %q", typeName)
		return
	}
	return fcn(ctx)
}
