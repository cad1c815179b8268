// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import (
	"github.com/cpmech/gosl/chk"
)

// Function is a time/space function usable by other contributions; e.g. the
// prescribed value of a dirichlet condition or the density of a body force
type Function interface {
	F(t float64, x []float64) float64
}

// FunctionAllocator allocates one function instance for one thread
type FunctionAllocator func(ctx *BuildCtx) (Function, error)

var functionAllocators = make(map[string]FunctionAllocator)

// SetFunctionAllocator registers a new function type
func SetFunctionAllocator(typeName string, fcn FunctionAllocator) {
	if _, ok := functionAllocators[typeName]; ok {
		chk.Panic("cannot set allocator for function %q because it exists already", typeName)
	}
	functionAllocators[typeName] = fcn
}

// NewFunction allocates a function from the factory
func NewFunction(typeName string, ctx *BuildCtx) (f Function, err error) {
	fcn, ok := functionAllocators[typeName]
	if !ok {
		err = chk.Err("cannot find allocator for function type %q", typeName)
		return
	}
	return fcn(ctx)
}
