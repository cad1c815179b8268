// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import (
	"github.com/cpmech/gosl/chk"
)

// Damper bounds the magnitude of a Newton update. ComputeDamping returns a
// factor in (0,1]; 1 means no restriction. The engine takes the minimum over
// all dampers and all elements they apply to.
type Damper interface {
	Var() int // variable the damper watches; -1 => all
	ComputeDamping(dd *DamperData) float64
}

// DamperAllocator allocates one damper instance for one thread
type DamperAllocator func(ctx *BuildCtx) (Damper, error)

var damperAllocators = make(map[string]DamperAllocator)

// SetDamperAllocator registers a new damper type
func SetDamperAllocator(typeName string, fcn DamperAllocator) {
	if _, ok := damperAllocators[typeName]; ok {
		chk.Panic("cannot set allocator for damper %q because it exists already", typeName)
	}
	damperAllocators[typeName] = fcn
}

// NewDamper allocates a damper from the factory
func NewDamper(typeName string, ctx *BuildCtx) (d Damper, err error) {
	fcn, ok := damperAllocators[typeName]
	if !ok {
		err = chk.Err("cannot find allocator for damper type %q", typeName)
		return
	}
	return fcn(ctx)
}
