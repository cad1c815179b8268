// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import (
	"github.com/cpmech/gosl/chk"
)

// Postprocessor reduces the traversal to a scalar. Instances are per-thread:
// Init clears the partial state, Execute* accumulates during the traversal,
// Join folds another thread's partial into this one, and Value finalises.
type Postprocessor interface {
	Init()
	Join(other Postprocessor)
	Value() float64
}

// ElementPostprocessor is the capability of postprocessors executed per
// element
type ElementPostprocessor interface {
	Postprocessor
	ExecuteElem(ed *ElementData, md *MaterialData)
}

// NodalPostprocessor is the capability of postprocessors executed per node
type NodalPostprocessor interface {
	Postprocessor
	ExecuteNode(ad *AuxData)
}

// PostprocessorAllocator allocates one postprocessor instance for one thread
type PostprocessorAllocator func(ctx *BuildCtx) (Postprocessor, error)

var postprocessorAllocators = make(map[string]PostprocessorAllocator)

// SetPostprocessorAllocator registers a new postprocessor type
func SetPostprocessorAllocator(typeName string, fcn PostprocessorAllocator) {
	if _, ok := postprocessorAllocators[typeName]; ok {
		chk.Panic("cannot set allocator for postprocessor %q because it exists already", typeName)
	}
	postprocessorAllocators[typeName] = fcn
}

// NewPostprocessor allocates a postprocessor from the factory
func NewPostprocessor(typeName string, ctx *BuildCtx) (pp Postprocessor, err error) {
	fcn, ok := postprocessorAllocators[typeName]
	if !ok {
		err = chk.Err("cannot find allocator for postprocessor type %q", typeName)
		return
	}
	pp, err = fcn(ctx)
	if err != nil {
		return
	}
	switch pp.(type) {
	case ElementPostprocessor, NodalPostprocessor:
	default:
		err = chk.Err("postprocessor type %q implements neither element nor nodal capability", typeName)
	}
	return
}
