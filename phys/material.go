// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import (
	"github.com/cpmech/gosl/chk"
)

// Material computes properties at the integration points of the current
// element. SubdomainSetup is called once whenever the traversal enters a new
// subdomain, so subdomain-invariant state can be cached there instead of
// being recomputed per element.
type Material interface {
	SubdomainSetup(sub int)
	ComputeProperties(ed *ElementData, md *MaterialData)
}

// FaceMaterial is the optional capability of materials that also provide
// properties on boundary faces
type FaceMaterial interface {
	ComputeFaceProperties(fd *FaceData, md *MaterialData)
}

// MaterialAllocator allocates one material instance for one thread
type MaterialAllocator func(ctx *BuildCtx) (Material, error)

var materialAllocators = make(map[string]MaterialAllocator)

// SetMaterialAllocator registers a new material type
func SetMaterialAllocator(typeName string, fcn MaterialAllocator) {
	if _, ok := materialAllocators[typeName]; ok {
		chk.Panic("cannot set allocator for material %q because it exists already", typeName)
	}
	materialAllocators[typeName] = fcn
}

// NewMaterial allocates a material from the factory
func NewMaterial(typeName string, ctx *BuildCtx) (m Material, err error) {
	fcn, ok := materialAllocators[typeName]
	if !ok {
		err = chk.Err("cannot find allocator for material type %q", typeName)
		return
	}
	return fcn(ctx)
}
