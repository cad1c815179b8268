// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import (
	"github.com/mieuicedu/moose/inp"
)

// BuildCtx is the narrow contract a contribution sees at construction time.
// Allocators resolve coupled variable names and functions through it, instead
// of reaching into the owning system; unresolvable names are setup errors and
// must be reported immediately.
type BuildCtx struct {
	Tid  int         // thread this instance belongs to
	Name string      // user-assigned instance name
	Prms *inp.Params // parameter bundle
	Ndim int         // space dimension

	// name resolution; provided by the owning system
	NumVars    func() int                        // number of solution variables
	NumAuxVars func() int                        // number of auxiliary variables
	Resolve    func(name string) (int, error)    // solution variable name => number
	ResolveAux func(name string) (int, error)    // auxiliary variable name => aux number
	ResolveExt func(name string) (int, error)    // solution or auxiliary name => extended number
	Function   func(name string) (Function, error) // registered function lookup
}
