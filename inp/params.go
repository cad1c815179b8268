// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"github.com/cpmech/gosl/chk"
)

// Prm holds one named numeric parameter
type Prm struct {
	N string  `json:"n"` // name of parameter
	V float64 `json:"v"` // value of parameter
}

// Prms holds a set of parameters
type Prms []*Prm

// Find returns parameter by name; returns nil if not found
func (o Prms) Find(name string) *Prm {
	for _, p := range o {
		if p.N == name {
			return p
		}
	}
	return nil
}

// Params holds the parameter bundle given to one contribution (kernel, bc,
// material, etc.). Every contribution receives one of these at construction
// time and must extract what it needs then; missing required entries are
// setup errors, never deferred to evaluation time.
type Params struct {

	// binding to fields and mesh regions
	Var     string   `json:"var"`     // name of primary variable
	Coupled []string `json:"coupled"` // names of coupled variables
	Blocks  []int    `json:"blocks"`  // subdomain ids; empty => active everywhere
	Bnds    []int    `json:"bnds"`    // boundary ids (bcs, aux bcs, dg kernels)

	// references to other contributions
	Fcn string `json:"fcn"` // name of a registered function
	Mat string `json:"mat"` // name of a material property

	// free-form numeric parameters
	Prms Prms `json:"prms"`
}

// GetPrm returns a required numeric parameter; failure is a setup error
func (o *Params) GetPrm(name string) (val float64, err error) {
	p := o.Prms.Find(name)
	if p == nil {
		err = chk.Err("required parameter %q is missing", name)
		return
	}
	val = p.V
	return
}

// GetPrmD returns a numeric parameter or a default value if absent
func (o *Params) GetPrmD(name string, dflt float64) float64 {
	if p := o.Prms.Find(name); p != nil {
		return p.V
	}
	return dflt
}

// HasPrm tells whether a numeric parameter was given
func (o *Params) HasPrm(name string) bool {
	return o.Prms.Find(name) != nil
}
