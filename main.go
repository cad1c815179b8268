// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// moose solves one multiphysics finite element problem described by a .sim
// input file; e.g.
//   moose simulations/diffusion.sim
package main

import (
	"github.com/cpmech/gosl/io"

	"github.com/mieuicedu/moose/fem"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// input data
	simfn, _ := io.ArgToFilename(0, "sim", ".sim", true)
	verbose := io.ArgToBool(1, true)
	io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
		"simulation filename", "simfn", simfn,
		"show messages", "verbose", verbose,
	))

	// run simulation
	if err := fem.RunSimulation(simfn, verbose); err != nil {
		io.PfRed("ERROR: %v\n", err)
	}
}
