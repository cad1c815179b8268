// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Snapshot is the serialised state written per output step
type Snapshot struct {
	Time    float64              `json:"time"`
	Step    int                  `json:"step"`
	Vars    map[string][]float64 `json:"vars"`    // solution fields by name, per vertex
	AuxNod  map[string][]float64 `json:"auxnod"`  // nodal auxiliary fields
	AuxElem map[string][]float64 `json:"auxelem"` // elemental auxiliary fields, per cell
}

// OutputSystem writes a JSON snapshot of the current state into the output
// directory. A no-op for systems assembled without simulation input.
func (o *System) OutputSystem(step int) (err error) {
	if o.Sim == nil {
		return
	}
	snap := Snapshot{
		Time:    o.Time.T,
		Step:    step,
		Vars:    make(map[string][]float64),
		AuxNod:  make(map[string][]float64),
		AuxElem: make(map[string][]float64),
	}
	for v := 0; v < o.Fields.NumVars(); v++ {
		name, _ := o.Fields.VariableName(v)
		vals := make([]float64, o.nverts)
		for vert := 0; vert < o.nverts; vert++ {
			vals[vert] = o.Sol[o.EqNum(v, vert)]
		}
		snap.Vars[name] = vals
	}
	for a := 0; a < o.Fields.NumAuxVars(); a++ {
		name, _ := o.Fields.AuxVariableName(a)
		if o.Fields.AuxIsNodal(a) {
			snap.AuxNod[name] = o.AuxNod[a]
		} else {
			snap.AuxElem[name] = o.AuxElem[a]
		}
	}
	b, err := json.MarshalIndent(&snap, "", "  ")
	if err != nil {
		return chk.Err("cannot marshal snapshot:\n%v", err)
	}
	if err = os.MkdirAll(o.Sim.Data.DirOut, 0777); err != nil {
		return chk.Err("cannot create output directory %q:\n%v", o.Sim.Data.DirOut, err)
	}
	fn := filepath.Join(o.Sim.Data.DirOut, io.Sf("%s-%04d.json", o.Sim.FnameKey, step))
	if err = os.WriteFile(fn, b, 0666); err != nil {
		return chk.Err("cannot write snapshot %q:\n%v", fn, err)
	}
	return
}

// OutputPostprocessors appends one CSV line with the current postprocessor
// values; the header is written on first use. A no-op without postprocessors
// or simulation input.
func (o *System) OutputPostprocessors() (err error) {
	if o.Sim == nil || len(o.ppNames) == 0 {
		return
	}
	if err = os.MkdirAll(o.Sim.Data.DirOut, 0777); err != nil {
		return chk.Err("cannot create output directory %q:\n%v", o.Sim.Data.DirOut, err)
	}
	fn := filepath.Join(o.Sim.Data.DirOut, io.Sf("%s-pps.csv", o.Sim.FnameKey))
	_, serr := os.Stat(fn)
	f, err := os.OpenFile(fn, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return chk.Err("cannot open postprocessor output %q:\n%v", fn, err)
	}
	defer f.Close()
	if serr != nil {
		line := "time"
		for _, name := range o.ppNames {
			line += "," + name
		}
		if _, err = f.WriteString(line + "\n"); err != nil {
			return
		}
	}
	line := io.Sf("%g", o.Time.T)
	for _, name := range o.ppNames {
		line += io.Sf(",%g", o.ppVals[name])
	}
	_, err = f.WriteString(line + "\n")
	return
}
