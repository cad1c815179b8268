// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
)

// FieldSet is the registry of solution and auxiliary variables. Solution
// variables own implicit degrees of freedom; auxiliary variables are explicit
// fields updated outside the nonlinear solve. Both live in a shared extended
// numbering: solution variables keep their own numbers and auxiliary variable
// a maps to NumVars()+a, so scratch data can address any field uniformly.
type FieldSet struct {

	// solution variables
	names  []string
	nums   map[string]int
	orders []int
	blocks [][]int
	scales []float64

	// auxiliary variables
	auxNames  []string
	auxNums   map[string]int
	auxNodal  []bool
	auxBlocks [][]int
}

// NewFieldSet allocates an empty FieldSet
func NewFieldSet() *FieldSet {
	return &FieldSet{
		nums:    make(map[string]int),
		auxNums: make(map[string]int),
	}
}

// AddVariable registers a solution variable and returns its number. Numbers
// are assigned in registration order, so previously assigned numbers are
// never disturbed.
//   order  -- interpolation order; only 1 (linear Lagrange) is available
//   blocks -- subdomain restriction; empty => everywhere
func (o *FieldSet) AddVariable(name string, order int, blocks []int) (num int, err error) {
	if _, ok := o.nums[name]; ok {
		return 0, chk.Err("variable %q exists already", name)
	}
	if _, ok := o.auxNums[name]; ok {
		return 0, chk.Err("variable %q exists already as an auxiliary variable", name)
	}
	if order != 1 {
		return 0, chk.Err("interpolation order %d is not available", order)
	}
	num = len(o.names)
	o.names = append(o.names, name)
	o.nums[name] = num
	o.orders = append(o.orders, order)
	o.blocks = append(o.blocks, blocks)
	o.scales = append(o.scales, 1)
	return
}

// AddAuxVariable registers an auxiliary variable and returns its number in
// the auxiliary space.
//   order -- 0 => elemental (piecewise constant); 1 => nodal
func (o *FieldSet) AddAuxVariable(name string, order int, blocks []int) (num int, err error) {
	if _, ok := o.auxNums[name]; ok {
		return 0, chk.Err("auxiliary variable %q exists already", name)
	}
	if _, ok := o.nums[name]; ok {
		return 0, chk.Err("auxiliary variable %q exists already as a solution variable", name)
	}
	if order < 0 || order > 1 {
		return 0, chk.Err("interpolation order %d is not available", order)
	}
	num = len(o.auxNames)
	o.auxNames = append(o.auxNames, name)
	o.auxNums[name] = num
	o.auxNodal = append(o.auxNodal, order == 1)
	o.auxBlocks = append(o.auxBlocks, blocks)
	return
}

// NumVars returns the number of solution variables
func (o *FieldSet) NumVars() int { return len(o.names) }

// NumAuxVars returns the number of auxiliary variables
func (o *FieldSet) NumAuxVars() int { return len(o.auxNames) }

// NumExt returns the size of the extended numbering
func (o *FieldSet) NumExt() int { return len(o.names) + len(o.auxNames) }

// HasVariable tells whether a solution variable exists
func (o *FieldSet) HasVariable(name string) bool {
	_, ok := o.nums[name]
	return ok
}

// HasAuxVariable tells whether an auxiliary variable exists
func (o *FieldSet) HasAuxVariable(name string) bool {
	_, ok := o.auxNums[name]
	return ok
}

// VariableNumber returns the number of a solution variable
func (o *FieldSet) VariableNumber(name string) (num int, err error) {
	num, ok := o.nums[name]
	if !ok {
		err = chk.Err("cannot find variable %q", name)
	}
	return
}

// AuxVariableNumber returns the number of an auxiliary variable
func (o *FieldSet) AuxVariableNumber(name string) (num int, err error) {
	num, ok := o.auxNums[name]
	if !ok {
		err = chk.Err("cannot find auxiliary variable %q", name)
	}
	return
}

// VariableName returns the name of a solution variable
func (o *FieldSet) VariableName(num int) (name string, err error) {
	if num < 0 || num >= len(o.names) {
		err = chk.Err("variable number %d is out of range", num)
		return
	}
	return o.names[num], nil
}

// AuxVariableName returns the name of an auxiliary variable
func (o *FieldSet) AuxVariableName(num int) (name string, err error) {
	if num < 0 || num >= len(o.auxNames) {
		err = chk.Err("auxiliary variable number %d is out of range", num)
		return
	}
	return o.auxNames[num], nil
}

// ModifiedAuxVarNum maps an auxiliary variable number into the extended
// numbering shared with solution variables
func (o *FieldSet) ModifiedAuxVarNum(auxNum int) int {
	return len(o.names) + auxNum
}

// ExtNumber resolves a name in either space to its extended number
func (o *FieldSet) ExtNumber(name string) (num int, err error) {
	if num, ok := o.nums[name]; ok {
		return num, nil
	}
	if num, ok := o.auxNums[name]; ok {
		return o.ModifiedAuxVarNum(num), nil
	}
	err = chk.Err("cannot find variable %q", name)
	return
}

// AuxIsNodal tells whether an auxiliary variable is stored per node
func (o *FieldSet) AuxIsNodal(auxNum int) bool { return o.auxNodal[auxNum] }

// VariableBlocks returns the subdomain restriction of a solution variable
func (o *FieldSet) VariableBlocks(num int) []int { return o.blocks[num] }

// SetVarScaling sets the residual scaling factor of one solution variable
func (o *FieldSet) SetVarScaling(name string, scale float64) (err error) {
	num, err := o.VariableNumber(name)
	if err != nil {
		return
	}
	if scale <= 0 {
		return chk.Err("scaling factor must be positive. %v is invalid", scale)
	}
	o.scales[num] = scale
	return
}

// VarScale returns the residual scaling factor of one solution variable
func (o *FieldSet) VarScale(num int) float64 { return o.scales[num] }
