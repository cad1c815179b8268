// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/stretchr/testify/assert"

	"github.com/mieuicedu/moose/inp"
)

// testCtx builds a construction context with one solution variable "u" and
// one auxiliary variable "a"
func testCtx(prms *inp.Params) *BuildCtx {
	resolve := func(name string) (int, error) {
		if name == "u" {
			return 0, nil
		}
		return 0, chk.Err("cannot find variable %q", name)
	}
	resolveAux := func(name string) (int, error) {
		if name == "a" {
			return 0, nil
		}
		return 0, chk.Err("cannot find auxiliary variable %q", name)
	}
	return &BuildCtx{
		Name:       "test",
		Prms:       prms,
		Ndim:       2,
		NumVars:    func() int { return 1 },
		NumAuxVars: func() int { return 1 },
		Resolve:    resolve,
		ResolveAux: resolveAux,
		ResolveExt: func(name string) (int, error) {
			if name == "u" {
				return 0, nil
			}
			if name == "a" {
				return 1, nil
			}
			return 0, chk.Err("cannot find variable %q", name)
		},
		Function: func(name string) (Function, error) {
			if name == "one" {
				return &ConstantFcn{value: 1}, nil
			}
			return nil, chk.Err("cannot find function %q", name)
		},
	}
}

func prms(var_ string, entries ...*inp.Prm) *inp.Params {
	return &inp.Params{Var: var_, Prms: entries}
}

func prm(n string, v float64) *inp.Prm { return &inp.Prm{N: n, V: v} }

func TestFactoryUnknownTypes(t *testing.T) {
	ctx := testCtx(prms("u"))
	_, err := NewKernel("nope", ctx)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot find allocator")
	_, err = NewBC("nope", ctx)
	assert.Error(t, err)
	_, err = NewMaterial("nope", ctx)
	assert.Error(t, err)
	_, err = NewAuxKernel("nope", ctx)
	assert.Error(t, err)
	_, err = NewPostprocessor("nope", ctx)
	assert.Error(t, err)
	_, err = NewFunction("nope", ctx)
	assert.Error(t, err)
	_, err = NewDamper("nope", ctx)
	assert.Error(t, err)
	_, err = NewDGKernel("nope", ctx)
	assert.Error(t, err)
	_, err = NewStabilizer("nope", ctx)
	assert.Error(t, err)
	_, err = NewIC("nope", ctx)
	assert.Error(t, err)
}

func TestKernelAllocation(t *testing.T) {
	k, err := NewKernel("diffusion", testCtx(prms("u", prm("d", 2.5))))
	assert.NoError(t, err)
	assert.Equal(t, 0, k.Var())

	// unresolvable primary variable is a setup error
	_, err = NewKernel("diffusion", testCtx(prms("v")))
	assert.Error(t, err)

	// missing required parameter is a setup error
	_, err = NewKernel("reaction", testCtx(prms("u")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "required parameter")

	// coupled_force needs exactly one coupled variable
	_, err = NewKernel("coupled_force", testCtx(prms("u")))
	assert.Error(t, err)
	p := prms("u")
	p.Coupled = []string{"a"}
	k, err = NewKernel("coupled_force", testCtx(p))
	assert.NoError(t, err)
	assert.Equal(t, 1, k.(*CoupledForce).CoupledVar())
}

func TestBCCapabilities(t *testing.T) {
	bc, err := NewBC("dirichlet", testCtx(prms("u", prm("value", 3))))
	assert.NoError(t, err)
	ebc, ok := bc.(EssentialBC)
	assert.True(t, ok)
	assert.Equal(t, 3.0, ebc.Value(&BCNodeData{}))

	bc, err = NewBC("neumann", testCtx(prms("u", prm("value", 1))))
	assert.NoError(t, err)
	_, ok = bc.(NaturalBC)
	assert.True(t, ok)
	_, ok = bc.(EssentialBC)
	assert.False(t, ok)
}

func TestFunctions(t *testing.T) {
	f, err := NewFunction("constant", testCtx(prms("", prm("value", 7))))
	assert.NoError(t, err)
	assert.Equal(t, 7.0, f.F(123, []float64{4, 5}))

	f, err = NewFunction("ramp", testCtx(prms("", prm("slope", 2), prm("offset", 1))))
	assert.NoError(t, err)
	assert.Equal(t, 5.0, f.F(2, nil))

	f, err = NewFunction("sine", testCtx(prms("", prm("amp", 3), prm("omega", math.Pi))))
	assert.NoError(t, err)
	assert.InDelta(t, 3.0, f.F(0.5, nil), 1e-14)

	f, err = NewFunction("linear_space", testCtx(prms("", prm("c0", 1), prm("cx", 2), prm("cy", 3))))
	assert.NoError(t, err)
	assert.Equal(t, 1.0+2.0*0.5+3.0*0.25, f.F(0, []float64{0.5, 0.25}))
}

func TestDamperValidation(t *testing.T) {
	_, err := NewDamper("constant_damper", testCtx(prms("", prm("factor", 1.5))))
	assert.Error(t, err)

	d, err := NewDamper("constant_damper", testCtx(prms("", prm("factor", 0.5))))
	assert.NoError(t, err)
	assert.Equal(t, -1, d.Var())
	assert.Equal(t, 0.5, d.ComputeDamping(nil))

	_, err = NewDamper("max_increment", testCtx(prms("", prm("max", -1))))
	assert.Error(t, err)
}

func TestMaterialData(t *testing.T) {
	md := NewMaterialData(0, 4)
	assert.Equal(t, 2.0, md.Value("diffusivity", 1, 2.0))
	md.SetProp("diffusivity", 3)
	assert.Equal(t, 3.0, md.Value("diffusivity", 1, 2.0))
	md.SetPropAt("diffusivity", 2, 9)
	assert.Equal(t, 9.0, md.Value("diffusivity", 2, 2.0))
	assert.Equal(t, 3.0, md.Value("diffusivity", 0, 2.0))
}

func TestConstantMaterial(t *testing.T) {
	m, err := NewMaterial("constant", testCtx(prms("", prm("diffusivity", 2.5), prm("density", 1.2))))
	assert.NoError(t, err)
	md := NewMaterialData(0, 4)
	ed := &ElementData{Nqp: 4}
	m.ComputeProperties(ed, md)
	assert.Equal(t, 2.5, md.Value("diffusivity", 3, 0))
	assert.Equal(t, 1.2, md.Value("density", 0, 0))
}
