// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
)

// TimeState holds the transient state and the finite-difference weights of
// the active time integration scheme. The time derivative is expressed as
//   u_dot = w0*u + w1*u_old + w2*u_older + wdold*u_dot_old
// so schemes differ only in their weights and the engine never branches on
// the scheme during assembly.
type TimeState struct {
	Scheme string
	Order  int // formal order of accuracy
	Step   int // number of completed steps
	T      float64
	Dt     float64
	DtOld  float64

	w0, w1, w2, wdold float64
	eigen             bool
}

// SetScheme selects the time integration scheme
func (o *TimeState) SetScheme(name string) (err error) {
	switch name {
	case "implicit-euler":
		o.Order = 1
	case "bdf2", "crank-nicolson":
		o.Order = 2
	default:
		return chk.Err("cannot find time integration scheme %q", name)
	}
	o.Scheme = name
	o.computeWeights()
	return
}

// TimeSteppingOrder returns the formal order of the active scheme
func (o *TimeState) TimeSteppingOrder() int { return o.Order }

// DuDotDu returns d(u_dot)/du of the active scheme
func (o *TimeState) DuDotDu() float64 { return o.w0 }

// ReinitDT sets a new time step size and recomputes the scheme weights. The
// previous step size rotates into DtOld only when a step completes, so a
// mid-step cutback keeps bdf2's history intact.
func (o *TimeState) ReinitDT(dt float64) {
	o.Dt = dt
	o.computeWeights()
}

// computeWeights derives the finite-difference weights for the current step
// sizes. Zero (or negative) dt means steady state; bdf2 falls back to the
// backward Euler weights until two old solutions exist.
func (o *TimeState) computeWeights() {
	o.w0, o.w1, o.w2, o.wdold = 0, 0, 0, 0
	if o.eigen || o.Dt <= 0 {
		return
	}
	switch o.Scheme {
	case "implicit-euler":
		o.w0 = 1.0 / o.Dt
		o.w1 = -1.0 / o.Dt
	case "bdf2":
		if o.Step < 2 || o.DtOld <= 0 {
			o.w0 = 1.0 / o.Dt
			o.w1 = -1.0 / o.Dt
			return
		}
		dt, dtOld := o.Dt, o.DtOld
		o.w0 = (2.0*dt + dtOld) / (dt * (dt + dtOld))
		o.w1 = -(dt + dtOld) / (dt * dtOld)
		o.w2 = dt / (dtOld * (dt + dtOld))
	case "crank-nicolson":
		o.w0 = 2.0 / o.Dt
		o.w1 = -2.0 / o.Dt
		o.wdold = -1.0
	}
}

// CopyOldSolutions rotates the solution history: older <= old <= current
func (o *System) CopyOldSolutions() {
	copy(o.SolOlder, o.SolOld)
	copy(o.SolOld, o.Sol)
	copy(o.SolDotOld, o.SolDot)
}

// OnTimestepBegin starts a new time step: rotates the history, applies the
// new step size and advances time
func (o *System) OnTimestepBegin(dt float64) {
	o.CopyOldSolutions()
	o.Time.DtOld = o.Time.Dt
	o.Time.ReinitDT(dt)
	o.Time.T += dt
	o.Time.Step++
	o.Time.computeWeights()
}

// ReinitDT recomputes the scheme weights for a new step size without
// advancing time
func (o *System) ReinitDT(dt float64) {
	o.Time.ReinitDT(dt)
}

// ReinitEigen switches the system to eigenvalue mode: all time weights are
// zeroed so transient kernels contribute nothing
func (o *System) ReinitEigen() {
	o.Eigen = true
	o.Time.eigen = true
	o.Time.computeWeights()
}

// ComputeTimeDeriv evaluates the solution time derivative with the active
// scheme's weights
func (o *System) ComputeTimeDeriv() {
	t := &o.Time
	for i := 0; i < o.Neq; i++ {
		o.SolDot[i] = t.w0*o.Sol[i] + t.w1*o.SolOld[i] + t.w2*o.SolOlder[i] + t.wdold*o.SolDotOld[i]
	}
}
