// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/mieuicedu/moose/inp"
)

// adaptErrFloor is the absolute error below which the mesh is left alone;
// without it a uniformly tiny error field would still refine the cells near
// its (meaningless) maximum
const adaptErrFloor = 1e-12

// AdaptState holds the h-adaptivity controls
type AdaptState struct {
	On         bool
	MaxSteps   int     // refinement cycles per solve
	IniSteps   int     // refinement cycles driven by initial conditions
	RefFrac    float64 // refine cells with error above RefFrac*maxErr
	CoarseFrac float64 // coarsen cells with error below CoarseFrac*maxErr
	MaxHlevel  int     // cells at this level are never refined further
}

// ErrorEstimator computes one error indicator per cell
type ErrorEstimator interface {
	Estimate(sys *System) ([]float64, error)
}

// EstimatorAllocator allocates an error estimator
type EstimatorAllocator func() ErrorEstimator

var estimatorAllocators = make(map[string]EstimatorAllocator)

// SetEstimatorAllocator registers a new error estimator type
func SetEstimatorAllocator(typeName string, fcn EstimatorAllocator) {
	if _, ok := estimatorAllocators[typeName]; ok {
		chk.Panic("cannot set allocator for estimator %q because it exists already", typeName)
	}
	estimatorAllocators[typeName] = fcn
}

// InitAdaptivity enables adaptivity with the given controls
func (o *System) InitAdaptivity(ad *inp.AdaptData) (err error) {
	o.Adapt.On = ad.On
	o.Adapt.MaxSteps = ad.MaxSteps
	o.Adapt.IniSteps = ad.IniSteps
	o.Adapt.RefFrac = ad.RefFrac
	o.Adapt.CoarseFrac = ad.CoarseFrac
	o.Adapt.MaxHlevel = ad.MaxHlevel
	if ad.On {
		return o.SetErrorEstimator(ad.Estimator)
	}
	return
}

// SetErrorEstimator selects the error estimator driving refinement
func (o *System) SetErrorEstimator(name string) (err error) {
	fcn, ok := estimatorAllocators[name]
	if !ok {
		return chk.Err("cannot find allocator for estimator type %q", name)
	}
	o.estimator = fcn()
	return
}

// SetAdaptivityParam sets one adaptivity control by its user-facing name.
// Unknown names are reported and ignored, so input decks carrying controls of
// other estimators keep working.
func (o *System) SetAdaptivityParam(name string, val float64) {
	switch name {
	case "refine fraction":
		o.Adapt.RefFrac = val
	case "coarsen fraction":
		o.Adapt.CoarseFrac = val
	case "max h-level":
		o.Adapt.MaxHlevel = int(val)
	case "max steps":
		o.Adapt.MaxSteps = int(val)
	case "initial steps":
		o.Adapt.IniSteps = int(val)
	default:
		io.Pf("warning: unknown adaptivity parameter %q ignored\n", name)
	}
}

// AdaptMesh runs one adaptivity cycle: estimate per-cell errors, refine the
// cells above the refine threshold (or, when none qualifies, coarsen those
// below the coarsen threshold), project the solution onto the new mesh and
// resize everything. Returns whether the mesh changed.
func (o *System) AdaptMesh() (changed bool, err error) {
	if !o.Adapt.On {
		return
	}
	if o.estimator == nil {
		return false, chk.Err("adaptivity is on but no error estimator is set")
	}
	o.CheckSystemsIntegrity()

	cellErrs, err := o.estimator.Estimate(o)
	if err != nil {
		return false, chk.Err("cannot estimate errors:\n%v", err)
	}
	maxErr := floats.Max(cellErrs)
	if maxErr <= adaptErrFloor {
		return
	}

	refFlags := make([]bool, len(o.mesh.Cells))
	coarseFlags := make([]bool, len(o.mesh.Cells))
	anyRef, anyCoarse := false, false
	for i, e := range cellErrs {
		cell := o.mesh.Cells[i]
		switch {
		case e >= o.Adapt.RefFrac*maxErr && cell.Level < o.Adapt.MaxHlevel:
			refFlags[i] = true
			anyRef = true
		case e <= o.Adapt.CoarseFrac*maxErr && cell.Level > 0:
			coarseFlags[i] = true
			anyCoarse = true
		}
	}

	// keep the state keyed by vertex before the mesh changes underneath it
	oldNverts := o.nverts
	oldSol := la.NewVector(o.Neq)
	copy(oldSol, o.Sol)
	oldAux := utl.Alloc(o.Fields.NumAuxVars(), oldNverts)
	for a := range oldAux {
		copy(oldAux[a], o.AuxNod[a])
	}

	switch {
	case anyRef:
		changed, err = o.mesh.RefineCells(refFlags)
	case anyCoarse:
		changed, err = o.mesh.CoarsenCells(coarseFlags)
	}
	if err != nil {
		return false, chk.Err("cannot adapt mesh:\n%v", err)
	}
	if !changed {
		return
	}

	o.MeshChanged()
	if o.dispMesh != nil {
		o.dispMesh = o.mesh.CloneCoords()
	}
	if err = o.SizeEverything(); err != nil {
		return
	}
	o.projectState(oldNverts, oldSol, oldAux)
	return
}

// projectState maps the saved solution onto the adapted mesh: surviving
// vertices keep their values; vertices introduced by refinement get the
// average of the original vertices of the cells containing them, which is
// exact linear interpolation for mid-edge and center vertices
func (o *System) projectState(oldNverts int, oldSol la.Vector, oldAux [][]float64) {
	nsol := o.Fields.NumVars()
	naux := o.Fields.NumAuxVars()

	oldNodal := func(v, vert int) float64 { return oldSol[v*oldNverts+vert] }

	for vert := 0; vert < o.nverts; vert++ {
		if vert < oldNverts {
			for v := 0; v < nsol; v++ {
				o.Sol[o.EqNum(v, vert)] = oldNodal(v, vert)
			}
			for a := 0; a < naux; a++ {
				o.AuxNod[a][vert] = oldAux[a][vert]
			}
			continue
		}
		sum := make([]float64, nsol+naux)
		n := 0
		for _, cid := range o.mesh.Vert2cells[vert] {
			for _, vv := range o.mesh.Cells[cid].Verts {
				if vv >= oldNverts {
					continue
				}
				for v := 0; v < nsol; v++ {
					sum[v] += oldNodal(v, vv)
				}
				for a := 0; a < naux; a++ {
					sum[nsol+a] += oldAux[a][vv]
				}
				n++
			}
		}
		if n > 0 {
			for v := 0; v < nsol; v++ {
				o.Sol[o.EqNum(v, vert)] = sum[v] / float64(n)
			}
			for a := 0; a < naux; a++ {
				o.AuxNod[a][vert] = sum[nsol+a] / float64(n)
			}
		}
	}

	// hanging vertices are slaved to their edge ends, shallowest first so
	// masters settle before their dependents
	for i := len(o.hangEqs) - 1; i >= 0; i-- {
		h := o.hangEqs[i]
		o.Sol[h[0]] = 0.5 * (o.Sol[h[1]] + o.Sol[h[2]])
	}

	// the history is restarted from the projected state
	copy(o.SolOld, o.Sol)
	copy(o.SolOlder, o.Sol)
	for i := range o.SolDot {
		o.SolDot[i] = 0
		o.SolDotOld[i] = 0
	}
}

// GradientJump estimates per-cell errors from the jump of the cell-average
// solution gradient across interior faces
type GradientJump struct{}

func init() {
	SetEstimatorAllocator("gradient-jump", func() ErrorEstimator { return &GradientJump{} })
}

// Estimate computes one indicator per cell
func (o *GradientJump) Estimate(sys *System) (cellErrs []float64, err error) {
	ncells := len(sys.mesh.Cells)
	ndim := sys.mesh.Ndim
	nsol := sys.Fields.NumVars()

	// cell-average gradient, summed over solution variables
	grads := utl.Alloc(ncells, ndim)
	ed := sys.edata[0]
	for _, cell := range sys.mesh.Cells {
		if err = sys.reinitElement(0, cell, ed); err != nil {
			return
		}
		for v := 0; v < nsol; v++ {
			for qp := 0; qp < ed.Nqp; qp++ {
				for d := 0; d < ndim; d++ {
					grads[cell.Id][d] += ed.GradU[v][qp][d] / float64(ed.Nqp)
				}
			}
		}
	}

	// jump across interior faces
	cellErrs = make([]float64, ncells)
	for _, cell := range sys.mesh.Cells {
		for _, neigh := range cell.Neighs {
			if neigh < 0 {
				continue
			}
			for d := 0; d < ndim; d++ {
				cellErrs[cell.Id] += math.Abs(grads[cell.Id][d] - grads[neigh][d])
			}
		}
	}
	return
}
