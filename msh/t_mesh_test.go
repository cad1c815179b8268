// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenGrid2D(t *testing.T) {
	m := GenGrid2D(2, 2, 1, 1)
	assert.Equal(t, 9, len(m.Verts))
	assert.Equal(t, 4, len(m.Cells))
	assert.Equal(t, 2, m.Ndim)
	assert.Equal(t, 1.0, m.Xmax)
	assert.Equal(t, 1.0, m.Ymax)

	tags := m.BndTags()
	sort.Ints(tags)
	assert.Equal(t, []int{1, 2, 3, 4}, tags)
	assert.Equal(t, 2, len(m.Bnd2faces[1]))

	// bottom boundary vertices
	bottom := append([]int(nil), m.Bnd2verts[1]...)
	sort.Ints(bottom)
	assert.Equal(t, []int{0, 1, 2}, bottom)
}

func TestNeighbours(t *testing.T) {
	m := GenGrid2D(2, 2, 1, 1)

	// cell 0 is the bottom-left quad: boundary below and left, cells 1 and
	// 2 to the right and above
	assert.Equal(t, []int{-1, 1, 2, -1}, m.Cells[0].Neighs)
	assert.Equal(t, []int{-1, -1, 3, 0}, m.Cells[1].Neighs)

	// adjacency is symmetric
	for _, cell := range m.Cells {
		for fid, n := range cell.Neighs {
			if n < 0 {
				continue
			}
			nfid := -1
			for f, nn := range m.Cells[n].Neighs {
				if nn == cell.Id {
					nfid = f
				}
			}
			assert.GreaterOrEqual(t, nfid, 0, "cell %d face %d", cell.Id, fid)
		}
	}
}

func TestVert2Cells(t *testing.T) {
	m := GenGrid2D(2, 2, 1, 1)
	// center vertex touches all four cells
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, m.Vert2cells[4])
	// corner vertex touches one cell
	assert.Equal(t, []int{0}, m.Vert2cells[0])
}

func TestPartition(t *testing.T) {
	parts := Partition(10, 3)
	assert.Equal(t, 3, len(parts))
	assert.Equal(t, 4, len(parts[0]))
	assert.Equal(t, 3, len(parts[1]))
	assert.Equal(t, 3, len(parts[2]))

	// disjoint cover of [0,10)
	seen := make(map[int]bool)
	for _, p := range parts {
		for _, i := range p {
			assert.False(t, seen[i])
			seen[i] = true
		}
	}
	assert.Equal(t, 10, len(seen))

	// more parts than items
	parts = Partition(2, 4)
	assert.Equal(t, 4, len(parts))
	assert.Equal(t, 1, len(parts[0]))
	assert.Equal(t, 0, len(parts[3]))
}

func TestRefineCoarsen(t *testing.T) {
	m := GenGrid2D(1, 1, 1, 1)
	changed, err := m.RefineCells([]bool{true})
	assert.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 4, len(m.Cells))
	assert.Equal(t, 9, len(m.Verts))

	for _, cell := range m.Cells {
		assert.Equal(t, 1, cell.Level)
	}

	// outer edges keep the parent's tags
	assert.Equal(t, []int{1, 0, 0, 4}, m.Cells[0].FTags)
	assert.Equal(t, []int{1, 2, 0, 0}, m.Cells[1].FTags)
	assert.Equal(t, []int{0, 2, 3, 0}, m.Cells[2].FTags)
	assert.Equal(t, []int{0, 0, 3, 4}, m.Cells[3].FTags)

	// merge all four siblings back
	changed, err = m.CoarsenCells([]bool{true, true, true, true})
	assert.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, len(m.Cells))
	assert.Equal(t, 0, m.Cells[0].Level)
}

func TestRefineSharedEdge(t *testing.T) {
	m := GenGrid2D(2, 1, 2, 1)
	nv := len(m.Verts)
	changed, err := m.RefineCells([]bool{true, true})
	assert.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 8, len(m.Cells))

	// 5 new vertices per cell minus the shared mid-edge vertex
	assert.Equal(t, nv+9, len(m.Verts))
}

func TestReadMshMissing(t *testing.T) {
	_, err := ReadMsh("/no/such/mesh.msh")
	assert.Error(t, err)
}

func TestHangingVerts(t *testing.T) {
	m := GenGrid2D(2, 1, 1, 1)
	changed, err := m.RefineCells([]bool{true, false})
	assert.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 5, len(m.Cells))
	assert.Equal(t, 11, len(m.Verts))

	// the mid of the shared edge hangs on the unrefined neighbour's face
	assert.Equal(t, 1, len(m.Hangs))
	h := m.Hangs[0]
	assert.Equal(t, 7, h.M)
	assert.Equal(t, 4, h.A)
	assert.Equal(t, 1, h.B)

	// refining the coarse side reuses the hanging vertex and conforms
	nv := len(m.Verts)
	changed, err = m.RefineCells([]bool{false, false, false, false, true})
	assert.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, nv+4, len(m.Verts))
	assert.Equal(t, 0, len(m.Hangs))
}

func TestCloneCoords(t *testing.T) {
	m := GenGrid2D(1, 1, 1, 1)
	clone := m.CloneCoords()
	clone.SetCoords(0, []float64{-1, -1})
	assert.Equal(t, []float64{0, 0}, m.Verts[0].C)
	assert.Equal(t, []float64{-1, -1}, clone.Verts[0].C)

	// cells are shared
	assert.Equal(t, len(m.Cells), len(clone.Cells))
}
