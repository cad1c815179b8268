// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Comm abstracts the communicator used to serialize distributed vectors.
// Multi-process runs would implement this over MPI; the in-process engine
// uses SerialComm.
type Comm interface {
	Rank() int
	Size() int
	AllGather(dest, src la.Vector) error
}

// SerialComm is the single-process communicator
type SerialComm struct{}

// Rank returns 0
func (o *SerialComm) Rank() int { return 0 }

// Size returns 1
func (o *SerialComm) Size() int { return 1 }

// AllGather copies src into dest
func (o *SerialComm) AllGather(dest, src la.Vector) error {
	if len(dest) != len(src) {
		return chk.Err("cannot gather vector of size %d into vector of size %d", len(src), len(dest))
	}
	copy(dest, src)
	return nil
}
