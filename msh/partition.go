// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

// Partition splits the index range [0,n) into nparts disjoint, contiguous,
// near-equal chunks for static assignment to worker threads. Parts at the
// front receive the remainder, so sizes differ by at most one. Chunks beyond
// n are empty.
func Partition(n, nparts int) (parts [][]int) {
	if nparts < 1 {
		nparts = 1
	}
	parts = make([][]int, nparts)
	lo := 0
	for p := 0; p < nparts; p++ {
		size := n / nparts
		if p < n%nparts {
			size++
		}
		ids := make([]int, size)
		for i := 0; i < size; i++ {
			ids[i] = lo + i
		}
		parts[p] = ids
		lo += size
	}
	return
}
