// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import (
	"github.com/cpmech/gosl/chk"
)

// entry holds one contribution in a warehouse together with its restriction
type entry[T any] struct {
	name string
	item T
	ids  []int // subdomain or boundary ids; empty => unrestricted
}

// Warehouse is the per-thread registry for contributions of one kind.
// Contributions are kept in insertion order; Active merges restricted and
// unrestricted contributions preserving that order, which is the ordering
// guarantee the assembly engine relies on when restrictions overlap.
type Warehouse[T any] struct {
	entries []entry[T]
	names   map[string]int
	cache   map[int][]T
	flat    []T
}

// Add inserts a contribution under a unique instance name.
//   ids -- the subdomain/boundary ids this contribution is restricted to;
//          empty means active everywhere
func (o *Warehouse[T]) Add(name string, item T, ids []int) (err error) {
	if o.names == nil {
		o.names = make(map[string]int)
	}
	if _, ok := o.names[name]; ok {
		return chk.Err("contribution named %q exists already", name)
	}
	o.names[name] = len(o.entries)
	o.entries = append(o.entries, entry[T]{name: name, item: item, ids: ids})
	o.flat = append(o.flat, item)
	o.cache = nil
	return
}

// Active returns the contributions applicable to the given subdomain or
// boundary id, in insertion order. The result is cached until the next Add.
func (o *Warehouse[T]) Active(id int) []T {
	if o.cache == nil {
		o.cache = make(map[int][]T)
	}
	if items, ok := o.cache[id]; ok {
		return items
	}
	var items []T
	for _, e := range o.entries {
		if len(e.ids) == 0 {
			items = append(items, e.item)
			continue
		}
		for _, i := range e.ids {
			if i == id {
				items = append(items, e.item)
				break
			}
		}
	}
	o.cache[id] = items
	return items
}

// All returns every contribution across all restrictions, in insertion order
func (o *Warehouse[T]) All() []T {
	return o.flat
}

// Get returns a contribution by instance name
func (o *Warehouse[T]) Get(name string) (item T, ok bool) {
	idx, ok := o.names[name]
	if !ok {
		return
	}
	return o.entries[idx].item, true
}

// Len returns the number of contributions
func (o *Warehouse[T]) Len() int {
	return len(o.entries)
}

// Names returns all instance names in insertion order
func (o *Warehouse[T]) Names() (names []string) {
	for _, e := range o.entries {
		names = append(names, e.name)
	}
	return
}
