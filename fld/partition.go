// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fld

import (
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// Reducer computes global sums over all parts of a decomposed domain
type Reducer interface {
	SumAll(local float64) float64 // returns the sum of local values over all parts
}

// Serial is the Reducer of a single, undecomposed, domain
type Serial struct{}

// SumAll returns local
func (Serial) SumAll(local float64) float64 { return local }

// Partitions splits a range of cells into contiguous buckets evaluated in parallel
type Partitions struct {
	N    int // number of cells
	Ndeg int // parallel degree (number of buckets)
}

// NewPartitions returns partitions of n cells into (at most) ndeg buckets
func NewPartitions(n, ndeg int) Partitions {
	if ndeg < 1 {
		ndeg = 1
	}
	if ndeg > n && n > 0 {
		ndeg = n
	}
	return Partitions{N: n, Ndeg: ndeg}
}

// Range returns the range [lo, hi) of cells in bucket p
func (o Partitions) Range(p int) (lo, hi int) {
	size := o.N / o.Ndeg
	rem := o.N % o.Ndeg
	lo = p*size + min(p, rem)
	hi = lo + size
	if p < rem {
		hi++
	}
	return
}

// Run calls fn for every bucket; buckets run concurrently when Ndeg > 1
func (o Partitions) Run(fn func(p, lo, hi int) error) error {
	if o.Ndeg <= 1 {
		return fn(0, 0, o.N)
	}
	var g errgroup.Group
	for p := 0; p < o.Ndeg; p++ {
		p := p
		lo, hi := o.Range(p)
		g.Go(func() error { return fn(p, lo, hi) })
	}
	return g.Wait()
}

// Sum computes the sum over all cells of fn(i), accumulating one partial sum per bucket.
// Partial sums are added in bucket order so the result does not depend on scheduling.
//  Note: fn cannot fail, so the bucket function always returns nil and so does Run
func (o Partitions) Sum(fn func(i int) float64) float64 {
	partial := make([]float64, max(o.Ndeg, 1))
	_ = o.Run(func(p, lo, hi int) error {
		for i := lo; i < hi; i++ {
			partial[p] += fn(i)
		}
		return nil
	})
	return floats.Sum(partial)
}
