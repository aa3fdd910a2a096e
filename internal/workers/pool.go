// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Pool bounds how many CPU-heavy jobs (key derivations) run at once.
// Callers beyond the limit wait in Do until a slot frees up or their
// context ends.
type Pool struct {
	sem  *semaphore.Weighted
	size int
}

// NewPool returns a pool with size slots. A non-positive size uses
// runtime.GOMAXPROCS(0).
func NewPool(size int) *Pool {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size)), size: size}
}

// Size returns the number of slots.
func (p *Pool) Size() int {
	return p.size
}

// Do runs fn once a slot is available. It returns ctx.Err() without
// running fn if ctx ends first.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("waiting for worker slot: %w", err)
	}
	defer p.sem.Release(1)

	return fn()
}
