// Copyright SCIP Optimization Suite Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package complete

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// pool is the circular buffer of 2*T reusable LP resolvers workers borrow
// from and return to, amortising LP warm starts across steps.
type pool struct {
	ch chan *LPResolver
}

func newPool(size int, numVars int) *pool {
	ch := make(chan *LPResolver, size)
	for i := 0; i < size; i++ {
		ch <- NewLPResolver(numVars)
	}
	return &pool{ch: ch}
}

func (p *pool) acquire() *LPResolver { return <-p.ch }
func (p *pool) release(r *LPResolver) { p.ch <- r }

// Pipeline runs derivation-step completion with bounded parallelism T over a
// circular pool of 2*T LP contexts, writing results back in original input
// order regardless of completion order — the three-stage
// dispatch/complete/commit shape, with stage 1 (dispatch) and stage 3
// (commit) modeled as plain sequential loops around a bounded fan-out of
// stage-2 workers.
type Pipeline struct {
	workers int
	pool    *pool
}

// NewPipeline constructs a pipeline with workers concurrent LP solves and a
// pool of 2*workers reusable LP contexts sized for numVars variables.
func NewPipeline(workers, numVars int) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		workers: workers,
		pool:    newPool(2*workers, numVars),
	}
}

// Work is one unit of dispatched completion work: an item and its position
// in the input order.
type Work[T any] struct {
	Index int
	Item  T
}

// Run dispatches items[i] to worker, bounded to p.workers concurrent calls,
// each borrowing a pooled *LPResolver for the duration of its call, then
// invokes commit(i, result) for every i in ascending order once all workers
// have finished. A worker error aborts the run; the first one encountered is
// returned.
func Run[T, R any](ctx context.Context, p *Pipeline, items []T, worker func(context.Context, T, *LPResolver) (R, error), commit func(int, R) error) error {
	n := len(items)
	results := make([]R, n)
	errs := make([]error, n)

	sem := semaphore.NewWeighted(int64(p.workers))
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return err
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)

			lpr := p.pool.acquire()
			defer p.pool.release(lpr)

			r, err := worker(ctx, items[i], lpr)
			results[i] = r
			errs[i] = err
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		if errs[i] != nil {
			return errs[i]
		}
		if err := commit(i, results[i]); err != nil {
			return err
		}
	}
	return nil
}
