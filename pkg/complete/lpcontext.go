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
	"github.com/scipopt/vipr-go/pkg/constraint"
	"github.com/scipopt/vipr-go/pkg/lp"
	"github.com/scipopt/vipr-go/pkg/rational"
	"github.com/scipopt/vipr-go/pkg/vector"
)

// LPResolver owns one warm LP context across a sequence of incomplete-step
// resolutions, keeping its row set in sync with each step's active set so
// row data already present does not need to be rebuilt.
type LPResolver struct {
	ctx    *lp.Context
	active map[int]bool
}

// NewLPResolver constructs a resolver over a problem with numVars variables.
func NewLPResolver(numVars int) *LPResolver {
	return &LPResolver{ctx: lp.NewContext(numVars), active: make(map[int]bool)}
}

// Sync updates the LP's row set to exactly wantActive, adding rows for newly
// active certificate indices (fetched via lookup) and dropping rows that
// fell out of the active set.
func (r *LPResolver) Sync(wantActive []int, lookup func(certIdx int) *constraint.Constraint) {
	want := make(map[int]bool, len(wantActive))
	for _, idx := range wantActive {
		want[idx] = true
		if !r.active[idx] {
			c := lookup(idx)
			r.ctx.SetRow(idx, c.Sense, c.Rhs, c.Coef)
		}
	}
	for idx := range r.active {
		if !want[idx] {
			r.ctx.RemoveRow(idx)
		}
	}
	r.active = want
}

// ResolveStatus reports how an incomplete-completion solve concluded.
type ResolveStatus int

const (
	// ResolvedDominating: an optimal/infeasible LP status yielded a
	// multiplier list ready to cite in the output.
	ResolvedDominating ResolveStatus = iota
	// ResolvedOther: a non-optimal, non-infeasible LP status; the step must
	// be passed through as "incomplete".
	ResolvedOther
)

// Resolve sets the LP objective from coefC with the direction implied by
// senseC (minimise when senseC is E or G, maximise when L, per the
// completer's LP-setup rule) and solves, returning the multiplier list built
// from row duals and variable reduced costs on a decisive status.
func (r *LPResolver) Resolve(senseC constraint.Sense, coefC *vector.Vector, bt *BoundTracker) ([]int, []rational.Rat, ResolveStatus, error) {
	minimize := senseC != constraint.LE

	res, err := r.ctx.Solve(coefC, minimize)
	if err != nil {
		return nil, nil, ResolvedOther, err
	}

	switch res.Status {
	case lp.Optimal:
		idx, mult := dualMultipliers(res.Duals)
		for varIdx, rc := range res.ReducedCosts {
			if rational.IsZero(rc) {
				continue
			}
			b, have := boundForReducedCost(bt, varIdx, rc, minimize)
			if !have {
				continue
			}
			idx = append(idx, b.CertIdx)
			mult = append(mult, rational.Quo(rc, b.Factor))
		}
		return idx, mult, ResolvedDominating, nil

	case lp.Infeasible:
		idx, mult := dualMultipliers(res.Duals)
		return idx, mult, ResolvedDominating, nil

	default:
		return nil, nil, ResolvedOther, nil
	}
}

func dualMultipliers(duals map[int]rational.Rat) ([]int, []rational.Rat) {
	var idx []int
	var mult []rational.Rat
	for certIdx, d := range duals {
		if rational.IsZero(d) {
			continue
		}
		idx = append(idx, certIdx)
		mult = append(mult, d)
	}
	return idx, mult
}

// boundForReducedCost picks the lower or upper tracked bound on varIdx. rc is
// expressed in the original objective's direction: under minimisation, a
// nonbasic variable sitting at its lower bound has rc >= 0; under
// maximisation that convention flips, so a positive rc there indicates the
// upper bound instead.
func boundForReducedCost(bt *BoundTracker, varIdx int, rc rational.Rat, minimize bool) (Bound, bool) {
	atLower := (rational.Sign(rc) > 0) == minimize
	if atLower {
		return bt.Lower(varIdx)
	}
	return bt.Upper(varIdx)
}
