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

package lp

import (
	"fmt"

	"github.com/scipopt/vipr-go/pkg/constraint"
	"github.com/scipopt/vipr-go/pkg/rational"
	"github.com/scipopt/vipr-go/pkg/vector"
)

// tableau is a dense two-phase simplex tableau over free variables, split as
// x_j = xp_j - xm_j with xp_j, xm_j >= 0. Every row carries its own slack (or
// surplus) column and its own artificial column, so the initial basis is
// always the artificial columns, regardless of row sense. Artificial columns
// stay in the tableau after phase 1 so that duals can be read off them: each
// artificial column's original data is the identity, so its final reduced
// cost directly yields the row's dual value.
type tableau struct {
	numVars int
	numRows int
	numCols int

	a       [][]rational.Rat
	rhs     []rational.Rat
	cost    []rational.Rat // reduced cost row for the active phase
	basis   []int
	objCols []rational.Rat // the real objective's xp/xm coefficients, preserved across phases

	certIdx  []int  // certIdx[i] is the certificate index of row i
	flipped  []bool // flipped[i]: row i's original rhs was negative, sign was inverted
	origSign []rational.Rat

	minimize bool
	objSign  rational.Rat // +1 if minimize, -1 if maximize; the scale applied to the real objective
}

func slackCol(numVars, numRows, row int) int  { return 2*numVars + row }
func artCol(numVars, numRows, row int) int    { return 2*numVars + numRows + row }

func newTableau(c *Context, obj *vector.Vector, minimize bool) (*tableau, error) {
	n := c.numVars
	m := len(c.rows)
	numCols := 2*n + 2*m

	t := &tableau{
		numVars:  n,
		numRows:  m,
		numCols:  numCols,
		a:        make([][]rational.Rat, m),
		rhs:      make([]rational.Rat, m),
		basis:    make([]int, m),
		certIdx:  make([]int, m),
		flipped:  make([]bool, m),
		origSign: make([]rational.Rat, m),
		minimize: minimize,
	}

	for i, row := range c.rows {
		t.certIdx[i] = row.CertIndex
		sense := row.Sense
		rhs := row.Rhs
		sign := rational.One()
		if rational.Sign(rhs) < 0 {
			sign = rational.Neg(rational.One())
			t.flipped[i] = true
			rhs = rational.Neg(rhs)
			sense = flipSense(sense)
		}
		t.origSign[i] = sign

		r := make([]rational.Rat, numCols)
		for j := 0; j < n; j++ {
			v := rational.Mul(sign, row.Coef.Get(j))
			r[j] = v
			r[n+j] = rational.Neg(v)
		}
		switch sense {
		case constraint.LE:
			r[slackCol(n, m, i)] = rational.One()
		case constraint.GE:
			r[slackCol(n, m, i)] = rational.Neg(rational.One())
		case constraint.EQ:
			// no slack column contribution
		default:
			return nil, fmt.Errorf("lp: row %d has unrecognized sense %v", row.CertIndex, row.Sense)
		}
		r[artCol(n, m, i)] = rational.One()

		t.a[i] = r
		t.rhs[i] = rhs
		t.basis[i] = artCol(n, m, i)
	}

	t.cost = make([]rational.Rat, numCols)
	t.objCols = make([]rational.Rat, 2*n)
	sign := rational.One()
	if !minimize {
		sign = rational.Neg(rational.One())
	}
	t.objSign = sign
	for j := 0; j < n; j++ {
		v := rational.Mul(sign, obj.Get(j))
		t.objCols[j] = v
		t.objCols[n+j] = rational.Neg(v)
	}
	// slack and artificial columns have zero phase-2 cost.

	return t, nil
}

func flipSense(s constraint.Sense) constraint.Sense {
	switch s {
	case constraint.LE:
		return constraint.GE
	case constraint.GE:
		return constraint.LE
	default:
		return constraint.EQ
	}
}

// reducedCostRow computes c_j - z_j for every column given the raw cost
// vector rawCost and the current basis/tableau, by pricing out every basic
// column.
func (t *tableau) reducedCostRow(rawCost []rational.Rat) []rational.Rat {
	red := make([]rational.Rat, t.numCols)
	copy(red, rawCost)
	for i, bcol := range t.basis {
		cb := rawCost[bcol]
		if rational.IsZero(cb) {
			continue
		}
		for j := 0; j < t.numCols; j++ {
			red[j] = rational.Sub(red[j], rational.Mul(cb, t.a[i][j]))
		}
	}
	return red
}

// pivot performs Gauss-Jordan elimination making column col basic in row.
func (t *tableau) pivot(row, col int) {
	piv := t.a[row][col]
	inv := rational.Quo(rational.One(), piv)
	for j := 0; j < t.numCols; j++ {
		t.a[row][j] = rational.Mul(t.a[row][j], inv)
	}
	t.rhs[row] = rational.Mul(t.rhs[row], inv)

	for i := 0; i < t.numRows; i++ {
		if i == row {
			continue
		}
		factor := t.a[i][col]
		if rational.IsZero(factor) {
			continue
		}
		for j := 0; j < t.numCols; j++ {
			t.a[i][j] = rational.Sub(t.a[i][j], rational.Mul(factor, t.a[row][j]))
		}
		t.rhs[i] = rational.Sub(t.rhs[i], rational.Mul(factor, t.rhs[row]))
	}

	factor := t.cost[col]
	if !rational.IsZero(factor) {
		for j := 0; j < t.numCols; j++ {
			t.cost[j] = rational.Sub(t.cost[j], rational.Mul(factor, t.a[row][j]))
		}
	}
	t.basis[row] = col
}

// runSimplex drives pivots to optimality against t.cost (already a valid
// reduced-cost row for the current basis) using Bland's rule, skipping any
// column index in excluded. Returns false if the problem is unbounded.
func (t *tableau) runSimplex(excluded map[int]bool) bool {
	for {
		enter := -1
		for j := 0; j < t.numCols; j++ {
			if excluded[j] {
				continue
			}
			if rational.Sign(t.cost[j]) < 0 {
				enter = j
				break
			}
		}
		if enter == -1 {
			return true
		}

		leave := -1
		var bestRatio rational.Rat
		for i := 0; i < t.numRows; i++ {
			if rational.Sign(t.a[i][enter]) <= 0 {
				continue
			}
			ratio := rational.Quo(t.rhs[i], t.a[i][enter])
			if leave == -1 || rational.Cmp(ratio, bestRatio) < 0 ||
				(rational.Cmp(ratio, bestRatio) == 0 && t.basis[i] < t.basis[leave]) {
				leave = i
				bestRatio = ratio
			}
		}
		if leave == -1 {
			return false
		}
		t.pivot(leave, enter)
	}
}

// dualFromArtificials reads each row's dual value off its artificial
// column's final reduced cost. The reduced cost lives in the units of
// whichever cost row is active (rawArtCost is that row's own cost on the
// artificial: 1 during phase 1, 0 against the real objective in phase 2).
// scale rescales back to the direction the caller wants the result
// expressed in: the phase-1 Farkas ray (infeasible case) has no objective
// direction to rescale against, so callers pass One() there; the phase-2
// optimal dual is read against the real cost row, which was itself built
// pre-scaled by t.objSign for a maximised objective, so that scale must be
// un-done here to report the dual in the original objective's direction.
func (t *tableau) dualFromArtificials(rawArtCost, scale rational.Rat) map[int]rational.Rat {
	duals := make(map[int]rational.Rat, t.numRows)
	for i := 0; i < t.numRows; i++ {
		col := artCol(t.numVars, t.numRows, i)
		y := rational.Sub(rawArtCost, t.cost[col])
		if t.flipped[i] {
			y = rational.Neg(y)
		}
		duals[t.certIdx[i]] = rational.Mul(scale, y)
	}
	return duals
}

func (t *tableau) solve() (*Result, error) {
	n, m := t.numVars, t.numRows

	phase1Cost := make([]rational.Rat, t.numCols)
	for i := 0; i < m; i++ {
		phase1Cost[artCol(n, m, i)] = rational.One()
	}
	t.cost = t.reducedCostRow(phase1Cost)
	if ok := t.runSimplex(nil); !ok {
		return nil, fmt.Errorf("lp: phase 1 unbounded, should be impossible")
	}

	phase1Obj := rational.Zero()
	for i := 0; i < m; i++ {
		phase1Obj = rational.Add(phase1Obj, rational.Mul(phase1Cost[t.basis[i]], t.rhs[i]))
	}
	if !rational.IsZero(phase1Obj) {
		return &Result{
			Status: Infeasible,
			Duals:  t.dualFromArtificials(rational.One(), rational.One()),
		}, nil
	}

	// Drive any artificial still basic at zero level out of the basis
	// before starting phase 2, swapping in any structural column with a
	// nonzero pivot entry in that row.
	for i := 0; i < m; i++ {
		if t.basis[i] < 2*n+m {
			continue
		}
		for j := 0; j < 2*n+m; j++ {
			if rational.Sign(t.a[i][j]) != 0 {
				t.pivot(i, j)
				break
			}
		}
	}

	excluded := make(map[int]bool, m)
	for i := 0; i < m; i++ {
		excluded[artCol(n, m, i)] = true
	}

	realCost := make([]rational.Rat, t.numCols)
	copy(realCost[:2*n], t.objCols)

	t.cost = t.reducedCostRow(realCost)
	if ok := t.runSimplex(excluded); !ok {
		return &Result{Status: Other}, nil
	}

	// t.cost[j] is the reduced cost in the internal, sign-scaled objective;
	// rescale by t.objSign so callers can combine it with the original
	// (possibly maximised) objective's coefficients, matching the row duals.
	reduced := make(map[int]rational.Rat, n)
	rawValues := make([]rational.Rat, n)
	for j := 0; j < n; j++ {
		reduced[j] = rational.Mul(t.objSign, t.cost[j])
	}
	for i := 0; i < m; i++ {
		if t.basis[i] < n {
			rawValues[t.basis[i]] = rational.Add(rawValues[t.basis[i]], t.rhs[i])
		} else if t.basis[i] < 2*n {
			rawValues[t.basis[i]-n] = rational.Sub(rawValues[t.basis[i]-n], t.rhs[i])
		}
	}
	values := make(map[int]rational.Rat, n)
	for j := 0; j < n; j++ {
		values[j] = rawValues[j]
	}

	duals := t.dualFromArtificials(rational.Zero(), t.objSign)
	return &Result{
		Status:       Optimal,
		Values:       values,
		Duals:        duals,
		ReducedCosts: reduced,
	}, nil
}
